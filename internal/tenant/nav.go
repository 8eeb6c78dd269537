package tenant

import "github.com/pageza/vitality/web/internal/types"

// NavItem is one entry of the role-dependent navigation
type NavItem struct {
	Label string `json:"label"`
	Path  string `json:"path"`
}

// LandingPath is where a user goes after signing in. SuperAdmins leave the
// tenant basename.
func LandingPath(basename string, role types.Role) string {
	switch role {
	case types.RoleSuperAdmin:
		return SuperAdminPath
	case types.RoleAdmin:
		return Join(basename, "/admin/users")
	default:
		return Join(basename, "/dashboard")
	}
}

// ForbiddenPath is where an authenticated user lands on a page their role
// may not see.
func ForbiddenPath(basename string, role types.Role) string {
	if role == types.RoleSuperAdmin {
		return SuperAdminPath
	}
	return Join(basename, "/dashboard")
}

// Navigation returns the menu for role, with paths inside basename
func Navigation(basename string, role types.Role) []NavItem {
	var items []NavItem
	switch role {
	case types.RoleSuperAdmin:
		return []NavItem{
			{Label: "Organizaciones", Path: SuperAdminPath},
			{Label: "Perfil", Path: Join(basename, "/profile")},
		}
	case types.RoleAdmin:
		items = []NavItem{
			{Label: "Gestión de Usuarios", Path: "/admin/users"},
			{Label: "Gestión de Comidas", Path: "/admin/foods"},
			{Label: "Gestión de Ejercicios", Path: "/admin/exercises"},
			{Label: "Mi Perfil", Path: "/admin/profile"},
		}
	case types.RoleTrainer:
		items = []NavItem{
			{Label: "Resumen", Path: "/dashboard"},
			{Label: "Mis Usuarios", Path: "/trainer/users"},
			{Label: "Seguimiento", Path: "/tracking"},
			{Label: "Dieta", Path: "/diet"},
			{Label: "Entrenamiento", Path: "/workout"},
			{Label: "Perfil", Path: "/profile"},
		}
	default:
		items = []NavItem{
			{Label: "Resumen", Path: "/dashboard"},
			{Label: "Seguimiento", Path: "/tracking"},
			{Label: "Dieta", Path: "/diet"},
			{Label: "Entrenamiento", Path: "/workout"},
			{Label: "Perfil", Path: "/profile"},
		}
	}

	for i := range items {
		items[i].Path = Join(basename, items[i].Path)
	}
	return items
}

package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pageza/vitality/web/internal/branding"
	"github.com/pageza/vitality/web/internal/middleware"
	"github.com/pageza/vitality/web/internal/screen"
	"github.com/pageza/vitality/web/internal/service"
	"github.com/pageza/vitality/web/internal/types"
)

// MaxLogoSize is the largest accepted logo upload
const MaxLogoSize = 2 << 20

var errOrganizationNotFound = errors.New("organization not found")

// SuperAdminHandler serves the global organization management screen
type SuperAdminHandler struct {
	svc    Services
	render *Responder
}

// NewSuperAdminHandler creates a new SuperAdminHandler
func NewSuperAdminHandler(svc Services, render *Responder) *SuperAdminHandler {
	return &SuperAdminHandler{svc: svc, render: render}
}

// RegisterRoutes mounts the superadmin routes. They exist on the global
// basename only.
func (h *SuperAdminHandler) RegisterRoutes(rg *gin.RouterGroup) {
	superadmin := rg.Group("/superadmin")
	superadmin.Use(middleware.RequireRoles(types.RoleSuperAdmin))
	{
		superadmin.GET("", h.Organizations)
		superadmin.POST("", h.CreateOrganization)
		superadmin.PUT("/organizations/:id", h.UpdateOrganization)
		superadmin.POST("/organizations/:id/logo", h.UploadLogo)
	}
}

func (h *SuperAdminHandler) organizations(c *gin.Context) *screen.Collection[types.Organization] {
	creds := h.render.Creds(c)
	return screen.NewCollection(func(ctx context.Context) ([]types.Organization, error) {
		return h.svc.Organizations.ListOrganizations(ctx, creds)
	}, func(o types.Organization) string { return o.ID })
}

// Organizations lists every tenant
func (h *SuperAdminHandler) Organizations(c *gin.Context) {
	orgs, err := h.organizations(c).Load(c.Request.Context())
	if err != nil {
		h.render.PageError(c, "superadmin", err, "No se pudieron cargar las organizaciones")
		return
	}
	h.render.Page(c, "superadmin", orgs)
}

// CreateOrganization adds a tenant
func (h *SuperAdminHandler) CreateOrganization(c *gin.Context) {
	req, ok := h.bindOrganization(c)
	if !ok {
		return
	}
	creds := h.render.Creds(c)
	outcome, err := h.organizations(c).Apply(c.Request.Context(), func(ctx context.Context) (*types.Organization, error) {
		return h.svc.Organizations.CreateOrganization(ctx, creds, req)
	})
	if err != nil {
		h.render.Fail(c, err, "No se pudo crear la organización", "/superadmin")
		return
	}
	h.render.Done(c, http.StatusCreated, "Organización creada", "/superadmin", outcome)
}

// UpdateOrganization edits a tenant's name, slug and branding
func (h *SuperAdminHandler) UpdateOrganization(c *gin.Context) {
	req, ok := h.bindOrganization(c)
	if !ok {
		return
	}
	creds := h.render.Creds(c)
	outcome, err := h.organizations(c).Apply(c.Request.Context(), func(ctx context.Context) (*types.Organization, error) {
		return h.svc.Organizations.UpdateOrganization(ctx, creds, c.Param("id"), req)
	})
	if err != nil {
		h.render.Fail(c, err, "No se pudo actualizar la organización", "/superadmin")
		return
	}
	h.render.Done(c, http.StatusOK, "Organización actualizada", "/superadmin", outcome)
}

func (h *SuperAdminHandler) bindOrganization(c *gin.Context) (*types.OrganizationRequest, bool) {
	var req types.OrganizationRequest
	if err := c.ShouldBind(&req); err != nil {
		h.render.Invalid(c, err, "/superadmin")
		return nil, false
	}
	for _, color := range []string{req.PrimaryColor, req.SecondaryColor} {
		if color == "" {
			continue
		}
		if _, err := branding.ParseHex(color); err != nil {
			h.render.Invalid(c, fmt.Errorf("color %q: %w", color, err), "/superadmin")
			return nil, false
		}
	}
	return &req, true
}

// UploadLogo stores a new logo and points the organization at it
func (h *SuperAdminHandler) UploadLogo(c *gin.Context) {
	file, err := c.FormFile("logo")
	if err != nil {
		h.render.Invalid(c, err, "/superadmin")
		return
	}
	if file.Size > MaxLogoSize {
		h.render.Invalid(c, fmt.Errorf("logo exceeds %d bytes", MaxLogoSize), "/superadmin")
		return
	}

	src, err := file.Open()
	if err != nil {
		h.render.Fail(c, err, "No se pudo leer el logo", "/superadmin")
		return
	}
	defer src.Close()

	ctx := c.Request.Context()
	orgID := c.Param("id")
	coll := h.organizations(c)
	if _, err := coll.Load(ctx); err != nil {
		h.render.Fail(c, err, "No se pudieron cargar las organizaciones", "/superadmin")
		return
	}
	var org *types.Organization
	for i := range coll.Items {
		if coll.Items[i].ID == orgID {
			org = &coll.Items[i]
			break
		}
	}
	if org == nil {
		h.render.PageError(c, "superadmin", errOrganizationNotFound, "Organización no encontrada")
		return
	}

	url, err := h.svc.Logos.UploadLogo(ctx, orgID, file.Filename, file.Header.Get("Content-Type"), src)
	if err != nil {
		if errors.Is(err, service.ErrUnsupportedImage) {
			h.render.Invalid(c, err, "/superadmin")
			return
		}
		h.render.Fail(c, err, "No se pudo subir el logo", "/superadmin")
		return
	}

	req := &types.OrganizationRequest{
		Name:             org.Name,
		Slug:             org.Slug,
		PrimaryColor:     org.PrimaryColor,
		SecondaryColor:   org.SecondaryColor,
		LogoURL:          &url,
		RestaurantURL:    org.RestaurantURL,
		NutritionDetails: org.NutritionDetails,
	}
	creds := h.render.Creds(c)
	outcome, err := coll.Apply(ctx, func(ctx context.Context) (*types.Organization, error) {
		return h.svc.Organizations.UpdateOrganization(ctx, creds, orgID, req)
	})
	if err != nil {
		h.render.Fail(c, err, "El logo se subió pero no se pudo guardar", "/superadmin")
		return
	}
	h.render.Done(c, http.StatusOK, "Logo actualizado", "/superadmin", outcome)
}

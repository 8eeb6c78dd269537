package branding

import (
	"html/template"

	"github.com/pageza/vitality/web/internal/types"
)

// Fallback tenant, used whenever the organization config cannot be loaded
const (
	FallbackName           = "Vitality"
	FallbackSlug           = "vitality"
	FallbackPrimaryColor   = "#10B981"
	FallbackSecondaryColor = "#3B82F6"
)

// Theme is the request-scoped branding of the current tenant
type Theme struct {
	OrganizationID    string        `json:"organizationId,omitempty"`
	Name              string        `json:"name"`
	Slug              string        `json:"slug"`
	PrimaryColor      string        `json:"primaryColor"`
	SecondaryColor    string        `json:"secondaryColor"`
	PrimaryHSL        string        `json:"primaryHsl"`
	PrimaryForeground string        `json:"primaryForeground"`
	PrimaryHover      string        `json:"primaryHover"`
	LowContrast       bool          `json:"lowContrast"`
	LogoURL           string        `json:"logoUrl,omitempty"`
	RestaurantURL     string        `json:"restaurantUrl,omitempty"`
	NutritionNotes    template.HTML `json:"nutritionNotes,omitempty"`
	Fallback          bool          `json:"fallback"`
}

// Title is the document title for pages of this tenant
func (t Theme) Title() string {
	return t.Name
}

// hoverShade darkens the primary color for hover states
const hoverShade = -0.1

// FallbackTheme returns the built-in Vitality branding
func FallbackTheme() Theme {
	theme := Theme{
		Name:           FallbackName,
		Slug:           FallbackSlug,
		SecondaryColor: FallbackSecondaryColor,
		Fallback:       true,
	}
	theme.setPrimary(FallbackPrimaryColor)
	return theme
}

// setPrimary derives the primary palette from a valid hex color
func (t *Theme) setPrimary(hex string) error {
	hsl, err := HexToHSL(hex)
	if err != nil {
		return err
	}
	hover, err := AdjustColor(hex, hoverShade)
	if err != nil {
		return err
	}
	t.PrimaryColor = hex
	t.PrimaryHSL = hsl
	t.PrimaryHover = hover
	t.PrimaryForeground = ContrastText(hex)
	t.LowContrast = !HasSufficientContrast(hex, DefaultContrastThreshold)
	return nil
}

// ThemeFor builds the theme of an organization. Colors that fail to parse
// fall back to the default palette individually.
func ThemeFor(org *types.Organization) Theme {
	theme := FallbackTheme()
	theme.Fallback = false
	theme.OrganizationID = org.ID
	theme.Slug = org.Slug
	if org.Name != "" {
		theme.Name = org.Name
	}

	// An invalid primary keeps the default palette
	_ = theme.setPrimary(org.PrimaryColor)
	if _, err := ParseHex(org.SecondaryColor); err == nil {
		theme.SecondaryColor = org.SecondaryColor
	}
	if org.LogoURL != nil {
		theme.LogoURL = *org.LogoURL
	}
	if org.RestaurantURL != nil {
		theme.RestaurantURL = *org.RestaurantURL
	}
	theme.NutritionNotes = RenderNotes(org.NutritionDetails)
	return theme
}

package types

// Organization is a tenant: a gym or business with its own branding
type Organization struct {
	ID               string  `json:"id"`
	Name             string  `json:"name"`
	Slug             string  `json:"slug"`
	PrimaryColor     string  `json:"primaryColor"`
	SecondaryColor   string  `json:"secondaryColor"`
	LogoURL          *string `json:"logoUrl"`
	RestaurantURL    *string `json:"restaurantUrl"`
	NutritionDetails string  `json:"nutritionDetails,omitempty"`
}

// OrganizationRequest is the body of POST /organization and PUT /organization/:id
type OrganizationRequest struct {
	Name             string  `json:"name,omitempty" binding:"required"`
	Slug             string  `json:"slug,omitempty" binding:"required"`
	PrimaryColor     string  `json:"primaryColor,omitempty"`
	SecondaryColor   string  `json:"secondaryColor,omitempty"`
	LogoURL          *string `json:"logoUrl,omitempty"`
	RestaurantURL    *string `json:"restaurantUrl,omitempty"`
	NutritionDetails string  `json:"nutritionDetails,omitempty"`
}

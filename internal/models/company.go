package models

type Company struct {
	ID           int     `json:"company_id"`
	Name         string  `json:"company_name"`
	Enabled      bool    `json:"company_enabled"`
	HomePhoto    *string `json:"company_home_photo,omitempty"`
	BrandColour  *string `json:"company_brand_colour,omitempty"`
	BrandLogo    *string `json:"company_brand_logo,omitempty"`
	BrandFavicon *string `json:"company_brand_favicon,omitempty"`
	Created      string  `json:"company_created"`
	Updated      string  `json:"company_updated"`
}

func (c Company) EntityID() int       { return c.ID }
func (c Company) DisplayName() string { return c.Name }

type CompanyCreate struct {
	Name         string  `json:"company_name" validate:"notblank,max=255"`
	Enabled      bool    `json:"company_enabled"`
	HomePhoto    *string `json:"company_home_photo,omitempty" validate:"omitempty,url,max=255"`
	BrandColour  *string `json:"company_brand_colour,omitempty" validate:"omitempty,brandcolour,max=50"`
	BrandLogo    *string `json:"company_brand_logo,omitempty" validate:"omitempty,url,max=255"`
	BrandFavicon *string `json:"company_brand_favicon,omitempty" validate:"omitempty,url,max=255"`
}

type CompanyUpdate struct {
	Name         *string `json:"company_name,omitempty" validate:"omitempty,notblank,max=255"`
	Enabled      *bool   `json:"company_enabled,omitempty"`
	HomePhoto    *string `json:"company_home_photo,omitempty" validate:"omitempty,url,max=255"`
	BrandColour  *string `json:"company_brand_colour,omitempty" validate:"omitempty,brandcolour,max=50"`
	BrandLogo    *string `json:"company_brand_logo,omitempty" validate:"omitempty,url,max=255"`
	BrandFavicon *string `json:"company_brand_favicon,omitempty" validate:"omitempty,url,max=255"`
}

// CompanyOverview is the company detail page: the company with the sites
// and users that belong to it.
type CompanyOverview struct {
	Company Company `json:"company"`
	Sites   []Site  `json:"sites"`
	Users   []User  `json:"users"`
}

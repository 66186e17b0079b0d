package models

type Site struct {
	ID           int     `json:"site_id"`
	CompanyID    int     `json:"site_company_id"`
	Name         string  `json:"site_name"`
	Enabled      bool    `json:"site_enabled"`
	GroupID      *int    `json:"site_group_id,omitempty"`
	ManagerID    *int    `json:"site_manager_id,omitempty"`
	Address      *string `json:"site_address,omitempty"`
	City         *string `json:"site_city,omitempty"`
	Region       *string `json:"site_region,omitempty"`
	Country      *string `json:"site_country,omitempty"`
	ZipCode      *string `json:"site_zip_code,omitempty"`
	GeoCoord     *string `json:"site_geo_coord,omitempty"`
	TaxRate      *string `json:"site_tax_rate,omitempty"`
	ContactName  *string `json:"site_contact_name,omitempty"`
	ContactPhone *string `json:"site_contact_ph,omitempty"`
	ContactEmail *string `json:"site_contact_email,omitempty"`
	Created      string  `json:"site_created"`
	Updated      string  `json:"site_updated"`
}

func (s Site) EntityID() int       { return s.ID }
func (s Site) DisplayName() string { return s.Name }

type SiteCreate struct {
	CompanyID    int     `json:"site_company_id" validate:"required,gt=0"`
	Name         string  `json:"site_name" validate:"notblank,max=255"`
	Enabled      bool    `json:"site_enabled"`
	GroupID      *int    `json:"site_group_id,omitempty" validate:"omitempty,gt=0"`
	ManagerID    *int    `json:"site_manager_id,omitempty" validate:"omitempty,gt=0"`
	Address      *string `json:"site_address,omitempty" validate:"omitempty,max=255"`
	City         *string `json:"site_city,omitempty" validate:"omitempty,max=100"`
	Region       *string `json:"site_region,omitempty" validate:"omitempty,max=100"`
	Country      *string `json:"site_country,omitempty" validate:"omitempty,max=100"`
	ZipCode      *string `json:"site_zip_code,omitempty" validate:"omitempty,max=20"`
	GeoCoord     *string `json:"site_geo_coord,omitempty" validate:"omitempty,max=100"`
	TaxRate      *string `json:"site_tax_rate,omitempty" validate:"omitempty,numeric"`
	ContactName  *string `json:"site_contact_name,omitempty" validate:"omitempty,max=255"`
	ContactPhone *string `json:"site_contact_ph,omitempty" validate:"omitempty,max=50"`
	ContactEmail *string `json:"site_contact_email,omitempty" validate:"omitempty,email,max=255"`
}

type SiteUpdate struct {
	Name         *string `json:"site_name,omitempty" validate:"omitempty,notblank,max=255"`
	Enabled      *bool   `json:"site_enabled,omitempty"`
	GroupID      *int    `json:"site_group_id,omitempty" validate:"omitempty,gt=0"`
	ManagerID    *int    `json:"site_manager_id,omitempty" validate:"omitempty,gt=0"`
	Address      *string `json:"site_address,omitempty" validate:"omitempty,max=255"`
	City         *string `json:"site_city,omitempty" validate:"omitempty,max=100"`
	Region       *string `json:"site_region,omitempty" validate:"omitempty,max=100"`
	Country      *string `json:"site_country,omitempty" validate:"omitempty,max=100"`
	ZipCode      *string `json:"site_zip_code,omitempty" validate:"omitempty,max=20"`
	GeoCoord     *string `json:"site_geo_coord,omitempty" validate:"omitempty,max=100"`
	TaxRate      *string `json:"site_tax_rate,omitempty" validate:"omitempty,numeric"`
	ContactName  *string `json:"site_contact_name,omitempty" validate:"omitempty,max=255"`
	ContactPhone *string `json:"site_contact_ph,omitempty" validate:"omitempty,max=50"`
	ContactEmail *string `json:"site_contact_email,omitempty" validate:"omitempty,email,max=255"`
}

type SitesGroup struct {
	ID        int    `json:"site_group_id"`
	CompanyID int    `json:"site_company_id"`
	Name      string `json:"site_group_name"`
	Enabled   bool   `json:"site_group_enabled"`
	Created   string `json:"site_group_created"`
	Updated   string `json:"site_group_updated"`
}

func (g SitesGroup) EntityID() int       { return g.ID }
func (g SitesGroup) DisplayName() string { return g.Name }

type SitesGroupCreate struct {
	CompanyID int    `json:"site_company_id" validate:"required,gt=0"`
	Name      string `json:"site_group_name" validate:"notblank,max=255"`
	Enabled   bool   `json:"site_group_enabled"`
}

type SitesGroupUpdate struct {
	Name    *string `json:"site_group_name,omitempty" validate:"omitempty,notblank,max=255"`
	Enabled *bool   `json:"site_group_enabled,omitempty"`
}

// SitesGroupManager assigns a manager user to a site group.
type SitesGroupManager struct {
	ID            int    `json:"id"`
	SiteGroupID   int    `json:"site_group_id"`
	ManagerUserID int    `json:"manager_user_id"`
	AssignedDate  string `json:"assigned_date"`
	Active        bool   `json:"is_active"`
}

func (m SitesGroupManager) EntityID() int { return m.ID }

// DisplayName is the assignment id; assignments have no name of their own.
func (m SitesGroupManager) DisplayName() string { return itoa(m.ID) }

type SitesGroupManagerCreate struct {
	SiteGroupID   int `json:"site_group_id" validate:"required,gt=0"`
	ManagerUserID int `json:"manager_user_id" validate:"required,gt=0"`
}

type SitesGroupManagerUpdate struct {
	Active bool `json:"is_active"`
}

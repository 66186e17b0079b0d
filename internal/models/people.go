package models

import (
	"strconv"
	"strings"
)

type User struct {
	ID         int     `json:"user_id"`
	KeycloakID string  `json:"user_keycloak_id"`
	FirstName  *string `json:"user_first_name,omitempty"`
	LastName   *string `json:"user_last_name,omitempty"`
	Email      *string `json:"user_email,omitempty"`
	Phone      *string `json:"user_phone,omitempty"`
	RoleID     *int    `json:"user_role_id,omitempty"`
	CompanyID  *int    `json:"user_company_id,omitempty"`
	Created    string  `json:"user_created"`
	Updated    string  `json:"user_updated"`
}

func (u User) EntityID() int { return u.ID }

// DisplayName is "First Last", falling back to the email.
func (u User) DisplayName() string {
	name := strings.TrimSpace(Deref(u.FirstName) + " " + Deref(u.LastName))
	if name == "" {
		return Deref(u.Email)
	}
	return name
}

type UserCreate struct {
	FirstName string  `json:"user_first_name" validate:"notblank,max=100"`
	LastName  string  `json:"user_last_name" validate:"notblank,max=100"`
	Email     string  `json:"user_email" validate:"required,email,max=255"`
	Phone     *string `json:"user_phone,omitempty" validate:"omitempty,max=50"`
	RoleID    *int    `json:"user_role_id,omitempty" validate:"omitempty,gt=0"`
	CompanyID *int    `json:"user_company_id,omitempty" validate:"omitempty,gt=0"`
}

// NewUser is the create form: the profile plus the initial password for the
// identity provider.
type NewUser struct {
	User     UserCreate `json:"user_data"`
	Password string     `json:"password" validate:"required,min=8,max=128"`
}

type UserUpdate struct {
	FirstName *string `json:"user_first_name,omitempty" validate:"omitempty,notblank,max=100"`
	LastName  *string `json:"user_last_name,omitempty" validate:"omitempty,notblank,max=100"`
	Email     *string `json:"user_email,omitempty" validate:"omitempty,email,max=255"`
	Phone     *string `json:"user_phone,omitempty" validate:"omitempty,max=50"`
	RoleID    *int    `json:"user_role_id,omitempty" validate:"omitempty,gt=0"`
	CompanyID *int    `json:"user_company_id,omitempty" validate:"omitempty,gt=0"`
}

// DefaultRoleLevel is the driver level.
const DefaultRoleLevel = 40

type UserRole struct {
	ID      int    `json:"user_role_id"`
	Name    string `json:"user_role_name"`
	Level   int    `json:"user_role_level"`
	Created string `json:"user_role_created"`
	Updated string `json:"user_role_updated"`
}

func (r UserRole) EntityID() int       { return r.ID }
func (r UserRole) DisplayName() string { return r.Name }

type UserRoleCreate struct {
	Name  string `json:"user_role_name" validate:"notblank,max=255"`
	Level int    `json:"user_role_level" validate:"gte=0"`
}

type UserRoleUpdate struct {
	Name  *string `json:"user_role_name,omitempty" validate:"omitempty,notblank,max=255"`
	Level *int    `json:"user_role_level,omitempty" validate:"omitempty,gte=0"`
}

type Driver struct {
	ID            int     `json:"driver_id"`
	CompanyID     int     `json:"driver_company_id"`
	Enabled       bool    `json:"driver_enabled"`
	FullName      string  `json:"driver_full_name"`
	Email         *string `json:"driver_email,omitempty"`
	Phone         *string `json:"driver_phone,omitempty"`
	GroupID       *int    `json:"driver_group_id,omitempty"`
	ActionAlerts  bool    `json:"driver_action_alerts"`
	PaymentAlerts bool    `json:"driver_payment_alerts"`
	SystemAlerts  bool    `json:"driver_system_alerts"`
	UserID        *int    `json:"driver_user_id,omitempty"`
	Created       string  `json:"driver_created"`
	Updated       string  `json:"driver_updated"`
}

func (d Driver) EntityID() int       { return d.ID }
func (d Driver) DisplayName() string { return d.FullName }

type DriverCreate struct {
	CompanyID     int     `json:"driver_company_id" validate:"required,gt=0"`
	Enabled       bool    `json:"driver_enabled"`
	FullName      string  `json:"driver_full_name" validate:"notblank,max=255"`
	Email         *string `json:"driver_email,omitempty" validate:"omitempty,email,max=255"`
	Phone         *string `json:"driver_phone,omitempty" validate:"omitempty,max=50"`
	GroupID       *int    `json:"driver_group_id,omitempty" validate:"omitempty,gt=0"`
	ActionAlerts  bool    `json:"driver_action_alerts"`
	PaymentAlerts bool    `json:"driver_payment_alerts"`
	SystemAlerts  bool    `json:"driver_system_alerts"`
	UserID        *int    `json:"driver_user_id,omitempty" validate:"omitempty,gt=0"`
}

// DriverUpdate has no name, email or phone: those follow the linked user.
type DriverUpdate struct {
	Enabled       *bool `json:"driver_enabled,omitempty"`
	GroupID       *int  `json:"driver_group_id,omitempty" validate:"omitempty,gt=0"`
	ActionAlerts  *bool `json:"driver_action_alerts,omitempty"`
	PaymentAlerts *bool `json:"driver_payment_alerts,omitempty"`
	SystemAlerts  *bool `json:"driver_system_alerts,omitempty"`
	UserID        *int  `json:"driver_user_id,omitempty" validate:"omitempty,gt=0"`
}

type DriversGroup struct {
	ID        int    `json:"drivers_group_id"`
	CompanyID int    `json:"drivers_group_company_id"`
	Name      string `json:"drivers_group_name"`
	Enabled   bool   `json:"drivers_group_enabled"`
	TariffID  int    `json:"driver_tariff_id"`
	Created   string `json:"drivers_group_created"`
	Updated   string `json:"drivers_group_updated"`
}

func (g DriversGroup) EntityID() int       { return g.ID }
func (g DriversGroup) DisplayName() string { return g.Name }

type DriversGroupCreate struct {
	CompanyID int    `json:"drivers_group_company_id" validate:"required,gt=0"`
	Name      string `json:"drivers_group_name" validate:"notblank,max=255"`
	Enabled   bool   `json:"drivers_group_enabled"`
	TariffID  int    `json:"driver_tariff_id" validate:"required,gt=0"`
}

type DriversGroupUpdate struct {
	Name     *string `json:"drivers_group_name,omitempty" validate:"omitempty,notblank,max=255"`
	Enabled  *bool   `json:"drivers_group_enabled,omitempty"`
	TariffID *int    `json:"driver_tariff_id,omitempty" validate:"omitempty,gt=0"`
}

type RFIDCard struct {
	ID       int    `json:"rfid_card_id"`
	DriverID *int   `json:"rfid_card_driver_id,omitempty"`
	UID      int64  `json:"rfid_card_uid"`
	Enabled  bool   `json:"rfid_card_enabled"`
	Created  string `json:"rfid_card_created"`
	Updated  string `json:"rfid_card_updated"`
}

func (c RFIDCard) EntityID() int       { return c.ID }
func (c RFIDCard) DisplayName() string { return strconv.FormatInt(c.UID, 10) }

type RFIDCardCreate struct {
	DriverID int `json:"rfid_card_driver_id" validate:"required,gt=0"`
	// UID is yyyymmddhhmmss; the API generates one when omitted.
	UID     *int64 `json:"rfid_card_uid,omitempty" validate:"omitempty,gte=10000101000000,lte=99991231235959"`
	Enabled bool   `json:"rfid_card_enabled"`
}

type RFIDCardUpdate struct {
	DriverID *int  `json:"rfid_card_driver_id,omitempty" validate:"omitempty,gt=0"`
	Enabled  *bool `json:"rfid_card_enabled,omitempty"`
}

func itoa(n int) string { return strconv.Itoa(n) }

package models

type Tariff struct {
	ID             int     `json:"tariffs_id"`
	CompanyID      int     `json:"tariffs_company_id"`
	Name           string  `json:"tariffs_name"`
	Enabled        bool    `json:"tariffs_enabled"`
	Type           *string `json:"tariffs_type,omitempty"`
	Per            *string `json:"tariffs_per,omitempty"`
	RateDaytime    *string `json:"tariffs_rate_daytime,omitempty"`
	RateNighttime  *string `json:"tariffs_rate_nighttime,omitempty"`
	DaytimeFrom    *string `json:"tariffs_daytime_from,omitempty"`
	DaytimeTo      *string `json:"tariffs_daytime_to,omitempty"`
	NighttimeFrom  *string `json:"tariffs_nighttime_from,omitempty"`
	NighttimeTo    *string `json:"tariffs_nighttime_to,omitempty"`
	FixedStartFee  *string `json:"tariffs_fixed_start_fee,omitempty"`
	IdleFee        *string `json:"tariffs_idle_charging_fee,omitempty"`
	IdleApplyAfter *int    `json:"tariffs_idle_apply_after,omitempty"`
	Created        string  `json:"tariffs_created"`
	Updated        string  `json:"tariffs_updated"`
}

func (t Tariff) EntityID() int       { return t.ID }
func (t Tariff) DisplayName() string { return t.Name }

type TariffCreate struct {
	CompanyID      int     `json:"tariffs_company_id" validate:"required,gt=0"`
	Name           string  `json:"tariffs_name" validate:"notblank,max=255"`
	Enabled        bool    `json:"tariffs_enabled"`
	Type           *string `json:"tariffs_type,omitempty" validate:"omitempty,max=50"`
	Per            *string `json:"tariffs_per,omitempty" validate:"omitempty,max=50"`
	RateDaytime    *string `json:"tariffs_rate_daytime,omitempty" validate:"omitempty,numeric"`
	RateNighttime  *string `json:"tariffs_rate_nighttime,omitempty" validate:"omitempty,numeric"`
	DaytimeFrom    *string `json:"tariffs_daytime_from,omitempty" validate:"omitempty,datetime=15:04:05"`
	DaytimeTo      *string `json:"tariffs_daytime_to,omitempty" validate:"omitempty,datetime=15:04:05"`
	NighttimeFrom  *string `json:"tariffs_nighttime_from,omitempty" validate:"omitempty,datetime=15:04:05"`
	NighttimeTo    *string `json:"tariffs_nighttime_to,omitempty" validate:"omitempty,datetime=15:04:05"`
	FixedStartFee  *string `json:"tariffs_fixed_start_fee,omitempty" validate:"omitempty,numeric"`
	IdleFee        *string `json:"tariffs_idle_charging_fee,omitempty" validate:"omitempty,numeric"`
	IdleApplyAfter *int    `json:"tariffs_idle_apply_after,omitempty" validate:"omitempty,gte=0"`
}

type TariffUpdate struct {
	Name           *string `json:"tariffs_name,omitempty" validate:"omitempty,notblank,max=255"`
	Enabled        *bool   `json:"tariffs_enabled,omitempty"`
	Type           *string `json:"tariffs_type,omitempty" validate:"omitempty,max=50"`
	Per            *string `json:"tariffs_per,omitempty" validate:"omitempty,max=50"`
	RateDaytime    *string `json:"tariffs_rate_daytime,omitempty" validate:"omitempty,numeric"`
	RateNighttime  *string `json:"tariffs_rate_nighttime,omitempty" validate:"omitempty,numeric"`
	DaytimeFrom    *string `json:"tariffs_daytime_from,omitempty" validate:"omitempty,datetime=15:04:05"`
	DaytimeTo      *string `json:"tariffs_daytime_to,omitempty" validate:"omitempty,datetime=15:04:05"`
	NighttimeFrom  *string `json:"tariffs_nighttime_from,omitempty" validate:"omitempty,datetime=15:04:05"`
	NighttimeTo    *string `json:"tariffs_nighttime_to,omitempty" validate:"omitempty,datetime=15:04:05"`
	FixedStartFee  *string `json:"tariffs_fixed_start_fee,omitempty" validate:"omitempty,numeric"`
	IdleFee        *string `json:"tariffs_idle_charging_fee,omitempty" validate:"omitempty,numeric"`
	IdleApplyAfter *int    `json:"tariffs_idle_apply_after,omitempty" validate:"omitempty,gte=0"`
}

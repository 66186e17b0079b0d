package models

import "strconv"

const (
	PaymentPending  = "Pending"
	PaymentPaid     = "Paid"
	PaymentFailed   = "Failed"
	PaymentRefunded = "Refunded"

	SessionInProgress = "In Progress"
	SessionCompleted  = "Completed"
	SessionCancelled  = "Cancelled"
	SessionFailed     = "Failed"
)

var PaymentStatuses = []string{PaymentPending, PaymentPaid, PaymentFailed, PaymentRefunded}

// StopReasons are the OCPP 1.6 StopTransaction reasons.
var StopReasons = []string{
	"Local", "Remote", "EmergencyStop", "EVDisconnected", "HardReset",
	"SoftReset", "PowerLoss", "Reboot", "Other",
}

type ChargeSession struct {
	ID            int     `json:"charge_session_id"`
	ConnectorID   int     `json:"charge_session_connector_id"`
	CPID          int     `json:"charge_session_cp_id"`
	DriverID      *int    `json:"charge_session_driver_id,omitempty"`
	RFIDCardID    *int    `json:"charge_session_rfid_card_id,omitempty"`
	TariffID      *int    `json:"charge_session_tariff_id,omitempty"`
	StartTime     *string `json:"charge_session_start_time,omitempty"`
	EndTime       *string `json:"charge_session_end_time,omitempty"`
	Duration      *int    `json:"charge_session_duration,omitempty"`
	StopReason    *string `json:"charge_session_stop_reason,omitempty"`
	Status        string  `json:"charge_session_status"`
	MeterStart    *int    `json:"charge_session_meter_start,omitempty"`
	MeterStop     *int    `json:"charge_session_meter_stop,omitempty"`
	EnergyKWh     *string `json:"charge_session_energy_kwh,omitempty"`
	Cost          *string `json:"charge_session_cost,omitempty"`
	PaymentStatus string  `json:"charge_session_payment_status"`
	Created       string  `json:"charge_session_created"`
}

func (s ChargeSession) EntityID() int       { return s.ID }
func (s ChargeSession) DisplayName() string { return strconv.Itoa(s.ID) }

type ChargeSessionCreate struct {
	ConnectorID int    `json:"charge_session_connector_id" validate:"required,gt=0"`
	CPID        int    `json:"charge_session_cp_id" validate:"required,gt=0"`
	DriverID    *int   `json:"charge_session_driver_id,omitempty" validate:"omitempty,gt=0"`
	RFIDCardID  *int   `json:"charge_session_rfid_card_id,omitempty" validate:"omitempty,gt=0"`
	TariffID    *int   `json:"charge_session_tariff_id,omitempty" validate:"omitempty,gt=0"`
	StartTime   string `json:"charge_session_start_time" validate:"required,iso8601"`
	MeterStart  int    `json:"charge_session_meter_start" validate:"gte=0"`
}

type SessionEnergy struct {
	EnergyKWh string `json:"charge_session_energy_kwh" validate:"required,numeric"`
}

type SessionStop struct {
	EndTime    string  `json:"charge_session_end_time" validate:"required,iso8601"`
	MeterStop  int     `json:"charge_session_meter_stop" validate:"gte=0"`
	EnergyKWh  string  `json:"charge_session_energy_kwh" validate:"required,numeric"`
	StopReason *string `json:"charge_session_stop_reason,omitempty" validate:"omitempty,stopreason"`
}

type SessionPayment struct {
	PaymentStatus string `json:"charge_session_payment_status" validate:"required,paymentstatus"`
}

// SessionAction is the body of the charge session action endpoints.
type SessionAction[T any] struct {
	SessionID int `json:"session_id"`
	Data      T   `json:"session_data"`
}

package models

// OperatingHours are HH:MM:SS bounds per weekday.
type OperatingHours struct {
	MonFrom *string `json:"cp_mon_from,omitempty"`
	MonTo   *string `json:"cp_mon_to,omitempty"`
	TueFrom *string `json:"cp_tue_from,omitempty"`
	TueTo   *string `json:"cp_tue_to,omitempty"`
	WedFrom *string `json:"cp_wed_from,omitempty"`
	WedTo   *string `json:"cp_wed_to,omitempty"`
	ThuFrom *string `json:"cp_thu_from,omitempty"`
	ThuTo   *string `json:"cp_thu_to,omitempty"`
	FriFrom *string `json:"cp_fri_from,omitempty"`
	FriTo   *string `json:"cp_fri_to,omitempty"`
	SatFrom *string `json:"cp_sat_from,omitempty"`
	SatTo   *string `json:"cp_sat_to,omitempty"`
	SunFrom *string `json:"cp_sun_from,omitempty"`
	SunTo   *string `json:"cp_sun_to,omitempty"`
}

type OperatingHoursInput struct {
	MonFrom *string `json:"cp_mon_from,omitempty" validate:"omitempty,datetime=15:04:05"`
	MonTo   *string `json:"cp_mon_to,omitempty" validate:"omitempty,datetime=15:04:05"`
	TueFrom *string `json:"cp_tue_from,omitempty" validate:"omitempty,datetime=15:04:05"`
	TueTo   *string `json:"cp_tue_to,omitempty" validate:"omitempty,datetime=15:04:05"`
	WedFrom *string `json:"cp_wed_from,omitempty" validate:"omitempty,datetime=15:04:05"`
	WedTo   *string `json:"cp_wed_to,omitempty" validate:"omitempty,datetime=15:04:05"`
	ThuFrom *string `json:"cp_thu_from,omitempty" validate:"omitempty,datetime=15:04:05"`
	ThuTo   *string `json:"cp_thu_to,omitempty" validate:"omitempty,datetime=15:04:05"`
	FriFrom *string `json:"cp_fri_from,omitempty" validate:"omitempty,datetime=15:04:05"`
	FriTo   *string `json:"cp_fri_to,omitempty" validate:"omitempty,datetime=15:04:05"`
	SatFrom *string `json:"cp_sat_from,omitempty" validate:"omitempty,datetime=15:04:05"`
	SatTo   *string `json:"cp_sat_to,omitempty" validate:"omitempty,datetime=15:04:05"`
	SunFrom *string `json:"cp_sun_from,omitempty" validate:"omitempty,datetime=15:04:05"`
	SunTo   *string `json:"cp_sun_to,omitempty" validate:"omitempty,datetime=15:04:05"`
}

type ChargePoint struct {
	ID                int     `json:"cp_id"`
	CompanyID         int     `json:"cp_company_id"`
	SiteID            int     `json:"cp_site_id"`
	Name              string  `json:"cp_name"`
	Vendor            *string `json:"cp_vendor,omitempty"`
	Model             *string `json:"cp_model,omitempty"`
	SerialNumber      *string `json:"cp_serial_number,omitempty"`
	FirmwareVersion   *string `json:"cp_firmware_version,omitempty"`
	ICCID             *string `json:"cp_iccid,omitempty"`
	IMSI              *string `json:"cp_imsi,omitempty"`
	MeterType         *string `json:"cp_meter_type,omitempty"`
	MeterSerialNumber *string `json:"cp_meter_serial_number,omitempty"`
	Type              *string `json:"cp_type,omitempty"`
	Longitude         *string `json:"cp_longitude,omitempty"`
	Latitude          *string `json:"cp_latitude,omitempty"`
	Pincode           *string `json:"cp_pincode,omitempty"`
	WSURL             *string `json:"cp_ws_url,omitempty"`
	Photo             *string `json:"cp_photo,omitempty"`
	Status            *string `json:"cp_status,omitempty"`
	Online            bool    `json:"cp_is_online"`
	Enabled           bool    `json:"cp_enabled"`
	AccessType        *string `json:"cp_access_type,omitempty"`
	AlwaysAvailable   bool    `json:"cp_always_available"`
	OperatingHours
	LastConnected    *string `json:"cp_last_conn,omitempty"`
	LastDisconnected *string `json:"cp_last_disconn,omitempty"`
	LastHeartbeat    *string `json:"cp_last_heartbeat,omitempty"`
	Created          string  `json:"cp_created"`
	Updated          string  `json:"cp_updated"`
}

func (c ChargePoint) EntityID() int       { return c.ID }
func (c ChargePoint) DisplayName() string { return c.Name }

type ChargePointCreate struct {
	CompanyID         int     `json:"cp_company_id" validate:"required,gt=0"`
	SiteID            int     `json:"cp_site_id" validate:"required,gt=0"`
	Name              string  `json:"cp_name" validate:"notblank,max=255"`
	Vendor            *string `json:"cp_vendor,omitempty" validate:"omitempty,max=20"`
	Model             *string `json:"cp_model,omitempty" validate:"omitempty,max=20"`
	SerialNumber      *string `json:"cp_serial_number,omitempty" validate:"omitempty,max=25"`
	FirmwareVersion   *string `json:"cp_firmware_version,omitempty" validate:"omitempty,max=50"`
	ICCID             *string `json:"cp_iccid,omitempty" validate:"omitempty,max=20"`
	IMSI              *string `json:"cp_imsi,omitempty" validate:"omitempty,max=20"`
	MeterType         *string `json:"cp_meter_type,omitempty" validate:"omitempty,max=25"`
	MeterSerialNumber *string `json:"cp_meter_serial_number,omitempty" validate:"omitempty,max=25"`
	Type              *string `json:"cp_type,omitempty" validate:"omitempty,max=50"`
	Longitude         *string `json:"cp_longitude,omitempty" validate:"omitempty,numeric"`
	Latitude          *string `json:"cp_latitude,omitempty" validate:"omitempty,numeric"`
	Pincode           *string `json:"cp_pincode,omitempty" validate:"omitempty,max=20"`
	WSURL             *string `json:"cp_ws_url,omitempty" validate:"omitempty,max=255"`
	Photo             *string `json:"cp_photo,omitempty" validate:"omitempty,max=255"`
	Status            *string `json:"cp_status,omitempty" validate:"omitempty,max=50"`
	Online            bool    `json:"cp_is_online"`
	Enabled           bool    `json:"cp_enabled"`
	AccessType        *string `json:"cp_access_type,omitempty" validate:"omitempty,max=50"`
	AlwaysAvailable   bool    `json:"cp_always_available"`
	OperatingHoursInput
}

type ChargePointUpdate struct {
	Name              *string `json:"cp_name,omitempty" validate:"omitempty,notblank,max=255"`
	Vendor            *string `json:"cp_vendor,omitempty" validate:"omitempty,max=20"`
	Model             *string `json:"cp_model,omitempty" validate:"omitempty,max=20"`
	SerialNumber      *string `json:"cp_serial_number,omitempty" validate:"omitempty,max=25"`
	FirmwareVersion   *string `json:"cp_firmware_version,omitempty" validate:"omitempty,max=50"`
	ICCID             *string `json:"cp_iccid,omitempty" validate:"omitempty,max=20"`
	IMSI              *string `json:"cp_imsi,omitempty" validate:"omitempty,max=20"`
	MeterType         *string `json:"cp_meter_type,omitempty" validate:"omitempty,max=25"`
	MeterSerialNumber *string `json:"cp_meter_serial_number,omitempty" validate:"omitempty,max=25"`
	Type              *string `json:"cp_type,omitempty" validate:"omitempty,max=50"`
	Longitude         *string `json:"cp_longitude,omitempty" validate:"omitempty,numeric"`
	Latitude          *string `json:"cp_latitude,omitempty" validate:"omitempty,numeric"`
	Pincode           *string `json:"cp_pincode,omitempty" validate:"omitempty,max=20"`
	WSURL             *string `json:"cp_ws_url,omitempty" validate:"omitempty,max=255"`
	Photo             *string `json:"cp_photo,omitempty" validate:"omitempty,max=255"`
	Status            *string `json:"cp_status,omitempty" validate:"omitempty,max=50"`
	Online            *bool   `json:"cp_is_online,omitempty"`
	Enabled           *bool   `json:"cp_enabled,omitempty"`
	AccessType        *string `json:"cp_access_type,omitempty" validate:"omitempty,max=50"`
	AlwaysAvailable   *bool   `json:"cp_always_available,omitempty"`
	OperatingHoursInput
}

// OCPP 1.6 connector status values.
const (
	ConnectorAvailable     = "Available"
	ConnectorPreparing     = "Preparing"
	ConnectorCharging      = "Charging"
	ConnectorSuspendedEVSE = "SuspendedEVSE"
	ConnectorSuspendedEV   = "SuspendedEV"
	ConnectorFinishing     = "Finishing"
	ConnectorReserved      = "Reserved"
	ConnectorUnavailable   = "Unavailable"
	ConnectorFaulted       = "Faulted"

	ConnectorNoError = "NoError"
)

// Connector is identified by its number together with its charge point.
type Connector struct {
	ID        int     `json:"connector_id"`
	CPID      int     `json:"connector_cp_id"`
	Type      *string `json:"connector_type,omitempty"`
	Status    *string `json:"connector_status,omitempty"`
	ErrorCode *string `json:"connector_error_code,omitempty"`
	Enabled   bool    `json:"connector_enabled"`
	MaxVolt   *string `json:"connector_max_volt,omitempty"`
	MaxAmp    *string `json:"connector_max_amp,omitempty"`
	Created   string  `json:"connector_created"`
	Updated   string  `json:"connector_updated"`
}

func (c Connector) EntityID() int       { return c.ID }
func (c Connector) DisplayName() string { return itoa(c.ID) }

type ConnectorCreate struct {
	ID        int     `json:"connector_id" validate:"required,gt=0"`
	CPID      int     `json:"connector_cp_id" validate:"required,gt=0"`
	Type      *string `json:"connector_type,omitempty" validate:"omitempty,max=50"`
	Status    string  `json:"connector_status" validate:"required,connectorstatus"`
	ErrorCode string  `json:"connector_error_code" validate:"required,connectorerror"`
	Enabled   bool    `json:"connector_enabled"`
	MaxVolt   *string `json:"connector_max_volt,omitempty" validate:"omitempty,numeric"`
	MaxAmp    *string `json:"connector_max_amp,omitempty" validate:"omitempty,numeric"`
}

type ConnectorUpdate struct {
	CPID      int     `json:"connector_cp_id" validate:"required,gt=0"`
	Type      *string `json:"connector_type,omitempty" validate:"omitempty,max=50"`
	Status    *string `json:"connector_status,omitempty" validate:"omitempty,connectorstatus"`
	ErrorCode *string `json:"connector_error_code,omitempty" validate:"omitempty,connectorerror"`
	Enabled   *bool   `json:"connector_enabled,omitempty"`
	MaxVolt   *string `json:"connector_max_volt,omitempty" validate:"omitempty,numeric"`
	MaxAmp    *string `json:"connector_max_amp,omitempty" validate:"omitempty,numeric"`
}

var ConnectorStatuses = []string{
	ConnectorAvailable, ConnectorPreparing, ConnectorCharging, ConnectorSuspendedEVSE,
	ConnectorSuspendedEV, ConnectorFinishing, ConnectorReserved, ConnectorUnavailable, ConnectorFaulted,
}

var ConnectorErrorCodes = []string{
	ConnectorNoError, "ConnectorLockFailure", "EVCommunicationError", "GroundFailure",
	"HighTemperature", "InternalError", "LocalListConflict", "OtherError", "OverCurrentFailure",
	"PowerMeterFailure", "PowerSwitchFailure", "ReaderFailure", "ResetFailure", "UnderVoltage",
	"OverVoltage", "WeakSignal",
}

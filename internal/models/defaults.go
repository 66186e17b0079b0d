package models

// Create forms start from these values; fields absent from the submitted
// form keep them.

func DefaultCompanyCreate() CompanyCreate { return CompanyCreate{Enabled: false} }

func DefaultSiteCreate() SiteCreate { return SiteCreate{Enabled: true} }

func DefaultSitesGroupCreate() SitesGroupCreate { return SitesGroupCreate{Enabled: true} }

func DefaultDriverCreate() DriverCreate {
	return DriverCreate{Enabled: true, ActionAlerts: true, PaymentAlerts: true, SystemAlerts: true}
}

func DefaultDriversGroupCreate() DriversGroupCreate { return DriversGroupCreate{Enabled: true} }

func DefaultUserRoleCreate() UserRoleCreate { return UserRoleCreate{Level: DefaultRoleLevel} }

func DefaultTariffCreate() TariffCreate { return TariffCreate{Enabled: true} }

func DefaultRFIDCardCreate() RFIDCardCreate { return RFIDCardCreate{Enabled: true} }

func DefaultChargePointCreate() ChargePointCreate { return ChargePointCreate{Enabled: true} }

func DefaultConnectorCreate() ConnectorCreate {
	return ConnectorCreate{Status: ConnectorAvailable, ErrorCode: ConnectorNoError, Enabled: true}
}

func DefaultChargeSessionCreate() ChargeSessionCreate { return ChargeSessionCreate{MeterStart: 0} }

func DefaultReset() Reset { return Reset{Type: ResetSoft} }

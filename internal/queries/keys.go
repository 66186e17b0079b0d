package queries

import "cpmsdash/internal/querycache"

// Cache namespaces.
const (
	NSCompanies          = "companies"
	NSSites              = "sites"
	NSSitesGroups        = "sitesGroups"
	NSSitesGroupManagers = "sitesGroupManagers"
	NSUsers              = "users"
	NSUserRoles          = "userRoles"
	NSDrivers            = "drivers"
	NSDriversGroups      = "driversGroups"
	NSTariffs            = "tariffs"
	NSRFIDCards          = "rfidCards"
	NSChargePoints       = "chargepoints"
	NSConnectors         = "connectors"
	NSSessions           = "sessions"
	NSRemoteCommands     = "remoteCommands"
	NSAuth               = "auth"
)

func AllKey(ns string) querycache.Key {
	return querycache.Key{ns}
}

func DetailKey(ns string, id int) querycache.Key {
	return querycache.Key{ns, id}
}

func OverviewKey(companyID int) querycache.Key {
	return querycache.Key{NSCompanies, companyID, "overview"}
}

func ConnectionsKey() querycache.Key {
	return querycache.Key{NSRemoteCommands, "connections"}
}

func CurrentUserKey() querycache.Key {
	return querycache.Key{NSAuth, "current"}
}

func RelationKey(ns, relation string, id int) querycache.Key {
	return querycache.Key{ns, relation, id}
}

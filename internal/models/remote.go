package models

import "time"

const (
	CommandAccepted = "Accepted"
	CommandRejected = "Rejected"

	ResetSoft = "Soft"
	ResetHard = "Hard"
)

type RemoteStart struct {
	IDTag       string `json:"id_tag" validate:"notblank,max=20"`
	ConnectorID int    `json:"connector_id" validate:"gt=0"`
}

type RemoteStop struct {
	TransactionID int `json:"transaction_id" validate:"gt=0"`
}

type Reset struct {
	Type string `json:"reset_type" validate:"required,oneof=Soft Hard"`
}

type CommandStatus struct {
	Status string `json:"status"`
}

// CommandResult is the charger's answer to any remote command. Only the
// fields relevant to the command are set.
type CommandResult struct {
	Status        CommandStatus `json:"status"`
	CPID          int           `json:"cp_id"`
	CPName        string        `json:"cp_name"`
	ConnectorID   *int          `json:"connector_id,omitempty"`
	IDTag         *string       `json:"id_tag,omitempty"`
	TransactionID *int          `json:"transaction_id,omitempty"`
	ResetType     *string       `json:"reset_type,omitempty"`
	Message       *string       `json:"message,omitempty"`
}

func (r CommandResult) Accepted() bool { return r.Status.Status == CommandAccepted }

// Audit statuses of a dispatched remote command.
const (
	CommandQueued = "Queued"
	CommandSent   = "Sent"
	CommandAcked  = "Acked"
	CommandFailed = "Failed"
)

// CommandRecord is one remote command as recorded in the audit log.
type CommandRecord struct {
	ID        string    `json:"id"`
	CPID      int       `json:"cp_id"`
	Type      string    `json:"type"`
	Payload   []byte    `json:"payload"`
	Status    string    `json:"status"`
	Outcome   *string   `json:"outcome,omitempty"`
	Response  []byte    `json:"response,omitempty"`
	Error     *string   `json:"error,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

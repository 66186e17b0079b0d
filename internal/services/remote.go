package services

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"cpmsdash/internal/apiclient"
	"cpmsdash/internal/envelope"
	"cpmsdash/internal/metrics"
	"cpmsdash/internal/models"
)

const (
	CmdRemoteStart = "remote_start"
	CmdRemoteStop  = "remote_stop"
	CmdReset       = "reset"

	connectionsPath = "/remote_commands/connections"
)

// CommandLog records every dispatched command. The pgx backed
// repo.CommandsRepo satisfies it.
type CommandLog interface {
	Create(ctx context.Context, c models.CommandRecord) error
	MarkSent(ctx context.Context, id string) error
	MarkAcked(ctx context.Context, id, outcome string, response []byte) error
	MarkFailed(ctx context.Context, id string, errMsg string) error
}

// NopCommandLog discards records when no database is configured.
type NopCommandLog struct{}

func (NopCommandLog) Create(context.Context, models.CommandRecord) error      { return nil }
func (NopCommandLog) MarkSent(context.Context, string) error                  { return nil }
func (NopCommandLog) MarkAcked(context.Context, string, string, []byte) error { return nil }
func (NopCommandLog) MarkFailed(context.Context, string, string) error        { return nil }

type RemoteCommandService struct {
	api   *apiclient.Client
	audit CommandLog
	log   *zap.Logger
}

func NewRemoteCommandService(api *apiclient.Client, audit CommandLog, log *zap.Logger) *RemoteCommandService {
	if audit == nil {
		audit = NopCommandLog{}
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &RemoteCommandService{api: api, audit: audit, log: log}
}

func (s *RemoteCommandService) RemoteStart(ctx context.Context, cpID int, req models.RemoteStart) (*envelope.Response[models.CommandResult], error) {
	return dispatch(ctx, s, cpID, CmdRemoteStart, req)
}

func (s *RemoteCommandService) RemoteStop(ctx context.Context, cpID int, req models.RemoteStop) (*envelope.Response[models.CommandResult], error) {
	return dispatch(ctx, s, cpID, CmdRemoteStop, req)
}

func (s *RemoteCommandService) Reset(ctx context.Context, cpID int, req models.Reset) (*envelope.Response[models.CommandResult], error) {
	if req.Type == "" {
		req.Type = models.ResetSoft
	}
	return dispatch(ctx, s, cpID, CmdReset, req)
}

// Connections lists the chargers currently connected to the backend. The
// endpoint answers without the response envelope.
func (s *RemoteCommandService) Connections(ctx context.Context) (envelope.ConnectionsResponse, error) {
	return apiclient.GetRaw[envelope.ConnectionsResponse](ctx, s.api, connectionsPath)
}

// dispatch sends a command and keeps its audit record in step:
// Queued -> Sent -> Acked or Failed. The audit id doubles as the request
// envelope id. Audit failures are logged, never returned.
func dispatch[T any](ctx context.Context, s *RemoteCommandService, cpID int, command string, req T) (*envelope.Response[models.CommandResult], error) {
	id := uuid.NewString()
	payload, _ := json.Marshal(req)
	auditCtx := context.WithoutCancel(ctx)

	s.record(s.audit.Create(auditCtx, models.CommandRecord{ID: id, CPID: cpID, Type: command, Payload: payload, Status: models.CommandQueued}), id)
	s.record(s.audit.MarkSent(auditCtx, id), id)

	path := fmt.Sprintf("/remote_commands/%d/%s", cpID, command)
	resp, err := apiclient.SendWithID[T, models.CommandResult](ctx, s.api, http.MethodPost, path, id, req)
	if err != nil {
		metrics.RemoteCommandsTotal.WithLabelValues(command, "error").Inc()
		s.record(s.audit.MarkFailed(auditCtx, id, err.Error()), id)
		return nil, err
	}

	res, err := envelope.Extract(resp)
	if err != nil {
		metrics.RemoteCommandsTotal.WithLabelValues(command, "error").Inc()
		s.record(s.audit.MarkFailed(auditCtx, id, err.Error()), id)
		return resp, nil
	}

	outcome := res.Status.Status
	if outcome == "" {
		outcome = models.CommandRejected
	}
	body, _ := json.Marshal(res)
	metrics.RemoteCommandsTotal.WithLabelValues(command, outcome).Inc()
	s.record(s.audit.MarkAcked(auditCtx, id, outcome, body), id)

	s.log.Info("remote command answered",
		zap.String("command", command),
		zap.Int("cp_id", cpID),
		zap.String("outcome", outcome),
		zap.String("audit_id", id),
	)
	return resp, nil
}

func (s *RemoteCommandService) record(err error, id string) {
	if err != nil {
		s.log.Warn("remote command audit write failed", zap.String("audit_id", id), zap.Error(err))
	}
}

package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"os"
	"time"

	"go.uber.org/zap"

	"cpmsdash/internal/apiclient"
	"cpmsdash/internal/config"
	"cpmsdash/internal/envelope"
	"cpmsdash/internal/forms"
	"cpmsdash/internal/logging"
	"cpmsdash/internal/models"
	"cpmsdash/internal/services"
	"cpmsdash/internal/session"
)

func main() {
	username := flag.String("username", os.Getenv("CPMS_USERNAME"), "operator username")
	password := flag.String("password", os.Getenv("CPMS_PASSWORD"), "operator password")
	ch := flag.String("ch", "", "charger name from a QR code")
	co := flag.String("co", "", "connector from a QR code")
	cmd := flag.String("cmd", "connections", "connections|chargepoints|remote-start|remote-stop|reset")
	cp := flag.Int("cp", 0, "charge point id")
	connector := flag.Int("connector", 1, "connector id for remote-start")
	idTag := flag.String("idtag", "", "id tag for remote-start")
	tx := flag.Int("tx", 0, "transaction id for remote-stop")
	resetType := flag.String("reset", models.ResetSoft, "reset type: Soft|Hard")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fatal(err)
	}
	log, err := logging.New(cfg.Logging.Level, "console")
	if err != nil {
		fatal(err)
	}
	defer func() { _ = log.Sync() }()

	ctx, cancel := context.WithTimeout(context.Background(), 2*cfg.API.Timeout+5*time.Second)
	defer cancel()

	store := session.NewMemoryStore()
	api := apiclient.New(cfg.ClientOptions(), store, nil, log)
	auth := services.NewAuthService(api, store, nil, log)
	remote := services.NewRemoteCommandService(api, nil, log)
	v := forms.New()

	creds := models.Credentials{Username: *username, Password: *password}
	if err := v.Struct(creds); err != nil {
		fatal(err)
	}
	var qr *models.QRParams
	if *ch != "" && *co != "" {
		qr = &models.QRParams{Charger: *ch, Connector: *co}
	}
	if _, err := auth.Login(ctx, creds, qr); err != nil {
		fatal(fmt.Errorf("login: %w", err))
	}
	defer func() { _ = auth.Logout(context.Background()) }()

	var out any
	switch *cmd {
	case "connections":
		out, err = remote.Connections(ctx)
	case "chargepoints":
		out, err = unwrap(services.NewCatalog(api).ChargePoints.GetAll(ctx))
	case "remote-start":
		req := models.RemoteStart{IDTag: *idTag, ConnectorID: *connector}
		if err = validateCP(v, *cp, req); err == nil {
			out, err = unwrap(remote.RemoteStart(ctx, *cp, req))
		}
	case "remote-stop":
		req := models.RemoteStop{TransactionID: *tx}
		if err = validateCP(v, *cp, req); err == nil {
			out, err = unwrap(remote.RemoteStop(ctx, *cp, req))
		}
	case "reset":
		req := models.Reset{Type: *resetType}
		if err = validateCP(v, *cp, req); err == nil {
			out, err = unwrap(remote.Reset(ctx, *cp, req))
		}
	default:
		err = fmt.Errorf("unknown command %q", *cmd)
	}
	if err != nil {
		log.Error("command failed", zap.String("cmd", *cmd), zap.Error(err))
		os.Exit(1)
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	_ = enc.Encode(out)
}

func validateCP(v *forms.Validator, cp int, req any) error {
	if cp <= 0 {
		return errors.New("-cp is required")
	}
	return v.Struct(req)
}

func unwrap[U any](resp *envelope.Response[U], err error) (U, error) {
	if err != nil {
		var zero U
		return zero, err
	}
	return envelope.Extract(resp)
}

func fatal(err error) {
	fmt.Fprintln(os.Stderr, "cpmsctl:", err)
	os.Exit(1)
}

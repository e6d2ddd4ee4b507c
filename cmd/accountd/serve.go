// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Accountd Contributors

package main

import (
	"context"
	"log/slog"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/accountd/accountd/internal/auth"
	"github.com/accountd/accountd/internal/auth/postgres"
	"github.com/accountd/accountd/internal/auth/token"
	"github.com/accountd/accountd/internal/config"
	"github.com/accountd/accountd/internal/logging"
	"github.com/accountd/accountd/internal/mail"
	"github.com/accountd/accountd/internal/observability"
	"github.com/accountd/accountd/internal/store"
	"github.com/accountd/accountd/internal/web"
)

const shutdownTimeout = 10 * time.Second

// NewServeCmd creates the serve subcommand.
func NewServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the accountd HTTP server",
		Long: `Start the HTTP API server together with the observability
endpoints (metrics and health probes).`,
		RunE: runServe,
	}

	cmd.Flags().String("listen", ":3000", "HTTP API bind address")

	return cmd
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(configFile, cmd.Flags())
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	logging.SetDefault("accountd", version, cfg.Log.Level, cfg.Log.Format)
	logger := slog.Default()

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pool, err := store.Connect(ctx, cfg.Database.URL)
	if err != nil {
		return err
	}
	defer pool.Close()

	hasher, err := auth.NewArgon2idHasher([]byte(cfg.Pepper))
	if err != nil {
		return err
	}
	codec, err := token.NewCodec([]byte(cfg.Session.Key), cfg.Session.TTL)
	if err != nil {
		return err
	}

	var sender mail.Sender = mail.NoMail{}
	if cfg.MailConfigured() {
		sender, err = mail.NewSMTP(cfg.SMTP.Host, cfg.SMTP.Port, cfg.SMTP.Username, cfg.SMTP.Password, cfg.SMTP.From)
		if err != nil {
			return err
		}
	} else {
		logger.Warn("no SMTP relay configured, confirmation mails will fail")
	}
	mailer, err := mail.NewConfirmationMailer(sender, cfg.Domain.URL)
	if err != nil {
		return err
	}

	accounts := postgres.NewAccountRepository(pool)
	confirmations := postgres.NewConfirmationRepository(pool)

	confirmationSvc, err := auth.NewConfirmationService(confirmations)
	if err != nil {
		return err
	}
	provisioning, err := auth.NewProvisioningService(confirmationSvc, accounts, hasher, mailer)
	if err != nil {
		return err
	}
	sessions, err := auth.NewAuthService(accounts, hasher, codec)
	if err != nil {
		return err
	}

	obs := observability.NewServer(cfg.Metrics.Listen, func() bool {
		pingCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		return pool.Ping(pingCtx) == nil
	})
	obsErr, err := obs.Start()
	if err != nil {
		return err
	}

	server, err := web.New(provisioning, sessions, obs.Metrics(), logger, cfg.Session.TTL)
	if err != nil {
		return err
	}

	webErr := make(chan error, 1)
	go func() {
		webErr <- server.Listen(cfg.Listen)
	}()
	logger.Info("accountd listening", "addr", cfg.Listen)

	select {
	case <-ctx.Done():
		logger.Info("shutdown signal received")
	case err = <-webErr:
		if err != nil {
			logger.Error("http server failed", "error", err)
		}
	case err = <-obsErr:
		if err != nil {
			logger.Error("observability server failed", "error", err)
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if shutdownErr := server.Shutdown(shutdownCtx); shutdownErr != nil {
		logger.Error("http server shutdown failed", "error", shutdownErr)
	}
	if stopErr := obs.Stop(shutdownCtx); stopErr != nil {
		logger.Error("observability server shutdown failed", "error", stopErr)
	}

	logger.Info("accountd stopped")
	return err
}

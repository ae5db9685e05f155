package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/job-ledger/internal/logger"
	"github.com/jonathan/job-ledger/internal/server"
)

type serveOptions struct {
	root *rootOptions
	modelFlags

	port int
}

func newServeCmd(root *rootOptions) *cobra.Command {
	opts := &serveOptions{root: root}

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the job posting form",
		Long:  "Starts a local HTTP server with a form that extracts a pasted job posting and appends it to the CSV ledger.",
		Args:  cobra.NoArgs,
		RunE:  opts.run,
	}

	cmd.Flags().IntVarP(&opts.port, "port", "p", 0, "Port to listen on (default from config, 8080)")
	opts.modelFlags.register(cmd)

	return cmd
}

func (o *serveOptions) run(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	cfg := o.root.settings
	if cmd.Flags().Changed("port") {
		cfg.Port = o.port
	}
	if err := applyModelFlags(cmd, &cfg, &o.modelFlags); err != nil {
		return err
	}
	log := logger.Logger

	p, client, err := buildPipeline(ctx, cfg, log, nil)
	if err != nil {
		return err
	}
	defer func() { _ = client.Close() }()

	srv, err := server.New(server.Config{Port: cfg.Port, Logger: &log}, p)
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}

	log.Info().Str("csv", cfg.CSVPath).Str("model", client.ModelName()).Msg("Serving job posting form")
	return srv.Start(ctx)
}

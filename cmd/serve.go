package main

import (
	"context"

	"github.com/desertthunder/wrapped/internal/server"
	"github.com/urfave/cli/v3"
)

// Serve runs the HTTP API until the process is interrupted.
func (r *Runner) Serve(ctx context.Context, cmd *cli.Command) error {
	cfg := r.config.Server
	if host := cmd.String("host"); host != "" {
		cfg.Host = host
	}
	if port := cmd.Int("port"); port != 0 {
		cfg.Port = int(port)
	}

	fetcher, err := r.Fetcher(ctx)
	if err != nil {
		return err
	}

	srv := server.New(server.Options{
		Addr:          cfg.Addr(),
		ProfileDomain: r.config.Session.ProfileDomain,
		RateLimit:     cfg.RateLimit,
		Burst:         cfg.Burst,
	}, fetcher, r.logger)

	return srv.ListenAndServe(ctx)
}

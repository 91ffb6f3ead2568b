package main

import (
	"context"
	"fmt"

	"github.com/desertthunder/wrapped/internal/formatter"
	"github.com/desertthunder/wrapped/internal/session"
	"github.com/desertthunder/wrapped/internal/shared"
	"github.com/urfave/cli/v3"
)

// Wrapped generates the summary for one profile link and prints or saves its share card.
func (r *Runner) Wrapped(ctx context.Context, cmd *cli.Command) error {
	raw := cmd.StringArg("url")
	if raw == "" {
		return fmt.Errorf("%w: profile url is required", shared.ErrMissingArgument)
	}

	profileURL, err := session.ValidateProfileURL(raw, r.config.Session.ProfileDomain)
	if err != nil {
		return err
	}

	format, err := formatter.ParseFormat(cmd.String("format"))
	if err != nil {
		return err
	}

	fetcher, err := r.Fetcher(ctx)
	if err != nil {
		return err
	}

	r.logger.Info("generating wrapped", "profile", profileURL, "provider", fetcher.Name())
	summary, err := fetcher.Fetch(ctx, profileURL)
	if err != nil {
		return err
	}

	if dir := cmd.String("output"); dir != "" {
		path, err := formatter.WriteShareCard(dir, summary, format)
		if err != nil {
			return err
		}
		r.logger.Info("share card saved", "path", path)
		return r.writePlain("%s\n", path)
	}

	if format == formatter.JSON {
		return r.writeJSON(summary, true)
	}

	data, err := formatter.Export(summary, format)
	if err != nil {
		return err
	}
	return r.writePlain("%s", data)
}

package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"

	"github.com/urfave/cli/v2"

	"github.com/heartmarshall/quizbank-backend/internal/app"
	"github.com/heartmarshall/quizbank-backend/internal/config"
	"github.com/heartmarshall/quizbank-backend/internal/domain"
	"github.com/heartmarshall/quizbank-backend/internal/service/importer"
)

func extractAction(c *cli.Context) error {
	format := c.String("output")
	if format != formatJSON && format != formatYAML {
		return fmt.Errorf("unknown output format %q (want json or yaml)", format)
	}

	input, err := readInput(c)
	if err != nil {
		return err
	}

	return withServices(c, func(ctx context.Context, svcs *app.Services) error {
		result, err := svcs.Importer.Preview(ctx, input)
		if err != nil {
			return err
		}
		return writePreview(c.App.Writer, format, result)
	})
}

func importAction(c *cli.Context) error {
	input, err := readInput(c)
	if err != nil {
		return err
	}
	if input.Source == "" && c.String("file") != "-" {
		input.Source = filepath.Base(c.String("file"))
	}

	return withServices(c, func(ctx context.Context, svcs *app.Services) error {
		result, err := svcs.Importer.Import(ctx, input)
		if result != nil {
			writeOutcomes(c.App.Writer, result)
		}
		return err
	})
}

func readInput(c *cli.Context) (importer.ImportInput, error) {
	path := c.String("file")

	var (
		data []byte
		err  error
	)
	if path == "-" {
		data, err = io.ReadAll(c.App.Reader)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return importer.ImportInput{}, fmt.Errorf("read %s: %w", path, err)
	}

	input := importer.ImportInput{
		Source: c.String("source"),
		Text:   string(data),
		Format: domain.SourceFormatText,
	}
	if c.Bool("html") {
		input.Format = domain.SourceFormatHTML
	}
	return input, nil
}

// withServices loads configuration, wires the services and runs fn with a
// context cancelled on interrupt. Logs go to stderr.
func withServices(c *cli.Context, fn func(ctx context.Context, svcs *app.Services) error) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	logger := app.NewLogger(cfg.Log)

	ctx, stop := signal.NotifyContext(c.Context, os.Interrupt)
	defer stop()

	svcs, err := app.NewServices(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer func() {
		if err := svcs.Close(); err != nil {
			logger.Error("close resources", slog.String("error", err.Error()))
		}
	}()

	return fn(ctx, svcs)
}

// Package inspect parses inspect command flags and launches a session.
package inspect

import (
	"context"
	"flag"
	"io"

	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"

	entrypoint "github.com/louisbranch/closerlook/internal/platform/cmd"
	"github.com/louisbranch/closerlook/internal/platform/logging"
	"github.com/louisbranch/closerlook/internal/services/inspection/app"
)

// Version is reported on traces; release builds set it with -ldflags.
var Version = "dev"

// ParseConfig parses environment and flags into app.Config.
func ParseConfig(fs *flag.FlagSet, args []string) (app.Config, error) {
	var cfg app.Config
	if err := entrypoint.ParseConfig(&cfg); err != nil {
		return app.Config{}, err
	}
	cfg.BindFlags(fs)
	if err := entrypoint.ParseArgs(fs, args); err != nil {
		return app.Config{}, err
	}
	return cfg, nil
}

// Run plays one interactive session on in and out.
func Run(ctx context.Context, cfg app.Config, in io.Reader, out io.Writer) error {
	logger, err := logging.New(cfg.LogMode)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	logger = logger.With(zap.String("service", entrypoint.ServiceInspect))
	options := entrypoint.RunOptions{
		Logger:  logger,
		Version: Version,
		Attributes: []attribute.KeyValue{
			attribute.String("closerlook.locale", cfg.Locale),
			attribute.Bool("closerlook.saves", cfg.SavePath != ""),
		},
	}
	return entrypoint.RunWithTelemetryAndOptions(ctx, entrypoint.ServiceInspect, options, func(ctx context.Context) error {
		return app.Run(ctx, cfg, in, out, logger)
	})
}

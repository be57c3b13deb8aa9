package app

import (
	"context"
	"fmt"
	"io"

	"go.uber.org/zap"

	"github.com/louisbranch/closerlook/internal/random"
	"github.com/louisbranch/closerlook/internal/services/inspection/domain/engine"
	"github.com/louisbranch/closerlook/internal/services/inspection/i18n"
	"github.com/louisbranch/closerlook/internal/services/inspection/scene"
	"github.com/louisbranch/closerlook/internal/services/inspection/storage"
	"github.com/louisbranch/closerlook/internal/services/inspection/storage/sqlite"
)

// Run builds the engine from cfg, loads the scene, opens the save store and
// plays until the input ends.
//
// Seed precedence: cfg.Seed, then the scene's seed, then a random one.
func Run(ctx context.Context, cfg Config, in io.Reader, out io.Writer, log *zap.Logger) error {
	if log == nil {
		log = zap.NewNop()
	}
	bundle, err := i18n.Load()
	if err != nil {
		return fmt.Errorf("load messages: %w", err)
	}
	seed, err := random.SeedOr(cfg.Seed)
	if err != nil {
		return err
	}
	e, err := engine.New(engine.Config{
		Messages: bundle,
		Locale:   cfg.Locale,
		Seed:     seed,
		Logger:   log.Named("engine"),
	})
	if err != nil {
		return err
	}

	sc, err := loadScene(cfg.ScenePath)
	if err != nil {
		return err
	}
	if err := sc.Apply(e); err != nil {
		return fmt.Errorf("apply scene: %w", err)
	}
	if cfg.Seed != 0 {
		e.SetSeed(cfg.Seed)
	}

	var store storage.SaveStore
	if cfg.SavePath != "" {
		sqliteStore, err := sqlite.Open(cfg.SavePath)
		if err != nil {
			return fmt.Errorf("open save store: %w", err)
		}
		defer func() {
			if err := sqliteStore.Close(); err != nil {
				log.Warn("close save store", zap.Error(err))
			}
		}()
		store = sqliteStore
	}

	log.Info("session starting",
		zap.String("scene", sc.Name),
		zap.Int("objects", len(sc.Objects)),
		zap.Int64("seed", e.Seed()),
		zap.String("locale", cfg.Locale),
		zap.Bool("saves", store != nil))

	session, err := NewSession(Options{
		Engine:       e,
		Store:        store,
		Messages:     bundle,
		Locale:       cfg.Locale,
		Logger:       log.Named("session"),
		Out:          out,
		RecentWindow: cfg.RecentWindow,
	})
	if err != nil {
		return err
	}
	if err := session.Run(ctx, in); err != nil {
		return err
	}
	log.Info("session ended")
	return nil
}

func loadScene(path string) (*scene.Scene, error) {
	if path == "" {
		return scene.Demo()
	}
	return scene.LoadFile(path)
}

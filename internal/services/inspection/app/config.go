package app

import (
	"flag"

	"github.com/louisbranch/closerlook/internal/platform/logging"
)

// Config holds the session settings. Env tags are read under the
// CLOSERLOOK_ prefix.
type Config struct {
	// Seed pins procedural detail. Zero picks a random seed unless the scene
	// file pins one.
	Seed   int64  `env:"SEED"`
	Locale string `env:"LOCALE" envDefault:"en-US"`
	// ScenePath selects a YAML scene; empty plays the built-in study.
	ScenePath string `env:"SCENE_PATH"`
	// SavePath is the SQLite save database; empty disables saving.
	SavePath string `env:"SAVE_PATH"`
	LogMode  string `env:"LOG_MODE" envDefault:"dev"`
	// RecentWindow is how many game seconds count as "recently examined".
	RecentWindow float64 `env:"RECENT_WINDOW" envDefault:"300"`
}

// BindFlags registers flags that override the env-loaded values in cfg.
func (cfg *Config) BindFlags(fs *flag.FlagSet) {
	fs.Int64Var(&cfg.Seed, "seed", cfg.Seed, "procedural detail seed (0 = random)")
	fs.StringVar(&cfg.Locale, "locale", cfg.Locale, "message locale")
	fs.StringVar(&cfg.ScenePath, "scene", cfg.ScenePath, "scene YAML file (empty = built-in study)")
	fs.StringVar(&cfg.SavePath, "saves", cfg.SavePath, "SQLite save database (empty = saving disabled)")
	fs.StringVar(&cfg.LogMode, "log", cfg.LogMode, "log mode: "+logging.ModeDev+", "+logging.ModeDebug+", "+logging.ModeProd+" or "+logging.ModeOff)
	fs.Float64Var(&cfg.RecentWindow, "recent", cfg.RecentWindow, "game seconds that count as recent")
}

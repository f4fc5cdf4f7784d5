// Package bench parses bench command flags and runs the evaluation
// harness over the built-in and scripted strategies.
package bench

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/louisbranch/wordlebench/internal/baseline"
	"github.com/louisbranch/wordlebench/internal/harness"
	entrypoint "github.com/louisbranch/wordlebench/internal/platform/cmd"
	"github.com/louisbranch/wordlebench/internal/strategy"
	"github.com/louisbranch/wordlebench/internal/strategy/luastrat"
)

// Config holds bench command configuration.
type Config struct {
	Words       int    `env:"WORDLEBENCH_WORDS" envDefault:"100"`
	All         bool   `env:"WORDLEBENCH_ALL"`
	Verbose     bool   `env:"WORDLEBENCH_VERBOSE"`
	Debug       bool   `env:"WORDLEBENCH_DEBUG"`
	DataDir     string `env:"WORDLEBENCH_DATA_DIR"`
	LuaScript   string `env:"WORDLEBENCH_LUA_SCRIPT"`
	LuaHardmode bool   `env:"WORDLEBENCH_LUA_HARDMODE"`
	Baseline    string `env:"WORDLEBENCH_BASELINE"`
	SaveAs      string `env:"WORDLEBENCH_SAVE_AS"`
	Overwrite   bool   `env:"WORDLEBENCH_OVERWRITE"`
	Seed        int64  `env:"WORDLEBENCH_SEED"`
}

// ParseConfig parses environment and flags into a Config.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	if err := entrypoint.ParseConfig(&cfg); err != nil {
		return Config{}, err
	}
	fs.IntVar(&cfg.Words, "n", cfg.Words, "Number of random answers to test")
	fs.BoolVar(&cfg.All, "all", cfg.All, "Test every answer in the list")
	fs.BoolVar(&cfg.Verbose, "verbose", cfg.Verbose, "Log progress during the run")
	fs.BoolVar(&cfg.Debug, "debug", cfg.Debug, "Run sequentially and recover panicking strategies")
	fs.StringVar(&cfg.DataDir, "data-dir", cfg.DataDir, "Directory holding the baseline database")
	fs.StringVar(&cfg.LuaScript, "lua", cfg.LuaScript, "Path to a Lua strategy script to include")
	fs.BoolVar(&cfg.LuaHardmode, "lua-hardmode", cfg.LuaHardmode, "Run the Lua strategy in hardmode")
	fs.StringVar(&cfg.Baseline, "baseline", cfg.Baseline, "Compare against a saved baseline instead of this run's first strategy")
	fs.StringVar(&cfg.SaveAs, "save", cfg.SaveAs, "Save the first strategy's summary under this name")
	fs.BoolVar(&cfg.Overwrite, "overwrite", cfg.Overwrite, "Allow -save to replace an existing baseline")
	fs.Int64Var(&cfg.Seed, "seed", cfg.Seed, "Seed for the answer sampler (0 means random)")
	if err := entrypoint.ParseArgs(fs, args); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// storagePath resolves the baseline database location for this run.
func storagePath(cfg Config) string {
	if cfg.DataDir != "" {
		return filepath.Join(cfg.DataDir, "baselines.db")
	}
	return baseline.DefaultPath()
}

// build assembles a configured harness and its backing store.
func build(cfg Config) (*harness.Harness, *baseline.Store, error) {
	store, err := baseline.Open(storagePath(cfg))
	if err != nil {
		return nil, nil, fmt.Errorf("open baseline store: %w", err)
	}

	h := harness.New().WithStore(store).Overwrite(cfg.Overwrite)
	if cfg.All {
		h.TestAll()
	} else {
		h.TestNum(cfg.Words)
	}
	if cfg.Verbose {
		h.Verbose()
	}
	if cfg.Seed != 0 {
		h.Seed(cfg.Seed)
	}

	h.AddStrategyPersisted(strategy.Stupid{}, cfg.SaveAs)
	h.AddStrategy(strategy.NewBasic())
	h.AddStrategy(strategy.Common{})

	if cfg.LuaScript != "" {
		script, err := luastrat.FromFile(cfg.LuaScript)
		if err != nil {
			_ = store.Close()
			return nil, nil, err
		}
		if cfg.LuaHardmode {
			script = script.WithHardmode()
		}
		h.AddStrategy(script)
	}

	if cfg.Baseline != "" {
		if err := h.LoadBaseline(cfg.Baseline); err != nil {
			_ = store.Close()
			return nil, nil, err
		}
	} else {
		if err := h.UseBaseline(0); err != nil {
			_ = store.Close()
			return nil, nil, err
		}
	}

	return h, store, nil
}

// Run executes one harness run and prints the report to stdout.
func Run(ctx context.Context, cfg Config) error {
	return entrypoint.RunWithTelemetry(ctx, entrypoint.ServiceBench, func(ctx context.Context) error {
		h, store, err := build(cfg)
		if err != nil {
			return err
		}
		defer store.Close()

		var record *harness.Record
		if cfg.Debug {
			record, err = h.DebugRun(ctx)
		} else {
			record, err = h.Run(ctx)
		}
		if err != nil {
			return err
		}
		return record.PrintReport(os.Stdout)
	})
}

// SPDX-License-Identifier: MIT

// Command fairground samples a fairground from an attraction catalog,
// simulates a patron population, and prints how much the population likes
// each attraction.
//
//	fairground -catalog data/rides.json -seed 42
//	fairground -config run.yaml all
//	fairground -catalog data/rides.json -export rides.db
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/charmbracelet/log"

	"github.com/katalvlaran/fairground/catalog"
	"github.com/katalvlaran/fairground/config"
	"github.com/katalvlaran/fairground/fairground"
	"github.com/katalvlaran/fairground/patron"
	"github.com/katalvlaran/fairground/preference"
	"github.com/katalvlaran/fairground/report"
	"github.com/katalvlaran/fairground/rng"
	"github.com/katalvlaran/fairground/stats"
)

func main() {
	var (
		cfgPath     = flag.String("config", "", "YAML run configuration")
		catalogPath = flag.String("catalog", config.DefaultCatalog, "attraction catalog (.json, .json.zst, .db)")
		seed        = flag.Uint64("seed", 0, "random seed (0 = default seed)")
		population  = flag.Int("population", config.DefaultPopulation, "number of simulated patrons")
		all         = flag.Bool("all", false, "use every attraction instead of a random half")
		workers     = flag.Int("workers", config.DefaultWorkers, "attractions evaluated concurrently")
		noise       = flag.Float64("noise", config.DefaultNoiseScale, "preference noise standard deviation")
		logLevel    = flag.String("log-level", config.DefaultLogLevel, "debug, info, warn or error")
		export      = flag.String("export", "", "write the catalog to this path (.json, .json.zst, .db) and exit")
	)
	flag.Parse()

	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		TimeFormat:      time.Kitchen,
		Prefix:          "fairground",
	})

	cfg := config.Default()
	if *cfgPath != "" {
		var err error
		if cfg, err = config.Load(*cfgPath); err != nil {
			logger.Fatal("load config", "path", *cfgPath, "err", err)
		}
	}
	// Explicit flags win over the file.
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "catalog":
			cfg.Catalog = *catalogPath
		case "seed":
			cfg.Seed = *seed
		case "population":
			cfg.Population = *population
		case "all":
			cfg.FullSet = *all
		case "workers":
			cfg.Workers = *workers
		case "noise":
			cfg.NoiseScale = *noise
		case "log-level":
			cfg.LogLevel = *logLevel
		}
	})
	if flag.Arg(0) == "all" {
		cfg.FullSet = true
	}
	if err := cfg.Validate(); err != nil {
		logger.Fatal("invalid configuration", "err", err)
	}
	level, err := log.ParseLevel(cfg.LogLevel)
	if err != nil {
		logger.Fatal("invalid log level", "level", cfg.LogLevel, "err", err)
	}
	logger.SetLevel(level)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if *export != "" {
		err = exportCatalog(ctx, cfg.Catalog, *export, logger)
	} else {
		err = run(ctx, cfg, report.New(os.Stdout, report.WithIndent(2)), logger)
	}
	if err != nil {
		logger.Fatal("fairground failed", "err", err)
	}
}

// run executes one demo: sample, simulate, aggregate, report.
// Every random draw comes from one stream seeded with cfg.Seed, consumed in
// this order: fairground permutation, patron Beta draws, one derived
// substream per attraction.
func run(ctx context.Context, cfg config.Config, out *report.Printer, logger *log.Logger) error {
	cat, err := catalog.Open(ctx, cfg.Catalog)
	if err != nil {
		return err
	}
	logger.Debug("catalog loaded", "path", cfg.Catalog, "attractions", cat.Len())

	src := rng.New(cfg.Seed)
	fg, err := fairground.Sample(cat, src,
		fairground.WithFullSetIf(cfg.FullSet),
		fairground.WithRequireNonEmpty(),
	)
	if err != nil {
		return err
	}
	names, err := fg.Names(cat)
	if err != nil {
		return err
	}
	if err = out.Names(names); err != nil {
		return err
	}
	logger.Info("fairground sampled", "seed", cfg.Seed, "full_set", cfg.FullSet, "attractions", fg.Len())

	start := time.Now()
	pop, err := patron.Generate(cfg.Population, src)
	if err != nil {
		return err
	}
	logger.Debug("population generated", "patrons", pop.Rows(), "elapsed", time.Since(start))

	start = time.Now()
	sum, err := stats.Aggregate(ctx, pop, fg.Features, src,
		stats.WithWorkers(cfg.Workers),
		stats.WithEvaluatorOptions(preference.WithNoiseScale(cfg.NoiseScale)),
	)
	if err != nil {
		return err
	}
	logger.Info("preferences evaluated",
		"patrons", sum.Population(),
		"pairs", sum.Population()*sum.Attractions(),
		"workers", cfg.Workers,
		"elapsed", time.Since(start),
	)

	if err = out.Histogram(sum.HistogramShares()); err != nil {
		return err
	}

	return out.Rates(names, sum.LikeRates())
}

// exportCatalog converts the catalog at from into the format implied by to.
func exportCatalog(ctx context.Context, from, to string, logger *log.Logger) error {
	cat, err := catalog.Open(ctx, from)
	if err != nil {
		return err
	}
	if err = catalog.WriteFile(ctx, to, cat); err != nil {
		return fmt.Errorf("export %s: %w", to, err)
	}
	logger.Info("catalog exported", "from", from, "to", to, "attractions", cat.Len())

	return nil
}

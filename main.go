package main

import (
	"fmt"
	"os"

	"github.com/caarlos0/env/v11"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"coinwalk/engine"
	"coinwalk/metrics"
	"coinwalk/strategy"
)

type config struct {
	MaxPosition   int    `env:"COINWALK_MAX_POSITION" envDefault:"50"`
	FaceCount     int    `env:"COINWALK_FACE_COUNT" envDefault:"6"`
	NumMarkers    int    `env:"COINWALK_NUM_MARKERS" envDefault:"3"`
	TrialCount    int    `env:"COINWALK_TRIAL_COUNT" envDefault:"200000"`
	StepBudget    int    `env:"COINWALK_STEP_BUDGET" envDefault:"0"`
	SearchCeiling int    `env:"COINWALK_SEARCH_CEILING" envDefault:"0"`
	Mode          string `env:"COINWALK_SUCCESS_MODE" envDefault:"any"`
	MinGap        int    `env:"COINWALK_MIN_GAP" envDefault:"0"`
	Seed          uint64 `env:"COINWALK_SEED" envDefault:"0"`
	Goroutines    int    `env:"COINWALK_GOROUTINES" envDefault:"0"`
	ResultsDir    string `env:"COINWALK_RESULTS_DIR"`
	Top           int    `env:"COINWALK_TOP" envDefault:"10"`
}

func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	var cfg config
	if err := env.Parse(&cfg); err != nil {
		log.Fatal().Err(err).Msg("failed to parse environment")
	}

	mode, err := strategy.ParseMode(cfg.Mode)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to parse success mode")
	}

	engineConfig := engine.Config{
		MaxPosition:   cfg.MaxPosition,
		FaceCount:     cfg.FaceCount,
		NumMarkers:    cfg.NumMarkers,
		TrialCount:    cfg.TrialCount,
		StepBudget:    cfg.StepBudget,
		SearchCeiling: cfg.SearchCeiling,
		Mode:          mode,
		Seed:          cfg.Seed,
		Goroutines:    cfg.Goroutines,
	}
	if cfg.MinGap > 0 {
		engineConfig.Constraints = []strategy.Constraint{strategy.MinGap(cfg.MinGap)}
	}

	result, err := engine.Run(engineConfig)
	if err != nil {
		log.Fatal().Err(err).Msg("run failed")
	}
	if result.Degenerate {
		log.Warn().Msg("scores below are statistically degenerate; increase COINWALK_TRIAL_COUNT")
	}

	top := cfg.Top
	if top > len(result.Ranking) {
		top = len(result.Ranking)
	}
	fmt.Printf("Top %d placements (%s-hit, %d trials, seed %d):\n",
		top, mode, cfg.TrialCount, result.Seed)
	for i := 0; i < top; i++ {
		scored := result.Ranking[i]
		fmt.Printf("%3d. %v  %.4f\n", i+1, scored.Positions, scored.Probability)
	}

	if cfg.ResultsDir != "" {
		if err := writeResults(cfg.ResultsDir, result); err != nil {
			log.Fatal().Err(err).Msg("failed to write results")
		}
	}
}

func writeResults(resultsDir string, result *engine.Result) error {
	writer, err := metrics.NewWriter(resultsDir)
	if err != nil {
		return err
	}

	used := result.Config
	err = writer.WriteRunConfig(metrics.RunConfig{
		MaxPosition:   used.MaxPosition,
		FaceCount:     used.FaceCount,
		NumMarkers:    used.NumMarkers,
		TrialCount:    used.TrialCount,
		StepBudget:    used.StepBudget,
		SearchCeiling: used.SearchCeiling,
		Mode:          used.Mode.String(),
		Seed:          result.Seed,
		Goroutines:    used.Goroutines,
	})
	if err != nil {
		return err
	}

	records := make([]metrics.PlacementRecord, len(result.Ranking))
	for i, scored := range result.Ranking {
		records[i] = metrics.PlacementRecord{
			Rank:        i + 1,
			Positions:   scored.Positions,
			Probability: scored.Probability,
		}
	}
	if err := writer.WritePlacements(records); err != nil {
		return err
	}

	log.Info().Str("dir", writer.BaseDir()).Msg("wrote results")
	return nil
}

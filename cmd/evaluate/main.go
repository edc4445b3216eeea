package main

import (
	"context"
	"flag"
	"os"

	"github.com/rs/zerolog/log"

	"github.com/tensorplex-labs/reideval/internal/bundle"
	"github.com/tensorplex-labs/reideval/internal/config"
	"github.com/tensorplex-labs/reideval/internal/reid"
	"github.com/tensorplex-labs/reideval/internal/utils/logger"
)

func main() {
	bundlePath := flag.String("bundle", "", "path to the evaluation bundle (.json or .json.zst)")
	outPath := flag.String("out", "", "optional path for the JSON report (.zst compresses it)")
	perQuery := flag.Bool("per-query", false, "report per-query AP instead of the mean")

	logger.Init()
	defer func() { _ = logger.Logger.Sync() }()

	if *bundlePath == "" {
		flag.Usage()
		log.Fatal().Msg("-bundle is required")
	}

	cfg, err := config.LoadConfig(context.Background())
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load config")
	}

	evaluator, err := reid.NewRankEvaluatorFromConfig[bundle.Label, bundle.Label](cfg.EvalEnvConfig)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create evaluator")
	}

	b, err := bundle.Load(*bundlePath)
	if err != nil {
		log.Fatal().Err(err).Str("path", *bundlePath).Msg("Failed to load bundle")
	}

	result, err := evaluator.Evaluate(b.Matrix(), b.QueryIDs, b.GalleryIDs, b.QueryCams, b.GalleryCams, !*perQuery)
	if err != nil {
		log.Fatal().Err(err).Msg("Evaluation failed")
	}

	if result.Averaged {
		log.Info().Float64("mAP", result.Score).Int("valid_queries", result.NumValid()).
			Int("queries", len(result.AP)).Str("method", result.Method.String()).
			Msgf("mAP: %.4f", result.Score)
	} else {
		for i, ap := range result.AP {
			log.Info().Int("query", i).Bool("valid", result.Valid[i]).Float64("ap", ap).Msg("query AP")
		}
	}

	if cfg.Plot {
		reid.PlotQueryAPTerminal(os.Stdout, result.AP, result.Valid, "Per-query AP")
	}

	if *outPath != "" {
		if err := bundle.WriteReport(*outPath, bundle.NewReport(result)); err != nil {
			log.Fatal().Err(err).Str("path", *outPath).Msg("Failed to write report")
		}
		log.Info().Str("path", *outPath).Msg("Report written")
	}
}

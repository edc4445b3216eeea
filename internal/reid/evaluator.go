// Package reid evaluates person re-identification rankings with mean
// Average Precision over a query x gallery distance matrix.
package reid

import (
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/mat"

	"github.com/tensorplex-labs/reideval/internal/config"
	"github.com/tensorplex-labs/reideval/internal/utils/logger"
)

var methodAdvisoryOnce sync.Once

type RankEvaluator[I, C comparable] struct {
	Method  APMethod
	Workers int
}

type Option func(*options)

type options struct {
	method  APMethod
	workers int
	err     error
}

func WithMethod(method APMethod) Option {
	return func(o *options) {
		o.method = method
	}
}

// WithWorkers sets how many query rows are evaluated concurrently.
// Values below 1 mean sequential evaluation.
func WithWorkers(workers int) Option {
	return func(o *options) {
		o.workers = workers
	}
}

// WithConfig applies the environment configuration. An unknown AP method
// keeps the default and is reported by NewRankEvaluatorFromConfig.
func WithConfig(cfg config.EvalEnvConfig) Option {
	return func(o *options) {
		method, err := ParseAPMethod(cfg.APMethod)
		if err != nil {
			o.err = err
			return
		}
		o.method = method
		o.workers = cfg.EffectiveWorkers()
	}
}

func buildOptions(opts []Option) options {
	o := options{
		method:  DefaultMethod,
		workers: DefaultWorkers,
	}
	for _, opt := range opts {
		opt(&o)
	}
	if o.workers < 1 {
		o.workers = 1
	}
	return o
}

func NewRankEvaluator[I, C comparable](opts ...Option) *RankEvaluator[I, C] {
	o := buildOptions(opts)
	return &RankEvaluator[I, C]{
		Method:  o.method,
		Workers: o.workers,
	}
}

// NewRankEvaluatorFromConfig is NewRankEvaluator(WithConfig(cfg)) that fails
// on an unparseable AP method instead of falling back to the default.
func NewRankEvaluatorFromConfig[I, C comparable](cfg config.EvalEnvConfig) (*RankEvaluator[I, C], error) {
	o := buildOptions([]Option{WithConfig(cfg)})
	if o.err != nil {
		return nil, o.err
	}
	return &RankEvaluator[I, C]{
		Method:  o.method,
		Workers: o.workers,
	}, nil
}

// MeanAP evaluates with default options and returns the mean AP over valid queries.
func MeanAP[I, C comparable](distmat mat.Matrix, queryIDs, galleryIDs []I, queryCams, galleryCams []C) (float64, error) {
	return NewRankEvaluator[I, C]().MeanAP(distmat, queryIDs, galleryIDs, queryCams, galleryCams)
}

// Evaluate ranks the gallery for every query and scores it. With average set
// the result's Score is the mean AP over valid queries; the per-query
// vectors are filled in either way.
func (e *RankEvaluator[I, C]) Evaluate(
	distmat mat.Matrix,
	queryIDs, galleryIDs []I,
	queryCams, galleryCams []C,
	average bool,
) (*Result, error) {
	startTime := time.Now()

	ap, valid, err := e.PerQuery(distmat, queryIDs, galleryIDs, queryCams, galleryCams)
	if err != nil {
		return nil, err
	}

	result := &Result{
		AP:     ap,
		Valid:  valid,
		Method: e.Method,
	}
	if average {
		score, err := MeanOfValid(ap, valid)
		if err != nil {
			return nil, err
		}
		result.Score = score
		result.Averaged = true
	}

	logger.Sugar().Infow("Evaluated re-id ranking",
		"queries", len(ap),
		"validQueries", valid.Count(),
		"method", e.Method.String(),
		"averaged", average,
		"score", result.Score,
		"elapsed", time.Since(startTime),
	)
	return result, nil
}

// MeanAP is Evaluate with average set, returning only the score.
func (e *RankEvaluator[I, C]) MeanAP(distmat mat.Matrix, queryIDs, galleryIDs []I, queryCams, galleryCams []C) (float64, error) {
	result, err := e.Evaluate(distmat, queryIDs, galleryIDs, queryCams, galleryCams, true)
	if err != nil {
		return 0, err
	}
	return result.Score, nil
}

// PerQuery returns the AP of every query and whether it had a valid true
// match. Invalid queries hold an AP of 0.
func (e *RankEvaluator[I, C]) PerQuery(
	distmat mat.Matrix,
	queryIDs, galleryIDs []I,
	queryCams, galleryCams []C,
) (APVector, ValidityMask, error) {
	m, n, err := validateInputs(distmat, queryIDs, galleryIDs, queryCams, galleryCams)
	if err != nil {
		return nil, nil, err
	}

	methodAdvisoryOnce.Do(func() {
		log.Info().Str("method", e.Method.String()).
			Msg("Average precision rule in use; scores computed with another rule are not comparable")
	})
	log.Debug().Int("queries", m).Int("gallery", n).Int("workers", e.Workers).Msg("Evaluating queries")

	ap := make(APVector, m)
	valid := make(ValidityMask, m)

	evalRow := func(i int) {
		ranking := rankQuery(distmat, i, queryIDs[i], queryCams[i], galleryIDs, galleryCams)
		if !ranking.hasMatch() {
			log.Trace().Int("query", i).Msg("Query has no valid match, skipping")
			return
		}
		valid[i] = true
		ap[i] = AveragePrecision(ranking.yTrue, ranking.yScore, e.Method)
		log.Trace().Int("query", i).Float64("ap", ap[i]).Msg("Query scored")
	}

	if e.Workers <= 1 || m < 2 {
		for i := range m {
			evalRow(i)
		}
		return ap, valid, nil
	}

	var g errgroup.Group
	g.SetLimit(e.Workers)
	for i := range m {
		g.Go(func() error {
			evalRow(i)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}
	return ap, valid, nil
}

// MeanOfValid averages ap over the valid queries. Invalid entries are
// expected to be 0 and only valid queries count in the denominator.
func MeanOfValid(ap APVector, valid ValidityMask) (float64, error) {
	if len(ap) != len(valid) {
		return 0, fmt.Errorf("ap has %d entries, valid has %d: %w", len(ap), len(valid), ErrShapeMismatch)
	}
	count := valid.Count()
	if count == 0 {
		return 0, fmt.Errorf("%d queries, none with a valid match: %w", len(ap), ErrNoValidQuery)
	}
	return ap.Sum() / float64(count), nil
}

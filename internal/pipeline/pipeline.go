// Package pipeline orchestrates a full analysis run: change detection,
// dependency and architecture graph construction, importance ranking,
// skeleton building, optional prose generation with consistency checks, and
// state persistence. Each run is strictly sequential; every stage consumes
// the whole output of the previous one.
package pipeline

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	lru "github.com/hashicorp/golang-lru/v2"

	"repoatlas/internal/analysis"
	"repoatlas/internal/architecture"
	"repoatlas/internal/errors"
	"repoatlas/internal/graph"
	"repoatlas/internal/incremental"
	"repoatlas/internal/logging"
	"repoatlas/internal/skeleton"
	"repoatlas/internal/validate"
)

// ProseGenerator produces entity descriptions for a skeleton. The schema of
// the prose is owned by the generator; the engine only validates it against
// the skeleton's entity set. Generation is the pipeline's one asynchronous
// boundary: a failed or cancelled call fails the whole run, partial prose is
// never merged.
type ProseGenerator interface {
	Generate(ctx context.Context, sk *skeleton.Skeleton) (*validate.Prose, error)
}

// Input is one run's worth of pre-discovered, pre-parsed material. Order is
// the discovery-ordered path list; Parsed maps path to parse output (nil
// for unparseable files); Contents holds raw bytes for hashing.
type Input struct {
	RepoKey  string
	Commit   string
	Order    []string
	Parsed   map[string]*analysis.ParsedFile
	Contents map[string][]byte
}

// Result is everything a run produces.
type Result struct {
	RunID        string                    `json:"runId"`
	Changes      *incremental.ChangeReport `json:"changes"`
	Graph        *graph.Graph              `json:"graph"`
	Index        []analysis.FileIndexEntry `json:"index"`
	Architecture *architecture.Graph       `json:"architecture"`
	Skeleton     *skeleton.Skeleton        `json:"skeleton"`
	Prose        *validate.Prose           `json:"prose,omitempty"`
	Validation   *validate.Report          `json:"validation,omitempty"`

	// State is the snapshot persisted for the next run
	State *incremental.State `json:"state,omitempty"`

	// CacheHit marks a result replayed from the in-process cache
	CacheHit bool `json:"cacheHit"`
}

// Options tunes a pipeline engine. Zero values fall back to defaults.
type Options struct {
	GraphOptions   graph.Options
	SkeletonLimits skeleton.Limits

	// CacheSize is the number of results kept in the in-process cache
	CacheSize int
}

const defaultCacheSize = 64

// Engine runs analyses. Stores and generators are injected ports; the
// engine itself holds no persistent state beyond its result cache.
type Engine struct {
	store  incremental.StateStore
	prose  ProseGenerator
	logger *logging.Logger
	opts   Options

	cache *lru.Cache[string, *Result]
}

// NewEngine creates an engine. store must be non-nil; prose may be nil to
// skip generation entirely.
func NewEngine(store incremental.StateStore, prose ProseGenerator, logger *logging.Logger, opts Options) (*Engine, error) {
	if store == nil {
		return nil, errors.New(errors.InvalidInput, "state store is required", nil)
	}
	if opts.GraphOptions.HubThreshold == 0 {
		opts.GraphOptions = graph.DefaultOptions()
	}
	if opts.CacheSize <= 0 {
		opts.CacheSize = defaultCacheSize
	}

	cache, err := lru.New[string, *Result](opts.CacheSize)
	if err != nil {
		return nil, errors.New(errors.InternalError, "failed to initialize result cache", err)
	}

	return &Engine{
		store:  store,
		prose:  prose,
		logger: logging.OrDiscard(logger),
		opts:   opts,
		cache:  cache,
	}, nil
}

// Run executes one full analysis. It loads the previous state, diffs, and
// rebuilds every derived structure from scratch; only the new incremental
// state outlives the run, saved through the injected store.
func (e *Engine) Run(ctx context.Context, input Input) (*Result, error) {
	if input.RepoKey == "" {
		return nil, errors.New(errors.InvalidInput, "repository key is required", nil)
	}

	current := incremental.BuildState(input.Commit, input.Order, input.Contents, symbolCounts(input.Order, input.Parsed))

	if cached, ok := e.cache.Get(cacheKey(input.RepoKey, current)); ok {
		e.logger.Debug("result cache hit", map[string]interface{}{
			"repoKey": input.RepoKey,
		})
		replay := *cached
		replay.CacheHit = true
		return &replay, nil
	}

	previous, err := e.store.Load(ctx, input.RepoKey)
	if err != nil {
		return nil, errors.New(errors.StoreUnavailable, "failed to load previous state", err)
	}

	changes := incremental.DetectChanges(current, previous)
	e.logger.Info("change detection complete", map[string]interface{}{
		"repoKey":        input.RepoKey,
		"added":          len(changes.Added),
		"modified":       len(changes.Modified),
		"deleted":        len(changes.Deleted),
		"unchanged":      len(changes.Unchanged),
		"fullReanalysis": changes.ShouldFullReanalyze,
	})

	result := &Result{
		RunID:   uuid.NewString(),
		Changes: changes,
		State:   current,
	}

	if changes.ChangedCount() == 0 && previous != nil {
		// Nothing moved since last run; skip the rebuild.
		e.logger.Debug("no changes, skipping analysis", map[string]interface{}{
			"repoKey": input.RepoKey,
		})
		return result, nil
	}

	result.Graph = graph.Build(input.Parsed, input.Order, e.opts.GraphOptions)
	result.Index = analysis.Rank(input.Order, input.Parsed, result.Graph.InDegrees())
	result.Architecture = architecture.Build(input.Parsed, result.Graph, e.opts.GraphOptions)
	result.Skeleton = skeleton.Build(result.Index, input.Parsed, e.opts.SkeletonLimits)

	if e.prose != nil {
		prose, err := e.prose.Generate(ctx, result.Skeleton)
		if err != nil {
			return nil, errors.New(errors.ProseGenerationFailed, "prose generation failed", err)
		}
		result.Prose = prose
		result.Validation = validate.Check(result.Skeleton, prose)
		if !result.Validation.Passed {
			e.logger.Warn("prose failed consistency validation", map[string]interface{}{
				"repoKey": input.RepoKey,
				"errors":  len(result.Validation.Errors()),
			})
		}
	}

	if err := e.store.Save(ctx, input.RepoKey, current); err != nil {
		return nil, errors.New(errors.StoreUnavailable, "failed to persist state", err)
	}

	e.cache.Add(cacheKey(input.RepoKey, current), result)
	return result, nil
}

// cacheKey fingerprints a run by repository and content hashes. Two runs
// over byte-identical file sets replay the same result.
func cacheKey(repoKey string, state *incremental.State) string {
	fp := incremental.Fingerprint(state)
	return fmt.Sprintf("%s@%s", repoKey, fp)
}

func symbolCounts(order []string, parsed map[string]*analysis.ParsedFile) map[string]int {
	counts := make(map[string]int, len(order))
	for _, p := range order {
		f := parsed[p]
		if f == nil {
			continue
		}
		counts[p] = len(f.Functions) + len(f.Classes)
	}
	return counts
}

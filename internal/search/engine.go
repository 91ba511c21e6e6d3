// Package search orchestrates the query pipeline: cache probe,
// code/text dispatch against the catalog, ranking and paging, and the
// suggestion fallback for empty results.
package search

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"log/slog"
	"strings"

	"github.com/samber/lo"

	"github.com/multaguia/multaguia/internal/cache"
	guiaerr "github.com/multaguia/multaguia/internal/errors"
	"github.com/multaguia/multaguia/internal/normalize"
	"github.com/multaguia/multaguia/internal/spell"
	"github.com/multaguia/multaguia/internal/store"
)

// Config tunes the pipeline.
type Config struct {
	// DefaultLimit is the page size used when callers pass limit <= 0
	// at the CLI surface. The pipeline itself clamps to [1, MaxResults].
	DefaultLimit int
	// MaxResults caps the page size.
	MaxResults int
}

// DefaultConfig returns production defaults.
func DefaultConfig() Config {
	return Config{DefaultLimit: 10, MaxResults: 20}
}

// Engine runs searches. It holds no per-request state and is safe for
// concurrent use.
type Engine struct {
	cfg       Config
	store     store.Store
	corrector *spell.Corrector
	cache     *cache.Smart[*Envelope]
}

// NewEngine wires the pipeline. cacheCfg bounds the response cache.
func NewEngine(cfg Config, st store.Store, corrector *spell.Corrector, cacheCfg cache.Config) *Engine {
	if cfg.DefaultLimit <= 0 {
		cfg.DefaultLimit = DefaultConfig().DefaultLimit
	}
	if cfg.MaxResults <= 0 {
		cfg.MaxResults = DefaultConfig().MaxResults
	}
	return &Engine{
		cfg:       cfg,
		store:     st,
		corrector: corrector,
		cache:     cache.New(cacheCfg, envelopeSize),
	}
}

// Cache exposes the response cache (stats, lifecycle).
func (e *Engine) Cache() *cache.Smart[*Envelope] {
	return e.cache
}

// RefreshVocabulary reloads the suggestion vocabulary and hint samples
// from the catalog. Called at startup and whenever the catalog changes.
func (e *Engine) RefreshVocabulary(ctx context.Context) error {
	terms, err := e.store.VocabularyTerms(ctx)
	if err != nil {
		return guiaerr.StoreError(err)
	}
	e.corrector.SetVocabulary(terms)

	pairs, err := e.store.SampleVocabulary(ctx, 50)
	if err != nil {
		return guiaerr.StoreError(err)
	}
	e.corrector.SetSamples(pairs)
	return nil
}

// Search runs one query through the pipeline. The envelope is always
// non-nil; err carries the classified failure when the envelope is an
// error envelope.
func (e *Engine) Search(ctx context.Context, query string, limit, skip int) (*Envelope, error) {
	limit = clamp(limit, 1, e.cfg.MaxResults)
	if skip < 0 {
		skip = 0
	}

	folded := normalize.Fold(query)
	if len([]rune(folded)) < 2 {
		return &Envelope{Results: []store.Record{}, Message: MsgTooShort},
			guiaerr.New(guiaerr.ErrCodeInputTooShort, MsgTooShort, nil)
	}

	key := fingerprint(folded, limit, skip)
	if env, ok := e.cache.Get(key); ok {
		return env, nil
	}

	codeMode := normalize.IsNumeric(folded)

	if codeMode {
		records, err := e.store.LookupByCode(ctx, folded, skip+limit)
		if err != nil {
			return e.errorEnvelope(query, err)
		}
		if len(records) > 0 {
			env := e.assemble(records, len(records), skip, limit)
			e.cache.Set(key, env)
			return env, nil
		}
		// No code matched; retry as text with the hyphen kept as a
		// word separator instead of being elided.
	}

	textTerm := folded
	if codeMode {
		textTerm = normalize.Fold(strings.ReplaceAll(query, "-", " "))
	}

	records, err := e.store.LookupByText(ctx, textTerm, skip+limit)
	if err != nil {
		return e.errorEnvelope(query, err)
	}

	// Queries mixing digits and letters can still hide a code fragment;
	// fold those matches in behind the text matches.
	if !codeMode && strings.ContainsAny(folded, "0123456789") {
		codeRecs, err := e.store.LookupByCode(ctx, strings.Map(keepDigits, folded), skip+limit)
		if err == nil {
			records = lo.UniqBy(append(records, codeRecs...), func(r store.Record) string {
				return r.Code
			})
		}
	}

	if len(records) > 0 {
		env := e.assemble(records, len(records), skip, limit)
		e.cache.Set(key, env)
		return env, nil
	}

	// Nothing found: suggest, cache briefly, answer gently.
	env := &Envelope{Results: []store.Record{}, Total: 0}
	if codeMode {
		env.Message = MsgNoneCode
	} else {
		env.Message = MsgNoneText
	}
	env.Suggestion = e.suggest(query)

	// Empty answers age out twice as fast: the catalog may be loading.
	e.cache.SetTTL(key, env, e.cache.DefaultTTL()/2)
	return env, nil
}

// assemble pages the pre-truncation match set into an envelope.
func (e *Engine) assemble(records []store.Record, total, skip, limit int) *Envelope {
	page := paginate(records, skip, limit)
	env := &Envelope{Results: page, Total: total}
	if len(page) == 0 && total > 0 {
		env.Message = MsgPastEnd
	}
	return env
}

// suggest wraps DidYouMean; corrector faults are swallowed and treated
// as "no suggestion".
func (e *Engine) suggest(query string) (suggestion string) {
	defer func() {
		if r := recover(); r != nil {
			slog.Error("sugestão falhou", slog.Any("panic", r))
			suggestion = ""
		}
	}()
	return e.corrector.DidYouMean(query)
}

// errorEnvelope converts a store failure into the gentle error shape.
// Failures are never cached.
func (e *Engine) errorEnvelope(query string, err error) (*Envelope, error) {
	classified := guiaerr.StoreError(err)
	slog.Error("falha na consulta ao catálogo",
		slog.String("query", query),
		slog.String("code", classified.Code),
		slog.String("error", err.Error()))

	return &Envelope{
		Results:    []store.Record{},
		Message:    MsgError,
		Suggestion: e.suggest(query),
	}, classified
}

// fingerprint derives the stable cache key for a request.
func fingerprint(folded string, limit, skip int) string {
	sum := sha256.Sum256([]byte(fmt.Sprintf("%s\x00%d\x00%d", folded, limit, skip)))
	return hex.EncodeToString(sum[:])
}

func paginate(records []store.Record, skip, limit int) []store.Record {
	if skip >= len(records) {
		return []store.Record{}
	}
	end := skip + limit
	if end > len(records) {
		end = len(records)
	}
	return records[skip:end]
}

func clamp(v, low, high int) int {
	if v < low {
		return low
	}
	if v > high {
		return high
	}
	return v
}

func keepDigits(r rune) rune {
	if r >= '0' && r <= '9' {
		return r
	}
	return -1
}

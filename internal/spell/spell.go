// Package spell is the layered corrector behind "did you mean".
//
// Correction tries progressively weaker strategies against the live
// catalog vocabulary: exact membership, the static misspelling
// dictionary, diacritic-folded equality, sequence-ratio similarity and
// finally bounded edit distance. The first hit wins; each layer has a
// fixed confidence ceiling so callers can threshold on quality.
package spell

import (
	"fmt"
	"strings"
	"sync/atomic"

	lru "github.com/hashicorp/golang-lru/v2"
	levenshtein "github.com/ka-weihe/fast-levenshtein"
	"github.com/samber/lo"

	"github.com/multaguia/multaguia/internal/normalize"
	"github.com/multaguia/multaguia/internal/store"
)

// Correction methods, strongest first.
const (
	MethodExact       = "exact"
	MethodDictionary  = "dictionary"
	MethodNormalized  = "normalized"
	MethodSimilarity  = "similarity"
	MethodLevenshtein = "levenshtein"
	MethodNone        = "none"
)

// Confidence ceilings per method.
const (
	confExact       = 1.0
	confDictionary  = 0.95
	confNormalized  = 0.9
	confSimilarity  = 0.8
	confLevenshtein = 0.7
)

// Options tunes the weaker correction layers.
type Options struct {
	// SimilarityThreshold is the minimum sequence ratio for the
	// similarity layer (default 0.6).
	SimilarityThreshold float64
	// MaxDistance is the edit-distance bound (default 2).
	MaxDistance int
	// ScanCap bounds how many candidates the edit-distance layer
	// compares (default 50).
	ScanCap int
	// MemoSize is the size of the correction memo cache (default 512).
	MemoSize int
}

// DefaultOptions returns the tuning used in production.
func DefaultOptions() Options {
	return Options{
		SimilarityThreshold: 0.6,
		MaxDistance:         2,
		ScanCap:             50,
		MemoSize:            512,
	}
}

// Correction is the result of correcting a single term.
type Correction struct {
	Term       string
	Confidence float64
	Method     string
}

// vocabulary is an immutable snapshot of the catalog terms. Corrector
// swaps whole snapshots atomically so readers never see a partial set.
type vocabulary struct {
	set     map[string]struct{} // lowercased entries as stored
	folded  map[string]string   // folded entry -> entry (first wins)
	entries []string            // insertion order, drives deterministic scans
}

func buildVocabulary(terms []string) *vocabulary {
	v := &vocabulary{
		set:    make(map[string]struct{}, len(terms)),
		folded: make(map[string]string, len(terms)),
	}
	for _, term := range terms {
		term = strings.ToLower(strings.TrimSpace(term))
		if len([]rune(term)) < 3 {
			continue
		}
		if _, ok := v.set[term]; ok {
			continue
		}
		v.set[term] = struct{}{}
		v.entries = append(v.entries, term)
		f := normalize.Fold(term)
		if _, ok := v.folded[f]; !ok {
			v.folded[f] = term
		}
	}
	return v
}

// Corrector corrects query terms against the live vocabulary.
// Safe for concurrent use; SetVocabulary may race with readers.
type Corrector struct {
	opts    Options
	vocab   atomic.Pointer[vocabulary]
	samples atomic.Pointer[[]store.VocabPair]
	memo    *lru.Cache[string, Correction]
}

// New creates a Corrector with an empty vocabulary.
func New(opts Options) *Corrector {
	if opts.SimilarityThreshold <= 0 {
		opts.SimilarityThreshold = DefaultOptions().SimilarityThreshold
	}
	if opts.MaxDistance <= 0 {
		opts.MaxDistance = DefaultOptions().MaxDistance
	}
	if opts.ScanCap <= 0 {
		opts.ScanCap = DefaultOptions().ScanCap
	}
	if opts.MemoSize <= 0 {
		opts.MemoSize = DefaultOptions().MemoSize
	}

	memo, _ := lru.New[string, Correction](opts.MemoSize)
	c := &Corrector{opts: opts, memo: memo}
	c.vocab.Store(buildVocabulary(nil))
	empty := []store.VocabPair{}
	c.samples.Store(&empty)
	return c
}

// SetVocabulary atomically replaces the vocabulary snapshot and drops
// memoized corrections. Called whenever the catalog changes.
func (c *Corrector) SetVocabulary(terms []string) {
	c.vocab.Store(buildVocabulary(terms))
	c.memo.Purge()
}

// SetSamples stores description/code pairs used by generic hints.
func (c *Corrector) SetSamples(pairs []store.VocabPair) {
	c.samples.Store(&pairs)
}

// VocabularySize returns the number of live vocabulary entries.
func (c *Corrector) VocabularySize() int {
	return len(c.vocab.Load().entries)
}

// Correct runs the correction ladder for a single term.
func (c *Corrector) Correct(term string) Correction {
	key := strings.ToLower(strings.TrimSpace(term))
	if hit, ok := c.memo.Get(key); ok {
		return hit
	}

	result := c.correct(key)
	c.memo.Add(key, result)
	return result
}

func (c *Corrector) correct(term string) Correction {
	vocab := c.vocab.Load()
	folded := normalize.Fold(term)

	// 1. Term is already a vocabulary entry.
	if _, ok := vocab.set[term]; ok {
		return Correction{Term: term, Confidence: confExact, Method: MethodExact}
	}

	// 2. Known misspelling whose canonical form is in the catalog.
	if canon, ok := misspellings[folded]; ok {
		if _, live := vocab.folded[normalize.Fold(canon)]; live {
			return Correction{Term: canon, Confidence: confDictionary, Method: MethodDictionary}
		}
	}

	// 3. Equal after diacritic folding ("alcool" -> "álcool").
	if entry, ok := vocab.folded[folded]; ok {
		return Correction{Term: entry, Confidence: confNormalized, Method: MethodNormalized}
	}

	// 4. Nearest entry by sequence ratio.
	if entry, ratio := c.bestBySimilarity(vocab, folded); ratio >= c.opts.SimilarityThreshold {
		return Correction{Term: entry, Confidence: confSimilarity, Method: MethodSimilarity}
	}

	// 5. Bounded edit distance, short terms only.
	if len([]rune(term)) <= 15 {
		if entry, ok := c.bestByDistance(vocab, folded); ok {
			return Correction{Term: entry, Confidence: confLevenshtein, Method: MethodLevenshtein}
		}
	}

	return Correction{Term: term, Confidence: 0, Method: MethodNone}
}

// bestBySimilarity scans the whole vocabulary for the highest sequence
// ratio against the folded term.
func (c *Corrector) bestBySimilarity(vocab *vocabulary, folded string) (string, float64) {
	var (
		best      string
		bestRatio float64
	)
	for _, entry := range vocab.entries {
		r := Ratio(folded, normalize.Fold(entry))
		if r > bestRatio {
			best, bestRatio = entry, r
		}
	}
	return best, bestRatio
}

// bestByDistance finds the closest entry within MaxDistance edits,
// scanning only candidates whose length is within MaxDistance of the
// term and giving up after ScanCap comparisons.
func (c *Corrector) bestByDistance(vocab *vocabulary, folded string) (string, bool) {
	termLen := len([]rune(folded))
	candidates := lo.Filter(vocab.entries, func(entry string, _ int) bool {
		d := len([]rune(entry)) - termLen
		if d < 0 {
			d = -d
		}
		return d <= c.opts.MaxDistance
	})

	var (
		best     string
		bestDist = c.opts.MaxDistance + 1
	)
	for i, entry := range candidates {
		if i >= c.opts.ScanCap {
			break
		}
		d := levenshtein.Distance(folded, normalize.Fold(entry))
		if d < bestDist {
			best, bestDist = entry, d
		}
	}
	return best, bestDist <= c.opts.MaxDistance
}

// DidYouMean builds the user-facing suggestion for a query that
// produced no results. Preference order: a confident correction, a
// category-mate of one of the query tokens, a generic sampled hint.
func (c *Corrector) DidYouMean(query string) string {
	folded := normalize.Fold(query)

	if corr := c.Correct(query); corr.Confidence >= confLevenshtein &&
		normalize.Fold(corr.Term) != folded {
		return fmt.Sprintf("Você quis dizer '%s'?", corr.Term)
	}

	if hint := categoryHint(normalize.Tokens(query)); hint != "" {
		return hint
	}

	return c.genericHint()
}

// genericHint proposes a term drawn from the sampled vocabulary.
func (c *Corrector) genericHint() string {
	for _, pair := range *c.samples.Load() {
		for _, tok := range normalize.Tokens(pair.Description) {
			if len([]rune(tok)) >= 5 {
				return fmt.Sprintf("tente pesquisar por '%s'", tok)
			}
		}
	}
	return "tente pesquisar por 'velocidade' ou 'estacionar'"
}

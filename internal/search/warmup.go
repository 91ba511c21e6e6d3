package search

import (
	"context"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"
)

// warmupConcurrency bounds parallel warm-up queries so startup does not
// monopolize the catalog connection.
const warmupConcurrency = 4

// DefaultWarmupQueries are the historically most-hit searches. They
// prime the connection pool and the hottest cache slots before real
// traffic arrives.
var DefaultWarmupQueries = []string{
	"estacionar",
	"velocidade",
	"alcool",
	"celular",
	"cinto",
	"5169-1",
}

// Warmup pushes the given queries through the full pipeline, ignoring
// individual failures. Always returns nil; warm-up never blocks boot.
func (e *Engine) Warmup(ctx context.Context, queries []string) error {
	if len(queries) == 0 {
		queries = DefaultWarmupQueries
	}

	start := time.Now()
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(warmupConcurrency)

	for _, q := range queries {
		q := q
		g.Go(func() error {
			if _, err := e.Search(ctx, q, e.cfg.DefaultLimit, 0); err != nil {
				slog.Warn("consulta de aquecimento falhou",
					slog.String("query", q),
					slog.String("error", err.Error()))
			}
			return nil
		})
	}

	_ = g.Wait()
	slog.Info("aquecimento concluído",
		slog.Int("consultas", len(queries)),
		slog.Duration("duração", time.Since(start)))
	return nil
}

// Package store is the read-only adapter over the infraction catalog.
//
// The catalog is a single SQLite table loaded by an external ingestion
// step. All lookups are parameterized; user input never reaches the SQL
// text itself.
package store

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"fmt"
	"log/slog"
	"time"

	sqlite "modernc.org/sqlite"

	"github.com/multaguia/multaguia/internal/normalize"
)

func init() {
	// fold() makes matching accent- and case-insensitive inside SQL, so
	// "alcool" finds "álcool" without shadow columns in the catalog.
	sqlite.MustRegisterDeterministicScalarFunction("fold", 1,
		func(ctx *sqlite.FunctionContext, args []driver.Value) (driver.Value, error) {
			switch v := args[0].(type) {
			case string:
				return normalize.Fold(v), nil
			case []byte:
				return normalize.Fold(string(v)), nil
			case nil:
				return nil, nil
			default:
				return fmt.Sprint(v), nil
			}
		})
}

// Store is the catalog lookup surface consumed by the query pipeline.
type Store interface {
	// LookupByCode matches term against infraction codes, ranked:
	// exact, exact after hyphen strip, containment, containment after
	// hyphen strip. Ties break by code ascending.
	LookupByCode(ctx context.Context, term string, limit int) ([]Record, error)

	// LookupByText matches term against the textual columns, ranked:
	// description exact, description prefix, everything else.
	LookupByText(ctx context.Context, term string, limit int) ([]Record, error)

	// SampleVocabulary returns up to n description/code pairs used to
	// seed suggestion hints.
	SampleVocabulary(ctx context.Context, n int) ([]VocabPair, error)

	// VocabularyTerms returns the lowercased terms (length >= 3)
	// extracted from the description and code columns.
	VocabularyTerms(ctx context.Context) ([]string, error)

	Close() error
}

// SQLite implements Store over a modernc.org/sqlite database.
type SQLite struct {
	db      *sql.DB
	path    string
	timeout time.Duration
}

var _ Store = (*SQLite)(nil)

const recordColumns = `codigo, descricao, responsavel, valor_multa, orgao_autuador, artigos_ctb, pontos, gravidade`

// Open opens the catalog database. If path is empty an in-memory
// database is created (tests). timeout bounds every query; 0 disables.
func Open(path string, timeout time.Duration) (*SQLite, error) {
	dsn := path
	if dsn == "" {
		dsn = ":memory:"
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open catalog: %w", err)
	}

	// Single connection: modernc.org/sqlite serializes writers anyway,
	// and an in-memory database exists per connection.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA busy_timeout = 5000",
		"PRAGMA synchronous = NORMAL",
		"PRAGMA temp_store = MEMORY",
	}
	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("failed to set pragma: %w", err)
		}
	}

	s := &SQLite{db: db, path: path, timeout: timeout}
	if err := s.initSchema(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}
	return s, nil
}

// initSchema creates the catalog table when absent. The ingestion step
// normally creates and fills it; this keeps empty databases queryable.
func (s *SQLite) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS infracoes (
		codigo         TEXT PRIMARY KEY,
		descricao      TEXT NOT NULL,
		responsavel    TEXT,
		valor_multa    TEXT,
		orgao_autuador TEXT,
		artigos_ctb    TEXT,
		pontos         TEXT,
		gravidade      TEXT
	);
	`
	_, err := s.db.Exec(schema)
	return err
}

// Close closes the underlying database.
func (s *SQLite) Close() error {
	return s.db.Close()
}

// Path returns the database file path ("" for in-memory).
func (s *SQLite) Path() string {
	return s.path
}

func (s *SQLite) queryCtx(ctx context.Context) (context.Context, context.CancelFunc) {
	if s.timeout > 0 {
		return context.WithTimeout(ctx, s.timeout)
	}
	return ctx, func() {}
}

// LookupByCode implements Store.
func (s *SQLite) LookupByCode(ctx context.Context, term string, limit int) ([]Record, error) {
	ctx, cancel := s.queryCtx(ctx)
	defer cancel()

	query := `
	SELECT ` + recordColumns + `
	FROM infracoes
	WHERE codigo = ?1
	   OR REPLACE(codigo, '-', '') = ?1
	   OR codigo LIKE '%' || ?1 || '%'
	   OR REPLACE(codigo, '-', '') LIKE '%' || ?1 || '%'
	ORDER BY CASE
	   WHEN codigo = ?1 THEN 0
	   WHEN REPLACE(codigo, '-', '') = ?1 THEN 1
	   WHEN codigo LIKE '%' || ?1 || '%' THEN 2
	   ELSE 3
	END, codigo ASC
	LIMIT ?2`

	rows, err := s.db.QueryContext(ctx, query, term, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanRecords(rows)
}

// LookupByText implements Store.
func (s *SQLite) LookupByText(ctx context.Context, term string, limit int) ([]Record, error) {
	ctx, cancel := s.queryCtx(ctx)
	defer cancel()

	query := `
	SELECT ` + recordColumns + `
	FROM infracoes
	WHERE fold(descricao) LIKE '%' || ?1 || '%'
	   OR fold(responsavel) LIKE '%' || ?1 || '%'
	   OR fold(artigos_ctb) LIKE '%' || ?1 || '%'
	   OR fold(orgao_autuador) LIKE '%' || ?1 || '%'
	   OR fold(gravidade) LIKE '%' || ?1 || '%'
	ORDER BY CASE
	   WHEN fold(descricao) = ?1 THEN 0
	   WHEN fold(descricao) LIKE ?1 || '%' THEN 1
	   ELSE 2
	END, codigo ASC
	LIMIT ?2`

	rows, err := s.db.QueryContext(ctx, query, term, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanRecords(rows)
}

// SampleVocabulary implements Store.
func (s *SQLite) SampleVocabulary(ctx context.Context, n int) ([]VocabPair, error) {
	ctx, cancel := s.queryCtx(ctx)
	defer cancel()

	rows, err := s.db.QueryContext(ctx,
		`SELECT codigo, descricao FROM infracoes ORDER BY codigo ASC LIMIT ?1`, n)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var pairs []VocabPair
	for rows.Next() {
		var p VocabPair
		if err := rows.Scan(&p.Code, &p.Description); err != nil {
			return nil, err
		}
		pairs = append(pairs, p)
	}
	return pairs, rows.Err()
}

// VocabularyTerms implements Store.
func (s *SQLite) VocabularyTerms(ctx context.Context) ([]string, error) {
	ctx, cancel := s.queryCtx(ctx)
	defer cancel()

	rows, err := s.db.QueryContext(ctx, `SELECT codigo, descricao FROM infracoes`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	seen := make(map[string]struct{})
	var terms []string
	add := func(term string) {
		if len([]rune(term)) < 3 {
			return
		}
		if _, ok := seen[term]; ok {
			return
		}
		seen[term] = struct{}{}
		terms = append(terms, term)
	}

	for rows.Next() {
		var code, desc string
		if err := rows.Scan(&code, &desc); err != nil {
			return nil, err
		}
		add(normalize.Fold(code))
		for _, tok := range normalize.WordsLower(desc) {
			add(tok)
		}
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	slog.Debug("vocabulário carregado", slog.Int("termos", len(terms)))
	return terms, nil
}

// scanRecords materializes rows into Records, coercing numeric fields
// and deriving severity when the column is empty.
func scanRecords(rows *sql.Rows) ([]Record, error) {
	var records []Record
	for rows.Next() {
		var (
			code, desc                     string
			resp, fine, org, ctb, pts, sev sql.NullString
		)
		if err := rows.Scan(&code, &desc, &resp, &fine, &org, &ctb, &pts, &sev); err != nil {
			return nil, err
		}

		rec := Record{
			Code:             code,
			Description:      desc,
			ResponsibleParty: resp.String,
			FineValue:        parseFine(fine.String),
			IssuingAuthority: org.String,
			CTBArticles:      ctb.String,
			Points:           parsePoints(pts.String),
			Severity:         sev.String,
		}
		if rec.Severity == "" {
			rec.Severity = deriveSeverity(rec.Points)
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

package telemetry

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

// zeroResultKeep bounds the retained zero-result queries.
const zeroResultKeep = 100

// Store persists query metrics in a local SQLite database.
type Store struct {
	db *sql.DB
}

// OpenStore opens (and if needed creates) the metrics database.
func OpenStore(path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create metrics dir: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open metrics store: %w", err)
	}
	db.SetMaxOpenConns(1)

	s := &Store{db: db}
	if err := s.initSchema(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create metrics schema: %w", err)
	}
	return s, nil
}

func (s *Store) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS consultas_diarias (
		dia   TEXT NOT NULL,
		modo  TEXT NOT NULL,
		total INTEGER NOT NULL DEFAULT 0,
		PRIMARY KEY (dia, modo)
	);

	CREATE TABLE IF NOT EXISTS termos (
		termo      TEXT PRIMARY KEY,
		total      INTEGER NOT NULL DEFAULT 1,
		visto_em   TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	);
	CREATE INDEX IF NOT EXISTS idx_termos_total ON termos(total DESC);

	CREATE TABLE IF NOT EXISTS sem_resultado (
		id       INTEGER PRIMARY KEY AUTOINCREMENT,
		termo    TEXT NOT NULL,
		visto_em TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	);

	CREATE TABLE IF NOT EXISTS latencias (
		dia    TEXT NOT NULL,
		faixa  TEXT NOT NULL,
		total  INTEGER NOT NULL DEFAULT 0,
		PRIMARY KEY (dia, faixa)
	);
	`
	_, err := s.db.Exec(schema)
	return err
}

// Close closes the metrics database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Record persists one query event atomically.
func (s *Store) Record(e QueryEvent) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin metrics tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.Exec(`
		INSERT INTO consultas_diarias (dia, modo, total) VALUES (?, ?, 1)
		ON CONFLICT(dia, modo) DO UPDATE SET total = total + 1`,
		e.day(), string(e.Mode)); err != nil {
		return fmt.Errorf("record mode count: %w", err)
	}

	if _, err := tx.Exec(`
		INSERT INTO termos (termo, total) VALUES (?, 1)
		ON CONFLICT(termo) DO UPDATE SET total = total + 1, visto_em = CURRENT_TIMESTAMP`,
		e.Term); err != nil {
		return fmt.Errorf("record term: %w", err)
	}

	if _, err := tx.Exec(`
		INSERT INTO latencias (dia, faixa, total) VALUES (?, ?, 1)
		ON CONFLICT(dia, faixa) DO UPDATE SET total = total + 1`,
		e.day(), string(LatencyToBucket(e.Latency))); err != nil {
		return fmt.Errorf("record latency: %w", err)
	}

	if e.IsZeroResult() {
		if _, err := tx.Exec(`INSERT INTO sem_resultado (termo) VALUES (?)`, e.Term); err != nil {
			return fmt.Errorf("record zero result: %w", err)
		}
		if _, err := tx.Exec(`
			DELETE FROM sem_resultado WHERE id NOT IN (
				SELECT id FROM sem_resultado ORDER BY id DESC LIMIT ?
			)`, zeroResultKeep); err != nil {
			return fmt.Errorf("trim zero results: %w", err)
		}
	}

	return tx.Commit()
}

// TermCount is a term with its cumulative query count.
type TermCount struct {
	Term  string
	Count int64
}

// BucketCount is a latency bucket with its cumulative count.
type BucketCount struct {
	Bucket LatencyBucket
	Count  int64
}

// Summary aggregates everything the stats surface shows.
type Summary struct {
	TotalQueries int64
	ByMode       map[QueryMode]int64
	TopTerms     []TermCount
	ZeroResults  []string
	Latency      []BucketCount
}

// Summarize reads the cumulative metrics back.
func (s *Store) Summarize(topTerms int) (*Summary, error) {
	if topTerms <= 0 {
		topTerms = 5
	}
	sum := &Summary{ByMode: make(map[QueryMode]int64)}

	rows, err := s.db.Query(`SELECT modo, SUM(total) FROM consultas_diarias GROUP BY modo`)
	if err != nil {
		return nil, fmt.Errorf("summarize modes: %w", err)
	}
	for rows.Next() {
		var mode string
		var n int64
		if err := rows.Scan(&mode, &n); err != nil {
			rows.Close()
			return nil, err
		}
		sum.ByMode[QueryMode(mode)] = n
		sum.TotalQueries += n
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, err
	}

	rows, err = s.db.Query(`SELECT termo, total FROM termos ORDER BY total DESC, termo ASC LIMIT ?`, topTerms)
	if err != nil {
		return nil, fmt.Errorf("summarize terms: %w", err)
	}
	for rows.Next() {
		var tc TermCount
		if err := rows.Scan(&tc.Term, &tc.Count); err != nil {
			rows.Close()
			return nil, err
		}
		sum.TopTerms = append(sum.TopTerms, tc)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, err
	}

	rows, err = s.db.Query(`SELECT termo FROM sem_resultado ORDER BY id DESC LIMIT 10`)
	if err != nil {
		return nil, fmt.Errorf("summarize zero results: %w", err)
	}
	for rows.Next() {
		var term string
		if err := rows.Scan(&term); err != nil {
			rows.Close()
			return nil, err
		}
		sum.ZeroResults = append(sum.ZeroResults, term)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for _, bucket := range []LatencyBucket{
		BucketUnder10ms, BucketUnder50ms, BucketUnder100ms, BucketUnder500ms, BucketSlow,
	} {
		var n int64
		err := s.db.QueryRow(`SELECT COALESCE(SUM(total), 0) FROM latencias WHERE faixa = ?`,
			string(bucket)).Scan(&n)
		if err != nil {
			return nil, fmt.Errorf("summarize latency: %w", err)
		}
		sum.Latency = append(sum.Latency, BucketCount{Bucket: bucket, Count: n})
	}

	return sum, nil
}

//go:build ignore

// Package main generates a synthetic infraction catalog for local
// development and benchmarking.
// Usage: go run scripts/generate-catalog.go -rows 500 -output catalog.db
package main

import (
	"database/sql"
	"flag"
	"fmt"
	"math/rand"
	"os"

	_ "modernc.org/sqlite"
)

var (
	numRows = flag.Int("rows", 500, "Number of catalog rows to generate")
	output  = flag.String("output", "catalog.db", "Output database path")
	seed    = flag.Int64("seed", 42, "Random seed for reproducibility")
)

var verbs = []string{
	"Dirigir", "Estacionar", "Conduzir", "Transitar", "Parar",
	"Avançar", "Ultrapassar", "Trafegar", "Deixar de",
}

var complements = []string{
	"sob influência de álcool",
	"em local proibido pela sinalização",
	"veículo com película irregular",
	"em velocidade superior à máxima permitida",
	"sobre a faixa de pedestres",
	"o sinal vermelho do semáforo",
	"pela contramão de direção",
	"sem usar o cinto de segurança",
	"utilizando telefone celular",
	"veículo sem licenciamento",
	"usar capacete de segurança",
	"em acostamento",
}

var authorities = []string{"DETRAN", "PRF", "Prefeitura", "DER"}

var responsible = []string{"Condutor", "Proprietário", "Embarcador", "Transportador"}

// severityFor mirrors the catalog convention: points decide severity.
func severityFor(points int) string {
	switch {
	case points >= 7:
		return "Gravíssima"
	case points >= 5:
		return "Grave"
	case points >= 4:
		return "Média"
	default:
		return "Leve"
	}
}

func main() {
	flag.Parse()
	rng := rand.New(rand.NewSource(*seed))

	_ = os.Remove(*output)
	db, err := sql.Open("sqlite", *output)
	if err != nil {
		fmt.Fprintf(os.Stderr, "open %s: %v\n", *output, err)
		os.Exit(1)
	}
	defer db.Close()

	if _, err := db.Exec(`
	CREATE TABLE infracoes (
		codigo         TEXT PRIMARY KEY,
		descricao      TEXT NOT NULL,
		responsavel    TEXT,
		valor_multa    TEXT,
		orgao_autuador TEXT,
		artigos_ctb    TEXT,
		pontos         TEXT,
		gravidade      TEXT
	)`); err != nil {
		fmt.Fprintf(os.Stderr, "create schema: %v\n", err)
		os.Exit(1)
	}

	tx, err := db.Begin()
	if err != nil {
		fmt.Fprintf(os.Stderr, "begin: %v\n", err)
		os.Exit(1)
	}

	pointValues := []int{3, 4, 5, 7}
	fineByPoints := map[int]string{3: "88,38", 4: "130,16", 5: "195,23", 7: "293,47"}

	inserted := 0
	for i := 0; inserted < *numRows; i++ {
		code := fmt.Sprintf("%04d-%d", 5000+i, rng.Intn(10))
		desc := fmt.Sprintf("%s %s",
			verbs[rng.Intn(len(verbs))],
			complements[rng.Intn(len(complements))])
		points := pointValues[rng.Intn(len(pointValues))]

		// Leave some rows messy the way real ingestion does: a stray
		// currency prefix and the occasional empty severity.
		fine := fineByPoints[points]
		if rng.Intn(4) == 0 {
			fine = "R$ " + fine
		}
		severity := severityFor(points)
		if rng.Intn(5) == 0 {
			severity = ""
		}

		_, err := tx.Exec(`
			INSERT INTO infracoes (codigo, descricao, responsavel, valor_multa, orgao_autuador, artigos_ctb, pontos, gravidade)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
			code, desc,
			responsible[rng.Intn(len(responsible))],
			fine,
			authorities[rng.Intn(len(authorities))],
			fmt.Sprintf("Art. %d", 160+rng.Intn(100)),
			fmt.Sprintf("%d", points),
			severity)
		if err != nil {
			fmt.Fprintf(os.Stderr, "insert %s: %v\n", code, err)
			os.Exit(1)
		}
		inserted++
	}

	if err := tx.Commit(); err != nil {
		fmt.Fprintf(os.Stderr, "commit: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("wrote %d rows to %s\n", inserted, *output)
}

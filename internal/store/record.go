package store

import (
	"log/slog"
	"strconv"
	"strings"
)

// Record is a single catalog entry. Records are read-only: the catalog
// is loaded by an external ingestion step and never mutated here.
type Record struct {
	Code             string  `json:"codigo"`
	Description      string  `json:"descricao"`
	ResponsibleParty string  `json:"responsavel"`
	FineValue        float64 `json:"valor_multa"`
	IssuingAuthority string  `json:"orgao_autuador"`
	CTBArticles      string  `json:"artigos_ctb"`
	Points           int     `json:"pontos"`
	Severity         string  `json:"gravidade"`
}

// VocabPair is a description/code sample used to seed suggestion hints.
type VocabPair struct {
	Code        string
	Description string
}

// Severity thresholds from the CTB points table.
const (
	pointsGravissima = 7
	pointsGrave      = 5
	pointsMedia      = 4
)

// deriveSeverity maps points to a severity label when the catalog row
// carries none.
func deriveSeverity(points int) string {
	switch {
	case points >= pointsGravissima:
		return "gravíssima"
	case points >= pointsGrave:
		return "grave"
	case points >= pointsMedia:
		return "média"
	default:
		return "leve"
	}
}

// parseFine coerces a raw fine value. The catalog mixes Brazilian
// ("R$ 1.467,35") and dotted ("195.23") notations. Unparseable values
// coerce to 0 with a warning; a bad row still participates in results.
func parseFine(raw string) float64 {
	s := strings.TrimSpace(raw)
	if s == "" {
		return 0
	}

	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' || r == ',' || r == '.' || r == '-' {
			b.WriteRune(r)
		}
	}
	s = b.String()

	hasComma := strings.Contains(s, ",")
	hasDot := strings.Contains(s, ".")
	switch {
	case hasComma && hasDot:
		// The rightmost separator is the decimal one.
		if strings.LastIndex(s, ",") > strings.LastIndex(s, ".") {
			s = strings.ReplaceAll(s, ".", "")
			s = strings.Replace(s, ",", ".", 1)
		} else {
			s = strings.ReplaceAll(s, ",", "")
		}
	case hasComma:
		s = strings.Replace(s, ",", ".", 1)
	}

	v, err := strconv.ParseFloat(s, 64)
	if err != nil || v < 0 {
		slog.Warn("valor de multa ilegível, assumindo 0",
			slog.String("raw", raw))
		return 0
	}
	return v
}

// parsePoints coerces a raw points value, truncating any decimal part.
func parsePoints(raw string) int {
	s := strings.TrimSpace(raw)
	if s == "" {
		return 0
	}

	if n, err := strconv.Atoi(s); err == nil {
		if n < 0 {
			return 0
		}
		return n
	}

	// Some spreadsheet exports carry "5.0" style values.
	s = strings.Replace(s, ",", ".", 1)
	if f, err := strconv.ParseFloat(s, 64); err == nil && f >= 0 {
		return int(f)
	}

	slog.Warn("pontuação ilegível, assumindo 0", slog.String("raw", raw))
	return 0
}

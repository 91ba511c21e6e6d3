package store

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestStore opens an in-memory catalog seeded with a few rows the
// way the ingestion step leaves them: everything as text, some values
// messy on purpose.
func newTestStore(t *testing.T) *SQLite {
	t.Helper()

	s, err := Open("", time.Second)
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	rows := [][]any{
		{"5169-1", "Dirigir sob influência de álcool", "Condutor", "R$ 2.934,70", "PRF", "Art. 165", "7", "Gravíssima"},
		{"5541-1", "Estacionar em local proibido", "Condutor", "195,23", "DETRAN", "Art. 181", "5", ""},
		{"6050-1", "Excesso de velocidade até 20%", "Condutor", "130.16", "DETRAN", "Art. 218", "4", ""},
		{"6599-2", "Conduzir veículo com película irregular", "Proprietário", "195,23", "DETRAN", "Art. 230", "5", "Grave"},
		{"7579-0", "Avançar o sinal vermelho", "Condutor", "293,47", "DETRAN", "Art. 208", "sete", ""},
	}
	for _, r := range rows {
		_, err := s.db.Exec(
			`INSERT INTO infracoes (codigo, descricao, responsavel, valor_multa, orgao_autuador, artigos_ctb, pontos, gravidade)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`, r...)
		require.NoError(t, err)
	}
	return s
}

func TestLookupByCode_ExactFirst(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	recs, err := s.LookupByCode(ctx, "5169-1", 10)
	require.NoError(t, err)
	require.NotEmpty(t, recs)

	assert.Equal(t, "5169-1", recs[0].Code)
}

func TestLookupByCode_HyphenStripped(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	// The pipeline folds "5169-1" to "51691" before code lookup.
	recs, err := s.LookupByCode(ctx, "51691", 10)
	require.NoError(t, err)
	require.NotEmpty(t, recs)

	assert.Equal(t, "5169-1", recs[0].Code)
}

func TestLookupByCode_Containment(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	recs, err := s.LookupByCode(ctx, "5169", 10)
	require.NoError(t, err)
	require.NotEmpty(t, recs)
	assert.Equal(t, "5169-1", recs[0].Code)
}

func TestLookupByCode_TiesBreakByCode(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	// "1" is contained in every code; order must be code ascending.
	recs, err := s.LookupByCode(ctx, "1", 10)
	require.NoError(t, err)
	require.Greater(t, len(recs), 1)

	for i := 1; i < len(recs); i++ {
		assert.Less(t, recs[i-1].Code, recs[i].Code)
	}
}

func TestLookupByText_AccentInsensitive(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	recs, err := s.LookupByText(ctx, "alcool", 10)
	require.NoError(t, err)
	require.NotEmpty(t, recs)

	assert.Equal(t, "5169-1", recs[0].Code)
	assert.Contains(t, recs[0].Description, "álcool")
}

func TestLookupByText_SearchesAllColumns(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	// "proprietario" only appears in responsavel.
	recs, err := s.LookupByText(ctx, "proprietario", 10)
	require.NoError(t, err)
	require.Len(t, recs, 1)
	assert.Equal(t, "6599-2", recs[0].Code)
}

func TestLookupByText_PrefixRanksAboveContainment(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	recs, err := s.LookupByText(ctx, "estacionar", 10)
	require.NoError(t, err)
	require.NotEmpty(t, recs)
	assert.Equal(t, "5541-1", recs[0].Code)
}

func TestFieldCoercion(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	recs, err := s.LookupByCode(ctx, "51691", 1)
	require.NoError(t, err)
	require.Len(t, recs, 1)

	// "R$ 2.934,70" -> 2934.70
	assert.InDelta(t, 2934.70, recs[0].FineValue, 0.001)
	assert.Equal(t, 7, recs[0].Points)
	assert.Equal(t, "Gravíssima", recs[0].Severity)
}

func TestFieldCoercion_DottedDecimal(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	recs, err := s.LookupByCode(ctx, "60501", 1)
	require.NoError(t, err)
	require.Len(t, recs, 1)
	assert.InDelta(t, 130.16, recs[0].FineValue, 0.001)
}

func TestFieldCoercion_BadPointsDefaultsToZero(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	// "sete" is not a number; the record still participates.
	recs, err := s.LookupByCode(ctx, "75790", 1)
	require.NoError(t, err)
	require.Len(t, recs, 1)
	assert.Equal(t, 0, recs[0].Points)
}

func TestSeverityDerivedFromPoints(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	// 5541-1 has no stored severity and 5 points.
	recs, err := s.LookupByCode(ctx, "55411", 1)
	require.NoError(t, err)
	require.Len(t, recs, 1)
	assert.Equal(t, "grave", recs[0].Severity)

	// 6050-1 has 4 points.
	recs, err = s.LookupByCode(ctx, "60501", 1)
	require.NoError(t, err)
	require.Len(t, recs, 1)
	assert.Equal(t, "média", recs[0].Severity)
}

func TestDeriveSeverity(t *testing.T) {
	assert.Equal(t, "gravíssima", deriveSeverity(7))
	assert.Equal(t, "gravíssima", deriveSeverity(9))
	assert.Equal(t, "grave", deriveSeverity(5))
	assert.Equal(t, "média", deriveSeverity(4))
	assert.Equal(t, "leve", deriveSeverity(3))
	assert.Equal(t, "leve", deriveSeverity(0))
}

func TestParseFine(t *testing.T) {
	tests := []struct {
		raw  string
		want float64
	}{
		{"R$ 195,23", 195.23},
		{"195,23", 195.23},
		{"195.23", 195.23},
		{"R$ 1.467,35", 1467.35},
		{"2,934.70", 2934.70},
		{"", 0},
		{"gratis", 0},
		{"-10,00", 0},
	}
	for _, tt := range tests {
		assert.InDelta(t, tt.want, parseFine(tt.raw), 0.001, "parseFine(%q)", tt.raw)
	}
}

func TestParsePoints(t *testing.T) {
	assert.Equal(t, 5, parsePoints("5"))
	assert.Equal(t, 5, parsePoints("5.0"))
	assert.Equal(t, 5, parsePoints("5,9"))
	assert.Equal(t, 0, parsePoints(""))
	assert.Equal(t, 0, parsePoints("-3"))
	assert.Equal(t, 0, parsePoints("muitos"))
}

func TestVocabularyTerms(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	terms, err := s.VocabularyTerms(ctx)
	require.NoError(t, err)

	assert.Contains(t, terms, "álcool")
	assert.Contains(t, terms, "velocidade")
	assert.Contains(t, terms, "51691") // folded code
	assert.NotContains(t, terms, "de") // too short
}

func TestSampleVocabulary(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	pairs, err := s.SampleVocabulary(ctx, 3)
	require.NoError(t, err)
	require.Len(t, pairs, 3)

	assert.Equal(t, "5169-1", pairs[0].Code)
	assert.NotEmpty(t, pairs[0].Description)
}

func TestLookupByText_NoMatches(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	recs, err := s.LookupByText(ctx, "zzzzzzzz", 10)
	require.NoError(t, err)
	assert.Empty(t, recs)
}

package spell

import "fmt"

// category groups related search terms. When a failed query mentions
// one term of a category, the hint proposes a sibling term. Terms are
// folded to match pipeline tokens.
type category struct {
	name  string
	terms []string
}

var categories = []category{
	{"velocidade", []string{"velocidade", "radar", "excesso", "limite", "lombada"}},
	{"documentos", []string{"cnh", "habilitacao", "licenciamento", "documento", "carteira", "crlv"}},
	{"alcool", []string{"alcool", "bafometro", "etilometro", "embriaguez", "bebida"}},
	{"estacionamento", []string{"estacionar", "estacionamento", "vaga", "parar", "acostamento"}},
	{"equipamentos", []string{"capacete", "cinto", "pelicula", "farol", "pneu", "extintor", "retrovisor"}},
	{"sinalizacao", []string{"semaforo", "placa", "sinal", "faixa", "cruzamento"}},
	{"conducao", []string{"dirigir", "conduzir", "manobra", "ultrapassagem", "celular", "contramao"}},
	{"pedestres", []string{"pedestre", "travessia", "calcada", "ciclista"}},
}

// categoryHint returns "tente pesquisar por '<term>'" when any query
// token belongs to a category, proposing another term of the same
// category. Empty string when no category matches.
func categoryHint(tokens []string) string {
	for _, tok := range tokens {
		for _, cat := range categories {
			for _, term := range cat.terms {
				if term != tok {
					continue
				}
				for _, other := range cat.terms {
					if other != tok {
						return fmt.Sprintf("tente pesquisar por '%s'", other)
					}
				}
			}
		}
	}
	return ""
}

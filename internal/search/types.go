package search

import (
	"github.com/multaguia/multaguia/internal/store"
)

// Envelope is the response of a single search. Every outcome, including
// failures, is a well-formed envelope; callers distinguish empty from
// broken only through Message.
type Envelope struct {
	Results    []store.Record `json:"resultados"`
	Total      int            `json:"total"`
	Message    string         `json:"mensagem,omitempty"`
	Suggestion string         `json:"sugestao,omitempty"`
}

// User-facing messages (pt-BR, matching the public service).
const (
	MsgTooShort  = "o termo deve ter pelo menos 2 caracteres"
	MsgNoneCode  = "nenhuma infração encontrada com o código informado"
	MsgNoneText  = "nenhuma infração encontrada para o termo pesquisado"
	MsgError     = "ocorreu um erro ao processar sua pesquisa"
	MsgPastEnd   = "não há mais resultados para esta página"
)

// envelopeSize estimates the heap footprint of an envelope for the
// cache budget. Strings dominate; struct overhead is a flat guess.
func envelopeSize(e *Envelope) int64 {
	const recordOverhead = 64
	size := int64(96 + len(e.Message) + len(e.Suggestion))
	for _, r := range e.Results {
		size += recordOverhead + int64(len(r.Code)+len(r.Description)+
			len(r.ResponsibleParty)+len(r.IssuingAuthority)+
			len(r.CTBArticles)+len(r.Severity))
	}
	return size
}

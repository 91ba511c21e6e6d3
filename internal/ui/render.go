// Package ui renders search envelopes and cache statistics for the
// terminal. Color is dropped automatically when stdout is not a TTY.
package ui

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mattn/go-isatty"

	"github.com/multaguia/multaguia/internal/cache"
	"github.com/multaguia/multaguia/internal/search"
	"github.com/multaguia/multaguia/internal/telemetry"
)

// Renderer writes human-readable output.
type Renderer struct {
	out    io.Writer
	styles Styles
}

// NewRenderer picks styled or plain output based on whether out is a
// terminal.
func NewRenderer(out io.Writer) *Renderer {
	styles := NoColorStyles()
	if f, ok := out.(*os.File); ok && isatty.IsTerminal(f.Fd()) {
		styles = DefaultStyles()
	}
	return &Renderer{out: out, styles: styles}
}

// Envelope renders a search envelope as a record list.
func (r *Renderer) Envelope(env *search.Envelope) {
	s := r.styles

	if env.Message != "" {
		fmt.Fprintln(r.out, s.Error.Render(env.Message))
	}
	if env.Suggestion != "" {
		fmt.Fprintln(r.out, s.Suggestion.Render(env.Suggestion))
	}
	if len(env.Results) == 0 {
		return
	}

	fmt.Fprintln(r.out, s.Header.Render(
		fmt.Sprintf("%d resultado(s), %d no total", len(env.Results), env.Total)))
	fmt.Fprintln(r.out, s.Dim.Render(strings.Repeat("─", 60)))

	for _, rec := range env.Results {
		fmt.Fprintf(r.out, "%s  %s\n",
			s.Code.Render(rec.Code), rec.Description)
		fmt.Fprintf(r.out, "  %s %s   %s R$ %.2f   %s %d   %s %s\n",
			s.Label.Render("resp.:"), rec.ResponsibleParty,
			s.Label.Render("multa:"), rec.FineValue,
			s.Label.Render("pontos:"), rec.Points,
			s.Label.Render("gravidade:"), s.Severity.Render(rec.Severity))
		if rec.CTBArticles != "" {
			fmt.Fprintf(r.out, "  %s %s\n", s.Label.Render("CTB:"), rec.CTBArticles)
		}
	}
}

// CacheStats renders cache counters.
func (r *Renderer) CacheStats(st cache.Stats) {
	s := r.styles
	fmt.Fprintln(r.out, s.Header.Render("cache"))
	fmt.Fprintf(r.out, "  %s %d\n", s.Label.Render("entradas:"), st.Entries)
	fmt.Fprintf(r.out, "  %s %d bytes\n", s.Label.Render("memória:"), st.MemoryBytes)
	fmt.Fprintf(r.out, "  %s %d / %s %d\n",
		s.Label.Render("acertos:"), st.Hits, s.Label.Render("falhas:"), st.Misses)
	fmt.Fprintf(r.out, "  %s %d / %s %d\n",
		s.Label.Render("despejos:"), st.Evictions, s.Label.Render("expirações:"), st.Expirations)
}

// QueryMetrics renders the local query metrics summary.
func (r *Renderer) QueryMetrics(sum *telemetry.Summary) {
	s := r.styles

	fmt.Fprintln(r.out, s.Header.Render("consultas"))
	fmt.Fprintf(r.out, "  %s %d\n", s.Label.Render("total:"), sum.TotalQueries)
	fmt.Fprintf(r.out, "  %s %d / %s %d\n",
		s.Label.Render("por código:"), sum.ByMode[telemetry.QueryModeCode],
		s.Label.Render("por texto:"), sum.ByMode[telemetry.QueryModeText])

	if len(sum.TopTerms) > 0 {
		fmt.Fprintln(r.out, s.Header.Render("termos mais pesquisados"))
		for _, tc := range sum.TopTerms {
			fmt.Fprintf(r.out, "  %s %d\n", s.Code.Render(tc.Term), tc.Count)
		}
	}

	if len(sum.ZeroResults) > 0 {
		fmt.Fprintln(r.out, s.Header.Render("sem resultado (recentes)"))
		for _, term := range sum.ZeroResults {
			fmt.Fprintf(r.out, "  %s\n", s.Dim.Render(term))
		}
	}

	fmt.Fprintln(r.out, s.Header.Render("latência"))
	for _, b := range sum.Latency {
		fmt.Fprintf(r.out, "  %s %d\n", s.Label.Render(string(b.Bucket)+":"), b.Count)
	}
}

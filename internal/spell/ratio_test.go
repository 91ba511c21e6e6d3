package spell

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRatio(t *testing.T) {
	tests := []struct {
		a, b string
		want float64
	}{
		{"", "", 1.0},
		{"abc", "abc", 1.0},
		{"abc", "xyz", 0.0},
		{"abc", "", 0.0},
		// LCS("kitten", "sitting") = "ittn" -> 2*4/13
		{"kitten", "sitting", 0.6154},
		// LCS("pelicula", "peliculla") = "pelicula" -> 2*8/17
		{"pelicula", "peliculla", 0.9412},
		{"velocidade", "velosidade", 0.9},
	}

	for _, tt := range tests {
		got := Ratio(tt.a, tt.b)
		assert.InDelta(t, tt.want, got, 0.01, "Ratio(%q, %q)", tt.a, tt.b)
		// Symmetry
		assert.InDelta(t, got, Ratio(tt.b, tt.a), 0.0001)
	}
}

func TestRatio_Bounds(t *testing.T) {
	pairs := [][2]string{
		{"estacionar", "estacionamento"},
		{"a", "ab"},
		{"çãé", "cae"},
		{"radar", "hadar"},
	}
	for _, p := range pairs {
		r := Ratio(p[0], p[1])
		assert.GreaterOrEqual(t, r, 0.0)
		assert.LessOrEqual(t, r, 1.0)
	}
}

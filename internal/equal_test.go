package internal

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEqual(t *testing.T) {
	m := map[string]any{"a": 1}
	s := []any{1, 2}
	p := &struct{}{}

	type point struct{ X, Y int }
	type tagged struct {
		Tags []string
	}
	type sample struct {
		name  string
		value float64
	}
	nan := math.NaN()

	tests := []struct {
		name  string
		a, b  any
		equal bool
	}{
		{"nils", nil, nil, true},
		{"nil and value", nil, 0, false},
		{"same ints", 1, 1, true},
		{"different types", 1, 1.0, false},
		{"strings", "a", "b", false},
		{"nan", math.NaN(), math.NaN(), true},
		{"same map", m, m, true},
		{"equal maps", m, map[string]any{"a": 1}, false},
		{"same slice", s, s, true},
		{"resliced", s, s[:1], false},
		{"same pointer", p, p, true},
		{"structs", point{1, 2}, point{1, 2}, true},
		{"non comparable structs", tagged{[]string{"a"}}, tagged{[]string{"a"}}, true},
		{"nan in array", [2]float64{nan, 0}, [2]float64{nan, 0}, true},
		{"nan in array and number", [2]float64{nan, 0}, [2]float64{0, 0}, false},
		{"nan field", sample{"a", nan}, sample{"a", nan}, true},
		{"nan field and other name", sample{"a", nan}, sample{"b", nan}, false},
		{"nan in interface field", struct{ V any }{nan}, struct{ V any }{nan}, true},
		{"nan complex", complex(nan, 1), complex(nan, 1), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.equal, Equal(tt.a, tt.b))
		})
	}
}

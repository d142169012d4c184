package scheduling

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDiffTreatmentSets(t *testing.T) {
	tests := []struct {
		name       string
		current    []uint
		requested  []uint
		wantAdd    []uint
		wantRemove []uint
	}{
		{
			name:       "troca parcial preserva o tipo que permanece",
			current:    []uint{1, 2},
			requested:  []uint{2, 3},
			wantAdd:    []uint{3},
			wantRemove: []uint{1},
		},
		{
			name:      "mesmo conjunto não gera diff",
			current:   []uint{1, 2, 3},
			requested: []uint{3, 1, 2},
		},
		{
			name:      "criação a partir do vazio",
			requested: []uint{5, 7},
			wantAdd:   []uint{5, 7},
		},
		{
			name:       "remoção total",
			current:    []uint{4, 9},
			wantRemove: []uint{4, 9},
		},
		{
			name:      "ids repetidos no pedido contam uma vez",
			current:   []uint{1},
			requested: []uint{1, 1, 2, 2},
			wantAdd:   []uint{2},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			diff := DiffTreatmentSets(tt.current, tt.requested)

			assert.Equal(t, tt.wantAdd, diff.ToAdd)
			assert.Equal(t, tt.wantRemove, diff.ToRemove)
			assert.Equal(t,
				len(tt.wantAdd) == 0 && len(tt.wantRemove) == 0,
				diff.Empty(),
			)
		})
	}
}

// Aplicar o diff e recalcular com o mesmo pedido produz um diff vazio.
func TestDiffTreatmentSetsIdempotence(t *testing.T) {
	current := []uint{1, 2}
	requested := []uint{2, 3}

	diff := DiffTreatmentSets(current, requested)

	after := applyDiff(current, diff)
	second := DiffTreatmentSets(after, requested)

	assert.True(t, second.Empty())
}

func applyDiff(current []uint, diff TreatmentDiff) []uint {
	removed := make(map[uint]struct{}, len(diff.ToRemove))
	for _, id := range diff.ToRemove {
		removed[id] = struct{}{}
	}

	out := []uint{}
	for _, id := range current {
		if _, ok := removed[id]; !ok {
			out = append(out, id)
		}
	}
	return append(out, diff.ToAdd...)
}

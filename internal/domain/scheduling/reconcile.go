package scheduling

import "sort"

// TreatmentDiff é o resultado de comparar os tratamentos já registrados
// de uma consulta com o conjunto pedido: o que criar e o que remover.
type TreatmentDiff struct {
	ToAdd    []uint
	ToRemove []uint
}

func (d TreatmentDiff) Empty() bool {
	return len(d.ToAdd) == 0 && len(d.ToRemove) == 0
}

// DiffTreatmentSets calcula a diferença entre o conjunto atual de
// treatment_type_ids e o conjunto pedido.
//
// Registros cujo tipo permanece selecionado ficam fora do diff e nunca
// são tocados — anotações, arquivos e dentes associados sobrevivem à
// edição da consulta. Aplicar o mesmo conjunto duas vezes produz um
// diff vazio na segunda chamada (idempotência).
func DiffTreatmentSets(current, requested []uint) TreatmentDiff {
	cur := make(map[uint]struct{}, len(current))
	for _, id := range current {
		cur[id] = struct{}{}
	}

	req := make(map[uint]struct{}, len(requested))
	for _, id := range requested {
		req[id] = struct{}{}
	}

	var diff TreatmentDiff

	for id := range req {
		if _, ok := cur[id]; !ok {
			diff.ToAdd = append(diff.ToAdd, id)
		}
	}
	for id := range cur {
		if _, ok := req[id]; !ok {
			diff.ToRemove = append(diff.ToRemove, id)
		}
	}

	// ordem estável para logs e testes
	sort.Slice(diff.ToAdd, func(i, j int) bool { return diff.ToAdd[i] < diff.ToAdd[j] })
	sort.Slice(diff.ToRemove, func(i, j int) bool { return diff.ToRemove[i] < diff.ToRemove[j] })

	return diff
}

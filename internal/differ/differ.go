// Package differ compares two value trees and describes how they differ.
package differ

import (
	"fmt"

	"github.com/sergi/go-diff/diffmatchpatch"

	"github.com/mcncl/asserthint/internal/models"
)

// Differ compares value trees. Arrays, maps and DTO fields are aligned by
// position; only text leaves get a minimal edit script.
type Differ struct {
	dmp *diffmatchpatch.DiffMatchPatch
}

// NewDiffer creates a Differ whose text diffs are exact and deterministic.
func NewDiffer() *Differ {
	dmp := diffmatchpatch.New()
	// no deadline: a timed out diff would depend on machine speed
	dmp.DiffTimeout = 0
	return &Differ{dmp: dmp}
}

// Diff compares left and right with a default Differ.
func Diff(left, right models.Value) models.Difference {
	return NewDiffer().Diff(left, right)
}

// Diff returns the difference between left and right. It never fails.
func (d *Differ) Diff(left, right models.Value) models.Difference {
	if left.Kind() != right.Kind() {
		return models.TypeMismatch{Left: models.Label(left), Right: models.Label(right)}
	}
	if models.DeepEqual(left, right) {
		return models.Equal{}
	}

	switch l := left.(type) {
	case models.Null:
		return models.Equal{}
	case models.Text:
		return d.diffText(l.Raw, right.(models.Text).Raw)
	case models.Array:
		return d.diffSequence(l.Items, right.(models.Array).Items)
	case models.Map:
		return d.diffSequence(l.Items, right.(models.Map).Items)
	case models.Dto:
		return d.diffDto(l, right.(models.Dto))
	case models.Field:
		return d.diffField(l, right.(models.Field))
	default:
		panic(fmt.Sprintf("differ: unhandled value type %T", left))
	}
}

// diffText splits two strings into equal, removed and added runs.
func (d *Differ) diffText(a, b string) models.Difference {
	if a == b {
		return models.Equal{}
	}

	diffs := d.dmp.DiffMain(a, b, false)
	items := make([]models.Difference, 0, len(diffs))
	for _, diff := range diffs {
		switch diff.Type {
		case diffmatchpatch.DiffEqual:
			items = append(items, models.CharsEqual{Text: diff.Text})
		case diffmatchpatch.DiffDelete:
			items = append(items, models.CharsRemove{Text: diff.Text})
		case diffmatchpatch.DiffInsert:
			items = append(items, models.CharsAdd{Text: diff.Text})
		}
	}
	return models.Child{Items: items}
}

// diffSequence zips both sequences to the longer length. Elements past the
// end of one side are reported as missing there.
func (d *Differ) diffSequence(a, b []models.Value) models.Difference {
	n := max(len(a), len(b))
	items := make([]models.Difference, 0, n)
	for i := 0; i < n; i++ {
		switch {
		case i < len(a) && i < len(b):
			items = append(items, d.Diff(a[i], b[i]))
		case i < len(a):
			items = append(items, models.MissingOnRight{Value: a[i]})
		default:
			items = append(items, models.MissingOnLeft{Value: b[i]})
		}
	}
	return models.ArrayChange{Items: items}
}

func (d *Differ) diffDto(a, b models.Dto) models.Difference {
	if a.Name != b.Name {
		return models.ClassChange{Diff: d.diffText(a.Name, b.Name)}
	}
	if models.EqualFields(a.Fields, b.Fields) {
		return models.Equal{}
	}
	return models.DtoChange{Name: a.Name, Items: d.diffFields(a.Fields, b.Fields)}
}

// diffFields pairs fields by declaration order. A field present on only
// one side counts as equal.
func (d *Differ) diffFields(a, b []models.Field) []models.Difference {
	n := max(len(a), len(b))
	items := make([]models.Difference, 0, n)
	for i := 0; i < n; i++ {
		if i < len(a) && i < len(b) {
			items = append(items, d.diffField(a[i], b[i]))
			continue
		}
		items = append(items, models.Equal{})
	}
	return items
}

// diffField reports a rename without looking at the values.
func (d *Differ) diffField(a, b models.Field) models.Difference {
	if a.Name != b.Name {
		return models.FieldRenamed{Name: a.Name, Diff: d.diffText(a.Name, b.Name)}
	}
	value := d.Diff(a.Value, b.Value)
	if models.IsEqual(value) {
		return models.Equal{}
	}
	return models.FieldValueChanged{Name: a.Name, Diff: value}
}

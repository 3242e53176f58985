package differ

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/assert"

	"github.com/mcncl/asserthint/internal/models"
)

func text(s string) models.Text {
	return models.Text{Raw: s}
}

func field(name string, v models.Value) models.Field {
	return models.Field{Name: name, Value: v}
}

func dto(name string, fields ...models.Field) models.Dto {
	return models.Dto{Name: name, Fields: fields}
}

func array(items ...models.Value) models.Array {
	return models.Array{Items: items}
}

func user(name string, other models.Value) models.Dto {
	return dto("User", field("name", text(name)), field("other", other))
}

func complicated(a string, e models.Value) models.Dto {
	return dto("Complicated",
		field("a", text(a)),
		field("b", text("2")),
		field("c", text("500")),
		field("d", text("600")),
		field("e", e),
		field("f", array()),
		field("g", array()),
	)
}

func assertDifference(t *testing.T, want, got models.Difference) {
	t.Helper()
	if diff := cmp.Diff(want, got, cmpopts.EquateEmpty()); diff != "" {
		t.Errorf("difference mismatch (-want +got):\n%s", diff)
	}
}

func TestDiff_Identity(t *testing.T) {
	values := []models.Value{
		models.Null{},
		text(""),
		text("hello"),
		array(),
		array(text("a"), models.Null{}),
		models.Map{Items: []models.Value{field("k", text("v"))}},
		user("first", user("second", models.Null{})),
		field("a", array(text("b"))),
	}

	for _, v := range values {
		assert.Equal(t, models.Equal{}, Diff(v, v), "value %s", models.Serialize(v))
	}
}

func TestDiff_TypeMismatch(t *testing.T) {
	tests := []struct {
		name        string
		left, right models.Value
		expected    models.TypeMismatch
	}{
		{name: "null vs text", left: models.Null{}, right: text("a"), expected: models.TypeMismatch{Left: "null", Right: "String"}},
		{name: "text vs null", left: text("a"), right: models.Null{}, expected: models.TypeMismatch{Left: "String", Right: "null"}},
		{name: "empty text vs null", left: text(""), right: models.Null{}, expected: models.TypeMismatch{Left: "String", Right: "null"}},
		{name: "array vs map", left: array(), right: models.Map{}, expected: models.TypeMismatch{Left: "Array", Right: "Map"}},
		{name: "dto vs null", left: user("a", models.Null{}), right: models.Null{}, expected: models.TypeMismatch{Left: "User", Right: "null"}},
		{name: "array vs dto", left: array(), right: dto("Admin"), expected: models.TypeMismatch{Left: "Array", Right: "Admin"}},
		{name: "field vs text", left: field("a", text("b")), right: text("a=b"), expected: models.TypeMismatch{Left: "Field", Right: "String"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assertDifference(t, tt.expected, Diff(tt.left, tt.right))
		})
	}
}

func TestDiff_Text(t *testing.T) {
	tests := []struct {
		name        string
		left, right string
		expected    models.Difference
	}{
		{
			name:  "appended word",
			left:  "hey ",
			right: "hey there",
			expected: models.Child{Items: []models.Difference{
				models.CharsEqual{Text: "hey "},
				models.CharsAdd{Text: "there"},
			}},
		},
		{
			name:  "replaced character",
			left:  "1",
			right: "2",
			expected: models.Child{Items: []models.Difference{
				models.CharsRemove{Text: "1"},
				models.CharsAdd{Text: "2"},
			}},
		},
		{
			name:  "common prefix",
			left:  "asd",
			right: "aaa",
			expected: models.Child{Items: []models.Difference{
				models.CharsEqual{Text: "a"},
				models.CharsRemove{Text: "sd"},
				models.CharsAdd{Text: "aa"},
			}},
		},
		{
			name:  "removed suffix",
			left:  "hello world",
			right: "hello",
			expected: models.Child{Items: []models.Difference{
				models.CharsEqual{Text: "hello"},
				models.CharsRemove{Text: " world"},
			}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assertDifference(t, tt.expected, Diff(text(tt.left), text(tt.right)))
		})
	}
}

func TestDiff_ArrayIsPositional(t *testing.T) {
	short := array(text("a"), text("b"))
	long := array(text("a"), text("b"), text("c"))

	assertDifference(t, models.ArrayChange{Items: []models.Difference{
		models.Equal{},
		models.Equal{},
		models.MissingOnLeft{Value: text("c")},
	}}, Diff(short, long))

	assertDifference(t, models.ArrayChange{Items: []models.Difference{
		models.Equal{},
		models.Equal{},
		models.MissingOnRight{Value: text("c")},
	}}, Diff(long, short))
}

func TestDiff_ArrayInsertionInTheMiddleCascades(t *testing.T) {
	got := Diff(array(text("a"), text("c")), array(text("a"), text("b"), text("c")))

	assertDifference(t, models.ArrayChange{Items: []models.Difference{
		models.Equal{},
		models.Child{Items: []models.Difference{
			models.CharsRemove{Text: "c"},
			models.CharsAdd{Text: "b"},
		}},
		models.MissingOnLeft{Value: text("c")},
	}}, got)
}

func TestDiff_MapUsesArrayChange(t *testing.T) {
	left := models.Map{Items: []models.Value{field("k", text("a"))}}
	right := models.Map{Items: []models.Value{field("k", text("b"))}}

	assertDifference(t, models.ArrayChange{Items: []models.Difference{
		models.FieldValueChanged{Name: "k", Diff: models.Child{Items: []models.Difference{
			models.CharsRemove{Text: "a"},
			models.CharsAdd{Text: "b"},
		}}},
	}}, Diff(left, right))
}

func TestDiff_DtoFieldValueChanged(t *testing.T) {
	left := dto("User", field("firstName", models.Null{}), field("lastname", text("hey ")), field("age", text("3")))
	right := dto("User", field("firstName", models.Null{}), field("lastname", text("hey there")), field("age", text("3")))

	assertDifference(t, models.DtoChange{Name: "User", Items: []models.Difference{
		models.Equal{},
		models.FieldValueChanged{Name: "lastname", Diff: models.Child{Items: []models.Difference{
			models.CharsEqual{Text: "hey "},
			models.CharsAdd{Text: "there"},
		}}},
		models.Equal{},
	}}, Diff(left, right))
}

func TestDiff_NestedTypeMismatch(t *testing.T) {
	left := user("1", user("2", models.Null{}))
	right := user("1", models.Null{})

	assertDifference(t, models.DtoChange{Name: "User", Items: []models.Difference{
		models.Equal{},
		models.FieldValueChanged{Name: "other", Diff: models.TypeMismatch{Left: "User", Right: "null"}},
	}}, Diff(left, right))
}

func TestDiff_ClassChange(t *testing.T) {
	got := Diff(dto("User", field("a", text("1"))), dto("Admin", field("a", text("2"))))

	assertDifference(t, models.ClassChange{Diff: models.Child{Items: []models.Difference{
		models.CharsRemove{Text: "User"},
		models.CharsAdd{Text: "Admin"},
	}}}, got)
}

func TestDiff_FieldRenamedIgnoresValue(t *testing.T) {
	got := Diff(dto("User", field("lastname", text("a"))), dto("User", field("lastName", text("b"))))

	assertDifference(t, models.DtoChange{Name: "User", Items: []models.Difference{
		models.FieldRenamed{Name: "lastname", Diff: models.Child{Items: []models.Difference{
			models.CharsEqual{Text: "last"},
			models.CharsRemove{Text: "n"},
			models.CharsAdd{Text: "N"},
			models.CharsEqual{Text: "ame"},
		}}},
	}}, got)
}

func TestDiff_ExtraFieldCountsAsEqual(t *testing.T) {
	got := Diff(dto("User", field("a", text("1"))), dto("User", field("a", text("1")), field("b", text("2"))))

	assertDifference(t, models.DtoChange{Name: "User", Items: []models.Difference{
		models.Equal{},
		models.Equal{},
	}}, got)
}

func TestDiff_Complicated(t *testing.T) {
	left := dto("Complicated",
		field("a", text("hey")),
		field("b", text("2")),
		field("c", text("500")),
		field("d", text("600")),
		field("e", models.Map{Items: []models.Value{field("eee", complicated("a", models.Map{}))}}),
		field("f", array(complicated("thing", models.Map{}))),
		field("g", array(complicated("hehe", models.Map{}))),
	)
	right := dto("Complicated",
		field("a", text("hey")),
		field("b", text("2")),
		field("c", text("500")),
		field("d", text("600")),
		field("e", models.Map{Items: []models.Value{field("eee", complicated("b", models.Map{}))}}),
		field("f", array(complicated("thing", models.Map{}))),
		field("g", array(complicated("hehe", models.Map{}))),
	)

	expected := models.DtoChange{Name: "Complicated", Items: []models.Difference{
		models.Equal{},
		models.Equal{},
		models.Equal{},
		models.Equal{},
		models.FieldValueChanged{Name: "e", Diff: models.ArrayChange{Items: []models.Difference{
			models.FieldValueChanged{Name: "eee", Diff: models.DtoChange{Name: "Complicated", Items: []models.Difference{
				models.FieldValueChanged{Name: "a", Diff: models.Child{Items: []models.Difference{
					models.CharsRemove{Text: "a"},
					models.CharsAdd{Text: "b"},
				}}},
				models.Equal{},
				models.Equal{},
				models.Equal{},
				models.Equal{},
				models.Equal{},
				models.Equal{},
			}}},
		}}},
		models.Equal{},
		models.Equal{},
	}}

	assertDifference(t, expected, Diff(left, right))
}

func TestDiff_NotSymmetric(t *testing.T) {
	ab := Diff(text("a"), text("ab"))
	ba := Diff(text("ab"), text("a"))

	assertDifference(t, models.Child{Items: []models.Difference{
		models.CharsEqual{Text: "a"},
		models.CharsAdd{Text: "b"},
	}}, ab)
	assertDifference(t, models.Child{Items: []models.Difference{
		models.CharsEqual{Text: "a"},
		models.CharsRemove{Text: "b"},
	}}, ba)
}

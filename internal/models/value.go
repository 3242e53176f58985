package models

import "strings"

// Kind is the coarse type of a Value, used for the type-mismatch check.
type Kind int

const (
	KindNull Kind = iota
	KindText
	KindArray
	KindMap
	KindDto
	KindField
)

// String returns the label used in hints. Dto values are labelled by their
// class name instead, see Label.
func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindText:
		return "String"
	case KindArray:
		return "Array"
	case KindMap:
		return "Map"
	case KindDto:
		return "Dto"
	case KindField:
		return "Field"
	default:
		return "unknown"
	}
}

// Value is a node of a parsed object dump. The concrete types are Null,
// Text, Array, Map, Dto and Field.
type Value interface {
	Kind() Kind
	isValue()
}

// Null is the literal "null".
type Null struct{}

// Text is any other leaf token, kept verbatim.
type Text struct {
	Raw string
}

// Array is a "[...]" sequence.
type Array struct {
	Items []Value
}

// Map is a "{...}" sequence. Items are usually Fields but need not be.
type Map struct {
	Items []Value
}

// Dto is a "Name(field=value, ...)" object.
type Dto struct {
	Name   string
	Fields []Field
}

// Field is a "name=value" pair.
type Field struct {
	Name  string
	Value Value
}

func (Null) Kind() Kind  { return KindNull }
func (Text) Kind() Kind  { return KindText }
func (Array) Kind() Kind { return KindArray }
func (Map) Kind() Kind   { return KindMap }
func (Dto) Kind() Kind   { return KindDto }
func (Field) Kind() Kind { return KindField }

func (Null) isValue()  {}
func (Text) isValue()  {}
func (Array) isValue() {}
func (Map) isValue()   {}
func (Dto) isValue()   {}
func (Field) isValue() {}

func (v Null) String() string  { return Serialize(v) }
func (v Text) String() string  { return Serialize(v) }
func (v Array) String() string { return Serialize(v) }
func (v Map) String() string   { return Serialize(v) }
func (v Dto) String() string   { return Serialize(v) }
func (v Field) String() string { return Serialize(v) }

// Label names the kind of v for type-mismatch messages. A Dto is named by
// its class.
func Label(v Value) string {
	if d, ok := v.(Dto); ok {
		return d.Name
	}
	return v.Kind().String()
}

// DeepEqual reports whether a and b are structurally identical.
func DeepEqual(a, b Value) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	if a.Kind() != b.Kind() {
		return false
	}
	switch l := a.(type) {
	case Null:
		return true
	case Text:
		return l.Raw == b.(Text).Raw
	case Array:
		return equalValues(l.Items, b.(Array).Items)
	case Map:
		return equalValues(l.Items, b.(Map).Items)
	case Dto:
		r := b.(Dto)
		return l.Name == r.Name && EqualFields(l.Fields, r.Fields)
	case Field:
		return equalField(l, b.(Field))
	default:
		panic("models: unhandled value type")
	}
}

// EqualFields compares two field lists in order.
func EqualFields(a, b []Field) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !equalField(a[i], b[i]) {
			return false
		}
	}
	return true
}

func equalField(a, b Field) bool {
	return a.Name == b.Name && DeepEqual(a.Value, b.Value)
}

func equalValues(a, b []Value) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !DeepEqual(a[i], b[i]) {
			return false
		}
	}
	return true
}

// Serialize writes v back in dump-like notation: text is quoted, list items
// are joined by "," without spaces, e.g. User(name="second",other=null).
// The output is meant for humans and is not guaranteed to parse back.
func Serialize(v Value) string {
	var sb strings.Builder
	serialize(&sb, v)
	return sb.String()
}

func serialize(sb *strings.Builder, v Value) {
	switch val := v.(type) {
	case nil:
	case Null:
		sb.WriteString("null")
	case Text:
		sb.WriteByte('"')
		sb.WriteString(val.Raw)
		sb.WriteByte('"')
	case Array:
		sb.WriteByte('[')
		serializeList(sb, val.Items)
		sb.WriteByte(']')
	case Map:
		sb.WriteByte('{')
		serializeList(sb, val.Items)
		sb.WriteByte('}')
	case Dto:
		sb.WriteString(val.Name)
		sb.WriteByte('(')
		for i, f := range val.Fields {
			if i > 0 {
				sb.WriteByte(',')
			}
			serialize(sb, f)
		}
		sb.WriteByte(')')
	case Field:
		sb.WriteString(val.Name)
		sb.WriteByte('=')
		serialize(sb, val.Value)
	default:
		panic("models: unhandled value type")
	}
}

func serializeList(sb *strings.Builder, items []Value) {
	for i, item := range items {
		if i > 0 {
			sb.WriteByte(',')
		}
		serialize(sb, item)
	}
}

// AssertionPair holds both sides of a failed equality assertion.
type AssertionPair struct {
	Expected Value
	Actual   Value
}

package models

// Difference is a node of the result of comparing two Values. Each non-Equal
// node carries just enough detail to render one fragment of a hint.
type Difference interface {
	isDifference()
}

// Equal means both sides are identical.
type Equal struct{}

// TypeMismatch means the two values are of different kinds.
type TypeMismatch struct {
	Left  string
	Right string
}

// Child groups character segments or field differences.
type Child struct {
	Items []Difference
}

// ArrayChange is the element-wise comparison of two arrays or maps.
type ArrayChange struct {
	Items []Difference
}

// DtoChange is the field-wise comparison of two DTOs of the same class.
type DtoChange struct {
	Name  string
	Items []Difference
}

// CharsEqual is a run of characters common to both texts.
type CharsEqual struct {
	Text string
}

// CharsRemove is a run of characters only in the left text.
type CharsRemove struct {
	Text string
}

// CharsAdd is a run of characters only in the right text.
type CharsAdd struct {
	Text string
}

// MissingOnLeft is an element only the right sequence has. Value may be nil.
type MissingOnLeft struct {
	Value Value
}

// MissingOnRight is an element only the left sequence has. Value may be nil.
type MissingOnRight struct {
	Value Value
}

// ClassChange wraps the text diff of two differing DTO class names.
type ClassChange struct {
	Diff Difference
}

// FieldRenamed wraps the text diff of two differing field names.
type FieldRenamed struct {
	Name string
	Diff Difference
}

// FieldValueChanged wraps the difference of two same-named field values.
type FieldValueChanged struct {
	Name string
	Diff Difference
}

func (Equal) isDifference()             {}
func (TypeMismatch) isDifference()      {}
func (Child) isDifference()             {}
func (ArrayChange) isDifference()       {}
func (DtoChange) isDifference()         {}
func (CharsEqual) isDifference()        {}
func (CharsRemove) isDifference()       {}
func (CharsAdd) isDifference()          {}
func (MissingOnLeft) isDifference()     {}
func (MissingOnRight) isDifference()    {}
func (ClassChange) isDifference()       {}
func (FieldRenamed) isDifference()      {}
func (FieldValueChanged) isDifference() {}

// IsEqual reports whether d is the Equal terminal.
func IsEqual(d Difference) bool {
	_, ok := d.(Equal)
	return ok
}

// DifferenceName returns a short name of the variant of d, for logging.
func DifferenceName(d Difference) string {
	switch d.(type) {
	case Equal:
		return "equal"
	case TypeMismatch:
		return "type_mismatch"
	case Child:
		return "child"
	case ArrayChange:
		return "array_change"
	case DtoChange:
		return "dto_change"
	case CharsEqual:
		return "chars_equal"
	case CharsRemove:
		return "chars_remove"
	case CharsAdd:
		return "chars_add"
	case MissingOnLeft:
		return "missing_on_left"
	case MissingOnRight:
		return "missing_on_right"
	case ClassChange:
		return "class_change"
	case FieldRenamed:
		return "field_renamed"
	case FieldValueChanged:
		return "field_value_changed"
	default:
		return "unknown"
	}
}

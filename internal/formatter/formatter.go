// Package formatter renders a models.Difference as a one-line hint such as
//
//	-> User(.lastname -> aaa)
package formatter

import (
	"fmt"
	"strings"

	"github.com/fatih/color"

	"github.com/mcncl/asserthint/internal/models"
)

// Formatter turns difference trees into hints. Colorization is fixed per
// Formatter and never read from global state.
type Formatter struct {
	colorize bool
	typeName *color.Color
	removed  *color.Color
	added    *color.Color
}

// NewFormatter creates a new Formatter instance
func NewFormatter(colorize bool) *Formatter {
	f := &Formatter{
		colorize: colorize,
		typeName: color.New(color.FgYellow),
		removed:  color.New(color.FgRed),
		added:    color.New(color.FgGreen),
	}
	// fatih/color disables itself when stdout is not a terminal; the caller
	// has already decided.
	for _, c := range []*color.Color{f.typeName, f.removed, f.added} {
		c.EnableColor()
	}
	return f
}

// Format renders diff. An Equal difference renders as the empty string.
func (f *Formatter) Format(diff models.Difference) string {
	var sb strings.Builder
	f.write(&sb, diff)
	return sb.String()
}

// Render is a shorthand for NewFormatter(colorize).Format(diff).
func Render(diff models.Difference, colorize bool) string {
	return NewFormatter(colorize).Format(diff)
}

func (f *Formatter) write(sb *strings.Builder, diff models.Difference) {
	switch d := diff.(type) {
	case models.Equal:
	case models.TypeMismatch:
		fmt.Fprintf(sb, ` "%s" and "%s" are not the same Type`, f.paint(f.typeName, d.Left), f.paint(f.typeName, d.Right))
	case models.Child:
		sb.WriteString(" -> ")
		f.writeAll(sb, d.Items)
	case models.ArrayChange:
		sb.WriteString(" -> [")
		f.writeAll(sb, d.Items)
		sb.WriteString("]")
	case models.DtoChange:
		sb.WriteString(" -> " + d.Name + "(")
		f.writeAll(sb, d.Items)
		sb.WriteString(")")
	case models.CharsEqual:
		sb.WriteString(d.Text)
	case models.CharsRemove:
		// plain hints show the actual value only
		if f.colorize {
			sb.WriteString(f.removed.Sprint(d.Text))
		}
	case models.CharsAdd:
		sb.WriteString(f.paint(f.added, d.Text))
	case models.MissingOnLeft:
		writeMissing(sb, "additional", d.Value)
	case models.MissingOnRight:
		writeMissing(sb, "missing", d.Value)
	case models.ClassChange:
		f.write(sb, d.Diff)
	case models.FieldRenamed:
		sb.WriteString("." + d.Name + " was ")
		f.write(sb, d.Diff)
	case models.FieldValueChanged:
		sb.WriteString("." + d.Name)
		f.write(sb, d.Diff)
	default:
		panic(fmt.Sprintf("formatter: unhandled difference type %T", diff))
	}
}

func (f *Formatter) writeAll(sb *strings.Builder, items []models.Difference) {
	for _, item := range items {
		f.write(sb, item)
	}
}

func (f *Formatter) paint(c *color.Color, s string) string {
	if !f.colorize {
		return s
	}
	return c.Sprint(s)
}

func writeMissing(sb *strings.Builder, keyword string, v models.Value) {
	sb.WriteString(" " + keyword)
	if v != nil {
		sb.WriteString(" " + models.Serialize(v))
	}
}

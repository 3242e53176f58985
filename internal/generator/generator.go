package generator

import (
	"bytes"
	"strings"

	"github.com/mcncl/asserthint/internal/config"
	"github.com/mcncl/asserthint/internal/models"
)

var textEscaper = strings.NewReplacer(`\`, `\\`, `"`, `\"`)

// Generator renders values as fluent builder code, e.g.
//
//	User.builder()
//	  .name("first")
//	  .other(null)
//	  .build()
type Generator struct {
	config *config.Config
}

// NewGenerator creates a new Generator with the default configuration
func NewGenerator() *Generator {
	return &Generator{config: config.NewConfig()}
}

// NewGeneratorWithConfig creates a new Generator with custom configuration
func NewGeneratorWithConfig(cfg *config.Config) *Generator {
	return &Generator{config: cfg}
}

// Generate renders value as builder code. indent is the column the value
// starts at; nested lines are indented one step further than their parent.
func (g *Generator) Generate(value models.Value, indent int) string {
	var buf bytes.Buffer
	g.writeValue(&buf, value, indent)
	return buf.String()
}

func (g *Generator) writeValue(buf *bytes.Buffer, value models.Value, indent int) {
	switch v := value.(type) {
	case models.Null:
		buf.WriteString("null")
	case models.Text:
		buf.WriteString(`"` + textEscaper.Replace(v.Raw) + `"`)
	case models.Array:
		g.writeCollection(buf, g.config.Builder.ListFactory, v.Items, indent)
	case models.Map:
		g.writeCollection(buf, g.config.Builder.MapFactory, v.Items, indent)
	case models.Dto:
		g.writeDto(buf, v, indent)
	case models.Field:
		// only reached for fields outside a Dto, i.e. map entries
		buf.WriteString(v.Name)
		buf.WriteString(", ")
		g.writeValue(buf, v.Value, indent)
	default:
		panic("generator: unhandled value type")
	}
}

func (g *Generator) writeCollection(buf *bytes.Buffer, factory string, items []models.Value, indent int) {
	buf.WriteString(factory)
	if len(items) == 0 {
		buf.WriteString("()")
		return
	}

	inner := indent + g.config.Builder.Indent
	buf.WriteString("(\n")
	for i, item := range items {
		if i > 0 {
			buf.WriteString(",\n")
		}
		writeIndent(buf, inner)
		g.writeValue(buf, item, inner)
	}
	buf.WriteString("\n")
	writeIndent(buf, indent)
	buf.WriteString(")")
}

func (g *Generator) writeDto(buf *bytes.Buffer, dto models.Dto, indent int) {
	inner := indent + g.config.Builder.Indent

	buf.WriteString(dto.Name + "." + g.config.Builder.BuilderMethod + "()")
	for _, field := range dto.Fields {
		if g.config.ShouldSkipField(field.Name) {
			continue
		}
		buf.WriteString("\n")
		writeIndent(buf, inner)
		buf.WriteString("." + g.config.MethodName(field.Name) + "(")
		g.writeValue(buf, field.Value, inner)
		buf.WriteString(")")
	}
	buf.WriteString("\n")
	writeIndent(buf, inner)
	buf.WriteString("." + g.config.Builder.BuildMethod + "()")
}

func writeIndent(buf *bytes.Buffer, n int) {
	buf.WriteString(strings.Repeat(" ", n))
}

package format

import (
	"fmt"
	"io"
	"strings"

	"github.com/dhamidi/classmodel/typemodel"
)

// LineEncoder writes one tab-separated declaration per line. Sections are
// separated by a blank line, and so are member groups within a section.
type LineEncoder struct {
	w    io.Writer
	desc *Description
}

func NewLineEncoder(w io.Writer) *LineEncoder {
	return &LineEncoder{w: w}
}

func (e *LineEncoder) Encode(t typemodel.Type) error {
	desc, err := Describe(t)
	if err != nil {
		return err
	}
	e.desc = desc
	text, err := e.MarshalText()
	if err != nil {
		return err
	}
	_, err = e.w.Write(text)
	return err
}

func (e *LineEncoder) MarshalText() ([]byte, error) {
	var sb strings.Builder
	d := e.desc

	fmt.Fprintf(&sb, "%s\t%s%s\t%s\n", d.Kind, d.Name, d.TypeParameters, joinOrDash(d.Modifiers))
	if d.SuperClass != "" {
		fmt.Fprintf(&sb, "extends\t%s\n", d.SuperClass)
	}
	for _, i := range d.Interfaces {
		fmt.Fprintf(&sb, "implements\t%s\n", i)
	}
	if d.Component != "" {
		fmt.Fprintf(&sb, "component\t%s\t%d\n", d.Component, d.Dimensions)
	}

	writeSection(&sb, len(d.Constants), func(i int) string {
		return fmt.Sprintf("constant\t%s", d.Constants[i])
	}, nil)
	writeSection(&sb, len(d.Elements), func(i int) string {
		return fmt.Sprintf("element\t%s", d.Elements[i])
	}, nil)
	writeSection(&sb, len(d.Fields), func(i int) string {
		f := d.Fields[i]
		line := fmt.Sprintf("field\t%s\t%s\t%s", f.Name, f.Type, joinOrDash(f.Modifiers))
		if f.Constant != nil {
			line += "\t= " + javaLiteral(f.Descriptor, f.Constant)
		}
		return line
	}, func(i int) int { return d.Fields[i].Group })
	writeSection(&sb, len(d.Constructors), func(i int) string {
		c := d.Constructors[i]
		return fmt.Sprintf("constructor\t%s\t%s%s", parameterList(c.Parameters), joinOrDash(c.Modifiers), throwsSuffix(c.Throws))
	}, func(i int) int { return d.Constructors[i].Group })
	writeSection(&sb, len(d.Methods), func(i int) string {
		m := d.Methods[i]
		return fmt.Sprintf("method\t%s\t%s%s\t%s\t%s%s", m.Name, typeParameterPrefix(m.TypeParameters), m.ReturnType,
			parameterList(m.Parameters), joinOrDash(m.Modifiers), throwsSuffix(m.Throws))
	}, func(i int) int { return d.Methods[i].Group })
	writeSection(&sb, len(d.InnerTypes), func(i int) string {
		it := d.InnerTypes[i]
		return fmt.Sprintf("inner\t%s\t%s\t%s", it.SimpleName, it.Name, joinOrDash(it.Modifiers))
	}, nil)

	return []byte(sb.String()), nil
}

// writeSection writes n lines after a blank line. When group is set, a
// blank line also goes between lines whose groups differ.
func writeSection(sb *strings.Builder, n int, line func(i int) string, group func(i int) int) {
	if n == 0 {
		return
	}
	sb.WriteString("\n")
	for i := 0; i < n; i++ {
		if i > 0 && group != nil && group(i) != group(i-1) {
			sb.WriteString("\n")
		}
		sb.WriteString(line(i))
		sb.WriteString("\n")
	}
}

func joinOrDash(mods []string) string {
	if len(mods) == 0 {
		return "-"
	}
	return strings.Join(mods, ",")
}

func parameterList(params []ParameterDescription) string {
	parts := make([]string, len(params))
	for i, p := range params {
		parts[i] = p.Type
		if p.Name != "" {
			parts[i] += " " + p.Name
		}
		if p.Final {
			parts[i] = "final " + parts[i]
		}
	}
	return "(" + strings.Join(parts, ", ") + ")"
}

func typeParameterPrefix(tp string) string {
	if tp == "" {
		return ""
	}
	return tp + " "
}

func throwsSuffix(throws []string) string {
	if len(throws) == 0 {
		return ""
	}
	return "\tthrows " + strings.Join(throws, ",")
}

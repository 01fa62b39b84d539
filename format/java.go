package format

import (
	"fmt"
	"io"
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/cockroachdb/errors"

	"github.com/dhamidi/classmodel/typemodel"
)

// JavaEncoder renders a class or interface as a Java source skeleton:
// package, imports, declaration and member signatures with empty bodies.
// Names that are imported, in the type's own package or in java.lang are
// written by simple name.
type JavaEncoder struct {
	w       io.Writer
	desc    *Description
	imports []string
}

func NewJavaEncoder(w io.Writer) *JavaEncoder {
	return &JavaEncoder{w: w}
}

func (e *JavaEncoder) Encode(t typemodel.Type) error {
	switch t.Kind() {
	case typemodel.KindArray, typemodel.KindPrimitive, typemodel.KindVoid:
		return errors.Wrapf(typemodel.ErrWrongKind, "%s has no source form", t.ExternalName())
	}
	desc, err := Describe(t)
	if err != nil {
		return err
	}
	imports, err := Imports(t)
	if err != nil {
		return err
	}
	e.desc = desc
	e.imports = imports
	text, err := e.MarshalText()
	if err != nil {
		return err
	}
	_, err = e.w.Write(text)
	return err
}

func (e *JavaEncoder) MarshalText() ([]byte, error) {
	var sb strings.Builder
	d := e.desc

	if d.Package != "" {
		fmt.Fprintf(&sb, "package %s;\n\n", d.Package)
	}
	if len(e.imports) > 0 {
		for _, name := range e.imports {
			fmt.Fprintf(&sb, "import %s;\n", strings.ReplaceAll(name, "$", "."))
		}
		sb.WriteString("\n")
	}

	e.writeDeclaration(&sb)
	sb.WriteString(" {\n")
	body := &bodyWriter{sb: &sb}
	e.writeBody(body)
	sb.WriteString("}\n")
	return []byte(sb.String()), nil
}

func (e *JavaEncoder) writeDeclaration(sb *strings.Builder) {
	d := e.desc
	if d.Deprecated {
		sb.WriteString("@Deprecated\n")
	}
	for _, m := range d.Modifiers {
		sb.WriteString(m)
		sb.WriteString(" ")
	}
	switch d.Kind {
	case "annotation":
		sb.WriteString("@interface ")
	case "enum", "interface":
		sb.WriteString(d.Kind)
		sb.WriteString(" ")
	default:
		sb.WriteString("class ")
	}
	sb.WriteString(d.SimpleName)
	sb.WriteString(e.short(d.TypeParameters))

	if d.SuperClass != "" && d.SuperClass != "java.lang.Object" {
		sb.WriteString(" extends ")
		sb.WriteString(e.short(d.SuperClass))
	}
	if len(d.Interfaces) > 0 {
		if d.Kind == "interface" {
			sb.WriteString(" extends ")
		} else {
			sb.WriteString(" implements ")
		}
		for i, iface := range d.Interfaces {
			if i > 0 {
				sb.WriteString(", ")
			}
			sb.WriteString(e.short(iface))
		}
	}
}

// bodyWriter puts a blank line between member blocks.
type bodyWriter struct {
	sb      *strings.Builder
	written bool
}

func (b *bodyWriter) block() {
	if b.written {
		b.sb.WriteString("\n")
	}
	b.written = true
}

func (b *bodyWriter) line(format string, args ...any) {
	b.sb.WriteString("    ")
	fmt.Fprintf(b.sb, format, args...)
	b.sb.WriteString("\n")
}

func (e *JavaEncoder) writeBody(b *bodyWriter) {
	d := e.desc

	if len(d.Constants) > 0 {
		b.block()
		b.line("%s;", strings.Join(d.Constants, ", "))
	}
	if len(d.Elements) > 0 {
		b.block()
		for _, el := range d.Elements {
			b.line("// element %s", el)
		}
	}

	for i, f := range d.Fields {
		if i == 0 || f.Group != d.Fields[i-1].Group {
			b.block()
		}
		decl := prefixModifiers(f.Modifiers) + e.short(f.Type) + " " + f.Name
		if f.Constant != nil {
			decl += " = " + javaLiteral(f.Descriptor, f.Constant)
		}
		b.line("%s;", decl)
	}

	for i, c := range d.Constructors {
		if i == 0 || c.Group != d.Constructors[i-1].Group {
			b.block()
		}
		b.line("%s%s%s(%s)%s { }", prefixModifiers(c.Modifiers), typeParameterPrefix(e.short(c.TypeParameters)),
			d.SimpleName, e.parameters(c), e.throws(c.Throws))
	}

	for i, m := range d.Methods {
		if i == 0 || m.Group != d.Methods[i-1].Group {
			b.block()
		}
		mods := m.Modifiers
		if d.Kind == "interface" {
			mods = without(mods, "abstract")
		}
		end := " { }"
		if contains(m.Modifiers, "abstract") || contains(m.Modifiers, "native") {
			end = ";"
		}
		b.line("%s%s%s %s(%s)%s%s", prefixModifiers(mods), typeParameterPrefix(e.short(m.TypeParameters)),
			e.short(m.ReturnType), m.Name, e.parameters(m), e.throws(m.Throws), end)
	}
}

func (e *JavaEncoder) parameters(m MethodDescription) string {
	parts := make([]string, len(m.Parameters))
	for i, p := range m.Parameters {
		typ := e.short(p.Type)
		if m.Varargs && i == len(m.Parameters)-1 && strings.HasSuffix(typ, "[]") {
			typ = strings.TrimSuffix(typ, "[]") + "..."
		}
		name := p.Name
		if name == "" {
			name = "arg" + strconv.Itoa(i)
		}
		parts[i] = typ + " " + name
		if p.Final {
			parts[i] = "final " + parts[i]
		}
	}
	return strings.Join(parts, ", ")
}

func (e *JavaEncoder) throws(throws []string) string {
	if len(throws) == 0 {
		return ""
	}
	parts := make([]string, len(throws))
	for i, t := range throws {
		parts[i] = e.short(t)
	}
	return " throws " + strings.Join(parts, ", ")
}

var qualifiedName = regexp.MustCompile(`[A-Za-z_$][\w$]*(?:\.[A-Za-z_$][\w$]*)+`)

// short rewrites the qualified names in a rendered type that need no
// qualification in the skeleton.
func (e *JavaEncoder) short(s string) string {
	if s == "" {
		return s
	}
	return qualifiedName.ReplaceAllStringFunc(s, func(name string) string {
		i := strings.LastIndexByte(name, '.')
		pkg := name[:i]
		if pkg != e.desc.Package && pkg != "java.lang" && !contains(e.imports, name) {
			return name
		}
		simple := name[i+1:]
		return simple[strings.LastIndexByte(simple, '$')+1:]
	})
}

func prefixModifiers(mods []string) string {
	if len(mods) == 0 {
		return ""
	}
	return strings.Join(mods, " ") + " "
}

func contains(list []string, s string) bool {
	for _, x := range list {
		if x == s {
			return true
		}
	}
	return false
}

func without(list []string, s string) []string {
	var out []string
	for _, x := range list {
		if x != s {
			out = append(out, x)
		}
	}
	return out
}

// javaLiteral renders a constant the way it would be written in source.
// Booleans and chars are stored as ints, so the field descriptor decides.
func javaLiteral(descriptor string, v any) string {
	switch v := v.(type) {
	case int32:
		switch descriptor {
		case "Z":
			return strconv.FormatBool(v != 0)
		case "C":
			return "'" + escapeJava(string(rune(v)), '\'') + "'"
		}
		return strconv.FormatInt(int64(v), 10)
	case int64:
		return strconv.FormatInt(v, 10) + "L"
	case float32:
		switch {
		case math.IsNaN(float64(v)):
			return "Float.NaN"
		case math.IsInf(float64(v), 1):
			return "Float.POSITIVE_INFINITY"
		case math.IsInf(float64(v), -1):
			return "Float.NEGATIVE_INFINITY"
		}
		return withPoint(strconv.FormatFloat(float64(v), 'g', -1, 32)) + "f"
	case float64:
		switch {
		case math.IsNaN(v):
			return "Double.NaN"
		case math.IsInf(v, 1):
			return "Double.POSITIVE_INFINITY"
		case math.IsInf(v, -1):
			return "Double.NEGATIVE_INFINITY"
		}
		return withPoint(strconv.FormatFloat(v, 'g', -1, 64))
	case string:
		return `"` + escapeJava(v, '"') + `"`
	}
	return fmt.Sprint(v)
}

func withPoint(s string) string {
	if strings.ContainsAny(s, ".eE") {
		return s
	}
	return s + ".0"
}

func escapeJava(s string, quote rune) string {
	var sb strings.Builder
	for _, r := range s {
		switch {
		case r == quote || r == '\\':
			sb.WriteRune('\\')
			sb.WriteRune(r)
		case r == '\n':
			sb.WriteString(`\n`)
		case r == '\t':
			sb.WriteString(`\t`)
		case r == '\r':
			sb.WriteString(`\r`)
		case r < 0x20:
			fmt.Fprintf(&sb, `\u%04x`, r)
		default:
			sb.WriteRune(r)
		}
	}
	return sb.String()
}

package classfile

import (
	"strings"

	"github.com/cockroachdb/errors"
)

// TypeSignature is one of *BaseTypeSignature, *ClassTypeSignature,
// *TypeVariableSignature or *ArrayTypeSignature.
type TypeSignature interface {
	// String renders the type in Java source form.
	String() string
	// ClassNames appends the internal names of all classes the signature
	// mentions, type arguments included.
	ClassNames(dst []string) []string
}

type BaseTypeSignature struct {
	Name string
}

type ClassTypeSignature struct {
	// Package is the internal package prefix including its trailing slash,
	// e.g. "java/util/". Empty for the default package.
	Package  string
	Segments []SimpleClassTypeSignature
}

// SimpleClassTypeSignature is one class in a (possibly nested) class type,
// with its own type arguments.
type SimpleClassTypeSignature struct {
	Name      string
	Arguments []TypeArgument
}

type Wildcard byte

const (
	WildcardNone    Wildcard = 0
	WildcardAny     Wildcard = '*'
	WildcardExtends Wildcard = '+'
	WildcardSuper   Wildcard = '-'
)

type TypeArgument struct {
	Wildcard Wildcard
	// Type is nil for the unbounded wildcard.
	Type TypeSignature
}

type TypeVariableSignature struct {
	Name string
}

type ArrayTypeSignature struct {
	Component TypeSignature
}

type TypeParameter struct {
	Name string
	// ClassBound is nil when the parameter has only interface bounds.
	ClassBound      TypeSignature
	InterfaceBounds []TypeSignature
}

type ClassSignature struct {
	TypeParameters []TypeParameter
	Superclass     *ClassTypeSignature
	Interfaces     []*ClassTypeSignature
}

type MethodSignature struct {
	TypeParameters []TypeParameter
	Parameters     []TypeSignature
	// Result is nil for void.
	Result TypeSignature
	Throws []TypeSignature
}

func (s *BaseTypeSignature) String() string { return s.Name }
func (s *BaseTypeSignature) ClassNames(dst []string) []string { return dst }

// InternalName returns the binary name of the class, with nested segments
// joined by '$'.
func (s *ClassTypeSignature) InternalName() string {
	names := make([]string, len(s.Segments))
	for i, seg := range s.Segments {
		names[i] = seg.Name
	}
	return s.Package + strings.Join(names, "$")
}

func (s *ClassTypeSignature) String() string {
	var sb strings.Builder
	sb.WriteString(InternalToSourceName(s.Package))
	for i, seg := range s.Segments {
		if i > 0 {
			sb.WriteByte('.')
		}
		sb.WriteString(seg.Name)
		if len(seg.Arguments) > 0 {
			sb.WriteByte('<')
			for j, arg := range seg.Arguments {
				if j > 0 {
					sb.WriteString(", ")
				}
				sb.WriteString(arg.String())
			}
			sb.WriteByte('>')
		}
	}
	return sb.String()
}

func (s *ClassTypeSignature) ClassNames(dst []string) []string {
	dst = append(dst, s.InternalName())
	for _, seg := range s.Segments {
		for _, arg := range seg.Arguments {
			if arg.Type != nil {
				dst = arg.Type.ClassNames(dst)
			}
		}
	}
	return dst
}

func (a TypeArgument) String() string {
	switch a.Wildcard {
	case WildcardAny:
		return "?"
	case WildcardExtends:
		return "? extends " + a.Type.String()
	case WildcardSuper:
		return "? super " + a.Type.String()
	}
	return a.Type.String()
}

func (s *TypeVariableSignature) String() string { return s.Name }
func (s *TypeVariableSignature) ClassNames(dst []string) []string { return dst }

func (s *ArrayTypeSignature) String() string { return s.Component.String() + "[]" }
func (s *ArrayTypeSignature) ClassNames(dst []string) []string {
	return s.Component.ClassNames(dst)
}

func (p TypeParameter) String() string {
	var bounds []string
	if p.ClassBound != nil {
		bounds = append(bounds, p.ClassBound.String())
	}
	for _, b := range p.InterfaceBounds {
		bounds = append(bounds, b.String())
	}
	// A lone java.lang.Object bound is implicit in source.
	if len(bounds) == 0 || (len(bounds) == 1 && bounds[0] == "java.lang.Object") {
		return p.Name
	}
	return p.Name + " extends " + strings.Join(bounds, " & ")
}

// ClassNames appends the classes named in the parameter's bounds.
func (p TypeParameter) ClassNames(dst []string) []string {
	if p.ClassBound != nil {
		dst = p.ClassBound.ClassNames(dst)
	}
	for _, b := range p.InterfaceBounds {
		dst = b.ClassNames(dst)
	}
	return dst
}

// FormatTypeParameters renders a type parameter section such as
// "<K, V extends java.lang.Number>", or "" when params is empty.
func FormatTypeParameters(params []TypeParameter) string {
	if len(params) == 0 {
		return ""
	}
	parts := make([]string, len(params))
	for i, p := range params {
		parts[i] = p.String()
	}
	return "<" + strings.Join(parts, ", ") + ">"
}

func (s *ClassSignature) ClassNames(dst []string) []string {
	for _, p := range s.TypeParameters {
		dst = p.ClassNames(dst)
	}
	if s.Superclass != nil {
		dst = s.Superclass.ClassNames(dst)
	}
	for _, i := range s.Interfaces {
		dst = i.ClassNames(dst)
	}
	return dst
}

func (s *MethodSignature) ClassNames(dst []string) []string {
	for _, p := range s.TypeParameters {
		dst = p.ClassNames(dst)
	}
	for _, p := range s.Parameters {
		dst = p.ClassNames(dst)
	}
	if s.Result != nil {
		dst = s.Result.ClassNames(dst)
	}
	for _, t := range s.Throws {
		dst = t.ClassNames(dst)
	}
	return dst
}

type sigParser struct {
	s   string
	pos int
}

func (p *sigParser) errorf(format string, args ...any) error {
	return errors.Newf("signature %q at offset %d: "+format, append([]any{p.s, p.pos}, args...)...)
}

func (p *sigParser) peek() byte {
	if p.pos < len(p.s) {
		return p.s[p.pos]
	}
	return 0
}

func (p *sigParser) expect(c byte) error {
	if p.peek() != c {
		return p.errorf("expected %q", c)
	}
	p.pos++
	return nil
}

func (p *sigParser) identifier() (string, error) {
	start := p.pos
	for p.pos < len(p.s) && strings.IndexByte(".;[/<>:", p.s[p.pos]) < 0 {
		p.pos++
	}
	if p.pos == start {
		return "", p.errorf("expected identifier")
	}
	return p.s[start:p.pos], nil
}

func (p *sigParser) typeParameters() ([]TypeParameter, error) {
	if p.peek() != '<' {
		return nil, nil
	}
	p.pos++
	var params []TypeParameter
	for p.peek() != '>' {
		name, err := p.identifier()
		if err != nil {
			return nil, err
		}
		tp := TypeParameter{Name: name}
		if err := p.expect(':'); err != nil {
			return nil, err
		}
		if c := p.peek(); c != ':' && c != '>' {
			if tp.ClassBound, err = p.referenceType(); err != nil {
				return nil, err
			}
		}
		for p.peek() == ':' {
			p.pos++
			bound, err := p.referenceType()
			if err != nil {
				return nil, err
			}
			tp.InterfaceBounds = append(tp.InterfaceBounds, bound)
		}
		params = append(params, tp)
		if p.pos >= len(p.s) {
			return nil, p.errorf("unterminated type parameters")
		}
	}
	p.pos++
	if len(params) == 0 {
		return nil, p.errorf("empty type parameters")
	}
	return params, nil
}

func (p *sigParser) referenceType() (TypeSignature, error) {
	switch p.peek() {
	case 'L':
		return p.classType()
	case 'T':
		p.pos++
		name, err := p.identifier()
		if err != nil {
			return nil, err
		}
		if err := p.expect(';'); err != nil {
			return nil, err
		}
		return &TypeVariableSignature{Name: name}, nil
	case '[':
		p.pos++
		component, err := p.javaType()
		if err != nil {
			return nil, err
		}
		return &ArrayTypeSignature{Component: component}, nil
	}
	return nil, p.errorf("expected reference type")
}

func (p *sigParser) javaType() (TypeSignature, error) {
	if name, ok := baseTypes[p.peek()]; ok {
		p.pos++
		return &BaseTypeSignature{Name: name}, nil
	}
	return p.referenceType()
}

func (p *sigParser) classType() (*ClassTypeSignature, error) {
	if err := p.expect('L'); err != nil {
		return nil, err
	}
	sig := &ClassTypeSignature{}
	for {
		name, err := p.identifier()
		if err != nil {
			return nil, err
		}
		if p.peek() == '/' && len(sig.Segments) == 0 {
			p.pos++
			sig.Package += name + "/"
			continue
		}
		seg := SimpleClassTypeSignature{Name: name}
		if p.peek() == '<' {
			if seg.Arguments, err = p.typeArguments(); err != nil {
				return nil, err
			}
		}
		sig.Segments = append(sig.Segments, seg)
		switch p.peek() {
		case '.':
			p.pos++
		case ';':
			p.pos++
			return sig, nil
		default:
			return nil, p.errorf("expected '.' or ';' in class type")
		}
	}
}

func (p *sigParser) typeArguments() ([]TypeArgument, error) {
	p.pos++
	var args []TypeArgument
	for p.peek() != '>' {
		if p.pos >= len(p.s) {
			return nil, p.errorf("unterminated type arguments")
		}
		arg := TypeArgument{}
		switch c := p.peek(); c {
		case '*':
			p.pos++
			arg.Wildcard = WildcardAny
			args = append(args, arg)
			continue
		case '+', '-':
			p.pos++
			arg.Wildcard = Wildcard(c)
		}
		t, err := p.referenceType()
		if err != nil {
			return nil, err
		}
		arg.Type = t
		args = append(args, arg)
	}
	p.pos++
	return args, nil
}

func (p *sigParser) done() error {
	if p.pos != len(p.s) {
		return p.errorf("trailing characters")
	}
	return nil
}

func ParseClassSignature(s string) (*ClassSignature, error) {
	p := &sigParser{s: s}
	params, err := p.typeParameters()
	if err != nil {
		return nil, err
	}
	sig := &ClassSignature{TypeParameters: params}
	if sig.Superclass, err = p.classType(); err != nil {
		return nil, err
	}
	for p.pos < len(p.s) {
		iface, err := p.classType()
		if err != nil {
			return nil, err
		}
		sig.Interfaces = append(sig.Interfaces, iface)
	}
	return sig, nil
}

func ParseMethodSignature(s string) (*MethodSignature, error) {
	p := &sigParser{s: s}
	params, err := p.typeParameters()
	if err != nil {
		return nil, err
	}
	sig := &MethodSignature{TypeParameters: params}
	if err := p.expect('('); err != nil {
		return nil, err
	}
	for p.peek() != ')' {
		if p.pos >= len(p.s) {
			return nil, p.errorf("unterminated parameter list")
		}
		t, err := p.javaType()
		if err != nil {
			return nil, err
		}
		sig.Parameters = append(sig.Parameters, t)
	}
	p.pos++
	if p.peek() == 'V' {
		p.pos++
	} else if sig.Result, err = p.javaType(); err != nil {
		return nil, err
	}
	for p.peek() == '^' {
		p.pos++
		t, err := p.referenceType()
		if err != nil {
			return nil, err
		}
		sig.Throws = append(sig.Throws, t)
	}
	return sig, p.done()
}

func ParseFieldSignature(s string) (TypeSignature, error) {
	p := &sigParser{s: s}
	t, err := p.referenceType()
	if err != nil {
		return nil, err
	}
	return t, p.done()
}

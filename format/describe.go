package format

import (
	"github.com/cockroachdb/errors"

	"github.com/dhamidi/classmodel/classfile"
	"github.com/dhamidi/classmodel/typemodel"
)

// Description is a plain snapshot of a type, shared by all encoders. Type
// names are rendered in source form with generic arguments when known.
type Description struct {
	Kind           string   `json:"kind" yaml:"kind"`
	Name           string   `json:"name" yaml:"name"`
	SimpleName     string   `json:"simpleName" yaml:"simpleName"`
	Package        string   `json:"package,omitempty" yaml:"package,omitempty"`
	Modifiers      []string `json:"modifiers,omitempty" yaml:"modifiers,omitempty"`
	TypeParameters string   `json:"typeParameters,omitempty" yaml:"typeParameters,omitempty"`
	SuperClass     string   `json:"superClass,omitempty" yaml:"superClass,omitempty"`
	Interfaces     []string `json:"interfaces,omitempty" yaml:"interfaces,omitempty"`
	Outer          string   `json:"outer,omitempty" yaml:"outer,omitempty"`
	Deprecated     bool     `json:"deprecated,omitempty" yaml:"deprecated,omitempty"`
	Functional     bool     `json:"functional,omitempty" yaml:"functional,omitempty"`

	Constants []string `json:"constants,omitempty" yaml:"constants,omitempty"`
	Elements  []string `json:"elements,omitempty" yaml:"elements,omitempty"`

	Component  string `json:"component,omitempty" yaml:"component,omitempty"`
	Dimensions int    `json:"dimensions,omitempty" yaml:"dimensions,omitempty"`

	Fields       []FieldDescription  `json:"fields,omitempty" yaml:"fields,omitempty"`
	Constructors []MethodDescription `json:"constructors,omitempty" yaml:"constructors,omitempty"`
	Methods      []MethodDescription `json:"methods,omitempty" yaml:"methods,omitempty"`
	InnerTypes   []InnerDescription  `json:"innerTypes,omitempty" yaml:"innerTypes,omitempty"`
}

type FieldDescription struct {
	Name       string   `json:"name" yaml:"name"`
	Type       string   `json:"type" yaml:"type"`
	Descriptor string   `json:"descriptor" yaml:"descriptor"`
	Modifiers  []string `json:"modifiers,omitempty" yaml:"modifiers,omitempty"`
	Constant   any      `json:"constant,omitempty" yaml:"constant,omitempty"`
	Deprecated bool     `json:"deprecated,omitempty" yaml:"deprecated,omitempty"`
	// Group counts the separators before the field in sorted order.
	Group int `json:"-" yaml:"-"`
}

// MethodDescription describes a method, or a constructor when Name and
// ReturnType are empty.
type MethodDescription struct {
	Name           string                 `json:"name,omitempty" yaml:"name,omitempty"`
	TypeParameters string                 `json:"typeParameters,omitempty" yaml:"typeParameters,omitempty"`
	ReturnType     string                 `json:"returnType,omitempty" yaml:"returnType,omitempty"`
	Parameters     []ParameterDescription `json:"parameters,omitempty" yaml:"parameters,omitempty"`
	Throws         []string               `json:"throws,omitempty" yaml:"throws,omitempty"`
	Descriptor     string                 `json:"descriptor" yaml:"descriptor"`
	Modifiers      []string               `json:"modifiers,omitempty" yaml:"modifiers,omitempty"`
	Varargs        bool                   `json:"varargs,omitempty" yaml:"varargs,omitempty"`
	Deprecated     bool                   `json:"deprecated,omitempty" yaml:"deprecated,omitempty"`
	Group          int                    `json:"-" yaml:"-"`
}

type ParameterDescription struct {
	Name  string `json:"name,omitempty" yaml:"name,omitempty"`
	Type  string `json:"type" yaml:"type"`
	Final bool   `json:"final,omitempty" yaml:"final,omitempty"`
}

type InnerDescription struct {
	Name       string   `json:"name" yaml:"name"`
	SimpleName string   `json:"simpleName" yaml:"simpleName"`
	Modifiers  []string `json:"modifiers,omitempty" yaml:"modifiers,omitempty"`
}

// declaredType is what classes and interfaces have in common.
type declaredType interface {
	typemodel.Type
	FieldsSorted() ([]*typemodel.Field, error)
	MethodsSorted() ([]*typemodel.Method, error)
	InnerTypes() []*typemodel.InnerType
	GenericSignature() (*classfile.ClassSignature, error)
	SuperclassName() string
	InterfaceNames() []string
	OuterTypeName() string
	IsDeprecated() bool
}

// Describe takes a snapshot of t. Members are listed in sorted order.
func Describe(t typemodel.Type) (*Description, error) {
	if t == nil {
		return nil, errors.Wrap(typemodel.ErrNilArgument, "describe")
	}
	d := &Description{
		Kind:       t.Kind().String(),
		Name:       t.ExternalName(),
		SimpleName: t.ExternalSimpleName(),
		Package:    t.ExternalPackageName(),
		Modifiers:  modifierNames(t.Modifiers()),
	}

	switch t := t.(type) {
	case *typemodel.ClassType:
		if err := describeDeclared(d, t); err != nil {
			return nil, err
		}
		ctors, err := t.ConstructorsSorted()
		if err != nil {
			return nil, err
		}
		for i, c := range ctors {
			md := describeCallable(c.Parameters(), c.ExceptionNames(), c.GenericSignature())
			md.Descriptor = c.Descriptor()
			md.Modifiers = modifierNames(c.Modifiers())
			md.Varargs = c.IsVarargs()
			md.Deprecated = c.IsDeprecated()
			if i > 0 {
				md.Group = d.Constructors[i-1].Group
				if typemodel.ConstructorsInDifferentGroups(ctors[i-1], c) {
					md.Group++
				}
			}
			d.Constructors = append(d.Constructors, md)
		}
	case *typemodel.InterfaceType:
		if err := describeDeclared(d, t); err != nil {
			return nil, err
		}
		functional, err := t.IsFunctional()
		if err != nil {
			return nil, err
		}
		d.Functional = functional
	case *typemodel.EnumType:
		d.Constants = t.Constants()
		d.Outer = classfile.InternalToSourceName(t.OuterTypeName())
		d.Deprecated = t.IsDeprecated()
	case *typemodel.AnnotationType:
		d.Elements = t.Elements()
		d.Outer = classfile.InternalToSourceName(t.OuterTypeName())
		d.Deprecated = t.IsDeprecated()
	case *typemodel.ArrayType:
		d.Component = t.Component().ExternalName()
		d.Dimensions = t.Dimensions()
	}
	return d, nil
}

func describeDeclared(d *Description, t declaredType) error {
	d.Outer = classfile.InternalToSourceName(t.OuterTypeName())
	d.Deprecated = t.IsDeprecated()

	sig, err := t.GenericSignature()
	if err != nil {
		return err
	}
	if sig != nil {
		d.TypeParameters = classfile.FormatTypeParameters(sig.TypeParameters)
		if sig.Superclass != nil && t.SuperclassName() != "" {
			d.SuperClass = sig.Superclass.String()
		}
		for _, i := range sig.Interfaces {
			d.Interfaces = append(d.Interfaces, i.String())
		}
	} else {
		d.SuperClass = classfile.InternalToSourceName(t.SuperclassName())
		for _, name := range t.InterfaceNames() {
			d.Interfaces = append(d.Interfaces, classfile.InternalToSourceName(name))
		}
	}
	if t.Kind() == typemodel.KindInterface {
		d.SuperClass = ""
	}

	fields, err := t.FieldsSorted()
	if err != nil {
		return err
	}
	for i, f := range fields {
		fd := FieldDescription{
			Name:       f.Name(),
			Type:       f.TypeName(),
			Descriptor: f.Descriptor(),
			Modifiers:  modifierNames(f.Modifiers()),
			Deprecated: f.IsDeprecated(),
		}
		if v, ok := f.ConstantValue(); ok {
			fd.Constant = v
		}
		if i > 0 {
			fd.Group = d.Fields[i-1].Group
			if typemodel.FieldsInDifferentGroups(fields[i-1], f) {
				fd.Group++
			}
		}
		d.Fields = append(d.Fields, fd)
	}

	methods, err := t.MethodsSorted()
	if err != nil {
		return err
	}
	for i, m := range methods {
		md := describeCallable(m.Parameters(), m.ExceptionNames(), m.GenericSignature())
		md.Name = m.Name()
		md.ReturnType = m.ReturnTypeName()
		md.Descriptor = m.Descriptor()
		md.Modifiers = modifierNames(m.Modifiers())
		md.Varargs = m.IsVarargs()
		md.Deprecated = m.IsDeprecated()
		if i > 0 {
			md.Group = d.Methods[i-1].Group
			if typemodel.MethodsInDifferentGroups(methods[i-1], m) {
				md.Group++
			}
		}
		d.Methods = append(d.Methods, md)
	}

	for _, it := range t.InnerTypes() {
		d.InnerTypes = append(d.InnerTypes, InnerDescription{
			Name:       classfile.InternalToSourceName(it.InternalName()),
			SimpleName: it.SimpleName(),
			Modifiers:  modifierNames(it.Modifiers()),
		})
	}
	return nil
}

func describeCallable(params typemodel.ParameterList, exceptions []string, sig *classfile.MethodSignature) MethodDescription {
	var md MethodDescription
	for _, p := range params.All() {
		md.Parameters = append(md.Parameters, ParameterDescription{
			Name:  p.Name(),
			Type:  p.TypeName(),
			Final: p.IsFinal(),
		})
	}
	if sig != nil {
		md.TypeParameters = classfile.FormatTypeParameters(sig.TypeParameters)
	}
	if sig != nil && len(sig.Throws) > 0 {
		for _, th := range sig.Throws {
			md.Throws = append(md.Throws, th.String())
		}
	} else {
		for _, name := range exceptions {
			md.Throws = append(md.Throws, classfile.InternalToSourceName(name))
		}
	}
	return md
}

func modifierNames(mods []typemodel.Modifier) []string {
	if len(mods) == 0 {
		return nil
	}
	names := make([]string, len(mods))
	for i, m := range mods {
		names[i] = m.String()
	}
	return names
}

// Imports returns the external names of the types a source rendering of
// t must import, or nil for types without members.
func Imports(t typemodel.Type) ([]string, error) {
	it, ok := t.(interface {
		ImportableTypes() ([]typemodel.Type, error)
	})
	if !ok {
		return nil, nil
	}
	types, err := it.ImportableTypes()
	if err != nil {
		return nil, err
	}
	names := make([]string, len(types))
	for i, typ := range types {
		names[i] = typ.ExternalName()
	}
	return names, nil
}

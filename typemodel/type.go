package typemodel

import (
	"fmt"
	"strings"

	"github.com/dhamidi/classmodel/classfile"
)

// Type is implemented by *ClassType, *InterfaceType, *EnumType,
// *AnnotationType, *ArrayType, *PrimitiveType and *VoidType, and by
// nothing else. Switch on the concrete type or on Kind.
type Type interface {
	Kind() Kind
	// ExternalName is the dotted binary name, e.g. "java.util.Map$Entry",
	// "int" or "java.lang.String[]".
	ExternalName() string
	// InternalName is the slash-separated name of a declared type, or the
	// descriptor of an array, primitive or void.
	InternalName() string
	ExternalPackageName() string
	// ExternalSimpleName is the last name segment. Nested types drop the
	// prefix naming their outer type.
	ExternalSimpleName() string
	IsInnerType() bool
	Modifiers() []Modifier

	// HasMethod reports whether the type declares a method with m's name
	// and parameter descriptors.
	HasMethod(m *Method) (bool, error)
	// HasMethodInherited reports whether a superinterface or the superclass
	// declares or inherits such a method.
	HasMethodInherited(m *Method) (bool, error)
	// HasMethodOverridden is HasMethod and HasMethodInherited.
	HasMethodOverridden(m *Method) (bool, error)

	// String renders a diagnostic form such as "ClassType(java.lang.String)".
	String() string

	isType()
}

// declared holds what every type backed by a class file shares.
type declared struct {
	reg      *Registry
	cf       *classfile.ClassFile
	kind     Kind
	internal string
	external string
	nested   classfile.InnerClass
	isInner  bool
	mods     lazy[[]Modifier]
}

func (d *declared) init(reg *Registry, cf *classfile.ClassFile, kind Kind) {
	d.reg = reg
	d.cf = cf
	d.kind = kind
	d.internal = cf.ClassName()
	d.external = classfile.InternalToSourceName(d.internal)
	if e, ok := cf.InnerClassEntry(d.internal); ok && e.OuterClass != "" {
		d.nested = e
		d.isInner = true
	}
}

func (d *declared) isType() {}

func (d *declared) Kind() Kind { return d.kind }

func (d *declared) ExternalName() string { return d.external }

func (d *declared) InternalName() string { return d.internal }

func (d *declared) ExternalPackageName() string {
	if i := strings.LastIndexByte(d.external, '.'); i >= 0 {
		return d.external[:i]
	}
	return ""
}

func (d *declared) ExternalSimpleName() string {
	name := d.external[strings.LastIndexByte(d.external, '.')+1:]
	if !d.isInner {
		return name
	}
	if d.nested.InnerName != "" {
		return d.nested.InnerName
	}
	return name[strings.LastIndexByte(name, '$')+1:]
}

func (d *declared) IsInnerType() bool { return d.isInner }

// OuterTypeName returns the internal name of the enclosing type of a
// nested type, or "".
func (d *declared) OuterTypeName() string { return d.nested.OuterClass }

// accessFlags prefers the flags recorded for a nested type, which carry
// private, protected and static.
func (d *declared) accessFlags() classfile.AccessFlags {
	if d.isInner {
		return d.nested.AccessFlags
	}
	return d.cf.AccessFlags
}

func (d *declared) Modifiers() []Modifier {
	return d.mods.must(func() []Modifier {
		return typeModifiers(d.accessFlags(), d.kind)
	})
}

func (d *declared) Visibility() Visibility { return visibilityOf(d.accessFlags()) }

// Handle returns the class file the type was built from.
func (d *declared) Handle() *classfile.ClassFile { return d.cf }

func (d *declared) Registry() *Registry { return d.reg }

func (d *declared) IsDeprecated() bool {
	return d.cf.GetAttribute(classfile.AttrDeprecated) != nil
}

func (d *declared) IsSynthetic() bool { return d.cf.AccessFlags.IsSynthetic() }

func (d *declared) SourceFile() string { return d.cf.SourceFile() }

func (d *declared) String() string {
	var variant string
	switch d.kind {
	case KindInterface:
		variant = "InterfaceType"
	case KindEnum:
		variant = "EnumType"
	case KindAnnotation:
		variant = "AnnotationType"
	default:
		variant = "ClassType"
	}
	return fmt.Sprintf("%s(%s)", variant, d.external)
}

// leaf answers the inheritance queries for variants that take no part in
// override resolution.
type leaf struct{}

func (leaf) HasMethod(m *Method) (bool, error) {
	if m == nil {
		return false, nilArgument("HasMethod", "method")
	}
	return false, nil
}

func (leaf) HasMethodInherited(m *Method) (bool, error) {
	if m == nil {
		return false, nilArgument("HasMethodInherited", "method")
	}
	return false, nil
}

func (leaf) HasMethodOverridden(m *Method) (bool, error) {
	if m == nil {
		return false, nilArgument("HasMethodOverridden", "method")
	}
	return false, nil
}

// packageOf returns the dotted package of an internal class name.
func packageOf(internalName string) string {
	if i := strings.LastIndexByte(internalName, '/'); i >= 0 {
		return classfile.InternalToSourceName(internalName[:i])
	}
	return ""
}

package typemodel

import (
	"strings"

	"github.com/dhamidi/classmodel/classfile"
)

// Parameter is one declared parameter of a method or constructor.
type Parameter struct {
	reg       *Registry
	desc      classfile.FieldType
	name      string
	final     bool
	signature classfile.TypeSignature
	typ       lazy[Type]
}

// Type resolves the declared type of the parameter.
func (p *Parameter) Type() (Type, error) {
	return p.typ.get(func() (Type, error) {
		return p.reg.typeOfFieldType(&p.desc)
	})
}

// Name is empty when the class file records no name for the parameter.
func (p *Parameter) Name() string { return p.name }

func (p *Parameter) IsFinal() bool { return p.final }

// Signature is the generic type of the parameter, or nil when the method
// carries no usable signature.
func (p *Parameter) Signature() classfile.TypeSignature { return p.signature }

func (p *Parameter) Descriptor() string { return p.desc.Descriptor() }

// TypeName renders the declared type in source form, generic arguments
// included when known.
func (p *Parameter) TypeName() string {
	if p.signature != nil {
		return p.signature.String()
	}
	return p.desc.String()
}

// TypeSimpleName is the simple name of the declared type, the key that
// parameters are ordered by.
func (p *Parameter) TypeSimpleName() string { return simpleTypeName(&p.desc) }

func (p *Parameter) String() string {
	if p.name == "" {
		return p.TypeName()
	}
	return p.TypeName() + " " + p.name
}

// simpleTypeName strips the package and any outer type prefix from a
// descriptor type, keeping array brackets: "java.util.Map$Entry[]" becomes
// "Entry[]".
func simpleTypeName(ft *classfile.FieldType) string {
	name := ft.BaseType
	if name == "" {
		name = ft.ClassName[strings.LastIndexByte(ft.ClassName, '/')+1:]
		name = name[strings.LastIndexByte(name, '$')+1:]
	}
	return name + strings.Repeat("[]", ft.ArrayDepth)
}

// CompareParameters orders parameters by the simple name of their declared
// type.
func CompareParameters(a, b *Parameter) int {
	return strings.Compare(a.TypeSimpleName(), b.TypeSimpleName())
}

// ParameterList is the ordered parameter list of a method or constructor.
type ParameterList struct {
	params []*Parameter
}

func (l ParameterList) Len() int { return len(l.params) }

func (l ParameterList) At(i int) *Parameter { return l.params[i] }

// All returns a copy of the parameters.
func (l ParameterList) All() []*Parameter {
	return append([]*Parameter(nil), l.params...)
}

// Descriptors returns the field descriptor of each parameter.
func (l ParameterList) Descriptors() []string {
	out := make([]string, len(l.params))
	for i, p := range l.params {
		out[i] = p.Descriptor()
	}
	return out
}

// Compare orders lists element by element with CompareParameters; the
// first difference decides and a strict prefix sorts first.
func (l ParameterList) Compare(other ParameterList) int {
	for i := 0; i < len(l.params) && i < len(other.params); i++ {
		if c := CompareParameters(l.params[i], other.params[i]); c != 0 {
			return c
		}
	}
	switch {
	case len(l.params) < len(other.params):
		return -1
	case len(l.params) > len(other.params):
		return 1
	}
	return 0
}

// sameDescriptors reports whether both lists have equal parameter
// descriptors.
func (l ParameterList) sameDescriptors(other ParameterList) bool {
	if len(l.params) != len(other.params) {
		return false
	}
	for i := range l.params {
		if l.params[i].desc != other.params[i].desc {
			return false
		}
	}
	return true
}

func (l ParameterList) String() string {
	parts := make([]string, len(l.params))
	for i, p := range l.params {
		parts[i] = p.String()
	}
	return "(" + strings.Join(parts, ", ") + ")"
}

// buildParameters pairs a method's descriptor parameters with their names,
// finality and generic types. Names and finality come from
// MethodParameters, or failing that from the local variable table. When
// the generic signature or MethodParameters disagree with the descriptor
// on the parameter count, the parameters stay unnamed and non-final, and
// on a signature mismatch the generic types are dropped too.
func buildParameters(reg *Registry, owner string, m *classfile.MethodInfo, cp classfile.ConstantPool,
	md *classfile.MethodDescriptor, sig *classfile.MethodSignature) ParameterList {
	n := len(md.Parameters)
	params := make([]*Parameter, n)
	for i := range md.Parameters {
		params[i] = &Parameter{reg: reg, desc: md.Parameters[i]}
	}

	log := reg.log.With("type", owner, "method", m.Name(cp), "descriptor", m.Descriptor(cp))
	named := true
	if sig != nil {
		if len(sig.Parameters) != n {
			log.Warnw("Generic signature parameter count differs from descriptor, leaving parameters unnamed",
				"signature", len(sig.Parameters), "descriptor_count", n)
			named = false
		} else {
			for i, s := range sig.Parameters {
				params[i].signature = s
			}
		}
	}
	if !named {
		return ParameterList{params: params}
	}

	if declared, ok := m.MethodParameters(cp); ok {
		if len(declared) != n {
			log.Warnw("MethodParameters count differs from descriptor, leaving parameters unnamed",
				"method_parameters", len(declared), "descriptor_count", n)
			return ParameterList{params: params}
		}
		for i, d := range declared {
			params[i].name = d.Name
			params[i].final = d.AccessFlags.IsFinal()
		}
		return ParameterList{params: params}
	}

	slot := 1
	if m.AccessFlags.IsStatic() {
		slot = 0
	}
	for i := range params {
		if name, ok := m.LocalVariableName(cp, slot); ok {
			params[i].name = name
		}
		slot += params[i].desc.Slots()
	}
	return ParameterList{params: params}
}

package typemodel

import (
	"fmt"

	"github.com/dhamidi/classmodel/classfile"
)

// callable is what methods and constructors share.
type callable struct {
	owner      Type
	reg        *Registry
	cp         classfile.ConstantPool
	info       *classfile.MethodInfo
	name       string
	descriptor string
	md         *classfile.MethodDescriptor
	sig        *classfile.MethodSignature
	params     ParameterList
	mods       lazy[[]Modifier]
	exceptions lazy[[]Type]
}

func (c *callable) init(owner Type, reg *Registry, cf *classfile.ClassFile, info *classfile.MethodInfo) error {
	c.owner = owner
	c.reg = reg
	c.cp = cf.ConstantPool
	c.info = info
	c.name = info.Name(c.cp)
	c.descriptor = info.Descriptor(c.cp)

	md, err := info.ParsedDescriptor(c.cp)
	if err != nil {
		return err
	}
	c.md = md
	if raw := info.Signature(c.cp); raw != "" {
		if c.sig, err = classfile.ParseMethodSignature(raw); err != nil {
			return err
		}
	}
	c.params = buildParameters(reg, owner.ExternalName(), info, c.cp, md, c.sig)
	return nil
}

func (c *callable) Name() string { return c.name }

func (c *callable) Descriptor() string { return c.descriptor }

// EnclosingType is the class or interface declaring the member.
func (c *callable) EnclosingType() Type { return c.owner }

func (c *callable) Parameters() ParameterList { return c.params }

func (c *callable) Visibility() Visibility { return visibilityOf(c.info.AccessFlags) }

func (c *callable) IsStatic() bool { return c.info.AccessFlags.IsStatic() }

func (c *callable) IsVarargs() bool { return c.info.AccessFlags.IsVarargs() }

func (c *callable) IsDeprecated() bool { return c.info.IsDeprecated(c.cp) }

// GenericSignature is the parsed generic signature, or nil when the member
// has none.
func (c *callable) GenericSignature() *classfile.MethodSignature { return c.sig }

// TypeParameters are the member's own generic type parameters.
func (c *callable) TypeParameters() []classfile.TypeParameter {
	if c.sig == nil {
		return nil
	}
	return c.sig.TypeParameters
}

// ExceptionNames returns the internal names of the declared checked
// exceptions.
func (c *callable) ExceptionNames() []string {
	return c.info.ExceptionClassNames(c.cp)
}

// Exceptions resolves the declared checked exceptions.
func (c *callable) Exceptions() ([]Type, error) {
	return c.exceptions.get(func() ([]Type, error) {
		names := c.info.ExceptionClassNames(c.cp)
		types := make([]Type, 0, len(names))
		for _, name := range names {
			t, err := c.reg.typeOfClassName("Exceptions", name)
			if err != nil {
				return nil, err
			}
			types = append(types, t)
		}
		return types, nil
	})
}

// referencedClassNames lists the classes named by the member's bytecode.
func (c *callable) referencedClassNames() ([]string, error) {
	code := c.info.GetCodeAttribute(c.cp)
	if code == nil {
		return nil, nil
	}
	return code.ReferencedClassNames(c.cp)
}

func (c *callable) qualifiedName() string {
	return c.owner.ExternalName() + "#" + c.name
}

// Method is a method declared by a class or interface.
type Method struct {
	callable
	inInterface bool
	returnType  lazy[Type]
}

func newMethod(owner Type, reg *Registry, cf *classfile.ClassFile, info *classfile.MethodInfo) (*Method, error) {
	m := &Method{inInterface: owner.Kind() == KindInterface}
	if err := m.init(owner, reg, cf, info); err != nil {
		return nil, typeError("Method", owner.ExternalName()+"#"+info.Name(cf.ConstantPool), err)
	}
	return m, nil
}

// EnclosedByInterface reports whether the declaring type is an interface.
func (m *Method) EnclosedByInterface() bool { return m.inInterface }

func (m *Method) Modifiers() []Modifier {
	return m.mods.must(func() []Modifier {
		return methodModifiers(m.info.AccessFlags, m.inInterface)
	})
}

func (m *Method) IsAbstract() bool { return m.info.AccessFlags.IsAbstract() }

// IsDefault reports whether the method is a default interface method.
func (m *Method) IsDefault() bool { return hasModifier(m.Modifiers(), Default) }

// ReturnType resolves the return type; Void for void methods.
func (m *Method) ReturnType() (Type, error) {
	return m.returnType.get(func() (Type, error) {
		if m.md.ReturnType == nil {
			return Void, nil
		}
		return m.reg.typeOfFieldType(m.md.ReturnType)
	})
}

// ReturnTypeSimpleName is the simple name of the return type, the key that
// methods of equal rank are ordered by first.
func (m *Method) ReturnTypeSimpleName() string {
	if m.md.ReturnType == nil {
		return "void"
	}
	return simpleTypeName(m.md.ReturnType)
}

// ReturnTypeName renders the return type in source form, generic
// arguments included when known.
func (m *Method) ReturnTypeName() string {
	if m.sig != nil && m.sig.Result != nil {
		return m.sig.Result.String()
	}
	if m.md.ReturnType == nil {
		return "void"
	}
	return m.md.ReturnType.String()
}

// IsSignatureEqualTo reports whether other has the same name and parameter
// descriptors. Return types, modifiers and declaring types are ignored.
func (m *Method) IsSignatureEqualTo(other *Method) bool {
	if other == nil {
		return false
	}
	return m.name == other.name && m.params.sameDescriptors(other.params)
}

func (m *Method) String() string {
	return fmt.Sprintf("Method(%s%s)", m.qualifiedName(), m.params)
}

// Constructor is an instance initializer of a class.
type Constructor struct {
	callable
}

func newConstructor(owner Type, reg *Registry, cf *classfile.ClassFile, info *classfile.MethodInfo) (*Constructor, error) {
	c := &Constructor{}
	if err := c.init(owner, reg, cf, info); err != nil {
		return nil, typeError("Constructor", owner.ExternalName(), err)
	}
	return c, nil
}

func (c *Constructor) Modifiers() []Modifier {
	return c.mods.must(func() []Modifier { return constructorModifiers(c.info.AccessFlags) })
}

func (c *Constructor) String() string {
	return fmt.Sprintf("Constructor(%s%s)", c.owner.ExternalName(), c.params)
}

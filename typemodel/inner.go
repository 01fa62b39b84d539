package typemodel

import (
	"fmt"

	"github.com/dhamidi/classmodel/classfile"
)

// InnerType is a member type declared inside a class or interface.
type InnerType struct {
	owner Type
	reg   *Registry
	entry classfile.InnerClass
	mods  lazy[[]Modifier]
	typ   lazy[Type]
}

// EnclosingType is the declaring type.
func (it *InnerType) EnclosingType() Type { return it.owner }

// InternalName names the member type, e.g. "java/util/Map$Entry".
func (it *InnerType) InternalName() string { return it.entry.InnerClass }

// SimpleName is the name the member type is declared with.
func (it *InnerType) SimpleName() string { return it.entry.InnerName }

// Type resolves the member type through the registry.
func (it *InnerType) Type() (Type, error) {
	return it.typ.get(func() (Type, error) {
		return it.reg.typeOfClassName("InnerType", it.entry.InnerClass)
	})
}

func (it *InnerType) Visibility() Visibility { return visibilityOf(it.entry.AccessFlags) }

// Modifiers are derived from the flags recorded in the enclosing type's
// nested class table.
func (it *InnerType) Modifiers() []Modifier {
	return it.mods.must(func() []Modifier {
		flags := it.entry.AccessFlags
		kind := KindClass
		if flags.IsInterface() {
			kind = KindInterface
		}
		return typeModifiers(flags, kind)
	})
}

func (it *InnerType) IsStatic() bool { return it.entry.AccessFlags.IsStatic() }

func (it *InnerType) String() string {
	return fmt.Sprintf("InnerType(%s, %s)", it.owner.ExternalName(), it.entry.InnerName)
}

package typemodel

import (
	"slices"

	"github.com/dhamidi/classmodel/classfile"
)

// ClassType is an ordinary class: neither interface, enum nor annotation.
type ClassType struct {
	declared
	body
	constructors       lazy[[]*Constructor]
	constructorsSorted lazy[[]*Constructor]
}

func newClassType(reg *Registry, cf *classfile.ClassFile) *ClassType {
	t := &ClassType{}
	t.declared.init(reg, cf, KindClass)
	t.body.d = &t.declared
	t.body.owner = t
	t.body.keepField = func(flags classfile.AccessFlags) bool {
		return !flags.IsEnum() && !flags.IsSynthetic()
	}
	return t
}

func (t *ClassType) IsAbstract() bool { return t.cf.AccessFlags.IsAbstract() }

func (t *ClassType) IsFinal() bool { return t.cf.AccessFlags.IsFinal() }

// Constructors returns the instance initializers in declaration order.
func (t *ClassType) Constructors() ([]*Constructor, error) {
	return t.constructors.get(func() ([]*Constructor, error) {
		var ctors []*Constructor
		for i := range t.cf.Methods {
			info := &t.cf.Methods[i]
			if !info.IsConstructor(t.cf.ConstantPool) || info.AccessFlags.IsSynthetic() {
				continue
			}
			c, err := newConstructor(t, t.reg, t.cf, info)
			if err != nil {
				return nil, err
			}
			ctors = append(ctors, c)
		}
		return ctors, nil
	})
}

// ConstructorsSorted returns the constructors in CompareConstructors order.
func (t *ClassType) ConstructorsSorted() ([]*Constructor, error) {
	return t.constructorsSorted.get(func() ([]*Constructor, error) {
		ctors, err := t.Constructors()
		if err != nil {
			return nil, err
		}
		sorted := slices.Clone(ctors)
		slices.SortStableFunc(sorted, CompareConstructors)
		return sorted, nil
	})
}

package typemodel

import "github.com/dhamidi/classmodel/classfile"

// InterfaceType is an interface other than an annotation. Its fields are
// the public static constants it declares.
type InterfaceType struct {
	declared
	body
}

func newInterfaceType(reg *Registry, cf *classfile.ClassFile) *InterfaceType {
	t := &InterfaceType{}
	t.declared.init(reg, cf, KindInterface)
	t.body.d = &t.declared
	t.body.owner = t
	t.body.keepField = func(flags classfile.AccessFlags) bool {
		return flags.IsPublic() && flags.IsStatic() && !flags.IsSynthetic()
	}
	return t
}

// IsFunctional reports whether the interface declares exactly one abstract
// method of its own.
func (t *InterfaceType) IsFunctional() (bool, error) {
	methods, err := t.Methods()
	if err != nil {
		return false, err
	}
	abstract := 0
	for _, m := range methods {
		if m.IsAbstract() {
			abstract++
		}
	}
	return abstract == 1, nil
}

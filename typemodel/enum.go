package typemodel

import "github.com/dhamidi/classmodel/classfile"

// EnumType is an enumeration. Only its name and modifiers are modeled,
// plus the constant names it declares.
type EnumType struct {
	declared
	leaf
	constants lazy[[]string]
}

func newEnumType(reg *Registry, cf *classfile.ClassFile) *EnumType {
	t := &EnumType{}
	t.declared.init(reg, cf, KindEnum)
	return t
}

// Constants returns the names of the enum constants in declaration order.
func (t *EnumType) Constants() []string {
	return t.constants.must(func() []string {
		var names []string
		for i := range t.cf.Fields {
			f := &t.cf.Fields[i]
			if f.AccessFlags.IsEnum() {
				names = append(names, f.Name(t.cf.ConstantPool))
			}
		}
		return names
	})
}

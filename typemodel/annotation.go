package typemodel

import "github.com/dhamidi/classmodel/classfile"

// AnnotationType is an annotation interface. Only its name, modifiers and
// element names are modeled.
type AnnotationType struct {
	declared
	leaf
	elements lazy[[]string]
}

func newAnnotationType(reg *Registry, cf *classfile.ClassFile) *AnnotationType {
	t := &AnnotationType{}
	t.declared.init(reg, cf, KindAnnotation)
	return t
}

// Elements returns the names of the annotation's elements in declaration
// order.
func (t *AnnotationType) Elements() []string {
	return t.elements.must(func() []string {
		var names []string
		for i := range t.cf.Methods {
			m := &t.cf.Methods[i]
			if m.AccessFlags.IsAbstract() && !m.AccessFlags.IsStatic() {
				names = append(names, m.Name(t.cf.ConstantPool))
			}
		}
		return names
	})
}

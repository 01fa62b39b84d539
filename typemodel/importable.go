package typemodel

import (
	"slices"
	"strings"

	"github.com/cockroachdb/errors"

	"github.com/dhamidi/classmodel/classfile"
)

// ImportableTypes returns the types a source rendering of this type would
// refer to by simple name: types of fields, parameters, return values and
// exceptions, classes named in bytecode, superinterfaces, the superclass,
// member types, and classes mentioned by generic signatures. Arrays count
// as their element type. Primitives, void, the always-available package
// and the type's own package are left out. The result is sorted by
// external name and computed once.
func (b *body) ImportableTypes() ([]Type, error) {
	return b.importable.get(func() ([]Type, error) {
		names, err := b.referencedNames()
		if err != nil {
			return nil, typeError("ImportableTypes", b.d.external, err)
		}

		own := b.d.ExternalPackageName()
		seen := make(map[string]bool)
		var types []Type
		for _, name := range names {
			pkg := packageOf(name)
			if seen[name] || pkg == own || pkg == b.d.reg.alwaysAvailable {
				continue
			}
			seen[name] = true
			t, err := b.d.reg.typeOfClassName("ImportableTypes", name)
			if err != nil {
				return nil, errors.Wrapf(err, "importable types of %s", b.d.external)
			}
			switch t.(type) {
			case *PrimitiveType, *VoidType, *ArrayType:
				continue
			}
			types = append(types, t)
		}
		slices.SortFunc(types, func(x, y Type) int {
			return strings.Compare(x.ExternalName(), y.ExternalName())
		})
		return types, nil
	})
}

// referencedNames collects internal class names, array descriptors already
// reduced to their element class.
func (b *body) referencedNames() ([]string, error) {
	var names []string
	add := func(name string) {
		if name == "" {
			return
		}
		if strings.HasPrefix(name, "[") {
			ft, err := classfile.ParseFieldDescriptor(name)
			if err != nil || ft.ClassName == "" {
				return
			}
			name = ft.ClassName
		}
		names = append(names, name)
	}
	addDescriptor := func(ft *classfile.FieldType) {
		if ft != nil && ft.ClassName != "" {
			names = append(names, ft.ClassName)
		}
	}
	addAll := func(mentioned []string) {
		for _, name := range mentioned {
			add(name)
		}
	}

	add(b.d.cf.SuperClassName())
	for _, name := range b.d.cf.InterfaceNames() {
		add(name)
	}
	sig, err := b.GenericSignature()
	if err != nil {
		return nil, err
	}
	if sig != nil {
		addAll(sig.ClassNames(nil))
	}
	for _, it := range b.InnerTypes() {
		add(it.InternalName())
	}

	fields, err := b.Fields()
	if err != nil {
		return nil, err
	}
	for _, f := range fields {
		addDescriptor(&f.desc)
		fsig, err := f.Signature()
		if err != nil {
			return nil, err
		}
		if fsig != nil {
			addAll(fsig.ClassNames(nil))
		}
	}

	methods, err := b.Methods()
	if err != nil {
		return nil, err
	}
	callables := make([]*callable, 0, len(methods))
	for _, m := range methods {
		addDescriptor(m.md.ReturnType)
		callables = append(callables, &m.callable)
	}
	if ct, ok := b.owner.(*ClassType); ok {
		ctors, err := ct.Constructors()
		if err != nil {
			return nil, err
		}
		for _, c := range ctors {
			callables = append(callables, &c.callable)
		}
	}
	for _, c := range callables {
		for i := range c.md.Parameters {
			addDescriptor(&c.md.Parameters[i])
		}
		for _, name := range c.ExceptionNames() {
			add(name)
		}
		if c.sig != nil {
			addAll(c.sig.ClassNames(nil))
		}
		refs, err := c.referencedClassNames()
		if err != nil {
			return nil, errors.Wrapf(err, "code of %s", c.qualifiedName())
		}
		for _, name := range refs {
			add(name)
		}
	}
	return names, nil
}

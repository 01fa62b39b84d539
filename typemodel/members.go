package typemodel

import (
	"slices"

	"github.com/cockroachdb/errors"

	"github.com/dhamidi/classmodel/classfile"
)

// body holds the members and supertypes of a class or interface. Every
// list is derived once from the class file, in declaration order.
type body struct {
	d     *declared
	owner Type
	// keepField selects the field records the variant models.
	keepField func(flags classfile.AccessFlags) bool

	fields        lazy[[]*Field]
	fieldsSorted  lazy[[]*Field]
	methods       lazy[[]*Method]
	methodsSorted lazy[[]*Method]
	inner         lazy[[]*InnerType]
	interfaces    lazy[[]*InterfaceType]
	signature     lazy[*classfile.ClassSignature]
	importable    lazy[[]Type]
}

func (b *body) Fields() ([]*Field, error) {
	return b.fields.get(func() ([]*Field, error) {
		cf := b.d.cf
		var fields []*Field
		for i := range cf.Fields {
			info := &cf.Fields[i]
			if !b.keepField(info.AccessFlags) {
				continue
			}
			f, err := newField(b.owner, b.d.reg, cf, info)
			if err != nil {
				return nil, typeError("Fields", b.d.external, err)
			}
			fields = append(fields, f)
		}
		return fields, nil
	})
}

// FieldsSorted returns the fields in CompareFields order.
func (b *body) FieldsSorted() ([]*Field, error) {
	return b.fieldsSorted.get(func() ([]*Field, error) {
		fields, err := b.Fields()
		if err != nil {
			return nil, err
		}
		sorted := slices.Clone(fields)
		slices.SortStableFunc(sorted, CompareFields)
		return sorted, nil
	})
}

// isModeledMethod excludes initializers, bridges and synthetic methods.
func isModeledMethod(cp classfile.ConstantPool, m *classfile.MethodInfo) bool {
	if m.AccessFlags.IsBridge() || m.AccessFlags.IsSynthetic() {
		return false
	}
	return !m.IsConstructor(cp) && !m.IsStaticInitializer(cp)
}

func (b *body) Methods() ([]*Method, error) {
	return b.methods.get(func() ([]*Method, error) {
		cf := b.d.cf
		var methods []*Method
		for i := range cf.Methods {
			info := &cf.Methods[i]
			if !isModeledMethod(cf.ConstantPool, info) {
				continue
			}
			m, err := newMethod(b.owner, b.d.reg, cf, info)
			if err != nil {
				return nil, err
			}
			methods = append(methods, m)
		}
		return methods, nil
	})
}

// MethodsSorted returns the methods in CompareMethods order.
func (b *body) MethodsSorted() ([]*Method, error) {
	return b.methodsSorted.get(func() ([]*Method, error) {
		methods, err := b.Methods()
		if err != nil {
			return nil, err
		}
		sorted := slices.Clone(methods)
		slices.SortStableFunc(sorted, CompareMethods)
		return sorted, nil
	})
}

// InnerTypes returns the member types whose recorded outer type is this
// type.
func (b *body) InnerTypes() []*InnerType {
	return b.inner.must(func() []*InnerType {
		var inner []*InnerType
		for _, e := range b.d.cf.InnerClasses() {
			if e.OuterClass != b.d.internal {
				continue
			}
			inner = append(inner, &InnerType{owner: b.owner, reg: b.d.reg, entry: e})
		}
		return inner
	})
}

// SuperclassName returns the internal name of the superclass, or "" for a
// root class.
func (b *body) SuperclassName() string { return b.d.cf.SuperClassName() }

// Superclass resolves the superclass through the registry on every call.
// It returns nil for a root class.
func (b *body) Superclass() (*ClassType, error) {
	name := b.d.cf.SuperClassName()
	if name == "" {
		return nil, nil
	}
	t, err := b.d.reg.ClassTypeByName(name)
	if err != nil {
		return nil, errors.Wrapf(err, "superclass of %s", b.d.external)
	}
	return t, nil
}

// InterfaceNames returns the internal names of the direct superinterfaces.
func (b *body) InterfaceNames() []string { return b.d.cf.InterfaceNames() }

// Interfaces resolves the direct superinterfaces.
func (b *body) Interfaces() ([]*InterfaceType, error) {
	return b.interfaces.get(func() ([]*InterfaceType, error) {
		names := b.d.cf.InterfaceNames()
		ifaces := make([]*InterfaceType, 0, len(names))
		for _, name := range names {
			t, err := b.d.reg.InterfaceTypeByName(name)
			if err != nil {
				return nil, errors.Wrapf(err, "interface of %s", b.d.external)
			}
			ifaces = append(ifaces, t)
		}
		return ifaces, nil
	})
}

// GenericSignature returns the parsed class signature, or nil when the
// class file carries none.
func (b *body) GenericSignature() (*classfile.ClassSignature, error) {
	return b.signature.get(func() (*classfile.ClassSignature, error) {
		raw := b.d.cf.Signature()
		if raw == "" {
			return nil, nil
		}
		sig, err := classfile.ParseClassSignature(raw)
		if err != nil {
			return nil, typeError("GenericSignature", b.d.external, err)
		}
		return sig, nil
	})
}

// TypeParameters returns the type's generic type parameters.
func (b *body) TypeParameters() ([]classfile.TypeParameter, error) {
	sig, err := b.GenericSignature()
	if err != nil || sig == nil {
		return nil, err
	}
	return sig.TypeParameters, nil
}

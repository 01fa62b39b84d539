package typemodel

import (
	"fmt"

	"github.com/dhamidi/classmodel/classfile"
)

// Field is a field declared by a class or interface.
type Field struct {
	owner     Type
	reg       *Registry
	cp        classfile.ConstantPool
	info      *classfile.FieldInfo
	name      string
	desc      classfile.FieldType
	mods      lazy[[]Modifier]
	typ       lazy[Type]
	signature lazy[classfile.TypeSignature]
}

func newField(owner Type, reg *Registry, cf *classfile.ClassFile, info *classfile.FieldInfo) (*Field, error) {
	ft, err := info.ParsedDescriptor(cf.ConstantPool)
	if err != nil {
		return nil, err
	}
	return &Field{
		owner: owner,
		reg:   reg,
		cp:    cf.ConstantPool,
		info:  info,
		name:  info.Name(cf.ConstantPool),
		desc:  *ft,
	}, nil
}

func (f *Field) Name() string { return f.name }

func (f *Field) Descriptor() string { return f.desc.Descriptor() }

// EnclosingType is the class or interface declaring the field.
func (f *Field) EnclosingType() Type { return f.owner }

// Type resolves the declared type of the field.
func (f *Field) Type() (Type, error) {
	return f.typ.get(func() (Type, error) {
		return f.reg.typeOfFieldType(&f.desc)
	})
}

// TypeSimpleName is the simple name of the declared type, the key that
// fields of equal rank are ordered by.
func (f *Field) TypeSimpleName() string { return simpleTypeName(&f.desc) }

// TypeName renders the declared type in source form, generic arguments
// included when the field has a valid signature.
func (f *Field) TypeName() string {
	if sig, err := f.Signature(); err == nil && sig != nil {
		return sig.String()
	}
	return f.desc.String()
}

func (f *Field) Modifiers() []Modifier {
	return f.mods.must(func() []Modifier { return fieldModifiers(f.info.AccessFlags) })
}

func (f *Field) Visibility() Visibility { return visibilityOf(f.info.AccessFlags) }

func (f *Field) IsStatic() bool { return f.info.AccessFlags.IsStatic() }

func (f *Field) IsFinal() bool { return f.info.AccessFlags.IsFinal() }

func (f *Field) IsDeprecated() bool { return f.info.IsDeprecated(f.cp) }

// Signature returns the generic type of the field, or nil when it has
// none.
func (f *Field) Signature() (classfile.TypeSignature, error) {
	return f.signature.get(func() (classfile.TypeSignature, error) {
		raw := f.info.Signature(f.cp)
		if raw == "" {
			return nil, nil
		}
		sig, err := classfile.ParseFieldSignature(raw)
		if err != nil {
			return nil, typeError("Field.Signature", f.qualifiedName(), err)
		}
		return sig, nil
	})
}

// ConstantValue returns the compile-time constant assigned to the field,
// as a float64, float32, int32, int64 or string according to the tag of
// the constant pool entry.
func (f *Field) ConstantValue() (any, bool) {
	idx, ok := f.info.ConstantValueIndex(f.cp)
	if !ok {
		return nil, false
	}
	switch f.cp.TagAt(idx) {
	case classfile.ConstantDouble:
		return f.cp.GetDouble(idx)
	case classfile.ConstantFloat:
		return f.cp.GetFloat(idx)
	case classfile.ConstantInteger:
		return f.cp.GetInteger(idx)
	case classfile.ConstantLong:
		return f.cp.GetLong(idx)
	case classfile.ConstantString:
		return f.cp.GetString(idx)
	}
	return nil, false
}

func (f *Field) qualifiedName() string {
	return f.owner.ExternalName() + "." + f.name
}

func (f *Field) String() string {
	return fmt.Sprintf("Field(%s)", f.qualifiedName())
}

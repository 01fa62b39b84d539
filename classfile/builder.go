package classfile

import (
	"fmt"

	"github.com/cockroachdb/errors"
)

// Builder assembles a well-formed ClassFile in memory. Constant pool entries
// are interned, so asking for the same constant twice yields one index.
// Builders are not safe for concurrent use.
type Builder struct {
	cf      *ClassFile
	index   map[string]uint16
	fields  []*MemberBuilder
	methods []*MemberBuilder
	attrs   []pendingAttribute
	inner   []InnerClassEntry
	err     error
}

type pendingAttribute struct {
	name string
	info []byte
}

// NewBuilder starts a class named by its internal name. The superclass
// defaults to java/lang/Object.
func NewBuilder(name string, flags AccessFlags) *Builder {
	b := &Builder{
		cf: &ClassFile{
			MajorVersion: 61,
			AccessFlags:  flags,
		},
		index: make(map[string]uint16),
	}
	b.cf.ThisClass = b.Class(name)
	if name != "java/lang/Object" && !flags.IsModule() {
		b.cf.SuperClass = b.Class("java/lang/Object")
	}
	return b
}

func (b *Builder) add(key string, entry ConstantPoolEntry) uint16 {
	if idx, ok := b.index[key]; ok {
		return idx
	}
	b.cf.ConstantPool = append(b.cf.ConstantPool, entry)
	idx := uint16(len(b.cf.ConstantPool))
	if t := entry.Tag(); t == ConstantLong || t == ConstantDouble {
		b.cf.ConstantPool = append(b.cf.ConstantPool, nil)
	}
	b.index[key] = idx
	return idx
}

func (b *Builder) Utf8(s string) uint16 {
	return b.add("utf8:"+s, &ConstantUtf8Info{Value: s})
}

func (b *Builder) Class(name string) uint16 {
	return b.add("class:"+name, &ConstantClassInfo{NameIndex: b.Utf8(name)})
}

func (b *Builder) StringConst(s string) uint16 {
	return b.add("string:"+s, &ConstantStringInfo{StringIndex: b.Utf8(s)})
}

func (b *Builder) Integer(v int32) uint16 {
	return b.add(fmt.Sprintf("int:%d", v), &ConstantIntegerInfo{Value: v})
}

func (b *Builder) Long(v int64) uint16 {
	return b.add(fmt.Sprintf("long:%d", v), &ConstantLongInfo{Value: v})
}

func (b *Builder) Float(v float32) uint16 {
	return b.add(fmt.Sprintf("float:%x", v), &ConstantFloatInfo{Value: v})
}

func (b *Builder) Double(v float64) uint16 {
	return b.add(fmt.Sprintf("double:%x", v), &ConstantDoubleInfo{Value: v})
}

func (b *Builder) NameAndType(name, descriptor string) uint16 {
	return b.add("nat:"+name+":"+descriptor, &ConstantNameAndTypeInfo{
		NameIndex:       b.Utf8(name),
		DescriptorIndex: b.Utf8(descriptor),
	})
}

func (b *Builder) memberref(tag ConstantTag, owner, name, descriptor string) uint16 {
	return b.add(fmt.Sprintf("ref%d:%s.%s:%s", tag, owner, name, descriptor), &ConstantMemberrefInfo{
		RefTag:           tag,
		ClassIndex:       b.Class(owner),
		NameAndTypeIndex: b.NameAndType(name, descriptor),
	})
}

func (b *Builder) Fieldref(owner, name, descriptor string) uint16 {
	return b.memberref(ConstantFieldref, owner, name, descriptor)
}

func (b *Builder) Methodref(owner, name, descriptor string) uint16 {
	return b.memberref(ConstantMethodref, owner, name, descriptor)
}

func (b *Builder) InterfaceMethodref(owner, name, descriptor string) uint16 {
	return b.memberref(ConstantInterfaceMethodref, owner, name, descriptor)
}

// SetSuper replaces the superclass; "" removes it.
func (b *Builder) SetSuper(name string) *Builder {
	if name == "" {
		b.cf.SuperClass = 0
	} else {
		b.cf.SuperClass = b.Class(name)
	}
	return b
}

func (b *Builder) AddInterface(names ...string) *Builder {
	for _, name := range names {
		b.cf.Interfaces = append(b.cf.Interfaces, b.Class(name))
	}
	return b
}

func (b *Builder) SetSignature(signature string) *Builder {
	b.attribute(&b.attrs, AttrSignature, u2Body(b.Utf8(signature)))
	return b
}

func (b *Builder) SetSourceFile(name string) *Builder {
	b.attribute(&b.attrs, AttrSourceFile, u2Body(b.Utf8(name)))
	return b
}

// AddInnerClass records an InnerClasses entry. An empty outer or simple
// name is written as index 0, as for local and anonymous classes.
func (b *Builder) AddInnerClass(inner, outer, simpleName string, flags AccessFlags) *Builder {
	e := InnerClassEntry{
		InnerClassInfoIndex:   b.Class(inner),
		InnerClassAccessFlags: flags,
	}
	if outer != "" {
		e.OuterClassInfoIndex = b.Class(outer)
	}
	if simpleName != "" {
		e.InnerNameIndex = b.Utf8(simpleName)
	}
	b.inner = append(b.inner, e)
	return b
}

func (b *Builder) AddField(flags AccessFlags, name, descriptor string) *MemberBuilder {
	m := b.newMember(flags, name, descriptor)
	b.fields = append(b.fields, m)
	return m
}

func (b *Builder) AddMethod(flags AccessFlags, name, descriptor string) *MemberBuilder {
	m := b.newMember(flags, name, descriptor)
	b.methods = append(b.methods, m)
	return m
}

func (b *Builder) newMember(flags AccessFlags, name, descriptor string) *MemberBuilder {
	return &MemberBuilder{
		b: b,
		m: member{
			AccessFlags:     flags,
			NameIndex:       b.Utf8(name),
			DescriptorIndex: b.Utf8(descriptor),
		},
	}
}

func (b *Builder) attribute(dst *[]pendingAttribute, name string, info []byte) {
	b.Utf8(name)
	*dst = append(*dst, pendingAttribute{name: name, info: info})
}

func (b *Builder) finish(pending []pendingAttribute) ([]AttributeInfo, error) {
	attrs := make([]AttributeInfo, 0, len(pending))
	for _, p := range pending {
		attr, err := newAttribute(b.Utf8(p.name), p.info, b.cf.ConstantPool)
		if err != nil {
			return nil, err
		}
		attrs = append(attrs, attr)
	}
	return attrs, nil
}

// Build finalizes the class file. Attributes are decoded exactly as Parse
// would decode them. The builder must not be used afterwards.
func (b *Builder) Build() (*ClassFile, error) {
	if b.err != nil {
		return nil, b.err
	}
	if len(b.inner) > 0 {
		w := &writer{}
		w.u2(uint16(len(b.inner)))
		for _, e := range b.inner {
			w.u2(e.InnerClassInfoIndex)
			w.u2(e.OuterClassInfoIndex)
			w.u2(e.InnerNameIndex)
			w.u2(uint16(e.InnerClassAccessFlags))
		}
		b.attribute(&b.attrs, AttrInnerClasses, w.buf.Bytes())
	}

	for _, m := range b.fields {
		attrs, err := b.finish(m.attrs)
		if err != nil {
			return nil, errors.Wrapf(err, "field %q", b.cf.ConstantPool.GetUtf8(m.m.NameIndex))
		}
		m.m.Attributes = attrs
		b.cf.Fields = append(b.cf.Fields, FieldInfo{member: m.m})
	}
	for _, m := range b.methods {
		attrs, err := b.finish(m.attrs)
		if err != nil {
			return nil, errors.Wrapf(err, "method %q", b.cf.ConstantPool.GetUtf8(m.m.NameIndex))
		}
		m.m.Attributes = attrs
		b.cf.Methods = append(b.cf.Methods, MethodInfo{member: m.m})
	}
	attrs, err := b.finish(b.attrs)
	if err != nil {
		return nil, errors.Wrap(err, "class attributes")
	}
	b.cf.Attributes = attrs
	return b.cf, nil
}

// MustBuild is Build for callers that construct fixed class files, such as
// tests. It panics on error.
func (b *Builder) MustBuild() *ClassFile {
	cf, err := b.Build()
	if err != nil {
		panic(err)
	}
	return cf
}

func u2Body(v uint16) []byte {
	w := &writer{}
	w.u2(v)
	return w.buf.Bytes()
}

// MemberBuilder adds attributes to a field or method under construction.
type MemberBuilder struct {
	b     *Builder
	m     member
	attrs []pendingAttribute
}

func (m *MemberBuilder) Signature(signature string) *MemberBuilder {
	m.b.attribute(&m.attrs, AttrSignature, u2Body(m.b.Utf8(signature)))
	return m
}

func (m *MemberBuilder) Deprecated() *MemberBuilder {
	m.b.attribute(&m.attrs, AttrDeprecated, nil)
	return m
}

// ConstantValue attaches a ConstantValue attribute. v must be an int,
// int32, int64, float32, float64 or string.
func (m *MemberBuilder) ConstantValue(v any) *MemberBuilder {
	var idx uint16
	switch v := v.(type) {
	case int:
		idx = m.b.Integer(int32(v))
	case int32:
		idx = m.b.Integer(v)
	case int64:
		idx = m.b.Long(v)
	case float32:
		idx = m.b.Float(v)
	case float64:
		idx = m.b.Double(v)
	case string:
		idx = m.b.StringConst(v)
	default:
		m.b.err = errors.Newf("unsupported constant value %T", v)
		return m
	}
	m.b.attribute(&m.attrs, AttrConstantValue, u2Body(idx))
	return m
}

func (m *MemberBuilder) Exceptions(classNames ...string) *MemberBuilder {
	w := &writer{}
	w.u2(uint16(len(classNames)))
	for _, name := range classNames {
		w.u2(m.b.Class(name))
	}
	m.b.attribute(&m.attrs, AttrExceptions, w.buf.Bytes())
	return m
}

// Parameters attaches a MethodParameters attribute.
func (m *MemberBuilder) Parameters(params ...Param) *MemberBuilder {
	w := &writer{}
	w.u1(uint8(len(params)))
	for _, p := range params {
		if p.Name == "" {
			w.u2(0)
		} else {
			w.u2(m.b.Utf8(p.Name))
		}
		w.u2(uint16(p.AccessFlags))
	}
	m.b.attribute(&m.attrs, AttrMethodParameters, w.buf.Bytes())
	return m
}

// Code attaches a Code attribute whose body is produced by fn.
func (m *MemberBuilder) Code(maxStack, maxLocals uint16, fn func(c *CodeBuilder)) *MemberBuilder {
	c := &CodeBuilder{b: m.b}
	if fn != nil {
		fn(c)
	}

	w := &writer{}
	w.u2(maxStack)
	w.u2(maxLocals)
	w.u4(uint32(len(c.code)))
	w.bytes(c.code)
	w.u2(0)
	if len(c.locals) == 0 {
		w.u2(0)
	} else {
		lvt := &writer{}
		lvt.u2(uint16(len(c.locals)))
		for _, lv := range c.locals {
			lvt.u2(lv.StartPC)
			lvt.u2(uint16(len(c.code)))
			lvt.u2(lv.NameIndex)
			lvt.u2(lv.DescriptorIndex)
			lvt.u2(lv.Index)
		}
		w.u2(1)
		w.u2(m.b.Utf8(AttrLocalVariableTable))
		w.u4(uint32(lvt.buf.Len()))
		w.bytes(lvt.buf.Bytes())
	}
	m.b.attribute(&m.attrs, AttrCode, w.buf.Bytes())
	return m
}

// CodeBuilder emits bytecode with constant pool operands resolved through
// the owning Builder.
type CodeBuilder struct {
	b      *Builder
	code   []byte
	locals []LocalVariableEntry
}

// Op appends raw bytes.
func (c *CodeBuilder) Op(b ...byte) *CodeBuilder {
	c.code = append(c.code, b...)
	return c
}

// PC is the offset of the next instruction.
func (c *CodeBuilder) PC() int { return len(c.code) }

func (c *CodeBuilder) withIndex(op byte, idx uint16) *CodeBuilder {
	return c.Op(op, byte(idx>>8), byte(idx))
}

func (c *CodeBuilder) New(class string) *CodeBuilder {
	return c.withIndex(opNew, c.b.Class(class))
}

func (c *CodeBuilder) ANewArray(class string) *CodeBuilder {
	return c.withIndex(opANewArray, c.b.Class(class))
}

func (c *CodeBuilder) Checkcast(class string) *CodeBuilder {
	return c.withIndex(opCheckcast, c.b.Class(class))
}

func (c *CodeBuilder) Instanceof(class string) *CodeBuilder {
	return c.withIndex(opInstanceof, c.b.Class(class))
}

// LdcClass loads a class literal, using ldc_w when the index needs it.
func (c *CodeBuilder) LdcClass(class string) *CodeBuilder {
	idx := c.b.Class(class)
	if idx <= 0xff {
		return c.Op(opLdc, byte(idx))
	}
	return c.withIndex(opLdcW, idx)
}

func (c *CodeBuilder) GetStatic(owner, name, descriptor string) *CodeBuilder {
	return c.withIndex(opGetStatic, c.b.Fieldref(owner, name, descriptor))
}

func (c *CodeBuilder) GetField(owner, name, descriptor string) *CodeBuilder {
	return c.withIndex(opGetField, c.b.Fieldref(owner, name, descriptor))
}

func (c *CodeBuilder) PutField(owner, name, descriptor string) *CodeBuilder {
	return c.withIndex(opPutField, c.b.Fieldref(owner, name, descriptor))
}

func (c *CodeBuilder) InvokeVirtual(owner, name, descriptor string) *CodeBuilder {
	return c.withIndex(opInvokeVirtual, c.b.Methodref(owner, name, descriptor))
}

func (c *CodeBuilder) InvokeSpecial(owner, name, descriptor string) *CodeBuilder {
	return c.withIndex(opInvokeSpecial, c.b.Methodref(owner, name, descriptor))
}

func (c *CodeBuilder) InvokeStatic(owner, name, descriptor string) *CodeBuilder {
	return c.withIndex(opInvokeStatic, c.b.Methodref(owner, name, descriptor))
}

func (c *CodeBuilder) InvokeInterface(owner, name, descriptor string, argSlots uint8) *CodeBuilder {
	c.withIndex(opInvokeIface, c.b.InterfaceMethodref(owner, name, descriptor))
	return c.Op(argSlots+1, 0)
}

// LocalVariable records a LocalVariableTable entry covering the whole body.
func (c *CodeBuilder) LocalVariable(slot uint16, name, descriptor string) *CodeBuilder {
	c.locals = append(c.locals, LocalVariableEntry{
		NameIndex:       c.b.Utf8(name),
		DescriptorIndex: c.b.Utf8(descriptor),
		Index:           slot,
	})
	return c
}

package classfile

import (
	"encoding/binary"

	"github.com/cockroachdb/errors"
)

type AttributeInfo struct {
	NameIndex uint16
	Info      []byte
	Parsed    any
}

type CodeAttribute struct {
	MaxStack       uint16
	MaxLocals      uint16
	Code           []byte
	ExceptionTable []ExceptionTableEntry
	Attributes     []AttributeInfo
}

type ExceptionTableEntry struct {
	StartPC   uint16
	EndPC     uint16
	HandlerPC uint16
	CatchType uint16
}

type ConstantValueAttribute struct {
	ConstantValueIndex uint16
}

type ExceptionsAttribute struct {
	ExceptionIndexTable []uint16
}

type InnerClassesAttribute struct {
	Classes []InnerClassEntry
}

type InnerClassEntry struct {
	InnerClassInfoIndex   uint16
	OuterClassInfoIndex   uint16
	InnerNameIndex        uint16
	InnerClassAccessFlags AccessFlags
}

type SignatureAttribute struct {
	SignatureIndex uint16
}

type MethodParametersAttribute struct {
	Parameters []MethodParameter
}

type MethodParameter struct {
	NameIndex   uint16
	AccessFlags AccessFlags
}

type LocalVariableTableAttribute struct {
	LocalVariableTable []LocalVariableEntry
}

// LocalVariableEntry is shared by LocalVariableTable and
// LocalVariableTypeTable; DescriptorIndex holds the signature index for the
// latter.
type LocalVariableEntry struct {
	StartPC         uint16
	Length          uint16
	NameIndex       uint16
	DescriptorIndex uint16
	Index           uint16
}

type LocalVariableTypeTableAttribute struct {
	LocalVariableTypeTable []LocalVariableEntry
}

type SourceFileAttribute struct {
	SourceFileIndex uint16
}

type EnclosingMethodAttribute struct {
	ClassIndex  uint16
	MethodIndex uint16
}

type DeprecatedAttribute struct{}

type SyntheticAttribute struct{}

func attributeAs[T any](a *AttributeInfo) T {
	var zero T
	if a == nil || a.Parsed == nil {
		return zero
	}
	if v, ok := a.Parsed.(T); ok {
		return v
	}
	return zero
}

func (a *AttributeInfo) AsCode() *CodeAttribute { return attributeAs[*CodeAttribute](a) }
func (a *AttributeInfo) AsConstantValue() *ConstantValueAttribute {
	return attributeAs[*ConstantValueAttribute](a)
}
func (a *AttributeInfo) AsExceptions() *ExceptionsAttribute {
	return attributeAs[*ExceptionsAttribute](a)
}
func (a *AttributeInfo) AsInnerClasses() *InnerClassesAttribute {
	return attributeAs[*InnerClassesAttribute](a)
}
func (a *AttributeInfo) AsSignature() *SignatureAttribute {
	return attributeAs[*SignatureAttribute](a)
}
func (a *AttributeInfo) AsMethodParameters() *MethodParametersAttribute {
	return attributeAs[*MethodParametersAttribute](a)
}
func (a *AttributeInfo) AsLocalVariableTable() *LocalVariableTableAttribute {
	return attributeAs[*LocalVariableTableAttribute](a)
}
func (a *AttributeInfo) AsLocalVariableTypeTable() *LocalVariableTypeTableAttribute {
	return attributeAs[*LocalVariableTypeTableAttribute](a)
}
func (a *AttributeInfo) AsSourceFile() *SourceFileAttribute {
	return attributeAs[*SourceFileAttribute](a)
}
func (a *AttributeInfo) AsEnclosingMethod() *EnclosingMethodAttribute {
	return attributeAs[*EnclosingMethodAttribute](a)
}

func findAttribute(attrs []AttributeInfo, cp ConstantPool, name string) *AttributeInfo {
	for i := range attrs {
		if cp.GetUtf8(attrs[i].NameIndex) == name {
			return &attrs[i]
		}
	}
	return nil
}

// cursor reads big-endian values out of an attribute body. The first read
// past the end records errTruncated and every later read returns zero.
type cursor struct {
	buf []byte
	pos int
	err error
}

var errTruncated = errors.New("attribute body truncated")

func (c *cursor) take(n int) []byte {
	if c.err != nil {
		return nil
	}
	if c.pos+n > len(c.buf) {
		c.err = errTruncated
		return nil
	}
	b := c.buf[c.pos : c.pos+n]
	c.pos += n
	return b
}

func (c *cursor) u1() uint8 {
	if b := c.take(1); b != nil {
		return b[0]
	}
	return 0
}

func (c *cursor) u2() uint16 {
	if b := c.take(2); b != nil {
		return binary.BigEndian.Uint16(b)
	}
	return 0
}

func (c *cursor) u4() uint32 {
	if b := c.take(4); b != nil {
		return binary.BigEndian.Uint32(b)
	}
	return 0
}

func (c *cursor) u2s() []uint16 {
	n := int(c.u2())
	out := make([]uint16, 0, n)
	for i := 0; i < n && c.err == nil; i++ {
		out = append(out, c.u2())
	}
	return out
}

// decodeAttribute decodes the body of a known attribute. Unknown attributes
// return a nil value and no error.
func decodeAttribute(name string, info []byte, cp ConstantPool) (any, error) {
	c := &cursor{buf: info}
	var parsed any

	switch name {
	case AttrCode:
		code := &CodeAttribute{
			MaxStack:  c.u2(),
			MaxLocals: c.u2(),
		}
		code.Code = c.take(int(c.u4()))
		n := int(c.u2())
		for i := 0; i < n && c.err == nil; i++ {
			code.ExceptionTable = append(code.ExceptionTable, ExceptionTableEntry{
				StartPC:   c.u2(),
				EndPC:     c.u2(),
				HandlerPC: c.u2(),
				CatchType: c.u2(),
			})
		}
		n = int(c.u2())
		for i := 0; i < n && c.err == nil; i++ {
			nameIndex := c.u2()
			body := c.take(int(c.u4()))
			if c.err != nil {
				break
			}
			attr, err := newAttribute(nameIndex, body, cp)
			if err != nil {
				return nil, errors.Wrapf(err, "code attribute %d", i)
			}
			code.Attributes = append(code.Attributes, attr)
		}
		parsed = code
	case AttrConstantValue:
		parsed = &ConstantValueAttribute{ConstantValueIndex: c.u2()}
	case AttrExceptions:
		parsed = &ExceptionsAttribute{ExceptionIndexTable: c.u2s()}
	case AttrInnerClasses:
		n := int(c.u2())
		ic := &InnerClassesAttribute{Classes: make([]InnerClassEntry, 0, n)}
		for i := 0; i < n && c.err == nil; i++ {
			ic.Classes = append(ic.Classes, InnerClassEntry{
				InnerClassInfoIndex:   c.u2(),
				OuterClassInfoIndex:   c.u2(),
				InnerNameIndex:        c.u2(),
				InnerClassAccessFlags: AccessFlags(c.u2()),
			})
		}
		parsed = ic
	case AttrSignature:
		parsed = &SignatureAttribute{SignatureIndex: c.u2()}
	case AttrMethodParameters:
		n := int(c.u1())
		mp := &MethodParametersAttribute{Parameters: make([]MethodParameter, 0, n)}
		for i := 0; i < n && c.err == nil; i++ {
			mp.Parameters = append(mp.Parameters, MethodParameter{
				NameIndex:   c.u2(),
				AccessFlags: AccessFlags(c.u2()),
			})
		}
		parsed = mp
	case AttrLocalVariableTable:
		parsed = &LocalVariableTableAttribute{LocalVariableTable: readLocalVariables(c)}
	case AttrLocalVariableTypeTable:
		parsed = &LocalVariableTypeTableAttribute{LocalVariableTypeTable: readLocalVariables(c)}
	case AttrSourceFile:
		parsed = &SourceFileAttribute{SourceFileIndex: c.u2()}
	case AttrEnclosingMethod:
		parsed = &EnclosingMethodAttribute{ClassIndex: c.u2(), MethodIndex: c.u2()}
	case AttrDeprecated:
		parsed = &DeprecatedAttribute{}
	case AttrSynthetic:
		parsed = &SyntheticAttribute{}
	default:
		return nil, nil
	}

	if c.err != nil {
		return nil, errors.Wrapf(c.err, "%s attribute", name)
	}
	return parsed, nil
}

func readLocalVariables(c *cursor) []LocalVariableEntry {
	n := int(c.u2())
	out := make([]LocalVariableEntry, 0, n)
	for i := 0; i < n && c.err == nil; i++ {
		out = append(out, LocalVariableEntry{
			StartPC:         c.u2(),
			Length:          c.u2(),
			NameIndex:       c.u2(),
			DescriptorIndex: c.u2(),
			Index:           c.u2(),
		})
	}
	return out
}

func newAttribute(nameIndex uint16, info []byte, cp ConstantPool) (AttributeInfo, error) {
	parsed, err := decodeAttribute(cp.GetUtf8(nameIndex), info, cp)
	if err != nil {
		return AttributeInfo{}, err
	}
	return AttributeInfo{NameIndex: nameIndex, Info: info, Parsed: parsed}, nil
}

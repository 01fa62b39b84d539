package classfile

import (
	"bytes"
	"encoding/binary"
	"io"
	"math"

	"github.com/cockroachdb/errors"
)

type writer struct {
	buf bytes.Buffer
}

func (w *writer) u1(v uint8) { w.buf.WriteByte(v) }

func (w *writer) u2(v uint16) {
	var b [2]byte
	binary.BigEndian.PutUint16(b[:], v)
	w.buf.Write(b[:])
}

func (w *writer) u4(v uint32) {
	var b [4]byte
	binary.BigEndian.PutUint32(b[:], v)
	w.buf.Write(b[:])
}

func (w *writer) bytes(b []byte) { w.buf.Write(b) }

func (w *writer) attributes(attrs []AttributeInfo) {
	w.u2(uint16(len(attrs)))
	for _, a := range attrs {
		w.u2(a.NameIndex)
		w.u4(uint32(len(a.Info)))
		w.bytes(a.Info)
	}
}

// Encode writes cf in class file format. Attribute bodies are written from
// their raw Info bytes.
func Encode(out io.Writer, cf *ClassFile) error {
	if cf == nil {
		return errors.New("encode: nil class file")
	}
	w := &writer{}
	w.u4(Magic)
	w.u2(cf.MinorVersion)
	w.u2(cf.MajorVersion)

	w.u2(uint16(len(cf.ConstantPool) + 1))
	for i, entry := range cf.ConstantPool {
		if entry == nil {
			continue
		}
		if err := encodeConstant(w, entry); err != nil {
			return errors.Wrapf(err, "encode constant pool entry %d", i+1)
		}
	}

	w.u2(uint16(cf.AccessFlags))
	w.u2(cf.ThisClass)
	w.u2(cf.SuperClass)
	w.u2(uint16(len(cf.Interfaces)))
	for _, idx := range cf.Interfaces {
		w.u2(idx)
	}

	w.u2(uint16(len(cf.Fields)))
	for i := range cf.Fields {
		encodeMember(w, &cf.Fields[i].member)
	}
	w.u2(uint16(len(cf.Methods)))
	for i := range cf.Methods {
		encodeMember(w, &cf.Methods[i].member)
	}
	w.attributes(cf.Attributes)

	_, err := out.Write(w.buf.Bytes())
	return errors.Wrap(err, "write class file")
}

// EncodeBytes returns the class file form of cf.
func EncodeBytes(cf *ClassFile) ([]byte, error) {
	var buf bytes.Buffer
	if err := Encode(&buf, cf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func encodeMember(w *writer, m *member) {
	w.u2(uint16(m.AccessFlags))
	w.u2(m.NameIndex)
	w.u2(m.DescriptorIndex)
	w.attributes(m.Attributes)
}

func encodeConstant(w *writer, entry ConstantPoolEntry) error {
	w.u1(uint8(entry.Tag()))
	switch e := entry.(type) {
	case *ConstantUtf8Info:
		b := encodeModifiedUtf8(e.Value)
		if len(b) > math.MaxUint16 {
			return errors.Newf("utf8 constant of %d bytes is too long", len(b))
		}
		w.u2(uint16(len(b)))
		w.bytes(b)
	case *ConstantIntegerInfo:
		w.u4(uint32(e.Value))
	case *ConstantFloatInfo:
		w.u4(math.Float32bits(e.Value))
	case *ConstantLongInfo:
		w.u4(uint32(uint64(e.Value) >> 32))
		w.u4(uint32(e.Value))
	case *ConstantDoubleInfo:
		bits := math.Float64bits(e.Value)
		w.u4(uint32(bits >> 32))
		w.u4(uint32(bits))
	case *ConstantClassInfo:
		w.u2(e.NameIndex)
	case *ConstantStringInfo:
		w.u2(e.StringIndex)
	case *ConstantMemberrefInfo:
		w.u2(e.ClassIndex)
		w.u2(e.NameAndTypeIndex)
	case *ConstantNameAndTypeInfo:
		w.u2(e.NameIndex)
		w.u2(e.DescriptorIndex)
	case *ConstantMethodHandleInfo:
		w.u1(e.ReferenceKind)
		w.u2(e.ReferenceIndex)
	case *ConstantMethodTypeInfo:
		w.u2(e.DescriptorIndex)
	case *ConstantDynamicInfo:
		w.u2(e.BootstrapMethodAttrIndex)
		w.u2(e.NameAndTypeIndex)
	case *ConstantNamedInfo:
		w.u2(e.NameIndex)
	default:
		return errors.Newf("unsupported constant %T", entry)
	}
	return nil
}

func encodeModifiedUtf8(s string) []byte {
	out := make([]byte, 0, len(s))
	for _, r := range s {
		switch {
		case r != 0 && r < 0x80:
			out = append(out, byte(r))
		case r < 0x800:
			out = append(out, 0xC0|byte(r>>6), 0x80|byte(r&0x3F))
		case r < 0x10000:
			out = append(out, 0xE0|byte(r>>12), 0x80|byte((r>>6)&0x3F), 0x80|byte(r&0x3F))
		default:
			r -= 0x10000
			for _, half := range []rune{0xD800 + (r >> 10), 0xDC00 + (r & 0x3FF)} {
				out = append(out, 0xE0|byte(half>>12), 0x80|byte((half>>6)&0x3F), 0x80|byte(half&0x3F))
			}
		}
	}
	return out
}

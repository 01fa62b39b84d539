package classfile

import (
	"bytes"
	"encoding/binary"
	"io"
	"math"
	"os"

	"github.com/cockroachdb/errors"
)

type reader struct {
	r   io.Reader
	err error
}

func (r *reader) readU1() uint8 {
	if r.err != nil {
		return 0
	}
	var buf [1]byte
	_, r.err = io.ReadFull(r.r, buf[:])
	return buf[0]
}

func (r *reader) readU2() uint16 {
	if r.err != nil {
		return 0
	}
	var buf [2]byte
	_, r.err = io.ReadFull(r.r, buf[:])
	return binary.BigEndian.Uint16(buf[:])
}

func (r *reader) readU4() uint32 {
	if r.err != nil {
		return 0
	}
	var buf [4]byte
	_, r.err = io.ReadFull(r.r, buf[:])
	return binary.BigEndian.Uint32(buf[:])
}

func (r *reader) readBytes(n int) []byte {
	if r.err != nil {
		return nil
	}
	buf := make([]byte, n)
	_, r.err = io.ReadFull(r.r, buf)
	return buf
}

func ParseFile(path string) (*ClassFile, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "open class file")
	}
	defer f.Close()
	cf, err := Parse(f)
	if err != nil {
		return nil, errors.Wrapf(err, "parse %s", path)
	}
	return cf, nil
}

func ParseBytes(data []byte) (*ClassFile, error) {
	return Parse(bytes.NewReader(data))
}

func Parse(rd io.Reader) (*ClassFile, error) {
	r := &reader{r: rd}

	magic := r.readU4()
	if r.err != nil {
		return nil, errors.Wrap(r.err, "read magic")
	}
	if magic != Magic {
		return nil, errors.Newf("invalid magic number: 0x%X (expected 0xCAFEBABE)", magic)
	}

	cf := &ClassFile{
		MinorVersion: r.readU2(),
		MajorVersion: r.readU2(),
	}
	if r.err != nil {
		return nil, errors.Wrap(r.err, "read version")
	}

	constantPoolCount := r.readU2()
	if r.err != nil {
		return nil, errors.Wrap(r.err, "read constant pool count")
	}
	if constantPoolCount == 0 {
		return nil, errors.New("constant pool count is zero")
	}

	cf.ConstantPool = make(ConstantPool, constantPoolCount-1)
	for i := uint16(1); i < constantPoolCount; i++ {
		entry, wide, err := readConstantPoolEntry(r)
		if err != nil {
			return nil, errors.Wrapf(err, "read constant pool entry %d", i)
		}
		cf.ConstantPool[i-1] = entry
		if wide {
			// Long and Double occupy two slots; the second one stays nil.
			i++
		}
	}

	cf.AccessFlags = AccessFlags(r.readU2())
	cf.ThisClass = r.readU2()
	cf.SuperClass = r.readU2()

	interfacesCount := r.readU2()
	cf.Interfaces = make([]uint16, interfacesCount)
	for i := range cf.Interfaces {
		cf.Interfaces[i] = r.readU2()
	}
	if r.err != nil {
		return nil, errors.Wrap(r.err, "read class info")
	}

	fieldsCount := r.readU2()
	if r.err != nil {
		return nil, errors.Wrap(r.err, "read fields count")
	}
	cf.Fields = make([]FieldInfo, fieldsCount)
	for i := range cf.Fields {
		m, err := readMember(r, cf.ConstantPool)
		if err != nil {
			return nil, errors.Wrapf(err, "read field %d", i)
		}
		cf.Fields[i] = FieldInfo{member: m}
	}

	methodsCount := r.readU2()
	if r.err != nil {
		return nil, errors.Wrap(r.err, "read methods count")
	}
	cf.Methods = make([]MethodInfo, methodsCount)
	for i := range cf.Methods {
		m, err := readMember(r, cf.ConstantPool)
		if err != nil {
			return nil, errors.Wrapf(err, "read method %d", i)
		}
		cf.Methods[i] = MethodInfo{member: m}
	}

	attrs, err := readAttributes(r, cf.ConstantPool)
	if err != nil {
		return nil, errors.Wrap(err, "read class attributes")
	}
	cf.Attributes = attrs

	return cf, nil
}

func readConstantPoolEntry(r *reader) (ConstantPoolEntry, bool, error) {
	tag := ConstantTag(r.readU1())
	if r.err != nil {
		return nil, false, r.err
	}

	var entry ConstantPoolEntry
	wide := false

	switch tag {
	case ConstantUtf8:
		length := r.readU2()
		entry = &ConstantUtf8Info{Value: decodeModifiedUtf8(r.readBytes(int(length)))}
	case ConstantInteger:
		entry = &ConstantIntegerInfo{Value: int32(r.readU4())}
	case ConstantFloat:
		entry = &ConstantFloatInfo{Value: math.Float32frombits(r.readU4())}
	case ConstantLong:
		high, low := r.readU4(), r.readU4()
		entry = &ConstantLongInfo{Value: int64(uint64(high)<<32 | uint64(low))}
		wide = true
	case ConstantDouble:
		high, low := r.readU4(), r.readU4()
		entry = &ConstantDoubleInfo{Value: math.Float64frombits(uint64(high)<<32 | uint64(low))}
		wide = true
	case ConstantClass:
		entry = &ConstantClassInfo{NameIndex: r.readU2()}
	case ConstantString:
		entry = &ConstantStringInfo{StringIndex: r.readU2()}
	case ConstantFieldref, ConstantMethodref, ConstantInterfaceMethodref:
		entry = &ConstantMemberrefInfo{
			RefTag:           tag,
			ClassIndex:       r.readU2(),
			NameAndTypeIndex: r.readU2(),
		}
	case ConstantNameAndType:
		entry = &ConstantNameAndTypeInfo{
			NameIndex:       r.readU2(),
			DescriptorIndex: r.readU2(),
		}
	case ConstantMethodHandle:
		entry = &ConstantMethodHandleInfo{
			ReferenceKind:  r.readU1(),
			ReferenceIndex: r.readU2(),
		}
	case ConstantMethodType:
		entry = &ConstantMethodTypeInfo{DescriptorIndex: r.readU2()}
	case ConstantDynamic, ConstantInvokeDynamic:
		entry = &ConstantDynamicInfo{
			RefTag:                   tag,
			BootstrapMethodAttrIndex: r.readU2(),
			NameAndTypeIndex:         r.readU2(),
		}
	case ConstantModule, ConstantPackage:
		entry = &ConstantNamedInfo{RefTag: tag, NameIndex: r.readU2()}
	default:
		return nil, false, errors.Newf("unknown constant pool tag: %d", tag)
	}

	if r.err != nil {
		return nil, false, r.err
	}
	return entry, wide, nil
}

func readMember(r *reader, cp ConstantPool) (member, error) {
	m := member{
		AccessFlags:     AccessFlags(r.readU2()),
		NameIndex:       r.readU2(),
		DescriptorIndex: r.readU2(),
	}
	attrs, err := readAttributes(r, cp)
	if err != nil {
		return member{}, errors.Wrapf(err, "member %q", cp.GetUtf8(m.NameIndex))
	}
	m.Attributes = attrs
	return m, nil
}

func readAttributes(r *reader, cp ConstantPool) ([]AttributeInfo, error) {
	count := r.readU2()
	if r.err != nil {
		return nil, r.err
	}
	attrs := make([]AttributeInfo, count)
	for i := range attrs {
		nameIndex := r.readU2()
		length := r.readU4()
		info := r.readBytes(int(length))
		if r.err != nil {
			return nil, r.err
		}
		attr, err := newAttribute(nameIndex, info, cp)
		if err != nil {
			return nil, err
		}
		attrs[i] = attr
	}
	return attrs, nil
}

func decodeModifiedUtf8(b []byte) string {
	runes := make([]rune, 0, len(b))
	i := 0
	for i < len(b) {
		c := b[i]
		switch {
		case c&0x80 == 0:
			runes = append(runes, rune(c))
			i++
		case c&0xE0 == 0xC0 && i+1 < len(b):
			runes = append(runes, rune(c&0x1F)<<6|rune(b[i+1]&0x3F))
			i += 2
		case c&0xF0 == 0xE0 && i+2 < len(b):
			r := rune(c&0x0F)<<12 | rune(b[i+1]&0x3F)<<6 | rune(b[i+2]&0x3F)
			// Supplementary characters are encoded as a surrogate pair of
			// three-byte sequences.
			if r >= 0xD800 && r <= 0xDBFF && i+5 < len(b) && b[i+3] == 0xED {
				low := rune(b[i+3]&0x0F)<<12 | rune(b[i+4]&0x3F)<<6 | rune(b[i+5]&0x3F)
				if low >= 0xDC00 && low <= 0xDFFF {
					runes = append(runes, 0x10000+((r-0xD800)<<10)+(low-0xDC00))
					i += 6
					continue
				}
			}
			runes = append(runes, r)
			i += 3
		default:
			runes = append(runes, rune(c))
			i++
		}
	}
	return string(runes)
}

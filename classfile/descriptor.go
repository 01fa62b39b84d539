package classfile

import (
	"strings"

	"github.com/cockroachdb/errors"
)

type FieldType struct {
	BaseType   string
	ClassName  string
	ArrayDepth int
}

var baseTypes = map[byte]string{
	'B': "byte",
	'C': "char",
	'D': "double",
	'F': "float",
	'I': "int",
	'J': "long",
	'S': "short",
	'Z': "boolean",
}

// BaseTypeName maps a one-letter descriptor to its primitive name.
func BaseTypeName(code byte) (string, bool) {
	name, ok := baseTypes[code]
	return name, ok
}

// BaseTypeCode maps a primitive name to its one-letter descriptor.
func BaseTypeCode(name string) (byte, bool) {
	for code, n := range baseTypes {
		if n == name {
			return code, true
		}
	}
	return 0, false
}

func (ft *FieldType) String() string {
	var sb strings.Builder
	if ft.BaseType != "" {
		sb.WriteString(ft.BaseType)
	} else {
		sb.WriteString(InternalToSourceName(ft.ClassName))
	}
	for i := 0; i < ft.ArrayDepth; i++ {
		sb.WriteString("[]")
	}
	return sb.String()
}

// Descriptor re-encodes the field type in descriptor form.
func (ft *FieldType) Descriptor() string {
	var sb strings.Builder
	for i := 0; i < ft.ArrayDepth; i++ {
		sb.WriteByte('[')
	}
	if code, ok := BaseTypeCode(ft.BaseType); ok && ft.BaseType != "" {
		sb.WriteByte(code)
	} else {
		sb.WriteByte('L')
		sb.WriteString(ft.ClassName)
		sb.WriteByte(';')
	}
	return sb.String()
}

func (ft *FieldType) IsArray() bool {
	return ft.ArrayDepth > 0
}

func (ft *FieldType) IsPrimitive() bool {
	return ft.BaseType != "" && ft.ArrayDepth == 0
}

// Slots is the number of local variable slots a value of this type takes.
func (ft *FieldType) Slots() int {
	if ft.ArrayDepth == 0 && (ft.BaseType == "long" || ft.BaseType == "double") {
		return 2
	}
	return 1
}

type MethodDescriptor struct {
	Parameters []FieldType
	// ReturnType is nil for void.
	ReturnType *FieldType
}

func (md *MethodDescriptor) String() string {
	var sb strings.Builder
	sb.WriteString("(")
	for i, p := range md.Parameters {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(p.String())
	}
	sb.WriteString(")")
	if md.ReturnType != nil {
		sb.WriteString(" ")
		sb.WriteString(md.ReturnType.String())
	} else {
		sb.WriteString(" void")
	}
	return sb.String()
}

func ParseFieldDescriptor(desc string) (*FieldType, error) {
	ft, consumed := parseFieldType(desc, 0)
	if ft == nil || consumed != len(desc) {
		return nil, errors.Newf("invalid field descriptor %q", desc)
	}
	return ft, nil
}

func ParseMethodDescriptor(desc string) (*MethodDescriptor, error) {
	if len(desc) == 0 || desc[0] != '(' {
		return nil, errors.Newf("invalid method descriptor %q: missing '('", desc)
	}

	md := &MethodDescriptor{}
	i := 1
	for i < len(desc) && desc[i] != ')' {
		ft, consumed := parseFieldType(desc, i)
		if ft == nil {
			return nil, errors.Newf("invalid method descriptor %q at offset %d", desc, i)
		}
		md.Parameters = append(md.Parameters, *ft)
		i += consumed
	}
	if i >= len(desc) {
		return nil, errors.Newf("invalid method descriptor %q: missing ')'", desc)
	}
	i++

	if i < len(desc) && desc[i] == 'V' && i+1 == len(desc) {
		return md, nil
	}
	ret, consumed := parseFieldType(desc, i)
	if ret == nil || i+consumed != len(desc) {
		return nil, errors.Newf("invalid method descriptor %q: bad return type", desc)
	}
	md.ReturnType = ret
	return md, nil
}

// ParameterDescriptors splits the parameter section of a method descriptor
// into one descriptor per parameter.
func (md *MethodDescriptor) ParameterDescriptors() []string {
	out := make([]string, len(md.Parameters))
	for i := range md.Parameters {
		out[i] = md.Parameters[i].Descriptor()
	}
	return out
}

func parseFieldType(desc string, start int) (*FieldType, int) {
	if start >= len(desc) {
		return nil, 0
	}

	ft := &FieldType{}
	i := start
	for i < len(desc) && desc[i] == '[' {
		ft.ArrayDepth++
		i++
	}
	if i >= len(desc) {
		return nil, 0
	}

	if name, ok := baseTypes[desc[i]]; ok {
		ft.BaseType = name
		return ft, i - start + 1
	}
	if desc[i] != 'L' {
		return nil, 0
	}
	semicolon := strings.IndexByte(desc[i:], ';')
	if semicolon <= 1 {
		return nil, 0
	}
	ft.ClassName = desc[i+1 : i+semicolon]
	return ft, i - start + semicolon + 1
}

package classfile

import (
	"encoding/binary"

	"github.com/cockroachdb/errors"
)

// Opcodes that carry a constant pool reference to a class or member.
const (
	opLdc            = 0x12
	opLdcW           = 0x13
	opGetStatic      = 0xb2
	opPutStatic      = 0xb3
	opGetField       = 0xb4
	opPutField       = 0xb5
	opInvokeVirtual  = 0xb6
	opInvokeSpecial  = 0xb7
	opInvokeStatic   = 0xb8
	opInvokeIface    = 0xb9
	opNew            = 0xbb
	opANewArray      = 0xbd
	opCheckcast      = 0xc0
	opInstanceof     = 0xc1
	opMultiANewArray = 0xc5

	opTableSwitch  = 0xaa
	opLookupSwitch = 0xab
	opWide         = 0xc4
	opIinc         = 0x84
)

// instructionLength returns the length in bytes of the instruction at pc,
// operands included.
func instructionLength(code []byte, pc int) (int, error) {
	op := code[pc]
	switch {
	case op <= 0x0f, op >= 0x1a && op <= 0x35, op >= 0x3b && op <= 0x83,
		op >= 0x85 && op <= 0x98, op >= 0xac && op <= 0xb1,
		op == 0xbe, op == 0xbf, op == 0xc2, op == 0xc3, op == 0xca, op >= 0xfe:
		return 1, nil
	case op == 0x10, op == opLdc, op >= 0x15 && op <= 0x19,
		op >= 0x36 && op <= 0x3a, op == 0xa9, op == 0xbc:
		return 2, nil
	case op == 0x11, op == opLdcW, op == 0x14, op == opIinc,
		op >= 0x99 && op <= 0xa8, op >= opGetStatic && op <= opInvokeStatic,
		op == opNew, op == opANewArray, op == opCheckcast, op == opInstanceof,
		op == 0xc6, op == 0xc7:
		return 3, nil
	case op == opMultiANewArray:
		return 4, nil
	case op == opInvokeIface, op == 0xba, op == 0xc8, op == 0xc9:
		return 5, nil
	case op == opWide:
		if pc+1 < len(code) && code[pc+1] == opIinc {
			return 6, nil
		}
		return 4, nil
	case op == opTableSwitch || op == opLookupSwitch:
		base := pc + 1 + (4-(pc+1)%4)%4
		header := 8
		if op == opTableSwitch {
			header = 12
		}
		if base+header > len(code) {
			return 0, errors.Newf("truncated switch at pc %d", pc)
		}
		if op == opTableSwitch {
			low := int32(binary.BigEndian.Uint32(code[base+4:]))
			high := int32(binary.BigEndian.Uint32(code[base+8:]))
			if high < low {
				return 0, errors.Newf("tableswitch at pc %d has high < low", pc)
			}
			return base - pc + 12 + int(high-low+1)*4, nil
		}
		pairs := int32(binary.BigEndian.Uint32(code[base+4:]))
		if pairs < 0 {
			return 0, errors.Newf("lookupswitch at pc %d has negative pair count", pc)
		}
		return base - pc + 8 + int(pairs)*8, nil
	}
	return 0, errors.Newf("unknown opcode 0x%02x at pc %d", op, pc)
}

// ReferencedClassNames scans the bytecode for instructions that name a
// class: object and array creation, casts and instanceof checks, class
// literals loaded with ldc, and the owners of field accesses and method
// invocations. Names are returned in internal form, in first-occurrence
// order, without duplicates. Array classes keep their descriptor spelling.
func (c *CodeAttribute) ReferencedClassNames(cp ConstantPool) ([]string, error) {
	seen := make(map[string]bool)
	var names []string
	add := func(name string) {
		if name != "" && !seen[name] {
			seen[name] = true
			names = append(names, name)
		}
	}

	code := c.Code
	for pc := 0; pc < len(code); {
		n, err := instructionLength(code, pc)
		if err != nil {
			return nil, err
		}
		if pc+n > len(code) {
			return nil, errors.Newf("instruction at pc %d runs past end of code", pc)
		}

		switch op := code[pc]; op {
		case opLdc, opLdcW:
			idx := uint16(code[pc+1])
			if op == opLdcW {
				idx = binary.BigEndian.Uint16(code[pc+1:])
			}
			if cp.TagAt(idx) == ConstantClass {
				add(cp.GetClassName(idx))
			}
		case opNew, opANewArray, opCheckcast, opInstanceof, opMultiANewArray:
			add(cp.GetClassName(binary.BigEndian.Uint16(code[pc+1:])))
		case opGetStatic, opPutStatic, opGetField, opPutField,
			opInvokeVirtual, opInvokeSpecial, opInvokeStatic, opInvokeIface:
			if owner, _, _, ok := cp.GetMemberref(binary.BigEndian.Uint16(code[pc+1:])); ok {
				add(owner)
			}
		}
		pc += n
	}
	return names, nil
}

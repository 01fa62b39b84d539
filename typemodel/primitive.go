package typemodel

import (
	"fmt"

	"github.com/cockroachdb/errors"
)

// PrimitiveType is one of the eight primitive types. There is exactly one
// instance per primitive.
type PrimitiveType struct {
	leaf
	name       string
	descriptor string
}

var (
	Boolean = &PrimitiveType{name: "boolean", descriptor: "Z"}
	Byte    = &PrimitiveType{name: "byte", descriptor: "B"}
	Char    = &PrimitiveType{name: "char", descriptor: "C"}
	Short   = &PrimitiveType{name: "short", descriptor: "S"}
	Int     = &PrimitiveType{name: "int", descriptor: "I"}
	Long    = &PrimitiveType{name: "long", descriptor: "J"}
	Float   = &PrimitiveType{name: "float", descriptor: "F"}
	Double  = &PrimitiveType{name: "double", descriptor: "D"}
)

var primitives = []*PrimitiveType{Boolean, Byte, Char, Short, Int, Long, Float, Double}

func primitiveByToken(token string) (*PrimitiveType, bool) {
	for _, p := range primitives {
		if p.name == token || p.descriptor == token {
			return p, true
		}
	}
	return nil, false
}

// PrimitiveByName returns the primitive named by its source keyword or
// its descriptor letter.
func PrimitiveByName(name string) (*PrimitiveType, error) {
	if p, ok := primitiveByToken(name); ok {
		return p, nil
	}
	return nil, typeError("PrimitiveByName", name, errors.Wrap(ErrWrongKind, "not a primitive type"))
}

func (p *PrimitiveType) isType()                     {}
func (p *PrimitiveType) Kind() Kind                  { return KindPrimitive }
func (p *PrimitiveType) ExternalName() string        { return p.name }
func (p *PrimitiveType) InternalName() string        { return p.descriptor }
func (p *PrimitiveType) ExternalPackageName() string { return "" }
func (p *PrimitiveType) ExternalSimpleName() string  { return p.name }
func (p *PrimitiveType) IsInnerType() bool           { return false }
func (p *PrimitiveType) Modifiers() []Modifier       { return nil }

// Slots is the number of local variable slots a value takes.
func (p *PrimitiveType) Slots() int {
	if p == Long || p == Double {
		return 2
	}
	return 1
}

func (p *PrimitiveType) String() string {
	return fmt.Sprintf("PrimitiveType(%s)", p.name)
}

// VoidType marks the absence of a return value. Void is its only instance.
type VoidType struct {
	leaf
}

var Void = &VoidType{}

func (v *VoidType) isType()                     {}
func (v *VoidType) Kind() Kind                  { return KindVoid }
func (v *VoidType) ExternalName() string        { return "void" }
func (v *VoidType) InternalName() string        { return "V" }
func (v *VoidType) ExternalPackageName() string { return "" }
func (v *VoidType) ExternalSimpleName() string  { return "void" }
func (v *VoidType) IsInnerType() bool           { return false }
func (v *VoidType) Modifiers() []Modifier       { return nil }
func (v *VoidType) String() string              { return "VoidType(void)" }

package typemodel

import "fmt"

// ArrayType is an array of a component type. Multi-dimensional arrays nest:
// int[][] has component int[].
type ArrayType struct {
	leaf
	component Type
	element   Type
	dims      int
}

func newArrayType(component Type) *ArrayType {
	t := &ArrayType{component: component, element: component, dims: 1}
	if inner, ok := component.(*ArrayType); ok {
		t.element = inner.element
		t.dims = inner.dims + 1
	}
	return t
}

func (t *ArrayType) isType()    {}
func (t *ArrayType) Kind() Kind { return KindArray }

// Component is the type one dimension down.
func (t *ArrayType) Component() Type { return t.component }

// ElementType is the innermost non-array type.
func (t *ArrayType) ElementType() Type { return t.element }

func (t *ArrayType) Dimensions() int { return t.dims }

func (t *ArrayType) ExternalName() string { return t.component.ExternalName() + "[]" }

func (t *ArrayType) InternalName() string {
	switch c := t.component.(type) {
	case *ArrayType, *PrimitiveType:
		return "[" + c.InternalName()
	}
	return "[L" + t.component.InternalName() + ";"
}

// ExternalPackageName is the package of the element type.
func (t *ArrayType) ExternalPackageName() string { return t.element.ExternalPackageName() }

func (t *ArrayType) ExternalSimpleName() string { return t.component.ExternalSimpleName() + "[]" }

func (t *ArrayType) IsInnerType() bool { return false }

func (t *ArrayType) Modifiers() []Modifier { return nil }

func (t *ArrayType) String() string {
	return fmt.Sprintf("ArrayType(%s)", t.ExternalName())
}


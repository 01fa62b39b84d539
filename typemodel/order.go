package typemodel

import (
	"cmp"
	"strings"
)

// Members are ordered for stable, familiar output. Visibility ranks public
// first and private last. Every comparison ends on the descriptor so the
// order is total: compare returns 0 only for members with equal content.

func compareStatic(a, b bool) int {
	switch {
	case a == b:
		return 0
	case a:
		return -1
	}
	return 1
}

// CompareFields orders static fields before instance fields, then by
// visibility, declared type simple name and field name.
func CompareFields(a, b *Field) int {
	if c := compareStatic(a.IsStatic(), b.IsStatic()); c != 0 {
		return c
	}
	if c := cmp.Compare(a.Visibility(), b.Visibility()); c != 0 {
		return c
	}
	if c := strings.Compare(a.TypeSimpleName(), b.TypeSimpleName()); c != 0 {
		return c
	}
	if c := strings.Compare(a.name, b.name); c != 0 {
		return c
	}
	return strings.Compare(a.Descriptor(), b.Descriptor())
}

// CompareMethods orders methods by visibility, static before instance,
// then return type simple name, method name and parameter list.
func CompareMethods(a, b *Method) int {
	if c := cmp.Compare(a.Visibility(), b.Visibility()); c != 0 {
		return c
	}
	if c := compareStatic(a.IsStatic(), b.IsStatic()); c != 0 {
		return c
	}
	if c := strings.Compare(a.ReturnTypeSimpleName(), b.ReturnTypeSimpleName()); c != 0 {
		return c
	}
	if c := strings.Compare(a.name, b.name); c != 0 {
		return c
	}
	if c := a.params.Compare(b.params); c != 0 {
		return c
	}
	return strings.Compare(a.descriptor, b.descriptor)
}

// CompareConstructors orders constructors by visibility, then parameter
// list.
func CompareConstructors(a, b *Constructor) int {
	if c := cmp.Compare(a.Visibility(), b.Visibility()); c != 0 {
		return c
	}
	if c := a.params.Compare(b.params); c != 0 {
		return c
	}
	return strings.Compare(a.descriptor, b.descriptor)
}

// FieldsInDifferentGroups reports whether a separator belongs between two
// adjacent sorted fields: they differ in visibility or in being static.
func FieldsInDifferentGroups(a, b *Field) bool {
	return a.Visibility() != b.Visibility() || a.IsStatic() != b.IsStatic()
}

func MethodsInDifferentGroups(a, b *Method) bool {
	return a.Visibility() != b.Visibility() || a.IsStatic() != b.IsStatic()
}

func ConstructorsInDifferentGroups(a, b *Constructor) bool {
	return a.Visibility() != b.Visibility()
}

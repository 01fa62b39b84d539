package typemodel

import (
	"strings"

	"github.com/dhamidi/classmodel/classfile"
)

// Modifier is a source-level modifier keyword.
type Modifier int

const (
	Public Modifier = iota
	Abstract
	Final
	Static
	Default
	Native
	Private
	Protected
	Strictfp
	Synchronized
	Transient
	Volatile
)

var modifierNames = [...]string{
	Public:       "public",
	Abstract:     "abstract",
	Final:        "final",
	Static:       "static",
	Default:      "default",
	Native:       "native",
	Private:      "private",
	Protected:    "protected",
	Strictfp:     "strictfp",
	Synchronized: "synchronized",
	Transient:    "transient",
	Volatile:     "volatile",
}

func (m Modifier) String() string {
	if m < 0 || int(m) >= len(modifierNames) {
		return "unknown"
	}
	return modifierNames[m]
}

// FormatModifiers joins modifiers with spaces, as they would appear in
// source.
func FormatModifiers(mods []Modifier) string {
	parts := make([]string, len(mods))
	for i, m := range mods {
		parts[i] = m.String()
	}
	return strings.Join(parts, " ")
}

func hasModifier(mods []Modifier, m Modifier) bool {
	for _, x := range mods {
		if x == m {
			return true
		}
	}
	return false
}

// Visibility is the access tier of a type or member. The values are
// ordered by rank: public sorts first, private last.
type Visibility int

const (
	VisibilityPublic Visibility = iota
	VisibilityProtected
	VisibilityPackage
	VisibilityPrivate
)

func (v Visibility) String() string {
	switch v {
	case VisibilityPublic:
		return "public"
	case VisibilityProtected:
		return "protected"
	case VisibilityPrivate:
		return "private"
	}
	return "package"
}

func visibilityOf(flags classfile.AccessFlags) Visibility {
	switch {
	case flags.IsPublic():
		return VisibilityPublic
	case flags.IsProtected():
		return VisibilityProtected
	case flags.IsPrivate():
		return VisibilityPrivate
	}
	return VisibilityPackage
}

func appendVisibility(mods []Modifier, flags classfile.AccessFlags) []Modifier {
	switch visibilityOf(flags) {
	case VisibilityPublic:
		mods = append(mods, Public)
	case VisibilityProtected:
		mods = append(mods, Protected)
	case VisibilityPrivate:
		mods = append(mods, Private)
	}
	return mods
}

func fieldModifiers(flags classfile.AccessFlags) []Modifier {
	mods := appendVisibility(nil, flags)
	if flags.IsStatic() {
		mods = append(mods, Static)
	}
	if flags.IsFinal() {
		mods = append(mods, Final)
	}
	if flags.IsTransient() {
		mods = append(mods, Transient)
	}
	if flags.IsVolatile() {
		mods = append(mods, Volatile)
	}
	return mods
}

// methodModifiers derives a method's modifiers. A method of an interface
// that is neither abstract, static nor private is a default method.
func methodModifiers(flags classfile.AccessFlags, inInterface bool) []Modifier {
	mods := appendVisibility(nil, flags)
	if flags.IsStatic() {
		mods = append(mods, Static)
	}
	if inInterface && !flags.IsAbstract() && !flags.IsStatic() && !flags.IsPrivate() {
		mods = append(mods, Default)
	}
	if flags.IsAbstract() {
		mods = append(mods, Abstract)
	} else if flags.IsFinal() {
		mods = append(mods, Final)
	}
	if flags.IsSynchronized() {
		mods = append(mods, Synchronized)
	}
	if flags.IsNative() {
		mods = append(mods, Native)
	}
	if flags.IsStrict() {
		mods = append(mods, Strictfp)
	}
	return mods
}

func constructorModifiers(flags classfile.AccessFlags) []Modifier {
	mods := appendVisibility(nil, flags)
	if flags.IsStrict() {
		mods = append(mods, Strictfp)
	}
	return mods
}

// typeModifiers derives the modifiers of a declared type. Modifiers implied
// by the kind (abstract on interfaces, final on enums) are left out.
func typeModifiers(flags classfile.AccessFlags, kind Kind) []Modifier {
	mods := appendVisibility(nil, flags)
	if flags.IsStatic() {
		mods = append(mods, Static)
	}
	if kind == KindClass {
		if flags.IsAbstract() {
			mods = append(mods, Abstract)
		} else if flags.IsFinal() {
			mods = append(mods, Final)
		}
	}
	return mods
}

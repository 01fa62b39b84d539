package typemodel

// Kind is the closed set of type variants.
type Kind int

const (
	KindClass Kind = iota
	KindInterface
	KindEnum
	KindAnnotation
	KindArray
	KindPrimitive
	KindVoid
)

var kindNames = [...]string{
	KindClass:      "class",
	KindInterface:  "interface",
	KindEnum:       "enum",
	KindAnnotation: "annotation",
	KindArray:      "array",
	KindPrimitive:  "primitive",
	KindVoid:       "void",
}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return "unknown"
	}
	return kindNames[k]
}

// Kinds lists every variant in declaration order.
func Kinds() []Kind {
	return []Kind{KindClass, KindInterface, KindEnum, KindAnnotation, KindArray, KindPrimitive, KindVoid}
}

// ParseKind is the inverse of Kind.String.
func ParseKind(s string) (Kind, bool) {
	for k, name := range kindNames {
		if name == s {
			return Kind(k), true
		}
	}
	return 0, false
}

package format

import (
	"encoding"
	"io"
	"strings"

	"github.com/cockroachdb/errors"

	"github.com/dhamidi/classmodel/typemodel"
)

type Encoder interface {
	encoding.TextMarshaler
	Encode(t typemodel.Type) error
}

var encoders = map[string]func(io.Writer) Encoder{
	"line": func(w io.Writer) Encoder { return NewLineEncoder(w) },
	"json": func(w io.Writer) Encoder { return NewJSONEncoder(w) },
	"yaml": func(w io.Writer) Encoder { return NewYAMLEncoder(w) },
	"java": func(w io.Writer) Encoder { return NewJavaEncoder(w) },
}

// Names lists the formats NewEncoder accepts.
func Names() []string {
	return []string{"line", "json", "yaml", "java"}
}

// NewEncoder returns the encoder registered under name.
func NewEncoder(name string, w io.Writer) (Encoder, error) {
	newEncoder, ok := encoders[name]
	if !ok {
		return nil, errors.Newf("unknown format %q, want one of %s", name, strings.Join(Names(), ", "))
	}
	return newEncoder(w), nil
}

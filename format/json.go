package format

import (
	"encoding/json"
	"io"

	"github.com/dhamidi/classmodel/typemodel"
)

// JSONEncoder writes the Description of a type as indented JSON.
type JSONEncoder struct {
	w    io.Writer
	desc *Description
}

func NewJSONEncoder(w io.Writer) *JSONEncoder {
	return &JSONEncoder{w: w}
}

func (e *JSONEncoder) Encode(t typemodel.Type) error {
	desc, err := Describe(t)
	if err != nil {
		return err
	}
	e.desc = desc
	text, err := e.MarshalText()
	if err != nil {
		return err
	}
	_, err = e.w.Write(append(text, '\n'))
	return err
}

func (e *JSONEncoder) MarshalText() ([]byte, error) {
	return json.MarshalIndent(e.desc, "", "  ")
}

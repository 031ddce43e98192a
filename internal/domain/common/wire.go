package common

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
)

var ErrUnsupportedShape = errors.New("unsupported JSON shape")

// ID is an opaque identifier that the backend emits either as a JSON string
// or as a number. It is always handled as a string.
type ID string

func (id *ID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*id = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*id = ID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return ErrUnsupportedShape
	}
	*id = ID(n.String())
	return nil
}

func (id ID) String() string {
	return string(id)
}

// Ref is a named reference (department, job role) that arrives either as a
// bare name or as an object with id, name and description.
type Ref struct {
	ID          ID     `json:"id,omitempty"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

func (r *Ref) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*r = Ref{}
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*r = Ref{Name: s}
		return nil
	}
	type plain Ref
	var p plain
	if err := json.Unmarshal(data, &p); err != nil {
		return ErrUnsupportedShape
	}
	*r = Ref(p)
	return nil
}

// MarshalJSON writes the bare name, which is what create and update accept.
func (r Ref) MarshalJSON() ([]byte, error) {
	return json.Marshal(r.Name)
}

func (r Ref) String() string {
	return r.Name
}

// SameName compares names ignoring case and surrounding space.
func (r Ref) SameName(name string) bool {
	return strings.EqualFold(strings.TrimSpace(r.Name), strings.TrimSpace(name))
}

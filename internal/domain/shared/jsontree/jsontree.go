// Package jsontree walks arbitrarily shaped JSON documents whose structure is
// not contractually stable. Objects keep their member order, so searches are
// deterministic with respect to the serialized document.
package jsontree

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
)

var ErrUnexpectedToken = errors.New("jsontree: unexpected token")

// Object is a JSON object with member order preserved.
type Object struct {
	Members []Member
}

// Member is a single key/value pair of an Object.
type Member struct {
	Key   string
	Value any
}

// Get returns the value of a direct member, without descending.
func (o *Object) Get(key string) (any, bool) {
	if o == nil {
		return nil, false
	}
	for _, m := range o.Members {
		if m.Key == key {
			return m.Value, true
		}
	}
	return nil, false
}

// Parse decodes a JSON document into *Object, []any and scalar values
// (string, json.Number, bool, nil), preserving object member order.
func Parse(data []byte) (any, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	v, err := parseValue(dec)
	if err != nil {
		return nil, err
	}
	return v, nil
}

func parseValue(dec *json.Decoder) (any, error) {
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	delim, ok := tok.(json.Delim)
	if !ok {
		return tok, nil
	}
	switch delim {
	case '{':
		obj := &Object{}
		for dec.More() {
			keyTok, err := dec.Token()
			if err != nil {
				return nil, err
			}
			key, ok := keyTok.(string)
			if !ok {
				return nil, fmt.Errorf("%w: object key %v", ErrUnexpectedToken, keyTok)
			}
			val, err := parseValue(dec)
			if err != nil {
				return nil, err
			}
			obj.Members = append(obj.Members, Member{Key: key, Value: val})
		}
		if _, err := dec.Token(); err != nil { // consume '}'
			return nil, err
		}
		return obj, nil
	case '[':
		var arr []any
		for dec.More() {
			val, err := parseValue(dec)
			if err != nil {
				return nil, err
			}
			arr = append(arr, val)
		}
		if _, err := dec.Token(); err != nil { // consume ']'
			return nil, err
		}
		return arr, nil
	default:
		return nil, fmt.Errorf("%w: %v", ErrUnexpectedToken, delim)
	}
}

// FindFirst searches the tree depth-first, left-to-right, for a member with
// the given key and returns the first match in document order. If the same
// key appears at several depths, whichever occurrence comes first in the
// serialized text wins; callers relying on a deeper occurrence must not.
func FindFirst(root any, key string) (any, bool) {
	switch node := root.(type) {
	case *Object:
		for _, m := range node.Members {
			if m.Key == key {
				return m.Value, true
			}
			if v, ok := FindFirst(m.Value, key); ok {
				return v, true
			}
		}
	case []any:
		for _, elem := range node {
			if v, ok := FindFirst(elem, key); ok {
				return v, true
			}
		}
	}
	return nil, false
}

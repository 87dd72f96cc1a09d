package jsonv

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
)

// ErrTrailingData is returned by Parse when more than one JSON value is
// present in the input.
var ErrTrailingData = errors.New("jsonv: trailing data after value")

// Parse decodes exactly one JSON value from data, keeping object key order.
// Containers of the returned Value alias data for their raw text, so the
// caller must not modify data afterwards.
func Parse(data []byte) (Value, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	d := decoder{dec: dec, data: data}
	v, err := d.value()
	if err != nil {
		return Value{}, err
	}
	if _, err := dec.Token(); err != io.EOF {
		if err == nil {
			return Value{}, ErrTrailingData
		}
		return Value{}, err
	}
	if d.dupKeys {
		// Raw text no longer matches the decoded members.
		v = dropRaw(v)
	}
	return v, nil
}

type decoder struct {
	dec     *json.Decoder
	data    []byte
	dupKeys bool
}

func dropRaw(v Value) Value {
	v.raw = nil
	switch v.kind {
	case Array:
		for i := range v.arr {
			v.arr[i] = dropRaw(v.arr[i])
		}
	case Object:
		for i := range v.obj {
			v.obj[i].Value = dropRaw(v.obj[i].Value)
		}
	}
	return v
}

func (d *decoder) value() (Value, error) {
	dec := d.dec
	tok, err := dec.Token()
	if err != nil {
		if err == io.EOF {
			return Value{}, io.ErrUnexpectedEOF
		}
		return Value{}, err
	}
	switch t := tok.(type) {
	case json.Delim:
		start := int(dec.InputOffset()) - 1
		switch t {
		case '{':
			return d.object(start)
		case '[':
			return d.array(start)
		default:
			return Value{}, fmt.Errorf("jsonv: unexpected delimiter %q", rune(t))
		}
	case string:
		return StringValue(t), nil
	case json.Number:
		return NumberValue(t.String()), nil
	case bool:
		return BoolValue(t), nil
	case nil:
		return NullValue(), nil
	default:
		return Value{}, fmt.Errorf("jsonv: unexpected token %T", tok)
	}
}

func (d *decoder) object(start int) (Value, error) {
	dec := d.dec
	var set memberSet
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return Value{}, err
		}
		key, ok := tok.(string)
		if !ok {
			return Value{}, fmt.Errorf("jsonv: object key is %T", tok)
		}
		v, err := d.value()
		if err != nil {
			return Value{}, err
		}
		if set.put(key, v) {
			d.dupKeys = true
		}
	}
	if _, err := dec.Token(); err != nil {
		return Value{}, err
	}
	members := set.members
	if members == nil {
		members = []Member{}
	}
	return Value{kind: Object, obj: members, raw: rawSpan(d.data, start, int(dec.InputOffset()))}, nil
}

func (d *decoder) array(start int) (Value, error) {
	dec := d.dec
	items := []Value{}
	for dec.More() {
		v, err := d.value()
		if err != nil {
			return Value{}, err
		}
		items = append(items, v)
	}
	if _, err := dec.Token(); err != nil {
		return Value{}, err
	}
	return Value{kind: Array, arr: items, raw: rawSpan(d.data, start, int(dec.InputOffset()))}, nil
}

func rawSpan(data []byte, start, end int) []byte {
	if start < 0 || end > len(data) || start >= end {
		return nil
	}
	return data[start:end:end]
}

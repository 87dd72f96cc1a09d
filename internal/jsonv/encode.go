package jsonv

import (
	"strconv"
	"unicode/utf8"
)

const hexDigits = "0123456789abcdef"

// AppendJSON appends the compact JSON text of v to dst. Containers decoded
// from compact input reuse their source text verbatim.
func AppendJSON(dst []byte, v Value) []byte {
	switch v.kind {
	case Null:
		return append(dst, "null"...)
	case Bool:
		return strconv.AppendBool(dst, v.b)
	case Number:
		return append(dst, v.s...)
	case String:
		return AppendQuoted(dst, v.s)
	case Array:
		if v.raw != nil {
			return append(dst, v.raw...)
		}
		dst = append(dst, '[')
		for i, item := range v.arr {
			if i > 0 {
				dst = append(dst, ',')
			}
			dst = AppendJSON(dst, item)
		}
		return append(dst, ']')
	case Object:
		if v.raw != nil {
			return append(dst, v.raw...)
		}
		dst = append(dst, '{')
		for i, m := range v.obj {
			if i > 0 {
				dst = append(dst, ',')
			}
			dst = AppendQuoted(dst, m.Key)
			dst = append(dst, ':')
			dst = AppendJSON(dst, m.Value)
		}
		return append(dst, '}')
	}
	return dst
}

// AppendIndent appends v as indented JSON, one element or member per line.
// Every line after the first starts with prefix.
func AppendIndent(dst []byte, v Value, prefix, indent string) []byte {
	return appendIndent(dst, v, prefix, indent, 0)
}

func appendIndent(dst []byte, v Value, prefix, indent string, depth int) []byte {
	switch {
	case v.kind == Array && len(v.arr) > 0:
		dst = append(dst, '[')
		for i, item := range v.arr {
			if i > 0 {
				dst = append(dst, ',')
			}
			dst = appendNewline(dst, prefix, indent, depth+1)
			dst = appendIndent(dst, item, prefix, indent, depth+1)
		}
		dst = appendNewline(dst, prefix, indent, depth)
		return append(dst, ']')
	case v.kind == Object && len(v.obj) > 0:
		dst = append(dst, '{')
		for i, m := range v.obj {
			if i > 0 {
				dst = append(dst, ',')
			}
			dst = appendNewline(dst, prefix, indent, depth+1)
			dst = AppendQuoted(dst, m.Key)
			dst = append(dst, ':', ' ')
			dst = appendIndent(dst, m.Value, prefix, indent, depth+1)
		}
		dst = appendNewline(dst, prefix, indent, depth)
		return append(dst, '}')
	case v.kind == Array:
		return append(dst, '[', ']')
	case v.kind == Object:
		return append(dst, '{', '}')
	default:
		return AppendJSON(dst, v)
	}
}

func appendNewline(dst []byte, prefix, indent string, depth int) []byte {
	dst = append(dst, '\n')
	dst = append(dst, prefix...)
	for i := 0; i < depth; i++ {
		dst = append(dst, indent...)
	}
	return dst
}

// AppendQuoted appends s as a JSON string literal. Unlike encoding/json it
// does not escape HTML characters.
func AppendQuoted(dst []byte, s string) []byte {
	dst = append(dst, '"')
	start := 0
	for i := 0; i < len(s); {
		c := s[i]
		if c < utf8.RuneSelf {
			if c >= 0x20 && c != '"' && c != '\\' {
				i++
				continue
			}
			dst = append(dst, s[start:i]...)
			switch c {
			case '"', '\\':
				dst = append(dst, '\\', c)
			case '\n':
				dst = append(dst, '\\', 'n')
			case '\r':
				dst = append(dst, '\\', 'r')
			case '\t':
				dst = append(dst, '\\', 't')
			default:
				dst = append(dst, '\\', 'u', '0', '0', hexDigits[c>>4], hexDigits[c&0xF])
			}
			i++
			start = i
			continue
		}
		r, size := utf8.DecodeRuneInString(s[i:])
		if r == utf8.RuneError && size == 1 {
			dst = append(dst, s[start:i]...)
			dst = append(dst, `\ufffd`...)
			i += size
			start = i
			continue
		}
		if r == '\u2028' || r == '\u2029' {
			dst = append(dst, s[start:i]...)
			dst = append(dst, '\\', 'u', '2', '0', '2', hexDigits[r&0xF])
			i += size
			start = i
			continue
		}
		i += size
	}
	dst = append(dst, s[start:]...)
	return append(dst, '"')
}

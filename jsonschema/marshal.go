package jsonschema

import (
	"bytes"
	"encoding/json"
	"sort"
)

// The marshalers below produce the standard JSON Schema text form, e.g.
// {"type":"object","properties":{"Id":{"type":"string","format":"uuid"}}}.
// Object properties keep their first-seen order, which encoding/json's map
// marshaling would not.

func typeName(k Kind) string {
	switch k {
	case KindNull:
		return "null"
	case KindBoolean:
		return "boolean"
	case KindInteger:
		return "integer"
	case KindNumber:
		return "number"
	case KindString:
		return "string"
	case KindArray:
		return "array"
	case KindObject:
		return "object"
	}

	panic("kind has no type name")
}

func (s *scalarSchema) MarshalJSON() ([]byte, error) {
	return []byte(`{"type":"` + typeName(s.kind) + `"}`), nil
}

func (s *StringSchema) MarshalJSON() ([]byte, error) {
	if s.Format == FormatNone {
		return []byte(`{"type":"string"}`), nil
	}
	return []byte(`{"type":"string","format":"` + string(s.Format) + `"}`), nil
}

func (a *ArraySchema) MarshalJSON() ([]byte, error) {
	if a.Items == nil {
		// nothing observed for the element type yet
		return []byte(`{"type":"array"}`), nil
	}

	var buf bytes.Buffer
	buf.WriteString(`{"type":"array","items":`)
	bs, err := json.Marshal(a.Items)
	if err != nil {
		return nil, err
	}
	buf.Write(bs)
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func (o *ObjectSchema) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString(`{"type":"object","properties":{`)
	for i := range o.Fields {
		if i > 0 {
			buf.WriteByte(',')
		}
		k, err := json.Marshal(o.Fields[i].Key)
		if err != nil {
			return nil, err
		}
		buf.Write(k)
		buf.WriteByte(':')
		v, err := json.Marshal(o.Fields[i].Value)
		if err != nil {
			return nil, err
		}
		buf.Write(v)
	}
	buf.WriteByte('}')

	var required []string
	for i := range o.Fields {
		if o.Fields[i].Required {
			required = append(required, o.Fields[i].Key)
		}
	}
	if len(required) > 0 {
		buf.WriteString(`,"required":`)
		bs, err := json.Marshal(required)
		if err != nil {
			return nil, err
		}
		buf.Write(bs)
	}

	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func (u *UnionSchema) MarshalJSON() ([]byte, error) {
	vs := make([]Schema, len(u.Variants))
	copy(vs, u.Variants)
	sort.Slice(vs, func(i, j int) bool { return vs[i].Kind() < vs[j].Kind() })

	if plain := plainTypeNames(vs); plain != nil {
		var buf bytes.Buffer
		buf.WriteString(`{"type":`)
		bs, err := json.Marshal(plain)
		if err != nil {
			return nil, err
		}
		buf.Write(bs)
		buf.WriteByte('}')
		return buf.Bytes(), nil
	}

	var buf bytes.Buffer
	buf.WriteString(`{"anyOf":[`)
	for i, v := range vs {
		if i > 0 {
			buf.WriteByte(',')
		}
		bs, err := json.Marshal(v)
		if err != nil {
			return nil, err
		}
		buf.Write(bs)
	}
	buf.WriteString(`]}`)
	return buf.Bytes(), nil
}

// plainTypeNames returns the variant kinds as an array-valued "type" list, or
// nil when some variant carries structure (composites, string formats) that
// the short form would lose.
func plainTypeNames(vs []Schema) []string {
	names := make([]string, len(vs))
	for i, v := range vs {
		switch v.Kind() {
		case KindNull, KindBoolean, KindInteger, KindNumber:
			names[i] = typeName(v.Kind())
		case KindString:
			if v.AsString().Format != FormatNone {
				return nil
			}
			names[i] = typeName(KindString)
		default:
			return nil
		}
	}
	return names
}

package infer

import (
	"github.com/valyala/fastjson"

	"github.com/castorhq/castor/jsonschema"
	"github.com/castorhq/castor/merge"
)

// ParseSampleBodyBytes parses one sampled body and builds a schema node for
// it. The parse step is the only way this package can fail; every valid JSON
// value has a classification.
func ParseSampleBodyBytes(b []byte) (jsonschema.Schema, error) {
	v, err := fastjson.ParseBytes(b)
	if err != nil {
		return nil, err
	}
	return ParseSampleValue(v), nil
}

// ParseSampleValue classifies an already parsed JSON value. Total; never
// returns nil.
func ParseSampleValue(v *fastjson.Value) jsonschema.Schema {
	switch v.Type() {
	case fastjson.TypeObject:
		o, _ := v.Object() // cannot fail, type checked above
		return parseObject(o)
	case fastjson.TypeArray:
		a, _ := v.Array()
		return parseArray(a)
	case fastjson.TypeString:
		sb, _ := v.StringBytes()
		return parseString(string(sb))
	case fastjson.TypeNumber:
		return parseNumber(v)
	case fastjson.TypeTrue, fastjson.TypeFalse:
		return jsonschema.Boolean
	case fastjson.TypeNull:
		return jsonschema.Null
	}

	panic("should be unreachable")
}

func parseObject(o *fastjson.Object) jsonschema.Schema {
	n := jsonschema.ObjectSchema{
		Fields: make([]jsonschema.ObjectField, 0),
	}

	o.Visit(func(key []byte, v *fastjson.Value) {
		// a duplicate key folds into the field it already has; properties
		// stay a mapping even for bodies that repeat keys
		if f := n.Field(string(key)); f != nil {
			f.Value = merge.Schema(f.Value, ParseSampleValue(v))
			return
		}

		// every field of a single sample starts out required; only merging
		// with a sample that omits it can clear the flag
		n.Fields = append(n.Fields, jsonschema.ObjectField{
			Key:      string(key),
			Value:    ParseSampleValue(v),
			Required: true,
		})
	})

	return &n
}

func parseArray(vs []*fastjson.Value) jsonschema.Schema {
	var items jsonschema.Schema
	for _, v := range vs {
		items = merge.Schema(items, ParseSampleValue(v))
	}
	return &jsonschema.ArraySchema{Items: items}
}

func parseString(s string) jsonschema.Schema {
	return jsonschema.NewString(DetectFormat(s))
}

func parseNumber(v *fastjson.Value) jsonschema.Schema {
	// fastjson only yields an int64 when the source text has no fractional
	// or exponent part, so "2" is an integer and "2.0" is a number. Lossy on
	// purpose; the merger widens to number on conflict.
	if _, err := v.Int64(); err == nil {
		return jsonschema.Integer
	}
	return jsonschema.Number
}

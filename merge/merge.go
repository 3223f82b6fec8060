package merge

import (
	"github.com/castorhq/castor/jsonschema"
)

// Schema combines two schema nodes into one node that describes every sample
// either input was built from. It is commutative and associative, so folding
// a stream of samples gives the same result in any order and any batching.
// nil is the identity element.
func Schema(a, b jsonschema.Schema) jsonschema.Schema {
	if a == nil {
		return b
	}
	if b == nil {
		return a
	}
	if jsonschema.Equal(a, b) {
		return a
	}

	if a.Kind() != jsonschema.KindUnion && b.Kind() != jsonschema.KindUnion && compatible(a, b) {
		return mergeCompatible(a, b)
	}

	return mergeVariants(variants(a), variants(b))
}

// compatible reports whether two non-union nodes merge into a single
// non-union node instead of widening to a union.
func compatible(a, b jsonschema.Schema) bool {
	if jsonschema.Equal(a, b) {
		return true
	}
	if isNumeric(a) && isNumeric(b) {
		return true
	}
	return a.Kind() == b.Kind()
}

func isNumeric(s jsonschema.Schema) bool {
	return s.Kind() == jsonschema.KindInteger || s.Kind() == jsonschema.KindNumber
}

func mergeCompatible(a, b jsonschema.Schema) jsonschema.Schema {
	if jsonschema.Equal(a, b) {
		return a
	}

	if isNumeric(a) && isNumeric(b) {
		// one side saw a fractional value, widen for good
		return jsonschema.Number
	}

	switch a.Kind() {
	case jsonschema.KindString:
		// not equal, so the format tags disagree; the tag must be unanimous
		// across all samples to be trusted
		return jsonschema.NewString(jsonschema.FormatNone)
	case jsonschema.KindArray:
		return &jsonschema.ArraySchema{Items: Schema(a.AsArray().Items, b.AsArray().Items)}
	case jsonschema.KindObject:
		return mergeObjects(a.AsObject(), b.AsObject())
	}

	panic("should be unreachable")
}

// mergeObjects takes the union of keys, keeping a's field order and appending
// b's new keys after. A field stays required only if both sides have it and
// both sides require it.
func mergeObjects(a, b *jsonschema.ObjectSchema) jsonschema.Schema {
	fields := make([]jsonschema.ObjectField, 0, len(a.Fields))
	for i := range a.Fields {
		f := a.Fields[i]
		if g := b.Field(f.Key); g != nil {
			fields = append(fields, jsonschema.ObjectField{
				Key:      f.Key,
				Value:    Schema(f.Value, g.Value),
				Required: f.Required && g.Required,
			})
		} else {
			f.Required = false
			fields = append(fields, f)
		}
	}

	for i := range b.Fields {
		g := b.Fields[i]
		if a.Field(g.Key) != nil {
			continue
		}
		g.Required = false
		fields = append(fields, g)
	}

	return &jsonschema.ObjectSchema{Fields: fields}
}

func variants(s jsonschema.Schema) []jsonschema.Schema {
	if s.Kind() == jsonschema.KindUnion {
		return s.AsUnion().Variants
	}
	return []jsonschema.Schema{s}
}

// mergeVariants flattens both variant sets into one. Compatible variants
// collapse pairwise (e.g. an incoming Number absorbs an Integer variant), so
// the result never holds two variants that would merge into a non-union.
// That collapse is what keeps the operation associative.
func mergeVariants(as, bs []jsonschema.Schema) jsonschema.Schema {
	vs := make([]jsonschema.Schema, len(as))
	copy(vs, as)
	for _, v := range bs {
		vs = insertVariant(vs, v)
	}

	if len(vs) == 1 {
		return vs[0]
	}
	return &jsonschema.UnionSchema{Variants: vs}
}

func insertVariant(vs []jsonschema.Schema, v jsonschema.Schema) []jsonschema.Schema {
	for i, w := range vs {
		if compatible(w, v) {
			vs[i] = mergeCompatible(w, v)
			return vs
		}
	}
	return append(vs, v)
}

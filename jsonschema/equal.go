package jsonschema

// Equal reports recursive structural equality. Object fields and union
// variants compare as sets; their slice order does not matter.
func Equal(a, b Schema) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	if a.Kind() != b.Kind() {
		return false
	}

	switch a.Kind() {
	case KindNull, KindBoolean, KindInteger, KindNumber:
		return true
	case KindString:
		return a.AsString().Format == b.AsString().Format
	case KindArray:
		return Equal(a.AsArray().Items, b.AsArray().Items)
	case KindObject:
		return equalObjects(a.AsObject(), b.AsObject())
	case KindUnion:
		return equalUnions(a.AsUnion(), b.AsUnion())
	}

	panic("should be unreachable")
}

func equalObjects(a, b *ObjectSchema) bool {
	if len(a.Fields) != len(b.Fields) {
		return false
	}
	for i := range a.Fields {
		f := &a.Fields[i]
		g := b.Field(f.Key)
		if g == nil || g.Required != f.Required || !Equal(f.Value, g.Value) {
			return false
		}
	}
	return true
}

func equalUnions(a, b *UnionSchema) bool {
	if len(a.Variants) != len(b.Variants) {
		return false
	}
	// variants within a union are pairwise distinct, so a one-way containment
	// check plus the length check is enough
	for _, v := range a.Variants {
		found := false
		for _, w := range b.Variants {
			if Equal(v, w) {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

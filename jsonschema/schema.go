package jsonschema

type Kind int

const (
	KindNull Kind = 1 + iota
	KindBoolean
	KindInteger
	KindNumber
	KindString
	KindArray
	KindObject
	KindUnion
)

// Format is an advisory semantic hint attached to string schemas. It is
// metadata, not validation; an untagged string is always a safe answer.
type Format string

const (
	FormatNone     Format = ""
	FormatUUID     Format = "uuid"
	FormatDateTime Format = "date-time"
	FormatURI      Format = "uri"
	FormatEmail    Format = "email"
)

// Schema is one node of an inferred type shape. Nodes are treated as
// immutable once built; merge allocates new nodes instead of mutating.
//
// A nil Schema stands for "nothing observed yet" (e.g. the item schema of an
// empty array) and acts as the identity element of merging.
type Schema interface {
	Kind() Kind
	AsString() *StringSchema
	AsArray() *ArraySchema
	AsObject() *ObjectSchema
	AsUnion() *UnionSchema
}

type scalarSchema struct {
	kind Kind
}

// The scalar kinds carry no attributes, so one shared value per kind is
// enough for the whole process.
var (
	Null    Schema = &scalarSchema{kind: KindNull}
	Boolean Schema = &scalarSchema{kind: KindBoolean}
	Integer Schema = &scalarSchema{kind: KindInteger}
	Number  Schema = &scalarSchema{kind: KindNumber}
)

func (s *scalarSchema) Kind() Kind {
	return s.kind
}

func (s *scalarSchema) AsString() *StringSchema {
	panic("scalar is not a string")
}

func (s *scalarSchema) AsArray() *ArraySchema {
	panic("scalar is not an array")
}

func (s *scalarSchema) AsObject() *ObjectSchema {
	panic("scalar is not an object")
}

func (s *scalarSchema) AsUnion() *UnionSchema {
	panic("scalar is not a union")
}

type StringSchema struct {
	Format Format
}

func NewString(f Format) *StringSchema {
	return &StringSchema{Format: f}
}

func (s *StringSchema) Kind() Kind {
	return KindString
}

func (s *StringSchema) AsString() *StringSchema {
	return s
}

func (s *StringSchema) AsArray() *ArraySchema {
	panic("string is not an array")
}

func (s *StringSchema) AsObject() *ObjectSchema {
	panic("string is not an object")
}

func (s *StringSchema) AsUnion() *UnionSchema {
	panic("string is not a union")
}

// ArraySchema describes the union of all element shapes seen. Items is nil
// until a non-empty sample arrives.
type ArraySchema struct {
	Items Schema
}

func (a *ArraySchema) Kind() Kind {
	return KindArray
}

func (a *ArraySchema) AsString() *StringSchema {
	panic("array is not a string")
}

func (a *ArraySchema) AsArray() *ArraySchema {
	return a
}

func (a *ArraySchema) AsObject() *ObjectSchema {
	panic("array is not an object")
}

func (a *ArraySchema) AsUnion() *UnionSchema {
	panic("array is not a union")
}

// ObjectSchema keeps fields in first-seen order. Required starts true for
// every field of a single sample and only merging can clear it.
type ObjectSchema struct {
	Fields []ObjectField
}

type ObjectField struct {
	Key      string
	Value    Schema
	Required bool
}

func (o *ObjectSchema) Kind() Kind {
	return KindObject
}

func (o *ObjectSchema) AsString() *StringSchema {
	panic("object is not a string")
}

func (o *ObjectSchema) AsArray() *ArraySchema {
	panic("object is not an array")
}

func (o *ObjectSchema) AsObject() *ObjectSchema {
	return o
}

func (o *ObjectSchema) AsUnion() *UnionSchema {
	panic("object is not a union")
}

// Field returns the field for key, or nil.
func (o *ObjectSchema) Field(key string) *ObjectField {
	for i := range o.Fields {
		if o.Fields[i].Key == key {
			return &o.Fields[i]
		}
	}
	return nil
}

// UnionSchema holds at least two variants, none of which is itself a union
// and no two of which are structurally equal.
type UnionSchema struct {
	Variants []Schema
}

func (u *UnionSchema) Kind() Kind {
	return KindUnion
}

func (u *UnionSchema) AsString() *StringSchema {
	panic("union is not a string")
}

func (u *UnionSchema) AsArray() *ArraySchema {
	panic("union is not an array")
}

func (u *UnionSchema) AsObject() *ObjectSchema {
	panic("union is not an object")
}

func (u *UnionSchema) AsUnion() *UnionSchema {
	return u
}

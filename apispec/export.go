package apispec

import (
	"regexp"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/castorhq/castor/jsonschema"
	"github.com/castorhq/castor/proxy"
	"github.com/castorhq/castor/registry"
)

// Export aggregates everything the registry has learned into a single
// OpenAPI document: one path item per templated path, request and response
// schemas attached to the method they were observed under.
func Export(reg *registry.Registry) *openapi3.T {
	paths := openapi3.Paths{}

	for _, key := range reg.Keys() {
		method, path, direction, ok := proxy.ParseSourceKey(key)
		if !ok {
			continue
		}
		s, ok := reg.Current(key)
		if !ok {
			continue
		}

		item := paths[path]
		if item == nil {
			item = &openapi3.PathItem{}
			paths[path] = item
		}

		op := item.GetOperation(method)
		if op == nil {
			op = &openapi3.Operation{}
			op.Parameters = pathParameters(path)
			item.SetOperation(method, op)
		}

		switch direction {
		case proxy.DirectionRequest:
			op.RequestBody = requestBodyRef(s)
		case proxy.DirectionResponse:
			op.Responses = responses(s)
		}
	}

	return &openapi3.T{
		OpenAPI: "3.0.0",
		Info:    &openapi3.Info{Title: "Castor", Version: "0.0.1"},
		Paths:   paths,
	}
}

var pathArgRe = regexp.MustCompile(`\{(arg\d+)\}`)

func pathParameters(path string) openapi3.Parameters {
	var params openapi3.Parameters
	for _, m := range pathArgRe.FindAllStringSubmatch(path, -1) {
		params = append(params, &openapi3.ParameterRef{Value: &openapi3.Parameter{
			Name:     m[1],
			In:       "path",
			Required: true,
		}})
	}
	return params
}

func requestBodyRef(s jsonschema.Schema) *openapi3.RequestBodyRef {
	mt := openapi3.NewMediaType()
	mt.Schema = Schema(s).NewRef()

	rb := openapi3.NewRequestBody()
	rb.Content = openapi3.Content{"application/json": mt}

	return &openapi3.RequestBodyRef{Value: rb}
}

func responses(s jsonschema.Schema) openapi3.Responses {
	mt := openapi3.NewMediaType()
	mt.Schema = Schema(s).NewRef()

	// status codes are not part of the source key, so everything lands on
	// the default response
	rs := openapi3.NewResponse().WithDescription("observed response")
	rs.Content = openapi3.Content{"application/json": mt}

	return openapi3.Responses{"default": &openapi3.ResponseRef{Value: rs}}
}

// Schema converts an inferred node into its openapi3 form.
func Schema(s jsonschema.Schema) *openapi3.Schema {
	if s == nil {
		return &openapi3.Schema{}
	}

	switch s.Kind() {
	case jsonschema.KindNull:
		return &openapi3.Schema{Nullable: true}
	case jsonschema.KindBoolean:
		return &openapi3.Schema{Type: openapi3.TypeBoolean}
	case jsonschema.KindInteger:
		return &openapi3.Schema{Type: openapi3.TypeInteger}
	case jsonschema.KindNumber:
		return &openapi3.Schema{Type: openapi3.TypeNumber}
	case jsonschema.KindString:
		return &openapi3.Schema{
			Type:   openapi3.TypeString,
			Format: string(s.AsString().Format),
		}
	case jsonschema.KindArray:
		res := &openapi3.Schema{Type: openapi3.TypeArray}
		if items := s.AsArray().Items; items != nil {
			res.Items = Schema(items).NewRef()
		}
		return res
	case jsonschema.KindObject:
		return objectSchema(s.AsObject())
	case jsonschema.KindUnion:
		return unionSchema(s.AsUnion())
	}

	panic("should be unreachable")
}

func objectSchema(o *jsonschema.ObjectSchema) *openapi3.Schema {
	ps := make(openapi3.Schemas, len(o.Fields))
	var rs []string
	for i := range o.Fields {
		f := &o.Fields[i]
		ps[f.Key] = Schema(f.Value).NewRef()
		if f.Required {
			rs = append(rs, f.Key)
		}
	}
	return &openapi3.Schema{
		Type:       openapi3.TypeObject,
		Properties: ps,
		Required:   rs,
	}
}

func unionSchema(u *jsonschema.UnionSchema) *openapi3.Schema {
	// null-or-X collapses to a nullable X
	if len(u.Variants) == 2 {
		for i, v := range u.Variants {
			if v.Kind() == jsonschema.KindNull {
				res := Schema(u.Variants[1-i])
				res.Nullable = true
				return res
			}
		}
	}

	var refs openapi3.SchemaRefs
	for _, v := range u.Variants {
		refs = append(refs, Schema(v).NewRef())
	}
	return &openapi3.Schema{OneOf: refs}
}

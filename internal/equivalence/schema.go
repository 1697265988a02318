package equivalence

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/Kilat-Pet-Delivery/booking-e2e/internal/domain/booking"
)

// Schema validates the structure of a raw payload in one representation.
type Schema interface {
	Format() booking.Format
	Validate(payload []byte) error
}

// AssertSchemaValid validates payload against schema. A schema written for
// the other representation is itself a mismatch.
func AssertSchemaValid(payload []byte, schema Schema, format booking.Format) error {
	if schema.Format() != format {
		return booking.NewSchemaMismatchError("", fmt.Sprintf("%s schema cannot validate a %s payload", schema.Format(), format))
	}
	return schema.Validate(payload)
}

// IsSchemaValid is AssertSchemaValid reduced to pass or fail.
func IsSchemaValid(payload []byte, schema Schema, format booking.Format) bool {
	return AssertSchemaValid(payload, schema, format) == nil
}

// JSONSchema is a compiled draft-07 JSON Schema.
type JSONSchema struct {
	name   string
	schema *jsonschema.Schema
}

// CompileJSONSchema compiles a draft-07 schema document.
func CompileJSONSchema(name, source string) (*JSONSchema, error) {
	compiler := jsonschema.NewCompiler()
	compiler.Draft = jsonschema.Draft7
	url := "mem://schemas/" + name + ".json"
	if err := compiler.AddResource(url, strings.NewReader(source)); err != nil {
		return nil, fmt.Errorf("loading schema %s: %w", name, err)
	}
	s, err := compiler.Compile(url)
	if err != nil {
		return nil, fmt.Errorf("compiling schema %s: %w", name, err)
	}
	return &JSONSchema{name: name, schema: s}, nil
}

// MustCompileJSONSchema is CompileJSONSchema for schemas known at build time.
func MustCompileJSONSchema(name, source string) *JSONSchema {
	s, err := CompileJSONSchema(name, source)
	if err != nil {
		panic(err)
	}
	return s
}

// Format reports the structured representation.
func (s *JSONSchema) Format() booking.Format { return booking.Structured }

// Validate checks payload against the schema.
func (s *JSONSchema) Validate(payload []byte) error {
	var doc any
	if err := decodeJSON(payload, &doc); err != nil {
		return booking.NewParseError(booking.Structured, err)
	}
	if err := s.schema.Validate(doc); err != nil {
		var verr *jsonschema.ValidationError
		if errors.As(err, &verr) {
			return booking.NewSchemaMismatchError(verr.InstanceLocation, verr.Error())
		}
		return booking.NewSchemaMismatchError("", err.Error())
	}
	return nil
}

// LeafType is the simple type of a markup leaf element.
type LeafType int

const (
	LeafString LeafType = iota
	LeafInteger
	LeafBoolean
	LeafDate
)

// Element describes one element of a markup schema. An element with children
// is a strict sequence: every child appears once, in order, and nothing else.
type Element struct {
	Name     string
	Type     LeafType
	Optional bool
	Children []Element
}

// MarkupSchema validates markup against an element tree.
type MarkupSchema struct {
	Root Element
}

// Format reports the markup representation.
func (s *MarkupSchema) Format() booking.Format { return booking.Markup }

// Validate checks payload against the element tree.
func (s *MarkupSchema) Validate(payload []byte) error {
	doc, err := readMarkupDocument(payload)
	if err != nil {
		return booking.NewParseError(booking.Markup, err)
	}
	name, content := rootOf(doc)
	return validateElement(name, content, s.Root, "")
}

func validateElement(name string, content any, want Element, prefix string) error {
	path := prefix + want.Name
	if name != want.Name {
		return booking.NewSchemaMismatchError(path, fmt.Sprintf("expected element <%s>, got <%s>", want.Name, name))
	}
	text, children := elementContent(content)
	if len(want.Children) == 0 {
		if len(children) > 0 {
			return booking.NewSchemaMismatchError(path, "simple element has child elements")
		}
		return validateLeaf(strings.TrimSpace(text), want.Type, path)
	}
	if strings.TrimSpace(text) != "" {
		return booking.NewSchemaMismatchError(path, "complex element has character data")
	}

	i := 0
	for _, child := range want.Children {
		if i < len(children) && children[i].name == child.Name {
			if err := validateElement(children[i].name, children[i].content, child, path+"."); err != nil {
				return err
			}
			i++
			continue
		}
		if !child.Optional {
			return booking.NewSchemaMismatchError(path+"."+child.Name, "required element is absent or out of order")
		}
	}
	if i < len(children) {
		return booking.NewSchemaMismatchError(path+"."+children[i].name, "unexpected element")
	}
	return nil
}

func validateLeaf(value string, t LeafType, path string) error {
	switch t {
	case LeafInteger:
		if _, err := strconv.ParseInt(value, 10, 64); err != nil {
			return booking.NewSchemaMismatchError(path, fmt.Sprintf("not an integer: %q", value))
		}
	case LeafBoolean:
		if _, ok := parseBoolText(value); !ok {
			return booking.NewSchemaMismatchError(path, fmt.Sprintf("not a boolean: %q", value))
		}
	case LeafDate:
		if _, err := time.Parse(booking.DateLayout, value); err != nil {
			return booking.NewSchemaMismatchError(path, fmt.Sprintf("not a date: %q", value))
		}
	}
	return nil
}

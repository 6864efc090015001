// Package dispatch implements the isolated compile process: it drives
// the schema-compile pipeline through the API variant selected by the
// internal API generation and reports the result via its exit code.
package dispatch

import (
	"fmt"
	"io"
	"strings"
)

// A Diagnostic is one message reported by the compile or processor
// step. Error diagnostics fail the build; warnings do not.
type Diagnostic struct {
	Error   bool
	Message string
}

// A SchemaRef references the schema to compile. Exactly one field is
// set, chosen by the API generation: generation 1 references the
// schema by file URI, generation 2 by classpath resource path.
type SchemaRef struct {
	URI          string
	ResourcePath string
}

// URIRef is the generation-1 schema reference constructor.
func URIRef(uri string) SchemaRef { return SchemaRef{URI: uri} }

// ResourceRef is the generation-2 schema reference constructor.
func ResourceRef(path string) SchemaRef { return SchemaRef{ResourcePath: path} }

// A Factory is the result of compiling a schema. Its diagnostics are
// inspected before any processor is created from it.
type Factory interface {
	Diagnostics() []Diagnostic
	IsError() bool
	OnPath(path string) (Processor, error)
}

// A Processor is a compiled processor bound to a data path, ready to
// be serialized.
type Processor interface {
	Diagnostics() []Diagnostic
	IsError() bool
	Save(w io.Writer) error
}

// An Engine performs the schema compilation behind one abstract
// operation. The pipeline is written once against this interface; the
// generations differ only in how the SchemaRef is constructed.
type Engine interface {
	Compile(ref SchemaRef, root, namespace string) (Factory, error)
	Config() *Config
}

// engineFor returns the engine variant for an internal API generation.
// Only a small closed set of generations has ever existed.
func engineFor(generation int, resolver *Resolver) (Engine, error) {
	switch generation {
	case 1, 2:
		return &xmlEngine{resolver: resolver, config: NewConfig()}, nil
	}
	return nil, fmt.Errorf("unknown api generation %d", generation)
}

// schemaRefFor constructs the generation-selected schema reference.
// Generation 1 predates the resource-based compile entry point and
// goes through a file URI to the already-resolved file; generation 2
// compiles from the resource path directly.
func schemaRefFor(generation int, resourcePath, resolvedFile string) (SchemaRef, error) {
	switch generation {
	case 1:
		return URIRef(fileURI(resolvedFile)), nil
	case 2:
		return ResourceRef(resourcePath), nil
	}
	return SchemaRef{}, fmt.Errorf("unknown api generation %d", generation)
}

func fileURI(path string) string {
	return "file://" + strings.ReplaceAll(path, "\\", "/")
}

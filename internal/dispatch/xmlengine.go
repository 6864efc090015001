package dispatch

import (
	"encoding/gob"
	"encoding/xml"
	"fmt"
	"io"
	"os"
	"strings"
)

// xmlEngine is the compile backend behind the Engine boundary. It
// parses the schema document, diagnoses structural problems, binds the
// requested root element and serializes the resulting processor.
type xmlEngine struct {
	resolver *Resolver
	config   *Config
}

func (e *xmlEngine) Config() *Config { return e.config }

// Compile compiles the referenced schema. Both schema reference kinds
// funnel into the same compilation; only the way the schema file is
// located differs.
func (e *xmlEngine) Compile(ref SchemaRef, root, namespace string) (Factory, error) {
	var file string
	switch {
	case ref.URI != "":
		file = strings.TrimPrefix(ref.URI, "file://")
	case ref.ResourcePath != "":
		resolved, err := e.resolver.Resolve(ref.ResourcePath)
		if err != nil {
			return nil, err
		}
		file = resolved
	default:
		return nil, fmt.Errorf("empty schema reference")
	}

	f, err := os.Open(file)
	if err != nil {
		return nil, fmt.Errorf("failed to open schema %s: %w", file, err)
	}
	defer f.Close()

	fac := &xmlFactory{schemaFile: file, root: root, namespace: namespace}
	fac.scan(f)
	return fac, nil
}

// xmlFactory holds the scanned schema model plus compile diagnostics.
type xmlFactory struct {
	schemaFile string
	root       string
	namespace  string

	targetNamespace string
	elements        []string
	diags           []Diagnostic
}

// scan walks the schema document collecting top-level element
// declarations and the target namespace. Parse failures and a schema
// with no element declarations are error diagnostics.
func (f *xmlFactory) scan(r io.Reader) {
	dec := xml.NewDecoder(r)
	depth := 0
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			f.diags = append(f.diags, Diagnostic{Error: true, Message: fmt.Sprintf("schema %s is not well-formed: %v", f.schemaFile, err)})
			return
		}
		switch t := tok.(type) {
		case xml.StartElement:
			depth++
			if depth == 1 {
				for _, attr := range t.Attr {
					if attr.Name.Local == "targetNamespace" {
						f.targetNamespace = attr.Value
					}
				}
			}
			if depth == 2 && t.Name.Local == "element" {
				for _, attr := range t.Attr {
					if attr.Name.Local == "name" {
						f.elements = append(f.elements, attr.Value)
					}
				}
			}
		case xml.EndElement:
			depth--
		}
	}

	if len(f.elements) == 0 {
		f.diags = append(f.diags, Diagnostic{Error: true, Message: fmt.Sprintf("schema %s declares no elements", f.schemaFile)})
		return
	}
	if f.targetNamespace == "" {
		f.diags = append(f.diags, Diagnostic{Message: fmt.Sprintf("schema %s has no targetNamespace", f.schemaFile)})
	}
	if f.root != "" && !contains(f.elements, f.root) {
		f.diags = append(f.diags, Diagnostic{Error: true, Message: fmt.Sprintf("root element %s not found in schema %s", f.root, f.schemaFile)})
	}
}

func (f *xmlFactory) Diagnostics() []Diagnostic { return f.diags }

func (f *xmlFactory) IsError() bool {
	for _, d := range f.diags {
		if d.Error {
			return true
		}
	}
	return false
}

// OnPath binds a processor to a data path within the compiled schema.
func (f *xmlFactory) OnPath(path string) (Processor, error) {
	root := f.root
	if root == "" {
		root = f.elements[0]
	}
	return &xmlProcessor{
		SchemaFile: f.schemaFile,
		Namespace:  f.targetNamespace,
		Root:       root,
		Path:       path,
		Elements:   f.elements,
	}, nil
}

// xmlProcessor is the serializable compiled processor.
type xmlProcessor struct {
	SchemaFile string
	Namespace  string
	Root       string
	Path       string
	Elements   []string

	diags []Diagnostic
}

func (p *xmlProcessor) Diagnostics() []Diagnostic { return p.diags }

func (p *xmlProcessor) IsError() bool {
	for _, d := range p.diags {
		if d.Error {
			return true
		}
	}
	return false
}

// Save serializes the processor to w.
func (p *xmlProcessor) Save(w io.Writer) error {
	if err := gob.NewEncoder(w).Encode(p); err != nil {
		return fmt.Errorf("failed to save processor: %w", err)
	}
	return nil
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

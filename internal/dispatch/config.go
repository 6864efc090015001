package dispatch

import (
	"encoding/xml"
	"fmt"
	"io"
	"os"
	"strings"
)

// knownTunables is the closed set of compiler tunables the engine
// understands. Applying any other name is an error.
var knownTunables = map[string]bool{
	"maxOccursBounds":                  true,
	"maxBinaryDecimalVirtualPoint":     true,
	"parseUnparsePolicy":               true,
	"suppressSchemaDefinitionWarnings": true,
	"allowExternalPathExpressions":     true,
}

// Config is the mutable compiler configuration the tunables section of
// a configuration file is applied to.
type Config struct {
	tunables map[string]string
}

// NewConfig returns an empty compiler configuration.
func NewConfig() *Config {
	return &Config{tunables: make(map[string]string)}
}

// Set applies one named tunable. Unknown names fail.
func (c *Config) Set(name, value string) error {
	if !knownTunables[name] {
		return fmt.Errorf("unknown tunable %s", name)
	}
	c.tunables[name] = value
	return nil
}

// Get returns the value of a tunable and whether it was set.
func (c *Config) Get(name string) (string, bool) {
	v, ok := c.tunables[name]
	return v, ok
}

// A Tunable is one named setting from a configuration file's tunables
// section, in document order.
type Tunable struct {
	Name  string
	Value string
}

// LoadTunables reads a compiler configuration file and extracts its
// tunables section. A file without a tunables section yields none.
func LoadTunables(file string) ([]Tunable, error) {
	f, err := os.Open(file)
	if err != nil {
		return nil, fmt.Errorf("failed to open config file: %w", err)
	}
	defer f.Close()
	return parseTunables(f)
}

// parseTunables walks the XML token stream and collects the child
// elements of the first element locally named "tunables". Each child's
// local name is the tunable name, its character data the value.
func parseTunables(r io.Reader) ([]Tunable, error) {
	dec := xml.NewDecoder(r)
	var tunables []Tunable
	inSection := false
	depth := 0
	var current *Tunable

	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
		switch t := tok.(type) {
		case xml.StartElement:
			if !inSection {
				if t.Name.Local == "tunables" {
					inSection = true
					depth = 0
				}
				continue
			}
			depth++
			if depth == 1 {
				tunables = append(tunables, Tunable{Name: t.Name.Local})
				current = &tunables[len(tunables)-1]
			}
		case xml.EndElement:
			if !inSection {
				continue
			}
			if depth == 0 {
				// Closing the tunables section itself.
				return tunables, nil
			}
			if depth == 1 {
				current = nil
			}
			depth--
		case xml.CharData:
			if current != nil {
				current.Value += strings.TrimSpace(string(t))
			}
		}
	}
	return tunables, nil
}

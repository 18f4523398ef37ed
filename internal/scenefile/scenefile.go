// Package scenefile reads the YAML scene files of the textmesh command.
//
// A scene names fonts by reference and lists text objects using them:
//
//	fonts:
//	  - name: regular
//	    ref: go:regular
//	  - name: inter
//	    ref: fonts/Inter.ttf#mesh
//	texts:
//	  - text: Hello
//	    font: regular
//	    depth: 0.2
//	    color: "#ff8800"
//	    position: [0, 1, 0]
//
// References starting with "go:" name the Go fonts bundled with
// golang.org/x/image; anything else is passed to the font loader.
// Files are validated against an embedded JSON schema before decoding.
package scenefile

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/gogpu/gputypes"
	"github.com/santhosh-tekuri/jsonschema/v5"
	"gopkg.in/yaml.v3"

	"github.com/gogpu/textmesh/meshgen"
)

//go:embed scene.schema.json
var schemaJSON string

const schemaURL = "scene.schema.json"

var (
	// ErrUnknownFont is returned when a text names a font the scene does not
	// declare.
	ErrUnknownFont = errors.New("scenefile: unknown font")

	// ErrDuplicateFont is returned when two fonts share a name.
	ErrDuplicateFont = errors.New("scenefile: duplicate font name")
)

// Scene is a decoded scene file.
type Scene struct {
	Fonts []Font `yaml:"fonts"`
	Texts []Text `yaml:"texts"`
}

// Font declares a font under a name.
type Font struct {
	Name string `yaml:"name"`
	Ref  string `yaml:"ref"`
}

// Builtin returns the bundled Go font name of a "go:" reference.
func (f Font) Builtin() (string, bool) {
	return strings.CutPrefix(f.Ref, "go:")
}

// Text declares one text object. Zero values take the defaults of
// textmesh.DefaultStyle.
type Text struct {
	Text        string     `yaml:"text"`
	Font        string     `yaml:"font"`
	Size        float32    `yaml:"size"`
	Depth       float32    `yaml:"depth"`
	Quality     string     `yaml:"quality"`
	Color       string     `yaml:"color"`
	LineSpacing float32    `yaml:"line_spacing"`
	Position    [3]float32 `yaml:"position"`
	Scale       float32    `yaml:"scale"`
	Hidden      bool       `yaml:"hidden"`
}

// ParsedQuality returns the flattening quality.
func (t Text) ParsedQuality() (meshgen.Quality, error) {
	return meshgen.ParseQuality(t.Quality)
}

// ParsedColor returns the text color; empty means opaque white.
func (t Text) ParsedColor() (gputypes.Color, error) {
	if t.Color == "" {
		return gputypes.Color{R: 1, G: 1, B: 1, A: 1}, nil
	}
	return ParseColor(t.Color)
}

var (
	schemaOnce sync.Once
	schema     *jsonschema.Schema
	schemaErr  error
)

func compiledSchema() (*jsonschema.Schema, error) {
	schemaOnce.Do(func() {
		c := jsonschema.NewCompiler()
		if err := c.AddResource(schemaURL, strings.NewReader(schemaJSON)); err != nil {
			schemaErr = fmt.Errorf("scenefile: add schema: %w", err)
			return
		}
		schema, schemaErr = c.Compile(schemaURL)
	})
	return schema, schemaErr
}

// Load reads and parses the scene file at path.
func Load(path string) (*Scene, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("scenefile: %w", err)
	}
	sc, err := Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return sc, nil
}

// Parse validates and decodes a YAML scene.
func Parse(raw []byte) (*Scene, error) {
	if err := validate(raw); err != nil {
		return nil, err
	}

	var sc Scene
	dec := yaml.NewDecoder(bytes.NewReader(raw))
	dec.KnownFields(true)
	if err := dec.Decode(&sc); err != nil {
		return nil, fmt.Errorf("scenefile: decode: %w", err)
	}

	names := make(map[string]bool, len(sc.Fonts))
	for _, f := range sc.Fonts {
		if names[f.Name] {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateFont, f.Name)
		}
		names[f.Name] = true
	}
	for i, t := range sc.Texts {
		if !names[t.Font] {
			return nil, fmt.Errorf("%w: texts[%d] uses %q", ErrUnknownFont, i, t.Font)
		}
		if _, err := t.ParsedQuality(); err != nil {
			return nil, fmt.Errorf("scenefile: texts[%d]: %w", i, err)
		}
		if _, err := t.ParsedColor(); err != nil {
			return nil, fmt.Errorf("scenefile: texts[%d]: %w", i, err)
		}
	}
	return &sc, nil
}

// validate checks raw against the embedded schema. YAML is converted to
// plain JSON values first so the validator sees the types it expects.
func validate(raw []byte) error {
	s, err := compiledSchema()
	if err != nil {
		return err
	}

	var doc any
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return fmt.Errorf("scenefile: yaml: %w", err)
	}
	js, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("scenefile: yaml to json: %w", err)
	}
	var v any
	if err := json.Unmarshal(js, &v); err != nil {
		return fmt.Errorf("scenefile: yaml to json: %w", err)
	}
	if err := s.Validate(v); err != nil {
		return fmt.Errorf("scenefile: schema: %w", err)
	}
	return nil
}

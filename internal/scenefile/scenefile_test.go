package scenefile

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/gogpu/gputypes"

	"github.com/gogpu/textmesh/meshgen"
)

const validScene = `
fonts:
  - name: regular
    ref: go:regular
  - name: file
    ref: fonts/Inter.ttf#mesh
texts:
  - text: Hello
    font: regular
    size: 2
    depth: 0.25
    quality: high
    color: "#ff8000"
    position: [1, 2, 3]
  - text: "Line one\nLine two"
    font: file
    quality: 0.01
    hidden: true
`

func TestParse_Valid(t *testing.T) {
	sc, err := Parse([]byte(validScene))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(sc.Fonts) != 2 || len(sc.Texts) != 2 {
		t.Fatalf("got %d fonts, %d texts", len(sc.Fonts), len(sc.Texts))
	}
	if name, ok := sc.Fonts[0].Builtin(); !ok || name != "regular" {
		t.Errorf("Builtin() = %q, %v", name, ok)
	}
	if _, ok := sc.Fonts[1].Builtin(); ok {
		t.Error("file reference reported as builtin")
	}

	hello := sc.Texts[0]
	if hello.Size != 2 || hello.Depth != 0.25 || hello.Position != [3]float32{1, 2, 3} {
		t.Errorf("text = %+v", hello)
	}
	if q, _ := hello.ParsedQuality(); q != meshgen.QualityHigh {
		t.Errorf("quality = %v, want high", q)
	}
	c, _ := hello.ParsedColor()
	if c.R != 1 || c.B != 0 || c.A != 1 {
		t.Errorf("color = %+v", c)
	}

	second := sc.Texts[1]
	if second.Text != "Line one\nLine two" || !second.Hidden {
		t.Errorf("second text = %+v", second)
	}
	if q, _ := second.ParsedQuality(); q != 0.01 {
		t.Errorf("numeric quality = %v", q)
	}
	if c, _ := second.ParsedColor(); c != (gputypes.Color{R: 1, G: 1, B: 1, A: 1}) {
		t.Errorf("default color = %+v, want white", c)
	}
}

func TestParse_SchemaErrors(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"no texts", "fonts: []\ntexts: []\n"},
		{"missing font field", "fonts: []\ntexts:\n  - text: a\n"},
		{"negative depth", "fonts: [{name: a, ref: go:regular}]\ntexts:\n  - {text: a, font: a, depth: -1}\n"},
		{"zero size", "fonts: [{name: a, ref: go:regular}]\ntexts:\n  - {text: a, font: a, size: 0}\n"},
		{"bad quality", "fonts: [{name: a, ref: go:regular}]\ntexts:\n  - {text: a, font: a, quality: ultra}\n"},
		{"bad color", "fonts: [{name: a, ref: go:regular}]\ntexts:\n  - {text: a, font: a, color: red}\n"},
		{"short position", "fonts: [{name: a, ref: go:regular}]\ntexts:\n  - {text: a, font: a, position: [1, 2]}\n"},
		{"unknown key", "fonts: []\ntexts:\n  - {text: a, font: a, bold: true}\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Parse([]byte(tt.yaml)); err == nil {
				t.Error("Parse succeeded, want schema error")
			}
		})
	}
}

func TestParse_References(t *testing.T) {
	_, err := Parse([]byte("fonts: [{name: a, ref: go:regular}]\ntexts:\n  - {text: x, font: b}\n"))
	if !errors.Is(err, ErrUnknownFont) {
		t.Errorf("Parse() = %v, want ErrUnknownFont", err)
	}
	_, err = Parse([]byte("fonts: [{name: a, ref: go:regular}, {name: a, ref: go:mono}]\ntexts:\n  - {text: x, font: a}\n"))
	if !errors.Is(err, ErrDuplicateFont) {
		t.Errorf("Parse() = %v, want ErrDuplicateFont", err)
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scene.yaml")
	if err := os.WriteFile(path, []byte(validScene), 0o600); err != nil {
		t.Fatal(err)
	}
	sc, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(sc.Texts) != 2 {
		t.Errorf("texts = %d, want 2", len(sc.Texts))
	}
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("Load of a missing file should fail")
	}
}

func TestParseColor(t *testing.T) {
	tests := []struct {
		in      string
		want    gputypes.Color
		wantErr bool
	}{
		{"#fff", gputypes.Color{R: 1, G: 1, B: 1, A: 1}, false},
		{"000f", gputypes.Color{R: 0, G: 0, B: 0, A: 1}, false},
		{"#FF0000", gputypes.Color{R: 1, G: 0, B: 0, A: 1}, false},
		{"#00ff0000", gputypes.Color{R: 0, G: 1, B: 0, A: 0}, false},
		{"#ggg", gputypes.Color{}, true},
		{"#12345", gputypes.Color{}, true},
		{"", gputypes.Color{}, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseColor(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseColor(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseColor(%q) = %+v, want %+v", tt.in, got, tt.want)
			}
		})
	}
}

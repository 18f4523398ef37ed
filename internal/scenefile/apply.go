package scenefile

import (
	"context"
	"fmt"
	"path/filepath"

	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goitalic"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/gogpu/textmesh"
	"github.com/gogpu/textmesh/asset"
	"github.com/gogpu/textmesh/font"
	"github.com/gogpu/textmesh/world"
)

var builtinFonts = map[string][]byte{
	"regular": goregular.TTF,
	"bold":    gobold.TTF,
	"italic":  goitalic.TTF,
	"mono":    gomono.TTF,
}

// Apply starts loading the fonts of sc and spawns its texts into app.
// Relative font paths are resolved against baseDir. Fonts resolve on later
// ticks; the returned entities are in declaration order.
func Apply(ctx context.Context, app *textmesh.App, sc *Scene, baseDir string) ([]world.Entity, error) {
	fonts := make(map[string]asset.Handle[*font.Font], len(sc.Fonts))
	for _, f := range sc.Fonts {
		if name, ok := f.Builtin(); ok {
			data, ok := builtinFonts[name]
			if !ok {
				return nil, fmt.Errorf("scenefile: font %q: unknown builtin %q", f.Name, f.Ref)
			}
			fonts[f.Name] = app.Loader.LoadBytes("Go "+name, data)
			continue
		}

		ref := f.Ref
		if r := font.ParseRef(ref); !filepath.IsAbs(r.Path) && baseDir != "" {
			r.Path = filepath.Join(baseDir, r.Path)
			ref = r.String()
		}
		fonts[f.Name] = app.Loader.Load(ctx, ref)
	}

	ents := make([]world.Entity, 0, len(sc.Texts))
	for _, t := range sc.Texts {
		st := textmesh.DefaultStyle(fonts[t.Font])
		if t.Size > 0 {
			st.Size = t.Size
		}
		st.Depth = t.Depth
		if t.LineSpacing > 0 {
			st.LineSpacing = t.LineSpacing
		}
		var err error
		if st.Quality, err = t.ParsedQuality(); err != nil {
			return nil, err
		}
		if st.Color, err = t.ParsedColor(); err != nil {
			return nil, err
		}

		tr := world.FromTranslation(t.Position[0], t.Position[1], t.Position[2])
		if t.Scale > 0 {
			tr.Scale = [3]float32{t.Scale, t.Scale, t.Scale}
		}
		vis := world.VisibilityInherited
		if t.Hidden {
			vis = world.VisibilityHidden
		}

		ents = append(ents, app.Scene.Spawn(textmesh.Bundle{
			Text:       textmesh.TextMesh{Text: t.Text, Style: st},
			Transform:  tr,
			Visibility: vis,
		}))
	}
	return ents, nil
}

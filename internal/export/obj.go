package export

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
)

// WriteOBJ writes entries as one Wavefront OBJ object each. Hidden entries
// are skipped. Vertex indices are global and 1-based as the format requires.
func WriteOBJ(w io.Writer, entries []Entry) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintln(bw, "# textmesh export")

	base := 1
	for _, e := range entries {
		if !e.Visible || e.Data.IsEmpty() {
			continue
		}
		d := e.Data
		fmt.Fprintf(bw, "o text_%d\n", e.Entity)
		if e.Font != "" {
			fmt.Fprintf(bw, "# font %s\n", e.Font)
		}
		fmt.Fprintf(bw, "# text %s\n", strconv.Quote(e.Text))
		for _, p := range d.Positions {
			fmt.Fprintf(bw, "v %s %s %s\n", ff(p[0]), ff(p[1]), ff(p[2]))
		}
		for _, uv := range d.UVs {
			fmt.Fprintf(bw, "vt %s %s\n", ff(uv[0]), ff(uv[1]))
		}
		for _, n := range d.Normals {
			fmt.Fprintf(bw, "vn %s %s %s\n", ff(n[0]), ff(n[1]), ff(n[2]))
		}
		for i := 0; i+2 < len(d.Indices); i += 3 {
			a := base + int(d.Indices[i])
			b := base + int(d.Indices[i+1])
			c := base + int(d.Indices[i+2])
			fmt.Fprintf(bw, "f %d/%d/%d %d/%d/%d %d/%d/%d\n", a, a, a, b, b, b, c, c, c)
		}
		base += len(d.Positions)
	}
	return bw.Flush()
}

// WriteOBJFile writes entries to path, creating parent directories.
func WriteOBJFile(path string, entries []Entry) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := WriteOBJ(f, entries); err != nil {
		_ = f.Close()
		return fmt.Errorf("export: obj: %w", err)
	}
	return f.Close()
}

func ff(v float32) string {
	return strconv.FormatFloat(float64(v), 'g', -1, 32)
}

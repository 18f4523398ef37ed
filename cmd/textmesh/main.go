// Command textmesh loads a YAML scene of 3D text objects, synchronizes their
// meshes and exports the result.
package main

import (
	"context"
	"flag"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"time"

	"github.com/gogpu/textmesh"
	"github.com/gogpu/textmesh/internal/export"
	"github.com/gogpu/textmesh/internal/scenefile"
	"github.com/gogpu/textmesh/meshcache"
)

func main() {
	var (
		scenePath = flag.String("scene", "scene.yaml", "scene file")
		maxTicks  = flag.Int("max-ticks", 600, "ticks to run before giving up on unresolved fonts")
		tick      = flag.Duration("tick", 16*time.Millisecond, "interval between ticks")
		verbose   = flag.Bool("v", false, "log debug output to stderr")
		objPath   = flag.String("obj", "", "write visible meshes as Wavefront OBJ")
		snapPath  = flag.String("snapshot", "", "write a compressed mesh snapshot")
		dbPath    = flag.String("db", "", "record mesh statistics in a SQLite index")
		cacheSize = flag.Int("cache-glyphs", meshcache.DefaultConfig().MaxGlyphs, "glyph mesh cache capacity")
	)
	flag.Parse()

	level := slog.LevelWarn
	if *verbose {
		level = slog.LevelDebug
	}
	textmesh.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	sc, err := scenefile.Load(*scenePath)
	if err != nil {
		log.Fatalf("Failed to load scene: %v", err)
	}

	cfg := meshcache.DefaultConfig()
	cfg.MaxGlyphs = *cacheSize
	app := textmesh.NewApp(textmesh.WithCacheConfig(cfg))

	if _, err := scenefile.Apply(ctx, app, sc, filepath.Dir(*scenePath)); err != nil {
		log.Fatalf("Failed to apply scene: %v", err)
	}

	start := time.Now()
	// Stop early once every font load finished and one of them failed;
	// further ticks cannot resolve the texts waiting on it.
	n, err := app.RunUntil(ctx, *maxTicks, *tick, func() bool {
		return app.Ready() || app.Stalled()
	})
	if err != nil {
		log.Fatalf("Interrupted after %d ticks: %v", n, err)
	}
	if lerr := app.Loader.Err(); lerr != nil {
		log.Printf("Font errors: %v", lerr)
	}
	if !app.Ready() {
		log.Printf("Gave up after %d ticks; some texts have no mesh", n)
	}

	entries := export.Collect(app)
	var verts, tris int
	for _, e := range entries {
		verts += e.Data.VertexCount()
		tris += e.Data.TriangleCount()
	}
	log.Printf("Synchronized %d/%d texts in %d ticks (%s): %d vertices, %d triangles",
		len(entries), app.Scene.Len(), n, time.Since(start).Round(time.Millisecond), verts, tris)

	if *objPath != "" {
		if err := export.WriteOBJFile(*objPath, entries); err != nil {
			log.Fatalf("Failed to write OBJ: %v", err)
		}
		log.Printf("OBJ saved to %s", *objPath)
	}
	if *snapPath != "" {
		if err := export.WriteSnapshot(*snapPath, app.Ticks(), entries); err != nil {
			log.Fatalf("Failed to write snapshot: %v", err)
		}
		log.Printf("Snapshot saved to %s", *snapPath)
	}
	if *dbPath != "" {
		ix, err := export.OpenIndex(*dbPath)
		if err != nil {
			log.Fatalf("Failed to open index: %v", err)
		}
		if err := ix.Record(ctx, app.Ticks(), entries); err != nil {
			_ = ix.Close()
			log.Fatalf("Failed to record index: %v", err)
		}
		if err := ix.Close(); err != nil {
			log.Fatalf("Failed to close index: %v", err)
		}
		log.Printf("Index updated in %s", *dbPath)
	}
}

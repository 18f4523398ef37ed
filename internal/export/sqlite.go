package export

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

// Index is a SQLite table of exported meshes, one row per entity per tick.
type Index struct {
	db *sql.DB
}

// OpenIndex opens or creates the index database at path.
func OpenIndex(path string) (*Index, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	if err := initPragmas(db); err != nil {
		_ = db.Close()
		return nil, err
	}
	if err := initSchema(db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return &Index{db: db}, nil
}

func initPragmas(db *sql.DB) error {
	pragmas := []string{
		"PRAGMA journal_mode=WAL;",
		"PRAGMA synchronous=NORMAL;",
		"PRAGMA foreign_keys=ON;",
		"PRAGMA busy_timeout=5000;",
		"PRAGMA temp_store=MEMORY;",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			return fmt.Errorf("sqlite pragma failed (%s): %w", p, err)
		}
	}
	return nil
}

func initSchema(db *sql.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS meshes (
			tick INTEGER NOT NULL,
			entity INTEGER NOT NULL,
			text TEXT NOT NULL,
			font TEXT NOT NULL,
			visible INTEGER NOT NULL,
			vertices INTEGER NOT NULL,
			triangles INTEGER NOT NULL,
			min_x REAL, min_y REAL, min_z REAL,
			max_x REAL, max_y REAL, max_z REAL,
			PRIMARY KEY (tick, entity)
		);`,
		`CREATE INDEX IF NOT EXISTS idx_meshes_font ON meshes(font, tick);`,
	}
	for _, s := range stmts {
		if _, err := db.Exec(s); err != nil {
			return fmt.Errorf("sqlite schema failed: %w", err)
		}
	}
	return nil
}

// Record stores entries under tick in one transaction, replacing rows
// already recorded for the same tick and entity.
func (ix *Index) Record(ctx context.Context, tick uint64, entries []Entry) error {
	tx, err := ix.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx, `INSERT OR REPLACE INTO meshes
		(tick, entity, text, font, visible, vertices, triangles, min_x, min_y, min_z, max_x, max_y, max_z)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, e := range entries {
		var lo, hi [3]any
		if l, h, ok := e.Data.Bounds(); ok {
			for k := range 3 {
				lo[k], hi[k] = float64(l[k]), float64(h[k])
			}
		}
		visible := 0
		if e.Visible {
			visible = 1
		}
		if _, err := stmt.ExecContext(ctx,
			int64(tick), int64(e.Entity), e.Text, e.Font, visible, //nolint:gosec // ids fit in int64 for sqlite
			e.Data.VertexCount(), e.Data.TriangleCount(),
			lo[0], lo[1], lo[2], hi[0], hi[1], hi[2],
		); err != nil {
			return fmt.Errorf("insert entity %d: %w", e.Entity, err)
		}
	}
	return tx.Commit()
}

// Row is one recorded mesh.
type Row struct {
	Tick      uint64
	Entity    uint64
	Text      string
	Font      string
	Visible   bool
	Vertices  int
	Triangles int
}

// Rows returns the rows recorded at tick in entity order.
func (ix *Index) Rows(ctx context.Context, tick uint64) ([]Row, error) {
	rows, err := ix.db.QueryContext(ctx, `SELECT tick, entity, text, font, visible, vertices, triangles
		FROM meshes WHERE tick = ? ORDER BY entity`, int64(tick)) //nolint:gosec // tick fits in int64
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Row
	for rows.Next() {
		var (
			r       Row
			t, e    int64
			visible int
		)
		if err := rows.Scan(&t, &e, &r.Text, &r.Font, &visible, &r.Vertices, &r.Triangles); err != nil {
			return nil, err
		}
		r.Tick, r.Entity, r.Visible = uint64(t), uint64(e), visible != 0 //nolint:gosec // written from uint64
		out = append(out, r)
	}
	return out, rows.Err()
}

// Close closes the database.
func (ix *Index) Close() error { return ix.db.Close() }

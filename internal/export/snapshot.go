package export

import (
	"bufio"
	"encoding/gob"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/klauspost/compress/zstd"
)

// SnapshotVersion is the current snapshot format version.
const SnapshotVersion = 1

// ErrSnapshotVersion is returned when a snapshot has an unsupported version.
var ErrSnapshotVersion = errors.New("export: unsupported snapshot version")

// SnapshotHeader is the JSON line at the start of a snapshot.
type SnapshotHeader struct {
	Version   int       `json:"version"`
	Tick      uint64    `json:"tick"`
	Entries   int       `json:"entries"`
	Vertices  int       `json:"vertices"`
	Triangles int       `json:"triangles"`
	Created   time.Time `json:"created"`
}

// snapshotBody is the gob payload after the header line.
type snapshotBody struct {
	Entries []Entry
}

// Snapshot is a decoded snapshot.
type Snapshot struct {
	Header  SnapshotHeader
	Entries []Entry
}

// WriteSnapshot writes entries to path as a zstd stream holding a JSON
// header line followed by the gob-encoded entries.
func WriteSnapshot(path string, tick uint64, entries []Entry) (err error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()

	enc, err := zstd.NewWriter(f, zstd.WithEncoderLevel(zstd.SpeedDefault))
	if err != nil {
		return err
	}
	bw := bufio.NewWriterSize(enc, 256*1024)

	h := SnapshotHeader{
		Version: SnapshotVersion,
		Tick:    tick,
		Entries: len(entries),
		Created: time.Now().UTC(),
	}
	for _, e := range entries {
		h.Vertices += e.Data.VertexCount()
		h.Triangles += e.Data.TriangleCount()
	}

	hb, err := json.Marshal(h)
	if err != nil {
		_ = enc.Close()
		return err
	}
	if _, err := bw.Write(append(hb, '\n')); err != nil {
		_ = enc.Close()
		return err
	}
	if err := gob.NewEncoder(bw).Encode(snapshotBody{Entries: entries}); err != nil {
		_ = enc.Close()
		return fmt.Errorf("gob encode: %w", err)
	}
	if err := bw.Flush(); err != nil {
		_ = enc.Close()
		return err
	}
	return enc.Close()
}

// ReadSnapshot reads a snapshot written by WriteSnapshot.
func ReadSnapshot(path string) (*Snapshot, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	dec, err := zstd.NewReader(f)
	if err != nil {
		return nil, err
	}
	defer dec.Close()

	br := bufio.NewReaderSize(dec, 256*1024)
	line, err := br.ReadBytes('\n')
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}

	var s Snapshot
	if err := json.Unmarshal(line, &s.Header); err != nil {
		return nil, fmt.Errorf("decode header: %w", err)
	}
	if s.Header.Version != SnapshotVersion {
		return nil, fmt.Errorf("%w: %d", ErrSnapshotVersion, s.Header.Version)
	}
	var body snapshotBody
	if err := gob.NewDecoder(br).Decode(&body); err != nil {
		return nil, fmt.Errorf("gob decode: %w", err)
	}
	s.Entries = body.Entries
	return &s, nil
}

package search

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"os"

	"github.com/vmihailenco/msgpack/v5"
)

// snapshotMagic and snapshotVersion identify a persisted transposition
// table file (spec.md §6.4): a 7-byte magic, a version byte, the
// catalog's xxhash digest, then a msgpack-encoded record stream.
var snapshotMagic = [7]byte{'3', 'c', 'b', 't', 't', 'a', 'b'}

const snapshotVersion = 1

// snapshotRecord is one transposition-table entry as persisted to disk.
type snapshotRecord struct {
	Fingerprint uint64
	Outcome     int
	Depth       int
	Bound       int
	SearchDepth int
}

// SaveSnapshot writes the engine's transposition table to path, tagged
// with the catalog hash it was computed against.
func (e *Engine) SaveSnapshot(path string) error {
	var buf bytes.Buffer
	buf.Write(snapshotMagic[:])
	buf.WriteByte(snapshotVersion)

	var hashBuf [8]byte
	binary.LittleEndian.PutUint64(hashBuf[:], e.cat.Hash())
	buf.Write(hashBuf[:])

	records := make([]snapshotRecord, 0, e.tt.Len())
	for _, fp := range e.tt.Keys() {
		entry, ok := e.tt.Peek(fp)
		if !ok {
			continue
		}
		records = append(records, snapshotRecord{
			Fingerprint: fp,
			Outcome:     entry.Value.Outcome,
			Depth:       entry.Value.Depth,
			Bound:       int(entry.Bound),
			SearchDepth: entry.SearchDepth,
		})
	}

	enc := msgpack.NewEncoder(&buf)
	if err := enc.Encode(records); err != nil {
		return fmt.Errorf("encoding transposition snapshot: %w", err)
	}

	return os.WriteFile(path, buf.Bytes(), 0o644)
}

// LoadSnapshot reads a transposition table previously written by
// SaveSnapshot into the engine, replacing its current table. A catalog
// hash mismatch discards the snapshot and returns ErrCatalogMismatch; the
// caller is expected to log a warning and continue with a cold table,
// the same logs-and-continues discipline the teacher applies to
// non-fatal load failures.
func (e *Engine) LoadSnapshot(path string) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading transposition snapshot: %w", err)
	}
	if len(raw) < len(snapshotMagic)+1+8 {
		return ErrSnapshotFormat
	}
	if !bytes.Equal(raw[:len(snapshotMagic)], snapshotMagic[:]) {
		return ErrSnapshotFormat
	}
	offset := len(snapshotMagic)
	if raw[offset] != snapshotVersion {
		return ErrSnapshotFormat
	}
	offset++

	fileHash := binary.LittleEndian.Uint64(raw[offset : offset+8])
	offset += 8
	if fileHash != e.cat.Hash() {
		return ErrCatalogMismatch
	}

	var records []snapshotRecord
	dec := msgpack.NewDecoder(bytes.NewReader(raw[offset:]))
	if err := dec.Decode(&records); err != nil && err != io.EOF {
		return fmt.Errorf("decoding transposition snapshot: %w", err)
	}

	e.tt.Purge()
	for _, r := range records {
		e.tt.Add(r.Fingerprint, ttEntry{
			Value:       Value{Outcome: r.Outcome, Depth: r.Depth},
			Bound:       BoundType(r.Bound),
			SearchDepth: r.SearchDepth,
		})
	}
	return nil
}

package search

import "errors"

// ErrCatalogMismatch is returned by LoadSnapshot when a persisted
// transposition table was built against a different card catalog than
// the one currently loaded (spec.md §6.4).
var ErrCatalogMismatch = errors.New("transposition snapshot catalog mismatch")

// ErrSnapshotFormat is returned when a snapshot file's header doesn't
// match the expected magic and version.
var ErrSnapshotFormat = errors.New("unrecognized transposition snapshot format")

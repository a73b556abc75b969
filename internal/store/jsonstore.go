// Package store persists the ledger as a single JSON file. Writes go to a
// temp file first and are swapped in with rename, so a crash mid-write never
// leaves a truncated data file behind.
package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/shopspring/decimal"

	"github.com/larch-c/xfbank/internal/ledger"
)

func init() {
	// Balances and amounts are stored as plain JSON numbers in the data
	// file, matching the documented file format.
	decimal.MarshalJSONWithoutQuotes = true
}

// FileStore reads and writes ledger snapshots at a fixed path. A store-level
// mutex serializes writers so concurrent flushes cannot clobber each other's
// temp file, and the last written sequence number keeps a slow writer from
// replacing the file with an older snapshot.
type FileStore struct {
	path    string
	mu      sync.Mutex
	lastSeq uint64
}

func NewFileStore(path string) (*FileStore, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("cannot create data directory %s: %w", dir, err)
	}
	return &FileStore{path: path}, nil
}

// Path returns the location of the data file.
func (s *FileStore) Path() string {
	return s.path
}

// Save writes the snapshot atomically, replacing the previous file wholesale.
// Snapshots older than the last one written are dropped; unsequenced
// snapshots (Seq zero) are always written.
func (s *FileStore) Save(snap ledger.Snapshot) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if snap.Seq != 0 && snap.Seq <= s.lastSeq {
		return nil
	}

	tmp := s.path + ".tmp"
	f, err := os.Create(tmp)
	if err != nil {
		return fmt.Errorf("failed to create temp data file: %w", err)
	}

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if err := enc.Encode(snap); err != nil {
		f.Close()
		os.Remove(tmp)
		return fmt.Errorf("failed to encode ledger snapshot: %w", err)
	}
	if err := f.Close(); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("failed to close temp data file: %w", err)
	}

	if err := os.Rename(tmp, s.path); err != nil {
		return err
	}
	s.lastSeq = snap.Seq
	return nil
}

// Load reads the snapshot from disk. Callers treat a missing file as an
// empty ledger.
func (s *FileStore) Load() (ledger.Snapshot, error) {
	var snap ledger.Snapshot

	f, err := os.Open(s.path)
	if err != nil {
		return snap, err
	}
	defer f.Close()

	if err := json.NewDecoder(f).Decode(&snap); err != nil {
		return snap, fmt.Errorf("failed to decode data file %s: %w", s.path, err)
	}
	return snap, nil
}

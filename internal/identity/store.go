package identity

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"sync"

	"github.com/gofrs/flock"
)

var (
	// ErrStoreNotFound indicates the identity store file does not exist.
	ErrStoreNotFound = errors.New("identity store not found")
)

// maxLineSize bounds a single store line; bufio.Scanner's default is 64 KiB.
const maxLineSize = 1 << 20

// Store reads and appends identity records in a single per-user file.
type Store struct {
	mu   sync.Mutex
	path string
}

// NewStore creates a Store backed by the file at path.
func NewStore(path string) *Store {
	return &Store{path: path}
}

// Path returns the backing file path.
func (s *Store) Path() string {
	return s.path
}

// Exists reports whether the backing file exists.
func (s *Store) Exists() bool {
	_, err := os.Stat(s.path)
	return err == nil
}

// Load reads all well-formed records in file order. Malformed lines are
// skipped. Returns ErrStoreNotFound if the file does not exist.
func (s *Store) Load() ([]Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.loadLocked()
}

// loadLocked reads the store without acquiring the lock (caller must hold it).
func (s *Store) loadLocked() ([]Record, error) {
	records, _, err := s.scanLocked()
	return records, err
}

// Malformed returns the number of non-blank lines Load would skip.
func (s *Store) Malformed() (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, skipped, err := s.scanLocked()
	return skipped, err
}

func (s *Store) scanLocked() ([]Record, int, error) {
	f, err := os.Open(s.path) //nolint:gosec // G304: path is the user's own store
	if err != nil {
		if os.IsNotExist(err) {
			return nil, 0, fmt.Errorf("%w: %s", ErrStoreNotFound, s.path)
		}
		return nil, 0, fmt.Errorf("opening identity store: %w", err)
	}
	defer f.Close()

	var (
		records []Record
		skipped int
	)
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)
	for scanner.Scan() {
		line := scanner.Text()
		rec, ok := ParseLine(line)
		if !ok {
			if line != "" {
				skipped++
			}
			continue
		}
		records = append(records, rec)
	}
	if err := scanner.Err(); err != nil {
		return nil, 0, fmt.Errorf("reading identity store: %w", err)
	}

	return records, skipped, nil
}

// Append assigns rec the next ordinal (current record count + 1) and writes it
// as one line at the end of the store, creating the file if needed. A
// hand-edited store missing its final newline is terminated first. The write
// is synced before Append returns.
func (s *Store) Append(rec Record) (Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.MkdirAll(filepath.Dir(s.path), 0755); err != nil {
		return Record{}, fmt.Errorf("creating directory: %w", err)
	}

	// Serializes count-then-write across processes sharing the store.
	lock := flock.New(s.path + ".lock")
	if err := lock.Lock(); err != nil {
		return Record{}, fmt.Errorf("locking identity store: %w", err)
	}
	defer func() { _ = lock.Unlock() }()

	records, err := s.loadLocked()
	if err != nil && !errors.Is(err, ErrStoreNotFound) {
		return Record{}, err
	}
	rec.Ordinal = strconv.Itoa(len(records) + 1)

	f, err := os.OpenFile(s.path, os.O_APPEND|os.O_CREATE|os.O_RDWR, 0644) //nolint:gosec // G302: store is not secret
	if err != nil {
		return Record{}, fmt.Errorf("opening identity store: %w", err)
	}

	line := rec.Line() + "\n"
	terminated, err := endsWithNewline(f)
	if err != nil {
		_ = f.Close()
		return Record{}, err
	}
	if !terminated {
		line = "\n" + line
	}

	if _, err := f.WriteString(line); err != nil {
		_ = f.Close()
		return Record{}, fmt.Errorf("writing identity store: %w", err)
	}
	if err := f.Sync(); err != nil {
		_ = f.Close()
		return Record{}, fmt.Errorf("syncing identity store: %w", err)
	}
	if err := f.Close(); err != nil {
		return Record{}, fmt.Errorf("closing identity store: %w", err)
	}

	return rec, nil
}

// endsWithNewline reports whether f is empty or its last byte is '\n'.
func endsWithNewline(f *os.File) (bool, error) {
	info, err := f.Stat()
	if err != nil {
		return false, fmt.Errorf("reading identity store: %w", err)
	}
	if info.Size() == 0 {
		return true, nil
	}
	last := make([]byte, 1)
	if _, err := f.ReadAt(last, info.Size()-1); err != nil {
		return false, fmt.Errorf("reading identity store: %w", err)
	}
	return last[0] == '\n', nil
}

// Reset removes the store file. A missing file is not an error.
func (s *Store) Reset() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("removing identity store: %w", err)
	}
	return nil
}

// Find returns the first record whose ordinal equals ordinal exactly.
func Find(records []Record, ordinal string) (Record, bool) {
	for _, r := range records {
		if r.Ordinal == ordinal {
			return r, true
		}
	}
	return Record{}, false
}

// FindByEmail returns the first record whose email equals email exactly.
func FindByEmail(records []Record, email string) (Record, bool) {
	if email == "" {
		return Record{}, false
	}
	for _, r := range records {
		if r.Email == email {
			return r, true
		}
	}
	return Record{}, false
}

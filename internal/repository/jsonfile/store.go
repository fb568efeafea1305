// Package jsonfile implements the repositories over flat JSON files, one
// array per collection. Reads that fail for any reason (missing file,
// corrupt content) yield an empty collection; writes replace the whole file.
package jsonfile

import (
	"encoding/json"
	"path/filepath"
	"sync"

	"github.com/rs/zerolog/log"
	"github.com/spf13/afero"
)

const (
	patientsFile    = "patients.json"
	assessmentsFile = "assessments.json"
	workoutsFile    = "workouts.json"
)

// Store owns the data directory and serializes file writes so a collection
// file is always a complete JSON array. Last writer wins across requests.
type Store struct {
	fs  afero.Fs
	dir string
	mu  sync.Mutex
}

func NewStore(fs afero.Fs, dir string) (*Store, error) {
	if err := fs.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	s := &Store{fs: fs, dir: dir}
	for _, name := range []string{patientsFile, assessmentsFile, workoutsFile} {
		path := s.path(name)
		if _, err := fs.Stat(path); err != nil {
			if err := s.writeFile(name, []byte("[]")); err != nil {
				return nil, err
			}
		}
	}
	return s, nil
}

func (s *Store) path(name string) string {
	return filepath.Join(s.dir, name)
}

func (s *Store) writeFile(name string, data []byte) error {
	return afero.WriteFile(s.fs, s.path(name), data, 0o644)
}

// readList decodes a collection file into out. Any failure is treated as an
// empty collection and logged, never surfaced.
func (s *Store) readList(name string, out interface{}) {
	data, err := afero.ReadFile(s.fs, s.path(name))
	if err != nil {
		log.Debug().Err(err).Str("file", name).Msg("collection unreadable, treating as empty")
		return
	}
	if len(data) == 0 {
		return
	}
	if err := json.Unmarshal(data, out); err != nil {
		log.Warn().Err(err).Str("file", name).Msg("collection corrupt, treating as empty")
	}
}

// writeList replaces a collection file with the serialized list.
func (s *Store) writeList(name string, in interface{}) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := json.MarshalIndent(in, "", "  ")
	if err != nil {
		return err
	}
	return s.writeFile(name, data)
}

func (s *Store) clear(name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.writeFile(name, []byte("[]"))
}

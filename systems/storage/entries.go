// Package storage contains persisted config entries storage.
package storage

import (
	"io/ioutil"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"github.com/go-home-io/viomise/plugins/common"
	"github.com/go-home-io/viomise/providers"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v2"
)

// File layout.
type entriesFile struct {
	Entries []*providers.Entry `yaml:"entries"`
}

// YAML file backed entries store.
type fsEntryStore struct {
	sync.RWMutex

	location  string
	logger    common.ILoggerProvider
	validator providers.IValidatorProvider
	entries   map[string]*providers.Entry
}

// ConstructEntryStore has data required for a new entries store.
type ConstructEntryStore struct {
	Location  string
	Logger    common.ILoggerProvider
	Validator providers.IValidatorProvider
}

// NewEntryStore loads entries from the file system.
// Missing file is treated as an empty store.
func NewEntryStore(ctor *ConstructEntryStore) (providers.IEntryStore, error) {
	s := &fsEntryStore{
		location:  ctor.Location,
		logger:    ctor.Logger,
		validator: ctor.Validator,
		entries:   make(map[string]*providers.Entry),
	}

	data, err := ioutil.ReadFile(ctor.Location)
	if err != nil {
		if os.IsNotExist(err) {
			s.logger.Info("Entries file doesn't exist, starting empty", common.LogFileToken, ctor.Location)
			return s, nil
		}

		return nil, errors.Wrap(err, "read entries")
	}

	f := &entriesFile{}
	if err := yaml.Unmarshal(data, f); err != nil {
		return nil, errors.Wrap(err, "parse entries")
	}

	for _, v := range f.Entries {
		if v == nil || !s.validator.Validate(v) {
			s.logger.Warn("Skipping invalid entry", common.LogFileToken, ctor.Location)
			continue
		}

		if _, ok := s.entries[v.UniqueID]; ok {
			s.logger.Warn("Skipping duplicated entry", common.LogFileToken, ctor.Location,
				common.LogEntityToken, v.UniqueID)
			continue
		}

		s.entries[v.UniqueID] = v
	}

	s.logger.Debug("Loaded entries", common.LogFileToken, ctor.Location)
	return s, nil
}

// All returns all entries sorted by unique ID.
func (s *fsEntryStore) All() []*providers.Entry {
	s.RLock()
	defer s.RUnlock()
	return s.sorted()
}

// Get returns entry by its unique ID.
func (s *fsEntryStore) Get(uniqueID string) (*providers.Entry, bool) {
	s.RLock()
	defer s.RUnlock()
	e, ok := s.entries[uniqueID]
	return e, ok
}

// HasHost reports whether any entry points to the host.
func (s *fsEntryStore) HasHost(host string) bool {
	s.RLock()
	defer s.RUnlock()
	for _, v := range s.entries {
		if v.Host == host {
			return true
		}
	}

	return false
}

// Add validates, stores and persists a new entry.
func (s *fsEntryStore) Add(entry *providers.Entry) error {
	if entry == nil || !s.validator.Validate(entry) {
		return &ErrInvalidEntry{}
	}

	s.Lock()
	defer s.Unlock()

	if _, ok := s.entries[entry.UniqueID]; ok {
		return &ErrAlreadyExists{UniqueID: entry.UniqueID}
	}

	s.entries[entry.UniqueID] = entry
	if err := s.persist(); err != nil {
		delete(s.entries, entry.UniqueID)
		return err
	}

	return nil
}

// Remove deletes and persists entry removal.
func (s *fsEntryStore) Remove(uniqueID string) error {
	s.Lock()
	defer s.Unlock()

	e, ok := s.entries[uniqueID]
	if !ok {
		return nil
	}

	delete(s.entries, uniqueID)
	if err := s.persist(); err != nil {
		s.entries[uniqueID] = e
		return err
	}

	return nil
}

func (s *fsEntryStore) sorted() []*providers.Entry {
	out := make([]*providers.Entry, 0, len(s.entries))
	for _, v := range s.entries {
		out = append(out, v)
	}

	sort.Slice(out, func(i, j int) bool {
		return out[i].UniqueID < out[j].UniqueID
	})
	return out
}

// Writes entries into a temp file next to the target and renames it.
func (s *fsEntryStore) persist() error {
	data, err := yaml.Marshal(&entriesFile{Entries: s.sorted()})
	if err != nil {
		return errors.Wrap(err, "marshal entries")
	}

	dir := filepath.Dir(s.location)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return errors.Wrap(err, "create entries dir")
	}

	tmp, err := ioutil.TempFile(dir, ".entries-*.yaml")
	if err != nil {
		return errors.Wrap(err, "create temp entries")
	}

	defer os.Remove(tmp.Name()) // nolint: errcheck

	if _, err := tmp.Write(data); err != nil {
		tmp.Close() // nolint: errcheck,gosec
		return errors.Wrap(err, "write entries")
	}

	if err := tmp.Close(); err != nil {
		return errors.Wrap(err, "close entries")
	}

	if err := os.Chmod(tmp.Name(), 0600); err != nil {
		return errors.Wrap(err, "chmod entries")
	}

	if err := os.Rename(tmp.Name(), s.location); err != nil {
		return errors.Wrap(err, "rename entries")
	}

	s.logger.Debug("Entries saved", common.LogFileToken, s.location)
	return nil
}

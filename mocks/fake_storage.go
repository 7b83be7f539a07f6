//go:build !release
// +build !release

package mocks

import (
	"errors"
	"sync"

	"github.com/go-home-io/viomise/providers"
)

type fakeEntryStore struct {
	sync.Mutex
	entries map[string]*providers.Entry
	failAdd bool
}

func (s *fakeEntryStore) All() []*providers.Entry {
	s.Lock()
	defer s.Unlock()
	out := make([]*providers.Entry, 0, len(s.entries))
	for _, v := range s.entries {
		out = append(out, v)
	}
	return out
}

func (s *fakeEntryStore) Get(uniqueID string) (*providers.Entry, bool) {
	s.Lock()
	defer s.Unlock()
	e, ok := s.entries[uniqueID]
	return e, ok
}

func (s *fakeEntryStore) HasHost(host string) bool {
	s.Lock()
	defer s.Unlock()
	for _, v := range s.entries {
		if v.Host == host {
			return true
		}
	}
	return false
}

func (s *fakeEntryStore) Add(e *providers.Entry) error {
	s.Lock()
	defer s.Unlock()
	if s.failAdd {
		return errors.New("storage failure")
	}
	s.entries[e.UniqueID] = e
	return nil
}

func (s *fakeEntryStore) Remove(uniqueID string) error {
	s.Lock()
	defer s.Unlock()
	delete(s.entries, uniqueID)
	return nil
}

// FakeNewEntryStore creates a new in-memory entries store.
func FakeNewEntryStore(failAdd bool, entries ...*providers.Entry) *fakeEntryStore {
	s := &fakeEntryStore{
		entries: make(map[string]*providers.Entry),
		failAdd: failAdd,
	}
	for _, v := range entries {
		s.entries[v.UniqueID] = v
	}
	return s
}

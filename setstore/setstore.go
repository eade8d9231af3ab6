// Package setstore provides membership checks against globally-managed
// string sets (extreme word list, global domain allow-list, global invite
// allow-list), loaded at startup and consulted alongside per-guild config.
package setstore

import (
	"context"
	"encoding/json"
	"io"
	"os"
)

type SetStore interface {
	InSet(ctx context.Context, name, val string) (bool, error)
}

type MemSetStore struct {
	Sets map[string]map[string]bool
}

func NewMemSetStore() MemSetStore {
	return MemSetStore{
		Sets: make(map[string]map[string]bool),
	}
}

func (s MemSetStore) InSet(ctx context.Context, name, val string) (bool, error) {
	set, ok := s.Sets[name]
	if !ok {
		// an entirely missing set is simply empty
		return false, nil
	}
	_, ok = set[val]
	return ok, nil
}

// Values returns the members of a named set, for callers which need to
// iterate (eg feeding the extreme-term list to the keyword matcher).
func (s MemSetStore) Values(name string) []string {
	set, ok := s.Sets[name]
	if !ok {
		return nil
	}
	out := make([]string, 0, len(set))
	for v := range set {
		out = append(out, v)
	}
	return out
}

// LoadFromFileJSON reads a {"set-name": ["val", ...]} document and replaces
// any sets it names.
func (s *MemSetStore) LoadFromFileJSON(p string) error {
	f, err := os.Open(p)
	if err != nil {
		return err
	}
	defer func() { _ = f.Close() }()

	raw, err := io.ReadAll(f)
	if err != nil {
		return err
	}

	var sets map[string][]string
	if err := json.Unmarshal(raw, &sets); err != nil {
		return err
	}

	for name, l := range sets {
		m := make(map[string]bool, len(l))
		for _, val := range l {
			m[val] = true
		}
		s.Sets[name] = m
	}
	return nil
}

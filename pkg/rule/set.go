package rule

import (
	"encoding/json"
	"fmt"
	"slices"
	"strings"
)

// Set is an unordered, deduplicated collection of rule ids.
//
// Ids are atomic strings; no internal structure (category prefixes,
// numbering) is interpreted here. The zero value is not usable, create
// sets with [NewSet].
type Set map[string]struct{}

// NewSet creates a [Set] containing the given ids, deduplicated.
func NewSet(ids ...string) Set {
	s := make(Set, len(ids))
	s.Add(ids...)

	return s
}

// Has reports whether id is in the set.
func (s Set) Has(id string) bool {
	_, ok := s[id]

	return ok
}

// Add inserts the given ids. Duplicates are a no-op.
func (s Set) Add(ids ...string) {
	for _, id := range ids {
		s[id] = struct{}{}
	}
}

// Len returns the number of ids in the set.
func (s Set) Len() int {
	return len(s)
}

// Clone returns an independent copy of the set.
func (s Set) Clone() Set {
	out := make(Set, len(s))
	for id := range s {
		out[id] = struct{}{}
	}

	return out
}

// Union returns a new set containing the ids of both sets.
func (s Set) Union(other Set) Set {
	out := make(Set, len(s)+len(other))
	for id := range s {
		out[id] = struct{}{}
	}
	for id := range other {
		out[id] = struct{}{}
	}

	return out
}

// Difference returns a new set containing the ids of s that are not in
// other. Ids in other that are absent from s are ignored.
func (s Set) Difference(other Set) Set {
	out := make(Set, len(s))
	for id := range s {
		if !other.Has(id) {
			out[id] = struct{}{}
		}
	}

	return out
}

// Subtract removes the ids of other from s in place. Removing an absent
// id is a no-op.
func (s Set) Subtract(other Set) {
	for id := range other {
		delete(s, id)
	}
}

// Equal reports whether both sets contain exactly the same ids.
func (s Set) Equal(other Set) bool {
	if len(s) != len(other) {
		return false
	}
	for id := range s {
		if !other.Has(id) {
			return false
		}
	}

	return true
}

// Sorted returns the ids in lexicographic order.
func (s Set) Sorted() []string {
	ids := make([]string, 0, len(s))
	for id := range s {
		ids = append(ids, id)
	}

	slices.Sort(ids)

	return ids
}

func (s Set) String() string {
	return "{" + strings.Join(s.Sorted(), ", ") + "}"
}

// MarshalJSON encodes the set as a sorted list of ids.
func (s Set) MarshalJSON() ([]byte, error) {
	b, err := json.Marshal(s.Sorted())
	if err != nil {
		return nil, fmt.Errorf("marshal rule set: %w", err)
	}

	return b, nil
}

// UnmarshalJSON decodes a list of ids, deduplicating.
func (s *Set) UnmarshalJSON(data []byte) error {
	var ids []string

	err := json.Unmarshal(data, &ids)
	if err != nil {
		return fmt.Errorf("unmarshal rule set: %w", err)
	}

	*s = NewSet(ids...)

	return nil
}

// MarshalYAML encodes the set as a sorted list of ids.
func (s Set) MarshalYAML() (any, error) {
	return s.Sorted(), nil
}

// Package interner provides a bidirectional string<->id mapping used to
// turn topic and stream names into compact 64-bit identifiers.
package interner

import (
	"fmt"
	"math"
)

// ID is a compact integer handle for an interned string. The zero value
// denotes the empty string / root namespace.
type ID uint64

// unresolved is returned by Resolve for an id that was never issued.
const unresolved = "<unresolved>"

// Interner maintains a total string<->ID mapping for a single namespace.
// Two Interner instances never share ids; callers that need disjoint id
// spaces (e.g. topics vs. streams) must keep separate Interner values.
type Interner struct {
	strToID map[string]ID
	idToStr []string
	next    ID
}

// New returns an empty Interner with id 0 pre-bound to the empty string.
func New() *Interner {
	return &Interner{
		strToID: make(map[string]ID),
		idToStr: []string{""},
		next:    1,
	}
}

// Intern returns the existing id for s, allocating the next unused id if s
// has not been seen before. The empty string always maps to id 0.
//
// Panics if the id space is exhausted; this is treated as a fatal,
// construction-time-class invariant violation and is never expected to
// occur under realistic run sizes.
func (in *Interner) Intern(s string) ID {
	if s == "" {
		return 0
	}
	if id, ok := in.strToID[s]; ok {
		return id
	}
	if in.next == math.MaxUint64 {
		panic(fmt.Sprintf("interner: id space exhausted interning %q", s))
	}
	id := in.next
	in.next++
	in.strToID[s] = id
	in.idToStr = append(in.idToStr, s)
	return id
}

// Resolve returns the string bound to id. Out-of-range ids return a
// sentinel placeholder string and ok=false rather than panicking; callers
// are expected to log this as an error.
func (in *Interner) Resolve(id ID) (string, bool) {
	if int(id) >= len(in.idToStr) {
		return unresolved, false
	}
	return in.idToStr[id], true
}

// Len returns the number of distinct non-empty strings interned so far.
func (in *Interner) Len() int {
	return len(in.idToStr) - 1
}

// Package dedup lets a bulk extraction run skip re-writing a resource
// whose identity and byte-identical content it has already seen. A Cache
// lives in memory only; nothing is carried over from one run to the next.
package dedup

import (
	"github.com/gosc3k/ixfkit/directory"
	"github.com/gosc3k/ixfkit/internal/hash"
)

// key identifies one resource by its (Type, Group, Instance) identity
// plus the content hash of the payload bytes passed to Seen. Two entries
// with the same TGI but different payload content are treated as
// distinct.
type key struct {
	typ, group, instance uint32
	content              uint64
}

// Cache tracks which (entry, payload) pairs have already been written.
// Not safe for concurrent use; callers extracting multiple containers
// concurrently should use one Cache per goroutine or guard it externally.
type Cache struct {
	seen map[key]struct{}
}

// New returns an empty Cache.
func New() *Cache {
	return &Cache{seen: make(map[key]struct{})}
}

// Seen reports whether this exact (entry identity, payload content) pair
// has already been recorded by an earlier call, and records it if not — so a
// single call doubles as the check-and-mark a bulk writer needs.
func (c *Cache) Seen(e directory.Entry, payload []byte) bool {
	k := keyFor(e, payload)
	if _, ok := c.seen[k]; ok {
		return true
	}

	c.seen[k] = struct{}{}

	return false
}

// Len reports how many distinct (entry, payload) pairs have been
// recorded so far.
func (c *Cache) Len() int {
	return len(c.seen)
}

func keyFor(e directory.Entry, payload []byte) key {
	return key{
		typ:      e.Type,
		group:    e.Group,
		instance: e.Instance,
		content:  hash.ID(string(payload)),
	}
}

// static.go — lazily filled quark slots.
//
// Static binds one constant string to one atomic slot. The first Get interns
// the string and publishes the result; later calls load it. There is no lock:
// two goroutines racing on an empty slot both intern, both get the same Quark
// and both store it. The store is idempotent, so the race costs one redundant
// registry call and nothing else. Zero marks the slot as unfilled.
//
// Cache is the dynamic counterpart for strings not known up front.
package quark

import (
	"sync"
	"sync/atomic"

	"golang.org/x/sync/singleflight"
)

// Static is a cached quark for a fixed string. Declare it at package level:
//
//	var fileErrorQuark = quark.NewStatic("g-file-error-quark")
//
//	func (FileError) Domain() quark.Quark { return fileErrorQuark.Get() }
type Static struct {
	text   string
	reg    Registry // nil means the default registry, resolved at fill time
	cached atomic.Uint32
}

// NewStatic returns a slot for text in the default registry.
func NewStatic(text string) *Static {
	return &Static{text: text}
}

// NewStaticIn returns a slot for text bound to r.
func NewStaticIn(r Registry, text string) *Static {
	return &Static{text: text, reg: r}
}

// Text returns the bound string.
func (s *Static) Text() string { return s.text }

// Get returns the quark for the bound string, interning it on first use.
func (s *Static) Get() Quark {
	if q := s.cached.Load(); q != 0 {
		return Quark(q)
	}
	r := s.reg
	if r == nil {
		r = DefaultRegistry()
	}
	q := FromStaticIn(r, s.text)
	s.cached.Store(uint32(q))
	return q
}

// Cache memoizes quarks for arbitrary strings. Concurrent misses for the same
// string share one registry call.
type Cache struct {
	reg   Registry
	ids   sync.Map // string → Quark
	group singleflight.Group
}

// NewCache returns a Cache over r; a nil r means the default registry.
func NewCache(r Registry) *Cache {
	return &Cache{reg: r}
}

// Get returns the quark for text, interning it on first use.
func (c *Cache) Get(text string) Quark {
	if v, ok := c.ids.Load(text); ok {
		return v.(Quark)
	}
	v, _, _ := c.group.Do(text, func() (any, error) {
		if v, ok := c.ids.Load(text); ok {
			return v, nil
		}
		r := c.reg
		if r == nil {
			r = DefaultRegistry()
		}
		q := FromStaticIn(r, text)
		actual, _ := c.ids.LoadOrStore(text, q)
		return actual, nil
	})
	return v.(Quark)
}

// Len returns the number of cached strings.
func (c *Cache) Len() int {
	n := 0
	c.ids.Range(func(any, any) bool {
		n++
		return true
	})
	return n
}

package native

import (
	"sync"

	"github.com/zeebo/xxh3"
)

const quarkShards = 16

var processQuarks = newQuarkTable()

// quarkTable is an append-only string→id table. Lookups by string are
// sharded by hash; the reverse table is a single slice indexed by id.
type quarkTable struct {
	shards [quarkShards]quarkShard

	mu    sync.RWMutex
	names [][]byte // names[0] is reserved: quark 0 is never valid
}

type quarkShard struct {
	mu  sync.RWMutex
	ids map[string]uint32
}

func newQuarkTable() *quarkTable {
	t := &quarkTable{names: make([][]byte, 1, 64)}
	for i := range t.shards {
		t.shards[i].ids = make(map[string]uint32)
	}
	return t
}

func (t *quarkTable) intern(s string) (q uint32, created bool) {
	sh := &t.shards[xxh3.HashString(s)%quarkShards]

	sh.mu.RLock()
	q, ok := sh.ids[s]
	sh.mu.RUnlock()
	if ok {
		return q, false
	}

	sh.mu.Lock()
	defer sh.mu.Unlock()
	if q, ok = sh.ids[s]; ok {
		return q, false
	}

	// Store with a trailing NUL so the bytes can also be handed out as a C string.
	b := make([]byte, len(s)+1)
	copy(b, s)

	t.mu.Lock()
	q = uint32(len(t.names))
	t.names = append(t.names, b[:len(s):len(s)])
	t.mu.Unlock()

	sh.ids[s] = q
	return q, true
}

func (t *quarkTable) lookup(q uint32) []byte {
	t.mu.RLock()
	defer t.mu.RUnlock()
	if q == 0 || int(q) >= len(t.names) {
		return nil
	}
	return t.names[q]
}

func (t *quarkTable) len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.names) - 1
}

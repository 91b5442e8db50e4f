// quark_test.go — interning, caching and resolution.
package quark

import (
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"testing/synctest"
)

// countingRegistry is an in-memory registry that records how often it is asked
// to intern each string.
type countingRegistry struct {
	mu    sync.Mutex
	ids   map[string]uint32
	names map[uint32][]byte
	calls map[string]int
	total atomic.Int64
	fail  bool
}

func newCountingRegistry() *countingRegistry {
	return &countingRegistry{
		ids:   make(map[string]uint32),
		names: make(map[uint32][]byte),
		calls: make(map[string]int),
	}
}

func (r *countingRegistry) InternStatic(text string) uint32 {
	r.total.Add(1)
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls[text]++
	if r.fail {
		return 0
	}
	if q, ok := r.ids[text]; ok {
		return q
	}
	q := uint32(len(r.ids) + 1)
	r.ids[text] = q
	r.names[q] = []byte(text)
	return q
}

func (r *countingRegistry) QuarkToString(q uint32) []byte {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.names[q]
}

func (r *countingRegistry) callsFor(text string) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.calls[text]
}

func TestFromStaticIn_SameTextSameQuark(t *testing.T) {
	t.Parallel()

	r := newCountingRegistry()
	a := FromStaticIn(r, "alpha")
	b := FromStaticIn(r, "alpha")
	c := FromStaticIn(r, "beta")

	if a != b {
		t.Fatalf("same text interned to %d and %d", a, b)
	}
	if a == c {
		t.Fatalf("distinct text interned to the same quark %d", a)
	}
	if got := r.callsFor("alpha"); got != 2 {
		t.Fatalf("FromStaticIn must not cache: registry calls=%d, want 2", got)
	}
}

func TestFromStaticIn_RegistryFailurePanics(t *testing.T) {
	t.Parallel()

	r := newCountingRegistry()
	r.fail = true
	defer func() {
		if recover() == nil {
			t.Fatalf("expected panic on registry failure")
		}
	}()
	_ = FromStaticIn(r, "doomed")
}

func TestStatic_InternsOnce(t *testing.T) {
	t.Parallel()

	r := newCountingRegistry()
	s := NewStaticIn(r, "my-error-quark")

	first := s.Get()
	second := s.Get()

	if first != second {
		t.Fatalf("Get returned %d then %d", first, second)
	}
	if !first.IsValid() {
		t.Fatalf("Get returned the zero quark")
	}
	if got := r.callsFor("my-error-quark"); got != 1 {
		t.Fatalf("registry calls=%d, want 1", got)
	}
	if s.Text() != "my-error-quark" {
		t.Fatalf("Text()=%q", s.Text())
	}
}

func TestStatic_AgreesWithDirectIntern(t *testing.T) {
	t.Parallel()

	r := newCountingRegistry()
	direct := FromStaticIn(r, "shared")
	if got := NewStaticIn(r, "shared").Get(); got != direct {
		t.Fatalf("Static.Get()=%d, FromStaticIn=%d", got, direct)
	}
}

func TestStatic_ConcurrentFill_Synctest(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		r := newCountingRegistry()
		s := NewStaticIn(r, "raced-quark")

		const N = 64
		got := make([]Quark, N)
		var wg sync.WaitGroup
		for i := 0; i < N; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				got[i] = s.Get()
			}()
		}
		wg.Wait()

		for i, q := range got {
			if q != got[0] || !q.IsValid() {
				t.Fatalf("goroutine %d saw %d, goroutine 0 saw %d", i, q, got[0])
			}
		}
		calls := r.callsFor("raced-quark")
		if calls < 1 || calls > N {
			t.Fatalf("registry calls=%d, want between 1 and %d", calls, N)
		}
		// Once filled, the slot never goes back to the registry.
		before := r.total.Load()
		_ = s.Get()
		if r.total.Load() != before {
			t.Fatalf("filled slot called the registry again")
		}
	})
}

func TestCache_InternsOncePerString(t *testing.T) {
	t.Parallel()

	r := newCountingRegistry()
	c := NewCache(r)

	first := map[string]Quark{}
	for i := 0; i < 3; i++ {
		for _, s := range []string{"a", "b", "c"} {
			got := c.Get(s)
			if want, ok := first[s]; ok && got != want {
				t.Fatalf("Get(%q)=%d, want %d", s, got, want)
			}
			first[s] = got
		}
	}
	for _, s := range []string{"a", "b", "c"} {
		if got := r.callsFor(s); got != 1 {
			t.Fatalf("registry calls for %q=%d, want 1", s, got)
		}
	}
	if c.Len() != 3 {
		t.Fatalf("Len()=%d, want 3", c.Len())
	}
}

func TestCache_ConcurrentMisses(t *testing.T) {
	t.Parallel()

	r := newCountingRegistry()
	c := NewCache(r)

	const N = 32
	var wg sync.WaitGroup
	results := make([][]Quark, N)
	for i := 0; i < N; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			qs := make([]Quark, 10)
			for j := range qs {
				qs[j] = c.Get(fmt.Sprintf("k%d", j))
			}
			results[i] = qs
		}()
	}
	wg.Wait()

	for i := 1; i < N; i++ {
		for j := range results[i] {
			if results[i][j] != results[0][j] {
				t.Fatalf("goroutine %d key %d: %d != %d", i, j, results[i][j], results[0][j])
			}
		}
	}
	for j := 0; j < 10; j++ {
		if got := r.callsFor(fmt.Sprintf("k%d", j)); got != 1 {
			t.Fatalf("k%d interned %d times, want 1", j, got)
		}
	}
}

func TestQuark_TextIn(t *testing.T) {
	t.Parallel()

	r := newCountingRegistry()
	q := FromStaticIn(r, "héllo-quark")

	s, err := q.TextIn(r)
	if err != nil {
		t.Fatalf("TextIn: %v", err)
	}
	if s != "héllo-quark" {
		t.Fatalf("TextIn=%q", s)
	}
	if string(q.BytesIn(r)) != "héllo-quark" {
		t.Fatalf("BytesIn=%q", q.BytesIn(r))
	}
}

func TestQuark_TextIn_InvalidUTF8(t *testing.T) {
	t.Parallel()

	r := newCountingRegistry()
	q := FromStaticIn(r, "bad\xffquark")

	if _, err := q.TextIn(r); !errors.Is(err, ErrNotUTF8) {
		t.Fatalf("TextIn err=%v, want ErrNotUTF8", err)
	}
}

func TestQuark_Zero(t *testing.T) {
	t.Parallel()

	var q Quark
	if q.IsValid() {
		t.Fatalf("zero quark reported valid")
	}
	if q.BytesIn(newCountingRegistry()) != nil {
		t.Fatalf("zero quark resolved to bytes")
	}
	if q.String() != "quark(0)" {
		t.Fatalf("String()=%q", q.String())
	}
}

func TestQuark_DefaultRegistry(t *testing.T) {
	t.Parallel()

	q := FromStatic("xgx-quark-test-default")
	if NewStatic("xgx-quark-test-default").Get() != q {
		t.Fatalf("Static over the default registry disagrees with FromStatic")
	}
	if q.String() != "xgx-quark-test-default" {
		t.Fatalf("String()=%q", q.String())
	}
	if s, err := q.Text(); err != nil || s != "xgx-quark-test-default" {
		t.Fatalf("Text()=%q, %v", s, err)
	}
	if q.Uint() == 0 {
		t.Fatalf("Uint()=0")
	}
}

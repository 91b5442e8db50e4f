package native

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestMemory_InternIsIdempotent(t *testing.T) {
	m := NewMemory(WithCharset("UTF-8"))
	before := m.Stats().Quarks

	a := m.InternStatic("my-domain-quark")
	b := m.InternStatic("my-domain-quark")
	c := m.InternStatic("other-domain-quark")

	assert.NotZero(t, a)
	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c)
	assert.Equal(t, "my-domain-quark", string(m.QuarkToString(a)))
	assert.Equal(t, "other-domain-quark", string(m.QuarkToString(c)))
	assert.Equal(t, before+2, m.Stats().Quarks)
}

func TestMemory_QuarksAreProcessWide(t *testing.T) {
	a := NewMemory(WithCharset("UTF-8"))
	b := NewMemory(WithCharset("UTF-8"))

	q := a.InternStatic("shared-across-instances")
	assert.Equal(t, q, b.InternStatic("shared-across-instances"))
	assert.Equal(t, "shared-across-instances", string(b.QuarkToString(q)))
}

func TestMemory_QuarkToString_Unknown(t *testing.T) {
	m := NewMemory(WithCharset("UTF-8"))
	assert.Nil(t, m.QuarkToString(0))
	assert.Nil(t, m.QuarkToString(1<<31))
}

func TestMemory_InternedBytesAreNULTerminated(t *testing.T) {
	m := NewMemory(WithCharset("UTF-8"))
	q := m.InternStatic("abc")
	b := m.QuarkToString(q)
	require.Len(t, b, 3)
	assert.Equal(t, []byte("abc"), CString(&b[0]))
}

func TestMemory_InternConcurrent(t *testing.T) {
	m := NewMemory(WithCharset("UTF-8"))
	before := m.Stats().Quarks

	const workers = 32
	const names = 50
	got := make([][]uint32, workers)

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			ids := make([]uint32, names)
			for i := range ids {
				ids[i] = m.InternStatic(fmt.Sprintf("concurrent-quark-%d", i))
			}
			got[w] = ids
		}(w)
	}
	wg.Wait()

	for w := 1; w < workers; w++ {
		require.Equal(t, got[0], got[w], "worker %d saw different quarks", w)
	}
	assert.Equal(t, before+names, m.Stats().Quarks)
	for i, q := range got[0] {
		assert.Equal(t, fmt.Sprintf("concurrent-quark-%d", i), string(m.QuarkToString(q)))
	}
}

func TestMemory_RecordLifecycle(t *testing.T) {
	m := NewMemory(WithCharset("UTF-8"))
	d := m.InternStatic("test-domain")

	e := m.ErrorNewLiteral(d, 3, "boom")
	assert.Equal(t, d, e.Domain)
	assert.EqualValues(t, 3, e.Code)
	assert.Equal(t, "boom", string(Bytes(e)))
	assert.Equal(t, 1, m.Stats().Records)

	c := m.ErrorCopy(e)
	assert.NotSame(t, e, c)
	assert.NotSame(t, e.Message, c.Message)
	assert.Equal(t, 2, m.Stats().Records)

	m.ErrorFree(e)
	assert.Equal(t, "boom", string(Bytes(c)))
	m.ErrorFree(c)
	assert.Equal(t, 0, m.Stats().Records)
}

func TestMemory_DoubleFreePanics(t *testing.T) {
	m := NewMemory(WithCharset("UTF-8"))
	e := m.ErrorNewLiteral(m.InternStatic("d"), 1, "x")
	m.ErrorFree(e)

	assert.Panics(t, func() { m.ErrorFree(e) })
	assert.Panics(t, func() { m.ErrorCopy(e) })
}

func TestMemory_ForeignRecordPanics(t *testing.T) {
	m := NewMemory(WithCharset("UTF-8"))
	other := NewMemory(WithCharset("UTF-8"))
	e := other.ErrorNewLiteral(other.InternStatic("d"), 1, "x")

	assert.Panics(t, func() { m.ErrorFree(e) })
	other.ErrorFree(e)
}

func TestMemory_ErrorMatches(t *testing.T) {
	m := NewMemory(WithCharset("UTF-8"))
	d := m.InternStatic("d")
	e := m.ErrorNewLiteral(d, 7, "x")
	defer m.ErrorFree(e)

	assert.True(t, m.ErrorMatches(e, d, 7))
	assert.False(t, m.ErrorMatches(e, d, 8))
	assert.False(t, m.ErrorMatches(e, d+1, 7))
	assert.False(t, m.ErrorMatches(nil, d, 7))
}

func TestMemory_NewErrorKeepsRawBytes(t *testing.T) {
	m := NewMemory(WithCharset("UTF-8"))
	e := m.NewError(m.InternStatic("d"), 0, []byte{0xff, 0xfe, 'a'})
	defer m.ErrorFree(e)
	assert.Equal(t, []byte{0xff, 0xfe, 'a'}, Bytes(e))
}

func TestMemory_LocaleToUTF8(t *testing.T) {
	m := NewMemory(WithCharset("ISO-8859-1"))
	assert.Equal(t, "ISO-8859-1", m.Charset())

	conv, n := m.LocaleToUTF8([]byte("na\xefve"), nil)
	require.NotNil(t, conv)
	assert.Equal(t, "naïve", string(conv))
	assert.Equal(t, 5, n)
	assert.Equal(t, 1, m.Stats().Buffers)

	m.Free(conv)
	assert.Equal(t, 0, m.Stats().Buffers)
}

func TestMemory_LocaleToUTF8_FailureSetsSlot(t *testing.T) {
	m := NewMemory(WithCharset("UTF-8"))

	var slot *GError
	conv, n := m.LocaleToUTF8([]byte("ok\xff"), &slot)
	assert.Nil(t, conv)
	assert.Equal(t, 2, n)
	require.NotNil(t, slot)
	assert.Equal(t, m.InternStatic(ConvertErrorDomain), slot.Domain)
	assert.Equal(t, ConvertIllegalSequence, slot.Code)
	assert.Contains(t, string(Bytes(slot)), "invalid byte sequence")
	m.ErrorFree(slot)
	assert.Equal(t, 0, m.Stats().Buffers)
}

func TestMemory_UnknownCharsetFallsBackToASCII(t *testing.T) {
	core, logs := observer.New(zap.WarnLevel)
	m := NewMemory(WithCharset("klingon-8"), WithLogger(zap.New(core)))

	assert.Equal(t, "ANSI_X3.4-1968", m.Charset())
	assert.Equal(t, 1, logs.FilterMessage("falling back to ASCII locale charset").Len())
}

func TestSetError(t *testing.T) {
	m := NewMemory(WithCharset("UTF-8"))
	d := m.InternStatic("d")

	t.Run("nil_slot_discards", func(t *testing.T) {
		SetError(m, nil, d, 1, "ignored")
		assert.Equal(t, 0, m.Stats().Records)
	})

	t.Run("fills_empty_slot", func(t *testing.T) {
		var slot *GError
		SetError(m, &slot, d, 1, "first")
		require.NotNil(t, slot)
		assert.Equal(t, "first", string(Bytes(slot)))
		m.ErrorFree(slot)
	})

	t.Run("keeps_occupied_slot", func(t *testing.T) {
		core, logs := observer.New(zap.WarnLevel)
		SetLogger(zap.New(core))
		t.Cleanup(func() { SetLogger(nil) })

		var slot *GError
		SetError(m, &slot, d, 1, "first")
		first := slot
		SetError(m, &slot, d, 2, "second")

		assert.Same(t, first, slot)
		assert.Equal(t, "first", string(Bytes(slot)))
		assert.Equal(t, 1, logs.Len())
		assert.Equal(t, 1, m.Stats().Records)
		m.ErrorFree(slot)
	})
}

func TestDefault_IsStable(t *testing.T) {
	a := Default()
	b := Default()
	require.NotNil(t, a)
	assert.Same(t, a.(*Memory), b.(*Memory))
}

func TestCString_Nil(t *testing.T) {
	assert.Nil(t, CString(nil))
	assert.Nil(t, Bytes(nil))
	assert.Nil(t, Bytes(&GError{}))
}

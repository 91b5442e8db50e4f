package native

import (
	"bytes"
	"sync"
	"sync/atomic"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/xgx-io/xgx-gerror/internal/locale"
)

// Memory implements Library in Go. Records live on the Go heap, but their
// ownership is tracked exactly as a C allocator would see it: freeing or
// copying a record Memory does not hold panics, which turns double frees and
// use-after-free into test failures instead of silent corruption.
//
// Quarks are process-wide. Every Memory shares one intern table, so a quark
// obtained through one instance is valid in all of them.
type Memory struct {
	log  *zap.Logger
	conv *locale.Converter

	mu   sync.Mutex
	live map[*GError]struct{}

	buffers atomic.Int64
}

// Option customizes a Memory.
type Option func(*memoryConfig)

type memoryConfig struct {
	log     *zap.Logger
	charset string
}

// WithLogger routes Memory's diagnostics to l.
func WithLogger(l *zap.Logger) Option {
	return func(c *memoryConfig) {
		if l != nil {
			c.log = l
		}
	}
}

// WithCharset fixes the charset LocaleToUTF8 converts from instead of reading
// it from the environment.
func WithCharset(name string) Option {
	return func(c *memoryConfig) {
		c.charset = name
	}
}

// Stats is a point-in-time view of a Memory's allocations.
type Stats struct {
	Quarks  int // interned strings, process-wide
	Records int // live GError records
	Buffers int // conversion buffers not yet passed to Free
}

// NewMemory returns an empty Memory. Without WithCharset the locale charset is
// taken from LC_ALL, LC_CTYPE, LANG and CHARSET; an unusable setting falls back
// to ASCII.
func NewMemory(opts ...Option) *Memory {
	cfg := memoryConfig{log: zap.NewNop()}
	for _, opt := range opts {
		opt(&cfg)
	}

	charset := cfg.charset
	if charset == "" {
		env, err := locale.Load()
		if err != nil {
			cfg.log.Warn("locale environment unreadable", zap.Error(err))
		}
		charset = env.CharsetName()
	}
	conv, err := locale.NewConverter(charset)
	if err != nil {
		cfg.log.Warn("falling back to ASCII locale charset",
			zap.String("charset", charset), zap.Error(err))
		conv, _ = locale.NewConverter(locale.ASCII)
	}

	return &Memory{
		log:  cfg.log,
		conv: conv,
		live: make(map[*GError]struct{}),
	}
}

// Charset returns the charset LocaleToUTF8 converts from.
func (m *Memory) Charset() string { return m.conv.Charset() }

// Stats reports current allocation counts.
func (m *Memory) Stats() Stats {
	m.mu.Lock()
	records := len(m.live)
	m.mu.Unlock()
	return Stats{
		Quarks:  processQuarks.len(),
		Records: records,
		Buffers: int(m.buffers.Load()),
	}
}

func (m *Memory) InternStatic(text string) uint32 {
	q, created := processQuarks.intern(text)
	if created {
		m.log.Debug("quark interned", zap.String("text", text), zap.Uint32("quark", q))
	}
	return q
}

func (m *Memory) QuarkToString(q uint32) []byte {
	return processQuarks.lookup(q)
}

// NewError allocates a record whose message is raw bytes, for messages that
// are not valid UTF-8.
func (m *Memory) NewError(domain uint32, code int32, msg []byte) *GError {
	buf := make([]byte, len(msg)+1)
	copy(buf, msg)
	e := &GError{Domain: domain, Code: code, Message: &buf[0]}

	m.mu.Lock()
	m.live[e] = struct{}{}
	m.mu.Unlock()
	return e
}

func (m *Memory) ErrorNewLiteral(domain uint32, code int32, msg string) *GError {
	return m.NewError(domain, code, []byte(msg))
}

func (m *Memory) ErrorCopy(e *GError) *GError {
	m.mustOwn(e, "copy")
	return m.NewError(e.Domain, e.Code, bytes.Clone(Bytes(e)))
}

func (m *Memory) ErrorFree(e *GError) {
	m.mu.Lock()
	_, ok := m.live[e]
	delete(m.live, e)
	m.mu.Unlock()
	if !ok {
		panic(errors.Errorf("native: free of unowned GError %p", e))
	}
	// Poison the record so a stale pointer reads as obviously dead.
	*e = GError{Code: -1}
}

func (m *Memory) ErrorMatches(e *GError, domain uint32, code int32) bool {
	return e != nil && e.Domain == domain && e.Code == code
}

func (m *Memory) LocaleToUTF8(src []byte, slot **GError) ([]byte, int) {
	out, read, err := m.conv.ToUTF8(src)
	if err != nil {
		code := ConvertFailed
		if errors.Is(err, locale.ErrIllegalSequence) {
			code = ConvertIllegalSequence
		}
		setError(m.log, m, slot, m.InternStatic(ConvertErrorDomain), code, err.Error())
		return nil, read
	}
	m.buffers.Add(1)
	return out, read
}

func (m *Memory) Free(buf []byte) {
	if buf != nil {
		m.buffers.Add(-1)
	}
}

func (m *Memory) mustOwn(e *GError, op string) {
	m.mu.Lock()
	_, ok := m.live[e]
	m.mu.Unlock()
	if !ok {
		panic(errors.Errorf("native: %s of unowned GError %p", op, e))
	}
}

var _ Library = (*Memory)(nil)

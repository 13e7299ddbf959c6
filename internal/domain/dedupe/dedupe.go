package dedupe

import (
	"container/list"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"strings"
	"sync"
	"time"
)

const (
	defaultMaxSize = 10_000
	defaultTTL     = 24 * time.Hour
)

// Deduper records keys and reports repeats.
type Deduper interface {
	// SeenAndRecord returns true if key was already recorded inside the window;
	// otherwise it records key and returns false.
	SeenAndRecord(ctx context.Context, key string) bool

	// Unrecord forgets key so a failed operation can be retried.
	Unrecord(ctx context.Context, key string)

	Size() int64
}

type entry struct {
	key string
	at  time.Time
}

type inMemoryDeduper struct {
	mu      sync.Mutex
	seen    map[string]*list.Element
	order   *list.List // front = oldest
	maxSize int
	ttl     time.Duration
	now     func() time.Time
}

// NewInMemoryDeduper builds a FIFO-evicting, TTL-expiring key set.
func NewInMemoryDeduper(opts ...Option) Deduper {
	d := &inMemoryDeduper{
		maxSize: defaultMaxSize,
		ttl:     defaultTTL,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(d)
	}
	d.seen = make(map[string]*list.Element)
	d.order = list.New()
	return d
}

func (d *inMemoryDeduper) SeenAndRecord(_ context.Context, key string) bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	now := d.now()
	d.expire(now)

	if _, ok := d.seen[key]; ok {
		return true
	}
	if d.maxSize > 0 && d.order.Len() >= d.maxSize {
		d.remove(d.order.Front())
	}
	d.seen[key] = d.order.PushBack(entry{key: key, at: now})
	return false
}

func (d *inMemoryDeduper) Unrecord(_ context.Context, key string) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if el, ok := d.seen[key]; ok {
		d.remove(el)
	}
}

func (d *inMemoryDeduper) Size() int64 {
	d.mu.Lock()
	defer d.mu.Unlock()
	return int64(d.order.Len())
}

// expire drops keys recorded before now-ttl. Entries are in insertion order,
// so the scan stops at the first live one.
func (d *inMemoryDeduper) expire(now time.Time) {
	if d.ttl <= 0 {
		return
	}
	cutoff := now.Add(-d.ttl)
	for el := d.order.Front(); el != nil; el = d.order.Front() {
		if el.Value.(entry).at.After(cutoff) {
			return
		}
		d.remove(el)
	}
}

func (d *inMemoryDeduper) remove(el *list.Element) {
	if el == nil {
		return
	}
	delete(d.seen, el.Value.(entry).key)
	d.order.Remove(el)
}

// ContentKey derives a stable key from submission fields. Case and
// surrounding whitespace are ignored.
func ContentKey(parts ...string) string {
	h := sha256.New()
	for _, p := range parts {
		h.Write([]byte(strings.ToLower(strings.TrimSpace(p))))
		h.Write([]byte{0})
	}
	return hex.EncodeToString(h.Sum(nil))
}

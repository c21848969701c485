package s3tools

import (
	"log/slog"
	"sync"

	"github.com/fishy/errbatch"
	"github.com/hashicorp/golang-lru/v2"
	"gocloud.dev/blob"
)

type bucketEntry struct {
	b        *blob.Bucket
	refCount int
	evicted  bool
}

// bucketCache keeps recently used bucket handles open. Evicted handles are
// closed once the last reference is released.
type bucketCache struct {
	cache *lru.Cache[string, *bucketEntry]
	lock  sync.Mutex

	// Non-nil only while close is purging the cache.
	closeErrs *errbatch.ErrBatch
}

func newBucketCache(maxEntries int) *bucketCache {
	c := &bucketCache{}
	cache, err := lru.NewWithEvict(maxEntries, c.evictFunc)
	if err != nil {
		panic(err)
	}
	c.cache = cache
	return c
}

// Called with c.lock held.
func (c *bucketCache) evictFunc(name string, e *bucketEntry) {
	e.evicted = true
	if e.refCount == 0 {
		c.closeEntry(name, e)
	}
}

func (c *bucketCache) closeEntry(name string, e *bucketEntry) {
	err := e.b.Close()
	if err != nil {
		slog.Warn("s3tools: error closing bucket", "bucket", name, "err", err)
		if c.closeErrs != nil {
			c.closeErrs.Add(err)
		}
	}
}

type bucketRef struct {
	c    *bucketCache
	name string
	e    *bucketEntry
}

func (r *bucketRef) bucket() *blob.Bucket {
	return r.e.b
}

func (r *bucketRef) release() {
	if r.e == nil {
		return
	}
	r.c.lock.Lock()
	defer r.c.lock.Unlock()

	r.e.refCount--
	if r.e.refCount < 0 {
		panic("r.e.refCount < 0")
	} else if r.e.refCount == 0 && r.e.evicted {
		r.c.closeEntry(r.name, r.e)
	}
	r.e = nil
}

// get returns a reference to the named bucket, calling open on a miss. The
// reference must be released after use.
func (c *bucketCache) get(name string, open func() (*blob.Bucket, error)) (*bucketRef, error) {
	c.lock.Lock()
	defer c.lock.Unlock()

	e, ok := c.cache.Get(name)
	if !ok {
		b, err := open()
		if err != nil {
			return nil, err
		}
		e = &bucketEntry{b: b}
		c.cache.Add(name, e)
	}
	e.refCount++
	return &bucketRef{c: c, name: name, e: e}, nil
}

func (c *bucketCache) len() int {
	return c.cache.Len()
}

// close evicts every entry. Handles still referenced are closed on release.
func (c *bucketCache) close() error {
	c.lock.Lock()
	defer c.lock.Unlock()

	c.closeErrs = new(errbatch.ErrBatch)
	c.cache.Purge()
	err := c.closeErrs.Compile()
	c.closeErrs = nil
	return err
}

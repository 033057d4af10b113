package dedupe

import (
	"os"
	"sync"

	"github.com/pkg/errors"
	"github.com/tinylib/msgp/msgp"
)

// cacheEntry records a file's last-known size and fingerprint so a
// repeated run over the same roots can skip re-hashing unchanged files.
// Hand-wired msgp (de)serialization is used directly against
// msgp.Writer/msgp.Reader rather than generated code, since the
// toolchain that would run `msgp -file` is off limits here.
type cacheEntry struct {
	Size        int64
	Fingerprint uint64
}

func (e cacheEntry) EncodeMsg(w *msgp.Writer) error {
	if err := w.WriteMapHeader(2); err != nil {
		return err
	}
	if err := w.WriteString("size"); err != nil {
		return err
	}
	if err := w.WriteInt64(e.Size); err != nil {
		return err
	}
	if err := w.WriteString("fp"); err != nil {
		return err
	}
	return w.WriteUint64(e.Fingerprint)
}

func decodeCacheEntry(r *msgp.Reader) (cacheEntry, error) {
	var e cacheEntry
	n, err := r.ReadMapHeader()
	if err != nil {
		return e, err
	}
	for i := uint32(0); i < n; i++ {
		key, err := r.ReadString()
		if err != nil {
			return e, err
		}
		switch key {
		case "size":
			if e.Size, err = r.ReadInt64(); err != nil {
				return e, err
			}
		case "fp":
			if e.Fingerprint, err = r.ReadUint64(); err != nil {
				return e, err
			}
		default:
			if err := r.Skip(); err != nil {
				return e, err
			}
		}
	}
	return e, nil
}

// Cache is an in-memory, path-keyed fingerprint cache persisted to disk
// as a single msgp map. Safe for concurrent use, though the pipelines
// in this package are currently single-threaded.
type Cache struct {
	mu      sync.Mutex
	entries map[string]cacheEntry
	path    string
	dirty   bool
}

// LoadCache reads a cache file written by a previous run, or returns an
// empty Cache if path does not exist.
func LoadCache(path string) (*Cache, error) {
	c := &Cache{entries: make(map[string]cacheEntry), path: path}
	if path == "" {
		return c, nil
	}
	f, err := os.Open(path)
	if os.IsNotExist(err) {
		return c, nil
	}
	if err != nil {
		return nil, errors.Wrapf(err, "opening cache %s", path)
	}
	defer f.Close()

	r := msgp.NewReader(f)
	n, err := r.ReadMapHeader()
	if err != nil {
		return nil, errors.Wrap(err, "reading cache header")
	}
	for i := uint32(0); i < n; i++ {
		key, err := r.ReadString()
		if err != nil {
			return nil, errors.Wrap(err, "reading cache key")
		}
		entry, err := decodeCacheEntry(r)
		if err != nil {
			return nil, errors.Wrap(err, "reading cache entry")
		}
		c.entries[key] = entry
	}
	return c, nil
}

// Lookup returns the cached fingerprint for path if its recorded size
// still matches size (a cheap staleness check; mtime is deliberately
// not compared because it is not carried across filesystems the same
// way size is).
func (c *Cache) Lookup(path string, size int64) (uint64, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.entries[path]
	if !ok || e.Size != size {
		return 0, false
	}
	return e.Fingerprint, true
}

func (c *Cache) Store(path string, size int64, fp uint64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[path] = cacheEntry{Size: size, Fingerprint: fp}
	c.dirty = true
}

// Save persists the cache to its path if it was modified since load.
func (c *Cache) Save() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.path == "" || !c.dirty {
		return nil
	}
	f, err := os.Create(c.path)
	if err != nil {
		return errors.Wrapf(err, "creating cache %s", c.path)
	}
	defer f.Close()

	w := msgp.NewWriter(f)
	if err := w.WriteMapHeader(uint32(len(c.entries))); err != nil {
		return err
	}
	for path, entry := range c.entries {
		if err := w.WriteString(path); err != nil {
			return err
		}
		if err := entry.EncodeMsg(w); err != nil {
			return err
		}
	}
	return w.Flush()
}

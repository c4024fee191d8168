// Package docstore caches compiled schema content-match DFAs on disk so
// that a repeatedly-loaded schema (e.g. one process re-run against the
// same schema document many times) can skip content-expression grammar
// compilation. It is grounded on the disk-cache pattern used to persist
// compiled module metadata between compiler runs: a schema-versioned,
// msgpack-encoded payload keyed by a content digest, written atomically
// and read back with a schema-version guard so a format change simply
// misses the cache instead of failing to decode it.
package docstore

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"os"
	"path/filepath"
	"sync"

	"github.com/vmihailenco/msgpack/v5"

	"github.com/yaklabco/docengine/pkg/fsutil"
	"github.com/yaklabco/docengine/pkg/model"
)

// payloadSchemaVersion guards the on-disk payload format; bump it when
// Payload's shape changes so stale caches are ignored rather than
// mis-decoded.
const payloadSchemaVersion uint16 = 1

// Payload is the serialized form of a compiled schema's content-match
// DFAs, keyed by content-expression string.
type Payload struct {
	Schema         uint16
	ContentMatches map[string][]model.DFAState
}

// Digest keys a cache entry: the SHA-256 hash of the schema document's
// canonical source bytes.
type Digest [sha256.Size]byte

// DigestOf hashes source, typically the raw YAML or TOML schema document
// bytes.
func DigestOf(source []byte) Digest {
	return sha256.Sum256(source)
}

// Cache is an on-disk store of Payloads, one file per digest.
type Cache struct {
	mu  sync.RWMutex
	dir string
}

// DefaultDir returns the cache directory used when Open is called with an
// empty path: $XDG_CACHE_HOME/docengine, falling back to
// ~/.cache/docengine.
func DefaultDir() (string, error) {
	base := os.Getenv("XDG_CACHE_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		base = filepath.Join(home, ".cache")
	}
	return filepath.Join(base, "docengine"), nil
}

// Open initializes a cache rooted at dir, creating it if necessary. An
// empty dir resolves via DefaultDir.
func Open(dir string) (*Cache, error) {
	if dir == "" {
		resolved, err := DefaultDir()
		if err != nil {
			return nil, err
		}
		dir = resolved
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &Cache{dir: dir}, nil
}

// Dir returns the directory this cache is rooted at.
func (c *Cache) Dir() string {
	return c.dir
}

func (c *Cache) pathFor(key Digest) string {
	return filepath.Join(c.dir, "schemas", hex.EncodeToString(key[:])+".mp")
}

// Put writes a schema's content-match DFAs to the cache, keyed by key.
func (c *Cache) Put(key Digest, schema *model.Schema) error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	payload := Export(schema)
	data, err := msgpack.Marshal(payload)
	if err != nil {
		return err
	}
	path := c.pathFor(key)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return fsutil.WriteAtomic(context.Background(), path, data, 0)
}

// Get reads a cached payload, reporting whether one was found. A payload
// written by a different Schema format version is treated as a miss.
func (c *Cache) Get(key Digest) (*Payload, bool, error) {
	if c == nil {
		return nil, false, nil
	}
	c.mu.RLock()
	defer c.mu.RUnlock()

	data, err := os.ReadFile(c.pathFor(key))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, false, nil
		}
		return nil, false, err
	}
	var payload Payload
	if err := msgpack.Unmarshal(data, &payload); err != nil {
		return nil, false, err
	}
	if payload.Schema != payloadSchemaVersion {
		return nil, false, nil
	}
	return &payload, true, nil
}

// Export builds a Payload from schema's compiled node types, deduplicating
// identical content expressions the way NewSchema itself does.
func Export(schema *model.Schema) *Payload {
	payload := &Payload{Schema: payloadSchemaVersion, ContentMatches: map[string][]model.DFAState{}}
	for _, nt := range schema.NodeOrder {
		if _, ok := payload.ContentMatches[nt.ContentExpr]; ok {
			continue
		}
		payload.ContentMatches[nt.ContentExpr] = nt.ContentMatch.ExportDFA()
	}
	return payload
}

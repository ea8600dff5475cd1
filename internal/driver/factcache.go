package driver

import (
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/vmihailenco/msgpack/v5"

	"umlcmp/internal/model"
	"umlcmp/internal/normalize"
)

// Bump when the payload layout changes.
const cacheSchemaVersion uint16 = 1

// FactCache stores extracted fact sets on disk, keyed by the sha256 of the
// document content plus the normalization policy version: a policy bump
// silently invalidates every entry. The cache is an optimization for batch
// mode only; it holds facts extracted with the default policy and no notices.
// Thread-safe for concurrent access.
type FactCache struct {
	mu  sync.RWMutex
	dir string
}

type cachePayload struct {
	Schema        uint16
	Policy        uint16
	Classes       []string
	Relationships []model.Relationship
	Attributes    []model.Attribute
}

// OpenFactCache initializes a cache at the standard location.
func OpenFactCache(app string) (*FactCache, error) {
	base := os.Getenv("XDG_CACHE_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		base = filepath.Join(home, ".cache")
	}
	dir := filepath.Join(base, app, "facts")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &FactCache{dir: dir}, nil
}

func (c *FactCache) pathFor(content []byte) string {
	h := sha256.New()
	h.Write(content)
	var policy [2]byte
	binary.LittleEndian.PutUint16(policy[:], normalize.PolicyVersion)
	h.Write(policy[:])
	return filepath.Join(c.dir, hex.EncodeToString(h.Sum(nil))+".mp")
}

// Lookup reads the cached fact set for the document at path, if any.
func (c *FactCache) Lookup(path string) (model.FactSet, bool, error) {
	if c == nil {
		return model.FactSet{}, false, nil
	}
	content, err := os.ReadFile(path)
	if err != nil {
		return model.FactSet{}, false, err
	}

	c.mu.RLock()
	defer c.mu.RUnlock()

	f, err := os.Open(c.pathFor(content))
	if errors.Is(err, fs.ErrNotExist) {
		return model.FactSet{}, false, nil
	}
	if err != nil {
		return model.FactSet{}, false, err
	}
	defer f.Close()

	var payload cachePayload
	if err := msgpack.NewDecoder(f).Decode(&payload); err != nil {
		return model.FactSet{}, false, err
	}
	if payload.Schema != cacheSchemaVersion || payload.Policy != normalize.PolicyVersion {
		return model.FactSet{}, false, nil
	}

	facts := model.NewFactSet()
	for _, cls := range payload.Classes {
		facts.Classes.Add(cls)
	}
	for _, rel := range payload.Relationships {
		facts.Relationships.Add(rel)
	}
	for _, attr := range payload.Attributes {
		facts.Attributes.Add(attr)
	}
	return facts, true, nil
}

// Store writes the fact set for the document at path.
func (c *FactCache) Store(path string, facts model.FactSet) error {
	if c == nil {
		return nil
	}
	content, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	payload := cachePayload{
		Schema: cacheSchemaVersion,
		Policy: normalize.PolicyVersion,
	}
	for cls := range facts.Classes {
		payload.Classes = append(payload.Classes, cls)
	}
	for rel := range facts.Relationships {
		payload.Relationships = append(payload.Relationships, rel)
	}
	for attr := range facts.Attributes {
		payload.Attributes = append(payload.Attributes, attr)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	target := c.pathFor(content)
	f, err := os.CreateTemp(c.dir, "tmp-*")
	if err != nil {
		return err
	}
	defer os.Remove(f.Name())

	if err := msgpack.NewEncoder(f).Encode(&payload); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	// Atomic replace.
	return os.Rename(f.Name(), target)
}

package persist

import (
	"path/filepath"

	"github.com/peterbourgon/diskv/v3"
)

// Diskv keeps every key as a flat file under its base path.
type Diskv struct {
	d *diskv.Diskv
}

// NewDiskv returns a diskv-backed KV rooted at basePath. Writes go through a
// temp dir and a rename so a crash never leaves a half-written day.
func NewDiskv(basePath string) *Diskv {
	return &Diskv{d: diskv.New(diskv.Options{
		BasePath:     basePath,
		TempDir:      filepath.Join(basePath, ".tmp"),
		Transform:    func(string) []string { return []string{} },
		CacheSizeMax: 64 * 1024,
	})}
}

func (k *Diskv) Get(key string) ([]byte, error) {
	if !k.d.Has(key) {
		return nil, ErrNotFound
	}
	return k.d.Read(key)
}

func (k *Diskv) Put(key string, value []byte) error {
	return k.d.Write(key, value)
}

func (k *Diskv) Close() error {
	return nil
}

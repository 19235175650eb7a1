package cart

import (
	"encoding/json"
	"log"
	"os"
	"path/filepath"
	"strings"
)

// FileStorage persists values as JSON files under a data directory, one
// file per key. Writes go through a temp file and rename so a crash never
// leaves a half-written value behind.
type FileStorage struct {
	dir string
}

// NewFileStorage creates the data directory if needed.
func NewFileStorage(dir string) (*FileStorage, error) {
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, err
	}
	return &FileStorage{dir: dir}, nil
}

func (f *FileStorage) Load(key string, v interface{}) bool {
	path, ok := f.path(key)
	if !ok {
		return false
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			log.Printf("cart storage: read %s: %v", key, err)
		}
		return false
	}
	if err := json.Unmarshal(data, v); err != nil {
		log.Printf("cart storage: parse %s: %v", key, err)
		return false
	}
	return true
}

func (f *FileStorage) Save(key string, v interface{}) {
	data, err := json.Marshal(v)
	if err != nil {
		log.Printf("cart storage: marshal %s: %v", key, err)
		return
	}

	path, ok := f.path(key)
	if !ok {
		return
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		log.Printf("cart storage: write %s: %v", key, err)
		return
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		log.Printf("cart storage: rename %s: %v", key, err)
	}
}

// path maps a key to its file. Keys must stay inside the data
// directory: anything carrying a path separator or a dot-dot segment
// is refused rather than joined.
func (f *FileStorage) path(key string) (string, bool) {
	if key == "" || strings.ContainsAny(key, `/\`) || strings.Contains(key, "..") {
		log.Printf("cart storage: rejecting unsafe key %q", key)
		return "", false
	}
	return filepath.Join(f.dir, key+".json"), true
}

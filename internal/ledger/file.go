package ledger

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// fileState is the persisted shape: a flat id array under a versioned
// envelope, one file per automation.
type fileState struct {
	Version   int       `json:"version"`
	IDs       []string  `json:"ids"`
	UpdatedAt time.Time `json:"updated_at"`
}

// File is a JSON-file-backed ledger. Every Add rewrites the file through
// a temp-file rename so a crash mid-write never corrupts the set.
type File struct {
	path string
	ids  map[string]struct{}
	// order preserves insertion order so the on-disk array is stable
	// across rewrites.
	order []string
}

// OpenFile loads (or creates) the ledger file at path.
func OpenFile(path string) (*File, error) {
	f := &File{path: path, ids: make(map[string]struct{})}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return f, nil
		}
		return nil, fmt.Errorf("read ledger: %w", err)
	}

	var state fileState
	if err := json.Unmarshal(data, &state); err != nil {
		return nil, fmt.Errorf("decode ledger %s: %w", path, err)
	}
	for _, id := range state.IDs {
		if _, ok := f.ids[id]; ok {
			continue
		}
		f.ids[id] = struct{}{}
		f.order = append(f.order, id)
	}
	return f, nil
}

func (f *File) Contains(id string) bool {
	_, ok := f.ids[id]
	return ok
}

func (f *File) Add(id string) error {
	if _, ok := f.ids[id]; ok {
		return nil
	}
	f.ids[id] = struct{}{}
	f.order = append(f.order, id)
	return f.save()
}

func (f *File) Len() int { return len(f.ids) }

func (f *File) Clear() error {
	f.ids = make(map[string]struct{})
	f.order = nil
	return f.save()
}

func (f *File) Close() error { return nil }

func (f *File) save() error {
	if err := os.MkdirAll(filepath.Dir(f.path), 0700); err != nil {
		return fmt.Errorf("create ledger dir: %w", err)
	}

	state := fileState{Version: 1, IDs: f.order, UpdatedAt: time.Now()}
	data, err := json.MarshalIndent(state, "", "  ")
	if err != nil {
		return fmt.Errorf("encode ledger: %w", err)
	}

	tmp := f.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0600); err != nil {
		return fmt.Errorf("write ledger: %w", err)
	}
	if err := os.Rename(tmp, f.path); err != nil {
		return fmt.Errorf("replace ledger: %w", err)
	}
	return nil
}

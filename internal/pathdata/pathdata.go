package pathdata

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"minigames-backend/internal/rng"
)

// Tables served to clients for animating an outcome the server already chose.
const (
	Aviamaster = "aviamaster"
	Plinko     = "plinko"
	Roulette   = "roulette"
)

var Tables = []string{Aviamaster, Plinko, Roulette}

// Table maps an outcome key to the recorded animation paths that end in it.
type Table map[string][]json.RawMessage

type Store struct {
	tables map[string]Table
	raw    map[string][]byte
	src    rng.Source
}

// Load reads <table>_paths.json for every known table. A missing file
// leaves that table empty.
func Load(dir string) (*Store, error) {
	s := &Store{
		tables: make(map[string]Table, len(Tables)),
		raw:    make(map[string][]byte, len(Tables)),
		src:    rng.Crypto(),
	}
	for _, name := range Tables {
		path := filepath.Join(dir, name+"_paths.json")
		data, err := os.ReadFile(path)
		if errors.Is(err, fs.ErrNotExist) {
			s.tables[name] = Table{}
			s.raw[name] = []byte("{}")
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", path, err)
		}
		var t Table
		if err := json.Unmarshal(data, &t); err != nil {
			return nil, fmt.Errorf("parse %s: %w", path, err)
		}
		s.tables[name] = t
		s.raw[name] = data
	}
	return s, nil
}

// Pick returns one path for key, or nil when the table has none.
func (s *Store) Pick(table, key string) json.RawMessage {
	paths := s.tables[table][key]
	if len(paths) == 0 {
		return nil
	}
	return paths[s.src.IntN(len(paths))]
}

// Raw is the file as loaded, for clients that cache the whole table.
func (s *Store) Raw(table string) ([]byte, bool) {
	data, ok := s.raw[table]
	return data, ok
}

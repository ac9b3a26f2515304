package catalog

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
)

// Load opens a catalog source by path: empty or "builtin" selects the
// embedded catalog, .yaml/.yml a YAML file, .db/.sqlite/.sqlite3 a sqlite file.
func Load(ctx context.Context, path string) (*Store, error) {
	c, err := read(ctx, strings.TrimSpace(path))
	if err != nil {
		return nil, err
	}
	return NewStore(c), nil
}

func read(ctx context.Context, path string) (Catalog, error) {
	if path == "" || path == "builtin" {
		return Builtin()
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return LoadYAML(path)
	case ".db", ".sqlite", ".sqlite3":
		db, err := OpenSQLite(path)
		if err != nil {
			return Catalog{}, err
		}
		defer db.Close()
		return LoadSQLite(ctx, db)
	default:
		return Catalog{}, fmt.Errorf("unsupported catalog source %q", path)
	}
}

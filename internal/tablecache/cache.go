package tablecache

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/dekarrin/hulkc/internal/lex"
	"github.com/dekarrin/hulkc/internal/parse"
	"github.com/dekarrin/rezi"
)

// Entry is the full on-disk payload for one cached front end: a snapshot of
// the compiled lexer and a snapshot of the constructed parse table, both
// flattened to plain data by lex.Snapshot/parse.Snapshot so rezi can encode
// them without either package needing to implement encoding.BinaryMarshaler
// itself.
type Entry struct {
	Fingerprint string
	Lexer       lex.Snapshot
	Table       parse.TableSnapshot
}

// Cache is a directory of rezi-encoded Entry files, one per fingerprint.
type Cache struct {
	dir string
}

// New returns a Cache rooted at dir. dir is created on first Store if it
// does not already exist.
func New(dir string) *Cache {
	return &Cache{dir: dir}
}

func (c *Cache) path(fingerprint string) string {
	return filepath.Join(c.dir, fingerprint+".tablecache")
}

// Load looks up fingerprint and, on a hit, rebuilds the lexer and parse
// table from the cached snapshots with no automaton or LALR construction
// performed. ok is false on a cache miss (including a missing cache
// directory), which is not itself an error.
func (c *Cache) Load(fingerprint string) (lx *lex.Lexer, table parse.LRParseTable, ok bool, err error) {
	data, err := os.ReadFile(c.path(fingerprint))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil, false, nil
		}
		return nil, nil, false, fmt.Errorf("tablecache: reading %s: %w", fingerprint, err)
	}

	var entry Entry
	if _, err := rezi.Dec(data, &entry); err != nil {
		return nil, nil, false, fmt.Errorf("tablecache: decoding %s: %w", fingerprint, err)
	}
	if entry.Fingerprint != fingerprint {
		return nil, nil, false, fmt.Errorf("tablecache: %s: stored fingerprint %q does not match requested key", fingerprint, entry.Fingerprint)
	}

	return lex.FromSnapshot(entry.Lexer), parse.FromSnapshot(entry.Table), true, nil
}

// Store snapshots lx and table and writes them under fingerprint, creating
// the cache directory if needed. Writes go to a temp file first and are
// renamed into place so a reader never observes a partially written entry.
func (c *Cache) Store(fingerprint string, lx *lex.Lexer, table parse.LRParseTable) error {
	if err := os.MkdirAll(c.dir, 0o755); err != nil {
		return fmt.Errorf("tablecache: creating cache dir: %w", err)
	}

	entry := Entry{
		Fingerprint: fingerprint,
		Lexer:       lx.Snapshot(),
		Table:       parse.Snapshot(table),
	}
	data, err := rezi.Enc(entry)
	if err != nil {
		return fmt.Errorf("tablecache: encoding %s: %w", fingerprint, err)
	}

	tmp := c.path(fingerprint) + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("tablecache: writing %s: %w", fingerprint, err)
	}
	if err := os.Rename(tmp, c.path(fingerprint)); err != nil {
		return fmt.Errorf("tablecache: finalizing %s: %w", fingerprint, err)
	}
	return nil
}

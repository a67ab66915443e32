package domain

import (
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
)

// IdentityLength is the number of hex characters kept from the digest.
const IdentityLength = 8

// Identity names one built environment. It doubles as the entry's directory name.
type Identity string

// String returns the identity token.
func (i Identity) String() string {
	return string(i)
}

// Valid reports whether the identity has the shape ComputeIdentity produces.
func (i Identity) Valid() bool {
	if len(i) != IdentityLength {
		return false
	}
	for _, c := range []byte(i) {
		if (c < '0' || c > '9') && (c < 'a' || c > 'f') {
			return false
		}
	}
	return true
}

// ComputeIdentity derives the environment identity from the resolved
// interpreter path, the lock document and the bootstrap program itself.
// Each input is length-prefixed so that bytes cannot shift between inputs
// without changing the result.
func ComputeIdentity(interpreterPath string, lock, self []byte) Identity {
	h := sha256.New()
	for _, part := range [][]byte{[]byte(interpreterPath), lock, self} {
		var size [8]byte
		binary.BigEndian.PutUint64(size[:], uint64(len(part)))
		_, _ = h.Write(size[:])
		_, _ = h.Write(part)
	}
	return Identity(hex.EncodeToString(h.Sum(nil))[:IdentityLength])
}

package core

import (
	"crypto/sha256"
	"encoding/hex"
)

// Hash represents a cryptographic hash
type Hash string

// NewHash creates a new hash from data
func NewHash(data []byte) Hash {
	sum := sha256.Sum256(data)
	return Hash(hex.EncodeToString(sum[:]))
}

// ProofHashLength is the truncation length for proof identifiers.
// 16 hex chars give a 64-bit space: 8 chars start colliding around 65K
// proofs, 16 chars around 4B, which balances collision safety against
// compactness for operator-facing identifiers.
const ProofHashLength = 16

// NewProofHash creates a truncated hash suitable for proof identifiers
func NewProofHash(data []byte) Hash {
	full := NewHash(data)
	return full[:ProofHashLength]
}

// String returns the string representation
func (h Hash) String() string {
	return string(h)
}

// IsEmpty checks if the hash is empty
func (h Hash) IsEmpty() bool {
	return h == ""
}

// Equals checks if two hashes are equal
func (h Hash) Equals(other Hash) bool {
	return h == other
}

// Domain-specific hash types
type (
	InputHash  Hash
	OutputHash Hash
)

// Constructors
func NewInputHash(data []byte) InputHash   { return InputHash(NewProofHash(data)) }
func NewOutputHash(data []byte) OutputHash { return OutputHash(NewProofHash(data)) }

// String conversions
func (h InputHash) String() string  { return Hash(h).String() }
func (h OutputHash) String() string { return Hash(h).String() }

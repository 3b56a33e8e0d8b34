package id

import (
	"crypto/rand"
	"encoding/hex"
)

// Generator mints session identifiers.
type Generator interface {
	New() string
}

// RandomHex produces 32 hex characters of randomness. Ids only need to be
// unique within one state file.
type RandomHex struct{}

func (RandomHex) New() string {
	buf := make([]byte, 16)
	_, _ = rand.Read(buf)
	return hex.EncodeToString(buf)
}

// Package idgen generates the short reference codes printed on receipts and tickets.
package idgen

import (
	"encoding/binary"
	"strconv"
	"strings"

	"github.com/google/uuid"
)

// CodeLength is the length of a generated reference code
const CodeLength = 8

// Generator produces short upper-case alphanumeric reference codes
type Generator interface {
	NewCode() string
}

// RandomGenerator derives codes from random (v4) UUIDs
type RandomGenerator struct{}

// NewRandomGenerator creates a random code generator
func NewRandomGenerator() *RandomGenerator {
	return &RandomGenerator{}
}

// NewCode returns 8 base-36 characters, e.g. "K3J9Q0ZD"
func (g *RandomGenerator) NewCode() string {
	id := uuid.New()
	n := binary.BigEndian.Uint64(id[:8])
	code := strings.ToUpper(strconv.FormatUint(n, 36))

	if len(code) < CodeLength {
		code = strings.Repeat("0", CodeLength-len(code)) + code
	}
	return code[len(code)-CodeLength:]
}

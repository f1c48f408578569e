// Package generator defines the interface for trailing-zero digest search.
// The search engine is a backend behind the Generator contract, so the CLI
// does not depend on how candidates are distributed or hashed.
package generator

import (
	"context"
	"fmt"
	"strings"
)

// Algorithm selects the digest applied to each candidate.
type Algorithm int

const (
	SHA256       Algorithm = iota // SHA-256, hex (default)
	SHA3_256                      // FIPS 202 SHA3-256
	Keccak256                     // Legacy Keccak-256 (Ethereum)
	Blake2b256                    // BLAKE2b with 32-byte output
	Blake3                        // BLAKE3, 32-byte output
	DoubleSHA256                  // SHA-256(SHA-256(x)) (Bitcoin)
	Hash160                       // RIPEMD-160(SHA-256(x)) (Bitcoin)
)

var algorithmNames = map[Algorithm]string{
	SHA256:       "sha256",
	SHA3_256:     "sha3-256",
	Keccak256:    "keccak256",
	Blake2b256:   "blake2b-256",
	Blake3:       "blake3",
	DoubleSHA256: "sha256d",
	Hash160:      "hash160",
}

// String returns the algorithm name as accepted by ParseAlgorithm.
func (a Algorithm) String() string {
	if name, ok := algorithmNames[a]; ok {
		return name
	}
	return "unknown"
}

// ParseAlgorithm maps a name such as "sha256" or "blake3" to an Algorithm.
func ParseAlgorithm(name string) (Algorithm, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for a, n := range algorithmNames {
		if n == name {
			return a, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownAlgorithm, name)
}

// Algorithms lists every supported algorithm in declaration order.
func Algorithms() []Algorithm {
	return []Algorithm{SHA256, SHA3_256, Keccak256, Blake2b256, Blake3, DoubleSHA256, Hash160}
}

// Config holds the configuration for a single search.
type Config struct {
	ZeroCount   int       // Required trailing '0' hex digits
	TargetCount int       // Matches to find before signalling completion
	Workers     int       // Number of concurrent workers (0 = NumCPU)
	Start       uint64    // First candidate (0 = 1)
	Algorithm   Algorithm // Digest applied to each candidate
}

// Match is a candidate whose digest ends with the required zeros.
type Match struct {
	Candidate uint64 // Candidate value
	Digest    string // Lowercase hex digest of the candidate's decimal form
}

// String renders the match in the tool's output format.
func (m Match) String() string {
	return fmt.Sprintf("%d, %q", m.Candidate, m.Digest)
}

// Stats holds real-time performance statistics.
type Stats struct {
	Attempts    uint64  // Candidates issued so far
	HashRate    float64 // Hashes per second
	ElapsedSecs float64 // Time elapsed since start
	Found       int     // Matches recorded so far
}

// Observer is called for every recorded match, in ResultSet order.
// It runs while the result lock is held and must not call back into the generator.
type Observer func(Match)

// Generator defines the contract for search backends.
type Generator interface {
	// Search runs until TargetCount matches are recorded and returns them in
	// arrival order. At most Workers-1 extra matches may be returned.
	// Cancelling ctx stops the workers early; the partial result set is
	// returned together with an error wrapping ErrCancelled.
	Search(ctx context.Context, config *Config, observe Observer) ([]Match, error)

	// Stats returns the current performance statistics.
	// This method is safe to call concurrently from any goroutine.
	Stats() Stats

	// Name returns the implementation name (e.g., "CPU").
	Name() string
}

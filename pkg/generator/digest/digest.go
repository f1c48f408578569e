// Package digest maps candidates to lowercase hex digests and tests them for
// trailing zeros. A Hasher owns its scratch buffers, so each worker needs its
// own; the package-level helpers allocate and are safe everywhere.
package digest

import (
	"encoding/hex"
	"strconv"

	"github.com/btcsuite/btcd/btcutil"
	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/ethereum/go-ethereum/crypto"
	sha256 "github.com/minio/sha256-simd"
	"github.com/zeebo/blake3"
	"golang.org/x/crypto/blake2b"
	"golang.org/x/crypto/sha3"

	"github.com/Amr-9/ZeroHunter/pkg/generator"
)

// maxDecimalLen is the length of the largest uint64 in base 10.
const maxDecimalLen = 20

// sumFunc appends the raw digest of src to dst.
type sumFunc func(dst, src []byte) []byte

// Hasher computes digests of candidates. It is not safe for concurrent use.
type Hasher struct {
	alg  generator.Algorithm
	sum  sumFunc
	num  []byte // decimal form of the current candidate
	raw  []byte // raw digest bytes
	text []byte // hex-encoded digest
}

// New returns a Hasher for the given algorithm.
func New(alg generator.Algorithm) (*Hasher, error) {
	sum, size, err := lookup(alg)
	if err != nil {
		return nil, err
	}
	return &Hasher{
		alg:  alg,
		sum:  sum,
		num:  make([]byte, 0, maxDecimalLen),
		raw:  make([]byte, 0, size),
		text: make([]byte, size*2),
	}, nil
}

// Algorithm returns the algorithm this Hasher was built for.
func (h *Hasher) Algorithm() generator.Algorithm {
	return h.alg
}

// HexLen returns the length of the hex digests produced by h.
func (h *Hasher) HexLen() int {
	return len(h.text)
}

// Sum hashes the decimal form of candidate and returns the hex digest.
// The returned slice is reused by the next call.
func (h *Hasher) Sum(candidate uint64) []byte {
	h.num = strconv.AppendUint(h.num[:0], candidate, 10)
	h.raw = h.sum(h.raw[:0], h.num)
	hex.Encode(h.text, h.raw)
	return h.text
}

// Digest returns the hex digest of candidate as a string.
func (h *Hasher) Digest(candidate uint64) string {
	return string(h.Sum(candidate))
}

// Digest computes the hex digest of candidate with a one-off Hasher.
func Digest(alg generator.Algorithm, candidate uint64) (string, error) {
	h, err := New(alg)
	if err != nil {
		return "", err
	}
	return h.Digest(candidate), nil
}

// HexLen returns the hex digest length of alg, or 0 if alg is unknown.
func HexLen(alg generator.Algorithm) int {
	_, size, err := lookup(alg)
	if err != nil {
		return 0
	}
	return size * 2
}

func lookup(alg generator.Algorithm) (sumFunc, int, error) {
	switch alg {
	case generator.SHA256:
		return func(dst, src []byte) []byte {
			s := sha256.Sum256(src)
			return append(dst, s[:]...)
		}, sha256.Size, nil
	case generator.SHA3_256:
		return func(dst, src []byte) []byte {
			s := sha3.Sum256(src)
			return append(dst, s[:]...)
		}, 32, nil
	case generator.Keccak256:
		// KeccakState is reset by HashData, so one state per Hasher is enough.
		state := crypto.NewKeccakState()
		return func(dst, src []byte) []byte {
			s := crypto.HashData(state, src)
			return append(dst, s[:]...)
		}, 32, nil
	case generator.Blake2b256:
		return func(dst, src []byte) []byte {
			s := blake2b.Sum256(src)
			return append(dst, s[:]...)
		}, blake2b.Size256, nil
	case generator.Blake3:
		return func(dst, src []byte) []byte {
			s := blake3.Sum256(src)
			return append(dst, s[:]...)
		}, 32, nil
	case generator.DoubleSHA256:
		return func(dst, src []byte) []byte {
			return append(dst, chainhash.DoubleHashB(src)...)
		}, chainhash.HashSize, nil
	case generator.Hash160:
		return func(dst, src []byte) []byte {
			return append(dst, btcutil.Hash160(src)...)
		}, 20, nil
	default:
		return nil, 0, generator.ErrUnknownAlgorithm
	}
}

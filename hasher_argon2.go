package bloomset

import (
	"encoding/binary"

	"github.com/cespare/xxhash"
	"golang.org/x/crypto/argon2"
)

const argon2KeyLen = 32

// Argon2Hasher makes every element cost one Argon2id derivation, so that
// enumerating a small integer universe against a filter is slow. Rounds are
// then cheap: xxHash64 over key||seed.
//
// Use HashMulti (as Bloom does) to pay for the derivation once per element
// rather than once per round.
type Argon2Hasher struct {
	Salt    []byte
	Time    uint32
	Memory  uint32 // KiB
	Threads uint8
}

// NewArgon2Hasher returns an Argon2Hasher with Time=1, Memory=64 MiB and
// Threads=4.
func NewArgon2Hasher(salt []byte) Argon2Hasher {
	return Argon2Hasher{
		Salt:    salt,
		Time:    1,
		Memory:  64 * 1024,
		Threads: 4,
	}
}

func (h Argon2Hasher) derive(element uint64) []byte {
	var password [8]byte
	binary.LittleEndian.PutUint64(password[:], element)
	return argon2.IDKey(password[:], h.Salt, h.Time, h.Memory, h.Threads, argon2KeyLen)
}

func (h Argon2Hasher) Hash(element uint64, seed uint32) uint64 {
	return h.HashMulti(nil, element, []uint32{seed})[0]
}

func (h Argon2Hasher) HashMulti(dst []uint64, element uint64, seeds []uint32) []uint64 {
	var buf [argon2KeyLen + 4]byte
	copy(buf[:argon2KeyLen], h.derive(element))
	for _, seed := range seeds {
		binary.LittleEndian.PutUint32(buf[argon2KeyLen:], seed)
		dst = append(dst, xxhash.Sum64(buf[:]))
	}
	return dst
}

package crypto

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"errors"
	"fmt"
)

const (
	KeySize   = sha256.Size   // AES-256 key size
	BlockSize = aes.BlockSize // CBC block and IV size
)

var (
	ErrInvalidIV       = errors.New("invalid IV length")
	ErrNotBlockAligned = errors.New("ciphertext is not a multiple of the block size")
	ErrEmptyCiphertext = errors.New("empty ciphertext")
)

// Blob is the framed result of one encryption
type Blob struct {
	IV         []byte
	Ciphertext []byte
	Key        []byte
}

// DeriveKey derives the deterministic key for a username and optional host.
// The hash covers username, host, reversed host, reversed username.
func DeriveKey(username, host string) []byte {
	h := sha256.New()
	h.Write([]byte(username))
	if host != "" {
		h.Write([]byte(host))
		h.Write(reverse([]byte(host)))
	}
	h.Write(reverse([]byte(username)))
	return h.Sum(nil)
}

// GenerateKey returns a random key
func GenerateKey() ([]byte, error) {
	return GenerateRandom(KeySize)
}

// GenerateRandom generates n random bytes
func GenerateRandom(n int) ([]byte, error) {
	b := make([]byte, n)
	if _, err := rand.Read(b); err != nil {
		return nil, fmt.Errorf("failed to generate random bytes: %w", err)
	}
	return b, nil
}

// Pad appends 1..BlockSize bytes, each equal to the pad length.
// Aligned input gets a full extra block.
func Pad(plaintext []byte) []byte {
	pad := BlockSize - len(plaintext)%BlockSize
	out := make([]byte, len(plaintext), len(plaintext)+pad)
	copy(out, plaintext)
	for i := 0; i < pad; i++ {
		out = append(out, byte(pad))
	}
	return out
}

// Unpad strips as many trailing bytes as the value of the last byte.
// The value is not checked: 0 or anything longer than data yields an
// empty result.
func Unpad(data []byte) []byte {
	if len(data) == 0 {
		return data
	}
	n := int(data[len(data)-1])
	if n == 0 || n > len(data) {
		return data[:0]
	}
	return data[:len(data)-n]
}

// Seal pads and encrypts plaintext under key with a fresh IV
func Seal(plaintext, key []byte) (Blob, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return Blob{}, fmt.Errorf("failed to create cipher: %w", err)
	}

	iv, err := GenerateRandom(BlockSize)
	if err != nil {
		return Blob{}, fmt.Errorf("failed to generate IV: %w", err)
	}

	data := Pad(plaintext)
	cipher.NewCBCEncrypter(block, iv).CryptBlocks(data, data)

	return Blob{
		IV:         iv,
		Ciphertext: data,
		Key:        append([]byte(nil), key...),
	}, nil
}

// Bytes returns IV || ciphertext || key
func (b Blob) Bytes() []byte {
	out := make([]byte, 0, len(b.IV)+len(b.Ciphertext)+len(b.Key))
	out = append(out, b.IV...)
	out = append(out, b.Ciphertext...)
	out = append(out, b.Key...)
	return out
}

// ParseBlob splits a legacy blob: iv = raw[:16], key = raw[-32:],
// ciphertext = raw[16:-32]. Short input produces short fields rather
// than a panic.
func ParseBlob(raw []byte) Blob {
	return Blob{
		IV:         slice(raw, 0, BlockSize),
		Ciphertext: slice(raw, BlockSize, len(raw)-KeySize),
		Key:        slice(raw, len(raw)-KeySize, len(raw)),
	}
}

// ParseRevisedBlob splits a revised blob: iv = raw[:16], key = raw[32:],
// ciphertext = raw[16:32]. This matches Bytes only when the ciphertext
// is a single block; longer blobs yield a key of the wrong size.
func ParseRevisedBlob(raw []byte) Blob {
	return Blob{
		IV:         slice(raw, 0, BlockSize),
		Ciphertext: slice(raw, BlockSize, KeySize),
		Key:        slice(raw, KeySize, len(raw)),
	}
}

// Open decrypts the blob and strips the padding
func (b Blob) Open() ([]byte, error) {
	block, err := aes.NewCipher(b.Key)
	if err != nil {
		return nil, fmt.Errorf("failed to create cipher: %w", err)
	}
	if len(b.IV) != BlockSize {
		return nil, ErrInvalidIV
	}
	if len(b.Ciphertext)%BlockSize != 0 {
		return nil, ErrNotBlockAligned
	}
	if len(b.Ciphertext) == 0 {
		return nil, ErrEmptyCiphertext
	}

	data := append([]byte(nil), b.Ciphertext...)
	cipher.NewCBCDecrypter(block, b.IV).CryptBlocks(data, data)
	return Unpad(data), nil
}

// ClearBytes securely clears a byte slice
func ClearBytes(b []byte) {
	for i := range b {
		b[i] = 0
	}
}

func reverse(b []byte) []byte {
	out := make([]byte, len(b))
	for i, c := range b {
		out[len(b)-1-i] = c
	}
	return out
}

// slice mimics clamped slicing: bounds are pinned to [0, len(b)] and an
// inverted range is empty.
func slice(b []byte, from, to int) []byte {
	from = clamp(from, 0, len(b))
	to = clamp(to, 0, len(b))
	if to < from {
		return b[from:from]
	}
	return b[from:to]
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// ConstantTimeCompare performs a constant-time comparison of two byte slices
func ConstantTimeCompare(a, b []byte) bool {
	return subtle.ConstantTimeCompare(a, b) == 1
}

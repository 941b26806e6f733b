package core

import (
	"encoding/base64"

	"github.com/illarion/pswdfile/internal/crypto"
)

// Encoding turns raw blobs into text and back.
// *base64.Encoding satisfies it.
type Encoding interface {
	EncodeToString(src []byte) string
	DecodeString(s string) ([]byte, error)
}

// KeyStrategy picks the encryption key for an identity
type KeyStrategy interface {
	Key(id Identity) ([]byte, error)
}

// IdentityKey derives the key from the identity when a username is set and
// falls back to a random key otherwise.
type IdentityKey struct{}

func (IdentityKey) Key(id Identity) ([]byte, error) {
	if id.Username != "" {
		return crypto.DeriveKey(id.Username, id.Host), nil
	}
	return crypto.GenerateKey()
}

// RandomKey always draws a fresh random key
type RandomKey struct{}

func (RandomKey) Key(Identity) ([]byte, error) {
	return crypto.GenerateKey()
}

// SuppliedKey uses a caller-provided key regardless of identity
type SuppliedKey []byte

func (k SuppliedKey) Key(Identity) ([]byte, error) {
	return append([]byte(nil), k...), nil
}

// Variant bundles the policy differences between the two blob formats.
// The formats are not interchangeable.
type Variant struct {
	Name     string
	Encoding Encoding

	parse            func(raw []byte) crypto.Blob
	persistOnEncrypt bool // Encrypt writes the record itself
	lookupOnDecrypt  bool // Decrypt without a blob reads the record
	emptyIsMissing   bool // an empty password counts as missing
	acceptsKey       bool // Options.Key may be set
}

var (
	// Legacy uses standard base64 and persists inside Encrypt.
	Legacy = Variant{
		Name:             "legacy",
		Encoding:         base64.StdEncoding,
		parse:            crypto.ParseBlob,
		persistOnEncrypt: true,
		lookupOnDecrypt:  true,
	}

	// Revised uses URL-safe base64, accepts a supplied key and persists
	// only through SaveToFile. Its decoder reads the key from offset 32,
	// so only single-block ciphertexts decode.
	Revised = Variant{
		Name:           "revised",
		Encoding:       base64.URLEncoding,
		parse:          crypto.ParseRevisedBlob,
		emptyIsMissing: true,
		acceptsKey:     true,
	}
)

// GenerateKey returns a random key in the revised variant's text encoding
func GenerateKey() (string, error) {
	key, err := crypto.GenerateKey()
	if err != nil {
		return "", err
	}
	return Revised.Encoding.EncodeToString(key), nil
}

// Package crypto provides the password framing used by pswdfile.
//
// Encryption uses AES-256-CBC with:
//   - 32-byte key, either derived from the identity or random
//   - 16-byte random IV per encryption operation
//   - PKCS#7-style padding (always 1..16 bytes)
//
// Blob layout is IV || ciphertext || key. The key travels with the
// ciphertext, so the scheme only hides passwords from casual inspection.
//
// Two decoders exist:
//   - ParseBlob: legacy layout, key taken from the last 32 bytes
//   - ParseRevisedBlob: revised layout, key taken from offset 32 onwards
//
// Malformed blobs are not validated up front. Open returns whatever
// low-level error the cipher setup produces.
package crypto

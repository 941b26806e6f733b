package core

import (
	"fmt"

	"github.com/illarion/pswdfile/internal/crypto"
	"github.com/illarion/pswdfile/internal/logging"
	"github.com/illarion/pswdfile/internal/storage"
)

const DefaultFileName = ".pddatafile"

// Options configures a Manager
type Options struct {
	// Variant defaults to Legacy.
	Variant Variant

	// Dir is the data file directory. Persistence is disabled when empty.
	Dir string
	// FileName defaults to DefaultFileName.
	FileName string
	Mode     storage.Mode

	// Key is a URL-safe base64 key, revised variant only.
	Key string
	// Keys overrides key selection, e.g. RandomKey{}. Key wins over Keys.
	Keys KeyStrategy

	Logger logging.Logger
}

// Manager encrypts, stores and recovers passwords for one identity.
// It is not safe for concurrent use.
type Manager struct {
	Identity Identity
	Password []byte

	opts      Options
	keys      KeyStrategy
	encrypted string
	err       error
}

// New creates a new Manager
func New(opts Options) (*Manager, error) {
	if opts.Variant.Encoding == nil {
		opts.Variant = Legacy
	}
	if opts.FileName == "" {
		opts.FileName = DefaultFileName
	}

	keys := opts.Keys
	if keys == nil {
		keys = IdentityKey{}
	}
	if opts.Key != "" {
		if !opts.Variant.acceptsKey {
			return nil, ErrKeyNotSupported
		}
		key, err := opts.Variant.Encoding.DecodeString(opts.Key)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInvalidKey, err)
		}
		if len(key) != crypto.KeySize {
			return nil, fmt.Errorf("%w: got %d bytes, want %d", ErrInvalidKey, len(key), crypto.KeySize)
		}
		keys = SuppliedKey(key)
	}

	return &Manager{opts: opts, keys: keys}, nil
}

// Variant returns the blob format the manager uses
func (m *Manager) Variant() Variant {
	return m.opts.Variant
}

// Encrypted returns the encoded blob from the last Encrypt or record lookup
func (m *Manager) Encrypted() string {
	return m.encrypted
}

// IsError reports whether the last operation failed
func (m *Manager) IsError() bool {
	return m.err != nil
}

// ErrorMessage describes the last operation's failure, or "" if it succeeded
func (m *Manager) ErrorMessage() string {
	if m.err == nil {
		return ""
	}
	return "ERROR: " + m.err.Error()
}

// Err returns the last operation's error
func (m *Manager) Err() error {
	return m.err
}

// track records the outcome of a public operation
func (m *Manager) track(err *error) {
	m.err = *err
}

func (m *Manager) persistenceConfigured() bool {
	return m.opts.Dir != "" && m.Identity.Username != ""
}

// Encrypt frames and encodes the password. The legacy variant also stores
// the record when persistence is configured; if that fails the encoded
// blob is returned together with the store error.
func (m *Manager) Encrypt() (encoded string, err error) {
	defer m.track(&err)
	m.encrypted = ""

	if m.Password == nil || (m.opts.Variant.emptyIsMissing && len(m.Password) == 0) {
		return "", ErrMissingPassword
	}

	key, err := m.keys.Key(m.Identity)
	if err != nil {
		return "", err
	}
	defer crypto.ClearBytes(key)

	blob, err := crypto.Seal(m.Password, key)
	if err != nil {
		return "", err
	}
	m.encrypted = m.opts.Variant.Encoding.EncodeToString(blob.Bytes())
	m.opts.Logger.Debugf("encrypted password for %q (%s)", m.Identity.String(), m.opts.Variant.Name)

	if m.opts.Variant.persistOnEncrypt && m.persistenceConfigured() {
		if err := m.storeRecord(); err != nil {
			return m.encrypted, err
		}
	}
	return m.encrypted, nil
}

// SaveToFile stores the last encrypted password. It does nothing when no
// data file directory or username is configured.
func (m *Manager) SaveToFile() (err error) {
	defer m.track(&err)

	if !m.persistenceConfigured() {
		return nil
	}
	if m.encrypted == "" {
		return ErrMissingEncryptedInput
	}
	return m.storeRecord()
}

// Decrypt recovers the password stored for the identity. The revised
// variant never reads the data file here and needs DecryptBlob instead.
func (m *Manager) Decrypt() (plaintext []byte, err error) {
	defer m.track(&err)

	if !m.opts.Variant.lookupOnDecrypt {
		return nil, ErrMissingEncryptedInput
	}
	rec, err := m.retrieveRecord()
	if err != nil {
		return nil, err
	}
	return m.open(rec.Blob)
}

// DecryptBlob recovers the password from an encoded blob. The blob is not
// validated: decoding and cipher errors are returned unchanged.
func (m *Manager) DecryptBlob(encoded string) (plaintext []byte, err error) {
	defer m.track(&err)
	return m.open(encoded)
}

// GetRecord loads the stored record for the identity
func (m *Manager) GetRecord() (rec storage.Record, err error) {
	defer m.track(&err)
	return m.retrieveRecord()
}

// RemoveRecord deletes the stored record for the identity
func (m *Manager) RemoveRecord() (err error) {
	defer m.track(&err)

	if m.Identity.Username == "" {
		return ErrMissingRequiredField
	}
	key := m.Identity.RecordKey()
	err = m.withStore(func(db *storage.Storage) error {
		return db.Delete(key)
	})
	if err == nil {
		m.opts.Logger.Debugf("removed record %s", key)
	}
	return err
}

// GetAll returns every stored record. On failure the list is empty.
func (m *Manager) GetAll() (records []storage.Record, err error) {
	defer m.track(&err)

	err = m.withStore(func(db *storage.Storage) error {
		var err error
		records, err = db.List()
		return err
	})
	if err != nil {
		return []storage.Record{}, err
	}
	return records, nil
}

// Info describes the data file
func (m *Manager) Info() (info storage.Info, err error) {
	defer m.track(&err)

	err = m.withStore(func(db *storage.Storage) error {
		var err error
		info, err = db.Info()
		return err
	})
	return info, err
}

// Compact rewrites the data file to reclaim space left by removed records
func (m *Manager) Compact() (err error) {
	defer m.track(&err)

	return m.withStore(func(db *storage.Storage) error {
		return db.Compact()
	})
}

// withStore opens the data file for the duration of fn.
// A close failure is reported only if fn succeeded.
func (m *Manager) withStore(fn func(db *storage.Storage) error) (err error) {
	db, err := storage.Open(m.opts.Dir, m.opts.FileName, m.opts.Mode)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := db.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()

	return fn(db)
}

func (m *Manager) storeRecord() error {
	rec := storage.Record{
		Host:     m.Identity.Host,
		Username: m.Identity.Username,
		Blob:     m.encrypted,
	}
	key := m.Identity.RecordKey()

	err := m.withStore(func(db *storage.Storage) error {
		return db.Put(key, rec)
	})
	if err == nil {
		m.opts.Logger.Debugf("stored record %s", key)
	}
	return err
}

// retrieveRecord loads the record and adopts its identity and blob
func (m *Manager) retrieveRecord() (storage.Record, error) {
	if m.Identity.Username == "" {
		return storage.Record{}, ErrMissingUsername
	}

	var rec storage.Record
	key := m.Identity.RecordKey()
	err := m.withStore(func(db *storage.Storage) error {
		var err error
		rec, err = db.Get(key)
		return err
	})
	if err != nil {
		m.encrypted = ""
		return storage.Record{}, err
	}

	m.Identity = Identity{Username: rec.Username, Host: rec.Host}
	m.encrypted = rec.Blob
	return rec, nil
}

func (m *Manager) open(encoded string) ([]byte, error) {
	raw, err := m.opts.Variant.Encoding.DecodeString(encoded)
	if err != nil {
		return nil, err
	}
	plaintext, err := m.opts.Variant.parse(raw).Open()
	if err != nil {
		return nil, err
	}
	m.Password = plaintext
	return plaintext, nil
}

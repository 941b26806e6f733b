package storage

import (
	"errors"
	"fmt"
	"os"
	"time"

	bolt "go.etcd.io/bbolt"

	"github.com/illarion/pswdfile/internal/security"
)

const FilePerm = 0600 // File: owner rw only

// Bucket names
var (
	RecordsBucket = []byte("records") // Record key -> encoded record
	MetaBucket    = []byte("meta")    // Format version, timestamps
)

// Meta keys
var (
	MetaVersion  = []byte("version")
	MetaCreated  = []byte("created")
	MetaModified = []byte("modified")
)

var (
	ErrDirectoryNotFound = errors.New("directory not found")
	ErrFileNotFound      = errors.New("file not found")
	ErrStoreOpenFailure  = errors.New("cannot open data file")
	ErrStoreWriteFailure = errors.New("cannot write to data file")
	ErrStoreCloseFailure = errors.New("cannot close data file")
	ErrRecordNotFound    = errors.New("record not found")
)

// Mode controls how the data file is opened
type Mode int

const (
	ReadOnly        Mode = iota // File must exist, writes fail
	ReadWrite                   // File must exist
	CreateIfMissing             // File is created on first open
)

func (m Mode) String() string {
	switch m {
	case ReadOnly:
		return "readOnly"
	case ReadWrite:
		return "readWrite"
	case CreateIfMissing:
		return "createIfMissing"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

// ParseMode maps the short open flags onto a Mode. "w" behaves like "c".
func ParseMode(s string) (Mode, error) {
	switch s {
	case "r", "readOnly":
		return ReadOnly, nil
	case "rw", "readWrite":
		return ReadWrite, nil
	case "c", "w", "createIfMissing":
		return CreateIfMissing, nil
	default:
		return ReadOnly, fmt.Errorf("unknown open mode %q", s)
	}
}

// Info describes a data file
type Info struct {
	Path     string
	Version  string
	Created  time.Time
	Modified time.Time
	Records  int
}

// Storage provides BBolt-based record storage
type Storage struct {
	db   *bolt.DB
	mode Mode
}

// Open opens the data file name inside dir.
// Missing directories and, unless mode is CreateIfMissing, missing files
// are reported before BBolt is touched.
func Open(dir, name string, mode Mode) (*Storage, error) {
	root, err := security.OpenDataDir(dir)
	if err != nil {
		return nil, fmt.Errorf("%w: directory [%s] not found", ErrDirectoryNotFound, dir)
	}
	defer root.Close()

	path, err := root.Join(name)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrStoreOpenFailure, err)
	}
	if mode != CreateIfMissing {
		if _, err := root.Stat(name); err != nil {
			if os.IsNotExist(err) {
				return nil, fmt.Errorf("%w: file [%s] not found in directory %s", ErrFileNotFound, name, dir)
			}
			return nil, fmt.Errorf("%w: %w", ErrStoreOpenFailure, err)
		}
	}

	db, err := bolt.Open(path, FilePerm, &bolt.Options{ReadOnly: mode == ReadOnly})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrStoreOpenFailure, err)
	}

	s := &Storage{db: db, mode: mode}
	if mode != ReadOnly {
		if err := s.initialize(); err != nil {
			db.Close()
			return nil, fmt.Errorf("%w: %w", ErrStoreOpenFailure, err)
		}
	}
	return s, nil
}

// Close closes the database
func (s *Storage) Close() error {
	if err := s.db.Close(); err != nil {
		return fmt.Errorf("%w: %w", ErrStoreCloseFailure, err)
	}
	return nil
}

// Path returns the data file path
func (s *Storage) Path() string {
	return s.db.Path()
}

// Mode returns the mode the file was opened with
func (s *Storage) Mode() Mode {
	return s.mode
}

// initialize creates the bucket structure if it does not exist yet
func (s *Storage) initialize() error {
	return s.db.Update(func(tx *bolt.Tx) error {
		for _, bucket := range [][]byte{RecordsBucket, MetaBucket} {
			if _, err := tx.CreateBucketIfNotExists(bucket); err != nil {
				return fmt.Errorf("failed to create bucket %s: %w", bucket, err)
			}
		}

		meta := tx.Bucket(MetaBucket)
		if meta.Get(MetaVersion) != nil {
			return nil
		}
		if err := meta.Put(MetaVersion, []byte("1")); err != nil {
			return err
		}

		created, _ := time.Now().MarshalBinary()
		if err := meta.Put(MetaCreated, created); err != nil {
			return err
		}
		return meta.Put(MetaModified, created)
	})
}

// touch updates the last modified timestamp inside a write transaction
func touch(tx *bolt.Tx) error {
	meta, err := tx.CreateBucketIfNotExists(MetaBucket)
	if err != nil {
		return err
	}
	modified, _ := time.Now().MarshalBinary()
	return meta.Put(MetaModified, modified)
}

// Get returns the record stored under key
func (s *Storage) Get(key string) (Record, error) {
	var value []byte
	err := s.db.View(func(tx *bolt.Tx) error {
		records := tx.Bucket(RecordsBucket)
		if records == nil {
			return ErrRecordNotFound
		}
		value = records.Get([]byte(key))
		if value == nil {
			return ErrRecordNotFound
		}
		// Make a copy since the slice is only valid during the transaction
		value = append([]byte(nil), value...)
		return nil
	})
	if err != nil {
		return Record{}, err
	}
	return decodeRecord(value)
}

// Has reports whether a record exists under key
func (s *Storage) Has(key string) (bool, error) {
	_, err := s.Get(key)
	if errors.Is(err, ErrRecordNotFound) {
		return false, nil
	}
	return err == nil, err
}

// Put stores rec under key, replacing any existing record
func (s *Storage) Put(key string, rec Record) error {
	data, err := encodeRecord(rec)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrStoreWriteFailure, err)
	}

	err = s.db.Update(func(tx *bolt.Tx) error {
		records, err := tx.CreateBucketIfNotExists(RecordsBucket)
		if err != nil {
			return err
		}
		if err := records.Put([]byte(key), data); err != nil {
			return err
		}
		return touch(tx)
	})
	if err != nil {
		return fmt.Errorf("%w: %w", ErrStoreWriteFailure, err)
	}
	return nil
}

// Delete removes the record stored under key
func (s *Storage) Delete(key string) error {
	exists, err := s.Has(key)
	if err != nil {
		return err
	}
	if !exists {
		return ErrRecordNotFound
	}

	err = s.db.Update(func(tx *bolt.Tx) error {
		if err := tx.Bucket(RecordsBucket).Delete([]byte(key)); err != nil {
			return err
		}
		return touch(tx)
	})
	if err != nil {
		return fmt.Errorf("%w: %w", ErrStoreWriteFailure, err)
	}
	return nil
}

// List returns every record in key order
func (s *Storage) List() ([]Record, error) {
	records := []Record{}
	err := s.db.View(func(tx *bolt.Tx) error {
		bucket := tx.Bucket(RecordsBucket)
		if bucket == nil {
			return nil
		}
		return bucket.ForEach(func(k, v []byte) error {
			rec, err := decodeRecord(v)
			if err != nil {
				return fmt.Errorf("record %s: %w", k, err)
			}
			records = append(records, rec)
			return nil
		})
	})
	if err != nil {
		return []Record{}, err
	}
	return records, nil
}

// Count returns the number of stored records
func (s *Storage) Count() (int, error) {
	var n int
	err := s.db.View(func(tx *bolt.Tx) error {
		if bucket := tx.Bucket(RecordsBucket); bucket != nil {
			n = bucket.Stats().KeyN
		}
		return nil
	})
	return n, err
}

// Info returns the data file's metadata and record count
func (s *Storage) Info() (Info, error) {
	info := Info{Path: s.db.Path()}
	err := s.db.View(func(tx *bolt.Tx) error {
		if meta := tx.Bucket(MetaBucket); meta != nil {
			info.Version = string(meta.Get(MetaVersion))
			if data := meta.Get(MetaCreated); data != nil {
				if err := info.Created.UnmarshalBinary(data); err != nil {
					return err
				}
			}
			if data := meta.Get(MetaModified); data != nil {
				if err := info.Modified.UnmarshalBinary(data); err != nil {
					return err
				}
			}
		}
		if records := tx.Bucket(RecordsBucket); records != nil {
			info.Records = records.Stats().KeyN
		}
		return nil
	})
	return info, err
}

// Compact creates a compacted copy of the database, removing unused space.
// This is useful after deleting records to reclaim disk space.
func (s *Storage) Compact() error {
	if s.mode == ReadOnly {
		return fmt.Errorf("%w: %w", ErrStoreWriteFailure, bolt.ErrDatabaseReadOnly)
	}

	srcPath := s.db.Path()
	tmpPath := srcPath + ".compact"

	// Create new database
	dst, err := bolt.Open(tmpPath, FilePerm, nil)
	if err != nil {
		return fmt.Errorf("failed to create compact database: %w", err)
	}

	// Copy all buckets
	err = s.db.View(func(srcTx *bolt.Tx) error {
		return dst.Update(func(dstTx *bolt.Tx) error {
			return srcTx.ForEach(func(name []byte, srcBucket *bolt.Bucket) error {
				dstBucket, err := dstTx.CreateBucketIfNotExists(name)
				if err != nil {
					return err
				}
				return srcBucket.ForEach(func(k, v []byte) error {
					return dstBucket.Put(k, v)
				})
			})
		})
	})

	if err != nil {
		dst.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("failed to copy data: %w", err)
	}

	if err := dst.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to close compact database: %w", err)
	}

	if err := s.db.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to close source database: %w", err)
	}

	// Atomic replace
	backupPath := srcPath + ".backup"
	if err := os.Rename(srcPath, backupPath); err != nil {
		return fmt.Errorf("failed to backup original: %w", err)
	}
	if err := os.Rename(tmpPath, srcPath); err != nil {
		os.Rename(backupPath, srcPath) // rollback
		return fmt.Errorf("failed to replace database: %w", err)
	}
	os.Remove(backupPath)

	// Reopen database
	s.db, err = bolt.Open(srcPath, FilePerm, nil)
	if err != nil {
		return fmt.Errorf("failed to reopen database: %w", err)
	}

	return nil
}

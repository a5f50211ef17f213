// Package boltstore implements an atri.Store persisted in a bbolt database,
// so that variables survive across processes.
package boltstore

import (
	"encoding/binary"
	"errors"
	"fmt"
	"math"
	"time"

	bolt "go.etcd.io/bbolt"

	"github.com/zephyrtronium/atri"
)

// DefaultBucket is the bucket that holds variables unless Open is given
// another.
const DefaultBucket = "vars"

// Store is an atri.Store backed by a bbolt bucket. Each method runs in its
// own transaction. A Store is safe for concurrent use, but interleaving
// evaluations against one store still gives undefined results.
type Store struct {
	db     *bolt.DB
	bucket []byte
}

// Open opens or creates the database at path and ensures the bucket exists.
// If bucket is empty, DefaultBucket is used.
func Open(path, bucket string) (*Store, error) {
	if bucket == "" {
		bucket = DefaultBucket
	}
	db, err := bolt.Open(path, 0o600, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("boltstore: open %s: %w", path, err)
	}
	s := &Store{db: db, bucket: []byte(bucket)}
	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(s.bucket)
		return err
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("boltstore: create bucket %q: %w", bucket, err)
	}
	return s, nil
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Lookup reads the value of name and reports whether it is declared. A
// value that cannot be decoded gives an error wrapping ErrCorrupt.
func (s *Store) Lookup(name string) (atri.Value, bool, error) {
	var (
		v  atri.Value
		ok bool
	)
	err := s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket(s.bucket).Get([]byte(name))
		if b == nil {
			return nil
		}
		ok = true
		var err error
		v, err = decode(b)
		return err
	})
	if err != nil {
		return atri.Undefined, false, fmt.Errorf("boltstore: lookup %q: %w", name, err)
	}
	return v, ok, nil
}

// Declare stores name with the value Undefined.
func (s *Store) Declare(name string) error {
	return s.put(name, atri.Undefined)
}

// Set stores v under name.
func (s *Store) Set(name string, v atri.Value) error {
	return s.put(name, v)
}

func (s *Store) put(name string, v atri.Value) error {
	err := s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(s.bucket).Put([]byte(name), encode(v))
	})
	if err != nil {
		return fmt.Errorf("boltstore: set %q: %w", name, err)
	}
	return nil
}

// Names returns the declared names. bbolt keeps keys in byte order, which is
// the sorted order for strings.
func (s *Store) Names() ([]string, error) {
	var names []string
	err := s.db.View(func(tx *bolt.Tx) error {
		return tx.Bucket(s.bucket).ForEach(func(k, _ []byte) error {
			names = append(names, string(k))
			return nil
		})
	})
	if err != nil {
		return nil, fmt.Errorf("boltstore: list names: %w", err)
	}
	return names, nil
}

// Clear removes every variable by recreating the bucket.
func (s *Store) Clear() error {
	err := s.db.Update(func(tx *bolt.Tx) error {
		if err := tx.DeleteBucket(s.bucket); err != nil {
			return err
		}
		_, err := tx.CreateBucket(s.bucket)
		return err
	})
	if err != nil {
		return fmt.Errorf("boltstore: clear: %w", err)
	}
	return nil
}

// Stored values are a kind byte followed by the IEEE 754 bits of a number in
// big-endian order, or by one byte for a boolean.
const (
	tagUndefined byte = iota
	tagNumber
	tagBool
)

// ErrCorrupt indicates a stored value that cannot be decoded.
var ErrCorrupt = errors.New("corrupt value")

func encode(v atri.Value) []byte {
	switch v.Kind() {
	case atri.ValueNumber:
		b := make([]byte, 9)
		b[0] = tagNumber
		binary.BigEndian.PutUint64(b[1:], math.Float64bits(v.Num()))
		return b
	case atri.ValueBool:
		b := []byte{tagBool, 0}
		if v.Bool() {
			b[1] = 1
		}
		return b
	default:
		return []byte{tagUndefined}
	}
}

func decode(b []byte) (atri.Value, error) {
	switch {
	case len(b) == 1 && b[0] == tagUndefined:
		return atri.Undefined, nil
	case len(b) == 9 && b[0] == tagNumber:
		return atri.Number(math.Float64frombits(binary.BigEndian.Uint64(b[1:]))), nil
	case len(b) == 2 && b[0] == tagBool:
		return atri.Bool(b[1] != 0), nil
	default:
		return atri.Undefined, fmt.Errorf("%w: % x", ErrCorrupt, b)
	}
}

var _ atri.Store = (*Store)(nil)

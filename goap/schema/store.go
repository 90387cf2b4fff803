// Package schema persists a predicate library across process runs. A
// process-wide predicate registry invites test pollution and
// cross-planner interference, so predicates live in a scoped "world
// schema" object instead; Store is that object's durable form, backed
// by BadgerDB.
package schema

import (
	"crypto/sha1"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/dgraph-io/badger/v4"

	"github.com/wbrown/goap-planner/goap"
	"github.com/wbrown/goap-planner/goap/codec"
)

// Store is a BadgerDB-backed registry of goap.PredicateSpec values,
// keyed by the L85-encoded SHA1 of each predicate's full name
// (base_name + "_" + usage), the same construction goap.Clause.Name
// uses for a clause's derived name.
type Store struct {
	db *badger.DB
}

// Open opens (creating if absent) a Store at path.
func Open(path string) (*Store, error) {
	opts := badger.DefaultOptions(path)
	opts.Logger = nil

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("schema: opening store: %w", err)
	}
	return &Store{db: db}, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

func fullNameKey(baseName string, usage goap.Usage) []byte {
	digest := sha1.Sum([]byte(baseName + "_" + usage.String()))
	return []byte(codec.EncodeFixed20(digest))
}

// Put persists spec, rejecting a collision on the same (base_name,
// usage) pair exactly as goap.Registry.BuildPredicate does in memory.
func (s *Store) Put(spec goap.PredicateSpec) error {
	key := fullNameKey(spec.BaseName, spec.Usage)

	return s.db.Update(func(txn *badger.Txn) error {
		if _, err := txn.Get(key); err == nil {
			return fmt.Errorf("%w: %s_%s", goap.ErrDuplicatePredicate, spec.BaseName, spec.Usage)
		} else if !errors.Is(err, badger.ErrKeyNotFound) {
			return fmt.Errorf("schema: checking for existing predicate: %w", err)
		}

		value, err := json.Marshal(spec)
		if err != nil {
			return fmt.Errorf("schema: encoding predicate %s: %w", spec.BaseName, err)
		}
		return txn.Set(key, value)
	})
}

// Get looks up a predicate spec by its base name and usage. ok is false
// if nothing is stored under that pair.
func (s *Store) Get(baseName string, usage goap.Usage) (spec goap.PredicateSpec, ok bool, err error) {
	key := fullNameKey(baseName, usage)

	err = s.db.View(func(txn *badger.Txn) error {
		item, getErr := txn.Get(key)
		if errors.Is(getErr, badger.ErrKeyNotFound) {
			return nil
		}
		if getErr != nil {
			return getErr
		}
		ok = true
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, &spec)
		})
	})
	if err != nil {
		return goap.PredicateSpec{}, false, fmt.Errorf("schema: get %s_%s: %w", baseName, usage, err)
	}
	return spec, ok, nil
}

// All returns every stored predicate spec, sorted by the L85 key (so,
// by extension, lexicographically stable across runs — keys are
// derived from content, not insertion order).
func (s *Store) All() ([]goap.PredicateSpec, error) {
	var specs []goap.PredicateSpec

	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Rewind(); it.Valid(); it.Next() {
			item := it.Item()
			err := item.Value(func(val []byte) error {
				var spec goap.PredicateSpec
				if err := json.Unmarshal(val, &spec); err != nil {
					return err
				}
				specs = append(specs, spec)
				return nil
			})
			if err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("schema: scanning store: %w", err)
	}
	return specs, nil
}

// Registry materializes every spec in the store into a fresh
// goap.Registry, ready for goap.NewAction/goap.WorldOf callers. Stored
// predicates carry no Evaluator — they are ungrounded symbols usable
// only inside actions, matching what
// goap/planfile.Document.BuildPredicates does for file-sourced
// predicates.
func (s *Store) Registry() (*goap.Registry, error) {
	specs, err := s.All()
	if err != nil {
		return nil, err
	}

	r := goap.NewRegistry()
	for _, spec := range specs {
		if _, err := r.BuildPredicate(spec, nil); err != nil {
			return nil, fmt.Errorf("schema: rebuilding registry: %w", err)
		}
	}
	return r, nil
}

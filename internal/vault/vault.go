// Package vault is a disk-backed store for auth descriptors, keyed by
// service name. Descriptors come back exactly as stored.
package vault

import (
	"encoding/json"
	"fmt"
	"time"

	bolt "go.etcd.io/bbolt"

	"github.com/PentesterFlow/APIHarvest/internal/auth"
	pe "github.com/PentesterFlow/APIHarvest/internal/errors"
)

var bucketDescriptors = []byte("descriptors")

// ErrNotFound is returned when no descriptor exists for a service.
var ErrNotFound = pe.New(pe.Storage, "get", "descriptor not found", nil)

// Vault stores auth descriptors in a BoltDB file.
type Vault struct {
	db   *bolt.DB
	path string
}

// Open opens (or creates) a vault at the given path.
func Open(path string) (*Vault, error) {
	db, err := bolt.Open(path, 0600, &bolt.Options{
		Timeout: 5 * time.Second,
	})
	if err != nil {
		return nil, pe.NewStorageError("open", err)
	}

	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(bucketDescriptors)
		return err
	})
	if err != nil {
		db.Close()
		return nil, pe.NewStorageError("open", err)
	}

	return &Vault{db: db, path: path}, nil
}

// Put stores a descriptor under its service name.
func (v *Vault) Put(d *auth.Descriptor) error {
	if d.Service == "" {
		return pe.New(pe.Storage, "put", "descriptor has no service name", nil)
	}

	data, err := json.Marshal(d)
	if err != nil {
		return pe.NewStorageError("put", err)
	}

	err = v.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketDescriptors)
		if b == nil {
			return fmt.Errorf("descriptors bucket not found")
		}
		return b.Put([]byte(d.Service), data)
	})
	if err != nil {
		return pe.NewStorageError("put", err)
	}
	return nil
}

// Get retrieves the descriptor for a service.
func (v *Vault) Get(service string) (*auth.Descriptor, error) {
	var data []byte
	err := v.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketDescriptors)
		if b == nil {
			return nil
		}
		if raw := b.Get([]byte(service)); raw != nil {
			data = make([]byte, len(raw))
			copy(data, raw)
		}
		return nil
	})
	if err != nil {
		return nil, pe.NewStorageError("get", err)
	}
	if data == nil {
		return nil, ErrNotFound
	}

	d := &auth.Descriptor{}
	if err := json.Unmarshal(data, d); err != nil {
		return nil, pe.NewStorageError("get", err)
	}
	return d, nil
}

// List returns the stored service names in key order.
func (v *Vault) List() ([]string, error) {
	var services []string
	err := v.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketDescriptors)
		if b == nil {
			return nil
		}
		return b.ForEach(func(k, _ []byte) error {
			services = append(services, string(k))
			return nil
		})
	})
	if err != nil {
		return nil, pe.NewStorageError("list", err)
	}
	return services, nil
}

// Delete removes the descriptor for a service. Deleting a missing service
// is not an error.
func (v *Vault) Delete(service string) error {
	err := v.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketDescriptors)
		if b == nil {
			return nil
		}
		return b.Delete([]byte(service))
	})
	if err != nil {
		return pe.NewStorageError("delete", err)
	}
	return nil
}

// Close closes the underlying database.
func (v *Vault) Close() error {
	return v.db.Close()
}

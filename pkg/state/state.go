/*
 Licensed under the Apache License, Version 2.0 (the "License");
 you may not use this file except in compliance with the License.
 You may obtain a copy of the License at

     https://www.apache.org/licenses/LICENSE-2.0

 Unless required by applicable law or agreed to in writing, software
 distributed under the License is distributed on an "AS IS" BASIS,
 WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 See the License for the specific language governing permissions and
 limitations under the License.
*/

// Package state keeps compiled address tables in a bbolt database, where the
// HDL generator picks them up.
package state

import (
	"encoding/binary"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"go.etcd.io/bbolt"

	"jinr.ru/greenlab/go-spi/pkg/address"
	"jinr.ru/greenlab/go-spi/pkg/log"
)

var namespaces = []string{address.NamespaceConfig, address.NamespacePointer, address.NamespaceMemory}

// Entry is a stored table row. For config registers A is the start address
// and B the number of slots, for pointers A is the address and B is 1, for
// memories A is the bus code and B the max address.
type Entry struct {
	Namespace string `json:"namespace"`
	Name      string `json:"name"`
	A         uint64 `json:"a"`
	B         uint64 `json:"b"`
}

type TableState struct {
	DB *bbolt.DB
}

func NewTableState(path string) (*TableState, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, err
	}
	db, err := bbolt.Open(path, 0600, nil)
	if err != nil {
		return nil, err
	}
	return &TableState{
		DB: db,
	}, nil
}

func uint64ToByte(a, b uint64) []byte {
	buf := make([]byte, 16)
	binary.BigEndian.PutUint64(buf[0:8], a)
	binary.BigEndian.PutUint64(buf[8:16], b)
	return buf
}

func bucketName(namespace, schemaName string) string {
	return fmt.Sprintf("%s_%s", namespace, schemaName)
}

// Close ...
func (s *TableState) Close() {
	s.DB.Close()
}

// Save replaces the stored tables of a schema
func (s *TableState) Save(schemaName string, tables *address.Tables) error {
	log.Debug("Saving address tables: %s", schemaName)
	return s.DB.Update(func(tx *bbolt.Tx) error {
		buckets := make(map[string]*bbolt.Bucket)
		for _, ns := range namespaces {
			name := []byte(bucketName(ns, schemaName))
			if tx.Bucket(name) != nil {
				if err := tx.DeleteBucket(name); err != nil {
					return err
				}
			}
			b, err := tx.CreateBucket(name)
			if err != nil {
				return err
			}
			buckets[ns] = b
		}
		for _, p := range tables.Config.Placements() {
			if err := buckets[address.NamespaceConfig].Put([]byte(p.Name), uint64ToByte(uint64(p.Start), uint64(p.Slots()))); err != nil {
				return err
			}
		}
		for _, name := range tables.Pointers.Names() {
			addr, err := tables.Pointers.Lookup(name)
			if err != nil {
				return err
			}
			if err := buckets[address.NamespacePointer].Put([]byte(name), uint64ToByte(uint64(addr), 1)); err != nil {
				return err
			}
		}
		for _, r := range tables.Memories.Regions() {
			if err := buckets[address.NamespaceMemory].Put([]byte(r.Name), uint64ToByte(uint64(r.BusCode()), uint64(r.MaxAddress))); err != nil {
				return err
			}
		}
		return nil
	})
}

// Get returns a single stored row
func (s *TableState) Get(schemaName, namespace, name string) (*Entry, error) {
	var entry *Entry
	if err := s.DB.View(func(tx *bbolt.Tx) error {
		b := tx.Bucket([]byte(bucketName(namespace, schemaName)))
		if b == nil {
			return ErrNotFound{What: "bucket " + bucketName(namespace, schemaName)}
		}
		value := b.Get([]byte(name))
		if value == nil {
			return ErrNotFound{What: "key " + name}
		}
		entry = decodeEntry(namespace, name, value)
		return nil
	}); err != nil {
		return nil, err
	}
	return entry, nil
}

// Entries returns all rows of a schema ordered by namespace, then by A
func (s *TableState) Entries(schemaName string) ([]*Entry, error) {
	log.Debug("Getting all address tables: %s", schemaName)
	var entries []*Entry
	if err := s.DB.View(func(tx *bbolt.Tx) error {
		found := false
		for _, ns := range namespaces {
			b := tx.Bucket([]byte(bucketName(ns, schemaName)))
			if b == nil {
				continue
			}
			found = true
			var rows []*Entry
			if err := b.ForEach(func(k, v []byte) error {
				rows = append(rows, decodeEntry(ns, string(k), v))
				return nil
			}); err != nil {
				return err
			}
			sort.SliceStable(rows, func(i, j int) bool { return rows[i].A < rows[j].A })
			entries = append(entries, rows...)
		}
		if !found {
			return ErrNotFound{What: "schema " + schemaName}
		}
		return nil
	}); err != nil {
		return nil, err
	}
	return entries, nil
}

func decodeEntry(namespace, name string, value []byte) *Entry {
	return &Entry{
		Namespace: namespace,
		Name:      name,
		A:         binary.BigEndian.Uint64(value[0:8]),
		B:         binary.BigEndian.Uint64(value[8:16]),
	}
}

////////////////////////////////////////////////////////////////////////////////
// Copyright © 2026 xx foundation                                             //
//                                                                            //
// Use of this source code is governed by a license that can be found in the  //
// LICENSE file.                                                              //
////////////////////////////////////////////////////////////////////////////////

package portable

import (
	"sort"

	"github.com/pkg/errors"
)

// Memstore is a memory based map that implements GenericKeyValue. It is not
// safe for concurrent use.
type Memstore map[string][]byte

// Get returns a copy of the value
func (m Memstore) Get(key string) ([]byte, error) {
	data, ok := m[key]
	if !ok {
		return nil, errors.New(objectNotFoundErr)
	}
	return append([]byte{}, data...), nil
}

// Set stores a copy of the value
func (m Memstore) Set(key string, value []byte) error {
	m[key] = append([]byte{}, value...)
	return nil
}

// Delete removes the key
func (m Memstore) Delete(key string) error {
	delete(m, key)
	return nil
}

// Keys returns all keys, sorted
func (m Memstore) Keys() ([]string, error) {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys, nil
}

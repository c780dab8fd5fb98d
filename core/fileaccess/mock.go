// Licensed to NASA JPL under one or more contributor
// license agreements. See the NOTICE file distributed with
// this work for additional information regarding copyright
// ownership. NASA JPL licenses this file to you under
// the Apache License, Version 2.0 (the "License"); you may
// not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing,
// software distributed under the License is distributed on an
// "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY
// KIND, either express or implied.  See the License for the
// specific language governing permissions and limitations
// under the License.

package fileaccess

import (
	"encoding/json"
	"errors"
	"path"
	"sort"
	"strings"
)

var errMockNotFound = errors.New("object not found")

// MemoryFileAccess - in-memory file access implementation for unit tests.
// Keys are bucket+"/"+path.
type MemoryFileAccess struct {
	Files map[string][]byte
}

func MakeMemoryFileAccess() *MemoryFileAccess {
	return &MemoryFileAccess{Files: map[string][]byte{}}
}

func (m *MemoryFileAccess) ListObjects(bucket string, prefix string) ([]string, error) {
	result := []string{}
	fullPrefix := path.Join(bucket, prefix)
	for k := range m.Files {
		if strings.HasPrefix(k, fullPrefix) {
			result = append(result, k[len(bucket)+1:])
		}
	}
	sort.Strings(result)
	return result, nil
}

func (m *MemoryFileAccess) ObjectExists(bucket string, filePath string) (bool, error) {
	_, ok := m.Files[path.Join(bucket, filePath)]
	return ok, nil
}

func (m *MemoryFileAccess) ReadObject(bucket string, filePath string) ([]byte, error) {
	data, ok := m.Files[path.Join(bucket, filePath)]
	if !ok {
		return nil, errMockNotFound
	}
	return data, nil
}

func (m *MemoryFileAccess) WriteObject(bucket string, filePath string, data []byte) error {
	m.Files[path.Join(bucket, filePath)] = data
	return nil
}

func (m *MemoryFileAccess) ReadJSON(bucket string, filePath string, itemsPtr interface{}, emptyIfNotFound bool) error {
	data, err := m.ReadObject(bucket, filePath)
	if err != nil {
		if emptyIfNotFound && m.IsNotFoundError(err) {
			return nil
		}
		return err
	}
	return json.Unmarshal(data, itemsPtr)
}

func (m *MemoryFileAccess) WriteJSON(bucket string, filePath string, itemsPtr interface{}) error {
	data, err := json.MarshalIndent(itemsPtr, "", prettyPrintIndent)
	if err != nil {
		return err
	}
	return m.WriteObject(bucket, filePath, data)
}

func (m *MemoryFileAccess) DeleteObject(bucket string, filePath string) error {
	key := path.Join(bucket, filePath)
	if _, ok := m.Files[key]; !ok {
		return errMockNotFound
	}
	delete(m.Files, key)
	return nil
}

func (m *MemoryFileAccess) IsNotFoundError(err error) bool {
	return errors.Is(err, errMockNotFound)
}

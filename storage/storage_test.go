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

package storage

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lipidatlas/core/core/logger"
	"github.com/lipidatlas/core/core/timestamper"
)

type testBlob struct {
	Name   string    `json:"name"`
	Values []float64 `json:"values"`
}

func openTestStore(t *testing.T) *Store {
	ts := &timestamper.MockTimeNowStamper{QueuedTimeStamps: []int64{1700000000, 1700000100, 1700000200}}
	store, err := Open(filepath.Join(t.TempDir(), "precomputed.db"), ts, &logger.NullLogger{})
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func TestStoreDumpLoad(t *testing.T) {
	store := openTestStore(t)

	saved := testBlob{Name: "borders", Values: []float64{1, 2.5, -0.01}}
	require.NoError(t, store.Dump("slice_1/borders", &saved))

	held, err := store.Check("slice_1/borders")
	require.NoError(t, err)
	assert.True(t, held)

	loaded := testBlob{}
	require.NoError(t, store.Load("slice_1/borders", &loaded))
	assert.Equal(t, saved, loaded)

	// Overwrite replaces
	saved.Values = []float64{9}
	require.NoError(t, store.Dump("slice_1/borders", &saved))
	require.NoError(t, store.Load("slice_1/borders", &loaded))
	assert.Equal(t, []float64{9}, loaded.Values)

	// The overwrite also refreshed the update stamp
	stamp, err := store.LastUpdated("slice_1/borders")
	require.NoError(t, err)
	assert.Equal(t, int64(1700000100), stamp)
}

func TestStoreLoadMissing(t *testing.T) {
	store := openTestStore(t)

	held, err := store.Check("never-stored")
	require.NoError(t, err)
	assert.False(t, held)

	assert.Error(t, store.Load("never-stored", &testBlob{}))
}

func TestStoreGetOrCompute(t *testing.T) {
	store := openTestStore(t)

	computes := 0
	compute := func() (interface{}, error) {
		computes++
		return &testBlob{Name: "interpolated"}, nil
	}

	loaded := testBlob{}
	require.NoError(t, store.GetOrCompute("volume", &loaded, compute))
	assert.Equal(t, "interpolated", loaded.Name)
	assert.Equal(t, 1, computes)

	// Second call is served from the store
	require.NoError(t, store.GetOrCompute("volume", &loaded, compute))
	assert.Equal(t, 1, computes)
}

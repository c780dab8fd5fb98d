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

package slicecache

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lipidatlas/core/core/logger"
	"github.com/lipidatlas/core/dataset"
)

func makeTestCache(capacity int) (*SliceCache, *int) {
	loads := 0
	loader := func(sliceIndex int) (*dataset.SliceData, error) {
		if sliceIndex > 100 {
			return nil, fmt.Errorf("slice %v has no dataset", sliceIndex)
		}
		loads++
		return &dataset.SliceData{Index: sliceIndex}, nil
	}
	return MakeSliceCache(capacity, loader, &logger.NullLogger{}), &loads
}

func TestSliceCacheEvictsOldestFirst(t *testing.T) {
	cache, _ := makeTestCache(3)

	for i := 1; i <= 4; i++ {
		cache.Add(i, &dataset.SliceData{Index: i})
	}

	// Slice 1 went in first, so it alone is gone
	assert.Equal(t, []int{2, 3, 4}, cache.HeldSlices())
	assert.False(t, cache.Held(1))
}

func TestSliceCacheGetLoadsOnMiss(t *testing.T) {
	cache, loads := makeTestCache(3)

	for i := 1; i <= 4; i++ {
		cache.Add(i, &dataset.SliceData{Index: i})
	}

	// Evicted slice comes back through the loader
	data, err := cache.Get(1, true)
	require.NoError(t, err)
	assert.Equal(t, 1, data.Index)
	assert.Equal(t, 1, *loads)

	// Inserting it evicted slice 2, the oldest survivor
	assert.Equal(t, []int{1, 3, 4}, cache.HeldSlices())

	// Now it's a memory hit, the loader stays untouched
	_, err = cache.Get(1, true)
	require.NoError(t, err)
	assert.Equal(t, 1, *loads)
}

func TestSliceCacheGetWithoutStore(t *testing.T) {
	cache, loads := makeTestCache(3)

	data, err := cache.Get(7, false)
	require.NoError(t, err)
	assert.Equal(t, 7, data.Index)
	assert.Equal(t, 1, *loads)
	assert.False(t, cache.Held(7))
}

func TestSliceCacheLoaderErrors(t *testing.T) {
	cache, _ := makeTestCache(3)

	_, err := cache.Get(999, true)
	assert.ErrorContains(t, err, "has no dataset")
	assert.Empty(t, cache.HeldSlices())
}

func TestSliceCacheReAddKeepsOrder(t *testing.T) {
	cache, _ := makeTestCache(3)

	for i := 1; i <= 3; i++ {
		cache.Add(i, &dataset.SliceData{Index: i})
	}
	cache.Add(1, &dataset.SliceData{Index: 1})
	cache.Add(4, &dataset.SliceData{Index: 4})

	// Re-adding slice 1 didn't move it to the back, so it's still evicted
	// first
	assert.Equal(t, []int{2, 3, 4}, cache.HeldSlices())
}

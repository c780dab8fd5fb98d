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

// Package slicecache keeps a bounded number of parsed slice datasets in
// memory, falling back to disk loads through dataset on a miss. Eviction is
// strict FIFO on insertion order.
package slicecache

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"

	"github.com/lipidatlas/core/core/logger"
	"github.com/lipidatlas/core/dataset"
)

// DefaultCapacity - how many slice datasets are held in memory unless
// configured otherwise
const DefaultCapacity = 3

var (
	cacheHits = promauto.NewCounter(prometheus.CounterOpts{
		Name: "slicecache_hits_total",
		Help: "Number of slice requests served from memory.",
	})
	cacheMisses = promauto.NewCounter(prometheus.CounterOpts{
		Name: "slicecache_misses_total",
		Help: "Number of slice requests not found in memory.",
	})
	cacheEvictions = promauto.NewCounter(prometheus.CounterOpts{
		Name: "slicecache_evictions_total",
		Help: "Number of slice datasets evicted to stay within capacity.",
	})
	cacheLoads = promauto.NewCounter(prometheus.CounterOpts{
		Name: "slicecache_disk_loads_total",
		Help: "Number of slice datasets loaded from disk after a miss.",
	})
)

// Loader - fetches a slice dataset that isn't in memory, normally a closure
// around dataset.Load
type Loader func(sliceIndex int) (*dataset.SliceData, error)

// SliceCache - mutex-guarded bounded cache of slice datasets. All access
// goes through the mutex, including reads, so concurrent workers can share
// one cache.
type SliceCache struct {
	mu       sync.Mutex
	capacity int
	entries  map[int]*dataset.SliceData
	order    []int
	loader   Loader
	log      logger.ILogger
}

// MakeSliceCache - capacity <= 0 selects DefaultCapacity. The loader may be
// nil if Get is only ever called with allowLoad=false.
func MakeSliceCache(capacity int, loader Loader, log logger.ILogger) *SliceCache {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &SliceCache{
		capacity: capacity,
		entries:  map[int]*dataset.SliceData{},
		order:    []int{},
		loader:   loader,
		log:      log,
	}
}

// Add - inserts a slice dataset, evicting the oldest entries if the cache is
// over capacity. Re-adding a held slice replaces the data but keeps its
// position in the eviction order.
func (c *SliceCache) Add(sliceIndex int, data *dataset.SliceData) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.addLocked(sliceIndex, data)
}

func (c *SliceCache) addLocked(sliceIndex int, data *dataset.SliceData) {
	if _, held := c.entries[sliceIndex]; !held {
		for len(c.order) >= c.capacity {
			c.evictOldestLocked()
		}
		c.order = append(c.order, sliceIndex)
	}
	c.entries[sliceIndex] = data
}

func (c *SliceCache) evictOldestLocked() {
	oldest := c.order[0]
	c.order = c.order[1:]
	delete(c.entries, oldest)
	cacheEvictions.Inc()
	c.log.Debugf("Evicted slice %v from cache", oldest)
}

// Get - returns the slice dataset from memory if held, otherwise loads it
// through the loader. With store set, a loaded dataset is inserted into the
// cache (evicting as needed); without it the load result is handed straight
// to the caller.
func (c *SliceCache) Get(sliceIndex int, store bool) (*dataset.SliceData, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if data, held := c.entries[sliceIndex]; held {
		cacheHits.Inc()
		return data, nil
	}

	cacheMisses.Inc()
	c.log.Debugf("Slice %v not in cache, loading", sliceIndex)

	data, err := c.loader(sliceIndex)
	if err != nil {
		return nil, err
	}
	cacheLoads.Inc()

	if store {
		c.addLocked(sliceIndex, data)
	}
	return data, nil
}

// Held - whether a slice is in memory right now, without touching the
// loader or the hit counters
func (c *SliceCache) Held(sliceIndex int) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, held := c.entries[sliceIndex]
	return held
}

// HeldSlices - the slice indexes currently in memory, sorted
func (c *SliceCache) HeldSlices() []int {
	c.mu.Lock()
	defer c.mu.Unlock()
	keys := maps.Keys(c.entries)
	slices.Sort(keys)
	return keys
}

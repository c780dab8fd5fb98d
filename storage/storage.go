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

// Package storage persists precomputed objects (border volumes, interpolated
// fields, averaged spectra) in a single-file sqlite database keyed by name,
// so expensive kernels only run once per input.
package storage

import (
	"database/sql"
	"encoding/json"
	"fmt"

	_ "modernc.org/sqlite"

	"github.com/lipidatlas/core/core/logger"
	"github.com/lipidatlas/core/core/timestamper"
)

type Store struct {
	db  *sql.DB
	ts  timestamper.ITimeStamper
	log logger.ILogger
}

// Open - opens (creating if needed) the store at the given path
func Open(path string, ts timestamper.ITimeStamper, log logger.ILogger) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open store %v: %w", path, err)
	}
	// avoid transient locks when several importers share the file
	if _, err := db.Exec("PRAGMA busy_timeout = 5000;"); err != nil {
		db.Close()
		return nil, err
	}
	if _, err := db.Exec(`CREATE TABLE IF NOT EXISTS objects (
		key TEXT PRIMARY KEY,
		data BLOB NOT NULL,
		updated_unix_sec INTEGER NOT NULL
	)`); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to prepare store %v: %w", path, err)
	}
	return &Store{db: db, ts: ts, log: log}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

// Dump - JSON-serialises the object under the given key, replacing any
// previous value
func (s *Store) Dump(key string, itemPtr interface{}) error {
	data, err := json.Marshal(itemPtr)
	if err != nil {
		return fmt.Errorf("failed to serialise %v: %w", key, err)
	}
	_, err = s.db.Exec(`INSERT INTO objects (key, data, updated_unix_sec) VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET data=excluded.data, updated_unix_sec=excluded.updated_unix_sec`,
		key, data, s.ts.GetTimeNowSec())
	if err != nil {
		return fmt.Errorf("failed to store %v: %w", key, err)
	}
	s.log.Debugf("Stored %v (%v bytes)", key, len(data))
	return nil
}

// Load - reads the object stored under key into itemPtr. Returns sql.ErrNoRows
// wrapped if the key was never stored.
func (s *Store) Load(key string, itemPtr interface{}) error {
	var data []byte
	err := s.db.QueryRow(`SELECT data FROM objects WHERE key = ?`, key).Scan(&data)
	if err != nil {
		return fmt.Errorf("failed to load %v: %w", key, err)
	}
	return json.Unmarshal(data, itemPtr)
}

// Check - whether an object exists under key
func (s *Store) Check(key string) (bool, error) {
	var one int
	err := s.db.QueryRow(`SELECT 1 FROM objects WHERE key = ?`, key).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// LastUpdated - when the object under key was last stored, unix seconds
func (s *Store) LastUpdated(key string) (int64, error) {
	var stamp int64
	err := s.db.QueryRow(`SELECT updated_unix_sec FROM objects WHERE key = ?`, key).Scan(&stamp)
	if err != nil {
		return 0, fmt.Errorf("failed to read update time of %v: %w", key, err)
	}
	return stamp, nil
}

// GetOrCompute - loads the object under key if stored, otherwise runs compute,
// stores its result and loads it back into itemPtr. The round trip through
// serialisation keeps cached and computed results byte-identical.
func (s *Store) GetOrCompute(key string, itemPtr interface{}, compute func() (interface{}, error)) error {
	held, err := s.Check(key)
	if err != nil {
		return err
	}
	if !held {
		s.log.Infof("Computing %v", key)
		result, err := compute()
		if err != nil {
			return fmt.Errorf("failed to compute %v: %w", key, err)
		}
		if err := s.Dump(key, result); err != nil {
			return err
		}
	}
	return s.Load(key, itemPtr)
}

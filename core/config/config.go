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

package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config - pipeline configuration loaded from a YAML file. Holds the knobs for
// raw data import, atlas geometry and the in-memory slice cache.
type Config struct {
	Import struct {
		// RawDataRoot is where raw acquisition triplet files are read from
		RawDataRoot string `yaml:"rawDataRoot"`

		// DatasetRoot is where processed per-slice dataset files are written
		DatasetRoot string `yaml:"datasetRoot"`

		// PeakTablePath points at the peak annotation CSV (min,max,n_pix)
		PeakTablePath string `yaml:"peakTablePath"`

		// MzResolution is the bin width used when rebinning averaged spectra.
		// Must stay <= 1e-4 or float32 precision starts eating bins.
		MzResolution float64 `yaml:"mzResolution"`
	} `yaml:"import"`

	Atlas struct {
		// ResolutionUm is the voxel resolution of the reference volume in micrometers
		ResolutionUm float64 `yaml:"resolutionUm"`

		// DividerRadius divides shape[0] to get the interpolation sphere radius
		DividerRadius int `yaml:"dividerRadius"`
	} `yaml:"atlas"`

	Cache struct {
		// SliceLimit is how many parsed slices are held in memory at once
		SliceLimit int `yaml:"sliceLimit"`
	} `yaml:"cache"`
}

// DefaultConfig - the values used by the production atlas pipeline
func DefaultConfig() *Config {
	cfg := &Config{}

	cfg.Import.RawDataRoot = "data/raw"
	cfg.Import.DatasetRoot = "data/whole_dataset"
	cfg.Import.PeakTablePath = "data/annotations/ranges.csv"
	cfg.Import.MzResolution = 1e-4

	cfg.Atlas.ResolutionUm = 25
	cfg.Atlas.DividerRadius = 5

	cfg.Cache.SliceLimit = 3

	return cfg
}

// Load - reads YAML config from the given path, layered over defaults
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config %v: %w", path, err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config %v: %w", path, err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (cfg *Config) validate() error {
	if cfg.Import.MzResolution <= 0 {
		return fmt.Errorf("mzResolution must be positive, got %v", cfg.Import.MzResolution)
	}
	if cfg.Atlas.ResolutionUm <= 0 {
		return fmt.Errorf("resolutionUm must be positive, got %v", cfg.Atlas.ResolutionUm)
	}
	if cfg.Atlas.DividerRadius <= 0 {
		return fmt.Errorf("dividerRadius must be positive, got %v", cfg.Atlas.DividerRadius)
	}
	if cfg.Cache.SliceLimit < 1 {
		return fmt.Errorf("sliceLimit must be at least 1, got %v", cfg.Cache.SliceLimit)
	}
	return nil
}

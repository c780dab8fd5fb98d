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

package importer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lipidatlas/core/core/fileaccess"
	"github.com/lipidatlas/core/core/logger"
	"github.com/lipidatlas/core/dataset"
)

func TestImportSlice(t *testing.T) {
	fs := fileaccess.MakeMemoryFileAccess()
	fs.WriteObject("raw", "slice1.csv", []byte(
		"# shape: 1 2\n"+
			"0,1.5,2\n"+
			"0,3.5,6\n"+
			"1,1.6,2\n"+
			"1,5.0,10\n"))
	fs.WriteObject("raw", "peaks.csv", []byte(
		"min,max,n_pix\n"+
			"1.0,2.0,2\n"+
			"3.0,4.0,1\n"))

	params := ImportParams{
		SliceIndex:    1,
		RawBucket:     "raw",
		RawPath:       "slice1.csv",
		PeakBucket:    "raw",
		PeakPath:      "peaks.csv",
		DatasetBucket: "datasets",
		DatasetRoot:   "brain1",
		MzResolution:  1.0,
	}

	data, err := ImportSlice(params, fs, &logger.NullLogger{})
	require.NoError(t, err)

	// The 5.0 sample falls outside both peak windows
	assert.Equal(t, []int32{0, 0, 1}, data.Pixels)
	assert.Equal(t, []float64{1.5, 3.5, 1.6}, data.Mzs)
	assert.Equal(t, [][2]int32{{0, 1}, {2, 2}}, data.PixelRanges)

	// Intensities are TIC-normalised per pixel (TICs were 8 and 12)
	assert.InDelta(t, 0.25, data.Intensities[0], 1e-6)
	assert.InDelta(t, 0.75, data.Intensities[1], 1e-6)
	assert.InDelta(t, 2.0/12.0, data.Intensities[2], 1e-6)

	assert.Equal(t, []float64{1.5, 1.6, 3.5}, data.AvgMzs)

	// At resolution 1.0 the 1.5 and 1.6 peaks share a bin
	assert.Equal(t, []float64{1.5, 3.5}, data.LowResAvgMzs)
	assert.InDelta(t, 0.25+2.0/12.0, data.LowResAvgIntensities[0], 1e-6)

	// The dataset landed on disk and loads back identically
	loaded, err := dataset.Load(fs, "datasets", "brain1", 1)
	require.NoError(t, err)
	assert.Equal(t, data, loaded)
}

func TestImportSliceMissingInputs(t *testing.T) {
	fs := fileaccess.MakeMemoryFileAccess()
	params := ImportParams{
		SliceIndex: 1, RawBucket: "raw", RawPath: "missing.csv",
		MzResolution: 1.0,
	}

	_, err := ImportSlice(params, fs, &logger.NullLogger{})
	require.Error(t, err)
	assert.True(t, fs.IsNotFoundError(err))
}

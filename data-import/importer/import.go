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

// Package importer turns one raw acquisition into a slice dataset: TIC
// normalisation, peak-window filtering, pixel indexing and averaged-spectrum
// assembly, in that order.
package importer

import (
	"fmt"

	"github.com/lipidatlas/core/core/fileaccess"
	"github.com/lipidatlas/core/core/logger"
	"github.com/lipidatlas/core/dataset"
	"github.com/lipidatlas/core/spectra"
)

// ImportParams - everything one ImportSlice run needs to know
type ImportParams struct {
	SliceIndex int

	RawBucket string
	RawPath   string

	PeakBucket string
	PeakPath   string

	DatasetBucket string
	DatasetRoot   string

	// MzResolution is the bin width of the low-resolution averaged spectrum
	MzResolution float64
}

// ImportSlice - runs the whole per-slice pipeline and writes the resulting
// dataset. Returns the dataset so callers can keep working with it without
// re-loading.
func ImportSlice(params ImportParams, fs fileaccess.FileAccess, log logger.ILogger) (*dataset.SliceData, error) {
	log.Infof("Importing slice %v from %v", params.SliceIndex, params.RawPath)

	acq, err := spectra.ReadRawAcquisition(fs, params.RawBucket, params.RawPath)
	if err != nil {
		return nil, err
	}
	totalPixels := acq.ImageShape[0] * acq.ImageShape[1]
	log.Infof("Read %v samples over a %vx%v raster", acq.Len(), acq.ImageShape[0], acq.ImageShape[1])

	tic, err := spectra.TICPerPixel(acq.Pixels, acq.Intensities, totalPixels)
	if err != nil {
		return nil, err
	}
	spectra.NormalizeTIC(acq.Pixels, acq.Intensities, tic)

	windows, err := spectra.ReadPeakWindows(fs, params.PeakBucket, params.PeakPath)
	if err != nil {
		return nil, err
	}

	acq.SortByMz()
	kept, _ := spectra.FilterPeaks(acq.Mzs, acq.Pixels, windows, log)
	log.Infof("Kept %v of %v samples across %v peak windows", len(kept), acq.Len(), len(windows))
	acq.Select(kept)

	// Still sorted by mz here, which the averaging needs
	avgMzs, avgIntensities, err := spectra.AveragedSpectrum(acq.Mzs, acq.Intensities)
	if err != nil {
		return nil, err
	}
	lowResMzs, lowResIntensities, err := spectra.ReduceResolutionSorted(avgMzs, avgIntensities, params.MzResolution)
	if err != nil {
		return nil, err
	}

	acq.SortByPixelMz()
	ranges, err := spectra.BuildPixelIndex(acq.Pixels, totalPixels)
	if err != nil {
		return nil, err
	}

	data := &dataset.SliceData{
		Index:      params.SliceIndex,
		ImageShape: acq.ImageShape,

		Pixels:      acq.Pixels,
		Mzs:         acq.Mzs,
		Intensities: acq.Intensities,

		PixelRanges: ranges,

		AvgMzs:         avgMzs,
		AvgIntensities: avgIntensities,

		LowResAvgMzs:         lowResMzs,
		LowResAvgIntensities: lowResIntensities,
	}

	if err := data.Save(fs, params.DatasetBucket, params.DatasetRoot); err != nil {
		return nil, fmt.Errorf("failed to save slice %v dataset: %w", params.SliceIndex, err)
	}
	log.Infof("Wrote slice %v dataset to %v", params.SliceIndex, dataset.SlicePath(params.DatasetRoot, params.SliceIndex))

	return data, nil
}

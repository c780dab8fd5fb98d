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

package spectra

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/lipidatlas/core/core/fileaccess"
)

// ReadRawAcquisition - parses a raw acquisition triplet file into an
// Acquisition. The format is CSV rows of pixel,mz,intensity preceded by a
// "# shape: <height> <width>" line giving the raster size. Rows are expected
// intensity-sparse (zero intensities never written) and are returned in file
// order; callers sort as needed for the downstream kernels.
func ReadRawAcquisition(fs fileaccess.FileAccess, bucket string, path string) (*Acquisition, error) {
	data, err := fs.ReadObject(bucket, path)
	if err != nil {
		return nil, err
	}

	shape, body, err := parseShapeHeader(data)
	if err != nil {
		return nil, fmt.Errorf("failed to read acquisition %v: %w", path, err)
	}

	acq := &Acquisition{ImageShape: shape}

	r := csv.NewReader(bytes.NewReader(body))
	r.TrimLeadingSpace = true
	r.Comment = '#'

	line := 1
	for {
		row, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to parse acquisition %v: %w", path, err)
		}
		if len(row) != 3 {
			return nil, fmt.Errorf("acquisition %v line %v: expected 3 fields, got %v", path, line, len(row))
		}

		pixel, err1 := strconv.ParseInt(row[0], 10, 32)
		mz, err2 := strconv.ParseFloat(row[1], 64)
		intensity, err3 := strconv.ParseFloat(row[2], 32)
		if err1 != nil || err2 != nil || err3 != nil {
			return nil, fmt.Errorf("acquisition %v line %v: bad values", path, line)
		}
		if pixel < 0 || int(pixel) >= shape[0]*shape[1] {
			return nil, fmt.Errorf("acquisition %v line %v: pixel %v outside %vx%v raster", path, line, pixel, shape[0], shape[1])
		}
		if intensity < 0 {
			return nil, fmt.Errorf("acquisition %v line %v: negative intensity", path, line)
		}

		acq.Pixels = append(acq.Pixels, int32(pixel))
		acq.Mzs = append(acq.Mzs, mz)
		acq.Intensities = append(acq.Intensities, float32(intensity))
		line++
	}

	return acq, nil
}

func parseShapeHeader(data []byte) ([2]int, []byte, error) {
	newline := bytes.IndexByte(data, '\n')
	if newline < 0 {
		return [2]int{}, nil, fmt.Errorf("missing shape header")
	}

	header := strings.TrimSpace(string(data[:newline]))
	if !strings.HasPrefix(header, "# shape:") {
		return [2]int{}, nil, fmt.Errorf("first line is not a shape header: %q", header)
	}

	fields := strings.Fields(strings.TrimPrefix(header, "# shape:"))
	if len(fields) != 2 {
		return [2]int{}, nil, fmt.Errorf("shape header needs height and width: %q", header)
	}

	h, err1 := strconv.Atoi(fields[0])
	w, err2 := strconv.Atoi(fields[1])
	if err1 != nil || err2 != nil || h <= 0 || w <= 0 {
		return [2]int{}, nil, fmt.Errorf("bad shape header: %q", header)
	}

	return [2]int{h, w}, data[newline+1:], nil
}

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

package main

import (
	"flag"
	"fmt"
	"os"
	"path"
	"strconv"
	"strings"

	"github.com/lipidatlas/core/core/awsutil"
	"github.com/lipidatlas/core/core/config"
	"github.com/lipidatlas/core/core/fileaccess"
	"github.com/lipidatlas/core/core/logger"
	"github.com/lipidatlas/core/data-import/importer"
)

func main() {
	fmt.Println("=================================")
	fmt.Println("=  Lipid Atlas slice importer   =")
	fmt.Println("=================================")

	var argConfig = flag.String("config", "config.yml", "Path to pipeline config YAML")
	var argSlices = flag.String("slices", "", "Comma-separated slice indexes to import")
	var argBucket = flag.String("bucket", "", "S3 bucket to read and write through instead of the local filesystem")
	var argDebug = flag.Bool("debug", false, "Enable debug logging")

	flag.Parse()

	log := &logger.StdOutLogger{}
	if *argDebug {
		log.SetLogLevel(logger.LogDebug)
	} else {
		log.SetLogLevel(logger.LogInfo)
	}

	cfg, err := config.Load(*argConfig)
	if err != nil {
		log.Errorf("%v", err)
		os.Exit(1)
	}

	sliceIndexes, err := parseSliceList(*argSlices)
	if err != nil {
		log.Errorf("%v", err)
		os.Exit(1)
	}

	var fs fileaccess.FileAccess = &fileaccess.FSAccess{}
	if *argBucket != "" {
		sess, err := awsutil.GetSession()
		if err != nil {
			log.Errorf("Failed to create AWS session: %v", err)
			os.Exit(1)
		}
		s3svc, err := awsutil.GetS3(sess)
		if err != nil {
			log.Errorf("Failed to create S3 client: %v", err)
			os.Exit(1)
		}
		fs = fileaccess.MakeS3Access(s3svc)
	}

	failed := 0
	for _, sliceIndex := range sliceIndexes {
		params := importer.ImportParams{
			SliceIndex: sliceIndex,

			RawBucket: *argBucket,
			RawPath:   path.Join(cfg.Import.RawDataRoot, fmt.Sprintf("slice_%v.csv", sliceIndex)),

			PeakBucket: *argBucket,
			PeakPath:   cfg.Import.PeakTablePath,

			DatasetBucket: *argBucket,
			DatasetRoot:   cfg.Import.DatasetRoot,

			MzResolution: cfg.Import.MzResolution,
		}

		if _, err := importer.ImportSlice(params, fs, log); err != nil {
			log.Errorf("Slice %v import failed: %v", sliceIndex, err)
			failed++
		}
	}

	if failed > 0 {
		log.Errorf("%v of %v slice imports failed", failed, len(sliceIndexes))
		os.Exit(1)
	}
	log.Infof("Imported %v slices", len(sliceIndexes))
}

func parseSliceList(arg string) ([]int, error) {
	if strings.TrimSpace(arg) == "" {
		return nil, fmt.Errorf("no slices given, use -slices 1,2,3")
	}

	indexes := []int{}
	for _, part := range strings.Split(arg, ",") {
		n, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil || n < 1 {
			return nil, fmt.Errorf("bad slice index %q", part)
		}
		indexes = append(indexes, n)
	}
	return indexes, nil
}

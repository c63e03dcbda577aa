// Copyright 2025
// SPDX-License-Identifier: Apache-2.0
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.
package cmd

import (
	"context"
	"fmt"

	"github.com/findash/findata/backblaze"
	"github.com/findash/findata/export"
	"github.com/findash/findata/library"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	exportOutput string
	exportUpload bool
	exportBucket string
	exportDir    string
)

// exportCmd represents the export command
var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export price history to a parquet file",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		myLibrary, err := library.NewFromDB(ctx, viper.GetString("db.url"))
		if err != nil {
			return fmt.Errorf("could not connect to library: %w", err)
		}
		defer myLibrary.Close()

		numRows, err := export.PriceHistory(ctx, myLibrary, exportOutput)
		if err != nil {
			return err
		}

		fmt.Printf("exported %d rows to %s\n", numRows, exportOutput)

		if exportUpload {
			if err := backblaze.Upload(exportOutput, exportBucket, exportDir); err != nil {
				return err
			}
		}

		return nil
	},
}

func init() {
	rootCmd.AddCommand(exportCmd)

	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "price_history.parquet", "output file name")
	exportCmd.Flags().BoolVar(&exportUpload, "upload", false, "upload the exported file to backblaze")
	exportCmd.Flags().StringVar(&exportBucket, "bucket", "findata", "backblaze bucket name")
	exportCmd.Flags().StringVar(&exportDir, "dir", "exports", "directory within the bucket")
}

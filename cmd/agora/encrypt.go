// Copyright 2025 Blink Labs Software
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/blinklabs-io/agora/database/sops"
	"github.com/spf13/cobra"
)

// encryptCommand creates the "encrypt" command. Master keys are taken
// from AGORA_GCP_KMS_RESOURCE_ID, AGORA_AWS_KMS_KEY_ARNS and
// AGORA_AWS_KMS_PROFILE.
func encryptCommand() *cobra.Command {
	var outputFile string
	cmd := &cobra.Command{
		Use:   "encrypt [config-file]",
		Short: "Encrypt a config file with sops",
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) < 1 {
				_ = cmd.Usage()
				return errors.New("no config file specified")
			}
			buf, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("error reading config file: %w", err)
			}
			encrypted, err := sops.EncryptYAML(buf)
			if err != nil {
				return fmt.Errorf("error encrypting config file: %w", err)
			}
			if outputFile == "" {
				fmt.Print(string(encrypted))
				return nil
			}
			if err := os.WriteFile(outputFile, encrypted, 0o600); err != nil {
				return fmt.Errorf("error writing encrypted file: %w", err)
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(
		&outputFile,
		"output",
		"o",
		"",
		"write encrypted output to file instead of stdout",
	)
	return cmd
}

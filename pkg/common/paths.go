// Copyright © 2024 Rak Laptudirm <rak@laptudirm.com>
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package common contains the on-disk layout shared by the swiss command
// line tools.
package common

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
)

const (
	DirectoryPermissions = 0755
	FilePermissions      = 0644
)

// BaseConfigFile is written to ConfigFile the first time the data
// directory is set up.
//
//go:embed config.yaml
var BaseConfigFile []byte

var (
	// Directory is the root of all the data stored by swiss.
	Directory = filepath.Join(xdg.Home, "swiss")

	// TournamentDirectory holds one file per saved tournament.
	TournamentDirectory = filepath.Join(Directory, "tournaments")

	// ConfigFile holds the default configuration of new tournaments.
	ConfigFile = filepath.Join(Directory, "config.yaml")
)

// EnsureDirectories creates the data directory layout if it is missing.
func EnsureDirectories() error {
	for _, dir := range []string{Directory, TournamentDirectory} {
		if err := TryMkdir(dir); err != nil {
			return err
		}
	}

	return TryCreate(ConfigFile, BaseConfigFile)
}

// TryMkdir creates the given directory if it doesn't exist.
func TryMkdir(dir string) error {
	if _, err := os.Stat(dir); errors.Is(err, fs.ErrNotExist) {
		if err := os.MkdirAll(dir, DirectoryPermissions); err != nil {
			return fmt.Errorf("create directory %s: %w", dir, err)
		}
	}

	return nil
}

// TryCreate writes data to the given file if it doesn't exist.
func TryCreate(file string, data []byte) error {
	if _, err := os.Stat(file); errors.Is(err, fs.ErrNotExist) {
		if err := os.WriteFile(file, data, FilePermissions); err != nil {
			return fmt.Errorf("create file %s: %w", file, err)
		}
	}

	return nil
}

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

package tournament

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	"laptudirm.com/x/swiss/pkg/internal/util"
	"laptudirm.com/x/swiss/pkg/standings"
)

var (
	ErrInvalidName = errors.New("invalid tournament name")
	ErrNotFound    = errors.New("tournament not found")
	ErrExists      = errors.New("tournament already exists")
)

const extension = ".yaml"

// Snapshot is the serializable form of a Tournament.
type Snapshot struct {
	ID     string `yaml:"id"`
	Name   string `yaml:"name"`
	Config Config `yaml:"config"`

	Players []standings.Snapshot `yaml:"players"`
	Rounds  []Round              `yaml:"rounds,omitempty"`
}

// Snapshot returns the current state of the tournament.
func (tour *Tournament) Snapshot() Snapshot {
	return Snapshot{
		ID:      tour.ID.String(),
		Name:    tour.Name,
		Config:  tour.Config,
		Players: tour.table.Snapshot(),
		Rounds:  tour.Rounds(),
	}
}

// Restore resumes a tournament from a snapshot.
func Restore(snapshot Snapshot) (*Tournament, error) {
	id, err := uuid.Parse(snapshot.ID)
	if err != nil {
		return nil, fmt.Errorf("restore %s: %w", snapshot.Name, err)
	}

	if err := snapshot.Config.Validate(); err != nil {
		return nil, fmt.Errorf("restore %s: %w", snapshot.Name, err)
	}

	table, err := standings.Restore(snapshot.Players)
	if err != nil {
		return nil, fmt.Errorf("restore %s: %w", snapshot.Name, err)
	}

	for _, round := range snapshot.Rounds {
		for _, board := range round.Boards {
			for _, player := range []standings.Player{board.Player, board.Opponent} {
				if player == "" {
					continue
				}

				if _, err := table.Lookup(player); err != nil {
					return nil, fmt.Errorf("restore %s round #%d: %w: %w", snapshot.Name, round.Number, err, standings.ErrCorruptSnapshot)
				}
			}
		}
	}

	return &Tournament{
		ID:     id,
		Name:   snapshot.Name,
		Config: snapshot.Config,
		table:  table,
		rounds: cloneRounds(snapshot.Rounds),
	}, nil
}

// Store keeps tournaments as yaml files in a directory, one per
// tournament, named after it.
type Store struct {
	Directory string
}

// NewStore returns a Store over the given directory.
func NewStore(dir string) *Store {
	return &Store{Directory: dir}
}

func (store *Store) path(name string) (string, error) {
	if name == "" || name != filepath.Base(name) || strings.HasPrefix(name, ".") {
		return "", fmt.Errorf("%w: %q", ErrInvalidName, name)
	}

	return filepath.Join(store.Directory, name+extension), nil
}

// Create saves a new tournament, failing if one with the same name exists.
func (store *Store) Create(tour *Tournament) error {
	path, err := store.path(tour.Name)
	if err != nil {
		return err
	}

	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("%w: %s", ErrExists, tour.Name)
	}

	return store.Save(tour)
}

// Save writes the tournament to the store, replacing any older version.
func (store *Store) Save(tour *Tournament) error {
	path, err := store.path(tour.Name)
	if err != nil {
		return err
	}

	data, err := yaml.Marshal(tour.Snapshot())
	if err != nil {
		return fmt.Errorf("save %s: %w", tour.Name, err)
	}

	// write to a temporary file first so a failed write keeps the old state
	temp := path + ".tmp"
	if err := os.WriteFile(temp, data, 0644); err != nil {
		return fmt.Errorf("save %s: %w", tour.Name, err)
	}

	if err := os.Rename(temp, path); err != nil {
		return fmt.Errorf("save %s: %w", tour.Name, err)
	}

	logrus.WithField("path", path).Debugf("Saved tournament %s", tour.Name)
	return nil
}

// Load reads a tournament from the store.
func (store *Store) Load(name string) (*Tournament, error) {
	path, err := store.path(name)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, name)
	} else if err != nil {
		return nil, fmt.Errorf("load %s: %w", name, err)
	}

	var snapshot Snapshot
	if err := yaml.Unmarshal(data, &snapshot); err != nil {
		return nil, fmt.Errorf("load %s: %w", name, err)
	}

	return Restore(snapshot)
}

// Delete removes a tournament from the store.
func (store *Store) Delete(name string) error {
	path, err := store.path(name)
	if err != nil {
		return err
	}

	if err := os.Remove(path); errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("%w: %s", ErrNotFound, name)
	} else if err != nil {
		return fmt.Errorf("delete %s: %w", name, err)
	}

	return nil
}

// List returns the names of the stored tournaments in natural order.
func (store *Store) List() ([]string, error) {
	entries, err := os.ReadDir(store.Directory)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	} else if err != nil {
		return nil, err
	}

	var names []string
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasSuffix(name, extension) {
			continue
		}

		names = append(names, strings.TrimSuffix(name, extension))
	}

	slices.SortFunc(names, util.NaturalCompare)
	return names, nil
}

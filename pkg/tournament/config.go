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
	"math"
	"os"

	"gopkg.in/yaml.v3"

	"laptudirm.com/x/swiss/pkg/pairing"
	"laptudirm.com/x/swiss/pkg/rating"
	"laptudirm.com/x/swiss/pkg/standings"
)

var ErrInvalidConfig = errors.New("invalid tournament config")

// Config is the configuration of a tournament.
type Config struct {
	// Number of rounds to play. Zero means pairing continues until the
	// organizer stops.
	Rounds int `yaml:"rounds"`

	InitialRating float64 `yaml:"initial-rating"`  // Rating of players entered without one.
	ByeGamePoints int     `yaml:"bye-game-points"` // Game points credited for a bye or a forfeit win.

	Pairing pairing.Config `yaml:"pairing"`
}

// DefaultConfig returns the configuration used for anything a config file
// leaves out.
func DefaultConfig() Config {
	return Config{
		InitialRating: rating.Initial,
		ByeGamePoints: standings.DefaultByeGamePoints,
		Pairing: pairing.Config{
			Attempts:      pairing.DefaultAttempts,
			GroupAttempts: pairing.DefaultGroupAttempts,
		},
	}
}

// LoadConfig reads a yaml config file on top of the default config.
func LoadConfig(path string) (Config, error) {
	config := DefaultConfig()

	file, err := os.ReadFile(path)
	if err != nil {
		return config, err
	}

	if err := yaml.Unmarshal(file, &config); err != nil {
		return config, fmt.Errorf("load config %s: %w", path, err)
	}

	return config, config.Validate()
}

// Validate reports the first problem with the config, if any.
func (config Config) Validate() error {
	switch {
	case config.Rounds < 0:
		return fmt.Errorf("%w: negative number of rounds", ErrInvalidConfig)
	case config.InitialRating < rating.Floor:
		return fmt.Errorf("%w: initial rating below %d", ErrInvalidConfig, rating.Floor)
	case config.ByeGamePoints < 0:
		return fmt.Errorf("%w: negative bye game points", ErrInvalidConfig)
	case config.Pairing.Attempts < 0, config.Pairing.GroupAttempts < 0:
		return fmt.Errorf("%w: negative pairing attempts", ErrInvalidConfig)
	}

	return nil
}

// RecommendedRounds returns the number of rounds needed to find a single
// undefeated winner among the given number of players.
func RecommendedRounds(players int) int {
	if players < 2 {
		return 1
	}

	return int(math.Ceil(math.Log2(float64(players))))
}

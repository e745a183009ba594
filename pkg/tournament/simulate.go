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
	"context"
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"laptudirm.com/x/swiss/pkg/pairing"
	"laptudirm.com/x/swiss/pkg/rating"
	"laptudirm.com/x/swiss/pkg/standings"
)

// SimulationConfig configures a batch of simulated tournaments.
type SimulationConfig struct {
	Tournaments int `yaml:"tournaments"` // Number of tournaments to simulate.
	Players     int `yaml:"players"`     // Number of players in each tournament.
	Concurrency int `yaml:"concurrency"` // Number of tournaments run at once.

	// Games played in every match.
	Games int `yaml:"games"`

	// Chance of a single game being drawn.
	DrawRate float64 `yaml:"draw-rate"`

	// Standard deviation of the players' true strength around the
	// initial rating.
	Spread float64 `yaml:"spread"`

	// Seed of the whole batch. Zero picks a time based seed.
	Seed int64 `yaml:"seed"`

	// Configuration of every simulated tournament; DefaultConfig if
	// left zero. Zero rounds plays the recommended number of rounds for
	// the player count.
	Tournament Config `yaml:"tournament"`
}

// SimulationResult summarizes a batch of simulated tournaments.
type SimulationResult struct {
	Tournaments int // tournaments simulated
	Completed   int // tournaments where every round was paired
	Failed      int // tournaments stopped by a pairing failure
	Rounds      int // rounds paired over all tournaments
	Byes        int // byes given over all tournaments

	// Tournaments where the winner was the strongest player.
	StrongestWon int
}

func (result SimulationResult) String() string {
	return fmt.Sprintf(
		"%d tournaments: %d completed, %d failed to pair, %d rounds, %d byes, strongest player won %d",
		result.Tournaments, result.Completed, result.Failed, result.Rounds, result.Byes, result.StrongestWon,
	)
}

// Simulate plays independent tournaments concurrently with results drawn
// from the Elo expectation of the players' hidden strengths. A tournament
// that cannot be paired counts as failed; only cancellation and invalid
// configuration are returned as errors.
func Simulate(ctx context.Context, config SimulationConfig) (SimulationResult, error) {
	if config.Tournaments <= 0 || config.Players <= 0 {
		return SimulationResult{}, fmt.Errorf("%w: simulation needs tournaments and players", ErrInvalidConfig)
	}

	if config.Games <= 0 {
		config.Games = 2
	}

	if config.Concurrency <= 0 {
		config.Concurrency = 1
	}

	if config.Seed == 0 {
		config.Seed = time.Now().UnixNano()
	}

	if config.Tournament == (Config{}) {
		config.Tournament = DefaultConfig()
	}

	config.Tournament = withDefaults(config.Tournament)
	if config.Tournament.Rounds == 0 {
		config.Tournament.Rounds = RecommendedRounds(config.Players)
	}

	if err := config.Tournament.Validate(); err != nil {
		return SimulationResult{}, err
	}

	logrus.WithFields(logrus.Fields{
		"tournaments": config.Tournaments,
		"players":     config.Players,
		"rounds":      config.Tournament.Rounds,
		"seed":        config.Seed,
	}).Info("Starting simulation")

	results := make([]simulation, config.Tournaments)

	group, ctx := errgroup.WithContext(ctx)
	group.SetLimit(config.Concurrency)
	for i := range results {
		i := i
		group.Go(func() error {
			var err error
			results[i], err = simulate(ctx, config, config.Seed+int64(i))
			return err
		})
	}

	if err := group.Wait(); err != nil {
		return SimulationResult{}, err
	}

	summary := SimulationResult{Tournaments: config.Tournaments}
	for _, result := range results {
		summary.Rounds += result.rounds
		summary.Byes += result.byes
		if result.failed {
			summary.Failed++
			continue
		}

		summary.Completed++
		if result.strongestWon {
			summary.StrongestWon++
		}
	}

	return summary, nil
}

type simulation struct {
	rounds, byes int
	failed       bool
	strongestWon bool
}

func simulate(ctx context.Context, config SimulationConfig, seed int64) (simulation, error) {
	random := rand.New(rand.NewSource(seed))

	tourConfig := config.Tournament
	tourConfig.Pairing.Seed = seed

	tour, err := New(fmt.Sprintf("simulation-%d", seed), tourConfig)
	if err != nil {
		return simulation{}, err
	}

	strength := make(map[standings.Player]float64, config.Players)
	var strongest standings.Player
	for i := 0; i < config.Players; i++ {
		player := standings.Player(fmt.Sprintf("P%03d", i+1))
		strength[player] = tourConfig.InitialRating + random.NormFloat64()*config.Spread
		if strongest == "" || strength[player] > strength[strongest] {
			strongest = player
		}

		if err := tour.AddPlayer(player, 0); err != nil {
			return simulation{}, err
		}
	}

	var result simulation
	for !tour.Finished() {
		if err := ctx.Err(); err != nil {
			return simulation{}, err
		}

		round, err := tour.Pair()
		if errors.Is(err, pairing.ErrExhausted) || errors.Is(err, pairing.ErrNoByeCandidate) {
			logrus.WithField("tournament", tour.Name).Debugf("Simulation stopped: %v", err)
			result.failed = true
			break
		} else if err != nil {
			return simulation{}, err
		}

		result.rounds++
		for _, board := range round.Boards {
			if board.IsBye() {
				result.byes++
				continue
			}

			expected := rating.Expected(strength[board.Player], strength[board.Opponent])

			var wins, losses, draws int
			for game := 0; game < config.Games; game++ {
				switch {
				case random.Float64() < config.DrawRate:
					draws++
				case random.Float64() < expected:
					wins++
				default:
					losses++
				}
			}

			if err := tour.RecordMatch(board.Player, board.Opponent, wins, losses, draws); err != nil {
				return simulation{}, err
			}
		}
	}

	if !result.failed {
		result.strongestWon = tour.Standings()[0].Player == strongest
	}

	return result, nil
}

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

package cmd

import (
	"fmt"
	"os"
	"runtime"
	"time"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/briandowns/spinner"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"laptudirm.com/x/swiss/pkg/tournament"
)

const SPIN = 31

// newSpinner returns the spinner shown while work is in progress, or nil
// when tracing, since trace output would run through it.
func newSpinner(trace bool, suffix string) *spinner.Spinner {
	if trace {
		return nil
	}

	s := spinner.New(spinner.CharSets[SPIN], 100*time.Millisecond, spinner.WithWriter(os.Stderr))
	s.Suffix = suffix
	return s
}

func Simulate() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "simulate",
		Short: "Simulate tournaments to test the pairing engine",
		Long: heredoc.Doc(`simulate plays many tournaments between players of random
			hidden strength, with results drawn from their Elo
			expectation, and reports how often the pairing engine
			failed to pair a round within its attempts.

			Nothing is stored; the simulation is reproducible with
			the --seed flag.`),
		Args: cobra.NoArgs,

		RunE: func(cmd *cobra.Command, args []string) error {
			// individual results are logged at the info level
			trace := cmd.Flag("trace").Changed
			if !trace {
				logrus.SetLevel(logrus.WarnLevel)
			}

			flags := cmd.Flags()

			var config tournament.SimulationConfig
			config.Tournament = tournament.DefaultConfig()
			config.Tournaments, _ = flags.GetInt("tournaments")
			config.Players, _ = flags.GetInt("players")
			config.Concurrency, _ = flags.GetInt("concurrency")
			config.Games, _ = flags.GetInt("games")
			config.DrawRate, _ = flags.GetFloat64("draw-rate")
			config.Spread, _ = flags.GetFloat64("spread")
			config.Seed, _ = flags.GetInt64("seed")
			config.Tournament.Rounds, _ = flags.GetInt("rounds")
			config.Tournament.Pairing.Attempts, _ = flags.GetInt("attempts")
			config.Tournament.Pairing.GroupAttempts, _ = flags.GetInt("group-attempts")

			s := newSpinner(trace, " simulating tournaments...")
			if s != nil {
				s.Start() // Start the ~working~ spinner.
			}

			result, err := tournament.Simulate(cmd.Context(), config)
			if s != nil {
				s.Stop() // Stop the ~working~ spinner.
			}

			if err != nil {
				return err
			}

			fmt.Println(result)
			return nil
		},
	}

	flags := cmd.Flags()
	flags.Int("tournaments", 100, "Number of tournaments to simulate")
	flags.Int("players", 16, "Number of players in each tournament")
	flags.Int("rounds", 0, "Number of rounds, 0 for the recommended number")
	flags.Int("concurrency", runtime.NumCPU(), "Number of tournaments simulated at once")
	flags.Int("games", 2, "Number of games in every match")
	flags.Float64("draw-rate", 0.1, "Chance of a game being drawn")
	flags.Float64("spread", 200, "Standard deviation of the players' strength")
	flags.Int64("seed", 0, "Seed of the simulation, 0 for a random seed")
	flags.Int("attempts", 0, "Full pairing searches before a round fails")
	flags.Int("group-attempts", 0, "Pairing passes per score group")
	return cmd
}

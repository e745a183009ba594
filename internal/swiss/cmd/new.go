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
	"strconv"
	"strings"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/spf13/cobra"

	"laptudirm.com/x/swiss/pkg/common"
	"laptudirm.com/x/swiss/pkg/standings"
	"laptudirm.com/x/swiss/pkg/tournament"
)

func New() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "new tournament-name player[=rating]...",
		Short: "Create a new tournament",
		Long: heredoc.Doc(`new creates a tournament with the given players. A player
			may be given a starting rating as <name>=<rating>; players
			without one start at the configured initial rating.

			The tournament is configured from the config file, which
			defaults to ~/swiss/config.yaml. If neither the file nor the
			--rounds flag sets the number of rounds, the tournament is
			set up to play enough rounds to find an undefeated winner.`),
		Args: cobra.MinimumNArgs(1),

		RunE: func(cmd *cobra.Command, args []string) error {
			path, _ := cmd.Flags().GetString("config")
			config, err := tournament.LoadConfig(path)
			if err != nil {
				return err
			}

			if cmd.Flag("rounds").Changed {
				config.Rounds, _ = cmd.Flags().GetInt("rounds")
			} else if config.Rounds == 0 {
				config.Rounds = tournament.RecommendedRounds(len(args) - 1)
			}

			if cmd.Flag("seed").Changed {
				config.Pairing.Seed, _ = cmd.Flags().GetInt64("seed")
			}

			tour, err := tournament.New(args[0], config)
			if err != nil {
				return err
			}

			for _, arg := range args[1:] {
				player, rating, err := parsePlayer(arg)
				if err != nil {
					return err
				}

				if err := tour.AddPlayer(player, rating); err != nil {
					return err
				}
			}

			if err := store().Create(tour); err != nil {
				return err
			}

			fmt.Printf(
				"Created tournament \x1b[34m%s\x1b[0m (%s): %d players, %d rounds\n",
				tour.Name, tour.ID, len(args)-1, tour.Config.Rounds,
			)
			return nil
		},
	}

	cmd.Flags().String("config", common.ConfigFile, "Config file of the tournament")
	cmd.Flags().Int("rounds", 0, "Number of rounds, 0 for no limit")
	cmd.Flags().Int64("seed", 0, "Seed of the pairing engine, 0 for a random seed")
	return cmd
}

// parsePlayer parses a player argument of the form name[=rating].
func parsePlayer(arg string) (standings.Player, float64, error) {
	name, value, found := strings.Cut(arg, "=")
	if name == "" {
		return "", 0, fmt.Errorf("invalid player %q", arg)
	}

	if !found {
		return standings.Player(name), 0, nil
	}

	rating, err := strconv.ParseFloat(value, 64)
	if err != nil || rating <= 0 {
		return "", 0, fmt.Errorf("invalid rating for player %s: %q", name, value)
	}

	return standings.Player(name), rating, nil
}

func store() *tournament.Store {
	return tournament.NewStore(common.TournamentDirectory)
}

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

// Package record implements the commands reporting the results of a
// tournament round.
package record

import (
	"fmt"
	"strconv"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/spf13/cobra"

	"laptudirm.com/x/swiss/pkg/common"
	"laptudirm.com/x/swiss/pkg/standings"
	"laptudirm.com/x/swiss/pkg/tournament"
)

func Match() *cobra.Command {
	return &cobra.Command{
		Use:   "match tournament-name player opponent wins losses [draws]",
		Short: "Record the game tally of a played match",
		Long: heredoc.Doc(`match records the result of a match of the current round.
			The tally of games won, lost and drawn is given from the
			point of view of the first player named.`),
		Args: cobra.RangeArgs(5, 6),

		RunE: func(cmd *cobra.Command, args []string) error {
			tally := make([]int, 3)
			for i, arg := range args[3:] {
				n, err := strconv.Atoi(arg)
				if err != nil {
					return fmt.Errorf("invalid game count %q: %w", arg, err)
				}

				tally[i] = n
			}

			return update(args[0], func(tour *tournament.Tournament) error {
				return tour.RecordMatch(
					standings.Player(args[1]), standings.Player(args[2]),
					tally[0], tally[1], tally[2],
				)
			})
		},
	}
}

func Forfeit() *cobra.Command {
	return &cobra.Command{
		Use:   "forfeit tournament-name winner loser",
		Short: "Record a match won by forfeit",
		Args:  cobra.ExactArgs(3),

		RunE: func(cmd *cobra.Command, args []string) error {
			return update(args[0], func(tour *tournament.Tournament) error {
				return tour.RecordForfeit(standings.Player(args[1]), standings.Player(args[2]))
			})
		},
	}
}

// update loads a tournament, applies the change and saves it back.
func update(name string, change func(*tournament.Tournament) error) error {
	store := tournament.NewStore(common.TournamentDirectory)

	tour, err := store.Load(name)
	if err != nil {
		return err
	}

	if err := change(tour); err != nil {
		return err
	}

	if err := store.Save(tour); err != nil {
		return err
	}

	round, _ := tour.Current()
	if pending := len(round.Pending()); pending > 0 {
		fmt.Printf("Round #%d: %d results pending\n", round.Number, pending)
	} else {
		fmt.Printf("Round #%d \x1b[32mcomplete\x1b[0m\n", round.Number)
	}

	return nil
}

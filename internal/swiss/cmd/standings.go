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

	"github.com/spf13/cobra"
)

func Standings() *cobra.Command {
	return &cobra.Command{
		Use:   "standings tournament-name",
		Short: "Show the standings of a tournament",
		Args:  cobra.ExactArgs(1),

		RunE: func(cmd *cobra.Command, args []string) error {
			tour, err := store().Load(args[0])
			if err != nil {
				return err
			}

			if err := tour.Report(os.Stdout); err != nil {
				return err
			}

			round, ok := tour.Current()
			if !ok {
				fmt.Println("\x1b[33mNo rounds paired yet.\x1b[0m")
				return nil
			}

			if pending := round.Pending(); len(pending) > 0 {
				fmt.Printf("\n\x1b[33mWaiting for results\x1b[0m of round #%d:\n", round.Number)
				for _, board := range pending {
					fmt.Printf("- %s\n", board)
				}
			} else if tour.Finished() {
				fmt.Println("\n\x1b[32mTournament finished.\x1b[0m")
			}

			return nil
		},
	}
}

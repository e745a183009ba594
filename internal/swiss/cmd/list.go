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

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

func List() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "Lists the stored tournaments and their progress",
		Args:  cobra.ExactArgs(0),

		RunE: func(cmd *cobra.Command, args []string) error {
			names, err := store().List()
			if err != nil {
				return err
			}

			if len(names) == 0 {
				fmt.Println("\x1b[31mNo Tournaments Found.\x1b[0m")
				return nil
			}

			fmt.Println("\u001B[32mTournaments\u001B[0m:")
			fmt.Println()
			for _, name := range names {
				tour, err := store().Load(name)
				if err != nil {
					logrus.WithError(err).Warnf("Skipping tournament %s", name)
					continue
				}

				rounds := "unlimited"
				if tour.Config.Rounds > 0 {
					rounds = fmt.Sprint(tour.Config.Rounds)
				}

				status := ""
				if tour.Finished() {
					status = " \x1b[32mfinished\x1b[0m"
				}

				fmt.Printf(
					"- %-30s round %d/%s, %d players%s\n",
					fmt.Sprintf("\x1b[34m%s\x1b[0m:", name),
					tour.Round(), rounds, len(tour.Standings()), status,
				)
			}

			return nil
		},
	}
}

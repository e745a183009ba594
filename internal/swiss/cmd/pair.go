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
	"os"

	"github.com/spf13/cobra"

	"laptudirm.com/x/swiss/pkg/tournament"
)

func Pair() *cobra.Command {
	return &cobra.Command{
		Use:   "pair tournament-name",
		Short: "Pair the next round of a tournament",
		Args:  cobra.ExactArgs(1),

		RunE: func(cmd *cobra.Command, args []string) error {
			tour, err := store().Load(args[0])
			if err != nil {
				return err
			}

			round, err := tour.Pair()
			if err != nil {
				return err
			}

			if err := store().Save(tour); err != nil {
				return err
			}

			return tournament.WriteRound(os.Stdout, round)
		},
	}
}

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

package standings

import (
	"errors"
	"fmt"
)

var ErrCorruptSnapshot = errors.New("corrupt standings snapshot")

// Snapshot is the serializable form of a Standing. Opponents are stored by
// name and resolved against the other snapshots on Restore.
type Snapshot struct {
	Player Player  `yaml:"player"`
	Rating float64 `yaml:"rating"`

	MatchPoints       int `yaml:"match-points"`
	GamePoints        int `yaml:"game-points"`
	GamesPlayed       int `yaml:"games-played"`
	AwardedGamePoints int `yaml:"awarded-game-points,omitempty"`

	Wins   int `yaml:"wins"`
	Draws  int `yaml:"draws"`
	Losses int `yaml:"losses"`

	Opponents []OpponentSnapshot `yaml:"opponents,omitempty"`
}

// OpponentSnapshot is one serialized match history entry.
type OpponentSnapshot struct {
	Player Player `yaml:"player,omitempty"`
	Bye    bool   `yaml:"bye,omitempty"`
}

// Snapshot returns the serializable form of every standing in the Table,
// in registration order.
func (table *Table) Snapshot() []Snapshot {
	snapshots := make([]Snapshot, len(table.order))
	for i, standing := range table.order {
		opponents := make([]OpponentSnapshot, len(standing.opponents))
		for j, opponent := range standing.opponents {
			if record, ok := opponent.Standing(); ok {
				opponents[j] = OpponentSnapshot{Player: record.Player}
			} else {
				opponents[j] = OpponentSnapshot{Bye: true}
			}
		}

		snapshots[i] = Snapshot{
			Player:            standing.Player,
			Rating:            standing.Rating,
			MatchPoints:       standing.MatchPoints,
			GamePoints:        standing.GamePoints,
			GamesPlayed:       standing.GamesPlayed,
			AwardedGamePoints: standing.AwardedGamePoints,
			Wins:              standing.Wins,
			Draws:             standing.Draws,
			Losses:            standing.Losses,
			Opponents:         opponents,
		}
	}

	return snapshots
}

// Restore rebuilds a Table from snapshots taken with Table.Snapshot. It
// refuses snapshots that break the invariants of a Standing.
func Restore(snapshots []Snapshot) (*Table, error) {
	table := NewTable()
	for _, snapshot := range snapshots {
		if _, err := table.Add(snapshot.Player, snapshot.Rating); err != nil {
			return nil, fmt.Errorf("restore: %w", err)
		}
	}

	for i, snapshot := range snapshots {
		standing := table.order[i]
		standing.MatchPoints = snapshot.MatchPoints
		standing.GamePoints = snapshot.GamePoints
		standing.GamesPlayed = snapshot.GamesPlayed
		standing.AwardedGamePoints = snapshot.AwardedGamePoints
		standing.Wins, standing.Draws, standing.Losses = snapshot.Wins, snapshot.Draws, snapshot.Losses

		if standing.MatchPoints < 0 || standing.GamePoints < 0 || standing.GamesPlayed < 0 {
			return nil, fmt.Errorf("restore %s: negative counter: %w", standing.Player, ErrCorruptSnapshot)
		}

		byes := 0
		for _, entry := range snapshot.Opponents {
			if entry.Bye {
				if byes++; byes > 1 {
					return nil, fmt.Errorf("restore %s: %w: %w", standing.Player, ErrSecondBye, ErrCorruptSnapshot)
				}

				standing.opponents = append(standing.opponents, Bye())
				continue
			}

			opponent, err := table.Lookup(entry.Player)
			if err != nil {
				return nil, fmt.Errorf("restore %s: %w: %w", standing.Player, err, ErrCorruptSnapshot)
			}

			if opponent.Is(standing) {
				return nil, fmt.Errorf("restore %s: %w: %w", standing.Player, ErrSelfMatch, ErrCorruptSnapshot)
			}

			standing.opponents = append(standing.opponents, Real(opponent))
		}
	}

	return table, nil
}

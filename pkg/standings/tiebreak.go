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
	"cmp"
	"math"
	"slices"
)

// MinPercentage is the floor applied to every tie-break percentage so that
// players with few or poor results early in an event do not drag their
// opponents' numbers towards zero.
const MinPercentage = 0.33

// MatchWinPercentage returns the share of available match points the
// player has earned. With excludeBye set, a received bye is left out of
// both the points and the number of matches.
func (standing *Standing) MatchWinPercentage(excludeBye bool) float64 {
	points, matches := standing.MatchPoints, standing.Matches()
	if excludeBye && standing.HadBye() {
		points -= WinPoints
		matches--
	}

	return percentage(points, matches)
}

// GameWinPercentage returns the share of available game points the player
// has earned in games actually played. With excludeBye set, game points
// credited for byes and forfeits are left out.
func (standing *Standing) GameWinPercentage(excludeBye bool) float64 {
	points := standing.GamePoints
	if excludeBye {
		points -= standing.AwardedGamePoints
	}

	return percentage(points, standing.GamesPlayed)
}

// OpponentMatchWinPercentage is the average match win percentage of the
// real opponents the player has faced, each ignoring their own bye.
func (standing *Standing) OpponentMatchWinPercentage() float64 {
	return standing.opponentAverage(func(opponent *Standing) float64 {
		return opponent.MatchWinPercentage(true)
	})
}

// OpponentGameWinPercentage is the average game win percentage of the real
// opponents the player has faced, each ignoring their awarded game points.
func (standing *Standing) OpponentGameWinPercentage() float64 {
	return standing.opponentAverage(func(opponent *Standing) float64 {
		return opponent.GameWinPercentage(true)
	})
}

func (standing *Standing) opponentAverage(stat func(*Standing) float64) float64 {
	var sum float64
	var count int
	for _, opponent := range standing.opponents {
		if record, ok := opponent.Standing(); ok {
			sum += stat(record)
			count++
		}
	}

	if count == 0 {
		return MinPercentage
	}

	return sum / float64(count)
}

func percentage(points, matches int) float64 {
	if matches <= 0 {
		return MinPercentage
	}

	return math.Max(float64(points)/float64(WinPoints*matches), MinPercentage)
}

// Key is the tuple players are ranked by. Every field is better when
// higher, and fields are compared in order.
type Key struct {
	MatchPoints      int
	OpponentMatchWin float64
	GameWin          float64
	OpponentGameWin  float64
}

// Key returns the ranking key of the player's current standing.
func (standing *Standing) Key() Key {
	return Key{
		MatchPoints:      standing.MatchPoints,
		OpponentMatchWin: standing.OpponentMatchWinPercentage(),
		GameWin:          standing.GameWinPercentage(true),
		OpponentGameWin:  standing.OpponentGameWinPercentage(),
	}
}

// Compare orders two keys from the better to the worse one: it returns a
// negative number when a ranks above b.
func (a Key) Compare(b Key) int {
	if c := cmp.Compare(b.MatchPoints, a.MatchPoints); c != 0 {
		return c
	}

	if c := cmp.Compare(b.OpponentMatchWin, a.OpponentMatchWin); c != 0 {
		return c
	}

	if c := cmp.Compare(b.GameWin, a.GameWin); c != 0 {
		return c
	}

	return cmp.Compare(b.OpponentGameWin, a.OpponentGameWin)
}

// Compare is the ranking order of two standings, suitable for
// slices.SortFunc: a negative result means a ranks above b. Players with
// equal keys are ordered by name so that the ranking is deterministic.
func Compare(a, b *Standing) int {
	if c := a.Key().Compare(b.Key()); c != 0 {
		return c
	}

	return cmp.Compare(a.Player, b.Player)
}

// Rank returns a copy of the given standings sorted from first to last
// place. Keys are computed once per player.
func Rank(players []*Standing) []*Standing {
	keys := make(map[*Standing]Key, len(players))
	for _, player := range players {
		keys[player] = player.Key()
	}

	ranked := slices.Clone(players)
	slices.SortStableFunc(ranked, func(a, b *Standing) int {
		if c := keys[a].Compare(keys[b]); c != 0 {
			return c
		}

		return cmp.Compare(a.Player, b.Player)
	})

	return ranked
}

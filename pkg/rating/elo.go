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

// Package rating implements the skill rating collaborators used by the
// standings: an Elo style Updater and a performance estimate for reports.
package rating

import "math"

// Updater computes new ratings for two players from a finished match. The
// score is from the first player's point of view: 1 for a win, 0.5 for a
// draw, and 0 for a loss. Implementations must be pure.
type Updater interface {
	Update(a, b, scoreA float64) (newA, newB float64)
}

// UpdaterFunc adapts an ordinary function to the Updater interface.
type UpdaterFunc func(a, b, scoreA float64) (float64, float64)

func (fn UpdaterFunc) Update(a, b, scoreA float64) (float64, float64) {
	return fn(a, b, scoreA)
}

// Default is the Updater used when none is configured.
var Default Updater = Elo{}

// Initial is the rating given to players without a known rating.
const Initial = 1400

// Floor is the lowest rating a player can be pushed down to.
const Floor = 1

// Elo is the classic Elo system with FIDE-like K bands. Ratings are kept
// as whole numbers, and whatever the gaining player earns is taken from
// the other player unless Spared is set.
type Elo struct {
	// Spared leaves the losing player's rating untouched.
	Spared bool
}

// KFactor returns the K used for a player gaining points at the given
// rating: 32 below 2100, 24 below 2400 and 16 above that.
func KFactor(rating float64) float64 {
	switch {
	case rating < 2100:
		return 32
	case rating < 2400:
		return 24
	default:
		return 16
	}
}

// Expected returns the expected score of a player rated a against a player
// rated b.
func Expected(a, b float64) float64 {
	return 1 / (1 + math.Pow(10, (b-a)/400))
}

func (elo Elo) Update(a, b, scoreA float64) (float64, float64) {
	// The K band is picked from the player who gains points, which is the
	// winner of a decisive game and the lower rated player of a draw.
	if scoreA < 0.5 || (scoreA == 0.5 && a > b) {
		newB, newA := elo.transfer(b, a, 1-scoreA)
		return newA, newB
	}

	return elo.transfer(a, b, scoreA)
}

func (elo Elo) transfer(gainer, loser, score float64) (float64, float64) {
	newGainer := math.Round(gainer + KFactor(gainer)*(score-Expected(gainer, loser)))
	if elo.Spared {
		return newGainer, loser
	}

	newLoser := loser - (newGainer - gainer)
	return newGainer, math.Max(newLoser, Floor)
}

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

// Package standings keeps the per-player tournament record of a Swiss event:
// match and game points, the opponents faced, the skill rating and the
// tie-break statistics used to rank players against each other.
package standings

import (
	"errors"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"

	"laptudirm.com/x/swiss/pkg/rating"
)

// Player identifies a tournament participant.
type Player string

// Points awarded for the result of a match, and the game points credited
// for a bye or a forfeit when the caller has no better number.
const (
	WinPoints  = 3
	DrawPoints = 1
	LossPoints = 0

	DefaultByeGamePoints = 2 * WinPoints
)

var (
	ErrNoOpponent    = errors.New("opponent standing is missing")
	ErrSelfMatch     = errors.New("player cannot play against themselves")
	ErrNegativeTally = errors.New("game tally cannot be negative")
	ErrSecondBye     = errors.New("player has already received a bye")
)

// Standing is the cumulative tournament record of a single player. The
// counters are only ever increased by the Record methods.
type Standing struct {
	Player Player
	Rating float64

	MatchPoints int
	GamePoints  int
	GamesPlayed int

	// AwardedGamePoints are the game points credited without a game
	// being played, i.e. from byes and forfeit wins.
	AwardedGamePoints int

	// Match results, byes and forfeit wins count as wins.
	Wins, Draws, Losses int

	opponents []Opponent
}

// New creates an empty Standing for the given player.
func New(player Player, rating float64) *Standing {
	return &Standing{
		Player: player,
		Rating: rating,
	}
}

// Is reports whether both standings belong to the same player. It says
// nothing about how they rank; see Compare for that.
func (standing *Standing) Is(other *Standing) bool {
	return other != nil && standing.Player == other.Player
}

// Opponents returns the player's match history in the order it was played.
func (standing *Standing) Opponents() []Opponent {
	return append([]Opponent(nil), standing.opponents...)
}

// Matches returns the number of rounds the player took part in, including
// byes and forfeits.
func (standing *Standing) Matches() int {
	return len(standing.opponents)
}

// HadBye reports whether the player has received a bye.
func (standing *Standing) HadBye() bool {
	for _, opponent := range standing.opponents {
		if opponent.IsBye() {
			return true
		}
	}

	return false
}

// HasPlayed reports whether the player has already faced the other player.
func (standing *Standing) HasPlayed(other *Standing) bool {
	for _, opponent := range standing.opponents {
		if record, ok := opponent.Standing(); ok && record.Is(other) {
			return true
		}
	}

	return false
}

// RecordMatch records a match against the other player given the number of
// games this player won, lost and drew. Both standings are updated, and
// both ratings are replaced with the ones computed by the updater, which
// defaults to rating.Default.
func (standing *Standing) RecordMatch(other *Standing, gameWins, gameLosses, gameDraws int, updater rating.Updater) error {
	if other == nil {
		return fmt.Errorf("record match %s: %w", standing.Player, ErrNoOpponent)
	}

	if standing.Is(other) {
		return fmt.Errorf("record match %s: %w", standing.Player, ErrSelfMatch)
	}

	if gameWins < 0 || gameLosses < 0 || gameDraws < 0 {
		return fmt.Errorf("record match %s vs %s: %w", standing.Player, other.Player, ErrNegativeTally)
	}

	if updater == nil {
		updater = rating.Default
	}

	ours := WinPoints*gameWins + DrawPoints*gameDraws
	theirs := WinPoints*gameLosses + DrawPoints*gameDraws

	standing.GamePoints += ours
	other.GamePoints += theirs

	games := gameWins + gameLosses + gameDraws
	standing.GamesPlayed += games
	other.GamesPlayed += games

	var score float64
	switch {
	case ours > theirs:
		score = 1
		standing.MatchPoints += WinPoints
		other.MatchPoints += LossPoints
		standing.Wins++
		other.Losses++

	case ours == theirs:
		score = 0.5
		standing.MatchPoints += DrawPoints
		other.MatchPoints += DrawPoints
		standing.Draws++
		other.Draws++

	default:
		score = 0
		standing.MatchPoints += LossPoints
		other.MatchPoints += WinPoints
		standing.Losses++
		other.Wins++
	}

	standing.opponents = append(standing.opponents, Real(other))
	other.opponents = append(other.opponents, Real(standing))

	old, otherOld := standing.Rating, other.Rating
	standing.Rating, other.Rating = updater.Update(old, otherOld, score)

	logrus.WithFields(logrus.Fields{
		"player":   standing.Player,
		"opponent": other.Player,
		"score":    score,
	}).Infof(
		"Rating change: %s %.0f -> %.0f, %s %.0f -> %.0f",
		standing.Player, old, standing.Rating,
		other.Player, otherOld, other.Rating,
	)

	return nil
}

// RecordBye credits the player with a match win and the given game points
// for a round without an opponent. A player can receive only one bye.
func (standing *Standing) RecordBye(gamePoints int) error {
	if standing.HadBye() {
		return fmt.Errorf("record bye %s: %w", standing.Player, ErrSecondBye)
	}

	if gamePoints < 0 {
		return fmt.Errorf("record bye %s: %w", standing.Player, ErrNegativeTally)
	}

	standing.award(gamePoints)
	standing.opponents = append(standing.opponents, Bye())

	logrus.WithField("player", standing.Player).Debug("Recorded bye")
	return nil
}

// RecordForfeitWin credits the player with a match win over an opponent
// who forfeited. Both players are marked as having played each other, but
// the forfeiting player's points are left alone: any further penalty is
// up to the caller.
func (standing *Standing) RecordForfeitWin(other *Standing, gamePoints int) error {
	if other == nil {
		return fmt.Errorf("record forfeit %s: %w", standing.Player, ErrNoOpponent)
	}

	if standing.Is(other) {
		return fmt.Errorf("record forfeit %s: %w", standing.Player, ErrSelfMatch)
	}

	if gamePoints < 0 {
		return fmt.Errorf("record forfeit %s: %w", standing.Player, ErrNegativeTally)
	}

	standing.award(gamePoints)
	standing.opponents = append(standing.opponents, Real(other))
	other.opponents = append(other.opponents, Real(standing))

	logrus.WithFields(logrus.Fields{
		"player":   standing.Player,
		"opponent": other.Player,
	}).Debug("Recorded forfeit win")
	return nil
}

// award credits an unplayed match win.
func (standing *Standing) award(gamePoints int) {
	standing.MatchPoints += WinPoints
	standing.GamePoints += gamePoints
	standing.AwardedGamePoints += gamePoints
	standing.Wins++
}

func (standing *Standing) String() string {
	opponents := make([]string, len(standing.opponents))
	for i, opponent := range standing.opponents {
		opponents[i] = opponent.String()
	}

	return fmt.Sprintf(
		"%s: MP=%d GP=%d rating=%.0f opponents=[%s]",
		standing.Player, standing.MatchPoints, standing.GamePoints,
		standing.Rating, strings.Join(opponents, ","),
	)
}

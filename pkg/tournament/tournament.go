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

// Package tournament runs Swiss tournaments: it pairs each round, routes
// reported results to the players' standings and keeps track of the
// rounds played so a tournament can be saved and resumed later.
package tournament

import (
	"errors"
	"fmt"
	"math/rand"
	"slices"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"laptudirm.com/x/swiss/pkg/pairing"
	"laptudirm.com/x/swiss/pkg/rating"
	"laptudirm.com/x/swiss/pkg/standings"
)

var (
	ErrRoundInProgress = errors.New("current round has unreported results")
	ErrFinished        = errors.New("all rounds have been played")
	ErrNotPaired       = errors.New("players are not paired in the current round")
	ErrReported        = errors.New("result has already been reported")
)

// Result kinds of a board.
const (
	ResultPending = ""
	ResultPlayed  = "played"
	ResultBye     = "bye"
	ResultForfeit = "forfeit"
)

// Board is a single pairing of a round along with its result. Players are
// referred to by name so that rounds can be stored as they are.
type Board struct {
	Player   standings.Player `yaml:"player"`
	Opponent standings.Player `yaml:"opponent,omitempty"` // empty for a bye

	Result string `yaml:"result,omitempty"`

	// Game tally from Player's point of view.
	Wins   int `yaml:"wins,omitempty"`
	Losses int `yaml:"losses,omitempty"`
	Draws  int `yaml:"draws,omitempty"`

	// Winner of a forfeited board.
	Winner standings.Player `yaml:"winner,omitempty"`
}

// IsBye reports whether the board is a bye.
func (board Board) IsBye() bool {
	return board.Opponent == ""
}

// Reported reports whether the board has a result.
func (board Board) Reported() bool {
	return board.Result != ResultPending
}

// Has reports whether both players sit at the board, in either order.
func (board Board) Has(a, b standings.Player) bool {
	return (board.Player == a && board.Opponent == b) ||
		(board.Player == b && board.Opponent == a)
}

func (board Board) String() string {
	switch {
	case board.IsBye():
		return fmt.Sprintf("%s: BYE", board.Player)
	case board.Result == ResultPlayed:
		return fmt.Sprintf("%s vs %s: %d-%d-%d", board.Player, board.Opponent, board.Wins, board.Losses, board.Draws)
	case board.Result == ResultForfeit:
		return fmt.Sprintf("%s vs %s: %s wins by forfeit", board.Player, board.Opponent, board.Winner)
	default:
		return fmt.Sprintf("%s vs %s", board.Player, board.Opponent)
	}
}

// Round is a round of the tournament.
type Round struct {
	Number int     `yaml:"number"`
	Boards []Board `yaml:"boards"`
}

// Pending returns the boards of the round still waiting for a result.
func (round Round) Pending() []Board {
	var pending []Board
	for _, board := range round.Boards {
		if !board.Reported() {
			pending = append(pending, board)
		}
	}

	return pending
}

// Tournament is a Swiss tournament session. It owns the standings of its
// players; separate tournaments share no state. A Tournament is not safe
// for concurrent use.
type Tournament struct {
	ID     uuid.UUID
	Name   string
	Config Config

	// Updater computes rating changes; rating.Default if nil.
	Updater rating.Updater

	table  *standings.Table
	rounds []Round
}

// New creates a tournament with the given players. A zero initial rating
// or pairing budget is replaced by its default; every other field is used
// as given, so callers usually start from DefaultConfig.
func New(name string, config Config, players ...standings.Player) (*Tournament, error) {
	config = withDefaults(config)
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("new tournament %s: %w", name, err)
	}

	tour := &Tournament{
		ID:     uuid.New(),
		Name:   name,
		Config: config,
		table:  standings.NewTable(),
	}

	for _, player := range players {
		if err := tour.AddPlayer(player, 0); err != nil {
			return nil, fmt.Errorf("new tournament %s: %w", name, err)
		}
	}

	logrus.WithFields(logrus.Fields{
		"id":      tour.ID,
		"players": len(players),
	}).Debugf("Created tournament %s", name)
	return tour, nil
}

func withDefaults(config Config) Config {
	defaults := DefaultConfig()
	if config.InitialRating == 0 {
		config.InitialRating = defaults.InitialRating
	}

	if config.Pairing.Attempts == 0 {
		config.Pairing.Attempts = defaults.Pairing.Attempts
	}

	if config.Pairing.GroupAttempts == 0 {
		config.Pairing.GroupAttempts = defaults.Pairing.GroupAttempts
	}

	return config
}

// AddPlayer enters a player into the tournament. A zero rating is replaced
// by the configured initial rating. Late entries are accepted between
// rounds.
func (tour *Tournament) AddPlayer(player standings.Player, initial float64) error {
	if tour.inProgress() {
		return fmt.Errorf("add player %s: %w", player, ErrRoundInProgress)
	}

	if initial == 0 {
		initial = tour.Config.InitialRating
	}

	_, err := tour.table.Add(player, initial)
	return err
}

// Pair pairs the next round and returns it. A bye given in the round is
// recorded straight away. Pairing fails while the current round still has
// unreported boards, and once the configured number of rounds is done.
func (tour *Tournament) Pair() (Round, error) {
	if tour.inProgress() {
		return Round{}, ErrRoundInProgress
	}

	if tour.Finished() {
		return Round{}, ErrFinished
	}

	number := len(tour.rounds) + 1

	pairings, err := tour.engine().AssignPairings(tour.table.Standings())
	if err != nil {
		return Round{}, fmt.Errorf("pair round %d: %w", number, err)
	}

	round := Round{Number: number}
	for _, p := range pairings {
		board := Board{Player: p.Player.Player}
		if opponent, ok := p.Opponent.Standing(); ok {
			board.Opponent = opponent.Player
		} else {
			if err := p.Player.RecordBye(tour.Config.ByeGamePoints); err != nil {
				return Round{}, fmt.Errorf("pair round %d: %w", number, err)
			}

			board.Result = ResultBye
		}

		round.Boards = append(round.Boards, board)
	}

	tour.rounds = append(tour.rounds, round)

	logrus.WithField("tournament", tour.Name).Infof("Paired round #%d: %d boards", number, len(round.Boards))
	return round, nil
}

// engine returns the pairing engine for the next round. With a fixed seed
// every round gets its own seed, so a resumed tournament pairs exactly as
// an uninterrupted one would.
func (tour *Tournament) engine() *pairing.Engine {
	config := tour.Config.Pairing
	if config.Seed == 0 {
		return pairing.New(config, nil)
	}

	// the round seed may well be zero, which the engine would take as
	// a request for a time based seed
	config.Seed += int64(len(tour.rounds))
	return pairing.New(config, rand.New(rand.NewSource(config.Seed)))
}

// RecordMatch reports the result of a board of the current round. The
// tally is from a's point of view, and a and b may be given in either
// order.
func (tour *Tournament) RecordMatch(a, b standings.Player, wins, losses, draws int) error {
	board, err := tour.board(a, b)
	if err != nil {
		return err
	}

	first, second, err := tour.lookup(a, b)
	if err != nil {
		return err
	}

	if err := first.RecordMatch(second, wins, losses, draws, tour.Updater); err != nil {
		return err
	}

	if board.Player != a {
		wins, losses = losses, wins
	}

	board.Result = ResultPlayed
	board.Wins, board.Losses, board.Draws = wins, losses, draws
	return nil
}

// RecordForfeit reports that loser forfeited their board of the current
// round against winner. The winner is credited a win; the loser's record
// is left unchanged apart from the pairing.
func (tour *Tournament) RecordForfeit(winner, loser standings.Player) error {
	board, err := tour.board(winner, loser)
	if err != nil {
		return err
	}

	first, second, err := tour.lookup(winner, loser)
	if err != nil {
		return err
	}

	if err := first.RecordForfeitWin(second, tour.Config.ByeGamePoints); err != nil {
		return err
	}

	board.Result = ResultForfeit
	board.Winner = winner
	return nil
}

// board finds the unreported board of the current round where a and b
// play each other.
func (tour *Tournament) board(a, b standings.Player) (*Board, error) {
	if len(tour.rounds) == 0 {
		return nil, fmt.Errorf("%s vs %s: %w", a, b, ErrNotPaired)
	}

	round := &tour.rounds[len(tour.rounds)-1]
	for i := range round.Boards {
		board := &round.Boards[i]
		if !board.Has(a, b) {
			continue
		}

		if board.Reported() {
			return nil, fmt.Errorf("%s: %w", board, ErrReported)
		}

		return board, nil
	}

	return nil, fmt.Errorf("%s vs %s in round #%d: %w", a, b, round.Number, ErrNotPaired)
}

func (tour *Tournament) lookup(a, b standings.Player) (*standings.Standing, *standings.Standing, error) {
	first, err := tour.table.Lookup(a)
	if err != nil {
		return nil, nil, err
	}

	second, err := tour.table.Lookup(b)
	if err != nil {
		return nil, nil, err
	}

	return first, second, nil
}

// Standings returns the players ranked by their current standing.
func (tour *Tournament) Standings() []*standings.Standing {
	return tour.table.Ranked()
}

// Player returns the standing of the given player.
func (tour *Tournament) Player(player standings.Player) (*standings.Standing, error) {
	return tour.table.Lookup(player)
}

// Round returns the number of rounds paired so far.
func (tour *Tournament) Round() int {
	return len(tour.rounds)
}

// Rounds returns every round paired so far.
func (tour *Tournament) Rounds() []Round {
	return cloneRounds(tour.rounds)
}

func cloneRounds(rounds []Round) []Round {
	clone := make([]Round, len(rounds))
	for i, round := range rounds {
		clone[i] = Round{
			Number: round.Number,
			Boards: slices.Clone(round.Boards),
		}
	}

	return clone
}

// Current returns the latest round, and false before the first round.
func (tour *Tournament) Current() (Round, bool) {
	if len(tour.rounds) == 0 {
		return Round{}, false
	}

	rounds := tour.Rounds()
	return rounds[len(rounds)-1], true
}

// Finished reports whether every configured round has been played and
// reported. A tournament without a round limit is never finished.
func (tour *Tournament) Finished() bool {
	return tour.Config.Rounds > 0 &&
		len(tour.rounds) >= tour.Config.Rounds &&
		!tour.inProgress()
}

func (tour *Tournament) inProgress() bool {
	round, ok := tour.Current()
	return ok && len(round.Pending()) > 0
}

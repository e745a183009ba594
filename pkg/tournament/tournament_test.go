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

package tournament_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"laptudirm.com/x/swiss/pkg/standings"
	"laptudirm.com/x/swiss/pkg/tournament"
)

func newTournament(t *testing.T, rounds int, players ...standings.Player) *tournament.Tournament {
	t.Helper()

	return newSeededTournament(t, rounds, 1, players...)
}

func newSeededTournament(t *testing.T, rounds int, seed int64, players ...standings.Player) *tournament.Tournament {
	t.Helper()

	config := tournament.DefaultConfig()
	config.Rounds = rounds
	config.Pairing.Seed = seed

	tour, err := tournament.New("test", config, players...)
	require.NoError(t, err)
	return tour
}

// playRound reports every pending board of the round as a 2-0 win for
// the board's first player.
func playRound(t *testing.T, tour *tournament.Tournament, round tournament.Round) {
	t.Helper()

	for _, board := range round.Pending() {
		require.NoError(t, tour.RecordMatch(board.Player, board.Opponent, 2, 0, 0))
	}
}

func TestPairAndRecord(t *testing.T) {
	tour := newTournament(t, 2, "A", "B", "C", "D")
	assert.False(t, tour.Finished())

	round, err := tour.Pair()
	require.NoError(t, err)
	assert.Equal(t, 1, round.Number)
	assert.Len(t, round.Boards, 2)
	assert.Len(t, round.Pending(), 2)

	_, err = tour.Pair()
	assert.ErrorIs(t, err, tournament.ErrRoundInProgress)

	// report the first board from the opponent's side
	first, second := round.Boards[0], round.Boards[1]
	require.NoError(t, tour.RecordMatch(first.Opponent, first.Player, 1, 2, 0))
	require.NoError(t, tour.RecordMatch(second.Player, second.Opponent, 1, 1, 1))

	current, ok := tour.Current()
	require.True(t, ok)
	assert.Empty(t, current.Pending())
	assert.Equal(t, tournament.ResultPlayed, current.Boards[0].Result)
	assert.Equal(t, []int{2, 1, 0}, []int{current.Boards[0].Wins, current.Boards[0].Losses, current.Boards[0].Draws})

	winner, err := tour.Player(first.Player)
	require.NoError(t, err)
	assert.Equal(t, standings.WinPoints, winner.MatchPoints)

	drawn, err := tour.Player(second.Opponent)
	require.NoError(t, err)
	assert.Equal(t, standings.DrawPoints, drawn.MatchPoints)

	round, err = tour.Pair()
	require.NoError(t, err)
	assert.Equal(t, 2, round.Number)
	for _, board := range round.Boards {
		a, _ := tour.Player(board.Player)
		b, _ := tour.Player(board.Opponent)
		assert.False(t, a.HasPlayed(b), "repeat pairing %s", board)
	}

	playRound(t, tour, round)
	assert.True(t, tour.Finished())
	assert.Equal(t, 2, tour.Round())

	_, err = tour.Pair()
	assert.ErrorIs(t, err, tournament.ErrFinished)
}

func TestPairRecordsBye(t *testing.T) {
	tour := newTournament(t, 0, "A", "B", "C")

	round, err := tour.Pair()
	require.NoError(t, err)
	require.Len(t, round.Boards, 2)

	bye := round.Boards[1]
	assert.True(t, bye.IsBye())
	assert.True(t, bye.Reported())
	assert.Equal(t, tournament.ResultBye, bye.Result)
	assert.Len(t, round.Pending(), 1)

	player, err := tour.Player(bye.Player)
	require.NoError(t, err)
	assert.True(t, player.HadBye())
	assert.Equal(t, standings.WinPoints, player.MatchPoints)
	assert.Equal(t, standings.DefaultByeGamePoints, player.GamePoints)
}

func TestRecordErrors(t *testing.T) {
	tour := newTournament(t, 0, "A", "B", "C", "D")

	err := tour.RecordMatch("A", "B", 2, 0, 0)
	assert.ErrorIs(t, err, tournament.ErrNotPaired)

	round, err := tour.Pair()
	require.NoError(t, err)
	board := round.Boards[0]

	err = tour.RecordMatch(board.Player, board.Player, 2, 0, 0)
	assert.ErrorIs(t, err, tournament.ErrNotPaired)

	err = tour.RecordMatch(board.Player, board.Opponent, -1, 0, 0)
	assert.ErrorIs(t, err, standings.ErrNegativeTally)

	require.NoError(t, tour.RecordMatch(board.Player, board.Opponent, 2, 0, 0))
	err = tour.RecordMatch(board.Player, board.Opponent, 2, 0, 0)
	assert.ErrorIs(t, err, tournament.ErrReported)
	err = tour.RecordForfeit(board.Opponent, board.Player)
	assert.ErrorIs(t, err, tournament.ErrReported)
}

func TestRecordForfeit(t *testing.T) {
	tour := newTournament(t, 0, "A", "B")

	round, err := tour.Pair()
	require.NoError(t, err)
	board := round.Boards[0]

	require.NoError(t, tour.RecordForfeit(board.Opponent, board.Player))

	winner, _ := tour.Player(board.Opponent)
	loser, _ := tour.Player(board.Player)
	assert.Equal(t, standings.WinPoints, winner.MatchPoints)
	assert.Equal(t, 0, loser.MatchPoints)
	assert.True(t, loser.HasPlayed(winner))

	current, _ := tour.Current()
	assert.Equal(t, tournament.ResultForfeit, current.Boards[0].Result)
	assert.Equal(t, board.Opponent, current.Boards[0].Winner)
	assert.Contains(t, current.Boards[0].String(), "wins by forfeit")
}

func TestAddPlayer(t *testing.T) {
	tour := newTournament(t, 0, "A", "B")

	assert.ErrorIs(t, tour.AddPlayer("A", 0), standings.ErrDuplicatePlayer)

	round, err := tour.Pair()
	require.NoError(t, err)
	assert.ErrorIs(t, tour.AddPlayer("C", 0), tournament.ErrRoundInProgress)

	playRound(t, tour, round)
	require.NoError(t, tour.AddPlayer("C", 1800))

	late, err := tour.Player("C")
	require.NoError(t, err)
	assert.Equal(t, 1800.0, late.Rating)
	assert.Zero(t, late.Matches())
}

func TestStandingsAreRanked(t *testing.T) {
	tour := newTournament(t, 0, "A", "B", "C", "D")

	round, err := tour.Pair()
	require.NoError(t, err)
	playRound(t, tour, round)

	ranked := tour.Standings()
	require.Len(t, ranked, 4)
	assert.Equal(t, standings.WinPoints, ranked[0].MatchPoints)
	assert.Equal(t, standings.WinPoints, ranked[1].MatchPoints)
	assert.Equal(t, 0, ranked[3].MatchPoints)
}

func TestReport(t *testing.T) {
	tour := newTournament(t, 0, "Alice", "Bob", "Carol")

	round, err := tour.Pair()
	require.NoError(t, err)
	playRound(t, tour, round)

	var out bytes.Buffer
	require.NoError(t, tour.Report(&out))

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Len(t, lines, 8)
	assert.Equal(t, "test, round 1", lines[0])
	assert.Contains(t, lines[2], "OMW%")
	for _, name := range []string{"Alice", "Bob", "Carol"} {
		assert.Contains(t, out.String(), name)
	}

	// every row of the box is as wide as its border
	width := len([]rune(lines[1]))
	for _, line := range lines[1:] {
		assert.Equal(t, width, len([]rune(line)), "line %q", line)
	}

	out.Reset()
	require.NoError(t, tournament.WriteRound(&out, round))
	assert.Contains(t, out.String(), "Round #1")
	assert.Contains(t, out.String(), ": BYE")
}

func TestFixedSeedPairsTheSame(t *testing.T) {
	players := []standings.Player{"A", "B", "C", "D", "E", "F", "G", "H"}

	// negative seeds reach zero in a later round
	for _, seed := range []int64{-1, -2, 3} {
		first := newSeededTournament(t, 0, seed, players...)
		second := newSeededTournament(t, 0, seed, players...)

		for number := 1; number <= 3; number++ {
			a, err := first.Pair()
			require.NoError(t, err)
			b, err := second.Pair()
			require.NoError(t, err)

			if diff := cmp.Diff(a, b); diff != "" {
				t.Fatalf("seed %d round %d differs (-first +second):\n%s", seed, number, diff)
			}

			playRound(t, first, a)
			playRound(t, second, b)
		}
	}
}

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

package pairing_test

import (
	"errors"
	"fmt"
	"math/rand"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"laptudirm.com/x/swiss/pkg/pairing"
	"laptudirm.com/x/swiss/pkg/standings"
)

func newPlayers(t *testing.T, names ...standings.Player) (*standings.Table, []*standings.Standing) {
	t.Helper()

	table := standings.NewTable()
	for _, name := range names {
		_, err := table.Add(name, 1400)
		require.NoError(t, err)
	}

	return table, table.Standings()
}

func seeded(seed int64) *pairing.Engine {
	return pairing.New(pairing.Config{}, rand.New(rand.NewSource(seed)))
}

func names(pairings []pairing.Pairing) []string {
	out := make([]string, len(pairings))
	for i, p := range pairings {
		out[i] = p.String()
	}

	return out
}

// assertLegal checks that the pairings cover every player exactly once,
// repeat no earlier match and give a bye only to a player without one.
func assertLegal(t *testing.T, players []*standings.Standing, pairings []pairing.Pairing) {
	t.Helper()

	seen := map[standings.Player]int{}
	byes := 0
	for _, p := range pairings {
		for _, player := range p.Players() {
			seen[player.Player]++
		}

		if p.IsBye() {
			byes++
			assert.False(t, p.Player.HadBye(), "second bye for %s", p.Player.Player)
			continue
		}

		opponent, _ := p.Opponent.Standing()
		assert.False(t, p.Player.HasPlayed(opponent), "repeat pairing %s", p)
		assert.False(t, opponent.HasPlayed(p.Player), "repeat pairing %s", p)
	}

	assert.Len(t, seen, len(players))
	for _, player := range players {
		assert.Equal(t, 1, seen[player.Player], "player %s", player.Player)
	}

	assert.Equal(t, len(players)%2, byes)
}

func TestFreshFourPlayers(t *testing.T) {
	_, players := newPlayers(t, "A", "B", "C", "D")

	pairings, err := seeded(1).AssignPairings(players)
	require.NoError(t, err)

	assert.Len(t, pairings, 2)
	assertLegal(t, players, pairings)
}

func TestByeSkipsPreviousRecipient(t *testing.T) {
	table, players := newPlayers(t, "A", "B", "C", "D", "E")

	e, _ := table.Get("E")
	require.NoError(t, e.RecordBye(standings.DefaultByeGamePoints))

	for seed := int64(0); seed < 20; seed++ {
		pairings, err := seeded(seed).AssignPairings(players)
		require.NoError(t, err)
		require.Len(t, pairings, 3)
		assertLegal(t, players, pairings)

		last := pairings[len(pairings)-1]
		require.True(t, last.IsBye())
		assert.Equal(t, standings.Player("D"), last.Player.Player)
	}
}

func TestNoRepeatPairing(t *testing.T) {
	table, players := newPlayers(t, "A", "B", "C", "D")

	a, _ := table.Get("A")
	b, _ := table.Get("B")
	require.NoError(t, a.RecordMatch(b, 2, 0, 0, nil))

	for seed := int64(0); seed < 20; seed++ {
		pairings, err := seeded(seed).AssignPairings(players)
		require.NoError(t, err)
		assertLegal(t, players, pairings)

		for _, p := range pairings {
			assert.NotEqual(t, "A vs B", p.String())
			assert.NotEqual(t, "B vs A", p.String())
		}
	}
}

func TestSeededDeterminism(t *testing.T) {
	_, players := newPlayers(t, "A", "B", "C", "D", "E", "F", "G", "H", "I")

	first, err := pairing.New(pairing.Config{Seed: 42}, nil).AssignPairings(players)
	require.NoError(t, err)
	second, err := pairing.New(pairing.Config{Seed: 42}, nil).AssignPairings(players)
	require.NoError(t, err)

	if diff := cmp.Diff(names(first), names(second)); diff != "" {
		t.Errorf("pairings differ for the same seed (-first +second):\n%s", diff)
	}
}

func TestScoreGroupsStayTogether(t *testing.T) {
	table, players := newPlayers(t, "A", "B", "C", "D")

	a, _ := table.Get("A")
	b, _ := table.Get("B")
	c, _ := table.Get("C")
	d, _ := table.Get("D")
	require.NoError(t, a.RecordMatch(b, 2, 0, 0, nil))
	require.NoError(t, c.RecordMatch(d, 2, 1, 0, nil))

	for seed := int64(0); seed < 20; seed++ {
		pairings, err := seeded(seed).AssignPairings(players)
		require.NoError(t, err)
		require.Len(t, pairings, 2)

		for _, p := range pairings {
			opponent, ok := p.Opponent.Standing()
			require.True(t, ok)
			assert.Equal(t, p.Player.MatchPoints, opponent.MatchPoints, "pairing %s", p)
		}
	}
}

func TestSingletonGroupIsCarriedDown(t *testing.T) {
	table, players := newPlayers(t, "A", "B", "C", "D")

	a, _ := table.Get("A")
	b, _ := table.Get("B")
	require.NoError(t, a.RecordMatch(b, 2, 0, 0, nil))

	for seed := int64(0); seed < 20; seed++ {
		pairings, err := seeded(seed).AssignPairings(players)
		require.NoError(t, err)
		require.Len(t, pairings, 2)
		assertLegal(t, players, pairings)

		// the lone leader is placed first in the group below
		assert.Equal(t, standings.Player("A"), pairings[0].Player.Player)
	}
}

func TestMultiRoundProperties(t *testing.T) {
	tests := []struct {
		players int
		rounds  int
	}{
		{players: 8, rounds: 4},
		{players: 7, rounds: 3},
		{players: 2, rounds: 1},
		{players: 1, rounds: 1},
	}

	for _, test := range tests {
		t.Run(fmt.Sprintf("%d players", test.players), func(t *testing.T) {
			var list []standings.Player
			for i := 0; i < test.players; i++ {
				list = append(list, standings.Player(fmt.Sprintf("P%02d", i)))
			}

			table, players := newPlayers(t, list...)
			engine := seeded(int64(test.players))

			for round := 1; round <= test.rounds; round++ {
				pairings, err := engine.AssignPairings(players)
				require.NoError(t, err, "round %d", round)
				assertLegal(t, players, pairings)

				for _, p := range pairings {
					if opponent, ok := p.Opponent.Standing(); ok {
						require.NoError(t, p.Player.RecordMatch(opponent, 0, 0, 1, nil))
					} else {
						require.NoError(t, p.Player.RecordBye(standings.DefaultByeGamePoints))
					}
				}
			}

			for _, player := range table.Standings() {
				assert.Equal(t, test.rounds, player.Matches())
			}
		})
	}
}

func TestNoByeCandidate(t *testing.T) {
	_, players := newPlayers(t, "A")
	require.NoError(t, players[0].RecordBye(standings.DefaultByeGamePoints))

	_, err := seeded(1).AssignPairings(players)
	assert.ErrorIs(t, err, pairing.ErrNoByeCandidate)
}

func TestExhausted(t *testing.T) {
	table, players := newPlayers(t, "A", "B", "C", "D")

	a, _ := table.Get("A")
	for _, name := range []standings.Player{"B", "C", "D"} {
		other, _ := table.Get(name)
		require.NoError(t, a.RecordMatch(other, 2, 0, 0, nil))
	}

	engine := pairing.New(pairing.Config{Attempts: 3, GroupAttempts: 2}, rand.New(rand.NewSource(1)))
	_, err := engine.AssignPairings(players)
	require.Error(t, err)
	assert.ErrorIs(t, err, pairing.ErrExhausted)

	var exhausted *pairing.ExhaustedError
	require.True(t, errors.As(err, &exhausted))
	assert.Equal(t, 4, exhausted.Players)
	assert.Equal(t, 3, exhausted.Attempts)
	assert.Equal(t, 2, exhausted.GroupAttempts)
}

func TestInvalidInput(t *testing.T) {
	_, err := seeded(1).AssignPairings(nil)
	assert.ErrorIs(t, err, pairing.ErrNoPlayers)

	_, players := newPlayers(t, "A", "B")
	_, err = seeded(1).AssignPairings([]*standings.Standing{players[0], players[1], players[0]})
	assert.ErrorIs(t, err, pairing.ErrDuplicate)
}

func TestConfigDefaults(t *testing.T) {
	config := pairing.New(pairing.Config{}, nil).Config()
	assert.Equal(t, pairing.DefaultAttempts, config.Attempts)
	assert.Equal(t, pairing.DefaultGroupAttempts, config.GroupAttempts)
	assert.NotZero(t, config.Seed)

	config = pairing.New(pairing.Config{Attempts: 5, GroupAttempts: 7, Seed: 9}, nil).Config()
	assert.Equal(t, pairing.Config{Attempts: 5, GroupAttempts: 7, Seed: 9}, config)
}

func TestPairingString(t *testing.T) {
	a, b := standings.New("A", 1400), standings.New("B", 1400)

	assert.Equal(t, "A vs B", pairing.Pairing{Player: a, Opponent: standings.Real(b)}.String())
	assert.Equal(t, "A: BYE", pairing.Pairing{Player: a, Opponent: standings.Bye()}.String())
	assert.Len(t, pairing.Pairing{Player: a}.Players(), 1)
}

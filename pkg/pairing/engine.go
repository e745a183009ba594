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

// Package pairing assigns the pairings of a Swiss round: players with the
// same match points are paired with each other as far as possible, nobody
// meets an opponent twice and nobody receives a second bye.
//
// The search is randomized rather than exhaustive. Each score group is
// shuffled and greedily paired, a group which hits a dead end is shuffled
// again, and a search where some group never works out is restarted from
// the top. Both budgets are configurable; running out of them is reported
// with an *ExhaustedError.
package pairing

import (
	"fmt"
	"math/rand"
	"slices"
	"time"

	"github.com/sirupsen/logrus"

	"laptudirm.com/x/swiss/pkg/standings"
)

// Default search budgets.
const (
	DefaultAttempts      = 100
	DefaultGroupAttempts = 100
)

// Config controls the pairing search.
type Config struct {
	// Number of full searches tried before giving up.
	Attempts int `yaml:"attempts"`

	// Number of shuffles tried for a single score group before the
	// whole search is restarted.
	GroupAttempts int `yaml:"group-attempts"`

	// Seed of the random source. Zero picks a time based seed.
	Seed int64 `yaml:"seed"`
}

// Engine pairs the players of a tournament round by round. An Engine is
// not safe for concurrent use.
type Engine struct {
	config Config
	random *rand.Rand
}

// New creates an Engine. If random is nil the Engine creates its own
// source from config.Seed.
func New(config Config, random *rand.Rand) *Engine {
	if config.Attempts <= 0 {
		config.Attempts = DefaultAttempts
	}

	if config.GroupAttempts <= 0 {
		config.GroupAttempts = DefaultGroupAttempts
	}

	if random == nil {
		if config.Seed == 0 {
			config.Seed = time.Now().UnixNano()
		}

		logrus.WithField("seed", config.Seed).Debug("Seeding pairing engine")
		random = rand.New(rand.NewSource(config.Seed))
	}

	return &Engine{
		config: config,
		random: random,
	}
}

// Config returns the configuration the Engine runs with, defaults applied.
func (engine *Engine) Config() Config {
	return engine.config
}

// AssignPairings returns the pairings of the next round for the given
// players. Every player appears in exactly one pairing, no two players who
// have met before are paired, and if the number of players is odd the
// lowest ranked player without a bye receives one, listed last.
func (engine *Engine) AssignPairings(players []*standings.Standing) ([]Pairing, error) {
	if len(players) == 0 {
		return nil, ErrNoPlayers
	}

	seen := make(map[standings.Player]bool, len(players))
	for _, player := range players {
		if seen[player.Player] {
			return nil, fmt.Errorf("%w: %s", ErrDuplicate, player.Player)
		}

		seen[player.Player] = true
	}

	pool := standings.Rank(players)

	var bye *standings.Standing
	if len(pool)%2 == 1 {
		i := byeCandidate(pool)
		if i < 0 {
			return nil, ErrNoByeCandidate
		}

		bye = pool[i]
		pool = slices.Delete(pool, i, i+1)
	}

	groups := scoreGroups(pool)

	for attempt := 1; attempt <= engine.config.Attempts; attempt++ {
		pairings, ok := engine.search(groups)
		if !ok {
			logrus.WithField("attempt", attempt).Trace("Pairing search hit a dead end, restarting")
			continue
		}

		if bye != nil {
			pairings = append(pairings, Pairing{Player: bye, Opponent: standings.Bye()})
		}

		logrus.WithFields(logrus.Fields{
			"players":  len(players),
			"groups":   len(groups),
			"attempts": attempt,
		}).Debug("Assigned pairings")
		return pairings, nil
	}

	return nil, &ExhaustedError{
		Players:       len(pool),
		Attempts:      engine.config.Attempts,
		GroupAttempts: engine.config.GroupAttempts,
	}
}

// byeCandidate returns the index of the lowest ranked player who has not
// had a bye yet, or -1 if there is none.
func byeCandidate(ranked []*standings.Standing) int {
	for i := len(ranked) - 1; i >= 0; i-- {
		if !ranked[i].HadBye() {
			return i
		}
	}

	return -1
}

// scoreGroups splits ranked players into runs of equal match points,
// keeping their order.
func scoreGroups(ranked []*standings.Standing) [][]*standings.Standing {
	var groups [][]*standings.Standing
	for start := 0; start < len(ranked); {
		end := start + 1
		for end < len(ranked) && ranked[end].MatchPoints == ranked[start].MatchPoints {
			end++
		}

		groups = append(groups, ranked[start:end])
		start = end
	}

	return groups
}

// search makes one attempt at pairing every group from the top down. A
// player left unpaired by a group, and a group made of a single player,
// is carried down into the next group.
func (engine *Engine) search(groups [][]*standings.Standing) ([]Pairing, bool) {
	var pairings []Pairing
	var leftover *standings.Standing

	for _, group := range groups {
		if len(group) == 1 && leftover == nil {
			leftover = group[0]
			continue
		}

		paired := false
		for try := 0; try < engine.config.GroupAttempts; try++ {
			found, next, ok := engine.pass(group, leftover)
			if ok {
				pairings = append(pairings, found...)
				leftover = next
				paired = true
				break
			}
		}

		if !paired {
			return nil, false
		}
	}

	return pairings, leftover == nil
}

// pass shuffles the group, puts the carried player in front, and pairs
// each player in turn with the first remaining player they have not met.
// It fails as soon as a player has no such partner; a player left over at
// the end is returned to be carried into the next group.
func (engine *Engine) pass(group []*standings.Standing, leftover *standings.Standing) ([]Pairing, *standings.Standing, bool) {
	remaining := make([]*standings.Standing, 0, len(group)+1)
	remaining = append(remaining, group...)
	engine.random.Shuffle(len(remaining), func(i, j int) {
		remaining[i], remaining[j] = remaining[j], remaining[i]
	})

	if leftover != nil {
		remaining = slices.Insert(remaining, 0, leftover)
	}

	var pairings []Pairing
	for len(remaining) > 0 {
		player := remaining[0]
		if len(remaining) == 1 {
			return pairings, player, true
		}

		i := slices.IndexFunc(remaining[1:], func(other *standings.Standing) bool {
			return compatible(player, other)
		})
		if i < 0 {
			return nil, nil, false
		}

		pairings = append(pairings, Pairing{
			Player:   player,
			Opponent: standings.Real(remaining[i+1]),
		})
		remaining = slices.Delete(remaining, i+1, i+2)[1:]
	}

	return pairings, nil, true
}

// compatible reports whether two players may be paired with each other.
func compatible(a, b *standings.Standing) bool {
	return !a.Is(b) && !a.HasPlayed(b) && !b.HasPlayed(a)
}

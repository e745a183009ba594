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

var (
	ErrDuplicatePlayer = errors.New("player is already registered")
	ErrUnknownPlayer   = errors.New("player is not registered")
)

// Table is the set of standings of one tournament, indexed by player. It
// owns the standings it hands out; tournaments never share a Table.
type Table struct {
	order []*Standing
	index map[Player]*Standing
}

// NewTable creates an empty Table.
func NewTable() *Table {
	return &Table{
		index: make(map[Player]*Standing),
	}
}

// Add registers a new player with the given starting rating.
func (table *Table) Add(player Player, rating float64) (*Standing, error) {
	if _, found := table.index[player]; found {
		return nil, fmt.Errorf("add %s: %w", player, ErrDuplicatePlayer)
	}

	standing := New(player, rating)
	table.order = append(table.order, standing)
	table.index[player] = standing
	return standing, nil
}

// Get returns the standing of the given player.
func (table *Table) Get(player Player) (*Standing, bool) {
	standing, found := table.index[player]
	return standing, found
}

// Lookup is like Get but reports a missing player as an error.
func (table *Table) Lookup(player Player) (*Standing, error) {
	if standing, found := table.index[player]; found {
		return standing, nil
	}

	return nil, fmt.Errorf("lookup %s: %w", player, ErrUnknownPlayer)
}

// Len returns the number of registered players.
func (table *Table) Len() int {
	return len(table.order)
}

// Standings returns every standing in registration order.
func (table *Table) Standings() []*Standing {
	return append([]*Standing(nil), table.order...)
}

// Ranked returns every standing from first to last place.
func (table *Table) Ranked() []*Standing {
	return Rank(table.order)
}

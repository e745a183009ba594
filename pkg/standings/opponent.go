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

// Opponent is one entry of a player's match history: either a real player
// or a bye. The zero Opponent is a bye.
type Opponent struct {
	standing *Standing
}

// Bye returns the Opponent recorded for a round without an opponent.
func Bye() Opponent {
	return Opponent{}
}

// Real returns the Opponent for a match played against the given player.
func Real(standing *Standing) Opponent {
	if standing == nil {
		panic("standings: real opponent without a standing")
	}

	return Opponent{standing: standing}
}

// IsBye reports whether the Opponent is a bye.
func (opponent Opponent) IsBye() bool {
	return opponent.standing == nil
}

// Standing returns the opponent's record, and false for a bye.
func (opponent Opponent) Standing() (*Standing, bool) {
	return opponent.standing, opponent.standing != nil
}

func (opponent Opponent) String() string {
	if opponent.IsBye() {
		return "BYE"
	}

	return string(opponent.standing.Player)
}

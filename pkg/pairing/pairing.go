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

package pairing

import (
	"fmt"

	"laptudirm.com/x/swiss/pkg/standings"
)

// Pairing is a single board of a round: two players, or one player and a
// bye.
type Pairing struct {
	Player   *standings.Standing
	Opponent standings.Opponent
}

// IsBye reports whether the pairing gives its player a bye.
func (pairing Pairing) IsBye() bool {
	return pairing.Opponent.IsBye()
}

// Players returns the real players of the pairing.
func (pairing Pairing) Players() []*standings.Standing {
	if opponent, ok := pairing.Opponent.Standing(); ok {
		return []*standings.Standing{pairing.Player, opponent}
	}

	return []*standings.Standing{pairing.Player}
}

func (pairing Pairing) String() string {
	if pairing.IsBye() {
		return fmt.Sprintf("%s: BYE", pairing.Player.Player)
	}

	return fmt.Sprintf("%s vs %s", pairing.Player.Player, pairing.Opponent)
}

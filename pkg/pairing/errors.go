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
	"errors"
	"fmt"
)

var (
	ErrNoPlayers      = errors.New("pairing: no players to pair")
	ErrDuplicate      = errors.New("pairing: player listed more than once")
	ErrNoByeCandidate = errors.New("pairing: every player has already received a bye")
	ErrExhausted      = errors.New("pairing: retry budget exhausted")
)

// ExhaustedError is returned when the search runs out of attempts without
// finding a legal pairing. It does not prove that none exists: calling
// AssignPairings again searches with fresh random choices.
type ExhaustedError struct {
	Players       int // number of players being paired, without the bye
	Attempts      int // full searches tried
	GroupAttempts int // passes tried per score group in each search
}

func (err *ExhaustedError) Error() string {
	return fmt.Sprintf(
		"pairing: no legal pairing of %d players found in %d attempts (%d per group)",
		err.Players, err.Attempts, err.GroupAttempts,
	)
}

// Is makes an ExhaustedError match ErrExhausted.
func (err *ExhaustedError) Is(target error) bool {
	return target == ErrExhausted
}

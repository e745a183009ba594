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

package tournament

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSimulateStopsBetweenRounds(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	config := SimulationConfig{Players: 64, Games: 2, Tournament: DefaultConfig()}
	config.Tournament.Rounds = RecommendedRounds(config.Players)

	result, err := simulate(ctx, config, 5)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Zero(t, result.rounds)
}

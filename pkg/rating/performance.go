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

package rating

import "math"

// Performance estimates the rating difference between a player and the
// field they faced from a win-draw-loss record, along with the bounds of
// its 95% confidence interval. A Dirichlet(0.5, 0.5, 0.5) prior keeps the
// estimate finite for perfect and empty records.
func Performance(wins, draws, losses int) (lower, elo, upper float64) {
	n := float64(wins+draws+losses) + 1.5 // total games with the prior

	w := (float64(wins) + 0.5) / n   // win probability
	d := (float64(draws) + 0.5) / n  // draw probability
	l := (float64(losses) + 0.5) / n // loss probability

	score := w + d/2
	deviation := math.Sqrt(
		w*math.Pow(1-score, 2)+
			d*math.Pow(0.5-score, 2)+
			l*math.Pow(0-score, 2),
	) / math.Sqrt(n)

	lower = scoreToElo(score + quantile(0.025)*deviation)
	upper = scoreToElo(score + quantile(0.975)*deviation)
	return lower, scoreToElo(score), upper
}

// scoreToElo converts an expected score into a rating difference.
func scoreToElo(score float64) float64 {
	switch {
	case score <= 0, score >= 1:
		return 0

	default:
		return -400 * math.Log10(1/score-1)
	}
}

// quantile is the inverse of the standard normal distribution function.
func quantile(p float64) float64 {
	return math.Sqrt2 * math.Erfinv(2*p-1)
}

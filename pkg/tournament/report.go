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
	"fmt"
	"io"
	"math"
	"strings"
	"unicode/utf8"

	"laptudirm.com/x/swiss/pkg/rating"
)

// Report writes the current standings of the tournament as a table.
func (tour *Tournament) Report(w io.Writer) error {
	ranked := tour.Standings()

	width := len("Player")
	for _, standing := range ranked {
		width = max(width, utf8.RuneCountInString(string(standing.Player)))
	}

	header := fmt.Sprintf(
		"%4s %-*s %3s %6s %6s %6s %6s %3s %3s %3s %10s",
		"#", width, "Player", "MP", "OMW%", "GW%", "OGW%", "Rating", "W", "L", "D", "Perf",
	)
	border := strings.Repeat("═", len(header)+2)

	var report strings.Builder
	fmt.Fprintf(&report, "%s, round %d\n", tour.Name, tour.Round())
	fmt.Fprintf(&report, "╔%s╗\n", border)
	fmt.Fprintf(&report, "║ %s ║\n", header)
	fmt.Fprintf(&report, "╠%s╣\n", border)
	for i, standing := range ranked {
		lower, elo, upper := rating.Performance(standing.Wins, standing.Draws, standing.Losses)
		fmt.Fprintf(
			&report,
			"║ %3d. %-*s %3d %6.2f %6.2f %6.2f %6.0f %3d %3d %3d %+5.0f %4.0f ║\n",
			i+1, width, standing.Player,
			standing.MatchPoints,
			100*standing.OpponentMatchWinPercentage(),
			100*standing.GameWinPercentage(true),
			100*standing.OpponentGameWinPercentage(),
			standing.Rating,
			standing.Wins, standing.Losses, standing.Draws,
			elo, math.Abs(math.Max(upper-elo, elo-lower)),
		)
	}
	fmt.Fprintf(&report, "╚%s╝\n", border)

	_, err := io.WriteString(w, report.String())
	return err
}

// WriteRound writes the boards of a round, one per line.
func WriteRound(w io.Writer, round Round) error {
	var out strings.Builder
	fmt.Fprintf(&out, "Round #%d\n", round.Number)
	for i, board := range round.Boards {
		fmt.Fprintf(&out, "%3d. %s\n", i+1, board)
	}

	_, err := io.WriteString(w, out.String())
	return err
}

// Package cli renders championship state for terminals.
package cli

import (
	"fmt"
	"io"
	"strconv"
	"unicode/utf8"

	"github.com/riskibarqy/championship-simulator/internal/domain/fixture"
	"github.com/riskibarqy/championship-simulator/internal/domain/standing"
	"github.com/riskibarqy/championship-simulator/internal/usecase"
	"github.com/valyala/bytebufferpool"
)

const (
	nameColumnWidth = 18
	arrowUp         = "▲"
	arrowDown       = "▼"
	arrowSame       = "="
)

// Arrow formats a movement marker such as "▲2", "▼1" or "=".
func Arrow(change standing.PositionChange) string {
	switch change.Direction {
	case standing.DirectionUp:
		return arrowUp + strconv.Itoa(change.PositionsChanged)
	case standing.DirectionDown:
		return arrowDown + strconv.Itoa(change.PositionsChanged)
	default:
		return arrowSame
	}
}

func RenderStandings(view usecase.StandingsView) string {
	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)

	_, _ = fmt.Fprintf(buf, "Round %d\n", view.Round)
	_, _ = fmt.Fprintf(buf, "%3s %-4s %s %3s %3s %3s %3s %3s %3s %4s %4s\n",
		"#", "", padRight("Team", nameColumnWidth), "P", "W", "D", "L", "GF", "GA", "GD", "Pts")

	for _, item := range view.Standings {
		marker := ""
		if change, ok := view.Changes[item.ID]; ok {
			marker = Arrow(change)
			if change.Affected {
				marker += "*"
			}
		}

		_, _ = fmt.Fprintf(buf, "%3d %s %s %3d %3d %3d %3d %3d %3d %4d %4d\n",
			item.Position,
			padRight(marker, 4),
			padRight(item.Name, nameColumnWidth),
			item.Games,
			item.Victories,
			item.Draws,
			item.Defeats,
			item.GoalsFor,
			item.GoalsAgainst,
			item.GoalBalance,
			item.Points,
		)
	}

	return buf.String()
}

func RenderMatches(round int, matches []fixture.Match) string {
	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)

	_, _ = fmt.Fprintf(buf, "Round %d results\n", round)
	for _, match := range matches {
		suffix := ""
		if match.Simulated {
			suffix = " (sim)"
		}
		_, _ = fmt.Fprintf(buf, "  %s %2s x %-2s %s%s\n",
			padLeft(teamLabel(match.Home), nameColumnWidth),
			match.HomeScore.String(),
			match.AwayScore.String(),
			teamLabel(match.Away),
			suffix,
		)
	}

	return buf.String()
}

// WriteOutcome prints a round's results followed by the table.
func WriteOutcome(w io.Writer, outcome usecase.RoundOutcome) error {
	if _, err := io.WriteString(w, RenderMatches(outcome.Round, outcome.Matches)); err != nil {
		return err
	}
	_, err := io.WriteString(w, RenderStandings(outcome.StandingsView))
	return err
}

func teamLabel(ref fixture.TeamRef) string {
	if ref.Name != "" {
		return ref.Name
	}
	return ref.ID
}

func padRight(value string, width int) string {
	n := utf8.RuneCountInString(value)
	if n >= width {
		return value
	}
	return value + spaces(width-n)
}

func padLeft(value string, width int) string {
	n := utf8.RuneCountInString(value)
	if n >= width {
		return value
	}
	return spaces(width-n) + value
}

func spaces(n int) string {
	out := make([]byte, n)
	for i := range out {
		out[i] = ' '
	}
	return string(out)
}

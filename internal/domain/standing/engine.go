package standing

type outcome int

const (
	outcomeLoss outcome = iota
	outcomeDraw
	outcomeWin
)

func outcomeFor(scored, conceded int) outcome {
	switch {
	case scored > conceded:
		return outcomeWin
	case scored < conceded:
		return outcomeLoss
	default:
		return outcomeDraw
	}
}

// ApplyStatsDelta returns a copy of team with one match folded in (Apply) or
// taken out (Reverse). Applying and then reversing the same scores yields the
// original record field by field. Scores are trusted to be validated already.
func ApplyStatsDelta(team TeamStats, homeScore, awayScore int, isHomeTeam bool, multiplier Multiplier) TeamStats {
	k := int(multiplier)
	scored, conceded := homeScore, awayScore
	if !isHomeTeam {
		scored, conceded = awayScore, homeScore
	}

	out := team
	out.Games += k
	out.GoalsFor += scored * k
	out.GoalsAgainst += conceded * k
	out.GoalBalance = out.GoalsFor - out.GoalsAgainst

	switch outcomeFor(scored, conceded) {
	case outcomeWin:
		out.Victories += k
		out.Points += 3 * k
	case outcomeDraw:
		out.Draws += k
		out.Points += k
	default:
		out.Defeats += k
	}

	return out
}

// ApplyMatchResult folds result into every matching team and returns a new,
// fully sorted snapshot. Teams the result does not name pass through as-is,
// including when one of the result's ids is unknown to the table.
func ApplyMatchResult(standings []TeamStats, result MatchResult, isReversing bool, names NameResolver) Snapshot {
	multiplier := Apply
	if isReversing {
		multiplier = Reverse
	}

	updated := make([]TeamStats, len(standings))
	for i, item := range standings {
		switch item.ID {
		case result.HomeTeamID:
			updated[i] = ApplyStatsDelta(item, result.HomeScore, result.AwayScore, true, multiplier)
		case result.AwayTeamID:
			updated[i] = ApplyStatsDelta(item, result.HomeScore, result.AwayScore, false, multiplier)
		default:
			updated[i] = item
		}
	}

	return Sort(updated, names)
}

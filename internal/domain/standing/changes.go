package standing

// ComputePositionChanges compares each team's position in newer against
// older. Teams missing from older are omitted from the result.
func ComputePositionChanges(newer, older Snapshot) PositionChanges {
	oldPositions := make(map[string]int, len(older))
	for _, item := range older {
		oldPositions[item.ID] = item.Position
	}

	out := make(PositionChanges, len(newer))
	for _, item := range newer {
		oldPosition, ok := oldPositions[item.ID]
		if !ok {
			continue
		}

		switch {
		case item.Position == oldPosition:
			out[item.ID] = PositionChange{Direction: DirectionNone}
		case item.Position < oldPosition:
			out[item.ID] = PositionChange{Direction: DirectionUp, PositionsChanged: oldPosition - item.Position}
		default:
			out[item.ID] = PositionChange{Direction: DirectionDown, PositionsChanged: item.Position - oldPosition}
		}
	}

	return out
}

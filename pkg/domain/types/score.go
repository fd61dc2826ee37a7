package types

const (
	MinDifficulty Difficulty = 1
	MaxDifficulty Difficulty = 5

	MinPoints Points = 5
	MaxPoints Points = 20
)

// Difficulty is the difficulty level of a question, 1 (easiest) to 5
type Difficulty int

// Clamp forces the difficulty into [MinDifficulty, MaxDifficulty]
func (d Difficulty) Clamp() Difficulty {
	switch {
	case d < MinDifficulty:
		return MinDifficulty
	case d > MaxDifficulty:
		return MaxDifficulty
	default:
		return d
	}
}

// DefaultPoints returns the points awarded for the difficulty when the
// generator did not assign any
func (d Difficulty) DefaultPoints() Points {
	return Points(int(d.Clamp()) * 4).Clamp()
}

// Points is the score awarded for answering a question correctly
type Points int

// Clamp forces the points into [MinPoints, MaxPoints]
func (p Points) Clamp() Points {
	switch {
	case p < MinPoints:
		return MinPoints
	case p > MaxPoints:
		return MaxPoints
	default:
		return p
	}
}

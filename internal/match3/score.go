package match3

// ScoreGroups scores one cascade step. Each group earns
// basePoints*(size-2)*multiplier points and (baseBonus+size-3)/multiplier
// bonus seconds.
func ScoreGroups(groups []MatchGroup, multiplier, basePoints int, baseBonus float64) (int, float64) {
	if multiplier < 1 {
		multiplier = 1
	}
	points := 0
	bonus := 0.0
	for _, g := range groups {
		n := g.Size()
		points += basePoints * (n - 2) * multiplier
		bonus += (baseBonus + float64(n-3)) / float64(multiplier)
	}
	return points, bonus
}

// ScoreEngine owns the running total, the combo multiplier and the
// per-level scoring bases.
type ScoreEngine struct {
	startPoints int
	startBonus  float64
	pointsStep  int
	bonusStep   float64

	total      int
	multiplier int
	basePoints int
	baseBonus  float64
	level      int
}

// NewScoreEngine creates an engine at level 1 with the given bases. The
// steps are added to the bases on every level advance.
func NewScoreEngine(basePoints int, baseBonus float64, pointsStep int, bonusStep float64) *ScoreEngine {
	s := &ScoreEngine{
		startPoints: basePoints,
		startBonus:  baseBonus,
		pointsStep:  pointsStep,
		bonusStep:   bonusStep,
	}
	s.Reset()
	return s
}

// Tally scores one cascade step at the current multiplier, adds the points
// to the total and bumps the multiplier for the next step.
func (s *ScoreEngine) Tally(groups []MatchGroup) (int, float64) {
	points, bonus := ScoreGroups(groups, s.multiplier, s.basePoints, s.baseBonus)
	s.total += points
	s.multiplier++
	return points, bonus
}

// ResetCombo puts the multiplier back to 1. Called when a player action has
// settled.
func (s *ScoreEngine) ResetCombo() {
	s.multiplier = 1
}

// AdvanceLevel raises the level and both scoring bases.
func (s *ScoreEngine) AdvanceLevel() {
	s.level++
	s.basePoints += s.pointsStep
	s.baseBonus += s.bonusStep
}

// Reset restores the starting bases, level 1 and a zero total.
func (s *ScoreEngine) Reset() {
	s.total = 0
	s.multiplier = 1
	s.basePoints = s.startPoints
	s.baseBonus = s.startBonus
	s.level = 1
}

// Total returns the points scored since the last Reset.
func (s *ScoreEngine) Total() int {
	return s.total
}

// Multiplier returns the factor the next cascade step is scored with.
func (s *ScoreEngine) Multiplier() int {
	return s.multiplier
}

// BasePoints returns the points per extra tile at the current level.
func (s *ScoreEngine) BasePoints() int {
	return s.basePoints
}

// BaseBonus returns the bonus seconds per group at the current level.
func (s *ScoreEngine) BaseBonus() float64 {
	return s.baseBonus
}

// Level returns the current level, starting at 1.
func (s *ScoreEngine) Level() int {
	return s.level
}

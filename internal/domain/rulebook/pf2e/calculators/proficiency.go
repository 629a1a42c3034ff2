package calculators

// Proficiency returns the proficiency bonus for a rank at a level.
// An untrained rank never adds the level.
func Proficiency(rank, level int) int {
	if rank <= 0 {
		return 0
	}
	return rank*2 + level
}

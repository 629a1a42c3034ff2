package shared

// ProficiencyRank is the training tier feeding the proficiency bonus
type ProficiencyRank int

const (
	RankUntrained ProficiencyRank = iota
	RankTrained
	RankExpert
	RankMaster
	RankLegendary
)

var rankLabels = []string{"Untrained", "Trained", "Expert", "Master", "Legendary"}

func (r ProficiencyRank) String() string {
	if r < RankUntrained || int(r) >= len(rankLabels) {
		return rankLabels[RankUntrained]
	}
	return rankLabels[r]
}

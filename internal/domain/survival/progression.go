package survival

import "time"

type Achievement string

const (
	AchievementFirstUpgrade  Achievement = "first_upgrade"
	AchievementBearSlayer    Achievement = "bear_slayer"
	AchievementStormSurvivor Achievement = "storm_survivor"
	AchievementWeekSurvivor  Achievement = "week_survivor"
)

// Progression survives across runs.
type Progression struct {
	HighScore        int           `json:"high_score"`
	TotalGamesPlayed int           `json:"total_games_played"`
	TotalPlayTime    time.Duration `json:"total_play_time"`
	Achievements     []Achievement `json:"achievements"`
}

func (p Progression) Has(a Achievement) bool {
	for _, have := range p.Achievements {
		if have == a {
			return true
		}
	}
	return false
}

// RecordRun folds a finished run into the progression and returns the
// achievements it unlocked for the first time.
func (p *Progression) RecordRun(run SaveState) []Achievement {
	p.TotalGamesPlayed++
	if run.PlayTimeMS > 0 {
		p.TotalPlayTime += time.Duration(run.PlayTimeMS) * time.Millisecond
	}
	if run.DaysSurvived > p.HighScore {
		p.HighScore = run.DaysSurvived
	}

	var unlocked []Achievement
	check := func(a Achievement, ok bool) {
		if ok && !p.Has(a) {
			p.Achievements = append(p.Achievements, a)
			unlocked = append(unlocked, a)
		}
	}
	check(AchievementFirstUpgrade, run.FurnaceLevel > StartingFurnaceLevel)
	check(AchievementBearSlayer, run.BearsKilled > 0)
	check(AchievementStormSurvivor, run.BlizzardsSurvived > 0)
	check(AchievementWeekSurvivor, run.DaysSurvived >= 7)
	return unlocked
}

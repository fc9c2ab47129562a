package model

import "time"

const TableNameProgression = "progressions"

// Progression mapped from table <progressions>
type Progression struct {
	Profile          string    `gorm:"column:profile;primaryKey" json:"profile"`
	HighScore        int32     `gorm:"column:high_score;not null" json:"high_score"`
	TotalGamesPlayed int32     `gorm:"column:total_games_played;not null" json:"total_games_played"`
	TotalPlayTimeMs  int64     `gorm:"column:total_play_time_ms;not null" json:"total_play_time_ms"`
	Achievements     string    `gorm:"column:achievements;type:jsonb;not null" json:"achievements"`
	UpdatedAt        time.Time `gorm:"column:updated_at;not null;default:now()" json:"updated_at"`
}

// TableName Progression's table name
func (*Progression) TableName() string {
	return TableNameProgression
}

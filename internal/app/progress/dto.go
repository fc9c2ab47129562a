package progress

import "frostfire/internal/domain/survival"

type Request struct {
	Profile string
}

type Response struct {
	Profile         string                 `json:"profile"`
	Progression     survival.Progression   `json:"progression"`
	TotalPlayTime   string                 `json:"total_play_time"`
	NewAchievements []survival.Achievement `json:"new_achievements,omitempty"`
}

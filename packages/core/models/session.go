package models

type StartMatchRequest struct {
	Mode       Mode       `json:"mode" binding:"required,oneof=quick league tournament"`
	Team       string     `json:"team,omitempty"`
	Opponent   string     `json:"opponent,omitempty"`
	Difficulty Difficulty `json:"difficulty" binding:"required,oneof=easy normal hard"`
	OpponentAI *bool      `json:"opponent_ai,omitempty"`
}

type GoalRequest struct {
	Side string `json:"side" binding:"required,oneof=player opponent"`
}

type ShootoutResultRequest struct {
	Winner      string `json:"winner" binding:"required,oneof=player ai"`
	PlayerScore int    `json:"player_score" binding:"min=0"`
	AIScore     int    `json:"ai_score" binding:"min=0"`
}

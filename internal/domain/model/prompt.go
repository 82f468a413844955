package model

import "time"

const (
	MotionPromptTitle   = "Motion Detected!"
	MotionPromptMessage = "Someone entered the room.\nTurn ON the light?"

	UnreachableAlertTitle   = "Error"
	UnreachableAlertMessage = "ESP32 not reachable."
)

// Prompt is one yes/no confirmation shown to the operator.
type Prompt struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"created_at"`
}

// Alert is the single modal message the panel can show.
type Alert struct {
	Title    string    `json:"title"`
	Message  string    `json:"message"`
	RaisedAt time.Time `json:"raised_at"`
}

// PromptPolicy decides what a motion event does while a prompt is already open.
type PromptPolicy string

const (
	PromptPolicyQueue   PromptPolicy = "queue"
	PromptPolicyIgnore  PromptPolicy = "ignore"
	PromptPolicyReplace PromptPolicy = "replace"
)

func (p PromptPolicy) Valid() bool {
	switch p {
	case PromptPolicyQueue, PromptPolicyIgnore, PromptPolicyReplace:
		return true
	}
	return false
}

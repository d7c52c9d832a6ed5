package model

// ModerationVerdict is the outcome of one moderation call. It is never
// persisted; only the boolean gates whether an adventure may be saved.
type ModerationVerdict struct {
	IsAppropriate bool   `json:"isAppropriate"`
	Reason        string `json:"reason"`
}

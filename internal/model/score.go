package model

// ScoreRecord is a player's personal best for one adventure. One record
// survives per (userId, adventureId); replacement is decided by the
// leaderboard service's best-score rule.
type ScoreRecord struct {
	UserID        string  `json:"userId" bson:"userId"`
	Username      string  `json:"username" bson:"username"`
	AdventureID   string  `json:"adventureId" bson:"adventureId"`
	AdventureName string  `json:"adventureName" bson:"adventureName"`
	Score         float64 `json:"score" bson:"score"`
	Time          float64 `json:"time" bson:"time"`
}

// Key is the storage member for this record, unique per player per adventure.
func (r ScoreRecord) Key() string {
	return r.UserID + ":" + r.AdventureID
}

package model

import "time"

// Debate statuses as stored in debates.status.
const (
	DebateUpcoming  = "upcoming"
	DebateActive    = "active"
	DebateCompleted = "completed"
)

// Debate is a scheduled debate event managed by the admin. Vote counters
// are denormalized onto the row and incremented together with the insert
// into the votes table.
type Debate struct {
	ID           string    `json:"id"`
	Title        string    `json:"title"`
	Description  string    `json:"description"`
	Topic        string    `json:"topic"`
	StartTime    time.Time `json:"start_time"`
	EndTime      time.Time `json:"end_time"`
	Status       string    `json:"status"`
	VotesFor     uint32    `json:"votes_for"`
	VotesAgainst uint32    `json:"votes_against"`
	Participants []string  `json:"participants"`
	CreatedAt    time.Time `json:"created_at"`
}

// Vote records one named visitor's vote on a debate. The pair
// (debate_id, voter_name) is unique; a second vote by the same name is
// rejected.
type Vote struct {
	ID        string    `json:"id"`
	DebateID  string    `json:"debate_id"`
	VoteType  string    `json:"vote_type"` // "for" or "against"
	VoterName string    `json:"voter_name"`
	CreatedAt time.Time `json:"created_at"`
}

package repository

import (
	"context"
	"database/sql"

	"github.com/debateclub/debate-club-api/internal/model"
)

// VoteRepo records votes and keeps the denormalized counters on the
// debate row in step with the votes table.
type VoteRepo struct{ DB *sql.DB }

func NewVoteRepo(db *sql.DB) *VoteRepo { return &VoteRepo{DB: db} }

// Record inserts the vote and increments the matching counter inside one
// transaction. The UNIQUE(debate_id, voter_name) key turns a second vote
// by the same name into ErrDuplicateVote.
func (r *VoteRepo) Record(ctx context.Context, v *model.Vote) error {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	_, err = tx.ExecContext(ctx,
		"INSERT INTO votes (id, debate_id, vote_type, voter_name, created_at) VALUES (?,?,?,?,?)",
		v.ID, v.DebateID, v.VoteType, v.VoterName, v.CreatedAt)
	if isDuplicate(err) {
		return ErrDuplicateVote
	}
	if err != nil {
		return err
	}

	column := "votes_against"
	if v.VoteType == "for" {
		column = "votes_for"
	}
	if _, err := tx.ExecContext(ctx,
		"UPDATE debates SET "+column+" = "+column+" + 1 WHERE id=?", v.DebateID); err != nil {
		return err
	}
	return tx.Commit()
}

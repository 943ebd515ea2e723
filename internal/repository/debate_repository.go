package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/debateclub/debate-club-api/internal/model"
)

// DebateRepo persists debates plus their participant list.
type DebateRepo struct{ DB *sql.DB }

func NewDebateRepo(db *sql.DB) *DebateRepo { return &DebateRepo{DB: db} }

const debateColumns = "id,title,description,topic,start_time,end_time,status,votes_for,votes_against,created_at"

// Create inserts a debate row.
func (r *DebateRepo) Create(ctx context.Context, d *model.Debate) error {
	_, err := r.DB.ExecContext(ctx,
		"INSERT INTO debates (id,title,description,topic,start_time,end_time,status,created_at) VALUES (?,?,?,?,?,?,?,?)",
		d.ID, d.Title, d.Description, d.Topic, d.StartTime, d.EndTime, d.Status, d.CreatedAt)
	return err
}

// GetByID fetches a debate with its participants. Missing rows fail with
// ErrDebateNotFound.
func (r *DebateRepo) GetByID(ctx context.Context, id string) (*model.Debate, error) {
	var d model.Debate
	err := r.DB.QueryRowContext(ctx,
		"SELECT "+debateColumns+" FROM debates WHERE id=? LIMIT 1", id).
		Scan(&d.ID, &d.Title, &d.Description, &d.Topic, &d.StartTime, &d.EndTime,
			&d.Status, &d.VotesFor, &d.VotesAgainst, &d.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrDebateNotFound
	}
	if err != nil {
		return nil, err
	}
	participants, err := r.participants(ctx, d.ID)
	if err != nil {
		return nil, err
	}
	d.Participants = participants
	return &d, nil
}

// List returns all debates, newest first, with participants attached.
func (r *DebateRepo) List(ctx context.Context) ([]model.Debate, error) {
	rows, err := r.DB.QueryContext(ctx,
		"SELECT "+debateColumns+" FROM debates ORDER BY start_time ASC")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []model.Debate{}
	for rows.Next() {
		var d model.Debate
		if err := rows.Scan(&d.ID, &d.Title, &d.Description, &d.Topic, &d.StartTime,
			&d.EndTime, &d.Status, &d.VotesFor, &d.VotesAgainst, &d.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	for i := range out {
		p, err := r.participants(ctx, out[i].ID)
		if err != nil {
			return nil, err
		}
		out[i].Participants = p
	}
	return out, nil
}

// Update overwrites the editable fields of a debate. A missing row fails
// with ErrDebateNotFound.
func (r *DebateRepo) Update(ctx context.Context, d *model.Debate) error {
	res, err := r.DB.ExecContext(ctx,
		"UPDATE debates SET title=?,description=?,topic=?,start_time=?,end_time=?,status=? WHERE id=?",
		d.Title, d.Description, d.Topic, d.StartTime, d.EndTime, d.Status, d.ID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		// RowsAffected is also 0 when the update is a no-op; verify existence.
		if _, err := r.GetByID(ctx, d.ID); err != nil {
			return err
		}
	}
	return nil
}

// Delete removes a debate; dependent rows cascade. A missing row fails
// with ErrDebateNotFound.
func (r *DebateRepo) Delete(ctx context.Context, id string) error {
	res, err := r.DB.ExecContext(ctx, "DELETE FROM debates WHERE id=?", id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrDebateNotFound
	}
	return nil
}

// AddParticipant registers a name on the debate. A duplicate name fails
// with ErrAlreadyJoined.
func (r *DebateRepo) AddParticipant(ctx context.Context, debateID, name string) error {
	_, err := r.DB.ExecContext(ctx,
		"INSERT INTO debate_participants (debate_id, participant_name) VALUES (?,?)",
		debateID, name)
	if isDuplicate(err) {
		return ErrAlreadyJoined
	}
	return err
}

func (r *DebateRepo) participants(ctx context.Context, debateID string) ([]string, error) {
	rows, err := r.DB.QueryContext(ctx,
		"SELECT participant_name FROM debate_participants WHERE debate_id=? ORDER BY joined_at ASC",
		debateID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	names := []string{}
	for rows.Next() {
		var n string
		if err := rows.Scan(&n); err != nil {
			return nil, err
		}
		names = append(names, n)
	}
	return names, rows.Err()
}

package user

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgtype"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dbc "boardrtc/internal/app/db/sqlc"
)

func TestNewProfile(t *testing.T) {
	created := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	row := dbc.User{
		ID:             3,
		Username:       "alice",
		Firstname:      "Alice",
		Email:          "alice@example.com",
		HashedPassword: "$2a$10$secret",
		IsActive:       true,
		CreatedAt:      pgtype.Timestamptz{Time: created, Valid: true},
	}

	p := NewProfile(row)
	assert.Equal(t, int64(3), p.ID)
	assert.Nil(t, p.Lastname)
	assert.Equal(t, created, p.CreatedAt)

	body, err := json.Marshal(p)
	require.NoError(t, err)
	assert.NotContains(t, string(body), "secret")
	assert.Contains(t, string(body), `"lastname":null`)

	row.Lastname = pgtype.Text{String: "Liddell", Valid: true}
	p = NewProfile(row)
	require.NotNil(t, p.Lastname)
	assert.Equal(t, "Liddell", *p.Lastname)
}

func TestCanModify(t *testing.T) {
	assert.True(t, CanModify(1, false, 1))
	assert.False(t, CanModify(2, false, 1))
	assert.True(t, CanModify(2, true, 1))
}

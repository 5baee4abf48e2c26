/*
Package user contains the user shapes returned by the HTTP API.

Rows from the database never leave the server as is; handlers project them into
Profile (the caller's own account) or Brief (an author reference embedded in
posts, comments and files).
*/
package user

import (
	"time"

	dbc "boardrtc/internal/app/db/sqlc"
)

// Brief identifies the author of a post, comment or file.
type Brief struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
}

// Profile is the signed in user's own account view.
type Profile struct {
	ID        int64     `json:"id"`
	Username  string    `json:"username"`
	Firstname string    `json:"firstname"`
	Lastname  *string   `json:"lastname"`
	Email     string    `json:"email"`
	IsActive  bool      `json:"is_active"`
	IsAdmin   bool      `json:"is_admin"`
	CreatedAt time.Time `json:"created_at"`
}

// NewProfile projects a user row, dropping the password hash.
func NewProfile(u dbc.User) Profile {
	p := Profile{
		ID:        u.ID,
		Username:  u.Username,
		Firstname: u.Firstname,
		Email:     u.Email,
		IsActive:  u.IsActive,
		IsAdmin:   u.IsAdmin,
		CreatedAt: u.CreatedAt.Time,
	}
	if u.Lastname.Valid {
		p.Lastname = &u.Lastname.String
	}
	return p
}

// CanModify reports whether the caller may edit or delete something owned
// by ownerID.
func CanModify(callerID int64, callerIsAdmin bool, ownerID int64) bool {
	return callerIsAdmin || callerID == ownerID
}

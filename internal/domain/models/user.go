package models

import "time"

// UserRole distinguishes administrators from warehouse staff.
type UserRole string

const (
	RoleAdmin UserRole = "ADMIN"
	RoleStaff UserRole = "STAFF"
)

// User mirrors the account record returned by the backend on login.
type User struct {
	ID       string   `json:"id" bson:"id"`
	Username string   `json:"username" bson:"username"`
	Name     string   `json:"name" bson:"name"`
	Role     UserRole `json:"role" bson:"role"`
	Password string   `json:"password,omitempty" bson:"-"`
}

// Session is the persisted login state, reconstituted on startup so a
// returning operator skips the login form.
type Session struct {
	Username  string    `bson:"username" json:"username"`
	User      User      `bson:"user" json:"user"`
	CreatedAt time.Time `bson:"created_at" json:"created_at"`
}

// ActivityLog is an audit entry recorded by the backend.
type ActivityLog struct {
	Timestamp string `json:"timestamp"`
	User      string `json:"user"`
	Action    string `json:"action"`
	Details   string `json:"details"`
}

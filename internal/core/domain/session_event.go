package domain

import "time"

type SessionEventType string

const (
	EventLogin        SessionEventType = "login"
	EventLoginFailed  SessionEventType = "login_failed"
	EventLogout       SessionEventType = "logout"
	EventForcedLogout SessionEventType = "forced_logout"
	EventPasswordSet  SessionEventType = "password_changed"
)

// SessionEvent is an audit record of a session transition.
type SessionEvent struct {
	Type     SessionEventType `json:"type" bson:"type"`
	Username string           `json:"username" bson:"username"`
	Role     string           `json:"role,omitempty" bson:"role,omitempty"`
	Reason   string           `json:"reason,omitempty" bson:"reason,omitempty"`
	Scope    string           `json:"scope,omitempty" bson:"scope,omitempty"`
	At       time.Time        `json:"at" bson:"at"`
}

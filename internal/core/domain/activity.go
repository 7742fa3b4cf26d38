package domain

import "time"

// Activity event types recorded for the admin dashboard.
const (
	ActivityUserRegistered = "user_registered"
	ActivityCourseCreated  = "course_created"
	ActivityKeyRedeemed    = "key_redeemed"
)

// ActivityEvent is a lightweight audit entry recorded asynchronously when
// something dashboard-worthy happens.
type ActivityEvent struct {
	Type       string    `json:"type" bson:"type"`
	ActorID    string    `json:"actorId" bson:"actor_id"`
	ActorName  string    `json:"actorName,omitempty" bson:"actor_name,omitempty"`
	Subject    string    `json:"subject,omitempty" bson:"subject,omitempty"`
	OccurredAt time.Time `json:"occurredAt" bson:"occurred_at"`
}

package model

import "time"

// JobKind names a background side effect.
type JobKind string

const (
	JobDeleteObject JobKind = "delete_object"
	JobNotify       JobKind = "notify"
)

// Notification topics.
const (
	TopicFeedback = "feedback"
	TopicEvent    = "event"
)

// Notification is an outbound message about new content.
type Notification struct {
	Topic  string
	Title  string
	Author string
	Body   string
	Link   string
}

// Job is one unit of background work. Object is set for JobDeleteObject,
// Notification for JobNotify.
type Job struct {
	ID           string
	Kind         JobKind
	Object       string
	Notification *Notification
	Attempt      int
	EnqueuedAt   time.Time
}

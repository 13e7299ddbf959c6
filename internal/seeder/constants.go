package seeder

// Item kinds, also the keys of Stats.Verified.
const (
	KindEvent     = "event"
	KindTeam      = "team"
	KindHighlight = "highlight"
	KindFeedback  = "feedback"
)

// Worker configuration constants.
const (
	WorkerChannelMultiplier = 2
	PercentageMultiplier    = 100
)

// Request outcomes.
const (
	outcomeSuccess   = "success"
	outcomeDuplicate = "duplicate"
	outcomeFailed    = "failed"
)

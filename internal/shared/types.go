package shared

// Asynq task types
const (
	TypeTrackSettlement = "checkout:track_settlement"
)

// Asynq queues, highest priority first
const (
	QueueCritical = "critical"
	QueueDefault  = "default"
	QueueLow      = "low"
)

// QueuePriorities is the weighted queue set served by the worker
var QueuePriorities = map[string]int{
	QueueCritical: 6,
	QueueDefault:  3,
	QueueLow:      1,
}

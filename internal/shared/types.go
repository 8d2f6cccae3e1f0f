package shared

// Background task types
const (
	TypeDeleteMediaObjects = "media:delete_objects"
	TypeSweepOrphanMedia   = "media:sweep_orphans"
)

// Queue names, matching the weights configured in cmd/worker
const (
	QueueDefault = "default"
	QueueLow     = "low"
)

// DeleteMediaObjectsPayload lists public URLs whose objects must be removed
type DeleteMediaObjectsPayload struct {
	URLs   []string `json:"urls"`
	Reason string   `json:"reason"`
}

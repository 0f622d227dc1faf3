package model

// JobStatus represents the status of a generation job
type JobStatus string

const (
	// JobStatusPending means the job was created but has not been dispatched yet
	JobStatusPending JobStatus = "Pending"

	// JobStatusInFlight means the request is running against the generation service
	JobStatusInFlight JobStatus = "InFlight"

	// JobStatusCompleted means the job finished and its image was written to disk
	JobStatusCompleted JobStatus = "Completed"

	// JobStatusFailed means the job failed with an error
	JobStatusFailed JobStatus = "Failed"

	// JobStatusCancelled means the job was preempted or cancelled by the user
	JobStatusCancelled JobStatus = "Cancelled"
)

// String returns the string representation of JobStatus
func (js JobStatus) String() string {
	return string(js)
}

// IsActive returns true if the job is still being worked on
func (js JobStatus) IsActive() bool {
	return js == JobStatusPending || js == JobStatusInFlight
}

// IsTerminal returns true if the job reached a final state
func (js JobStatus) IsTerminal() bool {
	return js == JobStatusCompleted || js == JobStatusFailed || js == JobStatusCancelled
}

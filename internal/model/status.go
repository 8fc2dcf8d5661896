package model

// TaskStatus represents the status of an episode download task
type TaskStatus string

const (
	// TaskStatusPending means the task is queued but not started
	TaskStatusPending TaskStatus = "Pending"

	// TaskStatusStarting means the task is in the process of starting
	TaskStatusStarting TaskStatus = "Starting"

	// TaskStatusDownloading means the download is in progress
	TaskStatusDownloading TaskStatus = "Downloading"

	// TaskStatusPaused means the user paused the download
	TaskStatusPaused TaskStatus = "Paused"

	// TaskStatusStopping means the task is in the process of stopping
	TaskStatusStopping TaskStatus = "Stopping"

	// TaskStatusStopped means the task was stopped by user
	TaskStatusStopped TaskStatus = "Stopped"

	// TaskStatusCompleted means the task finished successfully
	TaskStatusCompleted TaskStatus = "Completed"

	// TaskStatusError means the task failed with an error
	TaskStatusError TaskStatus = "Error"
)

// String returns the string representation of TaskStatus
func (ts TaskStatus) String() string {
	return string(ts)
}

// IsActive returns true if the task is in an active state
func (ts TaskStatus) IsActive() bool {
	return ts == TaskStatusStarting || ts == TaskStatusDownloading || ts == TaskStatusStopping
}

// IsFinished returns true if the task is in a finished state (completed, stopped, or error)
func (ts TaskStatus) IsFinished() bool {
	return ts == TaskStatusCompleted || ts == TaskStatusStopped || ts == TaskStatusError
}

// EpisodeState is the persisted lifecycle state of an episode file.
type EpisodeState int

const (
	// StateNormal means the episode is known but has no local file
	StateNormal EpisodeState = iota

	// StateDownloaded means the episode file was downloaded
	StateDownloaded

	// StateDeleted means the local file was deleted by the user
	StateDeleted
)

// String returns the string representation of EpisodeState
func (s EpisodeState) String() string {
	switch s {
	case StateNormal:
		return "normal"
	case StateDownloaded:
		return "downloaded"
	case StateDeleted:
		return "deleted"
	default:
		return "unknown"
	}
}

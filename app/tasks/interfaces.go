package tasks

// TaskSchedulerInterface defines the interface for background task
// scheduling. The main application starts and stops it; the API uses
// IsAlive for health reporting.
type TaskSchedulerInterface interface {
	Start()
	Stop()
	EnqueueTask(task TaskInterface) error
	IsAlive() bool
}

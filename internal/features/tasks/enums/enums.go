package tasks_enums

type Priority string

const (
	PriorityLow    Priority = "LOW"
	PriorityMedium Priority = "MEDIUM"
	PriorityHigh   Priority = "HIGH"
	PriorityUrgent Priority = "URGENT"
)

func (p Priority) IsValid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh, PriorityUrgent:
		return true
	}

	return false
}

// Tab is the workflow column a task currently sits in.
type Tab string

const (
	TabPending     Tab = "PENDING"
	TabInProgress  Tab = "IN_PROGRESS"
	TabUnderReview Tab = "UNDER_REVIEW"
	TabCompleted   Tab = "COMPLETED"
)

func (t Tab) IsValid() bool {
	switch t {
	case TabPending, TabInProgress, TabUnderReview, TabCompleted:
		return true
	}

	return false
}

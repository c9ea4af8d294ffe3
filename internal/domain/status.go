package domain

// ResumeStatus is the lifecycle state of a job application
type ResumeStatus string

const (
	ResumeStatusPending  ResumeStatus = "pending"
	ResumeStatusReviewed ResumeStatus = "reviewed"
	ResumeStatusRejected ResumeStatus = "rejected"
	ResumeStatusAccepted ResumeStatus = "accepted"
)

// resumeTransitions lists the statuses reachable from each status.
// Decided statuses stay freely editable, including a reset to pending.
var resumeTransitions = map[ResumeStatus][]ResumeStatus{
	ResumeStatusPending:  {ResumeStatusReviewed, ResumeStatusRejected, ResumeStatusAccepted},
	ResumeStatusReviewed: {ResumeStatusPending, ResumeStatusRejected, ResumeStatusAccepted},
	ResumeStatusRejected: {ResumeStatusPending, ResumeStatusReviewed, ResumeStatusAccepted},
	ResumeStatusAccepted: {ResumeStatusPending, ResumeStatusReviewed, ResumeStatusRejected},
}

func (s ResumeStatus) Valid() bool {
	_, ok := resumeTransitions[s]
	return ok
}

// CanTransitionTo reports whether next is reachable from s. Staying in the
// same status is always allowed and is treated as a no-op by the workflow.
func (s ResumeStatus) CanTransitionTo(next ResumeStatus) bool {
	if !s.Valid() || !next.Valid() {
		return false
	}
	if s == next {
		return true
	}
	for _, candidate := range resumeTransitions[s] {
		if candidate == next {
			return true
		}
	}
	return false
}

// InterviewStatus is the lifecycle state of an interview
type InterviewStatus string

const (
	InterviewStatusScheduled InterviewStatus = "scheduled"
	InterviewStatusCompleted InterviewStatus = "completed"
	InterviewStatusCanceled  InterviewStatus = "canceled"
)

// completed and canceled are terminal
var interviewTransitions = map[InterviewStatus][]InterviewStatus{
	InterviewStatusScheduled: {InterviewStatusCompleted, InterviewStatusCanceled},
	InterviewStatusCompleted: {},
	InterviewStatusCanceled:  {},
}

func (s InterviewStatus) Valid() bool {
	_, ok := interviewTransitions[s]
	return ok
}

func (s InterviewStatus) CanTransitionTo(next InterviewStatus) bool {
	if !s.Valid() || !next.Valid() {
		return false
	}
	if s == next {
		return true
	}
	if s.Terminal() {
		return false
	}
	for _, candidate := range interviewTransitions[s] {
		if candidate == next {
			return true
		}
	}
	return false
}

func (s InterviewStatus) Terminal() bool {
	return s.Valid() && len(interviewTransitions[s]) == 0
}

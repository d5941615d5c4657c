package tasks

import "tailorshop/internal/pkg/apperr"

var (
	ErrNotYourTask      = apperr.Authorization("task is assigned to someone else")
	ErrReassign         = apperr.Authorization("only managers can reassign tasks")
	ErrAssigneeNotStaff = apperr.Validation("assignee_id must reference a staff user")
)

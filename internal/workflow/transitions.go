package workflow

import "fmt"

// Action is a review-pipeline operation requested against a record
type Action string

const (
	ActionSubmit       Action = "submit"
	ActionApprove      Action = "approve"
	ActionValidate     Action = "validate"
	ActionFinalApprove Action = "final_approve"
	ActionReject       Action = "reject"
)

// KnownAction reports whether action is one of the defined pipeline actions.
func KnownAction(action Action) bool {
	switch action {
	case ActionSubmit, ActionApprove, ActionValidate, ActionFinalApprove, ActionReject:
		return true
	}
	return false
}

type transitionKey struct {
	From   Status
	Action Action
}

// transitionTable maps (status, action) pairs to the resulting status.
// FINAL_APPROVED is terminal: no action leads out of it.
var transitionTable = map[transitionKey]Status{
	{StatusDraft, ActionSubmit}:           StatusSubmitted,
	{StatusRejected, ActionSubmit}:        StatusSubmitted, // resubmission after rejection
	{StatusSubmitted, ActionApprove}:      StatusApproved,
	{StatusSubmitted, ActionReject}:       StatusRejected,
	{StatusApproved, ActionValidate}:      StatusValidated,
	{StatusApproved, ActionReject}:        StatusRejected,
	{StatusValidated, ActionFinalApprove}: StatusFinalApproved,
	{StatusValidated, ActionReject}:       StatusRejected,
}

// Next returns the status that applying action to a record in status from
// would produce. The error reports an undefined transition.
func Next(from Status, action Action) (Status, error) {
	to, ok := transitionTable[transitionKey{From: from, Action: action}]
	if !ok {
		return "", fmt.Errorf("cannot %s a %s record", action, from)
	}
	return to, nil
}

// CanTransition reports whether the (status, action) pair is defined.
func CanTransition(from Status, action Action) bool {
	_, ok := transitionTable[transitionKey{From: from, Action: action}]
	return ok
}

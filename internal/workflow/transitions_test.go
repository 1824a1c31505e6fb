package workflow

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNext_HappyPath(t *testing.T) {
	st, err := Next(StatusDraft, ActionSubmit)
	require.NoError(t, err)
	assert.Equal(t, StatusSubmitted, st)

	st, err = Next(st, ActionApprove)
	require.NoError(t, err)
	assert.Equal(t, StatusApproved, st)

	st, err = Next(st, ActionValidate)
	require.NoError(t, err)
	assert.Equal(t, StatusValidated, st)

	st, err = Next(st, ActionFinalApprove)
	require.NoError(t, err)
	assert.Equal(t, StatusFinalApproved, st)
}

func TestNext_ResubmitAfterRejection(t *testing.T) {
	st, err := Next(StatusSubmitted, ActionReject)
	require.NoError(t, err)
	assert.Equal(t, StatusRejected, st)

	st, err = Next(st, ActionSubmit)
	require.NoError(t, err)
	assert.Equal(t, StatusSubmitted, st)
}

func TestNext_RejectableFromEveryReviewStage(t *testing.T) {
	for _, from := range []Status{StatusSubmitted, StatusApproved, StatusValidated} {
		st, err := Next(from, ActionReject)
		require.NoError(t, err, "reject from %s", from)
		assert.Equal(t, StatusRejected, st)
	}
}

func TestNext_FinalApprovedIsTerminal(t *testing.T) {
	for _, action := range []Action{ActionSubmit, ActionApprove, ActionValidate, ActionFinalApprove, ActionReject} {
		_, err := Next(StatusFinalApproved, action)
		assert.Error(t, err, "action %s", action)
	}
}

func TestNext_UndefinedTransitions(t *testing.T) {
	_, err := Next(StatusDraft, ActionApprove)
	assert.Error(t, err)
	_, err = Next(StatusDraft, ActionReject)
	assert.Error(t, err)
	_, err = Next(StatusApproved, ActionApprove)
	assert.Error(t, err)
	_, err = Next(StatusRejected, ActionReject)
	assert.Error(t, err)
}

func TestParseStatus(t *testing.T) {
	st, err := ParseStatus("SUBMITTED")
	require.NoError(t, err)
	assert.Equal(t, StatusSubmitted, st)

	_, err = ParseStatus("SUBMITED")
	assert.Error(t, err)
}

func TestStatusEditable(t *testing.T) {
	assert.True(t, StatusDraft.Editable())
	assert.True(t, StatusRejected.Editable())
	assert.False(t, StatusSubmitted.Editable())
	assert.False(t, StatusApproved.Editable())
	assert.False(t, StatusValidated.Editable())
	assert.False(t, StatusFinalApproved.Editable())
}

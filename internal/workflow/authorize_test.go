package workflow

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

var allRoles = []Role{
	RoleAdvisor,
	RoleStateMinister,
	RoleStrategicStaff,
	RoleExecutive,
	RoleLeadExecutiveBody,
	RoleMinisterView,
}

func TestCanSubmit_ImpliesEditableStatus(t *testing.T) {
	// canSubmit(role, status, true) ⇒ status ∈ {DRAFT, REJECTED}
	for _, role := range allRoles {
		for _, status := range AllStatuses {
			if CanSubmit(role, status, true) {
				assert.Contains(t, []Status{StatusDraft, StatusRejected}, status,
					"role %s may submit from %s", role, status)
				assert.Equal(t, RoleLeadExecutiveBody, role)
			}
		}
	}
}

func TestCanEdit_ClosedWindowBlocksEveryone(t *testing.T) {
	for _, role := range allRoles {
		for _, status := range AllStatuses {
			assert.False(t, CanEdit(role, status, false))
			assert.False(t, CanSubmit(role, status, false))
		}
	}
}

func TestCanEdit_OnlyEncoderRole(t *testing.T) {
	assert.True(t, CanEdit(RoleLeadExecutiveBody, StatusDraft, true))
	assert.True(t, CanEdit(RoleLeadExecutiveBody, StatusRejected, true))
	assert.False(t, CanEdit(RoleLeadExecutiveBody, StatusSubmitted, true))

	for _, role := range allRoles {
		if role == RoleLeadExecutiveBody {
			continue
		}
		assert.False(t, CanEdit(role, StatusDraft, true), "role %s", role)
	}
}

func TestCanEditPerformance_RequiresApprovedBreakdown(t *testing.T) {
	assert.False(t, CanEditPerformance(RoleLeadExecutiveBody, StatusDraft, StatusDraft, true))
	assert.False(t, CanEditPerformance(RoleLeadExecutiveBody, StatusDraft, StatusSubmitted, true))
	assert.False(t, CanEditPerformance(RoleLeadExecutiveBody, StatusDraft, StatusRejected, true))

	for _, bd := range []Status{StatusApproved, StatusValidated, StatusFinalApproved} {
		assert.True(t, CanEditPerformance(RoleLeadExecutiveBody, StatusDraft, bd, true), "breakdown %s", bd)
		assert.True(t, CanSubmitPerformance(RoleLeadExecutiveBody, StatusRejected, bd, true), "breakdown %s", bd)
	}
}

func TestAllowedAction_ReviewerLadder(t *testing.T) {
	assert.True(t, AllowedAction(RoleStateMinister, ActionApprove))
	assert.True(t, AllowedAction(RoleStrategicStaff, ActionValidate))
	assert.True(t, AllowedAction(RoleExecutive, ActionFinalApprove))

	assert.False(t, AllowedAction(RoleStateMinister, ActionValidate))
	assert.False(t, AllowedAction(RoleStrategicStaff, ActionFinalApprove))
	assert.False(t, AllowedAction(RoleExecutive, ActionApprove))
	assert.False(t, AllowedAction(RoleAdvisor, ActionApprove))
	assert.False(t, AllowedAction(RoleMinisterView, ActionSubmit))
}

func TestAllowedAction_RejectForAnyReviewer(t *testing.T) {
	for _, role := range []Role{RoleStateMinister, RoleStrategicStaff, RoleExecutive} {
		assert.True(t, AllowedAction(role, ActionReject), "role %s", role)
	}
	assert.False(t, AllowedAction(RoleLeadExecutiveBody, ActionReject))
	assert.False(t, AllowedAction(RoleAdvisor, ActionReject))
}

func TestRejectNeedsComment(t *testing.T) {
	assert.True(t, RejectNeedsComment(RoleStrategicStaff))
	assert.False(t, RejectNeedsComment(RoleStateMinister))
	assert.False(t, RejectNeedsComment(RoleExecutive))
}

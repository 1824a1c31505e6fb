package workflow

// Role is the review-pipeline role assigned to a user
type Role string

const (
	RoleAdvisor           Role = "ADVISOR"
	RoleStateMinister     Role = "STATE_MINISTER"
	RoleStrategicStaff    Role = "STRATEGIC_STAFF"
	RoleExecutive         Role = "EXECUTIVE"
	RoleLeadExecutiveBody Role = "LEAD_EXECUTIVE_BODY"
	RoleMinisterView      Role = "MINISTER_VIEW"
)

// actionRoles maps each pipeline action to the single role allowed to perform
// it. Reject is special-cased below: every reviewer role may reject.
var actionRoles = map[Action]Role{
	ActionSubmit:       RoleLeadExecutiveBody,
	ActionApprove:      RoleStateMinister,
	ActionValidate:     RoleStrategicStaff,
	ActionFinalApprove: RoleExecutive,
}

// reviewerRoles are the roles that sit above the encoder in the pipeline.
var reviewerRoles = map[Role]bool{
	RoleStateMinister:  true,
	RoleStrategicStaff: true,
	RoleExecutive:      true,
}

// IsReviewer reports whether the role reviews records rather than encoding them.
func IsReviewer(role Role) bool {
	return reviewerRoles[role]
}

// AllowedAction reports whether role may request action, ignoring record
// status. Status compatibility is the transition table's job.
func AllowedAction(role Role, action Action) bool {
	if action == ActionReject {
		return IsReviewer(role)
	}
	return actionRoles[action] == role
}

// CanEdit is the advisory hint for whether a breakdown's values may be changed
// right now: the entry window must be open, only the Lead Executive Body
// encodes, and the record must still be in an editable status. The backend
// re-validates independently on every write.
func CanEdit(role Role, status Status, windowOpen bool) bool {
	return windowOpen && role == RoleLeadExecutiveBody && status.Editable()
}

// CanSubmit mirrors CanEdit for the submit action.
func CanSubmit(role Role, status Status, windowOpen bool) bool {
	return windowOpen && AllowedAction(role, ActionSubmit) && CanTransition(status, ActionSubmit)
}

// CanEditPerformance gates performance entry: everything CanEdit requires,
// plus the owning breakdown must have cleared State Minister approval.
// Performance cannot be entered before its plan is approved.
func CanEditPerformance(role Role, status Status, breakdownStatus Status, windowOpen bool) bool {
	return CanEdit(role, status, windowOpen) && breakdownStatus.AtLeastApproved()
}

// CanSubmitPerformance mirrors CanEditPerformance for the submit action.
func CanSubmitPerformance(role Role, status Status, breakdownStatus Status, windowOpen bool) bool {
	return CanSubmit(role, status, windowOpen) && breakdownStatus.AtLeastApproved()
}

// RejectNeedsComment reports whether role must provide a rejection note.
// Strategic Affairs Staff rejections always carry one.
func RejectNeedsComment(role Role) bool {
	return role == RoleStrategicStaff
}

package domain

// RoleDenialError is a write denial caused by the caller's role.
// RoleDenialError and OwnershipDenialError both surface as HTTP 403 but
// stay distinct so callers and tests can assert on the cause.
type RoleDenialError struct {
	Action string // "create", "update", "delete"
}

func (e *RoleDenialError) Error() string {
	return "Admins cannot " + e.Action + " projects."
}

// OwnershipDenialError is a write denial caused by the caller not owning
// the target project.
type OwnershipDenialError struct {
	Action string // "update", "delete"
}

func (e *OwnershipDenialError) Error() string {
	return "You can only " + e.Action + " your own projects."
}

// CanCreateProject reports whether a caller with the given role may create
// projects. Only workers create; every other role is denied.
func CanCreateProject(role Role) error {
	if role != RoleWorker {
		return &RoleDenialError{Action: "create"}
	}
	return nil
}

// CanModifyProject reports whether the caller may update or delete the
// given project. The role check runs before the ownership check, matching
// the order the denial reasons are surfaced in.
func CanModifyProject(role Role, callerID uint, p *Project, action string) error {
	if role != RoleWorker {
		return &RoleDenialError{Action: action}
	}
	if p.CreatedByID != callerID {
		return &OwnershipDenialError{Action: action}
	}
	return nil
}

// VisibleScope returns the owner filter for read operations: zero means
// unscoped (admins see everything), non-zero restricts the result set to
// that owner.
func VisibleScope(role Role, callerID uint) uint {
	if role == RoleAdmin {
		return 0
	}
	return callerID
}

// InScope reports whether a single project is visible to the caller.
func InScope(role Role, callerID uint, p *Project) bool {
	return role == RoleAdmin || p.CreatedByID == callerID
}

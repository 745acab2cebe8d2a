package domain

import (
	"errors"
	"testing"
)

func TestCanCreateProject(t *testing.T) {
	if err := CanCreateProject(RoleWorker); err != nil {
		t.Fatalf("worker should create, got %v", err)
	}

	err := CanCreateProject(RoleAdmin)
	var roleDenial *RoleDenialError
	if !errors.As(err, &roleDenial) {
		t.Fatalf("expected RoleDenialError, got %v", err)
	}
	if roleDenial.Error() != "Admins cannot create projects." {
		t.Fatalf("unexpected detail: %q", roleDenial.Error())
	}
}

func TestCanCreateProject_UnknownRole(t *testing.T) {
	// Anything outside the closed set is not-WORKER for write checks.
	if err := CanCreateProject(Role("MANAGER")); err == nil {
		t.Fatalf("unknown role must not create")
	}
}

func TestCanModifyProject_Owner(t *testing.T) {
	p := &Project{ID: 1, CreatedByID: 7}
	if err := CanModifyProject(RoleWorker, 7, p, "update"); err != nil {
		t.Fatalf("owning worker should modify, got %v", err)
	}
}

func TestCanModifyProject_WrongRole(t *testing.T) {
	p := &Project{ID: 1, CreatedByID: 7}
	err := CanModifyProject(RoleAdmin, 7, p, "delete")
	var roleDenial *RoleDenialError
	if !errors.As(err, &roleDenial) {
		t.Fatalf("expected RoleDenialError, got %v", err)
	}
	if roleDenial.Error() != "Admins cannot delete projects." {
		t.Fatalf("unexpected detail: %q", roleDenial.Error())
	}
}

func TestCanModifyProject_WrongOwner(t *testing.T) {
	p := &Project{ID: 1, CreatedByID: 7}
	err := CanModifyProject(RoleWorker, 8, p, "update")
	var ownerDenial *OwnershipDenialError
	if !errors.As(err, &ownerDenial) {
		t.Fatalf("expected OwnershipDenialError, got %v", err)
	}
	if ownerDenial.Error() != "You can only update your own projects." {
		t.Fatalf("unexpected detail: %q", ownerDenial.Error())
	}
}

func TestCanModifyProject_RoleCheckedBeforeOwnership(t *testing.T) {
	// An admin who also fails the ownership check gets the role denial.
	p := &Project{ID: 1, CreatedByID: 7}
	err := CanModifyProject(RoleAdmin, 8, p, "update")
	var roleDenial *RoleDenialError
	if !errors.As(err, &roleDenial) {
		t.Fatalf("expected RoleDenialError, got %v", err)
	}
}

func TestVisibleScope(t *testing.T) {
	if got := VisibleScope(RoleAdmin, 42); got != 0 {
		t.Fatalf("admin scope should be unfiltered, got %d", got)
	}
	if got := VisibleScope(RoleWorker, 42); got != 42 {
		t.Fatalf("worker scope should be own id, got %d", got)
	}
	if got := VisibleScope(Role("MANAGER"), 42); got != 42 {
		t.Fatalf("unknown role should be scoped like a worker, got %d", got)
	}
}

func TestInScope(t *testing.T) {
	p := &Project{ID: 1, CreatedByID: 7}
	if !InScope(RoleAdmin, 99, p) {
		t.Fatalf("admin should see everything")
	}
	if !InScope(RoleWorker, 7, p) {
		t.Fatalf("owner should see own project")
	}
	if InScope(RoleWorker, 8, p) {
		t.Fatalf("worker should not see someone else's project")
	}
}

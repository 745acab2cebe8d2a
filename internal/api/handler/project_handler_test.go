package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/fullstacktime/project-tracker/internal/core/domain"
	"github.com/fullstacktime/project-tracker/internal/core/ports"
)

type stubProjectService struct {
	projects []*domain.Project
	project  *domain.Project
	err      error

	gotCaller ports.Caller
	gotCreate ports.CreateProjectInput
	gotUpdate ports.UpdateProjectInput
	gotID     uint
}

func (s *stubProjectService) List(_ context.Context, caller ports.Caller) ([]*domain.Project, error) {
	s.gotCaller = caller
	return s.projects, s.err
}

func (s *stubProjectService) Get(_ context.Context, caller ports.Caller, id uint) (*domain.Project, error) {
	s.gotCaller, s.gotID = caller, id
	return s.project, s.err
}

func (s *stubProjectService) Create(_ context.Context, caller ports.Caller, input ports.CreateProjectInput) (*domain.Project, error) {
	s.gotCaller, s.gotCreate = caller, input
	return s.project, s.err
}

func (s *stubProjectService) Update(_ context.Context, caller ports.Caller, id uint, input ports.UpdateProjectInput) (*domain.Project, error) {
	s.gotCaller, s.gotID, s.gotUpdate = caller, id, input
	return s.project, s.err
}

func (s *stubProjectService) Delete(_ context.Context, caller ports.Caller, id uint) error {
	s.gotCaller, s.gotID = caller, id
	return s.err
}

func sampleProject() *domain.Project {
	return &domain.Project{
		ID:          3,
		Name:        "P1",
		Description: "first",
		CreatedByID: 1,
		CreatedBy:   domain.User{ID: 1, Username: "worker_a", Email: "a@example.com", Role: domain.RoleWorker},
		CreatedAt:   time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC),
	}
}

// authedContext builds a context carrying the identity the Auth middleware
// would have injected.
func authedContext(t *testing.T, method, path, body string, caller ports.Caller) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	c, rec := newEchoContext(t, method, path, body)
	c.Set("user_id", caller.UserID)
	c.Set("username", caller.Username)
	c.Set("role", string(caller.Role))
	return c, rec
}

var (
	callerWorker = ports.Caller{UserID: 1, Username: "worker_a", Role: domain.RoleWorker}
	callerAdmin  = ports.Caller{UserID: 3, Username: "admin", Role: domain.RoleAdmin}
)

func TestProjectHandler_List(t *testing.T) {
	svc := &stubProjectService{projects: []*domain.Project{sampleProject()}}
	h := NewProjectHandler(svc)

	c, rec := authedContext(t, http.MethodGet, "/api/projects/", "", callerWorker)

	if err := h.List(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if svc.gotCaller != callerWorker {
		t.Fatalf("caller not forwarded: %+v", svc.gotCaller)
	}

	var resp []map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(resp) != 1 {
		t.Fatalf("expected one project, got %d", len(resp))
	}
	owner, ok := resp[0]["created_by"].(map[string]any)
	if !ok || owner["username"] != "worker_a" {
		t.Fatalf("owner not embedded: %v", resp[0])
	}
}

func TestProjectHandler_List_Unauthenticated(t *testing.T) {
	h := NewProjectHandler(&stubProjectService{})

	c, _ := newEchoContext(t, http.MethodGet, "/api/projects/", "")

	err := h.List(c)
	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without claims, got %v", err)
	}
}

func TestProjectHandler_Get_BadID(t *testing.T) {
	h := NewProjectHandler(&stubProjectService{})

	c, _ := authedContext(t, http.MethodGet, "/api/projects/abc/", "", callerWorker)
	c.SetParamNames("id")
	c.SetParamValues("abc")

	if err := h.Get(c); !errors.Is(err, domain.ErrProjectNotFound) {
		t.Fatalf("non-numeric id should be not-found, got %v", err)
	}
}

func TestProjectHandler_Create(t *testing.T) {
	svc := &stubProjectService{project: sampleProject()}
	h := NewProjectHandler(svc)

	// A client-supplied owner field is not bindable and must be ignored.
	c, rec := authedContext(t, http.MethodPost, "/api/projects/",
		`{"name":"P1","description":"first","created_by":{"id":99}}`, callerWorker)

	if err := h.Create(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}
	if svc.gotCreate.Name != "P1" || svc.gotCreate.Description != "first" {
		t.Fatalf("input not forwarded: %+v", svc.gotCreate)
	}
	if svc.gotCaller != callerWorker {
		t.Fatalf("caller not forwarded: %+v", svc.gotCaller)
	}
}

func TestProjectHandler_Create_MissingName(t *testing.T) {
	h := NewProjectHandler(&stubProjectService{})

	c, _ := authedContext(t, http.MethodPost, "/api/projects/", `{"description":"x"}`, callerWorker)

	err := h.Create(c)
	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %v", err)
	}
}

func TestProjectHandler_Create_AdminDenied(t *testing.T) {
	svc := &stubProjectService{err: &domain.RoleDenialError{Action: "create"}}
	h := NewProjectHandler(svc)

	c, _ := authedContext(t, http.MethodPost, "/api/projects/", `{"name":"P1"}`, callerAdmin)

	err := h.Create(c)
	var roleDenial *domain.RoleDenialError
	if !errors.As(err, &roleDenial) {
		t.Fatalf("expected RoleDenialError passthrough, got %v", err)
	}
}

func TestProjectHandler_Patch_PartialBody(t *testing.T) {
	svc := &stubProjectService{project: sampleProject()}
	h := NewProjectHandler(svc)

	c, rec := authedContext(t, http.MethodPatch, "/api/projects/3/", `{"description":"updated"}`, callerWorker)
	c.SetParamNames("id")
	c.SetParamValues("3")

	if err := h.Patch(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if svc.gotUpdate.Name != nil {
		t.Fatalf("absent field must stay nil")
	}
	if svc.gotUpdate.Description == nil || *svc.gotUpdate.Description != "updated" {
		t.Fatalf("description not forwarded: %+v", svc.gotUpdate)
	}
}

func TestProjectHandler_Replace_RequiresName(t *testing.T) {
	h := NewProjectHandler(&stubProjectService{})

	c, _ := authedContext(t, http.MethodPut, "/api/projects/3/", `{"description":"only"}`, callerWorker)
	c.SetParamNames("id")
	c.SetParamValues("3")

	err := h.Replace(c)
	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %v", err)
	}
}

func TestProjectHandler_Delete(t *testing.T) {
	svc := &stubProjectService{}
	h := NewProjectHandler(svc)

	c, rec := authedContext(t, http.MethodDelete, "/api/projects/3/", "", callerWorker)
	c.SetParamNames("id")
	c.SetParamValues("3")

	if err := h.Delete(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", rec.Code)
	}
	if svc.gotID != 3 {
		t.Fatalf("id not forwarded: %d", svc.gotID)
	}
	if strings.TrimSpace(rec.Body.String()) != "" {
		t.Fatalf("204 must have an empty body")
	}
}

func TestProjectHandler_Delete_OwnershipDenied(t *testing.T) {
	svc := &stubProjectService{err: &domain.OwnershipDenialError{Action: "delete"}}
	h := NewProjectHandler(svc)

	c, _ := authedContext(t, http.MethodDelete, "/api/projects/3/", "", callerWorker)
	c.SetParamNames("id")
	c.SetParamValues("3")

	err := h.Delete(c)
	var ownerDenial *domain.OwnershipDenialError
	if !errors.As(err, &ownerDenial) {
		t.Fatalf("expected OwnershipDenialError passthrough, got %v", err)
	}
}

package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/fullstacktime/project-tracker/internal/api/metrics"
	"github.com/fullstacktime/project-tracker/internal/core/domain"
	"github.com/fullstacktime/project-tracker/internal/core/ports"
)

// ProjectHandler handles HTTP requests for project operations.
type ProjectHandler struct {
	service ports.ProjectService
}

func NewProjectHandler(service ports.ProjectService) *ProjectHandler {
	return &ProjectHandler{service: service}
}

// List handles GET /api/projects/.
//
// @Summary      List visible projects
// @Description  Admins see every project; workers see only their own.
// @Tags         projects
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   projectResponse
// @Failure      401  {object}  errorEnvelope
// @Router       /api/projects/ [get]
func (h *ProjectHandler) List(c echo.Context) error {
	caller, err := ctxCaller(c)
	if err != nil {
		return err
	}

	projects, err := h.service.List(c.Request().Context(), caller)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, toProjectListResponse(projects))
}

// Get handles GET /api/projects/:id/.
//
// @Summary      Retrieve a project
// @Tags         projects
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "Project id"
// @Success      200  {object}  projectResponse
// @Failure      401  {object}  errorEnvelope
// @Failure      403  {object}  errorEnvelope
// @Failure      404  {object}  errorEnvelope
// @Router       /api/projects/{id}/ [get]
func (h *ProjectHandler) Get(c echo.Context) error {
	caller, err := ctxCaller(c)
	if err != nil {
		return err
	}
	id, err := pathID(c)
	if err != nil {
		return err
	}

	p, err := h.service.Get(c.Request().Context(), caller, id)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, toProjectResponse(p))
}

// Create handles POST /api/projects/. The owner is always the caller;
// any owner field in the body is ignored by the schema.
//
// @Summary      Create a project
// @Tags         projects
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createProjectRequest  true  "Project fields"
// @Success      201   {object}  projectResponse
// @Failure      400   {object}  errorEnvelope
// @Failure      401   {object}  errorEnvelope
// @Failure      403   {object}  errorEnvelope
// @Router       /api/projects/ [post]
func (h *ProjectHandler) Create(c echo.Context) error {
	caller, err := ctxCaller(c)
	if err != nil {
		return err
	}

	var req createProjectRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	p, err := h.service.Create(c.Request().Context(), caller, ports.CreateProjectInput{
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		countDenial("create", err)
		return err
	}

	metrics.ProjectsCreatedTotal.Inc()

	return c.JSON(http.StatusCreated, toProjectResponse(p))
}

// Replace handles PUT /api/projects/:id/ — full replacement of the
// mutable fields.
//
// @Summary      Replace a project's mutable fields
// @Tags         projects
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      int                    true  "Project id"
// @Param        body  body      replaceProjectRequest  true  "Project fields"
// @Success      200   {object}  projectResponse
// @Failure      400   {object}  errorEnvelope
// @Failure      403   {object}  errorEnvelope
// @Failure      404   {object}  errorEnvelope
// @Router       /api/projects/{id}/ [put]
func (h *ProjectHandler) Replace(c echo.Context) error {
	caller, err := ctxCaller(c)
	if err != nil {
		return err
	}
	id, err := pathID(c)
	if err != nil {
		return err
	}

	var req replaceProjectRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	p, err := h.service.Update(c.Request().Context(), caller, id, ports.UpdateProjectInput{
		Name:        &req.Name,
		Description: &req.Description,
	})
	if err != nil {
		countDenial("update", err)
		return err
	}

	return c.JSON(http.StatusOK, toProjectResponse(p))
}

// Patch handles PATCH /api/projects/:id/ — partial update; only the
// fields present in the body are applied.
//
// @Summary      Partially update a project
// @Tags         projects
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      int                  true  "Project id"
// @Param        body  body      patchProjectRequest  true  "Fields to change"
// @Success      200   {object}  projectResponse
// @Failure      400   {object}  errorEnvelope
// @Failure      403   {object}  errorEnvelope
// @Failure      404   {object}  errorEnvelope
// @Router       /api/projects/{id}/ [patch]
func (h *ProjectHandler) Patch(c echo.Context) error {
	caller, err := ctxCaller(c)
	if err != nil {
		return err
	}
	id, err := pathID(c)
	if err != nil {
		return err
	}

	var req patchProjectRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	p, err := h.service.Update(c.Request().Context(), caller, id, ports.UpdateProjectInput{
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		countDenial("update", err)
		return err
	}

	return c.JSON(http.StatusOK, toProjectResponse(p))
}

// Delete handles DELETE /api/projects/:id/.
//
// @Summary      Delete a project
// @Tags         projects
// @Security     BearerAuth
// @Param        id  path  int  true  "Project id"
// @Success      204
// @Failure      401  {object}  errorEnvelope
// @Failure      403  {object}  errorEnvelope
// @Failure      404  {object}  errorEnvelope
// @Router       /api/projects/{id}/ [delete]
func (h *ProjectHandler) Delete(c echo.Context) error {
	caller, err := ctxCaller(c)
	if err != nil {
		return err
	}
	id, err := pathID(c)
	if err != nil {
		return err
	}

	if err := h.service.Delete(c.Request().Context(), caller, id); err != nil {
		countDenial("delete", err)
		return err
	}

	metrics.ProjectsDeletedTotal.Inc()

	return c.NoContent(http.StatusNoContent)
}

// pathID parses the :id path segment. A non-numeric id cannot match any
// project, so it renders as not-found.
func pathID(c echo.Context) (uint, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return 0, domain.ErrProjectNotFound
	}
	return uint(id), nil
}

// countDenial records policy rejections by cause; other errors pass
// through untouched.
func countDenial(action string, err error) {
	var roleDenial *domain.RoleDenialError
	if errors.As(err, &roleDenial) {
		metrics.AuthzDenialsTotal.WithLabelValues(action, "role").Inc()
		return
	}
	var ownerDenial *domain.OwnershipDenialError
	if errors.As(err, &ownerDenial) {
		metrics.AuthzDenialsTotal.WithLabelValues(action, "ownership").Inc()
	}
}

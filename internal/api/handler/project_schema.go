package handler

import "time"

// errorEnvelope documents the error shape for swagger; the actual payload
// is rendered by the central error handler.
type errorEnvelope struct {
	Detail string `json:"detail"`
}

// --- Request types ---

type createProjectRequest struct {
	Name        string `json:"name"        validate:"required,max=255"`
	Description string `json:"description"`
}

// replaceProjectRequest is the PUT body: full replacement of the mutable
// fields, so name is mandatory.
type replaceProjectRequest struct {
	Name        string `json:"name"        validate:"required,max=255"`
	Description string `json:"description"`
}

// patchProjectRequest is the PATCH body: only the fields present are
// applied. created_by and created_at are not bindable on either verb.
type patchProjectRequest struct {
	Name        *string `json:"name"        validate:"omitempty,max=255"`
	Description *string `json:"description"`
}

// --- Response types ---
// Response-only types owned by the transport layer, kept separate from
// domain types so the JSON contract is not coupled to internal changes.

type userResponse struct {
	ID       uint   `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Role     string `json:"role"`
}

type projectResponse struct {
	ID          uint         `json:"id"`
	Name        string       `json:"name"`
	Description string       `json:"description"`
	CreatedBy   userResponse `json:"created_by"`
	CreatedAt   time.Time    `json:"created_at"`
}

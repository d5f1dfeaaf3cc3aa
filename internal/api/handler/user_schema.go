package handler

import "time"

// errorResponse is the standard error envelope returned on all 4xx/5xx responses.
type errorResponse struct {
	Error string `json:"error"`
}

// --- Request types ---

type registerRequest struct {
	Name     string `json:"name"     validate:"required,min=2,max=100"`
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// createUserRequest is one entry of the admin batch-create payload.
// Roles is optional; an absent or empty set falls back to {"USER"}.
type createUserRequest struct {
	Name     string   `json:"name"     validate:"required,min=2,max=100"`
	Email    string   `json:"email"    validate:"required,email"`
	Password string   `json:"password" validate:"required"`
	Roles    []string `json:"roles,omitempty"`
}

// updateUserRequest is a full-record update. An empty password keeps the
// stored hash; an empty role list keeps the stored set.
type updateUserRequest struct {
	Name     string   `json:"name"     validate:"required,min=2,max=100"`
	Email    string   `json:"email"    validate:"required,email"`
	Password string   `json:"password,omitempty"`
	Roles    []string `json:"roles,omitempty"`
}

// --- Response types ---

// userResponse is the transport view of a user record. The password hash
// is never part of any response.
type userResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Roles     []string  `json:"roles"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// pageResponse is the paginated listing envelope.
type pageResponse struct {
	Content       []userResponse `json:"content"`
	Page          int            `json:"page"`
	Size          int            `json:"size"`
	TotalElements int64          `json:"total_elements"`
	TotalPages    int            `json:"total_pages"`
}

package handler

import (
	"github.com/usermgmt/user-management-api/internal/core/domain"
	"github.com/usermgmt/user-management-api/internal/core/ports"
)

// --- Request → Service input ---

func toCreateInputs(reqs []createUserRequest) []ports.CreateUserInput {
	out := make([]ports.CreateUserInput, len(reqs))
	for i, r := range reqs {
		out[i] = ports.CreateUserInput{
			Name:     r.Name,
			Email:    r.Email,
			Password: r.Password,
			Roles:    r.Roles,
		}
	}
	return out
}

func toUpdateInput(r updateUserRequest) ports.UpdateUserInput {
	return ports.UpdateUserInput{
		Name:     r.Name,
		Email:    r.Email,
		Password: r.Password,
		Roles:    r.Roles,
	}
}

// --- Service result → HTTP response ---

func toUserResponse(u *domain.User) userResponse {
	return userResponse{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		Roles:     u.Roles,
		CreatedAt: u.CreatedAt.UTC(),
		UpdatedAt: u.UpdatedAt.UTC(),
	}
}

func toUserResponses(users []*domain.User) []userResponse {
	out := make([]userResponse, len(users))
	for i, u := range users {
		out[i] = toUserResponse(u)
	}
	return out
}

func toPageResponse(p *ports.PageResult) pageResponse {
	return pageResponse{
		Content:       toUserResponses(p.Content),
		Page:          p.Page,
		Size:          p.Size,
		TotalElements: p.TotalElements,
		TotalPages:    p.TotalPages,
	}
}

package service

import (
	"context"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/usermgmt/user-management-api/internal/core/domain"
	"github.com/usermgmt/user-management-api/internal/core/ports"
)

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

// ListingCache abstracts the page-listing cache (Redis). Implementations
// must be safe to skip: a cache failure degrades to a store read, never
// to a request failure.
type ListingCache interface {
	GetPage(ctx context.Context, q ports.PageQuery) (*ports.PageResult, error)
	SetPage(ctx context.Context, q ports.PageQuery, page *ports.PageResult) error
	// Invalidate makes all cached pages stale after a mutation.
	Invalidate(ctx context.Context) error
}

// UserService implements CRUD over user records. cache may be nil, which
// disables listing caching entirely.
type UserService struct {
	repo   ports.UserRepository
	hasher PasswordHasher
	cache  ListingCache
	logger zerolog.Logger
}

func NewUserService(repo ports.UserRepository, hasher PasswordHasher, cache ListingCache, logger zerolog.Logger) *UserService {
	return &UserService{repo: repo, hasher: hasher, cache: cache, logger: logger}
}

// CreateBatch persists a batch of admin-supplied users. Passwords are
// hashed before anything is written; an entry without roles gets the
// default set {USER}. A duplicate email anywhere in the batch surfaces as
// domain.ErrEmailTaken and persists none of the batch (the repository's
// CreateMany contract), so a failed batch never invalidates the cache.
func (s *UserService) CreateBatch(ctx context.Context, in []ports.CreateUserInput) ([]*domain.User, error) {
	now := time.Now().UTC()
	users := make([]*domain.User, 0, len(in))
	for _, item := range in {
		hash, err := s.hasher.Hash(item.Password)
		if err != nil {
			return nil, err
		}
		roles := domain.NormalizeRoles(item.Roles)
		if len(roles) == 0 {
			roles = []string{domain.RoleUser}
		}
		users = append(users, &domain.User{
			Name:         strings.TrimSpace(item.Name),
			Email:        strings.TrimSpace(item.Email),
			PasswordHash: hash,
			Roles:        roles,
			CreatedAt:    now,
			UpdatedAt:    now,
		})
	}

	created, err := s.repo.CreateMany(ctx, users)
	if err != nil {
		return nil, err
	}

	s.invalidateListings(ctx)
	s.logger.Info().Int("count", len(created)).Msg("users created")
	return created, nil
}

func (s *UserService) List(ctx context.Context) ([]*domain.User, error) {
	return s.repo.FindAll(ctx)
}

// Page returns one page of users, read through the listing cache when one
// is configured.
func (s *UserService) Page(ctx context.Context, in ports.PageInput) (*ports.PageResult, error) {
	q := normalizePage(in)

	if s.cache != nil {
		if page, err := s.cache.GetPage(ctx, q); err != nil {
			s.logger.Warn().Err(err).Msg("page cache read failed, querying store")
		} else if page != nil {
			return page, nil
		}
	}

	users, total, err := s.repo.FindPage(ctx, q)
	if err != nil {
		return nil, err
	}

	totalPages := int((total + int64(q.Size) - 1) / int64(q.Size))
	page := &ports.PageResult{
		Content:       users,
		Page:          q.Page,
		Size:          q.Size,
		TotalElements: total,
		TotalPages:    totalPages,
	}

	if s.cache != nil {
		if err := s.cache.SetPage(ctx, q, page); err != nil {
			s.logger.Warn().Err(err).Msg("page cache write failed")
		}
	}
	return page, nil
}

func (s *UserService) Get(ctx context.Context, id string) (*domain.User, error) {
	return s.repo.FindByID(ctx, id)
}

// Update applies a full-record update: name and email always, password
// only when a non-empty value was supplied (re-hashed), roles replaced
// wholesale only when the caller supplied a non-empty set.
func (s *UserService) Update(ctx context.Context, id string, in ports.UpdateUserInput) (*domain.User, error) {
	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	user.Name = strings.TrimSpace(in.Name)
	user.Email = strings.TrimSpace(in.Email)
	if in.Password != "" {
		hash, err := s.hasher.Hash(in.Password)
		if err != nil {
			return nil, err
		}
		user.PasswordHash = hash
	}
	if roles := domain.NormalizeRoles(in.Roles); len(roles) > 0 {
		user.Roles = roles
	}
	user.UpdatedAt = time.Now().UTC()

	updated, err := s.repo.Update(ctx, user)
	if err != nil {
		return nil, err
	}

	s.invalidateListings(ctx)
	s.logger.Info().Str("user_id", id).Msg("user updated")
	return updated, nil
}

// Delete removes the record. A second delete of the same id reports
// domain.ErrUserNotFound; the operation never fails destructively.
func (s *UserService) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.invalidateListings(ctx)
	s.logger.Info().Str("user_id", id).Msg("user deleted")
	return nil
}

func (s *UserService) invalidateListings(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Invalidate(ctx); err != nil {
		s.logger.Warn().Err(err).Msg("failed to invalidate listing cache")
	}
}

// normalizePage clamps pagination inputs and parses the sort expression
// ("field,asc" / "field,desc"). Unknown fields fall back to the default
// ordering, newest first.
func normalizePage(in ports.PageInput) ports.PageQuery {
	q := ports.PageQuery{
		Page:      in.Page,
		Size:      in.Size,
		SortField: "created_at",
		SortAsc:   false,
	}
	if q.Page < 0 {
		q.Page = 0
	}
	if q.Size <= 0 {
		q.Size = defaultPageSize
	}
	if q.Size > maxPageSize {
		q.Size = maxPageSize
	}

	field, dir, _ := strings.Cut(in.Sort, ",")
	switch field {
	case "name", "email", "created_at":
		q.SortField = field
		q.SortAsc = !strings.EqualFold(dir, "desc")
	}
	return q
}

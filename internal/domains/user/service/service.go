package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	mediaModel "agromap-backend/internal/domains/media/model"
	mediaService "agromap-backend/internal/domains/media/service"
	"agromap-backend/internal/domains/user/model"
	"agromap-backend/internal/domains/user/repository"
	"agromap-backend/internal/shared/apperror"
	"agromap-backend/internal/shared/authz"
	"agromap-backend/pkg/cache"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"
)

const (
	MaxFailedAttempts = 5
	LockoutDuration   = 15 * time.Minute

	passwordCost = 12
)

type userService struct {
	repo     repository.Repository
	tokens   TokenIssuer
	cache    cache.Cache
	uploader mediaService.Uploader
	cleaner  mediaService.Cleaner
	cost     int
}

func NewUserService(
	repo repository.Repository,
	tokens TokenIssuer,
	cache cache.Cache,
	uploader mediaService.Uploader,
	cleaner mediaService.Cleaner,
) ServiceInterface {
	return &userService{
		repo:     repo,
		tokens:   tokens,
		cache:    cache,
		uploader: uploader,
		cleaner:  cleaner,
		cost:     passwordCost,
	}
}

// HashPassword hashes with the cost used for every stored password
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), passwordCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hash), nil
}

// ========================================
// AUTHENTICATION
// ========================================

func (s *userService) Register(ctx context.Context, req model.RegisterRequest, image *mediaModel.File) (*model.AuthResult, error) {
	u, err := s.create(ctx, req, authz.RoleRegular, image)
	if err != nil {
		return nil, err
	}
	return s.signIn(u)
}

func (s *userService) Login(ctx context.Context, req model.LoginRequest) (*model.AuthResult, error) {
	// Step 1: validate
	if err := req.Validate(); err != nil {
		return nil, apperror.Invalid("username and password are required", err)
	}

	// Step 2: lockout
	key := cache.LoginFailuresKey(req.Username)
	var failures int
	if _, err := s.cache.Get(ctx, key, &failures); err != nil {
		log.Warn().Err(err).Msg("[AUTH] failed-login counter read failed")
	}
	if failures >= MaxFailedAttempts {
		return nil, model.ErrTooManyAttempts
	}

	// Step 3: credentials; an unknown username looks like a wrong password
	u, err := s.repo.GetByUsername(ctx, req.Username)
	if errors.Is(err, model.ErrUserNotFound) {
		s.recordFailure(ctx, key, failures)
		return nil, model.ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}
	if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(req.Password)) != nil {
		s.recordFailure(ctx, key, failures)
		return nil, model.ErrInvalidCredentials
	}

	// Step 4: success resets the counter
	if failures > 0 {
		if err := s.cache.Delete(ctx, key); err != nil {
			log.Warn().Err(err).Msg("[AUTH] failed-login counter reset failed")
		}
	}
	return s.signIn(u)
}

func (s *userService) recordFailure(ctx context.Context, key string, previous int) {
	if err := s.cache.Set(ctx, key, previous+1, LockoutDuration); err != nil {
		log.Warn().Err(err).Msg("[AUTH] failed-login counter write failed")
	}
	if previous+1 >= MaxFailedAttempts {
		log.Warn().Str("key", key).Msg("[AUTH] login locked after repeated failures")
	}
}

func (s *userService) signIn(u *model.User) (*model.AuthResult, error) {
	token, err := s.tokens.GenerateToken(u.ID.String(), u.Username, string(u.Role))
	if err != nil {
		return nil, apperror.Unexpected("failed to issue token", err)
	}
	return &model.AuthResult{Token: token, User: u}, nil
}

// ========================================
// PROFILE
// ========================================

func (s *userService) Profile(ctx context.Context, actor authz.Actor) (*model.User, error) {
	return s.repo.GetByID(ctx, actor.ID)
}

func (s *userService) UpdateProfile(ctx context.Context, actor authz.Actor, req model.UpdateProfileRequest, image *mediaModel.File) (*model.User, error) {
	// Step 1: validate
	req.Normalize()
	if err := req.Validate(); err != nil {
		return nil, apperror.Invalid("invalid profile", err)
	}

	u, err := s.repo.GetByID(ctx, actor.ID)
	if err != nil {
		return nil, err
	}

	// Step 2: password change
	if req.NewPassword != "" {
		if req.CurrentPassword == "" {
			return nil, model.ErrCurrentPasswordRequired
		}
		if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(req.CurrentPassword)) != nil {
			return nil, model.ErrWrongPassword
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), s.cost)
		if err != nil {
			return nil, apperror.Unexpected("failed to hash password", err)
		}
		u.PasswordHash = string(hash)
	}

	// Step 3: image
	var uploaded, replaced *string
	if image != nil {
		url, err := s.uploader.Upload(ctx, mediaModel.FolderProfiles, *image)
		if err != nil {
			return nil, err
		}
		uploaded = &url
		replaced, u.Image = u.Image, uploaded
	}

	// Step 4: save
	req.Apply(u)
	if err := s.repo.Update(ctx, u); err != nil {
		s.discard(ctx, uploaded, "profile update failed")
		return nil, err
	}
	s.discard(ctx, replaced, "profile image replaced")
	return u, nil
}

// ========================================
// ADMIN
// ========================================

func (s *userService) List(ctx context.Context, actor authz.Actor) ([]model.UserWithCounts, error) {
	if !authz.CanAdminister(actor) {
		return nil, model.ErrForbidden
	}
	return s.repo.List(ctx)
}

func (s *userService) Create(ctx context.Context, actor authz.Actor, req model.CreateUserRequest, image *mediaModel.File) (*model.User, error) {
	if !authz.CanAdminister(actor) {
		return nil, model.ErrForbidden
	}

	role := authz.RoleRegular
	if req.Role != "" {
		parsed, err := authz.Parse(req.Role)
		if err != nil {
			return nil, model.ErrInvalidRole
		}
		role = parsed
	}

	u, err := s.create(ctx, req.RegisterRequest, role, image)
	if err != nil {
		return nil, err
	}
	log.Info().Str("user_id", u.ID.String()).Str("role", string(role)).Str("actor", actor.ID.String()).Msg("user created by admin")
	return u, nil
}

func (s *userService) ChangeRole(ctx context.Context, actor authz.Actor, id uuid.UUID, req model.ChangeRoleRequest) (*model.User, error) {
	if !authz.CanAdminister(actor) {
		return nil, model.ErrForbidden
	}
	role, err := authz.Parse(req.Role)
	if err != nil {
		return nil, model.ErrInvalidRole
	}

	u, err := s.repo.UpdateRole(ctx, id, role)
	if err != nil {
		return nil, err
	}

	s.invalidate(ctx)
	log.Info().Str("user_id", id.String()).Str("role", string(role)).Msg("user role changed")
	return u, nil
}

func (s *userService) Delete(ctx context.Context, actor authz.Actor, id uuid.UUID) error {
	if !authz.CanAdminister(actor) {
		return model.ErrForbidden
	}
	if actor.ID == id {
		return model.ErrDeleteSelf
	}

	images, err := s.repo.Delete(ctx, id)
	if err != nil {
		return err
	}
	mediaService.EnqueueQuietly(ctx, s.cleaner, images, fmt.Sprintf("user %s deleted", id))

	s.invalidate(ctx, cache.KeyMarketProvince)
	log.Info().Str("user_id", id.String()).Str("actor", actor.ID.String()).Int("images", len(images)).Msg("user deleted")
	return nil
}

// create validates, stores the optional image and inserts the user
func (s *userService) create(ctx context.Context, req model.RegisterRequest, role authz.Role, image *mediaModel.File) (*model.User, error) {
	// Step 1: validate
	req.Normalize()
	if err := req.Validate(); err != nil {
		return nil, apperror.Invalid(model.ErrInvalidUser.Message, err)
	}

	// Step 2: hash
	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), s.cost)
	if err != nil {
		return nil, apperror.Unexpected("failed to hash password", err)
	}

	// Step 3: image
	var imageURL *string
	if image != nil {
		url, err := s.uploader.Upload(ctx, mediaModel.FolderProfiles, *image)
		if err != nil {
			return nil, err
		}
		imageURL = &url
	}

	// Step 4: insert; the unique index decides duplicate usernames
	u := &model.User{
		Name:         req.Name,
		Username:     req.Username,
		PasswordHash: string(hash),
		Image:        imageURL,
		Role:         role,
		Province:     req.Province,
	}
	if err := s.repo.Create(ctx, u); err != nil {
		s.discard(ctx, imageURL, "user create failed")
		return nil, err
	}

	s.invalidate(ctx)
	return u, nil
}

func (s *userService) discard(ctx context.Context, url *string, reason string) {
	if url == nil {
		return
	}
	mediaService.EnqueueQuietly(ctx, s.cleaner, []string{*url}, reason)
}

func (s *userService) invalidate(ctx context.Context, extra ...string) {
	keys := append([]string{cache.KeyAdminStats}, extra...)
	if err := s.cache.Delete(ctx, keys...); err != nil {
		log.Warn().Err(err).Msg("[USER] cache invalidation failed")
	}
}

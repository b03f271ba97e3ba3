package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/text/language"

	domain "github.com/sahaniaman/ecom-techora/internal/domain"
	"github.com/sahaniaman/ecom-techora/internal/repositories"
)

var (
	// ErrUserInvalidInput indicates validation failures for user operations.
	ErrUserInvalidInput = errors.New("user: invalid input")
	// ErrUserNotFound indicates the user document could not be located.
	ErrUserNotFound = errors.New("user: not found")
	// ErrUserNotProvisioned indicates authentication succeeded but no user document exists.
	ErrUserNotProvisioned = errors.New("user: account not provisioned")
)

// UserServiceDeps bundles collaborators required to construct a UserService.
type UserServiceDeps struct {
	Users  repositories.UserRepository
	Logger *zap.Logger
	Clock  func() time.Time
}

type userService struct {
	users  repositories.UserRepository
	logger *zap.Logger
	clock  func() time.Time
}

// NewUserService wires dependencies into a concrete UserService implementation.
func NewUserService(deps UserServiceDeps) (UserService, error) {
	if deps.Users == nil {
		return nil, errors.New("user service: user repository is required")
	}
	clock := deps.Clock
	if clock == nil {
		clock = time.Now
	}
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &userService{
		users:  deps.Users,
		logger: logger,
		clock:  func() time.Time { return clock().UTC() },
	}, nil
}

func (s *userService) GetUser(ctx context.Context, userID string) (domain.User, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return domain.User{}, fmt.Errorf("%w: user id is required", ErrUserInvalidInput)
	}
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		if isNotFound(err) {
			return domain.User{}, fmt.Errorf("%w: %s", ErrUserNotFound, userID)
		}
		return domain.User{}, err
	}
	return user, nil
}

func (s *userService) ListUsers(ctx context.Context, page, limit int) (domain.Page[domain.User], error) {
	return s.users.List(ctx, page, limit)
}

func (s *userService) UpdateUser(ctx context.Context, cmd UpdateUserCommand) (domain.User, error) {
	userID := strings.TrimSpace(cmd.UserID)
	if userID == "" {
		return domain.User{}, fmt.Errorf("%w: user id is required", ErrUserInvalidInput)
	}
	if cmd.Role == nil && cmd.Status == nil {
		return domain.User{}, fmt.Errorf("%w: nothing to update", ErrUserInvalidInput)
	}

	fields := map[string]any{"updatedAt": s.clock()}
	if cmd.Role != nil {
		switch *cmd.Role {
		case domain.RoleUser, domain.RoleAdmin, domain.RoleSuperAdmin, domain.RoleVendor:
		default:
			return domain.User{}, fmt.Errorf("%w: unknown role %q", ErrUserInvalidInput, *cmd.Role)
		}
		fields["role"] = *cmd.Role
	}
	if cmd.Status != nil {
		switch *cmd.Status {
		case domain.UserStatusActive, domain.UserStatusInactive, domain.UserStatusSuspended, domain.UserStatusPendingVerification:
		default:
			return domain.User{}, fmt.Errorf("%w: unknown status %q", ErrUserInvalidInput, *cmd.Status)
		}
		fields["status"] = *cmd.Status
	}

	if err := s.users.UpdateFields(ctx, userID, fields); err != nil {
		if isNotFound(err) {
			return domain.User{}, fmt.Errorf("%w: %s", ErrUserNotFound, userID)
		}
		return domain.User{}, err
	}
	return s.users.FindByID(ctx, userID)
}

func (s *userService) DeleteUser(ctx context.Context, userID string) error {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return fmt.Errorf("%w: user id is required", ErrUserInvalidInput)
	}
	if err := s.users.Delete(ctx, userID); err != nil {
		if isNotFound(err) {
			return fmt.Errorf("%w: %s", ErrUserNotFound, userID)
		}
		return err
	}
	return nil
}

// ResolveRole loads the role recorded on the user document linked to the
// authenticated UID. Roles are never taken from token claims.
func (s *userService) ResolveRole(ctx context.Context, uid string) (domain.UserRole, error) {
	uid = strings.TrimSpace(uid)
	if uid == "" {
		return "", fmt.Errorf("%w: uid is required", ErrUserInvalidInput)
	}
	user, err := s.users.FindByID(ctx, uid)
	if err != nil {
		if isNotFound(err) {
			return "", ErrUserNotProvisioned
		}
		return "", err
	}
	if user.Role == "" {
		return domain.RoleUser, nil
	}
	return user.Role, nil
}

// SyncIdentity applies a provider lifecycle event to the linked user document.
func (s *userService) SyncIdentity(ctx context.Context, event IdentityEvent) error {
	uid := strings.TrimSpace(event.UID)
	if uid == "" {
		return fmt.Errorf("%w: event uid is required", ErrUserInvalidInput)
	}

	switch event.Type {
	case IdentityEventUserDeleted:
		err := s.users.Delete(ctx, uid)
		if err != nil && !isNotFound(err) {
			return err
		}
		s.logger.Info("identity sync removed user", zap.String("uid", uid))
		return nil
	case IdentityEventUserCreated, IdentityEventUserUpdated:
		return s.upsertFromEvent(ctx, uid, event)
	default:
		return fmt.Errorf("%w: unknown event type %q", ErrUserInvalidInput, event.Type)
	}
}

func (s *userService) upsertFromEvent(ctx context.Context, uid string, event IdentityEvent) error {
	now := s.clock()

	user, err := s.users.FindByID(ctx, uid)
	if err != nil {
		if !isNotFound(err) {
			return err
		}
		user = domain.User{
			ID:        uid,
			Role:      domain.RoleUser,
			Status:    domain.UserStatusActive,
			CreatedAt: now,
		}
	}

	if email := strings.ToLower(strings.TrimSpace(event.Email)); email != "" {
		user.Email = email
	}
	if phone := strings.TrimSpace(event.Phone); phone != "" {
		user.Phone = phone
	}
	if name := strings.TrimSpace(event.Name); name != "" {
		first, last := splitDisplayName(name)
		user.Profile.FirstName = first
		user.Profile.LastName = last
	}
	if picture := strings.TrimSpace(event.Picture); picture != "" {
		user.Profile.Avatar = picture
	}
	if locale, err := canonicaliseLanguageTag(event.Locale); err != nil {
		s.logger.Warn("identity sync ignored invalid locale",
			zap.String("uid", uid),
			zap.String("locale", event.Locale))
	} else if locale != "" {
		user.Preferences.Language = locale
	}
	user.UpdatedAt = now

	if err := s.users.Upsert(ctx, user); err != nil {
		return err
	}
	s.logger.Info("identity sync upserted user",
		zap.String("uid", uid),
		zap.String("eventType", event.Type))
	return nil
}

func splitDisplayName(name string) (first, last string) {
	parts := strings.Fields(name)
	if len(parts) == 0 {
		return "", ""
	}
	if len(parts) == 1 {
		return parts[0], ""
	}
	return parts[0], strings.Join(parts[1:], " ")
}

func canonicaliseLanguageTag(tag string) (string, error) {
	tag = strings.ReplaceAll(strings.TrimSpace(tag), "_", "-")
	if tag == "" {
		return "", nil
	}
	parsed, err := language.Parse(tag)
	if err != nil {
		return "", fmt.Errorf("%w: invalid language tag %q", ErrUserInvalidInput, tag)
	}
	return parsed.String(), nil
}

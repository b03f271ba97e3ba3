package services

import (
	"context"
	"errors"
	"testing"
	"time"

	domain "github.com/sahaniaman/ecom-techora/internal/domain"
)

func newTestUserService(t *testing.T, users *memoryUserRepo, now time.Time) UserService {
	t.Helper()
	svc, err := NewUserService(UserServiceDeps{
		Users: users,
		Clock: func() time.Time { return now },
	})
	if err != nil {
		t.Fatalf("new user service: %v", err)
	}
	return svc
}

func TestUserServiceResolveRole(t *testing.T) {
	now := time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)
	users := newMemoryUserRepo()
	if err := users.Upsert(context.Background(), domain.User{ID: "admin-1", Role: domain.RoleAdmin}); err != nil {
		t.Fatalf("seed: %v", err)
	}
	if err := users.Upsert(context.Background(), domain.User{ID: "blank-role"}); err != nil {
		t.Fatalf("seed: %v", err)
	}
	svc := newTestUserService(t, users, now)

	role, err := svc.ResolveRole(context.Background(), "admin-1")
	if err != nil {
		t.Fatalf("resolve role: %v", err)
	}
	if role != domain.RoleAdmin {
		t.Fatalf("expected ADMIN, got %s", role)
	}

	role, err = svc.ResolveRole(context.Background(), "blank-role")
	if err != nil {
		t.Fatalf("resolve blank role: %v", err)
	}
	if role != domain.RoleUser {
		t.Fatalf("expected fallback USER role, got %s", role)
	}

	if _, err := svc.ResolveRole(context.Background(), "ghost"); !errors.Is(err, ErrUserNotProvisioned) {
		t.Fatalf("expected unprovisioned error, got %v", err)
	}
}

func TestUserServiceUpdateUserValidatesRoleAndStatus(t *testing.T) {
	now := time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)
	users := newMemoryUserRepo()
	if err := users.Upsert(context.Background(), domain.User{ID: "user-1", Role: domain.RoleUser, Status: domain.UserStatusActive}); err != nil {
		t.Fatalf("seed: %v", err)
	}
	svc := newTestUserService(t, users, now)

	role := domain.RoleAdmin
	status := domain.UserStatusSuspended
	updated, err := svc.UpdateUser(context.Background(), UpdateUserCommand{UserID: "user-1", Role: &role, Status: &status})
	if err != nil {
		t.Fatalf("update user: %v", err)
	}
	if updated.Role != domain.RoleAdmin || updated.Status != domain.UserStatusSuspended {
		t.Fatalf("expected role and status applied, got %s / %s", updated.Role, updated.Status)
	}
	if updated.UpdatedAt != now {
		t.Fatalf("expected updatedAt from clock, got %s", updated.UpdatedAt)
	}

	bad := domain.UserRole("WIZARD")
	if _, err := svc.UpdateUser(context.Background(), UpdateUserCommand{UserID: "user-1", Role: &bad}); !errors.Is(err, ErrUserInvalidInput) {
		t.Fatalf("expected unknown role rejection, got %v", err)
	}
	if _, err := svc.UpdateUser(context.Background(), UpdateUserCommand{UserID: "user-1"}); !errors.Is(err, ErrUserInvalidInput) {
		t.Fatalf("expected nothing-to-update rejection, got %v", err)
	}
	if _, err := svc.UpdateUser(context.Background(), UpdateUserCommand{UserID: "ghost", Role: &role}); !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestUserServiceDeleteUser(t *testing.T) {
	now := time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)
	users := newMemoryUserRepo()
	if err := users.Upsert(context.Background(), domain.User{ID: "user-1"}); err != nil {
		t.Fatalf("seed: %v", err)
	}
	svc := newTestUserService(t, users, now)

	if err := svc.DeleteUser(context.Background(), "user-1"); err != nil {
		t.Fatalf("delete user: %v", err)
	}
	if err := svc.DeleteUser(context.Background(), "user-1"); !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("expected not found on second delete, got %v", err)
	}
}

func TestUserServiceSyncIdentityCreatesAndUpdates(t *testing.T) {
	now := time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)
	users := newMemoryUserRepo()
	svc := newTestUserService(t, users, now)

	err := svc.SyncIdentity(context.Background(), IdentityEvent{
		Type:   IdentityEventUserCreated,
		UID:    "uid-1",
		Email:  "Asha.K@Example.com",
		Name:   "Asha K Sharma",
		Locale: "en_us",
	})
	if err != nil {
		t.Fatalf("sync created: %v", err)
	}

	user, err := users.FindByID(context.Background(), "uid-1")
	if err != nil {
		t.Fatalf("find user: %v", err)
	}
	if user.Email != "asha.k@example.com" {
		t.Fatalf("expected lowercased email, got %s", user.Email)
	}
	if user.Role != domain.RoleUser || user.Status != domain.UserStatusActive {
		t.Fatalf("expected USER/ACTIVE defaults, got %s / %s", user.Role, user.Status)
	}
	if user.Profile.FirstName != "Asha" || user.Profile.LastName != "K Sharma" {
		t.Fatalf("expected split display name, got %+v", user.Profile)
	}
	if user.Preferences.Language != "en-US" {
		t.Fatalf("expected canonical locale en-US, got %s", user.Preferences.Language)
	}
	if user.CreatedAt != now {
		t.Fatalf("expected createdAt from clock, got %s", user.CreatedAt)
	}

	// An update keeps the original creation time and existing role.
	user.Role = domain.RoleAdmin
	if err := users.Upsert(context.Background(), user); err != nil {
		t.Fatalf("promote user: %v", err)
	}
	err = svc.SyncIdentity(context.Background(), IdentityEvent{
		Type:  IdentityEventUserUpdated,
		UID:   "uid-1",
		Email: "new@example.com",
	})
	if err != nil {
		t.Fatalf("sync updated: %v", err)
	}
	user, err = users.FindByID(context.Background(), "uid-1")
	if err != nil {
		t.Fatalf("find user: %v", err)
	}
	if user.Email != "new@example.com" {
		t.Fatalf("expected updated email, got %s", user.Email)
	}
	if user.Role != domain.RoleAdmin {
		t.Fatalf("expected role preserved across sync, got %s", user.Role)
	}
	if user.CreatedAt != now {
		t.Fatalf("expected original createdAt preserved, got %s", user.CreatedAt)
	}
}

func TestUserServiceSyncIdentityDelete(t *testing.T) {
	now := time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)
	users := newMemoryUserRepo()
	if err := users.Upsert(context.Background(), domain.User{ID: "uid-1"}); err != nil {
		t.Fatalf("seed: %v", err)
	}
	svc := newTestUserService(t, users, now)

	if err := svc.SyncIdentity(context.Background(), IdentityEvent{Type: IdentityEventUserDeleted, UID: "uid-1"}); err != nil {
		t.Fatalf("sync deleted: %v", err)
	}
	if _, err := users.FindByID(context.Background(), "uid-1"); err == nil {
		t.Fatal("expected user removed")
	}

	// Deleting an unknown uid is not an error; the document is already gone.
	if err := svc.SyncIdentity(context.Background(), IdentityEvent{Type: IdentityEventUserDeleted, UID: "uid-1"}); err != nil {
		t.Fatalf("expected idempotent delete, got %v", err)
	}

	if err := svc.SyncIdentity(context.Background(), IdentityEvent{Type: "user.teleported", UID: "uid-1"}); !errors.Is(err, ErrUserInvalidInput) {
		t.Fatalf("expected unknown event rejection, got %v", err)
	}
}

func TestUserServiceListUsersPaginates(t *testing.T) {
	now := time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)
	users := newMemoryUserRepo()
	for _, id := range []string{"a", "b", "c"} {
		if err := users.Upsert(context.Background(), domain.User{ID: id}); err != nil {
			t.Fatalf("seed: %v", err)
		}
	}
	svc := newTestUserService(t, users, now)

	page, err := svc.ListUsers(context.Background(), 2, 2)
	if err != nil {
		t.Fatalf("list users: %v", err)
	}
	if page.Total != 3 || page.TotalPages != 2 {
		t.Fatalf("expected total 3 over 2 pages, got %d / %d", page.Total, page.TotalPages)
	}
	if len(page.Items) != 1 {
		t.Fatalf("expected 1 item on last page, got %d", len(page.Items))
	}
}

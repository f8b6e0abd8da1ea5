package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	"github.com/SAP-F-2025/course-service/internal/cache"
	"github.com/SAP-F-2025/course-service/internal/events"
	"github.com/SAP-F-2025/course-service/internal/models"
)

func newAuthTestService(t *testing.T, env *serviceTestEnv) AuthService {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	return NewAuthService(env.repo, client, time.Hour, env.logger, env.validator, env.publisher)
}

func TestAuthService_Login(t *testing.T) {
	env := newServiceTestEnv(t)
	service := newAuthTestService(t, env)
	ctx := context.Background()

	user := env.createUser(t, "Alice Smith", "alice.smith@student.edu", models.RoleStudent)

	t.Run("ValidCredentials", func(t *testing.T) {
		resp, err := service.Login(ctx, &LoginRequest{Email: user.Email, Password: "password"})
		if err != nil {
			t.Fatalf("Login failed: %v", err)
		}

		if resp.Token == "" {
			t.Error("Expected a session token")
		}
		if resp.User == nil || resp.User.ID != user.ID {
			t.Errorf("Expected user %s, got %+v", user.ID, resp.User)
		}
		if !resp.ExpiresAt.After(time.Now()) {
			t.Errorf("Session should expire in the future, got %v", resp.ExpiresAt)
		}

		published := env.publisher.GetPublishedEvents()
		if len(published) != 1 || published[0].Type != events.EventUserLoggedIn {
			t.Errorf("Expected one user.logged_in event, got %+v", published)
		}
	})

	t.Run("WrongPassword", func(t *testing.T) {
		_, err := service.Login(ctx, &LoginRequest{Email: user.Email, Password: "hunter2"})
		if !errors.Is(err, ErrInvalidCredentials) {
			t.Errorf("Expected ErrInvalidCredentials, got %v", err)
		}
	})

	t.Run("UnknownEmail", func(t *testing.T) {
		// Indistinguishable from a wrong password
		_, err := service.Login(ctx, &LoginRequest{Email: "nobody@university.edu", Password: "password"})
		if !errors.Is(err, ErrInvalidCredentials) {
			t.Errorf("Expected ErrInvalidCredentials, got %v", err)
		}
	})

	t.Run("MalformedEmailFailsValidation", func(t *testing.T) {
		_, err := service.Login(ctx, &LoginRequest{Email: "not-an-email", Password: "password"})
		if err == nil {
			t.Fatal("Expected validation error")
		}
		if errors.Is(err, ErrInvalidCredentials) {
			t.Errorf("Validation failure must stay distinct from bad credentials, got %v", err)
		}
	})
}

func TestAuthService_NoSessionStore(t *testing.T) {
	env := newServiceTestEnv(t)
	service := NewAuthService(env.repo, nil, time.Hour, env.logger, env.validator, env.publisher)
	ctx := context.Background()

	user := env.createUser(t, "Alice Smith", "alice.smith@student.edu", models.RoleStudent)

	// Without a session store a token could never resolve, so login must
	// fail instead of issuing one
	resp, err := service.Login(ctx, &LoginRequest{Email: user.Email, Password: "password"})
	if err == nil {
		t.Fatalf("Expected login to fail without a session store, got token %q", resp.Token)
	}
	if !errors.Is(err, cache.ErrCacheNotAvailable) {
		t.Errorf("Expected ErrCacheNotAvailable in the chain, got %v", err)
	}

	if got := env.publisher.GetPublishedEvents(); len(got) != 0 {
		t.Errorf("Failed login must not publish events, got %d", len(got))
	}
}

func TestAuthService_CurrentUser(t *testing.T) {
	env := newServiceTestEnv(t)
	service := newAuthTestService(t, env)
	ctx := context.Background()

	user := env.createUser(t, "Bob Wilson", "bob.wilson@student.edu", models.RoleStudent)

	resp, err := service.Login(ctx, &LoginRequest{Email: user.Email, Password: "password"})
	if err != nil {
		t.Fatalf("Login failed: %v", err)
	}

	t.Run("ResolvesToken", func(t *testing.T) {
		got, err := service.CurrentUser(ctx, resp.Token)
		if err != nil {
			t.Fatalf("CurrentUser failed: %v", err)
		}
		if got.ID != user.ID || got.Email != user.Email {
			t.Errorf("Expected user %s, got %+v", user.ID, got)
		}
	})

	t.Run("UnknownToken", func(t *testing.T) {
		_, err := service.CurrentUser(ctx, "not-a-token")
		if !errors.Is(err, ErrSessionNotFound) {
			t.Errorf("Expected ErrSessionNotFound, got %v", err)
		}
	})

	t.Run("EmptyToken", func(t *testing.T) {
		_, err := service.CurrentUser(ctx, "")
		if !errors.Is(err, ErrSessionNotFound) {
			t.Errorf("Expected ErrSessionNotFound, got %v", err)
		}
	})
}

func TestAuthService_Logout(t *testing.T) {
	env := newServiceTestEnv(t)
	service := newAuthTestService(t, env)
	ctx := context.Background()

	user := env.createUser(t, "Alice Smith", "alice.smith@student.edu", models.RoleStudent)

	resp, err := service.Login(ctx, &LoginRequest{Email: user.Email, Password: "password"})
	if err != nil {
		t.Fatalf("Login failed: %v", err)
	}

	if err := service.Logout(ctx, resp.Token); err != nil {
		t.Fatalf("Logout failed: %v", err)
	}

	// Revoked token no longer resolves
	if _, err := service.CurrentUser(ctx, resp.Token); !errors.Is(err, ErrSessionNotFound) {
		t.Errorf("Expected ErrSessionNotFound after logout, got %v", err)
	}

	// Second logout of the same token is also a miss
	if err := service.Logout(ctx, resp.Token); !errors.Is(err, ErrSessionNotFound) {
		t.Errorf("Expected ErrSessionNotFound on repeat logout, got %v", err)
	}
}

func TestAuthService_IndependentSessions(t *testing.T) {
	env := newServiceTestEnv(t)
	service := newAuthTestService(t, env)
	ctx := context.Background()

	alice := env.createUser(t, "Alice Smith", "alice.smith@student.edu", models.RoleStudent)
	bob := env.createUser(t, "Bob Wilson", "bob.wilson@student.edu", models.RoleStudent)

	aliceResp, err := service.Login(ctx, &LoginRequest{Email: alice.Email, Password: "password"})
	if err != nil {
		t.Fatalf("Login failed: %v", err)
	}
	bobResp, err := service.Login(ctx, &LoginRequest{Email: bob.Email, Password: "password"})
	if err != nil {
		t.Fatalf("Login failed: %v", err)
	}

	if aliceResp.Token == bobResp.Token {
		t.Fatal("Sessions must be distinct")
	}

	// Revoking one session leaves the other intact
	if err := service.Logout(ctx, aliceResp.Token); err != nil {
		t.Fatalf("Logout failed: %v", err)
	}

	got, err := service.CurrentUser(ctx, bobResp.Token)
	if err != nil {
		t.Fatalf("Bob's session should survive Alice's logout: %v", err)
	}
	if got.ID != bob.ID {
		t.Errorf("Expected %s, got %s", bob.ID, got.ID)
	}
}

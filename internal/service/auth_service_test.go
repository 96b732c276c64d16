package service

import (
	"context"
	"errors"
	"skillswap_backend/internal/model"
	"skillswap_backend/internal/util"
	"testing"
)

func TestRegisterAndLogin(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	user, err := f.auth.Register(ctx, "alice", "Alice@Example.com", "password1")
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if user.Role != model.Member || user.Email != "alice@example.com" || user.Password == "password1" {
		t.Fatalf("unexpected user %+v", user)
	}
	if _, err := f.profiles.FindByUserID(ctx, user.ID); err != nil {
		t.Fatalf("profile not created: %v", err)
	}

	if _, err := f.auth.Register(ctx, "alice", "other@example.com", "password1"); !errors.Is(err, util.ErrEmailRegistered) {
		t.Fatalf("duplicate username err = %v", err)
	}
	if _, err := f.auth.Register(ctx, "bob", "bob@example.com", "short"); !errors.Is(err, util.ErrValidation) {
		t.Fatalf("short password err = %v", err)
	}
	if _, err := f.auth.Register(ctx, "bob", "not-an-email", "password1"); !errors.Is(err, util.ErrValidation) {
		t.Fatalf("bad email err = %v", err)
	}

	for _, login := range []string{"alice", "alice@example.com"} {
		token, got, err := f.auth.Login(ctx, login, "password1")
		if err != nil || token == "" || got.ID != user.ID {
			t.Fatalf("login %q: %v", login, err)
		}
		claims, err := util.ParseJWT(token, f.cfg.JWT.Secret)
		if err != nil || claims.UserID != user.ID || claims.Role != model.Member {
			t.Fatalf("claims = %+v, %v", claims, err)
		}
	}

	if _, _, err := f.auth.Login(ctx, "alice", "wrong-password"); !errors.Is(err, util.ErrBadCredentials) {
		t.Fatalf("wrong password err = %v", err)
	}
	if _, _, err := f.auth.Login(ctx, "nobody", "password1"); !errors.Is(err, util.ErrBadCredentials) {
		t.Fatalf("unknown user err = %v", err)
	}
}

func TestDeleteAccount(t *testing.T) {
	f := newFixture(t)
	alice, bob := f.user(t, "alice"), f.user(t, "bob")
	ctx := context.Background()
	swap := f.completedSwap(t, alice.ID, bob.ID)
	f.review.Submit(ctx, alice.ID, swap.ID, 5, "")

	if err := f.auth.DeleteAccount(ctx, alice.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := f.auth.CurrentUser(ctx, alice.ID); !errors.Is(err, util.ErrUserNotFound) {
		t.Fatalf("alice still present: %v", err)
	}
	summary, _ := f.review.Summary(ctx, bob.ID)
	if summary.Count != 0 {
		t.Fatalf("reviews by a deleted user remain: %+v", summary)
	}
}

package repository

import (
	"context"
	"errors"
	"skillswap_backend/internal/model"
	"skillswap_backend/internal/util"
	"testing"
)

func TestFindByLoginMatchesEmailOrUsername(t *testing.T) {
	db := newTestDB(t)
	alice := createUser(t, db, "alice")
	repo := NewUserRepository(db)
	ctx := context.Background()

	for _, login := range []string{"alice", "alice@example.com"} {
		got, err := repo.FindByLogin(ctx, login)
		if err != nil || got.ID != alice.ID {
			t.Fatalf("FindByLogin(%q) = %v, %v", login, got, err)
		}
	}
	if _, err := repo.FindByLogin(ctx, "nobody"); !errors.Is(err, util.ErrUserNotFound) {
		t.Fatalf("unknown login err = %v", err)
	}

	exists, err := repo.ExistsByEmailOrUsername(ctx, "other@example.com", "alice")
	if err != nil || !exists {
		t.Fatalf("username clash not detected: %v %v", exists, err)
	}
}

func TestCreateWithProfileMakesPublicProfile(t *testing.T) {
	db := newTestDB(t)
	alice := createUser(t, db, "alice")

	p := profileOf(t, db, alice.ID)
	if !p.IsPublic {
		t.Fatalf("new profiles are public")
	}
	if p.User.Username != "alice" {
		t.Fatalf("profile user not loaded")
	}
}

func TestDeleteCascadeRemovesOwnedRows(t *testing.T) {
	db := newTestDB(t)
	alice := createUser(t, db, "alice")
	bob := createUser(t, db, "bob")
	carol := createUser(t, db, "carol")
	python := createSkill(t, db, "Python")
	ctx := context.Background()

	profiles := NewProfileRepository(db)
	ap := profileOf(t, db, alice.ID)
	profiles.AddOfferedSkill(ctx, ap.ID, python.ID)
	profiles.Update(ctx, ap, []model.Skill{*python})

	ab := completedSwap(t, db, alice.ID, bob.ID)
	reviews := NewReviewRepository(db)
	reviews.CreateForParty(ctx, &model.Review{SwapID: ab.ID, ReviewerID: bob.ID, RevieweeID: alice.ID, Rating: 5}, model.PartyResponder)
	bc := completedSwap(t, db, bob.ID, carol.ID)
	reviews.CreateForParty(ctx, &model.Review{SwapID: bc.ID, ReviewerID: carol.ID, RevieweeID: bob.ID, Rating: 4}, model.PartyResponder)

	repo := NewUserRepository(db)
	if err := repo.DeleteCascade(ctx, alice.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}

	if _, err := repo.FindByID(ctx, alice.ID); !errors.Is(err, util.ErrUserNotFound) {
		t.Fatalf("alice still present: %v", err)
	}
	if _, err := profiles.FindByUserID(ctx, alice.ID); !errors.Is(err, util.ErrProfileNotFound) {
		t.Fatalf("alice's profile still present: %v", err)
	}
	if _, err := NewSwapRequestRepository(db).FindByID(ctx, ab.ID); !errors.Is(err, util.ErrSwapNotFound) {
		t.Fatalf("alice's swap still present: %v", err)
	}

	// unrelated rows survive
	if _, err := NewSwapRequestRepository(db).FindByID(ctx, bc.ID); err != nil {
		t.Fatalf("bob and carol's swap removed: %v", err)
	}
	left, _ := reviews.ListForReviewee(ctx, bob.ID, 0)
	if len(left) != 1 {
		t.Fatalf("bob's review from carol should remain, got %d", len(left))
	}

	if err := repo.DeleteCascade(ctx, alice.ID); !errors.Is(err, util.ErrUserNotFound) {
		t.Fatalf("second delete err = %v", err)
	}
}

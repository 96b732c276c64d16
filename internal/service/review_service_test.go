package service

import (
	"context"
	"errors"
	"skillswap_backend/internal/model"
	"skillswap_backend/internal/util"
	"strings"
	"sync"
	"testing"
)

func TestCanReview(t *testing.T) {
	completed := &model.SwapRequest{RequesterID: 1, ResponderID: 2, Status: model.SwapCompleted}
	cases := []struct {
		name string
		user uint
		swap *model.SwapRequest
		want error
	}{
		{"requester", 1, completed, nil},
		{"responder", 2, completed, nil},
		{"outsider", 3, completed, util.ErrNotParticipant},
		{"pending", 1, &model.SwapRequest{RequesterID: 1, ResponderID: 2, Status: model.SwapPending}, util.ErrSwapNotCompleted},
		{"accepted", 2, &model.SwapRequest{RequesterID: 1, ResponderID: 2, Status: model.SwapAccepted}, util.ErrSwapNotCompleted},
		// status is checked before participation
		{"outsider on pending", 3, &model.SwapRequest{RequesterID: 1, ResponderID: 2, Status: model.SwapPending}, util.ErrSwapNotCompleted},
		{"already reviewed", 1, &model.SwapRequest{RequesterID: 1, ResponderID: 2, Status: model.SwapCompleted, RequesterReviewed: true}, util.ErrAlreadyReviewed},
		{"other side reviewed", 2, &model.SwapRequest{RequesterID: 1, ResponderID: 2, Status: model.SwapCompleted, RequesterReviewed: true}, nil},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := CanReview(tc.user, tc.swap)
			if tc.want == nil {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if !errors.Is(err, tc.want) || !errors.Is(err, util.ErrNotEligible) {
				t.Fatalf("err = %v, want %v", err, tc.want)
			}
		})
	}
}

func TestReviewFlow(t *testing.T) {
	f := newFixture(t)
	alice, bob, carol := f.user(t, "alice"), f.user(t, "bob"), f.user(t, "carol")
	ctx := context.Background()

	accepted := f.acceptedSwap(t, alice.ID, bob.ID)
	if _, err := f.review.Submit(ctx, alice.ID, accepted.ID, 5, "great"); !errors.Is(err, util.ErrSwapNotCompleted) {
		t.Fatalf("review before completion err = %v", err)
	}
	// the eligibility gate runs before rating validation
	if _, err := f.review.Submit(ctx, alice.ID, accepted.ID, 0, ""); !errors.Is(err, util.ErrSwapNotCompleted) {
		t.Fatalf("gate order: err = %v", err)
	}

	f.swap.Complete(ctx, member(alice.ID), accepted.ID)
	swap, err := f.swap.Complete(ctx, member(bob.ID), accepted.ID)
	if err != nil || swap.Status != model.SwapCompleted {
		t.Fatalf("complete: %v %v", swap, err)
	}

	if _, err := f.review.Submit(ctx, carol.ID, swap.ID, 5, ""); !errors.Is(err, util.ErrNotParticipant) {
		t.Fatalf("outsider review err = %v", err)
	}
	if _, err := f.review.Submit(ctx, alice.ID, swap.ID, 6, ""); !errors.Is(err, util.ErrInvalidRating) {
		t.Fatalf("rating 6 err = %v", err)
	}

	review, err := f.review.Submit(ctx, alice.ID, swap.ID, 5, "  Patient mentor  ")
	if err != nil {
		t.Fatalf("alice review: %v", err)
	}
	if review.RevieweeID != bob.ID || review.Comment != "Patient mentor" {
		t.Fatalf("unexpected review %+v", review)
	}

	if _, err := f.review.Submit(ctx, alice.ID, swap.ID, 4, ""); !errors.Is(err, util.ErrAlreadyReviewed) {
		t.Fatalf("second review err = %v", err)
	}

	if _, err := f.review.Submit(ctx, bob.ID, swap.ID, 4, ""); err != nil {
		t.Fatalf("bob review: %v", err)
	}

	reviews, err := f.review.ForSwap(ctx, alice.ID, swap.ID)
	if err != nil || len(reviews) != 2 {
		t.Fatalf("reviews for swap = %d, err %v", len(reviews), err)
	}
	if _, err := f.review.ForSwap(ctx, carol.ID, swap.ID); !errors.Is(err, util.ErrPermissionDenied) {
		t.Fatalf("outsider listing err = %v", err)
	}

	summary, _ := f.review.Summary(ctx, bob.ID)
	if summary.Count != 1 || summary.Average != 5 {
		t.Fatalf("bob summary = %+v", summary)
	}
	received, _ := f.review.Received(ctx, alice.ID, 0)
	if len(received) != 1 || received[0].Rating != 4 {
		t.Fatalf("alice received = %+v", received)
	}

	swap, err = f.review.CheckEligibility(ctx, alice.ID, swap.ID)
	if !errors.Is(err, util.ErrAlreadyReviewed) || swap == nil {
		t.Fatalf("eligibility after review: %v %v", swap, err)
	}
}

func TestReviewCommentIsTruncated(t *testing.T) {
	f := newFixture(t)
	alice, bob := f.user(t, "alice"), f.user(t, "bob")
	swap := f.completedSwap(t, alice.ID, bob.ID)

	long := strings.Repeat("é", maxCommentLength+10)
	review, err := f.review.Submit(context.Background(), alice.ID, swap.ID, 3, long)
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if n := len([]rune(review.Comment)); n != maxCommentLength {
		t.Fatalf("comment length = %d runes", n)
	}
}

func TestConcurrentDuplicateReviews(t *testing.T) {
	f := newFixture(t)
	alice, bob := f.user(t, "alice"), f.user(t, "bob")
	swap := f.completedSwap(t, alice.ID, bob.ID)
	ctx := context.Background()

	const attempts = 5
	var wg sync.WaitGroup
	errs := make([]error, attempts)
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = f.review.Submit(ctx, alice.ID, swap.ID, 5, "")
		}(i)
	}
	wg.Wait()

	stored := 0
	for _, err := range errs {
		switch {
		case err == nil:
			stored++
		case !errors.Is(err, util.ErrAlreadyReviewed):
			t.Fatalf("unexpected error: %v", err)
		}
	}
	if stored != 1 {
		t.Fatalf("%d reviews stored, want 1", stored)
	}

	reviews, _ := f.reviews.ListBySwap(ctx, swap.ID)
	if len(reviews) != 1 {
		t.Fatalf("%d rows for swap", len(reviews))
	}
}

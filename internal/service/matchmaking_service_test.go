package service

import (
	"context"
	"errors"
	"fmt"
	"skillswap_backend/internal/model"
	"skillswap_backend/internal/util"
	"strings"
	"testing"
)

func TestMatchmakeFiltersToCandidates(t *testing.T) {
	f := newFixture(t)
	alice, bob, carol := f.user(t, "alice"), f.user(t, "bob"), f.user(t, "carol")
	f.offer(t, alice.ID, "Python")
	f.offer(t, bob.ID, "Guitar")
	ctx := context.Background()

	f.gen.set(fmt.Sprintf(`[
		{"user_id": %d, "match_type": "Direct Swap", "justification": "Bob teaches guitar."},
		{"user_id": 4242, "match_type": "Direct Swap", "justification": "Made up."},
		{"user_id": %d, "match_type": "Potential Interest", "justification": "Duplicate."},
		{"user_id": %d}
	]`, bob.ID, bob.ID, carol.ID), nil)

	matches, err := f.match.Matchmake(ctx, alice.ID)
	if err != nil {
		t.Fatalf("matchmake: %v", err)
	}
	if len(matches) != 2 {
		t.Fatalf("got %d matches: %+v", len(matches), matches)
	}
	if matches[0].User.ID != bob.ID || matches[0].MatchType != model.MatchDirectSwap {
		t.Fatalf("first match = %+v", matches[0])
	}
	if matches[1].User.Username != "carol" || matches[1].MatchType != "N/A" || matches[1].Justification != "No justification provided." {
		t.Fatalf("defaults not applied: %+v", matches[1])
	}

	prompt := f.gen.lastPrompt()
	if !strings.Contains(prompt, "alice") || !strings.Contains(prompt, "Guitar") {
		t.Fatalf("prompt missing profile data: %s", prompt)
	}
	if strings.Contains(prompt, `"username": "alice"`) {
		t.Fatalf("the user is listed among their own candidates")
	}
}

func TestMatchmakeFailuresReturnEmptyList(t *testing.T) {
	f := newFixture(t)
	alice := f.user(t, "alice")
	f.user(t, "bob")
	ctx := context.Background()

	f.gen.set("", errors.New("boom"))
	matches, err := f.match.Matchmake(ctx, alice.ID)
	if !errors.Is(err, util.ErrExternalService) || matches == nil || len(matches) != 0 {
		t.Fatalf("generator failure: %#v %v", matches, err)
	}

	f.gen.set("I think Bob is great", nil)
	matches, err = f.match.Matchmake(ctx, alice.ID)
	if !errors.Is(err, util.ErrMalformedAIResponse) || matches == nil || len(matches) != 0 {
		t.Fatalf("malformed output: %#v %v", matches, err)
	}
}

func TestMatchmakeWithoutCandidatesSkipsGenerator(t *testing.T) {
	f := newFixture(t)
	alice := f.user(t, "alice")

	matches, err := f.match.Matchmake(context.Background(), alice.ID)
	if err != nil || len(matches) != 0 {
		t.Fatalf("%v %v", matches, err)
	}
	if f.gen.calls() != 0 {
		t.Fatalf("generator called with no candidates")
	}
}

func TestAssistantChat(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	reply, err := f.assistant.Chat(ctx, "alice", "   ")
	if err != nil || reply != emptyQuestionReply {
		t.Fatalf("empty question: %q %v", reply, err)
	}

	f.gen.set("  Try the browse page.  ", nil)
	reply, err = f.assistant.Chat(ctx, "alice", "How do I find a tutor?")
	if err != nil || reply != "Try the browse page." {
		t.Fatalf("reply = %q %v", reply, err)
	}
	if !strings.Contains(f.gen.lastPrompt(), "'alice'") {
		t.Fatalf("prompt missing username")
	}

	f.gen.set("", errors.New("offline"))
	reply, err = f.assistant.Chat(ctx, "alice", "hello")
	if reply != chatFailureReply || !errors.Is(err, util.ErrExternalService) {
		t.Fatalf("failure: %q %v", reply, err)
	}
}

func TestDashboardSurvivesMatchmakerFailure(t *testing.T) {
	f := newFixture(t)
	alice, bob, carol := f.user(t, "alice"), f.user(t, "bob"), f.user(t, "carol")
	ctx := context.Background()

	f.swap.Create(ctx, bob.ID, alice.ID)
	f.swap.Create(ctx, alice.ID, carol.ID)
	f.acceptedSwap(t, carol.ID, alice.ID)

	f.gen.set("", errors.New("rate limited"))
	d, err := f.dashboard.Get(ctx, alice.ID)
	if err != nil {
		t.Fatalf("dashboard: %v", err)
	}
	if len(d.Incoming) != 1 || len(d.Sent) != 1 || len(d.Active) != 1 || len(d.Completed) != 0 {
		t.Fatalf("lists = %d/%d/%d/%d", len(d.Incoming), len(d.Sent), len(d.Active), len(d.Completed))
	}
	if d.APIError == "" || d.AISuggestions == nil || len(d.AISuggestions) != 0 {
		t.Fatalf("suggestions = %#v, apiError %q", d.AISuggestions, d.APIError)
	}
}

func TestDashboardKeepsTopThreeSuggestions(t *testing.T) {
	f := newFixture(t)
	alice := f.user(t, "alice")
	var parts []string
	for _, name := range []string{"b", "c", "d", "e"} {
		u := f.user(t, name)
		parts = append(parts, fmt.Sprintf(`{"user_id": %d, "match_type": "Direct Swap", "justification": "x"}`, u.ID))
	}
	f.gen.set("["+strings.Join(parts, ",")+"]", nil)

	d, err := f.dashboard.Get(context.Background(), alice.ID)
	if err != nil {
		t.Fatalf("dashboard: %v", err)
	}
	if len(d.AISuggestions) != 3 || d.APIError != "" {
		t.Fatalf("suggestions = %d, apiError %q", len(d.AISuggestions), d.APIError)
	}
}

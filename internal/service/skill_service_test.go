package service

import (
	"context"
	"errors"
	"reflect"
	"skillswap_backend/internal/util"
	"strings"
	"testing"
)

func TestNormalizeSkillName(t *testing.T) {
	if got, err := NormalizeSkillName("  Go  "); err != nil || got != "Go" {
		t.Fatalf("trim: %q %v", got, err)
	}
	if _, err := NormalizeSkillName("   "); !errors.Is(err, util.ErrSkillNameEmpty) {
		t.Fatalf("blank err = %v", err)
	}
	if _, err := NormalizeSkillName(strings.Repeat("ü", 101)); !errors.Is(err, util.ErrSkillNameLength) {
		t.Fatalf("long err = %v", err)
	}
	if _, err := NormalizeSkillName(strings.Repeat("ü", 100)); err != nil {
		t.Fatalf("100 runes should fit: %v", err)
	}
}

func TestParseSuggestions(t *testing.T) {
	cases := []struct {
		raw  string
		want []string
	}{
		{"Data Analysis,Spreadsheet Management, Financial Modeling", []string{"Data Analysis", "Spreadsheet Management", "Financial Modeling"}},
		{"'Go, Rust, go, , Zig.'", []string{"Go", "Rust", "Zig"}},
		{"a,b,c,d,e,f,g", []string{"a", "b", "c", "d", "e"}},
		{"", []string{}},
	}
	for _, tc := range cases {
		if got := parseSuggestions(tc.raw); !reflect.DeepEqual(got, tc.want) {
			t.Errorf("parseSuggestions(%q) = %q, want %q", tc.raw, got, tc.want)
		}
	}
}

func TestSuggestSkills(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	got, err := f.skill.SuggestSkills(ctx, "  ")
	if err != nil || len(got) != 0 || f.gen.calls() != 0 {
		t.Fatalf("blank query should not reach the generator: %v %v", got, err)
	}

	f.gen.set("Pandas, NumPy", nil)
	got, err = f.skill.SuggestSkills(ctx, "Python")
	if err != nil || !reflect.DeepEqual(got, []string{"Pandas", "NumPy"}) {
		t.Fatalf("suggestions = %v, %v", got, err)
	}
	if !strings.Contains(f.gen.lastPrompt(), "'Python'") {
		t.Fatalf("prompt missing query: %s", f.gen.lastPrompt())
	}

	f.gen.set("", errors.New("down"))
	got, err = f.skill.SuggestSkills(ctx, "Python")
	if !errors.Is(err, util.ErrExternalService) {
		t.Fatalf("err = %v", err)
	}
	if got == nil || len(got) != 0 {
		t.Fatalf("failure must yield an empty list, got %#v", got)
	}
}

func TestSkillCatalog(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	skill, created, err := f.skill.GetOrCreate(ctx, "  Woodworking ")
	if err != nil || !created || skill.Name != "Woodworking" {
		t.Fatalf("create: %v %v %v", skill, created, err)
	}
	if _, created, _ = f.skill.GetOrCreate(ctx, "Woodworking"); created {
		t.Fatalf("existing skill recreated")
	}
	if _, _, err := f.skill.GetOrCreate(ctx, ""); !errors.Is(err, util.ErrValidation) {
		t.Fatalf("empty name err = %v", err)
	}

	list, err := f.skill.List(ctx, "wood", 0)
	if err != nil || len(list) != 1 {
		t.Fatalf("list = %v, %v", list, err)
	}
}

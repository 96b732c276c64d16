package model

// Match types the matchmaker is asked to use.
const (
	MatchDirectSwap        = "Direct Swap"
	MatchPotentialInterest = "Potential Interest"
)

// MatchSuggestion is a candidate swap partner proposed by the matchmaker.
type MatchSuggestion struct {
	User          UserBrief `json:"user"`
	MatchType     string    `json:"matchType"`
	Justification string    `json:"justification"`
}

// Badge is an achievement shown on the owner's profile page.
type Badge struct {
	Name        string `json:"name"`
	Icon        string `json:"icon"`
	Description string `json:"description"`
}

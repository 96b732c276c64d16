package model

import "time"

// QuizQuestion is one multiple-choice question of a verification quiz.
type QuizQuestion struct {
	Question      string   `json:"question"`
	Options       []string `json:"options"`
	CorrectAnswer string   `json:"correct_answer"`
}

// QuizSession holds the quiz a user is currently taking. It lives only in the
// session store and is consumed by the first submission.
type QuizSession struct {
	UserID    uint           `json:"userId"`
	SkillID   uint           `json:"skillId"`
	Questions []QuizQuestion `json:"questions"`
	CreatedAt time.Time      `json:"createdAt"`
}

// PublicQuestion is what the quiz taker sees: no correct answer.
type PublicQuestion struct {
	Index    int      `json:"index"`
	Question string   `json:"question"`
	Options  []string `json:"options"`
}

func (s *QuizSession) PublicQuestions() []PublicQuestion {
	out := make([]PublicQuestion, 0, len(s.Questions))
	for i, q := range s.Questions {
		out = append(out, PublicQuestion{Index: i, Question: q.Question, Options: q.Options})
	}
	return out
}

// QuizResult reports how a submission was scored.
type QuizResult struct {
	SkillID   uint   `json:"skillId"`
	SkillName string `json:"skillName"`
	Correct   int    `json:"correct"`
	Total     int    `json:"total"`
	Required  int    `json:"required"`
	Passed    bool   `json:"passed"`
}

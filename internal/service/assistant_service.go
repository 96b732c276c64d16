package service

import (
	"context"
	"strings"
)

const (
	emptyQuestionReply = "Please ask a question."
	chatFailureReply   = "Sorry, I encountered an error. Please try again later."
)

type AssistantService struct {
	AI *AIService
}

func NewAssistantService(ai *AIService) *AssistantService {
	return &AssistantService{AI: ai}
}

// Chat answers a user's question about the platform. It always produces a
// reply; a generator failure becomes an apology and is returned alongside.
func (s *AssistantService) Chat(ctx context.Context, username, message string) (string, error) {
	message = strings.TrimSpace(message)
	if message == "" {
		return emptyQuestionReply, nil
	}

	prompt, err := renderPrompt(promptChat, struct {
		Username string
		Message  string
	}{username, message})
	if err != nil {
		return chatFailureReply, err
	}

	reply, err := s.AI.Complete(ctx, FeatureChat, prompt)
	if err != nil {
		return chatFailureReply, err
	}
	return strings.TrimSpace(reply), nil
}

package service

import (
	_ "embed"
	"fmt"
	"strings"
	"text/template"

	"gopkg.in/yaml.v3"
)

//go:embed prompts.yaml
var promptsYAML []byte

const (
	promptSuggestSkills = "suggest_skills"
	promptMatchmaking   = "matchmaking"
	promptQuiz          = "quiz"
	promptChat          = "chat"
)

var prompts = mustLoadPrompts(promptsYAML)

func mustLoadPrompts(data []byte) map[string]*template.Template {
	var raw map[string]string
	if err := yaml.Unmarshal(data, &raw); err != nil {
		panic(fmt.Sprintf("parse prompts: %v", err))
	}
	out := make(map[string]*template.Template, len(raw))
	for name, text := range raw {
		out[name] = template.Must(template.New(name).Option("missingkey=error").Parse(text))
	}
	return out
}

func renderPrompt(name string, data interface{}) (string, error) {
	tmpl, ok := prompts[name]
	if !ok {
		return "", fmt.Errorf("unknown prompt %q", name)
	}
	var sb strings.Builder
	if err := tmpl.Execute(&sb, data); err != nil {
		return "", fmt.Errorf("render prompt %s: %w", name, err)
	}
	return sb.String(), nil
}

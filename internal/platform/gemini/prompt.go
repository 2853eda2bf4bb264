package gemini

import (
	"bytes"
	"fmt"
	"text/template"
)

const promptText = `Write a short, practical description for a personal to-do item.
The description should explain what completing the task involves and give one
or two concrete tips. Answer with plain text only, at most three sentences,
without a heading and without repeating the word "Task".

Task title: {{.Title}}`

var promptTemplate = template.Must(template.New("description").Parse(promptText))

type promptData struct {
	Title string
}

func buildPrompt(title string) (string, error) {
	var buf bytes.Buffer
	if err := promptTemplate.Execute(&buf, promptData{Title: title}); err != nil {
		return "", fmt.Errorf("failed to execute prompt template: %w", err)
	}
	return buf.String(), nil
}

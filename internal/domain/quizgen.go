package domain

import "context"

// TextGenerator is a language-model backend: a prompt goes in, the model's
// text comes out. model selects which model of the backend answers.
type TextGenerator interface {
	GenerateText(ctx context.Context, model string, prompt string) (string, error)
}

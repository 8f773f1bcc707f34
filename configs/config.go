package configs

import (
	_ "embed"
)

//go:embed config.yaml
var defaultConfig []byte

//go:embed quiz_prompt.md
var defaultPrompt string

// Default returns the config.yaml compiled into the binary. It is read
// before any config file on disk so every key has a value.
func Default() []byte {
	return defaultConfig
}

// QuizPrompt returns the built-in instructions sent ahead of the article
// text when llm.prompt_file is not set.
func QuizPrompt() string {
	return defaultPrompt
}

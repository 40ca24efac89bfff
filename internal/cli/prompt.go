package cli

import (
	"github.com/chzyer/readline"
)

// A Prompt reads user inputs.
type Prompt interface {
	Line(prompt string) (string, error)
	Password(prompt string) ([]byte, error)
}

// Terminal is a Prompt reading the standard input.
var Terminal Prompt = terminal{}

type terminal struct{}

func (terminal) Line(prompt string) (string, error) {
	return readline.Line(prompt)
}

func (terminal) Password(prompt string) ([]byte, error) {
	return readline.Password(prompt)
}

package prompt

import (
	"fmt"
	"strings"

	"github.com/pterm/pterm"

	"github.com/gorewood/hatch/internal/output"
)

// Question texts.
const (
	TemplateQuestion = "What project template would you like to generate?"
	NameQuestion     = "Project name:"
)

// Prompter asks a single question.
type Prompter interface {
	// Select offers options and returns the chosen one.
	Select(message string, options []string) (string, error)
	// Text reads one free-form answer.
	Text(message string) (string, error)
	// Reject tells the user why the last answer was refused.
	Reject(message string)
}

// Terminal asks questions with pterm's interactive widgets.
type Terminal struct{}

// Select implements Prompter.
func (Terminal) Select(message string, options []string) (string, error) {
	choice, err := pterm.DefaultInteractiveSelect.
		WithOptions(options).
		WithDefaultText(message).
		Show()
	if err != nil {
		return "", fmt.Errorf("reading selection: %w", err)
	}
	return choice, nil
}

// Text implements Prompter.
func (Terminal) Text(message string) (string, error) {
	answer, err := pterm.DefaultInteractiveTextInput.
		WithDefaultText(message).
		Show()
	if err != nil {
		return "", fmt.Errorf("reading input: %w", err)
	}
	return answer, nil
}

// Reject implements Prompter.
func (Terminal) Reject(message string) {
	pterm.Error.Println(message)
}

// Input asks message until validate accepts the trimmed answer.
func Input(p Prompter, message string, validate func(string) error) (string, error) {
	for {
		answer, err := p.Text(message)
		if err != nil {
			return "", err
		}
		answer = strings.TrimSpace(answer)
		if validate == nil {
			return answer, nil
		}
		if verr := validate(answer); verr != nil {
			p.Reject(verr.Error())
			continue
		}
		return answer, nil
	}
}

// Questions describes what the create flow needs. Template and Name hold
// values supplied by flags; empty means ask.
type Questions struct {
	Templates    []string
	Template     string
	Name         string
	ValidateName func(string) error
	Interactive  bool
}

// Answers holds the merged flag and prompt values.
type Answers struct {
	Template string
	Name     string
}

// Ask fills in whatever the flags left empty. Flag values win over
// prompts and are returned unchanged.
func Ask(p Prompter, q Questions) (Answers, error) {
	answers := Answers{Template: q.Template, Name: q.Name}

	if answers.Template == "" {
		if !q.Interactive || p == nil {
			return answers, missing("--template")
		}
		if len(q.Templates) == 0 {
			return answers, output.NewUserError("no templates available")
		}
		choice, err := p.Select(TemplateQuestion, q.Templates)
		if err != nil {
			return answers, output.NewSystemErrorWithCause("failed to read template choice", err)
		}
		answers.Template = choice
	}

	if answers.Name == "" {
		if !q.Interactive || p == nil {
			return answers, missing("--name")
		}
		name, err := Input(p, NameQuestion, q.ValidateName)
		if err != nil {
			return answers, output.NewSystemErrorWithCause("failed to read project name", err)
		}
		answers.Name = name
	}

	return answers, nil
}

func missing(flag string) error {
	return output.NewUserError(fmt.Sprintf("%s is required when stdin is not a terminal", flag))
}

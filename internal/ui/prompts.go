package ui

import (
	"fmt"
	"regexp"

	"github.com/AlecAivazis/survey/v2"
)

// Field identifies a value asked for while adding a profile
type Field int

const (
	FieldUsername Field = iota
	FieldEmail
	FieldSSHKey
)

// Prompter asks the user for profile values
type Prompter interface {
	Ask(field Field) (string, error)
	Confirm(message string) (bool, error)
}

// SurveyPrompter prompts on the terminal
type SurveyPrompter struct{}

var _ Prompter = SurveyPrompter{}

var emailPattern = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

// Ask prompts for one profile field
func (SurveyPrompter) Ask(field Field) (string, error) {
	var answer string
	opts := []survey.AskOpt{survey.WithValidator(survey.Required)}

	var prompt *survey.Input
	switch field {
	case FieldUsername:
		prompt = &survey.Input{
			Message: "Git username:",
			Help:    "Used for git user.name and as the SSH User for github.com",
		}
	case FieldEmail:
		prompt = &survey.Input{
			Message: "Git email:",
			Help:    "Your email for Git commits (e.g., john@example.com)",
		}
		opts = append(opts, survey.WithValidator(emailValidator))
	case FieldSSHKey:
		prompt = &survey.Input{
			Message: "Path to SSH key:",
			Help:    "Full path to your private key file (e.g., ~/.ssh/id_ed25519)",
		}
	default:
		return "", fmt.Errorf("unknown field %d", field)
	}

	if err := survey.AskOne(prompt, &answer, opts...); err != nil {
		return "", err
	}
	return answer, nil
}

// Confirm prompts for yes/no confirmation
func (SurveyPrompter) Confirm(message string) (bool, error) {
	var confirmed bool
	prompt := &survey.Confirm{
		Message: message,
		Default: false,
	}
	if err := survey.AskOne(prompt, &confirmed); err != nil {
		return false, err
	}
	return confirmed, nil
}

func emailValidator(val interface{}) error {
	if str, ok := val.(string); ok && !IsValidEmail(str) {
		return fmt.Errorf("invalid email format")
	}
	return nil
}

// IsValidEmail checks if email format is valid
func IsValidEmail(email string) bool {
	return emailPattern.MatchString(email)
}

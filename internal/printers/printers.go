package printers

import (
	"fmt"
	"strings"

	"github.com/manifoldco/promptui"
)

var defaultPrinters = Printers{}

type IPrinters interface {
	Confirm(message string) bool
	SelectPlatform(platforms []string) (int, string, error)
	PromptString(label string) (string, error)
}

type Printers struct{}

// NewPrinters returns new printers struct
func NewPrinters() *Printers {
	return &Printers{}
}

func (p Printers) Confirm(message string) bool {
	validate := func(input string) error {
		input = strings.ToLower(strings.TrimSpace(input))
		if input != "y" && input != "n" {
			return fmt.Errorf("wrong input %s, was expecting `y` or `n`", input)
		}

		return nil
	}

	msg := message + " Press (y/n)"
	prompt := promptui.Prompt{
		Label:    msg,
		Validate: validate,
	}

	result, err := prompt.Run()
	if err != nil {
		return false
	}
	input := strings.ToLower(strings.TrimSpace(result))

	return input == "y"
}

// Confirm prompt a confirmation message
//
// Return true if the user entered Y/y and false if entered n/N
func Confirm(message string) bool {
	return defaultPrinters.Confirm(message)
}

// SelectPlatform prompts a choice among the registered platform tags and
// returns the selected index and tag.
func (p Printers) SelectPlatform(platforms []string) (int, string, error) {
	prompt := promptui.Select{
		Label: "Select a platform",
		Items: platforms,
		Size:  len(platforms),
	}
	idx, value, err := prompt.Run()
	if err != nil {
		return -1, "", err
	}
	return idx, value, nil
}

// SelectPlatform prompts through the default printers.
func SelectPlatform(platforms []string) (int, string, error) {
	return defaultPrinters.SelectPlatform(platforms)
}

// PromptString asks for one free-form value.
func (p Printers) PromptString(label string) (string, error) {
	prompt := promptui.Prompt{Label: label}
	result, err := prompt.Run()
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(result), nil
}

// PromptString prompts through the default printers.
func PromptString(label string) (string, error) {
	return defaultPrinters.PromptString(label)
}

package main

import (
	"errors"

	"github.com/charmbracelet/huh"
)

// confirmFunc asks the user to approve a destructive command.
type confirmFunc func(title, description string) (bool, error)

// huhConfirm shows a yes/no prompt on the terminal. Aborting counts as "no".
func huhConfirm(title, description string) (bool, error) {
	var ok bool
	err := huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(title).
				Description(description).
				Affirmative("Yes").
				Negative("Cancel").
				Value(&ok),
		),
	).Run()
	if errors.Is(err, huh.ErrUserAborted) {
		return false, nil
	}
	return ok, err
}

func alwaysConfirm(string, string) (bool, error) { return true, nil }

package cli

import (
	"fmt"
	"os"
	"strings"

	"golang.org/x/term"
)

// readPasswordFn is a test seam for hidden password input.
var readPasswordFn = func() (string, error) {
	b, err := term.ReadPassword(int(os.Stdin.Fd()))
	fmt.Println()
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func (a *App) promptLine(prompt string) (string, error) {
	a.rl.SetPrompt(prompt)
	line, err := a.rl.Readline()
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

func (a *App) promptPassword(prompt string) (string, error) {
	fmt.Print(prompt)
	return readPasswordFn()
}

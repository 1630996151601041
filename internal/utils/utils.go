// Package utils hosts small helper routines shared across commands.
package utils

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
)

// maxConfirmAttempts is the maximum number of confirmation prompt retries.
const maxConfirmAttempts = 3

// AskConfirm prompts the user with the provided message and returns true if the user confirms.
// It allows up to maxConfirmAttempts tries before returning false.
func AskConfirm(prompt string) (bool, error) {
	return askConfirm(os.Stdin, prompt)
}

func askConfirm(in io.Reader, prompt string) (bool, error) {
	reader := bufio.NewReader(in)

	message := strings.TrimSpace(prompt)
	if message == "" {
		message = "Proceed?"
	}

	fmt.Println()
	for i := 0; i < maxConfirmAttempts; i++ {
		fmt.Printf("%s [y/N]: ", message)
		response, err := reader.ReadString('\n')
		if err != nil {
			return false, fmt.Errorf("error reading user input: %w", err)
		}

		response = strings.ToLower(strings.TrimSpace(response))
		switch response {
		case "yes", "y":
			return true, nil
		case "no", "n", "":
			return false, nil
		default:
			if i < maxConfirmAttempts-1 {
				fmt.Println("Please answer with 'yes'/'no' or 'y'/'n'.")
			}
		}
	}

	return false, nil
}

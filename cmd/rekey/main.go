// rekey rotates the password of an .spk key file in place: decrypt with
// the old password, re-encrypt with the new one under a fresh salt and
// nonce.
// Usage: rekey <path-to-.spk>
package main

import (
	"errors"
	"fmt"
	"os"

	"solpocket/internal/keystore"

	"golang.org/x/term"
)

func main() {
	if len(os.Args) != 2 {
		fmt.Fprintln(os.Stderr, "usage: rekey <path-to-.spk>")
		os.Exit(2)
	}
	filePath := os.Args[1]

	if err := run(filePath); err != nil {
		fmt.Fprintln(os.Stderr, "rekey failed:", err)
		os.Exit(1)
	}
	fmt.Println("key file re-encrypted")
}

func run(filePath string) error {
	oldPassword, err := readPassword("Current password: ")
	if err != nil {
		return err
	}
	defer clear(oldPassword)

	newPassword, err := readPassword("New password: ")
	if err != nil {
		return err
	}
	defer clear(newPassword)

	confirmPassword, err := readPassword("Repeat new password: ")
	if err != nil {
		return err
	}
	defer clear(confirmPassword)

	if string(newPassword) != string(confirmPassword) {
		return errors.New("passwords do not match")
	}

	return keystore.RotateKeyFile(filePath, oldPassword, newPassword)
}

func readPassword(prompt string) ([]byte, error) {
	if !term.IsTerminal(int(os.Stdin.Fd())) {
		return nil, errors.New("stdin is not a terminal")
	}
	fmt.Fprint(os.Stderr, prompt)
	defer fmt.Fprintln(os.Stderr)

	raw, err := term.ReadPassword(int(os.Stdin.Fd()))
	if err != nil {
		return nil, fmt.Errorf("failed to read password: %w", err)
	}
	if len(raw) == 0 {
		return nil, errors.New("password cannot be empty")
	}
	return raw, nil
}

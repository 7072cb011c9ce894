package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

// Terminal access, replaced in tests.
var (
	readPassword = term.ReadPassword
	stdinFd      = func() int { return int(os.Stdin.Fd()) }
)

// GetSimpleText writes "prompt: " to w and returns the next line from reader
// with surrounding whitespace removed. A final line without a newline is
// accepted; EOF with nothing read is an error.
func GetSimpleText(reader *bufio.Reader, prompt string, w io.Writer) (string, error) {
	if _, err := fmt.Fprintf(w, "%s: ", prompt); err != nil {
		return "", err
	}
	line, err := reader.ReadString('\n')
	switch {
	case err == nil:
	case errors.Is(err, io.EOF) && line != "":
	default:
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// GetPassword reads a password from the terminal with echo disabled. The
// caller owns the returned buffer and should wipe it after use.
func GetPassword(w io.Writer) ([]byte, error) {
	fmt.Fprint(w, "Password: ")
	defer fmt.Fprintln(w)
	return readPassword(stdinFd())
}

// getTextOr is GetSimpleText that falls back to def on an empty answer.
func getTextOr(reader *bufio.Reader, prompt, def string, w io.Writer) (string, error) {
	if def != "" {
		prompt += " [" + def + "]"
	}
	s, err := getSimpleText(reader, prompt, w)
	if err != nil || s != "" {
		return s, err
	}
	return def, nil
}

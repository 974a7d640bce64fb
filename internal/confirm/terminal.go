package confirm

import (
	"bufio"
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"os"
	"strings"
	"sync"

	"golang.org/x/term"
)

// Terminal prompts for a y/N decision on the controlling terminal.
// The serialized payload is shown base64-encoded so what gets signed
// can be inspected before approval.
type Terminal struct{}

// One reader goroutine owns stdin for the process lifetime. A prompt
// abandoned on ctx cancellation leaves its line in the channel, where
// drainStale discards it before the next prompt; spawning a reader per
// prompt would instead leave a stale goroutine racing the next one for
// the user's answer.
var (
	stdinOnce  sync.Once
	stdinLines chan string
)

func startStdinReader() {
	stdinLines = make(chan string)
	go func() {
		r := bufio.NewReader(os.Stdin)
		for {
			line, err := r.ReadString('\n')
			if err != nil {
				close(stdinLines)
				return
			}
			stdinLines <- line
		}
	}()
}

// Confirm implements Confirmer
func (Terminal) Confirm(ctx context.Context, req Request) (bool, error) {
	if !term.IsTerminal(int(os.Stdin.Fd())) {
		return false, errors.New("stdin is not a terminal: set CONFIRM_MODE=approve or deny for headless runs")
	}

	stdinOnce.Do(startStdinReader)
	drainStale(stdinLines)

	fmt.Fprintf(os.Stderr, "\n--- confirmation required: %s ---\n", req.Kind)
	if req.Message != "" {
		fmt.Fprintln(os.Stderr, req.Message)
	}
	if req.Warning != "" {
		fmt.Fprintf(os.Stderr, "WARNING: %s\n", req.Warning)
	}
	fmt.Fprintf(os.Stderr, "payload: %s\n", base64.StdEncoding.EncodeToString(req.Payload))
	fmt.Fprint(os.Stderr, "approve? [y/N]: ")

	return awaitAnswer(ctx, stdinLines)
}

// drainStale discards input typed against an earlier, abandoned prompt
func drainStale(lines <-chan string) {
	for {
		select {
		case <-lines:
		default:
			return
		}
	}
}

func awaitAnswer(ctx context.Context, lines <-chan string) (bool, error) {
	select {
	case <-ctx.Done():
		return false, ctx.Err()
	case line, ok := <-lines:
		if !ok {
			return false, errors.New("stdin closed before an answer was read")
		}
		line = strings.ToLower(strings.TrimSpace(line))
		return line == "y" || line == "yes", nil
	}
}

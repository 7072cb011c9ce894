package cli

import (
	"bufio"
	"context"
	"fmt"
)

func (a *App) getStatus() string {
	s := a.provider.Session()
	switch {
	case s.Loading:
		return "(checking)"
	case s.IsAuthenticated && s.Username != nil:
		return fmt.Sprintf("(%s)", *s.Username)
	default:
		return ""
	}
}

// Root prints the greeting and runs the REPL on the App's input.
func (a *App) Root(ctx context.Context) {
	fmt.Fprintln(a.out, "Welcome to somapoll CLI (type 'help' for commands)")
	if s := a.provider.Session(); s.IsAuthenticated && s.Username != nil {
		fmt.Fprintf(a.out, "Signed in as %s\n", *s.Username)
	}

	runREPL(ctx, a, a.getStatus, bufio.NewScanner(a.reader))
}

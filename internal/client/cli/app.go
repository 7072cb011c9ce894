package cli

import (
	"bufio"
	"context"
	"io"
	"os"

	"github.com/dmitrijs2005/somapoll/internal/client/provider"
	"github.com/dmitrijs2005/somapoll/internal/logging"
)

type App struct {
	provider *provider.Provider
	logger   logging.Logger
	reader   *bufio.Reader
	out      io.Writer

	// pendingEmail remembers the address of the last one-time code challenge
	// so verify-otp and resend-otp can offer it as the default.
	pendingEmail string
}

// NewApp builds an App reading from stdin and writing to stdout.
func NewApp(p *provider.Provider, l logging.Logger) *App {
	return newApp(p, l, os.Stdin, os.Stdout)
}

func newApp(p *provider.Provider, l logging.Logger, in io.Reader, out io.Writer) *App {
	if l == nil {
		l = logging.Nop()
	}
	return &App{
		provider: p,
		logger:   l.With("module", "cli"),
		reader:   bufio.NewReader(in),
		out:      out,
	}
}

// Run checks the stored session, runs the REPL until exit and releases the
// provider.
func (a *App) Run(ctx context.Context) {
	defer func() {
		if err := a.provider.Close(); err != nil {
			a.logger.Warn(ctx, "close provider", "error", err)
		}
	}()

	ctx = provider.WithProvider(ctx, a.provider)
	a.provider.Start(ctx)
	a.Root(ctx)
}

func (a *App) isAuthenticated() bool {
	return a.provider.Session().IsAuthenticated
}

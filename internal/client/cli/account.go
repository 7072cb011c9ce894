package cli

import (
	"context"
	"fmt"
	"text/tabwriter"

	"github.com/dmitrijs2005/somapoll/internal/client/models"
)

// WhoAmI prints the stored profile of the signed-in user.
func (a *App) WhoAmI(ctx context.Context) error {
	p, err := a.provider.Profile(ctx)
	if err != nil {
		return err
	}
	if p == nil {
		fmt.Fprintln(a.out, "No profile stored. Try 'refresh'.")
		return nil
	}

	tw := tabwriter.NewWriter(a.out, 0, 0, 2, ' ', 0)
	row := func(k, v string) {
		if v != "" {
			fmt.Fprintf(tw, "%s:\t%s\n", k, v)
		}
	}
	row("Username", p.Username)
	row("Email", p.Email)
	row("Full name", models.Deref(p.FullName))
	row("Structure", models.Deref(p.Structure))
	row("Bio", models.Deref(p.Bio))
	row("Facebook", models.Deref(p.Facebook))
	row("Instagram", models.Deref(p.Instagram))
	row("X", models.Deref(p.XTwitter))
	row("Threads", models.Deref(p.Threads))
	row("YouTube", models.Deref(p.YouTube))
	row("LinkedIn", models.Deref(p.LinkedIn))
	row("TikTok", models.Deref(p.TikTok))
	row("Member since", models.Deref(p.CreatedAt))
	if !a.provider.Session().EmailVerified {
		row("Email verified", "no")
	}
	return tw.Flush()
}

// Refresh re-reads the session from the backend.
func (a *App) Refresh(ctx context.Context) error {
	a.provider.Auth().RefreshUserData(ctx)

	s := a.provider.Session()
	switch {
	case s.IsAuthenticated && s.Username != nil:
		fmt.Fprintf(a.out, "Signed in as %s\n", *s.Username)
	default:
		fmt.Fprintln(a.out, "Not signed in")
	}
	return nil
}

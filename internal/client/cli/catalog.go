package cli

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"text/tabwriter"

	"github.com/dmitrijs2005/somapoll/internal/client/models"
	"github.com/dmitrijs2005/somapoll/internal/common"
)

// parseID reads the optional id argument of a listing command.
func parseID(args []string) (int64, bool, error) {
	if len(args) == 0 {
		return 0, false, nil
	}
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil || id <= 0 {
		return 0, false, fmt.Errorf("invalid id %q", args[0])
	}
	return id, true, nil
}

// Candidates lists all candidates, or shows one when an id is given.
func (a *App) Candidates(ctx context.Context, args []string) error {
	id, one, err := parseID(args)
	if err != nil {
		return err
	}
	cat := a.provider.Catalog()

	if one {
		c, err := cat.CandidateByID(ctx, id)
		if errors.Is(err, common.ErrorNotFound) {
			fmt.Fprintf(a.out, "No candidate with id %d\n", id)
			return nil
		}
		if err != nil {
			return err
		}
		a.printCandidateDetail(c)
		return nil
	}

	list, err := cat.ListCandidates(ctx)
	if err != nil {
		return err
	}
	if len(list) == 0 {
		fmt.Fprintln(a.out, "No candidates yet")
		return nil
	}
	tw := tabwriter.NewWriter(a.out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tDEPARTMENT\tVOTES\tSUPPORTERS")
	for _, c := range list {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%d\t%d\n", c.ID, c.Name, c.Department, c.Votes, c.SupportersCount)
	}
	return tw.Flush()
}

// Parties lists all parties, or shows one when an id is given.
func (a *App) Parties(ctx context.Context, args []string) error {
	id, one, err := parseID(args)
	if err != nil {
		return err
	}
	cat := a.provider.Catalog()

	if one {
		p, err := cat.PartyByID(ctx, id)
		if errors.Is(err, common.ErrorNotFound) {
			fmt.Fprintf(a.out, "No party with id %d\n", id)
			return nil
		}
		if err != nil {
			return err
		}
		a.printPartyDetail(p)
		return nil
	}

	list, err := cat.ListParties(ctx)
	if err != nil {
		return err
	}
	if len(list) == 0 {
		fmt.Fprintln(a.out, "No parties yet")
		return nil
	}
	tw := tabwriter.NewWriter(a.out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tLEADER\tVOTES\tSUPPORTERS")
	for _, p := range list {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%d\t%d\n", p.ID, p.Name, p.Leader, p.Votes, p.SupportersCount)
	}
	return tw.Flush()
}

func (a *App) printCandidateDetail(c *models.Candidate) {
	fmt.Fprintf(a.out, "%s (#%d)\n", c.Name, c.ID)
	if c.Department != "" {
		fmt.Fprintf(a.out, "Department: %s\n", c.Department)
	}
	if c.Structure != "" {
		fmt.Fprintf(a.out, "Structure:  %s\n", c.Structure)
	}
	if c.Manifesto != "" {
		fmt.Fprintf(a.out, "Manifesto:  %s\n", c.Manifesto)
	}
	fmt.Fprintf(a.out, "Votes: %d, supporters: %d\n", c.Votes, c.SupportersCount)
}

func (a *App) printPartyDetail(p *models.Party) {
	fmt.Fprintf(a.out, "%s (#%d)\n", p.Name, p.ID)
	if p.Leader != "" {
		fmt.Fprintf(a.out, "Leader:    %s\n", p.Leader)
	}
	if p.Manifesto != "" {
		fmt.Fprintf(a.out, "Manifesto: %s\n", p.Manifesto)
	}
	fmt.Fprintf(a.out, "Votes: %d, supporters: %d\n", p.Votes, p.SupportersCount)
}

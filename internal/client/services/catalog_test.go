package services

import (
	"context"
	"testing"

	"github.com/dmitrijs2005/somapoll/internal/client/client"
	"github.com/dmitrijs2005/somapoll/internal/client/models"
	"github.com/dmitrijs2005/somapoll/internal/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCatalog_Lookups(t *testing.T) {
	fc := &fakeClient{
		Candidates: []models.Candidate{{ID: 1, Name: "Ada"}, {ID: 2, Name: "Grace"}},
		Parties:    []models.Party{{ID: 5, Name: "Blue"}},
	}
	svc := NewCatalogService(fc)
	ctx := context.Background()

	cands, err := svc.ListCandidates(ctx)
	require.NoError(t, err)
	assert.Len(t, cands, 2)

	c, err := svc.CandidateByID(ctx, 2)
	require.NoError(t, err)
	assert.Equal(t, "Grace", c.Name)

	p, err := svc.PartyByID(ctx, 5)
	require.NoError(t, err)
	assert.Equal(t, "Blue", p.Name)

	_, err = svc.CandidateByID(ctx, 99)
	require.ErrorIs(t, err, common.ErrorNotFound)
	_, err = svc.PartyByID(ctx, 99)
	require.ErrorIs(t, err, common.ErrorNotFound)
}

func TestCatalog_ErrorsPropagate(t *testing.T) {
	svc := NewCatalogService(&fakeClient{CatalogErr: transportErr()})
	ctx := context.Background()

	_, err := svc.ListParties(ctx)
	require.ErrorIs(t, err, client.ErrUnavailable)

	_, err = svc.CandidateByID(ctx, 1)
	require.ErrorIs(t, err, client.ErrUnavailable)
	assert.Contains(t, err.Error(), "list candidates")
}

package services

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/somapoll/internal/client/client"
	"github.com/dmitrijs2005/somapoll/internal/client/models"
	"github.com/dmitrijs2005/somapoll/internal/common"
)

// CatalogService reads the candidate and party listings. Unlike AuthService
// it returns plain errors.
type CatalogService interface {
	ListCandidates(ctx context.Context) ([]models.Candidate, error)
	ListParties(ctx context.Context) ([]models.Party, error)
	CandidateByID(ctx context.Context, id int64) (*models.Candidate, error)
	PartyByID(ctx context.Context, id int64) (*models.Party, error)
}

type catalogService struct {
	client client.Client
}

func NewCatalogService(c client.Client) CatalogService {
	return &catalogService{client: c}
}

func (s *catalogService) ListCandidates(ctx context.Context) ([]models.Candidate, error) {
	items, err := s.client.ListCandidates(ctx)
	if err != nil {
		return nil, fmt.Errorf("list candidates: %w", err)
	}
	return items, nil
}

func (s *catalogService) ListParties(ctx context.Context) ([]models.Party, error) {
	items, err := s.client.ListParties(ctx)
	if err != nil {
		return nil, fmt.Errorf("list parties: %w", err)
	}
	return items, nil
}

// CandidateByID scans the full listing; the backend has no single-item route.
func (s *catalogService) CandidateByID(ctx context.Context, id int64) (*models.Candidate, error) {
	items, err := s.ListCandidates(ctx)
	if err != nil {
		return nil, err
	}
	for i := range items {
		if items[i].ID == id {
			return &items[i], nil
		}
	}
	return nil, fmt.Errorf("candidate %d: %w", id, common.ErrorNotFound)
}

func (s *catalogService) PartyByID(ctx context.Context, id int64) (*models.Party, error) {
	items, err := s.ListParties(ctx)
	if err != nil {
		return nil, err
	}
	for i := range items {
		if items[i].ID == id {
			return &items[i], nil
		}
	}
	return nil, fmt.Errorf("party %d: %w", id, common.ErrorNotFound)
}

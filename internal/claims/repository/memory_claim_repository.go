// Package repository provides claim record storage. The CRM itself is an
// external collaborator; this in-memory implementation backs local serving
// and tests.
package repository

import (
	"context"
	"sync"

	"github.com/apexclaims/feedback/internal/claims/domain"
	apperrors "github.com/apexclaims/feedback/internal/errors"
)

// MemoryClaimRepository is a concurrency-safe in-memory claim store.
type MemoryClaimRepository struct {
	mu     sync.RWMutex
	claims map[string]domain.Claim
}

// NewMemoryClaimRepository creates an empty MemoryClaimRepository.
func NewMemoryClaimRepository() *MemoryClaimRepository {
	return &MemoryClaimRepository{
		claims: make(map[string]domain.Claim),
	}
}

// GetClaim returns a copy of the stored claim or ErrNotFound.
func (r *MemoryClaimRepository) GetClaim(ctx context.Context, claimID string) (*domain.Claim, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	claim, ok := r.claims[claimID]
	if !ok {
		return nil, apperrors.Wrapf(apperrors.ErrNotFound, "claim %s", claimID)
	}
	return &claim, nil
}

// UpdateClaim stores the claim, creating it when absent.
func (r *MemoryClaimRepository) UpdateClaim(ctx context.Context, claim *domain.Claim) error {
	if claim == nil || claim.ClaimID == "" {
		return apperrors.Wrap(apperrors.ErrInvalidInput, "claim id is required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.claims[claim.ClaimID] = *claim
	return nil
}

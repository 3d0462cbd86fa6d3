package provider

import (
	"context"
	"errors"
	"fmt"

	providerRepo "carelink/database/repository/provider"
	"carelink/models"
	"carelink/utils"

	"go.uber.org/zap"
)

// SetWeeklyTemplate validates and normalizes the caregiver's recurring
// availability pattern, then persists it. Malformed templates are rejected
// here, at the store boundary, so the resolver only ever reads clean data.
func (s *DefaultProviderService) SetWeeklyTemplate(ctx context.Context, providerID string, tpl models.WeeklyTemplate, granularityMin int) (models.WeeklyTemplate, error) {
	normalized, err := tpl.Normalize()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidTemplate, err)
	}
	if granularityMin <= 0 {
		granularityMin = models.DefaultSlotGranularityMin
	}

	if err := s.Repo.SetWeeklyTemplate(ctx, providerID, normalized, granularityMin); err != nil {
		if errors.Is(err, providerRepo.ErrNotFound) {
			return nil, ErrProviderNotFound
		}
		return nil, fmt.Errorf("failed to persist weekly template: %w", err)
	}

	utils.GetLogger().Info("weekly template updated",
		zap.String("providerID", providerID),
		zap.Int("days", len(normalized)),
		zap.Int("granularityMin", granularityMin))
	return normalized, nil
}

// GetWeeklyTemplate returns the caregiver's stored availability pattern.
func (s *DefaultProviderService) GetWeeklyTemplate(ctx context.Context, providerID string) (models.WeeklyTemplate, error) {
	p, err := s.Repo.GetByID(ctx, providerID)
	if errors.Is(err, providerRepo.ErrNotFound) {
		return nil, ErrProviderNotFound
	}
	if err != nil {
		return nil, err
	}
	if p.WeeklyTemplate == nil {
		return models.WeeklyTemplate{}, nil
	}
	return p.WeeklyTemplate, nil
}

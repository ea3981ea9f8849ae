package core

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/adsabs/adsboost/internal/contract"
	"github.com/adsabs/adsboost/schema"
)

// ErrNotFound is returned when no stored row matches an identifier.
var ErrNotFound = errors.New("no boost factors stored")

// LookupBoost returns the rows stored for id, matched as a bibcode first and then as a scix_id.
func LookupBoost(ctx context.Context, bs contract.BoostStore, id string) ([]schema.BoostRecord, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, errors.New("identifier cannot be empty")
	}
	if bs == nil {
		return nil, errors.New("boost store is not initialized")
	}
	records, err := bs.GetByBibcode(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("querying by bibcode: %w", err)
	}
	if len(records) > 0 {
		return records, nil
	}
	records, err = bs.GetByScixID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("querying by scix_id: %w", err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("%w for %s", ErrNotFound, id)
	}
	return records, nil
}

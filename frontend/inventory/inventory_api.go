package inventory

import (
	"context"
	"fmt"
	"net/url"

	"github.com/go-playground/validator/v10"
	"golang.org/x/sync/errgroup"

	"stockpilot/infrastructure/backend"
	"stockpilot/models"
)

var validate = validator.New()

// Overview bundles the three inventory projections. They are always
// fetched together and replaced together so the summary counts never
// disagree with the detailed list on screen.
type Overview struct {
	Items   []models.InventoryItem
	Summary models.InventorySummary
	Groups  []models.ProductGroup
}

// FetchFullInventory lists every physical unit.
func FetchFullInventory(ctx context.Context, api *backend.Client) ([]models.InventoryItem, error) {
	var items []models.InventoryItem
	if err := api.Get(ctx, "/inventory", &items); err != nil {
		return nil, err
	}
	return items, nil
}

// FetchSummary loads the per-lot aggregate view.
func FetchSummary(ctx context.Context, api *backend.Client) (models.InventorySummary, error) {
	var summary models.InventorySummary
	if err := api.Get(ctx, "/inventory/summary", &summary); err != nil {
		return models.InventorySummary{}, err
	}
	return summary, nil
}

// FetchByProduct loads the product-grouped projection.
func FetchByProduct(ctx context.Context, api *backend.Client) ([]models.ProductGroup, error) {
	var groups []models.ProductGroup
	if err := api.Get(ctx, "/inventory/by-product", &groups); err != nil {
		return nil, err
	}
	return groups, nil
}

// FetchOverview fetches all three projections concurrently. Any failure
// fails the whole group; callers never observe a half-updated overview.
func FetchOverview(ctx context.Context, api *backend.Client) (Overview, error) {
	var ov Overview
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		items, err := FetchFullInventory(ctx, api)
		if err == nil {
			ov.Items = items
		}
		return err
	})
	g.Go(func() error {
		summary, err := FetchSummary(ctx, api)
		if err == nil {
			ov.Summary = summary
		}
		return err
	})
	g.Go(func() error {
		groups, err := FetchByProduct(ctx, api)
		if err == nil {
			ov.Groups = groups
		}
		return err
	})
	if err := g.Wait(); err != nil {
		return Overview{}, err
	}
	return ov, nil
}

// LotForm is the lot-creation input, validated before any network call.
type LotForm struct {
	LotID       string `validate:"required"`
	Cantidad    int    `validate:"gt=0"`
	DiasCad     int    `validate:"gte=0"`
	ProductName string `validate:"required"`
}

// CreateLot creates a lot of identical units expiring DiasCad days from
// now (backend-computed).
func CreateLot(ctx context.Context, api *backend.Client, form LotForm) error {
	if err := validate.Struct(form); err != nil {
		return fmt.Errorf("invalid lot: %w", err)
	}
	req := models.CreateLotRequest{
		LotID:       form.LotID,
		Cantidad:    form.Cantidad,
		DiasCad:     form.DiasCad,
		ProductName: form.ProductName,
	}
	return api.Post(ctx, "/inventory/lots", req, nil)
}

// DeleteLotOrUnit removes a whole lot when given a lot id, or a single
// unit when given an individual unit id. The backend decides which.
func DeleteLotOrUnit(ctx context.Context, api *backend.Client, identifier string) error {
	return api.Delete(ctx, "/inventory/lots/"+url.PathEscape(identifier), nil)
}

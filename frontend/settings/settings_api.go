package settings

import (
	"context"
	"fmt"

	"github.com/go-playground/validator/v10"

	"stockpilot/infrastructure/backend"
	"stockpilot/models"
)

var validate = validator.New()

func FetchSimulationSettings(ctx context.Context, api *backend.Client) (models.SimulationSettings, error) {
	var s models.SimulationSettings
	if err := api.Get(ctx, "/simulation/settings", &s); err != nil {
		return models.SimulationSettings{}, err
	}
	return s, nil
}

// SettingsForm bounds the delivery multiplier to a sane simulation
// range before the round-trip.
type SettingsForm struct {
	DeliveryTimeMultiplier float64 `validate:"gte=0.1,lte=10"`
	AutoPlaceOrders        bool
}

func UpdateSimulationSettings(ctx context.Context, api *backend.Client, form SettingsForm) error {
	if err := validate.Struct(form); err != nil {
		return fmt.Errorf("invalid settings: %w", err)
	}
	req := models.SimulationSettings{
		DeliveryTimeMultiplier: form.DeliveryTimeMultiplier,
		AutoPlaceOrders:        form.AutoPlaceOrders,
	}
	return api.Post(ctx, "/simulation/settings", req, nil)
}

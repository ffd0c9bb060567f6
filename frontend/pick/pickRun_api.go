package pick

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"stockpilot/infrastructure/backend"
	"stockpilot/models"
)

// GetRunStatus polls the sensor and basket snapshot for the active run.
func GetRunStatus(ctx context.Context, api *backend.Client) (models.RunStatus, error) {
	var status models.RunStatus
	if err := api.Get(ctx, "/run/status", &status); err != nil {
		return models.RunStatus{}, err
	}
	return status, nil
}

// TakeOneProduct records one unit taken. The backend can answer an
// error body under a 2xx status; that counts as a failure too.
func TakeOneProduct(ctx context.Context, api *backend.Client, productName string) error {
	name := strings.TrimSpace(productName)
	var ack models.Ack
	if err := api.Post(ctx, "/run/take_one/"+url.PathEscape(name), nil, &ack); err != nil {
		return err
	}
	if ack.Status == "error" {
		msg := ack.Message
		if msg == "" {
			msg = "failed to take product"
		}
		return fmt.Errorf("take one %s: %s", name, msg)
	}
	return nil
}

// PutOneProduct records one unit returned to the shelf.
func PutOneProduct(ctx context.Context, api *backend.Client, productName string) error {
	name := strings.TrimSpace(productName)
	return api.Post(ctx, "/run/put_one/"+url.PathEscape(name), nil, nil)
}

package stub

import (
	"context"
	"database/sql"
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"

	"stockpilot/infrastructure/sqlite"
	"stockpilot/models"
)

const dateLayout = "2006-01-02"

// Store persists the stub backend's state: individual inventory
// units, supplier orders, simulation settings and run history.
type Store struct {
	DB *sqlite.DB
}

func NewStore(db *sqlite.DB) *Store {
	return &Store{DB: db}
}

// CreateLot expands a lot into per-unit rows. Every unit shares the
// lot's expiry date, computed as today plus the requested shelf days
// at date-only granularity.
func (s *Store) CreateLot(ctx context.Context, req models.CreateLotRequest) error {
	if req.LotID == "" || req.ProductName == "" {
		return fmt.Errorf("lot_id and product_name are required")
	}
	if req.Cantidad <= 0 {
		return fmt.Errorf("cantidad must be positive")
	}
	expiry := time.Now().AddDate(0, 0, req.DiasCad).Format(dateLayout)

	units := make([]models.InventoryItem, 0, req.Cantidad)
	for i := 0; i < req.Cantidad; i++ {
		units = append(units, models.InventoryItem{
			LotID:        req.LotID,
			IndividualID: uuid.NewString()[:8],
			Expiry:       expiry,
			ProductName:  req.ProductName,
		})
	}
	return s.DB.WithWriteTx(ctx, func(ctx context.Context, tx bun.Tx) error {
		_, err := tx.NewInsert().Model(&units).Exec(ctx)
		return err
	})
}

func (s *Store) ListInventory(ctx context.Context) ([]models.InventoryItem, error) {
	items := make([]models.InventoryItem, 0)
	err := s.DB.R.NewSelect().Model(&items).
		Order("caducidad ASC", "lot_id ASC", "id_individual ASC").
		Scan(ctx)
	if err != nil {
		return nil, err
	}
	return items, nil
}

// Summary aggregates the per-lot projection.
func (s *Store) Summary(ctx context.Context) (models.InventorySummary, error) {
	items, err := s.ListInventory(ctx)
	if err != nil {
		return models.InventorySummary{}, err
	}

	byLot := make(map[string]*models.LotSummary)
	var lotOrder []string
	for _, item := range items {
		lot, ok := byLot[item.LotID]
		if !ok {
			byLot[item.LotID] = &models.LotSummary{LotID: item.LotID, Cantidad: 1, EarliestExpiry: item.Expiry}
			lotOrder = append(lotOrder, item.LotID)
			continue
		}
		lot.Cantidad++
		if item.Expiry < lot.EarliestExpiry {
			lot.EarliestExpiry = item.Expiry
		}
	}

	// total_products counts units, not distinct names; the dashboard
	// renders it as "units in stock".
	summary := models.InventorySummary{
		TotalProducts: len(items),
		TotalLots:     len(byLot),
		Lots:          make([]models.LotSummary, 0, len(byLot)),
	}
	for _, lotID := range lotOrder {
		summary.Lots = append(summary.Lots, *byLot[lotID])
	}
	return summary, nil
}

// ByProduct groups units product → lots → individual ids.
func (s *Store) ByProduct(ctx context.Context) ([]models.ProductGroup, error) {
	items, err := s.ListInventory(ctx)
	if err != nil {
		return nil, err
	}

	byProduct := make(map[string]*models.ProductGroup)
	var productOrder []string
	for _, item := range items {
		group, ok := byProduct[item.ProductName]
		if !ok {
			group = &models.ProductGroup{ProductName: item.ProductName}
			byProduct[item.ProductName] = group
			productOrder = append(productOrder, item.ProductName)
		}
		group.TotalQuantity++

		var lot *models.ProductLot
		for i := range group.Lots {
			if group.Lots[i].LotID == item.LotID {
				lot = &group.Lots[i]
				break
			}
		}
		if lot == nil {
			group.Lots = append(group.Lots, models.ProductLot{LotID: item.LotID, EarliestExpiry: item.Expiry})
			lot = &group.Lots[len(group.Lots)-1]
		}
		lot.Cantidad++
		lot.IndividualIDs = append(lot.IndividualIDs, item.IndividualID)
		if item.Expiry < lot.EarliestExpiry {
			lot.EarliestExpiry = item.Expiry
		}
	}

	sort.Strings(productOrder)
	groups := make([]models.ProductGroup, 0, len(byProduct))
	for _, name := range productOrder {
		groups = append(groups, *byProduct[name])
	}
	return groups, nil
}

// DeleteLotOrUnit removes every unit of a lot when given a lot id,
// otherwise the single unit with that individual id.
func (s *Store) DeleteLotOrUnit(ctx context.Context, identifier string) (int64, error) {
	var deleted int64
	err := s.DB.WithWriteTx(ctx, func(ctx context.Context, tx bun.Tx) error {
		res, err := tx.NewDelete().Model((*models.InventoryItem)(nil)).
			Where("lot_id = ?", identifier).Exec(ctx)
		if err != nil {
			return err
		}
		deleted, _ = res.RowsAffected()
		if deleted > 0 {
			return nil
		}
		res, err = tx.NewDelete().Model((*models.InventoryItem)(nil)).
			Where("id_individual = ?", identifier).Exec(ctx)
		if err != nil {
			return err
		}
		deleted, _ = res.RowsAffected()
		return nil
	})
	return deleted, err
}

// TakeEarliestUnit removes the earliest-expiring unit of a product
// (FEFO) and returns it so a put can restore it later. The name match
// is case and whitespace insensitive, like the dashboard's.
func (s *Store) TakeEarliestUnit(ctx context.Context, productName string) (models.InventoryItem, error) {
	want := strings.ToLower(strings.TrimSpace(productName))
	var taken models.InventoryItem
	err := s.DB.WithWriteTx(ctx, func(ctx context.Context, tx bun.Tx) error {
		err := tx.NewSelect().Model(&taken).
			Where("LOWER(TRIM(product_name)) = ?", want).
			Order("caducidad ASC", "id_individual ASC").
			Limit(1).
			Scan(ctx)
		if err != nil {
			if err == sql.ErrNoRows {
				return fmt.Errorf("no stock for %s", productName)
			}
			return err
		}
		_, err = tx.NewDelete().Model(&taken).WherePK().Exec(ctx)
		return err
	})
	return taken, err
}

// RestoreUnit puts a previously taken unit back on the shelf.
func (s *Store) RestoreUnit(ctx context.Context, unit models.InventoryItem) error {
	return s.DB.WithWriteTx(ctx, func(ctx context.Context, tx bun.Tx) error {
		_, err := tx.NewInsert().Model(&unit).Exec(ctx)
		return err
	})
}

func (s *Store) CountByProduct(ctx context.Context, productName string) (int, error) {
	want := strings.ToLower(strings.TrimSpace(productName))
	return s.DB.R.NewSelect().Model((*models.InventoryItem)(nil)).
		Where("LOWER(TRIM(product_name)) = ?", want).
		Count(ctx)
}

// --- supplier orders ---

func (s *Store) ListOrders(ctx context.Context) ([]models.Order, error) {
	orders := make([]models.Order, 0)
	err := s.DB.R.NewSelect().Model(&orders).Order("order_date DESC", "order_id ASC").Scan(ctx)
	if err != nil {
		return nil, err
	}
	return orders, nil
}

// CreateOrder places an order against the supplier catalog. Delivery
// time scales with the simulation multiplier.
func (s *Store) CreateOrder(ctx context.Context, req models.CreateOrderRequest) (models.Order, error) {
	product, ok := supplierProduct(req.ProductName)
	if !ok {
		return models.Order{}, fmt.Errorf("unknown supplier product %q", req.ProductName)
	}
	if req.Quantity < product.MinOrderQuantity {
		return models.Order{}, fmt.Errorf("minimum order quantity for %s is %d", product.ProductName, product.MinOrderQuantity)
	}

	settings, err := s.GetSettings(ctx)
	if err != nil {
		return models.Order{}, err
	}
	deliveryDays := int(math.Ceil(float64(product.DeliveryTimeDays) * settings.DeliveryTimeMultiplier))
	if deliveryDays < 1 {
		deliveryDays = 1
	}

	now := time.Now()
	order := models.Order{
		OrderID:          "ORD-" + strings.ToUpper(uuid.NewString()[:8]),
		ProductName:      product.ProductName,
		Quantity:         req.Quantity,
		Status:           models.OrderStatusInDelivery,
		OrderDate:        now.Format(dateLayout),
		ExpectedDelivery: now.AddDate(0, 0, deliveryDays).Format(dateLayout),
	}
	err = s.DB.WithWriteTx(ctx, func(ctx context.Context, tx bun.Tx) error {
		_, err := tx.NewInsert().Model(&order).Exec(ctx)
		return err
	})
	return order, err
}

// ReceiveOrder marks delivery and assigns the lot code the receiving
// dock will scan. With auto-place enabled the order goes straight
// into inventory.
func (s *Store) ReceiveOrder(ctx context.Context, orderID string) (models.Order, error) {
	order, err := s.getOrder(ctx, orderID)
	if err != nil {
		return models.Order{}, err
	}
	if order.Status != models.OrderStatusInDelivery {
		return models.Order{}, fmt.Errorf("order %s is %s, not in delivery", orderID, order.Status)
	}

	order.Status = models.OrderStatusReceived
	order.ActualDelivery = time.Now().Format(dateLayout)
	order.LotID = "LOT-" + strings.ToUpper(uuid.NewString()[:8])
	order.QRCode = order.LotID
	if err := s.updateOrder(ctx, order); err != nil {
		return models.Order{}, err
	}

	settings, err := s.GetSettings(ctx)
	if err != nil {
		return models.Order{}, err
	}
	if settings.AutoPlaceOrders {
		return s.PlaceOrder(ctx, orderID)
	}
	return order, nil
}

// PlaceOrder moves a received order's units into inventory under the
// order's lot id.
func (s *Store) PlaceOrder(ctx context.Context, orderID string) (models.Order, error) {
	order, err := s.getOrder(ctx, orderID)
	if err != nil {
		return models.Order{}, err
	}
	if order.Status != models.OrderStatusReceived {
		return models.Order{}, fmt.Errorf("order %s is %s, not received", orderID, order.Status)
	}

	product, ok := supplierProduct(order.ProductName)
	if !ok {
		return models.Order{}, fmt.Errorf("unknown supplier product %q", order.ProductName)
	}
	err = s.CreateLot(ctx, models.CreateLotRequest{
		LotID:       order.LotID,
		Cantidad:    order.Quantity,
		DiasCad:     product.ShelfLifeDays,
		ProductName: order.ProductName,
	})
	if err != nil {
		return models.Order{}, err
	}

	order.Status = models.OrderStatusAvailable
	if err := s.updateOrder(ctx, order); err != nil {
		return models.Order{}, err
	}
	return order, nil
}

func (s *Store) DeleteOrder(ctx context.Context, orderID string) error {
	return s.DB.WithWriteTx(ctx, func(ctx context.Context, tx bun.Tx) error {
		res, err := tx.NewDelete().Model((*models.Order)(nil)).Where("order_id = ?", orderID).Exec(ctx)
		if err != nil {
			return err
		}
		if n, _ := res.RowsAffected(); n == 0 {
			return fmt.Errorf("order %s not found", orderID)
		}
		return nil
	})
}

func (s *Store) getOrder(ctx context.Context, orderID string) (models.Order, error) {
	var order models.Order
	err := s.DB.R.NewSelect().Model(&order).Where("order_id = ?", orderID).Limit(1).Scan(ctx)
	if err != nil {
		if err == sql.ErrNoRows {
			return models.Order{}, fmt.Errorf("order %s not found", orderID)
		}
		return models.Order{}, err
	}
	return order, nil
}

func (s *Store) updateOrder(ctx context.Context, order models.Order) error {
	return s.DB.WithWriteTx(ctx, func(ctx context.Context, tx bun.Tx) error {
		_, err := tx.NewUpdate().Model(&order).WherePK().Exec(ctx)
		return err
	})
}

// --- simulation settings ---

func (s *Store) GetSettings(ctx context.Context) (models.SimulationSettings, error) {
	var multiplier float64
	var autoPlace int
	err := s.DB.R.QueryRowContext(ctx,
		`SELECT delivery_time_multiplier, auto_place_orders FROM simulation_settings WHERE id = 1`).
		Scan(&multiplier, &autoPlace)
	if err != nil {
		return models.SimulationSettings{}, err
	}
	return models.SimulationSettings{DeliveryTimeMultiplier: multiplier, AutoPlaceOrders: autoPlace != 0}, nil
}

func (s *Store) UpdateSettings(ctx context.Context, settings models.SimulationSettings) error {
	return s.DB.WithWriteTx(ctx, func(ctx context.Context, tx bun.Tx) error {
		autoPlace := 0
		if settings.AutoPlaceOrders {
			autoPlace = 1
		}
		_, err := tx.ExecContext(ctx,
			`UPDATE simulation_settings SET delivery_time_multiplier = ?, auto_place_orders = ? WHERE id = 1`,
			settings.DeliveryTimeMultiplier, autoPlace)
		return err
	})
}

// --- run history ---

func (s *Store) StartRun(ctx context.Context, flightNumber string) (int64, error) {
	var id int64
	err := s.DB.WithWriteTx(ctx, func(ctx context.Context, tx bun.Tx) error {
		res, err := tx.ExecContext(ctx,
			`INSERT INTO pick_runs (flight_number, started_at) VALUES (?, ?)`,
			flightNumber, time.Now().UTC().Format(time.RFC3339))
		if err != nil {
			return err
		}
		id, err = res.LastInsertId()
		return err
	})
	return id, err
}

func (s *Store) FinishRun(ctx context.Context, runID int64) error {
	return s.DB.WithWriteTx(ctx, func(ctx context.Context, tx bun.Tx) error {
		_, err := tx.ExecContext(ctx,
			`UPDATE pick_runs SET finished_at = ? WHERE id = ? AND finished_at IS NULL`,
			time.Now().UTC().Format(time.RFC3339), runID)
		return err
	})
}

// RunStats derives the dashboard figures from run history.
func (s *Store) RunStats(ctx context.Context) (models.RunStats, error) {
	rows, err := s.DB.R.QueryContext(ctx, `SELECT started_at, finished_at FROM pick_runs`)
	if err != nil {
		return models.RunStats{}, err
	}
	defer rows.Close()

	now := time.Now()
	today := now.Format(dateLayout)
	weekAgo := now.AddDate(0, 0, -7)

	var stats models.RunStats
	var finished, total int
	var totalMinutes float64
	for rows.Next() {
		var startedAt string
		var finishedAt sql.NullString
		if err := rows.Scan(&startedAt, &finishedAt); err != nil {
			return models.RunStats{}, err
		}
		started, err := time.Parse(time.RFC3339, startedAt)
		if err != nil {
			continue
		}
		total++
		if started.After(weekAgo) {
			stats.TotalRunsThisWeek++
		}
		if !finishedAt.Valid {
			continue
		}
		ended, err := time.Parse(time.RFC3339, finishedAt.String)
		if err != nil {
			continue
		}
		finished++
		totalMinutes += ended.Sub(started).Minutes()
		if started.Format(dateLayout) == today {
			stats.CompletedToday++
		}
	}
	if err := rows.Err(); err != nil {
		return models.RunStats{}, err
	}
	if finished > 0 {
		stats.AverageTimePerRun = totalMinutes / float64(finished)
	}
	if total > 0 {
		stats.Efficiency = float64(finished) / float64(total) * 100
	}
	return stats, nil
}

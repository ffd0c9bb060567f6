package stub

import (
	"fmt"
	"sync"

	"stockpilot/models"
)

// SensorController simulates the shelf sensors for the active pick
// run. Inventory truth lives in the store; the controller owns the
// basket counts and remembers taken units so puts can restore them.
type SensorController struct {
	mu       sync.Mutex
	active   bool
	flight   string
	runID    int64
	required map[string]int
	basket   map[string]int
	taken    map[string][]models.InventoryItem
}

func NewSensorController() *SensorController {
	return &SensorController{}
}

// StartRun arms the sensors for a flight manifest. A new run replaces
// any run still active.
func (c *SensorController) StartRun(flight string, runID int64, manifest []models.ManifestLine) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.active = true
	c.flight = flight
	c.runID = runID
	c.required = make(map[string]int, len(manifest))
	c.basket = make(map[string]int, len(manifest))
	c.taken = make(map[string][]models.InventoryItem)
	for _, line := range manifest {
		c.required[line.ProductName] = line.CategoryQuantity
		c.basket[line.ProductName] = 0
	}
}

// StopRun disarms the sensors and reports the run id for history.
func (c *SensorController) StopRun() (int64, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.active {
		return 0, false
	}
	c.active = false
	return c.runID, true
}

func (c *SensorController) Active() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.active
}

// RecordTake counts a unit into the basket and remembers it.
func (c *SensorController) RecordTake(productName string, unit models.InventoryItem) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.active {
		return fmt.Errorf("no active run")
	}
	if _, ok := c.required[productName]; !ok {
		return fmt.Errorf("%s is not on the manifest", productName)
	}
	c.basket[productName]++
	c.taken[productName] = append(c.taken[productName], unit)
	return nil
}

// ReleaseTaken pops the most recently taken unit of a product so the
// store can restore it.
func (c *SensorController) ReleaseTaken(productName string) (models.InventoryItem, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.active {
		return models.InventoryItem{}, fmt.Errorf("no active run")
	}
	stack := c.taken[productName]
	if len(stack) == 0 {
		return models.InventoryItem{}, fmt.Errorf("nothing in the basket for %s", productName)
	}
	unit := stack[len(stack)-1]
	c.taken[productName] = stack[:len(stack)-1]
	c.basket[productName]--
	return unit, nil
}

// Status builds the sensor and basket snapshot. Colors follow the
// shelf-light convention: green while stock remains, red when the
// shelf is empty but the basket is short, white once satisfied.
func (c *SensorController) Status(stockCounts map[string]int) models.RunStatus {
	c.mu.Lock()
	defer c.mu.Unlock()

	status := models.RunStatus{
		Sensors: make(map[string]models.Sensor),
		Basket:  make(map[string]int),
	}
	if !c.active {
		return status
	}

	for product, required := range c.required {
		basket := c.basket[product]
		remaining := stockCounts[product]
		color := "green"
		switch {
		case basket >= required:
			color = "white"
		case remaining == 0:
			color = "red"
		}
		unitWeight := 1.0
		if p, ok := supplierProduct(product); ok {
			unitWeight = p.WeightKg
		}
		status.Sensors[product] = models.Sensor{
			Color:          color,
			CurrentWeight:  float64(remaining) * unitWeight,
			ExpectedWeight: float64(required) * unitWeight,
			UnitsRemaining: remaining,
			Active:         true,
		}
		status.Basket[product] = basket
	}
	return status
}

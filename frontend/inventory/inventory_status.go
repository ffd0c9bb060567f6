package inventory

import (
	"strings"
	"time"

	"stockpilot/models"
)

// Expiry classes shown on inventory rows. Boundaries are inclusive at
// 3 and 7 days.
const (
	ExpiryExpired = "expired"
	ExpiryWarning = "warning"
	ExpiryCaution = "caution"
	ExpiryGood    = "good"
)

var expiryLayouts = []string{
	"2006-01-02",
	time.RFC3339,
	"2006-01-02T15:04:05",
}

// ParseExpiry reads the backend's caducidad field (date-only ISO in
// practice, tolerating timestamps).
func ParseExpiry(v string) (time.Time, bool) {
	for _, layout := range expiryLayouts {
		if t, err := time.Parse(layout, strings.TrimSpace(v)); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// ExpiryClass classifies an expiry date relative to now at date-only
// granularity: past dates are expired, 0-3 days is warning, 4-7 days is
// caution, beyond that good.
func ExpiryClass(expiry, now time.Time) string {
	expDay := time.Date(expiry.Year(), expiry.Month(), expiry.Day(), 0, 0, 0, 0, time.UTC)
	nowDay := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	days := int(expDay.Sub(nowDay).Hours() / 24)
	switch {
	case days < 0:
		return ExpiryExpired
	case days <= 3:
		return ExpiryWarning
	case days <= 7:
		return ExpiryCaution
	default:
		return ExpiryGood
	}
}

// RiskUnits counts units expiring within three days of now, the
// dashboard's "lotes en riesgo" figure.
func RiskUnits(items []models.InventoryItem, now time.Time) int {
	count := 0
	for _, item := range items {
		exp, ok := ParseExpiry(item.Expiry)
		if !ok {
			continue
		}
		switch ExpiryClass(exp, now) {
		case ExpiryExpired, ExpiryWarning:
			count++
		}
	}
	return count
}

// UniqueProducts counts distinct product names in the detailed listing.
func UniqueProducts(items []models.InventoryItem) int {
	seen := make(map[string]struct{}, len(items))
	for _, item := range items {
		seen[strings.ToLower(strings.TrimSpace(item.ProductName))] = struct{}{}
	}
	return len(seen)
}

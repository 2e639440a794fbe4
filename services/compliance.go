package services

import (
	"math"
	"strconv"

	"familydiet/models"
)

// CalculateCompliancePercentage returns round(100*completed/total), or 0 when
// total is 0. Nothing is clamped: completed > total reports above 100.
func CalculateCompliancePercentage(completed, total int) int {
	if total <= 0 {
		return 0
	}
	return int(math.Round(100 * float64(completed) / float64(total)))
}

// ToggleItemConsumption flips the consumed flag. When turning it on with an
// empty actual quantity, the planned quantity is copied first.
func ToggleItemConsumption(item models.ConsumedItem) models.ConsumedItem {
	out := item
	if !out.Consumed {
		if out.ActualQuantity == "" {
			out.ActualQuantity = out.PlannedQuantity
		}
		out.Consumed = true
		return out
	}
	out.Consumed = false
	return out
}

// ItemsCompletion is the per-entry percentage persisted at save time.
func ItemsCompletion(items []models.ConsumedItem) int {
	done := 0
	for _, it := range items {
		if it.Consumed {
			done++
		}
	}
	return CalculateCompliancePercentage(done, len(items))
}

// FormatPlannedQuantity renders "<qty> <unit>".
func FormatPlannedQuantity(p models.PortionItem) string {
	qty := strconv.FormatFloat(p.Quantity, 'f', -1, 64)
	return qty + " " + p.Unit
}

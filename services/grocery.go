package services

import (
	"sort"
	"strings"

	"familydiet/models"
)

// GroceryKey identifies an item across plans: lowercase(name) + "_" + category.
func GroceryKey(item models.GroceryItem) string {
	return strings.ToLower(item.Name) + "_" + string(item.Category)
}

func NeedToPurchase(required, available float64) float64 {
	if d := required - available; d > 0 {
		return d
	}
	return 0
}

// ConsolidateGroceries merges the grocery lists of every plan into one list
// in first-seen key order.
func ConsolidateGroceries(plans []models.DailyDietPlan) []models.GroceryItem {
	lists := make([][]models.GroceryItem, 0, len(plans))
	for _, p := range plans {
		lists = append(lists, p.GroceryList())
	}
	return MergeGroceryLists(lists...)
}

// MergeGroceryLists folds lists left to right. Quantities are summed and
// usage schedules concatenated without dedupe; the first occurrence of a key
// supplies every other field.
func MergeGroceryLists(lists ...[]models.GroceryItem) []models.GroceryItem {
	index := map[string]int{}
	var out []models.GroceryItem

	for _, list := range lists {
		for _, item := range list {
			key := GroceryKey(item)
			if i, ok := index[key]; ok {
				acc := &out[i]
				acc.RequiredQuantity += item.RequiredQuantity
				acc.NeedToPurchase = NeedToPurchase(acc.RequiredQuantity, acc.AvailableAtHome)
				acc.UsageSchedule = append(acc.UsageSchedule, copyUsage(item.UsageSchedule)...)
				if acc.Status == models.StatusSufficient || acc.Status == models.StatusOutOfStock {
					acc.Status = derivedStatus(acc.NeedToPurchase)
				}
				continue
			}

			seed := item
			seed.UsageSchedule = copyUsage(item.UsageSchedule)
			if item.EstimatedCost != nil {
				c := *item.EstimatedCost
				seed.EstimatedCost = &c
			}
			seed.NeedToPurchase = NeedToPurchase(seed.RequiredQuantity, seed.AvailableAtHome)
			if seed.Status == "" {
				seed.Status = derivedStatus(seed.NeedToPurchase)
			}
			if seed.Priority == "" {
				seed.Priority = models.PriorityMedium
				if seed.Perishable {
					seed.Priority = models.PriorityHigh
				}
			}
			seed.Source = models.SourceMealPlan

			index[key] = len(out)
			out = append(out, seed)
		}
	}
	if out == nil {
		out = []models.GroceryItem{}
	}
	return out
}

func derivedStatus(need float64) models.GroceryStatus {
	if need > 0 {
		return models.StatusOutOfStock
	}
	return models.StatusSufficient
}

func copyUsage(in []models.UsageEntry) []models.UsageEntry {
	out := make([]models.UsageEntry, 0, len(in))
	for _, u := range in {
		u.Meals = append([]string(nil), u.Meals...)
		out = append(out, u)
	}
	return out
}

func TotalEstimatedCost(items []models.GroceryItem) float64 {
	var total float64
	for _, it := range items {
		if it.EstimatedCost != nil {
			total += *it.EstimatedCost
		}
	}
	return total
}

type GroceryFilter struct {
	Category      models.GroceryCategory
	ShowCompleted bool
}

func isCompleted(it models.GroceryItem) bool {
	return it.Checked || it.Status == models.StatusPurchased
}

// FilterGroceryItems keeps items of the category ("" or "all" keeps every
// category) and drops completed items unless ShowCompleted is set.
func FilterGroceryItems(items []models.GroceryItem, f GroceryFilter) []models.GroceryItem {
	out := make([]models.GroceryItem, 0, len(items))
	for _, it := range items {
		if f.Category != "" && f.Category != "all" && it.Category != f.Category {
			continue
		}
		if !f.ShowCompleted && isCompleted(it) {
			continue
		}
		out = append(out, it)
	}
	return out
}

var priorityRank = map[models.GroceryPriority]int{
	models.PriorityHigh:   3,
	models.PriorityMedium: 2,
	models.PriorityLow:    1,
}

const (
	SortByName     = "name"
	SortByCategory = "category"
	SortByPriority = "priority"
)

// SortGroceryItems returns a stably sorted copy. Unknown keys keep the
// consolidated order.
func SortGroceryItems(items []models.GroceryItem, by string) []models.GroceryItem {
	out := append([]models.GroceryItem(nil), items...)
	switch by {
	case SortByPriority:
		sort.SliceStable(out, func(i, j int) bool {
			return priorityRank[out[i].Priority] > priorityRank[out[j].Priority]
		})
	case SortByName:
		sort.SliceStable(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	case SortByCategory:
		sort.SliceStable(out, func(i, j int) bool { return out[i].Category < out[j].Category })
	}
	return out
}

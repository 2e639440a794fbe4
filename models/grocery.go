package models

import (
	"time"

	"gorm.io/datatypes"
)

type GroceryCategory string

const (
	CategoryGrains     GroceryCategory = "grains"
	CategoryVegetables GroceryCategory = "vegetables"
	CategoryProteins   GroceryCategory = "proteins"
	CategoryDairy      GroceryCategory = "dairy"
	CategorySpices     GroceryCategory = "spices"
	CategoryFruits     GroceryCategory = "fruits"
	CategoryNuts       GroceryCategory = "nuts"
	CategoryCondiments GroceryCategory = "condiments"
)

type GroceryPriority string

const (
	PriorityHigh   GroceryPriority = "high"
	PriorityMedium GroceryPriority = "medium"
	PriorityLow    GroceryPriority = "low"
)

func (p GroceryPriority) Valid() bool {
	return p == PriorityHigh || p == PriorityMedium || p == PriorityLow
}

type GroceryStatus string

const (
	StatusSufficient GroceryStatus = "sufficient"
	StatusOutOfStock GroceryStatus = "out_of_stock"
	StatusInCart     GroceryStatus = "in_cart"
	StatusPurchased  GroceryStatus = "purchased"
)

func (s GroceryStatus) Valid() bool {
	switch s {
	case StatusSufficient, StatusOutOfStock, StatusInCart, StatusPurchased:
		return true
	}
	return false
}

const SourceMealPlan = "meal_plan"

type UsageEntry struct {
	Date     string   `json:"date"`
	Quantity float64  `json:"quantity"`
	Meals    []string `json:"meals"`
}

type GroceryItem struct {
	Name             string          `json:"name"`
	Category         GroceryCategory `json:"category"`
	RequiredQuantity float64         `json:"requiredQuantity"`
	AvailableAtHome  float64         `json:"availableAtHome"`
	NeedToPurchase   float64         `json:"needToPurchase"`
	Unit             string          `json:"unit"`
	Perishable       bool            `json:"perishable"`
	Priority         GroceryPriority `json:"priority,omitempty"`
	UsageSchedule    []UsageEntry    `json:"usageSchedule"`
	EstimatedCost    *float64        `json:"estimatedCost,omitempty"`
	Status           GroceryStatus   `json:"status,omitempty"`
	Source           string          `json:"source,omitempty"`
	Checked          bool            `json:"checked"`
}

type GroceryPlanStatus string

const (
	PlanActive   GroceryPlanStatus = "active"
	PlanArchived GroceryPlanStatus = "archived"
)

// GroceryPlan is a snapshot; every generation creates a new row.
type GroceryPlan struct {
	ID                 string                           `gorm:"primaryKey;size:36" json:"id"`
	Title              string                           `json:"title"`
	StartDate          string                           `gorm:"size:10;index" json:"startDate"`
	EndDate            string                           `gorm:"size:10" json:"endDate"`
	GroceryItems       datatypes.JSONSlice[GroceryItem] `json:"groceryItems"`
	TotalEstimatedCost float64                          `json:"totalEstimatedCost"`
	Status             GroceryPlanStatus                `gorm:"size:16;index" json:"status"`
	CreatedAt          time.Time                        `json:"createdAt"`
	UpdatedAt          time.Time                        `json:"updatedAt"`
}

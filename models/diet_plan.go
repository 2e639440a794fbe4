package models

import (
	"time"

	"gorm.io/datatypes"
)

type PortionItem struct {
	Name     string  `json:"name"`
	Quantity float64 `json:"quantity"`
	Unit     string  `json:"unit"`
}

type FamilyPortion struct {
	MemberID   string        `json:"memberId"`
	MemberName string        `json:"memberName"`
	Items      []PortionItem `json:"items"`
}

// MealSlot is one meal within a day. ID is unique within its plan only.
type MealSlot struct {
	ID             string          `json:"id"`
	Title          string          `json:"title"`
	Time           string          `json:"time,omitempty"` // HH:MM
	TimeDisplay    string          `json:"timeDisplay,omitempty"`
	FamilyPortions []FamilyPortion `json:"familyPortions"`
}

type ExtractedData struct {
	Meals       []MealSlot    `json:"meals"`
	GroceryList []GroceryItem `json:"groceryList"`
}

// DailyDietPlan is keyed by its calendar day (YYYY-MM-DD).
type DailyDietPlan struct {
	ID            uint                              `gorm:"primaryKey" json:"id"`
	Date          string                            `gorm:"size:10;uniqueIndex;not null" json:"date"`
	ExtractedData datatypes.JSONType[ExtractedData] `json:"extractedData"`
	CreatedAt     time.Time                         `json:"createdAt"`
	UpdatedAt     time.Time                         `json:"updatedAt"`
}

func (p DailyDietPlan) Meals() []MealSlot {
	return p.ExtractedData.Data().Meals
}

func (p DailyDietPlan) GroceryList() []GroceryItem {
	return p.ExtractedData.Data().GroceryList
}

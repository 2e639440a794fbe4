package services

import (
	"path/filepath"
	"testing"

	"familydiet/config"
	"familydiet/models"

	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "test.db")), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, config.Migrate(db))
	return db
}

func member(id, name string) models.FamilyMember {
	return models.FamilyMember{ID: id, Name: name, Role: models.RoleFather, PortionMultiplier: 1, Active: true}
}

func portion(memberID string, items ...models.PortionItem) models.FamilyPortion {
	return models.FamilyPortion{MemberID: memberID, Items: items}
}

func meal(id, at string, portions ...models.FamilyPortion) models.MealSlot {
	return models.MealSlot{ID: id, Title: id, Time: at, FamilyPortions: portions}
}

func entry(mealID, memberID string, pct int) models.ConsumptionEntry {
	return models.ConsumptionEntry{Date: "2024-05-01", MealSlotID: mealID, FamilyMemberID: memberID, CompletionPercentage: pct}
}

func dayPlan(date string, meals []models.MealSlot, groceries []models.GroceryItem) models.DailyDietPlan {
	return models.DailyDietPlan{
		Date:          date,
		ExtractedData: datatypes.NewJSONType(models.ExtractedData{Meals: meals, GroceryList: groceries}),
	}
}

func cost(v float64) *float64 { return &v }

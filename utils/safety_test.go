package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAssessPortion(t *testing.T) {
	p := PortionProfile{Allergies: []string{"Peanut", " "}, DislikedFoods: []string{"bitter gourd", "chutney"}}
	got := AssessPortion([]string{"Peanut Chutney", "Bitter Gourd Fry", "Rice"}, p)

	require.Len(t, got, 2)
	assert.Equal(t, "ALLERGEN", got[0].Code)
	assert.Equal(t, High, got[0].Severity)
	assert.Equal(t, "Peanut", got[0].Match)
	assert.Equal(t, "DISLIKED", got[1].Code)
	assert.Equal(t, "Bitter Gourd Fry", got[1].Item)

	assert.Empty(t, AssessPortion([]string{"Rice"}, PortionProfile{}))
	assert.NotNil(t, AssessPortion(nil, p))
}

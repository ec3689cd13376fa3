package ai

import (
	"testing"

	"github.com/nutrilens/nutrilens-backend/pkg/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeJSONResponse(t *testing.T) {
	t.Run("plain JSON", func(t *testing.T) {
		var recognition FoodRecognition
		err := decodeJSONResponse(`{"name":"Pasta","calories":600}`, &recognition)
		require.NoError(t, err)
		assert.Equal(t, "Pasta", recognition.Name)
		assert.Equal(t, float64(600), recognition.Calories)
	})

	t.Run("json code fence is tolerated", func(t *testing.T) {
		var recognition FoodRecognition
		err := decodeJSONResponse("```json\n{\"name\":\"Pasta\",\"calories\":600}\n```", &recognition)
		require.NoError(t, err)
		assert.Equal(t, "Pasta", recognition.Name)
	})

	t.Run("bare code fence is tolerated", func(t *testing.T) {
		var recognition FoodRecognition
		err := decodeJSONResponse("```\n{\"name\":\"Pasta\"}\n```", &recognition)
		require.NoError(t, err)
		assert.Equal(t, "Pasta", recognition.Name)
	})

	t.Run("whitespace padding is tolerated", func(t *testing.T) {
		var recognition FoodRecognition
		err := decodeJSONResponse("  \n {\"name\":\"Pasta\"} \n ", &recognition)
		require.NoError(t, err)
		assert.Equal(t, "Pasta", recognition.Name)
	})

	t.Run("non-JSON fails", func(t *testing.T) {
		var recognition FoodRecognition
		err := decodeJSONResponse("I could not identify the food, sorry!", &recognition)
		assert.Error(t, err)
	})
}

func TestNormalizeRecipe(t *testing.T) {
	t.Run("nil instructions become an empty slice", func(t *testing.T) {
		recipe := model.Recipe{Difficulty: model.DifficultyEasy}
		normalizeRecipe(&recipe)
		assert.NotNil(t, recipe.Instructions)
	})

	t.Run("out-of-enum difficulty falls back to Medium", func(t *testing.T) {
		recipe := model.Recipe{Difficulty: "Impossible"}
		normalizeRecipe(&recipe)
		assert.Equal(t, model.DifficultyMedium, recipe.Difficulty)
	})

	t.Run("valid difficulty is preserved", func(t *testing.T) {
		recipe := model.Recipe{Difficulty: model.DifficultyHard}
		normalizeRecipe(&recipe)
		assert.Equal(t, model.DifficultyHard, recipe.Difficulty)
	})
}

func TestNormalizeMealPlan(t *testing.T) {
	plan := model.DailyMealPlan{
		Meals: []model.PlannedMeal{
			{Name: "Toast"},
		},
	}
	normalizeMealPlan(&plan)

	assert.NotNil(t, plan.Meals[0].Ingredients)

	empty := model.DailyMealPlan{}
	normalizeMealPlan(&empty)
	assert.NotNil(t, empty.Meals)
}

func TestSchemas(t *testing.T) {
	// The strict schemas must name every field their Go targets decode, so a
	// conforming model reply always unmarshals cleanly.
	t.Run("food recognition schema covers the struct", func(t *testing.T) {
		schema := foodRecognitionSchema()
		required, ok := schema["required"].([]string)
		require.True(t, ok)
		assert.ElementsMatch(t, []string{"name", "calories", "protein", "carbs", "fat", "ingredients"}, required)
		assert.Equal(t, false, schema["additionalProperties"])
	})

	t.Run("recipe schema constrains difficulty to the enum", func(t *testing.T) {
		schema := recipeSchema()
		properties := schema["properties"].(map[string]any)
		difficulty := properties["difficulty"].(map[string]any)
		assert.ElementsMatch(t, []string{"Easy", "Medium", "Hard"}, difficulty["enum"].([]string))
	})

	t.Run("weekly plan nests the daily plan schema", func(t *testing.T) {
		schema := weeklyMealPlanSchema()
		properties := schema["properties"].(map[string]any)
		days := properties["days"].(map[string]any)
		daily := days["items"].(map[string]any)
		required := daily["required"].([]string)
		assert.Contains(t, required, "meals")
	})
}

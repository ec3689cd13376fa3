package ai

import (
	"github.com/openai/openai-go/v3"
)

// Structured calls declare a strict output schema the model is contracted to
// satisfy: field names, types, required set and enum constraints.

func jsonSchemaFormat(name string, schema map[string]any) openai.ChatCompletionNewParamsResponseFormatUnion {
	return openai.ChatCompletionNewParamsResponseFormatUnion{
		OfJSONSchema: &openai.ResponseFormatJSONSchemaParam{
			JSONSchema: openai.ResponseFormatJSONSchemaJSONSchemaParam{
				Name:   name,
				Schema: schema,
				Strict: openai.Bool(true),
			},
		},
	}
}

func foodRecognitionSchema() map[string]any {
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"name":     map[string]any{"type": "string"},
			"calories": map[string]any{"type": "number"},
			"protein":  map[string]any{"type": "number"},
			"carbs":    map[string]any{"type": "number"},
			"fat":      map[string]any{"type": "number"},
			"ingredients": map[string]any{
				"type":  "array",
				"items": map[string]any{"type": "string"},
			},
		},
		"required":             []string{"name", "calories", "protein", "carbs", "fat", "ingredients"},
		"additionalProperties": false,
	}
}

func recipeSchema() map[string]any {
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"name": map[string]any{"type": "string"},
			"time": map[string]any{"type": "string"},
			"difficulty": map[string]any{
				"type": "string",
				"enum": []string{"Easy", "Medium", "Hard"},
			},
			"instructions": map[string]any{
				"type":  "array",
				"items": map[string]any{"type": "string"},
			},
			"nutritionalBenefits": map[string]any{"type": "string"},
		},
		"required":             []string{"name", "time", "difficulty", "instructions", "nutritionalBenefits"},
		"additionalProperties": false,
	}
}

func dailyMealPlanSchema() map[string]any {
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"dayName":       map[string]any{"type": "string"},
			"date":          map[string]any{"type": "string"},
			"totalCalories": map[string]any{"type": "number"},
			"meals": map[string]any{
				"type": "array",
				"items": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"type": map[string]any{
							"type": "string",
							"enum": []string{"Breakfast", "Lunch", "Dinner", "Snack"},
						},
						"name":     map[string]any{"type": "string"},
						"calories": map[string]any{"type": "number"},
						"ingredients": map[string]any{
							"type":  "array",
							"items": map[string]any{"type": "string"},
						},
						"macros": map[string]any{
							"type": "object",
							"properties": map[string]any{
								"protein": map[string]any{"type": "number"},
								"carbs":   map[string]any{"type": "number"},
								"fat":     map[string]any{"type": "number"},
							},
							"required":             []string{"protein", "carbs", "fat"},
							"additionalProperties": false,
						},
					},
					"required":             []string{"type", "name", "calories", "ingredients", "macros"},
					"additionalProperties": false,
				},
			},
		},
		"required":             []string{"dayName", "date", "totalCalories", "meals"},
		"additionalProperties": false,
	}
}

func weeklyMealPlanSchema() map[string]any {
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"days": map[string]any{
				"type":  "array",
				"items": dailyMealPlanSchema(),
			},
		},
		"required":             []string{"days"},
		"additionalProperties": false,
	}
}

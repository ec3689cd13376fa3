package ai

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/openai/openai-go/v3"
	"github.com/nutrilens/nutrilens-backend/pkg/model"
	"go.uber.org/zap"
)

// The gateway operations follow two deliberate error policies:
//
//   - hard: RecognizeFood, Recipe and the meal-plan generators return the
//     error to the caller, who surfaces a blocking alert and waits for a
//     manual re-trigger.
//   - soft: Chat and Insight never return an error. A static fallback string
//     is substituted and the flow continues as if the call had succeeded.
//
// The split matches how the feature is used: logging a scanned meal must not
// fail silently, while a missing chat reply or daily tip should not alarm
// anyone.
const (
	chatFallback    = "I'm having trouble fetching the latest nutrition data. Try asking something else!"
	insightFallback = "Hydration is the key to energy. Remember to drink water!"
)

// FoodRecognition is the structured result of analyzing a meal photo
type FoodRecognition struct {
	Name        string   `json:"name"`
	Calories    float64  `json:"calories"`
	Protein     float64  `json:"protein"`
	Carbs       float64  `json:"carbs"`
	Fat         float64  `json:"fat"`
	Ingredients []string `json:"ingredients"`
}

// ChatReply is a grounded answer from the nutrition assistant
type ChatReply struct {
	Text    string                  `json:"text"`
	Sources []model.GroundingSource `json:"sources"`
}

// Gateway exposes the AI-backed operations the services depend on
type Gateway struct {
	client *Client
	logger *zap.Logger
}

// NewGateway creates a new Gateway
func NewGateway(client *Client, logger *zap.Logger) *Gateway {
	return &Gateway{
		client: client,
		logger: logger,
	}
}

// RecognizeFood identifies the dish on a meal photo and estimates its
// nutrition. Hard policy: errors propagate to the caller.
func (g *Gateway) RecognizeFood(ctx context.Context, imageBytes []byte, mimeType string) (*FoodRecognition, error) {
	if mimeType == "" {
		mimeType = "image/jpeg"
	}
	dataURL := fmt.Sprintf("data:%s;base64,%s", mimeType, base64.StdEncoding.EncodeToString(imageBytes))

	params := openai.ChatCompletionNewParams{
		Model: openai.ChatModel(g.client.model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.UserMessage([]openai.ChatCompletionContentPartUnionParam{
				openai.ImageContentPart(openai.ChatCompletionContentPartImageImageURLParam{
					URL: dataURL,
				}),
				openai.TextContentPart("Analyze this food image. Identify the primary dish and its components. Estimate calories and macros (Protein, Carbs, Fat in grams). List the main ingredients clearly. If multiple items are present, provide a combined estimate."),
			}),
		},
		ResponseFormat: jsonSchemaFormat("food_recognition", foodRecognitionSchema()),
	}

	message, err := g.client.Complete(ctx, params)
	if err != nil {
		g.logger.Error("food recognition failed", zap.Error(err))
		return nil, fmt.Errorf("food recognition failed: %w", err)
	}

	var recognition FoodRecognition
	if err := decodeJSONResponse(message.Content, &recognition); err != nil {
		g.logger.Error("failed to parse recognition response",
			zap.Error(err),
			zap.String("response", message.Content),
		)
		return nil, fmt.Errorf("failed to parse recognition response: %w", err)
	}

	if recognition.Ingredients == nil {
		recognition.Ingredients = []string{}
	}

	g.logger.Info("food recognized",
		zap.String("name", recognition.Name),
		zap.Float64("calories", recognition.Calories),
		zap.Int("ingredient_count", len(recognition.Ingredients)),
	)

	return &recognition, nil
}

// Chat answers a nutrition question with web-search grounding. Soft policy:
// any failure is absorbed and a fallback apology is returned instead.
func (g *Gateway) Chat(ctx context.Context, message string, profile model.UserProfile, history []model.ChatMessage) ChatReply {
	system := fmt.Sprintf(
		"You are NutriLens AI, a specialized nutrition expert. Use web search to provide accurate, evidence-based answers. User: %s, Goal: %s, Weight: %.0fkg. Be concise and actionable.",
		profile.Name, profile.Goal, profile.Weight,
	)

	messages := []openai.ChatCompletionMessageParamUnion{
		openai.SystemMessage(system),
	}
	for _, turn := range history {
		if turn.Role == model.ChatRoleUser {
			messages = append(messages, openai.UserMessage(turn.Text))
		} else {
			messages = append(messages, openai.AssistantMessage(turn.Text))
		}
	}
	messages = append(messages, openai.UserMessage(message))

	params := openai.ChatCompletionNewParams{
		Model:            openai.ChatModel(g.client.searchModel),
		Messages:         messages,
		WebSearchOptions: openai.ChatCompletionNewParamsWebSearchOptions{},
	}

	reply, err := g.client.Complete(ctx, params)
	if err != nil {
		g.logger.Warn("chat completion failed, substituting fallback", zap.Error(err))
		return ChatReply{Text: chatFallback, Sources: []model.GroundingSource{}}
	}

	sources := []model.GroundingSource{}
	for _, annotation := range reply.Annotations {
		if annotation.Type == "url_citation" {
			sources = append(sources, model.GroundingSource{
				Title: annotation.URLCitation.Title,
				URI:   annotation.URLCitation.URL,
			})
		}
	}

	return ChatReply{Text: reply.Content, Sources: sources}
}

// Recipe generates a healthy recipe for a recognized dish. Hard policy.
func (g *Gateway) Recipe(ctx context.Context, foodName string, ingredients []string, profile model.UserProfile) (*model.Recipe, error) {
	prompt := fmt.Sprintf(
		"Create a healthy recipe for %s using these ingredients: %s. Adjust for the user's goal: %s. Ensure the recipe is easy to follow.",
		foodName, strings.Join(ingredients, ", "), profile.Goal,
	)

	params := openai.ChatCompletionNewParams{
		Model: openai.ChatModel(g.client.model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.UserMessage(prompt),
		},
		ResponseFormat: jsonSchemaFormat("recipe", recipeSchema()),
	}

	message, err := g.client.Complete(ctx, params)
	if err != nil {
		g.logger.Error("recipe generation failed", zap.Error(err))
		return nil, fmt.Errorf("recipe generation failed: %w", err)
	}

	var recipe model.Recipe
	if err := decodeJSONResponse(message.Content, &recipe); err != nil {
		g.logger.Error("failed to parse recipe response",
			zap.Error(err),
			zap.String("response", message.Content),
		)
		return nil, fmt.Errorf("failed to parse recipe response: %w", err)
	}

	normalizeRecipe(&recipe)

	return &recipe, nil
}

// Insight produces a one-line motivating tip from today's consumption. Soft
// policy: a static fallback is substituted on any failure.
func (g *Gateway) Insight(ctx context.Context, stats model.DailyStats, profile model.UserProfile) string {
	prompt := fmt.Sprintf(
		"Based on today's consumption (%.0fkcal) and user profile (%s), give a one-sentence motivating health insight or tip for today. Be specific.",
		stats.Calories, profile.Goal,
	)

	params := openai.ChatCompletionNewParams{
		Model: openai.ChatModel(g.client.model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.UserMessage(prompt),
		},
	}

	message, err := g.client.Complete(ctx, params)
	if err != nil {
		g.logger.Warn("insight generation failed, substituting fallback", zap.Error(err))
		return insightFallback
	}

	return strings.TrimSpace(message.Content)
}

// DailyMealPlan generates a one-day meal plan for the user's goal. Hard policy.
func (g *Gateway) DailyMealPlan(ctx context.Context, profile model.UserProfile) (*model.DailyMealPlan, error) {
	prompt := fmt.Sprintf(
		"Generate a daily meal plan for health goal: %s. Targets: %.0fkcal. Prefer authentic healthy dishes.",
		profile.Goal, profile.DailyGoal,
	)

	params := openai.ChatCompletionNewParams{
		Model: openai.ChatModel(g.client.model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.UserMessage(prompt),
		},
		ResponseFormat: jsonSchemaFormat("daily_meal_plan", dailyMealPlanSchema()),
	}

	message, err := g.client.Complete(ctx, params)
	if err != nil {
		g.logger.Error("daily meal plan generation failed", zap.Error(err))
		return nil, fmt.Errorf("daily meal plan generation failed: %w", err)
	}

	var plan model.DailyMealPlan
	if err := decodeJSONResponse(message.Content, &plan); err != nil {
		g.logger.Error("failed to parse daily meal plan",
			zap.Error(err),
			zap.String("response", message.Content),
		)
		return nil, fmt.Errorf("failed to parse daily meal plan: %w", err)
	}

	normalizeMealPlan(&plan)

	return &plan, nil
}

// WeeklyMealPlan generates a seven-day meal plan. Hard policy.
func (g *Gateway) WeeklyMealPlan(ctx context.Context, profile model.UserProfile) (*model.WeeklyMealPlan, error) {
	prompt := fmt.Sprintf(
		"Generate a 7-day meal plan for health goal: %s. Daily target: %.0fkcal.",
		profile.Goal, profile.DailyGoal,
	)

	params := openai.ChatCompletionNewParams{
		Model: openai.ChatModel(g.client.model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.UserMessage(prompt),
		},
		ResponseFormat: jsonSchemaFormat("weekly_meal_plan", weeklyMealPlanSchema()),
	}

	message, err := g.client.Complete(ctx, params)
	if err != nil {
		g.logger.Error("weekly meal plan generation failed", zap.Error(err))
		return nil, fmt.Errorf("weekly meal plan generation failed: %w", err)
	}

	var plan model.WeeklyMealPlan
	if err := decodeJSONResponse(message.Content, &plan); err != nil {
		g.logger.Error("failed to parse weekly meal plan",
			zap.Error(err),
			zap.String("response", message.Content),
		)
		return nil, fmt.Errorf("failed to parse weekly meal plan: %w", err)
	}

	for i := range plan.Days {
		normalizeMealPlan(&plan.Days[i])
	}

	return &plan, nil
}

// decodeJSONResponse unmarshals a model response, tolerating markdown code
// fences some models wrap around JSON.
func decodeJSONResponse(response string, v any) error {
	response = strings.TrimSpace(response)
	response = strings.TrimPrefix(response, "```json")
	response = strings.TrimPrefix(response, "```")
	response = strings.TrimSuffix(response, "```")
	response = strings.TrimSpace(response)

	if err := json.Unmarshal([]byte(response), v); err != nil {
		return fmt.Errorf("failed to unmarshal JSON: %w", err)
	}

	return nil
}

// normalizeRecipe fills defaults so downstream code never sees a nil slice or
// an out-of-enum difficulty.
func normalizeRecipe(recipe *model.Recipe) {
	if recipe.Instructions == nil {
		recipe.Instructions = []string{}
	}

	switch recipe.Difficulty {
	case model.DifficultyEasy, model.DifficultyMedium, model.DifficultyHard:
	default:
		recipe.Difficulty = model.DifficultyMedium
	}
}

func normalizeMealPlan(plan *model.DailyMealPlan) {
	if plan.Meals == nil {
		plan.Meals = []model.PlannedMeal{}
	}
	for i := range plan.Meals {
		if plan.Meals[i].Ingredients == nil {
			plan.Meals[i].Ingredients = []string{}
		}
	}
}

package integration_tests

import (
	"context"
	"fmt"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/nutrilens/nutrilens-backend/internal/ai"
	"github.com/nutrilens/nutrilens-backend/internal/audit"
	"github.com/nutrilens/nutrilens-backend/internal/azure"
	"github.com/nutrilens/nutrilens-backend/internal/handler"
	"github.com/nutrilens/nutrilens-backend/internal/service"
	"github.com/nutrilens/nutrilens-backend/pkg/model"
	"go.uber.org/zap"
)

// MemoryDocumentStore is an in-memory document store for tests
type MemoryDocumentStore struct {
	mu        sync.RWMutex
	documents map[string][]byte
}

var _ service.DocumentStore = (*MemoryDocumentStore)(nil)

// NewMemoryDocumentStore creates an empty in-memory store
func NewMemoryDocumentStore() *MemoryDocumentStore {
	return &MemoryDocumentStore{
		documents: make(map[string][]byte),
	}
}

func (s *MemoryDocumentStore) Load(ctx context.Context, key string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	doc, ok := s.documents[key]
	if !ok {
		return nil, nil
	}

	copied := make([]byte, len(doc))
	copy(copied, doc)

	return copied, nil
}

func (s *MemoryDocumentStore) Save(ctx context.Context, key string, doc []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	copied := make([]byte, len(doc))
	copy(copied, doc)
	s.documents[key] = copied

	return nil
}

func (s *MemoryDocumentStore) ClearAll(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.documents = make(map[string][]byte)

	return nil
}

// StubGateway is a canned-response stand-in for the OpenAI-backed gateway.
// Hard operations fail when FailHard is set; the soft operations follow the
// real gateway's policy and substitute fallbacks instead.
type StubGateway struct {
	mu       sync.Mutex
	FailHard bool
	FailSoft bool

	Recognition ai.FoodRecognition
	ChatText    string
	InsightText string
}

var _ service.FoodRecognizer = (*StubGateway)(nil)
var _ service.ChatAdvisor = (*StubGateway)(nil)
var _ service.InsightGenerator = (*StubGateway)(nil)
var _ service.MealPlanGenerator = (*StubGateway)(nil)

const (
	stubChatFallback    = "I'm having trouble fetching the latest nutrition data. Try asking something else!"
	stubInsightFallback = "Hydration is the key to energy. Remember to drink water!"
)

func (g *StubGateway) RecognizeFood(ctx context.Context, imageBytes []byte, mimeType string) (*ai.FoodRecognition, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.FailHard {
		return nil, fmt.Errorf("stub: recognition unavailable")
	}

	recognition := g.Recognition
	if recognition.Ingredients == nil {
		recognition.Ingredients = []string{}
	}

	return &recognition, nil
}

func (g *StubGateway) Recipe(ctx context.Context, foodName string, ingredients []string, profile model.UserProfile) (*model.Recipe, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.FailHard {
		return nil, fmt.Errorf("stub: recipe unavailable")
	}

	return &model.Recipe{
		Name:                "Healthy " + foodName,
		Time:                "20 min",
		Difficulty:          model.DifficultyEasy,
		Instructions:        []string{"Prep the ingredients", "Cook and serve"},
		NutritionalBenefits: "Lighter on fat, high in protein",
	}, nil
}

func (g *StubGateway) Chat(ctx context.Context, message string, profile model.UserProfile, history []model.ChatMessage) ai.ChatReply {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.FailSoft {
		return ai.ChatReply{Text: stubChatFallback, Sources: []model.GroundingSource{}}
	}

	return ai.ChatReply{
		Text: g.ChatText,
		Sources: []model.GroundingSource{
			{Title: "Example source", URI: "https://example.com/nutrition"},
		},
	}
}

func (g *StubGateway) Insight(ctx context.Context, stats model.DailyStats, profile model.UserProfile) string {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.FailSoft {
		return stubInsightFallback
	}

	return g.InsightText
}

func (g *StubGateway) DailyMealPlan(ctx context.Context, profile model.UserProfile) (*model.DailyMealPlan, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.FailHard {
		return nil, fmt.Errorf("stub: planner unavailable")
	}

	return &model.DailyMealPlan{
		DayName:       "Monday",
		Date:          "2026-08-31",
		TotalCalories: 1500,
		Meals: []model.PlannedMeal{
			{Type: model.MealBreakfast, Name: "Oatmeal", Calories: 350, Ingredients: []string{"oats", "milk"}},
			{Type: model.MealLunch, Name: "Chicken salad", Calories: 550, Ingredients: []string{"chicken", "greens"}},
			{Type: model.MealDinner, Name: "Baked salmon", Calories: 600, Ingredients: []string{"salmon", "rice"}},
		},
	}, nil
}

func (g *StubGateway) WeeklyMealPlan(ctx context.Context, profile model.UserProfile) (*model.WeeklyMealPlan, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.FailHard {
		return nil, fmt.Errorf("stub: planner unavailable")
	}

	days := make([]model.DailyMealPlan, 0, 7)
	for _, day := range []string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday"} {
		days = append(days, model.DailyMealPlan{
			DayName:       day,
			TotalCalories: 350,
			Meals: []model.PlannedMeal{
				{Type: model.MealBreakfast, Name: "Oatmeal", Calories: 350, Ingredients: []string{"oats", "milk"}},
			},
		})
	}

	return &model.WeeklyMealPlan{Days: days}, nil
}

// testBackend bundles everything a flow test needs
type testBackend struct {
	router    *gin.Engine
	store     *MemoryDocumentStore
	gateway   *StubGateway
	blobs     *azure.MockBlobStorage
	navigator *service.Navigator
	chat      *service.ChatService
}

// newTestBackend wires the full handler stack over in-memory dependencies,
// mirroring the route table the server installs.
func newTestBackend() *testBackend {
	logger := zap.NewNop()

	store := NewMemoryDocumentStore()
	gateway := &StubGateway{
		Recognition: ai.FoodRecognition{
			Name:        "Grilled Chicken Bowl",
			Calories:    520,
			Protein:     42,
			Carbs:       45,
			Fat:         16,
			Ingredients: []string{"chicken", "rice", "avocado"},
		},
		ChatText:    "Protein needs depend on your goal; aim for 1.6g per kg.",
		InsightText: "Great pace today, keep your protein up at dinner.",
	}
	blobs := azure.NewMockBlobStorage()

	navigator := service.NewNavigator(logger)
	statsService := service.NewDailyStatsService(store, logger)
	profileService := service.NewProfileService(store, logger)
	sessionService := service.NewSessionService(store, logger)
	dashboardService := service.NewDashboardService(statsService, profileService, gateway, logger)
	scannerService := service.NewScannerService(gateway, profileService, statsService, blobs, navigator, logger)
	chatService := service.NewChatService(gateway, profileService, logger)
	plannerService := service.NewPlannerService(gateway, profileService, logger)

	auditLogger := audit.NewLogger(nil, logger)

	dashboardHandler := handler.NewDashboardHandler(dashboardService, sessionService, logger)
	statsHandler := handler.NewStatsHandler(statsService, profileService, logger)
	scannerHandler := handler.NewScannerHandler(scannerService, logger)
	chatHandler := handler.NewChatHandler(chatService, logger)
	plannerHandler := handler.NewPlannerHandler(plannerService, logger)
	profileHandler := handler.NewProfileHandler(profileService, chatService, navigator, auditLogger, logger)
	navigationHandler := handler.NewNavigationHandler(navigator, logger)

	gin.SetMode(gin.TestMode)
	router := gin.New()

	v1 := router.Group("/api/v1")
	{
		v1.GET("/dashboard/summary", dashboardHandler.GetSummary)

		v1.POST("/stats/water/add", statsHandler.AddWater)
		v1.POST("/stats/water/remove", statsHandler.RemoveWater)
		v1.GET("/stats/items", statsHandler.GetItems)
		v1.POST("/stats/items", statsHandler.LogItem)

		v1.POST("/scan/recognize", scannerHandler.Recognize)
		v1.POST("/scan/recipe", scannerHandler.Recipe)
		v1.POST("/scan/log", scannerHandler.Log)

		v1.GET("/chat/messages", chatHandler.GetMessages)
		v1.POST("/chat/messages", chatHandler.SendMessage)

		v1.GET("/planner/daily", plannerHandler.GetDailyPlan)
		v1.GET("/planner/weekly", plannerHandler.GetWeeklyPlan)

		v1.GET("/profile", profileHandler.GetProfile)
		v1.PATCH("/profile", profileHandler.UpdateField)
		v1.POST("/profile/reset", profileHandler.Reset)

		v1.GET("/view", navigationHandler.GetView)
		v1.PUT("/view", navigationHandler.SetView)
	}

	return &testBackend{
		router:    router,
		store:     store,
		gateway:   gateway,
		blobs:     blobs,
		navigator: navigator,
		chat:      chatService,
	}
}

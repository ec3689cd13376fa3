package model

import "time"

// AuthUser represents the locally stored session identity.
// There is exactly one per installation; it is replaced wholesale on reset.
type AuthUser struct {
	Email string `json:"email"`
	Name  string `json:"name"`
}

// GuestUser returns the session used when nothing has been stored yet.
func GuestUser() AuthUser {
	return AuthUser{
		Email: "guest@nutrilens.ai",
		Name:  "User",
	}
}

// HealthGoal represents the user's overall target direction
type HealthGoal string

const (
	GoalLose     HealthGoal = "Lose"
	GoalMaintain HealthGoal = "Maintain"
	GoalGain     HealthGoal = "Gain"
)

// ActivityLevel represents how active the user reports being
type ActivityLevel string

const (
	ActivitySedentary  ActivityLevel = "Sedentary"
	ActivityLight      ActivityLevel = "Lightly Active"
	ActivityModerate   ActivityLevel = "Moderately Active"
	ActivityVeryActive ActivityLevel = "Very Active"
)

// Theme represents the UI color scheme preference
type Theme string

const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
)

// UserProfile holds goals, biometrics and preferences. Every field has a
// sensible default; no field is ever absent after initialization.
type UserProfile struct {
	Name                  string        `json:"name"`
	Gender                string        `json:"gender"`
	DailyGoal             float64       `json:"dailyGoal"`
	ProteinGoal           float64       `json:"proteinGoal"`
	CarbsGoal             float64       `json:"carbsGoal"`
	FatGoal               float64       `json:"fatGoal"`
	Weight                float64       `json:"weight"`
	Height                float64       `json:"height"`
	Age                   int           `json:"age"`
	ActivityLevel         ActivityLevel `json:"activityLevel"`
	Goal                  HealthGoal    `json:"goal"`
	Allergies             []string      `json:"allergies"`
	Preferences           []string      `json:"preferences"`
	WaterReminderEnabled  bool          `json:"waterReminderEnabled"`
	WaterReminderInterval int           `json:"waterReminderInterval"` // minutes
	Theme                 Theme         `json:"theme"`
}

// DefaultProfile returns the factory profile used when no document is stored
// or the stored one cannot be decoded.
func DefaultProfile() UserProfile {
	return UserProfile{
		Name:                  "Friend",
		Gender:                "Male",
		DailyGoal:             2000,
		ProteinGoal:           150,
		CarbsGoal:             200,
		FatGoal:               65,
		Weight:                70,
		Height:                175,
		Age:                   25,
		ActivityLevel:         ActivityModerate,
		Goal:                  GoalMaintain,
		Allergies:             []string{},
		Preferences:           []string{},
		WaterReminderEnabled:  false,
		WaterReminderInterval: 60,
		Theme:                 ThemeLight,
	}
}

// FoodItem is a single logged meal. Immutable once logged; owned exclusively
// by the DailyStats item sequence.
type FoodItem struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Calories    float64  `json:"calories"`
	Protein     float64  `json:"protein"`
	Carbs       float64  `json:"carbs"`
	Fat         float64  `json:"fat"`
	Ingredients []string `json:"ingredients"`
	Timestamp   int64    `json:"timestamp"` // unix milliseconds at creation
	ImageURL    string   `json:"imageUrl,omitempty"`
}

// MaxWaterGlasses is the upper bound of the tracked hydration counter.
const MaxWaterGlasses = 8

// DailyStats is the single mutable record for "today". Date always equals the
// current calendar day in the active record; a stored record with any other
// date is discarded on load.
type DailyStats struct {
	Date     string     `json:"date"` // ISO day, e.g. 2026-08-28
	Calories float64    `json:"calories"`
	Water    int        `json:"water"` // glasses, clamped to [0, MaxWaterGlasses]
	Items    []FoodItem `json:"items"`
}

// EmptyStats returns a zeroed record for the given day.
func EmptyStats(date string) DailyStats {
	return DailyStats{
		Date:     date,
		Calories: 0,
		Water:    0,
		Items:    []FoodItem{},
	}
}

// DayString formats a time as the ISO calendar-day string used for the daily
// reset comparison.
func DayString(t time.Time) string {
	return t.Format("2006-01-02")
}

// ChatRole identifies the author of a chat message
type ChatRole string

const (
	ChatRoleUser  ChatRole = "user"
	ChatRoleModel ChatRole = "model"
)

// GroundingSource is a web citation attached to a grounded chat reply
type GroundingSource struct {
	Title string `json:"title"`
	URI   string `json:"uri"`
}

// ChatMessage is one turn of the advice transcript. The transcript is
// append-only and never persisted.
type ChatMessage struct {
	Role    ChatRole          `json:"role"`
	Text    string            `json:"text"`
	Sources []GroundingSource `json:"sources,omitempty"`
}

// RecipeDifficulty classifies how hard a generated recipe is to cook
type RecipeDifficulty string

const (
	DifficultyEasy   RecipeDifficulty = "Easy"
	DifficultyMedium RecipeDifficulty = "Medium"
	DifficultyHard   RecipeDifficulty = "Hard"
)

// Recipe is a generated recipe for the currently scanned item. Ephemeral.
type Recipe struct {
	Name                string           `json:"name"`
	Time                string           `json:"time"`
	Difficulty          RecipeDifficulty `json:"difficulty"`
	Instructions        []string         `json:"instructions"`
	NutritionalBenefits string           `json:"nutritionalBenefits"`
}

// MealType slots a planned meal into the day
type MealType string

const (
	MealBreakfast MealType = "Breakfast"
	MealLunch     MealType = "Lunch"
	MealDinner    MealType = "Dinner"
	MealSnack     MealType = "Snack"
)

// Macros holds gram quantities of the three tracked macronutrients
type Macros struct {
	Protein float64 `json:"protein"`
	Carbs   float64 `json:"carbs"`
	Fat     float64 `json:"fat"`
}

// PlannedMeal is one entry of a generated meal plan
type PlannedMeal struct {
	Type        MealType `json:"type"`
	Name        string   `json:"name"`
	Calories    float64  `json:"calories"`
	Ingredients []string `json:"ingredients"`
	Macros      Macros   `json:"macros"`
}

// DailyMealPlan is a generated plan for a single day
type DailyMealPlan struct {
	DayName       string        `json:"dayName"`
	Date          string        `json:"date"`
	TotalCalories float64       `json:"totalCalories"`
	Meals         []PlannedMeal `json:"meals"`
}

// WeeklyMealPlan is a generated seven-day plan
type WeeklyMealPlan struct {
	Days []DailyMealPlan `json:"days"`
}

// AppView identifies which of the mutually exclusive views is active
type AppView string

const (
	ViewDashboard AppView = "dashboard"
	ViewPlanner   AppView = "planner"
	ViewScan      AppView = "scan"
	ViewChat      AppView = "chat"
	ViewDiary     AppView = "diary"
	ViewProfile   AppView = "profile"
)

// Views lists every navigable view.
func Views() []AppView {
	return []AppView{ViewDashboard, ViewPlanner, ViewScan, ViewChat, ViewDiary, ViewProfile}
}

// ValidView reports whether v names a known view.
func ValidView(v AppView) bool {
	switch v {
	case ViewDashboard, ViewPlanner, ViewScan, ViewChat, ViewDiary, ViewProfile:
		return true
	}
	return false
}

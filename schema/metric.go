package schema

import (
	"encoding/json"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MetricType is the discriminator of a MetricEntry document.
type MetricType string

const (
	MetricTypeSteps         MetricType = "steps"
	MetricTypeSleep         MetricType = "sleep"
	MetricTypeHydration     MetricType = "hydration"
	MetricTypeWeight        MetricType = "weight"
	MetricTypeMood          MetricType = "mood"
	MetricTypeActivity      MetricType = "activity"
	MetricTypeDietaryIntake MetricType = "dietaryIntake"
)

// MetricTypes is the full enumeration, in enrolment order.
var MetricTypes = []MetricType{
	MetricTypeSteps,
	MetricTypeSleep,
	MetricTypeHydration,
	MetricTypeWeight,
	MetricTypeMood,
	MetricTypeActivity,
	MetricTypeDietaryIntake,
}

// TrackedMetricTypes are the types exposing a dedicated tracker endpoint.
// The activity type exists in the enumeration but has no tracker surface.
var TrackedMetricTypes = []MetricType{
	MetricTypeSleep,
	MetricTypeHydration,
	MetricTypeMood,
	MetricTypeWeight,
	MetricTypeSteps,
	MetricTypeDietaryIntake,
}

func (t MetricType) Valid() bool {
	for _, known := range MetricTypes {
		if t == known {
			return true
		}
	}
	return false
}

// Label returns the type name as used in response/request field names,
// e.g. "Sleep" for "existingSleepData" or "DietaryIntake" for
// "newDietaryIntakeData".
func (t MetricType) Label() string {
	switch t {
	case MetricTypeSteps:
		return "Steps"
	case MetricTypeSleep:
		return "Sleep"
	case MetricTypeHydration:
		return "Hydration"
	case MetricTypeWeight:
		return "Weight"
	case MetricTypeMood:
		return "Mood"
	case MetricTypeActivity:
		return "Activity"
	case MetricTypeDietaryIntake:
		return "DietaryIntake"
	}
	return string(t)
}

// Mood status enumeration
const (
	MoodHappy   = "Happy"
	MoodSad     = "Sad"
	MoodAnxious = "Anxious"
	MoodAngry   = "Angry"
	MoodNeutral = "Neutral"
)

// Sleep quality enumeration (derived from hours slept at entry time)
const (
	SleepQualityPoor      = "Poor"
	SleepQualityGood      = "Good"
	SleepQualityExcellent = "Excellent"
)

var moodStatuses = []string{MoodAnxious, MoodSad, MoodNeutral, MoodHappy, MoodAngry}
var mealTypes = []string{"Breakfast", "Lunch", "Dinner", "Snack"}
var foodClasses = []string{"Carbohydrate", "Protein", "Fat", "Carbohydrate and Protein", "All"}
var sleepConsistencies = []string{"consistent", "inconsistent"}
var stressLevels = []string{"low", "moderate", "high"}
var physicalActivities = []string{"none", "light", "moderate", "intense"}
var sleepQualities = []string{SleepQualityPoor, SleepQualityGood, SleepQualityExcellent}

type (
	// StepsData is the steps payload of a MetricEntry.
	StepsData struct {
		Date           string  `bson:"date,omitempty" json:"date,omitempty"`
		StepsCount     int     `bson:"stepsCount" json:"stepsCount"`
		Distance       float64 `bson:"distance,omitempty" json:"distance,omitempty"`
		CaloriesBurned float64 `bson:"caloriesBurned,omitempty" json:"caloriesBurned,omitempty"`
		TimeOfDay      string  `bson:"timeOfDay,omitempty" json:"timeOfDay,omitempty"`
		Notes          string  `bson:"notes,omitempty" json:"notes,omitempty"`
	}

	// SleepData is the sleep payload of a MetricEntry.
	SleepData struct {
		Date               string  `bson:"date,omitempty" json:"date,omitempty"`
		Time               string  `bson:"time,omitempty" json:"time,omitempty"`
		HoursSlept         float64 `bson:"hoursSlept" json:"hoursSlept"`
		SleepQuality       string  `bson:"sleepQuality,omitempty" json:"sleepQuality,omitempty"`
		Bedtime            string  `bson:"bedtime,omitempty" json:"bedtime,omitempty"`
		WakeTime           string  `bson:"wakeTime,omitempty" json:"wakeTime,omitempty"`
		TimeToFallAsleep   float64 `bson:"timeToFallAsleep,omitempty" json:"timeToFallAsleep,omitempty"`
		Awakenings         int     `bson:"awakenings,omitempty" json:"awakenings,omitempty"`
		TookNap            bool    `bson:"tookNap,omitempty" json:"tookNap,omitempty"`
		SleepInterruptions string  `bson:"sleepInterruptions,omitempty" json:"sleepInterruptions,omitempty"`
		SleepConsistency   string  `bson:"sleepConsistency,omitempty" json:"sleepConsistency,omitempty"`
		PreSleepActivities string  `bson:"preSleepActivities,omitempty" json:"preSleepActivities,omitempty"`
		StressLevels       string  `bson:"stressLevels,omitempty" json:"stressLevels,omitempty"`
		DietaryIntake      string  `bson:"dietaryIntake,omitempty" json:"dietaryIntake,omitempty"`
		PhysicalActivity   string  `bson:"physicalActivity,omitempty" json:"physicalActivity,omitempty"`
		Note               string  `bson:"note,omitempty" json:"note,omitempty"`
	}

	// HydrationData is the hydration payload of a MetricEntry.
	// DailyWaterIntake is in milliliters.
	HydrationData struct {
		Date             string  `bson:"date,omitempty" json:"date,omitempty"`
		DailyWaterIntake float64 `bson:"dailyWaterIntake" json:"dailyWaterIntake"`
		HydrationGoal    float64 `bson:"hydrationGoal,omitempty" json:"hydrationGoal,omitempty"`
		Notes            string  `bson:"notes,omitempty" json:"notes,omitempty"`
	}

	// WeightData is the weight payload of a MetricEntry. Weight is in kg.
	WeightData struct {
		Date              string  `bson:"date,omitempty" json:"date,omitempty"`
		Weight            float64 `bson:"weight" json:"weight"`
		BodyFatPercentage float64 `bson:"bodyFatPercentage,omitempty" json:"bodyFatPercentage,omitempty"`
		Note              string  `bson:"note,omitempty" json:"note,omitempty"`
	}

	// MoodData is the mood payload of a MetricEntry.
	MoodData struct {
		Date        string `bson:"date,omitempty" json:"date,omitempty"`
		MoodStatus  string `bson:"moodStatus" json:"moodStatus"`
		Description string `bson:"description,omitempty" json:"description,omitempty"`
		Notes       string `bson:"notes,omitempty" json:"notes,omitempty"`
	}

	// ActivityData is the activity payload of a MetricEntry.
	ActivityData struct {
		ActivityType   string  `bson:"activityType,omitempty" json:"activityType,omitempty"`
		Duration       float64 `bson:"duration,omitempty" json:"duration,omitempty"`
		CaloriesBurned float64 `bson:"caloriesBurned,omitempty" json:"caloriesBurned,omitempty"`
	}

	// DietaryIntakeData is the dietary intake payload of a MetricEntry.
	DietaryIntakeData struct {
		Date      string  `bson:"date,omitempty" json:"date,omitempty"`
		FoodItem  string  `bson:"foodItem,omitempty" json:"foodItem,omitempty"`
		Quantity  float64 `bson:"quantity,omitempty" json:"quantity,omitempty"`
		Calories  float64 `bson:"calories" json:"calories"`
		MealType  string  `bson:"mealType,omitempty" json:"mealType,omitempty"`
		FoodClass string  `bson:"foodClass,omitempty" json:"foodClass,omitempty"`
		Notes     string  `bson:"notes,omitempty" json:"notes,omitempty"`
	}

	// MetricEntry is one persisted measurement document. Exactly one typed
	// payload is populated, matching MetricType. Value and Date belong to
	// the loose shape used by the generic enrolment route only.
	MetricEntry struct {
		ID         primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
		OwnerID    string             `bson:"ownerId" json:"ownerId"`
		MetricType MetricType         `bson:"metricType" json:"metricType"`

		Steps         *StepsData         `bson:"steps,omitempty" json:"steps,omitempty"`
		Sleep         *SleepData         `bson:"sleep,omitempty" json:"sleep,omitempty"`
		Hydration     *HydrationData     `bson:"hydration,omitempty" json:"hydration,omitempty"`
		Weight        *WeightData        `bson:"weight,omitempty" json:"weight,omitempty"`
		Mood          *MoodData          `bson:"mood,omitempty" json:"mood,omitempty"`
		Activity      *ActivityData      `bson:"activity,omitempty" json:"activity,omitempty"`
		DietaryIntake *DietaryIntakeData `bson:"dietaryIntake,omitempty" json:"dietaryIntake,omitempty"`

		Value interface{} `bson:"value,omitempty" json:"value,omitempty"`
		Date  string      `bson:"date,omitempty" json:"date,omitempty"`

		Recommendations []string  `bson:"recommendations,omitempty" json:"recommendations,omitempty"`
		CreatedAt       time.Time `bson:"createdAt" json:"createdAt"`
		UpdatedAt       time.Time `bson:"updatedAt" json:"updatedAt"`
	}

	// MetricSummary is one row of the admin aggregate view.
	MetricSummary struct {
		MetricType  MetricType `bson:"_id" json:"metricType"`
		EntryCount  int64      `bson:"entryCount" json:"entryCount"`
		OwnerCount  int64      `bson:"ownerCount" json:"ownerCount"`
		LatestEntry time.Time  `bson:"latestEntry" json:"latestEntry"`
	}
)

// DeriveSleepQuality maps hours slept to the entry-time quality value:
// under 6 hours is Poor, 6 to 7.9 is Good, 8 or more is Excellent.
func DeriveSleepQuality(hours float64) string {
	if hours >= 8 {
		return SleepQualityExcellent
	}
	if hours >= 6 {
		return SleepQualityGood
	}
	return SleepQualityPoor
}

// NewMetricEntry builds an entry of the given type for ownerID, decoding the
// submitted raw payload into the matching typed sub-document. Unknown fields
// in the payload are dropped, like a schema-enforcing store would.
func NewMetricEntry(ownerID string, t MetricType, rawPayload json.RawMessage) (*MetricEntry, error) {
	entry := &MetricEntry{
		OwnerID:    ownerID,
		MetricType: t,
	}
	if err := entry.SetPayload(t, rawPayload); err != nil {
		return nil, err
	}
	return entry, nil
}

// SetPayload decodes raw into the typed payload matching t, clearing any
// other payload so exactly one stays populated.
func (e *MetricEntry) SetPayload(t MetricType, raw json.RawMessage) error {
	if !t.Valid() {
		return fmt.Errorf("unknown metric type %q", t)
	}
	e.Steps, e.Sleep, e.Hydration, e.Weight, e.Mood, e.Activity, e.DietaryIntake =
		nil, nil, nil, nil, nil, nil, nil

	var err error
	switch t {
	case MetricTypeSteps:
		payload := &StepsData{}
		err = json.Unmarshal(raw, payload)
		e.Steps = payload
	case MetricTypeSleep:
		payload := &SleepData{}
		err = json.Unmarshal(raw, payload)
		if err == nil && payload.SleepQuality == "" && payload.HoursSlept > 0 {
			payload.SleepQuality = DeriveSleepQuality(payload.HoursSlept)
		}
		e.Sleep = payload
	case MetricTypeHydration:
		payload := &HydrationData{}
		err = json.Unmarshal(raw, payload)
		e.Hydration = payload
	case MetricTypeWeight:
		payload := &WeightData{}
		err = json.Unmarshal(raw, payload)
		e.Weight = payload
	case MetricTypeMood:
		payload := &MoodData{}
		err = json.Unmarshal(raw, payload)
		e.Mood = payload
	case MetricTypeActivity:
		payload := &ActivityData{}
		err = json.Unmarshal(raw, payload)
		e.Activity = payload
	case MetricTypeDietaryIntake:
		payload := &DietaryIntakeData{}
		err = json.Unmarshal(raw, payload)
		e.DietaryIntake = payload
	}
	if err != nil {
		return fmt.Errorf("invalid %s payload: %w", t, err)
	}
	return e.validatePayload()
}

// Payload returns the populated typed payload, or nil for loose documents.
func (e *MetricEntry) Payload() interface{} {
	switch e.MetricType {
	case MetricTypeSteps:
		if e.Steps != nil {
			return e.Steps
		}
	case MetricTypeSleep:
		if e.Sleep != nil {
			return e.Sleep
		}
	case MetricTypeHydration:
		if e.Hydration != nil {
			return e.Hydration
		}
	case MetricTypeWeight:
		if e.Weight != nil {
			return e.Weight
		}
	case MetricTypeMood:
		if e.Mood != nil {
			return e.Mood
		}
	case MetricTypeActivity:
		if e.Activity != nil {
			return e.Activity
		}
	case MetricTypeDietaryIntake:
		if e.DietaryIntake != nil {
			return e.DietaryIntake
		}
	}
	return nil
}

func (e *MetricEntry) validatePayload() error {
	if e.Sleep != nil {
		if err := oneOf("sleepQuality", e.Sleep.SleepQuality, sleepQualities); err != nil {
			return err
		}
		if err := oneOf("sleepConsistency", e.Sleep.SleepConsistency, sleepConsistencies); err != nil {
			return err
		}
		if err := oneOf("stressLevels", e.Sleep.StressLevels, stressLevels); err != nil {
			return err
		}
		if err := oneOf("physicalActivity", e.Sleep.PhysicalActivity, physicalActivities); err != nil {
			return err
		}
	}
	if e.Mood != nil {
		if err := oneOf("moodStatus", e.Mood.MoodStatus, moodStatuses); err != nil {
			return err
		}
	}
	if e.DietaryIntake != nil {
		if err := oneOf("mealType", e.DietaryIntake.MealType, mealTypes); err != nil {
			return err
		}
		if err := oneOf("foodClass", e.DietaryIntake.FoodClass, foodClasses); err != nil {
			return err
		}
	}
	if e.Steps != nil && e.Steps.StepsCount < 0 {
		return fmt.Errorf("stepsCount must not be negative")
	}
	return nil
}

// oneOf validates an optional enum field: empty is allowed, anything else
// must be one of the declared values.
func oneOf(field, value string, allowed []string) error {
	if value == "" {
		return nil
	}
	for _, v := range allowed {
		if value == v {
			return nil
		}
	}
	return fmt.Errorf("%s: %q is not an allowed value", field, value)
}

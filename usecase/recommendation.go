package usecase

import (
	"encoding/json"
	"strings"

	"github.com/luminawell/luminawell-api/schema"
)

// The recommendation engine is pure and stateless: each tracked metric type
// has an ordered rule table evaluated against the submitted payload (not the
// stored document). Matching rules contribute their advice strings in table
// order; the general strings of a table are always appended last. Thresholds
// are business rules and must not be tuned here.

type (
	// SleepInput is the submitted sleep payload as the engine reads it.
	// Numeric fields tolerate string values; anything unparseable is NaN
	// and fails every threshold.
	SleepInput struct {
		HoursSlept         schema.Flex `json:"hoursSlept"`
		SleepQuality       string      `json:"sleepQuality"`
		TimeToFallAsleep   schema.Flex `json:"timeToFallAsleep"`
		Awakenings         schema.Flex `json:"awakenings"`
		TookNap            bool        `json:"tookNap"`
		SleepInterruptions string      `json:"sleepInterruptions"`
		SleepConsistency   string      `json:"sleepConsistency"`
		StressLevels       schema.Flex `json:"stressLevels"`
		DietaryIntake      string      `json:"dietaryIntake"`
		PhysicalActivity   string      `json:"physicalActivity"`
	}

	HydrationInput struct {
		DailyWaterIntake schema.Flex `json:"dailyWaterIntake"`
		Type             string      `json:"type"`
	}

	MoodInput struct {
		MoodStatus string `json:"moodStatus"`
	}

	// DietaryIntakeInput carries the nutrient fields the entry form
	// submits; only part of them end up in the stored payload.
	DietaryIntakeInput struct {
		Calories schema.Flex `json:"calories"`
		Protein  schema.Flex `json:"protein"`
		Carbs    schema.Flex `json:"carbs"`
		Fats     schema.Flex `json:"fats"`
	}
)

type sleepRule struct {
	when   func(SleepInput) bool
	advice []string
}

var sleepRules = []sleepRule{
	{
		when: func(in SleepInput) bool { return float64(in.HoursSlept) < 7 },
		advice: []string{
			"Aim for at least 7-8 hours of sleep per night.",
			"Avoid caffeine and heavy meals close to bedtime.",
			"Stick to a consistent sleep schedule, even on weekends.",
			"Consider taking short naps if necessary, but keep them under 30 minutes.",
		},
	},
	{
		// The entry-time value is title-cased ("Poor"); compare
		// case-insensitively so the rule actually fires.
		when: func(in SleepInput) bool { return strings.EqualFold(in.SleepQuality, "poor") },
		advice: []string{
			"Improve your sleep environment with a comfortable mattress and pillows.",
			"Limit screen time at least an hour before bed.",
			"Ensure your bedroom is cool, dark, and quiet.",
			"Try relaxation techniques such as deep breathing or meditation.",
		},
	},
	{
		when: func(in SleepInput) bool { return float64(in.TimeToFallAsleep) > 30 },
		advice: []string{
			"Establish a calming pre-sleep routine, such as reading or listening to soft music.",
			"Avoid stimulating activities and bright lights before bed.",
			"Consider taking a warm bath or practicing relaxation exercises before going to sleep.",
		},
	},
	{
		when: func(in SleepInput) bool { return float64(in.Awakenings) > 2 },
		advice: []string{
			"Try to identify and address the causes of awakenings, such as noise or light.",
			"Maintain a consistent sleep environment free from disruptions.",
			"Avoid drinking large amounts of fluids before bed to minimize the need to wake up.",
		},
	},
	{
		when: func(in SleepInput) bool { return in.TookNap },
		advice: []string{
			"If you nap during the day, keep it brief and avoid napping too late.",
			"Ensure naps are under 30 minutes to avoid interfering with nighttime sleep.",
		},
	},
	{
		when: func(in SleepInput) bool { return in.SleepInterruptions != "" },
		advice: []string{
			"Minimize disruptions by optimizing your sleep environment (e.g., blackout curtains, white noise).",
			"Consider managing pre-sleep activities to reduce the chance of interruptions.",
		},
	},
	{
		when: func(in SleepInput) bool { return in.SleepConsistency == "inconsistent" },
		advice: []string{
			"Try to maintain a consistent bedtime and wake time, even on weekends.",
			"Avoid irregular sleep patterns by establishing a regular sleep schedule.",
		},
	},
	{
		when: func(in SleepInput) bool { return float64(in.StressLevels) > 5 },
		advice: []string{
			"Incorporate stress management techniques, such as meditation or deep breathing, into your daily routine.",
			"Consider taking time to unwind before bed to reduce stress levels.",
		},
	},
	{
		when: func(in SleepInput) bool { return strings.Contains(in.DietaryIntake, "Heavy meal") },
		advice: []string{
			"Avoid heavy meals close to bedtime to improve sleep quality.",
			"Consider a light snack if you're hungry before bed, like a banana or yogurt.",
		},
	},
	{
		when: func(in SleepInput) bool { return in.PhysicalActivity == "low" },
		advice: []string{
			"Engage in regular physical activity during the day to improve sleep quality.",
			"Even light exercise, such as walking, can help you sleep better at night.",
		},
	},
}

var sleepGeneralAdvice = []string{
	"Maintain a balanced diet and stay hydrated throughout the day.",
	"Manage stress through mindfulness or other stress-reducing activities.",
	"Ensure your sleep environment is conducive to rest.",
}

// SleepRecommendations evaluates the sleep rule table.
func SleepRecommendations(in SleepInput) []string {
	recommendations := []string{}
	for _, rule := range sleepRules {
		if rule.when(in) {
			recommendations = append(recommendations, rule.advice...)
		}
	}
	return append(recommendations, sleepGeneralAdvice...)
}

// HydrationRecommendations evaluates the hydration rule table.
// DailyWaterIntake is in milliliters.
func HydrationRecommendations(in HydrationInput) []string {
	recommendations := []string{}
	if float64(in.DailyWaterIntake) < 2000 {
		recommendations = append(recommendations,
			"Aim to drink at least 2 liters of water per day.",
			"Consider increasing your fluid intake if you are active or in hot climates.",
		)
	}
	if in.Type == "Caffeinated" {
		recommendations = append(recommendations,
			"Limit caffeinated drinks as they can dehydrate you.",
			"Balance your intake with plenty of water.",
		)
	}
	return append(recommendations,
		"Maintain a balanced diet and stay hydrated throughout the day.",
		"Monitor your hydration needs based on your activity levels.",
	)
}

// MoodRecommendations returns exactly three strings per known mood status
// and a single fallback otherwise. No general strings are appended.
func MoodRecommendations(in MoodInput) []string {
	switch in.MoodStatus {
	case schema.MoodSad:
		return []string{
			"Consider speaking with a mental health professional.",
			"Engage in activities that you enjoy.",
			"Connect with friends or family for support.",
		}
	case schema.MoodAnxious:
		return []string{
			"Practice relaxation techniques such as deep breathing.",
			"Engage in regular physical activity.",
			"Consider mindfulness or meditation practices.",
		}
	case schema.MoodHappy:
		return []string{
			"Maintain a gratitude journal to reflect on positive experiences.",
			"Share your happiness with others through acts of kindness.",
			"Engage in activities that continue to bring you joy.",
		}
	case schema.MoodAngry:
		return []string{
			"Take deep breaths and try to calm down before reacting.",
			"Engage in physical activities like exercise to release tension.",
			"Consider talking to someone about what's bothering you.",
		}
	case schema.MoodNeutral:
		return []string{
			"Take time to reflect on your day and identify any triggers.",
			"Engage in activities that you enjoy to boost your mood.",
			"Stay connected with loved ones to maintain a balanced emotional state.",
		}
	default:
		return []string{
			"Continue monitoring your mood and take care of your well-being.",
		}
	}
}

// DietaryIntakeRecommendations evaluates each nutrient threshold
// independently.
func DietaryIntakeRecommendations(in DietaryIntakeInput) []string {
	recommendations := []string{}
	if float64(in.Calories) > 2000 {
		recommendations = append(recommendations,
			"Consider reducing your daily calorie intake to maintain a balanced diet.")
	}
	if float64(in.Protein) < 50 {
		recommendations = append(recommendations,
			"Increase your protein intake to support muscle health.")
	}
	if float64(in.Carbs) > 250 {
		recommendations = append(recommendations,
			"Try to reduce your carbohydrate intake, focusing on complex carbs.")
	}
	if float64(in.Fats) > 70 {
		recommendations = append(recommendations,
			"Limit your intake of saturated fats and focus on healthy fats.")
	}
	return append(recommendations,
		"Maintain a balanced diet with a variety of nutrients.",
		"Stay hydrated and incorporate regular physical activity into your routine.",
	)
}

// RecommendationsFor dispatches on the metric type, decoding the submitted
// raw payload into the matching engine input. Types without a rule table
// (weight, steps, activity) yield nil.
func RecommendationsFor(metricType schema.MetricType, rawPayload json.RawMessage) []string {
	switch metricType {
	case schema.MetricTypeSleep:
		in := SleepInput{
			HoursSlept:       schema.NaNFlex(),
			TimeToFallAsleep: schema.NaNFlex(),
			Awakenings:       schema.NaNFlex(),
			StressLevels:     schema.NaNFlex(),
		}
		_ = json.Unmarshal(rawPayload, &in)
		return SleepRecommendations(in)
	case schema.MetricTypeHydration:
		in := HydrationInput{DailyWaterIntake: schema.NaNFlex()}
		_ = json.Unmarshal(rawPayload, &in)
		return HydrationRecommendations(in)
	case schema.MetricTypeMood:
		in := MoodInput{}
		_ = json.Unmarshal(rawPayload, &in)
		return MoodRecommendations(in)
	case schema.MetricTypeDietaryIntake:
		in := DietaryIntakeInput{
			Calories: schema.NaNFlex(),
			Protein:  schema.NaNFlex(),
			Carbs:    schema.NaNFlex(),
			Fats:     schema.NaNFlex(),
		}
		_ = json.Unmarshal(rawPayload, &in)
		return DietaryIntakeRecommendations(in)
	}
	return nil
}

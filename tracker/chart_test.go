package tracker

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/luminawell/luminawell-api/schema"
)

func TestSeriesPrimaryFields(t *testing.T) {
	entries := []schema.MetricEntry{
		{MetricType: schema.MetricTypeSleep, Sleep: &schema.SleepData{Date: "2026-08-01", HoursSlept: 7.5}},
		{MetricType: schema.MetricTypeSleep, Sleep: &schema.SleepData{Date: "2026-08-02", HoursSlept: 6}},
	}
	points := Series(entries, schema.MetricTypeSleep)
	assert.Equal(t, []ChartPoint{
		{Date: "2026-08-01", Value: 7.5},
		{Date: "2026-08-02", Value: 6},
	}, points)
}

func TestSeriesMoodOrdinals(t *testing.T) {
	entries := []schema.MetricEntry{
		{MetricType: schema.MetricTypeMood, Mood: &schema.MoodData{Date: "d1", MoodStatus: schema.MoodSad}},
		{MetricType: schema.MetricTypeMood, Mood: &schema.MoodData{Date: "d2", MoodStatus: schema.MoodAngry}},
		{MetricType: schema.MetricTypeMood, Mood: &schema.MoodData{Date: "d3", MoodStatus: schema.MoodAnxious}},
		{MetricType: schema.MetricTypeMood, Mood: &schema.MoodData{Date: "d4", MoodStatus: schema.MoodNeutral}},
		{MetricType: schema.MetricTypeMood, Mood: &schema.MoodData{Date: "d5", MoodStatus: schema.MoodHappy}},
	}
	points := Series(entries, schema.MetricTypeMood)
	values := []float64{}
	for _, point := range points {
		values = append(values, point.Value)
	}
	assert.Equal(t, []float64{1, 2, 3, 4, 5}, values)
}

func TestSeriesSkipsEntriesWithoutPayload(t *testing.T) {
	entries := []schema.MetricEntry{
		{MetricType: schema.MetricTypeWeight, Weight: &schema.WeightData{Date: "d1", Weight: 80}},
		{MetricType: schema.MetricTypeWeight, Value: 90, Date: "d2"}, // loose document
	}
	points := Series(entries, schema.MetricTypeWeight)
	assert.Len(t, points, 1)
}

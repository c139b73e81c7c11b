package tracker

import (
	"github.com/luminawell/luminawell-api/schema"
)

// ChartPoint is one point of a tracker chart: the entry date against the
// type's primary numeric field.
type ChartPoint struct {
	Date  string
	Value float64
}

// moodOrdinals maps the mood enumeration onto the chart scale.
var moodOrdinals = map[string]float64{
	schema.MoodSad:     1,
	schema.MoodAngry:   2,
	schema.MoodAnxious: 3,
	schema.MoodNeutral: 4,
	schema.MoodHappy:   5,
}

// Series derives the chart series from a fetched list. It is recomputed on
// every read; entries without the typed payload are skipped.
func Series(entries []schema.MetricEntry, metricType schema.MetricType) []ChartPoint {
	points := []ChartPoint{}
	for i := range entries {
		point, ok := chartPoint(&entries[i], metricType)
		if ok {
			points = append(points, point)
		}
	}
	return points
}

func chartPoint(entry *schema.MetricEntry, metricType schema.MetricType) (ChartPoint, bool) {
	switch metricType {
	case schema.MetricTypeSleep:
		if entry.Sleep != nil {
			return ChartPoint{Date: entry.Sleep.Date, Value: entry.Sleep.HoursSlept}, true
		}
	case schema.MetricTypeHydration:
		if entry.Hydration != nil {
			return ChartPoint{Date: entry.Hydration.Date, Value: entry.Hydration.DailyWaterIntake}, true
		}
	case schema.MetricTypeWeight:
		if entry.Weight != nil {
			return ChartPoint{Date: entry.Weight.Date, Value: entry.Weight.Weight}, true
		}
	case schema.MetricTypeSteps:
		if entry.Steps != nil {
			return ChartPoint{Date: entry.Steps.Date, Value: float64(entry.Steps.StepsCount)}, true
		}
	case schema.MetricTypeMood:
		if entry.Mood != nil {
			ordinal, known := moodOrdinals[entry.Mood.MoodStatus]
			if known {
				return ChartPoint{Date: entry.Mood.Date, Value: ordinal}, true
			}
		}
	case schema.MetricTypeDietaryIntake:
		if entry.DietaryIntake != nil {
			return ChartPoint{Date: entry.DietaryIntake.Date, Value: entry.DietaryIntake.Calories}, true
		}
	}
	return ChartPoint{}, false
}

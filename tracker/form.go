package tracker

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/luminawell/luminawell-api/schema"
)

// FieldKind drives parsing and validation of one form field.
type FieldKind int

const (
	FieldText FieldKind = iota
	FieldNumber
	FieldInt
	FieldBool
)

// FieldSpec describes one form field of a tracker: the payload field name,
// how to parse it and its default value when the form opens.
type FieldSpec struct {
	Name    string
	Kind    FieldKind
	Default string
}

// formSpecs holds the form descriptor of every tracked metric type. The six
// trackers share one engine parameterized by these tables.
var formSpecs = map[schema.MetricType][]FieldSpec{
	schema.MetricTypeSleep: {
		{Name: "date", Kind: FieldText},
		{Name: "time", Kind: FieldText},
		{Name: "hoursSlept", Kind: FieldNumber},
		{Name: "bedtime", Kind: FieldText},
		{Name: "wakeTime", Kind: FieldText},
		{Name: "timeToFallAsleep", Kind: FieldNumber},
		{Name: "awakenings", Kind: FieldInt},
		{Name: "tookNap", Kind: FieldBool, Default: "false"},
		{Name: "sleepInterruptions", Kind: FieldText},
		{Name: "sleepConsistency", Kind: FieldText},
		{Name: "preSleepActivities", Kind: FieldText},
		{Name: "stressLevels", Kind: FieldText},
		{Name: "dietaryIntake", Kind: FieldText},
		{Name: "physicalActivity", Kind: FieldText},
		{Name: "note", Kind: FieldText},
	},
	schema.MetricTypeHydration: {
		{Name: "date", Kind: FieldText},
		{Name: "dailyWaterIntake", Kind: FieldNumber},
		{Name: "hydrationGoal", Kind: FieldNumber},
		{Name: "notes", Kind: FieldText},
	},
	schema.MetricTypeMood: {
		{Name: "date", Kind: FieldText},
		{Name: "moodStatus", Kind: FieldText},
		{Name: "description", Kind: FieldText},
		{Name: "notes", Kind: FieldText},
	},
	schema.MetricTypeWeight: {
		{Name: "date", Kind: FieldText},
		{Name: "weight", Kind: FieldNumber},
		{Name: "bodyFatPercentage", Kind: FieldNumber},
		{Name: "note", Kind: FieldText},
	},
	schema.MetricTypeSteps: {
		{Name: "date", Kind: FieldText},
		{Name: "stepsCount", Kind: FieldInt},
		{Name: "distance", Kind: FieldNumber},
		{Name: "caloriesBurned", Kind: FieldNumber},
		{Name: "timeOfDay", Kind: FieldText},
		{Name: "notes", Kind: FieldText},
	},
	schema.MetricTypeDietaryIntake: {
		{Name: "date", Kind: FieldText},
		{Name: "foodItem", Kind: FieldText},
		{Name: "quantity", Kind: FieldNumber},
		{Name: "calories", Kind: FieldNumber},
		{Name: "mealType", Kind: FieldText},
		{Name: "foodClass", Kind: FieldText},
		{Name: "notes", Kind: FieldText},
	},
}

// defaultForm builds the initial field values of a spec.
func defaultForm(spec []FieldSpec) map[string]string {
	form := make(map[string]string, len(spec))
	for _, field := range spec {
		form[field.Name] = field.Default
	}
	return form
}

// parseForm converts the raw field values into a typed payload object.
// An unparseable numeric field aborts the whole submission.
func parseForm(spec []FieldSpec, form map[string]string) (map[string]interface{}, error) {
	payload := make(map[string]interface{}, len(spec))
	for _, field := range spec {
		value := form[field.Name]
		if value == "" {
			continue
		}
		switch field.Kind {
		case FieldNumber:
			parsed, err := strconv.ParseFloat(value, 64)
			if err != nil {
				return nil, fmt.Errorf("field %s: %q is not a number", field.Name, value)
			}
			payload[field.Name] = parsed
		case FieldInt:
			parsed, err := strconv.Atoi(value)
			if err != nil {
				return nil, fmt.Errorf("field %s: %q is not an integer", field.Name, value)
			}
			payload[field.Name] = parsed
		case FieldBool:
			payload[field.Name] = value == "true"
		default:
			payload[field.Name] = value
		}
	}
	return payload, nil
}

// formFromPayload fills the field values from a stored payload, for the
// detail view.
func formFromPayload(spec []FieldSpec, payload interface{}) (map[string]string, error) {
	raw, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	var decoded map[string]interface{}
	if err := json.Unmarshal(raw, &decoded); err != nil {
		return nil, err
	}
	form := defaultForm(spec)
	for _, field := range spec {
		value, ok := decoded[field.Name]
		if !ok {
			continue
		}
		switch v := value.(type) {
		case string:
			form[field.Name] = v
		case float64:
			form[field.Name] = strconv.FormatFloat(v, 'f', -1, 64)
		case bool:
			form[field.Name] = strconv.FormatBool(v)
		}
	}
	return form, nil
}

package tracker

import (
	"context"
	"fmt"
	"log"

	"github.com/luminawell/luminawell-api/client"
	"github.com/luminawell/luminawell-api/schema"
)

// Mode is the view state of a tracker.
type Mode int

const (
	ModeIdle Mode = iota
	ModeForm
	ModeDetail
	ModeConfirmDelete
	ModeRecommendations
)

// engineTypes are the metric types with a recommendation engine; creating an
// entry for one of them transitions to the recommendations view.
var engineTypes = []schema.MetricType{
	schema.MetricTypeSleep,
	schema.MetricTypeHydration,
	schema.MetricTypeMood,
	schema.MetricTypeDietaryIntake,
}

func hasEngine(t schema.MetricType) bool {
	for _, engineType := range engineTypes {
		if t == engineType {
			return true
		}
	}
	return false
}

// Tracker is the view state machine of one metric type. All six trackers
// share this engine, parameterized by the type's form descriptor.
//
//	idle -> form -> idle
//	idle -> detail -> idle
//	detail -> confirmDelete -> idle
//	form -> recommendations -> idle (engine types only)
type Tracker struct {
	slice  *client.MetricSlice
	spec   []FieldSpec
	logger *log.Logger

	mode            Mode
	form            map[string]string
	editable        map[string]bool
	detailID        string
	recommendations []string
}

func NewTracker(slice *client.MetricSlice, logger *log.Logger) (*Tracker, error) {
	spec, ok := formSpecs[slice.MetricType()]
	if !ok {
		return nil, fmt.Errorf("no tracker for metric type %q", slice.MetricType())
	}
	return &Tracker{
		slice:  slice,
		spec:   spec,
		logger: logger,
		mode:   ModeIdle,
		form:   defaultForm(spec),
	}, nil
}

func (t *Tracker) Mode() Mode {
	return t.mode
}

func (t *Tracker) Slice() *client.MetricSlice {
	return t.slice
}

func (t *Tracker) Recommendations() []string {
	return t.recommendations
}

// Field returns the current value of one form field.
func (t *Tracker) Field(name string) string {
	return t.form[name]
}

// SetField writes a form field. In the detail view only fields toggled
// editable accept a write.
func (t *Tracker) SetField(name string, value string) {
	if _, ok := t.form[name]; !ok {
		return
	}
	if (t.mode == ModeDetail || t.mode == ModeConfirmDelete) && !t.editable[name] {
		return
	}
	t.form[name] = value
}

// Editable reports whether a detail-view field is toggled writable.
func (t *Tracker) Editable(name string) bool {
	return t.editable[name]
}

// ToggleEdit flips the read-only/writable rendering of one field. The value
// itself is untouched.
func (t *Tracker) ToggleEdit(name string) {
	if t.mode != ModeDetail {
		return
	}
	t.editable[name] = !t.editable[name]
}

// OpenForm enters the entry form, resetting every field to its default.
func (t *Tracker) OpenForm() {
	if t.mode != ModeIdle {
		return
	}
	t.form = defaultForm(t.spec)
	t.mode = ModeForm
}

// CloseForm abandons the entry form.
func (t *Tracker) CloseForm() {
	if t.mode != ModeForm {
		return
	}
	t.mode = ModeIdle
}

// Submit parses the form and creates the entry. An invalid numeric field
// aborts the submission with a logged error only; the form stays open. On
// success the list is refetched and engine types transition to the
// recommendations view.
func (t *Tracker) Submit(ctx context.Context) {
	if t.mode != ModeForm {
		return
	}
	payload, err := parseForm(t.spec, t.form)
	if err != nil {
		t.logger.Printf("%s tracker: submit aborted: %v", t.slice.MetricType(), err)
		return
	}
	entry, err := t.slice.Create(ctx, payload)
	if err != nil {
		t.logger.Printf("%s tracker: create failed: %v", t.slice.MetricType(), err)
		return
	}
	if hasEngine(t.slice.MetricType()) {
		t.recommendations = entry.Recommendations
		t.mode = ModeRecommendations
		return
	}
	t.mode = ModeIdle
}

// CloseRecommendations returns to the list after the recommendations view.
func (t *Tracker) CloseRecommendations() {
	if t.mode != ModeRecommendations {
		return
	}
	t.recommendations = nil
	t.mode = ModeIdle
}

// OpenDetail enters the view/edit modal for one fetched entry. All fields
// start read-only.
func (t *Tracker) OpenDetail(id string) {
	if t.mode != ModeIdle {
		return
	}
	entry := t.slice.Get(id)
	if entry == nil {
		t.logger.Printf("%s tracker: no fetched entry with id %s", t.slice.MetricType(), id)
		return
	}
	form, err := formFromPayload(t.spec, entry.Payload())
	if err != nil {
		t.logger.Printf("%s tracker: cannot open entry %s: %v", t.slice.MetricType(), id, err)
		return
	}
	t.form = form
	t.editable = make(map[string]bool, len(t.spec))
	t.detailID = id
	t.mode = ModeDetail
}

// CloseDetail abandons the detail view.
func (t *Tracker) CloseDetail() {
	if t.mode != ModeDetail {
		return
	}
	t.detailID = ""
	t.editable = nil
	t.mode = ModeIdle
}

// SubmitEdit sends the whole form object as the replacement payload,
// untouched fields included. The list is refetched on success.
func (t *Tracker) SubmitEdit(ctx context.Context) {
	if t.mode != ModeDetail {
		return
	}
	payload, err := parseForm(t.spec, t.form)
	if err != nil {
		t.logger.Printf("%s tracker: edit aborted: %v", t.slice.MetricType(), err)
		return
	}
	if _, err := t.slice.Update(ctx, t.detailID, payload); err != nil {
		t.logger.Printf("%s tracker: update failed: %v", t.slice.MetricType(), err)
		return
	}
	t.detailID = ""
	t.editable = nil
	t.mode = ModeIdle
}

// RequestDelete opens the nested delete confirmation.
func (t *Tracker) RequestDelete() {
	if t.mode != ModeDetail {
		return
	}
	t.mode = ModeConfirmDelete
}

// CancelDelete returns to the detail view.
func (t *Tracker) CancelDelete() {
	if t.mode != ModeConfirmDelete {
		return
	}
	t.mode = ModeDetail
}

// ConfirmDelete removes the entry and closes every modal.
func (t *Tracker) ConfirmDelete(ctx context.Context) {
	if t.mode != ModeConfirmDelete {
		return
	}
	if err := t.slice.Delete(ctx, t.detailID); err != nil {
		t.logger.Printf("%s tracker: delete failed: %v", t.slice.MetricType(), err)
	}
	t.detailID = ""
	t.editable = nil
	t.mode = ModeIdle
}

package wizard

import (
	"encoding/json"
	"sync"
	"time"

	"groupstays/internal/domain/listing"
)

// Session is one owner's wizard in progress. Fields are guarded by mu;
// busy is set while a save or publish is talking to the API.
type Session struct {
	ID        string
	OwnerID   int64
	CreatedAt time.Time

	mu         sync.Mutex
	busy       bool
	draft      *listing.Draft
	nav        *listing.Navigator
	propertyID string
	purchase   *listing.Purchase
	redirect   string
}

func newSession(id string, ownerID int64, d *listing.Draft, now time.Time) *Session {
	return &Session{
		ID:        id,
		OwnerID:   ownerID,
		CreatedAt: now,
		draft:     d,
		nav:       listing.NewNavigator(d),
	}
}

// edit runs fn under the session lock unless a submission is in flight.
func (s *Session) edit(fn func() error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.busy {
		return busyError()
	}
	return fn()
}

func (s *Session) begin() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.busy {
		return false
	}
	s.busy = true
	return true
}

func (s *Session) end() {
	s.mu.Lock()
	s.busy = false
	s.mu.Unlock()
}

// View is the session as the portal returns it. Notices are drained by
// building a view.
type View struct {
	ID             string                `json:"id"`
	Step           listing.Step          `json:"step"`
	StepName       string                `json:"stepName"`
	ReachableSteps []listing.Step        `json:"reachableSteps"`
	Draft          json.RawMessage       `json:"draft"`
	Errors         map[string]string     `json:"errors"`
	Warnings       map[string]string     `json:"warnings"`
	Notices        []listing.Notice      `json:"notices"`
	Images         []string              `json:"images"`
	Hero           string                `json:"hero"`
	PropertyID     string                `json:"propertyId,omitempty"`
	PlanID         string                `json:"planId,omitempty"`
	Busy           bool                  `json:"busy"`
	Redirect       string                `json:"redirect,omitempty"`
	Report         *listing.IngestReport `json:"report,omitempty"`
}

func (s *Session) view() *View {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.viewLocked()
}

func (s *Session) viewLocked() *View {
	reach := make([]listing.Step, 0, listing.StepCount)
	for k := listing.StepEssentials; k <= listing.StepSEO; k++ {
		if listing.CanAdvance(s.draft, k) {
			reach = append(reach, k)
		}
	}
	draft, _ := json.Marshal(s.draft)
	v := &View{
		ID:             s.ID,
		Step:           s.nav.Step(),
		StepName:       s.nav.Step().String(),
		ReachableSteps: reach,
		Draft:          draft,
		Errors:         s.draft.Errors(),
		Warnings:       listing.SoftWarnings(s.draft),
		Notices:        s.nav.TakeNotices(),
		Images:         s.draft.Media.Images(),
		Hero:           s.draft.Media.Hero(),
		PropertyID:     s.propertyID,
		Busy:           s.busy,
		Redirect:       s.redirect,
	}
	if s.purchase != nil {
		v.PlanID = s.purchase.PlanID
	}
	return v
}

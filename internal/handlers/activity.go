package handlers

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log"
	"net/mail"
	"strings"
	"sync"

	"github.com/danielgtaylor/huma/v2"
	"github.com/gdg-garage/school-activities-api/internal/export"
	"github.com/gdg-garage/school-activities-api/internal/notifier"
	"github.com/gdg-garage/school-activities-api/internal/observability"
	"github.com/gdg-garage/school-activities-api/internal/store"
)

type ActivityHandler struct {
	store    *store.Store
	notifier notifier.Notifier
	pending  sync.WaitGroup
}

// NewActivityHandler wires the handler to the store. notifier may be nil.
func NewActivityHandler(store *store.Store, notifier notifier.Notifier) *ActivityHandler {
	return &ActivityHandler{store: store, notifier: notifier}
}

type ActivityResponse struct {
	ID              uint     `json:"id"`
	Name            string   `json:"name"`
	Description     string   `json:"description"`
	Schedule        string   `json:"schedule"`
	MaxParticipants *int     `json:"max_participants" doc:"Capacity, null when unlimited"`
	Participants    []string `json:"participants" doc:"Emails of signed up students"`
}

type ListActivitiesResponse struct {
	Body []ActivityResponse
}

func (h *ActivityHandler) HandleList(ctx context.Context, input *struct{}) (*ListActivitiesResponse, error) {
	activities, err := h.store.ListActivities(ctx)
	if err != nil {
		return nil, huma.Error500InternalServerError("Failed to list activities: " + err.Error())
	}

	res := &ListActivitiesResponse{Body: make([]ActivityResponse, 0, len(activities))}
	for _, a := range activities {
		res.Body = append(res.Body, ActivityResponse{
			ID:              a.ID,
			Name:            a.Name,
			Description:     a.Description,
			Schedule:        a.Schedule,
			MaxParticipants: a.MaxParticipants,
			Participants:    a.Emails(),
		})
	}
	return res, nil
}

type MembershipRequest struct {
	Name  string `path:"name" doc:"Exact activity name"`
	Email string `query:"email" required:"true" minLength:"1" doc:"Student email"`
}

// normalizeEmail trims the input and reduces a "Name <addr>" form to the bare
// address. Strings that do not parse as an address are kept as given.
func normalizeEmail(raw string) (string, error) {
	email := strings.TrimSpace(raw)
	if email == "" {
		return "", huma.Error400BadRequest("Email is required")
	}
	if addr, err := mail.ParseAddress(email); err == nil {
		return addr.Address, nil
	}
	return email, nil
}

type SignupResponse struct {
	Body struct {
		Message       string `json:"message"`
		ParticipantID uint   `json:"participant_id"`
	}
}

func (h *ActivityHandler) HandleSignup(ctx context.Context, input *MembershipRequest) (*SignupResponse, error) {
	email, err := normalizeEmail(input.Email)
	if err != nil {
		return nil, err
	}

	participant, err := h.store.SignUp(ctx, input.Name, email)
	if err != nil {
		outcome, herr := membershipError(err, "Failed to sign up")
		observability.RecordSignup(outcome)
		return nil, herr
	}
	observability.RecordSignup(observability.OutcomeOK)

	h.notify(func(n notifier.Notifier) error { return n.NotifySignup(input.Name, email) })

	res := &SignupResponse{}
	res.Body.Message = fmt.Sprintf("Signed up %s for %s", email, input.Name)
	res.Body.ParticipantID = participant.ID
	return res, nil
}

type UnregisterResponse struct {
	Body struct {
		Message string `json:"message"`
	}
}

func (h *ActivityHandler) HandleUnregister(ctx context.Context, input *MembershipRequest) (*UnregisterResponse, error) {
	email, err := normalizeEmail(input.Email)
	if err != nil {
		return nil, err
	}

	if err := h.store.Unregister(ctx, input.Name, email); err != nil {
		outcome, herr := membershipError(err, "Failed to unregister")
		observability.RecordUnregistration(outcome)
		return nil, herr
	}
	observability.RecordUnregistration(observability.OutcomeOK)

	h.notify(func(n notifier.Notifier) error { return n.NotifyUnregister(input.Name, email) })

	res := &UnregisterResponse{}
	res.Body.Message = fmt.Sprintf("Unregistered %s from %s", email, input.Name)
	return res, nil
}

type ExportResponse struct {
	ContentType        string `header:"Content-Type"`
	ContentDisposition string `header:"Content-Disposition"`
	Body               []byte
}

func (h *ActivityHandler) HandleExport(ctx context.Context, input *struct{}) (*ExportResponse, error) {
	activities, err := h.store.ListActivities(ctx)
	if err != nil {
		return nil, huma.Error500InternalServerError("Failed to list activities: " + err.Error())
	}

	var buf bytes.Buffer
	if err := export.WriteRoster(&buf, activities); err != nil {
		return nil, huma.Error500InternalServerError("Failed to build roster: " + err.Error())
	}

	return &ExportResponse{
		ContentType:        export.ContentType,
		ContentDisposition: `attachment; filename="activities.xlsx"`,
		Body:               buf.Bytes(),
	}, nil
}

// notify sends in the background so a slow notifier never delays the response.
func (h *ActivityHandler) notify(send func(notifier.Notifier) error) {
	if h.notifier == nil {
		return
	}
	h.pending.Add(1)
	go func() {
		defer h.pending.Done()
		if err := send(h.notifier); err != nil {
			log.Printf("Failed to send notification: %v", err)
		}
	}()
}

// Wait blocks until in-flight notifications have finished.
func (h *ActivityHandler) Wait() {
	h.pending.Wait()
}

// membershipError maps store errors to a metrics outcome and an HTTP error.
func membershipError(err error, fallback string) (string, error) {
	switch {
	case errors.Is(err, store.ErrActivityNotFound):
		return observability.OutcomeNotFound, huma.Error404NotFound("Activity not found")
	case errors.Is(err, store.ErrAlreadySignedUp):
		return observability.OutcomeAlreadySignedUp, huma.Error400BadRequest("Student is already signed up")
	case errors.Is(err, store.ErrActivityFull):
		return observability.OutcomeFull, huma.Error400BadRequest("Activity is full")
	case errors.Is(err, store.ErrNotSignedUp):
		return observability.OutcomeNotSignedUp, huma.Error400BadRequest("Student is not signed up for this activity")
	default:
		return observability.OutcomeError, huma.Error500InternalServerError(fallback + ": " + err.Error())
	}
}

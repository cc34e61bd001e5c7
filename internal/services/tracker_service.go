package services

import (
	"context"
	"sync"
	"time"

	"github.com/periodpain/pain-helper/internal/apiclient"
	"github.com/periodpain/pain-helper/internal/domain"
	apperrors "github.com/periodpain/pain-helper/internal/errors"
	"github.com/periodpain/pain-helper/internal/logger"
)

// FormKind identifies which of the two submission forms a state
// machine belongs to.
type FormKind string

const (
	FormPain      FormKind = "pain"
	FormLifestyle FormKind = "lifestyle"
)

// SubmissionPhase is the lifecycle of one form: idle -> submitting ->
// back to idle with a notice reflecting the settled outcome.
type SubmissionPhase string

const (
	PhaseIdle       SubmissionPhase = "idle"
	PhaseSubmitting SubmissionPhase = "submitting"
)

// successNoticeTTL is how long a success notice stays visible. Error
// notices never expire on their own.
const successNoticeTTL = 3 * time.Second

// ErrSubmissionInFlight is returned when a form is re-submitted while a
// previous submission has not settled. This guard is the only
// duplicate-prevention mechanism; the backend has no idempotency
// guarantee, so a second device can still produce duplicates.
var ErrSubmissionInFlight = apperrors.NewValidationError("a submission is already in progress")

// Notice is transient user feedback for a settled submission.
type Notice struct {
	Text    string
	IsError bool
}

type formKey struct {
	installationID int64
	kind           FormKind
}

type formState struct {
	phase     SubmissionPhase
	notice    *Notice
	noticeSeq uint64
}

// TrackerService manages the request lifecycle for creating pain and
// lifestyle records: one state machine per (installation, form) pair.
type TrackerService struct {
	api       *apiclient.Client
	noticeTTL time.Duration

	mu    sync.Mutex
	forms map[formKey]*formState
}

// NewTrackerService creates the submission workflow service.
func NewTrackerService(api *apiclient.Client) *TrackerService {
	return &TrackerService{
		api:       api,
		noticeTTL: successNoticeTTL,
		forms:     make(map[formKey]*formState),
	}
}

// SubmitPainEntry runs one pain entry submission through the state
// machine and returns the server-assigned entry id on success.
func (s *TrackerService) SubmitPainEntry(ctx context.Context, installationID int64, userID string, entry domain.PainEntryInput) (string, error) {
	return s.submit(ctx, installationID, FormPain, func() (string, error) {
		return s.api.CreatePainEntry(ctx, userID, entry)
	})
}

// SubmitLifestyleEntry runs one lifestyle entry submission through the
// state machine.
func (s *TrackerService) SubmitLifestyleEntry(ctx context.Context, installationID int64, userID string, entry domain.LifestyleEntryInput) (string, error) {
	return s.submit(ctx, installationID, FormLifestyle, func() (string, error) {
		return s.api.CreateLifestyleEntry(ctx, userID, entry)
	})
}

func (s *TrackerService) submit(ctx context.Context, installationID int64, kind FormKind, call func() (string, error)) (string, error) {
	key := formKey{installationID: installationID, kind: kind}

	s.mu.Lock()
	fs := s.form(key)
	if fs.phase == PhaseSubmitting {
		s.mu.Unlock()
		return "", ErrSubmissionInFlight
	}
	fs.phase = PhaseSubmitting
	s.mu.Unlock()

	entryID, err := call()

	s.mu.Lock()
	defer s.mu.Unlock()
	fs.phase = PhaseIdle

	if err != nil {
		fs.notice = &Notice{Text: "✗ Error: " + userMessage(err), IsError: true}
		fs.noticeSeq++
		logger.Error("Entry submission failed", "form", kind, "error", err)
		return "", apperrors.NewRemoteError(err, string(kind)+" entry submission")
	}

	fs.notice = &Notice{Text: "✓ Entry recorded successfully! ID: " + entryID}
	fs.noticeSeq++
	s.expireNotice(key, fs.noticeSeq)
	logger.Info("Entry recorded", "form", kind, "entry_id", entryID)
	return entryID, nil
}

// expireNotice clears a success notice after the TTL unless a newer
// notice has replaced it in the meantime. Callers must hold s.mu.
func (s *TrackerService) expireNotice(key formKey, seq uint64) {
	time.AfterFunc(s.noticeTTL, func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		fs, ok := s.forms[key]
		if !ok || fs.noticeSeq != seq {
			return
		}
		fs.notice = nil
	})
}

// Phase reports the current lifecycle phase of a form.
func (s *TrackerService) Phase(installationID int64, kind FormKind) SubmissionPhase {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.form(formKey{installationID: installationID, kind: kind}).phase
}

// Notice returns the visible notice for a form, or nil when there is
// none (either never settled or the success notice already expired).
func (s *TrackerService) Notice(installationID int64, kind FormKind) *Notice {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := s.form(formKey{installationID: installationID, kind: kind}).notice
	if n == nil {
		return nil
	}
	copied := *n
	return &copied
}

func (s *TrackerService) form(key formKey) *formState {
	fs, ok := s.forms[key]
	if !ok {
		fs = &formState{phase: PhaseIdle}
		s.forms[key] = fs
	}
	return fs
}

// userMessage converts a gateway failure into the string shown to the
// user: the server-reported detail verbatim when a response arrived,
// otherwise a generic transport message.
func userMessage(err error) string {
	if remote, ok := apiclient.AsRemoteError(err); ok {
		return remote.Message
	}
	return "could not reach the server, please try again"
}

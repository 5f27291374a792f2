// README: Conversation service: classify, call the planner backend, reconcile.
package conversation

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"voyage/internal/intent"
	"voyage/internal/logger"
	"voyage/internal/planner"
)

var (
	ErrEmptyMessage = errors.New("message is empty")
	ErrNoItinerary  = errors.New("session has no itinerary")
)

const greeting = `👋 Hi! I'm your AI travel planner. Tell me about your dream trip! For example: "Plan a 3-day trip to Jaipur. I like food and culture, relaxed pace."`

const resetMessage = "Let's start fresh! Tell me about your next trip."

const gatewayFailureMessage = "I couldn't reach the trip planner. Make sure the backend is running and try again."

// Banner errors clear themselves shortly after they appear.
const errorClearDelay = 3 * time.Second

// Speaker voices assistant replies. Nil means speech output is disabled.
type Speaker interface {
	Speak(text string)
}

// Snapshotter persists whole sessions so a restarted process can resume them.
type Snapshotter interface {
	Save(ctx context.Context, st State) error
	Load(ctx context.Context, id string) (*State, error)
}

// Service drives a session through one exchange at a time. The snapshot and
// archive stores are optional; when nil those concerns are simply off.
type Service struct {
	store     *Store
	gateway   *planner.Client
	snapshots Snapshotter
	archive   *ArchiveStore
	speaker   Speaker
	log       *logger.Logger
}

func NewService(store *Store, gateway *planner.Client, snapshots Snapshotter, archive *ArchiveStore, speaker Speaker, log *logger.Logger) *Service {
	return &Service{
		store:     store,
		gateway:   gateway,
		snapshots: snapshots,
		archive:   archive,
		speaker:   speaker,
		log:       log,
	}
}

// CreateSession opens a new session seeded with the assistant greeting.
func (s *Service) CreateSession(ctx context.Context) State {
	now := time.Now()
	st := &State{
		ID:        uuid.NewString(),
		CreatedAt: now,
		UpdatedAt: now,
	}
	st.appendMessage(RoleAssistant, greeting)
	s.store.Put(st)

	view := snapshot(st)
	s.persist(ctx, view, st.Messages...)
	return view
}

func (s *Service) Get(ctx context.Context, id string) (State, error) {
	if err := s.ensure(ctx, id); err != nil {
		return State{}, err
	}
	return s.store.View(id)
}

// ensure rehydrates a session from its snapshot when the live store misses,
// so sessions survive a process restart. A store hit is the common case.
func (s *Service) ensure(ctx context.Context, id string) error {
	if _, err := s.store.View(id); err == nil {
		return nil
	}
	if s.snapshots == nil {
		return ErrNotFound
	}
	st, err := s.snapshots.Load(ctx, id)
	if err != nil {
		return err
	}
	s.store.Put(st)
	s.log.Info("session restored from snapshot", "session", id)
	return nil
}

// SendMessage runs one full exchange: classify the text, call the backend,
// fold the response into the session. At most one exchange runs per session;
// concurrent calls get ErrBusy.
func (s *Service) SendMessage(ctx context.Context, id, text string) (State, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return State{}, ErrEmptyMessage
	}
	if err := s.ensure(ctx, id); err != nil {
		return State{}, err
	}

	release, err := s.store.Acquire(id)
	if err != nil {
		return State{}, err
	}
	defer release()

	var userMsg Message
	var kind intent.Kind
	_, err = s.store.Update(id, func(st *State) {
		kind = intent.Classify(text, st.HasItinerary())
		userMsg = st.appendMessage(RoleUser, text)
		st.IsLoading = true
		st.LastError = ""
		st.errGen++
	})
	if err != nil {
		return State{}, err
	}
	s.log.Info("message classified", "session", id, "kind", kind)

	// The backend call happens outside the session lock.
	resp, sendErr := s.gateway.Send(ctx, kind, text)

	var assistantMsg Message
	view, err := s.store.Update(id, func(st *State) {
		st.IsLoading = false
		if sendErr != nil {
			assistantMsg = st.appendMessage(RoleAssistant, gatewayFailureMessage)
			s.flagError(st, sendErr.Error())
			return
		}
		content := Reconcile(resp, st)
		assistantMsg = Message{Role: RoleAssistant, Content: content, Timestamp: st.UpdatedAt}
	})
	if err != nil {
		return State{}, err
	}
	if sendErr != nil {
		s.log.Warn("planner call failed", "session", id, "kind", kind, "err", sendErr)
	}

	if s.speaker != nil && sendErr == nil {
		s.speaker.Speak(assistantMsg.Content)
	}
	s.persist(ctx, view, userMsg, assistantMsg)
	return view, nil
}

// flagError surfaces a transient error banner and schedules its removal.
// A newer error supersedes the pending clear.
func (s *Service) flagError(st *State, msg string) {
	st.LastError = msg
	st.errGen++
	gen := st.errGen
	id := st.ID
	time.AfterFunc(errorClearDelay, func() {
		_, _ = s.store.Update(id, func(cur *State) {
			if cur.errGen == gen {
				cur.LastError = ""
			}
		})
	})
}

// NoteRecognitionError surfaces a speech engine failure as the same
// transient auto-clearing banner used for gateway errors. Speech hosts wire
// this into the adapter's error sink.
func (s *Service) NoteRecognitionError(id, msg string) (State, error) {
	return s.store.Update(id, func(cur *State) {
		s.flagError(cur, msg)
	})
}

// SendEmail delivers the itinerary PDF through the backend. The email modal
// stays open on failure so the user can correct and retry.
func (s *Service) SendEmail(ctx context.Context, id string, recipients []string, subject string) (State, error) {
	if err := s.ensure(ctx, id); err != nil {
		return State{}, err
	}
	st, err := s.store.View(id)
	if err != nil {
		return State{}, err
	}
	if !st.HasItinerary() {
		return State{}, ErrNoItinerary
	}

	if _, err := s.store.Update(id, func(cur *State) {
		cur.EmailSending = true
		cur.EmailSuccess = ""
	}); err != nil {
		return State{}, err
	}

	msg, sendErr := s.gateway.SendEmail(ctx, recipients, subject)

	return s.store.Update(id, func(cur *State) {
		cur.EmailSending = false
		if sendErr != nil {
			var eerr *planner.EmailError
			if errors.As(sendErr, &eerr) {
				s.flagError(cur, eerr.Message)
			} else {
				s.flagError(cur, sendErr.Error())
			}
			return
		}
		cur.EmailSuccess = msg
	})
}

// OpenEmailModal requires an itinerary; there is nothing to send without one.
func (s *Service) OpenEmailModal(ctx context.Context, id string) (State, error) {
	if err := s.ensure(ctx, id); err != nil {
		return State{}, err
	}
	st, err := s.store.View(id)
	if err != nil {
		return State{}, err
	}
	if !st.HasItinerary() {
		return State{}, ErrNoItinerary
	}
	return s.store.Update(id, func(cur *State) {
		cur.EmailModalOpen = true
		cur.EmailSuccess = ""
	})
}

func (s *Service) CloseEmailModal(ctx context.Context, id string) (State, error) {
	if err := s.ensure(ctx, id); err != nil {
		return State{}, err
	}
	return s.store.Update(id, func(cur *State) {
		cur.EmailModalOpen = false
		cur.EmailSending = false
		cur.EmailSuccess = ""
	})
}

// Reset clears the planning state on both sides. The transcript is append
// only, so messages survive; the itinerary and citations do not.
func (s *Service) Reset(ctx context.Context, id string) (State, error) {
	if err := s.ensure(ctx, id); err != nil {
		return State{}, err
	}

	if err := s.gateway.Reset(ctx); err != nil {
		s.log.Warn("backend reset failed", "session", id, "err", err)
	}

	var resetMsg Message
	view, err := s.store.Update(id, func(cur *State) {
		cur.Itinerary = nil
		cur.Sources = nil
		cur.Enrichment = nil
		cur.POIDescriptions = nil
		cur.LastError = ""
		cur.errGen++
		resetMsg = cur.appendMessage(RoleAssistant, resetMessage)
	})
	if err != nil {
		return State{}, err
	}
	s.persist(ctx, view, resetMsg)
	return view, nil
}

// Readiness reports whether the planner backend can take requests.
func (s *Service) Readiness(ctx context.Context) planner.Readiness {
	return s.gateway.Ready(ctx)
}

// persist snapshots the session and archives new messages. Both are best
// effort; failures are logged and the request succeeds regardless.
func (s *Service) persist(ctx context.Context, view State, msgs ...Message) {
	if s.snapshots != nil {
		if err := s.snapshots.Save(ctx, view); err != nil {
			s.log.Warn("session snapshot failed", "session", view.ID, "err", err)
		}
	}
	if s.archive != nil {
		for _, m := range msgs {
			if err := s.archive.AppendMessage(ctx, view.ID, m); err != nil {
				s.log.Warn("message archive failed", "session", view.ID, "err", err)
			}
		}
	}
}

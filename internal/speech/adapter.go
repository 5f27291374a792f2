// README: Speech input adapter wrapping an injected recognition engine.
package speech

import (
	"errors"
	"strings"
	"sync"

	"voyage/internal/logger"
)

var ErrUnavailable = errors.New("speech recognition unavailable")

// Recognizer is a speech-to-text engine. Start begins a capture; results and
// lifecycle events come back through the adapter's Handle methods. A nil
// Recognizer means the host has no speech capability.
type Recognizer interface {
	Start() error
	Stop()
}

// Error kinds reported by recognition engines.
const (
	ErrKindNoSpeech   = "no-speech"
	ErrKindAborted    = "aborted"
	ErrKindNotAllowed = "not-allowed"
)

// User-facing notices for engine failures. Delivered through the error sink
// and shown as the same transient banner other failures use.
const (
	msgMicDenied        = "Microphone access denied. Voice input is disabled."
	msgRecognitionError = "Speech recognition failed. Please try again."
)

// Adapter owns the listening state machine. In single-shot mode one capture
// yields at most one transcript and then ends; in continuous mode the adapter
// restarts the engine after each natural end until told to stop. Transcripts
// flow out through onText, engine failures through onError.
type Adapter struct {
	mu         sync.Mutex
	rec        Recognizer
	continuous bool
	listening  bool
	stopping   bool
	onText     func(string)
	onError    func(string)
	log        *logger.Logger
}

func NewAdapter(rec Recognizer, continuous bool, onText, onError func(string), log *logger.Logger) *Adapter {
	return &Adapter{rec: rec, continuous: continuous, onText: onText, onError: onError, log: log}
}

func (a *Adapter) Available() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.rec != nil
}

func (a *Adapter) Listening() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.listening
}

// Toggle flips between idle and listening. Toggling off lets the engine wind
// down on its own; HandleEnd settles the state.
func (a *Adapter) Toggle() (listening bool, err error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.rec == nil {
		return false, ErrUnavailable
	}

	if a.listening {
		a.stopping = true
		a.rec.Stop()
		a.listening = false
		return false, nil
	}
	if err := a.rec.Start(); err != nil {
		return false, err
	}
	a.stopping = false
	a.listening = true
	return true, nil
}

// HandleTranscript forwards recognized text. Blank transcripts are dropped.
func (a *Adapter) HandleTranscript(text string) {
	text = strings.TrimSpace(text)
	if text == "" || a.onText == nil {
		return
	}
	a.onText(text)
}

// HandleEnd fires when the engine finishes a capture. Continuous mode
// restarts unless the user asked to stop.
func (a *Adapter) HandleEnd() {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.continuous && a.listening && !a.stopping {
		if err := a.rec.Start(); err != nil {
			a.log.Warn("speech restart failed", "err", err)
			a.listening = false
		}
		return
	}
	a.listening = false
	a.stopping = false
}

// HandleError settles state after an engine error and reports a notice
// through the error sink. A silent capture is not a failure; permission
// denial makes the engine unavailable for the session.
func (a *Adapter) HandleError(kind string) {
	a.mu.Lock()
	notice := ""
	switch kind {
	case ErrKindNoSpeech, ErrKindAborted:
		a.mu.Unlock()
		return
	case ErrKindNotAllowed:
		a.log.Warn("microphone permission denied")
		a.rec = nil
		notice = msgMicDenied
	default:
		a.log.Warn("speech recognition error", "kind", kind)
		notice = msgRecognitionError
	}
	a.listening = false
	a.stopping = false
	onError := a.onError
	a.mu.Unlock()

	if onError != nil {
		onError(notice)
	}
}

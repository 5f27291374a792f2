package speech

import (
	"errors"
	"testing"

	"voyage/internal/logger"
)

type fakeRecognizer struct {
	starts   int
	stops    int
	startErr error
}

func (f *fakeRecognizer) Start() error {
	f.starts++
	return f.startErr
}

func (f *fakeRecognizer) Stop() { f.stops++ }

func TestToggle_Unavailable(t *testing.T) {
	a := NewAdapter(nil, false, nil, nil, logger.Nop())
	if a.Available() {
		t.Error("nil engine reported available")
	}
	if _, err := a.Toggle(); !errors.Is(err, ErrUnavailable) {
		t.Errorf("err = %v, want ErrUnavailable", err)
	}
}

func TestToggle_StartStop(t *testing.T) {
	rec := &fakeRecognizer{}
	a := NewAdapter(rec, false, nil, nil, logger.Nop())

	on, err := a.Toggle()
	if err != nil || !on {
		t.Fatalf("toggle on = %v, %v", on, err)
	}
	if !a.Listening() || rec.starts != 1 {
		t.Errorf("listening = %v, starts = %d", a.Listening(), rec.starts)
	}

	on, err = a.Toggle()
	if err != nil || on {
		t.Fatalf("toggle off = %v, %v", on, err)
	}
	if a.Listening() || rec.stops != 1 {
		t.Errorf("listening = %v, stops = %d", a.Listening(), rec.stops)
	}
}

func TestToggle_StartFailure(t *testing.T) {
	rec := &fakeRecognizer{startErr: errors.New("device busy")}
	a := NewAdapter(rec, false, nil, nil, logger.Nop())

	if _, err := a.Toggle(); err == nil {
		t.Fatal("want start error")
	}
	if a.Listening() {
		t.Error("failed start left adapter listening")
	}
}

func TestSingleShot_EndsAfterCapture(t *testing.T) {
	var got []string
	rec := &fakeRecognizer{}
	a := NewAdapter(rec, false, func(s string) { got = append(got, s) }, nil, logger.Nop())

	_, _ = a.Toggle()
	a.HandleTranscript("  plan a trip to Jaipur  ")
	a.HandleEnd()

	if len(got) != 1 || got[0] != "plan a trip to Jaipur" {
		t.Errorf("transcripts = %v", got)
	}
	if a.Listening() || rec.starts != 1 {
		t.Errorf("single shot must not restart: listening = %v, starts = %d", a.Listening(), rec.starts)
	}
}

func TestContinuous_RestartsUntilToggledOff(t *testing.T) {
	rec := &fakeRecognizer{}
	a := NewAdapter(rec, true, nil, nil, logger.Nop())

	_, _ = a.Toggle()
	a.HandleEnd() // natural pause, should restart
	a.HandleEnd()
	if rec.starts != 3 || !a.Listening() {
		t.Errorf("starts = %d, listening = %v", rec.starts, a.Listening())
	}

	_, _ = a.Toggle()
	a.HandleEnd() // user stop, must not restart
	if rec.starts != 3 || a.Listening() {
		t.Errorf("starts after stop = %d, listening = %v", rec.starts, a.Listening())
	}
}

func TestHandleTranscript_DropsBlank(t *testing.T) {
	var got []string
	a := NewAdapter(&fakeRecognizer{}, false, func(s string) { got = append(got, s) }, nil, logger.Nop())
	a.HandleTranscript("   ")
	if len(got) != 0 {
		t.Errorf("blank transcript forwarded: %v", got)
	}
}

func TestHandleError(t *testing.T) {
	rec := &fakeRecognizer{}
	a := NewAdapter(rec, false, nil, nil, logger.Nop())
	_, _ = a.Toggle()

	a.HandleError(ErrKindNoSpeech)
	if !a.Listening() {
		t.Error("no-speech must not end the capture")
	}

	a.HandleError("network")
	if a.Listening() {
		t.Error("engine error must end the capture")
	}

	a.HandleError(ErrKindNotAllowed)
	if a.Available() {
		t.Error("permission denial must disable the engine")
	}
}

func TestHandleError_ReportsThroughSink(t *testing.T) {
	var notices []string
	a := NewAdapter(&fakeRecognizer{}, false, nil, func(s string) { notices = append(notices, s) }, logger.Nop())
	_, _ = a.Toggle()

	a.HandleError(ErrKindNoSpeech) // silence is not reported
	a.HandleError("network")
	a.HandleError(ErrKindNotAllowed)

	if len(notices) != 2 {
		t.Fatalf("notices = %v", notices)
	}
	if notices[0] != msgRecognitionError || notices[1] != msgMicDenied {
		t.Errorf("notices = %v", notices)
	}
}

func TestSanitizeForSpeech(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"👋 Hi! I'm your AI travel planner.", "Hi! I'm your AI travel planner."},
		{"**Day 1** looks great ✅", "Day 1 looks great"},
		{"Sources 📚 below 👉 here", "Sources below here"},
		{"plain text stays", "plain text stays"},
	}
	for _, tt := range tests {
		if got := SanitizeForSpeech(tt.in); got != tt.want {
			t.Errorf("SanitizeForSpeech(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

type fakeSynth struct{ said []string }

func (f *fakeSynth) Say(text string) { f.said = append(f.said, text) }

func TestSpeaker(t *testing.T) {
	synth := &fakeSynth{}
	s := NewSpeaker(synth)
	s.Speak("👋 hello")
	s.Speak("✅") // nothing left after sanitizing
	if len(synth.said) != 1 || synth.said[0] != "hello" {
		t.Errorf("said = %v", synth.said)
	}

	var nilSpeaker *Speaker
	nilSpeaker.Speak("must not panic")
}

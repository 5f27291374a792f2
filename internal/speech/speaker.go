// README: Speech output: sanitize assistant text and hand it to a TTS engine.
package speech

import (
	"strings"
	"unicode"
)

// Synthesizer is a text-to-speech engine. A nil Synthesizer disables output.
type Synthesizer interface {
	Say(text string)
}

type Speaker struct {
	synth Synthesizer
}

func NewSpeaker(synth Synthesizer) *Speaker {
	return &Speaker{synth: synth}
}

func (s *Speaker) Speak(text string) {
	if s == nil || s.synth == nil {
		return
	}
	clean := SanitizeForSpeech(text)
	if clean == "" {
		return
	}
	s.synth.Say(clean)
}

// SanitizeForSpeech strips emoji and markdown emphasis so engines do not read
// decoration aloud, then collapses the leftover whitespace.
func SanitizeForSpeech(text string) string {
	text = strings.ReplaceAll(text, "**", "")
	var b strings.Builder
	b.Grow(len(text))
	for _, r := range text {
		if isEmoji(r) {
			continue
		}
		b.WriteRune(r)
	}
	return strings.Join(strings.Fields(b.String()), " ")
}

func isEmoji(r rune) bool {
	switch {
	case r >= 0x1F300 && r <= 0x1FAFF: // pictographs, incl. 👋 📚 👉
		return true
	case r >= 0x2600 && r <= 0x27BF: // dingbats, incl. ✅ ❌
		return true
	case r == 0xFE0F || r == 0x200D: // variation selector, ZWJ
		return true
	case unicode.Is(unicode.So, r):
		return true
	}
	return false
}

package email

import (
	"regexp"
	"strings"
)

// Mode says how a draft addresses its recipients.
type Mode string

const (
	// ModeSingle addresses one recipient.
	ModeSingle Mode = "single"
	// ModeGroup addresses everyone in one message.
	ModeGroup Mode = "group"
	// ModeFanout produces one personalized message per recipient.
	ModeFanout Mode = "fanout"
)

// DefaultFallbackRecipients are used when neither the arguments nor the
// conversation name anyone. The substitution is reported through
// Resolution.UsedFallback so callers can warn instead of silently
// presenting fabricated recipients.
var DefaultFallbackRecipients = []string{
	"alice@example.com",
	"bob@example.com",
	"carol@example.com",
}

// Resolution is the outcome of recipient resolution.
type Resolution struct {
	Mode         Mode
	Recipients   []string
	UsedFallback bool
}

// Resolver decides who a draft goes to and how.
type Resolver struct {
	// Fallback is used when no recipients can be determined.
	// DefaultFallbackRecipients when empty.
	Fallback []string
}

var emailPattern = regexp.MustCompile(`[A-Za-z0-9._%+\-]+@[A-Za-z0-9.\-]+\.[A-Za-z]{2,}`)

// Phrases that request one shared message.
var groupPhrases = []string{
	"one email to all", "group email", "single email", "one email",
	"all together", "the whole team",
}

// Phrases that request one message per person.
var fanoutPhrases = []string{
	"each of them", "individually", "separately", "each person",
	"one by one", "personalized",
}

// Resolve classifies the request as single, group or fanout. The rules
// form an ordered decision table; the first match wins:
//
//  1. An explicit list with more than one entry (or a comma-separated
//     string) is a group draft, regardless of message content.
//  2. A group phrase in the message or context is a group draft.
//  3. A fanout phrase in the message is a fanout draft.
//  4. One explicit recipient is a single draft.
//  5. Addresses mentioned in the conversation, with no instruction
//     either way, default to fanout.
//
// When no rule yields recipients the fallback set is substituted and
// UsedFallback is set.
func (r *Resolver) Resolve(explicit []string, contextText, originalMessage string) Resolution {
	recipients := cleanAddresses(explicit)
	free := contextText + " " + originalMessage
	lower := strings.ToLower(free)

	wantsGroup := containsAny(lower, groupPhrases)
	wantsFanout := containsAny(strings.ToLower(originalMessage), fanoutPhrases)

	if len(recipients) > 1 {
		return Resolution{Mode: ModeGroup, Recipients: recipients}
	}

	fromContext := cleanAddresses(emailPattern.FindAllString(free, -1))

	if wantsGroup {
		return r.withFallback(ModeGroup, pick(recipients, fromContext))
	}
	if wantsFanout {
		return r.withFallback(ModeFanout, pick(recipients, fromContext))
	}
	if len(recipients) == 1 {
		return Resolution{Mode: ModeSingle, Recipients: recipients}
	}
	if len(fromContext) > 0 {
		return Resolution{Mode: ModeFanout, Recipients: fromContext}
	}
	return r.withFallback(ModeGroup, nil)
}

// pick chooses the first non-empty recipient source.
func pick(explicit, fromContext []string) []string {
	if len(explicit) > 0 {
		return explicit
	}
	return fromContext
}

// withFallback substitutes the fallback set when no recipients could be
// determined, flagging the substitution.
func (r *Resolver) withFallback(mode Mode, recipients []string) Resolution {
	if len(recipients) > 0 {
		return Resolution{Mode: mode, Recipients: recipients}
	}
	fallback := r.Fallback
	if len(fallback) == 0 {
		fallback = DefaultFallbackRecipients
	}
	return Resolution{Mode: mode, Recipients: append([]string(nil), fallback...), UsedFallback: true}
}

// ExtractAddresses returns the email addresses mentioned in free text,
// cleaned and deduplicated in order of appearance.
func ExtractAddresses(text string) []string {
	return cleanAddresses(emailPattern.FindAllString(text, -1))
}

// cleanAddresses trims, lowercases, validates and dedupes while keeping
// order. Comma-separated entries are split.
func cleanAddresses(in []string) []string {
	seen := map[string]bool{}
	var out []string
	for _, raw := range in {
		for _, part := range strings.Split(raw, ",") {
			addr := strings.ToLower(strings.TrimSpace(part))
			if addr == "" || seen[addr] || !emailPattern.MatchString(addr) {
				continue
			}
			seen[addr] = true
			out = append(out, addr)
		}
	}
	return out
}

func containsAny(s string, phrases []string) bool {
	for _, p := range phrases {
		if strings.Contains(s, p) {
			return true
		}
	}
	return false
}

package email

import (
	"fmt"
	"net/url"
	"strings"
	"time"
)

// Tone selects the register of a drafted message.
type Tone string

const (
	ToneFormal       Tone = "formal"
	ToneCasual       Tone = "casual"
	ToneFriendly     Tone = "friendly"
	ToneProfessional Tone = "professional"
)

// ParseTone maps free-form input to a tone, defaulting to professional.
func ParseTone(s string) Tone {
	switch Tone(strings.ToLower(strings.TrimSpace(s))) {
	case ToneFormal:
		return ToneFormal
	case ToneCasual:
		return ToneCasual
	case ToneFriendly:
		return ToneFriendly
	default:
		return ToneProfessional
	}
}

// Draft is one composed message.
type Draft struct {
	To         []string
	Subject    string
	Body       string
	GmailLink  string
	MailtoLink string
}

// Invitation carries the meeting details a draft is written about.
type Invitation struct {
	Title    string
	Start    time.Time
	End      time.Time
	Location string
	Notes    string
}

type toneTemplate struct {
	greeting string
	opener   string
	closer   string
	signoff  string
}

var toneTemplates = map[Tone]toneTemplate{
	ToneFormal: {
		greeting: "Dear %s,",
		opener:   "I would like to invite you to the following meeting:",
		closer:   "Please let me know whether this time is convenient for you.",
		signoff:  "Kind regards",
	},
	ToneProfessional: {
		greeting: "Hi %s,",
		opener:   "I'd like to schedule the following meeting:",
		closer:   "Please confirm if this works for you, or suggest an alternative.",
		signoff:  "Best regards",
	},
	ToneFriendly: {
		greeting: "Hi %s,",
		opener:   "Hope you're doing well! I'd love to get some time together:",
		closer:   "Let me know if that works for you!",
		signoff:  "Cheers",
	},
	ToneCasual: {
		greeting: "Hey %s,",
		opener:   "Quick one:",
		closer:   "Work for you?",
		signoff:  "Thanks",
	},
}

// Compose builds the drafts for a resolution. Group mode yields one
// draft addressed to everyone; fanout yields one per recipient with a
// personalized greeting.
func Compose(res Resolution, inv Invitation, tone Tone) []Draft {
	switch res.Mode {
	case ModeFanout:
		drafts := make([]Draft, 0, len(res.Recipients))
		for _, to := range res.Recipients {
			drafts = append(drafts, composeOne([]string{to}, DisplayName(to), inv, tone))
		}
		return drafts
	default:
		greeting := "all"
		if len(res.Recipients) == 1 {
			greeting = DisplayName(res.Recipients[0])
		}
		return []Draft{composeOne(res.Recipients, greeting, inv, tone)}
	}
}

func composeOne(to []string, greetName string, inv Invitation, tone Tone) Draft {
	tpl, ok := toneTemplates[tone]
	if !ok {
		tpl = toneTemplates[ToneProfessional]
	}

	subject := fmt.Sprintf("Meeting invitation: %s", inv.Title)

	var b strings.Builder
	fmt.Fprintf(&b, tpl.greeting+"\n\n", greetName)
	b.WriteString(tpl.opener + "\n\n")
	fmt.Fprintf(&b, "  %s\n", inv.Title)
	if !inv.Start.IsZero() {
		fmt.Fprintf(&b, "  %s", inv.Start.Format("Monday, January 2, 2006 at 15:04"))
		if !inv.End.IsZero() {
			fmt.Fprintf(&b, " to %s", inv.End.Format("15:04"))
		}
		b.WriteString("\n")
	}
	if inv.Location != "" {
		fmt.Fprintf(&b, "  Location: %s\n", inv.Location)
	}
	if inv.Notes != "" {
		fmt.Fprintf(&b, "\n%s\n", inv.Notes)
	}
	b.WriteString("\n" + tpl.closer + "\n\n" + tpl.signoff + "\n")
	body := b.String()

	return Draft{
		To:         to,
		Subject:    subject,
		Body:       body,
		GmailLink:  GmailComposeLink(to, subject, body),
		MailtoLink: MailtoLink(to, subject, body),
	}
}

// GmailComposeLink builds a Gmail compose URL prefilled with the draft.
func GmailComposeLink(to []string, subject, body string) string {
	v := url.Values{}
	v.Set("view", "cm")
	v.Set("fs", "1")
	v.Set("to", strings.Join(to, ","))
	v.Set("su", subject)
	v.Set("body", body)
	return "https://mail.google.com/mail/?" + v.Encode()
}

// MailtoLink builds a mailto: URL for clients without Gmail.
func MailtoLink(to []string, subject, body string) string {
	v := url.Values{}
	v.Set("subject", subject)
	v.Set("body", body)
	// mailto expects %20, not +, for spaces in the query.
	query := strings.ReplaceAll(v.Encode(), "+", "%20")
	return "mailto:" + strings.Join(to, ",") + "?" + query
}

// DisplayName derives a salutation from an address: the local part with
// separators spaced and words capitalized.
func DisplayName(addr string) string {
	local, _, ok := strings.Cut(addr, "@")
	if !ok || local == "" {
		return addr
	}
	local = strings.NewReplacer(".", " ", "_", " ", "-", " ").Replace(local)
	words := strings.Fields(local)
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}

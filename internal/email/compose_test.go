package email

import (
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleInvitation() Invitation {
	return Invitation{
		Title:    "Quarterly Planning",
		Start:    time.Date(2026, 3, 11, 11, 0, 0, 0, time.UTC),
		End:      time.Date(2026, 3, 11, 12, 0, 0, 0, time.UTC),
		Location: "Room 4",
	}
}

func TestComposeGroup(t *testing.T) {
	res := Resolution{Mode: ModeGroup, Recipients: []string{"dana@example.com", "eli@example.com"}}
	drafts := Compose(res, sampleInvitation(), ToneProfessional)
	require.Len(t, drafts, 1)

	d := drafts[0]
	assert.Equal(t, res.Recipients, d.To)
	assert.Equal(t, "Meeting invitation: Quarterly Planning", d.Subject)
	assert.Contains(t, d.Body, "Hi all,")
	assert.Contains(t, d.Body, "Quarterly Planning")
	assert.Contains(t, d.Body, "Room 4")
	assert.Contains(t, d.Body, "11:00 to 12:00")
}

func TestComposeFanout(t *testing.T) {
	res := Resolution{Mode: ModeFanout, Recipients: []string{"dana.lee@example.com", "eli@example.com"}}
	drafts := Compose(res, sampleInvitation(), ToneFriendly)
	require.Len(t, drafts, 2)

	assert.Equal(t, []string{"dana.lee@example.com"}, drafts[0].To)
	assert.Contains(t, drafts[0].Body, "Hi Dana Lee,")
	assert.Contains(t, drafts[1].Body, "Hi Eli,")
}

func TestComposeTones(t *testing.T) {
	res := Resolution{Mode: ModeSingle, Recipients: []string{"dana@example.com"}}

	formal := Compose(res, sampleInvitation(), ToneFormal)[0]
	assert.Contains(t, formal.Body, "Dear Dana,")
	assert.Contains(t, formal.Body, "Kind regards")

	casual := Compose(res, sampleInvitation(), ToneCasual)[0]
	assert.Contains(t, casual.Body, "Hey Dana,")
}

func TestGmailComposeLink(t *testing.T) {
	link := GmailComposeLink([]string{"dana@example.com"}, "Subject line", "Body text")
	u, err := url.Parse(link)
	require.NoError(t, err)
	assert.Equal(t, "mail.google.com", u.Host)

	q := u.Query()
	assert.Equal(t, "cm", q.Get("view"))
	assert.Equal(t, "dana@example.com", q.Get("to"))
	assert.Equal(t, "Subject line", q.Get("su"))
	assert.Equal(t, "Body text", q.Get("body"))
}

func TestMailtoLink(t *testing.T) {
	link := MailtoLink([]string{"dana@example.com"}, "Hello there", "line one")
	assert.True(t, strings.HasPrefix(link, "mailto:dana@example.com?"))
	assert.NotContains(t, link, "+", "mailto links must not use + for spaces")
	assert.Contains(t, link, "Hello%20there")
}

func TestParseTone(t *testing.T) {
	assert.Equal(t, ToneFormal, ParseTone("Formal"))
	assert.Equal(t, ToneCasual, ParseTone(" casual "))
	assert.Equal(t, ToneProfessional, ParseTone(""))
	assert.Equal(t, ToneProfessional, ParseTone("sarcastic"))
}

func TestDisplayName(t *testing.T) {
	assert.Equal(t, "Dana", DisplayName("dana@example.com"))
	assert.Equal(t, "Dana Lee", DisplayName("dana.lee@example.com"))
	assert.Equal(t, "Dana Lee", DisplayName("dana_lee@example.com"))
	assert.Equal(t, "no-at-sign", DisplayName("no-at-sign"))
}

// Package notify builds the notification artefacts the presentation layer
// embeds. Nothing here sends anything.
package notify

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/mockingjay-project/mockingjay/internal/domain"
)

// AgendaMailto builds a mailto: URL announcing a meeting's agenda status to
// the given recipients. The caller drops it into a link; the user's own mail
// client does the sending.
func AgendaMailto(m *domain.Meeting, recipients []string) string {
	subject := fmt.Sprintf("%s [%s] - %s", m.Title, m.Status, m.Date.Format("02 Jan 2006"))

	body := fmt.Sprintf(
		"Dear all,\r\n\r\nThe agenda for %s on %s (%s - %s, %s) is now %s.\r\n\r\nRegards,\r\nSecretariat",
		m.Title,
		m.Date.Format("02 Jan 2006"),
		m.StartTime,
		m.EndTime,
		m.Location,
		strings.ToLower(m.Status.String()),
	)

	q := url.Values{}
	q.Set("subject", subject)
	q.Set("body", body)

	// url.Values encodes spaces as '+', which mail clients render literally.
	query := strings.ReplaceAll(q.Encode(), "+", "%20")

	return "mailto:" + strings.Join(recipients, ",") + "?" + query
}

package tui

import (
	"strings"
	"time"

	"github.com/piecemeal-studio/piecemeal/pkg/client"
)

// confirmModel shows the workshop's acknowledgement. By the time it
// renders, the draft is already gone; there is nothing left to resume.
type confirmModel struct {
	conf *client.OrderConfirmation
}

func (m confirmModel) View() string {
	var b strings.Builder
	b.WriteString(" " + okStyle.Render("Your puzzle is on its way to the workshop.") + "\n\n")
	if m.conf != nil {
		b.WriteString(" " + dimStyle.Render("order reference") + "  " + goldStyle.Render(m.conf.OrderRef) + "\n")
		if m.conf.ReceivedAt > 0 {
			b.WriteString(" " + dimStyle.Render("received") + "         " +
				metaStyle.Render(formatTime(time.UnixMilli(m.conf.ReceivedAt))) + "\n")
		}
	}
	b.WriteString("\n " + metaStyle.Render("a confirmation email follows shortly"))
	return b.String()
}

package cmd

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/vscroll/internal/source"
)

// renderRecord returns a renderer producing exactly rowHeight lines per
// record: the sequence number and body, then the creation time, then blank
// lines.
func renderRecord(rowHeight int) func(source.Record) string {
	return func(r source.Record) string {
		body := strings.ReplaceAll(r.Body, "\n", " ")
		head := fmt.Sprintf("%7d  %s", r.Seq, body)
		if rowHeight < 2 {
			return head
		}
		lines := make([]string, rowHeight)
		lines[0] = head
		if !r.CreatedAt.IsZero() {
			lines[1] = strings.Repeat(" ", 9) + r.CreatedAt.Format(time.DateTime)
		}
		return strings.Join(lines, "\n")
	}
}

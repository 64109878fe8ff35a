package calendar

import (
	"bytes"
	"fmt"
	"strings"
	"unicode/utf8"
)

const (
	icsProductID = "-//FarmLink Africa//NONSGML v1.0//EN"
	icsUIDDomain = "farmlink.africa"
	icsLineEnd   = "\r\n"

	// content lines longer than this many octets are folded
	icsMaxLineLength = 75
)

var icsEscaper = strings.NewReplacer(
	`\`, `\\`,
	";", `\;`,
	",", `\,`,
	"\r\n", `\n`,
	"\n", `\n`,
)

// ExportICS renders events as an iCalendar document. Every event spans the working
// day, 08:00 to 17:00 UTC.
func ExportICS(events []Event) ([]byte, error) {
	sorted := append([]Event{}, events...)
	SortEvents(sorted)

	var b bytes.Buffer
	line := func(format string, args ...interface{}) {
		writeFolded(&b, fmt.Sprintf(format, args...))
	}

	line("BEGIN:VCALENDAR")
	line("VERSION:2.0")
	line("PRODID:%s", icsProductID)
	for _, e := range sorted {
		if err := e.Validate(); err != nil {
			return nil, err
		}
		day, _ := e.day()
		date := day.Format("20060102")

		line("BEGIN:VEVENT")
		line("UID:%s@%s", e.ID, icsUIDDomain)
		line("DTSTAMP:%sT000000Z", date)
		line("DTSTART:%sT080000Z", date)
		line("DTEND:%sT170000Z", date)
		line("SUMMARY:FarmLink: %s", icsEscaper.Replace(e.Title))
		line("DESCRIPTION:%s", icsEscaper.Replace(e.Description))
		line("CATEGORIES:%s", strings.ToUpper(string(e.Type)))
		line("END:VEVENT")
	}
	line("END:VCALENDAR")

	return b.Bytes(), nil
}

// FileName is the download name for an export of events.
func FileName(events []Event) string {
	if len(events) == 1 {
		return events[0].Title + ".ics"
	}
	return "farmlink_calendar.ics"
}

// writeFolded writes one content line, continuing it on lines that start with a space
// whenever it exceeds icsMaxLineLength octets. Multi-byte characters are never split.
func writeFolded(b *bytes.Buffer, line string) {
	limit := icsMaxLineLength
	for len(line) > limit {
		cut := limit
		for cut > 0 && !utf8.RuneStart(line[cut]) {
			cut--
		}
		b.WriteString(line[:cut])
		b.WriteString(icsLineEnd)
		b.WriteByte(' ')
		line = line[cut:]
		// the leading space counts
		limit = icsMaxLineLength - 1
	}
	b.WriteString(line)
	b.WriteString(icsLineEnd)
}

// Package calendar holds the farming calendar: parsing of AI suggestions and
// iCalendar export of events.
package calendar

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"
)

type EventType string

const (
	Planting    EventType = "planting"
	Harvesting  EventType = "harvesting"
	Market      EventType = "market"
	Maintenance EventType = "maintenance"
)

const dateLayout = "2006-01-02"

var ErrInvalidEvent = errors.New("invalid calendar event")

type Event struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Date        string    `json:"date"`
	Type        EventType `json:"type"`
	Description string    `json:"description"`
	IsPending   bool      `json:"isPending,omitempty"`
}

func (e Event) Validate() error {
	if strings.TrimSpace(e.ID) == "" {
		return fmt.Errorf("%w: missing id", ErrInvalidEvent)
	}
	if strings.TrimSpace(e.Title) == "" {
		return fmt.Errorf("%w: missing title for event %s", ErrInvalidEvent, e.ID)
	}
	if _, err := e.day(); err != nil {
		return fmt.Errorf("%w: date '%s' of event %s is not YYYY-MM-DD", ErrInvalidEvent, e.Date, e.ID)
	}
	switch e.Type {
	case Planting, Harvesting, Market, Maintenance:
	default:
		return fmt.Errorf("%w: unknown type '%s' for event %s", ErrInvalidEvent, e.Type, e.ID)
	}
	return nil
}

func (e Event) day() (time.Time, error) {
	return time.Parse(dateLayout, e.Date)
}

// SortEvents orders events by date; events on the same day keep their order.
func SortEvents(events []Event) {
	sort.SliceStable(events, func(i, j int) bool {
		return events[i].Date < events[j].Date
	})
}

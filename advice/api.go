// Package advice holds the request and response types exchanged with the advisor.
package advice

import (
	"errors"
	"fmt"
	"strings"

	"github.com/CODEX19/FarmLink-Africa/calendar"
)

type Operation string

const (
	DeepChat            Operation = "chat"
	FastInsights        Operation = "fast-insights"
	AgriInsights        Operation = "insights"
	NearbyAgriNodes     Operation = "nearby-nodes"
	CalendarSuggestions Operation = "calendar-suggestions"
	BuyingTips          Operation = "buying-tips"
	NeuralSpeech        Operation = "speech"
)

// Operations lists every supported operation.
var Operations = []Operation{
	DeepChat,
	FastInsights,
	AgriInsights,
	NearbyAgriNodes,
	CalendarSuggestions,
	BuyingTips,
	NeuralSpeech,
}

var ErrInvalidRequest = errors.New("invalid advice request")

func ParseOperation(s string) (Operation, error) {
	for _, op := range Operations {
		if string(op) == s {
			return op, nil
		}
	}
	return "", fmt.Errorf("%w: unknown operation '%s'", ErrInvalidRequest, s)
}

// Turn is one earlier message of a chat conversation.
type Turn struct {
	Role string `json:"role"` // "user" or "model"
	Text string `json:"text"`
}

type Request struct {
	UID       string    `json:"uid,omitempty"`
	Operation Operation `json:"operation"`
	Location  string    `json:"location,omitempty"`
	Crops     []string  `json:"crops,omitempty"`
	Latitude  float64   `json:"latitude,omitempty"`
	Longitude float64   `json:"longitude,omitempty"`
	Message   string    `json:"message,omitempty" datastore:",noindex"`
	History   []Turn    `json:"history,omitempty" datastore:",noindex"`
	Text      string    `json:"text,omitempty" datastore:",noindex"`
}

func (r Request) String() string {
	return fmt.Sprintf("advice request %s: %s", r.Operation, r.UID)
}

// Validate checks that the fields the operation needs are present.
func (r Request) Validate() error {
	if _, err := ParseOperation(string(r.Operation)); err != nil {
		return err
	}

	switch r.Operation {
	case DeepChat:
		if strings.TrimSpace(r.Message) == "" {
			return fmt.Errorf("%w: missing message", ErrInvalidRequest)
		}
		for _, turn := range r.History {
			if turn.Role != "user" && turn.Role != "model" {
				return fmt.Errorf("%w: unknown history role '%s'", ErrInvalidRequest, turn.Role)
			}
		}
	case FastInsights, AgriInsights, CalendarSuggestions, BuyingTips:
		if strings.TrimSpace(r.Location) == "" {
			return fmt.Errorf("%w: missing location", ErrInvalidRequest)
		}
	case NearbyAgriNodes:
		if r.Latitude < -90 || r.Latitude > 90 || r.Longitude < -180 || r.Longitude > 180 {
			return fmt.Errorf("%w: coordinates (%f, %f) out of range", ErrInvalidRequest, r.Latitude, r.Longitude)
		}
	case NeuralSpeech:
		if strings.TrimSpace(r.Text) == "" {
			return fmt.Errorf("%w: missing text", ErrInvalidRequest)
		}
	}
	return nil
}

// Source is a grounding reference returned with nearby agri nodes.
type Source struct {
	Title string `json:"title"`
	URI   string `json:"uri"`
}

type Response struct {
	UID         string                `json:"uid,omitempty"`
	Operation   Operation             `json:"operation"`
	Text        string                `json:"text,omitempty" datastore:",noindex"`
	Sources     []Source              `json:"sources,omitempty" datastore:",noindex"`
	Suggestions []calendar.Suggestion `json:"suggestions,omitempty" datastore:",noindex"`
	Audio       []byte                `json:"-" datastore:"-"`
	AudioObject string                `json:"audioObject,omitempty"`
}

func (r Response) String() string {
	return fmt.Sprintf("advice response %s: %s", r.Operation, r.UID)
}

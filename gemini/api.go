package gemini

import (
	"context"

	"google.golang.org/genai"
)

//go:generate mockgen -source=api.go -destination=gen_ContentGeneratorMock.go -package=gemini github.com/CODEX19/FarmLink-Africa/gemini ContentGenerator

// ContentGenerator is the part of the Gemini API the advisor uses.
type ContentGenerator interface {
	GenerateContent(c context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

// Models names the model used per kind of work.
type Models struct {
	Pro    string
	Flash  string
	Lite   string
	Maps   string
	Speech string
}

func DefaultModels() Models {
	return Models{
		Pro:    "gemini-3-pro-preview",
		Flash:  "gemini-3-flash-preview",
		Lite:   "gemini-flash-lite-latest",
		Maps:   "gemini-2.5-flash",
		Speech: "gemini-2.5-flash-preview-tts",
	}
}

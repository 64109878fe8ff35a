package advisor

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/CODEX19/FarmLink-Africa/advice"
	"github.com/CODEX19/FarmLink-Africa/calendar"
	"github.com/CODEX19/FarmLink-Africa/retry"
	"github.com/CODEX19/FarmLink-Africa/serialqueue"
	"go.uber.org/zap"
	"google.golang.org/genai"
)

// callStats is written by the queue worker and may be read by a caller that
// stopped waiting, hence the atomic.
type callStats struct {
	rateLimitRetries atomic.Int64
}

// generate takes one slot in the queue and keeps it while retrying rate-limited calls.
func (s *Service) generate(c context.Context, stats *callStats, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error) {
	policy := s.policy
	policy.OnRetry = func(attempt int, delay time.Duration, err error) {
		s.logger.Info("Rate limited, backing off",
			zap.String("model", model),
			zap.Int("attempt", attempt),
			zap.Duration("delay", delay),
			zap.Error(err))
		if stats != nil {
			stats.rateLimitRetries.Add(1)
		}
	}

	return serialqueue.Do(c, s.queue, func(c context.Context) (*genai.GenerateContentResponse, error) {
		return retry.Do(c, policy, func(c context.Context) (*genai.GenerateContentResponse, error) {
			resp, err := s.generator.GenerateContent(c, model, contents, config)
			if err != nil {
				return nil, err
			}
			if resp == nil {
				return nil, ErrEmptyResponse
			}
			return resp, nil
		})
	})
}

// DeepChat answers a chat message with the pro model. Earlier turns precede the message.
func (s *Service) DeepChat(c context.Context, message string, history []advice.Turn) (string, error) {
	return s.deepChat(c, nil, message, history)
}

func (s *Service) deepChat(c context.Context, stats *callStats, message string, history []advice.Turn) (string, error) {
	contents := make([]*genai.Content, 0, len(history)+1)
	for _, turn := range history {
		contents = append(contents, genai.NewContentFromText(turn.Text, genai.Role(turn.Role)))
	}
	contents = append(contents, genai.NewContentFromText(message, genai.RoleUser))

	resp, err := s.generate(c, stats, s.models.Pro, contents, &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(systemInstruction, genai.RoleUser),
		ThinkingConfig: &genai.ThinkingConfig{
			ThinkingBudget: genai.Ptr[int32](deepChatThinkingBudget),
		},
	})
	if err != nil {
		return "", err
	}
	return resp.Text(), nil
}

func (s *Service) FastInsights(c context.Context, region string, crops []string) (string, error) {
	return s.fastInsights(c, nil, region, crops)
}

func (s *Service) fastInsights(c context.Context, stats *callStats, region string, crops []string) (string, error) {
	resp, err := s.generate(c, stats, s.models.Lite, genai.Text(fastInsightsPrompt(region, crops)), nil)
	if err != nil {
		return "", err
	}
	return resp.Text(), nil
}

// AgriInsights never fails: any failure yields a fixed fallback text.
func (s *Service) AgriInsights(c context.Context, region string, crops []string) string {
	return s.agriInsights(c, nil, region, crops)
}

func (s *Service) agriInsights(c context.Context, stats *callStats, region string, crops []string) string {
	resp, err := s.generate(c, stats, s.models.Flash, genai.Text(agriInsightsPrompt(region, crops)), nil)
	if err != nil {
		s.logger.Warn("Agri insights unavailable", zap.String("region", region), zap.Error(err))
		return marketInsightsUnavailable
	}
	text := resp.Text()
	if text == "" {
		return insightsUnavailable
	}
	return text
}

// NearbyAgriNodes lists markets, storage and processing hubs around a location,
// grounded on Google Maps.
func (s *Service) NearbyAgriNodes(c context.Context, lat, lng float64) (string, []advice.Source, error) {
	return s.nearbyAgriNodes(c, nil, lat, lng)
}

func (s *Service) nearbyAgriNodes(c context.Context, stats *callStats, lat, lng float64) (string, []advice.Source, error) {
	resp, err := s.generate(c, stats, s.models.Maps, genai.Text(nearbyNodesPrompt), &genai.GenerateContentConfig{
		Tools: []*genai.Tool{
			{GoogleMaps: &genai.GoogleMaps{}},
		},
		ToolConfig: &genai.ToolConfig{
			RetrievalConfig: &genai.RetrievalConfig{
				LatLng: &genai.LatLng{
					Latitude:  genai.Ptr(lat),
					Longitude: genai.Ptr(lng),
				},
			},
		},
	})
	if err != nil {
		return "", nil, err
	}

	text := resp.Text()
	if text == "" {
		text = scanningInfrastructure
	}
	return text, groundingSources(resp), nil
}

func groundingSources(resp *genai.GenerateContentResponse) []advice.Source {
	sources := []advice.Source{}
	if len(resp.Candidates) == 0 || resp.Candidates[0] == nil || resp.Candidates[0].GroundingMetadata == nil {
		return sources
	}
	for _, chunk := range resp.Candidates[0].GroundingMetadata.GroundingChunks {
		switch {
		case chunk == nil:
		case chunk.Maps != nil:
			sources = append(sources, advice.Source{Title: chunk.Maps.Title, URI: chunk.Maps.URI})
		case chunk.Web != nil:
			sources = append(sources, advice.Source{Title: chunk.Web.Title, URI: chunk.Web.URI})
		}
	}
	return sources
}

// CalendarSuggestions returns the raw answer and the suggestions parsed from it.
func (s *Service) CalendarSuggestions(c context.Context, location string, crops []string) (string, []calendar.Suggestion, error) {
	return s.calendarSuggestions(c, nil, location, crops)
}

func (s *Service) calendarSuggestions(c context.Context, stats *callStats, location string, crops []string) (string, []calendar.Suggestion, error) {
	resp, err := s.generate(c, stats, s.models.Flash, genai.Text(calendarSuggestionsPrompt(location, crops)), nil)
	if err != nil {
		return "", nil, err
	}
	text := resp.Text()
	return text, calendar.ParseSuggestions(text), nil
}

func (s *Service) BuyingTips(c context.Context, location string) (string, error) {
	return s.buyingTips(c, nil, location)
}

func (s *Service) buyingTips(c context.Context, stats *callStats, location string) (string, error) {
	resp, err := s.generate(c, stats, s.models.Flash, genai.Text(buyingTipsPrompt(location)), nil)
	if err != nil {
		return "", err
	}
	return resp.Text(), nil
}

// NeuralSpeech synthesizes text and returns it as a 24kHz mono 16-bit WAV file.
func (s *Service) NeuralSpeech(c context.Context, text string) ([]byte, error) {
	return s.neuralSpeech(c, nil, text)
}

func (s *Service) neuralSpeech(c context.Context, stats *callStats, text string) ([]byte, error) {
	resp, err := s.generate(c, stats, s.models.Speech, genai.Text(speechPrompt(text)), &genai.GenerateContentConfig{
		ResponseModalities: []string{string(genai.ModalityAudio)},
		SpeechConfig: &genai.SpeechConfig{
			VoiceConfig: &genai.VoiceConfig{
				PrebuiltVoiceConfig: &genai.PrebuiltVoiceConfig{VoiceName: speechVoice},
			},
		},
	})
	if err != nil {
		return nil, err
	}

	pcm := inlineAudio(resp)
	if len(pcm) == 0 {
		return nil, ErrNoAudio
	}
	return encodeWAV(pcm, speechSampleRate, speechChannels, speechBitsPerSample), nil
}

func inlineAudio(resp *genai.GenerateContentResponse) []byte {
	if len(resp.Candidates) == 0 || resp.Candidates[0] == nil {
		return nil
	}
	content := resp.Candidates[0].Content
	if content == nil || len(content.Parts) == 0 || content.Parts[0] == nil || content.Parts[0].InlineData == nil {
		return nil
	}
	return content.Parts[0].InlineData.Data
}

package entrypoint

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/CODEX19/FarmLink-Africa/advice"
	"github.com/CODEX19/FarmLink-Africa/advisor"
	"github.com/CODEX19/FarmLink-Africa/bucketstore"
	"github.com/CODEX19/FarmLink-Africa/calendar"
	"github.com/CODEX19/FarmLink-Africa/datastore"
	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

const (
	wavContentType      = "audio/wav"
	calendarContentType = "text/calendar; charset=utf-8"
)

func NewWebService(logger *zap.Logger, advisor advisor.Advisor) *webService {
	s := &webService{
		logger:  logger,
		advisor: advisor,
	}
	return s
}

func (s *webService) RegisterEndpoint(router *mux.Router) *mux.Router {
	router.HandleFunc("/", s.explain).Methods("GET")

	api := router.PathPrefix("/api").Subrouter()
	api.HandleFunc("/advice/{operation}", s.advise).Methods("POST")
	api.HandleFunc("/advice/{uid}", s.lookup).Methods("GET")
	api.HandleFunc("/advice/{uid}/audio", s.audio).Methods("GET")
	api.HandleFunc("/advice/{uid}/audio", s.deleteAudio).Methods("DELETE")
	api.HandleFunc("/audio", s.listAudio).Methods("GET")
	api.HandleFunc("/calendar/ics", s.exportCalendar).Methods("POST")
	api.HandleFunc("/calendar/suggestions/parse", s.parseSuggestions).Methods("POST")

	return router
}

func (s *webService) advise(w http.ResponseWriter, r *http.Request) {
	c := r.Context()

	async, req, err := parseAdviceRequest(r)
	if err != nil {
		s.reportError(w, http.StatusBadRequest, fmt.Errorf("Error parsing request: %w", err))
		return
	}

	if async {
		uid, err := s.advisor.AdviseAsync(c, req)
		if err != nil {
			s.reportAdviceError(w, err)
			return
		}
		// Indicate we have successfully received but not yet processed
		writeJSON(w, http.StatusAccepted, map[string]string{"uid": uid})
		return
	}

	resp, err := s.advisor.Advise(c, req)
	if err != nil {
		s.reportAdviceError(w, err)
		return
	}

	if req.Operation == advice.NeuralSpeech && acceptsWAV(r) {
		w.Header().Set("Content-Type", wavContentType)
		w.WriteHeader(http.StatusOK)
		w.Write(resp.Audio)
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

func parseAdviceRequest(r *http.Request) (bool, advice.Request, error) {
	req := advice.Request{}

	async, err := extractBool(r, "Async")
	if err != nil {
		return false, req, err
	}

	err = json.NewDecoder(r.Body).Decode(&req)
	if err != nil && !errors.Is(err, io.EOF) {
		return async, req, fmt.Errorf("Invalid json body: %w", err)
	}

	operation, err := advice.ParseOperation(mux.Vars(r)["operation"])
	if err != nil {
		return async, req, err
	}
	req.Operation = operation
	// uids are assigned by the advisor
	req.UID = ""

	return async, req, nil
}

func acceptsWAV(r *http.Request) bool {
	return strings.Contains(r.Header.Get("Accept"), wavContentType)
}

func (s *webService) lookup(w http.ResponseWriter, r *http.Request) {
	uid := mux.Vars(r)["uid"]

	summary, err := s.advisor.Lookup(r.Context(), uid)
	if errors.Is(err, datastore.ErrNotFound) {
		s.reportError(w, http.StatusNotFound, fmt.Errorf("Unknown advice request '%s'", uid))
		return
	}
	if err != nil {
		s.reportError(w, http.StatusInternalServerError, err)
		return
	}

	writeJSON(w, http.StatusOK, summary)
}

func (s *webService) audio(w http.ResponseWriter, r *http.Request) {
	uid := mux.Vars(r)["uid"]

	data, err := s.advisor.Audio(r.Context(), uid)
	if errors.Is(err, bucketstore.ErrObjectNotFound) {
		s.reportError(w, http.StatusNotFound, fmt.Errorf("No audio for advice request '%s'", uid))
		return
	}
	if err != nil {
		s.reportError(w, http.StatusInternalServerError, err)
		return
	}

	w.Header().Set("Content-Type", wavContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s.wav"`, uid))
	w.WriteHeader(http.StatusOK)
	w.Write(data)
}

func (s *webService) deleteAudio(w http.ResponseWriter, r *http.Request) {
	uid := mux.Vars(r)["uid"]

	err := s.advisor.DeleteAudio(r.Context(), uid)
	if errors.Is(err, bucketstore.ErrObjectNotFound) {
		s.reportError(w, http.StatusNotFound, fmt.Errorf("No audio for advice request '%s'", uid))
		return
	}
	if err != nil {
		s.reportError(w, http.StatusInternalServerError, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (s *webService) listAudio(w http.ResponseWriter, r *http.Request) {
	objects, err := s.advisor.ListAudio(r.Context())
	if err != nil {
		s.reportError(w, http.StatusInternalServerError, err)
		return
	}

	writeJSON(w, http.StatusOK, objects)
}

func (s *webService) exportCalendar(w http.ResponseWriter, r *http.Request) {
	events := []calendar.Event{}
	err := json.NewDecoder(r.Body).Decode(&events)
	if err != nil {
		s.reportError(w, http.StatusBadRequest, fmt.Errorf("Error parsing events: %w", err))
		return
	}

	ics, err := calendar.ExportICS(events)
	if err != nil {
		s.reportError(w, http.StatusBadRequest, err)
		return
	}

	w.Header().Set("Content-Type", calendarContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename=%s`, strconv.Quote(calendar.FileName(events))))
	w.WriteHeader(http.StatusOK)
	w.Write(ics)
}

func (s *webService) parseSuggestions(w http.ResponseWriter, r *http.Request) {
	text, err := io.ReadAll(r.Body)
	if err != nil {
		s.reportError(w, http.StatusBadRequest, fmt.Errorf("Error reading request body: %w", err))
		return
	}

	writeJSON(w, http.StatusOK, calendar.ParseSuggestions(string(text)))
}

// reportAdviceError hides provider failures behind one generic message.
func (s *webService) reportAdviceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, advice.ErrInvalidRequest):
		s.reportError(w, http.StatusBadRequest, err)
	case errors.Is(err, advisor.ErrAsyncNotConfigured):
		s.reportError(w, http.StatusNotImplemented, err)
	default:
		s.logger.Error("Advice failed", zap.Error(err))
		writeText(w, http.StatusServiceUnavailable, degradedMessage)
	}
}

func (s *webService) reportError(w http.ResponseWriter, httpResponseStatus int, err error) {
	s.logger.Info("Request failed", zap.Int("status", httpResponseStatus), zap.Error(err))
	writeText(w, httpResponseStatus, err.Error())
}

func writeText(w http.ResponseWriter, status int, text string) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(status)
	io.WriteString(w, text)
}

func writeJSON(w http.ResponseWriter, status int, value interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(value)
}

func extractBool(r *http.Request, fieldName string) (bool, error) {
	valueAsString := r.URL.Query().Get(strings.ToLower(fieldName))
	if valueAsString == "" {
		valueAsString = r.Header.Get(fmt.Sprintf("X-%s", fieldName))
	}

	if valueAsString == "" {
		return false, nil
	}

	value, err := strconv.ParseBool(valueAsString)
	if err != nil {
		return false, fmt.Errorf("Invalid bool parameter '%s': %s", fieldName, valueAsString)
	}

	return value, nil
}

func (s *webService) explain(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html")
	io.WriteString(w, serviceDescription)
}

const serviceDescription = `<html>
<head>
	<title>FarmLink advisor</title>
	<meta charset="utf-8"/>
	<link rel="stylesheet" href="https://stackpath.bootstrapcdn.com/bootstrap/4.3.1/css/bootstrap.min.css" 
		integrity="sha384-ggOyR0iXCbMQv3Xipma34MD+dH/1fQ784/j6cY/iJTQUOhcWr7x9JvoRxT2MZw1T" 
		crossorigin="anonymous">
</head>
<body>
	<main role="main" class="container">
		<h1>FarmLink AI advisor</h1>
		<p>
			Agricultural, market and logistics advice for African farmers and buyers.<br/>
			All requests share one queue towards the AI provider; rate-limited calls are retried
			with exponential backoff before a request fails.
		</p>
		<p>
			Operations: chat, fast-insights, insights, nearby-nodes, calendar-suggestions, buying-tips and speech.
			<ul>
				<li>POST /api/advice/{operation}: answer now, or later with "?async=true" or header "X-Async: true"</li>
				<li>GET /api/advice/{uid}: outcome of an earlier request</li>
				<li>GET /api/advice/{uid}/audio: synthesized speech as WAV</li>
				<li>POST /api/calendar/ics: export calendar events as iCalendar</li>
				<li>POST /api/calendar/suggestions/parse: parse AI calendar suggestions</li>
			</ul>
		</p>

		<p>
		Example request:<br/><br/>

<pre>
curl -vvv \
	--data '{"location": "Nakuru", "crops": ["Maize", "Beans"]}' \
	-X POST \
	"https://farmlink-africa.appspot.com/api/advice/insights"
</pre>
		</p>

	</main>
</body>
</html>
`

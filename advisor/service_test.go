package advisor

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/CODEX19/FarmLink-Africa/advice"
	"github.com/CODEX19/FarmLink-Africa/bucketstore"
	"github.com/CODEX19/FarmLink-Africa/datastore"
	"github.com/CODEX19/FarmLink-Africa/gemini"
	"github.com/CODEX19/FarmLink-Africa/queue"
	"github.com/CODEX19/FarmLink-Africa/uniqueid"
	"github.com/CODEX19/FarmLink-Africa/warehouse"
	"github.com/golang/mock/gomock"
	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"google.golang.org/genai"
)

func newService(generator gemini.ContentGenerator, uidGenerator uniqueid.Generator, taskQueue queue.TaskQueuer) *Service {
	return NewService(zap.NewNop(), generator, uidGenerator,
		warehouse.New(zap.NewNop(), time.Now, datastore.NewMemoryStore(), nil),
		bucketstore.NewMemoryBucketStore(time.Now),
		taskQueue,
		Options{
			Models:      gemini.DefaultModels(),
			Policy:      testPolicy(),
			AudioBucket: "farmlink-audio",
		})
}

func generateUID(ctrl *gomock.Controller, uid string) uniqueid.Generator {
	generatorMock := uniqueid.NewMockGenerator(ctrl)
	generatorMock.
		EXPECT().
		Generate().
		Return(uid).
		AnyTimes()

	return generatorMock
}

func TestAdviseRejectsInvalidRequests(t *testing.T) {
	testCases := []struct {
		name    string
		request advice.Request
	}{
		{name: "Unknown operation", request: advice.Request{Operation: "weather"}},
		{name: "Chat without message", request: advice.Request{Operation: advice.DeepChat}},
		{name: "Chat with unknown role", request: advice.Request{Operation: advice.DeepChat, Message: "hi", History: []advice.Turn{{Role: "system", Text: "x"}}}},
		{name: "Insights without location", request: advice.Request{Operation: advice.AgriInsights, Crops: []string{"Maize"}}},
		{name: "Nodes out of range", request: advice.Request{Operation: advice.NearbyAgriNodes, Latitude: 91}},
		{name: "Speech without text", request: advice.Request{Operation: advice.NeuralSpeech, Text: "  "}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			s := newService(gemini.NewMockContentGenerator(ctrl), nil, nil)
			defer s.Close()

			_, err := s.Advise(context.TODO(), tc.request)
			assert.True(t, errors.Is(err, advice.ErrInvalidRequest), "got %v", err)
		})
	}
}

func TestAdviseRecordsSummary(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	generator := gemini.NewMockContentGenerator(ctrl)
	gomock.InOrder(
		generator.EXPECT().GenerateContent(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, rateLimited),
		generator.EXPECT().GenerateContent(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, rateLimited),
		generator.EXPECT().GenerateContent(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(textResponse("Buy in bulk."), nil),
	)

	s := newService(generator, generateUID(ctrl, "abc"), nil)
	defer s.Close()

	resp, err := s.Advise(context.TODO(), advice.Request{Operation: advice.BuyingTips, Location: "Nairobi"})
	require.NoError(t, err)
	assert.Equal(t, advice.Response{UID: "abc", Operation: advice.BuyingTips, Text: "Buy in bulk."}, resp)

	summary, err := s.Lookup(context.TODO(), "abc")
	require.NoError(t, err)
	assert.Equal(t, warehouse.Completed, summary.Status)
	assert.Equal(t, 2, summary.Stats.RateLimitRetries)
	assert.Equal(t, "Buy in bulk.", summary.Response.Text)
	assert.Equal(t, "Nairobi", summary.Request.Location)
}

func TestAdviseRecordsFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	generator := gemini.NewMockContentGenerator(ctrl)
	generator.EXPECT().GenerateContent(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, rateLimited).Times(4)

	s := newService(generator, generateUID(ctrl, "abc"), nil)
	defer s.Close()

	_, err := s.Advise(context.TODO(), advice.Request{Operation: advice.DeepChat, Message: "Hello"})
	assert.Equal(t, rateLimited, err)

	summary, err := s.Lookup(context.TODO(), "abc")
	require.NoError(t, err)
	assert.Equal(t, warehouse.Failed, summary.Status)
	assert.Equal(t, 3, summary.Stats.RateLimitRetries)
	assert.Contains(t, summary.ErrorMsg, "Quota exceeded")
	assert.Nil(t, summary.Response)
}

func TestAdviseSpeechStoresAudio(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	generator := gemini.NewMockContentGenerator(ctrl)
	generator.
		EXPECT().
		GenerateContent(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		Return(&genai.GenerateContentResponse{
			Candidates: []*genai.Candidate{
				{Content: &genai.Content{Parts: []*genai.Part{genai.NewPartFromBytes([]byte{1, 2, 3, 4}, "audio/L16")}}},
			},
		}, nil)

	s := newService(generator, generateUID(ctrl, "abc"), nil)
	defer s.Close()
	c := context.TODO()

	resp, err := s.Advise(c, advice.Request{Operation: advice.NeuralSpeech, Text: "Harvest now"})
	require.NoError(t, err)
	assert.Equal(t, "speech/abc.wav", resp.AudioObject)

	audio, err := s.Audio(c, "abc")
	require.NoError(t, err)
	assert.Equal(t, resp.Audio, audio)

	objects, err := s.ListAudio(c)
	require.NoError(t, err)
	require.Len(t, objects, 1)
	assert.Equal(t, "speech/abc.wav", objects[0].Name)
	assert.Equal(t, "audio/wav", objects[0].ContentType)

	require.NoError(t, s.DeleteAudio(c, "abc"))
	_, err = s.Audio(c, "abc")
	assert.True(t, errors.Is(err, bucketstore.ErrObjectNotFound))
}

func TestLookupUnknown(t *testing.T) {
	s := newService(nil, nil, nil)
	defer s.Close()

	_, err := s.Lookup(context.TODO(), "unknown")
	assert.True(t, errors.Is(err, datastore.ErrNotFound))
}

func TestAdviseAsyncNotConfigured(t *testing.T) {
	s := newService(nil, nil, nil)
	defer s.Close()

	_, err := s.AdviseAsync(context.TODO(), advice.Request{Operation: advice.BuyingTips, Location: "Nairobi"})
	assert.True(t, errors.Is(err, ErrAsyncNotConfigured))
}

func TestAdviseAsync(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	taskQueue := queue.NewMockTaskQueuer(ctrl)
	taskQueue.
		EXPECT().
		Enqueue(gomock.Any(), gomock.Any()).
		DoAndReturn(func(c context.Context, task queue.Task) error {
			assert.Equal(t, "abc", task.UID)
			assert.Equal(t, "/_ah/tasks/advise", task.WebhookURLPath)

			var req advice.Request
			assert.NoError(t, json.Unmarshal(task.Payload, &req))
			assert.Equal(t, advice.Request{UID: "abc", Operation: advice.BuyingTips, Location: "Nairobi"}, req)
			return nil
		})

	s := newService(nil, generateUID(ctrl, "abc"), taskQueue)
	defer s.Close()

	uid, err := s.AdviseAsync(context.TODO(), advice.Request{Operation: advice.BuyingTips, Location: "Nairobi"})
	require.NoError(t, err)
	assert.Equal(t, "abc", uid)

	summary, err := s.Lookup(context.TODO(), "abc")
	require.NoError(t, err)
	assert.Equal(t, warehouse.Pending, summary.Status)
}

func TestAdviseAsyncEnqueueError(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	taskQueue := queue.NewMockTaskQueuer(ctrl)
	taskQueue.EXPECT().Enqueue(gomock.Any(), gomock.Any()).Return(errors.New("queue unavailable"))

	s := newService(nil, generateUID(ctrl, "abc"), taskQueue)
	defer s.Close()

	_, err := s.AdviseAsync(context.TODO(), advice.Request{Operation: advice.BuyingTips, Location: "Nairobi"})
	assert.EqualError(t, err, "Error submitting advice request buying-tips: abc to queue: queue unavailable")

	summary, err := s.Lookup(context.TODO(), "abc")
	require.NoError(t, err)
	assert.Equal(t, warehouse.Failed, summary.Status)
}

func TestAdviseIgnoresCallerUID(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	generator := gemini.NewMockContentGenerator(ctrl)
	generator.EXPECT().GenerateContent(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(textResponse("Sell now."), nil)

	taskQueue := queue.NewMockTaskQueuer(ctrl)
	taskQueue.EXPECT().Enqueue(gomock.Any(), gomock.Any()).Return(nil)

	uidGenerator := uniqueid.NewMockGenerator(ctrl)
	gomock.InOrder(
		uidGenerator.EXPECT().Generate().Return("victim"),
		uidGenerator.EXPECT().Generate().Return("fresh"),
	)

	s := newService(generator, uidGenerator, taskQueue)
	defer s.Close()

	uid, err := s.AdviseAsync(context.TODO(), advice.Request{Operation: advice.BuyingTips, Location: "Nairobi"})
	require.NoError(t, err)
	assert.Equal(t, "victim", uid)

	resp, err := s.Advise(context.TODO(), advice.Request{UID: "victim", Operation: advice.FastInsights, Location: "Nakuru"})
	require.NoError(t, err)
	assert.Equal(t, "fresh", resp.UID)

	// the pending summary of the first caller is untouched
	summary, err := s.Lookup(context.TODO(), "victim")
	require.NoError(t, err)
	assert.Equal(t, warehouse.Pending, summary.Status)
	assert.Equal(t, advice.BuyingTips, summary.Request.Operation)
}

func TestAdviseAsyncIgnoresCallerUID(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	generator := gemini.NewMockContentGenerator(ctrl)
	generator.EXPECT().GenerateContent(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(textResponse("Buy in bulk."), nil)

	taskQueue := queue.NewMockTaskQueuer(ctrl)
	taskQueue.
		EXPECT().
		Enqueue(gomock.Any(), gomock.Any()).
		DoAndReturn(func(c context.Context, task queue.Task) error {
			assert.Equal(t, "second", task.UID)
			return nil
		})

	uidGenerator := uniqueid.NewMockGenerator(ctrl)
	gomock.InOrder(
		uidGenerator.EXPECT().Generate().Return("done1"),
		uidGenerator.EXPECT().Generate().Return("second"),
	)

	s := newService(generator, uidGenerator, taskQueue)
	defer s.Close()

	_, err := s.Advise(context.TODO(), advice.Request{Operation: advice.BuyingTips, Location: "Nairobi"})
	require.NoError(t, err)

	uid, err := s.AdviseAsync(context.TODO(), advice.Request{UID: "done1", Operation: advice.BuyingTips, Location: "Nairobi"})
	require.NoError(t, err)
	assert.Equal(t, "second", uid)

	// the completed answer stays available
	summary, err := s.Lookup(context.TODO(), "done1")
	require.NoError(t, err)
	assert.Equal(t, warehouse.Completed, summary.Status)
	require.NotNil(t, summary.Response)
	assert.Equal(t, "Buy in bulk.", summary.Response.Text)
}

func TestTaskHandler(t *testing.T) {
	testCases := []struct {
		name                   string
		body                   string
		attempt                int32
		maxAttempts            int32
		callResults            []error
		expectedResponseStatus int
		expectedStatus         warehouse.Status
	}{
		{
			name:                   "Task processing success",
			body:                   `{"uid":"abc","operation":"buying-tips","location":"Nairobi"}`,
			attempt:                1,
			maxAttempts:            5,
			callResults:            []error{nil},
			expectedResponseStatus: 200,
			expectedStatus:         warehouse.Completed,
		},
		{
			name:                   "Rate limited: redeliver",
			body:                   `{"uid":"abc","operation":"buying-tips","location":"Nairobi"}`,
			attempt:                1,
			maxAttempts:            5,
			callResults:            []error{rateLimited, rateLimited, rateLimited, rateLimited},
			expectedResponseStatus: 503,
			expectedStatus:         warehouse.Pending,
		},
		{
			name:                   "Rate limited: last attempt",
			body:                   `{"uid":"abc","operation":"buying-tips","location":"Nairobi"}`,
			attempt:                5,
			maxAttempts:            5,
			callResults:            []error{rateLimited, rateLimited, rateLimited, rateLimited},
			expectedResponseStatus: 200,
			expectedStatus:         warehouse.Failed,
		},
		{
			name:                   "Terminal error",
			body:                   `{"uid":"abc","operation":"buying-tips","location":"Nairobi"}`,
			attempt:                1,
			maxAttempts:            -1,
			callResults:            []error{serverError},
			expectedResponseStatus: 200,
			expectedStatus:         warehouse.Failed,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			generator := gemini.NewMockContentGenerator(ctrl)
			for _, result := range tc.callResults {
				if result == nil {
					generator.EXPECT().GenerateContent(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(textResponse("tips"), nil)
				} else {
					generator.EXPECT().GenerateContent(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, result)
				}
			}

			taskQueue := queue.NewMockTaskQueuer(ctrl)
			taskQueue.EXPECT().IsLastAttempt(gomock.Any(), "abc").Return(tc.attempt, tc.maxAttempts)

			s := newService(generator, nil, taskQueue)
			defer s.Close()

			// when
			httpResp := httptest.NewRecorder()
			s.RegisterEndPoint(mux.NewRouter()).ServeHTTP(httpResp, taskRequest(t, tc.body))

			// then
			assert.Equal(t, tc.expectedResponseStatus, httpResp.Code)
			summary, err := s.Lookup(context.TODO(), "abc")
			require.NoError(t, err)
			assert.Equal(t, tc.expectedStatus, summary.Status)
			assert.Equal(t, tc.attempt, summary.Stats.RetryCount)
			assert.Equal(t, tc.maxAttempts, summary.Stats.MaxRetryCount)
		})
	}
}

func TestTaskHandlerBadPayload(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	s := newService(nil, nil, queue.NewMockTaskQueuer(ctrl))
	defer s.Close()

	httpResp := httptest.NewRecorder()
	s.RegisterEndPoint(mux.NewRouter()).ServeHTTP(httpResp, taskRequest(t, `{"uid":`))

	assert.Equal(t, 400, httpResp.Code)
}

func TestTaskHandlerWithoutUID(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	s := newService(nil, nil, queue.NewMockTaskQueuer(ctrl))
	defer s.Close()

	httpResp := httptest.NewRecorder()
	s.RegisterEndPoint(mux.NewRouter()).ServeHTTP(httpResp, taskRequest(t, `{"operation":"buying-tips","location":"Nairobi"}`))

	assert.Equal(t, 400, httpResp.Code)
}

func TestTaskHandlerInvalidRequestIsFinal(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	taskQueue := queue.NewMockTaskQueuer(ctrl)
	taskQueue.EXPECT().Enqueue(gomock.Any(), gomock.Any()).Return(nil)
	taskQueue.EXPECT().IsLastAttempt(gomock.Any(), "abc").Return(int32(1), int32(5))

	s := newService(nil, generateUID(ctrl, "abc"), taskQueue)
	defer s.Close()

	_, err := s.AdviseAsync(context.TODO(), advice.Request{Operation: advice.BuyingTips, Location: "Nairobi"})
	require.NoError(t, err)

	httpResp := httptest.NewRecorder()
	s.RegisterEndPoint(mux.NewRouter()).ServeHTTP(httpResp, taskRequest(t, `{"uid":"abc","operation":"buying-tips"}`))

	assert.Equal(t, 200, httpResp.Code)

	summary, err := s.Lookup(context.TODO(), "abc")
	require.NoError(t, err)
	assert.Equal(t, warehouse.Failed, summary.Status)
	assert.Equal(t, "invalid advice request: missing location", summary.ErrorMsg)
	assert.Equal(t, int32(1), summary.Stats.RetryCount)
}

func taskRequest(t *testing.T, body string) *http.Request {
	httpReq, err := http.NewRequest("POST", "/_ah/tasks/advise", bytes.NewReader([]byte(body)))
	if err != nil {
		t.Fatalf("Error creating http-request: %s", err)
	}
	httpReq.Header.Set("Content-type", "application/json")
	return httpReq
}

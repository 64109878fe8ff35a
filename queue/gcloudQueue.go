package queue

import (
	"context"
	"fmt"
	"strings"

	cloudtasks "cloud.google.com/go/cloudtasks/apiv2beta3"
	taskspb "cloud.google.com/go/cloudtasks/apiv2beta3/cloudtaskspb"
	"go.uber.org/zap"
)

const defaultQueueName = "default"

type Config struct {
	ProjectID  string
	LocationID string
	QueueName  string
}

func (cfg Config) queuePath() string {
	queueName := cfg.QueueName
	if queueName == "" {
		queueName = defaultQueueName
	}
	return fmt.Sprintf("projects/%s/locations/%s/queues/%s", cfg.ProjectID, cfg.LocationID, queueName)
}

func (cfg Config) taskPath(taskUID string) string {
	return fmt.Sprintf("%s/tasks/%s", cfg.queuePath(), taskUID)
}

// We are not publishing to a service within the appengine project.
// In that case we would have to use "https://<service-name>-dot-<project-name>.appspot.com/url".
func (cfg Config) webhookURL(webhookURLPath string) string {
	return fmt.Sprintf("https://%s.appspot.com/%s", cfg.ProjectID, strings.TrimPrefix(webhookURLPath, "/"))
}

type gcloudTaskQueue struct {
	cfg    Config
	logger *zap.Logger
	client *cloudtasks.Client
}

func NewQueue(c context.Context, logger *zap.Logger, cfg Config) (TaskQueuer, func(), error) {
	cloudTaskClient, err := cloudtasks.NewClient(c)
	if err != nil {
		return nil, nil, fmt.Errorf("Error creating cloudtask-client: %w", err)
	}
	return &gcloudTaskQueue{
			cfg:    cfg,
			logger: logger,
			client: cloudTaskClient,
		}, func() {
			cloudTaskClient.Close()
		}, nil
}

func (q *gcloudTaskQueue) Enqueue(c context.Context, task Task) error {
	taskName := q.cfg.taskPath(task.UID)
	q.logger.Debug("Creating task", zap.String("task", taskName))

	_, err := q.client.CreateTask(c, &taskspb.CreateTaskRequest{
		Parent: q.cfg.queuePath(),
		Task: &taskspb.Task{
			Name: taskName, // de-duplicate
			PayloadType: &taskspb.Task_HttpRequest{
				HttpRequest: &taskspb.HttpRequest{
					HttpMethod: taskspb.HttpMethod_POST,
					Url:        q.cfg.webhookURL(task.WebhookURLPath),
					Headers:    map[string]string{"Content-Type": "application/json"},
					Body:       task.Payload,
				},
			},
			View: taskspb.Task_FULL,
		},
	})
	if err != nil {
		return fmt.Errorf("Error submitting task %s to queue: %w", task.UID, err)
	}
	return nil
}

func (q *gcloudTaskQueue) IsLastAttempt(c context.Context, taskUID string) (int32, int32) {
	var numRetries int32 = 0
	var maxRetries int32 = -1

	queue, err := q.getQueue(c)
	if err != nil {
		q.logger.Warn("Error determining retry config", zap.Error(err))
		return numRetries, maxRetries
	}

	if queue.RetryConfig != nil {
		maxRetries = queue.RetryConfig.MaxAttempts
	}

	task, err := q.getTask(c, taskUID)
	if err != nil {
		q.logger.Warn("Error determining dispatch count", zap.String("uid", taskUID), zap.Error(err))
		return numRetries, maxRetries
	}

	return task.DispatchCount, maxRetries
}

func (q *gcloudTaskQueue) getQueue(c context.Context) (*taskspb.Queue, error) {
	queueName := q.cfg.queuePath()
	queue, err := q.client.GetQueue(c, &taskspb.GetQueueRequest{
		Name: queueName,
	})
	if err != nil {
		return nil, fmt.Errorf("Error getting queue with name %s: %w", queueName, err)
	}
	return queue, nil
}

func (q *gcloudTaskQueue) getTask(c context.Context, taskUID string) (*taskspb.Task, error) {
	task, err := q.client.GetTask(c, &taskspb.GetTaskRequest{
		Name: q.cfg.taskPath(taskUID),
	})
	if err != nil {
		return nil, fmt.Errorf("Error getting task with uid %s: %w", taskUID, err)
	}
	return task, nil
}

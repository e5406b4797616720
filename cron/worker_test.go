package cron

import (
	"context"
	"errors"
	"testing"

	"halo/models"
	"halo/services/tasks"

	"github.com/hibiken/asynq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingMailer struct {
	sent []models.EmailPayload
	err  error
}

func (m *recordingMailer) Send(_ context.Context, msg models.EmailPayload) error {
	if m.err != nil {
		return m.err
	}
	m.sent = append(m.sent, msg)
	return nil
}

func TestHandleEmailTaskDelivers(t *testing.T) {
	mailer := &recordingMailer{}
	task, _, err := tasks.NewEmailTask(models.EmailPayload{To: "a@b.co", Subject: "Hi", HTML: "<p>x</p>"})
	require.NoError(t, err)

	require.NoError(t, HandleEmailTask(mailer)(context.Background(), task))
	require.Len(t, mailer.sent, 1)
	assert.Equal(t, "a@b.co", mailer.sent[0].To)
}

func TestHandleEmailTaskPropagatesSendFailure(t *testing.T) {
	mailer := &recordingMailer{err: errors.New("smtp down")}
	task, _, err := tasks.NewEmailTask(models.EmailPayload{To: "a@b.co"})
	require.NoError(t, err)

	err = HandleEmailTask(mailer)(context.Background(), task)
	require.Error(t, err)
	assert.False(t, errors.Is(err, asynq.SkipRetry))
}

func TestHandleEmailTaskSkipsRetryOnBadPayload(t *testing.T) {
	mailer := &recordingMailer{}
	task := asynq.NewTask(tasks.TypeSendEmail, []byte("{not json"))

	err := HandleEmailTask(mailer)(context.Background(), task)
	require.Error(t, err)
	assert.True(t, errors.Is(err, asynq.SkipRetry))
	assert.Empty(t, mailer.sent)
}

package tasks

import (
	"testing"

	"halo/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewEmailTask(t *testing.T) {
	in := models.EmailPayload{To: "a@example.com", Subject: "Hi", HTML: "<p>hi</p>"}

	task, opts, err := NewEmailTask(in)
	require.NoError(t, err)
	assert.Equal(t, TypeSendEmail, task.Type())
	assert.NotEmpty(t, opts)

	out, err := ParseEmailTask(task)
	require.NoError(t, err)
	assert.Equal(t, in, out)
}

package eventlog

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestCleanupJob_Process(t *testing.T) {
	mockRepo := new(MockRepository)
	service := NewService(mockRepo)
	job := NewCleanupJob(service, 10)
	ctx := context.Background()

	mockRepo.On("CleanupOldEvents", mock.Anything, 10).Return(int64(100), nil)

	count, err := job.Process(ctx)
	assert.NoError(t, err)
	assert.Equal(t, int64(100), count)
	mockRepo.AssertExpectations(t)
}

func TestCleanupJob_ProcessError(t *testing.T) {
	mockRepo := new(MockRepository)
	job := NewCleanupJob(NewService(mockRepo), 3)

	mockRepo.On("CleanupOldEvents", mock.Anything, 3).Return(int64(0), errors.New("locked"))

	_, err := job.Process(context.Background())
	assert.Error(t, err)
}

package task

import (
	"errors"
	"testing"
	"time"

	"github.com/commitment-parties/agent/src/utils/config"

	"github.com/cenkalti/backoff/v4"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

func TestTaskTestSuite(t *testing.T) {
	suite.Run(t, new(TaskTestSuite))
}

type TaskTestSuite struct {
	suite.Suite
	config *config.Config
}

func (s *TaskTestSuite) SetupSuite() {
	s.config = config.Default()
}

func (s *TaskTestSuite) TestLifecycle() {
	task := NewTask(s.config, "test-task")

	err := task.Start()
	require.NoError(s.T(), err)

	task.StopWait()
}

func (s *TaskTestSuite) TestSubtaskStopsWithParent() {
	started := make(chan struct{})

	var child *Task
	child = NewTask(s.config, "child").
		WithSubtaskFunc(func() error {
			close(started)
			<-child.StopChannel
			return nil
		})

	parent := NewTask(s.config, "parent").
		WithSubtask(child)

	err := parent.Start()
	require.NoError(s.T(), err)

	<-started
	parent.StopWait()
}

func (s *TaskTestSuite) TestRetrySucceedsAfterTransientErrors() {
	attempts := 0
	err := NewRetry().
		WithMaxInterval(time.Millisecond).
		Run(func() error {
			attempts++
			if attempts < 3 {
				return errors.New("transient")
			}
			return nil
		})

	require.NoError(s.T(), err)
	require.Equal(s.T(), 3, attempts)
}

func (s *TaskTestSuite) TestRetryStopsOnPermanentError() {
	terminal := errors.New("terminal")
	attempts := 0

	err := NewRetry().
		WithMaxInterval(time.Millisecond).
		WithOnError(func(err error, isDurationAcceptable bool) error {
			return backoff.Permanent(err)
		}).
		Run(func() error {
			attempts++
			return terminal
		})

	require.ErrorIs(s.T(), err, terminal)
	require.Equal(s.T(), 1, attempts)
}

func (s *TaskTestSuite) TestHoleFlushesBatch() {
	input := make(chan int)
	flushed := make(chan []int, 1)

	hole := NewHole[int](s.config, "test-hole").
		WithBatchSize(3).
		WithInputChannel(input).
		WithOnFlush(time.Hour, func(batch []int) error {
			if len(batch) > 0 {
				flushed <- batch
			}
			return nil
		})

	err := hole.Start()
	require.NoError(s.T(), err)

	input <- 1
	input <- 2
	input <- 3

	select {
	case batch := <-flushed:
		require.Equal(s.T(), []int{1, 2, 3}, batch)
	case <-time.After(5 * time.Second):
		s.T().Fatal("batch was not flushed")
	}

	close(input)
	hole.StopWait()
}

func (s *TaskTestSuite) TestHoleFlushesRemainderOnClose() {
	input := make(chan int)
	flushed := make(chan []int, 1)

	hole := NewHole[int](s.config, "test-hole").
		WithBatchSize(100).
		WithInputChannel(input).
		WithOnFlush(time.Hour, func(batch []int) error {
			if len(batch) > 0 {
				flushed <- batch
			}
			return nil
		})

	err := hole.Start()
	require.NoError(s.T(), err)

	input <- 7
	close(input)

	select {
	case batch := <-flushed:
		require.Equal(s.T(), []int{7}, batch)
	case <-time.After(5 * time.Second):
		s.T().Fatal("remainder was not flushed")
	}

	hole.StopWait()
}

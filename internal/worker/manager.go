package worker

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/wnt/guiverse/internal/metrics"
)

// ErrStarted is returned when tasks are added or started twice
var ErrStarted = errors.New("manager already started")

// Task is a long-lived process component. Run returns when ctx is done.
type Task struct {
	Name string
	Run  func(ctx context.Context) error
}

// Manager runs the process tasks in one errgroup. The first task to fail
// cancels the others.
type Manager struct {
	tasks           []Task
	shutdownTimeout time.Duration
	logger          zerolog.Logger
	mutex           sync.Mutex
	ctx             context.Context
	cancel          context.CancelFunc
	eg              *errgroup.Group
	started         bool
	stopped         bool
}

// NewManager creates a manager whose tasks stop when parent is done
func NewManager(parent context.Context, shutdownTimeout time.Duration, logger zerolog.Logger) *Manager {
	ctx, cancel := context.WithCancel(parent)
	eg, egCtx := errgroup.WithContext(ctx)

	return &Manager{
		shutdownTimeout: shutdownTimeout,
		logger:          logger.With().Str("component", "task_manager").Logger(),
		ctx:             egCtx,
		cancel:          cancel,
		eg:              eg,
	}
}

// Add registers a task. Tasks cannot be added after Start.
func (m *Manager) Add(name string, run func(ctx context.Context) error) error {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	if m.started {
		return ErrStarted
	}
	m.tasks = append(m.tasks, Task{Name: name, Run: run})
	return nil
}

// Start launches every task
func (m *Manager) Start() error {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	if m.started {
		return ErrStarted
	}
	m.started = true

	m.logger.Info().Int("tasks", len(m.tasks)).Msg("Starting tasks")

	for _, task := range m.tasks {
		task := task
		m.eg.Go(func() error {
			metrics.TasksRunning.Inc()
			defer metrics.TasksRunning.Dec()

			log := m.logger.With().Str("task", task.Name).Logger()
			log.Debug().Msg("Task started")

			err := task.Run(m.ctx)
			if err != nil && !errors.Is(err, context.Canceled) {
				log.Error().Err(err).Msg("Task failed")
				return fmt.Errorf("%s: %w", task.Name, err)
			}
			log.Debug().Msg("Task stopped")
			return nil
		})
	}
	return nil
}

// Wait blocks until every task has returned and reports the first failure
func (m *Manager) Wait() error {
	return m.eg.Wait()
}

// Done is closed when the tasks are told to stop
func (m *Manager) Done() <-chan struct{} {
	return m.ctx.Done()
}

// Stop cancels the tasks and waits up to the shutdown timeout
func (m *Manager) Stop() error {
	m.mutex.Lock()
	if m.stopped {
		m.mutex.Unlock()
		return nil
	}
	m.stopped = true
	m.mutex.Unlock()

	m.logger.Info().Msg("Stopping tasks...")
	m.cancel()

	done := make(chan error, 1)
	go func() {
		done <- m.eg.Wait()
	}()

	select {
	case err := <-done:
		if err != nil {
			m.logger.Error().Err(err).Msg("Error during shutdown")
			return err
		}
	case <-time.After(m.shutdownTimeout):
		m.logger.Warn().Dur("timeout", m.shutdownTimeout).Msg("Shutdown timed out")
		return fmt.Errorf("shutdown timed out after %s", m.shutdownTimeout)
	}

	m.logger.Info().Msg("Tasks stopped")
	return nil
}

// After returns a task that runs once ready is closed. It returns nil if ctx
// is done first.
func After(ready <-chan struct{}, run func(ctx context.Context) error) func(ctx context.Context) error {
	return func(ctx context.Context) error {
		select {
		case <-ready:
			return run(ctx)
		case <-ctx.Done():
			return nil
		}
	}
}

// ServeHTTP returns a task that serves srv until ctx is done, then shuts it
// down within timeout
func ServeHTTP(srv *http.Server, timeout time.Duration) func(ctx context.Context) error {
	return func(ctx context.Context) error {
		errCh := make(chan error, 1)
		go func() {
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				errCh <- err
			}
			close(errCh)
		}()

		select {
		case err, ok := <-errCh:
			if ok {
				return fmt.Errorf("listen on %s: %w", srv.Addr, err)
			}
			return nil
		case <-ctx.Done():
		}

		shutdownCtx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}

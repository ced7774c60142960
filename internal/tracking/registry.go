package tracking

import (
	"context"
	"errors"
	"fmt"
	"sync"
)

// TaskID names the task that receives background location batches.
const TaskID = "background-location-task"

// ErrUnknownTask is returned by Dispatch for an id nobody registered.
var ErrUnknownTask = errors.New("unknown task")

// Handler consumes one batch of samples.
type Handler func(ctx context.Context, batch []Sample) error

// Registry maps task ids to handlers. Registration happens once per id, at
// startup, before any batch is delivered.
type Registry struct {
	mu       sync.RWMutex
	handlers map[string]Handler
}

func NewRegistry() *Registry {
	return &Registry{handlers: make(map[string]Handler)}
}

// Register binds h to taskID. It returns false, leaving the existing handler
// in place, if the id is already registered.
func (r *Registry) Register(taskID string, h Handler) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.handlers[taskID]; ok {
		return false
	}
	r.handlers[taskID] = h
	return true
}

func (r *Registry) Registered(taskID string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.handlers[taskID]
	return ok
}

// Dispatch delivers batch to the handler for taskID.
func (r *Registry) Dispatch(ctx context.Context, taskID string, batch []Sample) error {
	r.mu.RLock()
	h, ok := r.handlers[taskID]
	r.mu.RUnlock()
	if !ok {
		return fmt.Errorf("dispatch %q: %w", taskID, ErrUnknownTask)
	}
	return h(ctx, batch)
}

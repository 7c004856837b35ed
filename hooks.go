package gazetteer

import "sync"

// Hook function types for registry events
type (
	// RecordCreatedHook is called when a sync synthesizes a new location record
	RecordCreatedHook func(id string)

	// RecordUpdatedHook is called when a sync merges into an existing location record
	RecordUpdatedHook func(id string)
)

// hooks manages event callbacks for registry changes.
type hooks struct {
	mu        sync.RWMutex
	onCreated []RecordCreatedHook
	onUpdated []RecordUpdatedHook
}

// newHooks creates a new hooks instance.
func newHooks() *hooks {
	return &hooks{}
}

func (h *hooks) onRecordCreated(fn RecordCreatedHook) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.onCreated = append(h.onCreated, fn)
}

func (h *hooks) onRecordUpdated(fn RecordUpdatedHook) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.onUpdated = append(h.onUpdated, fn)
}

// triggerSync fires callbacks for the records a completed sync touched.
// Dry runs never reach here.
func (h *hooks) triggerSync(created, updated []string) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for _, id := range created {
		for _, hook := range h.onCreated {
			hook(id)
		}
	}
	for _, id := range updated {
		for _, hook := range h.onUpdated {
			hook(id)
		}
	}
}

package jigsawstack

import (
	"errors"
	"fmt"
	"slices"
	"sync"
)

// Registry holds named clients, typically one per API key or environment.
// Options given to NewRegistry apply to every client before its own.
type Registry struct {
	clients     map[string]*Client
	mu          sync.RWMutex
	defaultOpts []ClientOption
}

func NewRegistry(defaultOpts ...ClientOption) *Registry {
	return &Registry{
		clients:     make(map[string]*Client),
		mu:          sync.RWMutex{},
		defaultOpts: defaultOpts,
	}
}

// Register creates a client for apiKey under name. A client already
// registered under name is replaced and closed.
func (r *Registry) Register(name, apiKey string, opts ...ClientOption) error {
	allOpts := make([]ClientOption, 0, len(r.defaultOpts)+len(opts))
	allOpts = append(allOpts, r.defaultOpts...)
	allOpts = append(allOpts, opts...)

	client, err := New(apiKey, allOpts...)
	if err != nil {
		return fmt.Errorf("jigsawstack: register %q: %w", name, err)
	}

	r.mu.Lock()
	previous := r.clients[name]
	r.clients[name] = client
	r.mu.Unlock()

	if previous != nil {
		return previous.Close()
	}

	return nil
}

func (r *Registry) Client(name string) (*Client, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	client, ok := r.clients[name]

	return client, ok
}

// Unregister removes and closes the client registered under name.
func (r *Registry) Unregister(name string) (bool, error) {
	r.mu.Lock()
	client, ok := r.clients[name]
	delete(r.clients, name)
	r.mu.Unlock()

	if !ok {
		return false, nil
	}

	return true, client.Close()
}

func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.clients))
	for name := range r.clients {
		names = append(names, name)
	}

	slices.Sort(names)

	return names
}

// Close closes every registered client and empties the registry.
func (r *Registry) Close() error {
	r.mu.Lock()
	clients := r.clients
	r.clients = make(map[string]*Client)
	r.mu.Unlock()

	var errs []error
	for _, client := range clients {
		errs = append(errs, client.Close())
	}

	return errors.Join(errs...)
}

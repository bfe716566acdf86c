package host

import (
	"context"
	"fmt"
	"sort"
)

// Backend plays a Stream on an audio device until it ends or ctx is done
type Backend interface {
	Play(ctx context.Context, s *Stream) error
}

// backends is filled by the build-tagged backend files
var backends = map[string]func() Backend{}

// NewBackend returns the backend registered under name
func NewBackend(name string) (Backend, error) {
	newFn, ok := backends[name]
	if !ok {
		return nil, fmt.Errorf("unknown audio backend %q (available: %v)", name, Backends())
	}
	return newFn(), nil
}

// Backends lists the registered backend names
func Backends() []string {
	names := make([]string, 0, len(backends))
	for name := range backends {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

package dotenv

import (
	"fmt"
	"os"
	"sync"
)

// Environment is the global tier of a Store: a key/value table shared with
// everything else that holds the same Environment.
type Environment interface {
	Lookup(key string) (string, bool)
	Set(key, value string) error
	Unset(key string) error
	// Clear removes every variable this tier has been given through Set.
	Clear() error
}

// exported tracks the keys written through any OSEnvironment in this process.
var exported = struct {
	sync.Mutex
	keys map[string]struct{}
}{keys: make(map[string]struct{})}

// OSEnvironment writes through to the real process environment, so values are
// visible to os.Getenv and inherited by subprocesses. All OSEnvironment values
// share one tier.
type OSEnvironment struct{}

func (OSEnvironment) Lookup(key string) (string, bool) {
	return os.LookupEnv(key)
}

func (OSEnvironment) Set(key, value string) error {
	if err := os.Setenv(key, value); err != nil {
		return fmt.Errorf("failed to set %s: %w", key, err)
	}
	exported.Lock()
	exported.keys[key] = struct{}{}
	exported.Unlock()
	return nil
}

func (OSEnvironment) Unset(key string) error {
	if err := os.Unsetenv(key); err != nil {
		return fmt.Errorf("failed to unset %s: %w", key, err)
	}
	exported.Lock()
	delete(exported.keys, key)
	exported.Unlock()
	return nil
}

// Clear unsets the variables previously written through an OSEnvironment.
// Inherited variables such as PATH are left alone.
func (OSEnvironment) Clear() error {
	exported.Lock()
	defer exported.Unlock()
	for key := range exported.keys {
		if err := os.Unsetenv(key); err != nil {
			return fmt.Errorf("failed to unset %s: %w", key, err)
		}
		delete(exported.keys, key)
	}
	return nil
}

// MapEnvironment is an in-memory Environment. Stores sharing one
// *MapEnvironment observe each other's writes.
type MapEnvironment struct {
	vars map[string]string
}

func NewMapEnvironment() *MapEnvironment {
	return &MapEnvironment{vars: make(map[string]string)}
}

func (m *MapEnvironment) Lookup(key string) (string, bool) {
	v, ok := m.vars[key]
	return v, ok
}

func (m *MapEnvironment) Set(key, value string) error {
	m.vars[key] = value
	return nil
}

func (m *MapEnvironment) Unset(key string) error {
	delete(m.vars, key)
	return nil
}

func (m *MapEnvironment) Clear() error {
	m.vars = make(map[string]string)
	return nil
}

// Len returns the number of variables held.
func (m *MapEnvironment) Len() int {
	return len(m.vars)
}

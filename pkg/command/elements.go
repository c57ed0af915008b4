package command

import (
	"errors"
	"fmt"
	"sync"

	"github.com/yaklabco/gobbcode/pkg/bbast"
	"github.com/yaklabco/gobbcode/pkg/config"
)

// Errors returned by Elements.
var (
	ErrEmptyElementName = errors.New("element name is empty")
	ErrDuplicateElement = errors.New("element already registered")
)

// Elements is a set of named elements that command links may target.
// It is safe for concurrent use.
type Elements struct {
	mu     sync.RWMutex
	byName map[string]bbast.ElementRef
}

// NewElements creates an element set.
func NewElements() *Elements {
	return &Elements{byName: make(map[string]bbast.ElementRef)}
}

// Add registers an element by name.
func (e *Elements) Add(ref bbast.ElementRef) error {
	if ref.Name == "" {
		return ErrEmptyElementName
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	if _, exists := e.byName[ref.Name]; exists {
		return fmt.Errorf("%w: %s", ErrDuplicateElement, ref.Name)
	}
	e.byName[ref.Name] = ref
	return nil
}

// FindByName implements the parser's element finder. Names are case-sensitive.
func (e *Elements) FindByName(name string) (bbast.ElementRef, bool) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	ref, ok := e.byName[name]
	return ref, ok
}

// Len returns the number of registered elements.
func (e *Elements) Len() int {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return len(e.byName)
}

// ElementsFromConfig builds an element set from configured elements.
func ElementsFromConfig(elements []config.ElementConfig) (*Elements, error) {
	set := NewElements()
	for _, element := range elements {
		if err := set.Add(bbast.ElementRef{Name: element.Name, Kind: element.Kind}); err != nil {
			return nil, err
		}
	}
	return set, nil
}

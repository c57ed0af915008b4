// Package command provides in-memory command and element registries that
// the bbcode parser consults when it builds links.
package command

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"net/url"
	"slices"
	"strings"
	"sync"

	"github.com/yaklabco/gobbcode/pkg/bbast"
	"github.com/yaklabco/gobbcode/pkg/config"
)

// Errors returned by the registries.
var (
	ErrEmptyURI         = errors.New("command uri is empty")
	ErrDuplicateCommand = errors.New("command already registered")
	ErrNotCommandLink   = errors.New("link is not bound to a command")
	ErrUnknownCommand   = errors.New("command not registered")
	ErrNoHandler        = errors.New("command has no handler")
)

// Handler executes a command. parameter is the link's parameter ("" when
// absent) and target the resolved element, if any.
type Handler func(ctx context.Context, parameter string, target *bbast.ElementRef) error

// Command is an invokable action bound to a URI.
type Command struct {
	Name        string
	Description string
	Handler     Handler
}

// Dictionary maps link URIs to commands. It is safe for concurrent use.
type Dictionary struct {
	mu       sync.RWMutex
	commands map[string]Command
}

// NewDictionary creates an empty dictionary.
func NewDictionary() *Dictionary {
	return &Dictionary{commands: make(map[string]Command)}
}

// NormalizeURI returns the key a URI is registered and looked up under.
// Scheme and host are compared case-insensitively.
func NormalizeURI(uri string) (string, error) {
	uri = strings.TrimSpace(uri)
	if uri == "" {
		return "", ErrEmptyURI
	}
	parsed, err := url.Parse(uri)
	if err != nil {
		return "", fmt.Errorf("parse command uri: %w", err)
	}
	parsed.Scheme = strings.ToLower(parsed.Scheme)
	parsed.Host = strings.ToLower(parsed.Host)
	return parsed.String(), nil
}

// Register binds cmd to uri. Registering the same URI twice is an error.
func (d *Dictionary) Register(uri string, cmd Command) error {
	key, err := NormalizeURI(uri)
	if err != nil {
		return err
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	if _, exists := d.commands[key]; exists {
		return fmt.Errorf("%w: %s", ErrDuplicateCommand, key)
	}
	if cmd.Name == "" {
		cmd.Name = key
	}
	d.commands[key] = cmd
	return nil
}

// Resolve implements the parser's command resolver.
func (d *Dictionary) Resolve(uri string) (bbast.CommandRef, bool) {
	key, err := NormalizeURI(uri)
	if err != nil {
		return bbast.CommandRef{}, false
	}

	d.mu.RLock()
	defer d.mu.RUnlock()

	cmd, ok := d.commands[key]
	if !ok {
		return bbast.CommandRef{}, false
	}
	return bbast.CommandRef{Name: cmd.Name, URI: key}, true
}

// Lookup returns the command registered under uri.
func (d *Dictionary) Lookup(uri string) (Command, bool) {
	key, err := NormalizeURI(uri)
	if err != nil {
		return Command{}, false
	}

	d.mu.RLock()
	defer d.mu.RUnlock()
	cmd, ok := d.commands[key]
	return cmd, ok
}

// SetHandler attaches a handler to an already registered command.
func (d *Dictionary) SetHandler(uri string, handler Handler) error {
	key, err := NormalizeURI(uri)
	if err != nil {
		return err
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	cmd, ok := d.commands[key]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownCommand, key)
	}
	cmd.Handler = handler
	d.commands[key] = cmd
	return nil
}

// Entry pairs a registered URI with its command.
type Entry struct {
	URI     string
	Command Command
}

// All returns every registered command sorted by URI.
func (d *Dictionary) All() []Entry {
	d.mu.RLock()
	defer d.mu.RUnlock()

	entries := make([]Entry, 0, len(d.commands))
	for uri, cmd := range d.commands {
		entries = append(entries, Entry{URI: uri, Command: cmd})
	}
	slices.SortFunc(entries, func(a, b Entry) int {
		return cmp.Compare(a.URI, b.URI)
	})
	return entries
}

// Len returns the number of registered commands.
func (d *Dictionary) Len() int {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return len(d.commands)
}

// Execute runs the handler of the command a link is bound to.
func (d *Dictionary) Execute(ctx context.Context, link *bbast.LinkAttrs) error {
	if !link.IsCommand() {
		return ErrNotCommandLink
	}

	cmd, ok := d.Lookup(link.Command.URI)
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownCommand, link.Command.URI)
	}
	if cmd.Handler == nil {
		return fmt.Errorf("%w: %s", ErrNoHandler, cmd.Name)
	}

	var parameter string
	if link.Parameter != nil {
		parameter = *link.Parameter
	}
	if err := cmd.Handler(ctx, parameter, link.Target); err != nil {
		return fmt.Errorf("execute %s: %w", cmd.Name, err)
	}
	return nil
}

// FromConfig builds a dictionary from configured commands. The commands
// have no handlers; attach them with SetHandler.
func FromConfig(commands map[string]config.CommandConfig) (*Dictionary, error) {
	dict := NewDictionary()
	var errs []error
	for uri, cfg := range commands {
		err := dict.Register(uri, Command{Name: cfg.Name, Description: cfg.Description})
		if err != nil {
			errs = append(errs, fmt.Errorf("command %q: %w", uri, err))
		}
	}
	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}
	return dict, nil
}

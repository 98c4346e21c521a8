package valuer

import (
	"fmt"
	"sort"
	"sync"

	"github.com/gregtusar/exotics/pkg/contract"
	"github.com/gregtusar/exotics/pkg/models"
	"github.com/sirupsen/logrus"
)

// Entry is a named contract together with the spec it was built from.
type Entry struct {
	Spec     models.ContractSpec
	Contract contract.Contract
}

func (e Entry) Name() string {
	return e.Spec.DisplayName()
}

// Book is a named portfolio of contracts. It is safe for concurrent use.
type Book struct {
	entries map[string]Entry
	logger  *logrus.Logger
	mu      sync.RWMutex
}

func NewBook(logger *logrus.Logger) *Book {
	return &Book{
		entries: make(map[string]Entry),
		logger:  logger,
	}
}

// Add builds spec and stores it under its display name.
func (b *Book) Add(spec models.ContractSpec) (Entry, error) {
	c, err := Build(spec)
	if err != nil {
		return Entry{}, fmt.Errorf("build %s: %w", spec.DisplayName(), err)
	}
	entry := Entry{Spec: spec, Contract: c}

	b.mu.Lock()
	defer b.mu.Unlock()

	name := entry.Name()
	if _, exists := b.entries[name]; exists {
		return Entry{}, fmt.Errorf("contract %s already exists: %w", name, ErrDuplicate)
	}

	b.entries[name] = entry
	b.logger.WithFields(logrus.Fields{
		"contract": name,
		"kind":     spec.Kind,
	}).Info("Added contract")
	return entry, nil
}

func (b *Book) Remove(name string) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if _, exists := b.entries[name]; !exists {
		return fmt.Errorf("contract %s: %w", name, ErrNotFound)
	}

	delete(b.entries, name)
	b.logger.WithField("contract", name).Info("Removed contract")
	return nil
}

func (b *Book) Get(name string) (Entry, bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	e, ok := b.entries[name]
	return e, ok
}

// Entries returns every entry sorted by name.
func (b *Book) Entries() []Entry {
	b.mu.RLock()
	entries := make([]Entry, 0, len(b.entries))
	for _, e := range b.entries {
		entries = append(entries, e)
	}
	b.mu.RUnlock()

	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Name() < entries[j].Name()
	})
	return entries
}

func (b *Book) Len() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.entries)
}

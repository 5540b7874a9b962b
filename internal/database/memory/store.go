// Package memory is an in-process storage backend. Units of work are
// serialized and operate on a private copy of the state that replaces the
// committed state on Commit, which gives the same observable isolation as
// row locks in Postgres for a single process.
package memory

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/osse101/StudyGarden_Go/internal/domain"
	"github.com/osse101/StudyGarden_Go/internal/repository"
)

type userItemKey struct {
	userID string
	itemID int
}

type ledgerRefKey struct {
	userID    string
	entryType domain.LedgerType
	refID     string
}

type state struct {
	wallets   map[string]domain.Wallet
	ledger    []domain.LedgerEntry
	ledgerRef map[ledgerRefKey]int
	holdings  map[userItemKey]domain.Holding
	unlocks   map[userItemKey]domain.SeedUnlock
	sessions  map[string]domain.TimerSession
	plots     map[string]domain.GardenPlot
	plants    map[string]domain.Plant
}

func newState() *state {
	return &state{
		wallets:   make(map[string]domain.Wallet),
		ledgerRef: make(map[ledgerRefKey]int),
		holdings:  make(map[userItemKey]domain.Holding),
		unlocks:   make(map[userItemKey]domain.SeedUnlock),
		sessions:  make(map[string]domain.TimerSession),
		plots:     make(map[string]domain.GardenPlot),
		plants:    make(map[string]domain.Plant),
	}
}

func (s *state) clone() *state {
	c := &state{
		wallets:   make(map[string]domain.Wallet, len(s.wallets)),
		ledger:    append([]domain.LedgerEntry(nil), s.ledger...),
		ledgerRef: make(map[ledgerRefKey]int, len(s.ledgerRef)),
		holdings:  make(map[userItemKey]domain.Holding, len(s.holdings)),
		unlocks:   make(map[userItemKey]domain.SeedUnlock, len(s.unlocks)),
		sessions:  make(map[string]domain.TimerSession, len(s.sessions)),
		plots:     make(map[string]domain.GardenPlot, len(s.plots)),
		plants:    make(map[string]domain.Plant, len(s.plants)),
	}
	for k, v := range s.wallets {
		c.wallets[k] = v
	}
	for k, v := range s.ledgerRef {
		c.ledgerRef[k] = v
	}
	for k, v := range s.holdings {
		v.Metadata = cloneRaw(v.Metadata)
		c.holdings[k] = v
	}
	for k, v := range s.unlocks {
		c.unlocks[k] = v
	}
	for k, v := range s.sessions {
		c.sessions[k] = v
	}
	for k, v := range s.plots {
		c.plots[k] = v
	}
	for k, v := range s.plants {
		c.plants[k] = v
	}
	return c
}

// Store is the shared in-memory database. Use the accessor methods to get
// per-concern repositories.
type Store struct {
	txMu    sync.Mutex   // held for the lifetime of a unit of work
	stateMu sync.RWMutex // guards the committed state pointer
	state   *state

	catalogMu sync.RWMutex
	items     map[int]domain.Item
	itemSeq   int

	subjectsMu sync.RWMutex
	subjects   map[string]string // subject id -> owner user id

	eventsMu sync.Mutex
	events   []repository.EventLogEntry
	eventSeq int64
}

// NewStore creates an empty store
func NewStore() *Store {
	return &Store{
		state:    newState(),
		items:    make(map[int]domain.Item),
		subjects: make(map[string]string),
	}
}

func (s *Store) read(fn func(st *state)) {
	s.stateMu.RLock()
	defer s.stateMu.RUnlock()
	fn(s.state)
}

func (s *Store) begin(ctx context.Context) (*Tx, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.txMu.Lock()
	s.stateMu.RLock()
	st := s.state.clone()
	s.stateMu.RUnlock()
	return &Tx{store: s, st: st}, nil
}

// AddSubject registers a study subject owned by userID
func (s *Store) AddSubject(subjectID, userID string) {
	s.subjectsMu.Lock()
	defer s.subjectsMu.Unlock()
	s.subjects[subjectID] = userID
}

// IsSubjectOwnedBy implements repository.Subjects
func (s *Store) IsSubjectOwnedBy(_ context.Context, subjectID, userID string) (bool, error) {
	s.subjectsMu.RLock()
	defer s.subjectsMu.RUnlock()
	owner, ok := s.subjects[subjectID]
	return ok && owner == userID, nil
}

// Tx is a unit of work over a private copy of the state
type Tx struct {
	store *Store
	st    *state
	done  bool
}

// Commit publishes the transaction's state
func (t *Tx) Commit(_ context.Context) error {
	if t.done {
		return repository.ErrTxClosed
	}
	t.store.stateMu.Lock()
	t.store.state = t.st
	t.store.stateMu.Unlock()
	t.done = true
	t.store.txMu.Unlock()
	return nil
}

// Rollback discards the transaction's state
func (t *Tx) Rollback(_ context.Context) error {
	if t.done {
		return repository.ErrTxClosed
	}
	t.done = true
	t.st = nil
	t.store.txMu.Unlock()
	return nil
}

func (t *Tx) check() error {
	if t.done {
		return repository.ErrTxClosed
	}
	return nil
}

func cloneRaw(raw json.RawMessage) json.RawMessage {
	if raw == nil {
		return nil
	}
	return append(json.RawMessage(nil), raw...)
}

var (
	_ repository.WalletTx    = (*Tx)(nil)
	_ repository.InventoryTx = (*Tx)(nil)
	_ repository.TimerTx     = (*Tx)(nil)
	_ repository.GardenTx    = (*Tx)(nil)
	_ repository.Subjects    = (*Store)(nil)
)

// Package ledger holds the authoritative in-memory account state and exposes
// the mutation primitives behind the chat command surface. All state lives
// under one coarse mutex; persistence is delegated to an injected Persister
// so the package stays free of file I/O.
package ledger

import (
	"context"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/pterm/pterm"
	"github.com/shopspring/decimal"

	"github.com/larch-c/xfbank/internal/constants"
)

// Persister receives full-state snapshots after successful mutations and on
// scheduled flushes. Implementations must serialize their own writes.
type Persister interface {
	Save(Snapshot) error
}

// Gateway settles transfers with accounts outside this ledger. Calls may
// block for a while; they run outside the ledger lock.
type Gateway interface {
	Transfer(ctx context.Context, bank, account string, amount decimal.Decimal) error
}

type Ledger struct {
	mu       sync.Mutex
	balances map[string]decimal.Decimal
	cards    map[string]string // user -> card
	byCard   map[string]string // card -> user, always the exact inverse of cards
	records  map[string][]Record
	checkins map[string]string // user -> YYYY-MM-DD

	seq        uint64
	now        func() time.Time
	rng        *rand.Rand
	persister  Persister
	gateway    Gateway
	ceiling    decimal.Decimal
	checkinMin decimal.Decimal
	checkinMax decimal.Decimal
	extTimeout time.Duration
}

type Option func(*Ledger)

// WithClock replaces the wall clock, mainly for tests.
func WithClock(now func() time.Time) Option {
	return func(l *Ledger) { l.now = now }
}

// WithRand replaces the random source used for card numbers and check-in
// amounts. The source is only read under the ledger lock.
func WithRand(r *rand.Rand) Option {
	return func(l *Ledger) { l.rng = r }
}

func WithPersister(p Persister) Option {
	return func(l *Ledger) { l.persister = p }
}

func WithGateway(g Gateway) Option {
	return func(l *Ledger) { l.gateway = g }
}

// WithTransferCeiling sets the per-operation amount limit. A non-positive
// ceiling disables the check.
func WithTransferCeiling(max decimal.Decimal) Option {
	return func(l *Ledger) { l.ceiling = max }
}

// WithCheckInRange sets the inclusive bounds for the daily bonus draw.
func WithCheckInRange(min, max decimal.Decimal) Option {
	return func(l *Ledger) { l.checkinMin, l.checkinMax = min, max }
}

// WithExternalTimeout bounds the wait on the external-bank gateway; expiry
// counts as failure and rolls the debit back.
func WithExternalTimeout(d time.Duration) Option {
	return func(l *Ledger) { l.extTimeout = d }
}

func New(opts ...Option) *Ledger {
	l := &Ledger{
		balances:   make(map[string]decimal.Decimal),
		cards:      make(map[string]string),
		byCard:     make(map[string]string),
		records:    make(map[string][]Record),
		checkins:   make(map[string]string),
		now:        time.Now,
		rng:        rand.New(rand.NewSource(time.Now().UnixNano())),
		ceiling:    decimal.NewFromInt(50000),
		checkinMin: decimal.NewFromInt(100),
		checkinMax: decimal.NewFromInt(500),
		extTimeout: 10 * time.Second,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Open creates an account for userID and returns its card number. A second
// call is a no-op that returns the existing card; nothing is recorded.
func (l *Ledger) Open(userID string) (card string, existing bool, err error) {
	l.mu.Lock()
	if card, ok := l.cards[userID]; ok {
		l.mu.Unlock()
		return card, true, nil
	}

	card, err = l.newCardLocked()
	if err != nil {
		l.mu.Unlock()
		return "", false, err
	}

	l.cards[userID] = card
	l.byCard[card] = userID
	l.balances[userID] = decimal.Zero
	l.appendRecordLocked(userID, TypeOpenAccount, decimal.Zero, "")
	snap := l.snapshotLocked()
	l.mu.Unlock()

	l.persist(snap)
	return card, false, nil
}

// Balance reports the card, current balance and query time for userID.
func (l *Ledger) Balance(userID string) (AccountInfo, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	card, ok := l.cards[userID]
	if !ok {
		return AccountInfo{}, ErrAccountNotFound
	}
	return AccountInfo{Card: card, Balance: l.balances[userID], Time: l.now()}, nil
}

// CheckIn credits a random daily bonus. The date comparison uses the local
// calendar date, and the whole read-check-write runs in one critical section
// so two same-day check-ins cannot both succeed.
func (l *Ledger) CheckIn(userID string) (decimal.Decimal, error) {
	l.mu.Lock()

	if _, ok := l.cards[userID]; !ok {
		l.mu.Unlock()
		return decimal.Zero, ErrAccountNotFound
	}

	today := l.now().Format(constants.DateFormat)
	if l.checkins[userID] == today {
		l.mu.Unlock()
		return decimal.Zero, ErrAlreadyCheckedIn
	}

	amount := l.drawBonusLocked()
	l.balances[userID] = l.balances[userID].Add(amount)
	l.checkins[userID] = today
	l.appendRecordLocked(userID, TypeCheckIn, amount, "")
	snap := l.snapshotLocked()
	l.mu.Unlock()

	l.persist(snap)
	return amount, nil
}

// drawBonusLocked draws a uniform amount from [checkinMin, checkinMax] with
// cent granularity.
func (l *Ledger) drawBonusLocked() decimal.Decimal {
	span := l.checkinMax.Sub(l.checkinMin).Shift(2).IntPart() + 1
	return l.checkinMin.Add(decimal.New(l.rng.Int63n(span), -2))
}

// Transfer moves amount from userID to the holder of targetCard. Debit and
// credit happen in the same critical section, so no other operation can see
// one side applied without the other.
func (l *Ledger) Transfer(userID, targetCard string, amount decimal.Decimal) (decimal.Decimal, error) {
	if err := l.validateAmount(amount); err != nil {
		return decimal.Zero, err
	}

	l.mu.Lock()

	srcCard, ok := l.cards[userID]
	if !ok {
		l.mu.Unlock()
		return decimal.Zero, ErrAccountNotFound
	}
	target, ok := l.byCard[targetCard]
	if !ok {
		l.mu.Unlock()
		return decimal.Zero, ErrUnknownCard
	}
	if target == userID {
		l.mu.Unlock()
		return decimal.Zero, ErrSelfTransfer
	}
	if l.balances[userID].LessThan(amount) {
		l.mu.Unlock()
		return decimal.Zero, ErrInsufficientFunds
	}

	l.balances[userID] = l.balances[userID].Sub(amount)
	l.balances[target] = l.balances[target].Add(amount)
	l.appendRecordLocked(userID, TypeTransferOut, amount, targetCard)
	l.appendRecordLocked(target, TypeTransferIn, amount, srcCard)

	newBalance := l.balances[userID]
	snap := l.snapshotLocked()
	l.mu.Unlock()

	l.persist(snap)
	return newBalance, nil
}

// TransferExternal debits userID, then asks the external-bank gateway to
// settle. Only the calling goroutine waits on the gateway; the ledger lock is
// released for the duration of the call. Failure or timeout credits the
// debited amount back and records nothing.
func (l *Ledger) TransferExternal(ctx context.Context, userID, bank, account string, amount decimal.Decimal) (decimal.Decimal, error) {
	if err := l.validateAmount(amount); err != nil {
		return decimal.Zero, err
	}
	if l.gateway == nil {
		return decimal.Zero, fmt.Errorf("%w: no gateway configured", ErrExternalTransfer)
	}

	l.mu.Lock()
	if _, ok := l.cards[userID]; !ok {
		l.mu.Unlock()
		return decimal.Zero, ErrAccountNotFound
	}
	if l.balances[userID].LessThan(amount) {
		l.mu.Unlock()
		return decimal.Zero, ErrInsufficientFunds
	}
	l.balances[userID] = l.balances[userID].Sub(amount)
	l.mu.Unlock()

	ctx, cancel := context.WithTimeout(ctx, l.extTimeout)
	defer cancel()
	err := l.gateway.Transfer(ctx, bank, account, amount)

	l.mu.Lock()
	if err != nil {
		l.balances[userID] = l.balances[userID].Add(amount)
		l.mu.Unlock()
		return decimal.Zero, fmt.Errorf("%w: %v", ErrExternalTransfer, err)
	}

	l.appendRecordLocked(userID, TypeExternal, amount, bank+":"+account)
	newBalance := l.balances[userID]
	snap := l.snapshotLocked()
	l.mu.Unlock()

	l.persist(snap)
	return newBalance, nil
}

// History returns the count most recent records for userID, newest first.
// count 0 means the default of 10; supplied values are clamped to [1, 20].
func (l *Ledger) History(userID string, count int) ([]Record, error) {
	if count == 0 {
		count = constants.DefaultRecordCount
	}
	if count < 1 {
		count = 1
	}
	if count > constants.MaxRecordCount {
		count = constants.MaxRecordCount
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if _, ok := l.cards[userID]; !ok {
		return nil, ErrAccountNotFound
	}

	recs := l.records[userID]
	if count > len(recs) {
		count = len(recs)
	}
	out := make([]Record, 0, count)
	for i := len(recs) - 1; i >= len(recs)-count; i-- {
		out = append(out, recs[i])
	}
	return out, nil
}

// validateAmount enforces the shared transfer rules: strictly positive, at
// most two decimal places, and within the configured per-operation ceiling.
func (l *Ledger) validateAmount(amount decimal.Decimal) error {
	if amount.Sign() <= 0 {
		return ErrInvalidAmount
	}
	if !amount.Equal(amount.Round(2)) {
		return fmt.Errorf("%w: more than two decimal places", ErrInvalidAmount)
	}
	if l.ceiling.Sign() > 0 && amount.GreaterThan(l.ceiling) {
		return fmt.Errorf("%w: exceeds per-operation limit of %s", ErrInvalidAmount, l.ceiling.StringFixed(2))
	}
	return nil
}

// appendRecordLocked appends a history entry carrying the balance after the
// mutation, evicting the oldest entries beyond the cap.
func (l *Ledger) appendRecordLocked(userID string, typ RecordType, amount decimal.Decimal, target string) {
	recs := append(l.records[userID], Record{
		Time:    l.now(),
		Type:    typ,
		Amount:  amount,
		Target:  target,
		Balance: l.balances[userID],
	})
	if len(recs) > constants.MaxHistoryRecords {
		recs = recs[len(recs)-constants.MaxHistoryRecords:]
	}
	l.records[userID] = recs
}

// Snapshot exports a deep copy of the full ledger state.
func (l *Ledger) Snapshot() Snapshot {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.snapshotLocked()
}

func (l *Ledger) snapshotLocked() Snapshot {
	l.seq++
	snap := Snapshot{
		Seq:          l.seq,
		Accounts:     make(map[string]decimal.Decimal, len(l.balances)),
		Cards:        make(map[string]string, len(l.cards)),
		Transactions: make(map[string][]Record, len(l.records)),
		LastCheckin:  make(map[string]string, len(l.checkins)),
	}
	for u, b := range l.balances {
		snap.Accounts[u] = b
	}
	for u, c := range l.cards {
		snap.Cards[u] = c
	}
	for u, recs := range l.records {
		cp := make([]Record, len(recs))
		copy(cp, recs)
		snap.Transactions[u] = cp
	}
	for u, d := range l.checkins {
		snap.LastCheckin[u] = d
	}
	return snap
}

// Restore replaces the ledger state with a loaded snapshot and rebuilds the
// card reverse index from the card map.
func (l *Ledger) Restore(snap Snapshot) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.balances = make(map[string]decimal.Decimal, len(snap.Accounts))
	for u, b := range snap.Accounts {
		l.balances[u] = b
	}
	l.cards = make(map[string]string, len(snap.Cards))
	l.byCard = make(map[string]string, len(snap.Cards))
	for u, c := range snap.Cards {
		l.cards[u] = c
		l.byCard[c] = u
	}
	l.records = make(map[string][]Record, len(snap.Transactions))
	for u, recs := range snap.Transactions {
		cp := make([]Record, len(recs))
		copy(cp, recs)
		l.records[u] = cp
	}
	l.checkins = make(map[string]string, len(snap.LastCheckin))
	for u, d := range snap.LastCheckin {
		l.checkins[u] = d
	}
}

// Flush writes the current state through the persister. Used by the periodic
// scheduler and on shutdown.
func (l *Ledger) Flush() error {
	if l.persister == nil {
		return nil
	}
	return l.persister.Save(l.Snapshot())
}

// persist saves a snapshot best-effort: a failed write is logged and
// swallowed, the in-memory effect of the operation stands. It runs outside
// the ledger lock; the sequence number taken under the lock lets the store
// drop writes that arrive out of order.
func (l *Ledger) persist(snap Snapshot) {
	if l.persister == nil {
		return
	}
	if err := l.persister.Save(snap); err != nil {
		pterm.Warning.Printfln("failed to persist ledger state: %v", err)
	}
}

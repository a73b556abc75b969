// Package interbank holds the external-bank collaborator. The real network
// is out of scope; Simulator stands in for a partner bank's settlement
// endpoint with an artificial delay.
package interbank

import (
	"context"
	"fmt"
	"time"

	"github.com/pterm/pterm"
	"github.com/shopspring/decimal"
)

// Simulator implements ledger.Gateway. Fail forces every settlement to be
// rejected, which tests use to exercise the rollback path.
type Simulator struct {
	Delay time.Duration
	Fail  bool
}

// Transfer pretends to settle with the named bank after Delay. Context
// cancellation or deadline expiry aborts the wait and counts as failure.
func (s *Simulator) Transfer(ctx context.Context, bank, account string, amount decimal.Decimal) error {
	timer := time.NewTimer(s.Delay)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
	}

	if s.Fail {
		return fmt.Errorf("%s rejected transfer to account %s", bank, account)
	}

	pterm.Debug.Printfln("settled %s with %s, account %s", amount.StringFixed(2), bank, account)
	return nil
}

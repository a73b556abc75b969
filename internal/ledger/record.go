package ledger

import (
	"time"

	"github.com/shopspring/decimal"
)

type RecordType string

const (
	TypeOpenAccount RecordType = "open-account"
	TypeCheckIn     RecordType = "check-in"
	TypeTransferOut RecordType = "transfer-out"
	TypeTransferIn  RecordType = "transfer-in"
	TypeExternal    RecordType = "external-transfer"
)

// Record is one entry in an account's transaction history. Target holds the
// counterparty card for intra-bank transfers and "bank:account" for external
// ones; Balance is the account balance right after the mutation.
type Record struct {
	Time    time.Time       `json:"time"`
	Type    RecordType      `json:"type"`
	Amount  decimal.Decimal `json:"amount"`
	Target  string          `json:"target,omitempty"`
	Balance decimal.Decimal `json:"balance"`
}

// AccountInfo is the balance-query result.
type AccountInfo struct {
	Card    string
	Balance decimal.Decimal
	Time    time.Time
}

// Snapshot is the full persistable ledger state. The card reverse index is
// derived on restore and never stored. Seq orders snapshots taken from the
// same ledger; it stays out of the data file.
type Snapshot struct {
	Seq          uint64                     `json:"-"`
	Accounts     map[string]decimal.Decimal `json:"accounts"`
	Cards        map[string]string          `json:"cards"`
	Transactions map[string][]Record        `json:"transactions"`
	LastCheckin  map[string]string          `json:"last_checkin"`
}

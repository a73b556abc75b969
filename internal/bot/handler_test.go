package bot

import (
	"context"
	"math/rand"
	"strings"
	"testing"
	"time"

	"github.com/larch-c/xfbank/internal/interbank"
	"github.com/larch-c/xfbank/internal/ledger"
)

func newTestHandler(opts ...ledger.Option) *Handler {
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.Local)
	base := []ledger.Option{
		ledger.WithClock(func() time.Time { return now }),
		ledger.WithRand(rand.New(rand.NewSource(7))),
		ledger.WithGateway(&interbank.Simulator{}),
	}
	return NewHandler(ledger.New(append(base, opts...)...))
}

func send(h *Handler, user, message string) string {
	return h.Handle(context.Background(), user, message)
}

// cardFromReply pulls the card number out of an "open" reply.
func cardFromReply(t *testing.T, reply string) string {
	t.Helper()
	for _, line := range strings.Split(reply, "\n") {
		if after, ok := strings.CutPrefix(line, "Card number: "); ok {
			return after
		}
	}
	t.Fatalf("no card number in reply %q", reply)
	return ""
}

func TestHandleHelp(t *testing.T) {
	h := newTestHandler()
	for _, msg := range []string{"", "   ", "bogus", "withdraw 100"} {
		reply := send(h, "u1", msg)
		if !strings.Contains(reply, "Bank commands:") {
			t.Fatalf("message %q: want help text, got %q", msg, reply)
		}
	}
}

func TestHandleOpen(t *testing.T) {
	h := newTestHandler()

	first := send(h, "u1", "open")
	if !strings.Contains(first, "Account opened!") {
		t.Fatalf("first open reply: %q", first)
	}
	card := cardFromReply(t, first)
	if !strings.HasPrefix(card, "XF") {
		t.Fatalf("bad card in reply: %q", card)
	}

	second := send(h, "u1", "open")
	if !strings.Contains(second, "You already have an account") || !strings.Contains(second, card) {
		t.Fatalf("second open reply: %q", second)
	}
}

func TestHandleBalance(t *testing.T) {
	h := newTestHandler()

	if reply := send(h, "u1", "balance"); !strings.Contains(reply, "open an account first") {
		t.Fatalf("unopened balance reply: %q", reply)
	}

	card := cardFromReply(t, send(h, "u1", "open"))
	reply := send(h, "u1", "balance")
	if !strings.Contains(reply, card) || !strings.Contains(reply, "Balance: 0.00") {
		t.Fatalf("balance reply: %q", reply)
	}
}

func TestHandleCheckin(t *testing.T) {
	h := newTestHandler()
	send(h, "u1", "open")

	first := send(h, "u1", "checkin")
	if !strings.Contains(first, "Check-in successful!") {
		t.Fatalf("first checkin reply: %q", first)
	}

	second := send(h, "u1", "checkin")
	if !strings.Contains(second, "already checked in today") {
		t.Fatalf("second checkin reply: %q", second)
	}
}

func TestHandleLocalTransfer(t *testing.T) {
	h := newTestHandler()
	send(h, "u1", "open")
	card2 := cardFromReply(t, send(h, "u2", "open"))
	send(h, "u1", "checkin")

	reply := send(h, "u1", "transfer local "+card2+" 50.00")
	if !strings.Contains(reply, "Transferred 50.00 to card "+card2) {
		t.Fatalf("transfer reply: %q", reply)
	}

	if reply := send(h, "u2", "balance"); !strings.Contains(reply, "Balance: 50.00") {
		t.Fatalf("target balance reply: %q", reply)
	}
}

func TestHandleTransferErrors(t *testing.T) {
	h := newTestHandler()
	send(h, "u1", "open")
	card2 := cardFromReply(t, send(h, "u2", "open"))
	send(h, "u1", "checkin")

	cases := []struct {
		message string
		want    string
	}{
		{"transfer local " + card2, "Bank commands:"},
		{"transfer local " + card2 + " abc", "Invalid amount"},
		{"transfer local " + card2 + " -5", "Invalid amount"},
		{"transfer local XF0000000 10", "does not exist"},
		{"transfer local " + card2 + " 99999.99", "Invalid amount"},
		{"transfer local " + card2 + " 49999.99", "Insufficient balance."},
	}
	for _, tc := range cases {
		if reply := send(h, "u1", tc.message); !strings.Contains(reply, tc.want) {
			t.Fatalf("message %q: want %q in reply, got %q", tc.message, tc.want, reply)
		}
	}

	if reply := send(h, "u2", "transfer local "+card2+" 1"); !strings.Contains(reply, "your own account") {
		t.Fatalf("self transfer reply: %q", reply)
	}
	if reply := send(h, "u2", "transfer local XF0000000 1"); !strings.Contains(reply, "does not exist") {
		t.Fatalf("unknown card reply: %q", reply)
	}
}

func TestHandleExternalTransfer(t *testing.T) {
	h := newTestHandler()
	send(h, "u1", "open")
	send(h, "u1", "checkin")

	reply := send(h, "u1", "transfer CMB 6222021234 50.00")
	if !strings.Contains(reply, "Transferred 50.00 to account 6222021234 at CMB") {
		t.Fatalf("external transfer reply: %q", reply)
	}
}

func TestHandleExternalTransferFailure(t *testing.T) {
	h := newTestHandler(ledger.WithGateway(&interbank.Simulator{Fail: true}))
	send(h, "u1", "open")
	send(h, "u1", "checkin")

	before := send(h, "u1", "balance")
	reply := send(h, "u1", "transfer CMB 6222021234 50.00")
	if !strings.Contains(reply, "Inter-bank transfer failed") {
		t.Fatalf("failure reply: %q", reply)
	}
	if after := send(h, "u1", "balance"); after != before {
		t.Fatalf("balance changed after failed external transfer:\n%q\n%q", before, after)
	}
}

func TestHandleRecord(t *testing.T) {
	h := newTestHandler()

	if reply := send(h, "u1", "record"); !strings.Contains(reply, "open an account first") {
		t.Fatalf("unopened record reply: %q", reply)
	}

	send(h, "u1", "open")
	send(h, "u1", "checkin")

	reply := send(h, "u1", "record")
	if !strings.Contains(reply, "Recent transactions:") {
		t.Fatalf("record reply: %q", reply)
	}
	if !strings.Contains(reply, "check-in") || !strings.Contains(reply, "open-account") {
		t.Fatalf("record reply missing entries: %q", reply)
	}
	// Newest first: check-in on line 1, open-account after it.
	if strings.Index(reply, "check-in") > strings.Index(reply, "open-account") {
		t.Fatalf("records not newest first: %q", reply)
	}

	if reply := send(h, "u1", "record 1"); strings.Contains(reply, "open-account") {
		t.Fatalf("record 1 returned more than one entry: %q", reply)
	}
	if reply := send(h, "u1", "record x"); reply != "Usage: record [count]" {
		t.Fatalf("bad count reply: %q", reply)
	}
}

func TestHandleRecordExplicitZeroClampsToOne(t *testing.T) {
	h := newTestHandler()
	send(h, "u1", "open")
	send(h, "u1", "checkin")

	// "record 0" is a supplied count, clamped to 1, not the default of 10.
	reply := send(h, "u1", "record 0")
	if !strings.Contains(reply, "check-in") {
		t.Fatalf("record 0 reply missing newest entry: %q", reply)
	}
	if strings.Contains(reply, "open-account") {
		t.Fatalf("record 0 returned more than one entry: %q", reply)
	}
}

// Package bot translates chat commands into ledger operations and renders
// the results as reply text. The chat platform itself stays external: both
// the HTTP gateway and the interactive session feed messages through Handle.
package bot

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/larch-c/xfbank/internal/constants"
	"github.com/larch-c/xfbank/internal/ledger"
	"github.com/larch-c/xfbank/internal/utils"
)

const helpText = `Bank commands:
open - open an account and get a card number
balance - show card number and balance
checkin - collect the daily check-in bonus
transfer local <card> <amount> - transfer to another card at this bank
transfer <bank> <account> <amount> - transfer to an account at another bank
record [count] - show recent transactions (default 10, max 20)`

type Handler struct {
	ledger *ledger.Ledger
}

func NewHandler(l *ledger.Ledger) *Handler {
	return &Handler{ledger: l}
}

// Handle runs one chat command for userID and returns the reply. Every error
// is rendered as a message; nothing escapes to the caller.
func (h *Handler) Handle(ctx context.Context, userID, message string) string {
	args := strings.Fields(message)
	if len(args) == 0 {
		return helpText
	}

	switch args[0] {
	case "open":
		return h.open(userID)
	case "balance":
		return h.balance(userID)
	case "checkin":
		return h.checkin(userID)
	case "transfer":
		return h.transfer(ctx, userID, args[1:])
	case "record":
		return h.record(userID, args[1:])
	default:
		return helpText
	}
}

func (h *Handler) open(userID string) string {
	card, existing, err := h.ledger.Open(userID)
	if err != nil {
		return errorReply(err)
	}
	if existing {
		return fmt.Sprintf("You already have an account. Card number: %s", card)
	}
	return fmt.Sprintf("Account opened!\nCard number: %s\nOthers need this card number to transfer money to you.", card)
}

func (h *Handler) balance(userID string) string {
	info, err := h.ledger.Balance(userID)
	if err != nil {
		return errorReply(err)
	}
	return fmt.Sprintf("Card number: %s\nBalance: %s\nQueried at: %s",
		info.Card, utils.FormatAmount(info.Balance), info.Time.Format(constants.TimeFormat))
}

func (h *Handler) checkin(userID string) string {
	amount, err := h.ledger.CheckIn(userID)
	if err != nil {
		return errorReply(err)
	}
	return fmt.Sprintf("Check-in successful! Bonus credited: %s", utils.FormatAmount(amount))
}

func (h *Handler) transfer(ctx context.Context, userID string, args []string) string {
	if len(args) != 3 {
		return helpText
	}

	amount, err := utils.ParseAmount(args[2])
	if err != nil {
		return errorReply(ledger.ErrInvalidAmount)
	}

	if args[0] == "local" {
		balance, err := h.ledger.Transfer(userID, args[1], amount)
		if err != nil {
			return errorReply(err)
		}
		return fmt.Sprintf("Transferred %s to card %s.\nBalance: %s",
			utils.FormatAmount(amount), args[1], utils.FormatAmount(balance))
	}

	bank, account := args[0], args[1]
	balance, err := h.ledger.TransferExternal(ctx, userID, bank, account, amount)
	if err != nil {
		return errorReply(err)
	}
	return fmt.Sprintf("Transferred %s to account %s at %s.\nBalance: %s",
		utils.FormatAmount(amount), account, bank, utils.FormatAmount(balance))
}

func (h *Handler) record(userID string, args []string) string {
	count := 0 // omitted, ledger default applies
	if len(args) > 0 {
		n, err := strconv.Atoi(args[0])
		if err != nil {
			return "Usage: record [count]"
		}
		if n < 1 {
			n = 1 // supplied values clamp, only an omitted count means the default
		}
		count = n
	}

	records, err := h.ledger.History(userID, count)
	if err != nil {
		return errorReply(err)
	}
	if len(records) == 0 {
		return "No transactions yet."
	}

	lines := make([]string, 0, len(records)+1)
	lines = append(lines, "Recent transactions:")
	for i, rec := range records {
		line := fmt.Sprintf("%d. %s - %s: %s",
			i+1, rec.Time.Format(constants.TimeFormat), rec.Type, utils.FormatAmount(rec.Amount))
		if rec.Target != "" {
			line += " -> " + rec.Target
		}
		line += fmt.Sprintf(" [balance: %s]", utils.FormatAmount(rec.Balance))
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n")
}

// errorReply maps domain errors to user-facing messages.
func errorReply(err error) string {
	switch {
	case errors.Is(err, ledger.ErrAccountNotFound):
		return "Please open an account first. Send: open"
	case errors.Is(err, ledger.ErrAlreadyCheckedIn):
		return "You have already checked in today. Come back tomorrow!"
	case errors.Is(err, ledger.ErrInvalidAmount):
		return "Invalid amount. Enter a positive number with at most two decimal places, within the per-operation limit."
	case errors.Is(err, ledger.ErrUnknownCard):
		return "Target card number does not exist."
	case errors.Is(err, ledger.ErrSelfTransfer):
		return "You cannot transfer to your own account."
	case errors.Is(err, ledger.ErrInsufficientFunds):
		return "Insufficient balance."
	case errors.Is(err, ledger.ErrExternalTransfer):
		return "Inter-bank transfer failed. Please try again later."
	default:
		return "Something went wrong. Please try again later."
	}
}

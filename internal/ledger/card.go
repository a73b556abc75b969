package ledger

import (
	"fmt"

	"github.com/larch-c/xfbank/internal/constants"
)

// newCardLocked generates a card number that is unique among all assigned
// cards, retrying on collision up to a fixed budget. The budget turns a full
// namespace into an error instead of an endless loop.
func (l *Ledger) newCardLocked() (string, error) {
	for i := 0; i < constants.MaxCardAttempts; i++ {
		card := l.randomCardLocked()
		if _, taken := l.byCard[card]; !taken {
			return card, nil
		}
	}
	return "", ErrCardNumbers
}

// randomCardLocked builds a card number: prefix, six random digits and a
// trailing check digit (digit sum mod 10).
func (l *Ledger) randomCardLocked() string {
	body := fmt.Sprintf("%0*d", constants.CardDigits, l.rng.Intn(pow10(constants.CardDigits)))
	sum := 0
	for _, c := range body {
		sum += int(c - '0')
	}
	return fmt.Sprintf("%s%s%d", constants.CardPrefix, body, sum%10)
}

func pow10(n int) int {
	out := 1
	for i := 0; i < n; i++ {
		out *= 10
	}
	return out
}

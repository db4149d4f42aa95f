package prompt

import (
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
)

// ErrInvalidTarget is returned for target input that is not a number.
var ErrInvalidTarget = errors.New("invalid target value")

// Asker reads one raw target value from the operator.
type Asker func() (string, error)

// ParseTarget parses s as a USD amount.
func ParseTarget(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Zero, errors.Wrap(ErrInvalidTarget, "target cannot be empty")
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, errors.Wrapf(ErrInvalidTarget, "%q is not a number", s)
	}
	return d, nil
}

// Target returns flagValue when it is non-zero, otherwise asks for one.
func Target(flagValue float64, ask Asker) (decimal.Decimal, error) {
	if flagValue != 0 {
		return decimal.NewFromFloat(flagValue), nil
	}
	if ask == nil {
		ask = Ask
	}
	raw, err := ask()
	if err != nil {
		return decimal.Zero, err
	}
	return ParseTarget(raw)
}

// Ask shows an interactive input until a number is entered.
func Ask() (string, error) {
	var raw string
	err := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Enter your target value in USD (e.g., 200)").
				Value(&raw).
				Validate(func(s string) error {
					_, err := ParseTarget(s)
					return err
				}),
		),
	).Run()
	if err != nil {
		return "", errors.Wrap(err, "read target")
	}
	return raw, nil
}

package order

import (
	"fmt"
	"strings"

	"kds/internal/pkg/errs"
)

// Source is the intake channel of an order. It is persisted as free text so rows
// written by a newer release still load, but only the known channels are accepted
// when an order is created.
type Source string

const (
	SourceIFood    Source = "ifood"
	Source99Food   Source = "99food"
	SourceWhatsApp Source = "whatsapp"
)

// Sources returns the channels accepted at creation.
func Sources() []Source {
	return []Source{SourceIFood, Source99Food, SourceWhatsApp}
}

// ParseSource converts user input into a known Source.
func ParseSource(value string) (Source, error) {
	candidate := Source(strings.ToLower(strings.TrimSpace(value)))
	if err := candidate.Validate(); err != nil {
		return "", err
	}
	return candidate, nil
}

// Validate checks that s is one of the known channels.
func (s Source) Validate() error {
	for _, known := range Sources() {
		if s == known {
			return nil
		}
	}
	if s == "" {
		return errs.NewValueIsRequiredError("source")
	}
	return errs.NewValueIsInvalidErrorWithCause("source", fmt.Errorf("%q is not a known channel", string(s)))
}

func (s Source) String() string {
	return string(s)
}

// Package whatsapp builds click-to-chat deep links to the operator's number.
package whatsapp

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/nyaruka/phonenumbers"

	"pytech_site/internal/domain"
)

const defaultBase = "https://wa.me"

// Link is the messaging sink of the lead intake pipeline.
type Link struct {
	base   string
	number string // E.164 digits without the leading +
}

// New normalizes the operator number; region is used when the number has no
// international prefix (e.g. "IN").
func New(operator, region string) (*Link, error) {
	n, err := NormalizeNumber(operator, region)
	if err != nil {
		return nil, err
	}
	return &Link{base: defaultBase, number: n}, nil
}

func NormalizeNumber(raw, region string) (string, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return "", fmt.Errorf("operator number is empty: %w", domain.ErrHandOffUnavailable)
	}
	num, err := phonenumbers.Parse(trimmed, strings.ToUpper(region))
	if err != nil {
		return "", fmt.Errorf("parse operator number %q: %w", trimmed, err)
	}
	if !phonenumbers.IsValidNumber(num) {
		return "", fmt.Errorf("operator number %q is not valid", trimmed)
	}
	return strings.TrimPrefix(phonenumbers.Format(num, phonenumbers.E164), "+"), nil
}

func (l *Link) Number() string { return l.number }

// HandOff returns https://wa.me/<number>?text=<percent-encoded text>.
func (l *Link) HandOff(text string) (string, error) {
	if l == nil || l.number == "" {
		return "", domain.ErrHandOffUnavailable
	}
	return l.base + "/" + l.number + "?text=" + encodeComponent(text), nil
}

// encodeComponent percent-encodes like a URI component: spaces become %20, not +.
func encodeComponent(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}

package templates

import (
	"strings"
	"time"

	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// frenchEUR renders euros the French way: "1 234,56 €" with no-break spaces.
var frenchEUR = money.NewFormatter(2, ",", "\u00a0", "€", "1\u00a0$")

// FormatEUR renders an amount in euros for the page language.
func FormatEUR(lang string, amount decimal.Decimal) string {
	cents := amount.Round(2).Shift(2).IntPart()
	if isFrench(lang) {
		return frenchEUR.Format(cents)
	}
	return money.New(cents, money.EUR).Display()
}

// FormatQuantity renders a holding quantity without trailing zeros.
func FormatQuantity(lang string, quantity decimal.Decimal) string {
	s := quantity.String()
	if isFrench(lang) {
		s = strings.Replace(s, ".", ",", 1)
	}
	return s
}

// FormatDateTime renders a snapshot timestamp for the page language.
func FormatDateTime(lang string, t time.Time) string {
	if t.IsZero() {
		return ""
	}
	if isFrench(lang) {
		return t.Format("02/01/2006 15:04")
	}
	return t.Format("Jan 2, 2006 15:04")
}

func isFrench(lang string) bool {
	lang = strings.ToLower(strings.TrimSpace(lang))
	return lang == "" || lang == "fr" || strings.HasPrefix(lang, "fr-")
}

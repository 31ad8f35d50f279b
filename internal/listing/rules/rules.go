// Package rules holds the pure validation predicates applied by the listing
// submission flow. Each check returns a pass/fail verdict plus a user-facing
// reason; nothing here touches storage or transport.
package rules

import (
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"
)

const (
	MinTitleLen       = 10
	MaxTitleLen       = 100
	MinDescriptionLen = 30
	MaxDescriptionLen = 1000
	MaxPhotos         = 10
)

// Iranian mobile numbers: optional +98 or 0 prefix, then 9 and nine digits.
var phonePattern = regexp.MustCompile(`^(\+98|0)?9\d{9}$`)

type Verdict struct {
	OK     bool
	Reason string
}

func pass() Verdict              { return Verdict{OK: true} }
func fail(reason string) Verdict { return Verdict{Reason: reason} }

func Title(title string) Verdict {
	n := utf8.RuneCountInString(title)
	if n < MinTitleLen || n > MaxTitleLen {
		return fail("❌ عنوان باید بین ۱۰ تا ۱۰۰ کاراکتر باشد.\nلطفاً دوباره وارد کنید:")
	}
	return pass()
}

func Description(description string) Verdict {
	n := utf8.RuneCountInString(description)
	if n < MinDescriptionLen || n > MaxDescriptionLen {
		return fail("❌ توضیحات باید بین ۳۰ تا ۱۰۰۰ کاراکتر باشد.\nلطفاً دوباره وارد کنید:")
	}
	return pass()
}

// Price parses raw user input as a non-negative integer. Persian and
// Arabic-Indic numerals are accepted; users type prices on Persian keyboards.
// Parse failure and negative values are ordinary validation failures, never
// errors.
func Price(raw string) (int64, Verdict) {
	price, err := strconv.ParseInt(normalizeDigits(strings.TrimSpace(raw)), 10, 64)
	if err != nil || price < 0 {
		return 0, fail("❌ لطفاً یک عدد معتبر وارد کنید:")
	}
	return price, pass()
}

// normalizeDigits maps Persian (U+06F0-U+06F9) and Arabic-Indic
// (U+0660-U+0669) numerals onto their ASCII equivalents.
func normalizeDigits(s string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r >= '۰' && r <= '۹':
			return '0' + (r - '۰')
		case r >= '٠' && r <= '٩':
			return '0' + (r - '٠')
		}
		return r
	}, s)
}

func Phone(phone string) Verdict {
	if !phonePattern.MatchString(strings.TrimSpace(phone)) {
		return fail("❌ لطفاً یک شماره تماس معتبر وارد کنید:")
	}
	return pass()
}

// PhotoRoom reports whether another photo may be appended.
func PhotoRoom(count int) bool {
	return count < MaxPhotos
}

package rules

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTitle(t *testing.T) {
	tests := []struct {
		name  string
		title string
		ok    bool
	}{
		{name: "too short", title: "short", ok: false},
		{name: "nine chars", title: strings.Repeat("a", 9), ok: false},
		{name: "ten chars", title: strings.Repeat("a", 10), ok: true},
		{name: "hundred chars", title: strings.Repeat("a", 100), ok: true},
		{name: "hundred one chars", title: strings.Repeat("a", 101), ok: false},
		{name: "persian runes counted not bytes", title: strings.Repeat("آ", 10), ok: true},
		{name: "empty", title: "", ok: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := Title(tt.title)
			assert.Equal(t, tt.ok, v.OK)
			if !tt.ok {
				assert.NotEmpty(t, v.Reason)
			}
		})
	}
}

func TestDescription(t *testing.T) {
	tests := []struct {
		name string
		desc string
		ok   bool
	}{
		{name: "twenty nine chars", desc: strings.Repeat("a", 29), ok: false},
		{name: "thirty chars", desc: strings.Repeat("a", 30), ok: true},
		{name: "thousand chars", desc: strings.Repeat("a", 1000), ok: true},
		{name: "thousand one chars", desc: strings.Repeat("a", 1001), ok: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.ok, Description(tt.desc).OK)
		})
	}
}

func TestPrice(t *testing.T) {
	tests := []struct {
		name  string
		raw   string
		want  int64
		ok    bool
	}{
		{name: "zero means negotiable", raw: "0", want: 0, ok: true},
		{name: "positive", raw: "1500000", want: 1500000, ok: true},
		{name: "persian digits", raw: "۱۵۰۰۰۰۰", want: 1500000, ok: true},
		{name: "arabic digits", raw: "٢٥٠", want: 250, ok: true},
		{name: "persian zero", raw: "۰", want: 0, ok: true},
		{name: "surrounding spaces", raw: " 42 ", want: 42, ok: true},
		{name: "negative", raw: "-1", ok: false},
		{name: "not a number", raw: "abc", ok: false},
		{name: "float", raw: "12.5", ok: false},
		{name: "empty", raw: "", ok: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, v := Price(tt.raw)
			assert.Equal(t, tt.ok, v.OK)
			if tt.ok {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func TestPhone(t *testing.T) {
	tests := []struct {
		name  string
		phone string
		ok    bool
	}{
		{name: "leading zero", phone: "09123456789", ok: true},
		{name: "plus98 prefix", phone: "+989123456789", ok: true},
		{name: "bare mobile", phone: "9123456789", ok: true},
		{name: "too short", phone: "0912345", ok: false},
		{name: "landline", phone: "05132223344", ok: false},
		{name: "letters", phone: "nine one two", ok: false},
		{name: "empty", phone: "", ok: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.ok, Phone(tt.phone).OK)
		})
	}
}

func TestPhotoRoom(t *testing.T) {
	assert.True(t, PhotoRoom(0))
	assert.True(t, PhotoRoom(9))
	assert.False(t, PhotoRoom(10))
	assert.False(t, PhotoRoom(11))
}

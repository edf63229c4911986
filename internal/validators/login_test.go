package validators

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUsername(t *testing.T) {
	tests := []struct {
		name  string
		value string
		want  bool
	}{
		{name: "valid alphanumeric", value: "johndoe1", want: true},
		{name: "valid with underscore and hyphen", value: "john_doe-1", want: true},
		{name: "too short", value: "johndoe", want: false},
		{name: "empty", value: "", want: false},
		{name: "exactly 8 chars", value: "abcdefgh", want: true},
		{name: "space rejected", value: "john doe 1", want: false},
		{name: "punctuation rejected", value: "johndoe1!", want: false},
		{name: "unicode rejected", value: "жожндое1", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Username(tt.value))
		})
	}
}

func TestPassword(t *testing.T) {
	tests := []struct {
		name  string
		value string
		want  bool
	}{
		{name: "letters only", value: "abcdefgh", want: true},
		{name: "mixed", value: "abc12345", want: true},
		{name: "too short", value: "abcdefg", want: false},
		{name: "digits only", value: "123456789", want: false},
		{name: "symbols and one letter", value: "!!!!!!!a", want: true},
		{name: "empty", value: "", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Password(tt.value))
		})
	}
}

func TestCell(t *testing.T) {
	tests := []struct {
		name  string
		value string
		want  bool
	}{
		{name: "formatted US number", value: "(555) 123-4567", want: true},
		{name: "bare 10 digits", value: "5551234567", want: true},
		{name: "seven digits", value: "555-1234", want: false},
		{name: "eleven digits", value: "15551234567", want: false},
		{name: "empty", value: "", want: false},
		{name: "letters between digits", value: "555call4567now", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Cell(tt.value))
		})
	}
}

func TestEmail(t *testing.T) {
	tests := []struct {
		name  string
		value string
		want  bool
	}{
		{name: "minimal valid", value: "ab@cd.com", want: true},
		{name: "label and tld too short", value: "a@b.c", want: false},
		{name: "two letter tld", value: "ab@cd.io", want: true},
		{name: "four letter tld still matches first three", value: "ab@cd.info", want: true},
		{name: "one char local", value: "a@bb.com", want: false},
		{name: "no at sign", value: "abcd.com", want: false},
		{name: "empty", value: "", want: false},
		{name: "address embedded in noise", value: "see ab@cd.com please", want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Email(tt.value))
		})
	}
}

package analysis

import (
	"strings"
	"testing"
)

func TestDetectLanguage(t *testing.T) {
	tests := []struct {
		name string
		text string
		code string
	}{
		{
			name: "english",
			text: strings.Repeat("It was a bright cold day in April, and the clocks were striking thirteen. ", 10),
			code: "en",
		},
		{
			name: "russian",
			text: strings.Repeat("Это было яркое холодное апрельское утро, и часы пробили тринадцать раз. ", 10),
			code: "ru",
		},
		{
			name: "spanish",
			text: strings.Repeat("Era un día luminoso y frío de abril y los relojes daban las trece campanadas. ", 10),
			code: "es",
		},
		{
			name: "empty defaults to english",
			text: "",
			code: "en",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lang := DetectLanguage(tt.text)
			if lang.Code != tt.code {
				t.Errorf("code = %q, want %q", lang.Code, tt.code)
			}
			if lang.Name == "" {
				t.Error("language name is empty")
			}
		})
	}
}

func TestLanguageIsCyrillic(t *testing.T) {
	tests := []struct {
		code     string
		expected bool
	}{
		{"ru", true},
		{"uk", true},
		{"bg", true},
		{"en", false},
		{"es", false},
	}
	for _, tt := range tests {
		l := Language{Code: tt.code}
		if got := l.IsCyrillic(); got != tt.expected {
			t.Errorf("IsCyrillic(%q) = %v, want %v", tt.code, got, tt.expected)
		}
	}
}

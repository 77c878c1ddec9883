package domain_test

import (
	"testing"

	"kuritterweight/internal/domain"
)

func TestParseCommand(t *testing.T) {
	tests := []struct {
		text string
		want domain.Command
	}{
		{"削除", domain.DeleteCommand{}},
		{"  削除\n", domain.DeleteCommand{}},
		{"履歴", domain.HistoryCommand{}},
		{"65.4", domain.ReadingCommand{Weight: 65.4}},
		{"65.4kg", domain.ReadingCommand{Weight: 65.4}},
		{"　70", domain.ReadingCommand{Weight: 70}},
		{"６５.４", domain.ReadingCommand{Weight: 65.4}},
		{".5", domain.ReadingCommand{Weight: 0.5}},
		{"-1.5e1x", domain.ReadingCommand{Weight: -15}},
		{"abc", domain.InvalidCommand{}},
		{"kg65", domain.InvalidCommand{}},
		{"", domain.InvalidCommand{}},
		{"削除して", domain.InvalidCommand{}},
		{"1e999", domain.InvalidCommand{}},
	}
	for _, tc := range tests {
		t.Run(tc.text, func(t *testing.T) {
			got := domain.ParseCommand(tc.text)
			if got != tc.want {
				t.Errorf("ParseCommand(%q) = %#v; want %#v", tc.text, got, tc.want)
			}
		})
	}
}

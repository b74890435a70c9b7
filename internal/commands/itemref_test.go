package commands_test

import (
	"errors"
	"strings"
	"testing"

	"itemsync/internal/commands"
)

func TestParseItemRef(t *testing.T) {
	tests := []struct {
		args []string
		want commands.ItemRef
	}{
		{[]string{"12"}, commands.ItemRef{ID: 12, HasID: true}},
		{[]string{"#12"}, commands.ItemRef{ID: 12, HasID: true}},
		{[]string{"t1"}, commands.ItemRef{Section: 't', Index: 1}},
		{[]string{"d3"}, commands.ItemRef{Section: 'd', Index: 3}},
		{[]string{"t", "2"}, commands.ItemRef{Section: 't', Index: 2}},
		{[]string{"d", "10", "extra"}, commands.ItemRef{Section: 'd', Index: 10}},
	}

	for _, tt := range tests {
		t.Run(strings.Join(tt.args, " "), func(t *testing.T) {
			got, err := commands.ParseItemRef(tt.args)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("got %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestParseItemRef_Errors(t *testing.T) {
	tests := []struct {
		args []string
		msg  string
	}{
		{nil, "item reference required"},
		{[]string{"t"}, "item reference required"},
		{[]string{"0"}, "invalid item reference: 0"},
		{[]string{"#"}, "invalid item reference: #"},
		{[]string{"t", "x"}, "invalid item reference: t"},
		{[]string{"x3"}, "invalid item reference: x3"},
		{[]string{"t1a"}, "invalid item reference: t1a"},
		{[]string{"99999999999999999999"}, "invalid item reference: 99999999999999999999"},
	}

	for _, tt := range tests {
		t.Run(strings.Join(tt.args, " "), func(t *testing.T) {
			_, err := commands.ParseItemRef(tt.args)
			if err == nil {
				t.Fatal("expected error")
			}
			if err.Error() != tt.msg {
				t.Errorf("got %q, want %q", err.Error(), tt.msg)
			}
			var usage *commands.UsageError
			if !errors.As(err, &usage) {
				t.Errorf("expected *UsageError, got %T", err)
			}
		})
	}
}

func TestItemRef_String(t *testing.T) {
	if s := (commands.ItemRef{ID: 4, HasID: true}).String(); s != "#4" {
		t.Errorf("got %q", s)
	}
	if s := (commands.ItemRef{Section: 'd', Index: 2}).String(); s != "d2" {
		t.Errorf("got %q", s)
	}
}

package domain

import (
	"errors"
	"testing"
	"time"
)

func TestConversationValidate(t *testing.T) {
	expiry := time.Date(2025, 1, 25, 10, 30, 0, 0, time.UTC)

	cases := []struct {
		name string
		conv Conversation
		want error
	}{
		{"active with csv", Conversation{ID: "1", CSVStatus: CSVStatusActive, CSVFilename: "a.csv", CSVExpiry: &expiry}, nil},
		{"expired with csv", Conversation{ID: "2", CSVStatus: CSVStatusExpired, CSVFilename: "b.csv", CSVExpiry: &expiry}, nil},
		{"none without csv", Conversation{ID: "3", CSVStatus: CSVStatusNone}, nil},
		{"missing id", Conversation{CSVStatus: CSVStatusNone}, ErrConversationInvalid},
		{"active without filename", Conversation{ID: "4", CSVStatus: CSVStatusActive, CSVExpiry: &expiry}, ErrCSVFieldsMissing},
		{"active without expiry", Conversation{ID: "5", CSVStatus: CSVStatusActive, CSVFilename: "a.csv"}, ErrCSVFieldsMissing},
		{"none with filename", Conversation{ID: "6", CSVStatus: CSVStatusNone, CSVFilename: "a.csv"}, ErrCSVFieldsWithoutCSV},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if err := tc.conv.Validate(); !errors.Is(err, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, err)
			}
		})
	}
}

func TestMessageValidate(t *testing.T) {
	negative := -0.5
	if err := (Message{ID: "m1", Role: RoleUser}).Validate(); err != nil {
		t.Fatalf("expected valid message, got %v", err)
	}
	if err := (Message{ID: "m1", Role: "system"}).Validate(); !errors.Is(err, ErrMessageInvalid) {
		t.Fatalf("expected ErrMessageInvalid for unknown role, got %v", err)
	}
	if err := (Message{ID: "m1", Role: RoleAssistant, Cost: &negative}).Validate(); !errors.Is(err, ErrMessageInvalid) {
		t.Fatalf("expected ErrMessageInvalid for negative cost, got %v", err)
	}
}

func TestCloneMessages_DetachesCost(t *testing.T) {
	cost := 0.0012
	in := []Message{{ID: "m1", Role: RoleAssistant, Cost: &cost}}
	out := CloneMessages(in)

	*out[0].Cost = 9
	out[0].Content = "changed"
	if *in[0].Cost != 0.0012 || in[0].Content != "" {
		t.Fatalf("expected original untouched, got %+v", in[0])
	}
}

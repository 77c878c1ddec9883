package domain_test

import (
	"testing"

	"kuritterweight/internal/domain"
)

func TestSelectTextEvent_Empty(t *testing.T) {
	if _, ok := domain.SelectTextEvent(nil); ok {
		t.Fatal("expected no event for empty batch")
	}
}

func TestSelectTextEvent_SkipsNonText(t *testing.T) {
	events := []domain.Event{
		{Type: "follow", ReplyToken: "r0"},
		{Type: "message", ReplyToken: "r1", Message: &domain.EventMessage{Type: "sticker"}},
		{Type: "message", ReplyToken: "r2", Source: domain.EventSource{UserID: "U1"}, Message: &domain.EventMessage{ID: "m2", Type: "text", Text: "65.4"}},
		{Type: "message", ReplyToken: "r3", Message: &domain.EventMessage{Type: "text", Text: "70"}},
	}
	got, ok := domain.SelectTextEvent(events)
	if !ok {
		t.Fatal("expected a text event")
	}
	if got.ReplyToken != "r2" || got.Source.UserID != "U1" {
		t.Fatalf("unexpected event: %+v", got)
	}
	if got.Message.ID != "m2" || got.Message.Text != "65.4" {
		t.Fatalf("payload changed: %+v", got.Message)
	}
}

func TestSelectTextEvent_MessageWithoutBody(t *testing.T) {
	if _, ok := domain.SelectTextEvent([]domain.Event{{Type: "message"}}); ok {
		t.Fatal("expected message without body to be ignored")
	}
}

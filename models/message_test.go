package models

import "testing"

func TestDisplayContentFor(t *testing.T) {
	m := &Message{
		SenderID:          "alice",
		ReceiverID:        "bob",
		Content:           "Hello",
		TranslatedContent: "Bonjour",
	}

	if got := m.DisplayContentFor("alice"); got != "Hello" {
		t.Fatalf("sender must see the original text, got %q", got)
	}
	if got := m.DisplayContentFor("bob"); got != "Bonjour" {
		t.Fatalf("receiver must see the translation, got %q", got)
	}
}

func TestToResponseForProjection(t *testing.T) {
	m := &Message{
		ID:                "m1",
		SenderID:          "alice",
		ReceiverID:        "bob",
		Content:           "Hello",
		TranslatedContent: "Bonjour",
		OriginalLanguage:  "en",
		Status:            MessageStatusDelivered,
	}

	resp := m.ToResponseFor("bob")
	if resp.DisplayContent != "Bonjour" {
		t.Fatalf("expected translated display content, got %q", resp.DisplayContent)
	}
	if resp.Content != "Hello" || resp.TranslatedContent != "Bonjour" {
		t.Fatal("both texts must still be present in the response")
	}
	if resp.Status != MessageStatusDelivered {
		t.Fatalf("expected status carried over, got %q", resp.Status)
	}
}

package integration

import (
	"context"
	"strings"
	"testing"

	"github.com/a-h/wabot/client"
	"github.com/a-h/wabot/models"
)

// These tests expect `wabot serve` to be running on localhost:9030 with
// "test-api-key" in its API keys file.

func TestMessagesPost(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}
	c := client.New("http://localhost:9030", "test-api-key")
	resp, err := c.MessagesPost(context.Background(), models.MessagesPostRequest{
		Nick: "integration",
		Text: ".wa 6 * 7",
	})
	if err != nil {
		t.Fatalf("failed to post message: %v", err)
	}
	if len(resp.Lines) == 0 {
		t.Fatal("expected the bot to reply")
	}
}

func TestMessagesPostIgnoresChatter(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}
	c := client.New("http://localhost:9030", "test-api-key")
	resp, err := c.MessagesPost(context.Background(), models.MessagesPostRequest{
		Nick: "integration",
		Text: "hello everyone",
	})
	if err != nil {
		t.Fatalf("failed to post message: %v", err)
	}
	if len(resp.Lines) != 0 {
		t.Fatalf("expected no reply, got %q", strings.Join(resp.Lines, "\n"))
	}
}

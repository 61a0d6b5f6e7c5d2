package main

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/a-h/wabot/models"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/go-cmp/cmp"
)

func TestFormatLine(t *testing.T) {
	tests := []struct {
		name     string
		line     chatLine
		width    int
		contains []string
	}{
		{
			name:     "lines show the nick and text",
			line:     chatLine{Nick: "alice", Text: ".wa pi"},
			width:    80,
			contains: []string{"<alice>", ".wa pi"},
		},
		{
			name:     "narrow widths fall back to a default",
			line:     chatLine{Nick: botNick, Text: "Result :: 3.14159"},
			width:    3,
			contains: []string{"<wabot>", "Result :: 3.14159"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			actual := formatLine(tt.line, "alice", tt.width)
			for _, s := range tt.contains {
				if !strings.Contains(actual, s) {
					t.Errorf("expected %q to contain %q", actual, s)
				}
			}
		})
	}
}

type fakePoster struct {
	received []string
}

func (fp *fakePoster) MessagesPost(ctx context.Context, req models.MessagesPostRequest) (resp models.MessagesPostResponse, err error) {
	fp.received = append(fp.received, req.Text)
	if req.Text == "fail" {
		return resp, errors.New("server unavailable")
	}
	resp.Lines = []string{req.Nick + ": " + strings.ToUpper(req.Text)}
	return resp, nil
}

func TestSendMessages(t *testing.T) {
	toBot := make(chan string, 3)
	fromBot := make(chan []chatLine)
	errs := make(chan error)
	fp := &fakePoster{}

	toBot <- "one"
	toBot <- "fail"
	toBot <- "two"
	close(toBot)

	done := make(chan struct{})
	go func() {
		defer close(done)
		sendMessages(context.Background(), fp, "alice", toBot, fromBot, errs)
	}()

	var last []chatLine
	var errCount int
	for {
		select {
		case last = <-fromBot:
			continue
		case <-errs:
			errCount++
			continue
		case <-done:
		case <-time.After(5 * time.Second):
			t.Fatal("timed out waiting for messages to be sent")
		}
		break
	}

	if diff := cmp.Diff([]string{"one", "fail", "two"}, fp.received); diff != "" {
		t.Errorf("messages were not posted in order: %v", diff)
	}
	if errCount != 1 {
		t.Errorf("expected 1 error, got %d", errCount)
	}
	expected := []chatLine{
		{Nick: "alice", Text: "one"},
		{Nick: botNick, Text: "alice: ONE"},
		{Nick: "alice", Text: "fail"},
		{Nick: "alice", Text: "two"},
		{Nick: botNick, Text: "alice: TWO"},
	}
	if diff := cmp.Diff(expected, last); diff != "" {
		t.Error(diff)
	}
}

func TestSendMessagesStopsWhenContextIsDone(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	toBot := make(chan string, 1)
	toBot <- "one"

	done := make(chan struct{})
	go func() {
		defer close(done)
		// Nothing reads fromBot, so the sender blocks until ctx is done.
		sendMessages(ctx, &fakePoster{}, "alice", toBot, make(chan []chatLine), make(chan error))
	}()
	cancel()

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("expected the sender to return")
	}
}

func TestModelQueuesMessagesInOrder(t *testing.T) {
	toBot := make(chan string, 2)
	var m tea.Model = newModel(context.Background(), "alice", toBot, make(chan []chatLine), make(chan error))

	enter := func(text string) {
		mm := m.(model)
		mm.textarea.SetValue(text)
		m, _ = mm.Update(tea.KeyMsg{Type: tea.KeyEnter})
	}
	enter(".wa one")
	enter(".wa two")
	if m.(model).err != nil {
		t.Fatalf("unexpected error: %v", m.(model).err)
	}

	enter(".wa three")
	if m.(model).err == nil {
		t.Error("expected an error when too many messages are waiting")
	}
	if got := m.(model).textarea.Value(); got != ".wa three" {
		t.Errorf("expected the unsent message to stay in the input, got %q", got)
	}

	close(toBot)
	var actual []string
	for text := range toBot {
		actual = append(actual, text)
	}
	if diff := cmp.Diff([]string{".wa one", ".wa two"}, actual); diff != "" {
		t.Error(diff)
	}
}

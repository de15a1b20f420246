package bot

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/matzehuels/cratesbot/pkg/buildinfo"
	"github.com/matzehuels/cratesbot/pkg/integrations"
	"github.com/matzehuels/cratesbot/pkg/integrations/crates"
	"github.com/matzehuels/cratesbot/pkg/telegram"
)

func TestParseCommand(t *testing.T) {
	tests := []struct {
		text   string
		want   command
		wantOK bool
	}{
		{"/crate serde", command{"crate", "serde"}, true},
		{"/crate   serde  ", command{"crate", "serde"}, true},
		{"/CRATE serde", command{"crate", "serde"}, true},
		{"/crate@cratesbot serde", command{"crate", "serde"}, true},
		{"/crate@CratesBot serde", command{"crate", "serde"}, true},
		{"/crate@otherbot serde", command{}, false},
		{"/about", command{"about", ""}, true},
		{"/", command{}, false},
		{"crate serde", command{}, false},
		{"", command{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			got, ok := parseCommand(tt.text, "cratesbot")
			if ok != tt.wantOK || got != tt.want {
				t.Errorf("parseCommand(%q) = %+v, %v; want %+v, %v", tt.text, got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

func commandUpdate(text string) telegram.Update {
	return telegram.Update{
		UpdateID: 1,
		Message:  &telegram.Message{MessageID: 7, Chat: telegram.Chat{ID: 42}, Text: text},
	}
}

func TestHandleCommand(t *testing.T) {
	serde := &crates.Crate{ID: "serde", Name: "serde", Version: "1.0.0"}

	tests := []struct {
		name      string
		text      string
		registry  *fakeRegistry
		want      string
		wantMatch func(string) bool
	}{
		{
			name:     "about",
			text:     "/about",
			registry: &fakeRegistry{},
			want:     buildinfo.About(),
		},
		{
			name:      "help",
			text:      "/help",
			registry:  &fakeRegistry{},
			wantMatch: func(s string) bool { return strings.Contains(s, "<code>@cratesbot query</code>") },
		},
		{
			name:     "found",
			text:     "/crate serde",
			registry: &fakeRegistry{crate: serde},
			want: `<b>serde</b> (1.0.0)` +
				` - <a href="https://crates.io/crates/serde">info</a>` +
				` - <a href="https://docs.rs/crate/serde">doc</a>`,
		},
		{
			name:     "not found",
			text:     "/crate nope",
			registry: &fakeRegistry{err: fmt.Errorf("%w: https://crates.io/api/v1/crates/nope", integrations.ErrNotFound)},
			want:     "<b>nope</b> - not found",
		},
		{
			name:     "invalid name",
			text:     "/crate <b>",
			registry: &fakeRegistry{err: fmt.Errorf("must not be called")},
			want:     "<b>&lt;b&gt;</b> - not found",
		},
		{
			name:     "registry failure",
			text:     "/crate serde",
			registry: &fakeRegistry{err: fmt.Errorf("%w: status 503", integrations.ErrNetwork)},
			want:     fetchFailure,
		},
		{
			name:     "missing name",
			text:     "/crate",
			registry: &fakeRegistry{},
			want:     crateUsage,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := newFakePlatform()
			b := New(tt.registry, p, testLogger(), "cratesbot")

			if got := b.HandleUpdate(context.Background(), commandUpdate(tt.text)); got != Done {
				t.Fatalf("HandleUpdate() = %v, want %v", got, Done)
			}
			if len(p.messages) != 1 {
				t.Fatalf("expected one reply, got %d", len(p.messages))
			}
			msg := p.messages[0]
			if msg.ChatID != 42 || msg.ReplyParameters == nil || msg.ReplyParameters.MessageID != 7 {
				t.Errorf("reply not addressed to the command message: %+v", msg)
			}
			if msg.ParseMode != telegram.ParseModeHTML {
				t.Errorf("ParseMode = %q", msg.ParseMode)
			}
			if tt.wantMatch != nil {
				if !tt.wantMatch(msg.Text) {
					t.Errorf("unexpected reply %q", msg.Text)
				}
				return
			}
			if msg.Text != tt.want {
				t.Errorf("reply = %q\nwant    %q", msg.Text, tt.want)
			}
		})
	}
}

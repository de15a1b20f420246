package buildinfo

import (
	"strings"
	"testing"
)

func TestAbout(t *testing.T) {
	old := Version
	Version = "v1.2.3"
	defer func() { Version = old }()

	want := "cratesbot v1.2.3\n" + Homepage
	if got := About(); got != want {
		t.Errorf("About() = %q, want %q", got, want)
	}
}

func TestUserAgent(t *testing.T) {
	ua := UserAgent()
	if !strings.HasPrefix(ua, Name+"/") {
		t.Errorf("UserAgent() = %q, want prefix %q", ua, Name+"/")
	}
	if !strings.Contains(ua, Homepage) {
		t.Errorf("UserAgent() = %q, should contain homepage", ua)
	}
}

func TestTemplate(t *testing.T) {
	if !strings.Contains(Template(), "{{.Name}}") {
		t.Error("Template() should reference the command name")
	}
}

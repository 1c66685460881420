package buildinfo

import (
	"strings"
	"testing"
)

func TestStrings(t *testing.T) {
	old := Version
	Version = "v1.2.3"
	defer func() { Version = old }()

	if !strings.Contains(String(), "version: v1.2.3") {
		t.Errorf("String() = %q", String())
	}
	if !strings.Contains(Template(), "{{.Name}} version v1.2.3") {
		t.Errorf("Template() = %q", Template())
	}
	if UserAgent() != "artifactscout/v1.2.3" {
		t.Errorf("UserAgent() = %q", UserAgent())
	}
}

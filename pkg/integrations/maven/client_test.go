package maven

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"slices"
	"testing"
	"time"

	"github.com/matzehuels/artifactscout/pkg/integrations"
)

func testClient(srv *httptest.Server) *Client {
	return NewClient(integrations.NewClient(integrations.Options{
		HTTPClient:     srv.Client(),
		InitialBackoff: time.Millisecond,
	}))
}

func TestClient_ListVersions(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/maven2/org/example/mylib/maven-metadata.xml" {
			http.NotFound(w, r)
			return
		}
		w.Write([]byte(`<?xml version="1.0" encoding="UTF-8"?>
<metadata>
  <groupId>org.example</groupId>
  <artifactId>mylib</artifactId>
  <versioning>
    <latest>1.10.0</latest>
    <release>1.10.0</release>
    <versions>
      <version>1.2.0</version>
      <version>1.10.0</version>
      <version>1.2.0-RC1</version>
    </versions>
  </versioning>
</metadata>`))
	}))
	defer server.Close()

	repo := Repository{URL: server.URL + "/maven2/"}
	got, err := testClient(server).ListVersions(context.Background(), repo, "org.example", "mylib")
	if err != nil {
		t.Fatalf("ListVersions() error: %v", err)
	}
	want := []string{"1.2.0", "1.10.0", "1.2.0-RC1"}
	if !slices.Equal(got, want) {
		t.Errorf("ListVersions() = %v, want %v", got, want)
	}
}

func TestClient_ListVersions_DirectoryFallback(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/repo/org/example/mylib/":
			w.Write([]byte(`<a href="../">../</a><a href="0.1/">0.1/</a><a href="0.2/">0.2/</a><a href="maven-metadata.xml.sha1">x</a>`))
		default:
			http.NotFound(w, r)
		}
	}))
	defer server.Close()

	got, err := testClient(server).ListVersions(context.Background(), Repository{URL: server.URL + "/repo"}, "org.example", "mylib")
	if err != nil {
		t.Fatalf("ListVersions() error: %v", err)
	}
	if !slices.Equal(got, []string{"0.1", "0.2"}) {
		t.Errorf("ListVersions() = %v", got)
	}
}

func TestClient_ListVersions_NotFound(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	defer server.Close()

	_, err := testClient(server).ListVersions(context.Background(), Repository{URL: server.URL}, "org.example", "missing")
	if !errors.Is(err, integrations.ErrNotFound) {
		t.Errorf("ListVersions() error = %v, want ErrNotFound", err)
	}
}

func TestClient_ListVersions_Auth(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if u, p, ok := r.BasicAuth(); !ok || u != "deploy" || p != "secret" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		w.Write([]byte(`<metadata><versioning><versions><version>1.0</version></versions></versioning></metadata>`))
	}))
	defer server.Close()

	c := testClient(server)
	repo := Repository{URL: server.URL}
	if _, err := c.ListVersions(context.Background(), repo, "g", "a"); !errors.Is(err, integrations.ErrNetwork) {
		t.Errorf("without credentials: err = %v, want ErrNetwork", err)
	}

	repo.Auth = &integrations.BasicAuth{User: "deploy", Password: "secret"}
	got, err := c.ListVersions(context.Background(), repo, "g", "a")
	if err != nil || !slices.Equal(got, []string{"1.0"}) {
		t.Errorf("with credentials: %v, %v", got, err)
	}
}

func TestClient_FetchPOM(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/maven2/org/example/mylib/1.0.0/mylib-1.0.0.pom" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "application/xml")
		w.Write([]byte(`<?xml version="1.0"?>
<project>
  <parent>
    <groupId>org.example</groupId>
    <artifactId>parent</artifactId>
    <version>7</version>
  </parent>
  <artifactId>mylib</artifactId>
  <version>1.0.0</version>
  <url>https://example.org/${project.artifactId}</url>
  <properties>
    <repo.name>mylib</repo.name>
    <repo.base>https://github.com/example/${repo.name}</repo.base>
  </properties>
  <scm>
    <url>${repo.base}/tree/v${project.version}</url>
    <connection>scm:git:git@github.com:example/mylib.git</connection>
  </scm>
</project>`))
	}))
	defer server.Close()

	pom, err := testClient(server).FetchPOM(context.Background(), Repository{URL: server.URL + "/maven2"}, "org.example", "mylib", "1.0.0")
	if err != nil {
		t.Fatalf("FetchPOM() error: %v", err)
	}

	if pom.GroupID != "org.example" {
		t.Errorf("GroupID = %q, want inherited org.example", pom.GroupID)
	}
	if pom.URL != "https://example.org/mylib" {
		t.Errorf("URL = %q", pom.URL)
	}
	if pom.SCM == nil || pom.SCM.URL != "https://github.com/example/mylib/tree/v1.0.0" {
		t.Errorf("SCM = %+v", pom.SCM)
	}
	if pom.SCM.Connection != "scm:git:git@github.com:example/mylib.git" {
		t.Errorf("SCM.Connection = %q", pom.SCM.Connection)
	}
	if pom.Parent == nil || *pom.Parent != (Parent{GroupID: "org.example", ArtifactID: "parent", Version: "7"}) {
		t.Errorf("Parent = %+v", pom.Parent)
	}
	if pom.Location != server.URL+"/maven2/org/example/mylib/1.0.0/mylib-1.0.0.pom" {
		t.Errorf("Location = %q", pom.Location)
	}
}

func TestClient_FetchPOM_NotFound(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	defer server.Close()

	_, err := testClient(server).FetchPOM(context.Background(), Repository{URL: server.URL}, "g", "a", "1")
	if !errors.Is(err, integrations.ErrNotFound) {
		t.Errorf("FetchPOM() error = %v, want ErrNotFound", err)
	}
}

func TestResolve_NoSCMNoParent(t *testing.T) {
	raw := pomProject{GroupID: " g ", ArtifactID: "a", Version: "1", URL: "${undefined.prop}"}
	pom := raw.resolve()
	if pom.SCM != nil || pom.Parent != nil {
		t.Errorf("expected nil SCM and Parent, got %+v", pom)
	}
	if pom.GroupID != "g" {
		t.Errorf("GroupID = %q, want trimmed", pom.GroupID)
	}
	if pom.URL != "${undefined.prop}" {
		t.Errorf("unresolved reference should be kept, got %q", pom.URL)
	}
}

func TestSubstitute_Cycle(t *testing.T) {
	vars := map[string]string{"a": "${b}", "b": "${a}"}
	// Must terminate.
	_ = substitute("${a}", vars)
}

func TestArtifactName(t *testing.T) {
	tests := []struct {
		name  string
		attrs map[string]string
		want  string
	}{
		{"plain", nil, "plain"},
		{"sbt-plugin", map[string]string{"scalaVersion": "2.12", "sbtVersion": "1.0"}, "sbt-plugin_2.12_1.0"},
		{"partial", map[string]string{"scalaVersion": "2.12"}, "partial"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ArtifactName(tt.name, tt.attrs); got != tt.want {
				t.Errorf("ArtifactName() = %q, want %q", got, tt.want)
			}
		})
	}
}

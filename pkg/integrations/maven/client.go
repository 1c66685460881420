package maven

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/matzehuels/artifactscout/pkg/integrations"
)

// Repository is a Maven 2 layout repository root.
type Repository struct {
	URL  string                  // e.g. "https://repo1.maven.org/maven2/"
	Auth *integrations.BasicAuth // optional
}

// Client reads metadata from Maven 2 layout repositories.
//
// All methods are safe for concurrent use.
type Client struct {
	http *integrations.Client
}

// NewClient creates a Maven client on top of the shared HTTP client.
func NewClient(http *integrations.Client) *Client {
	return &Client{http: http}
}

// ListVersions returns the versions of group:artifact published in repo, in
// repository order.
//
// The versions come from maven-metadata.xml. Repositories that do not serve
// that file are asked for a directory listing of the artifact directory
// instead.
//
// Returns [integrations.ErrNotFound] when the artifact has neither.
func (c *Client) ListVersions(ctx context.Context, repo Repository, group, artifact string) ([]string, error) {
	base := artifactURL(repo.URL, group, artifact)

	var meta metadata
	err := c.http.GetXML(ctx, base+"/maven-metadata.xml", repo.Auth, &meta)
	if err == nil {
		return meta.Versioning.Versions, nil
	}
	if !errors.Is(err, integrations.ErrNotFound) {
		return nil, err
	}

	body, err := c.http.GetText(ctx, base+"/", repo.Auth)
	if err != nil {
		return nil, err
	}
	var versions []string
	for _, name := range integrations.ParseListing(body) {
		if strings.HasPrefix(name, "maven-metadata") {
			continue
		}
		versions = append(versions, name)
	}
	if len(versions) == 0 {
		return nil, fmt.Errorf("%w: %s:%s in %s", integrations.ErrNotFound, group, artifact, repo.URL)
	}
	return versions, nil
}

// FetchPOM retrieves and interprets the POM of group:artifact:version.
//
// Property references in the fields this package reports (url, scm,
// parent, coordinates) are substituted from project.* values and the POM's
// own <properties>. References that cannot be resolved are left as-is.
//
// Returns [integrations.ErrNotFound] if the repository has no such POM.
func (c *Client) FetchPOM(ctx context.Context, repo Repository, group, artifact, version string) (*POM, error) {
	location := artifactURL(repo.URL, group, artifact) + "/" + pathSegment(version) + "/" +
		pathSegment(artifact+"-"+version+".pom")

	var raw pomProject
	if err := c.http.GetXML(ctx, location, repo.Auth, &raw); err != nil {
		return nil, err
	}
	pom := raw.resolve()
	pom.Location = location
	return pom, nil
}

// ArtifactName returns the name an artifact is published under. sbt plugins
// are published to Maven repositories with the Scala and sbt binary versions
// appended to the name; the attributes carry those versions.
func ArtifactName(artifact string, attrs map[string]string) string {
	scala, sbt := attrs["scalaVersion"], attrs["sbtVersion"]
	if scala == "" || sbt == "" {
		return artifact
	}
	return artifact + "_" + scala + "_" + sbt
}

func artifactURL(root, group, artifact string) string {
	segs := append(strings.Split(group, "."), artifact)
	return integrations.JoinURL(root, segs...)
}

func pathSegment(s string) string {
	return url.PathEscape(s)
}

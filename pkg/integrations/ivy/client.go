package ivy

import (
	"context"
	"encoding/xml"
	"fmt"
	"maps"
	"strings"

	"github.com/matzehuels/artifactscout/pkg/integrations"
)

// Repository is an Ivy repository described by a pattern.
type Repository struct {
	Pattern *Pattern
	Auth    *integrations.BasicAuth // optional
}

// Descriptor is the part of an ivy.xml this package interprets.
type Descriptor struct {
	Organisation string
	Module       string
	Revision     string
	Homepage     string   // <description homepage="...">
	Extends      *Extends // nil when the module extends nothing
	Location     string   // where the descriptor was fetched from
}

// Extends is the <extends> parent module.
type Extends struct {
	Organisation string
	Module       string
	Revision     string
}

// Client reads metadata from Ivy repositories.
//
// All methods are safe for concurrent use.
type Client struct {
	http *integrations.Client
}

// NewClient creates an Ivy client on top of the shared HTTP client.
func NewClient(http *integrations.Client) *Client {
	return &Client{http: http}
}

// ListVersions discovers the revisions of org:module by listing the
// directory that precedes [revision] in the pattern. attrs supplies extra
// pattern variables (e.g. scalaVersion).
//
// Returns [integrations.ErrNotFound] if the pattern has no usable
// [revision] or the listing names nothing.
func (c *Client) ListVersions(ctx context.Context, repo Repository, org, module string, attrs map[string]string) ([]string, error) {
	vars := moduleVars(org, module, attrs)
	dir, before, after, ok, err := repo.Pattern.ListingPrefix(vars)
	if err != nil {
		return nil, fmt.Errorf("%w: %s:%s: %v", integrations.ErrNotFound, org, module, err)
	}
	if !ok || dir == "" {
		return nil, fmt.Errorf("%w: pattern %s cannot list revisions", integrations.ErrNotFound, repo.Pattern)
	}

	body, err := c.http.GetText(ctx, dir, repo.Auth)
	if err != nil {
		return nil, err
	}

	var versions []string
	for _, name := range integrations.ParseListing(body) {
		if len(name) <= len(before)+len(after) ||
			!strings.HasPrefix(name, before) || !strings.HasSuffix(name, after) {
			continue
		}
		versions = append(versions, name[len(before):len(name)-len(after)])
	}
	if len(versions) == 0 {
		return nil, fmt.Errorf("%w: %s:%s in %s", integrations.ErrNotFound, org, module, dir)
	}
	return versions, nil
}

// FetchDescriptor retrieves and parses the ivy.xml of org:module:revision.
// The descriptor location is the pattern filled with artifact "ivy",
// type "ivy" and ext "xml".
func (c *Client) FetchDescriptor(ctx context.Context, repo Repository, org, module, revision string, attrs map[string]string) (*Descriptor, error) {
	vars := moduleVars(org, module, attrs)
	vars[VarRevision] = revision
	vars[VarArtifact] = "ivy"
	vars[VarType] = "ivy"
	vars[VarExt] = "xml"

	location, err := repo.Pattern.Substitute(vars)
	if err != nil {
		return nil, fmt.Errorf("%w: %s:%s:%s: %v", integrations.ErrNotFound, org, module, revision, err)
	}

	var raw ivyModule
	if err := c.http.GetXML(ctx, location, repo.Auth, &raw); err != nil {
		return nil, err
	}
	d := raw.descriptor()
	d.Location = location
	return d, nil
}

func moduleVars(org, module string, attrs map[string]string) map[string]string {
	vars := maps.Clone(attrs)
	if vars == nil {
		vars = make(map[string]string, 6)
	}
	vars[VarOrganisation] = org
	vars[VarModule] = module
	return vars
}

type ivyModule struct {
	XMLName xml.Name `xml:"ivy-module"`
	Info    struct {
		Organisation string `xml:"organisation,attr"`
		Module       string `xml:"module,attr"`
		Revision     string `xml:"revision,attr"`
		Extends      *struct {
			Organisation string `xml:"organisation,attr"`
			Module       string `xml:"module,attr"`
			Revision     string `xml:"revision,attr"`
		} `xml:"extends"`
		Description struct {
			Homepage string `xml:"homepage,attr"`
		} `xml:"description"`
	} `xml:"info"`
}

func (m *ivyModule) descriptor() *Descriptor {
	d := &Descriptor{
		Organisation: m.Info.Organisation,
		Module:       m.Info.Module,
		Revision:     m.Info.Revision,
		Homepage:     strings.TrimSpace(m.Info.Description.Homepage),
	}
	if e := m.Info.Extends; e != nil {
		d.Extends = &Extends{Organisation: e.Organisation, Module: e.Module, Revision: e.Revision}
		// An omitted organisation means the child's own.
		if d.Extends.Organisation == "" {
			d.Extends.Organisation = d.Organisation
		}
	}
	return d
}

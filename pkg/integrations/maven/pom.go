package maven

import (
	"encoding/xml"
	"regexp"
	"strings"
)

// POM is the part of a Maven project descriptor this package interprets.
type POM struct {
	GroupID    string
	ArtifactID string
	Version    string
	Name       string
	URL        string  // <url>, the project homepage
	SCM        *SCM    // nil when the POM has no <scm>
	Parent     *Parent // nil when the POM has no <parent>
	Location   string  // where the POM was fetched from
}

// SCM is the <scm> section.
type SCM struct {
	URL                 string
	Connection          string
	DeveloperConnection string
}

// Parent is the <parent> coordinate.
type Parent struct {
	GroupID    string
	ArtifactID string
	Version    string
}

type metadata struct {
	GroupID    string `xml:"groupId"`
	ArtifactID string `xml:"artifactId"`
	Versioning struct {
		Latest   string   `xml:"latest"`
		Release  string   `xml:"release"`
		Versions []string `xml:"versions>version"`
	} `xml:"versioning"`
}

type pomProject struct {
	GroupID    string        `xml:"groupId"`
	ArtifactID string        `xml:"artifactId"`
	Version    string        `xml:"version"`
	Name       string        `xml:"name"`
	URL        string        `xml:"url"`
	SCM        *pomSCM       `xml:"scm"`
	Parent     *pomParent    `xml:"parent"`
	Properties pomProperties `xml:"properties"`
}

type pomSCM struct {
	URL                 string `xml:"url"`
	Connection          string `xml:"connection"`
	DeveloperConnection string `xml:"developerConnection"`
}

type pomParent struct {
	GroupID    string `xml:"groupId"`
	ArtifactID string `xml:"artifactId"`
	Version    string `xml:"version"`
}

// pomProperties decodes <properties> into a map keyed by element name.
type pomProperties map[string]string

func (p *pomProperties) UnmarshalXML(d *xml.Decoder, start xml.StartElement) error {
	props := make(map[string]string)
	for {
		tok, err := d.Token()
		if err != nil {
			return err
		}
		switch t := tok.(type) {
		case xml.StartElement:
			var v string
			if err := d.DecodeElement(&v, &t); err != nil {
				return err
			}
			props[t.Name.Local] = strings.TrimSpace(v)
		case xml.EndElement:
			*p = props
			return nil
		}
	}
}

var propertyRef = regexp.MustCompile(`\$\{([^}]+)\}`)

// resolve applies parent inheritance for the coordinate and substitutes
// property references.
func (raw *pomProject) resolve() *POM {
	trim := strings.TrimSpace
	pom := &POM{
		GroupID:    trim(raw.GroupID),
		ArtifactID: trim(raw.ArtifactID),
		Version:    trim(raw.Version),
		Name:       trim(raw.Name),
		URL:        trim(raw.URL),
	}
	if raw.Parent != nil {
		pom.Parent = &Parent{
			GroupID:    trim(raw.Parent.GroupID),
			ArtifactID: trim(raw.Parent.ArtifactID),
			Version:    trim(raw.Parent.Version),
		}
		if pom.GroupID == "" {
			pom.GroupID = pom.Parent.GroupID
		}
		if pom.Version == "" {
			pom.Version = pom.Parent.Version
		}
	}

	vars := map[string]string{
		"project.groupId":    pom.GroupID,
		"project.artifactId": pom.ArtifactID,
		"project.version":    pom.Version,
		"project.name":       pom.Name,
		"project.url":        pom.URL,
	}
	if pom.Parent != nil {
		vars["project.parent.groupId"] = pom.Parent.GroupID
		vars["project.parent.artifactId"] = pom.Parent.ArtifactID
		vars["project.parent.version"] = pom.Parent.Version
	}
	// Maven 2 also accepted the deprecated pom.* prefix.
	for _, k := range []string{"groupId", "artifactId", "version", "name", "url"} {
		vars["pom."+k] = vars["project."+k]
	}
	for k, v := range raw.Properties {
		if _, ok := vars[k]; !ok {
			vars[k] = v
		}
	}

	sub := func(s string) string { return substitute(s, vars) }
	pom.GroupID = sub(pom.GroupID)
	pom.Version = sub(pom.Version)
	pom.URL = sub(pom.URL)
	if raw.SCM != nil {
		pom.SCM = &SCM{
			URL:                 sub(trim(raw.SCM.URL)),
			Connection:          sub(trim(raw.SCM.Connection)),
			DeveloperConnection: sub(trim(raw.SCM.DeveloperConnection)),
		}
	}
	if pom.Parent != nil {
		pom.Parent.GroupID = sub(pom.Parent.GroupID)
		pom.Parent.ArtifactID = sub(pom.Parent.ArtifactID)
		pom.Parent.Version = sub(pom.Parent.Version)
	}
	return pom
}

// substitute replaces ${name} references. Properties may refer to other
// properties, so substitution repeats a bounded number of times.
func substitute(s string, vars map[string]string) string {
	for i := 0; i < 8 && strings.Contains(s, "${"); i++ {
		next := propertyRef.ReplaceAllStringFunc(s, func(ref string) string {
			if v, ok := vars[ref[2:len(ref)-1]]; ok {
				return v
			}
			return ref
		})
		if next == s {
			break
		}
		s = next
	}
	return s
}

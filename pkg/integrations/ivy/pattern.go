package ivy

import (
	"fmt"
	"strings"

	apperr "github.com/matzehuels/artifactscout/pkg/errors"
)

// Well-known pattern variables.
const (
	VarOrganisation = "organisation"
	VarOrgPath      = "orgPath" // organisation with "." replaced by "/"
	VarModule       = "module"
	VarRevision     = "revision"
	VarArtifact     = "artifact"
	VarType         = "type"
	VarExt          = "ext"
	VarClassifier   = "classifier"
)

// Pattern is a parsed Ivy repository pattern such as
//
//	https://repo.example.com/[organisation]/[module]/(scala_[scalaVersion]/)[revision]/ivys/ivy.xml
//
// Text in brackets is a variable. Text in parentheses is optional: it is
// kept only if every variable it contains has a value.
type Pattern struct {
	raw    string
	chunks []chunk
}

type chunk struct {
	literal  string
	variable string
	optional []chunk // non-nil for an optional section
}

func (c chunk) isOptional() bool { return c.optional != nil }

// ParsePattern parses an Ivy pattern. It fails with an
// [apperr.ErrCodeInvalidPattern] error for an empty pattern, unbalanced
// brackets or parentheses, an empty variable name, or nested optional
// sections.
func ParsePattern(s string) (*Pattern, error) {
	if strings.TrimSpace(s) == "" {
		return nil, apperr.New(apperr.ErrCodeInvalidPattern, "empty pattern")
	}

	var (
		top      []chunk
		opt      []chunk
		inOpt    bool
		optStart int
		lit      strings.Builder
	)
	emit := func(c chunk) {
		if inOpt {
			opt = append(opt, c)
		} else {
			top = append(top, c)
		}
	}
	flush := func() {
		if lit.Len() > 0 {
			emit(chunk{literal: lit.String()})
			lit.Reset()
		}
	}

	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '[':
			end := strings.IndexAny(s[i+1:], "[]()")
			if end < 0 || s[i+1+end] != ']' {
				return nil, apperr.New(apperr.ErrCodeInvalidPattern, "unclosed '[' at offset %d in %q", i, s)
			}
			name := s[i+1 : i+1+end]
			if strings.TrimSpace(name) == "" {
				return nil, apperr.New(apperr.ErrCodeInvalidPattern, "empty variable at offset %d in %q", i, s)
			}
			flush()
			emit(chunk{variable: name})
			i += end + 1
		case ']':
			return nil, apperr.New(apperr.ErrCodeInvalidPattern, "unexpected ']' at offset %d in %q", i, s)
		case '(':
			if inOpt {
				return nil, apperr.New(apperr.ErrCodeInvalidPattern, "nested '(' at offset %d in %q", i, s)
			}
			flush()
			inOpt, optStart, opt = true, i, []chunk{}
		case ')':
			if !inOpt {
				return nil, apperr.New(apperr.ErrCodeInvalidPattern, "unexpected ')' at offset %d in %q", i, s)
			}
			flush()
			inOpt = false
			top = append(top, chunk{optional: opt})
			opt = nil
		default:
			lit.WriteByte(s[i])
		}
	}
	if inOpt {
		return nil, apperr.New(apperr.ErrCodeInvalidPattern, "unclosed '(' at offset %d in %q", optStart, s)
	}
	flush()
	return &Pattern{raw: s, chunks: top}, nil
}

// MustParsePattern is like ParsePattern but panics on error. For patterns
// known at compile time.
func MustParsePattern(s string) *Pattern {
	p, err := ParsePattern(s)
	if err != nil {
		panic(err)
	}
	return p
}

// String returns the pattern text.
func (p *Pattern) String() string { return p.raw }

// Variables returns the variable names in order of appearance.
func (p *Pattern) Variables() []string {
	var names []string
	var walk func([]chunk)
	walk = func(cs []chunk) {
		for _, c := range cs {
			switch {
			case c.isOptional():
				walk(c.optional)
			case c.variable != "":
				names = append(names, c.variable)
			}
		}
	}
	walk(p.chunks)
	return names
}

// Substitute fills the pattern. Every variable outside an optional section
// must have a non-empty value; optional sections with a missing value are
// dropped.
func (p *Pattern) Substitute(vars map[string]string) (string, error) {
	return substitute(p.chunks, withDerived(vars))
}

// ListingPrefix splits the pattern at [revision] for version discovery. It
// returns the directory to list (pattern filled up to the last "/" before
// [revision]) and the literal text that surrounds the revision inside its
// path segment. ok is false when [revision] is absent or optional.
func (p *Pattern) ListingPrefix(vars map[string]string) (dir, before, after string, ok bool, err error) {
	idx := -1
	for i, c := range p.chunks {
		if c.variable == VarRevision {
			idx = i
			break
		}
	}
	if idx < 0 {
		return "", "", "", false, nil
	}

	head, err := substitute(p.chunks[:idx], withDerived(vars))
	if err != nil {
		return "", "", "", false, err
	}
	slash := strings.LastIndex(head, "/")
	dir, before = head[:slash+1], head[slash+1:]

	for _, c := range p.chunks[idx+1:] {
		if c.isOptional() || c.variable != "" {
			break
		}
		if cut, _, found := strings.Cut(c.literal, "/"); found {
			after += cut
			break
		}
		after += c.literal
	}
	return dir, before, after, true, nil
}

func withDerived(vars map[string]string) map[string]string {
	org, ok := vars[VarOrganisation]
	if !ok {
		return vars
	}
	if _, set := vars[VarOrgPath]; set {
		return vars
	}
	out := make(map[string]string, len(vars)+1)
	for k, v := range vars {
		out[k] = v
	}
	out[VarOrgPath] = strings.ReplaceAll(org, ".", "/")
	return out
}

func substitute(chunks []chunk, vars map[string]string) (string, error) {
	var b strings.Builder
	for _, c := range chunks {
		switch {
		case c.isOptional():
			if s, err := substitute(c.optional, vars); err == nil {
				b.WriteString(s)
			}
		case c.variable != "":
			v := vars[c.variable]
			if v == "" {
				return "", fmt.Errorf("pattern variable %q has no value", c.variable)
			}
			b.WriteString(v)
		default:
			b.WriteString(c.literal)
		}
	}
	return b.String(), nil
}

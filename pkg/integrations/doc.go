// Package integrations provides the HTTP plumbing for artifact repositories.
//
// # Overview
//
// Each repository layout has its own subpackage:
//
//   - [maven]: Maven 2 layout (maven-metadata.xml, POM files)
//   - [ivy]: Ivy patterns (directory listings, ivy.xml)
//
// # Shared Infrastructure
//
// The [Client] type provides the functionality both layouts share:
//
//   - DNS-cached transport ([NewHTTPClient])
//   - Retries with exponential backoff for transient failures ([Retry])
//   - A circuit breaker per repository host
//   - Basic auth for private repositories and default headers
//   - Observability HTTP hooks
//
// Errors are classified with [ErrNotFound] (the repository answered, the
// document does not exist) and [ErrNetwork] (anything else went wrong).
//
// [maven]: github.com/matzehuels/artifactscout/pkg/integrations/maven
// [ivy]: github.com/matzehuels/artifactscout/pkg/integrations/ivy
package integrations

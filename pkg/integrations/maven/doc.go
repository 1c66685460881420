// Package maven reads artifact metadata from Maven 2 layout repositories.
//
// Two documents are used: maven-metadata.xml for the list of published
// versions of an artifact, and the POM of one version for its homepage,
// source control section and parent project.
//
// # Usage
//
//	client := maven.NewClient(integrations.NewClient(integrations.Options{}))
//	repo := maven.Repository{URL: "https://repo1.maven.org/maven2/"}
//	versions, err := client.ListVersions(ctx, repo, "com.google.guava", "guava")
//	pom, err := client.FetchPOM(ctx, repo, "com.google.guava", "guava", "32.1.3-jre")
package maven

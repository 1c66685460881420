package deps

// Resolver is a configured source of artifact metadata.
//
// It is a closed set: the only implementations are [MavenRepository] and
// [IvyRepository]. Use a type switch to handle each variant.
type Resolver interface {
	// ResolverName returns the configured repository name.
	ResolverName() string
	resolver()
}

// Credentials authenticate against a private repository.
type Credentials struct {
	User     string
	Password string
}

// MavenRepository is a repository laid out in the Maven 2 directory format.
type MavenRepository struct {
	Name        string       // Display name (e.g., "central")
	Location    string       // Root URL (e.g., "https://repo1.maven.org/maven2/")
	Credentials *Credentials // Optional
}

// IvyRepository is a repository addressed through an Ivy pattern such as
// "https://repo.example.org/[organisation]/[module]/[revision]/ivys/ivy.xml".
type IvyRepository struct {
	Name        string       // Display name
	Pattern     string       // Unparsed Ivy pattern
	Credentials *Credentials // Optional
}

func (r MavenRepository) ResolverName() string { return r.Name }
func (r IvyRepository) ResolverName() string   { return r.Name }

func (MavenRepository) resolver() {}
func (IvyRepository) resolver()   {}

// MavenCentral is the repository used when nothing else is configured.
var MavenCentral = MavenRepository{Name: "public", Location: "https://repo1.maven.org/maven2/"}

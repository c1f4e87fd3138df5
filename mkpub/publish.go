// Package mkpub collects the publication setup of a project: the version
// control system the project lives in and the repositories releases are
// published to. It validates the configuration and resolves repository
// credentials; the actual upload transport is left to the build script.
package mkpub

import (
	"fmt"
	"os"
	"strings"
)

// VCS describes the version control system of a project.
type VCS struct {
	// Type is the VCS family, e.g. "git".
	Type string
	// URL is the canonical repository URL.
	URL string
	// Branch is the branch releases are cut from.
	Branch string
}

// A Repo is a publication target registered with a Publishing.
type Repo struct {
	Namespace string
	Name      string
	URL       string
}

func (r *Repo) String() string { return r.Namespace + "." + r.Name }

// Credentials are the resolved access data for one publication repository.
type Credentials struct {
	User  string
	Token string
}

// Publishing keeps a project's VCS configuration and its publication
// repositories. The zero value is ready to use.
type Publishing struct {
	vcs           VCS
	vcsConfigured bool
	repos         []*Repo
	props         map[string]string
	envLookup     func(string) (string, bool)
}

// ConfigureVCS sets the project's VCS. The first call stores v, every
// later call leaves the stored configuration untouched.
func (p *Publishing) ConfigureVCS(v VCS) {
	if p.vcsConfigured {
		return
	}
	p.vcs = v
	p.vcsConfigured = true
}

// VCS returns the configured VCS and whether ConfigureVCS was called.
func (p *Publishing) VCS() (VCS, bool) { return p.vcs, p.vcsConfigured }

// Repository registers the publication repository namespace.name with its
// upload URL. It requires ConfigureVCS to have been called before.
// Registering the same repository with the same URL again is a no-op,
// with a different URL it is an error.
func (p *Publishing) Repository(namespace, name, url string) (*Repo, error) {
	if !p.vcsConfigured {
		return nil, fmt.Errorf(
			"registering repository '%s.%s' without VCS: configure the VCS before adding publication repositories",
			namespace, name,
		)
	}
	for _, r := range p.repos {
		if r.Namespace != namespace || r.Name != name {
			continue
		}
		if r.URL != url {
			return nil, fmt.Errorf(
				"repository '%s' already registered with URL %s",
				r, r.URL,
			)
		}
		return r, nil
	}
	r := &Repo{Namespace: namespace, Name: name, URL: url}
	p.repos = append(p.repos, r)
	return r, nil
}

// Repos returns the registered repositories in registration order.
func (p *Publishing) Repos() []*Repo { return p.repos }

// FindRepo looks up a registered repository by "namespace.name".
func (p *Publishing) FindRepo(key string) *Repo {
	for _, r := range p.repos {
		if r.String() == key {
			return r
		}
	}
	return nil
}

// SetProperty sets a publication property, e.g. a credential key like
// "releases.github.token".
func (p *Publishing) SetProperty(key, value string) {
	if p.props == nil {
		p.props = make(map[string]string)
	}
	p.props[key] = value
}

// Property returns the property key, falling back to the process
// environment with the key mapped to env style, e.g.
// "releases.github.token" → "RELEASES_GITHUB_TOKEN".
func (p *Publishing) Property(key string) (string, bool) {
	if v, ok := p.props[key]; ok {
		return v, true
	}
	return p.lookupEnv(envKey(key))
}

// Credentials resolves the access data of r from the convention keys
// <namespace>.<name>.user and <namespace>.<name>.token. Unresolved keys
// are reported in the error.
func (p *Publishing) Credentials(r *Repo) (Credentials, error) {
	var (
		cred    Credentials
		missing []string
	)
	userKey := r.String() + ".user"
	tokenKey := r.String() + ".token"
	var ok bool
	if cred.User, ok = p.Property(userKey); !ok {
		missing = append(missing, userKey)
	}
	if cred.Token, ok = p.Property(tokenKey); !ok {
		missing = append(missing, tokenKey)
	}
	if len(missing) > 0 {
		return cred, fmt.Errorf(
			"missing credentials for repository '%s': %s",
			r, strings.Join(missing, ", "),
		)
	}
	return cred, nil
}

func (p *Publishing) lookupEnv(key string) (string, bool) {
	if p.envLookup != nil {
		return p.envLookup(key)
	}
	return os.LookupEnv(key)
}

func envKey(key string) string {
	return strings.ToUpper(strings.ReplaceAll(key, ".", "_"))
}

// Package gitutils reads the GitHub owner of the git repository enclosing
// the working directory, used as the default organization.
package gitutils

import (
	"regexp"
	"strings"

	"github.com/mageroni/Agent-Quickstart/internal/pkg/fs"
	"github.com/pkg/errors"
)

var (
	ErrCannotGetLocalRepository         = errors.New("cannot get local repository")
	ErrUnableToParseRemoteRepositoryURI = errors.New("unable to parse remote repository URI")
	ErrNoRemotes                        = errors.New("repository has no remotes")
)

var remotePatterns = []*regexp.Regexp{
	regexp.MustCompile(`^git@([^:]+):([^/]+)/([^/]+?)(\.git)?/?$`),
	regexp.MustCompile(`^(?:https?|ssh|git)://(?:[^@/]+@)?([^/]+)/([^/]+)/([^/]+?)(\.git)?/?$`),
}

// Remote is the host, owner and name parsed from a remote URL.
type Remote struct {
	Host  string
	Owner string
	Name  string
}

var getWorkingDir = func(fs fs.Filesystem) (string, error) {
	return fs.Getwd()
}

var openLocalRepo = func() (gitRepository, error) {
	wd, err := getWorkingDir(fs.OS{})
	if err != nil {
		return nil, errors.Wrap(err, ErrCannotGetLocalRepository.Error())
	}

	r, err := openRepo(wd)
	if err != nil {
		return nil, errors.Wrap(err, ErrCannotGetLocalRepository.Error())
	}

	return &repository{r: r}, nil
}

var extractRepositoryTokens = func(uri string) ([]string, error) {
	uri = strings.TrimSpace(uri)
	for _, p := range remotePatterns {
		if m := p.FindStringSubmatch(uri); len(m) >= 4 {
			return m[1:4], nil
		}
	}

	return nil, ErrUnableToParseRemoteRepositoryURI
}

func ParseRemote(uri string) (*Remote, error) {
	m, err := extractRepositoryTokens(uri)
	if err != nil {
		return nil, err
	}

	return &Remote{Host: m[0], Owner: m[1], Name: m[2]}, nil
}

// GetRemoteInfo returns the first parsable remote, origin preferred.
func GetRemoteInfo() (*Remote, error) {
	r, err := openLocalRepo()
	if err != nil {
		return nil, err
	}

	urls, err := r.GetRemoteURLs()
	if err != nil {
		return nil, err
	}
	if len(urls) == 0 {
		return nil, ErrNoRemotes
	}

	for _, u := range urls {
		if remote, err := ParseRemote(u); err == nil {
			return remote, nil
		}
	}

	return nil, ErrUnableToParseRemoteRepositoryURI
}

// DefaultOrganization returns the owner of the local repository remote or
// "" when there is none.
func DefaultOrganization() string {
	remote, err := GetRemoteInfo()
	if err != nil {
		return ""
	}

	return remote.Owner
}

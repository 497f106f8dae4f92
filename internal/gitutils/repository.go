package gitutils

import (
	"path/filepath"

	"github.com/go-git/go-git/v5"
	"github.com/pkg/errors"
	"golang.org/x/exp/slices"
)

const defaultRemote = "origin"

type goGitRepository interface {
	Remotes() ([]*git.Remote, error)
}

type gitRepository interface {
	GetRemoteURLs() ([]string, error)
}

type repository struct {
	r goGitRepository
}

var openRepo = func(path string) (goGitRepository, error) {
	return OpenRepoRecursively(path)
}

// OpenRepoRecursively opens the git repository enclosing input.
func OpenRepoRecursively(input string) (*git.Repository, error) {
	dir := input
	for {
		repo, err := git.PlainOpen(dir)
		if err == nil {
			return repo, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir || dir == "." {
			return nil, errors.Errorf("could not find a git repository at %s", input)
		}
		dir = parent
	}
}

// GetRemoteURLs lists the URLs of every remote, origin first.
func (r *repository) GetRemoteURLs() ([]string, error) {
	remotes, err := r.r.Remotes()
	if err != nil {
		return nil, err
	}

	slices.SortStableFunc(remotes, func(a, b *git.Remote) bool {
		return a.Config().Name == defaultRemote && b.Config().Name != defaultRemote
	})

	var urls []string
	for _, re := range remotes {
		urls = append(urls, re.Config().URLs...)
	}

	return urls, nil
}

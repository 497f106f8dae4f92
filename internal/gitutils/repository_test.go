package gitutils

import (
	"testing"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/config"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
)

func remote(name string, urls ...string) *git.Remote {
	return git.NewRemote(nil, &config.RemoteConfig{Name: name, URLs: urls})
}

func Test_repository_GetRemoteURLs(t *testing.T) {
	t.Run("fails when cannot get remotes", func(t *testing.T) {
		vErr := errors.New("remotes err")
		r := &repository{r: &MockGoGitRepository{Err: vErr}}

		_, err := r.GetRemoteURLs()
		assert.EqualError(t, err, vErr.Error())
	})

	t.Run("lists origin first", func(t *testing.T) {
		r := &repository{
			r: &MockGoGitRepository{
				RemotesValue: []*git.Remote{
					remote("upstream", "git@github.com:up/repo.git"),
					remote("origin", "git@github.com:me/repo.git"),
				},
			},
		}

		urls, err := r.GetRemoteURLs()
		assert.NoError(t, err)
		assert.Equal(t, []string{"git@github.com:me/repo.git", "git@github.com:up/repo.git"}, urls)
	})
}

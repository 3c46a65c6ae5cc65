// Package publish pushes exported standings files to the club's GitHub
// data repository.
package publish

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/google/go-github/v68/github"
	"golang.org/x/oauth2"
)

// contentsService is the slice of go-github's repositories API the
// uploader needs. Narrowed for testability.
type contentsService interface {
	GetContents(ctx context.Context, owner, repo, path string, opts *github.RepositoryContentGetOptions) (*github.RepositoryContent, []*github.RepositoryContent, *github.Response, error)
	CreateFile(ctx context.Context, owner, repo, path string, opts *github.RepositoryContentFileOptions) (*github.RepositoryContentResponse, *github.Response, error)
	UpdateFile(ctx context.Context, owner, repo, path string, opts *github.RepositoryContentFileOptions) (*github.RepositoryContentResponse, *github.Response, error)
}

// Uploader writes files into one branch of one repository with
// update-or-create semantics.
type Uploader struct {
	logger   *slog.Logger
	contents contentsService
	owner    string
	repo     string
	branch   string
}

// NewUploader builds an uploader authenticated with a personal access
// token. repo is in "owner/name" form.
func NewUploader(ctx context.Context, logger *slog.Logger, owner, repo, branch, token string) *Uploader {
	tc := oauth2.NewClient(ctx, oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token}))
	client := github.NewClient(tc)
	return &Uploader{
		logger:   logger,
		contents: client.Repositories,
		owner:    owner,
		repo:     repo,
		branch:   branch,
	}
}

// Upload creates the file at path, or updates it in place when it already
// exists. A path that turns out to be a directory is left alone.
func (u *Uploader) Upload(ctx context.Context, path, message string, content []byte) error {
	existing, dir, resp, err := u.contents.GetContents(ctx, u.owner, u.repo, path, &github.RepositoryContentGetOptions{Ref: u.branch})

	switch {
	case err != nil && resp != nil && resp.StatusCode == http.StatusNotFound:
		u.logger.InfoContext(ctx, "creating new file in data repo",
			slog.String("repo", u.owner+"/"+u.repo),
			slog.String("path", path),
		)
		_, _, err = u.contents.CreateFile(ctx, u.owner, u.repo, path, &github.RepositoryContentFileOptions{
			Message: github.Ptr(message),
			Content: content,
			Branch:  github.Ptr(u.branch),
		})
		if err != nil {
			return fmt.Errorf("failed to create %s in %s/%s: %w", path, u.owner, u.repo, err)
		}
		return nil

	case err != nil:
		return fmt.Errorf("failed to check %s in %s/%s: %w", path, u.owner, u.repo, err)

	case dir != nil:
		return fmt.Errorf("%s in %s/%s is a directory", path, u.owner, u.repo)
	}

	u.logger.InfoContext(ctx, "updating existing file in data repo",
		slog.String("repo", u.owner+"/"+u.repo),
		slog.String("path", path),
	)
	_, _, err = u.contents.UpdateFile(ctx, u.owner, u.repo, path, &github.RepositoryContentFileOptions{
		Message: github.Ptr(message),
		Content: content,
		Branch:  github.Ptr(u.branch),
		SHA:     existing.SHA,
	})
	if err != nil {
		return fmt.Errorf("failed to update %s in %s/%s: %w", path, u.owner, u.repo, err)
	}
	return nil
}

package publish

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"testing"

	"github.com/google/go-github/v68/github"
	"github.com/stretchr/testify/require"
)

type fakeContents struct {
	existingSHA string // non-empty means the file exists
	getErr      error
	isDir       bool

	created *github.RepositoryContentFileOptions
	updated *github.RepositoryContentFileOptions
}

func (f *fakeContents) GetContents(ctx context.Context, owner, repo, path string, opts *github.RepositoryContentGetOptions) (*github.RepositoryContent, []*github.RepositoryContent, *github.Response, error) {
	if f.getErr != nil {
		return nil, nil, &github.Response{Response: &http.Response{StatusCode: http.StatusInternalServerError}}, f.getErr
	}
	if f.isDir {
		return nil, []*github.RepositoryContent{{}}, &github.Response{Response: &http.Response{StatusCode: http.StatusOK}}, nil
	}
	if f.existingSHA == "" {
		return nil, nil, &github.Response{Response: &http.Response{StatusCode: http.StatusNotFound}}, errors.New("404 not found")
	}
	return &github.RepositoryContent{SHA: github.Ptr(f.existingSHA)}, nil, &github.Response{Response: &http.Response{StatusCode: http.StatusOK}}, nil
}

func (f *fakeContents) CreateFile(ctx context.Context, owner, repo, path string, opts *github.RepositoryContentFileOptions) (*github.RepositoryContentResponse, *github.Response, error) {
	f.created = opts
	return nil, nil, nil
}

func (f *fakeContents) UpdateFile(ctx context.Context, owner, repo, path string, opts *github.RepositoryContentFileOptions) (*github.RepositoryContentResponse, *github.Response, error) {
	f.updated = opts
	return nil, nil, nil
}

func testUploader(contents *fakeContents) *Uploader {
	return &Uploader{
		logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
		contents: contents,
		owner:    "badgerminton",
		repo:     "badgerminton-data",
		branch:   "main",
	}
}

func TestUploadCreatesWhenMissing(t *testing.T) {
	contents := &fakeContents{}
	u := testUploader(contents)

	err := u.Upload(context.Background(), "standings.csv", "weekly standings", []byte("rank,name\n"))
	require.NoError(t, err)
	require.Nil(t, contents.updated)
	require.NotNil(t, contents.created)
	require.Equal(t, "weekly standings", *contents.created.Message)
	require.Equal(t, "main", *contents.created.Branch)
	require.Nil(t, contents.created.SHA)
}

func TestUploadUpdatesWhenPresent(t *testing.T) {
	contents := &fakeContents{existingSHA: "abc123"}
	u := testUploader(contents)

	err := u.Upload(context.Background(), "standings.csv", "weekly standings", []byte("rank,name\n"))
	require.NoError(t, err)
	require.Nil(t, contents.created)
	require.NotNil(t, contents.updated)
	require.Equal(t, "abc123", *contents.updated.SHA)
}

func TestUploadSurfacesLookupErrors(t *testing.T) {
	contents := &fakeContents{getErr: errors.New("boom")}
	u := testUploader(contents)

	err := u.Upload(context.Background(), "standings.csv", "msg", nil)
	require.Error(t, err)
	require.Contains(t, err.Error(), "failed to check")
}

func TestUploadRefusesDirectories(t *testing.T) {
	contents := &fakeContents{isDir: true}
	u := testUploader(contents)

	err := u.Upload(context.Background(), "data", "msg", nil)
	require.Error(t, err)
	require.Contains(t, err.Error(), "is a directory")
}

package component

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	mockgit "opencsg.com/csghub-release/_mocks/opencsg.com/csghub-release/builder/git"
	mockgithub "opencsg.com/csghub-release/_mocks/opencsg.com/csghub-release/builder/github"
	mockcomponent "opencsg.com/csghub-release/_mocks/opencsg.com/csghub-release/component"
	"opencsg.com/csghub-release/common/errorx"
	"opencsg.com/csghub-release/common/types"
)

type testNotesMocks struct {
	repo   *mockgit.MockRepository
	github *mockgithub.MockClient
	notes  *mockcomponent.MockReleaseNotesComponent
}

func initializeTestNotesComponent(t *testing.T) (*notesComponentImpl, *testNotesMocks) {
	logger, _ := newRecordingLogger()
	mocks := &testNotesMocks{
		repo:   mockgit.NewMockRepository(t),
		github: mockgithub.NewMockClient(t),
		notes:  mockcomponent.NewMockReleaseNotesComponent(t),
	}
	return &notesComponentImpl{repo: mocks.repo, github: mocks.github, notes: mocks.notes, logger: logger}, mocks
}

func TestNotesComponent_CreateReleaseNotes(t *testing.T) {
	nc, m := initializeTestNotesComponent(t)
	publishedAt := time.Date(2022, 4, 20, 9, 30, 0, 0, time.UTC)

	m.repo.On("Info", mock.Anything).Return(testRepo, nil).Once()
	m.github.On("GetReleaseByTag", mock.Anything, testRepo, "v1.3.0").Return(nil, nil).Once()
	m.repo.On("TagPointer", mock.Anything, "v1.3.0").Return(&types.TagPointer{Tag: "v1.3.0", Hash: "rel130"}, nil).Once()
	m.repo.On("Commit", mock.Anything, "rel130").Return(&types.RawCommit{
		Hash:    "rel130",
		Subject: "chore(release): v1.3.0",
		Author:  types.Signature{Name: "octocat", Date: publishedAt},
	}, nil).Once()
	m.repo.On("Tags", mock.Anything).Return([]string{"v1.3.0", "v1.2.3", "v1.4.0"}, nil).Once()
	m.repo.On("TagPointer", mock.Anything, "v1.2.3").Return(&types.TagPointer{Tag: "v1.2.3", Hash: "rel123"}, nil).Once()
	m.repo.On("Commits", mock.Anything, "rel123", "rel130").Return([]types.RawCommit{
		{Hash: "rel130", Subject: "chore(release): v1.3.0"},
		{Hash: "abc123", Subject: "fix: stuff"},
	}, nil).Once()
	m.notes.On("ReleaseNotes", mock.Anything, testRepo, mock.MatchedBy(func(commits []types.ParsedCommit) bool {
		return len(commits) == 2 && commits[1].Hash == "abc123"
	})).Return(types.ReleaseNotes{
		types.ReleaseNoteFix: {{ParsedCommit: types.ParsedCommit{Hash: "abc123", Type: "fix", Subject: "stuff"}}},
	}, nil).Once()
	want := "## v1.3.0 (2022-04-20)\n\n### Bug Fixes\n\n- stuff (abc123)"
	m.github.On("CreateRelease", mock.Anything, testRepo, types.CreateGitHubReleaseReq{
		TagName: "v1.3.0",
		Name:    "v1.3.0",
		Body:    want,
	}).Return(&types.GitHubRelease{ID: 7, HTMLURL: "https://github.com/octocat/hello-world/releases/tag/v1.3.0"}, nil).Once()

	result, err := nc.CreateReleaseNotes(context.Background(), "1.3.0")
	require.NoError(t, err)
	require.Equal(t, want, result.Notes)
	require.Equal(t, "1.3.0", result.Context.NextRelease.Version)
	require.Equal(t, publishedAt, result.Context.NextRelease.PublishedAt)
	require.Equal(t, "rel123", result.Context.LatestRelease.Hash)
	require.Equal(t, "https://github.com/octocat/hello-world/releases/tag/v1.3.0", result.ReleaseURL)
}

func TestNotesComponent_FirstRelease(t *testing.T) {
	nc, m := initializeTestNotesComponent(t)

	m.repo.On("Info", mock.Anything).Return(testRepo, nil).Once()
	m.github.On("GetReleaseByTag", mock.Anything, testRepo, "v0.1.0").Return(nil, nil).Once()
	m.repo.On("TagPointer", mock.Anything, "v0.1.0").Return(&types.TagPointer{Tag: "v0.1.0", Hash: "rel010"}, nil).Once()
	m.repo.On("Commit", mock.Anything, "rel010").Return(&types.RawCommit{Hash: "rel010"}, nil).Once()
	m.repo.On("Tags", mock.Anything).Return([]string{"v0.1.0"}, nil).Once()
	m.repo.On("Commits", mock.Anything, "", "rel010").Return([]types.RawCommit{{Hash: "a1", Subject: "feat: init"}}, nil).Once()
	m.notes.On("ReleaseNotes", mock.Anything, testRepo, mock.Anything).Return(types.ReleaseNotes{}, nil).Once()
	m.github.On("CreateRelease", mock.Anything, testRepo, mock.Anything).Return(&types.GitHubRelease{HTMLURL: "/releases/1"}, nil).Once()

	result, err := nc.CreateReleaseNotes(context.Background(), "v0.1.0")
	require.NoError(t, err)
	require.Nil(t, result.Context.LatestRelease)
}

func TestNotesComponent_ExistingRelease(t *testing.T) {
	nc, m := initializeTestNotesComponent(t)

	m.repo.On("Info", mock.Anything).Return(testRepo, nil).Once()
	m.github.On("GetReleaseByTag", mock.Anything, testRepo, "v1.0.0").Return(&types.GitHubRelease{ID: 1, HTMLURL: "/releases/1"}, nil).Once()

	_, err := nc.CreateReleaseNotes(context.Background(), "v1.0.0")
	require.ErrorIs(t, err, errorx.ErrReleaseExists)
}

func TestNotesComponent_UnknownTag(t *testing.T) {
	nc, m := initializeTestNotesComponent(t)

	m.repo.On("Info", mock.Anything).Return(testRepo, nil).Once()
	m.github.On("GetReleaseByTag", mock.Anything, testRepo, "v9.9.9").Return(nil, nil).Once()
	m.repo.On("TagPointer", mock.Anything, "v9.9.9").Return(nil, nil).Once()

	_, err := nc.CreateReleaseNotes(context.Background(), "9.9.9")
	require.ErrorIs(t, err, errorx.ErrTagNotFound)
}

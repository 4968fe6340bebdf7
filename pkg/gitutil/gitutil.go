package gitutil

import (
	"fmt"
	"strings"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/user/mysql-charts-go/internal/models"
)

// OpenRepository opens the git repository containing path. Parent directories
// are searched for a .git directory, so any path inside a worktree works.
func OpenRepository(path string) (*git.Repository, error) {
	repo, err := git.PlainOpenWithOptions(path, &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		return nil, fmt.Errorf("failed to open repository at %s: %w", path, err)
	}
	return repo, nil
}

// GetHeadCommit retrieves the commit object for the repository's HEAD.
func GetHeadCommit(repo *git.Repository) (*object.Commit, error) {
	headRef, err := repo.Head()
	if err != nil {
		return nil, fmt.Errorf("failed to get HEAD reference: %w", err)
	}

	commit, err := repo.CommitObject(headRef.Hash())
	if err != nil {
		return nil, fmt.Errorf("failed to get commit object for HEAD (%s): %w", headRef.Hash(), err)
	}
	return commit, nil
}

// GetCommitDetails extracts the fields shown in report provenance.
func GetCommitDetails(commit *object.Commit) models.CommitDetails {
	return models.CommitDetails{
		SHA:         commit.Hash.String(),
		Date:        commit.Committer.When,
		Contributor: fmt.Sprintf("%s (%s)", commit.Author.Name, commit.Author.Email),
		Message:     strings.TrimSpace(strings.Split(commit.Message, "\n")[0]),
	}
}

// GetRepoRemoteURL retrieves the URL of the "origin" remote, falling back to
// the first configured remote.
func GetRepoRemoteURL(repo *git.Repository) (string, error) {
	remote, err := repo.Remote("origin")
	if err != nil {
		remotes, errList := repo.Remotes()
		if errList != nil || len(remotes) == 0 {
			return "", fmt.Errorf("failed to get 'origin' remote and no other remotes found: %w", err)
		}
		remote = remotes[0]
	}
	if urls := remote.Config().URLs; len(urls) > 0 {
		return urls[0], nil
	}
	return "", fmt.Errorf("remote %q has no URLs", remote.Config().Name)
}

// GetRepoBranch returns the current branch name, or the short SHA followed by
// "(detached)" when HEAD does not point at a branch.
func GetRepoBranch(repo *git.Repository, headCommit *object.Commit) (string, error) {
	headRef, err := repo.Head()
	if err != nil {
		return "", fmt.Errorf("failed to get HEAD reference: %w", err)
	}
	if headRef.Name().IsBranch() {
		return headRef.Name().Short(), nil
	}
	return headCommit.Hash.String()[:8] + " (detached)", nil
}

// Describe collects branch, HEAD commit and remote URL for the repository at path.
// A missing remote is not an error.
func Describe(path string) (*models.RepoMetadata, error) {
	repo, err := OpenRepository(path)
	if err != nil {
		return nil, err
	}
	head, err := GetHeadCommit(repo)
	if err != nil {
		return nil, err
	}
	branch, err := GetRepoBranch(repo, head)
	if err != nil {
		return nil, err
	}
	url, _ := GetRepoRemoteURL(repo)
	return &models.RepoMetadata{
		URL:    url,
		Branch: branch,
		Commit: GetCommitDetails(head),
	}, nil
}

// Package gitsource keeps a local checkout of a remote deck repository up
// to date.
package gitsource

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/go-git/go-git/v5"
)

// Sync clones the repository at url into localPath, or pulls the latest
// changes when a checkout already exists there.
func Sync(ctx context.Context, url, localPath string) error {
	_, err := os.Stat(localPath)
	switch {
	case os.IsNotExist(err):
		slog.Info("cloning deck repository", "url", url, "path", localPath)
		if _, err := git.PlainCloneContext(ctx, localPath, false, &git.CloneOptions{URL: url}); err != nil {
			return fmt.Errorf("failed to clone repo %s: %w", url, err)
		}
	case err == nil:
		slog.Info("pulling deck repository", "path", localPath)
		repo, err := git.PlainOpen(localPath)
		if err != nil {
			return fmt.Errorf("failed to open existing repo at %s: %w", localPath, err)
		}
		worktree, err := repo.Worktree()
		if err != nil {
			return fmt.Errorf("failed to get worktree for repo at %s: %w", localPath, err)
		}
		err = worktree.PullContext(ctx, &git.PullOptions{RemoteName: "origin"})
		if err != nil && !errors.Is(err, git.NoErrAlreadyUpToDate) {
			return fmt.Errorf("failed to pull changes for repo at %s: %w", localPath, err)
		}
	default:
		return fmt.Errorf("error checking path %s: %w", localPath, err)
	}
	return nil
}

package gitinfo

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/go-git/go-git/v5"

	"github.com/compvet/compvet/internal/domain"
)

// Adapter implements domain.CommitInfo using go-git.
type Adapter struct{}

func New() *Adapter {
	return &Adapter{}
}

// LastCommit returns metadata for the most recent commit touching path.
// It returns (nil, nil) when the path is not inside a git checkout or has
// no history yet.
func (a *Adapter) LastCommit(path string) (*domain.CommitMeta, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}

	repo, err := git.PlainOpenWithOptions(filepath.Dir(abs), &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		if err == git.ErrRepositoryNotExists {
			return nil, nil
		}
		return nil, fmt.Errorf("opening git repo: %w", err)
	}

	wt, err := repo.Worktree()
	if err != nil {
		return nil, fmt.Errorf("resolving worktree: %w", err)
	}

	rel, err := filepath.Rel(wt.Filesystem.Root(), abs)
	if err != nil {
		return nil, err
	}
	rel = filepath.ToSlash(rel)

	iter, err := repo.Log(&git.LogOptions{FileName: &rel})
	if err != nil {
		return nil, nil // no HEAD yet, or path never committed
	}
	defer iter.Close()

	commit, err := iter.Next()
	if err != nil {
		return nil, nil
	}

	return &domain.CommitMeta{
		SHA:    commit.Hash.String(),
		Author: commit.Author.Name,
		Date:   commit.Author.When.UTC().Format(time.RFC3339),
	}, nil
}

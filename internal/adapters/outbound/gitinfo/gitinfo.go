package gitinfo

import (
	"fmt"

	"github.com/go-git/go-git/v5"
)

// Inspector resolves the commit hash stamped onto migration reports and
// history entries. It implements domain.GitInfo via go-git, so no git binary
// is needed on the host.
type Inspector struct{}

func New() *Inspector {
	return &Inspector{}
}

// IsGitRepo reports whether projectPath is a git work tree. Trees outside
// version control are migrated all the same, just without a commit stamp.
func (ins *Inspector) IsGitRepo(projectPath string) bool {
	_, err := git.PlainOpen(projectPath)
	return err == nil
}

// CommitHash returns the full hash of HEAD, identifying the tree state a
// check or fix run saw.
func (ins *Inspector) CommitHash(projectPath string) (string, error) {
	repo, err := git.PlainOpen(projectPath)
	if err != nil {
		return "", fmt.Errorf("opening repository at %s: %w", projectPath, err)
	}

	head, err := repo.Head()
	if err != nil {
		return "", fmt.Errorf("resolving HEAD: %w", err)
	}

	return head.Hash().String(), nil
}

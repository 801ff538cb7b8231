// Package gitinfo provides best-effort git metadata for project listings.
package gitinfo

import (
	git "github.com/go-git/go-git/v5"
)

// Branch returns the current branch of the repository at path, a short hash
// for a detached HEAD, or "" when path is not a readable git repository.
// Never an error; listings degrade to no branch column.
func Branch(path string) string {
	repo, err := git.PlainOpen(path)
	if err != nil {
		return ""
	}
	head, err := repo.Head()
	if err != nil {
		return ""
	}
	if head.Name().IsBranch() {
		return head.Name().Short()
	}
	hash := head.Hash().String()
	if len(hash) > 7 {
		hash = hash[:7]
	}
	return hash
}

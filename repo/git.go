package repo

import (
	"fmt"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/format/gitignore"
	"github.com/go-git/go-git/v5/plumbing/object"
)

// GitRepository implements Repository on top of go-git.
type GitRepository struct {
	repo *git.Repository
	root string
}

var _ Repository = &GitRepository{}

// Open opens the repository containing path, walking up to find the .git
// directory the way the git CLI does.
func Open(path string) (*GitRepository, error) {
	r, err := git.PlainOpenWithOptions(path, &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		return nil, fmt.Errorf("opening repository at %s: %w", path, err)
	}
	wt, err := r.Worktree()
	if err != nil {
		return nil, fmt.Errorf("resolving worktree: %w", err)
	}
	return &GitRepository{repo: r, root: wt.Filesystem.Root()}, nil
}

// Root returns the absolute path of the repository root.
func (g *GitRepository) Root() string {
	return g.root
}

// UntrackedFiles returns files that are neither tracked nor ignored.
func (g *GitRepository) UntrackedFiles() ([]string, error) {
	status, err := g.status()
	if err != nil {
		return nil, err
	}
	var files []string
	for path, st := range status {
		if st.Worktree == git.Untracked {
			files = append(files, path)
		}
	}
	sort.Strings(files)
	return files, nil
}

// UncommittedFiles returns tracked files with modifications that have not
// been committed, whether staged or not.
func (g *GitRepository) UncommittedFiles() ([]string, error) {
	status, err := g.status()
	if err != nil {
		return nil, err
	}
	var files []string
	for path, st := range status {
		if st.Worktree == git.Untracked {
			continue
		}
		if st.Worktree != git.Unmodified || st.Staging != git.Unmodified {
			files = append(files, path)
		}
	}
	sort.Strings(files)
	return files, nil
}

// IgnoredFiles walks the working tree under path and returns every file the
// repository's ignore rules exclude. Ignored files never show up in Status,
// so this is a filesystem walk against the gitignore matcher.
func (g *GitRepository) IgnoredFiles(path string) ([]string, error) {
	wt, err := g.repo.Worktree()
	if err != nil {
		return nil, fmt.Errorf("resolving worktree: %w", err)
	}
	patterns, err := gitignore.ReadPatterns(wt.Filesystem, nil)
	if err != nil {
		return nil, fmt.Errorf("reading ignore patterns: %w", err)
	}
	matcher := gitignore.NewMatcher(patterns)

	start := filepath.Join(g.root, filepath.FromSlash(path))
	var files []string
	err = filepath.WalkDir(start, func(p string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		rel, err := filepath.Rel(g.root, p)
		if err != nil {
			return err
		}
		rel = filepath.ToSlash(rel)
		if rel == "." {
			return nil
		}
		if d.IsDir() && d.Name() == git.GitDirName {
			return filepath.SkipDir
		}
		if matcher.Match(strings.Split(rel, "/"), d.IsDir()) {
			if d.IsDir() {
				// Everything below an ignored directory is ignored; report
				// the files it contains.
				return g.collectFiles(p, &files)
			}
			files = append(files, rel)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walking %s: %w", start, err)
	}
	sort.Strings(files)
	return files, nil
}

func (g *GitRepository) collectFiles(dir string, files *[]string) error {
	err := filepath.WalkDir(dir, func(p string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if d.IsDir() {
			return nil
		}
		rel, err := filepath.Rel(g.root, p)
		if err != nil {
			return err
		}
		*files = append(*files, filepath.ToSlash(rel))
		return nil
	})
	if err != nil {
		return err
	}
	return filepath.SkipDir
}

// TrackedFiles returns the files recorded in the HEAD tree under path.
func (g *GitRepository) TrackedFiles(path string) ([]string, error) {
	head, err := g.repo.Head()
	if err != nil {
		return nil, fmt.Errorf("resolving HEAD: %w", err)
	}
	commit, err := g.repo.CommitObject(head.Hash())
	if err != nil {
		return nil, fmt.Errorf("reading HEAD commit: %w", err)
	}
	tree, err := commit.Tree()
	if err != nil {
		return nil, fmt.Errorf("reading HEAD tree: %w", err)
	}

	prefix := normalizePrefix(path)
	var files []string
	err = tree.Files().ForEach(func(f *object.File) error {
		if prefix == "" || strings.HasPrefix(f.Name, prefix) {
			files = append(files, f.Name)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("iterating tree files: %w", err)
	}
	sort.Strings(files)
	return files, nil
}

// CommitHistory returns commits touching path, newest first.
func (g *GitRepository) CommitHistory(path string) ([]CommitInfo, error) {
	opts := &git.LogOptions{}
	if prefix := normalizePrefix(path); prefix != "" {
		opts.PathFilter = func(p string) bool {
			return strings.HasPrefix(p, prefix)
		}
	}
	iter, err := g.repo.Log(opts)
	if err != nil {
		return nil, fmt.Errorf("reading commit log: %w", err)
	}
	defer iter.Close()

	var commits []CommitInfo
	err = iter.ForEach(func(c *object.Commit) error {
		commits = append(commits, CommitInfo{
			ShortID: c.Hash.String()[:7],
			Time:    c.Committer.When.UTC(),
			Message: strings.TrimSpace(c.Message),
		})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("iterating commits: %w", err)
	}
	return commits, nil
}

func (g *GitRepository) status() (git.Status, error) {
	wt, err := g.repo.Worktree()
	if err != nil {
		return nil, fmt.Errorf("resolving worktree: %w", err)
	}
	status, err := wt.Status()
	if err != nil {
		return nil, fmt.Errorf("reading worktree status: %w", err)
	}
	return status, nil
}

// normalizePrefix turns a sub-path into a slash-form prefix ending in "/",
// or "" for the repository root.
func normalizePrefix(path string) string {
	p := filepath.ToSlash(strings.TrimSpace(path))
	p = strings.Trim(p, "/")
	if p == "" || p == "." {
		return ""
	}
	return p + "/"
}

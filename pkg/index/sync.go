// Package index syncs the kg-phenio source registry into the local cache.
package index

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/rs/zerolog/log"
)

const (
	RepoURL    = "https://github.com/Knowledge-Graph-Hub/kg-phenio"
	RepoBranch = "main"
)

// Sync clones the registry repo and copies the source metadata and the
// prefix map into the cache.
func Sync(cacheDir string) error {
	tempDir, err := os.MkdirTemp("", "kgphenio-clone-*")
	if err != nil {
		return fmt.Errorf("creating temp dir: %w", err)
	}
	defer os.RemoveAll(tempDir)

	log.Info().Str("repo", RepoURL).Msg("updating source registry")

	_, err = git.PlainClone(tempDir, false, &git.CloneOptions{
		URL:           RepoURL,
		ReferenceName: plumbing.NewBranchReferenceName(RepoBranch),
		SingleBranch:  true,
		Depth:         1,
	})
	if err != nil {
		return fmt.Errorf("git clone failed: %w", err)
	}

	// 1. sources/ registry
	if err := copyDir(
		filepath.Join(tempDir, "sources"),
		filepath.Join(cacheDir, "sources"),
	); err != nil {
		log.Warn().Err(err).Msg("sources registry")
	}

	// 2. curie prefix map
	if err := copyFile(
		filepath.Join(tempDir, "prefixes.yaml"),
		filepath.Join(cacheDir, "prefixes.yaml"),
	); err != nil {
		log.Warn().Err(err).Msg("prefix map")
	}

	log.Info().Msg("source registry updated")
	return nil
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	if err := os.MkdirAll(filepath.Dir(dst), 0755); err != nil {
		return err
	}

	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	defer out.Close()

	_, err = io.Copy(out, in)
	return err
}

func copyDir(src, dst string) error {
	entries, err := os.ReadDir(src)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(dst, 0755); err != nil {
		return err
	}

	for _, entry := range entries {
		srcPath := filepath.Join(src, entry.Name())
		dstPath := filepath.Join(dst, entry.Name())

		if entry.IsDir() {
			if err := copyDir(srcPath, dstPath); err != nil {
				return err
			}
		} else {
			if err := copyFile(srcPath, dstPath); err != nil {
				return err
			}
		}
	}

	return nil
}

package download

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/rs/zerolog/log"
	"github.com/schollz/progressbar/v3"
)

// ErrChecksumMismatch indicates a downloaded file did not match its declared
// sha256.
var ErrChecksumMismatch = errors.New("checksum mismatch")

// Manager downloads source files into the output directory.
type Manager struct {
	client *Client
	config *Config
}

// NewManager creates a download manager.
func NewManager(cfg *Config) *Manager {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if cfg.OutputDir == "" {
		cfg.OutputDir = "data/raw"
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = DefaultConfig().Timeout
	}

	return &Manager{
		client: NewClient(cfg.Timeout),
		config: cfg,
	}
}

// FetchAll downloads every source in order. Cached files are skipped unless
// IgnoreCache is set. The first failure aborts the run.
func (m *Manager) FetchAll(ctx context.Context, sources []Source) error {
	if err := os.MkdirAll(m.config.OutputDir, 0755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}

	for _, src := range sources {
		if err := m.Fetch(ctx, src); err != nil {
			return fmt.Errorf("fetching %s: %w", src.URL, err)
		}
	}

	return nil
}

// Fetch downloads a single source file, retrying transient failures with
// exponential backoff.
func (m *Manager) Fetch(ctx context.Context, src Source) error {
	target := filepath.Join(m.config.OutputDir, src.LocalName)

	if !m.config.IgnoreCache {
		if _, err := os.Stat(target); err == nil {
			log.Info().Str("file", src.LocalName).Msg("already downloaded, skipping")
			return nil
		}
	}

	op := func() error {
		err := m.fetchOnce(ctx, src, target)
		if err != nil && errors.Is(err, ErrChecksumMismatch) {
			// A bad checksum will not fix itself on retry of the same URL.
			return backoff.Permanent(err)
		}
		return err
	}

	policy := backoff.WithContext(
		backoff.WithMaxRetries(backoff.NewExponentialBackOff(), m.config.MaxRetries), ctx)

	notify := func(err error, wait time.Duration) {
		log.Warn().Err(err).Dur("wait", wait).Str("url", src.URL).Msg("download failed, retrying")
	}

	return backoff.RetryNotify(op, policy, notify)
}

func (m *Manager) fetchOnce(ctx context.Context, src Source, target string) error {
	resp, err := m.client.Get(ctx, src.URL)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	tmp := target + ".part"
	out, err := os.Create(tmp)
	if err != nil {
		return fmt.Errorf("creating %s: %w", tmp, err)
	}

	hash := sha256.New()
	var w io.Writer = io.MultiWriter(out, hash)

	if m.config.Progress {
		bar := progressbar.DefaultBytes(resp.ContentLength, src.LocalName)
		w = io.MultiWriter(w, bar)
	}

	if _, err := io.Copy(w, resp.Body); err != nil {
		out.Close()
		os.Remove(tmp)
		return fmt.Errorf("writing %s: %w", tmp, err)
	}
	if err := out.Close(); err != nil {
		os.Remove(tmp)
		return err
	}

	if src.SHA256 != "" {
		got := hex.EncodeToString(hash.Sum(nil))
		if got != src.SHA256 {
			os.Remove(tmp)
			return fmt.Errorf("%w for %s: got %s, want %s", ErrChecksumMismatch, src.LocalName, got, src.SHA256)
		}
	}

	if err := os.Rename(tmp, target); err != nil {
		return fmt.Errorf("moving %s into place: %w", tmp, err)
	}

	log.Info().Str("file", src.LocalName).Msg("downloaded")
	return nil
}

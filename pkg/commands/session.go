package commands

import (
	"time"

	"github.com/spf13/cobra"

	"tableflip.dev/canvastui/pkg/config"
	"tableflip.dev/canvastui/pkg/loader"
	"tableflip.dev/canvastui/pkg/logging"
	"tableflip.dev/canvastui/pkg/store"
)

// session is the wiring shared by the ui and list commands.
type session struct {
	cfg  *config.Config
	blob store.Blob
}

// openSession loads configuration and the cache blob. When requireRemote is
// set a missing token or URL is fatal.
func openSession(cmd *cobra.Command, requireRemote bool) (*session, error) {
	cfg, err := config.Load(cmd.Flags())
	if err != nil {
		return nil, err
	}
	if requireRemote {
		if err := cfg.Validate(); err != nil {
			return nil, err
		}
	}
	if cfg.LogFile != "" {
		if err := logging.ToFile(cfg.LogFile); err != nil {
			return nil, err
		}
		logging.SetLevel(logging.LevelDebug)
	}
	blob, err := store.Load(cfg)
	if err != nil {
		_ = logging.Close()
		return nil, err
	}
	logging.Info("session opened", "cache", blob.Path(), "url", cfg.BaseURL)
	return &session{cfg: cfg, blob: blob}, nil
}

func (s *session) Close() error {
	return logging.Close()
}

func (s *session) cacheLoader() *loader.CacheLoader {
	return &loader.CacheLoader{Blob: s.blob, Location: time.Local}
}

func (s *session) fetcher() (*loader.Fetcher, error) {
	client, err := s.cfg.Client()
	if err != nil {
		return nil, err
	}
	return &loader.Fetcher{Feed: client, Blob: s.blob, Location: time.Local}, nil
}

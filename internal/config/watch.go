package config

import (
	"context"
	"os"
	"time"

	"github.com/yanun0323/logs"
	"github.com/yanun0323/pkg/sys"
)

// Watch polls the configuration file and runs the full pipeline whenever
// its modification time advances, handing each successfully assembled
// configuration to apply. Load failures are logged and skipped; the last
// good configuration stays in effect. Watch returns when ctx is done or
// the process is shutting down.
func Watch(ctx context.Context, path string, interval time.Duration, apply func(*Resolved)) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	var lastMod time.Time
	for {
		select {
		case <-ctx.Done():
			return
		case <-sys.Shutdown():
			return
		case <-ticker.C:
			info, err := os.Stat(path)
			if err != nil {
				logs.Errorf("config stat failed: %v", err)
				continue
			}
			if !info.ModTime().After(lastMod) {
				continue
			}
			resolved, err := LoadFile(path)
			if err != nil {
				logs.Errorf("config reload failed: %v", err)
				continue
			}
			apply(resolved)
			lastMod = info.ModTime()
			logs.Infof("config reloaded: %s", path)
		}
	}
}

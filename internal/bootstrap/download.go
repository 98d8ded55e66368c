// Package bootstrap installs the package manager itself: it downloads the
// installer bundle and hands it to the system package installer.
package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/obentoo/wingetkit/internal/common/httpclient"
	"github.com/obentoo/wingetkit/internal/common/logger"
	"github.com/schollz/progressbar/v3"
)

var (
	// ErrDownloadFailed is returned when the installer could not be fetched
	ErrDownloadFailed = errors.New("download failed")
	// ErrInstallFailed is returned when the installer reported an error
	ErrInstallFailed = errors.New("installer failed")
)

// Downloader fetches files with retry and an optional progress bar
type Downloader struct {
	client   *httpclient.Client
	progress io.Writer
	log      *logger.Logger
}

// NewDownloader creates a Downloader. Progress is drawn on progress when it
// is non-nil.
func NewDownloader(client *httpclient.Client, progress io.Writer, log *logger.Logger) *Downloader {
	if log == nil {
		log = logger.Default()
	}
	return &Downloader{client: client, progress: progress, log: log}
}

// Download saves url to dest. Data is written to a temporary file next to
// dest and renamed into place once complete, so dest never holds a partial
// download.
func (d *Downloader) Download(ctx context.Context, url, dest string) error {
	if err := os.MkdirAll(filepath.Dir(dest), 0755); err != nil {
		return fmt.Errorf("failed to create download directory: %w", err)
	}

	d.log.Info("Downloading %s", url)
	resp, err := d.client.Get(ctx, url)
	if err != nil {
		d.log.Error("Download of %s failed: %v", url, err)
		return fmt.Errorf("%w: %v", ErrDownloadFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		d.log.Error("Download of %s failed: %s", url, resp.Status)
		return fmt.Errorf("%w: %s", ErrDownloadFailed, resp.Status)
	}

	tmp, err := os.CreateTemp(filepath.Dir(dest), filepath.Base(dest)+".*.part")
	if err != nil {
		return fmt.Errorf("failed to create temporary file: %w", err)
	}
	tmpPath := tmp.Name()
	committed := false
	defer func() {
		if !committed {
			tmp.Close()
			os.Remove(tmpPath)
		}
	}()

	start := time.Now()
	written, err := io.Copy(io.MultiWriter(tmp, d.newBar(resp.ContentLength, filepath.Base(dest))), resp.Body)
	if err != nil {
		d.log.Error("Download of %s interrupted after %d bytes: %v", url, written, err)
		return fmt.Errorf("%w: %v", ErrDownloadFailed, err)
	}
	if resp.ContentLength > 0 && written != resp.ContentLength {
		d.log.Error("Download of %s truncated: got %d of %d bytes", url, written, resp.ContentLength)
		return fmt.Errorf("%w: truncated after %d of %d bytes", ErrDownloadFailed, written, resp.ContentLength)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to write download: %w", err)
	}
	if err := os.Rename(tmpPath, dest); err != nil {
		return fmt.Errorf("failed to move download into place: %w", err)
	}
	committed = true

	d.log.Info("Downloaded %d bytes to %s in %s", written, dest, time.Since(start).Round(time.Millisecond))
	return nil
}

func (d *Downloader) newBar(size int64, name string) *progressbar.ProgressBar {
	if d.progress == nil {
		return progressbar.DefaultBytesSilent(size, name)
	}
	return progressbar.NewOptions64(size,
		progressbar.OptionSetWriter(d.progress),
		progressbar.OptionSetDescription(name),
		progressbar.OptionShowBytes(true),
		progressbar.OptionSetWidth(30),
		progressbar.OptionThrottle(100*time.Millisecond),
		progressbar.OptionOnCompletion(func() { fmt.Fprintln(d.progress) }),
	)
}

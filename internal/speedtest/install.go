package speedtest

import (
	"archive/tar"
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zip"

	"github.com/tacogips/rmmkit/internal/logger"
)

// ExecutableName returns the CLI binary name for goos.
func ExecutableName(goos string) string {
	if goos == "windows" {
		return "speedtest.exe"
	}
	return "speedtest"
}

// ArchiveName returns the versioned Ookla archive name for a platform.
func ArchiveName(version, goos, goarch string) (string, error) {
	var platform, ext string
	switch goos {
	case "windows":
		platform, ext = "win64", ".zip"
	case "darwin":
		platform, ext = "macosx-universal", ".tgz"
	case "linux":
		ext = ".tgz"
		switch goarch {
		case "amd64":
			platform = "linux-x86_64"
		case "386":
			platform = "linux-i386"
		case "arm64":
			platform = "linux-aarch64"
		case "arm":
			platform = "linux-armhf"
		default:
			return "", fmt.Errorf("unsupported architecture %s/%s", goos, goarch)
		}
	default:
		return "", fmt.Errorf("unsupported operating system %s", goos)
	}
	return fmt.Sprintf("ookla-speedtest-%s-%s%s", version, platform, ext), nil
}

// Downloader fetches a URL into w.
type Downloader interface {
	Download(ctx context.Context, url string, w io.Writer) error
}

// HTTPDownloader downloads over HTTP(S).
type HTTPDownloader struct {
	// HTTPClient is the HTTP client for downloads.
	HTTPClient *http.Client
}

// Download implements Downloader.
func (d *HTTPDownloader) Download(ctx context.Context, url string, w io.Writer) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}

	client := d.HTTPClient
	if client == nil {
		client = http.DefaultClient
	}

	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	if _, err := io.Copy(w, resp.Body); err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}
	return nil
}

// downloadArchive downloads url into a temporary file and returns its path.
func downloadArchive(ctx context.Context, d Downloader, url string) (string, error) {
	tmpFile, err := os.CreateTemp("", "rmmkit-speedtest-*"+archiveExt(url))
	if err != nil {
		return "", fmt.Errorf("failed to create temp file: %w", err)
	}
	defer tmpFile.Close()

	if err := d.Download(ctx, url, tmpFile); err != nil {
		os.Remove(tmpFile.Name())
		return "", fmt.Errorf("failed to download %s: %w", url, err)
	}

	return tmpFile.Name(), nil
}

func archiveExt(name string) string {
	if strings.HasSuffix(name, ".zip") {
		return ".zip"
	}
	return ".tgz"
}

// extractArchive extracts a .zip or .tgz archive into destDir.
func extractArchive(archivePath, destDir string) error {
	if err := os.MkdirAll(destDir, 0755); err != nil {
		return fmt.Errorf("failed to create install directory: %w", err)
	}
	if archiveExt(archivePath) == ".zip" {
		return extractZip(archivePath, destDir)
	}
	return extractTarGz(archivePath, destDir)
}

// safeTarget joins name onto destDir, rejecting entries that escape it.
func safeTarget(destDir, name string) (string, error) {
	target := filepath.Join(destDir, filepath.FromSlash(name))
	rel, err := filepath.Rel(destDir, target)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("archive entry escapes install directory: %s", name)
	}
	return target, nil
}

func extractTarGz(archivePath, destDir string) error {
	file, err := os.Open(archivePath)
	if err != nil {
		return fmt.Errorf("failed to open archive: %w", err)
	}
	defer file.Close()

	gzr, err := gzip.NewReader(file)
	if err != nil {
		return fmt.Errorf("failed to create gzip reader: %w", err)
	}
	defer gzr.Close()

	tr := tar.NewReader(gzr)
	for {
		header, err := tr.Next()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return fmt.Errorf("failed to read tar entry: %w", err)
		}

		target, err := safeTarget(destDir, header.Name)
		if err != nil {
			return err
		}

		switch header.Typeflag {
		case tar.TypeDir:
			if err := os.MkdirAll(target, 0755); err != nil {
				return fmt.Errorf("failed to create directory %s: %w", target, err)
			}
		case tar.TypeReg:
			if err := writeFile(target, tr, os.FileMode(header.Mode)&0777); err != nil {
				return err
			}
		}
	}
}

func extractZip(archivePath, destDir string) error {
	zr, err := zip.OpenReader(archivePath)
	if err != nil {
		return fmt.Errorf("failed to open archive: %w", err)
	}
	defer zr.Close()

	for _, f := range zr.File {
		target, err := safeTarget(destDir, f.Name)
		if err != nil {
			return err
		}

		if f.FileInfo().IsDir() {
			if err := os.MkdirAll(target, 0755); err != nil {
				return fmt.Errorf("failed to create directory %s: %w", target, err)
			}
			continue
		}

		rc, err := f.Open()
		if err != nil {
			return fmt.Errorf("failed to open %s: %w", f.Name, err)
		}
		err = writeFile(target, rc, f.Mode().Perm())
		rc.Close()
		if err != nil {
			return err
		}
	}
	return nil
}

func writeFile(target string, r io.Reader, mode os.FileMode) error {
	if mode == 0 {
		mode = 0644
	}
	if err := os.MkdirAll(filepath.Dir(target), 0755); err != nil {
		return fmt.Errorf("failed to create parent directory: %w", err)
	}

	out, err := os.OpenFile(target, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, mode)
	if err != nil {
		return fmt.Errorf("failed to create file %s: %w", target, err)
	}
	if _, err := io.Copy(out, r); err != nil {
		out.Close()
		return fmt.Errorf("failed to write file %s: %w", target, err)
	}
	if err := out.Close(); err != nil {
		return fmt.Errorf("failed to write file %s: %w", target, err)
	}
	logger.Debug("extracted %s", target)
	return nil
}

package structfile

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"

	"github.com/motiontree/motiontree/motionerr"
)

// FetchLazy opens localPath if it already exists, otherwise downloads
// remoteURL, caches it at localPath, and returns a reader over the cached
// copy. Callers are responsible for closing the returned ReadCloser.
func FetchLazy(ctx context.Context, localPath, remoteURL string) (io.ReadCloser, error) {
	if f, err := os.Open(localPath); err == nil {
		return f, nil
	} else if !os.IsNotExist(err) {
		return nil, motionerr.Wrap(motionerr.IOFailure, "open local structure file", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, remoteURL, nil)
	if err != nil {
		return nil, motionerr.Wrap(motionerr.InputMissing, "build remote fetch request", err)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, motionerr.Wrap(motionerr.InputMissing, "fetch remote structure file", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, motionerr.New(motionerr.InputMissing,
			fmt.Sprintf("remote archive returned %s for %s", resp.Status, remoteURL))
	}

	if err := os.MkdirAll(filepath.Dir(localPath), 0o755); err != nil {
		return nil, motionerr.Wrap(motionerr.IOFailure, "create local cache directory", err)
	}
	out, err := os.Create(localPath)
	if err != nil {
		return nil, motionerr.Wrap(motionerr.IOFailure, "create local cache file", err)
	}
	defer out.Close()
	if _, err := io.Copy(out, resp.Body); err != nil {
		return nil, motionerr.Wrap(motionerr.IOFailure, "cache remote structure file", err)
	}

	f, err := os.Open(localPath)
	if err != nil {
		return nil, motionerr.Wrap(motionerr.IOFailure, "reopen cached structure file", err)
	}
	return f, nil
}

package schemastore

import (
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"
)

// fetcher resolves a schema/catalog URL to raw bytes, supporting
// file://, http://, https://, and bare filesystem paths. Standard
// library only: no repo in the pack wraps an HTTP client for a simple
// GET+cache fetch (SPEC_FULL.md §C).
type fetcher struct {
	client  *http.Client
	offline bool
}

func newFetcher() *fetcher {
	return &fetcher{client: &http.Client{Timeout: 10 * time.Second}}
}

func (f *fetcher) fetch(url string) ([]byte, error) {
	switch {
	case strings.HasPrefix(url, "file://"):
		return os.ReadFile(strings.TrimPrefix(url, "file://"))
	case strings.HasPrefix(url, "http://"), strings.HasPrefix(url, "https://"):
		if f.offline {
			return nil, fmt.Errorf("offline mode: refusing to fetch %s", url)
		}
		return f.fetchHTTP(url)
	default:
		return os.ReadFile(url)
	}
}

func (f *fetcher) fetchHTTP(url string) ([]byte, error) {
	resp, err := f.client.Get(url)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetching %s: unexpected status %s", url, resp.Status)
	}
	return io.ReadAll(resp.Body)
}

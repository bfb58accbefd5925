package query

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/McNamara84/ernie-sub013/normalize"
)

// how long a fetched resource-type list stays fresh
const cacheTTL = 5 * time.Minute

// a resource type entry as served by /api/v1/resource-types/ernie
type ResourceType struct {
	Id   int    `json:"id"`
	Name string `json:"name"`
	Slug string `json:"slug"`
}

// a fetch in progress, shared by all callers that arrive while it runs
type fetchCall struct {
	done  chan struct{}
	types []ResourceType
	err   error
}

// Resolver resolves resource type names to their numeric ids against the
// resource-type list endpoint. The fetched list is cached process-wide with
// a TTL, and concurrent callers during an in-flight fetch share a single
// request instead of issuing their own.
type Resolver struct {
	url    string
	client http.Client

	mu        sync.Mutex
	types     []ResourceType
	fetchedAt time.Time
	inflight  *fetchCall
}

// NewResolver creates a resolver against the given resource-type list URL.
func NewResolver(url string, client http.Client) *Resolver {
	return &Resolver{url: url, client: client}
}

// Types returns the resource-type list, fetching it at most once per TTL
// window.
func (r *Resolver) Types(ctx context.Context) ([]ResourceType, error) {
	r.mu.Lock()
	if r.types != nil && time.Since(r.fetchedAt) < cacheTTL {
		types := r.types
		r.mu.Unlock()
		return types, nil
	}
	if r.inflight != nil {
		// another caller is already fetching; wait for its result
		call := r.inflight
		r.mu.Unlock()
		select {
		case <-call.done:
			return call.types, call.err
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	call := &fetchCall{done: make(chan struct{})}
	r.inflight = call
	r.mu.Unlock()

	types, err := r.fetch(ctx)

	r.mu.Lock()
	if err == nil {
		r.types = types
		r.fetchedAt = time.Now()
	}
	r.inflight = nil
	call.types = types
	call.err = err
	close(call.done)
	r.mu.Unlock()
	return types, err
}

// ResolveId resolves a resource type name (or slug) to its numeric id,
// reporting whether the lookup succeeded. Lookup failures and fetch errors
// are logged, not raised; callers omit the key instead of failing the whole
// build.
func (r *Resolver) ResolveId(ctx context.Context, name string) (int, bool) {
	if name == "" {
		return 0, false
	}
	types, err := r.Types(ctx)
	if err != nil {
		slog.Error(fmt.Sprintf("Couldn't fetch resource types: %s", err.Error()))
		return 0, false
	}
	kebab := normalize.Kebab(name)
	for _, entry := range types {
		if normalize.Kebab(entry.Name) == kebab || entry.Slug == kebab {
			return entry.Id, true
		}
	}
	slog.Debug(fmt.Sprintf("Unknown resource type '%s'", name))
	return 0, false
}

// Reset discards the cached list and forces the next call to fetch. It
// exists for tests and for operators that edit the resource-type list.
func (r *Resolver) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.types = nil
	r.fetchedAt = time.Time{}
}

// performs the actual fetch against the resource-type list endpoint
func (r *Resolver) fetch(ctx context.Context) ([]ResourceType, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, r.url, nil)
	if err != nil {
		return nil, err
	}
	resp, err := r.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("Resource type endpoint returned %d", resp.StatusCode)
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	var types []ResourceType
	if err := json.Unmarshal(body, &types); err != nil {
		return nil, err
	}
	return types, nil
}

package llm

import (
	"context"
	"crypto/sha256"
	"encoding/hex"

	lru "github.com/hashicorp/golang-lru/v2"
)

// memoClient wraps a Client with an in-process LRU so identical prompts
// within one run cost a single model call.
type memoClient struct {
	inner Client
	cache *lru.Cache[string, Response]
}

// Memoized wraps client with an LRU of the given size. A size of zero or
// less returns client unchanged.
func Memoized(client Client, entries int) Client {
	if entries <= 0 {
		return client
	}
	cache, err := lru.New[string, Response](entries)
	if err != nil {
		return client
	}
	return &memoClient{inner: client, cache: cache}
}

func (m *memoClient) Name() string { return m.inner.Name() }

func (m *memoClient) Complete(ctx context.Context, req Request) (Response, error) {
	key := memoKey(m.inner.Name(), req)
	if resp, ok := m.cache.Get(key); ok {
		return resp, nil
	}
	resp, err := m.inner.Complete(ctx, req)
	if err != nil {
		return resp, err
	}
	m.cache.Add(key, resp)
	return resp, nil
}

func memoKey(name string, req Request) string {
	h := sha256.New()
	h.Write([]byte(name))
	h.Write([]byte{0})
	h.Write([]byte(req.System))
	h.Write([]byte{0})
	h.Write([]byte(req.User))
	return hex.EncodeToString(h.Sum(nil))
}

package telegram

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplitMessage(t *testing.T) {
	t.Parallel()

	assert.Equal(t, []string{"short"}, splitMessage("short", 10))

	long := strings.Repeat("x", 25)
	chunks := splitMessage(long, 10)
	require.Len(t, chunks, 3)
	assert.Equal(t, 10, len(chunks[0]))
	assert.Equal(t, 5, len(chunks[2]))
	assert.Equal(t, long, strings.Join(chunks, ""))
}

func TestSplitMessageRuneBoundaries(t *testing.T) {
	t.Parallel()

	// Multibyte characters must never be cut mid-rune.
	long := strings.Repeat("—", 7)
	chunks := splitMessage(long, 3)
	require.Len(t, chunks, 3)
	for i, chunk := range chunks {
		assert.True(t, utf8.ValidString(chunk), "chunk %d is not valid UTF-8", i)
	}
	assert.Equal(t, long, strings.Join(chunks, ""))
}

func TestPublishDigestMisconfigured(t *testing.T) {
	t.Parallel()

	n := NewNotifier("", nil, nil)
	err := n.PublishDigest(context.Background(), "digest")
	require.Error(t, err)
}

func TestPublishDigestChunksPerChat(t *testing.T) {
	t.Parallel()

	type sent struct {
		chatID string
		text   string
	}
	var (
		mu   sync.Mutex
		msgs []sent
	)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		mu.Lock()
		msgs = append(msgs, sent{r.FormValue("chat_id"), r.FormValue("text")})
		mu.Unlock()
	}))
	defer srv.Close()

	n := NewNotifier("token", []string{"1", "2"}, nil)
	n.apiBase = srv.URL

	digest := strings.Repeat("a", chunkLimit+1)
	require.NoError(t, n.PublishDigest(context.Background(), digest))

	require.Len(t, msgs, 4, "two chunks to each of two chats")
	assert.Equal(t, "1", msgs[0].chatID)
	assert.Contains(t, msgs[0].text, "_(Part 1/2)_")
	assert.Contains(t, msgs[1].text, "_(Part 2/2)_")
	assert.Equal(t, "2", msgs[2].chatID)
}

func TestPublishDigestChatFailureDoesNotStopOthers(t *testing.T) {
	t.Parallel()

	var (
		mu        sync.Mutex
		delivered []string
	)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		if r.FormValue("chat_id") == "broken" {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		mu.Lock()
		delivered = append(delivered, r.FormValue("chat_id"))
		mu.Unlock()
	}))
	defer srv.Close()

	n := NewNotifier("token", []string{"broken", "healthy"}, nil)
	n.apiBase = srv.URL

	err := n.PublishDigest(context.Background(), "digest")
	require.Error(t, err)
	assert.Equal(t, []string{"healthy"}, delivered)
}

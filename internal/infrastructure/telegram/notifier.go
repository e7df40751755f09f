package telegram

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"fedwatch/internal/ports"
)

// chunkLimit stays under Telegram's 4096-character message cap with headroom
// for the part counter suffix.
const chunkLimit = 4000

const defaultAPIBase = "https://api.telegram.org"

// Notifier broadcasts analysis digests to Telegram chats via the bot API.
type Notifier struct {
	botToken string
	chatIDs  []string
	apiBase  string
	client   *http.Client
	logger   *slog.Logger
}

var _ ports.Notifier = (*Notifier)(nil)

// NewNotifier registers the bot token and the chat identifiers to broadcast to.
func NewNotifier(botToken string, chatIDs []string, log *slog.Logger) *Notifier {
	return &Notifier{
		botToken: botToken,
		chatIDs:  chatIDs,
		apiBase:  defaultAPIBase,
		client:   &http.Client{Timeout: 10 * time.Second},
		logger:   log,
	}
}

// PublishDigest posts a Markdown digest to every configured chat, splitting
// long digests into parts. A failure for one chat does not stop the others;
// the first error is reported after the broadcast completes.
func (n *Notifier) PublishDigest(ctx context.Context, digest string) error {
	if n.botToken == "" || len(n.chatIDs) == 0 || n.client == nil {
		return fmt.Errorf("telegram notifier misconfigured")
	}

	chunks := splitMessage(digest, chunkLimit)

	var firstErr error
	for _, chatID := range n.chatIDs {
		for i, chunk := range chunks {
			if len(chunks) > 1 {
				chunk = fmt.Sprintf("%s\n\n_(Part %d/%d)_", chunk, i+1, len(chunks))
			}
			if err := n.send(ctx, chatID, chunk); err != nil {
				if n.logger != nil {
					n.logger.Error("telegram send failed", "chat_id", chatID, "error", err)
				}
				if firstErr == nil {
					firstErr = err
				}
				break
			}
		}
	}
	return firstErr
}

func (n *Notifier) send(ctx context.Context, chatID, text string) error {
	endpoint := fmt.Sprintf("%s/bot%s/sendMessage", n.apiBase, n.botToken)
	form := url.Values{}
	form.Set("chat_id", chatID)
	form.Set("text", text)
	form.Set("parse_mode", "Markdown")

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return fmt.Errorf("new request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := n.client.Do(req)
	if err != nil {
		return fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("telegram error: %s", resp.Status)
	}

	return nil
}

// splitMessage cuts the text into limit-sized chunks on rune boundaries so a
// cut can never produce invalid UTF-8 mid-character.
func splitMessage(text string, limit int) []string {
	runes := []rune(text)
	if len(runes) <= limit {
		return []string{text}
	}
	var chunks []string
	for len(runes) > limit {
		chunks = append(chunks, string(runes[:limit]))
		runes = runes[limit:]
	}
	if len(runes) > 0 {
		chunks = append(chunks, string(runes))
	}
	return chunks
}

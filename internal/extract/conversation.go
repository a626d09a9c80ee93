package extract

import (
	"encoding/json"
	"fmt"
)

type rawConversation struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Preview  string `json:"preview"`
	Unread   bool   `json:"unread"`
	IsGroup  bool   `json:"isGroup"`
	LastSeen string `json:"lastSeen"`
}

// ConversationExtractor reads DM conversation cells from the messages
// inbox. The ID is the conversation id in the message link path.
type ConversationExtractor struct{}

func (ConversationExtractor) Kind() Kind { return KindConversation }

func (ConversationExtractor) CandidateSelector() string { return `[data-testid="conversation"]` }

func (ConversationExtractor) Script() string {
	return `
	(function() {
		const cells = document.querySelectorAll('[data-testid="conversation"]');
		const results = [];

		cells.forEach(el => {
			try {
				const link = el.querySelector('a[href*="/messages/"]');
				const id = link?.getAttribute('href')?.match(/messages\/([^/?]+)/)?.[1] || '';
				if (!id) return;

				const nameSpan = el.querySelector('[data-testid="conversation"] span, span');
				const name = nameSpan?.textContent || '';
				const spans = el.querySelectorAll('span');
				const preview = spans.length > 1 ? spans[spans.length - 1].textContent || '' : '';
				const unread = el.querySelector('[aria-label*="Unread"]') !== null;
				const isGroup = (name.match(/,/g) || []).length > 0;
				const lastSeen = el.querySelector('time')?.getAttribute('datetime') || '';

				results.push({ id, name, preview, unread, isGroup, lastSeen });
			} catch (e) {
				// Skip unreadable cells.
			}
		});

		return results;
	})()
	`
}

func (ConversationExtractor) Decode(raw json.RawMessage) ([]Record, error) {
	var rawConvos []rawConversation
	if err := json.Unmarshal(raw, &rawConvos); err != nil {
		return nil, fmt.Errorf("decode conversations: %w", err)
	}

	records := make([]Record, 0, len(rawConvos))
	for _, rc := range rawConvos {
		if rc.ID == "" {
			continue
		}
		records = append(records, Record{
			ID:   rc.ID,
			Kind: KindConversation,
			Fields: Fields{
				"name":      rc.Name,
				"text":      rc.Preview,
				"unread":    rc.Unread,
				"is_group":  rc.IsGroup,
				"last_seen": rc.LastSeen,
			},
		})
	}
	return records, nil
}

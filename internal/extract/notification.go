package extract

import (
	"encoding/json"
	"fmt"
)

type rawNotification struct {
	ID     string `json:"id"`
	Text   string `json:"text"`
	Actor  string `json:"actor"`
	Kind   string `json:"kind"`
	Link   string `json:"link"`
	IsLike bool   `json:"isLike"`
}

// NotificationExtractor reads notification cells. Notifications carry no
// DOM id of their own, so the ID is derived from the target link (status
// or profile path); cells with neither are dropped.
type NotificationExtractor struct{}

func (NotificationExtractor) Kind() Kind { return KindNotification }

func (NotificationExtractor) CandidateSelector() string { return `article[data-testid="notification"]` }

func (NotificationExtractor) Script() string {
	return `
	(function() {
		const cells = document.querySelectorAll('article[data-testid="notification"]');
		const results = [];

		cells.forEach(el => {
			try {
				const statusLink = el.querySelector('a[href*="/status/"]');
				const profileLink = el.querySelector('a[href^="/"]');
				const link = statusLink?.getAttribute('href') || profileLink?.getAttribute('href') || '';
				const id = statusLink?.href?.match(/status\/(\d+)/)?.[1]
					|| (profileLink?.getAttribute('href') || '').split('/')[1]
					|| '';
				if (!id) return;

				const text = el.textContent || '';
				const actor = el.querySelector('[data-testid="User-Name"] a[href^="/"]')
					?.getAttribute('href')?.replace('/', '') || '';
				const lower = text.toLowerCase();
				let kind = 'other';
				if (lower.includes('liked')) kind = 'like';
				else if (lower.includes('reposted')) kind = 'repost';
				else if (lower.includes('followed')) kind = 'follow';
				else if (lower.includes('replied') || lower.includes('mentioned')) kind = 'mention';

				results.push({ id, text, actor, kind, link, isLike: kind === 'like' });
			} catch (e) {
				// Skip unreadable cells.
			}
		});

		return results;
	})()
	`
}

func (NotificationExtractor) Decode(raw json.RawMessage) ([]Record, error) {
	var rawCells []rawNotification
	if err := json.Unmarshal(raw, &rawCells); err != nil {
		return nil, fmt.Errorf("decode notifications: %w", err)
	}

	records := make([]Record, 0, len(rawCells))
	for _, rn := range rawCells {
		if rn.ID == "" {
			continue
		}
		records = append(records, Record{
			ID:   rn.ID,
			Kind: KindNotification,
			Fields: Fields{
				"text":   rn.Text,
				"author": rn.Actor,
				"type":   rn.Kind,
				"link":   rn.Link,
			},
		})
	}
	return records, nil
}

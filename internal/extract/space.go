package extract

import (
	"encoding/json"
	"fmt"
)

type rawSpace struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Host      string `json:"host"`
	Listeners string `json:"listeners"`
	IsLive    bool   `json:"isLive"`
}

// SpaceExtractor reads audio Space cards. The ID is the space id in the
// card's link path.
type SpaceExtractor struct{}

func (SpaceExtractor) Kind() Kind { return KindSpace }

func (SpaceExtractor) CandidateSelector() string { return `a[href^="/i/spaces/"]` }

func (SpaceExtractor) Script() string {
	return `
	(function() {
		const cards = document.querySelectorAll('a[href^="/i/spaces/"]');
		const results = [];
		const seen = new Set();

		cards.forEach(el => {
			try {
				const id = el.getAttribute('href')?.match(/spaces\/([^/?]+)/)?.[1] || '';
				if (!id || seen.has(id)) return;
				seen.add(id);

				const container = el.closest('[data-testid="card.wrapper"]') || el;
				const spans = container.querySelectorAll('span');
				const title = spans[0]?.textContent || '';
				let host = '';
				let listeners = '';
				spans.forEach(s => {
					const t = s.textContent || '';
					if (/listening/i.test(t)) {
						listeners = t.replace(/\s*listening.*$/i, '');
					} else if (t.startsWith('@')) {
						host = t.slice(1);
					}
				});
				const isLive = /live/i.test(container.textContent || '');

				results.push({ id, title, host, listeners, isLive });
			} catch (e) {
				// Skip unreadable cards.
			}
		});

		return results;
	})()
	`
}

func (SpaceExtractor) Decode(raw json.RawMessage) ([]Record, error) {
	var rawCards []rawSpace
	if err := json.Unmarshal(raw, &rawCards); err != nil {
		return nil, fmt.Errorf("decode spaces: %w", err)
	}

	records := make([]Record, 0, len(rawCards))
	for _, rs := range rawCards {
		if rs.ID == "" {
			continue
		}
		records = append(records, Record{
			ID:   rs.ID,
			Kind: KindSpace,
			Fields: Fields{
				"text":      rs.Title,
				"author":    rs.Host,
				"listeners": ParseCount(rs.Listeners),
				"is_live":   rs.IsLive,
			},
		})
	}
	return records, nil
}

package extract

import (
	"encoding/json"
	"fmt"
)

type rawCommunity struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Members string `json:"members"`
	Topic   string `json:"topic"`
	Joined  bool   `json:"joined"`
}

// CommunityExtractor reads community cards from the communities discovery
// page. The ID is the numeric community id in the card's link path.
type CommunityExtractor struct{}

func (CommunityExtractor) Kind() Kind { return KindCommunity }

func (CommunityExtractor) CandidateSelector() string { return `a[href^="/i/communities/"]` }

func (CommunityExtractor) Script() string {
	return `
	(function() {
		const cards = document.querySelectorAll('a[href^="/i/communities/"]');
		const results = [];
		const seen = new Set();

		cards.forEach(el => {
			try {
				const id = el.getAttribute('href')?.match(/communities\/(\d+)/)?.[1] || '';
				if (!id || seen.has(id)) return;
				seen.add(id);

				const spans = el.querySelectorAll('span');
				const name = spans[0]?.textContent || '';
				let members = '';
				let topic = '';
				spans.forEach(s => {
					const t = s.textContent || '';
					if (/Members?$/i.test(t)) {
						members = t.replace(/\s*Members?$/i, '');
					} else if (!topic && t && t !== name) {
						topic = t;
					}
				});
				const joined = el.textContent?.includes('Joined') || false;

				results.push({ id, name, members, topic, joined });
			} catch (e) {
				// Skip unreadable cards.
			}
		});

		return results;
	})()
	`
}

func (CommunityExtractor) Decode(raw json.RawMessage) ([]Record, error) {
	var rawCards []rawCommunity
	if err := json.Unmarshal(raw, &rawCards); err != nil {
		return nil, fmt.Errorf("decode communities: %w", err)
	}

	records := make([]Record, 0, len(rawCards))
	for _, rc := range rawCards {
		if rc.ID == "" {
			continue
		}
		records = append(records, Record{
			ID:   rc.ID,
			Kind: KindCommunity,
			Fields: Fields{
				"name":    rc.Name,
				"text":    rc.Topic,
				"members": ParseCount(rc.Members),
				"joined":  rc.Joined,
			},
		})
	}
	return records, nil
}

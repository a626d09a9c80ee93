package extract

import (
	"encoding/json"
	"fmt"
)

// rawPost is the shape produced by the post extraction script.
type rawPost struct {
	ID           string `json:"id"`
	AuthorHandle string `json:"authorHandle"`
	AuthorName   string `json:"authorName"`
	Text         string `json:"text"`
	Timestamp    string `json:"timestamp"`
	Likes        string `json:"likes"`
	Reposts      string `json:"reposts"`
	Replies      string `json:"replies"`
	IsRepost     bool   `json:"isRepost"`
	IsReply      bool   `json:"isReply"`
	IsVerified   bool   `json:"isVerified"`
	URL          string `json:"url"`
}

// PostExtractor reads timeline posts. The ID is the numeric status id
// embedded in the permalink path segment.
type PostExtractor struct{}

func (PostExtractor) Kind() Kind { return KindPost }

func (PostExtractor) CandidateSelector() string { return `article[data-testid="tweet"]` }

func (PostExtractor) Script() string {
	return `
	(function() {
		const articles = document.querySelectorAll('article[data-testid="tweet"]');
		const results = [];

		articles.forEach(el => {
			try {
				const statusLink = el.querySelector('a[href*="/status/"]');
				const id = statusLink?.href?.match(/status\/(\d+)/)?.[1];
				if (!id) return;

				const userNameEl = el.querySelector('[data-testid="User-Name"]');
				let authorHandle = '';
				let authorName = '';
				if (userNameEl) {
					const handleLink = userNameEl.querySelector('a[href^="/"]');
					if (handleLink) {
						authorHandle = handleLink.getAttribute('href')?.replace('/', '') || '';
					}
					const nameSpan = userNameEl.querySelector('span');
					authorName = nameSpan?.textContent || '';
				}

				const text = el.querySelector('[data-testid="tweetText"]')?.textContent || '';
				const timestamp = el.querySelector('time')?.getAttribute('datetime') || '';

				const getMetric = (testId) => {
					const metricEl = el.querySelector('[data-testid="' + testId + '"]');
					if (!metricEl) return '0';
					const ariaLabel = metricEl.getAttribute('aria-label');
					if (ariaLabel) {
						const match = ariaLabel.match(/^([\d,.]+[KkMmBb]?)/);
						return match ? match[1] : '0';
					}
					return metricEl.textContent?.trim() || '0';
				};

				const socialContext = el.querySelector('[data-testid="socialContext"]');
				const isRepost = socialContext?.textContent?.toLowerCase().includes('repost') || false;
				const isReply = el.textContent?.includes('Replying to') || false;
				const isVerified = el.querySelector('[data-testid="User-Name"] [data-testid="icon-verified"]') !== null;

				results.push({
					id,
					authorHandle,
					authorName,
					text,
					timestamp,
					likes: getMetric('like'),
					reposts: getMetric('retweet'),
					replies: getMetric('reply'),
					isRepost,
					isReply,
					isVerified,
					url: statusLink?.href || ''
				});
			} catch (e) {
				// One malformed article must not abort the rest.
			}
		});

		return results;
	})()
	`
}

func (PostExtractor) Decode(raw json.RawMessage) ([]Record, error) {
	var rawPosts []rawPost
	if err := json.Unmarshal(raw, &rawPosts); err != nil {
		return nil, fmt.Errorf("decode posts: %w", err)
	}

	records := make([]Record, 0, len(rawPosts))
	for _, rp := range rawPosts {
		if rp.ID == "" {
			continue
		}
		records = append(records, Record{
			ID:   rp.ID,
			Kind: KindPost,
			Fields: Fields{
				"author":      rp.AuthorHandle,
				"author_name": rp.AuthorName,
				"text":        rp.Text,
				"timestamp":   rp.Timestamp,
				"likes":       ParseCount(rp.Likes),
				"reposts":     ParseCount(rp.Reposts),
				"replies":     ParseCount(rp.Replies),
				"is_repost":   rp.IsRepost,
				"is_reply":    rp.IsReply,
				"is_verified": rp.IsVerified,
				"url":         rp.URL,
			},
		})
	}
	return records, nil
}

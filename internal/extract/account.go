package extract

import (
	"encoding/json"
	"fmt"
	"strings"
)

type rawAccount struct {
	Handle      string `json:"handle"`
	Name        string `json:"name"`
	Bio         string `json:"bio"`
	IsVerified  bool   `json:"isVerified"`
	FollowsYou  bool   `json:"followsYou"`
	IsFollowing bool   `json:"isFollowing"`
}

// AccountExtractor reads user cells from follower/following lists and
// people search results. The ID is the handle embedded in the profile
// link path segment.
type AccountExtractor struct{}

func (AccountExtractor) Kind() Kind { return KindAccount }

func (AccountExtractor) CandidateSelector() string { return `[data-testid="UserCell"]` }

func (AccountExtractor) Script() string {
	return `
	(function() {
		const cells = document.querySelectorAll('[data-testid="UserCell"]');
		const results = [];

		cells.forEach(el => {
			try {
				const profileLink = el.querySelector('a[href^="/"]');
				const href = profileLink?.getAttribute('href') || '';
				const handle = href.split('/')[1] || '';
				if (!handle || handle === 'i') return;

				const nameSpan = el.querySelector('a[href^="/"] span');
				const name = nameSpan?.textContent || '';
				const bio = el.querySelector('[data-testid="UserDescription"]')?.textContent || '';
				const isVerified = el.querySelector('[data-testid="icon-verified"]') !== null;
				const followsYou = el.textContent?.includes('Follows you') || false;
				const followBtn = el.querySelector('[data-testid$="-unfollow"]');

				results.push({
					handle,
					name,
					bio,
					isVerified,
					followsYou,
					isFollowing: followBtn !== null
				});
			} catch (e) {
				// Skip unreadable cells.
			}
		});

		return results;
	})()
	`
}

func (AccountExtractor) Decode(raw json.RawMessage) ([]Record, error) {
	var rawAccounts []rawAccount
	if err := json.Unmarshal(raw, &rawAccounts); err != nil {
		return nil, fmt.Errorf("decode accounts: %w", err)
	}

	records := make([]Record, 0, len(rawAccounts))
	for _, ra := range rawAccounts {
		handle := strings.TrimPrefix(strings.TrimSpace(ra.Handle), "@")
		if handle == "" {
			continue
		}
		records = append(records, Record{
			ID:   handle,
			Kind: KindAccount,
			Fields: Fields{
				"author":       handle,
				"name":         ra.Name,
				"text":         ra.Bio,
				"is_verified":  ra.IsVerified,
				"follows_you":  ra.FollowsYou,
				"is_following": ra.IsFollowing,
			},
		})
	}
	return records, nil
}

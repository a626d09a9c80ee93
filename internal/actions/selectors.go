package actions

import "fmt"

// X.com control selectors. The UI renders no stable classes; data-testid
// attributes are the only handles that survive redesigns, so every
// selector lives here and nowhere else.
const (
	selReplyButton    = `[data-testid="reply"]`
	selComposer       = `[data-testid="tweetTextarea_0"]`
	selSendReply      = `[data-testid="tweetButton"]`
	selRemoveBookmark = `[data-testid="removeBookmark"]`
	selConfirmSheet   = `[data-testid="confirmationSheetConfirm"]`
	selJoinButton     = `[data-testid="joinCommunity"]`
	selAddPoll        = `[data-testid="createPollButton"]`
	selPrimaryColumn  = `[data-testid="primaryColumn"]`
)

// withinPost scopes control to the article carrying the given status id.
// Node handles go stale between extraction and interaction, so controls
// are re-addressed by id at click time instead.
func withinPost(id, control string) string {
	return fmt.Sprintf(`article[data-testid="tweet"]:has(a[href*="/status/%s"]) %s`, id, control)
}

// withinUserCell scopes control to the user cell for the given handle.
func withinUserCell(handle, control string) string {
	return fmt.Sprintf(`[data-testid="UserCell"]:has(a[href="/%s"]) %s`, handle, control)
}

// pollChoiceInput addresses the nth poll choice field, 1-based.
func pollChoiceInput(n int) string {
	return fmt.Sprintf(`input[name="Choice%d"]`, n)
}

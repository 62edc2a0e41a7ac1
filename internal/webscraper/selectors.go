package webscraper

// X.com DOM selectors
// Isolated here because X changes their DOM frequently
// Update these when extraction breaks

const (
	TweetArticle   = `article[data-testid="tweet"]`
	TweetText      = `[data-testid="tweetText"]`
	TweetAuthor    = `[data-testid="User-Name"]`
	TweetTimestamp = `time`
	TweetLink      = `a[href*="/status/"]`

	ReplyCount   = `[data-testid="reply"]`
	RetweetCount = `[data-testid="retweet"]`
	LikeCount    = `[data-testid="like"]`
)

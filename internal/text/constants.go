package text

// CacheSize bounds the in-process prompt cache. The seed set is tiny but
// the hash can grow without a redeploy.
const CacheSize = 128

// Error messages
const (
	ErrMsgSeedFailed  = "failed to seed typing texts"
	ErrMsgFetchFailed = "failed to fetch typing text"
)

// Log messages
const (
	LogMsgSeeded = "Seeded typing texts"
)

// seedTexts is the initial prompt set, written only when the hash is absent.
var seedTexts = []string{
	"The quick brown fox jumps over the lazy dog. This pangram contains every letter of the alphabet and is commonly used for typing practice.",
	"In the midst of winter, I found there was, within me, an invincible summer. And that makes me happy. For it says that no matter how hard the world pushes against me, within me, there's something stronger.",
	"Technology is best when it brings people together. The internet was designed to be decentralized so that everybody could participate.",
	"Programming is not about typing, it's about thinking. The most important skill for a programmer is problem solving, not syntax memorization.",
	"The journey of a thousand miles begins with one step. Every expert was once a beginner. Every pro was once an amateur.",
}

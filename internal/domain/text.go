package domain

// Text is a typing prompt served to clients. Length always equals the
// rune-independent byte length of Text, matching what clients type against.
type Text struct {
	ID     string `json:"id"`
	Text   string `json:"text"`
	Length int    `json:"length"`
}

package fragments

// Fragment is a chunk of a submitted document, addressable by ID so that
// extracted claims can cite their source text.
type Fragment struct {
	ID     string `json:"id"`
	DealID string `json:"dealId"`
	Index  int    `json:"index"`
	Text   string `json:"text"`
}

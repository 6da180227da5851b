package cards

// CardImage is one artwork entry of a card as returned by the API
type CardImage struct {
	ID            int    `json:"id"`
	ImageURL      string `json:"image_url"`
	ImageURLSmall string `json:"image_url_small"`
}

// Card is the subset of a card object the widget reads from the API
type Card struct {
	ID         int         `json:"id"`
	Name       string      `json:"name"`
	Type       string      `json:"type"`
	Archetype  string      `json:"archetype"`
	CardImages []CardImage `json:"card_images"`
}

// CardCollection represents the full JSON structure of a cardinfo response
type CardCollection struct {
	Data []Card `json:"data"`
}

// CardRecord is the read-only projection shown by the widget
type CardRecord struct {
	Name     string
	ImageURL string
}

// SearchResult holds the records of one response in API order
type SearchResult []CardRecord

// Record projects a card onto its name and first image
func (c *Card) Record() CardRecord {
	rec := CardRecord{Name: c.Name}
	if len(c.CardImages) > 0 {
		rec.ImageURL = c.CardImages[0].ImageURL
	}
	return rec
}

// Result converts the collection into a SearchResult, keeping response order
func (cc *CardCollection) Result() SearchResult {
	result := make(SearchResult, 0, len(cc.Data))
	for i := range cc.Data {
		result = append(result, cc.Data[i].Record())
	}
	return result
}

// First returns the first record, if any
func (r SearchResult) First() (CardRecord, bool) {
	if len(r) == 0 {
		return CardRecord{}, false
	}
	return r[0], true
}

// HasImage reports whether the record carries an image URL
func (c CardRecord) HasImage() bool {
	return c.ImageURL != ""
}

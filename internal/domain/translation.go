package domain

import "time"

// Translation is one saved history entry: a source text and the Darija
// rendering the user chose to keep.
type Translation struct {
	ID             string    `json:"id"`
	UserID         string    `json:"-"`
	SourceText     string    `json:"sourceText"`
	TranslatedText string    `json:"translatedText"`
	CreatedAt      time.Time `json:"createdAt"`
}

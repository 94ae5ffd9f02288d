package model

// Source identifies which chart an account was imported from.
type Source string

const (
	SourceClient  Source = "client"
	SourceCncj    Source = "cncj"
	SourceGeneral Source = "general"
)

// Account is one row of a chart of accounts. Accounts are never mutated in
// place: every pipeline stage builds new slices from the previous ones.
type Account struct {
	ID             string            `json:"id"`
	Number         string            `json:"number"`
	Title          string            `json:"title,omitempty"`
	Source         Source            `json:"source"`
	OriginalNumber string            `json:"originalNumber,omitempty"` // pre-normalization number, as imported
	RawData        map[string]string `json:"rawData,omitempty"`        // full original row, general-chart accounts only
}

// MergeInfo records one (number, title) group that was collapsed during the
// merge pass. Only groups with more than one member produce an entry.
type MergeInfo struct {
	Number      string `json:"number"`
	Title       string `json:"title,omitempty"`
	MergedCount int    `json:"mergedCount"`
}

// Normalization describes one pending code-length fix for a client account.
type Normalization struct {
	ID               string `json:"id"`
	OriginalNumber   string `json:"originalNumber"`
	NormalizedNumber string `json:"normalizedNumber"`
	Title            string `json:"title,omitempty"`
}

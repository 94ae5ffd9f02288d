package model

// ProcessingResult summarizes one comparison pass over a set of accounts.
//
// For a duplicate pass, Duplicates and UniqueClients partition the input.
// For a client-vs-CNCJ pass, Matches, UnmatchedClients and ToCreate partition
// the unique clients. The CNCJ conflict resolver reuses the first two slots
// for conflicts and non-conflicts and leaves the rest empty; that is a
// deliberate shape reuse, not a distinct result type.
type ProcessingResult struct {
	Duplicates       []Account `json:"duplicates"`
	UniqueClients    []Account `json:"uniqueClients"`
	Matches          []Account `json:"matches"`
	UnmatchedClients []Account `json:"unmatchedClients"`
	ToCreate         []Account `json:"toCreate"`
}

// BlockedBy tags which kind of codes saturated a suggestion range.
type BlockedBy string

const (
	BlockedByCncj   BlockedBy = "cncj"
	BlockedByClient BlockedBy = "client"
	BlockedByBoth   BlockedBy = "both"
)

// SuggestionResult is the outcome of one replacement-code suggestion.
// An empty Code means no suggestion exists; Reason always explains why.
type SuggestionResult struct {
	Code       string    `json:"code,omitempty"`
	Reason     string    `json:"reason"`
	TriedCodes []string  `json:"triedCodes,omitempty"`
	BlockedBy  BlockedBy `json:"blockedBy,omitempty"`
}

// CodeHistory is the full lineage of one account's code, re-derived on
// demand from the pipeline results. It is a view, never primary state.
type CodeHistory struct {
	OriginalCode     string `json:"originalCode"`
	NormalizedCode   string `json:"normalizedCode"`
	Step4Code        string `json:"step4Code,omitempty"` // duplicate-resolution replacement
	Step6Code        string `json:"step6Code,omitempty"` // CNCJ-resolution replacement
	FinalCode        string `json:"finalCode"`
	ReferencePcgCode string `json:"referencePcgCode,omitempty"`
}

// Inheritance carries metadata copied from the nearest general-chart account
// for a client account absent from the general chart.
type Inheritance struct {
	InheritedData    map[string]string `json:"inheritedData"`
	ReferencePcgCode string            `json:"referencePcgCode,omitempty"`
}

package enhancement

// Reason is one structured, human-readable piece of reasoning about a
// detection verdict.
type Reason struct {
	Category    string `json:"category"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Severity    string `json:"severity"`
}

// Result is the enrichment attached to every analysis. Reasons come either
// from the remote explanation service or, when that is unavailable, from the
// deterministic fallback generator.
type Result struct {
	Reasons         []Reason `json:"reasons"`
	UsedEnhancement bool     `json:"used_enhancement"`
}

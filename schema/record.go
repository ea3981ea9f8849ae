package schema

// Record is the canonical, normalized form of an inbound bibliographic record.
// Sub-sections are always present and sequences are never nil after normalization.
type Record struct {
	Bibcode         string
	ScixID          string
	Status          string
	BibData         BibData
	Metrics         MetricsData
	Classifications []string // own collections, preferred over BibData.Database
	Collections     []string
	Fallbacks       []Fallback // recoverable input problems met while normalizing
}

// BibData holds the bibliographic fields used for scoring.
type BibData struct {
	Doctype   string
	Refereed  bool
	Pubdate   string   // YYYY-MM-DD, day may be 00
	EntryDate string   // YYYY-MM-DD
	Database  []string // legacy collection source
}

// MetricsData holds the citation metrics fields used for scoring.
type MetricsData struct {
	Refereed bool
}

// Identifier returns the bibcode, or the scix_id when the bibcode is empty.
func (r Record) Identifier() string {
	if r.Bibcode != "" {
		return r.Bibcode
	}
	return r.ScixID
}

// HasIdentifier reports whether the record can be scored at all.
func (r Record) HasIdentifier() bool {
	return r.Bibcode != "" || r.ScixID != ""
}

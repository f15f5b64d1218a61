package domain

// ProjectMetadata identifies a project and how it was requested.
type ProjectMetadata struct {
	// ProjectID is the unique identifier, generated at creation or migration.
	ProjectID string `json:"project_id"`

	// ProjectType is the project classification (e.g., "STD").
	ProjectType string `json:"project_type"`

	// Title is the human-readable project title.
	Title string `json:"title,omitempty"`

	// FilePath is the project location relative to the projects root,
	// derived from the facility id and request year.
	FilePath string `json:"file_path"`

	// Requestor identifies who requested the project.
	Requestor string `json:"requestor,omitempty"`

	// RequestYear is the year the project was requested.
	RequestYear string `json:"request_year"`

	// Relook marks a re-examination of an earlier project.
	Relook bool `json:"relook"`
}

// FacilityInfo is the customer block of a project record.
// The JSON keys retain the historical space-separated names.
type FacilityInfo struct {
	FacilityID   string `json:"facility id"`
	FacilityCode string `json:"facility code"`
	FacilityName string `json:"facility name,omitempty"`
	SurrogateKey string `json:"facility surrogate key,omitempty"`
}

// ProjectSource references a shared SourceRecord by id, with
// project-local usage context. Sharing is by reference, never by copy.
type ProjectSource struct {
	// UUID is the id of the referenced SourceRecord.
	UUID string `json:"uuid"`

	// Order is the 1-based position the source was assigned.
	Order int `json:"order"`

	// UsageNotes describe how this project uses the source.
	UsageNotes string `json:"usage_notes,omitempty"`

	// CitationFormat overrides the region's citation format for this
	// project only.
	CitationFormat string `json:"citation_format,omitempty"`
}

// ProjectCitation is one citation/slide entry in a project.
type ProjectCitation struct {
	// CitationID is unique within the project.
	CitationID string `json:"citation_id"`

	// Title is the citation or slide title.
	Title string `json:"title"`

	// Content is the optional citation body.
	Content string `json:"content,omitempty"`

	// SlideNumber is the optional slide the citation appears on.
	SlideNumber *int `json:"slide_number,omitempty"`

	// SourceReferences lists referenced source ids. Entries are not
	// required to appear in the project's source list.
	SourceReferences []string `json:"source_references"`
}

// SlideData groups the citation/slide entries of a project.
type SlideData struct {
	Citations []ProjectCitation `json:"citations"`
}

// ProjectRecord is the canonical per-project document.
type ProjectRecord struct {
	Metadata ProjectMetadata `json:"project_metadata"`

	// Team and KeyCites are passed through migration unchanged and are
	// opaque to the core.
	Team     any `json:"team,omitempty"`
	KeyCites any `json:"key_cites,omitempty"`

	Facility FacilityInfo `json:"facility_information"`

	SlideData SlideData `json:"slide_data"`

	// Sources are the shared source records this project uses.
	Sources []ProjectSource `json:"sources"`

	PowerPointFile        string `json:"powerpoint_file,omitempty"`
	NumberHeaderCitations int    `json:"number_header_citations"`
}

// AddSource appends a source reference. If a reference with the same
// uuid already exists it is removed first, so the new entry both
// replaces the old one and moves to the end of the list.
func (p *ProjectRecord) AddSource(src ProjectSource) {
	for i := range p.Sources {
		if p.Sources[i].UUID == src.UUID {
			p.Sources = append(p.Sources[:i], p.Sources[i+1:]...)
			break
		}
	}
	p.Sources = append(p.Sources, src)
}

// GetSource returns the source reference with the given uuid.
func (p *ProjectRecord) GetSource(uuid string) (*ProjectSource, bool) {
	for i := range p.Sources {
		if p.Sources[i].UUID == uuid {
			return &p.Sources[i], true
		}
	}
	return nil, false
}

// AddCitation appends a citation with the same replace-on-duplicate
// semantics as AddSource, keyed by citation id.
func (p *ProjectRecord) AddCitation(c ProjectCitation) {
	cites := p.SlideData.Citations
	for i := range cites {
		if cites[i].CitationID == c.CitationID {
			cites = append(cites[:i], cites[i+1:]...)
			break
		}
	}
	p.SlideData.Citations = append(cites, c)
}

// GetCitationsBySource returns every citation referencing the given
// source id, in document order.
func (p *ProjectRecord) GetCitationsBySource(sourceID string) []ProjectCitation {
	var out []ProjectCitation
	for _, c := range p.SlideData.Citations {
		for _, ref := range c.SourceReferences {
			if ref == sourceID {
				out = append(out, c)
				break
			}
		}
	}
	return out
}

// DanglingReferences returns source ids referenced by citations but
// absent from the project's source list. The model permits them;
// callers decide whether to surface the gap.
func (p *ProjectRecord) DanglingReferences() []string {
	known := make(map[string]bool, len(p.Sources))
	for _, s := range p.Sources {
		known[s.UUID] = true
	}

	var dangling []string
	seen := make(map[string]bool)
	for _, c := range p.SlideData.Citations {
		for _, ref := range c.SourceReferences {
			if !known[ref] && !seen[ref] {
				dangling = append(dangling, ref)
				seen[ref] = true
			}
		}
	}
	return dangling
}

package domain

import (
	"encoding/json"
	"time"
)

// DocumentVersion is the current region document schema version.
const DocumentVersion = "1.0"

// SourceRecord is a reusable citation shared by every project in a region.
// Known citation fields are typed; anything else a caller supplies is
// preserved in Extra so documents round-trip losslessly.
type SourceRecord struct {
	// ID is unique within the region document. Generated on add when empty.
	ID string

	// Title is the citation title.
	Title string

	// Author is the citation author or originator.
	Author string

	// Publisher is the publishing organisation.
	Publisher string

	// Year is the publication year.
	Year string

	// URL is the citation location, if any.
	URL string

	// Notes are free-form usage notes attached by the creator.
	Notes string

	// Scope defines how widely the record is shared.
	Scope SourceScope

	// AddedBy identifies who created the record.
	AddedBy string

	// Extra holds caller-supplied fields outside the typed set.
	Extra map[string]any
}

// typed JSON keys; everything else lands in Extra on decode.
var sourceRecordKeys = map[string]bool{
	"id": true, "title": true, "author": true, "publisher": true,
	"year": true, "url": true, "notes": true, "scope": true, "added_by": true,
}

type sourceRecordJSON struct {
	ID        string      `json:"id"`
	Title     string      `json:"title,omitempty"`
	Author    string      `json:"author,omitempty"`
	Publisher string      `json:"publisher,omitempty"`
	Year      string      `json:"year,omitempty"`
	URL       string      `json:"url,omitempty"`
	Notes     string      `json:"notes,omitempty"`
	Scope     SourceScope `json:"scope,omitempty"`
	AddedBy   string      `json:"added_by,omitempty"`
}

// MarshalJSON flattens typed fields and Extra into one JSON object.
// Typed fields win on key conflict.
func (r SourceRecord) MarshalJSON() ([]byte, error) {
	flat := make(map[string]any, len(r.Extra)+9)
	for k, v := range r.Extra {
		if !sourceRecordKeys[k] {
			flat[k] = v
		}
	}

	typed, err := json.Marshal(sourceRecordJSON{
		ID:        r.ID,
		Title:     r.Title,
		Author:    r.Author,
		Publisher: r.Publisher,
		Year:      r.Year,
		URL:       r.URL,
		Notes:     r.Notes,
		Scope:     r.Scope,
		AddedBy:   r.AddedBy,
	})
	if err != nil {
		return nil, err
	}
	var typedMap map[string]any
	if err := json.Unmarshal(typed, &typedMap); err != nil {
		return nil, err
	}
	for k, v := range typedMap {
		flat[k] = v
	}
	return json.Marshal(flat)
}

// UnmarshalJSON splits a JSON object into typed fields and Extra.
func (r *SourceRecord) UnmarshalJSON(data []byte) error {
	var typed sourceRecordJSON
	if err := json.Unmarshal(data, &typed); err != nil {
		return err
	}

	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	*r = SourceRecord{
		ID:        typed.ID,
		Title:     typed.Title,
		Author:    typed.Author,
		Publisher: typed.Publisher,
		Year:      typed.Year,
		URL:       typed.URL,
		Notes:     typed.Notes,
		Scope:     typed.Scope,
		AddedBy:   typed.AddedBy,
	}
	for k, v := range raw {
		if sourceRecordKeys[k] {
			continue
		}
		if r.Extra == nil {
			r.Extra = make(map[string]any)
		}
		r.Extra[k] = v
	}
	return nil
}

// SourcePatch is an explicit field-by-field update for a SourceRecord.
// Nil fields are left untouched; Extra entries are merged key by key.
type SourcePatch struct {
	Title     *string
	Author    *string
	Publisher *string
	Year      *string
	URL       *string
	Notes     *string
	Scope     *SourceScope
	Extra     map[string]any
}

// IsZero reports whether the patch would change nothing.
func (p SourcePatch) IsZero() bool {
	return p.Title == nil && p.Author == nil && p.Publisher == nil &&
		p.Year == nil && p.URL == nil && p.Notes == nil && p.Scope == nil &&
		len(p.Extra) == 0
}

// Apply merges the patch into the record. The record's ID is never changed.
func (r *SourceRecord) Apply(p SourcePatch) {
	if p.Title != nil {
		r.Title = *p.Title
	}
	if p.Author != nil {
		r.Author = *p.Author
	}
	if p.Publisher != nil {
		r.Publisher = *p.Publisher
	}
	if p.Year != nil {
		r.Year = *p.Year
	}
	if p.URL != nil {
		r.URL = *p.URL
	}
	if p.Notes != nil {
		r.Notes = *p.Notes
	}
	if p.Scope != nil {
		r.Scope = *p.Scope
	}
	if len(p.Extra) > 0 && r.Extra == nil {
		r.Extra = make(map[string]any, len(p.Extra))
	}
	for k, v := range p.Extra {
		r.Extra[k] = v
	}
}

// DocumentMetadata is the metadata block of a region document.
type DocumentMetadata struct {
	// Version is the document schema version.
	Version string `json:"version"`

	// Region names the owning region.
	Region string `json:"region"`

	// LastUpdated is refreshed on every successful write.
	LastUpdated time.Time `json:"last_updated"`

	// TotalSources always equals the length of the source list
	// after a successful write.
	TotalSources int `json:"total_sources"`
}

// RegionDocument is the persisted unit for one region: an ordered list
// of source records plus document metadata. It is exclusively owned by
// its regional store and is the single source of truth for all projects
// resolving to that region.
type RegionDocument struct {
	Sources  []SourceRecord   `json:"sources"`
	Metadata DocumentMetadata `json:"metadata"`
}

// NewRegionDocument creates an empty document with fresh metadata.
func NewRegionDocument(region string) *RegionDocument {
	return &RegionDocument{
		Sources: []SourceRecord{},
		Metadata: DocumentMetadata{
			Version:     DocumentVersion,
			Region:      region,
			LastUpdated: time.Now().UTC(),
		},
	}
}

// HasSource reports whether a record with the given id exists.
func (d *RegionDocument) HasSource(id string) bool {
	for i := range d.Sources {
		if d.Sources[i].ID == id {
			return true
		}
	}
	return false
}

// FindSource returns a pointer to the record with the given id.
func (d *RegionDocument) FindSource(id string) (*SourceRecord, bool) {
	for i := range d.Sources {
		if d.Sources[i].ID == id {
			return &d.Sources[i], true
		}
	}
	return nil, false
}

// Touch refreshes LastUpdated and recomputes TotalSources.
// Every successful write must call it first.
func (d *RegionDocument) Touch() {
	d.Metadata.LastUpdated = time.Now().UTC()
	d.Metadata.TotalSources = len(d.Sources)
}

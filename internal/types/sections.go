// Package types provides type definitions for structured data used throughout the job-application-assistant system.
//
//nolint:revive // types is a standard Go package name pattern
package types

// SectionKind classifies a structural region of a resume.
type SectionKind string

// Section kinds recognized by the segmenter. Anything that does not
// match a known heading is classified as KindOther.
const (
	KindExperience SectionKind = "experience"
	KindSkills     SectionKind = "skills"
	KindEducation  SectionKind = "education"
	KindSummary    SectionKind = "summary"
	KindProjects   SectionKind = "projects"
	KindOther      SectionKind = "other"
)

// IsBulletSource reports whether sections of this kind contribute
// achievement bullets to matching. Skills and Education content is used
// only as auxiliary term signal, not as quotable bullets.
func (k SectionKind) IsBulletSource() bool {
	switch k {
	case KindExperience, KindSummary, KindProjects, KindOther:
		return true
	default:
		return false
	}
}

// Section is a named span of the resume. Sections are non-overlapping
// and ordered by appearance in the source text.
type Section struct {
	Kind    SectionKind `json:"kind"`
	Heading string      `json:"heading,omitempty"` // heading line as written, empty for the leading Other span
	Index   int         `json:"index"`             // position among all sections, 0-based
	Start   int         `json:"start"`             // rune-agnostic byte offset of the body in the raw text
	End     int         `json:"end"`
	Text    string      `json:"text"` // body text, heading line excluded
}

// ResumeDocument is a parsed resume: the raw text plus its ordered
// sections. It is constructed once per matching request and never
// mutated afterwards.
type ResumeDocument struct {
	RawText  string    `json:"raw_text"`
	Sections []Section `json:"sections"`
}

// SectionsOfKind returns the sections matching the given kind, in
// document order.
func (d *ResumeDocument) SectionsOfKind(kind SectionKind) []Section {
	var out []Section
	for _, s := range d.Sections {
		if s.Kind == kind {
			out = append(out, s)
		}
	}
	return out
}

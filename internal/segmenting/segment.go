// Package segmenting splits raw resume text into labeled sections using
// heading heuristics. It never fails: a resume with no recognizable
// headings degrades to a single Other section covering the whole text.
package segmenting

import (
	"strings"

	"github.com/jonathan/job-application-assistant/internal/types"
)

// DefaultHeadingMaxLen is the maximum length of a line that can qualify
// as a section heading. Body lines are typically longer.
const DefaultHeadingMaxLen = 40

// headingKeywords maps known heading phrases to section kinds. Matching
// is case-insensitive against the heading line with trailing punctuation
// stripped. Longer phrases are checked before shorter ones so that
// "work history" wins over a would-be "work" entry.
var headingKeywords = map[string]types.SectionKind{
	"experience":              types.KindExperience,
	"work experience":         types.KindExperience,
	"work history":            types.KindExperience,
	"employment":              types.KindExperience,
	"employment history":      types.KindExperience,
	"professional experience": types.KindExperience,
	"skills":                  types.KindSkills,
	"technical skills":        types.KindSkills,
	"technologies":            types.KindSkills,
	"competencies":            types.KindSkills,
	"core competencies":       types.KindSkills,
	"education":               types.KindEducation,
	"summary":                 types.KindSummary,
	"professional summary":    types.KindSummary,
	"objective":               types.KindSummary,
	"profile":                 types.KindSummary,
	"about":                   types.KindSummary,
	"about me":                types.KindSummary,
	"projects":                types.KindProjects,
	"portfolio":               types.KindProjects,
}

// Segmenter detects section headings with a configurable keyword table.
type Segmenter struct {
	keywords      map[string]types.SectionKind
	headingMaxLen int
}

// New returns a Segmenter using the default keyword table and heading
// length threshold.
func New() *Segmenter {
	return NewWithKeywords(headingKeywords, DefaultHeadingMaxLen)
}

// NewWithKeywords returns a Segmenter with a custom keyword table,
// e.g. for localized resumes. Keys must be lower-case; a nil table uses
// the default one.
func NewWithKeywords(keywords map[string]types.SectionKind, headingMaxLen int) *Segmenter {
	if keywords == nil {
		keywords = headingKeywords
	}
	if headingMaxLen <= 0 {
		headingMaxLen = DefaultHeadingMaxLen
	}
	return &Segmenter{keywords: keywords, headingMaxLen: headingMaxLen}
}

// Segment splits raw resume text into ordered, non-overlapping sections.
// Text before the first heading becomes an Other section; if no heading
// is detected at all, the entire text is one Other section.
func (s *Segmenter) Segment(rawText string) *types.ResumeDocument {
	doc := &types.ResumeDocument{RawText: rawText}

	lines := strings.Split(rawText, "\n")

	var sections []types.Section
	current := types.Section{Kind: types.KindOther}
	var body []string
	offset := 0

	flush := func(end int) {
		text := strings.TrimSpace(strings.Join(body, "\n"))
		// The leading Other span is dropped when empty; labeled sections
		// are kept even when their body is blank so section indexes
		// reflect the document structure.
		if text == "" && current.Heading == "" {
			body = body[:0]
			return
		}
		current.Index = len(sections)
		current.End = end
		current.Text = text
		sections = append(sections, current)
		body = body[:0]
	}

	for _, line := range lines {
		lineLen := len(line)
		if kind, ok := s.classifyHeading(line); ok {
			flush(offset)
			current = types.Section{
				Kind:    kind,
				Heading: strings.TrimSpace(line),
				Start:   offset + lineLen + 1,
			}
			offset += lineLen + 1
			continue
		}
		// Inline headings like "Skills: Python, Go" carry their body on
		// the heading line itself.
		if kind, heading, rest, ok := s.classifyInlineHeading(line); ok {
			flush(offset)
			current = types.Section{
				Kind:    kind,
				Heading: heading,
				Start:   offset,
			}
			body = append(body, rest)
			offset += lineLen + 1
			continue
		}
		body = append(body, line)
		offset += lineLen + 1
	}
	flush(len(rawText))

	if len(sections) == 0 {
		// No structure at all: the whole document is one Other section.
		sections = []types.Section{{
			Kind:  types.KindOther,
			Index: 0,
			Start: 0,
			End:   len(rawText),
			Text:  strings.TrimSpace(rawText),
		}}
	}

	doc.Sections = sections
	return doc
}

// classifyHeading reports whether a line is a standalone section heading
// and, if so, which kind it introduces.
func (s *Segmenter) classifyHeading(line string) (types.SectionKind, bool) {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" || len(trimmed) > s.headingMaxLen {
		return "", false
	}

	normalized := normalizeHeading(trimmed)
	kind, ok := s.keywords[normalized]
	return kind, ok
}

// classifyInlineHeading matches lines of the form "Skills: Python, Go"
// where the body follows the heading keyword on the same line.
func (s *Segmenter) classifyInlineHeading(line string) (kind types.SectionKind, heading, rest string, ok bool) {
	trimmed := strings.TrimSpace(line)
	colon := strings.Index(trimmed, ":")
	if colon <= 0 || colon > s.headingMaxLen {
		return "", "", "", false
	}

	normalized := normalizeHeading(trimmed[:colon])
	kind, ok = s.keywords[normalized]
	if !ok {
		return "", "", "", false
	}
	return kind, trimmed[:colon+1], strings.TrimSpace(trimmed[colon+1:]), true
}

// normalizeHeading lower-cases a candidate heading and strips decoration
// (trailing colons, underlines, markdown markers).
func normalizeHeading(heading string) string {
	heading = strings.ToLower(heading)
	heading = strings.TrimLeft(heading, "#*- \t")
	heading = strings.TrimRight(heading, ":;.-=_ \t")
	return strings.TrimSpace(heading)
}

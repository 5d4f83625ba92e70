// Package bullets extracts atomic achievement units from resume
// sections. Marker-prefixed lines are the primary signal; prose falls
// back to sentence splitting with short fragments merged forward.
package bullets

import (
	"regexp"
	"strings"

	"github.com/jonathan/job-application-assistant/internal/types"
)

// DefaultMinFragmentWords is the minimum word count for a sentence
// fragment to stand alone as a bullet. Shorter fragments are merged
// into the following fragment.
const DefaultMinFragmentWords = 4

// bulletMarkerRe matches leading list markers: -, •, *, · and numbered
// forms like "1." or "2)".
var bulletMarkerRe = regexp.MustCompile(`^\s*(?:[-•*·]|\d+[.)])\s+`)

// sentenceSplitRe breaks prose on sentence-ending periods and newlines.
var sentenceSplitRe = regexp.MustCompile(`(?:\.\s+|\.$|\n)`)

// Extractor splits section text into bullets.
type Extractor struct {
	minFragmentWords int
}

// NewExtractor returns an Extractor with the given fragment-merge
// threshold; values below 1 use the default.
func NewExtractor(minFragmentWords int) *Extractor {
	if minFragmentWords < 1 {
		minFragmentWords = DefaultMinFragmentWords
	}
	return &Extractor{minFragmentWords: minFragmentWords}
}

// ExtractAll extracts bullets from every bullet-source section of the
// document, in document order. Skills and Education sections are
// skipped; their content is auxiliary term signal only.
func (e *Extractor) ExtractAll(doc *types.ResumeDocument) []types.Bullet {
	var all []types.Bullet
	for _, section := range doc.Sections {
		if !section.Kind.IsBulletSource() {
			continue
		}
		all = append(all, e.Extract(section)...)
	}
	return all
}

// Extract splits one section into bullets. Sections whose kind is not a
// bullet source yield nothing.
func (e *Extractor) Extract(section types.Section) []types.Bullet {
	if !section.Kind.IsBulletSource() {
		return nil
	}

	units := splitOnMarkers(section.Text)
	if len(units) == 0 {
		units = e.splitOnSentences(section.Text)
	}

	bullets := make([]types.Bullet, 0, len(units))
	for _, unit := range units {
		text := strings.TrimSpace(unit)
		if text == "" {
			continue
		}
		position := len(bullets)
		bullets = append(bullets, types.Bullet{
			ID:           types.BulletID(section.Index, position),
			SectionIndex: section.Index,
			SectionKind:  section.Kind,
			Position:     position,
			Text:         text,
		})
	}
	return bullets
}

// splitOnMarkers returns one unit per marker-prefixed line, with
// continuation lines folded into the preceding unit. Returns nil when
// the text contains no markers at all.
func splitOnMarkers(text string) []string {
	lines := strings.Split(text, "\n")

	sawMarker := false
	var units []string
	for _, line := range lines {
		if bulletMarkerRe.MatchString(line) {
			sawMarker = true
			units = append(units, bulletMarkerRe.ReplaceAllString(line, ""))
			continue
		}
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}
		if len(units) > 0 {
			// Wrapped continuation of the previous bullet.
			units[len(units)-1] += " " + trimmed
		}
		// Prose before the first marker is dropped here; it is usually a
		// role title line and is not an achievement unit on its own.
	}

	if !sawMarker {
		return nil
	}
	return units
}

// splitOnSentences is the fallback for marker-free prose: split on
// sentence boundaries and merge fragments shorter than the word
// threshold into the following fragment.
func (e *Extractor) splitOnSentences(text string) []string {
	raw := sentenceSplitRe.Split(text, -1)

	var units []string
	carry := ""
	for _, fragment := range raw {
		fragment = strings.TrimSpace(fragment)
		if fragment == "" {
			continue
		}
		if carry != "" {
			fragment = carry + ". " + fragment
			carry = ""
		}
		if len(strings.Fields(fragment)) < e.minFragmentWords {
			carry = fragment
			continue
		}
		units = append(units, fragment)
	}
	if carry != "" {
		// Trailing short fragment: attach to the last unit rather than
		// dropping resume content.
		if len(units) > 0 {
			units[len(units)-1] += ". " + carry
		} else {
			units = append(units, carry)
		}
	}
	return units
}

// internal/utils/markdown.go
//
// The rich-text columns in NocoDB follow a house convention, not CommonMark:
// a top-level "# TITLE" line, "## Section" markers, and spec-sheet bullets of
// the form "- **Field:** Value". Extraction is best effort: anything that
// doesn't match the convention is skipped, and absent or malformed input
// yields an empty map, never an error.
package utils

import (
	"regexp"
	"strings"
)

var (
	mdTitle    = regexp.MustCompile(`(?m)^#\s+.+$`)
	mdSection  = regexp.MustCompile(`(?m)^##\s+`)
	mdBullet   = regexp.MustCompile(`^-\s+\*\*(.+?):\*\*\s+(.+)$`)
	mdHeader   = regexp.MustCompile(`(?m)^#+ `)
	mdBold     = regexp.MustCompile(`\*\*(.+?)\*\*`)
	mdItalic   = regexp.MustCompile(`\*(.+?)\*`)
	mdLink     = regexp.MustCompile(`\[(.+?)\]\(.+?\)`)
)

// ParseSections splits a markdown blob into section-title → body pairs,
// discarding the top-level "#" title. Sections with an empty title or body
// are dropped.
func ParseSections(markdown string) map[string]string {
	sections := make(map[string]string)
	if markdown == "" {
		return sections
	}

	text := strings.TrimSpace(dropTitle(markdown))
	for _, chunk := range mdSection.Split(text, -1) {
		if strings.TrimSpace(chunk) == "" {
			continue
		}
		lines := strings.Split(chunk, "\n")
		title := strings.TrimSpace(lines[0])
		body := strings.TrimSpace(strings.Join(lines[1:], "\n"))
		if title != "" && body != "" {
			sections[title] = body
		}
	}
	return sections
}

// ParseSpecSheet parses a spec-sheet blob into section → field → value.
// Within each "##" section only "- **Field:** Value" lines are read;
// free-form lines are ignored. Sections without any matching bullet are
// dropped.
func ParseSpecSheet(markdown string) map[string]map[string]string {
	sheet := make(map[string]map[string]string)
	if markdown == "" {
		return sheet
	}

	text := strings.TrimSpace(dropTitle(markdown))
	for _, chunk := range mdSection.Split(text, -1) {
		if strings.TrimSpace(chunk) == "" {
			continue
		}
		lines := strings.Split(chunk, "\n")
		section := strings.TrimSpace(lines[0])
		if section == "" {
			continue
		}

		fields := make(map[string]string)
		for _, line := range lines[1:] {
			if m := mdBullet.FindStringSubmatch(strings.TrimSpace(line)); m != nil {
				fields[strings.TrimSpace(m[1])] = strings.TrimSpace(m[2])
			}
		}
		if len(fields) > 0 {
			sheet[section] = fields
		}
	}
	return sheet
}

// StripMarkdown flattens basic markdown (headers, bold, italic, links) into
// plain text for card snippets.
func StripMarkdown(text string) string {
	if text == "" {
		return ""
	}
	s := mdHeader.ReplaceAllString(text, "")
	s = mdBold.ReplaceAllString(s, "$1")
	s = mdItalic.ReplaceAllString(s, "$1")
	s = mdLink.ReplaceAllString(s, "$1")
	return strings.TrimSpace(s)
}

// dropTitle removes the first top-level "# ..." line only; later "#" lines
// inside section bodies stay untouched.
func dropTitle(markdown string) string {
	if loc := mdTitle.FindStringIndex(markdown); loc != nil {
		return markdown[:loc[0]] + markdown[loc[1]:]
	}
	return markdown
}

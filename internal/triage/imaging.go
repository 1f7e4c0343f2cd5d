package triage

import "strings"

// ImagingClassifier flags narrative radiology/ultrasound reports for review.
// Imaging has no structured thresholds, so classification is a single
// normal/abnormal boolean; the Critical tier is never produced for imaging.
//
// The normal-phrase list is clinic configuration: report text that matches
// one of the phrases (case-insensitive, trailing punctuation ignored) is
// treated as normal-report boilerplate. With no phrases configured the
// classifier is conservative and flags any non-empty text.
type ImagingClassifier struct {
	normal map[string]struct{}
}

// DefaultNormalPhrases is a minimal boilerplate list used when the clinic
// has not supplied its own wording.
func DefaultNormalPhrases() []string {
	return []string{
		"no abnormality detected",
		"no abnormality seen",
		"normal study",
		"normal examination",
		"unremarkable",
	}
}

// NewImagingClassifier builds a classifier from the configured phrase list.
func NewImagingClassifier(phrases []string) *ImagingClassifier {
	c := &ImagingClassifier{normal: make(map[string]struct{}, len(phrases))}
	for _, p := range phrases {
		if key := normalizePhrase(p); key != "" {
			c.normal[key] = struct{}{}
		}
	}
	return c
}

// Abnormal reports whether the combined findings/impression text warrants
// review. Absent or empty text is never abnormal.
func (c *ImagingClassifier) Abnormal(findings, impression string) bool {
	for _, text := range []string{findings, impression} {
		key := normalizePhrase(text)
		if key == "" {
			continue
		}
		if _, ok := c.normal[key]; !ok {
			return true
		}
	}
	return false
}

func normalizePhrase(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	return strings.TrimRight(s, " .!")
}

package quote

import "strings"

// tagSeparator joins tags in storage and in the edit form.
const tagSeparator = ", "

// ParseTags splits a comma-separated tag string. Entries are trimmed and
// empty ones dropped; the result is never nil.
func ParseTags(raw string) []string {
	return NormalizeTags(strings.Split(raw, ","))
}

// NormalizeTags trims every tag and drops empty ones, keeping order.
func NormalizeTags(tags []string) []string {
	out := make([]string, 0, len(tags))
	for _, tag := range tags {
		tag = strings.TrimSpace(tag)
		if tag == "" {
			continue
		}
		out = append(out, tag)
	}
	return out
}

// FormatTags joins tags the way they are stored and shown.
func FormatTags(tags []string) string {
	return strings.Join(tags, tagSeparator)
}

// Normalize trims text and author and normalizes tags.
func Normalize(in Input) Input {
	return Input{
		Text:   strings.TrimSpace(in.Text),
		Author: strings.TrimSpace(in.Author),
		Tags:   NormalizeTags(in.Tags),
	}
}

// ValidateInput validates fields required to create or update a quote.
func ValidateInput(in Input) error {
	if strings.TrimSpace(in.Text) == "" {
		return &ValidationError{Field: "text", Reason: "must not be empty"}
	}
	return nil
}

// ValidateID rejects ids that can't name a stored quote.
func ValidateID(id int64) error {
	if id <= 0 {
		return &ValidationError{Field: "id", Reason: "must be a positive integer"}
	}
	return nil
}

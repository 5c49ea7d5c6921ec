package fetcher

import "strings"

const (
	transcriptLabel = "TRANSCRIPT:"
	summaryMarker   = "SUMMARY:"
	noSummary       = "No summary available"
)

// Enricher produces the raw transcript-and-summary text for a video.
type Enricher interface {
	Generate(videoURL string) (string, error)
}

// parseTranscript splits a completion response into its transcript and
// summary sections. The response is expected to hold a transcript, the
// literal SUMMARY: marker, and a summary. Without the marker the whole
// response (minus the leading label) becomes the transcript.
func parseTranscript(raw string) (transcript, summary string) {
	before, after, found := strings.Cut(raw, summaryMarker)
	transcript = strings.TrimSpace(strings.ReplaceAll(before, transcriptLabel, ""))
	if !found {
		return transcript, noSummary
	}
	return transcript, strings.TrimSpace(after)
}

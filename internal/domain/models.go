package domain

// Domain contains core models shared by the crawler, extractor and sinks.

// ContentType labels the kind of document a page holds.
type ContentType string

const (
	ContentTypeBlog              ContentType = "blog"
	ContentTypePodcastTranscript ContentType = "podcast_transcript"
	ContentTypeCallTranscript    ContentType = "call_transcript"
	ContentTypeLinkedInPost      ContentType = "linkedin_post"
	ContentTypeRedditComment     ContentType = "reddit_comment"
	ContentTypeBook              ContentType = "book"
)

// ContentTypes lists every label in declaration order.
func ContentTypes() []ContentType {
	return []ContentType{
		ContentTypeBlog,
		ContentTypePodcastTranscript,
		ContentTypeCallTranscript,
		ContentTypeLinkedInPost,
		ContentTypeRedditComment,
		ContentTypeBook,
	}
}

// Valid reports whether c is one of the known labels.
func (c ContentType) Valid() bool {
	for _, known := range ContentTypes() {
		if c == known {
			return true
		}
	}
	return false
}

// ExtractionRecord is the cleaned content of one page.
type ExtractionRecord struct {
	Title       string      `json:"title"`
	Content     string      `json:"content"`
	ContentType ContentType `json:"content_type"`
	SourceURL   string      `json:"source_url"`
}

// ScrapeResult aggregates every record extracted from one site.
type ScrapeResult struct {
	Site  string             `json:"site"`
	Items []ExtractionRecord `json:"items"`
}

package inline

// Segment is one formatting-homogeneous piece of a line: its text, its
// emphasis, and the link target when the text was a link label.
type Segment struct {
	Text     string
	Emphasis Emphasis
	Href     string
}

// IsLink reports whether the segment carries a link.
func (s Segment) IsLink() bool {
	return s.Href != ""
}

// IsPlain reports whether the segment has neither emphasis nor a link.
func (s Segment) IsPlain() bool {
	return s.Emphasis == EmphasisNone && !s.IsLink()
}

// Parse returns the segments of a line in source order. Every run produced
// by Tokenize is re-scanned for links; link parts inherit the run's emphasis.
func Parse(text string) []Segment {
	runs := Tokenize(text)
	segments := make([]Segment, 0, len(runs))

	for _, run := range runs {
		for _, part := range ExtractLinks(run.Text) {
			segments = append(segments, Segment{
				Text:     part.Text,
				Emphasis: run.Emphasis,
				Href:     part.Href,
			})
		}
	}

	return segments
}

// PlainText concatenates segment text, dropping all formatting.
func PlainText(segments []Segment) string {
	size := 0
	for _, seg := range segments {
		size += len(seg.Text)
	}
	buf := make([]byte, 0, size)
	for _, seg := range segments {
		buf = append(buf, seg.Text...)
	}
	return string(buf)
}

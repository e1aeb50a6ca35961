package kernel

import "strings"

// Span is a fragment of info text. Accent spans render in the main color.
type Span struct {
	Text   string
	Accent bool
}

// Line is one rendered row of info text.
type Line []Span

// Info is the text shown in the module information panel.
type Info struct {
	Lines []Line
	// Raw is the unstyled text, used for clipboard copies and error checks.
	Raw string
}

// LineCount returns the number of rows in the info text.
func (i Info) LineCount() int {
	return len(i.Lines)
}

// String flattens the spans back into plain text.
func (i Info) String() string {
	rows := make([]string, len(i.Lines))
	for n, line := range i.Lines {
		var b strings.Builder
		for _, span := range line {
			b.WriteString(span.Text)
		}
		rows[n] = b.String()
	}
	return strings.Join(rows, "\n")
}

// StylizeData splits every line at the first delimiter. The text up to and
// including the delimiter becomes an accent span, the rest a plain span.
func StylizeData(data, delimiter string) Info {
	info := Info{Raw: data}
	if data == "" {
		return info
	}
	for _, row := range strings.Split(data, "\n") {
		key, value, found := strings.Cut(row, delimiter)
		if !found || delimiter == "" {
			info.Lines = append(info.Lines, Line{{Text: row}})
			continue
		}
		info.Lines = append(info.Lines, Line{
			{Text: key + delimiter, Accent: true},
			{Text: value},
		})
	}
	return info
}

// textLines turns a block of text into lines sharing one accent flag.
func textLines(text string, accent bool) []Line {
	rows := strings.Split(text, "\n")
	lines := make([]Line, len(rows))
	for i, row := range rows {
		lines[i] = Line{{Text: row, Accent: accent}}
	}
	return lines
}

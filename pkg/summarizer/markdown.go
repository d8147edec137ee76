package summarizer

import (
	"fmt"
	"strings"
	"time"
)

// Translator translates a label.
type Translator func(key string) string

// MarkdownFormatter renders a Summary as a Markdown report.
type MarkdownFormatter struct {
	translate Translator
	version   string
}

// MarkdownOption configures a MarkdownFormatter.
type MarkdownOption func(*MarkdownFormatter)

// WithTranslator sets the label translator.
func WithTranslator(t Translator) MarkdownOption {
	return func(f *MarkdownFormatter) {
		f.translate = t
	}
}

// WithVersion adds the tool version to the footer.
func WithVersion(v string) MarkdownOption {
	return func(f *MarkdownFormatter) {
		f.version = v
	}
}

// NewMarkdownFormatter creates a new MarkdownFormatter.
func NewMarkdownFormatter(opts ...MarkdownOption) *MarkdownFormatter {
	f := &MarkdownFormatter{
		translate: func(key string) string { return key },
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Format implements Formatter.
func (f *MarkdownFormatter) Format(s *Summary) string {
	t := f.translate
	var b strings.Builder

	fmt.Fprintf(&b, "# %s\n\n", t("Frame Export Summary"))

	fmt.Fprintf(&b, "## %s\n\n", t("Input"))
	fmt.Fprintf(&b, "| %s | %s |\n|---|---|\n", t("Item"), t("Value"))
	row(&b, t("Video"), s.Input.Path)
	if s.Input.Width > 0 && s.Input.Height > 0 {
		row(&b, t("Resolution"), fmt.Sprintf("%dx%d", s.Input.Width, s.Input.Height))
	}
	if s.Input.Codec != "" {
		row(&b, t("Codec"), s.Input.Codec)
	}
	if s.Input.Backend != "" {
		row(&b, t("Backend"), s.Input.Backend)
	}
	row(&b, t("Frame Rate"), optional(s.Input.FrameRate > 0, fmt.Sprintf("%.2f fps", s.Input.FrameRate), t))
	row(&b, t("Total Frames"), optional(s.Input.TotalFrames > 0, fmt.Sprintf("%d", s.Input.TotalFrames), t))
	b.WriteString("\n")

	fmt.Fprintf(&b, "## %s\n\n", t("Settings"))
	fmt.Fprintf(&b, "| %s | %s |\n|---|---|\n", t("Item"), t("Value"))
	row(&b, t("Output Directory"), s.Settings.OutputDir)
	row(&b, t("Step"), fmt.Sprintf("%d", s.Settings.Step))
	row(&b, t("Format"), s.Settings.Format)
	if s.Settings.Quality > 0 {
		row(&b, t("Quality"), fmt.Sprintf("%d", s.Settings.Quality))
	}
	if s.Settings.Width > 0 {
		row(&b, t("Resize Width"), fmt.Sprintf("%d px", s.Settings.Width))
	}
	b.WriteString("\n")

	fmt.Fprintf(&b, "## %s\n\n", t("Result"))
	fmt.Fprintf(&b, "| %s | %s |\n|---|---|\n", t("Item"), t("Value"))
	row(&b, t("Frames Read"), fmt.Sprintf("%d", s.Result.FramesRead))
	row(&b, t("Frames Written"), fmt.Sprintf("%d", s.Result.FramesWritten))
	row(&b, t("Elapsed"), s.Result.Elapsed.Round(time.Millisecond).String())
	row(&b, t("Throughput"), fmt.Sprintf("%.2f fps", s.Result.Throughput))
	if s.Result.Stop != "" {
		row(&b, t("Stopped By"), t(s.Result.Stop))
	}
	if s.Result.LastFile != "" {
		row(&b, t("Last File"), s.Result.LastFile)
	}
	if s.Result.ReadError != "" {
		row(&b, t("Read Error"), s.Result.ReadError)
	}
	if s.Result.Error != "" {
		row(&b, t("Error"), s.Result.Error)
	}
	b.WriteString("\n")

	b.WriteString("---\n\n")
	footer := fmt.Sprintf("%s: %s · %s: %s", t("Run ID"), s.RunID, t("Generated"), s.GeneratedAt.Format(time.RFC3339))
	if f.version != "" {
		footer += " · vidframes " + f.version
	}
	b.WriteString(footer + "\n")

	return b.String()
}

func row(b *strings.Builder, key, value string) {
	fmt.Fprintf(b, "| %s | %s |\n", key, escapeCell(value))
}

func optional(ok bool, value string, t Translator) string {
	if ok {
		return value
	}
	return t("unknown")
}

func escapeCell(s string) string {
	return strings.ReplaceAll(s, "|", `\|`)
}

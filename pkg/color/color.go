package color

import (
	"io"

	"github.com/muesli/termenv"
)

// palette maps each kind of text to a foreground colour
type palette struct {
	prompt termenv.Color
	err    termenv.Color
	info   termenv.Color
}

var (
	normalPalette = palette{
		prompt: termenv.ANSIGreen,
		err:    termenv.ANSIRed,
		info:   termenv.ANSICyan,
	}

	highContrastPalette = palette{
		prompt: termenv.ANSIBrightWhite,
		err:    termenv.ANSIBrightRed,
		info:   termenv.ANSIBrightWhite,
	}
)

// Theme renders interpreter text for one output. The colour profile comes
// from the output itself, so pipes, files and NO_COLOR get plain text.
type Theme struct {
	out          *termenv.Output
	highContrast bool
}

// NewTheme creates a theme for w
func NewTheme(w io.Writer, opts ...termenv.OutputOption) *Theme {
	return &Theme{out: termenv.NewOutput(w, opts...)}
}

// EnableColor forces plain text when enable is false
func (t *Theme) EnableColor(enable bool) {
	if !enable {
		t.out.Profile = termenv.Ascii
		return
	}
	t.out.Profile = t.out.EnvColorProfile()
}

func (t *Theme) IsColorEnabled() bool {
	return t.out.Profile != termenv.Ascii
}

// SetHighContrast switches between the normal and high contrast palettes
func (t *Theme) SetHighContrast(on bool) {
	t.highContrast = on
}

func (t *Theme) HighContrast() bool {
	return t.highContrast
}

func (t *Theme) palette() palette {
	if t.highContrast {
		return highContrastPalette
	}
	return normalPalette
}

// Colorize paints text with c, or returns it untouched without colour support
func (t *Theme) Colorize(c termenv.Color, text string) string {
	if t.out.Profile == termenv.Ascii {
		return text
	}
	return t.out.String(text).Foreground(t.out.Convert(c)).String()
}

func (t *Theme) Prompt(text string) string {
	return t.Colorize(t.palette().prompt, text)
}

func (t *Theme) Error(text string) string {
	return t.Colorize(t.palette().err, text)
}

func (t *Theme) Info(text string) string {
	return t.Colorize(t.palette().info, text)
}

func (t *Theme) Bold(text string) string {
	if t.out.Profile == termenv.Ascii {
		return text
	}
	return t.out.String(text).Bold().String()
}

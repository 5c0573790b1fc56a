package console

import (
	_ "embed"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// bannerArt is the ASCII art shown at startup.
//
//go:embed banner.txt
var bannerArt string

const (
	// borderWidth is the width of the banner borders.
	borderWidth = 80

	// tagline is printed under the banner art.
	tagline = "Stay aware of the minimap - for bad players only :)"

	// usageText lists the commands the console understands.
	usageText = `Available commands:
   -v <volume (0-100%)>
   -d <delay (s)>
   -s <sound_file.ext>
   pause
   resume
   quit`

	// prompt precedes every command read.
	prompt = "> "
)

// Console output styles.
//
//nolint:gochecknoglobals // Immutable render configuration.
var (
	borderStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("220"))
	artStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	taglineStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("51")).Bold(true)
	usageStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("40")).Bold(true)
	warningStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	farewellStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("220")).Bold(true)
)

// printBanner writes the welcome banner: borders, art, tagline and a hint
// naming the settings file.
func printBanner(w io.Writer, settingsPath string) {
	_, _ = fmt.Fprintln(w, borderStyle.Render(strings.Repeat("#", borderWidth)))
	_, _ = fmt.Fprintln(w, artStyle.Render(strings.TrimRight(bannerArt, "\n")))
	_, _ = fmt.Fprintln(w, taglineStyle.Render(tagline))
	_, _ = fmt.Fprintln(w, borderStyle.Render(strings.Repeat("-", borderWidth)))
	_, _ = fmt.Fprintf(w, "\nUsage: set the sound file (wav, mp3, flac or ogg) to play in %s.\n\n", settingsPath)
}

// printUsage writes the command reference.
func printUsage(w io.Writer) {
	_, _ = fmt.Fprintln(w, usageStyle.Render(usageText))
	_, _ = fmt.Fprintln(w)
}

// printWarning writes a styled warning line.
func printWarning(w io.Writer, message string) {
	_, _ = fmt.Fprintln(w, warningStyle.Render("⚠️  "+message))
}

// printFarewell writes the exit message.
func printFarewell(w io.Writer) {
	_, _ = fmt.Fprintln(w, farewellStyle.Render("Exiting program."))
}

// printPrompt writes the command prompt without a trailing newline.
func printPrompt(w io.Writer) {
	_, _ = fmt.Fprint(w, prompt)
}

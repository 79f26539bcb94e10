package ui

import "github.com/charmbracelet/lipgloss"

// Color palette.
var (
	ColorSuccess   = lipgloss.Color("#00D26A") // green  — resolved, success
	ColorWarning   = lipgloss.Color("#FFB800") // yellow — skipped candidate, warning
	ColorError     = lipgloss.Color("#FF4444") // red    — unavailable, error
	ColorAddress   = lipgloss.Color("#00B4D8") // cyan   — addresses, hashes
	ColorValue     = lipgloss.Color("#FFFFFF") // white bold — URIs, values
	ColorMeta      = lipgloss.Color("#555555") // dim gray  — timestamps, metadata
	ColorGateway   = lipgloss.Color("#9B5DE5") // purple    — gateway names
	ColorHighlight = lipgloss.Color("#F15BB5") // pink      — selected rows
)

// Base styles.
var (
	StyleSuccess = lipgloss.NewStyle().Foreground(ColorSuccess).Bold(true)
	StyleWarning = lipgloss.NewStyle().Foreground(ColorWarning).Bold(true)
	StyleError   = lipgloss.NewStyle().Foreground(ColorError).Bold(true)
	StyleAddress = lipgloss.NewStyle().Foreground(ColorAddress)
	StyleValue   = lipgloss.NewStyle().Foreground(ColorValue).Bold(true)
	StyleMeta    = lipgloss.NewStyle().Foreground(ColorMeta)
	StyleGateway = lipgloss.NewStyle().Foreground(ColorGateway).Bold(true)

	StyleHeader = lipgloss.NewStyle().
			Foreground(ColorHighlight).
			Bold(true).
			Underline(true)

	StyleSelected = lipgloss.NewStyle().
			Background(ColorHighlight).
			Foreground(lipgloss.Color("#000000")).
			Bold(true)

	StyleTitle = lipgloss.NewStyle().
			Foreground(ColorGateway).
			Bold(true).
			MarginBottom(1)
)

// Success formats a success message.
func Success(msg string) string { return StyleSuccess.Render("✓ " + msg) }

// Warn formats a warning message.
func Warn(msg string) string { return StyleWarning.Render("⚠ " + msg) }

// Err formats an error message.
func Err(msg string) string { return StyleError.Render("✗ " + msg) }

// Addr formats an address.
func Addr(a string) string { return StyleAddress.Render(a) }

// Val formats a value.
func Val(v string) string { return StyleValue.Render(v) }

// Meta formats metadata text.
func Meta(m string) string { return StyleMeta.Render(m) }

// Gateway formats a gateway endpoint.
func Gateway(g string) string { return StyleGateway.Render(g) }

// TruncateURI shortens a long URI for display: https://ipfs.io/ipfs/Qm12…/9.json.
func TruncateURI(uri string, max int) string {
	if max < 8 || len(uri) <= max {
		return uri
	}
	head := (max - 1) * 2 / 3
	tail := max - 1 - head
	return uri[:head] + "…" + uri[len(uri)-tail:]
}

package render

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/oshokin/mission-console/internal/domain/mdb"
	"github.com/oshokin/mission-console/internal/view/cmdhist"
)

// Theme is the color palette of the console. Colors are ANSI 256 codes.
type Theme struct {
	// Text colors.
	NormalText lipgloss.Color
	FaintText  lipgloss.Color

	// UI chrome.
	HeaderForeground lipgloss.Color
	BorderColor      lipgloss.Color

	// Alarm level colors, from watch to severe.
	LevelWatch    lipgloss.Color
	LevelWarning  lipgloss.Color
	LevelDistress lipgloss.Color
	LevelCritical lipgloss.Color
	LevelSevere   lipgloss.Color

	// Command completion colors.
	CompletionPending lipgloss.Color
	CompletionOK      lipgloss.Color
	CompletionFailed  lipgloss.Color
}

// DefaultTheme is used by the console commands.
var DefaultTheme = Theme{
	NormalText: lipgloss.Color("252"),
	FaintText:  lipgloss.Color("243"),

	HeaderForeground: lipgloss.Color("75"),
	BorderColor:      lipgloss.Color("240"),

	LevelWatch:    lipgloss.Color("153"),
	LevelWarning:  lipgloss.Color("220"),
	LevelDistress: lipgloss.Color("214"),
	LevelCritical: lipgloss.Color("202"),
	LevelSevere:   lipgloss.Color("196"),

	CompletionPending: lipgloss.Color("243"),
	CompletionOK:      lipgloss.Color("71"),
	CompletionFailed:  lipgloss.Color("196"),
}

// LevelColor returns the color of an alarm level. Unknown and normal levels
// use NormalText.
func (theme Theme) LevelColor(level mdb.AlarmLevel) lipgloss.Color {
	switch level {
	case mdb.LevelWatch:
		return theme.LevelWatch
	case mdb.LevelWarning:
		return theme.LevelWarning
	case mdb.LevelDistress:
		return theme.LevelDistress
	case mdb.LevelCritical:
		return theme.LevelCritical
	case mdb.LevelSevere:
		return theme.LevelSevere
	default:
		return theme.NormalText
	}
}

// CompletionColor returns the color of a command completion state.
func (theme Theme) CompletionColor(completion string) lipgloss.Color {
	switch completion {
	case cmdhist.CompletionCompleted:
		return theme.CompletionOK
	case cmdhist.CompletionFailed:
		return theme.CompletionFailed
	default:
		return theme.CompletionPending
	}
}

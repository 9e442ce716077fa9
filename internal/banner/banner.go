package banner

import (
	"loadcmp/internal/tui/styles"

	"github.com/charmbracelet/lipgloss"
)

func GetString() string {
	renderer := lipgloss.DefaultRenderer()

	style := renderer.NewStyle().
		Foreground(styles.ColorBanner).
		Bold(true)

	ascii := `
    __                __
   / /___  ____ _____/ /________ ___  ____
  / / __ \/ __ '/ __  / ___/ __ '__ \/ __ \
 / / /_/ / /_/ / /_/ / /__/ / / / / / /_/ /
/_/\____/\__,_/\__,_/\___/_/ /_/ /_/ .___/
                                  /_/      `

	return "\n" + style.Render(ascii) + "\n"
}

// internal/platform/ui/colors.go
package ui

import "github.com/pterm/pterm"

// Paleta "onça": ocre del pelaje del jaguar y azul de río para lo activo.
var (
	// Ochre - títulos y banner
	Ochre = pterm.NewRGB(214, 140, 46)

	// River - nombres de fuentes
	River = pterm.NewRGB(0, 170, 200)
)

// Estilos por estado; con colores ANSI básicos para terminales sin truecolor.
var (
	StyleSuccess   = pterm.NewStyle(pterm.FgGreen)
	StyleWarning   = pterm.NewStyle(pterm.FgYellow)
	StyleError     = pterm.NewStyle(pterm.FgRed)
	StyleSecondary = pterm.NewStyle(pterm.FgGray)
	StyleActive    = pterm.NewStyle(pterm.FgCyan)
)

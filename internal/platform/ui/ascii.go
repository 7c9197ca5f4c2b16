// internal/platform/ui/ascii.go
package ui

// Banners del header principal

// BannerCompact - banner para terminales anchas
const BannerCompact = `
 ██████╗ ███╗   ██╗ ██████╗ █████╗
██╔═══██╗████╗  ██║██╔════╝██╔══██╗
██║   ██║██╔██╗ ██║██║     ███████║
██║   ██║██║╚██╗██║██║     ██╔══██║
╚██████╔╝██║ ╚████║╚██████╗██║  ██║
 ╚═════╝ ╚═╝  ╚═══╝ ╚═════╝╚═╝  ╚═╝
   web asset discovery
`

// BannerMinimal - banner para terminales estrechas
const BannerMinimal = `
ONCA · web asset discovery
`

// GetBanner retorna el banner apropiado según el ancho del terminal
func GetBanner(terminalWidth int) string {
	if terminalWidth < 60 {
		return BannerMinimal
	}
	return BannerCompact
}

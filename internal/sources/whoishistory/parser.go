// internal/sources/whoishistory/parser.go
package whoishistory

import (
	"strings"

	"github.com/PuerkitoBio/goquery"

	"onca/internal/core/domain"
	"onca/internal/platform/validator"
	"onca/internal/sources/common"
)

// pass es una zona de extracción de la página whois.
type pass struct {
	name    string
	extract func(doc *goquery.Document, domainName string, results *domain.ResultSet)
}

// extractHistoryLinks: enlaces absolutos de la sección de historial que mencionan el dominio.
func extractHistoryLinks(doc *goquery.Document, domainName string, results *domain.ResultSet) {
	doc.Find("#whois-history a[href]").Each(func(_ int, a *goquery.Selection) {
		href := strings.TrimSpace(a.AttrOr("href", ""))
		if !strings.HasPrefix(href, "http") || !strings.Contains(href, domainName) {
			return
		}
		if asset, err := domain.NewURLAsset(href); err == nil {
			results.AddAsset(asset)
		}
	})
}

// extractDNSServers: segunda columna de la tabla de servidores (cabecera omitida).
func extractDNSServers(doc *goquery.Document, domainName string, results *domain.ResultSet) {
	table := doc.Find("table#servers-table").First()
	common.DataRows(table).Each(func(_ int, row *goquery.Selection) {
		cells := common.CellTexts(row)
		if len(cells) < 2 || !validator.ContainsDomain(cells[1], domainName) {
			return
		}
		if asset, err := domain.NewDNSHostAsset(cells[1]); err == nil {
			results.AddAsset(asset)
		}
	})
}

// mxExtractor: primera tabla tras el encabezado de registros MX.
func mxExtractor(heading string) func(*goquery.Document, string, *domain.ResultSet) {
	return func(doc *goquery.Document, domainName string, results *domain.ResultSet) {
		table := tableAfterHeading(doc, heading)
		if table == nil {
			return
		}
		common.DataRows(table).Each(func(_ int, row *goquery.Selection) {
			cells := common.CellTexts(row)
			if len(cells) < 2 {
				return
			}
			host := strings.TrimSuffix(cells[1], ".")
			if !validator.ContainsDomain(host, domainName) {
				return
			}
			if asset, err := domain.NewMailExchangeAsset(host); err == nil {
				results.AddAsset(asset)
			}
		})
	}
}

// tableAfterHeading recorre encabezados y tablas en orden de documento y
// devuelve la primera tabla posterior a un encabezado que contenga heading.
func tableAfterHeading(doc *goquery.Document, heading string) *goquery.Selection {
	var (
		found bool
		table *goquery.Selection
	)
	doc.Find("h1, h2, h3, h4, h5, h6, table").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		if goquery.NodeName(s) == "table" {
			if found {
				table = s
				return false
			}
			return true
		}
		if headingMatches(s.Text(), heading) {
			found = true
		}
		return true
	})
	return table
}

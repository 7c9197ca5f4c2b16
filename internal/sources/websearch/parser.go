// internal/sources/websearch/parser.go
package websearch

import (
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"onca/internal/core/domain"
	"onca/internal/platform/validator"
)

// resultSelector selecciona los enlaces de resultado que pasan por el redirector.
const resultSelector = `a[href^="/url?q="]`

// extractResults devuelve las URLs de resultado cuyo host contiene domain.
func extractResults(doc *goquery.Document, domainName string) *domain.ResultSet {
	results := domain.NewResultSet()

	doc.Find(resultSelector).Each(func(_ int, a *goquery.Selection) {
		href, _ := a.Attr("href")
		candidate, ok := unwrapRedirect(href)
		if !ok {
			return
		}

		asset, err := domain.NewURLAsset(candidate)
		if err != nil {
			return
		}
		if !validator.ContainsDomain(validator.HostOf(asset.String()), domainName) {
			return
		}
		results.AddAsset(asset)
	})

	return results
}

// unwrapRedirect extrae el destino real del parámetro q de /url?q=...
// Se decodifica con PathUnescape: un '+' literal del destino no es un espacio.
func unwrapRedirect(href string) (string, bool) {
	_, rawQuery, found := strings.Cut(href, "?")
	if !found {
		return "", false
	}

	for _, pair := range strings.Split(rawQuery, "&") {
		value, ok := strings.CutPrefix(pair, "q=")
		if !ok {
			continue
		}
		target, err := url.PathUnescape(value)
		if err != nil {
			return "", false
		}
		return target, target != ""
	}
	return "", false
}

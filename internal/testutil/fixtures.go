// internal/testutil/fixtures.go
package testutil

// Fixture data para tests (valores primitivos solamente, sin dependencias de domain)

// FixtureDomains contiene dominios de prueba válidos.
var FixtureDomains = []string{
	"example.com",
	"test.example.com",
	"subdomain.example.com",
}

// FixtureInvalidDomains contiene dominios inválidos.
var FixtureInvalidDomains = []string{
	"",
	"not a domain",
	"192.168.1.1",
	"2001:db8::1",
	"-invalid.com",
	"invalid-.com",
	".example.com",
	"example..com",
}

// ArchiveCDXResponse es una respuesta CDX con cabecera y una captura.
const ArchiveCDXResponse = `[["urlkey","timestamp","original","mimetype","statuscode","digest","length"],` +
	`["20200101","20200101000000","https://example.com/page1","text/html","200","abc","100"]]`

// ArchiveCDXMixed incluye filas malformadas que deben ignorarse.
const ArchiveCDXMixed = `[["urlkey","timestamp","original","mimetype","statuscode","digest","length"],` +
	`["com,example)/","20200101000000","https://example.com/","text/html","200","a","1"],` +
	`["short"],` +
	`{"not":"a row"},` +
	`["com,example)/x","20200101000000","not a url","text/html","200","b","1"],` +
	`["com,example)/y","20200101000000",42,"text/html","200","c","1"],` +
	`["com,example)/","20210101000000","https://example.com/","text/html","200","a","1"],` +
	`["com,example)/z","20200101000000","http://www.example.com/z?a=1","text/html","200","d","1"]]`

// WebSearchPage es una página de resultados con enlaces envueltos en /url?q=.
const WebSearchPage = `<html><body>
<div id="search">
  <a href="/url?q=https://example.com/about&amp;sa=U&amp;ved=abc">About</a>
  <a href="/url?q=https://blog.example.com/post%3Fid%3D7&amp;sa=U">Post</a>
  <a href="/url?q=https://other.org/example.com&amp;sa=U">Elsewhere</a>
  <a href="/url?q=not-a-url&amp;sa=U">Broken</a>
  <a href="https://example.com/direct">Direct link</a>
  <a href="/url?q=https://example.com/about&amp;sa=U&amp;ved=def">About again</a>
</div>
</body></html>`

// WhoisHistoryPage contiene las tres zonas que explota el adaptador whois-history.
const WhoisHistoryPage = `<html><body>
<div id="whois-history">
  <a href="https://example.com/history/2019">2019</a>
  <a href="http://archive.example.com/snap">snapshot</a>
  <a href="/relative/example.com">relative</a>
  <a href="https://unrelated.org/">unrelated</a>
</div>
<table id="servers-table">
  <tr><th>Name</th><th>Server</th></tr>
  <tr><td>ns1</td><td>ns1.example.com</td></tr>
  <tr><td>ns2</td><td>ns2.dnsprovider.net</td></tr>
  <tr><td>broken</td></tr>
</table>
<h4>MX Records</h4>
<table>
  <tr><th>Priority</th><th>Host</th></tr>
  <tr><td>10</td><td>mail.example.com.</td></tr>
  <tr><td>20</td><td>mx.thirdparty.net.</td></tr>
</table>
<h4>Other</h4>
<table>
  <tr><th>A</th><th>B</th></tr>
  <tr><td>1</td><td>ignored.example.com</td></tr>
</table>
</body></html>`

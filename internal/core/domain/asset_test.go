// internal/core/domain/asset_test.go
package domain

import (
	"errors"
	"testing"

	"onca/internal/testutil"
)

func TestNewURLAsset(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		want    string
		wantErr bool
	}{
		{"plain", "https://example.com/page1", "https://example.com/page1", false},
		{"trimmed", "  http://example.com/a?b=c ", "http://example.com/a?b=c", false},
		{"inner space kept", "https://example.com/my page.html", "https://example.com/my page.html", false},
		{"missing scheme", "example.com/page", "", true},
		{"missing host", "https:///path", "", true},
		{"empty", "", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a, err := NewURLAsset(tt.raw)
			if tt.wantErr {
				testutil.AssertTrue(t, errors.Is(err, ErrInvalidAsset), "invalid asset error")
				return
			}
			testutil.AssertNoError(t, err, "valid url")
			testutil.AssertEqual(t, a.Kind(), AssetURL, "kind")
			testutil.AssertEqual(t, a.String(), tt.want, "rendered")
		})
	}
}

func TestNewDNSHostAsset(t *testing.T) {
	a, err := NewDNSHostAsset("NS1.Example.com")

	testutil.AssertNoError(t, err, "valid host")
	testutil.AssertEqual(t, a.Kind(), AssetDNSHost, "kind")
	testutil.AssertEqual(t, a.Value(), "ns1.example.com", "value")
	testutil.AssertEqual(t, a.String(), "https://ns1.example.com", "synthetic web scheme")

	_, err = NewDNSHostAsset("not a host")
	testutil.AssertError(t, err, "spaces rejected")
}

func TestNewMailExchangeAsset(t *testing.T) {
	a, err := NewMailExchangeAsset("mail.example.com.")

	testutil.AssertNoError(t, err, "valid mx")
	testutil.AssertEqual(t, a.Kind(), AssetMailExchange, "kind")
	testutil.AssertEqual(t, a.String(), "mx://mail.example.com", "trailing dot stripped")

	_, err = NewMailExchangeAsset("   ")
	testutil.AssertError(t, err, "blank rejected")
}

func TestAssetKind_String(t *testing.T) {
	testutil.AssertEqual(t, AssetURL.String(), "url", "url kind")
	testutil.AssertEqual(t, AssetDNSHost.String(), "dns-host", "dns kind")
	testutil.AssertEqual(t, AssetMailExchange.String(), "mail-exchange", "mx kind")
	testutil.AssertEqual(t, AssetKind(99).String(), "unknown", "unknown kind")
}

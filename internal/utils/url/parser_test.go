package urlutil

import "testing"

func TestValidate(t *testing.T) {
	valid := []string{
		"http://example.com",
		"https://www.amazon.com/dp/B0TEST",
	}
	for _, u := range valid {
		if err := ValidateURL(u); err != nil {
			t.Fatalf("expected valid, got error: %v", err)
		}
	}

	invalid := []string{"ftp://example.com", "//example.com", "http:///"}
	for _, u := range invalid {
		if err := ValidateURL(u); err == nil {
			t.Fatalf("expected invalid for %s", u)
		}
	}
}

func TestStoreID(t *testing.T) {
	cases := map[string]string{
		"https://www.amazon.com/dp/B0TEST":               "amazon",
		"https://smile.amazon.com/dp/B0TEST":             "amazon",
		"https://www.newegg.com/p/N82E16814137632":       "newegg",
		"https://WWW.BestBuy.com/site/sku/123.p":         "bestbuy",
		"https://www.bhphotovideo.com/c/product/1.html":  "bhphotovideo",
		"https://newegg.com/p/123":                       "newegg",
		"https://www.microcenter.com:443/product/1/name": "microcenter",
	}
	for in, want := range cases {
		got, err := StoreID(in)
		if err != nil {
			t.Fatalf("StoreID(%q) returned error: %v", in, err)
		}
		if got != want {
			t.Errorf("StoreID(%q) = %q, want %q", in, got, want)
		}
	}

	for _, bad := range []string{"not a url", "https://localhost/x", "::"} {
		if _, err := StoreID(bad); err == nil {
			t.Errorf("expected error for %q", bad)
		}
	}
}

package resolver

import (
	"fmt"
	"strings"
	"testing"
)

func TestFunc_Resolve(t *testing.T) {
	r := Func(func(rc Context) (string, error) {
		return "https://example.com/" + rc.Package, nil
	})
	url, err := r.Resolve(Context{Package: "lodash"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if url != "https://example.com/lodash" {
		t.Errorf("expected https://example.com/lodash, got %q", url)
	}
}

func TestFunc_ResolveError(t *testing.T) {
	r := Func(func(rc Context) (string, error) {
		return "", fmt.Errorf("no mirror for %s", rc.Package)
	})
	_, err := r.Resolve(Context{Package: "vue"})
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), "no mirror") {
		t.Errorf("expected resolver error, got %v", err)
	}
}

func TestTemplate_Resolve(t *testing.T) {
	tpl := Template{Pattern: "https://cdn.example.com/{package}@{version}/{path}"}
	url, err := tpl.Resolve(Context{Package: "react", Version: "18.2.0", Path: "umd/react.production.min.js"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := "https://cdn.example.com/react@18.2.0/umd/react.production.min.js"
	if url != want {
		t.Errorf("expected %q, got %q", want, url)
	}
}

func TestTemplate_ResolveEmptyPattern(t *testing.T) {
	tpl := Template{Pattern: "   "}
	_, err := tpl.Resolve(Context{Package: "react"})
	if err == nil {
		t.Fatal("expected error for empty pattern")
	}
}

func TestTemplate_OmitEmptyPath(t *testing.T) {
	tpl := Template{Pattern: "https://cdn.example.com/{package}@{version}/{path}", OmitEmptyPath: true}

	url, err := tpl.Resolve(Context{Package: "vue", Version: "3.4.0", Path: ""})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if url != "https://cdn.example.com/vue@3.4.0" {
		t.Errorf("expected path segment dropped, got %q", url)
	}

	// A non-empty path keeps the segment.
	url, err = tpl.Resolve(Context{Package: "vue", Version: "3.4.0", Path: "dist/vue.js"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if url != "https://cdn.example.com/vue@3.4.0/dist/vue.js" {
		t.Errorf("expected path segment kept, got %q", url)
	}
}

func TestTemplate_EmptyPathWithoutOmit(t *testing.T) {
	tpl := Template{Pattern: "https://cdn.example.com/{package}@{version}/{path}"}
	url, err := tpl.Resolve(Context{Package: "vue", Version: "3.4.0", Path: ""})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// Without OmitEmptyPath the trailing slash stays.
	if url != "https://cdn.example.com/vue@3.4.0/" {
		t.Errorf("expected trailing slash kept, got %q", url)
	}
}

func TestBuiltins_Order(t *testing.T) {
	builtins := Builtins()
	wantOrder := []string{JSDelivr, Unpkg, CDNJS, Skypack}
	if len(builtins) != len(wantOrder) {
		t.Fatalf("expected %d builtins, got %d", len(wantOrder), len(builtins))
	}
	for i, b := range builtins {
		if b.Name != wantOrder[i] {
			t.Errorf("position %d: expected %q, got %q", i, wantOrder[i], b.Name)
		}
		if b.Resolver == nil {
			t.Errorf("builtin %q has nil resolver", b.Name)
		}
	}
}

func TestBuiltins_URLs(t *testing.T) {
	rc := Context{Package: "lodash", Version: "4.17.21", Path: "lodash.min.js"}
	tests := []struct {
		name string
		tpl  Template
		want string
	}{
		{JSDelivr, JSDelivrTemplate, "https://cdn.jsdelivr.net/npm/lodash@4.17.21/lodash.min.js"},
		{Unpkg, UnpkgTemplate, "https://unpkg.com/lodash@4.17.21/lodash.min.js"},
		{CDNJS, CDNJSTemplate, "https://cdnjs.cloudflare.com/ajax/libs/lodash/4.17.21/lodash.min.js"},
		{Skypack, SkypackTemplate, "https://cdn.skypack.dev/lodash@4.17.21/lodash.min.js"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			url, err := tc.tpl.Resolve(rc)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if url != tc.want {
				t.Errorf("expected %q, got %q", tc.want, url)
			}
		})
	}
}

func TestBuiltins_SkypackBareModule(t *testing.T) {
	url, err := SkypackTemplate.Resolve(Context{Package: "preact", Version: "10.19.3", Path: ""})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if url != "https://cdn.skypack.dev/preact@10.19.3" {
		t.Errorf("expected bare module URL, got %q", url)
	}
}

func TestTemplate_IsPure(t *testing.T) {
	rc := Context{Package: "d3", Version: "7.8.5", Path: "dist/d3.min.js"}
	first, err := JSDelivrTemplate.Resolve(rc)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for i := 0; i < 3; i++ {
		again, err := JSDelivrTemplate.Resolve(rc)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if again != first {
			t.Fatalf("resolution not stable: %q vs %q", first, again)
		}
	}
}

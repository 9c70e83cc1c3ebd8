package view

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolveTitle(t *testing.T) {
	cases := []struct {
		path  string
		title string
	}{
		{"/", "Dashboard"},
		{"/inventory", "Inventory"},
		{"/inventory/42", "Inventory"},
		{"/loans", "Loans"},
		{"/loans/open", "Loans"},
		{"/documents", "Documents"},
		{"/reports", "Reports"},
		{"/users", "Users"},
		{"/users/new", "Users"},
		{"/settings", "Settings"},
		{"/settings/profile", "Settings"},
		{"/audit-logs", "Audit Logs"},
		{"/unknown/page", DefaultTitle},
		{"", DefaultTitle},
		{"/auth/login", DefaultTitle},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.title, ResolveTitle(tc.path), "path %q", tc.path)
	}
}

func TestResolveTitleRootIsExact(t *testing.T) {
	// Only the bare root resolves to Dashboard; other unknown paths use
	// the fallback even though they start with "/".
	assert.Equal(t, "Dashboard", ResolveTitle("/"))
	assert.Equal(t, DefaultTitle, ResolveTitle("/dash"))
}

func TestResolveTitleIsTotal(t *testing.T) {
	known := map[string]bool{
		"Dashboard": true, "Inventory": true, "Loans": true,
		"Documents": true, "Reports": true, "Users": true,
		"Settings": true, "Audit Logs": true, DefaultTitle: true,
	}
	for _, path := range []string{"/", "/inventory/a/b", "/x", "//", "/loansmore", "/audit-logs/7"} {
		assert.True(t, known[ResolveTitle(path)], "path %q", path)
	}
}

package view

import "strings"

// DefaultTitle is shown for routes outside the known sections.
const DefaultTitle = "BONEVET Inventory"

// DashboardTitle is shown for the root path only.
const DashboardTitle = "Dashboard"

type titleRule struct {
	prefix string
	title  string
}

// Ordered; the first matching prefix wins.
var titleRules = []titleRule{
	{"/inventory", "Inventory"},
	{"/loans", "Loans"},
	{"/documents", "Documents"},
	{"/reports", "Reports"},
	{"/users", "Users"},
	{"/settings", "Settings"},
	{"/audit-logs", "Audit Logs"},
}

// ResolveTitle maps the current navigation path to its page title.
// The root path is matched exactly; section titles match on path prefix,
// so nested routes such as /inventory/42 keep their section title.
// Unknown paths fall back to DefaultTitle, never an error.
func ResolveTitle(path string) string {
	if path == "/" {
		return DashboardTitle
	}
	for _, rule := range titleRules {
		if strings.HasPrefix(path, rule.prefix) {
			return rule.title
		}
	}
	return DefaultTitle
}

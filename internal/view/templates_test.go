package view

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewEngine(t *testing.T) {
	engine, err := NewEngine()
	assert.NoError(t, err, "Templates should parse without error")
	assert.NotNil(t, engine)
}

func TestStatCardPartialWithoutFooter(t *testing.T) {
	engine, err := NewEngine()
	require.NoError(t, err)

	card := StatCard{Title: "Total Items", Value: "120", Icon: IconBox, Variant: VariantSuccess}
	var buf bytes.Buffer
	require.NoError(t, engine.templates.ExecuteTemplate(&buf, "partials/stat_card.html", card))

	out := buf.String()
	assert.Contains(t, out, "Total Items")
	assert.Contains(t, out, "120")
	assert.Contains(t, out, "bg-green-50")
	assert.Contains(t, out, "text-green-600")
	assert.NotContains(t, out, "stat-footer", "absent footer must be omitted structurally")
}

func TestStatCardPartialWithFooter(t *testing.T) {
	engine, err := NewEngine()
	require.NoError(t, err)

	card := StatCard{
		Title:   "Overdue Loans",
		Value:   "3",
		Icon:    IconAlert,
		Variant: VariantDestructive,
		Footer:  `<a href="/loans?filter=overdue">View overdue</a>`,
	}
	var buf bytes.Buffer
	require.NoError(t, engine.templates.ExecuteTemplate(&buf, "partials/stat_card.html", card))

	out := buf.String()
	assert.Contains(t, out, "stat-footer")
	assert.Contains(t, out, "View overdue")
	assert.Contains(t, out, "bg-red-50")
}

func TestStatCardPartialUnknownVariantFoldsToPrimary(t *testing.T) {
	engine, err := NewEngine()
	require.NoError(t, err)

	card := StatCard{Title: "X", Value: "1", Icon: IconBox, Variant: "sparkly"}
	var buf bytes.Buffer
	require.NoError(t, engine.templates.ExecuteTemplate(&buf, "partials/stat_card.html", card))
	assert.Contains(t, buf.String(), "bg-blue-50")
}

func TestHeaderPartial(t *testing.T) {
	engine, err := NewEngine()
	require.NoError(t, err)

	data := PageData("/inventory/42", "Arber", "tok", nil, nil)
	var buf bytes.Buffer
	require.NoError(t, engine.templates.ExecuteTemplate(&buf, "partials/header.html", data))

	out := buf.String()
	assert.Contains(t, out, "<h1>Inventory</h1>")
	assert.Contains(t, out, "Welcome back, Arber")
	assert.Contains(t, out, `aria-label="Notifications"`)
	assert.Contains(t, out, `aria-label="Settings"`)
	assert.Contains(t, out, ">A</span>")
}

func TestHeaderPartialAnonymous(t *testing.T) {
	engine, err := NewEngine()
	require.NoError(t, err)

	data := PageData("/", "", "tok", nil, nil)
	var buf bytes.Buffer
	require.NoError(t, engine.templates.ExecuteTemplate(&buf, "partials/header.html", data))

	out := buf.String()
	assert.Contains(t, out, "<h1>Dashboard</h1>")
	assert.Contains(t, out, "Welcome back, User")
	assert.Contains(t, out, ">U</span>")
}

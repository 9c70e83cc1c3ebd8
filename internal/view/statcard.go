package view

import (
	"fmt"
	"html/template"
)

// StatVariant selects the visual style of a stat card badge.
type StatVariant string

const (
	// VariantPrimary is the default blue style.
	VariantPrimary StatVariant = "primary"
	// VariantSuccess is the green style.
	VariantSuccess StatVariant = "success"
	// VariantWarning is the amber style.
	VariantWarning StatVariant = "warning"
	// VariantDestructive is the red style.
	VariantDestructive StatVariant = "destructive"
)

// VariantStyle pairs a pale badge background with its foreground colour.
type VariantStyle struct {
	Background string
	Foreground string
}

var variantStyles = map[StatVariant]VariantStyle{
	VariantPrimary:     {Background: "bg-blue-50", Foreground: "text-blue-600"},
	VariantSuccess:     {Background: "bg-green-50", Foreground: "text-green-600"},
	VariantWarning:     {Background: "bg-amber-50", Foreground: "text-amber-600"},
	VariantDestructive: {Background: "bg-red-50", Foreground: "text-red-600"},
}

// StyleOf returns the style pair for a variant. Unknown or absent
// variants fold to the primary pair rather than erroring.
func StyleOf(v StatVariant) VariantStyle {
	if style, ok := variantStyles[v]; ok {
		return style
	}
	return variantStyles[VariantPrimary]
}

const statCardBaseClass = "stat-card border rounded-lg"

// StatCard is the view model consumed by the stat_card partial. Title,
// Value and Icon are required; everything else has a safe default.
type StatCard struct {
	Title   string
	Value   string
	Icon    template.HTML
	Variant StatVariant
	Footer  template.HTML
	Class   string
}

// Style resolves the variant's style pair.
func (c StatCard) Style() VariantStyle {
	return StyleOf(c.Variant)
}

// HasFooter reports whether the optional footer region should render.
// An absent footer is omitted structurally, not rendered empty.
func (c StatCard) HasFooter() bool {
	return c.Footer != ""
}

// CardClass composes the base border classes with the optional caller
// override; the override concatenates rather than replaces.
func (c StatCard) CardClass() string {
	if c.Class == "" {
		return statCardBaseClass
	}
	return statCardBaseClass + " " + c.Class
}

// StatValue renders a card value from a string or numeric input.
func StatValue(v any) string {
	switch val := v.(type) {
	case string:
		return val
	default:
		return fmt.Sprint(val)
	}
}

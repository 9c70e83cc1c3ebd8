package view

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewHeaderWithUser(t *testing.T) {
	header := NewHeader("/inventory/42", "Arber")
	assert.Equal(t, "Inventory", header.Title)
	assert.Equal(t, "Welcome back, Arber", header.Greeting)
	assert.Equal(t, "A", header.Initial)
	assert.Equal(t, IconBell, header.Bell)
	assert.Equal(t, IconGear, header.Gear)
}

func TestNewHeaderWithoutUser(t *testing.T) {
	header := NewHeader("/", "")
	assert.Equal(t, "Dashboard", header.Title)
	assert.Equal(t, "Welcome back, User", header.Greeting)
	assert.Equal(t, "U", header.Initial)
}

func TestNewHeaderLowercaseName(t *testing.T) {
	header := NewHeader("/loans", "drita")
	assert.Equal(t, "Welcome back, drita", header.Greeting)
	assert.Equal(t, "D", header.Initial)
}

func TestNewHeaderWhitespaceName(t *testing.T) {
	header := NewHeader("/settings/profile", "   ")
	assert.Equal(t, "Settings", header.Title)
	assert.Equal(t, "Welcome back, User", header.Greeting)
	assert.Equal(t, "U", header.Initial)
}

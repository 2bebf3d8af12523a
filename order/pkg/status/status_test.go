package status

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCanTransition(t *testing.T) {
	tests := []struct {
		name     string
		from     Status
		to       Status
		expected bool
	}{
		{name: "created can be paid", from: Created, to: Paid, expected: true},
		{name: "created can be cancelled", from: Created, to: Cancelled, expected: true},
		{name: "created cannot be delivered", from: Created, to: Delivered, expected: false},
		{name: "paid can be delivered", from: Paid, to: Delivered, expected: true},
		{name: "paid cannot be paid again", from: Paid, to: Paid, expected: false},
		{name: "paid cannot be cancelled", from: Paid, to: Cancelled, expected: false},
		{name: "delivered is terminal", from: Delivered, to: Paid, expected: false},
		{name: "cancelled is terminal", from: Cancelled, to: Paid, expected: false},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			assert.Equal(t, test.expected, test.from.CanTransition(test.to))
		})
	}
}

func TestParse(t *testing.T) {
	parsed, err := Parse("PAID")
	assert.NoError(t, err)
	assert.Equal(t, Paid, parsed)

	_, err = Parse("SHIPPED")
	assert.Error(t, err)
}

func TestIsTerminal(t *testing.T) {
	assert.False(t, Created.IsTerminal())
	assert.False(t, Paid.IsTerminal())
	assert.True(t, Delivered.IsTerminal())
	assert.True(t, Cancelled.IsTerminal())
}

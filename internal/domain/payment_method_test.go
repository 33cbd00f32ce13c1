package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPaymentMethod_LastFourAndMasked(t *testing.T) {
	tests := []struct {
		name        string
		cardDetails uint64
		lastFour    string
	}{
		{name: "visa", cardDetails: 4111111111111111, lastFour: "1111"},
		{name: "amex", cardDetails: 378282246310005, lastFour: "0005"},
		{name: "short", cardDetails: 42, lastFour: "42"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pm := &PaymentMethod{CardDetails: tt.cardDetails}
			assert.Equal(t, tt.lastFour, pm.LastFour())
			assert.Equal(t, "•••• "+tt.lastFour, pm.Masked())
		})
	}
}

func TestPaymentMethod_GetDisplayName(t *testing.T) {
	pm := &PaymentMethod{CardDetails: 5555555555554444, Issuer: "Mastercard"}
	assert.Equal(t, "Mastercard •••• 4444", pm.GetDisplayName())

	pm.Issuer = ""
	assert.Equal(t, "Unknown •••• 4444", pm.GetDisplayName())
}

func TestPaymentMethod_IsDraft(t *testing.T) {
	assert.True(t, (&PaymentMethod{}).IsDraft())
	assert.False(t, (&PaymentMethod{ID: "7"}).IsDraft())
}

func TestSortActiveFirst_Stable(t *testing.T) {
	methods := []PaymentMethod{
		{ID: "a", Active: false},
		{ID: "b", Active: true},
		{ID: "c", Active: false},
	}

	sorted := SortActiveFirst(methods)

	require.Len(t, sorted, 3)
	assert.Equal(t, []string{"b", "a", "c"}, ids(sorted))
	// input is left untouched
	assert.Equal(t, []string{"a", "b", "c"}, ids(methods))
}

func TestSortActiveFirst_NoActive(t *testing.T) {
	methods := []PaymentMethod{{ID: "x"}, {ID: "y"}, {ID: "z"}}
	assert.Equal(t, []string{"x", "y", "z"}, ids(SortActiveFirst(methods)))
}

func TestWithOnlyActive(t *testing.T) {
	methods := []PaymentMethod{
		{ID: "1", Active: true},
		{ID: "2"},
		{ID: "3"},
	}

	updated := WithOnlyActive(methods, "3")

	assert.Equal(t, 1, CountActive(updated))
	assert.True(t, updated[2].Active)
	assert.True(t, methods[0].Active, "input collection must not be mutated")
}

func TestWithOnlyActive_UnknownID(t *testing.T) {
	methods := []PaymentMethod{{ID: "1", Active: true}, {ID: "2"}}
	assert.Equal(t, 0, CountActive(WithOnlyActive(methods, "9")))
}

func TestFindByID(t *testing.T) {
	methods := []PaymentMethod{{ID: "1"}, {ID: "2"}}
	assert.Equal(t, 1, FindByID(methods, "2"))
	assert.Equal(t, -1, FindByID(methods, "3"))
}

func ids(methods []PaymentMethod) []string {
	out := make([]string, len(methods))
	for i, pm := range methods {
		out[i] = pm.ID
	}
	return out
}

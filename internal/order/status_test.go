package order

import (
	"errors"
	"testing"

	"github.com/chic-commerce/storefront-api/internal/apperror"
	"github.com/stretchr/testify/assert"
)

func TestCanTransition(t *testing.T) {
	cases := []struct {
		from, to Status
		want     bool
	}{
		{StatusPending, StatusConfirmed, true},
		{StatusPending, StatusShipped, true},
		{StatusPending, StatusDelivered, true},
		{StatusConfirmed, StatusShipped, true},
		{StatusShipped, StatusDelivered, true},
		{StatusPending, StatusCancelled, true},
		{StatusShipped, StatusCancelled, true},
		{StatusShipped, StatusConfirmed, false},
		{StatusConfirmed, StatusPending, false},
		{StatusPending, StatusPending, false},
		{StatusDelivered, StatusCancelled, false},
		{StatusDelivered, StatusShipped, false},
		{StatusCancelled, StatusPending, false},
		{StatusCancelled, StatusCancelled, false},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, CanTransition(tc.from, tc.to), "%s -> %s", tc.from, tc.to)
	}
}

func TestTransition_ErrorType(t *testing.T) {
	err := Transition(StatusDelivered, StatusPending)
	var it *apperror.InvalidTransition
	assert.True(t, errors.As(err, &it))
	assert.Equal(t, "delivered", it.From)
	assert.NoError(t, Transition(StatusPending, StatusConfirmed))
}

func TestTrack(t *testing.T) {
	p := Track(StatusShipped)
	assert.Equal(t, 2, p.StepIndex)
	assert.False(t, p.Terminal)
	assert.Len(t, p.Steps, 4)

	p = Track(StatusDelivered)
	assert.Equal(t, len(Steps)-1, p.StepIndex)
	assert.True(t, p.Terminal)
	assert.False(t, p.Cancelled)

	p = Track(StatusCancelled)
	assert.Equal(t, -1, p.StepIndex)
	assert.True(t, p.Cancelled)
	assert.True(t, p.Terminal)
}

func TestTrack_StepsAreACopy(t *testing.T) {
	p := Track(StatusPending)
	p.Steps[0] = "mutated"
	assert.Equal(t, StatusPending, Steps[0])
}

func TestParseStatus(t *testing.T) {
	s, ok := ParseStatus(" Shipped ")
	assert.True(t, ok)
	assert.Equal(t, StatusShipped, s)

	_, ok = ParseStatus("returned")
	assert.False(t, ok)
}

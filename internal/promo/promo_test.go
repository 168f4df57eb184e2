package promo

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func reason(err error) Reason {
	if r, ok := err.(*Rejection); ok {
		return r.Reason
	}
	return ""
}

func TestCheck_Ordering(t *testing.T) {
	now := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)
	past := now.Add(-time.Hour)
	future := now.Add(time.Hour)
	cap2 := 2

	cases := []struct {
		name string
		code *Code
		want Reason
	}{
		{"missing", nil, ReasonNotFound},
		{"inactive and expired", &Code{Active: false, ExpiresAt: &past}, ReasonNotFound},
		{"expired and exhausted", &Code{Active: true, ExpiresAt: &past, MaxUses: &cap2, CurrentUses: 2}, ReasonExpired},
		{"expires exactly now", &Code{Active: true, ExpiresAt: &now}, ReasonExpired},
		{"exhausted", &Code{Active: true, ExpiresAt: &future, MaxUses: &cap2, CurrentUses: 2}, ReasonUsageExceeded},
		{"usable", &Code{Active: true, ExpiresAt: &future, MaxUses: &cap2, CurrentUses: 1}, ""},
		{"no limits", &Code{Active: true}, ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, reason(Check(tc.code, now)))
		})
	}
}

func TestNormalize(t *testing.T) {
	assert.Equal(t, "SUMMER10", Normalize("  summer10 "))
}

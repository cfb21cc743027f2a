package domain

import "testing"

func TestBookingStatusTransitions(t *testing.T) {
	cases := []struct {
		from    BookingStatus
		to      BookingStatus
		allowed bool
	}{
		{StatusPending, StatusApproved, true},
		{StatusPending, StatusDeclined, true},
		{StatusPending, StatusCompleted, false},
		{StatusApproved, StatusCompleted, true},
		{StatusApproved, StatusPending, false},
		{StatusApproved, StatusDeclined, false},
		{StatusDeclined, StatusPending, false},
		{StatusDeclined, StatusApproved, false},
		{StatusCompleted, StatusPending, false},
		{StatusCompleted, StatusApproved, false},
	}

	for _, c := range cases {
		if got := c.from.CanTransitionTo(c.to); got != c.allowed {
			t.Errorf("%s -> %s: got %v, want %v", c.from, c.to, got, c.allowed)
		}
	}
}

func TestBookingStatusIsValid(t *testing.T) {
	for _, s := range []BookingStatus{StatusPending, StatusApproved, StatusDeclined, StatusCompleted} {
		if !s.IsValid() {
			t.Errorf("%s should be valid", s)
		}
	}
	if BookingStatus("cancelled").IsValid() {
		t.Error("unknown status should not be valid")
	}
}

func TestBookingStatusIsTerminal(t *testing.T) {
	if StatusPending.IsTerminal() || StatusApproved.IsTerminal() {
		t.Error("pending and approved are not terminal")
	}
	if !StatusDeclined.IsTerminal() || !StatusCompleted.IsTerminal() {
		t.Error("declined and completed are terminal")
	}
}

package templates

import "testing"

func TestTWithoutLocalizerReturnsKey(t *testing.T) {
	t.Parallel()

	if got := T(nil, "nav.logout"); got != "nav.logout" {
		t.Fatalf("T(nil, ...) = %q, want %q", got, "nav.logout")
	}
	if got := T(nil, ""); got != "" {
		t.Fatalf("T(nil, \"\") = %q, want empty", got)
	}
}

func TestTUsesLocalizer(t *testing.T) {
	t.Parallel()

	loc := frenchLocalizer(t)
	if got := T(loc, "nav.logout"); got != "Déconnexion" {
		t.Fatalf("T(fr, nav.logout) = %q", got)
	}
	if got := T(loc, "dashboard.greeting", "Alice"); got != "Bonjour, Alice" {
		t.Fatalf("T(fr, dashboard.greeting) = %q", got)
	}
}

func TestTWithoutLocalizerKeepsKeyAndArgs(t *testing.T) {
	t.Parallel()

	if got := T(nil, "title.dashboard", "Portfolio"); got != "title.dashboard Portfolio" {
		t.Fatalf("T(nil, title.dashboard, Portfolio) = %q", got)
	}
	if got := T(nil, "toast.%s", "x"); got != "toast.%s x" {
		t.Fatalf("T(nil, toast.%%s, x) = %q, key must not be used as a format", got)
	}
	if got := T(nil, 42); got != "" {
		t.Fatalf("T(nil, 42) = %q, want empty", got)
	}
}

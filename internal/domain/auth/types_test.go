package auth

import "testing"

func TestRole_Valid(t *testing.T) {
	for _, r := range []Role{RoleAdmin, RoleStudent, RoleDoctor, RoleAssistant} {
		if !r.Valid() {
			t.Fatalf("expected %q to be valid", r)
		}
	}
	if Role("admin").Valid() {
		t.Fatalf("role matching is case-sensitive; lowercase must be rejected")
	}
	if Role("").Valid() {
		t.Fatalf("empty role must be rejected")
	}
}

func TestSession_RoleHelpers(t *testing.T) {
	if !(Session{Role: RoleAdmin}).IsAdmin() {
		t.Fatalf("expected admin")
	}
	if (Session{Role: RoleStudent}).IsAdmin() {
		t.Fatalf("did not expect admin")
	}
	if !(Session{Role: RoleDoctor}).CanGrade() || !(Session{Role: RoleAssistant}).CanGrade() {
		t.Fatalf("doctor and assistant can grade")
	}
	if (Session{Role: RoleStudent}).CanGrade() {
		t.Fatalf("student cannot grade")
	}
}

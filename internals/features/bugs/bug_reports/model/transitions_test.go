package model

import (
	"testing"

	"laporbug_backend/internals/constants"
)

func TestCheckTransition(t *testing.T) {
	cases := []struct {
		name string
		from string
		to   string
		role string
		want TransitionCheck
	}{
		{"diajukan ke diproses", StatusDiajukan, StatusDiproses, constants.RoleValidator, TransitionAllowed},
		{"diajukan ke revisi", StatusDiajukan, StatusRevisiByAdmin, constants.RoleValidator, TransitionAllowed},
		{"diajukan langsung selesai", StatusDiajukan, StatusSelesai, constants.RoleValidator, TransitionAllowed},
		{"diproses kembali ke diajukan", StatusDiproses, StatusDiajukan, constants.RoleValidator, TransitionInvalid},
		{"revisi kembali ke diajukan", StatusRevisiByAdmin, StatusDiajukan, constants.RoleValidator, TransitionAllowed},
		{"status sama", StatusDiproses, StatusDiproses, constants.RoleValidator, TransitionNoop},
		{"terminal oleh validator", StatusSelesai, StatusDiproses, constants.RoleValidator, TransitionTerminal},
		{"pendapat selesai oleh validator", StatusPendapatSelesai, StatusSelesai, constants.RoleValidator, TransitionTerminal},
		{"terminal dibuka super admin", StatusSelesai, StatusDiproses, constants.RoleSuperAdmin, TransitionAllowed},
		{"terminal status sama", StatusSelesai, StatusSelesai, constants.RoleValidator, TransitionNoop},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := CheckTransition(tc.from, tc.to, tc.role); got != tc.want {
				t.Fatalf("CheckTransition(%q, %q, %q) = %v, want %v", tc.from, tc.to, tc.role, got, tc.want)
			}
		})
	}
}

func TestIsTerminal(t *testing.T) {
	for _, s := range []string{StatusSelesai, StatusPendapatSelesai} {
		if !IsTerminal(s) {
			t.Fatalf("IsTerminal(%q) = false", s)
		}
	}
	for _, s := range []string{StatusDiajukan, StatusDiproses, StatusRevisiByAdmin} {
		if IsTerminal(s) {
			t.Fatalf("IsTerminal(%q) = true", s)
		}
	}
	if IsValidStatus("pendapat selesai") {
		t.Fatal("report status must use underscore form")
	}
}

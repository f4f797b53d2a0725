package model

import (
	"testing"

	"laporbug_backend/internals/constants"
)

func TestStatusMessage(t *testing.T) {
	cases := []struct {
		status string
		role   string
		want   string
	}{
		{LabelDibuat, constants.RoleWarga, "Laporan dibuat oleh warga"},
		{LabelDibuat, constants.RolePencatat, "Laporan dicatat oleh petugas pencatat"},
		{StatusDiproses, constants.RoleValidator, "Laporan sedang diproses oleh validator"},
		{StatusRevisiByAdmin, constants.RoleAdminKategori, "Admin kategori menambahkan catatan revisi"},
		{StatusSelesai, constants.RoleTeknisi, "Teknisi menandai perbaikan selesai"},
		{LabelTidakDisetujui, constants.RoleValidator, "Hasil perbaikan teknisi tidak disetujui validator"},
	}
	for _, tc := range cases {
		if got := StatusMessage(tc.status, tc.role); got != tc.want {
			t.Fatalf("StatusMessage(%q, %q) = %q, want %q", tc.status, tc.role, got, tc.want)
		}
	}
}

func TestStatusMessageFallback(t *testing.T) {
	got := StatusMessage(StatusSelesai, constants.RoleWarga)
	if got != "Status laporan diubah menjadi selesai" {
		t.Fatalf("fallback = %q", got)
	}
	got = StatusMessage("status_baru", constants.RoleValidator)
	if got != "Status laporan diubah menjadi status_baru" {
		t.Fatalf("fallback unknown status = %q", got)
	}
}

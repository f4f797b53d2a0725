package model

import (
	"fmt"

	"laporbug_backend/internals/constants"
)

// Label khusus timeline (di luar status laporan)
const (
	LabelDibuat         = "dibuat"
	LabelDisetujui      = "disetujui"
	LabelTidakDisetujui = "tidak_disetujui"
)

type messageKey struct {
	status string
	role   string
}

var statusMessages = map[messageKey]string{
	{LabelDibuat, constants.RoleWarga}:      "Laporan dibuat oleh warga",
	{LabelDibuat, constants.RolePencatat}:   "Laporan dicatat oleh petugas pencatat",
	{LabelDibuat, constants.RoleSuperAdmin}: "Laporan dibuat oleh super admin",

	{StatusDiajukan, constants.RoleValidator}:  "Laporan dikembalikan ke antrian validator",
	{StatusDiajukan, constants.RoleSuperAdmin}: "Laporan dikembalikan ke status diajukan oleh super admin",

	{StatusDiproses, constants.RoleValidator}:  "Laporan sedang diproses oleh validator",
	{StatusDiproses, constants.RoleSuperAdmin}: "Laporan diproses oleh super admin",
	{StatusDiproses, constants.RoleTeknisi}:    "Teknisi sedang mengerjakan perbaikan",

	{StatusRevisiByAdmin, constants.RoleValidator}:     "Laporan dikembalikan untuk direvisi admin kategori",
	{StatusRevisiByAdmin, constants.RoleAdminKategori}: "Admin kategori menambahkan catatan revisi",
	{StatusRevisiByAdmin, constants.RoleSuperAdmin}:    "Laporan direvisi oleh super admin",

	{StatusSelesai, constants.RoleValidator}:  "Laporan dinyatakan selesai oleh validator",
	{StatusSelesai, constants.RoleSuperAdmin}: "Laporan dinyatakan selesai oleh super admin",
	{StatusSelesai, constants.RoleTeknisi}:    "Teknisi menandai perbaikan selesai",

	{StatusPendapatSelesai, constants.RoleValidator}:  "Laporan dinyatakan selesai menurut pendapat validator",
	{StatusPendapatSelesai, constants.RoleSuperAdmin}: "Laporan dinyatakan selesai menurut pendapat super admin",
	{StatusPendapatSelesai, constants.RoleTeknisi}:    "Teknisi berpendapat perbaikan sudah selesai",

	{LabelDisetujui, constants.RoleValidator}:      "Hasil perbaikan teknisi disetujui validator",
	{LabelTidakDisetujui, constants.RoleValidator}: "Hasil perbaikan teknisi tidak disetujui validator",
}

// StatusMessage: pesan timeline untuk pasangan (status, role).
func StatusMessage(status, role string) string {
	if msg, ok := statusMessages[messageKey{status, role}]; ok {
		return msg
	}
	return fmt.Sprintf("Status laporan diubah menjadi %s", status)
}

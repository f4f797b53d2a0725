// Package access berisi predikat hak akses per role atas laporan, penugasan, dan foto.
// Semua fungsi di sini murni: tidak menyentuh DB.
package access

import (
	"laporbug_backend/internals/constants"
	reportModel "laporbug_backend/internals/features/bugs/bug_reports/model"
	helperAuth "laporbug_backend/internals/helpers/auth"
)

// ReportScope: data minimal untuk memutuskan akses ke sebuah laporan.
type ReportScope struct {
	ReportID             uint
	Reporter             reportModel.ReporterIdentity
	CategoryValidatorKey string
	TechnicianKey        string // kosong kalau belum ada penugasan
}

// AssignScope: data minimal untuk memutuskan akses ke sebuah penugasan.
type AssignScope struct {
	TechnicianKey string
	ValidatorKey  string
}

func keyMatch(p helperAuth.Principal, key string) bool {
	return p.Key != "" && p.Key == key
}

// CanReadReport: admin semua; warga/pencatat laporan sendiri; validator sesuai kategori.
func CanReadReport(p helperAuth.Principal, s ReportScope) bool {
	switch p.Role {
	case constants.RoleSuperAdmin, constants.RoleAdminKategori:
		return true
	case constants.RoleWarga, constants.RolePencatat:
		return s.Reporter.Owns(p.Role, p.Key)
	case constants.RoleValidator:
		return keyMatch(p, s.CategoryValidatorKey)
	}
	return false
}

// CanReadReportExtended menambah teknisi yang ditugaskan (foto & timeline).
func CanReadReportExtended(p helperAuth.Principal, s ReportScope) bool {
	if CanReadReport(p, s) {
		return true
	}
	return p.Role == constants.RoleTeknisi && keyMatch(p, s.TechnicianKey)
}

// CanWriteReport: hanya pelapor laporan itu sendiri (warga/pencatat/super_admin sesuai identitas pelapor).
func CanWriteReport(p helperAuth.Principal, s ReportScope) bool {
	switch p.Role {
	case constants.RoleWarga, constants.RolePencatat, constants.RoleSuperAdmin:
		return s.Reporter.Owns(p.Role, p.Key)
	}
	return false
}

// CanManagePhotos: upload/hapus foto hanya oleh pelapor.
func CanManagePhotos(p helperAuth.Principal, s ReportScope) bool {
	return CanWriteReport(p, s)
}

// CanTransitionReport: hanya validator kategori atau super_admin yang boleh mengubah status.
func CanTransitionReport(p helperAuth.Principal, s ReportScope) bool {
	if p.Role == constants.RoleSuperAdmin {
		return true
	}
	return p.Role == constants.RoleValidator && keyMatch(p, s.CategoryValidatorKey)
}

// CanReviseReport: admin kategori / super_admin (catatan revisi + koreksi kategori).
func CanReviseReport(p helperAuth.Principal) bool {
	return p.Role == constants.RoleSuperAdmin || p.Role == constants.RoleAdminKategori
}

func CanReadAssign(p helperAuth.Principal, s AssignScope) bool {
	switch p.Role {
	case constants.RoleSuperAdmin, constants.RoleAdminKategori:
		return true
	case constants.RoleTeknisi:
		return keyMatch(p, s.TechnicianKey)
	case constants.RoleValidator:
		return keyMatch(p, s.ValidatorKey)
	}
	return false
}

func CanWriteAssignAsTechnician(p helperAuth.Principal, s AssignScope) bool {
	return p.Role == constants.RoleTeknisi && keyMatch(p, s.TechnicianKey)
}

func CanValidateAssign(p helperAuth.Principal, s AssignScope) bool {
	return p.Role == constants.RoleValidator && keyMatch(p, s.ValidatorKey)
}

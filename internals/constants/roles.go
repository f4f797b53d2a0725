package constants

import "fmt"

const (
	RoleSuperAdmin    = "super_admin"
	RoleAdminKategori = "admin_kategori"
	RoleValidator     = "validator"
	RoleTeknisi       = "teknisi"
	RolePencatat      = "pencatat"
	RoleWarga         = "warga"
)

// Template pesan error role
const (
	ErrOnlyReportersCanAccess  = "❌ Hanya warga, pencatat, atau super admin yang boleh mengakses fitur %s."
	ErrOnlyValidatorsCanAccess = "❌ Hanya validator yang boleh mengakses fitur %s."
	ErrOnlyTeknisiCanAccess    = "❌ Hanya teknisi yang boleh mengakses fitur %s."
	ErrOnlySuperAdminCanAccess = "❌ Hanya super admin yang boleh mengakses fitur %s."
	ErrOnlyReviewersCanAccess  = "❌ Hanya validator, admin kategori, atau super admin yang boleh mengakses fitur %s."
)

func RoleErrorReporter(feature string) string {
	return fmt.Sprintf(ErrOnlyReportersCanAccess, feature)
}

func RoleErrorValidator(feature string) string {
	return fmt.Sprintf(ErrOnlyValidatorsCanAccess, feature)
}

func RoleErrorTeknisi(feature string) string {
	return fmt.Sprintf(ErrOnlyTeknisiCanAccess, feature)
}

func RoleErrorSuperAdmin(feature string) string {
	return fmt.Sprintf(ErrOnlySuperAdminCanAccess, feature)
}

func RoleErrorReviewer(feature string) string {
	return fmt.Sprintf(ErrOnlyReviewersCanAccess, feature)
}

// ==========================
// ✅ Grouped Role Slices
// ==========================
var (
	AllRoles = []string{
		RoleSuperAdmin,
		RoleAdminKategori,
		RoleValidator,
		RoleTeknisi,
		RolePencatat,
		RoleWarga,
	}

	// boleh membuat laporan & mengelola foto laporan miliknya
	ReporterRoles = []string{
		RoleWarga,
		RolePencatat,
		RoleSuperAdmin,
	}

	// boleh menyentuh status / catatan laporan
	ReviewerRoles = []string{
		RoleValidator,
		RoleAdminKategori,
		RoleSuperAdmin,
	}

	AdminRoles = []string{
		RoleSuperAdmin,
		RoleAdminKategori,
	}

	AssignReaderRoles = []string{
		RoleTeknisi,
		RoleValidator,
		RoleSuperAdmin,
		RoleAdminKategori,
	}

	ValidatorOnly = []string{
		RoleValidator,
	}

	TeknisiOnly = []string{
		RoleTeknisi,
	}

	SuperAdminOnly = []string{
		RoleSuperAdmin,
	}
)

func IsKnownRole(role string) bool {
	for _, r := range AllRoles {
		if r == role {
			return true
		}
	}
	return false
}

func IsAdminRole(role string) bool {
	return role == RoleSuperAdmin || role == RoleAdminKategori
}

package model

import "laporbug_backend/internals/constants"

type ReporterKind string

const (
	ReporterWarga    ReporterKind = "warga"
	ReporterPencatat ReporterKind = "pencatat"
	ReporterAdmin    ReporterKind = "admin"
	ReporterNone     ReporterKind = "none"
)

// ReporterIdentity: pelapor sebuah laporan, tepat satu jenis.
// Key = NIK (warga), NIP (pencatat), username (admin); kosong untuk none.
type ReporterIdentity struct {
	Kind ReporterKind `json:"kind"`
	Key  string       `json:"key,omitempty"`
}

func CitizenReporter(nik string) ReporterIdentity {
	return ReporterIdentity{Kind: ReporterWarga, Key: nik}
}

func ClerkReporter(nip string) ReporterIdentity {
	return ReporterIdentity{Kind: ReporterPencatat, Key: nip}
}

func AdminReporter(username string) ReporterIdentity {
	return ReporterIdentity{Kind: ReporterAdmin, Key: username}
}

func NoReporter() ReporterIdentity {
	return ReporterIdentity{Kind: ReporterNone}
}

// ReporterFor menurunkan identitas pelapor dari role akun. ok=false kalau role tidak boleh melapor.
func ReporterFor(role, key string) (ReporterIdentity, bool) {
	switch role {
	case constants.RoleWarga:
		return CitizenReporter(key), true
	case constants.RolePencatat:
		return ClerkReporter(key), true
	case constants.RoleSuperAdmin:
		return AdminReporter(key), true
	}
	return NoReporter(), false
}

// Owns: apakah identitas ini milik akun (role, key).
func (r ReporterIdentity) Owns(role, key string) bool {
	if r.Key == "" || r.Key != key {
		return false
	}
	switch r.Kind {
	case ReporterWarga:
		return role == constants.RoleWarga
	case ReporterPencatat:
		return role == constants.RolePencatat
	case ReporterAdmin:
		return role == constants.RoleSuperAdmin
	}
	return false
}

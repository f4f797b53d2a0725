package model

import "laporbug_backend/internals/constants"

// Edge yang diizinkan antar status non-terminal.
var allowedTransitions = map[string]map[string]struct{}{
	StatusDiajukan: {
		StatusDiproses:        {},
		StatusRevisiByAdmin:   {},
		StatusSelesai:         {},
		StatusPendapatSelesai: {},
	},
	StatusDiproses: {
		StatusRevisiByAdmin:   {},
		StatusSelesai:         {},
		StatusPendapatSelesai: {},
	},
	StatusRevisiByAdmin: {
		StatusDiajukan:        {},
		StatusDiproses:        {},
		StatusSelesai:         {},
		StatusPendapatSelesai: {},
	},
}

type TransitionCheck int

const (
	TransitionAllowed TransitionCheck = iota
	TransitionNoop
	TransitionTerminal
	TransitionInvalid
)

// CheckTransition mengevaluasi from→to untuk role tertentu.
// Status terminal hanya bisa dibuka lagi oleh super_admin.
func CheckTransition(from, to, role string) TransitionCheck {
	if from == to {
		return TransitionNoop
	}
	if IsTerminal(from) {
		if role == constants.RoleSuperAdmin {
			return TransitionAllowed
		}
		return TransitionTerminal
	}
	if _, ok := allowedTransitions[from][to]; ok {
		return TransitionAllowed
	}
	return TransitionInvalid
}

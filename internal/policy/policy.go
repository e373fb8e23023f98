// Package policy decides who may see and change clinical records. It is the
// one place the ownership rules live; handlers ask, the policy answers.
package policy

import "healthcard-backend/internal/models"

// Actor is the authenticated identity behind a request.
type Actor struct {
	ID   uint64
	Role string
}

// Ownership carries the two reference fields every clinical record has.
type Ownership struct {
	PatientID uint64
	DoctorID  uint64
}

// Kind selects which mutation rule applies.
type Kind string

const (
	KindAppointment   Kind = "appointment"
	KindMedicalRecord Kind = "medical_record"
	KindPrescription  Kind = "prescription"
)

// Decision is an allow/deny with the reason sent back on a 403.
type Decision struct {
	Allowed bool
	Reason  string
}

func allow() Decision { return Decision{Allowed: true} }

func deny(reason string) Decision { return Decision{Allowed: false, Reason: reason} }

// CanRead: admins see everything, otherwise the actor must be one of the two
// parties on the record. Identical for all three record kinds.
func CanRead(actor Actor, own Ownership) Decision {
	if actor.Role == models.RoleAdmin {
		return allow()
	}
	if actor.ID == own.PatientID || actor.ID == own.DoctorID {
		return allow()
	}
	return deny("access denied")
}

// CanMutate: appointments may be changed by either party (or admin), but
// medical records and prescriptions only by the authoring doctor or an admin.
// The patient on a clinical note has read access, never write access.
func CanMutate(actor Actor, kind Kind, own Ownership) Decision {
	if actor.Role == models.RoleAdmin {
		return allow()
	}
	switch kind {
	case KindAppointment:
		if actor.ID == own.PatientID || actor.ID == own.DoctorID {
			return allow()
		}
	default:
		if actor.ID == own.DoctorID {
			return allow()
		}
	}
	return deny("access denied")
}

// ListScope is the filter forced onto every list query. A zero field means
// no constraint on that side; admins get the zero scope.
type ListScope struct {
	PatientID uint64
	DoctorID  uint64
}

// ScopeList narrows list queries to the actor's own records.
func ScopeList(actor Actor) ListScope {
	switch actor.Role {
	case models.RolePatient:
		return ListScope{PatientID: actor.ID}
	case models.RoleDoctor:
		return ListScope{DoctorID: actor.ID}
	}
	return ListScope{}
}

// CanFilterByPatient reports whether caller-supplied patient_id (and
// is_active) query filters are honored. Patients cannot reach other
// patients' data through them; the params are dropped, not rejected.
func CanFilterByPatient(actor Actor) bool {
	return actor.Role == models.RoleAdmin || actor.Role == models.RoleDoctor
}

package patient

import (
	"context"
	"fmt"

	"github.com/BruksfildServices01/clinica-turnos/internal/audit"
	"github.com/BruksfildServices01/clinica-turnos/internal/authz"
	"github.com/BruksfildServices01/clinica-turnos/internal/domain/clinic"
	"github.com/BruksfildServices01/clinica-turnos/internal/domain/patient"
	"github.com/BruksfildServices01/clinica-turnos/internal/httperr"
	"github.com/BruksfildServices01/clinica-turnos/internal/models"
)

// DeletePatient removes a patient with no turnos, together with their
// clinical records.
type DeletePatient struct {
	repo  clinic.Repository
	audit *audit.Dispatcher
}

func NewDeletePatient(
	repo clinic.Repository,
	audit *audit.Dispatcher,
) *DeletePatient {
	return &DeletePatient{
		repo:  repo,
		audit: audit,
	}
}

func (uc *DeletePatient) Execute(ctx context.Context, actor authz.Actor, dni string) error {
	if err := actor.Can(authz.ResourcePatient, authz.ActionDelete); err != nil {
		return err
	}

	removedRecords := 0

	err := uc.repo.Atomic(ctx, func(tx clinic.Repository) error {

		// --------------------------------------------------
		// 1️⃣ Sin turnos asociados
		// --------------------------------------------------
		appointments, err := tx.Appointments(ctx)
		if err != nil {
			return err
		}
		linked := 0
		for _, ap := range appointments {
			if ap.DNIPaciente == dni {
				linked++
			}
		}
		if linked > 0 {
			return httperr.Integrity(
				"patient_has_appointments",
				fmt.Sprintf(
					"No se puede eliminar el paciente. Tiene %d turno(s) asociado(s). Primero cancele todos sus turnos.",
					linked,
				),
			)
		}

		// --------------------------------------------------
		// 2️⃣ Paciente
		// --------------------------------------------------
		list, err := tx.Patients(ctx)
		if err != nil {
			return err
		}
		i := patient.Find(list, dni)
		if i < 0 {
			return errPatientNotFound()
		}
		list = append(list[:i], list[i+1:]...)
		if err := tx.SavePatients(ctx, list); err != nil {
			return err
		}

		// --------------------------------------------------
		// 3️⃣ Historias clínicas
		// --------------------------------------------------
		records, err := tx.ClinicalRecords(ctx)
		if err != nil {
			return err
		}
		kept := make([]models.ClinicalRecord, 0, len(records))
		for _, r := range records {
			if r.DNI == dni {
				removedRecords++
				continue
			}
			kept = append(kept, r)
		}
		return tx.SaveClinicalRecords(ctx, kept)
	})
	if err != nil {
		return err
	}

	uc.audit.Dispatch(event(actor, "patient_deleted", dni, map[string]int{
		"historias_eliminadas": removedRecords,
	}))

	return nil
}

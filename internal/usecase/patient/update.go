package patient

import (
	"context"
	"strings"

	"github.com/BruksfildServices01/clinica-turnos/internal/audit"
	"github.com/BruksfildServices01/clinica-turnos/internal/authz"
	"github.com/BruksfildServices01/clinica-turnos/internal/domain/clinic"
	"github.com/BruksfildServices01/clinica-turnos/internal/domain/patient"
	"github.com/BruksfildServices01/clinica-turnos/internal/models"
	"github.com/BruksfildServices01/clinica-turnos/internal/validators"
)

// UpdatePatientInput carries the new field values. FechaNacimiento is the
// only optional one; nil keeps the stored date.
type UpdatePatientInput struct {
	Nombre           string
	Apellido         string
	DNI              string
	ObraSocial       string
	NumeroObraSocial string
	Celular          string
	FechaNacimiento  *string
}

type UpdatePatient struct {
	repo  clinic.Repository
	audit *audit.Dispatcher
}

func NewUpdatePatient(
	repo clinic.Repository,
	audit *audit.Dispatcher,
) *UpdatePatient {
	return &UpdatePatient{
		repo:  repo,
		audit: audit,
	}
}

// Execute updates the patient currently registered under dni. The DNI
// itself may change as long as no other patient uses the new one.
func (uc *UpdatePatient) Execute(
	ctx context.Context,
	actor authz.Actor,
	dni string,
	in UpdatePatientInput,
) (*models.Patient, error) {

	if err := actor.Can(authz.ResourcePatient, authz.ActionUpdate); err != nil {
		return nil, err
	}

	if err := validators.Required(
		validators.F("nombre", in.Nombre),
		validators.F("apellido", in.Apellido),
		validators.F("dni", in.DNI),
		validators.F("obra_social", in.ObraSocial),
		validators.F("numero_obra_social", in.NumeroObraSocial),
		validators.F("celular", in.Celular),
	); err != nil {
		return nil, err
	}
	newDNI := strings.TrimSpace(in.DNI)
	if err := validators.DNI(newDNI); err != nil {
		return nil, err
	}

	var updated models.Patient

	err := uc.repo.Atomic(ctx, func(tx clinic.Repository) error {
		list, err := tx.Patients(ctx)
		if err != nil {
			return err
		}

		if newDNI != dni && patient.Find(list, newDNI) >= 0 {
			return errDuplicateDNI()
		}

		i := patient.Find(list, dni)
		if i < 0 {
			return errPatientNotFound()
		}

		p := list[i]
		p.DNI = newDNI
		p.Nombre = in.Nombre
		p.Apellido = in.Apellido
		p.ObraSocial = in.ObraSocial
		p.NumeroObraSocial = in.NumeroObraSocial
		p.Celular = in.Celular
		if in.FechaNacimiento != nil {
			p.FechaNacimiento = *in.FechaNacimiento
		}

		list[i] = p
		updated = p

		return tx.SavePatients(ctx, list)
	})
	if err != nil {
		return nil, err
	}

	uc.audit.Dispatch(event(actor, "patient_updated", updated.DNI, map[string]string{
		"dni_anterior": dni,
	}))

	return &updated, nil
}

package patient

import (
	"context"
	"strings"

	"github.com/BruksfildServices01/clinica-turnos/internal/audit"
	"github.com/BruksfildServices01/clinica-turnos/internal/authz"
	"github.com/BruksfildServices01/clinica-turnos/internal/domain/clinic"
	"github.com/BruksfildServices01/clinica-turnos/internal/domain/patient"
	"github.com/BruksfildServices01/clinica-turnos/internal/models"
	"github.com/BruksfildServices01/clinica-turnos/internal/timezone"
	"github.com/BruksfildServices01/clinica-turnos/internal/validators"
)

type CreatePatientInput struct {
	Nombre           string
	Apellido         string
	DNI              string
	ObraSocial       string
	NumeroObraSocial string
	Celular          string
	FechaNacimiento  string
}

type CreatePatient struct {
	repo  clinic.Repository
	audit *audit.Dispatcher
	clock timezone.Clock
}

func NewCreatePatient(
	repo clinic.Repository,
	audit *audit.Dispatcher,
	clock timezone.Clock,
) *CreatePatient {
	return &CreatePatient{
		repo:  repo,
		audit: audit,
		clock: clock,
	}
}

func (uc *CreatePatient) Execute(
	ctx context.Context,
	actor authz.Actor,
	in CreatePatientInput,
) (*models.Patient, error) {

	if err := actor.Can(authz.ResourcePatient, authz.ActionCreate); err != nil {
		return nil, err
	}

	if err := validators.Required(
		validators.F("nombre", in.Nombre),
		validators.F("apellido", in.Apellido),
		validators.F("dni", in.DNI),
		validators.F("obra_social", in.ObraSocial),
		validators.F("numero_obra_social", in.NumeroObraSocial),
		validators.F("celular", in.Celular),
		validators.F("fecha_nacimiento", in.FechaNacimiento),
	); err != nil {
		return nil, err
	}
	dni := strings.TrimSpace(in.DNI)
	if err := validators.DNI(dni); err != nil {
		return nil, err
	}

	created := models.Patient{
		DNI:              dni,
		Nombre:           in.Nombre,
		Apellido:         in.Apellido,
		ObraSocial:       in.ObraSocial,
		NumeroObraSocial: in.NumeroObraSocial,
		Celular:          in.Celular,
		FechaNacimiento:  in.FechaNacimiento,
	}

	err := uc.repo.Atomic(ctx, func(tx clinic.Repository) error {
		list, err := tx.Patients(ctx)
		if err != nil {
			return err
		}
		if patient.Find(list, dni) >= 0 {
			return errDuplicateDNI()
		}

		created.FechaRegistro = uc.clock.Now().Format(timezone.StampLayout)
		return tx.SavePatients(ctx, append(list, created))
	})
	if err != nil {
		return nil, err
	}

	uc.audit.Dispatch(event(actor, "patient_created", dni, nil))

	created.Edad = patient.Age(created.FechaNacimiento, uc.clock.Now())
	return &created, nil
}

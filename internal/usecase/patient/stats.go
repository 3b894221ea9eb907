package patient

import (
	"context"
	"strings"

	"github.com/BruksfildServices01/clinica-turnos/internal/authz"
	"github.com/BruksfildServices01/clinica-turnos/internal/domain/clinic"
	"github.com/BruksfildServices01/clinica-turnos/internal/domain/patient"
	"github.com/BruksfildServices01/clinica-turnos/internal/timezone"
)

type LastRegistered struct {
	Nombre   string `json:"nombre"`
	Apellido string `json:"apellido"`
}

type RegistryStats struct {
	Total          int             `json:"total"`
	PacientesHoy   int             `json:"pacientes_hoy"`
	UltimoRegistro *LastRegistered `json:"ultimo_registro"`
}

type PatientStats struct {
	repo  clinic.Repository
	clock timezone.Clock
}

func NewPatientStats(repo clinic.Repository, clock timezone.Clock) *PatientStats {
	return &PatientStats{
		repo:  repo,
		clock: clock,
	}
}

// Execute counts distinct patients, those registered today, and names the
// latest registration by fecha_registro (storage order when none has one).
func (uc *PatientStats) Execute(ctx context.Context, actor authz.Actor) (*RegistryStats, error) {
	if err := actor.Can(authz.ResourcePatient, authz.ActionRead); err != nil {
		return nil, err
	}

	raw, err := uc.repo.Patients(ctx)
	if err != nil {
		return nil, err
	}
	list := patient.Dedup(raw)
	today := uc.clock.Today()

	out := &RegistryStats{Total: len(list)}

	latest := -1
	for i, p := range list {
		if strings.HasPrefix(p.FechaRegistro, today) {
			out.PacientesHoy++
		}
		if p.FechaRegistro == "" {
			continue
		}
		if latest < 0 || p.FechaRegistro > list[latest].FechaRegistro {
			latest = i
		}
	}
	if latest < 0 && len(list) > 0 {
		latest = len(list) - 1
	}
	if latest >= 0 {
		out.UltimoRegistro = &LastRegistered{
			Nombre:   list[latest].Nombre,
			Apellido: list[latest].Apellido,
		}
	}

	return out, nil
}

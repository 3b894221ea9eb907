package report

import (
	"context"
	"math"
	"sort"

	"github.com/BruksfildServices01/clinica-turnos/internal/authz"
	"github.com/BruksfildServices01/clinica-turnos/internal/domain/clinic"
	"github.com/BruksfildServices01/clinica-turnos/internal/domain/patient"
	"github.com/BruksfildServices01/clinica-turnos/internal/timezone"
)

type AgeStats struct {
	Promedio float64        `json:"promedio"`
	Rangos   map[string]int `json:"rangos"`
}

type ActivePatient struct {
	Nombre string `json:"nombre"`
	Turnos int    `json:"turnos"`
}

type PatientsReport struct {
	TotalPacientes     int             `json:"total_pacientes"`
	PacientesSinTurnos int             `json:"pacientes_sin_turnos"`
	ObrasSociales      map[string]int  `json:"obras_sociales"`
	EstadisticasEdad   AgeStats        `json:"estadisticas_edad"`
	PacientesActivos   []ActivePatient `json:"pacientes_activos"`
}

const topActive = 10

type ReportPatients struct {
	repo  clinic.Repository
	clock timezone.Clock
}

func NewReportPatients(repo clinic.Repository, clock timezone.Clock) *ReportPatients {
	return &ReportPatients{
		repo:  repo,
		clock: clock,
	}
}

func ageBucket(age int) string {
	switch {
	case age <= 18:
		return "0-18"
	case age <= 30:
		return "19-30"
	case age <= 50:
		return "31-50"
	case age <= 65:
		return "51-65"
	}
	return "65+"
}

func (uc *ReportPatients) Execute(ctx context.Context, actor authz.Actor) (*PatientsReport, error) {
	if err := actor.Can(authz.ResourceReport, authz.ActionRead); err != nil {
		return nil, err
	}

	patients, err := uc.repo.Patients(ctx)
	if err != nil {
		return nil, err
	}
	patients = patient.Dedup(patients)
	appointments, err := uc.repo.Appointments(ctx)
	if err != nil {
		return nil, err
	}

	out := &PatientsReport{
		TotalPacientes: len(patients),
		ObrasSociales:  map[string]int{},
		EstadisticasEdad: AgeStats{Rangos: map[string]int{
			"0-18": 0, "19-30": 0, "31-50": 0, "51-65": 0, "65+": 0,
		}},
		PacientesActivos: []ActivePatient{},
	}

	today := uc.clock.Now()
	sum, counted := 0, 0
	for _, p := range patients {
		out.ObrasSociales[insurerLabel(p.ObraSocial)]++

		if age := patient.Age(p.FechaNacimiento, today); age != nil && *age > 0 {
			sum += *age
			counted++
			out.EstadisticasEdad.Rangos[ageBucket(*age)]++
		}
	}
	if counted > 0 {
		out.EstadisticasEdad.Promedio = math.Round(float64(sum)/float64(counted)*10) / 10
	}

	perPatient := map[string]int{}
	order := []string{}
	for _, ap := range appointments {
		if ap.DNIPaciente == "" {
			continue
		}
		if perPatient[ap.DNIPaciente] == 0 {
			order = append(order, ap.DNIPaciente)
		}
		perPatient[ap.DNIPaciente]++
	}

	withAppointments := 0
	for _, p := range patients {
		if perPatient[p.DNI] > 0 {
			withAppointments++
		}
	}
	out.PacientesSinTurnos = out.TotalPacientes - withAppointments

	sort.SliceStable(order, func(i, j int) bool {
		return perPatient[order[i]] > perPatient[order[j]]
	})
	if len(order) > topActive {
		order = order[:topActive]
	}
	for _, dni := range order {
		if i := patient.Find(patients, dni); i >= 0 {
			out.PacientesActivos = append(out.PacientesActivos, ActivePatient{
				Nombre: patients[i].FullName(),
				Turnos: perPatient[dni],
			})
		}
	}

	return out, nil
}

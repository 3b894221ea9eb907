package clinicalrecord

import (
	"context"
	"sort"
	"strings"

	"github.com/BruksfildServices01/clinica-turnos/internal/authz"
	"github.com/BruksfildServices01/clinica-turnos/internal/domain/clinic"
	"github.com/BruksfildServices01/clinica-turnos/internal/domain/patient"
	"github.com/BruksfildServices01/clinica-turnos/internal/models"
)

const (
	defaultPerPage = 10
	maxPerPage     = 50
)

type SearchInput struct {
	Busqueda   string
	Pagina     int
	PorPagina  int
	OrdenarPor string // apellido | nombre | fecha | dni
	Orden      string // asc | desc
}

// PatientHistory summarises the consultations of one patient.
type PatientHistory struct {
	Paciente       models.Patient        `json:"paciente"`
	UltimaConsulta string                `json:"ultima_consulta"`
	TotalConsultas int                   `json:"total_consultas"`
	UltimaHistoria models.ClinicalRecord `json:"ultima_historia"`
}

type SearchPage struct {
	Pacientes    []PatientHistory `json:"pacientes"`
	Total        int              `json:"total"`
	Pagina       int              `json:"pagina"`
	TotalPaginas int              `json:"total_paginas"`
	PorPagina    int              `json:"por_pagina"`
}

// SearchRecords groups consultations per registered patient. Records whose
// DNI matches no patient are left out.
type SearchRecords struct {
	repo clinic.Repository
}

func NewSearchRecords(repo clinic.Repository) *SearchRecords {
	return &SearchRecords{repo: repo}
}

func (uc *SearchRecords) Execute(
	ctx context.Context,
	actor authz.Actor,
	in SearchInput,
) (*SearchPage, error) {

	if err := actor.Can(authz.ResourceClinicalRecord, authz.ActionRead); err != nil {
		return nil, err
	}

	records, err := uc.repo.ClinicalRecords(ctx)
	if err != nil {
		return nil, err
	}
	patients, err := uc.repo.Patients(ctx)
	if err != nil {
		return nil, err
	}
	byDNI := map[string]models.Patient{}
	for _, p := range patient.Dedup(patients) {
		byDNI[p.DNI] = p
	}

	q := strings.ToLower(strings.TrimSpace(in.Busqueda))

	// --------------------------------------------------
	// Agrupar por paciente, en orden de aparición
	// --------------------------------------------------
	groups := []*PatientHistory{}
	index := map[string]*PatientHistory{}
	for _, r := range records {
		p, ok := byDNI[r.DNI]
		if !ok {
			continue
		}
		if q != "" && !patient.Matches(p, q) {
			continue
		}

		g, ok := index[r.DNI]
		if !ok {
			g = &PatientHistory{
				Paciente:       p,
				UltimaConsulta: r.FechaConsulta,
				UltimaHistoria: r,
			}
			index[r.DNI] = g
			groups = append(groups, g)
		}
		g.TotalConsultas++
		if r.FechaConsulta > g.UltimaConsulta {
			g.UltimaConsulta = r.FechaConsulta
			g.UltimaHistoria = r
		}
	}

	sortGroups(groups, in.OrdenarPor, in.Orden == "desc")

	// --------------------------------------------------
	// Paginación
	// --------------------------------------------------
	perPage := in.PorPagina
	if perPage <= 0 {
		perPage = defaultPerPage
	}
	if perPage > maxPerPage {
		perPage = maxPerPage
	}
	page := in.Pagina
	if page < 1 {
		page = 1
	}

	total := len(groups)
	start := (page - 1) * perPage
	if start > total {
		start = total
	}
	end := start + perPage
	if end > total {
		end = total
	}

	out := make([]PatientHistory, 0, end-start)
	for _, g := range groups[start:end] {
		out = append(out, *g)
	}

	return &SearchPage{
		Pacientes:    out,
		Total:        total,
		Pagina:       page,
		TotalPaginas: (total + perPage - 1) / perPage,
		PorPagina:    perPage,
	}, nil
}

func sortGroups(groups []*PatientHistory, by string, desc bool) {
	var key func(g *PatientHistory) string
	switch by {
	case "", "apellido":
		key = func(g *PatientHistory) string { return strings.ToLower(g.Paciente.Apellido) }
	case "nombre":
		key = func(g *PatientHistory) string { return strings.ToLower(g.Paciente.Nombre) }
	case "fecha":
		key = func(g *PatientHistory) string { return g.UltimaConsulta }
	case "dni":
		key = func(g *PatientHistory) string { return g.Paciente.DNI }
	default:
		return
	}

	sort.SliceStable(groups, func(i, j int) bool {
		if desc {
			return key(groups[i]) > key(groups[j])
		}
		return key(groups[i]) < key(groups[j])
	})
}

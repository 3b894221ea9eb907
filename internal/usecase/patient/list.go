package patient

import (
	"context"
	"strings"

	"github.com/BruksfildServices01/clinica-turnos/internal/authz"
	"github.com/BruksfildServices01/clinica-turnos/internal/domain/clinic"
	"github.com/BruksfildServices01/clinica-turnos/internal/domain/patient"
	"github.com/BruksfildServices01/clinica-turnos/internal/models"
	"github.com/BruksfildServices01/clinica-turnos/internal/timezone"
)

const (
	DefaultPerPage = 10
	MaxPerPage     = 50
)

type SearchInput struct {
	Busqueda  string
	Pagina    int
	PorPagina int
}

type SearchPage struct {
	Pacientes    []models.Patient `json:"pacientes"`
	Total        int              `json:"total"`
	Pagina       int              `json:"pagina"`
	TotalPaginas int              `json:"total_paginas"`
	PorPagina    int              `json:"por_pagina"`
}

// ListPatients reads the registry deduplicated by DNI, with ages derived
// for today and sorted by surname.
type ListPatients struct {
	repo  clinic.Repository
	clock timezone.Clock
}

func NewListPatients(repo clinic.Repository, clock timezone.Clock) *ListPatients {
	return &ListPatients{
		repo:  repo,
		clock: clock,
	}
}

func (uc *ListPatients) load(ctx context.Context, actor authz.Actor) ([]models.Patient, error) {
	if err := actor.Can(authz.ResourcePatient, authz.ActionRead); err != nil {
		return nil, err
	}

	raw, err := uc.repo.Patients(ctx)
	if err != nil {
		return nil, err
	}

	list := patient.Dedup(raw)
	patient.WithAge(list, uc.clock.Now())
	patient.SortBySurname(list)
	return list, nil
}

func (uc *ListPatients) All(ctx context.Context, actor authz.Actor) ([]models.Patient, error) {
	return uc.load(ctx, actor)
}

// Search filters by a case-insensitive substring of DNI, surname or name
// and returns one page. PorPagina is capped at MaxPerPage and the page
// number is clamped into range.
func (uc *ListPatients) Search(
	ctx context.Context,
	actor authz.Actor,
	in SearchInput,
) (*SearchPage, error) {

	list, err := uc.load(ctx, actor)
	if err != nil {
		return nil, err
	}

	q := strings.ToLower(strings.TrimSpace(in.Busqueda))
	if q != "" {
		matched := make([]models.Patient, 0, len(list))
		for _, p := range list {
			if patient.Matches(p, q) {
				matched = append(matched, p)
			}
		}
		list = matched
	}

	perPage := in.PorPagina
	if perPage <= 0 {
		perPage = DefaultPerPage
	}
	if perPage > MaxPerPage {
		perPage = MaxPerPage
	}

	total := len(list)
	pages := (total + perPage - 1) / perPage
	if pages < 1 {
		pages = 1
	}

	page := in.Pagina
	if page < 1 {
		page = 1
	}
	if page > pages {
		page = pages
	}

	start := (page - 1) * perPage
	end := start + perPage
	if end > total {
		end = total
	}

	return &SearchPage{
		Pacientes:    list[start:end],
		Total:        total,
		Pagina:       page,
		TotalPaginas: pages,
		PorPagina:    perPage,
	}, nil
}

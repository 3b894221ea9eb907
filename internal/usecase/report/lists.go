package report

import (
	"context"
	"sort"
	"strings"

	"github.com/BruksfildServices01/clinica-turnos/internal/authz"
	"github.com/BruksfildServices01/clinica-turnos/internal/domain/clinic"
)

// FilterLists feeds the report filters: doctors seen in turnos and the
// insurers patients declared.
type FilterLists struct {
	repo clinic.Repository
}

func NewFilterLists(repo clinic.Repository) *FilterLists {
	return &FilterLists{repo: repo}
}

func (uc *FilterLists) Doctors(ctx context.Context, actor authz.Actor) ([]string, error) {
	if err := actor.Can(authz.ResourceReport, authz.ActionRead); err != nil {
		return nil, err
	}

	list, err := uc.repo.Appointments(ctx)
	if err != nil {
		return nil, err
	}

	seen := map[string]bool{}
	out := []string{}
	for _, ap := range list {
		m := strings.TrimSpace(ap.Medico)
		if m == "" || seen[m] {
			continue
		}
		seen[m] = true
		out = append(out, m)
	}
	sort.Strings(out)
	return out, nil
}

// Insurers lists distinct insurer names, normalised to a leading capital.
// "0" marks a private patient and is skipped.
func (uc *FilterLists) Insurers(ctx context.Context, actor authz.Actor) ([]string, error) {
	if err := actor.Can(authz.ResourceReport, authz.ActionRead); err != nil {
		return nil, err
	}

	list, err := uc.repo.Patients(ctx)
	if err != nil {
		return nil, err
	}

	seen := map[string]bool{}
	out := []string{}
	for _, p := range list {
		name := strings.TrimSpace(p.ObraSocial)
		if name == "" || name == "0" {
			continue
		}
		name = capitalize(name)
		if seen[name] {
			continue
		}
		seen[name] = true
		out = append(out, name)
	}
	sort.Strings(out)
	return out, nil
}

package agenda

import (
	"context"

	"github.com/BruksfildServices01/clinica-turnos/internal/audit"
	"github.com/BruksfildServices01/clinica-turnos/internal/authz"
	"github.com/BruksfildServices01/clinica-turnos/internal/domain/appointment"
	"github.com/BruksfildServices01/clinica-turnos/internal/domain/clinic"
	"github.com/BruksfildServices01/clinica-turnos/internal/httperr"
	"github.com/BruksfildServices01/clinica-turnos/internal/models"
)

type GetAgenda struct {
	repo clinic.Repository
}

func NewGetAgenda(repo clinic.Repository) *GetAgenda {
	return &GetAgenda{repo: repo}
}

// Execute returns the whole availability grid as stored.
func (uc *GetAgenda) Execute(ctx context.Context, actor authz.Actor) (models.Agenda, error) {
	if err := actor.Can(authz.ResourceAgenda, authz.ActionRead); err != nil {
		return nil, err
	}
	return uc.repo.Agenda(ctx)
}

// SetAgendaDay replaces one doctor's slot list for one weekday. Slots are
// stored exactly as given, duplicates and order included.
type SetAgendaDay struct {
	repo  clinic.Repository
	audit *audit.Dispatcher
}

func NewSetAgendaDay(
	repo clinic.Repository,
	audit *audit.Dispatcher,
) *SetAgendaDay {
	return &SetAgendaDay{
		repo:  repo,
		audit: audit,
	}
}

func (uc *SetAgendaDay) Execute(
	ctx context.Context,
	actor authz.Actor,
	medico string,
	dia string,
	horarios []string,
) (models.Agenda, error) {

	if err := actor.Can(authz.ResourceAgenda, authz.ActionUpdate); err != nil {
		return nil, err
	}

	day, ok := appointment.NormalizeWorkday(dia)
	if !ok {
		return nil, httperr.Validation("invalid_day", "Día inválido.")
	}
	if horarios == nil {
		horarios = []string{}
	}

	var out models.Agenda

	err := uc.repo.Atomic(ctx, func(tx clinic.Repository) error {
		agenda, err := tx.Agenda(ctx)
		if err != nil {
			return err
		}
		if agenda == nil {
			agenda = models.Agenda{}
		}
		if agenda[medico] == nil {
			agenda[medico] = map[string][]string{}
		}

		agenda[medico][day] = horarios
		out = agenda

		return tx.SaveAgenda(ctx, agenda)
	})
	if err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		Actor:    actor.User,
		Role:     string(actor.Role),
		Action:   "agenda_updated",
		Entity:   "agenda",
		EntityID: medico + "/" + day,
		Metadata: map[string]any{"horarios": horarios},
	})

	return out, nil
}

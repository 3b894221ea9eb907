package appointment

import (
	"context"

	"github.com/BruksfildServices01/clinica-turnos/internal/audit"
	"github.com/BruksfildServices01/clinica-turnos/internal/authz"
	"github.com/BruksfildServices01/clinica-turnos/internal/domain/appointment"
	"github.com/BruksfildServices01/clinica-turnos/internal/domain/clinic"
	"github.com/BruksfildServices01/clinica-turnos/internal/models"
	"github.com/BruksfildServices01/clinica-turnos/internal/timezone"
)

// ExpireStaleAppointments deletes turnos still "sin atender" more than a day
// after their slot. Everything else, including rows whose date or time does
// not parse, is kept.
type ExpireStaleAppointments struct {
	repo  clinic.Repository
	audit *audit.Dispatcher
	clock timezone.Clock
}

func NewExpireStaleAppointments(
	repo clinic.Repository,
	audit *audit.Dispatcher,
	clock timezone.Clock,
) *ExpireStaleAppointments {
	return &ExpireStaleAppointments{
		repo:  repo,
		audit: audit,
		clock: clock,
	}
}

// Execute returns how many turnos were removed.
func (uc *ExpireStaleAppointments) Execute(
	ctx context.Context,
	actor authz.Actor,
) (int, error) {

	if err := actor.Can(authz.ResourceAppointment, authz.ActionExpire); err != nil {
		return 0, err
	}

	now := uc.clock.Now()
	removed := 0

	err := uc.repo.Atomic(ctx, func(tx clinic.Repository) error {
		list, err := tx.Appointments(ctx)
		if err != nil {
			return err
		}

		kept := make([]models.Appointment, 0, len(list))
		for _, ap := range list {
			if appointment.IsStale(ap, now) {
				removed++
				continue
			}
			kept = append(kept, ap)
		}

		if removed == 0 {
			return nil
		}
		return tx.SaveAppointments(ctx, kept)
	})
	if err != nil {
		return 0, err
	}

	if removed > 0 {
		uc.audit.Dispatch(audit.Event{
			Actor:    actor.User,
			Role:     string(actor.Role),
			Action:   "appointments_expired",
			Entity:   "appointment",
			Metadata: map[string]int{"eliminados": removed},
		})
	}

	return removed, nil
}

package clinicalrecord

import (
	"fmt"
	"strings"
	"time"

	"github.com/BruksfildServices01/clinica-turnos/internal/audit"
	"github.com/BruksfildServices01/clinica-turnos/internal/authz"
	"github.com/BruksfildServices01/clinica-turnos/internal/httperr"
	"github.com/BruksfildServices01/clinica-turnos/internal/models"
	"github.com/BruksfildServices01/clinica-turnos/internal/timezone"
	"github.com/BruksfildServices01/clinica-turnos/internal/validators"
)

// RecordInput is a consultation as sent by the doctor. Nil optional fields
// are left unset on create and untouched on update.
type RecordInput struct {
	DNI            string
	Medico         string
	ConsultaMedica string

	FechaConsulta *string
	Diagnostico   *string
	Tratamiento   *string
	Observaciones *string
}

func validate(in RecordInput, now time.Time) error {
	if err := validators.Required(
		validators.F("dni", in.DNI),
		validators.F("consulta_medica", in.ConsultaMedica),
		validators.F("medico", in.Medico),
	); err != nil {
		return err
	}
	if !validators.IsDNI(in.DNI) {
		return httperr.Validation("invalid_dni", "DNI inválido.")
	}

	if in.FechaConsulta != nil && *in.FechaConsulta != "" {
		f, err := time.ParseInLocation("2006-01-02", *in.FechaConsulta, now.Location())
		if err != nil {
			return httperr.Validation(
				"invalid_date",
				"Formato de fecha inválido en 'fecha_consulta'.",
			)
		}
		if f.After(now) {
			return httperr.Validation(
				"future_date",
				"La fecha 'fecha_consulta' no puede ser futura.",
			)
		}
	}
	return nil
}

func apply(r *models.ClinicalRecord, in RecordInput) {
	r.DNI = strings.TrimSpace(in.DNI)
	r.Medico = in.Medico
	r.ConsultaMedica = in.ConsultaMedica
	if in.FechaConsulta != nil {
		r.FechaConsulta = *in.FechaConsulta
	}
	if in.Diagnostico != nil {
		r.Diagnostico = *in.Diagnostico
	}
	if in.Tratamiento != nil {
		r.Tratamiento = *in.Tratamiento
	}
	if in.Observaciones != nil {
		r.Observaciones = *in.Observaciones
	}
}

func nextID(list []models.ClinicalRecord) int {
	max := 0
	for _, r := range list {
		if r.ID > max {
			max = r.ID
		}
	}
	return max + 1
}

func errRecordNotFound() error {
	return httperr.NotFoundErr("record_not_found", "Historia no encontrada.")
}

func event(actor authz.Actor, action, dni string, meta any) audit.Event {
	return audit.Event{
		Actor:    actor.User,
		Role:     string(actor.Role),
		Action:   action,
		Entity:   "clinical_record",
		EntityID: dni,
		Metadata: meta,
	}
}

func stamp(now time.Time) string {
	return now.Format(timezone.StampLayout)
}

func describe(r models.ClinicalRecord) map[string]string {
	return map[string]string{"id": fmt.Sprint(r.ID), "medico": r.Medico}
}

package clinicalrecord

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/clinica-turnos/internal/authz"
	"github.com/BruksfildServices01/clinica-turnos/internal/httperr"
	"github.com/BruksfildServices01/clinica-turnos/internal/infra/repository"
	"github.com/BruksfildServices01/clinica-turnos/internal/infra/store"
	"github.com/BruksfildServices01/clinica-turnos/internal/models"
	"github.com/BruksfildServices01/clinica-turnos/internal/timezone"
)

var medico = authz.Actor{User: "Dr. Lopez", Role: authz.RoleMedico}

func fixedClock() timezone.Clock {
	return func() time.Time {
		return time.Date(2024, 6, 10, 16, 0, 0, 0, timezone.Location(""))
	}
}

func ptr(s string) *string { return &s }

func newRepo(t *testing.T) *repository.Collections {
	t.Helper()
	repo := repository.NewCollections(store.NewMemoryStore())
	require.NoError(t, repo.SavePatients(context.Background(), []models.Patient{
		{DNI: "30111222", Nombre: "Ana", Apellido: "Gómez"},
		{DNI: "28999000", Nombre: "Luis", Apellido: "Pérez"},
		{DNI: "25000111", Nombre: "Bea", Apellido: "Alvarez"},
	}))
	return repo
}

func TestCreateRecordValidation(t *testing.T) {
	ctx := context.Background()
	uc := NewCreateRecord(newRepo(t), nil, fixedClock())

	tests := []struct {
		name string
		in   RecordInput
		code string
	}{
		{"missing consultation", RecordInput{DNI: "30111222", Medico: "Dr. Lopez"}, "missing_field"},
		{"bad dni", RecordInput{DNI: "3011", Medico: "Dr. Lopez", ConsultaMedica: "Control"}, "invalid_dni"},
		{"bad date", RecordInput{DNI: "30111222", Medico: "Dr. Lopez", ConsultaMedica: "Control", FechaConsulta: ptr("10/06/2024")}, "invalid_date"},
		{"future date", RecordInput{DNI: "30111222", Medico: "Dr. Lopez", ConsultaMedica: "Control", FechaConsulta: ptr("2024-06-11")}, "future_date"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := uc.Execute(ctx, medico, tt.in)
			assert.True(t, httperr.IsBusiness(err, tt.code), "got %v", err)
		})
	}
}

func TestRecordLifecycle(t *testing.T) {
	ctx := context.Background()
	repo := newRepo(t)
	create := NewCreateRecord(repo, nil, fixedClock())

	first, err := create.Execute(ctx, medico, RecordInput{
		DNI: "30111222", Medico: "Dr. Lopez", ConsultaMedica: "Control anual",
		FechaConsulta: ptr("2024-06-10"), Diagnostico: ptr("Sano"),
	})
	require.NoError(t, err)
	assert.Equal(t, 1, first.ID)
	assert.NotEmpty(t, first.FechaCreacion)

	second, err := create.Execute(ctx, medico, RecordInput{
		DNI: "30111222", Medico: "Dr. Lopez", ConsultaMedica: "Seguimiento",
	})
	require.NoError(t, err)
	assert.Equal(t, 2, second.ID)

	updated, err := NewUpdateRecord(repo, nil, fixedClock()).Execute(ctx, medico, "30111222", RecordInput{
		DNI: "30111222", Medico: "Dr. Lopez", ConsultaMedica: "Control anual", Tratamiento: ptr("Ninguno"),
	})
	require.NoError(t, err)
	assert.Equal(t, 1, updated.ID)
	assert.Equal(t, "Sano", updated.Diagnostico)
	assert.Equal(t, "Ninguno", updated.Tratamiento)

	got, err := NewGetRecords(repo).ByDNI(ctx, medico, "30111222")
	require.NoError(t, err)
	assert.Equal(t, "Ninguno", got.Tratamiento)

	del := NewDeleteRecords(repo, nil)
	require.NoError(t, del.Execute(ctx, medico, "30111222"))
	assert.True(t, httperr.IsBusiness(del.Execute(ctx, medico, "30111222"), "record_not_found"))

	_, err = NewGetRecords(repo).ByDNI(ctx, medico, "30111222")
	assert.True(t, httperr.IsBusiness(err, "record_not_found"))
}

func TestRecordsAreDoctorOnly(t *testing.T) {
	secretaria := authz.Actor{User: "recepcion", Role: authz.RoleSecretaria}
	_, err := NewGetRecords(newRepo(t)).All(context.Background(), secretaria)
	kind, _ := httperr.KindOf(err)
	assert.Equal(t, httperr.KindForbidden, kind)
}

func TestSearchRecordsGroupsAndSorts(t *testing.T) {
	ctx := context.Background()
	repo := newRepo(t)
	require.NoError(t, repo.SaveClinicalRecords(ctx, []models.ClinicalRecord{
		{ID: 1, DNI: "30111222", ConsultaMedica: "a", FechaConsulta: "2024-05-01"},
		{ID: 2, DNI: "28999000", ConsultaMedica: "b", FechaConsulta: "2024-06-01"},
		{ID: 3, DNI: "30111222", ConsultaMedica: "c", FechaConsulta: "2024-06-05"},
		{ID: 4, DNI: "25000111", ConsultaMedica: "d", FechaConsulta: "2024-01-01"},
		{ID: 5, DNI: "99999999", ConsultaMedica: "huérfana"},
	}))
	uc := NewSearchRecords(repo)

	page, err := uc.Execute(ctx, medico, SearchInput{})
	require.NoError(t, err)
	require.Equal(t, 3, page.Total)
	assert.Equal(t, "Alvarez", page.Pacientes[0].Paciente.Apellido)
	assert.Equal(t, "Gómez", page.Pacientes[1].Paciente.Apellido)
	assert.Equal(t, 2, page.Pacientes[1].TotalConsultas)
	assert.Equal(t, "2024-06-05", page.Pacientes[1].UltimaConsulta)
	assert.Equal(t, 3, page.Pacientes[1].UltimaHistoria.ID)

	page, err = uc.Execute(ctx, medico, SearchInput{OrdenarPor: "fecha", Orden: "desc"})
	require.NoError(t, err)
	assert.Equal(t, "30111222", page.Pacientes[0].Paciente.DNI)
	assert.Equal(t, "25000111", page.Pacientes[2].Paciente.DNI)

	page, err = uc.Execute(ctx, medico, SearchInput{Busqueda: "pérez"})
	require.NoError(t, err)
	require.Len(t, page.Pacientes, 1)
	assert.Equal(t, "28999000", page.Pacientes[0].Paciente.DNI)

	page, err = uc.Execute(ctx, medico, SearchInput{PorPagina: 2, Pagina: 5})
	require.NoError(t, err)
	assert.Empty(t, page.Pacientes)
	assert.Equal(t, 2, page.TotalPaginas)
}

package authz

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/BruksfildServices01/clinica-turnos/internal/httperr"
)

func TestAllowed(t *testing.T) {
	tests := []struct {
		resource Resource
		action   Action
		role     Role
		want     bool
	}{
		{ResourcePatient, ActionCreate, RoleSecretaria, true},
		{ResourcePatient, ActionCreate, RoleMedico, false},
		{ResourceAppointment, ActionUpdateStatus, RoleMedico, true},
		{ResourceAppointment, ActionUpdateStatus, RoleSecretaria, false},
		{ResourceAppointment, ActionExpire, RoleSystem, true},
		{ResourceClinicalRecord, ActionRead, RoleSecretaria, false},
		{ResourceClinicalRecord, ActionRead, RoleMedico, true},
		{ResourcePayment, ActionReadAdminStats, RoleAdministrador, true},
		{ResourcePayment, ActionReadAdminStats, RoleSecretaria, false},
		{ResourceReport, ActionRead, RoleAdministrador, true},
		{ResourceBackup, ActionRead, RoleSystem, false},
		{ResourcePatient, ActionRead, Role("desconocido"), false},
	}

	for _, tt := range tests {
		got := Allowed(tt.resource, tt.action, tt.role)
		assert.Equal(t, tt.want, got, "%s %s %s", tt.resource, tt.action, tt.role)
	}
}

func TestActorCan(t *testing.T) {
	assert.NoError(t, System.Can(ResourceBackup, ActionCreate))

	err := Actor{User: "x", Role: RoleMedico}.Can(ResourceReport, ActionRead)
	kind, ok := httperr.KindOf(err)
	assert.True(t, ok)
	assert.Equal(t, httperr.KindForbidden, kind)
}

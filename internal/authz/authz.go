// Package authz decides which clinic role may perform which action on which
// resource. Handlers and use cases call Require before touching any data.
package authz

import "github.com/BruksfildServices01/clinica-turnos/internal/httperr"

type Role string

const (
	RoleSecretaria    Role = "secretaria"
	RoleMedico        Role = "medico"
	RoleAdministrador Role = "administrador"

	// RoleSystem is used by maintenance commands run outside HTTP.
	RoleSystem Role = "sistema"
)

type Resource string

const (
	ResourcePatient        Resource = "paciente"
	ResourceAppointment    Resource = "turno"
	ResourceAgenda         Resource = "agenda"
	ResourcePayment        Resource = "pago"
	ResourceClinicalRecord Resource = "historia"
	ResourceReport         Resource = "reporte"
	ResourceBackup         Resource = "backup"
)

type Action string

const (
	ActionRead           Action = "read"
	ActionCreate         Action = "create"
	ActionUpdate         Action = "update"
	ActionDelete         Action = "delete"
	ActionUpdateStatus   Action = "update_status"
	ActionReceive        Action = "receive"
	ActionSeat           Action = "seat"
	ActionCharge         Action = "charge"
	ActionExpire         Action = "expire"
	ActionReadStats      Action = "read_stats"
	ActionReadAdminStats Action = "read_admin_stats"
	ActionExport         Action = "export"
)

type capability struct {
	resource Resource
	action   Action
}

func roles(rs ...Role) map[Role]bool {
	m := make(map[Role]bool, len(rs))
	for _, r := range rs {
		m[r] = true
	}
	return m
}

var policy = map[capability]map[Role]bool{
	{ResourcePatient, ActionRead}:   roles(RoleSecretaria, RoleMedico),
	{ResourcePatient, ActionCreate}: roles(RoleSecretaria),
	{ResourcePatient, ActionUpdate}: roles(RoleSecretaria),
	{ResourcePatient, ActionDelete}: roles(RoleSecretaria),

	{ResourceAppointment, ActionRead}:         roles(RoleSecretaria, RoleMedico, RoleAdministrador),
	{ResourceAppointment, ActionCreate}:       roles(RoleSecretaria),
	{ResourceAppointment, ActionUpdate}:       roles(RoleSecretaria, RoleMedico),
	{ResourceAppointment, ActionDelete}:       roles(RoleSecretaria, RoleMedico),
	{ResourceAppointment, ActionUpdateStatus}: roles(RoleMedico),
	{ResourceAppointment, ActionReceive}:      roles(RoleSecretaria),
	{ResourceAppointment, ActionSeat}:         roles(RoleSecretaria, RoleAdministrador),
	{ResourceAppointment, ActionExpire}:       roles(RoleSecretaria, RoleSystem),

	{ResourceAgenda, ActionRead}:   roles(RoleSecretaria, RoleMedico),
	{ResourceAgenda, ActionUpdate}: roles(RoleSecretaria),

	{ResourcePayment, ActionRead}:           roles(RoleSecretaria, RoleAdministrador),
	{ResourcePayment, ActionCreate}:         roles(RoleSecretaria),
	{ResourcePayment, ActionDelete}:         roles(RoleSecretaria, RoleMedico),
	{ResourcePayment, ActionCharge}:         roles(RoleSecretaria),
	{ResourcePayment, ActionReadStats}:      roles(RoleSecretaria),
	{ResourcePayment, ActionReadAdminStats}: roles(RoleAdministrador),
	{ResourcePayment, ActionExport}:         roles(RoleSecretaria, RoleAdministrador),

	{ResourceClinicalRecord, ActionRead}:   roles(RoleMedico),
	{ResourceClinicalRecord, ActionCreate}: roles(RoleMedico),
	{ResourceClinicalRecord, ActionUpdate}: roles(RoleMedico),
	{ResourceClinicalRecord, ActionDelete}: roles(RoleMedico),

	{ResourceReport, ActionRead}: roles(RoleAdministrador),

	{ResourceBackup, ActionCreate}: roles(RoleAdministrador, RoleSystem),
	{ResourceBackup, ActionRead}:   roles(RoleAdministrador),
}

// Allowed is the capability predicate over (resource, action, role).
func Allowed(resource Resource, action Action, role Role) bool {
	return policy[capability{resource, action}][role]
}

// Require returns a forbidden BusinessError when role lacks the capability.
func Require(resource Resource, action Action, role Role) error {
	if Allowed(resource, action, role) {
		return nil
	}
	return httperr.Forbidden("forbidden", "No tiene permisos para realizar esta acción.")
}

// Actor is the authenticated user performing an operation.
type Actor struct {
	User string
	Role Role
}

// System is the actor for CLI maintenance commands.
var System = Actor{User: "sistema", Role: RoleSystem}

// Can is Require for the actor's role.
func (a Actor) Can(resource Resource, action Action) error {
	return Require(resource, action, a.Role)
}

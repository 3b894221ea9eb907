package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/clinica-turnos/internal/audit"
	"github.com/BruksfildServices01/clinica-turnos/internal/config"
	"github.com/BruksfildServices01/clinica-turnos/internal/domain/clinic"
	"github.com/BruksfildServices01/clinica-turnos/internal/handlers"
	"github.com/BruksfildServices01/clinica-turnos/internal/middleware"
	"github.com/BruksfildServices01/clinica-turnos/internal/timezone"
	ucAdmin "github.com/BruksfildServices01/clinica-turnos/internal/usecase/admin"
	ucAgenda "github.com/BruksfildServices01/clinica-turnos/internal/usecase/agenda"
	ucAppointment "github.com/BruksfildServices01/clinica-turnos/internal/usecase/appointment"
	ucRecord "github.com/BruksfildServices01/clinica-turnos/internal/usecase/clinicalrecord"
	ucPatient "github.com/BruksfildServices01/clinica-turnos/internal/usecase/patient"
	ucPayment "github.com/BruksfildServices01/clinica-turnos/internal/usecase/payment"
	ucReport "github.com/BruksfildServices01/clinica-turnos/internal/usecase/report"
	ucUser "github.com/BruksfildServices01/clinica-turnos/internal/usecase/user"
)

// Deps are the process-wide collaborators. Linker and Uploader may be nil
// when checkout links or backups are not configured.
type Deps struct {
	Repo     clinic.Repository
	Audit    *audit.Dispatcher
	Clock    timezone.Clock
	Linker   ucPayment.CheckoutLinker
	Uploader ucAdmin.Uploader
}

func RegisterRoutes(r *gin.Engine, deps Deps, cfg *config.Config) {
	repo := deps.Repo
	auditDispatcher := deps.Audit
	clock := deps.Clock

	// ======================================================
	// 🧠 USE CASES: PATIENTS
	// ======================================================
	listPatientsUC := ucPatient.NewListPatients(repo, clock)
	patientStatsUC := ucPatient.NewPatientStats(repo, clock)
	createPatientUC := ucPatient.NewCreatePatient(repo, auditDispatcher, clock)
	updatePatientUC := ucPatient.NewUpdatePatient(repo, auditDispatcher)
	deletePatientUC := ucPatient.NewDeletePatient(repo, auditDispatcher)

	// ======================================================
	// 🧠 USE CASES: APPOINTMENTS
	// ======================================================
	createAppointmentUC := ucAppointment.NewCreateAppointment(repo, auditDispatcher)
	updateStatusUC := ucAppointment.NewUpdateAppointmentStatus(repo, auditDispatcher)
	receivePatientUC := ucAppointment.NewReceivePatient(repo, auditDispatcher, clock)
	waitingRoomUC := ucAppointment.NewMoveToWaitingRoom(repo, auditDispatcher, clock)
	rescheduleUC := ucAppointment.NewRescheduleAppointment(repo, auditDispatcher)
	deleteAppointmentUC := ucAppointment.NewDeleteAppointment(repo, auditDispatcher)
	expireStaleUC := ucAppointment.NewExpireStaleAppointments(repo, auditDispatcher, clock)
	listAppointmentsUC := ucAppointment.NewListAppointments(repo, clock)
	queuesUC := ucAppointment.NewFrontDeskQueues(repo, clock)

	// ======================================================
	// 🧠 USE CASES: PAYMENTS
	// ======================================================
	listPaymentsUC := ucPayment.NewListPayments(repo)
	registerPaymentUC := ucPayment.NewRegisterPayment(repo, auditDispatcher, clock)
	deletePaymentUC := ucPayment.NewDeletePayment(repo, auditDispatcher)
	paymentStatsUC := ucPayment.NewPaymentStats(repo, clock)
	exportPaymentsUC := ucPayment.NewExportPayments(repo, clock)
	chargeAndSeatUC := ucPayment.NewChargeAndSeat(repo, auditDispatcher, clock)
	checkoutLinkUC := ucPayment.NewCreateCheckoutLink(repo, deps.Linker, auditDispatcher)

	// ======================================================
	// 🧩 HANDLERS
	// ======================================================
	authHandler := handlers.NewAuthHandler(ucUser.NewAuthenticate(repo), cfg)

	patientHandler := handlers.NewPatientHandler(
		listPatientsUC,
		patientStatsUC,
		createPatientUC,
		updatePatientUC,
		deletePatientUC,
		queuesUC,
	)

	appointmentHandler := handlers.NewAppointmentHandler(
		createAppointmentUC,
		updateStatusUC,
		receivePatientUC,
		waitingRoomUC,
		rescheduleUC,
		deleteAppointmentUC,
		expireStaleUC,
		listAppointmentsUC,
	)

	agendaHandler := handlers.NewAgendaHandler(
		ucAgenda.NewGetAgenda(repo),
		ucAgenda.NewSetAgendaDay(repo, auditDispatcher),
	)

	paymentHandler := handlers.NewPaymentHandler(
		listPaymentsUC,
		registerPaymentUC,
		deletePaymentUC,
		paymentStatsUC,
		exportPaymentsUC,
		chargeAndSeatUC,
		checkoutLinkUC,
	)

	recordHandler := handlers.NewClinicalRecordHandler(
		ucRecord.NewCreateRecord(repo, auditDispatcher, clock),
		ucRecord.NewGetRecords(repo),
		ucRecord.NewUpdateRecord(repo, auditDispatcher, clock),
		ucRecord.NewDeleteRecords(repo, auditDispatcher),
		ucRecord.NewSearchRecords(repo),
	)

	reportHandler := handlers.NewReportHandler(
		ucReport.NewReportAppointments(repo, clock),
		ucReport.NewReportPatients(repo, clock),
		ucReport.NewReportOccupancy(repo, clock),
		ucReport.NewReportCustom(repo, clock),
		ucReport.NewExecutiveDashboard(repo, clock),
		ucReport.NewReportIncome(repo, clock),
		ucReport.NewFilterLists(repo),
	)

	adminHandler := handlers.NewAdminHandler(
		ucAdmin.NewBackup(repo, deps.Uploader, auditDispatcher, clock),
		ucAdmin.NewDownload(repo),
	)

	// ======================================================
	// 🌐 API (JSON)
	// ======================================================
	api := r.Group("/api")
	{
		// ------------------------------
		// 🔐 AUTH
		// ------------------------------
		api.POST("/auth/login", authHandler.Login)

		// ------------------------------
		// 🔐 API PRIVADA
		// ------------------------------
		secured := api.Group("/")
		secured.Use(middleware.AuthMiddleware(cfg))
		{
			secured.GET("/session-info", authHandler.SessionInfo)

			// ------------------------------
			// PACIENTES
			// ------------------------------
			secured.GET("/pacientes", patientHandler.List)
			secured.GET("/pacientes/buscar", patientHandler.Search)
			secured.GET("/pacientes/estadisticas", patientHandler.Stats)
			secured.GET("/pacientes/recepcionados", patientHandler.Received)
			secured.GET("/pacientes/sala-espera", patientHandler.WaitingRoom)
			secured.GET("/pacientes/atendidos", patientHandler.AttendedUnpaid)
			secured.POST("/pacientes", patientHandler.Create)
			secured.PUT("/pacientes/:dni", patientHandler.Update)
			secured.DELETE("/pacientes/:dni", patientHandler.Delete)

			// ------------------------------
			// TURNOS
			// ------------------------------
			secured.GET("/turnos", appointmentHandler.List)
			secured.GET("/turnos/dia", appointmentHandler.ListByDate)
			secured.GET("/turnos/medico", appointmentHandler.ListForDoctor)
			secured.POST("/turnos", appointmentHandler.Create)
			secured.PUT("/turnos/estado", appointmentHandler.UpdateStatus)
			secured.PUT("/turnos/recepcionar", appointmentHandler.Receive)
			secured.PUT("/turnos/sala-espera", appointmentHandler.MoveToWaitingRoom)
			secured.POST("/turnos/limpiar-vencidos", appointmentHandler.ExpireStale)
			secured.PUT("/turnos/:dni/:fecha/:hora", appointmentHandler.Reschedule)
			secured.DELETE("/turnos/:dni/:fecha/:hora", appointmentHandler.Delete)

			// ------------------------------
			// AGENDA
			// ------------------------------
			secured.GET("/agenda", agendaHandler.Get)
			secured.PUT("/agenda/:medico/:dia", agendaHandler.SetDay)

			// ------------------------------
			// PAGOS
			// ------------------------------
			secured.GET("/pagos", paymentHandler.List)
			secured.POST("/pagos", paymentHandler.Register)
			secured.DELETE("/pagos/:id", paymentHandler.Delete)
			secured.POST("/pagos/:id/link", paymentHandler.CheckoutLink)
			secured.GET("/pagos/estadisticas", paymentHandler.Stats)
			secured.GET("/pagos/estadisticas-admin", paymentHandler.AdminStats)
			secured.GET("/pagos/exportar", paymentHandler.Export)
			secured.GET("/pagos/exportar-admin", paymentHandler.Export)
			secured.PUT("/pagos/cobrar-y-sala", paymentHandler.ChargeAndSeat)

			// ------------------------------
			// HISTORIAS CLÍNICAS
			// ------------------------------
			secured.GET("/historias", recordHandler.List)
			secured.POST("/historias", recordHandler.Create)
			secured.GET("/historias/buscar", recordHandler.Search)
			secured.GET("/historias/:dni", recordHandler.Get)
			secured.PUT("/historias/:dni", recordHandler.Update)
			secured.DELETE("/historias/:dni", recordHandler.Delete)

			// ------------------------------
			// REPORTES
			// ------------------------------
			secured.GET("/reportes/turnos", reportHandler.Appointments)
			secured.GET("/reportes/pacientes", reportHandler.Patients)
			secured.GET("/reportes/ocupacion", reportHandler.Occupancy)
			secured.GET("/reportes/personalizado", reportHandler.Custom)
			secured.GET("/reportes/dashboard-ejecutivo", reportHandler.Dashboard)
			secured.GET("/reportes/ingresos-anual", reportHandler.IncomeFile)
			secured.GET("/reportes/ingresos-anual-data", reportHandler.IncomeTotals)
			secured.GET("/medicos", reportHandler.Doctors)
			secured.GET("/obras-sociales", reportHandler.Insurers)

			// ------------------------------
			// ADMIN
			// ------------------------------
			secured.POST("/admin/backup", adminHandler.Backup)
			secured.GET("/admin/descargar/:collection", adminHandler.Download)
		}
	}
}

package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/clinica-turnos/internal/authz"
	"github.com/BruksfildServices01/clinica-turnos/internal/middleware"
	"github.com/BruksfildServices01/clinica-turnos/internal/routes"
	ucAdmin "github.com/BruksfildServices01/clinica-turnos/internal/usecase/admin"
	ucAppointment "github.com/BruksfildServices01/clinica-turnos/internal/usecase/appointment"
	ucUser "github.com/BruksfildServices01/clinica-turnos/internal/usecase/user"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "clinica",
		Short: "Clinic front-desk API",
	}

	rootCmd.AddCommand(serveCmd())
	rootCmd.AddCommand(expireStaleCmd())
	rootCmd.AddCommand(backupCmd())
	rootCmd.AddCommand(userCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer()
		},
	}
}

func expireStaleCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "expire-stale",
		Short: "Remove pending turnos more than 24 hours past their time",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			defer a.Close()

			uc := ucAppointment.NewExpireStaleAppointments(a.repo, a.audit, nil)
			n, err := uc.Execute(cmd.Context(), authz.System)
			if err != nil {
				return err
			}
			fmt.Printf("Turnos vencidos eliminados: %d\n", n)
			return nil
		},
	}
}

func backupCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "backup",
		Short: "Upload a snapshot of every collection to S3",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			defer a.Close()

			if a.uploader == nil {
				return fmt.Errorf("S3_BUCKET is not configured")
			}

			uc := ucAdmin.NewBackup(a.repo, a.uploader, a.audit, nil)
			out, err := uc.Execute(cmd.Context(), authz.System)
			if err != nil {
				return err
			}
			for _, key := range out.Objects {
				fmt.Println(key)
			}
			return nil
		},
	}
}

func userCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "user",
		Short: "Manage users",
	}

	addCmd := &cobra.Command{
		Use:   "add <usuario> <rol>",
		Short: "Create a user (rol: secretaria | medico | administrador)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			password, _ := cmd.Flags().GetString("password")
			if password == "" {
				return fmt.Errorf("--password is required")
			}

			a, err := newApp()
			if err != nil {
				return err
			}
			defer a.Close()

			uc := ucUser.NewAddUser(a.repo)
			if err := uc.Execute(cmd.Context(), args[0], password, authz.Role(args[1])); err != nil {
				return err
			}
			fmt.Printf("Usuario %s creado.\n", args[0])
			return nil
		},
	}
	addCmd.Flags().String("password", "", "Initial password")

	cmd.AddCommand(addCmd)
	return cmd
}

func runServer() error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.Close()

	if !a.cfg.IsDev() {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger(a.log))
	r.Use(middleware.CORSMiddleware(a.cfg.AllowedOrigins()))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	routes.RegisterRoutes(r, routes.Deps{
		Repo:     a.repo,
		Audit:    a.audit,
		Linker:   a.linker,
		Uploader: a.uploader,
	}, a.cfg)

	srv := &http.Server{
		Addr:              a.cfg.Addr(),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		a.log.Info("server running", zap.String("addr", a.cfg.Addr()))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			a.log.Fatal("failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	a.log.Info("shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}
	a.log.Info("server stopped")
	return nil
}

package main

import (
	"context"
	"expvar"
	"fmt"
	"log"
	"net/http"
	_ "net/http/pprof"
	"os"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"

	echoapi "github.com/CyberG247/digital-assignment-portal/apps/api/echo"
	"github.com/CyberG247/digital-assignment-portal/core"
	"github.com/CyberG247/digital-assignment-portal/core/assignment"
	"github.com/CyberG247/digital-assignment-portal/core/student"
	logsvc "github.com/CyberG247/digital-assignment-portal/services/logger"
	inmemdb "github.com/CyberG247/digital-assignment-portal/storage/database/inmem"
	sessionstore "github.com/CyberG247/digital-assignment-portal/storage/session"
)

func main() {
	// =========================================================================
	// Set up Dependencies

	conf := core.NewConfig()

	logger := logsvc.NewRollbarLogger(
		log.New(os.Stdout, "API : ", log.LstdFlags|log.Lmicroseconds|log.Lshortfile),
		conf,
	)
	logger.Enable(!conf.Debug)

	// the store is memory resident: a restart loses all assignment and
	// notification state, only the session mirror survives
	db, err := inmemdb.Open()
	if err != nil {
		logger.Fatal(fmt.Sprintf("opening store: %v", err), err)
	}
	repo := inmemdb.NewAssignmentRepository(db)
	if conf.Debug {
		if err = inmemdb.LoadFixtures(repo); err != nil {
			logger.Fatal(fmt.Sprintf("loading fixtures: %v", err), err)
		}
	}

	validate := validator.New()
	translator := newTranslator()
	core.InitValidators(validate, translator)

	assignmentSvc := assignment.NewService(repo, validate)
	studentSvc := student.NewService(sessionstore.NewFileStore(conf.SessionDir), validate)

	// =========================================================================
	// Initialize App

	logger.Info(fmt.Sprintf("Application initializing : version %q", conf.Build))
	defer logger.Info("Application stopped")

	// =========================================================================
	// Start Debug Service
	//
	// /debug/pprof - Added to the default mux by importing the net/http/pprof package.
	// /debug/vars - Added to the default mux by importing the expvar package.

	expvar.NewString("build").Set(conf.Build)
	expvar.NewString("env").Set(conf.Env)

	go func() {
		if err := http.ListenAndServe(conf.Server.DebugHost, http.DefaultServeMux); err != nil {
			logger.Error(fmt.Sprintf("debug server closed: %v", err), err)
		}
	}()

	// =========================================================================
	// Start API Service

	server := echoapi.NewServer(
		conf.Server.Host,
		&echoapi.Deps{
			Conf:          conf,
			Logger:        logger,
			AssignmentSvc: assignmentSvc,
			StudentSvc:    studentSvc,
			Translator:    translator,
		},
	)

	go func() {
		server.Start()
	}()

	// =========================================================================
	// Shutdown

	select {
	case err = <-server.Errors():
		logger.Fatal(fmt.Sprintf("server error: %v", err), err)

	case sig := <-server.ShutdownSignal():
		logger.Info(fmt.Sprintf("%v: Start shutdown...", sig))

		// give outstanding requests a deadline for completion
		ctx, cancel := context.WithTimeout(context.Background(), conf.Server.ShutdownTimeout)
		defer cancel()

		// asking listener to shutdown and shed load
		if err = server.Shutdown(ctx); err != nil {
			logger.Error(fmt.Sprintf("could not stop server gracefully: %v", err), err)

			if err = server.Close(); err != nil {
				logger.Fatal(fmt.Sprintf("could not force stop server: %v", err), err)
			}
		}
	}
}

func newTranslator() ut.Translator {
	_en := en.New()
	uni := ut.New(_en, _en)
	translator, _ := uni.GetTranslator("en")
	return translator
}

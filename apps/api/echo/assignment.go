package echoapi

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/CyberG247/digital-assignment-portal/core/assignment"
)

func nowUTC() time.Time { return time.Now().UTC() }

type assignmentApi struct {
	svc *assignment.Service
}

func registerAssignmentAPI(g *echo.Group, jwt echo.MiddlewareFunc, deps *Deps) {
	api := assignmentApi{svc: deps.AssignmentSvc}

	ag := g.Group("/assignments")

	// teacher portal endpoints; authorization enforcement is out of scope
	ag.POST("", api.create)
	ag.GET("", api.query)
	ag.POST("/:id/grade", api.grade)

	// student portal endpoints; the token identifies the student
	ag.GET("/mine", api.queryMine, jwt)
	ag.POST("/:id/submit", api.submit, jwt)

	ng := g.Group("/notifications", jwt)
	ng.GET("", api.queryNotifications)
	ng.PUT("/:id/read", api.markNotificationRead)
}

// Handlers

func (api *assignmentApi) create(ctx echo.Context) error {
	var data assignment.NewAssignment
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewAssignment")
	}

	a, err := api.svc.Create(data)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusCreated, a)
}

func (api *assignmentApi) query(ctx echo.Context) error {
	assignments, err := api.svc.QueryAll()
	if err != nil {
		return errors.Wrap(err, "querying assignments")
	}
	if assignments == nil {
		assignments = []assignment.Assignment{}
	}
	return ctx.JSON(http.StatusOK, assignments)
}

func (api *assignmentApi) grade(ctx echo.Context) error {
	var data assignment.GradeAssignment
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to GradeAssignment")
	}

	a, err := api.svc.Grade(ctx.Param("id"), data)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, a)
}

func (api *assignmentApi) queryMine(ctx echo.Context) error {
	s, err := getContextStudent(ctx)
	if err != nil {
		return errors.Wrap(err, "getting context student")
	}

	views, err := api.svc.ForStudent(s.ID)
	if err != nil {
		return errors.Wrap(err, "querying student assignments")
	}
	return ctx.JSON(http.StatusOK, views)
}

func (api *assignmentApi) submit(ctx echo.Context) error {
	s, err := getContextStudent(ctx)
	if err != nil {
		return errors.Wrap(err, "getting context student")
	}

	var data assignment.SubmitAssignment
	if err = ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to SubmitAssignment")
	}

	a, err := api.svc.Submit(ctx.Param("id"), s.ID, data)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, a.ForStudent(s.ID, nowUTC()))
}

func (api *assignmentApi) queryNotifications(ctx echo.Context) error {
	s, err := getContextStudent(ctx)
	if err != nil {
		return errors.Wrap(err, "getting context student")
	}

	notifs, err := api.svc.NotificationsFor(s.ID)
	if err != nil {
		return errors.Wrap(err, "querying notifications")
	}
	if notifs == nil {
		notifs = []assignment.Notification{}
	}
	return ctx.JSON(http.StatusOK, notifs)
}

func (api *assignmentApi) markNotificationRead(ctx echo.Context) error {
	n, err := api.svc.MarkNotificationRead(ctx.Param("id"))
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, n)
}

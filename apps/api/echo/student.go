package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/CyberG247/digital-assignment-portal/core/student"
)

type (
	LoginResponse struct {
		Token   string          `json:"token"`
		Student student.Student `json:"student"`
	}

	SuccessResponse struct {
		Success string `json:"success"`
	}
)

type studentApi struct {
	svc *student.Service
}

func registerStudentAPI(g *echo.Group, jwt echo.MiddlewareFunc, deps *Deps) {
	api := studentApi{svc: deps.StudentSvc}

	sg := g.Group("/students")

	// un-authed endpoints
	sg.POST("/login", api.login)

	// authed endpoints
	ag := sg.Group("", jwt)
	ag.POST("/logout", api.logout)
	ag.GET("/me", api.retrieve)
}

// Handlers

func (api *studentApi) login(ctx echo.Context) error {
	var data student.NewLogin
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewLogin")
	}

	s, err := api.svc.Login(data)
	if err != nil {
		return err
	}

	token, err := GenerateToken(GetStudentClaims(s))
	if err != nil {
		return errors.Wrap(err, "generating token")
	}
	return ctx.JSON(http.StatusOK, LoginResponse{Token: token, Student: s})
}

func (api *studentApi) logout(ctx echo.Context) error {
	if err := api.svc.Logout(); err != nil {
		return errors.Wrap(err, "logging out")
	}
	return ctx.JSON(http.StatusOK, SuccessResponse{Success: "Logged out."})
}

func (api *studentApi) retrieve(ctx echo.Context) error {
	s, err := getContextStudent(ctx)
	if err != nil {
		return errors.Wrap(err, "getting context student")
	}
	return ctx.JSON(http.StatusOK, s)
}

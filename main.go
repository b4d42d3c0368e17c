// Package main library lending API.
//
// @title           E-Library Lending API
// @version         1.0
// @description     Lending service (users, categories, ebooks, loans).
// @BasePath        /
// @schemes         http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description  Use:  Bearer <JWT>
package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	echoSwagger "github.com/swaggo/echo-swagger"

	"github.com/kervin2020/Capstone-backend-Elib/app/echoServer"
	categoryctrl "github.com/kervin2020/Capstone-backend-Elib/app/echoServer/controller/category"
	ebookctrl "github.com/kervin2020/Capstone-backend-Elib/app/echoServer/controller/ebook"
	loanctrl "github.com/kervin2020/Capstone-backend-Elib/app/echoServer/controller/loan"
	userctrl "github.com/kervin2020/Capstone-backend-Elib/app/echoServer/controller/user"
	"github.com/kervin2020/Capstone-backend-Elib/app/echoServer/validation"
	"github.com/kervin2020/Capstone-backend-Elib/config"
	categoryrepo "github.com/kervin2020/Capstone-backend-Elib/repository/category"
	ebookrepo "github.com/kervin2020/Capstone-backend-Elib/repository/ebook"
	loanrepo "github.com/kervin2020/Capstone-backend-Elib/repository/loan"
	userrepo "github.com/kervin2020/Capstone-backend-Elib/repository/user"
	"github.com/kervin2020/Capstone-backend-Elib/service/authz"
	categorysvc "github.com/kervin2020/Capstone-backend-Elib/service/category"
	ebooksvc "github.com/kervin2020/Capstone-backend-Elib/service/ebook"
	loansvc "github.com/kervin2020/Capstone-backend-Elib/service/loan"
	usersvc "github.com/kervin2020/Capstone-backend-Elib/service/user"
	"github.com/kervin2020/Capstone-backend-Elib/util/database"
)

func main() {

	cfg := config.Load()
	ctx := context.Background()

	// logger
	log := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	// DB: *sql.DB
	db, err := database.New(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Error("db connect failed", "err", err)
		os.Exit(1)
	}
	defer db.Close()

	// repos
	ur := userrepo.New(db)
	cr := categoryrepo.New(db)
	er := ebookrepo.New(db)
	lr := loanrepo.New(db)

	// authorization predicate, shared by every handler
	az := authz.New(ur)

	// services
	us := usersvc.New(ur, cfg.JWTSecret)
	cs := categorysvc.New(cr)
	es := ebooksvc.New(er)
	ls := loansvc.New(lr, az)

	// controllers
	v := validator.New()
	userC := &userctrl.Controller{Svc: us, Authz: az, V: v, Log: log}
	categoryC := &categoryctrl.Controller{Svc: cs, Authz: az, V: v, Log: log}
	ebookC := &ebookctrl.Controller{Svc: es, Authz: az, V: v, Log: log}
	loanC := &loanctrl.Controller{Svc: ls, Authz: az, V: v, Log: log}

	// echo
	e := echo.New()
	echoServer.RegisterMiddlewares(e)
	e.Validator = validation.New()

	e.GET("/health", func(c echo.Context) error {
		return c.JSON(200, map[string]any{
			"status":  "ok",
			"message": "Service is healthy and connected",
		})
	})

	e.GET("/swagger/*", echoSwagger.WrapHandler)

	echoServer.Register(e, echoServer.C{
		User:     userC,
		Category: categoryC,
		Ebook:    ebookC,
		Loan:     loanC,

		JWTSecret: cfg.JWTSecret,
	})

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.Port
	}
	if port == "" {
		port = "8080"
	}

	slog.Info("starting server", "PORT_env", os.Getenv("PORT"), "chosen_port", port)

	e.Logger.Fatal(e.Start(":" + port))
}

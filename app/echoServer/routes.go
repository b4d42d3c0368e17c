package echoServer

import (
	"net/http"

	"github.com/golang-jwt/jwt/v5"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"

	categoryctrl "github.com/kervin2020/Capstone-backend-Elib/app/echoServer/controller/category"
	ebookctrl "github.com/kervin2020/Capstone-backend-Elib/app/echoServer/controller/ebook"
	loanctrl "github.com/kervin2020/Capstone-backend-Elib/app/echoServer/controller/loan"
	userctrl "github.com/kervin2020/Capstone-backend-Elib/app/echoServer/controller/user"
	"github.com/kervin2020/Capstone-backend-Elib/app/echoServer/jwtx"
)

type C struct {
	User     *userctrl.Controller
	Category *categoryctrl.Controller
	Ebook    *ebookctrl.Controller
	Loan     *loanctrl.Controller

	JWTSecret string
}

func Register(e *echo.Echo, c C) {
	// Public
	e.POST("/users", c.User.Create)
	e.POST("/login", c.User.Login)
	e.GET("/categories", c.Category.List)
	e.GET("/categories/:id", c.Category.Detail)
	e.GET("/ebooks", c.Ebook.List)
	e.GET("/ebooks/:id", c.Ebook.Detail)

	// Auth
	auth := e.Group("")
	auth.Use(echojwt.WithConfig(echojwt.Config{
		SigningKey: []byte(c.JWTSecret),

		NewClaimsFunc: func(c echo.Context) jwt.Claims { return jwt.MapClaims{} },
		TokenLookup:   "header:Authorization",
	}))
	auth.Use(currentUser)

	// Users
	auth.GET("/users", c.User.List)
	auth.GET("/users/me", c.User.Me)
	auth.GET("/users/:id", c.User.Detail)
	auth.PUT("/users/:id", c.User.Update)
	auth.DELETE("/users/:id", c.User.Delete)
	auth.GET("/users/:id/loans", c.Loan.ListForUser)

	// Categories (admin writes)
	auth.POST("/categories", c.Category.Create)
	auth.PUT("/categories/:id", c.Category.Update)
	auth.DELETE("/categories/:id", c.Category.Delete)

	// Ebooks (admin writes)
	auth.POST("/ebooks", c.Ebook.Create)
	auth.PUT("/ebooks/:id", c.Ebook.Update)
	auth.DELETE("/ebooks/:id", c.Ebook.Delete)

	// Loans
	auth.POST("/loans", c.Loan.Create)
	auth.GET("/loans", c.Loan.List)
	auth.GET("/loans/:id", c.Loan.Detail)
	auth.PUT("/loans/:id", c.Loan.Return)
	auth.DELETE("/loans/:id", c.Loan.Delete)
}

// currentUser lifts the verified subject claim into "user_id" so handlers
// never touch the raw token.
func currentUser(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		uid, err := jwtx.UserIDFromContext(c)
		if err != nil {
			return c.JSON(http.StatusUnauthorized, echo.Map{"msg": "invalid token"})
		}
		c.Set("user_id", uid)
		return next(c)
	}
}

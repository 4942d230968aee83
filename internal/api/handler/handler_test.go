package handler

import (
	"net/http"
	"net/http/httptest"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/smartstore/store-system/internal/api/middleware"
	"github.com/smartstore/store-system/internal/core/domain"
	"github.com/smartstore/store-system/internal/core/repository"
	"github.com/smartstore/store-system/internal/core/security"
	"github.com/smartstore/store-system/internal/core/service"
	"github.com/smartstore/store-system/internal/infrastructure/db/memory"
)

type fixture struct {
	e      *echo.Echo
	dm     *memory.DataManager
	auth   *service.AuthService
	stores *service.StoreService
}

func newFixture() *fixture {
	dm := memory.NewDataManager()
	e := echo.New()
	e.Validator = NewValidator()
	return &fixture{
		e:      e,
		dm:     dm,
		auth:   service.NewAuthService(repository.NewUserRepository(dm), security.NewBcryptHasherWithCost(bcrypt.MinCost), zerolog.Nop()),
		stores: service.NewStoreService(repository.NewStoreRepository(dm), dm, dm, zerolog.Nop()),
	}
}

// context builds an echo context with an optional JSON body and caller.
func (f *fixture) context(method, target, body string, caller *domain.User) (echo.Context, *httptest.ResponseRecorder) {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	rec := httptest.NewRecorder()
	c := f.e.NewContext(req, rec)
	if caller != nil {
		c.Set(middleware.UserKey, caller)
	}
	return c, rec
}

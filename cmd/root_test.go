package cmd

import (
	"bytes"
	"context"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/smartstore/store-system/internal/api"
	"github.com/smartstore/store-system/internal/core/repository"
	"github.com/smartstore/store-system/internal/core/security"
	"github.com/smartstore/store-system/internal/core/service"
	"github.com/smartstore/store-system/internal/infrastructure/db/memory"
)

func startAPI(t *testing.T) string {
	t.Helper()
	dm := memory.NewDataManager()
	auth := service.NewAuthService(repository.NewUserRepository(dm), security.NewBcryptHasherWithCost(bcrypt.MinCost), zerolog.Nop())
	stores := service.NewStoreService(repository.NewStoreRepository(dm), dm, dm, zerolog.Nop())
	_, err := auth.RegisterUserWithRole(context.Background(), "admin@x.com", "root", "Admin", "ADMIN")
	require.NoError(t, err)

	srv := httptest.NewServer(api.NewRouter(api.Dependencies{
		Auth:     auth,
		Stores:   stores,
		Logger:   zerolog.Nop(),
		Registry: prometheus.NewRegistry(),
	}))
	t.Cleanup(srv.Close)
	return srv.URL
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func TestLogin(t *testing.T) {
	base := startAPI(t)

	out, err := run(t, "--server", base, "--email", "admin@x.com", "--password", "root", "login")
	require.NoError(t, err)
	assert.Contains(t, out, "logged in as admin@x.com (ADMIN)")

	_, err = run(t, "--server", base, "--email", "admin@x.com", "--password", "nope", "login")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "401")
}

func TestStoresCreateAndList(t *testing.T) {
	base := startAPI(t)
	creds := []string{"--server", base, "--email", "admin@x.com", "--password", "root"}

	_, err := run(t, append(creds, "stores", "create", "s1", "--description", "Main", "--address", "1 High St")...)
	require.NoError(t, err)

	out, err := run(t, append(creds, "stores", "list")...)
	require.NoError(t, err)
	assert.Contains(t, out, `"id": "s1"`)
	assert.Contains(t, out, `"address": "1 High St"`)
}

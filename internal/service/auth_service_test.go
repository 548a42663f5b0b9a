package service

import (
	"context"
	"testing"

	"github.com/fydhel24/proyecto-ventas-sub000/internal/config"
	"github.com/fydhel24/proyecto-ventas-sub000/internal/dto"
	"github.com/fydhel24/proyecto-ventas-sub000/internal/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func testAuthConfig() *config.Config {
	return &config.Config{
		JWTSecret:          "test-secret",
		JWTExpirationHours: 8,
		JWTRefreshHours:    24,
	}
}

func newAuthFixture(t *testing.T) (*fakeUsuarioRepo, AuthService) {
	t.Helper()
	repo := newFakeUsuarioRepo()
	return repo, NewAuthService(repo, testAuthConfig())
}

func seedUsuario(t *testing.T, repo *fakeUsuarioRepo, username, password, rol string, sucursalID *uuid.UUID) *model.Usuario {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	u := &model.Usuario{
		Username:     username,
		Nombre:       "Usuario " + username,
		PasswordHash: string(hash),
		Rol:          rol,
		SucursalID:   sucursalID,
		Activo:       true,
	}
	require.NoError(t, repo.Create(context.Background(), u))
	return u
}

func TestLogin(t *testing.T) {
	repo, svc := newAuthFixture(t)
	sucursal := uuid.New()
	seedUsuario(t, repo, "cajera1", "secreto123", model.RolCajero, &sucursal)

	resp, err := svc.Login(context.Background(), dto.LoginRequest{Username: "cajera1", Password: "secreto123"})
	require.NoError(t, err)

	assert.NotEmpty(t, resp.AccessToken)
	assert.NotEmpty(t, resp.RefreshToken)
	assert.Equal(t, "bearer", resp.TokenType)
	assert.Equal(t, 8*3600, resp.ExpiresIn)
	assert.Equal(t, "cajera1", resp.User.Username)
	require.NotNil(t, resp.User.SucursalID)
	assert.Equal(t, sucursal.String(), *resp.User.SucursalID)
}

func TestLoginPasswordIncorrecto(t *testing.T) {
	repo, svc := newAuthFixture(t)
	seedUsuario(t, repo, "cajera1", "secreto123", model.RolCajero, nil)

	_, err := svc.Login(context.Background(), dto.LoginRequest{Username: "cajera1", Password: "otra-clave"})
	require.Error(t, err)
	assert.Equal(t, "credenciales invalidas", err.Error())
}

func TestLoginUsuarioInexistente(t *testing.T) {
	_, svc := newAuthFixture(t)

	_, err := svc.Login(context.Background(), dto.LoginRequest{Username: "nadie", Password: "secreto123"})
	require.Error(t, err)
	// Same message for unknown user and wrong password.
	assert.Equal(t, "credenciales invalidas", err.Error())
}

func TestRefresh(t *testing.T) {
	repo, svc := newAuthFixture(t)
	seedUsuario(t, repo, "cajera1", "secreto123", model.RolCajero, nil)

	login, err := svc.Login(context.Background(), dto.LoginRequest{Username: "cajera1", Password: "secreto123"})
	require.NoError(t, err)

	renovado, err := svc.Refresh(context.Background(), login.RefreshToken)
	require.NoError(t, err)
	assert.NotEmpty(t, renovado.AccessToken)
	assert.Equal(t, "cajera1", renovado.User.Username)
}

func TestRefreshTokenInvalido(t *testing.T) {
	_, svc := newAuthFixture(t)

	_, err := svc.Refresh(context.Background(), "no-es-un-jwt")
	require.Error(t, err)
}

func TestRefreshUsuarioDesactivado(t *testing.T) {
	repo, svc := newAuthFixture(t)
	user := seedUsuario(t, repo, "cajera1", "secreto123", model.RolCajero, nil)

	login, err := svc.Login(context.Background(), dto.LoginRequest{Username: "cajera1", Password: "secreto123"})
	require.NoError(t, err)

	require.NoError(t, svc.DesactivarUsuario(context.Background(), user.ID))

	_, err = svc.Refresh(context.Background(), login.RefreshToken)
	require.Error(t, err)
}

func TestCrearUsuario(t *testing.T) {
	_, svc := newAuthFixture(t)
	sucursal := uuid.NewString()

	resp, err := svc.CrearUsuario(context.Background(), dto.CrearUsuarioRequest{
		Username:   "super1",
		Nombre:     "Supervisora Uno",
		Password:   "secreto123",
		Rol:        model.RolSupervisor,
		SucursalID: &sucursal,
	})
	require.NoError(t, err)

	assert.Equal(t, model.RolSupervisor, resp.Rol)
	assert.True(t, resp.Activo)
	require.NotNil(t, resp.SucursalID)
	assert.Equal(t, sucursal, *resp.SucursalID)

	// The fresh credentials must work.
	login, err := svc.Login(context.Background(), dto.LoginRequest{Username: "super1", Password: "secreto123"})
	require.NoError(t, err)
	assert.Equal(t, "super1", login.User.Username)
}

func TestCrearUsuarioDuplicado(t *testing.T) {
	repo, svc := newAuthFixture(t)
	seedUsuario(t, repo, "cajera1", "secreto123", model.RolCajero, nil)

	_, err := svc.CrearUsuario(context.Background(), dto.CrearUsuarioRequest{
		Username: "cajera1",
		Nombre:   "Otra Persona",
		Password: "secreto123",
		Rol:      model.RolCajero,
	})
	require.Error(t, err)
}

func TestActualizarUsuarioCambiaPassword(t *testing.T) {
	repo, svc := newAuthFixture(t)
	user := seedUsuario(t, repo, "cajera1", "secreto123", model.RolCajero, nil)

	_, err := svc.ActualizarUsuario(context.Background(), user.ID, dto.ActualizarUsuarioRequest{
		Password: "clave-nueva",
		Rol:      model.RolSupervisor,
	})
	require.NoError(t, err)

	_, err = svc.Login(context.Background(), dto.LoginRequest{Username: "cajera1", Password: "secreto123"})
	require.Error(t, err)

	login, err := svc.Login(context.Background(), dto.LoginRequest{Username: "cajera1", Password: "clave-nueva"})
	require.NoError(t, err)
	assert.Equal(t, model.RolSupervisor, login.User.Rol)
}

func TestListarUsuarios(t *testing.T) {
	repo, svc := newAuthFixture(t)
	activo := seedUsuario(t, repo, "cajera1", "secreto123", model.RolCajero, nil)
	inactivo := seedUsuario(t, repo, "cajera2", "secreto123", model.RolCajero, nil)
	require.NoError(t, svc.DesactivarUsuario(context.Background(), inactivo.ID))

	soloActivos, err := svc.ListarUsuarios(context.Background(), false)
	require.NoError(t, err)
	require.Len(t, soloActivos, 1)
	assert.Equal(t, activo.Username, soloActivos[0].Username)

	todos, err := svc.ListarUsuarios(context.Background(), true)
	require.NoError(t, err)
	assert.Len(t, todos, 2)
}

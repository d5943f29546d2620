package http_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Almacen-api/internal/application/dto"
	"github.com/jhoicas/Almacen-api/internal/domain/entity"
	apphttp "github.com/jhoicas/Almacen-api/internal/interfaces/http"
)

// failingUserLoader simula una BD caída al cargar el registro del usuario.
type failingUserLoader struct {
	err error
}

func (f *failingUserLoader) GetByID(_ context.Context, _ string) (*entity.User, error) {
	return nil, f.err
}

// routerApp monta el router completo; las rutas mueren en el middleware de
// auth antes de llegar a los handlers, así que los casos de uso van vacíos.
func routerApp(devMode bool, loader apphttp.UserLoader) *fiber.App {
	app := fiber.New()
	apphttp.Router(app, apphttp.RouterDeps{
		Users:     loader,
		JWTSecret: testJWTSecret,
		DevMode:   devMode,
	})
	return app
}

func getProducts(t *testing.T, app *fiber.App) (*http.Response, dto.ErrorResponse) {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/api/products", nil)
	req.Header.Set("Authorization", tokenForRole(t, "Admin"))
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var out dto.ErrorResponse
	require.NoError(t, json.Unmarshal(body, &out))
	return resp, out
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests de errores internos
// ──────────────────────────────────────────────────────────────────────────────

// Fuera de development el detalle de infraestructura (host, DSN, errores de
// conexión) nunca llega al cliente: mensaje genérico, detalle solo en el log.
func TestErrorInterno_MensajeGenericoFueraDeDevelopment(t *testing.T) {
	boom := errors.New("dial tcp 10.0.0.5:5432: connect: connection refused")
	app := routerApp(false, &failingUserLoader{err: boom})

	resp, out := getProducts(t, app)

	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	assert.Equal(t, "INTERNAL", out.Code)
	assert.Equal(t, "error interno del servidor", out.Message)
	assert.NotContains(t, out.Message, "10.0.0.5")
}

// En development sí se expone el error real para facilitar el diagnóstico.
func TestErrorInterno_DetalleVisibleEnDevelopment(t *testing.T) {
	boom := errors.New("dial tcp 10.0.0.5:5432: connect: connection refused")
	app := routerApp(true, &failingUserLoader{err: boom})

	resp, out := getProducts(t, app)

	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	assert.Equal(t, "INTERNAL", out.Code)
	assert.Contains(t, out.Message, "connection refused")
}

package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	stdhttp "net/http"
	"net/http/httptest"
	"regexp"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/rastreo-envios/internal/application/auth"
	"github.com/tu-usuario/rastreo-envios/internal/application/dto"
	"github.com/tu-usuario/rastreo-envios/internal/application/usecase"
	"github.com/tu-usuario/rastreo-envios/internal/domain"
	"github.com/tu-usuario/rastreo-envios/internal/domain/entity"
	"github.com/tu-usuario/rastreo-envios/internal/domain/repository"
	httpapi "github.com/tu-usuario/rastreo-envios/internal/interfaces/http"
	"github.com/tu-usuario/rastreo-envios/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes de infraestructura
// ──────────────────────────────────────────────────────────────────────────────

type memPackageRepo struct {
	pkgs map[string]*entity.Package
}

func (r *memPackageRepo) Create(_ context.Context, pkg *entity.Package) error {
	if _, ok := r.pkgs[pkg.TrackingNumber]; ok {
		return domain.ErrDuplicateTracking
	}
	cp := *pkg
	r.pkgs[pkg.TrackingNumber] = &cp
	return nil
}

func (r *memPackageRepo) GetByTrackingNumber(_ context.Context, tn string) (*entity.Package, error) {
	p, ok := r.pkgs[tn]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (r *memPackageRepo) Find(_ context.Context, filter repository.PackageFilter) ([]*entity.Package, error) {
	var out []*entity.Package
	for _, p := range r.pkgs {
		if filter.TrackingNumber != "" && p.TrackingNumber != filter.TrackingNumber {
			continue
		}
		if filter.Status != "" && p.Status != filter.Status {
			continue
		}
		cp := *p
		out = append(out, &cp)
	}
	return out, nil
}

func (r *memPackageRepo) Update(_ context.Context, pkg *entity.Package) error {
	cp := *pkg
	r.pkgs[pkg.TrackingNumber] = &cp
	return nil
}

func (r *memPackageRepo) DeleteByID(_ context.Context, id string) error {
	for tn, p := range r.pkgs {
		if p.ID == id {
			delete(r.pkgs, tn)
			return nil
		}
	}
	return nil
}

type memUserRepo struct {
	users map[string]*entity.User
}

func (r *memUserRepo) Create(_ context.Context, user *entity.User) error {
	if _, ok := r.users[user.Email]; ok {
		return domain.ErrEmailAlreadyExists
	}
	cp := *user
	r.users[user.Email] = &cp
	return nil
}

func (r *memUserRepo) FindByEmail(_ context.Context, email string) (*entity.User, error) {
	u, ok := r.users[email]
	if !ok {
		return nil, nil
	}
	cp := *u
	return &cp, nil
}

func (r *memUserRepo) FindByID(_ context.Context, id string) (*entity.User, error) {
	for _, u := range r.users {
		if u.ID == id {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

type stubGeocoder struct {
	forward map[string]entity.GeoPoint
	reverse string
	route   [][2]float64
}

func (g *stubGeocoder) ForwardGeocode(_ context.Context, address string) (*entity.GeoPoint, error) {
	pt, ok := g.forward[address]
	if !ok {
		return nil, errors.New("sin resultados")
	}
	return &pt, nil
}

func (g *stubGeocoder) ReverseGeocode(_ context.Context, _, _ float64) (string, error) {
	return g.reverse, nil
}

func (g *stubGeocoder) Route(_ context.Context, _, _ entity.GeoPoint) ([][2]float64, error) {
	return g.route, nil
}

type stubLabels struct{}

func (stubLabels) GenerateLabel(_ context.Context, _ *entity.Package) ([]byte, error) {
	return []byte("%PDF-1.7 guía de prueba"), nil
}

// ──────────────────────────────────────────────────────────────────────────────
// Armado de la app
// ──────────────────────────────────────────────────────────────────────────────

func newTestApp(t *testing.T) *fiber.App {
	t.Helper()

	log := logger.New(logger.Config{Level: "error"})
	packageRepo := &memPackageRepo{pkgs: make(map[string]*entity.Package)}
	userRepo := &memUserRepo{users: make(map[string]*entity.User)}
	geo := &stubGeocoder{
		forward: map[string]entity.GeoPoint{
			"Calle 10 # 43A-30, Medellín": {Lat: 6.24, Lng: -75.57},
			"Carrera 7 # 71-21, Bogotá":   {Lat: 4.65, Lng: -74.06},
		},
		reverse: "Calle 10, Medellín, Colombia",
		route:   [][2]float64{{-75.57, 6.24}, {-74.06, 4.65}},
	}

	packageUC := usecase.NewPackageUseCase(packageRepo, geo, stubLabels{}, log)
	authUC := auth.NewAuthUseCase(userRepo, auth.JWTConfig{
		Secret:     testSecret,
		ExpMinutes: 60,
		Issuer:     "rastreo-envios-test",
	})

	app := fiber.New()
	httpapi.Router(app, httpapi.RouterDeps{
		PackageUC: packageUC,
		AuthUC:    authUC,
		JWTSecret: testSecret,
		Log:       log,
	})
	return app
}

func jsonRequest(t *testing.T, method, target string, payload any) *stdhttp.Request {
	t.Helper()
	body, err := json.Marshal(payload)
	require.NoError(t, err)
	req := httptest.NewRequest(method, target, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func createPayload() fiber.Map {
	return fiber.Map{
		"sender": fiber.Map{
			"fullName": "Ana Gómez",
			"address":  "Calle 10 # 43A-30, Medellín",
			"email":    "ana@example.com",
		},
		"recipient": fiber.Map{
			"fullName": "Luis Pérez",
			"address":  "Carrera 7 # 71-21, Bogotá",
		},
		"details": fiber.Map{
			"description": "Books for Alice",
			"weight":      2.5,
			"dimensions":  fiber.Map{"length": 30, "width": 20, "height": 10},
			"value":       150000,
		},
	}
}

// createViaAPI crea un paquete con token admin y devuelve la respuesta decodificada.
func createViaAPI(t *testing.T, app *fiber.App) dto.PackageResponse {
	t.Helper()
	req := jsonRequest(t, stdhttp.MethodPost, "/api/packages/", createPayload())
	req.Header.Set("Authorization", "Bearer "+tokenForRole(t, "admin"))
	resp := doRequest(t, app, req)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	var out dto.PackageDataResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	require.True(t, out.Success)
	return out.Data
}

// ──────────────────────────────────────────────────────────────────────────────
// Paquetes: creación
// ──────────────────────────────────────────────────────────────────────────────

func TestCreatePackage_SinTokenRechazado(t *testing.T) {
	app := newTestApp(t)

	resp := doRequest(t, app, jsonRequest(t, stdhttp.MethodPost, "/api/packages/", createPayload()))
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestCreatePackage_RolUserProhibido(t *testing.T) {
	app := newTestApp(t)

	req := jsonRequest(t, stdhttp.MethodPost, "/api/packages/", createPayload())
	req.Header.Set("Authorization", "Bearer "+tokenForRole(t, "user"))
	resp := doRequest(t, app, req)
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
	assert.Equal(t, "Access Denied", errorBody(t, resp))
}

func TestCreatePackage_PayloadInvalido(t *testing.T) {
	app := newTestApp(t)

	payload := createPayload()
	payload["sender"] = fiber.Map{"address": "Calle 10 # 43A-30, Medellín"}
	payload["details"] = fiber.Map{
		"description": "Books for Alice",
		"weight":      -1,
		"dimensions":  fiber.Map{"length": 30, "width": 20, "height": 10},
		"value":       150000,
	}

	req := jsonRequest(t, stdhttp.MethodPost, "/api/packages/", payload)
	req.Header.Set("Authorization", "Bearer "+tokenForRole(t, "admin"))
	resp := doRequest(t, app, req)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "Full name is required, Weight must be a positive number", errorBody(t, resp))
}

func TestCreatePackage_OK(t *testing.T) {
	app := newTestApp(t)

	created := createViaAPI(t, app)
	assert.Regexp(t, regexp.MustCompile(`^BOOKS-\d{7}$`), created.TrackingNumber)
	assert.Equal(t, "created", created.Status)
	require.NotNil(t, created.CurrentLocation)
	assert.Equal(t, 6.24, created.CurrentLocation.Lat)
	require.NotNil(t, created.DestinationLocation)
	assert.Equal(t, 4.65, created.DestinationLocation.Lat)
}

// ──────────────────────────────────────────────────────────────────────────────
// Paquetes: consulta
// ──────────────────────────────────────────────────────────────────────────────

func TestListPackages_VacioDevuelve404(t *testing.T) {
	app := newTestApp(t)

	resp := doRequest(t, app, httptest.NewRequest(stdhttp.MethodGet, "/api/packages/", nil))
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "No packages found", errorBody(t, resp))
}

func TestListPackages_FiltroPorEstado(t *testing.T) {
	app := newTestApp(t)
	createViaAPI(t, app)

	resp := doRequest(t, app, httptest.NewRequest(stdhttp.MethodGet, "/api/packages/?status=created", nil))
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var out dto.PackageListResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	assert.True(t, out.Success)
	assert.Len(t, out.Packages, 1)

	// Un estado sin coincidencias es no-encontrado
	resp = doRequest(t, app, httptest.NewRequest(stdhttp.MethodGet, "/api/packages/?status=delivered", nil))
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestGetPackage_EsPublico(t *testing.T) {
	app := newTestApp(t)
	created := createViaAPI(t, app)

	// Sin token: la página de tracking no exige sesión
	resp := doRequest(t, app, httptest.NewRequest(stdhttp.MethodGet, "/api/packages/"+created.TrackingNumber, nil))
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var out dto.SinglePackageResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	assert.True(t, out.Success)
	assert.Equal(t, created.TrackingNumber, out.Package.TrackingNumber)
}

func TestGetPackage_NoExiste(t *testing.T) {
	app := newTestApp(t)

	resp := doRequest(t, app, httptest.NewRequest(stdhttp.MethodGet, "/api/packages/NADA-0000000", nil))
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "Package not found", errorBody(t, resp))
}

// ──────────────────────────────────────────────────────────────────────────────
// Paquetes: actualización y borrado
// ──────────────────────────────────────────────────────────────────────────────

func TestUpdatePackage_MergeParcial(t *testing.T) {
	app := newTestApp(t)
	created := createViaAPI(t, app)

	req := jsonRequest(t, stdhttp.MethodPatch, "/api/packages/"+created.TrackingNumber, fiber.Map{
		"details": fiber.Map{"weight": 5.0},
	})
	req.Header.Set("Authorization", "Bearer "+tokenForRole(t, "admin"))
	resp := doRequest(t, app, req)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var out dto.SinglePackageResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	assert.Equal(t, 5.0, out.Package.Details.Weight)
	assert.Equal(t, created.Details.Description, out.Package.Details.Description)
	assert.Equal(t, created.Sender, out.Package.Sender)
	assert.Equal(t, created.Recipient, out.Package.Recipient)
}

func TestUpdatePackage_SinTokenRechazado(t *testing.T) {
	app := newTestApp(t)
	created := createViaAPI(t, app)

	resp := doRequest(t, app, jsonRequest(t, stdhttp.MethodPatch, "/api/packages/"+created.TrackingNumber, fiber.Map{
		"status": "delivered",
	}))
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestUpdatePackage_NoExiste(t *testing.T) {
	app := newTestApp(t)

	req := jsonRequest(t, stdhttp.MethodPatch, "/api/packages/NADA-0000000", fiber.Map{
		"status": "delivered",
	})
	req.Header.Set("Authorization", "Bearer "+tokenForRole(t, "admin"))
	resp := doRequest(t, app, req)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "Package not found", errorBody(t, resp))
}

func TestDeletePackage_FlujoCompleto(t *testing.T) {
	app := newTestApp(t)
	created := createViaAPI(t, app)

	req := httptest.NewRequest(stdhttp.MethodDelete, "/api/packages/"+created.TrackingNumber, nil)
	req.Header.Set("Authorization", "Bearer "+tokenForRole(t, "admin"))
	resp := doRequest(t, app, req)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var out dto.MessageResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	assert.True(t, out.Success)
	assert.Equal(t, "Package deleted successfully", out.Message)

	// El paquete deja de existir
	resp = doRequest(t, app, httptest.NewRequest(stdhttp.MethodGet, "/api/packages/"+created.TrackingNumber, nil))
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

// ──────────────────────────────────────────────────────────────────────────────
// Paquetes: mapa y guía PDF
// ──────────────────────────────────────────────────────────────────────────────

func TestRoute_DevuelveDireccionYPolilinea(t *testing.T) {
	app := newTestApp(t)
	created := createViaAPI(t, app)

	resp := doRequest(t, app, httptest.NewRequest(stdhttp.MethodGet, "/api/packages/"+created.TrackingNumber+"/route", nil))
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var out dto.RouteResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	assert.True(t, out.Success)
	assert.Equal(t, "Calle 10, Medellín, Colombia", out.CurrentAddress)
	assert.Equal(t, [][2]float64{{-75.57, 6.24}, {-74.06, 4.65}}, out.Route)
}

func TestLabel_DevuelvePDF(t *testing.T) {
	app := newTestApp(t)
	created := createViaAPI(t, app)

	req := httptest.NewRequest(stdhttp.MethodGet, "/api/packages/"+created.TrackingNumber+"/label", nil)
	req.Header.Set("Authorization", "Bearer "+tokenForRole(t, "admin"))
	resp := doRequest(t, app, req)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/pdf", resp.Header.Get("Content-Type"))
	assert.Contains(t, resp.Header.Get("Content-Disposition"), created.TrackingNumber)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(body), "%PDF"))
}

// ──────────────────────────────────────────────────────────────────────────────
// Auth
// ──────────────────────────────────────────────────────────────────────────────

func TestSignup_CamposFaltantes(t *testing.T) {
	app := newTestApp(t)

	resp := doRequest(t, app, jsonRequest(t, stdhttp.MethodPost, "/api/auth/signup", fiber.Map{
		"email": "ana@example.com",
	}))
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "All fields are required", errorBody(t, resp))
}

func TestSignupYSignin_FlujoCompleto(t *testing.T) {
	app := newTestApp(t)

	signup := fiber.Map{
		"email":       "ana@example.com",
		"password":    "s3cret0!",
		"name":        "Ana Gómez",
		"accountType": "buyer",
	}
	resp := doRequest(t, app, jsonRequest(t, stdhttp.MethodPost, "/api/auth/signup", signup))
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	var created dto.AuthResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&created))
	assert.Equal(t, "User created successfully", created.Message)
	assert.Equal(t, "user", created.Role)

	// Registro duplicado
	resp = doRequest(t, app, jsonRequest(t, stdhttp.MethodPost, "/api/auth/signup", signup))
	assert.Equal(t, fiber.StatusConflict, resp.StatusCode)
	assert.Equal(t, "User already exists", errorBody(t, resp))

	// Password incorrecto
	resp = doRequest(t, app, jsonRequest(t, stdhttp.MethodPost, "/api/auth/signin", fiber.Map{
		"email":    "ana@example.com",
		"password": "incorrecto",
	}))
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "Invalid credentials", errorBody(t, resp))

	// Inicio de sesión correcto: respuesta + cookie de sesión
	resp = doRequest(t, app, jsonRequest(t, stdhttp.MethodPost, "/api/auth/signin", fiber.Map{
		"email":    "ana@example.com",
		"password": "s3cret0!",
	}))
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var signin dto.AuthResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&signin))
	assert.Equal(t, "Login successful", signin.Message)

	var sessionCookie *stdhttp.Cookie
	for _, ck := range resp.Cookies() {
		if ck.Name == httpapi.CookieToken {
			sessionCookie = ck
		}
	}
	require.NotNil(t, sessionCookie, "signin debe emitir la cookie de sesión")
	assert.NotEmpty(t, sessionCookie.Value)
	assert.True(t, sessionCookie.HttpOnly)
}

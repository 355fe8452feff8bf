package sandbox_test

import (
	"bytes"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/PhuocTran96/posm-survey-collection-sub002/internal/application/dto"
	"github.com/PhuocTran96/posm-survey-collection-sub002/internal/domain/entity"
	"github.com/PhuocTran96/posm-survey-collection-sub002/internal/sandbox"
	"github.com/PhuocTran96/posm-survey-collection-sub002/pkg/config"
	"github.com/PhuocTran96/posm-survey-collection-sub002/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

const clavePrueba = "clave123"

var jwtPrueba = config.JWTConfig{
	Secret:     "secreto-de-sandbox-test",
	Expiration: 60,
	Issuer:     "sandbox-test",
}

// cuenta construye un usuario con ID fijo para poder armar rutas en los tests.
func cuenta(id, login, nombre, rol, lider string, activo bool, tiendas ...string) entity.User {
	return entity.User{
		ID:          id,
		UserCode:    strings.ToUpper(login),
		LoginID:     login,
		DisplayName: nombre,
		Role:        rol,
		LeaderName:  lider,
		Active:      activo,
		StoreIDs:    tiendas,
	}
}

// datosDePrueba arma un padrón chico: admin → TDS → dos PRT (uno inactivo).
func datosDePrueba(t *testing.T) *sandbox.Dataset {
	t.Helper()
	d := sandbox.NewDataset()
	for _, u := range []entity.User{
		cuenta("u-ana", "ana", "Ana Torres", "admin", "", true),
		cuenta("u-hung", "hung", "Nguyễn Văn Hùng", "TDS", "ana", true),
		cuenta("u-prt1", "prt1", "Trần Mỹ Linh", "PRT", "hung", true, "st-1", "st-2"),
		cuenta("u-prt2", "prt2", "Lê Văn Đức", "PRT", "hung", false),
	} {
		_, err := d.Create(u, clavePrueba)
		require.NoError(t, err)
	}
	d.AddStore(entity.Store{ID: "st-1", Name: "Tienda Norte 01", Code: "NOR-01", Region: "Norte", Active: true})
	d.AddStore(entity.Store{ID: "st-2", Name: "Tienda Norte 02", Code: "NOR-02", Region: "Norte", Active: true})
	d.AddStore(entity.Store{ID: "st-3", Name: "Tienda Sur 01", Code: "SUR-01", Region: "Sur", Active: true})
	return d
}

func servidorDePrueba(t *testing.T) *sandbox.Server {
	t.Helper()
	return sandbox.New(datosDePrueba(t), jwtPrueba, logger.Nop())
}

// doJSON lanza un request con cuerpo JSON y token opcionales.
func doJSON(t *testing.T, app *fiber.App, method, path, token string, body any) *http.Response {
	t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

// sobre decodifica el cuerpo como el sobre estándar (también los de error).
func sobre(t *testing.T, resp *http.Response) dto.Envelope {
	t.Helper()
	defer resp.Body.Close()
	var env dto.Envelope
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&env))
	return env
}

// datos desarma el bloque data del sobre en out.
func datos(t *testing.T, env dto.Envelope, out any) {
	t.Helper()
	require.NotEmpty(t, env.Data, "el sobre debe traer data")
	require.NoError(t, json.Unmarshal(env.Data, out))
}

// tokenDe inicia sesión por HTTP y devuelve el token emitido.
func tokenDe(t *testing.T, app *fiber.App, login string) string {
	t.Helper()
	resp := doJSON(t, app, http.MethodPost, "/api/auth/login", "", dto.LoginRequest{LoginID: login, Password: clavePrueba})
	require.Equal(t, http.StatusOK, resp.StatusCode, "el login de %s debe pasar", login)
	var out dto.LoginResponse
	datos(t, sobre(t, resp), &out)
	require.NotEmpty(t, out.Token)
	return out.Token
}

// doImport sube un archivo por multipart al endpoint de importación.
func doImport(t *testing.T, app *fiber.App, token, filename string, payload []byte) *http.Response {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("file", filename)
	require.NoError(t, err)
	_, err = part.Write(payload)
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/users/import", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

// ──────────────────────────────────────────────────────────────────────────────
// Login
// ──────────────────────────────────────────────────────────────────────────────

func TestLogin_EmiteTokenYPerfil(t *testing.T) {
	srv := servidorDePrueba(t)

	resp := doJSON(t, srv.App(), http.MethodPost, "/api/auth/login", "", dto.LoginRequest{LoginID: "ana", Password: clavePrueba})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var out dto.LoginResponse
	datos(t, sobre(t, resp), &out)
	assert.NotEmpty(t, out.Token)
	assert.Equal(t, "ana", out.User.LoginID)
	assert.Equal(t, "admin", out.User.Role)
	assert.NotNil(t, out.User.LastLoginAt, "el login debe registrar el último acceso")
}

func TestLogin_CredencialesMalas_Retorna401(t *testing.T) {
	srv := servidorDePrueba(t)

	resp := doJSON(t, srv.App(), http.MethodPost, "/api/auth/login", "", dto.LoginRequest{LoginID: "ana", Password: "otra-clave"})
	defer resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp = doJSON(t, srv.App(), http.MethodPost, "/api/auth/login", "", dto.LoginRequest{LoginID: "fantasma", Password: clavePrueba})
	env := sobre(t, resp)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "UNAUTHORIZED", env.Code)
}

func TestLogin_CuentaInactiva_Retorna403(t *testing.T) {
	srv := servidorDePrueba(t)

	resp := doJSON(t, srv.App(), http.MethodPost, "/api/auth/login", "", dto.LoginRequest{LoginID: "prt2", Password: clavePrueba})
	env := sobre(t, resp)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode,
		"una cuenta deshabilitada no es lo mismo que credenciales malas")
	assert.Equal(t, "FORBIDDEN", env.Code)
}

func TestLogin_SinCampos_Retorna400(t *testing.T) {
	srv := servidorDePrueba(t)

	resp := doJSON(t, srv.App(), http.MethodPost, "/api/auth/login", "", dto.LoginRequest{LoginID: "ana"})
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

// ──────────────────────────────────────────────────────────────────────────────
// Middleware de autenticación y rol
// ──────────────────────────────────────────────────────────────────────────────

func TestRutasProtegidas_SinToken_Retorna401(t *testing.T) {
	srv := servidorDePrueba(t)

	resp := doJSON(t, srv.App(), http.MethodGet, "/api/users", "", nil)
	env := sobre(t, resp)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "MISSING_TOKEN", env.Code)
}

func TestRutasProtegidas_TokenInvalido_Retorna401(t *testing.T) {
	srv := servidorDePrueba(t)

	resp := doJSON(t, srv.App(), http.MethodGet, "/api/users", "token.invalido.aqui", nil)
	env := sobre(t, resp)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "INVALID_TOKEN", env.Code)
}

func TestRutasProtegidas_RolDeCampoSinAdministracion(t *testing.T) {
	srv := servidorDePrueba(t)
	token := tokenDe(t, srv.App(), "prt1")

	// La administración de usuarios es de admin…
	resp := doJSON(t, srv.App(), http.MethodGet, "/api/users", token, nil)
	env := sobre(t, resp)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	assert.Equal(t, "FORBIDDEN", env.Code)

	// …pero el catálogo de tiendas es de cualquier autenticado.
	resp = doJSON(t, srv.App(), http.MethodGet, "/api/stores", token, nil)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

// ──────────────────────────────────────────────────────────────────────────────
// Listado: filtrado del lado servidor y paginación
// ──────────────────────────────────────────────────────────────────────────────

func TestListUsers_PaginaYTotal(t *testing.T) {
	srv := servidorDePrueba(t)
	token := tokenDe(t, srv.App(), "ana")

	resp := doJSON(t, srv.App(), http.MethodGet, "/api/users?page=2&limit=2", token, nil)
	env := sobre(t, resp)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var users []entity.User
	datos(t, env, &users)
	require.Len(t, users, 2, "la segunda página de a 2 trae los dos últimos")
	assert.Equal(t, "u-prt1", users[0].ID)
	assert.Equal(t, "u-prt2", users[1].ID)

	require.NotNil(t, env.Pagination)
	assert.Equal(t, 2, env.Pagination.Page)
	assert.Equal(t, 4, env.Pagination.Total)
	assert.Equal(t, 2, env.Pagination.TotalPages)
}

func TestListUsers_BusquedaPlegada(t *testing.T) {
	srv := servidorDePrueba(t)
	token := tokenDe(t, srv.App(), "ana")

	// El operador escribe sin tildes; el servidor pliega igual que la vista.
	resp := doJSON(t, srv.App(), http.MethodGet, "/api/users?search=nguyen", token, nil)
	env := sobre(t, resp)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var users []entity.User
	datos(t, env, &users)
	require.Len(t, users, 1)
	assert.Equal(t, "u-hung", users[0].ID)
}

func TestListUsers_FacetasCombinadas(t *testing.T) {
	srv := servidorDePrueba(t)
	token := tokenDe(t, srv.App(), "ana")

	resp := doJSON(t, srv.App(), http.MethodGet, "/api/users?role=PRT&isActive=false", token, nil)
	env := sobre(t, resp)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var users []entity.User
	datos(t, env, &users)
	require.Len(t, users, 1, "las facetas se combinan con AND")
	assert.Equal(t, "u-prt2", users[0].ID)
}

func TestListUsers_IsActiveInvalido_Retorna400(t *testing.T) {
	srv := servidorDePrueba(t)
	token := tokenDe(t, srv.App(), "ana")

	resp := doJSON(t, srv.App(), http.MethodGet, "/api/users?isActive=quizas", token, nil)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

// ──────────────────────────────────────────────────────────────────────────────
// CRUD individual
// ──────────────────────────────────────────────────────────────────────────────

func TestGetUser_PorIDYNoEncontrado(t *testing.T) {
	srv := servidorDePrueba(t)
	token := tokenDe(t, srv.App(), "ana")

	resp := doJSON(t, srv.App(), http.MethodGet, "/api/users/u-prt1", token, nil)
	env := sobre(t, resp)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var u entity.User
	datos(t, env, &u)
	assert.Equal(t, "prt1", u.LoginID)
	assert.Equal(t, []string{"st-1", "st-2"}, u.StoreIDs)

	resp = doJSON(t, srv.App(), http.MethodGet, "/api/users/fantasma", token, nil)
	env = sobre(t, resp)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "NOT_FOUND", env.Code)
}

func TestCreateUser_AltaConflictoYValidacion(t *testing.T) {
	srv := servidorDePrueba(t)
	token := tokenDe(t, srv.App(), "ana")

	alta := dto.CreateUserRequest{
		UserCode:    "PRT-900",
		LoginID:     "walter.caceres",
		DisplayName: "Walter Cáceres",
		Password:    "clave-inicial",
		Role:        "PRT",
		Leader:      "hung",
	}
	resp := doJSON(t, srv.App(), http.MethodPost, "/api/users", token, alta)
	env := sobre(t, resp)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var creado entity.User
	datos(t, env, &creado)
	assert.NotEmpty(t, creado.ID, "el sandbox asigna el ID")
	assert.True(t, creado.Active, "sin isActive explícito la cuenta nace activa")

	// Mismo loginId otra vez → conflicto.
	alta.UserCode = "PRT-901"
	resp = doJSON(t, srv.App(), http.MethodPost, "/api/users", token, alta)
	env = sobre(t, resp)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	assert.Equal(t, "DUPLICATE", env.Code)

	// Contraseña corta → el servidor valida con las mismas reglas que el cliente.
	alta = dto.CreateUserRequest{
		UserCode:    "PRT-902",
		LoginID:     "otra.cuenta",
		DisplayName: "Otra Cuenta",
		Password:    "corta",
		Role:        "PRT",
	}
	resp = doJSON(t, srv.App(), http.MethodPost, "/api/users", token, alta)
	env = sobre(t, resp)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "VALIDATION", env.Code)
}

func TestUpdateUser_ParcialNoTocaElResto(t *testing.T) {
	srv := servidorDePrueba(t)
	token := tokenDe(t, srv.App(), "ana")

	nombre := "Trần Thị Ngọc"
	resp := doJSON(t, srv.App(), http.MethodPut, "/api/users/u-prt1", token, dto.UpdateUserRequest{DisplayName: &nombre})
	env := sobre(t, resp)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var u entity.User
	datos(t, env, &u)
	assert.Equal(t, nombre, u.DisplayName)
	assert.Equal(t, "PRT", u.Role, "los campos ausentes no cambian")
	assert.Equal(t, []string{"st-1", "st-2"}, u.StoreIDs)
}

func TestUpdateUser_PunteroVacioVaciaLaCartera(t *testing.T) {
	srv := servidorDePrueba(t)
	token := tokenDe(t, srv.App(), "ana")

	vacia := []string{}
	resp := doJSON(t, srv.App(), http.MethodPut, "/api/users/u-prt1", token, dto.UpdateUserRequest{StoreIDs: &vacia})
	env := sobre(t, resp)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var u entity.User
	datos(t, env, &u)
	assert.Empty(t, u.StoreIDs, "el slice vacío explícito limpia la cartera")
}

func TestDeleteUser_EliminaYRevocaCredenciales(t *testing.T) {
	srv := servidorDePrueba(t)
	token := tokenDe(t, srv.App(), "ana")

	resp := doJSON(t, srv.App(), http.MethodDelete, "/api/users/u-prt1", token, nil)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp = doJSON(t, srv.App(), http.MethodGet, "/api/users/u-prt1", token, nil)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	// La cuenta borrada ya no puede iniciar sesión.
	resp = doJSON(t, srv.App(), http.MethodPost, "/api/auth/login", "", dto.LoginRequest{LoginID: "prt1", Password: clavePrueba})
	defer resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

// ──────────────────────────────────────────────────────────────────────────────
// Borrado masivo
// ──────────────────────────────────────────────────────────────────────────────

func TestBulkDelete_UnSoloRequestParaElLote(t *testing.T) {
	srv := servidorDePrueba(t)
	token := tokenDe(t, srv.App(), "ana")

	body := dto.BulkDeleteRequest{UserIDs: []string{"u-prt1", "u-prt2", "fantasma"}}
	resp := doJSON(t, srv.App(), http.MethodDelete, "/api/users/bulk", token, body)
	env := sobre(t, resp)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var payload dto.BulkDeletePayload
	datos(t, env, &payload)
	assert.Equal(t, 2, payload.DeletedCount, "los IDs inexistentes no cuentan")

	resp = doJSON(t, srv.App(), http.MethodGet, "/api/users", token, nil)
	env = sobre(t, resp)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.NotNil(t, env.Pagination)
	assert.Equal(t, 2, env.Pagination.Total)
}

func TestBulkDelete_LoteVacio_Retorna400(t *testing.T) {
	srv := servidorDePrueba(t)
	token := tokenDe(t, srv.App(), "ana")

	resp := doJSON(t, srv.App(), http.MethodDelete, "/api/users/bulk", token, dto.BulkDeleteRequest{})
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

// ──────────────────────────────────────────────────────────────────────────────
// Exportación e importación
// ──────────────────────────────────────────────────────────────────────────────

func TestExport_DescargaElPadronComoCSV(t *testing.T) {
	srv := servidorDePrueba(t)
	token := tokenDe(t, srv.App(), "ana")

	resp := doJSON(t, srv.App(), http.MethodGet, "/api/users/export", token, nil)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Content-Type"), "text/csv")

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	body := string(raw)
	assert.Contains(t, body, "userCode,loginId,displayName")
	assert.Contains(t, body, "Nguyễn Văn Hùng")
	assert.Contains(t, body, "st-1|st-2")
}

func TestImport_UpsertPorUserCode(t *testing.T) {
	srv := servidorDePrueba(t)
	token := tokenDe(t, srv.App(), "ana")

	csv := strings.Join([]string{
		"userCode,loginId,displayName,role,leader,isActive,assignedStores",
		"PRT-100,moi.nguyen,Nguyễn Văn Mới,PRT,hung,true,st-1|st-3", // alta
		"PRT1,prt1,Trần Mỹ Linh,PRT,hung,false,st-2",                // actualiza por código
		",,Sin Código,PRT,,,",                                       // fila mala
	}, "\n")

	resp := doImport(t, srv.App(), token, "padron.csv", []byte(csv))
	env := sobre(t, resp)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var res dto.ImportResult
	datos(t, env, &res)
	assert.Equal(t, 1, res.Inserted)
	assert.Equal(t, 1, res.Updated)
	assert.Equal(t, 1, res.Failed)
	require.Len(t, res.Errors, 1)
	assert.Contains(t, res.Errors[0], "fila 4")

	// La cuenta actualizada quedó inactiva y con la cartera de la fila.
	resp = doJSON(t, srv.App(), http.MethodGet, "/api/users/u-prt1", token, nil)
	var u entity.User
	datos(t, sobre(t, resp), &u)
	assert.False(t, u.Active)
	assert.Equal(t, []string{"st-2"}, u.StoreIDs)

	// La cuenta nueva entra con la contraseña inicial.
	resp = doJSON(t, srv.App(), http.MethodPost, "/api/auth/login", "", dto.LoginRequest{LoginID: "moi.nguyen", Password: "123456"})
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestImport_SoloAceptaCSV(t *testing.T) {
	srv := servidorDePrueba(t)
	token := tokenDe(t, srv.App(), "ana")

	resp := doImport(t, srv.App(), token, "padron.xlsx", []byte("lo que sea"))
	env := sobre(t, resp)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "VALIDATION", env.Code)
}

// ──────────────────────────────────────────────────────────────────────────────
// Estadísticas y tiendas
// ──────────────────────────────────────────────────────────────────────────────

func TestStats_ResumenYDistribucionEstable(t *testing.T) {
	srv := servidorDePrueba(t)
	token := tokenDe(t, srv.App(), "ana")

	resp := doJSON(t, srv.App(), http.MethodGet, "/api/users/stats", token, nil)
	env := sobre(t, resp)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var payload dto.StatsPayload
	datos(t, env, &payload)
	assert.Equal(t, entity.UserStats{TotalUsers: 4, ActiveUsers: 3, InactiveUsers: 1}, payload.Overview)
	assert.Equal(t, []entity.RoleCount{
		{Role: "PRT", Count: 2},
		{Role: "TDS", Count: 1},
		{Role: "admin", Count: 1},
	}, payload.RoleDistribution)
}

func TestStores_CatalogoYLimite(t *testing.T) {
	srv := servidorDePrueba(t)
	token := tokenDe(t, srv.App(), "ana")

	resp := doJSON(t, srv.App(), http.MethodGet, "/api/stores", token, nil)
	env := sobre(t, resp)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var stores []entity.Store
	datos(t, env, &stores)
	assert.Len(t, stores, 3)

	resp = doJSON(t, srv.App(), http.MethodGet, "/api/stores?limit=2", token, nil)
	env = sobre(t, resp)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	stores = nil
	datos(t, env, &stores)
	assert.Len(t, stores, 2)
}

// ──────────────────────────────────────────────────────────────────────────────
// Interruptor de fallos y salud
// ──────────────────────────────────────────────────────────────────────────────

func TestBreak_FuerzaElFalloDeUnSoloEndpoint(t *testing.T) {
	srv := servidorDePrueba(t)
	token := tokenDe(t, srv.App(), "ana")

	srv.Break("GET /api/users/stats")

	resp := doJSON(t, srv.App(), http.MethodGet, "/api/users/stats", token, nil)
	env := sobre(t, resp)
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	assert.Equal(t, "FORCED_FAILURE", env.Code)

	// El resto de la API sigue viva: es un fallo de un solo endpoint.
	resp = doJSON(t, srv.App(), http.MethodGet, "/api/users", token, nil)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	srv.Restore("GET /api/users/stats")
	resp = doJSON(t, srv.App(), http.MethodGet, "/api/users/stats", token, nil)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestHealth_EsPublico(t *testing.T) {
	srv := servidorDePrueba(t)

	resp := doJSON(t, srv.App(), http.MethodGet, "/api/health", "", nil)
	env := sobre(t, resp)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.True(t, env.Success)
}

// ──────────────────────────────────────────────────────────────────────────────
// Dataset sembrado
// ──────────────────────────────────────────────────────────────────────────────

func TestSeed_PadronCompletoYCredenciales(t *testing.T) {
	d := sandbox.Seed(10)
	srv := sandbox.New(d, jwtPrueba, logger.Nop())

	resp := doJSON(t, srv.App(), http.MethodPost, "/api/auth/login", "", dto.LoginRequest{LoginID: sandbox.SeedAdminLogin, Password: sandbox.SeedPassword})
	require.Equal(t, http.StatusOK, resp.StatusCode, "el admin sembrado entra con la clave de siembra")
	var out dto.LoginResponse
	datos(t, sobre(t, resp), &out)

	token := out.Token
	resp = doJSON(t, srv.App(), http.MethodGet, "/api/users/stats", token, nil)
	env := sobre(t, resp)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var payload dto.StatsPayload
	datos(t, env, &payload)
	assert.Equal(t, 16, payload.Overview.TotalUsers, "6 cuentas fijas más 10 promotores")
	assert.Equal(t, 1, payload.Overview.InactiveUsers)

	resp = doJSON(t, srv.App(), http.MethodGet, "/api/stores", token, nil)
	env = sobre(t, resp)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var stores []entity.Store
	datos(t, env, &stores)
	assert.Len(t, stores, 48)
}

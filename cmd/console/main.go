// console es el recorrido de demostración del núcleo de administración: entra
// a la plataforma (o usa API_TOKEN), carga la vista de lista, filtra, arma el
// selector de líderes, abre una sesión de asignación, mueve tiendas y guarda.
// Cada instantánea de vista se imprime por la bitácora; no hay interfaz
// gráfica, el render real vive en otro repositorio.
//
// Uso: go run ./cmd/console   (con el sandbox corriendo: go run ./cmd/sandbox)
// Config por env o .env: API_BASE_URL, API_TOKEN, CONSOLE_LOGIN,
// CONSOLE_PASSWORD, UI_PAGE_SIZE, UI_DEBOUNCE_MS.
package main

import (
	"context"
	"fmt"
	"time"

	"github.com/PhuocTran96/posm-survey-collection-sub002/internal/application/dto"
	"github.com/PhuocTran96/posm-survey-collection-sub002/internal/application/usecase"
	"github.com/PhuocTran96/posm-survey-collection-sub002/internal/domain/entity"
	"github.com/PhuocTran96/posm-survey-collection-sub002/internal/domain/hierarchy"
	"github.com/PhuocTran96/posm-survey-collection-sub002/internal/infrastructure/apiclient"
	"github.com/PhuocTran96/posm-survey-collection-sub002/internal/sandbox"
	"github.com/PhuocTran96/posm-survey-collection-sub002/pkg/config"
	"github.com/PhuocTran96/posm-survey-collection-sub002/pkg/jwt"
	"github.com/PhuocTran96/posm-survey-collection-sub002/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("api", cfg.API.BaseURL).
		Msg("consola de administración POSM")

	ctx := context.Background()

	cli := apiclient.New(cfg.API.BaseURL, cfg.API.Timeout(), apiclient.StaticToken(resolveToken(ctx, cfg, log)))
	cli.OnSessionExpired = func() {
		log.Error().Msg("el backend invalidó la sesión; hay que volver a entrar")
	}

	users := apiclient.NewUserRepository(cli)
	stores := apiclient.NewStoreRepository(cli)

	// ── Vista de lista: carga, filtros y búsqueda con debounce ───────────────

	lista := usecase.NewUserListUseCase(users, cfg.UI.PageSize, cfg.UI.Debounce())
	defer lista.Stop()
	lista.OnViewChanged = func(v dto.UserListView) { renderLista(log, v) }
	lista.OnError = func(err error) { log.Error().Err(err).Msg("recarga agendada fallida") }

	if err := lista.Load(ctx); err != nil {
		log.Fatal().Err(err).Msg("carga inicial de la vista")
	}

	log.Info().Msg("── filtro por rol PRT ──")
	if err := lista.SetRole(ctx, entity.RolePRT); err != nil {
		log.Fatal().Err(err).Msg("filtrar por rol")
	}
	subject := pickSubject(lista.Snapshot())
	if subject.ID == "" {
		log.Fatal().Msg("no hay cuentas PRT en el padrón; ¿está corriendo el sandbox sembrado?")
	}

	log.Info().Msg("── búsqueda tecleada (una consulta por ráfaga) ──")
	lista.SetSearch("ngu")
	lista.SetSearch("nguy")
	lista.SetSearch("nguyen")
	time.Sleep(cfg.UI.Debounce() + 500*time.Millisecond)

	if err := lista.ClearFilters(ctx); err != nil {
		log.Fatal().Err(err).Msg("limpiar filtros")
	}

	// ── Selector de líderes para la cuenta elegida ───────────────────────────

	log.Info().Str("cuenta", subject.LoginID).Str("rol", subject.Role).Msg("── selector de líderes ──")
	picker := usecase.NewLeaderPickerUseCase(users, hierarchy.New(hierarchy.DefaultConfig()))

	opciones, err := picker.OptionsFor(ctx, subject.Role, subject.LeaderName, "")
	if err != nil {
		log.Fatal().Err(err).Msg("armar selector de líderes")
	}
	renderPicker(log, opciones)

	perfiles, err := picker.Hierarchy(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("resumen de jerarquía")
	}
	for _, p := range perfiles {
		log.Info().Str("lider", p.Username).Str("rol", orDash(p.Role)).Msg("liderazgo observado en el padrón")
	}

	// ── Sesión de asignación: filtrar, mover, guardar ────────────────────────

	log.Info().Str("cuenta", subject.LoginID).Msg("── sesión de asignación de tiendas ──")
	asig := usecase.NewAssignmentUseCase(users, stores, cfg.API.StoresLimit)
	if err := asig.Open(ctx, subject.ID); err != nil {
		log.Fatal().Err(err).Msg("abrir sesión de asignación")
	}
	renderPaneles(log, "al abrir", asig.View())

	asig.SetStoreSearch("norte")
	renderPaneles(log, "panel izquierdo filtrado por «norte»", asig.View())

	moved := asig.AssignAllVisible()
	log.Info().Int("movidas", moved).Msg("asignado todo lo visible bajo el filtro")
	asig.SetStoreSearch("")

	if v := asig.View(); len(v.Assigned) > 0 {
		chip := v.Assigned[len(v.Assigned)-1].ID
		asig.RemoveStore(chip)
		log.Info().Str("tienda", chip).Msg("chip quitado del panel derecho")
	}
	renderPaneles(log, "antes de guardar", asig.View())

	saved, err := asig.Save(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("guardar la cartera")
	}
	log.Info().
		Int("cartera", len(saved.StoreIDs)).
		Bool("cambios_pendientes", asig.View().HasChanges).
		Msg("cartera guardada")

	// ── Lote: desactivar y reactivar la selección de la página ───────────────

	log.Info().Msg("── operación masiva sobre la selección ──")
	if err := lista.SetRole(ctx, entity.RolePRT); err != nil {
		log.Fatal().Err(err).Msg("filtrar por rol")
	}
	lista.SelectPage()
	ids := lista.SelectedIDs()

	lote := usecase.NewBulkUseCase(users)
	res, err := lote.SetActive(ctx, ids, false)
	renderLote(log, "desactivar", res, err)
	res, err = lote.SetActive(ctx, ids, true)
	renderLote(log, "reactivar", res, err)

	if err := lista.Load(ctx); err != nil {
		log.Fatal().Err(err).Msg("recarga final")
	}
	log.Info().Msg("recorrido completo")
}

// resolveToken devuelve el Bearer a usar: el API_TOKEN configurado o, si no
// hay, el emitido por el login de la consola (por defecto, el admin sembrado
// del sandbox).
func resolveToken(ctx context.Context, cfg *config.Config, log *logger.Logger) string {
	token := cfg.API.Token
	if token == "" {
		login, password := cfg.Console.Login, cfg.Console.Password
		if login == "" {
			login, password = sandbox.SeedAdminLogin, sandbox.SeedPassword
			log.Warn().Str("login", login).Msg("sin API_TOKEN ni CONSOLE_LOGIN; entrando con la cuenta sembrada")
		}
		anon := apiclient.New(cfg.API.BaseURL, cfg.API.Timeout(), nil)
		out, err := anon.Login(ctx, login, password)
		if err != nil {
			log.Fatal().Err(err).Str("login", login).Msg("iniciar sesión")
		}
		log.Info().Str("login", out.User.LoginID).Str("rol", out.User.Role).Msg("sesión iniciada")
		token = out.Token
	}

	// Aviso temprano de expiración; sin verificar firma, solo informativo.
	if exp, err := jwt.PeekExpiry(token); err == nil {
		log.Info().Time("expira", exp).Msg("vigencia del token")
		if time.Until(exp) <= 0 {
			log.Warn().Msg("el token ya venció; todo request autenticado va a fallar con 401")
		}
	}
	return token
}

// pickSubject elige la cuenta a editar en el recorrido: la primera fila
// visible con tiendas asignadas, o la primera a secas.
func pickSubject(v dto.UserListView) entity.User {
	for _, u := range v.Users {
		if len(u.StoreIDs) > 0 {
			return u
		}
	}
	if len(v.Users) > 0 {
		return v.Users[0]
	}
	return entity.User{}
}

func renderLista(log *logger.Logger, v dto.UserListView) {
	filas := make([]string, len(v.Users))
	for i, u := range v.Users {
		marca := " "
		if !u.Active {
			marca = "✗"
		}
		filas[i] = fmt.Sprintf("%s %s · %s (%s)", marca, u.UserCode, u.DisplayName, u.Role)
	}
	log.Info().
		Int("pagina", v.Page.Page).
		Int("paginas", v.Page.TotalPages).
		Int("total", v.Page.Total).
		Int("activos", v.Stats.ActiveUsers).
		Int("inactivos", v.Stats.InactiveUsers).
		Strs("filas", filas).
		Msg("vista de lista")
}

func renderPicker(log *logger.Logger, v dto.LeaderPickerView) {
	opts := make([]string, len(v.Options))
	for i, o := range v.Options {
		cur := ""
		if o.Current {
			cur = " (actual)"
		}
		opts[i] = fmt.Sprintf("%s [%s]%s", o.Label, orDash(o.Role), cur)
	}
	log.Info().
		Strs("roles_elegibles", v.Roles).
		Strs("opciones", opts).
		Bool("obligatorio", v.Required).
		Msg("selector de líderes")
}

func renderPaneles(log *logger.Logger, etapa string, v dto.TransferView) {
	log.Info().
		Int("disponibles", len(v.Available)).
		Int("asignadas", len(v.Assigned)).
		Bool("boton_asignar", v.CanAssign).
		Bool("boton_asignar_todo", v.CanAssignAll).
		Bool("boton_quitar", v.CanUnassign).
		Bool("boton_vaciar", v.CanUnassignAll).
		Bool("cambios_pendientes", v.HasChanges).
		Msg("paneles de asignación: " + etapa)
}

func renderLote(log *logger.Logger, op string, res dto.BulkResult, err error) {
	ev := log.Info()
	if err != nil {
		ev = log.Warn().Err(err)
	}
	ev.Int("pedidas", res.Requested).
		Int("lograron", res.Succeeded).
		Int("fallaron", res.Failed).
		Msg("lote: " + op)
}

func orDash(s string) string {
	if s == "" {
		return "—"
	}
	return s
}

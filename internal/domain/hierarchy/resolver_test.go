package hierarchy_test

import (
	"testing"

	"github.com/PhuocTran96/posm-survey-collection-sub002/internal/domain/entity"
	"github.com/PhuocTran96/posm-survey-collection-sub002/internal/domain/hierarchy"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func usuario(login, nombre, rol, lider string, activo bool) entity.User {
	return entity.User{
		ID:          "id-" + login,
		LoginID:     login,
		DisplayName: nombre,
		Role:        rol,
		LeaderName:  lider,
		Active:      activo,
	}
}

// pool de referencia: admin arriba, dave (TDS) y carol (TDL) en el medio,
// promotores abajo con líderes repartidos.
func poolBase() []entity.User {
	return []entity.User{
		usuario("ana", "Ana Torres", entity.RoleAdmin, "", true),
		usuario("dave", "Dave Martín", entity.RoleTDS, "ana", true),
		usuario("carol", "Carol Núñez", entity.RoleTDL, "dave", true),
		usuario("prt1", "Minh Châu", entity.RolePRT, "carol", true),
		usuario("prt2", "Quốc Bảo", entity.RolePRT, "dave", true),
	}
}

func nombres(opts []hierarchy.Option) []string {
	out := make([]string, len(opts))
	for i, o := range opts {
		out[i] = o.Name
	}
	return out
}

// ─────────────────────────────────────────────
// LeaderRoles: observación y semilla
// ─────────────────────────────────────────────

func TestLeaderRoles_DerivaDeLoObservado(t *testing.T) {
	r := hierarchy.New(hierarchy.DefaultConfig())

	// Los PRT aparecen liderados por carol (TDL) y dave (TDS): ambos roles
	// son elegibles, en orden de escalafón.
	roles := r.LeaderRoles(poolBase(), entity.RolePRT)

	assert.Equal(t, []string{entity.RoleTDS, entity.RoleTDL}, roles)
}

func TestLeaderRoles_ElLiderObservadoEntraAlSelector(t *testing.T) {
	r := hierarchy.New(hierarchy.DefaultConfig())

	// El caso mínimo: carol no lidera por rol sino porque dave la referencia.
	pool := []entity.User{
		usuario("carol", "Carol Núñez", entity.RoleTDL, "", true),
		usuario("dave", "Dave Martín", entity.RolePRT, "carol", true),
	}

	assert.Equal(t, []string{entity.RoleTDL}, r.LeaderRoles(pool, entity.RolePRT))
	assert.Equal(t, []string{"carol"}, nombres(r.Candidates(pool, entity.RolePRT, "")))
}

func TestLeaderRoles_SinObservacionesUsaLaSemilla(t *testing.T) {
	r := hierarchy.New(hierarchy.DefaultConfig())

	pool := []entity.User{
		usuario("ana", "Ana Torres", entity.RoleAdmin, "", true),
		usuario("tdl1", "Carol Núñez", entity.RoleTDL, "", true),
	}
	roles := r.LeaderRoles(pool, entity.RoleTDL)

	assert.Equal(t, []string{entity.RoleAdmin}, roles)
}

func TestLeaderRoles_LiderNoResolubleNoCuenta(t *testing.T) {
	r := hierarchy.New(hierarchy.DefaultConfig())

	pool := []entity.User{
		usuario("prt1", "Minh Châu", entity.RolePRT, "fantasma", true),
		usuario("ana", "Ana Torres", entity.RoleAdmin, "", true),
	}
	roles := r.LeaderRoles(pool, entity.RolePRT)

	assert.Equal(t, []string{entity.RoleAdmin}, roles, "una referencia rota cae a la semilla")
}

// ─────────────────────────────────────────────
// RequiresLeader: quién debe llevar líder
// ─────────────────────────────────────────────

func TestRequiresLeader_AdminNunca(t *testing.T) {
	r := hierarchy.New(hierarchy.DefaultConfig())

	assert.False(t, r.RequiresLeader(poolBase(), entity.RoleAdmin))
}

func TestRequiresLeader_RolConLideresEnLosDatos(t *testing.T) {
	r := hierarchy.New(hierarchy.DefaultConfig())

	// Los PRT ya vienen con líder cargado: el campo es obligatorio.
	assert.True(t, r.RequiresLeader(poolBase(), entity.RolePRT))
}

func TestRequiresLeader_UnRolQueLideraNoLleva(t *testing.T) {
	r := hierarchy.New(hierarchy.DefaultConfig())

	// carol (TDL) lidera a dave y ningún TDL trae líder propio: el rol se
	// observa liderando, no liderado.
	pool := []entity.User{
		usuario("carol", "Carol Núñez", entity.RoleTDL, "", true),
		usuario("dave", "Dave Martín", entity.RolePRT, "carol", true),
	}

	assert.False(t, r.RequiresLeader(pool, entity.RoleTDL))
	assert.True(t, r.RequiresLeader(pool, entity.RolePRT))
}

func TestRequiresLeader_RolNuevoSinDatosLoLleva(t *testing.T) {
	r := hierarchy.New(hierarchy.DefaultConfig())

	assert.True(t, r.RequiresLeader(poolBase(), "SUP"),
		"un rol que no se observa liderando reporta a alguien")
}

// ─────────────────────────────────────────────
// Candidates: elegibilidad, orden, inactivos
// ─────────────────────────────────────────────

func TestCandidates_OrdenaPorEscalafonYLogin(t *testing.T) {
	r := hierarchy.New(hierarchy.DefaultConfig())
	pool := append(poolBase(),
		usuario("berta", "Berta Gil", entity.RoleTDS, "ana", true),
	)

	opts := r.Candidates(pool, entity.RolePRT, "")

	// TDS antes que TDL; dentro del rol, por login.
	assert.Equal(t, []string{"berta", "dave", "carol"}, nombres(opts))
}

func TestCandidates_ExcluyeInactivos(t *testing.T) {
	r := hierarchy.New(hierarchy.DefaultConfig())
	pool := append(poolBase(),
		usuario("leo", "Leo Paz", entity.RoleTDS, "ana", false),
	)

	opts := r.Candidates(pool, entity.RolePRT, "")

	assert.NotContains(t, nombres(opts), "leo")
}

func TestCandidates_RolDesconocidoSeOrdenaAlFinal(t *testing.T) {
	r := hierarchy.New(hierarchy.DefaultConfig())
	pool := append(poolBase(),
		usuario("sup1", "Sofía Vega", "SUP", "ana", true),
		usuario("prt3", "Thu Hà", entity.RolePRT, "sup1", true),
	)

	opts := r.Candidates(pool, entity.RolePRT, "")

	require.Equal(t, []string{"dave", "carol", "sup1"}, nombres(opts))
	assert.Equal(t, "SUP", opts[2].Role)
}

// ─────────────────────────────────────────────
// Candidates: sin pool elegible, placeholders
// ─────────────────────────────────────────────

func TestCandidates_SintetizaDeLosNombresCrudos(t *testing.T) {
	r := hierarchy.New(hierarchy.DefaultConfig())

	// Solo promotores cargados: sus líderes no están en el pool y tampoco
	// hay admins. El selector se arma con los nombres crudos.
	pool := []entity.User{
		usuario("prt1", "Minh Châu", entity.RolePRT, "carol", true),
		usuario("prt2", "Quốc Bảo", entity.RolePRT, "dave", true),
		usuario("prt3", "Thu Hà", entity.RolePRT, "carol", true),
	}
	opts := r.Candidates(pool, entity.RolePRT, "")

	require.Len(t, opts, 2)
	assert.Equal(t, []string{"carol", "dave"}, nombres(opts))
	assert.Empty(t, opts[0].Role, "un nombre crudo no trae rol resoluble")
}

// ─────────────────────────────────────────────
// Candidates: conservación del valor vigente
// ─────────────────────────────────────────────

func TestCandidates_CoincidenciaExactaMarcaCurrent(t *testing.T) {
	r := hierarchy.New(hierarchy.DefaultConfig())

	opts := r.Candidates(poolBase(), entity.RolePRT, "carol")

	require.Equal(t, []string{"dave", "carol"}, nombres(opts))
	assert.False(t, opts[0].Current)
	assert.True(t, opts[1].Current)
}

func TestCandidates_SubcadenaEnAmbosSentidos(t *testing.T) {
	r := hierarchy.New(hierarchy.DefaultConfig())

	// "Caro" está contenido en "carol" (plegado): se marca esa opción en
	// lugar de agregar una nueva.
	opts := r.Candidates(poolBase(), entity.RolePRT, "Caro")

	require.Equal(t, []string{"dave", "carol"}, nombres(opts))
	assert.True(t, opts[1].Current)
}

func TestCandidates_ValorVigenteSinCoincidenciaSeAgrega(t *testing.T) {
	r := hierarchy.New(hierarchy.DefaultConfig())

	opts := r.Candidates(poolBase(), entity.RolePRT, "walter")

	require.Equal(t, []string{"dave", "carol", "walter"}, nombres(opts))
	ultima := opts[len(opts)-1]
	assert.True(t, ultima.Current)
	assert.Empty(t, ultima.Role)
}

func TestCandidates_SinValorVigenteNadieEsCurrent(t *testing.T) {
	r := hierarchy.New(hierarchy.DefaultConfig())

	for _, o := range r.Candidates(poolBase(), entity.RolePRT, "") {
		assert.False(t, o.Current)
	}
}

// ─────────────────────────────────────────────
// RoleOf y Profiles
// ─────────────────────────────────────────────

func TestRoleOf_LoginExactoPrimero(t *testing.T) {
	r := hierarchy.New(hierarchy.DefaultConfig())

	rol, ok := r.RoleOf(poolBase(), "carol")
	require.True(t, ok)
	assert.Equal(t, entity.RoleTDL, rol)
}

func TestRoleOf_NombreVisiblePlegado(t *testing.T) {
	r := hierarchy.New(hierarchy.DefaultConfig())

	rol, ok := r.RoleOf(poolBase(), "carol nuñez")
	require.True(t, ok)
	assert.Equal(t, entity.RoleTDL, rol)
}

func TestRoleOf_NoResoluble(t *testing.T) {
	r := hierarchy.New(hierarchy.DefaultConfig())

	_, ok := r.RoleOf(poolBase(), "fantasma")
	assert.False(t, ok)
}

func TestProfiles_DistintosYOrdenados(t *testing.T) {
	r := hierarchy.New(hierarchy.DefaultConfig())

	perfiles := r.Profiles(poolBase())

	require.Len(t, perfiles, 3)
	assert.Equal(t, entity.LeaderProfile{Username: "ana", Role: entity.RoleAdmin}, perfiles[0])
	assert.Equal(t, entity.LeaderProfile{Username: "dave", Role: entity.RoleTDS}, perfiles[1])
	assert.Equal(t, entity.LeaderProfile{Username: "carol", Role: entity.RoleTDL}, perfiles[2])
}

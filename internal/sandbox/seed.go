package sandbox

import (
	"fmt"
	"strings"

	"github.com/PhuocTran96/posm-survey-collection-sub002/internal/domain/entity"
)

// SeedPassword es la contraseña de todas las cuentas sembradas.
const SeedPassword = "posm2024"

// SeedAdminLogin es el login del administrador sembrado; la consola de
// demostración entra con él.
const SeedAdminLogin = "ana.torres"

var seedFirstNames = []string{
	"Hương", "Đức", "Ngọc", "Tuấn", "Lan", "Sofía",
	"Diego", "Camila", "Minh", "Mai", "Quân", "Valentina",
}

var seedLastNames = []string{
	"Nguyễn", "Trần", "Lê", "Phạm", "García", "Rodríguez", "Hoàng", "Vũ",
}

var seedRegions = []string{"Norte", "Sur", "Centro", "Oriente"}

// Seed arma el dataset de demostración: la cadena de mando completa
// (admin → TDS → TDL → PRT) más un catálogo de tiendas por región, con
// promoters cuentas PRT repartidas entre los TDL. Todas las cuentas entran
// con SeedPassword.
func Seed(promoters int) *Dataset {
	d := NewDataset()

	for i := 0; i < 48; i++ {
		region := seedRegions[i/12]
		n := i%12 + 1
		d.AddStore(entity.Store{
			ID:     fmt.Sprintf("st-%03d", i+1),
			Name:   fmt.Sprintf("Tienda %s %02d", region, n),
			Code:   fmt.Sprintf("%s-%02d", strings.ToUpper(region[:3]), n),
			Region: region,
			Active: i%13 != 12,
		})
	}

	seedUser(d, "ADM-001", SeedAdminLogin, "Ana Torres", entity.RoleAdmin, "", true, nil)
	seedUser(d, "TDS-001", "hung.nguyen", "Nguyễn Văn Hùng", entity.RoleTDS, SeedAdminLogin, true, nil)
	seedUser(d, "TDS-002", "mario.rojas", "Mario Rojas", entity.RoleTDS, SeedAdminLogin, true, nil)
	seedUser(d, "TDL-001", "thao.pham", "Phạm Thu Thảo", entity.RoleTDL, "hung.nguyen", true, nil)
	seedUser(d, "TDL-002", "linh.tran", "Trần Mỹ Linh", entity.RoleTDL, "hung.nguyen", true, nil)
	// El líder por nombre visible (no por login) también existe en el padrón
	// real; la resolución de jerarquía debe absorberlo.
	seedUser(d, "TDL-003", "carolina.mejia", "Carolina Mejía", entity.RoleTDL, "Mario Rojas", true, nil)

	tdls := []string{"thao.pham", "linh.tran", "carolina.mejia"}
	for i := 0; i < promoters; i++ {
		first := seedFirstNames[i%len(seedFirstNames)]
		last := seedLastNames[i%len(seedLastNames)]
		stores := []string{
			fmt.Sprintf("st-%03d", (i*3)%48+1),
			fmt.Sprintf("st-%03d", (i*3+1)%48+1),
			fmt.Sprintf("st-%03d", (i*3+2)%48+1),
		}
		seedUser(d,
			fmt.Sprintf("PRT-%03d", i+1),
			fmt.Sprintf("prt%03d", i+1),
			last+" "+first,
			entity.RolePRT,
			tdls[i%len(tdls)],
			i%7 != 6,
			stores,
		)
	}
	return d
}

func seedUser(d *Dataset, code, login, name, role, leader string, active bool, stores []string) {
	u := entity.User{
		UserCode:    code,
		LoginID:     login,
		DisplayName: name,
		Role:        role,
		LeaderName:  leader,
		Active:      active,
		StoreIDs:    stores,
	}
	if _, err := d.Create(u, SeedPassword); err != nil {
		panic("sandbox: sembrar datos: " + err.Error())
	}
}

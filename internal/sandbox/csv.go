package sandbox

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/PhuocTran96/posm-survey-collection-sub002/internal/application/dto"
	"github.com/PhuocTran96/posm-survey-collection-sub002/internal/domain/entity"
)

// Formato del padrón en CSV. assignedStores concatena IDs con "|" porque la
// coma es el separador del archivo.
var csvHeader = []string{"userCode", "loginId", "displayName", "role", "leader", "isActive", "assignedStores"}

// defaultImportPassword es la credencial inicial de las cuentas importadas.
// La plataforma real obliga a cambiarla en el primer acceso.
const defaultImportPassword = "123456"

// ExportCSV serializa el padrón completo en el formato de importación, de
// modo que un export se puede reimportar tal cual.
func (d *Dataset) ExportCSV() ([]byte, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(csvHeader); err != nil {
		return nil, fmt.Errorf("exportar padrón: %w", err)
	}
	for _, u := range d.users {
		row := []string{
			u.UserCode,
			u.LoginID,
			u.DisplayName,
			u.Role,
			u.LeaderName,
			strconv.FormatBool(u.Active),
			strings.Join(u.StoreIDs, "|"),
		}
		if err := w.Write(row); err != nil {
			return nil, fmt.Errorf("exportar padrón: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("exportar padrón: %w", err)
	}
	return buf.Bytes(), nil
}

// ImportCSV hace upsert del padrón por userCode: las filas con un código
// existente actualizan la cuenta, las nuevas se insertan con la contraseña
// inicial. Las filas malas se reportan una a una sin frenar el resto.
// El error de retorno es solo para un archivo ilegible como CSV.
func (d *Dataset) ImportCSV(payload []byte) (dto.ImportResult, error) {
	r := csv.NewReader(bytes.NewReader(payload))
	r.FieldsPerRecord = -1 // el ancho se valida por fila para reportar el número
	rows, err := r.ReadAll()
	if err != nil {
		return dto.ImportResult{}, fmt.Errorf("leer CSV: %w", err)
	}
	if len(rows) == 0 {
		return dto.ImportResult{}, fmt.Errorf("leer CSV: archivo vacío")
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	var res dto.ImportResult
	for n, row := range rows[1:] { // la primera fila es siempre el encabezado
		updated, err := d.upsertRow(row)
		switch {
		case err != nil:
			res.Failed++
			res.Errors = append(res.Errors, fmt.Sprintf("fila %d: %v", n+2, err))
		case updated:
			res.Updated++
		default:
			res.Inserted++
		}
	}
	return res, nil
}

// upsertRow procesa una fila de importación. Asume d.mu tomado en escritura.
func (d *Dataset) upsertRow(row []string) (updated bool, err error) {
	col := func(i int) string {
		if i < len(row) {
			return strings.TrimSpace(row[i])
		}
		return ""
	}
	userCode, loginID, displayName, role := col(0), col(1), col(2), col(3)
	leader := col(4)
	if userCode == "" || loginID == "" || displayName == "" || role == "" {
		return false, fmt.Errorf("userCode, loginId, displayName y role son obligatorios")
	}

	active := true
	if raw := col(5); raw != "" {
		active, err = strconv.ParseBool(raw)
		if err != nil {
			return false, fmt.Errorf("isActive %q no es booleano", raw)
		}
	}
	var stores []string
	if raw := col(6); raw != "" {
		for _, id := range strings.Split(raw, "|") {
			if id = strings.TrimSpace(id); id != "" {
				stores = append(stores, id)
			}
		}
	}

	if i := d.indexByCode(userCode); i >= 0 {
		// El userCode manda: la fila actualiza la cuenta y su loginId
		// original no se toca.
		u := d.users[i]
		u.DisplayName = displayName
		u.Role = role
		u.LeaderName = leader
		u.Active = active
		u.StoreIDs = stores
		d.users[i] = u
		return true, nil
	}

	if d.indexByLogin(loginID) >= 0 {
		return false, fmt.Errorf("loginId %q ya pertenece a otra cuenta", loginID)
	}
	hash, err := hashPassword(defaultImportPassword)
	if err != nil {
		return false, err
	}
	d.users = append(d.users, entity.User{
		ID:          uuid.NewString(),
		UserCode:    userCode,
		LoginID:     loginID,
		DisplayName: displayName,
		Role:        role,
		LeaderName:  leader,
		Active:      active,
		StoreIDs:    stores,
	})
	d.creds[loginID] = hash
	return false, nil
}

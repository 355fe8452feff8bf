package entity

// UserStats resume el estado global de cuentas (GET /users/stats).
type UserStats struct {
	TotalUsers    int `json:"totalUsers"`
	ActiveUsers   int `json:"activeUsers"`
	InactiveUsers int `json:"inactiveUsers"`
}

// RoleCount es una entrada de la distribución por rol. El campo del wire se
// llama "_id" porque el backend agrega con Mongo y expone el rol como _id del
// grupo; se conserva tal cual para no traducir el contrato.
type RoleCount struct {
	Role  string `json:"_id"`
	Count int    `json:"count"`
}

// LeaderProfile es un candidato a líder derivado de la colección de usuarios.
// No se persiste nunca: se recalcula cada vez que se necesita la jerarquía.
type LeaderProfile struct {
	Username string `json:"username"`
	Role     string `json:"role"`
}

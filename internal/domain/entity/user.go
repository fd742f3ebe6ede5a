package entity

// Roles válidos en el token del transporte de chat.
const (
	RoleAdmin    = "admin"    // auditoría y migración de categorías
	RoleOperator = "operator" // personal de bodega
	RoleBot      = "bot"      // cuenta de servicio del bot de chat
)

package auth

// Principal representa la identidad autenticada del adoptante.
// Name es la clave de propiedad de las solicitudes de adopción.
type Principal struct {
	Name    string
	Subject string
	Email   string
}

package config

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config agrupa la configuración de la aplicación (lectura vía Viper desde
// env y opcionalmente archivo .env).
type Config struct {
	App     AppConfig
	API     APIConfig
	UI      UIConfig
	JWT     JWTConfig
	Sandbox SandboxConfig
	Console ConsoleConfig
}

// AppConfig configuración general de la aplicación.
type AppConfig struct {
	Env  string // development, staging, production
	Name string
}

// APIConfig apunta al backend de la plataforma POSM.
type APIConfig struct {
	BaseURL        string // ej. http://localhost:3000/api
	Token          string // token estático opcional; vacío = login interactivo
	TimeoutSeconds int
	StoresLimit    int // tope de tiendas a traer para la sesión de asignación
}

// Timeout devuelve el timeout HTTP como duración.
func (c APIConfig) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// UIConfig parámetros de la vista de administración.
type UIConfig struct {
	PageSize   int
	DebounceMS int // espera tras la última tecla antes de consultar
}

// Debounce devuelve la espera de búsqueda como duración.
func (c UIConfig) Debounce() time.Duration {
	return time.Duration(c.DebounceMS) * time.Millisecond
}

// JWTConfig configuración de JWT. El secreto lo comparte el sandbox (que
// emite) con el cliente (que apenas inspecciona expiración).
type JWTConfig struct {
	Secret     string
	Expiration int // minutos
	Issuer     string
}

// SandboxConfig configuración del backend de desarrollo embebido.
type SandboxConfig struct {
	Host      string
	Port      int
	SeedUsers int // cuántos promotores sembrar además del personal fijo
}

// Addr devuelve la dirección de escucha (host:port).
func (c SandboxConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// ConsoleConfig credenciales de la consola de demostración. Vacías, la
// consola entra con la cuenta admin sembrada del sandbox.
type ConsoleConfig struct {
	Login    string
	Password string
}

// Load lee la configuración desde variables de entorno (y opcionalmente
// desde archivo .env). Las env vars tienen prioridad. Nombres esperados:
// APP_ENV, API_BASE_URL, JWT_SECRET, SANDBOX_PORT, etc.
func Load() (*Config, error) {
	v := viper.New()

	// Opcional: archivo .env junto al binario
	v.SetConfigName(".env")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	_ = v.ReadInConfig() // ignoramos error si no existe

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	cfg := &Config{
		App: AppConfig{
			Env:  getString(v, "APP_ENV", "development"),
			Name: getString(v, "APP_NAME", "posm-admin"),
		},
		API: APIConfig{
			BaseURL:        getString(v, "API_BASE_URL", "http://localhost:3000/api"),
			Token:          getString(v, "API_TOKEN", ""),
			TimeoutSeconds: getInt(v, "API_TIMEOUT_SECONDS", 15),
			StoresLimit:    getInt(v, "STORES_FETCH_LIMIT", 2000),
		},
		UI: UIConfig{
			PageSize:   getInt(v, "UI_PAGE_SIZE", 10),
			DebounceMS: getInt(v, "UI_DEBOUNCE_MS", 300),
		},
		JWT: JWTConfig{
			Secret:     getString(v, "JWT_SECRET", ""),
			Expiration: getInt(v, "JWT_EXPIRATION_MINUTES", 480),
			Issuer:     getString(v, "JWT_ISSUER", "posm-admin"),
		},
		Sandbox: SandboxConfig{
			Host:      getString(v, "SANDBOX_HOST", "0.0.0.0"),
			Port:      getInt(v, "SANDBOX_PORT", 3000),
			SeedUsers: getInt(v, "SANDBOX_SEED_USERS", 24),
		},
		Console: ConsoleConfig{
			Login:    getString(v, "CONSOLE_LOGIN", ""),
			Password: getString(v, "CONSOLE_PASSWORD", ""),
		},
	}

	return cfg, nil
}

func getString(v *viper.Viper, key, def string) string {
	if v.IsSet(key) {
		return v.GetString(key)
	}
	return def
}

func getInt(v *viper.Viper, key string, def int) int {
	if v.IsSet(key) {
		switch v.Get(key).(type) {
		case int:
			return v.GetInt(key)
		case string:
			n, _ := strconv.Atoi(v.GetString(key))
			return n
		default:
			return v.GetInt(key)
		}
	}
	return def
}

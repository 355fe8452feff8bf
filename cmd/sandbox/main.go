// sandbox levanta el backend de desarrollo embebido: la API de administración
// de la plataforma POSM servida desde memoria, con el padrón de demostración
// sembrado. No es el backend de producción; existe para que el cliente y la
// consola corran completos sin infraestructura.
//
// Uso: go run ./cmd/sandbox
// Config por env o .env: SANDBOX_HOST, SANDBOX_PORT, SANDBOX_SEED_USERS,
// JWT_SECRET (vacío = secreto efímero por arranque).
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"

	"github.com/PhuocTran96/posm-survey-collection-sub002/internal/sandbox"
	"github.com/PhuocTran96/posm-survey-collection-sub002/pkg/config"
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
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando sandbox")

	if cfg.JWT.Secret == "" {
		// Secreto efímero: suficiente para desarrollo, inútil entre
		// reinicios. Los tokens emitidos mueren con el proceso.
		cfg.JWT.Secret = uuid.NewString()
		log.Warn().Msg("JWT_SECRET no configurado; usando un secreto efímero")
	}

	data := sandbox.Seed(cfg.Sandbox.SeedUsers)
	log.Info().
		Int("promotores", cfg.Sandbox.SeedUsers).
		Str("admin", sandbox.SeedAdminLogin).
		Msg("padrón de demostración sembrado")

	srv := sandbox.New(data, cfg.JWT, log)

	go func() {
		if err := srv.Listen(cfg.Sandbox.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()
	log.Info().Str("addr", cfg.Sandbox.Addr()).Msg("sandbox escuchando")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("sandbox detenido")
}

// Package apiclient es el adaptador REST hacia el backend de la plataforma
// POSM. Implementa los puertos de repositorio del dominio sobre net/http:
// el backend es un colaborador remoto, nunca estado propio.
package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PhuocTran96/posm-survey-collection-sub002/internal/application/dto"
	"github.com/PhuocTran96/posm-survey-collection-sub002/internal/domain"
)

// maxBodyBytes acota cuánto cuerpo se lee de una respuesta. El padrón
// completo de usuarios viaja por acá, así que el tope es generoso.
const maxBodyBytes = 8 << 20

// TokenSource provee el token Bearer de cada request. Permite rotar el
// token sin reconstruir el cliente.
type TokenSource interface {
	Token() (string, error)
}

// StaticToken es un TokenSource de token fijo.
type StaticToken string

// Token implementa TokenSource.
func (t StaticToken) Token() (string, error) { return string(t), nil }

// TokenFunc adapta una función a TokenSource.
type TokenFunc func() (string, error)

// Token implementa TokenSource.
func (f TokenFunc) Token() (string, error) { return f() }

// Client es el cliente HTTP base. Los adaptadores de repositorio se montan
// encima con NewUserRepository y NewStoreRepository.
type Client struct {
	baseURL    string
	httpClient *http.Client
	tokens     TokenSource

	// OnSessionExpired se invoca cuando el backend responde 401 a un
	// request autenticado. Puede dispararse una vez por cada request en
	// vuelo; el receptor debe tolerar repeticiones.
	OnSessionExpired func()
}

// New construye el cliente. baseURL apunta a la raíz de la API
// (ej. http://localhost:3000/api); tokens puede ser nil para endpoints
// públicos solamente.
func New(baseURL string, timeout time.Duration, tokens TokenSource) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			// Timeout de red; los casos de uso imponen además sus propios
			// context.WithTimeout por operación.
			Timeout: timeout,
		},
		tokens: tokens,
	}
}

// ── Endpoints base ────────────────────────────────────────────────────────────

// Login autentica contra POST /auth/login y devuelve token más perfil.
// Un 401 acá significa credenciales malas, no sesión vencida.
func (c *Client) Login(ctx context.Context, loginID, password string) (dto.LoginResponse, error) {
	req := dto.LoginRequest{LoginID: loginID, Password: password}
	if err := dto.Validate(req); err != nil {
		return dto.LoginResponse{}, err
	}

	var out dto.LoginResponse
	_, err := c.do(ctx, http.MethodPost, "/auth/login", nil, req, &out, false)
	if err != nil {
		if errors.Is(err, domain.ErrSesionExpirada) {
			return dto.LoginResponse{}, domain.ErrCredenciales
		}
		return dto.LoginResponse{}, err
	}
	return out, nil
}

// Health verifica que el backend responda.
func (c *Client) Health(ctx context.Context) error {
	_, err := c.do(ctx, http.MethodGet, "/health", nil, nil, nil, false)
	return err
}

// ── Plomería HTTP ─────────────────────────────────────────────────────────────

// do ejecuta un request JSON contra path, decodifica el sobre estándar y, si
// out no es nil, decodifica data dentro de out. authed controla si viaja el
// Bearer y si un 401 dispara OnSessionExpired.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out any, authed bool) (*dto.Envelope, error) {
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("api: serializar request: %w", err)
		}
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.endpoint(path, query), reader)
	if err != nil {
		return nil, fmt.Errorf("api: crear HTTP request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if authed {
		if err := c.authorize(req); err != nil {
			return nil, err
		}
	}

	env, err := c.roundTrip(req, authed)
	if err != nil {
		return nil, err
	}
	if err := decodeData(env, path, out); err != nil {
		return nil, err
	}
	return env, nil
}

// doRaw descarga el cuerpo crudo de un GET autenticado (exportaciones).
func (c *Client) doRaw(ctx context.Context, path string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint(path, nil), nil)
	if err != nil {
		return nil, fmt.Errorf("api: crear HTTP request: %w", err)
	}
	if err := c.authorize(req); err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, fmt.Errorf("api: timeout o cancelación: %w", ctx.Err())
		}
		return nil, fmt.Errorf("api: llamada HTTP fallida: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("api: leer respuesta: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, c.fail(resp.StatusCode, raw, true)
	}
	return raw, nil
}

// doUpload sube un archivo multipart (importaciones) y decodifica el sobre.
func (c *Client) doUpload(ctx context.Context, path, field, filename string, payload []byte, out any) (*dto.Envelope, error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile(field, filename)
	if err != nil {
		return nil, fmt.Errorf("api: armar multipart: %w", err)
	}
	if _, err := part.Write(payload); err != nil {
		return nil, fmt.Errorf("api: armar multipart: %w", err)
	}
	if err := mw.Close(); err != nil {
		return nil, fmt.Errorf("api: armar multipart: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint(path, nil), &buf)
	if err != nil {
		return nil, fmt.Errorf("api: crear HTTP request: %w", err)
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("Accept", "application/json")
	if err := c.authorize(req); err != nil {
		return nil, err
	}

	env, err := c.roundTrip(req, true)
	if err != nil {
		return nil, err
	}
	if err := decodeData(env, path, out); err != nil {
		return nil, err
	}
	return env, nil
}

func decodeData(env *dto.Envelope, path string, out any) error {
	if out == nil {
		return nil
	}
	if len(env.Data) == 0 {
		return fmt.Errorf("api: respuesta de %s sin data", path)
	}
	if err := json.Unmarshal(env.Data, out); err != nil {
		return fmt.Errorf("api: deserializar data de %s: %w", path, err)
	}
	return nil
}

func (c *Client) roundTrip(req *http.Request, authed bool) (*dto.Envelope, error) {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		if req.Context().Err() != nil {
			return nil, fmt.Errorf("api: timeout o cancelación: %w", req.Context().Err())
		}
		return nil, fmt.Errorf("api: llamada HTTP fallida: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("api: leer respuesta: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, c.fail(resp.StatusCode, raw, authed)
	}

	var env dto.Envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return nil, fmt.Errorf("api: deserializar sobre: %w", err)
	}
	if !env.Success {
		// 2xx con success=false: el backend reportó un fallo de negocio.
		return nil, fmt.Errorf("%w: %s", domain.ErrBackend, env.Message)
	}
	return &env, nil
}

// fail traduce un estado HTTP de error a la taxonomía del dominio,
// conservando el mensaje del backend cuando vino en el sobre.
func (c *Client) fail(status int, raw []byte, authed bool) error {
	msg := string(bytes.TrimSpace(raw))
	var env dto.Envelope
	if err := json.Unmarshal(raw, &env); err == nil && env.Message != "" {
		msg = env.Message
	}

	switch status {
	case http.StatusUnauthorized:
		if authed && c.OnSessionExpired != nil {
			c.OnSessionExpired()
		}
		return domain.ErrSesionExpirada
	case http.StatusBadRequest:
		return fmt.Errorf("%w: %s", domain.ErrValidacion, msg)
	case http.StatusNotFound:
		return domain.ErrNotFound
	case http.StatusConflict:
		return fmt.Errorf("%w: %s", domain.ErrDuplicate, msg)
	default:
		return fmt.Errorf("%w: HTTP %d: %s", domain.ErrBackend, status, msg)
	}
}

func (c *Client) authorize(req *http.Request) error {
	if c.tokens == nil {
		return nil
	}
	token, err := c.tokens.Token()
	if err != nil {
		return fmt.Errorf("api: obtener token: %w", err)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	return nil
}

func (c *Client) endpoint(path string, query url.Values) string {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}
	return u
}

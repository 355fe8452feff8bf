package main

import (
	"fmt"
	"os"
	"time"

	"github.com/PhuocTran96/posm-survey-collection-sub002/pkg/jwt"
)

func main() {
	// 1. El token EXACTO que está rebotando con 401.
	// OJO: pegarlo completo; un token cortado por la terminal falla siempre.
	token := os.Getenv("API_TOKEN")
	if len(os.Args) > 1 {
		token = os.Args[1]
	}

	fmt.Println("🔍 DIAGNÓSTICO DE TOKEN DE SESIÓN")
	fmt.Println("----------------------------------")

	if token == "" {
		fmt.Println("\n❌ SIN TOKEN:")
		fmt.Println("   Exporta API_TOKEN o pásalo como primer argumento.")
		fmt.Println("   Uso: go run . <token>")
		return
	}
	fmt.Printf("📏 Largo del token: %d caracteres\n", len(token))

	// 2. Intentar leer los claims (Format Check). Sin verificar firma: acá
	// solo importa si el token se puede decodificar y si sigue vigente.
	fmt.Println("\n🔐 Decodificando claims sin verificar firma...")
	exp, err := jwt.PeekExpiry(token)
	if err != nil {
		fmt.Println("\n❌ ERROR DE FORMATO:")
		fmt.Printf("   Eso no es un JWT legible. ¿Se copió con el prefijo 'Bearer '?\n")
		fmt.Printf("   Detalle técnico: %v\n", err)
		return
	}

	// 3. Vigencia (Expiry Check)
	restante := time.Until(exp)
	fmt.Printf("✅ Claims legibles. Expira: %s\n", exp.Format(time.RFC3339))
	if restante <= 0 {
		fmt.Println("\n❌ TOKEN VENCIDO:")
		fmt.Printf("   Venció hace %s. El 401 es correcto: hay que volver a entrar.\n", -restante.Round(time.Second))
		return
	}

	fmt.Printf("\n✨ El token está vigente (quedan %s).\n", restante.Round(time.Second))
	fmt.Println("   Si igual rebota con 401, el problema es el JWT_SECRET del backend,")
	fmt.Println("   no este token: fue firmado con otro secreto.")
}

// cmd/seeduser/main.go — Cria/atualiza o usuário administrador.
// Uso: DATABASE_URL=... go run ./cmd/seeduser [username] [password]
package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/guilhermegamabs/fiado-v2/internal/infra"

	"golang.org/x/crypto/bcrypt"
)

func main() {
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		log.Fatal("DATABASE_URL não definida")
	}

	username := "admin"
	password := "mudar123"
	if len(os.Args) > 1 {
		username = os.Args[1]
	}
	if len(os.Args) > 2 {
		password = os.Args[2]
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), 12)
	if err != nil {
		log.Fatalf("bcrypt error: %v", err)
	}

	db, err := infra.NewDatabase(dsn)
	if err != nil {
		log.Fatalf("db connect error: %v", err)
	}

	result := db.WithContext(context.Background()).Exec(`
		INSERT INTO usuarios (username, password_hash, ativo)
		VALUES (?, ?, true)
		ON CONFLICT (username) DO UPDATE
		SET password_hash = EXCLUDED.password_hash,
		    ativo = true
	`, username, string(hash))

	if result.Error != nil {
		log.Fatalf("insert error: %v", result.Error)
	}
	fmt.Printf("usuário %q criado/atualizado\n", username)
}

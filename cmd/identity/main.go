package main

import (
	"fmt"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/mootechpic/identity/internal/api"
	"github.com/mootechpic/identity/internal/database"
	"github.com/mootechpic/identity/internal/service"
	"github.com/mootechpic/identity/internal/tokens"
)

func main() {
	dbPath := readEnvVar("DB_PATH")
	port := fmt.Sprintf(":%s", readEnvVar("PORT"))
	jwtKey := readEnvVar("JWT_KEY")
	issuer := readEnvVar("JWT_ISSUER")
	audience := readEnvVar("JWT_AUDIENCE")
	accessTTL := readEnvDuration("ACCESS_TOKEN_TTL", 2*time.Hour)
	refreshTTL := readEnvDuration("REFRESH_TOKEN_TTL", 720*time.Hour)

	db := database.NewSQLiteStore(dbPath)
	defer db.Close()

	signer, err := tokens.NewSigner(tokens.Config{
		Key:        []byte(jwtKey),
		Issuer:     issuer,
		Audience:   audience,
		AccessTTL:  accessTTL,
		RefreshTTL: refreshTTL,
	})
	if err != nil {
		log.Fatalf("invalid token configuration: %v\n", err)
	}

	svc := service.New(
		db.CredentialStore(),
		signer,
		service.PasswordModeProduction,
	)
	a := api.New(svc, signer)

	log.Printf("listening on %s\n", port)
	log.Fatal(http.ListenAndServe(port, a.Router()))
}

func readEnvVar(name string) string {
	var present bool
	str, present := os.LookupEnv(name)
	if !present {
		log.Fatalf("missing required env var '%s'\n", name)
	}
	return str
}

func readEnvDuration(name string, fallback time.Duration) time.Duration {
	str, present := os.LookupEnv(name)
	if !present {
		return fallback
	}
	d, err := time.ParseDuration(str)
	if err != nil {
		log.Fatalf("env var '%s' could not be parsed as duration (\"%v\")\n", name, str)
	}
	return d
}

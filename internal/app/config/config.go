package config

import (
	"log"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
)

type Config struct {
	HTTPAddr        string
	DatabaseURL     string
	InternalToken   string
	CORSAllowOrigin string
	RenderURL       string
	PreviewSpoolDir string
}

func MustLoad() Config {
	godotenv.Load()
	return Config{
		HTTPAddr:        env("HTTP_ADDR", ":8080"),
		DatabaseURL:     mustEnv("DATABASE_URL"),
		InternalToken:   mustEnv("INTERNAL_TOKEN"),
		CORSAllowOrigin: env("CORS_ALLOW_ORIGIN", "*"),
		RenderURL:       env("RENDER_URL", "http://127.0.0.1:8080/v1/offers/render"),
		PreviewSpoolDir: env("PREVIEW_SPOOL_DIR", filepath.Join(os.TempDir(), "offer-previews")),
	}
}

func env(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func mustEnv(k string) string {
	v := os.Getenv(k)
	if v == "" {
		log.Fatalf("missing env %s", k)
	}
	return v
}

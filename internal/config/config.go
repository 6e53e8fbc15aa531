package config

import (
	"os"
	"strings"
)

type Config struct {
	HTTPAddr  string
	PublicURL string

	// Directory served exports are persisted under.
	ExportBasePath string

	// Rendering defaults; pages override via frontmatter-style metadata.
	EnabledByDefault   bool
	ShowCorrect        bool
	AutoSubmit         bool
	DisableAfterSubmit bool
	AutoNumber         bool
	QuestionTag        string

	// When AuthSecret is set the render/export endpoints require a bearer
	// token issued by /auth/login.
	AuthSecret    string
	AdminUser     string
	AdminPassHash string // bcrypt

	CORSOrigins []string
}

func FromEnv() Config {
	addr := os.Getenv("HTTP_ADDR")
	if addr == "" {
		addr = ":8080"
	}
	return Config{
		HTTPAddr:           addr,
		PublicURL:          os.Getenv("PUBLIC_URL"),
		ExportBasePath:     envOr("EXPORT_BASE_PATH", "./data/exports"),
		EnabledByDefault:   envBool("QUIZ_ENABLED_BY_DEFAULT", true),
		ShowCorrect:        envBool("QUIZ_SHOW_CORRECT", true),
		AutoSubmit:         envBool("QUIZ_AUTO_SUBMIT", true),
		DisableAfterSubmit: envBool("QUIZ_DISABLE_AFTER_SUBMIT", true),
		AutoNumber:         envBool("QUIZ_AUTO_NUMBER", false),
		QuestionTag:        envOr("QUIZ_QUESTION_TAG", "h4"),
		AuthSecret:         os.Getenv("AUTH_HMAC_SECRET"),
		AdminUser:          envOr("ADMIN_USER", "admin"),
		AdminPassHash:      os.Getenv("ADMIN_PASS_HASH"),
		CORSOrigins:        csvOr("CORS_ORIGINS", "http://localhost:3000"),
	}
}

func envOr(k, def string) string {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	return v
}

func envBool(k string, def bool) bool {
	switch os.Getenv(k) {
	case "1", "true", "TRUE", "yes", "YES":
		return true
	case "0", "false", "FALSE", "no", "NO":
		return false
	default:
		return def
	}
}

func csvOr(k, def string) []string {
	v := envOr(k, def)
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if s := strings.TrimSpace(p); s != "" {
			out = append(out, s)
		}
	}
	return out
}

// RenderDefaults exposes the rendering defaults as the recognized frontmatter
// key set, so callers can merge page metadata with one call.
func (c Config) RenderDefaults() map[string]any {
	return map[string]any{
		"show_correct":         c.ShowCorrect,
		"auto_submit":          c.AutoSubmit,
		"disable_after_submit": c.DisableAfterSubmit,
		"auto_number":          c.AutoNumber,
		"question_tag":         c.QuestionTag,
	}
}

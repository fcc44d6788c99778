// Package env resolves application settings from the process environment,
// an optional .env file and the TOML config store.
//
// Precedence, highest first: process environment, .env file, config file.
package env

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"

	"github.com/custodia-labs/sops-ai/internal/core/domain"
	"github.com/custodia-labs/sops-ai/internal/core/ports/driven"
)

// DefaultDotenvFile is read from the working directory.
const DefaultDotenvFile = ".env"

// Setting binds an environment variable to its config file key.
type Setting struct {
	Env string
	Key string
}

// Settings lists every setting the application reads, in display order.
var Settings = []Setting{
	{domain.EnvTavilyAPIKey, "tavily.api_key"},
	{domain.EnvOpenAIAPIKey, "openai.api_key"},
	{domain.EnvEmbeddingModel, "openai.embedding_model"},
	{domain.EnvPineconeAPIKey, "pinecone.api_key"},
	{domain.EnvPineconeIndexName, "pinecone.index_name"},
	{domain.EnvPineconeCloud, "pinecone.cloud"},
	{domain.EnvPineconeRegion, "pinecone.region"},
	{domain.EnvRequestServerURL, "request.server_url"},
	{domain.EnvRequestAccessToken, "request.access_token"},
}

// BatchSizeKey is the config file key for the default ingestion batch size.
const BatchSizeKey = "ingest.batch_size"

// Source resolves settings. The zero value reads only the process environment.
type Source struct {
	// Store is the config file; nil skips it.
	Store driven.ConfigStore

	// DotenvPath is the .env file; empty skips it. A missing file is not an error.
	DotenvPath string

	// LookupEnv reads the process environment (default: os.LookupEnv).
	LookupEnv func(string) (string, bool)
}

// Load resolves the application configuration.
func (s Source) Load() (*domain.AppConfig, error) {
	dotenv, err := s.readDotenv()
	if err != nil {
		return nil, err
	}

	lookup := s.LookupEnv
	if lookup == nil {
		lookup = os.LookupEnv
	}

	values := make(map[string]string, len(Settings))
	for _, setting := range Settings {
		values[setting.Env] = s.resolve(setting, lookup, dotenv)
	}

	cfg := &domain.AppConfig{
		TavilyAPIKey:       values[domain.EnvTavilyAPIKey],
		OpenAIAPIKey:       values[domain.EnvOpenAIAPIKey],
		EmbeddingModel:     orDefault(values[domain.EnvEmbeddingModel], domain.DefaultEmbeddingModel),
		PineconeAPIKey:     values[domain.EnvPineconeAPIKey],
		PineconeIndexName:  values[domain.EnvPineconeIndexName],
		PineconeCloud:      orDefault(values[domain.EnvPineconeCloud], domain.DefaultCloud),
		PineconeRegion:     orDefault(values[domain.EnvPineconeRegion], domain.DefaultRegion),
		RequestServerURL:   values[domain.EnvRequestServerURL],
		RequestAccessToken: values[domain.EnvRequestAccessToken],
		BatchSize:          domain.DefaultBatchSize,
	}
	if s.Store != nil {
		if n := s.Store.GetInt(BatchSizeKey); n > 0 {
			cfg.BatchSize = n
		}
	}
	return cfg, nil
}

// Origin reports where a setting's effective value comes from:
// "env", ".env", "config" or "" when unset.
func (s Source) Origin(setting Setting) (string, error) {
	dotenv, err := s.readDotenv()
	if err != nil {
		return "", err
	}
	lookup := s.LookupEnv
	if lookup == nil {
		lookup = os.LookupEnv
	}

	switch {
	case nonEmptyEnv(lookup, setting.Env):
		return "env", nil
	case strings.TrimSpace(dotenv[setting.Env]) != "":
		return DefaultDotenvFile, nil
	case s.Store != nil && configString(s.Store, setting.Key) != "":
		return "config", nil
	default:
		return "", nil
	}
}

func (s Source) resolve(setting Setting, lookup func(string) (string, bool), dotenv map[string]string) string {
	if v, ok := lookup(setting.Env); ok && strings.TrimSpace(v) != "" {
		return strings.TrimSpace(v)
	}
	if v := strings.TrimSpace(dotenv[setting.Env]); v != "" {
		return v
	}
	if s.Store != nil {
		return configString(s.Store, setting.Key)
	}
	return ""
}

func (s Source) readDotenv() (map[string]string, error) {
	if s.DotenvPath == "" {
		return nil, nil
	}
	values, err := godotenv.Read(s.DotenvPath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading %s: %w", s.DotenvPath, err)
	}
	return values, nil
}

// configString reads a key as a string, formatting scalar values so
// unquoted TOML numbers and booleans still resolve.
func configString(store driven.ConfigStore, key string) string {
	val, ok := store.Get(key)
	if !ok {
		return ""
	}
	switch v := val.(type) {
	case string:
		return strings.TrimSpace(v)
	case int64:
		return strconv.FormatInt(v, 10)
	case int:
		return strconv.Itoa(v)
	case bool:
		return strconv.FormatBool(v)
	default:
		return ""
	}
}

func nonEmptyEnv(lookup func(string) (string, bool), name string) bool {
	v, ok := lookup(name)
	return ok && strings.TrimSpace(v) != ""
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}

// Mask hides all but the last four characters of a secret.
func Mask(secret string) string {
	if secret == "" {
		return ""
	}
	r := []rune(secret)
	if len(r) <= 4 {
		return strings.Repeat("*", len(r))
	}
	return strings.Repeat("*", len(r)-4) + string(r[len(r)-4:])
}

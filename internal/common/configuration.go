// Package common provides configuration management and HTTP endpoint
// utilities for the AAS Explorer Service. It supports YAML configuration
// files, environment variable overrides, CORS setup, health endpoints, and
// the base64url identifier codec used on upstream requests.
package common

import (
	"encoding/json"
	"fmt"
	"log"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/spf13/viper"
)

// PrintSplash displays the service banner during startup.
func PrintSplash() {
	log.Printf(`
	██████╗  █████╗ ███████╗██╗   ██╗██╗  ██╗     ██████╗  ██████╗
	██╔══██╗██╔══██╗██╔════╝╚██╗ ██╔╝╚██╗██╔╝    ██╔════╝ ██╔═══██╗
	██████╔╝███████║███████╗ ╚████╔╝  ╚███╔╝     ██║  ███╗██║   ██║
	██╔══██╗██╔══██║╚════██║  ╚██╔╝   ██╔██╗     ██║   ██║██║   ██║
	██████╔╝██║  ██║███████║   ██║   ██╔╝ ██╗    ╚██████╔╝╚██████╔╝
	╚═════╝ ╚═╝  ╚═╝╚══════╝   ╚═╝   ╚═╝  ╚═╝     ╚═════╝  ╚═════╝

	███████╗██╗  ██╗██████╗ ██╗      ██████╗ ██████╗ ███████╗██████╗
	██╔════╝╚██╗██╔╝██╔══██╗██║     ██╔═══██╗██╔══██╗██╔════╝██╔══██╗
	█████╗   ╚███╔╝ ██████╔╝██║     ██║   ██║██████╔╝█████╗  ██████╔╝
	██╔══╝   ██╔██╗ ██╔═══╝ ██║     ██║   ██║██╔══██╗██╔══╝  ██╔══██╗
	███████╗██╔╝ ██╗██║     ███████╗╚██████╔╝██║  ██║███████╗██║  ██║
	╚══════╝╚═╝  ╚═╝╚═╝     ╚══════╝ ╚═════╝ ╚═╝  ╚═╝╚══════╝╚═╝  ╚═╝
	`)
}

// Config is the complete configuration of the explorer service.
type Config struct {
	Server     ServerConfig   `mapstructure:"server" json:"server"`
	Upstream   UpstreamConfig `mapstructure:"upstream" json:"upstream"`
	Explorer   ExplorerConfig `mapstructure:"explorer" json:"explorer"`
	CorsConfig CorsConfig     `mapstructure:"cors" json:"cors"`
	Swagger    SwaggerConfig  `mapstructure:"swagger" json:"swagger"`
}

// ServerConfig contains HTTP server parameters.
type ServerConfig struct {
	Host        string `mapstructure:"host" json:"host"`
	Port        int    `mapstructure:"port" json:"port"`
	ContextPath string `mapstructure:"contextPath" json:"contextPath"`
}

// UpstreamConfig describes the remote AAS catalog the explorer reads from.
type UpstreamConfig struct {
	BaseURL        string `mapstructure:"baseURL" json:"baseURL"`
	TimeoutSeconds int    `mapstructure:"timeoutSeconds" json:"timeoutSeconds"`
	BearerToken    string `mapstructure:"bearerToken" json:"bearerToken"`

	// ListPageSize is the page size of bare-array list endpoints; a full
	// page of exactly this size implies more pages likely exist.
	ListPageSize int `mapstructure:"listPageSize" json:"listPageSize"`
	// SearchPageSize is the equivalent threshold of the keyword/asset
	// search endpoint.
	SearchPageSize int `mapstructure:"searchPageSize" json:"searchPageSize"`
	// MaxPages caps auto-continuation per keyword.
	MaxPages int `mapstructure:"maxPages" json:"maxPages"`
	// AssetTypeID scopes keyword/asset searches when set.
	AssetTypeID string `mapstructure:"assetTypeId" json:"assetTypeId"`
}

// ExplorerConfig contains presentation-side settings.
type ExplorerConfig struct {
	// CatalogPath points at an external menu-catalog YAML; empty selects
	// the compiled-in welding-family catalog.
	CatalogPath string `mapstructure:"catalogPath" json:"catalogPath"`
	// DisplayPageSize is the client-side page size the merged, deduplicated
	// result set is re-paginated into.
	DisplayPageSize int `mapstructure:"displayPageSize" json:"displayPageSize"`
	// PreferredLanguage selects multi-language property values.
	PreferredLanguage string `mapstructure:"preferredLanguage" json:"preferredLanguage"`
	// InitialMenu is shown before any user action.
	InitialMenu string `mapstructure:"initialMenu" json:"initialMenu"`
	// LoadMoreIntervalMillis debounces duplicate load-more events.
	LoadMoreIntervalMillis int `mapstructure:"loadMoreIntervalMillis" json:"loadMoreIntervalMillis"`
}

// CorsConfig contains the CORS policy.
type CorsConfig struct {
	AllowedOrigins   []string `mapstructure:"allowedOrigins" json:"allowedOrigins"`
	AllowedMethods   []string `mapstructure:"allowedMethods" json:"allowedMethods"`
	AllowedHeaders   []string `mapstructure:"allowedHeaders" json:"allowedHeaders"`
	AllowCredentials bool     `mapstructure:"allowCredentials" json:"allowCredentials"`
}

// SwaggerConfig contains contact information injected into the served
// OpenAPI document.
type SwaggerConfig struct {
	ContactName  string `mapstructure:"contactName" json:"contactName"`
	ContactEmail string `mapstructure:"contactEmail" json:"contactEmail"`
	ContactURL   string `mapstructure:"contactURL" json:"contactURL"`
}

// LoadConfig loads the configuration from an optional YAML file with
// environment variable overrides. Precedence: environment variables, then
// the file, then defaults. Environment keys use underscore notation
// (SERVER_PORT for server.port).
func LoadConfig(configPath string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	if configPath != "" {
		log.Printf("📁 Loading config from file: %s", configPath)
		v.SetConfigFile(configPath)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}
	} else {
		log.Println("📁 No config file provided — loading from environment variables only")
	}

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	cfg := new(Config)
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	log.Println("✅ Configuration loaded successfully")
	PrintConfiguration(cfg)
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 5010)
	v.SetDefault("server.contextPath", "")

	v.SetDefault("upstream.baseURL", "http://localhost:8081/api")
	v.SetDefault("upstream.timeoutSeconds", 120)
	v.SetDefault("upstream.bearerToken", "")
	v.SetDefault("upstream.listPageSize", 10)
	v.SetDefault("upstream.searchPageSize", 60)
	v.SetDefault("upstream.maxPages", 50)
	v.SetDefault("upstream.assetTypeId", "")

	v.SetDefault("explorer.catalogPath", "")
	v.SetDefault("explorer.displayPageSize", 10)
	v.SetDefault("explorer.preferredLanguage", "en")
	v.SetDefault("explorer.initialMenu", "TIG")
	v.SetDefault("explorer.loadMoreIntervalMillis", 300)

	v.SetDefault("cors.allowedOrigins", []string{"*"})
	v.SetDefault("cors.allowedMethods", []string{"GET", "POST", "OPTIONS"})
	v.SetDefault("cors.allowedHeaders", []string{"*"})
	v.SetDefault("cors.allowCredentials", true)
}

// PrintConfiguration prints the loaded configuration with the upstream
// bearer token redacted.
func PrintConfiguration(cfg *Config) {
	cfgCopy := *cfg
	if cfgCopy.Upstream.BearerToken != "" {
		cfgCopy.Upstream.BearerToken = "****"
	}

	configJSON, err := json.MarshalIndent(cfgCopy, "", "  ")
	if err != nil {
		log.Printf("Unable to marshal configuration to JSON: %v", err)
		return
	}
	log.Printf("📜 Loaded configuration:\n%s", string(configJSON))
}

// AddCors configures CORS middleware on the router from config.
func AddCors(r *chi.Mux, config *Config) {
	c := cors.New(cors.Options{
		AllowedOrigins:   config.CorsConfig.AllowedOrigins,
		AllowedMethods:   config.CorsConfig.AllowedMethods,
		AllowedHeaders:   config.CorsConfig.AllowedHeaders,
		AllowCredentials: config.CorsConfig.AllowCredentials,
	})
	r.Use(c.Handler)
}

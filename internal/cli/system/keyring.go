package system

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shenyaoyiivy/Glimmer-Mood/internal/cli"
	"github.com/shenyaoyiivy/Glimmer-Mood/internal/keyring"
	"github.com/shenyaoyiivy/Glimmer-Mood/internal/storage/postgres"
)

type ConfigCmd struct {
	Show                   ConfigShowCmd             `cmd:"" help:"Show the effective configuration." default:"1"`
	SetAPIKey              SetAPIKeyCmd              `cmd:"" name:"set-api-key" help:"Store the Gemini API key in the OS keyring."`
	DeleteAPIKey           DeleteAPIKeyCmd           `cmd:"" name:"delete-api-key" help:"Remove the Gemini API key from the OS keyring."`
	SetConnectionString    SetConnectionStringCmd    `cmd:"" name:"set-connection-string" help:"Store a PostgreSQL connection string in the OS keyring."`
	DeleteConnectionString DeleteConnectionStringCmd `cmd:"" name:"delete-connection-string" help:"Remove the PostgreSQL connection string from the OS keyring."`
	KeyringStatus          KeyringStatusCmd          `cmd:"" name:"keyring-status" help:"Check OS keyring availability."`
}

type ConfigShowCmd struct{}

func (cmd *ConfigShowCmd) Run(ctx *cli.Context) error {
	cfg := ctx.Config
	if cfg == nil {
		return errors.New("no configuration loaded")
	}
	file := cfg.File
	if file == "" {
		file = "(none, using defaults)"
	}
	apiKey := "not set"
	if cfg.AI.APIKey != "" {
		apiKey = "set (config or environment)"
	} else if _, err := keyring.GetAPIKey(); err == nil {
		apiKey = "set (OS keyring)"
	}

	ctx.Printf("config file:     %s\n", file)
	ctx.Printf("storage backend: %s\n", cfg.Storage.Backend)
	if cfg.Storage.Backend == "postgres" {
		dsn, err := cfg.ResolveDSN()
		if err != nil {
			dsn = "not set"
		}
		ctx.Printf("storage dsn:     %s\n", maskPassword(dsn))
	} else {
		ctx.Printf("storage path:    %s\n", cfg.StoragePath())
	}
	ctx.Printf("storage quota:   %d bytes\n", cfg.Storage.QuotaBytes)
	ctx.Printf("text model:      %s\n", cfg.AI.TextModel)
	ctx.Printf("report model:    %s\n", cfg.AI.ReportModel)
	ctx.Printf("image model:     %s\n", cfg.AI.ImageModel)
	ctx.Printf("ai timeout:      %s\n", cfg.AI.Timeout)
	ctx.Printf("api key:         %s\n", apiKey)
	ctx.Printf("timezone:        %s\n", cfg.Timezone)
	ctx.Printf("locale:          %s\n", cfg.Locale)
	ctx.Printf("collection days: %d\n", cfg.CollectionDays)
	return nil
}

// SetAPIKeyCmd stores the Gemini API key in the OS keyring
type SetAPIKeyCmd struct {
	Key string `arg:"" help:"Gemini API key."`
}

func (cmd *SetAPIKeyCmd) Run(ctx *cli.Context) error {
	key := strings.TrimSpace(cmd.Key)
	if key == "" {
		return errors.New("API key cannot be empty")
	}
	if err := keyring.SetAPIKey(key); err != nil {
		return err
	}
	ctx.Println("✓ API key stored successfully in OS keyring")
	return nil
}

// DeleteAPIKeyCmd removes the Gemini API key from the OS keyring
type DeleteAPIKeyCmd struct{}

func (cmd *DeleteAPIKeyCmd) Run(ctx *cli.Context) error {
	if err := keyring.DeleteAPIKey(); err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return errors.New("no API key found in keyring")
		}
		return err
	}
	ctx.Println("✓ API key deleted from OS keyring")
	return nil
}

// SetConnectionStringCmd stores database connection credentials in the OS keyring
type SetConnectionStringCmd struct {
	ConnectionString string `arg:"" help:"PostgreSQL connection string to store in keyring"`
}

func (cmd *SetConnectionStringCmd) Run(ctx *cli.Context) error {
	if !cli.IsConnString(cmd.ConnectionString) {
		return errors.New("connection string must be a valid PostgreSQL connection string")
	}

	if _, err := postgres.ValidateConnString(cmd.ConnectionString); err != nil {
		if !errors.Is(err, postgres.ErrEmbeddedCredentials) {
			return fmt.Errorf("invalid connection string: %w", err)
		}
		// the keyring is encrypted, so a password is acceptable here
		ctx.Println("⚠️  Warning: Connection string contains embedded credentials.")
		ctx.Println("   It will be stored as-is in the encrypted OS keyring.")
	}

	if err := keyring.SetConnectionString(cmd.ConnectionString); err != nil {
		return fmt.Errorf("failed to store connection string in keyring: %w", err)
	}
	ctx.Println("✓ Connection string stored successfully in OS keyring")
	return nil
}

// DeleteConnectionStringCmd removes the stored PostgreSQL connection string
type DeleteConnectionStringCmd struct{}

func (cmd *DeleteConnectionStringCmd) Run(ctx *cli.Context) error {
	if err := keyring.DeleteConnectionString(); err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return errors.New("no connection string found in keyring")
		}
		return fmt.Errorf("failed to delete connection string from keyring: %w", err)
	}
	ctx.Println("✓ Connection string deleted from OS keyring")
	return nil
}

// KeyringStatusCmd checks the availability of the OS keyring
type KeyringStatusCmd struct{}

func (cmd *KeyringStatusCmd) Run(ctx *cli.Context) error {
	if !keyring.IsAvailable() {
		ctx.Println("❌ OS keyring is not available on this system")
		return errors.New("keyring unavailable")
	}
	ctx.Println("✓ OS keyring is available")

	for name, get := range map[string]func() (string, error){
		"API key":           keyring.GetAPIKey,
		"Connection string": keyring.GetConnectionString,
	} {
		if _, err := get(); err == nil {
			ctx.Printf("✓ %s is stored in keyring\n", name)
		} else if errors.Is(err, keyring.ErrNotFound) {
			ctx.Printf("ℹ No %s stored in keyring\n", strings.ToLower(name))
		}
	}
	return nil
}

// maskPassword masks passwords in connection strings for display
func maskPassword(connStr string) string {
	if strings.HasPrefix(connStr, "postgres://") || strings.HasPrefix(connStr, "postgresql://") {
		idx := strings.Index(connStr, "://")
		remaining := connStr[idx+3:]
		if atIdx := strings.LastIndex(remaining, "@"); atIdx != -1 {
			userInfo := remaining[:atIdx]
			if colonIdx := strings.Index(userInfo, ":"); colonIdx != -1 {
				return connStr[:idx+3] + userInfo[:colonIdx] + ":****" + connStr[idx+3+atIdx:]
			}
		}
		return connStr
	}

	if strings.Contains(connStr, "password=") {
		parts := strings.Fields(connStr)
		for i, part := range parts {
			if strings.HasPrefix(part, "password=") {
				parts[i] = "password=****"
			}
		}
		return strings.Join(parts, " ")
	}
	return connStr
}

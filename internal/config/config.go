package config

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/kavia/notesdb/internal/store"
)

// Config is the top-level initializer configuration.
// Loaded from config file (viper) with env fallback; every knob has a
// default so a bare invocation matches the stock notes_database layout.

type Config struct {
	DB struct {
		Path string `mapstructure:"path"`
	} `mapstructure:"db"`
	Migrations struct {
		Dir       string `mapstructure:"dir"`
		NotesFile string `mapstructure:"notes_file"`
	} `mapstructure:"migrations"`
	Output struct {
		ConnectionInfo string `mapstructure:"connection_info"`
		VisualizerDir  string `mapstructure:"visualizer_dir"`
		EnvFile        string `mapstructure:"env_file"`
	} `mapstructure:"output"`
	Seed struct {
		ProjectName string `mapstructure:"project_name"`
		Version     string `mapstructure:"version"`
		Author      string `mapstructure:"author"`
		Description string `mapstructure:"description"`
	} `mapstructure:"seed"`
}

func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigName("notesdb")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./configs")

	v.SetEnvPrefix("NOTESDB")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// defaults
	v.SetDefault("db.path", store.DefaultDBFile)
	v.SetDefault("migrations.dir", "migrations")
	v.SetDefault("migrations.notes_file", "001_create_notes.sql")
	v.SetDefault("output.connection_info", "db_connection.txt")
	v.SetDefault("output.visualizer_dir", "db_visualizer")
	v.SetDefault("output.env_file", "sqlite.env")
	v.SetDefault("seed.project_name", "notes_database")
	v.SetDefault("seed.version", "0.1.0")
	v.SetDefault("seed.author", "John Doe")
	v.SetDefault("seed.description", "")

	_ = v.ReadInConfig() // optional

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal: %w", err)
	}
	return &cfg, nil
}

// MigrationFile is the path of the notes migration script.
func (c *Config) MigrationFile() string {
	return filepath.Join(c.Migrations.Dir, c.Migrations.NotesFile)
}

// EnvFile is the path of the viewer tool's environment file.
func (c *Config) EnvFile() string {
	return filepath.Join(c.Output.VisualizerDir, c.Output.EnvFile)
}

// Seeds returns the app_info metadata rows in upsert order.
func (c *Config) Seeds() []store.Seed {
	return []store.Seed{
		{Key: "project_name", Value: c.Seed.ProjectName},
		{Key: "version", Value: c.Seed.Version},
		{Key: "author", Value: c.Seed.Author},
		{Key: "description", Value: c.Seed.Description},
	}
}

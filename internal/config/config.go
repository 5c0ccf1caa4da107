package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

type FilesConfig struct {
	RootDir string `yaml:"root_dir"`
}

type TelegramConfig struct {
	BotToken  string `yaml:"bot_token"`
	OpsChatID int64  `yaml:"ops_chat_id"`
}

type Config struct {
	Env    string `yaml:"env"` // dev | prod
	Server struct {
		Port int `yaml:"port"`
	} `yaml:"server"`
	Database struct {
		DSN string `yaml:"url"`
	} `yaml:"database"`
	Auth struct {
		Secret    string `yaml:"secret"`
		APIURL    string `yaml:"api_url"`    // base for verification links
		ClientURL string `yaml:"client_url"` // redirect target for /
	} `yaml:"auth"`
	Email struct {
		SMTPHost     string `yaml:"smtp_host"`
		SMTPPort     int    `yaml:"smtp_port"`
		SMTPUser     string `yaml:"smtp_user"`
		SMTPPassword string `yaml:"smtp_password"`
		FromEmail    string `yaml:"from_email"`
		DryRun       bool   `yaml:"dry_run"` // log instead of send outside prod
	} `yaml:"email"`
	Files    FilesConfig    `yaml:"files"`
	Telegram TelegramConfig `yaml:"telegram"`
}

func LoadConfig() *Config {
	f, err := os.Open("config/config.yaml")
	if err != nil {
		panic("Failed to open config.yaml: " + err.Error())
	}
	defer f.Close()

	var cfg Config
	if err := yaml.NewDecoder(f).Decode(&cfg); err != nil {
		panic("Failed to parse config.yaml: " + err.Error())
	}

	if cfg.Env == "" {
		cfg.Env = "dev"
	}
	if cfg.Files.RootDir == "" {
		cfg.Files.RootDir = "./files"
	}
	return &cfg
}

func (c *Config) IsProd() bool { return c.Env == "prod" }

// AllowedOrigins returns the cross-origin hosts permitted for the
// configured environment.
func (c *Config) AllowedOrigins() []string {
	if c.IsProd() {
		if c.Auth.ClientURL != "" {
			return []string{c.Auth.ClientURL}
		}
		return []string{"https://www.soccermass.com"}
	}
	return []string{"http://localhost:8081"}
}

// Package config provides the application configuration loaded from a
// YAML file with environment-variable overrides.
package config

import (
	"os"

	"github.com/spf13/cast"
	"gopkg.in/yaml.v2"
)

type SystemConfig struct {
	Appid    string `yaml:"appid" json:"appid"`
	Location string `yaml:"location" json:"location"`
	Workdir  string `yaml:"workdir" json:"workdir"`
	Debug    bool   `yaml:"debug" json:"debug"`
}

type WebConfig struct {
	Host string `yaml:"host" json:"host"`
	Port int    `yaml:"port" json:"port"`
}

type DBConfig struct {
	Type     string `yaml:"type" json:"type"`
	Host     string `yaml:"host" json:"host"`
	Port     int    `yaml:"port" json:"port"`
	Name     string `yaml:"name" json:"name"`
	User     string `yaml:"user" json:"user"`
	Passwd   string `yaml:"passwd" json:"passwd"`
	MaxConn  int    `yaml:"max_conn" json:"max_conn"`
	IdleConn int    `yaml:"idle_conn" json:"idle_conn"`
	Debug    bool   `yaml:"debug" json:"debug"`
}

type LogConfig struct {
	Mode       string `yaml:"mode" json:"mode"`
	FileEnable bool   `yaml:"file_enable" json:"file_enable"`
	Filename   string `yaml:"filename" json:"filename"`
}

type SmtpConfig struct {
	Enabled  bool   `yaml:"enabled" json:"enabled"`
	Host     string `yaml:"host" json:"host"`
	Port     int    `yaml:"port" json:"port"`
	Username string `yaml:"username" json:"username"`
	Password string `yaml:"password" json:"password"`
	From     string `yaml:"from" json:"from"`
	To       string `yaml:"to" json:"to"`
}

type AppConfig struct {
	System   SystemConfig `yaml:"system" json:"system"`
	Web      WebConfig    `yaml:"web" json:"web"`
	Database DBConfig     `yaml:"database" json:"database"`
	Logger   LogConfig    `yaml:"logger" json:"logger"`
	Smtp     SmtpConfig   `yaml:"smtp" json:"smtp"`
}

var DefaultAppConfig = &AppConfig{
	System: SystemConfig{
		Appid:    "fulfillment",
		Location: "Asia/Shanghai",
		Workdir:  "/var/fulfillment",
		Debug:    true,
	},
	Web: WebConfig{
		Host: "0.0.0.0",
		Port: 1816,
	},
	Database: DBConfig{
		Type:     "postgres",
		Host:     "127.0.0.1",
		Port:     5432,
		Name:     "fulfillment",
		User:     "postgres",
		Passwd:   "",
		MaxConn:  100,
		IdleConn: 10,
	},
	Logger: LogConfig{
		Mode:       "development",
		FileEnable: true,
		Filename:   "/var/fulfillment/fulfillment.log",
	},
	Smtp: SmtpConfig{
		Enabled: false,
		Host:    "127.0.0.1",
		Port:    25,
		From:    "noreply@localhost",
		To:      "ops@localhost",
	},
}

func setEnvValue(name string, val *string) {
	if v, ok := os.LookupEnv(name); ok {
		*val = v
	}
}

func setEnvBoolValue(name string, val *bool) {
	if v, ok := os.LookupEnv(name); ok {
		*val = cast.ToBool(v)
	}
}

func setEnvIntValue(name string, val *int) {
	if v, ok := os.LookupEnv(name); ok {
		*val = cast.ToInt(v)
	}
}

// LoadConfig reads the YAML config file when it exists and applies
// FULFILLMENT_* environment overrides on top. A missing file yields the
// defaults, so the service can start from environment alone.
func LoadConfig(cfile string) *AppConfig {
	cfg := new(AppConfig)
	*cfg = *DefaultAppConfig
	if cfile != "" {
		if data, err := os.ReadFile(cfile); err == nil {
			cfg = new(AppConfig)
			if err := yaml.Unmarshal(data, cfg); err != nil {
				panic(err)
			}
		}
	}

	setEnvValue("FULFILLMENT_SYSTEM_WORKDIR", &cfg.System.Workdir)
	setEnvBoolValue("FULFILLMENT_SYSTEM_DEBUG", &cfg.System.Debug)

	setEnvValue("FULFILLMENT_WEB_HOST", &cfg.Web.Host)
	setEnvIntValue("FULFILLMENT_WEB_PORT", &cfg.Web.Port)

	setEnvValue("FULFILLMENT_DB_TYPE", &cfg.Database.Type)
	setEnvValue("FULFILLMENT_DB_HOST", &cfg.Database.Host)
	setEnvIntValue("FULFILLMENT_DB_PORT", &cfg.Database.Port)
	setEnvValue("FULFILLMENT_DB_NAME", &cfg.Database.Name)
	setEnvValue("FULFILLMENT_DB_USER", &cfg.Database.User)
	setEnvValue("FULFILLMENT_DB_PWD", &cfg.Database.Passwd)

	setEnvValue("FULFILLMENT_LOGGER_MODE", &cfg.Logger.Mode)

	setEnvBoolValue("FULFILLMENT_SMTP_ENABLED", &cfg.Smtp.Enabled)
	setEnvValue("FULFILLMENT_SMTP_HOST", &cfg.Smtp.Host)
	setEnvIntValue("FULFILLMENT_SMTP_PORT", &cfg.Smtp.Port)
	setEnvValue("FULFILLMENT_SMTP_USERNAME", &cfg.Smtp.Username)
	setEnvValue("FULFILLMENT_SMTP_PASSWORD", &cfg.Smtp.Password)
	setEnvValue("FULFILLMENT_SMTP_FROM", &cfg.Smtp.From)
	setEnvValue("FULFILLMENT_SMTP_TO", &cfg.Smtp.To)

	return cfg
}

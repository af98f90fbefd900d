package config

import (
	"strings"
	"time"

	"github.com/urfave/cli/v3"
)

type Config struct {
	App
	Redactor
	PostgreSQL
	HTTP
}

type App struct {
	WatchDirectory        string
	OutputDirectory       string
	DirectoryScanInterval time.Duration
}

type Redactor struct {
	APIURL         string
	StaticBase     string
	RequestTimeout time.Duration
	Mode           string
	Exclusions     []string
}

type PostgreSQL struct {
	Host     string
	Port     string
	Username string
	Password string
	DBName   string
}

type HTTP struct {
	Host         string
	Port         string
	IdleTimeout  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

func Load(cmd *cli.Command) *Config {
	return &Config{
		App: App{
			WatchDirectory:        cmd.String("watch-dir"),
			OutputDirectory:       cmd.String("output-dir"),
			DirectoryScanInterval: cmd.Duration("scan-interval"),
		},
		Redactor: LoadRedactor(cmd),
		PostgreSQL: PostgreSQL{
			Host:     cmd.String("pg-host"),
			Port:     cmd.String("pg-port"),
			Username: cmd.String("pg-username"),
			Password: cmd.String("pg-password"),
			DBName:   cmd.String("pg-dbname"),
		},
		HTTP: HTTP{
			Host:         cmd.String("http-host"),
			Port:         cmd.String("http-port"),
			IdleTimeout:  cmd.Duration("http-idle-timeout"),
			ReadTimeout:  cmd.Duration("http-read-timeout"),
			WriteTimeout: cmd.Duration("http-write-timeout"),
		},
	}
}

// LoadRedactor reads the redaction-service section alone. The client
// commands use it so they never have to carry database settings.
func LoadRedactor(cmd *cli.Command) Redactor {
	apiURL := strings.TrimRight(cmd.String("api-url"), "/")

	// The service publishes produced files under /static unless the
	// deployment says otherwise.
	staticBase := strings.TrimRight(cmd.String("static-base"), "/")
	if staticBase == "" {
		staticBase = apiURL + "/static"
	}

	return Redactor{
		APIURL:         apiURL,
		StaticBase:     staticBase,
		RequestTimeout: cmd.Duration("request-timeout"),
		Mode:           cmd.String("redaction-mode"),
		Exclusions:     cmd.StringSlice("exclude"),
	}
}

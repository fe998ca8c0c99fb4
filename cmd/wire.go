package cmd

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	historyrepo "github.com/101Room/berezin-dicts/internal/adapters/history/toml"
	"github.com/101Room/berezin-dicts/internal/adapters/metadata/inifile"
	"github.com/101Room/berezin-dicts/internal/adapters/session"
	"github.com/101Room/berezin-dicts/internal/application"
	"github.com/101Room/berezin-dicts/internal/domain"
	"github.com/101Room/berezin-dicts/internal/ports"
	"github.com/spf13/viper"
)

const (
	configDirName  = ".berezin"
	configName     = "config"
	configType     = "toml"
	envPrefix      = "BEREZIN"
	baseURLKey     = "remote.base_url"
	visibilityKey  = "dictionary.visibility"
	kindKey        = "dictionary.kind"
	strictKey      = "session.strict"
	historyPathKey = "history.path"
)

type app struct {
	formURL    string
	visibility domain.Visibility
	kind       domain.Kind
	strict     bool
	verbose    bool

	metaStore  ports.MetadataStore
	history    ports.HistoryRepository
	newGateway func(cookiePath string) (ports.SessionGateway, error)
	clock      ports.Clock
}

func wireApp() (*app, error) {
	cfg := viper.New()

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("resolve home directory: %w", err)
	}

	cfg.SetConfigName(configName)
	cfg.SetConfigType(configType)
	cfg.AddConfigPath(filepath.Join(homeDir, configDirName))
	cfg.SetEnvPrefix(envPrefix)
	cfg.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	cfg.AutomaticEnv()
	cfg.SetDefault(baseURLKey, "https://klavogonki.ru")
	cfg.SetDefault(visibilityKey, string(domain.VisibilityPublic))
	cfg.SetDefault(kindKey, string(domain.KindWords))
	cfg.SetDefault(strictKey, true)
	cfg.SetDefault(historyPathKey, filepath.Join(homeDir, configDirName, "history.toml"))

	if err := cfg.ReadInConfig(); err != nil {
		var configNotFound viper.ConfigFileNotFoundError
		if !errors.As(err, &configNotFound) {
			return nil, fmt.Errorf("read config file: %w", err)
		}
	}

	visibility, err := domain.ParseVisibility(cfg.GetString(visibilityKey))
	if err != nil {
		return nil, fmt.Errorf("config %s: %w", visibilityKey, err)
	}
	kind, err := domain.ParseKind(cfg.GetString(kindKey))
	if err != nil {
		return nil, fmt.Errorf("config %s: %w", kindKey, err)
	}

	history, err := historyrepo.NewRepository(cfg.GetString(historyPathKey))
	if err != nil {
		return nil, fmt.Errorf("wire history repository: %w", err)
	}

	return &app{
		formURL:    application.FormURL(cfg.GetString(baseURLKey)),
		visibility: visibility,
		kind:       kind,
		strict:     cfg.GetBool(strictKey),
		metaStore:  inifile.Store{},
		history:    history,
		newGateway: func(cookiePath string) (ports.SessionGateway, error) {
			// No client timeout: bounded latency is the caller's job, via
			// context or an external timeout.
			return session.New(&http.Client{}, cookiePath)
		},
		clock: ports.SystemClock{},
	}, nil
}

func (a *app) newLogger(w io.Writer) *slog.Logger {
	level := slog.LevelInfo
	if a.verbose {
		level = slog.LevelDebug
	}

	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

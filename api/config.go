package api

import (
	"errors"
	"os"
	"sync"

	"github.com/alex-pricope/hackathon-judging-api/logging"
	"github.com/spf13/viper"
)

// localJWTSecret is only honored with APP_ENV=local.
const localJWTSecret = "local-development-secret"

var ErrMissingJWTSecret = errors.New("auth.jwtSecret (JWT_SECRET) is required outside local mode")

type Config struct {
	StorageConfig
	ServerConfig
	AuthConfig
	NotifierConfig
	LogConfig
}

type StorageConfig struct {
	TableNameTeams           string
	TableNamePanelists       string
	TableNameScores          string
	TableNameUseCases        string
	TableNameJudgingCriteria string
}

type ServerConfig struct {
	Port  int
	Local bool
}

type AuthConfig struct {
	JWTSecret string
}

type NotifierConfig struct {
	TopicArn  string
	EventName string
	PortalURL string
}

type LogConfig struct {
	Level string
	JSON  bool
}

var settingsOnce sync.Once

// SetDefaults registers defaults and environment aliases. config.yaml and
// environment variables override them.
func SetDefaults() {
	viper.SetDefault("storage.TableNameTeams", "aais-hackathon-teams")
	viper.SetDefault("storage.TableNamePanelists", "aais-hackathon-panelists")
	viper.SetDefault("storage.TableNameScores", "aais-hackathon-scores")
	viper.SetDefault("storage.TableNameUseCases", "aais-hackathon-use-cases")
	viper.SetDefault("storage.TableNameJudgingCriteria", "aais-hackathon-judging-criteria")
	viper.SetDefault("server.port", 8080)
	viper.SetDefault("notifier.eventName", "AAIS 2026 EUC Hackathon")
	viper.SetDefault("notifier.portalUrl", "https://aais2026euchackathon.com/login.html")
	viper.SetDefault("log.level", "info")

	_ = viper.BindEnv("auth.jwtSecret", "JWT_SECRET")
	_ = viper.BindEnv("notifier.topicArn", "SNS_TOPIC_ARN")
	_ = viper.BindEnv("log.level", "LOG_LEVEL")
	_ = viper.BindEnv("server.port", "PORT")
}

// ReadStorageConfig reads the table names; the seeder needs nothing else.
func ReadStorageConfig() StorageConfig {
	return StorageConfig{
		TableNameTeams:           getString("storage.TableNameTeams"),
		TableNamePanelists:       getString("storage.TableNamePanelists"),
		TableNameScores:          getString("storage.TableNameScores"),
		TableNameUseCases:        getString("storage.TableNameUseCases"),
		TableNameJudgingCriteria: getString("storage.TableNameJudgingCriteria"),
	}
}

func ReadConfig() (*Config, error) {
	local := os.Getenv("APP_ENV") == "local"

	var conf = &Config{
		StorageConfig: ReadStorageConfig(),
		ServerConfig: ServerConfig{
			Port:  getIntOrDefault("server.port", 8080),
			Local: local,
		},
		AuthConfig: AuthConfig{
			JWTSecret: getStringOrDefault("auth.jwtSecret", ""),
		},
		NotifierConfig: NotifierConfig{
			TopicArn:  getStringOrDefault("notifier.topicArn", ""),
			EventName: getStringOrDefault("notifier.eventName", ""),
			PortalURL: getStringOrDefault("notifier.portalUrl", ""),
		},
		LogConfig: LogConfig{
			Level: getStringOrDefault("log.level", "info"),
			JSON:  getBoolOrDefault("log.json", !local),
		},
	}

	if conf.JWTSecret == "" {
		if !local {
			return nil, ErrMissingJWTSecret
		}
		logging.Log.Warn("CONFIG: JWT_SECRET not set, using the local development secret")
		conf.JWTSecret = localJWTSecret
	}

	settingsOnce.Do(func() {
		logging.Log.Print("Reading settings!")
	})

	return conf, nil
}

func getString(name string) string {
	if viper.IsSet(name) {
		v := viper.GetString(name)
		logging.Log.Debugf("found '%s' in viper", name)
		return v
	}
	logging.Log.Fatalf("required environment variable '%s' is missing", name)
	return ""
}

func getIntOrDefault(name string, def int) int {
	if viper.IsSet(name) {
		v := viper.GetInt(name)
		logging.Log.Debugf("found '%s' in viper", name)
		return v
	}
	logging.Log.Debugf("could not find '%s' in viper! Returning default", name)
	return def
}

func getBoolOrDefault(name string, def bool) bool {
	if viper.IsSet(name) {
		v := viper.GetBool(name)
		logging.Log.Debugf("found '%s' in viper", name)
		return v
	}
	logging.Log.Debugf("could not find '%s' in viper! Returning default", name)
	return def
}

func getStringOrDefault(name string, def string) string {
	if viper.IsSet(name) {
		v := viper.GetString(name)
		logging.Log.Debugf("found '%s' in viper", name)
		return v
	}
	logging.Log.Debugf("could not find '%s' in viper! Returning default", name)
	return def
}

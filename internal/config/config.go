package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/mitchellh/mapstructure"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

const (
	StorageDriverFile     = "file"
	StorageDriverPostgres = "postgres"

	// Valor de exemplo que nunca deve assinar tokens de verdade
	placeholderSecretKey = "your_secret_key"
)

type Config struct {
	App            App            `mapstructure:",squash"`
	Server         Server         `mapstructure:",squash"`
	Storage        Storage        `mapstructure:",squash"`
	Database       Database       `mapstructure:",squash"`
	Auth           Auth           `mapstructure:",squash"`
	Cors           Cors           `mapstructure:",squash"`
	ReferralImport ReferralImport `mapstructure:",squash"`
	SecretKey      string         `mapstructure:"secret_key"`
}

type App struct {
	LogLevel string `mapstructure:"log_level"`
}

type Server struct {
	Host string `mapstructure:"host"`
	Port string `mapstructure:"port"`
}

type Storage struct {
	Driver    string `mapstructure:"storage_driver"`
	DataDir   string `mapstructure:"data_dir"`
	StaticDir string `mapstructure:"static_dir"`
}

type Database struct {
	DSN      string `mapstructure:"-"`
	Driver   string `mapstructure:"database_driver"`
	Password string `mapstructure:"database_password"`
	URL      string `mapstructure:"database_url"`
	User     string `mapstructure:"database_user"`
}

type Auth struct {
	AdminEmail        string `mapstructure:"admin_email"`
	AdminPasswordHash string `mapstructure:"admin_password_hash"`
}

type Cors struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

type ReferralImport struct {
	CronSchedule string `mapstructure:"referral_import_cron"`
	Dir          string `mapstructure:"referral_import_dir"`
	Enabled      bool   `mapstructure:"referral_import_enabled"`
}

func SetDefaults() {
	viper.SetDefault("HOST", "0.0.0.0")
	viper.SetDefault("PORT", 5000)

	viper.SetDefault("STORAGE_DRIVER", StorageDriverFile)
	viper.SetDefault("DATA_DIR", "data")
	viper.SetDefault("STATIC_DIR", "static")

	viper.SetDefault("DATABASE_DRIVER", "postgres")
	viper.SetDefault("DATABASE_URL", "localhost:5432/referrals?sslmode=disable")
	viper.SetDefault("DATABASE_USER", "postgres")
	viper.SetDefault("DATABASE_PASSWORD", "root")

	viper.SetDefault("SECRET_KEY", "") // obrigatório quando o login administrativo está habilitado
	viper.SetDefault("ADMIN_EMAIL", "admin@localhost")
	viper.SetDefault("ADMIN_PASSWORD_HASH", "") // vazio desabilita o login administrativo

	viper.SetDefault("ALLOWED_ORIGINS", "*")

	viper.SetDefault("REFERRAL_IMPORT_CRON", "*/15 * * * *") // A cada 15 minutos
	viper.SetDefault("REFERRAL_IMPORT_DIR", "data/import")
	viper.SetDefault("REFERRAL_IMPORT_ENABLED", false)

	viper.SetDefault("LOG_LEVEL", "debug")
}

func NewConfig() (*Config, error) {
	loadEnvFile() // ONLY LOCAL

	config := &Config{}

	SetDefaults()

	viper.SetConfigType("env")
	viper.SetConfigFile(".env")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		logrus.Info("Usando variáveis carregadas pelo godotenv (viper não conseguiu ler .env):", err)
	} else {
		logrus.Info("Arquivo .env lido pelo Viper com sucesso")
	}

	err := viper.Unmarshal(&config, viper.DecodeHook(
		mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.StringToSliceHookFunc(","),
		),
	))
	if err != nil {
		return nil, err
	}

	if err := config.validate(); err != nil {
		return nil, err
	}

	config.Database.DSN = fmt.Sprintf(
		"%s://%s:%s@%s",
		config.Database.Driver,
		config.Database.User,
		config.Database.Password,
		config.Database.URL,
	)

	return config, nil
}

func (c *Config) validate() error {
	switch c.Storage.Driver {
	case StorageDriverFile, StorageDriverPostgres:
	default:
		return fmt.Errorf("STORAGE_DRIVER inválido: %q (use %q ou %q)", c.Storage.Driver, StorageDriverFile, StorageDriverPostgres)
	}

	if c.Auth.AdminPasswordHash != "" && (c.SecretKey == "" || c.SecretKey == placeholderSecretKey) {
		return fmt.Errorf("SECRET_KEY deve ser definido com um valor próprio quando ADMIN_PASSWORD_HASH está configurado")
	}

	if c.ReferralImport.Enabled && c.ReferralImport.Dir == "" {
		return fmt.Errorf("REFERRAL_IMPORT_DIR é obrigatório quando a importação está habilitada")
	}

	return nil
}

// Função auxiliar para carregar o arquivo .env usando godotenv
func loadEnvFile() {
	cwd, err := os.Getwd()
	if err != nil {
		logrus.Warn("Não foi possível obter o diretório atual:", err)
		return
	}

	locations := []string{
		filepath.Join(cwd, ".env"),
		filepath.Join(filepath.Dir(cwd), ".env"),
		filepath.Join(cwd, "../../.env"),
	}

	for _, location := range locations {
		if err := godotenv.Load(location); err == nil {
			logrus.Info("Arquivo .env carregado com sucesso de:", location)
			return
		}
	}

	logrus.Debug("Nenhum arquivo .env encontrado, usando apenas variáveis de ambiente")
}

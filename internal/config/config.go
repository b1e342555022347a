package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	"github.com/mitchellh/mapstructure"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

// Fontes de dados suportadas pelo carregador
const (
	SourceXLSX     = "xlsx"
	SourceCSV      = "csv"
	SourcePostgres = "postgres"
)

type Config struct {
	App           App           `mapstructure:",squash"`
	Server        Server        `mapstructure:",squash"`
	Dataset       Dataset       `mapstructure:",squash"`
	Database      Database      `mapstructure:",squash"`
	Chart         Chart         `mapstructure:",squash"`
	SummaryReport SummaryReport `mapstructure:",squash"`
}

type Server struct {
	Host string `mapstructure:"host"`
	Port string `mapstructure:"port"`
}

type Database struct {
	DSN      string `mapstructure:"-"`
	Driver   string `mapstructure:"database_driver"`
	Password string `mapstructure:"database_password"`
	URL      string `mapstructure:"database_url"`
	User     string `mapstructure:"database_user"`
}

type Dataset struct {
	Source string `mapstructure:"dataset_source"`
	Path   string `mapstructure:"dataset_path"`
	Sheet  string `mapstructure:"dataset_sheet"`
	Table  string `mapstructure:"dataset_table"`
}

type Chart struct {
	Width  int `mapstructure:"chart_width"`
	Height int `mapstructure:"chart_height"`
}

type App struct {
	LogLevel string `mapstructure:"log_level"`
}

type SummaryReport struct {
	CronSchedule string        `mapstructure:"summary_report_cron"`
	Enabled      bool          `mapstructure:"summary_report_enabled"`
	Timeout      time.Duration `mapstructure:"summary_report_timeout"`
}

func SetDefaults() {
	viper.SetDefault("HOST", "localhost")
	viper.SetDefault("PORT", 8000)

	viper.SetDefault("DATASET_SOURCE", SourceXLSX)
	viper.SetDefault("DATASET_PATH", "streamlit.xlsx")
	viper.SetDefault("DATASET_SHEET", "")      // Vazio = primeira planilha
	viper.SetDefault("DATASET_TABLE", "sales") // Usado apenas com DATASET_SOURCE=postgres

	viper.SetDefault("DATABASE_DRIVER", "postgres")
	viper.SetDefault("DATABASE_URL", "localhost:5432/sales?sslmode=disable")
	viper.SetDefault("DATABASE_USER", "postgres")
	viper.SetDefault("DATABASE_PASSWORD", "root")

	viper.SetDefault("CHART_WIDTH", 640)
	viper.SetDefault("CHART_HEIGHT", 420)

	viper.SetDefault("SUMMARY_REPORT_CRON", "0 7 * * *") // Todos os dias às 7h da manhã
	viper.SetDefault("SUMMARY_REPORT_ENABLED", false)
	viper.SetDefault("SUMMARY_REPORT_TIMEOUT", "30s")

	viper.SetDefault("LOG_LEVEL", "debug")
}

func NewConfig() (*Config, error) {
	// Primeiro carregar o arquivo .env usando godotenv
	loadEnvFile() // ONLY LOCAL

	config := &Config{}

	// Configurar valores padrão
	SetDefaults()

	// Configurar o Viper
	viper.SetConfigType("env")
	viper.SetConfigFile(".env")
	viper.AutomaticEnv() // Isso permite que o Viper leia variáveis de ambiente

	// Tentar ler o arquivo .env com o Viper (opcional, já que usamos godotenv)
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

	if err := config.Validate(); err != nil {
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

// Validate verifica combinações inválidas de configuração
func (c *Config) Validate() error {
	switch c.Dataset.Source {
	case SourceXLSX, SourceCSV:
		if c.Dataset.Path == "" {
			return fmt.Errorf("DATASET_PATH é obrigatório para a fonte %s", c.Dataset.Source)
		}
	case SourcePostgres:
		if c.Dataset.Table == "" {
			return fmt.Errorf("DATASET_TABLE é obrigatório para a fonte postgres")
		}
	default:
		return fmt.Errorf("DATASET_SOURCE inválido: %q (use xlsx, csv ou postgres)", c.Dataset.Source)
	}

	if c.Chart.Width <= 0 || c.Chart.Height <= 0 {
		return fmt.Errorf("dimensões de gráfico inválidas: %dx%d", c.Chart.Width, c.Chart.Height)
	}

	return nil
}

// Função auxiliar para carregar o arquivo .env usando godotenv
func loadEnvFile() {
	// Obter diretório atual
	cwd, err := os.Getwd()
	if err != nil {
		logrus.Warn("Não foi possível obter o diretório atual:", err)
		return
	}

	// Tentar várias localizações possíveis para o arquivo .env
	locations := []string{
		filepath.Join(cwd, ".env"),               // Diretório atual
		filepath.Join(filepath.Dir(cwd), ".env"), // Diretório pai
		filepath.Join(cwd, "../../.env"),         // Dois diretórios acima
	}

	for _, location := range locations {
		logrus.Debug("Tentando carregar .env de:", location)
		err := godotenv.Load(location)
		if err == nil {
			logrus.Info("Arquivo .env carregado com sucesso de:", location)
			return
		}
	}

	logrus.Warn("Não foi possível carregar o arquivo .env de nenhuma localização conhecida")
}

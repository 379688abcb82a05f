package config

import (
	"errors"
	"io/fs"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/rhyrak/go-timetable/internal/scheduler"
)

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
)

type Config struct {
	Env       string
	Port      int
	Log       LogConfig
	Scheduler *scheduler.Configuration
}

type LogConfig struct {
	Level  string
	Format string
}

// Load reads .env (if present) and the environment on top of the defaults.
func Load() (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigFile(".env")
	v.SetConfigType("env")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
			return nil, err
		}
	}

	cfg := &Config{
		Env:  v.GetString("ENV"),
		Port: v.GetInt("PORT"),
		Log: LogConfig{
			Level:  v.GetString("LOG_LEVEL"),
			Format: v.GetString("LOG_FORMAT"),
		},
	}

	s := scheduler.NewDefaultConfiguration()
	s.CoursesFile = v.GetString("COURSES_FILE")
	s.RoomsFile = v.GetString("ROOMS_FILE")
	s.SlotsFile = v.GetString("SLOTS_FILE")
	s.OutputDir = v.GetString("OUTPUT_DIR")
	s.UploadDir = v.GetString("UPLOAD_DIR")
	if d := []rune(v.GetString("CSV_DELIMITER")); len(d) == 1 {
		s.Delimiter = d[0]
	}
	s.WeekDays = splitAndTrim(v.GetString("WEEK_DAYS"))
	s.ExcludedSlots = splitAndTrim(v.GetString("EXCLUDED_SLOTS"))
	s.MaxAttempts = v.GetInt("MAX_ATTEMPTS")
	s.Seed = v.GetInt64("SEED")
	s.IndependentStreams = v.GetBool("INDEPENDENT_STREAMS")
	s.OutputFormats = splitAndTrim(v.GetString("OUTPUT_FORMATS"))
	if err := s.Validate(); err != nil {
		return nil, err
	}
	cfg.Scheduler = s

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	d := scheduler.NewDefaultConfiguration()

	v.SetDefault("ENV", EnvDevelopment)
	v.SetDefault("PORT", 3001)
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "console")

	v.SetDefault("COURSES_FILE", d.CoursesFile)
	v.SetDefault("ROOMS_FILE", d.RoomsFile)
	v.SetDefault("SLOTS_FILE", d.SlotsFile)
	v.SetDefault("OUTPUT_DIR", d.OutputDir)
	v.SetDefault("UPLOAD_DIR", d.UploadDir)
	v.SetDefault("CSV_DELIMITER", string(d.Delimiter))
	v.SetDefault("WEEK_DAYS", strings.Join(d.WeekDays, ","))
	v.SetDefault("EXCLUDED_SLOTS", strings.Join(d.ExcludedSlots, ","))
	v.SetDefault("MAX_ATTEMPTS", d.MaxAttempts)
	v.SetDefault("SEED", d.Seed)
	v.SetDefault("INDEPENDENT_STREAMS", d.IndependentStreams)
	v.SetDefault("OUTPUT_FORMATS", strings.Join(d.OutputFormats, ","))
}

func splitAndTrim(raw string) []string {
	if raw == "" {
		return nil
	}

	parts := strings.Split(raw, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}

	return result
}

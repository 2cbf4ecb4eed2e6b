package core

import (
	"net"
	"net/mail"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/pkg/errors"
	"github.com/spf13/viper"

	"github.com/trezcool/studyplanner/core/academic"
)

const (
	StorageFile     = "file"
	StoragePostgres = "postgres"
)

type (
	DatabaseConfig struct {
		Engine        string
		Host          string
		Port          int
		Name          string
		User          string
		Password      string
		AdminUser     string
		AdminPassword string
		DisableTLS    bool
	}

	ServerConfig struct {
		Host            string
		Address         string
		ShutdownTimeout time.Duration
	}

	ReminderConfig struct {
		To       string
		Schedule string
	}

	Config struct {
		Env       string
		Debug     bool
		TestMode  bool
		AppName   string
		Build     string
		ConfigDir string
		LogLevel  string

		DataFile      string
		AutoSave      bool
		StorageEngine string

		Database DatabaseConfig
		Server   ServerConfig
		Reminder ReminderConfig

		RollbarToken     string
		SendgridApiKey   string
		defaultFromEmail string

		Student academic.Student
		Courses []academic.Course
	}
)

func (c DatabaseConfig) Address() string {
	return net.JoinHostPort(c.Host, strconv.Itoa(c.Port))
}

func (c *Config) DefaultFromEmail() mail.Address {
	addr, err := mail.ParseAddress(c.defaultFromEmail)
	if err != nil {
		return mail.Address{Name: c.AppName, Address: c.defaultFromEmail}
	}
	if addr.Name == "" {
		addr.Name = c.AppName
	}
	return *addr
}

func (c *Config) UsePostgres() bool {
	return c.StorageEngine == StoragePostgres
}

func setDefaults(v *viper.Viper) {
	v.SetTypeByDefaultValue(true)
	v.SetDefault("debug", true)
	v.SetDefault("appName", "Study Planner")
	v.SetDefault("build", "dev")
	v.SetDefault("logLevel", "")
	v.SetDefault("dataFile", "schedule_data.txt")
	v.SetDefault("autoSave", true)
	v.SetDefault("storage.engine", StorageFile)
	v.SetDefault("database.engine", "postgres")
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.name", "studyplanner")
	v.SetDefault("database.user", "studyplanner")
	v.SetDefault("database.password", "")
	v.SetDefault("database.adminUser", "")
	v.SetDefault("database.adminPassword", "")
	v.SetDefault("database.disableTLS", true)
	v.SetDefault("server.host", "localhost")
	v.SetDefault("server.address", ":8000")
	v.SetDefault("server.shutdownTimeout", 5*time.Second)
	v.SetDefault("defaultFromEmail", "noreply@localhost")
	v.SetDefault("sendgridApiKey", "")
	v.SetDefault("rollbarToken", "")
	v.SetDefault("reminder.to", "")
	v.SetDefault("reminder.schedule", "0 7 * * *")
	v.SetDefault("student.studentID", "")
	v.SetDefault("student.name", "")
	v.SetDefault("student.semester", 1)
	v.SetDefault("student.program", "")
}

// NewConfig reads the configuration from defaults, the optional `<configDir>/planner.yaml`,
// the optional `<configDir>/.env.<env>` and the environment (prefixed with the env name, e.g. DEV_DATAFILE).
func NewConfig() (*Config, error) {
	v := viper.New()
	setDefaults(v)

	env := strings.ToUpper(os.Getenv("ENV")) // DEV (local; default), TEST, PROD
	if env == "" {
		env = "DEV"
	}
	if env == "TEST" {
		v.SetDefault("testMode", true)
	}
	v.SetEnvPrefix(env)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	confDir := os.Getenv("PLANNER_CONFIG_DIR")
	if confDir == "" {
		confDir = "config"
	}

	// load .env if it exists (ignore if it does not)
	dotEnvPath := filepath.Join(confDir, ".env."+strings.ToLower(env))
	if _, err := os.Stat(dotEnvPath); err == nil {
		if err := godotenv.Load(dotEnvPath); err != nil {
			return nil, errors.Wrapf(err, "loading %s", dotEnvPath)
		}
	} else if !os.IsNotExist(err) {
		return nil, errors.Wrapf(err, "checking %s", dotEnvPath)
	}

	v.SetConfigName("planner")
	v.SetConfigType("yaml")
	v.AddConfigPath(confDir)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, errors.Wrap(err, "reading config file")
		}
	}
	v.AutomaticEnv()

	conf := &Config{
		Env:       env,
		Debug:     v.GetBool("debug"),
		TestMode:  v.GetBool("testMode"),
		AppName:   v.GetString("appName"),
		Build:     v.GetString("build"),
		ConfigDir: confDir,
		LogLevel:  CleanString(v.GetString("logLevel"), true /* lower */),

		DataFile:      v.GetString("dataFile"),
		AutoSave:      v.GetBool("autoSave"),
		StorageEngine: CleanString(v.GetString("storage.engine"), true /* lower */),

		Database: DatabaseConfig{
			Engine:        v.GetString("database.engine"),
			Host:          v.GetString("database.host"),
			Port:          v.GetInt("database.port"),
			Name:          v.GetString("database.name"),
			User:          v.GetString("database.user"),
			Password:      v.GetString("database.password"),
			AdminUser:     v.GetString("database.adminUser"),
			AdminPassword: v.GetString("database.adminPassword"),
			DisableTLS:    v.GetBool("database.disableTLS"),
		},
		Server: ServerConfig{
			Host:            v.GetString("server.host"),
			Address:         v.GetString("server.address"),
			ShutdownTimeout: v.GetDuration("server.shutdownTimeout"),
		},
		Reminder: ReminderConfig{
			To:       v.GetString("reminder.to"),
			Schedule: v.GetString("reminder.schedule"),
		},

		RollbarToken:     v.GetString("rollbarToken"),
		SendgridApiKey:   v.GetString("sendgridApiKey"),
		defaultFromEmail: v.GetString("defaultFromEmail"),
	}

	switch conf.StorageEngine {
	case StorageFile, StoragePostgres:
	default:
		return nil, errors.Errorf("unknown storage engine %q", conf.StorageEngine)
	}

	conf.Student = academic.NewStudent(
		v.GetString("student.studentID"),
		v.GetString("student.name"),
		v.GetInt("student.semester"),
		v.GetString("student.program"),
	)

	var courses []academic.Course
	if err := v.UnmarshalKey("courses", &courses); err != nil {
		return nil, errors.Wrap(err, "reading courses")
	}
	for _, c := range courses {
		conf.Courses = append(conf.Courses, academic.NewCourse(c.Code, c.Name, c.Credits, c.Lecturer, c.Room))
	}
	return conf, nil
}

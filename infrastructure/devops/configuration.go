package devops

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"sync"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/ssm"
)

// Config is the full runtime configuration. Values come from the environment
// (with an optional .env for local runs); when DAYFLOW_CONFIG_PARAM names an
// SSM parameter, its yaml payload is applied on top.
type Config struct {
	HTTPPort       string `yaml:"http_port"`
	DSN            string `yaml:"dsn"`
	MaxConnections int    `yaml:"max_connections"`
	JWTSecret      string `yaml:"jwt_secret"` // base64
	Timezone       string `yaml:"timezone"`   // reporting timezone for attendance dates

	DocumentBucket string `yaml:"document_bucket"`

	PayrollFormula            string `yaml:"payroll_formula"`              // base | gross
	PayrollSinglePayPerPeriod bool   `yaml:"payroll_single_pay_per_period"`
}

var (
	once    sync.Once
	cfg     *Config
	loadErr error
)

func Load(ctx context.Context) (*Config, error) {
	once.Do(func() {
		_ = godotenv.Load()

		c := &Config{
			HTTPPort:       getEnv("DAYFLOW_HTTP_PORT", "8090"),
			DSN:            os.Getenv("DAYFLOW_DSN"),
			MaxConnections: getEnvInt("DAYFLOW_MAX_CONNECTIONS", 30),
			JWTSecret:      os.Getenv("DAYFLOW_JWT_SECRET"),
			Timezone:       getEnv("DAYFLOW_TIMEZONE", "UTC"),
			DocumentBucket: os.Getenv("DAYFLOW_DOCUMENT_BUCKET"),
			PayrollFormula: getEnv("DAYFLOW_PAYROLL_FORMULA", "base"),
			PayrollSinglePayPerPeriod: getEnvBool("DAYFLOW_PAYROLL_SINGLE_PAY_PER_PERIOD", false),
		}

		if paramName := os.Getenv("DAYFLOW_CONFIG_PARAM"); paramName != "" {
			if err := applySSMParameter(ctx, paramName, c); err != nil {
				loadErr = err
				return
			}
		}

		if c.JWTSecret == "" {
			loadErr = fmt.Errorf("DAYFLOW_JWT_SECRET is not set")
			return
		}
		if c.DSN == "" {
			loadErr = fmt.Errorf("DAYFLOW_DSN is not set")
			return
		}

		cfg = c
	})

	return cfg, loadErr
}

func applySSMParameter(ctx context.Context, paramName string, c *Config) error {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx)
	if err != nil {
		return fmt.Errorf("load aws config: %w", err)
	}

	client := ssm.NewFromConfig(awsCfg)

	out, err := client.GetParameter(ctx, &ssm.GetParameterInput{
		Name:           aws.String(paramName),
		WithDecryption: aws.Bool(true),
	})
	if err != nil {
		return fmt.Errorf("get parameter: %w", err)
	}

	if err := yaml.Unmarshal([]byte(*out.Parameter.Value), c); err != nil {
		return fmt.Errorf("unmarshal yaml: %w", err)
	}
	return nil
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func getEnvBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return def
}

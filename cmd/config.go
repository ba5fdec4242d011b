package cmd

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"freight/internal/core/domain/services"
	"freight/internal/pkg/errs"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
	"github.com/spf13/viper"
)

type Config struct {
	HTTPPort   string
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSslMode  string

	KafkaBrokers      []string
	KafkaBillingTopic string
	KafkaWriteTimeout time.Duration

	RatesAPIURL         string
	RatesAPITimeout     time.Duration
	RatesCacheTTL       time.Duration
	RatesRetryAfter     time.Duration
	RatesRefreshCron    string
	RatesRefreshTimeout time.Duration

	Policy services.Policy
}

// LoadConfig reads settings from the environment. A .env file in the working
// directory is loaded first when present; real environment variables win.
func LoadConfig() (Config, error) {
	_ = godotenv.Load(".env")

	v := viper.New()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	setDefaults(v)

	policy, err := loadPolicy(v)
	if err != nil {
		return Config{}, err
	}

	return Config{
		HTTPPort:            v.GetString("http.port"),
		DBHost:              v.GetString("db.host"),
		DBPort:              v.GetString("db.port"),
		DBUser:              v.GetString("db.user"),
		DBPassword:          v.GetString("db.password"),
		DBName:              v.GetString("db.name"),
		DBSslMode:           v.GetString("db.sslmode"),
		KafkaBrokers:        splitList(v.GetString("kafka.brokers")),
		KafkaBillingTopic:   v.GetString("kafka.billing.topic"),
		KafkaWriteTimeout:   v.GetDuration("kafka.write.timeout"),
		RatesAPIURL:         v.GetString("rates.api.url"),
		RatesAPITimeout:     v.GetDuration("rates.api.timeout"),
		RatesCacheTTL:       v.GetDuration("rates.cache.ttl"),
		RatesRetryAfter:     v.GetDuration("rates.retry.after"),
		RatesRefreshCron:    v.GetString("rates.refresh.cron"),
		RatesRefreshTimeout: v.GetDuration("rates.refresh.timeout"),
		Policy:              policy,
	}, nil
}

func (c Config) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost,
		c.DBPort,
		c.DBUser,
		c.DBPassword,
		c.DBName,
		c.DBSslMode,
	)
}

func setDefaults(v *viper.Viper) {
	policy := services.DefaultPolicy()

	v.SetDefault("http.port", "8080")
	v.SetDefault("db.host", "localhost")
	v.SetDefault("db.port", "5432")
	v.SetDefault("db.sslmode", "disable")
	v.SetDefault("kafka.brokers", "localhost:9092")
	v.SetDefault("kafka.billing.topic", "billing.events")
	v.SetDefault("kafka.write.timeout", "3s")
	v.SetDefault("rates.api.url", "http://localhost:8081/rates")
	v.SetDefault("rates.api.timeout", "5s")
	v.SetDefault("rates.cache.ttl", "24h")
	v.SetDefault("rates.retry.after", "1m")
	v.SetDefault("rates.refresh.cron", "0 0 9 * * *")
	v.SetDefault("rates.refresh.timeout", "1m")
	v.SetDefault("policy.cbm.threshold", policy.CbmThreshold.String())
	v.SetDefault("policy.min.cbm", policy.MinCbm.String())
	v.SetDefault("policy.declared.value.threshold", policy.DeclaredValueThreshold.String())
	v.SetDefault("policy.vat.rate", policy.VatRate.String())
	v.SetDefault("policy.duty.free.limit.krw", policy.DutyFreeLimitKrw.String())
	v.SetDefault("policy.small.amount.exemption.krw", policy.SmallAmountExemptionKrw.String())
}

func loadPolicy(v *viper.Viper) (services.Policy, error) {
	var joined []error
	read := func(key string) decimal.Decimal {
		d, err := decimal.NewFromString(v.GetString(key))
		if err != nil {
			joined = append(joined, errs.NewValueIsInvalidErrorWithCause(key, err))
		}
		return d
	}

	policy := services.Policy{
		CbmThreshold:            read("policy.cbm.threshold"),
		MinCbm:                  read("policy.min.cbm"),
		DeclaredValueThreshold:  read("policy.declared.value.threshold"),
		VatRate:                 read("policy.vat.rate"),
		DutyFreeLimitKrw:        read("policy.duty.free.limit.krw"),
		SmallAmountExemptionKrw: read("policy.small.amount.exemption.krw"),
	}
	if err := errors.Join(joined...); err != nil {
		return services.Policy{}, err
	}
	if err := policy.Validate(); err != nil {
		return services.Policy{}, err
	}
	return policy, nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

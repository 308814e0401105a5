package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env"
)

type config struct {
	Production          bool          `env:"PRODUCTION" envDefault:"false"`
	Port                string        `env:"PORT" envDefault:"80"`
	PostgresUrl         string        `env:"POSTGRES_URL,required"`
	RedisUrl            string        `env:"REDIS_URL" envDefault:"redis:6379"`
	PreferencesCacheTTL time.Duration `env:"PREFERENCES_CACHE_TTL" envDefault:"5m"`
	Secret              string        `env:"SECRET,required"`
	NatsUrl             string        `env:"NATS_URL" envDefault:"nats://nats:4222"`
	PlannerBucket       string        `env:"PLANNER_BUCKET" envDefault:"planner-requests"`
	SolverUrl           string        `env:"SOLVER_URL,required"`
	SolverUsername      string        `env:"SOLVER_USERNAME" envDefault:""`
	SolverPassword      string        `env:"SOLVER_PASSWORD" envDefault:""`
	SolverTimeout       time.Duration `env:"SOLVER_TIMEOUT" envDefault:"30s"`
	SolverCallbackUrl   string        `env:"SOLVER_CALLBACK_URL" envDefault:""`
	FreePlanDelay       time.Duration `env:"FREE_PLAN_DELAY" envDefault:"10m"`
	ProPlanDelay        time.Duration `env:"PRO_PLAN_DELAY" envDefault:"5m"`
	PremiumPlanDelay    time.Duration `env:"PREMIUM_PLAN_DELAY" envDefault:"2m"`
	ClassifierUrl       string        `env:"CLASSIFIER_URL,required"`
	ClassifierTimeout   time.Duration `env:"CLASSIFIER_TIMEOUT" envDefault:"10s"`
	MinThresholdScore   float64       `env:"MIN_THRESHOLD_SCORE" envDefault:"0.6"`
	AttendeeConcurrency int           `env:"ATTENDEE_CONCURRENCY" envDefault:"4"`
}

var conf config

func init() {
	if err := env.Parse(&conf); err != nil {
		panic(fmt.Sprintf("failed to load config: %v", err))
	}
}

func Production() bool {
	return conf.Production
}

func Port() string {
	return conf.Port
}

func PostgresURL() string {
	return conf.PostgresUrl
}

func RedisURL() string {
	return conf.RedisUrl
}

func PreferencesCacheTTL() time.Duration {
	return conf.PreferencesCacheTTL
}

func Secret() string {
	return conf.Secret
}

func NatsURL() string {
	return conf.NatsUrl
}

func PlannerBucket() string {
	return conf.PlannerBucket
}

func SolverURL() string {
	return conf.SolverUrl
}

func SolverUsername() string {
	return conf.SolverUsername
}

func SolverPassword() string {
	return conf.SolverPassword
}

func SolverTimeout() time.Duration {
	return conf.SolverTimeout
}

func SolverCallbackURL() string {
	return conf.SolverCallbackUrl
}

func FreePlanDelay() time.Duration {
	return conf.FreePlanDelay
}

func ProPlanDelay() time.Duration {
	return conf.ProPlanDelay
}

func PremiumPlanDelay() time.Duration {
	return conf.PremiumPlanDelay
}

func ClassifierURL() string {
	return conf.ClassifierUrl
}

func ClassifierTimeout() time.Duration {
	return conf.ClassifierTimeout
}

func MinThresholdScore() float64 {
	return conf.MinThresholdScore
}

func AttendeeConcurrency() int {
	return conf.AttendeeConcurrency
}

package config

import (
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env/v2"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
	log "github.com/sirupsen/logrus"
)

const envPrefix = "BREATHER_"

type Application struct {
	Host     string   `koanf:"host"`
	Server   Server   `koanf:"server"`
	Database Database `koanf:"db"`
	Plan     Plan     `koanf:"plan"`
	Summary  Summary  `koanf:"summary"`
	Broker   Broker   `koanf:"broker"`
	Metrics  Metrics  `koanf:"metrics"`
}

type Server struct {
	Port int `koanf:"port"`
}

type Database struct {
	Host   string `koanf:"host"`
	Port   int    `koanf:"port"`
	User   string `koanf:"user"`
	Pass   string `koanf:"pass"`
	Name   string `koanf:"name"`
	Schema string `koanf:"schema"`
}

type Plan struct {
	// DailyPayment is used when a payment plan request does not name one.
	DailyPayment float64 `koanf:"dailypayment"`
}

type Summary struct {
	// MileageRate is the per-mile deduction for users without stored settings.
	MileageRate float64 `koanf:"mileagerate"`
}

// Broker forwards domain events to RabbitMQ. Forwarding is off while Url is empty.
type Broker struct {
	Url        string `koanf:"url"`
	Exchange   string `koanf:"exchange"`
	RoutingKey string `koanf:"routingkey"`
}

type Metrics struct {
	Enabled bool `koanf:"enabled"`
}

func defaults() Application {
	return Application{
		Host: "http://localhost:3000",
		Server: Server{
			Port: 8181,
		},
		Database: Database{
			Host:   "localhost",
			Port:   5432,
			User:   "breather",
			Pass:   "",
			Name:   "breather",
			Schema: "breather",
		},
		Plan: Plan{
			DailyPayment: 50,
		},
		Summary: Summary{
			MileageRate: 0.70,
		},
		Broker: Broker{
			Exchange:   "breather.events",
			RoutingKey: "bill_payment.recorded",
		},
		Metrics: Metrics{
			Enabled: true,
		},
	}
}

// Load reads the configuration from struct defaults, then the YAML file at path when it exists,
// then BREATHER_ environment variables (BREATHER_DB_HOST sets db.host).
func Load(path string) (Application, error) {
	var k = koanf.New(".")

	if err := k.Load(structs.Provider(defaults(), "koanf"), nil); err != nil {
		log.Errorf("error loading config from structs: %v", err)
		return Application{}, err
	}

	if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
		if os.IsNotExist(err) {
			log.Infof("Config file not found at %s, using defaults and environment variables", path)
		} else {
			log.Errorf("error loading config from YAML: %v", err)
			return Application{}, err
		}
	} else {
		log.Infof("Loaded configuration from file: %s", path)
	}

	err := k.Load(env.Provider(".", env.Opt{
		Prefix: envPrefix,
		TransformFunc: func(k, v string) (string, any) {
			k = strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(k, envPrefix)), "_", ".")
			return k, v
		},
	}), nil)
	if err != nil {
		log.Errorf("error loading config from envs: %v", err)
		return Application{}, err
	}

	var app Application
	if err := k.Unmarshal("", &app); err != nil {
		return Application{}, err
	}
	return app, nil
}

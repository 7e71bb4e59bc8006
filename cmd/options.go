package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"go.yaml.in/yaml/v3"
)

const (
	DefaultHost     = "localhost"
	DefaultPort     = "5678"
	DefaultLogLevel = "info"
)

type ServerOptions struct {
	Host     string `yaml:"host"`
	Port     string `yaml:"port"`
	LogLevel string `yaml:"log_level"`
	Pretty   bool   `yaml:"pretty"`
}

func (o *ServerOptions) Addr() string {
	return o.Host + ":" + o.Port
}

// getServerOptions resolves options from, in order of precedence, the
// command line, the environment (a .env file included), an optional YAML
// file and the defaults. The returned bool reports whether a .env file was
// loaded.
func getServerOptions(args []string) (*ServerOptions, bool, error) {
	var (
		port       string
		portSr     string
		host       string
		logLevel   string
		pretty     bool
		configPath string
	)

	fs := flag.NewFlagSet("dlist", flag.ContinueOnError)
	fs.StringVar(&port, "port", "", "Port to run server")
	fs.StringVar(&portSr, "p", "", "Shorthand for port")
	fs.StringVar(&host, "host", "", "Interface to listen on")
	fs.StringVar(&logLevel, "log-level", "", "Log level (debug, info, warn, error)")
	fs.BoolVar(&pretty, "pretty", false, "Human readable logs")
	fs.StringVar(&configPath, "config", "", "Path to a YAML config file")
	if err := fs.Parse(args); err != nil {
		return nil, false, err
	}

	dotenv := godotenv.Load() == nil

	if configPath == "" {
		configPath = os.Getenv("DLIST_CONFIG")
	}

	options := &ServerOptions{}
	if configPath != "" {
		fileOptions, err := loadConfigFile(configPath)
		if err != nil {
			return nil, dotenv, err
		}
		options = fileOptions
	}

	if portSr != "" && port == "" {
		port = portSr
	}

	options.Host = firstOf(host, os.Getenv("DLIST_HOST"), options.Host, DefaultHost)
	options.Port = firstOf(port, os.Getenv("DLIST_PORT"), options.Port, DefaultPort)
	options.LogLevel = firstOf(logLevel, os.Getenv("DLIST_LOG_LEVEL"), options.LogLevel, DefaultLogLevel)

	if env := os.Getenv("DLIST_PRETTY"); env != "" {
		v, err := strconv.ParseBool(env)
		if err != nil {
			return nil, dotenv, fmt.Errorf("DLIST_PRETTY: %w", err)
		}
		options.Pretty = v
	}
	fs.Visit(func(f *flag.Flag) {
		if f.Name == "pretty" {
			options.Pretty = pretty
		}
	})

	return options, dotenv, nil
}

func loadConfigFile(path string) (*ServerOptions, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("config file %s does not exist", path)
		}
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	var options ServerOptions
	if err := yaml.Unmarshal(data, &options); err != nil {
		return nil, fmt.Errorf("parsing config file %s: %w", path, err)
	}

	return &options, nil
}

func firstOf(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

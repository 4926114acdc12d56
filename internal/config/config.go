// Package config provides unified CLI configuration loading from
// files, environment variables, and flags using viper and pflag.
//
// Resolution order (highest wins):
//  1. CLI flags
//  2. Environment variables (prefix KUBECLIENT_)
//  3. Config file (config.yaml in . or /etc/kubeclient/)
//  4. Compiled defaults
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Option describes a single configuration entry: its viper key, the
// corresponding CLI flag name, the compiled default, and a
// human-readable description shown in --help output.
type Option struct {
	Key         string
	Flag        string
	Default     any
	Description string
}

const (
	keyKubeconfigPath    = "kubeconfig.path"
	keyKubeconfigContext = "kubeconfig.context"
	keyInCluster         = "in_cluster"
	keyNamespace         = "namespace"
	keyTimeoutSeconds    = "timeout_seconds"
	keyMetricsAddress    = "metrics.address"
)

// Options defines the configuration entries shared by all subcommands.
// Each entry is registered as a viper default and a CLI flag.
var Options = []Option{
	{Key: keyKubeconfigPath, Flag: toFlag(keyKubeconfigPath), Default: "", Description: "Path to the kubeconfig file (defaults to $KUBECONFIG or ~/.kube/config)"},
	{Key: keyKubeconfigContext, Flag: toFlag(keyKubeconfigContext), Default: "", Description: "Kubeconfig context to use (defaults to current-context)"},
	{Key: keyInCluster, Flag: toFlag(keyInCluster), Default: false, Description: "Use the pod service account instead of a kubeconfig"},
	{Key: keyNamespace, Flag: toFlag(keyNamespace), Default: "default", Description: "Namespace scope for namespaced resources"},
	{Key: keyTimeoutSeconds, Flag: toFlag(keyTimeoutSeconds), Default: 0, Description: "Server-side timeout for list and watch requests"},
	{Key: keyMetricsAddress, Flag: toFlag(keyMetricsAddress), Default: "", Description: "Listen address for the Prometheus /metrics endpoint (empty disables it)"},
}

// toFlag converts a viper key like "kubeconfig.path" into a CLI flag
// like "kubeconfig-path" by replacing dots and underscores with
// hyphens.
func toFlag(key string) string {
	flag := strings.ToLower(key)
	flag = strings.ReplaceAll(flag, ".", "-")
	flag = strings.ReplaceAll(flag, "_", "-")
	return flag
}

type Config struct {
	v *viper.Viper
}

func New() (*Config, error) {
	v := viper.New()

	// default values
	for _, o := range Options {
		v.SetDefault(o.Key, o.Default)
	}

	// load config from file
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("/etc/kubeclient/")

	if err := v.ReadInConfig(); err != nil {
		var notFoundErr viper.ConfigFileNotFoundError
		if !(errors.As(err, &notFoundErr) || errors.Is(err, os.ErrNotExist)) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	// load config from environment variables
	v.SetEnvPrefix("KUBECLIENT")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	return &Config{v: v}, nil
}

// BindFlags registers the given options as CLI flags and binds them to
// their viper keys so flags override the other sources.
func (c *Config) BindFlags(fs *pflag.FlagSet, options []Option) error {
	for _, o := range options {
		switch v := o.Default.(type) {
		case string:
			fs.String(o.Flag, v, o.Description)
		case int:
			fs.Int(o.Flag, v, o.Description)
		case bool:
			fs.Bool(o.Flag, v, o.Description)
		case []string:
			fs.StringSlice(o.Flag, v, o.Description)
		default:
			return fmt.Errorf("unsupported flag type for key: %s", o.Key)
		}

		if err := c.v.BindPFlag(o.Key, fs.Lookup(o.Flag)); err != nil {
			return fmt.Errorf("failed to bind flag %s: %w", o.Flag, err)
		}
	}

	return nil
}

func (c *Config) KubeconfigPath() string {
	return c.v.GetString(keyKubeconfigPath) // KUBECLIENT_KUBECONFIG_PATH
}

func (c *Config) KubeconfigContext() string {
	return c.v.GetString(keyKubeconfigContext) // KUBECLIENT_KUBECONFIG_CONTEXT
}

func (c *Config) InCluster() bool {
	return c.v.GetBool(keyInCluster) // KUBECLIENT_IN_CLUSTER
}

func (c *Config) Namespace() string {
	return c.v.GetString(keyNamespace) // KUBECLIENT_NAMESPACE
}

func (c *Config) TimeoutSeconds() int {
	return c.v.GetInt(keyTimeoutSeconds) // KUBECLIENT_TIMEOUT_SECONDS
}

func (c *Config) MetricsAddress() string {
	return c.v.GetString(keyMetricsAddress) // KUBECLIENT_METRICS_ADDRESS
}

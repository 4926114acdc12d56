package config

import (
	"context"
	"encoding/base64"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/otterscale/kubeclient/apierrors"
)

// kubeconfig mirrors the documented kubeconfig YAML schema, limited to
// the fields the loader consumes.
type kubeconfig struct {
	CurrentContext string             `yaml:"current-context"`
	Clusters       []namedCluster     `yaml:"clusters"`
	Users          []namedUser        `yaml:"users"`
	Contexts       []namedKubeContext `yaml:"contexts"`
}

type namedCluster struct {
	Name    string      `yaml:"name"`
	Cluster kubeCluster `yaml:"cluster"`
}

type kubeCluster struct {
	Server                   string `yaml:"server"`
	CertificateAuthority     string `yaml:"certificate-authority"`
	CertificateAuthorityData string `yaml:"certificate-authority-data"`
	InsecureSkipTLSVerify    bool   `yaml:"insecure-skip-tls-verify"`
}

type namedUser struct {
	Name string   `yaml:"name"`
	User kubeUser `yaml:"user"`
}

type kubeUser struct {
	Token                 string            `yaml:"token"`
	TokenFile             string            `yaml:"tokenFile"`
	Username              string            `yaml:"username"`
	Password              string            `yaml:"password"`
	ClientCertificate     string            `yaml:"client-certificate"`
	ClientCertificateData string            `yaml:"client-certificate-data"`
	ClientKey             string            `yaml:"client-key"`
	ClientKeyData         string            `yaml:"client-key-data"`
	AuthProvider          *kubeAuthProvider `yaml:"auth-provider"`
}

type kubeAuthProvider struct {
	Name   string            `yaml:"name"`
	Config map[string]string `yaml:"config"`
}

type namedKubeContext struct {
	Name    string      `yaml:"name"`
	Context kubeContext `yaml:"context"`
}

type kubeContext struct {
	Cluster   string `yaml:"cluster"`
	User      string `yaml:"user"`
	Namespace string `yaml:"namespace"`
}

// KubeconfigPath resolves the kubeconfig location: the KUBECONFIG
// environment variable when set, otherwise ~/.kube/config.
func KubeconfigPath() string {
	if path := os.Getenv("KUBECONFIG"); path != "" {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".kube", "config")
}

// FromKubeconfig builds a Configuration from a kubeconfig file. An
// empty path falls back to KubeconfigPath; an empty contextName uses
// the file's current-context. Supported user credentials: bearer
// token (inline or file), basic auth, client certificates, and the
// oidc auth provider.
func FromKubeconfig(path, contextName string) (*Configuration, error) {
	if path == "" {
		path = KubeconfigPath()
	}
	if path == "" {
		return nil, &apierrors.ConfigError{Reason: "kubeconfig location could not be determined"}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &apierrors.ConfigError{Reason: fmt.Sprintf("kubeconfig %q is not readable", path), Err: err}
	}

	var kc kubeconfig
	if err := yaml.Unmarshal(data, &kc); err != nil {
		return nil, &apierrors.ConfigError{Reason: fmt.Sprintf("kubeconfig %q is not valid YAML", path), Err: err}
	}

	if contextName == "" {
		contextName = kc.CurrentContext
	}
	if contextName == "" {
		return nil, &apierrors.ConfigError{Reason: "kubeconfig has no current-context and no context was given"}
	}

	ctx, ok := findContext(kc.Contexts, contextName)
	if !ok {
		return nil, &apierrors.ConfigError{Reason: fmt.Sprintf("context %q not found in kubeconfig", contextName)}
	}
	cluster, ok := findCluster(kc.Clusters, ctx.Cluster)
	if !ok {
		return nil, &apierrors.ConfigError{Reason: fmt.Sprintf("cluster %q not found in kubeconfig", ctx.Cluster)}
	}
	user, ok := findUser(kc.Users, ctx.User)
	if !ok {
		return nil, &apierrors.ConfigError{Reason: fmt.Sprintf("user %q not found in kubeconfig", ctx.User)}
	}

	cfg := New()
	if err := applyCluster(cfg, cluster); err != nil {
		return nil, err
	}
	if err := applyUser(cfg, user); err != nil {
		return nil, err
	}
	return cfg, nil
}

func findContext(contexts []namedKubeContext, name string) (kubeContext, bool) {
	for _, c := range contexts {
		if c.Name == name {
			return c.Context, true
		}
	}
	return kubeContext{}, false
}

func findCluster(clusters []namedCluster, name string) (kubeCluster, bool) {
	for _, c := range clusters {
		if c.Name == name {
			return c.Cluster, true
		}
	}
	return kubeCluster{}, false
}

func findUser(users []namedUser, name string) (kubeUser, bool) {
	for _, u := range users {
		if u.Name == name {
			return u.User, true
		}
	}
	return kubeUser{}, false
}

func applyCluster(cfg *Configuration, cluster kubeCluster) error {
	if cluster.Server == "" {
		return &apierrors.ConfigError{Reason: "cluster has no server address"}
	}
	cfg.Host = cluster.Server
	cfg.SSLCACert = cluster.CertificateAuthority
	cfg.VerifyTLS = !cluster.InsecureSkipTLSVerify

	if cluster.CertificateAuthorityData != "" {
		data, err := base64.StdEncoding.DecodeString(cluster.CertificateAuthorityData)
		if err != nil {
			return &apierrors.ConfigError{Reason: "certificate-authority-data is not valid base64", Err: err}
		}
		cfg.CAData = data
	}
	return nil
}

func applyUser(cfg *Configuration, user kubeUser) error {
	switch {
	case user.Token != "":
		cfg.SetBearerToken("Bearer " + user.Token)

	case user.TokenFile != "":
		token, err := readNonEmpty(user.TokenFile, "token")
		if err != nil {
			return err
		}
		cfg.SetBearerToken("Bearer " + token)
		cfg.SetTokenProvider(NewFileTokenProvider(user.TokenFile))

	case user.AuthProvider != nil:
		provider, err := newAuthProvider(user.AuthProvider)
		if err != nil {
			return err
		}
		// Honor the provider once on load, then let EnsureFreshToken
		// track expiry during steady-state use.
		token, err := provider.Token(context.Background())
		if err != nil {
			return &apierrors.ConfigError{Reason: "auth provider rejected the stored credentials", Err: err}
		}
		cfg.SetBearerToken("Bearer " + token)
		cfg.SetTokenProvider(provider)

	case user.Username != "":
		cfg.Username = user.Username
		cfg.Password = user.Password
	}

	cfg.CertFile = user.ClientCertificate
	cfg.KeyFile = user.ClientKey

	if user.ClientCertificateData != "" {
		data, err := base64.StdEncoding.DecodeString(user.ClientCertificateData)
		if err != nil {
			return &apierrors.ConfigError{Reason: "client-certificate-data is not valid base64", Err: err}
		}
		cfg.CertData = data
	}
	if user.ClientKeyData != "" {
		data, err := base64.StdEncoding.DecodeString(user.ClientKeyData)
		if err != nil {
			return &apierrors.ConfigError{Reason: "client-key-data is not valid base64", Err: err}
		}
		cfg.KeyData = data
	}
	return nil
}

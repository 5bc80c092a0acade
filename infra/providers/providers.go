package providers

import (
	"context"
	"os"
	"sync"

	"github.com/google/uuid"

	"github.com/commercepulse/telemetry/core/metadata"
)

// Default merge priorities of the builtin providers. Hosts override a builtin
// key by registering their own provider with a higher priority.
const (
	AppVersionPriority  = 100
	InstancePriority    = 50
	EnvironmentPriority = 10
)

// AppVersionConfig carries the static application identity.
type AppVersionConfig struct {
	Service string `json:"service"`
	Version string `json:"version"`
}

// AppVersion contributes the service name and release version.
type AppVersion struct {
	cfg AppVersionConfig
}

func NewAppVersion(cfg AppVersionConfig) *AppVersion { return &AppVersion{cfg: cfg} }

func (p *AppVersion) Name() string { return "appversion" }

func (p *AppVersion) Provide(context.Context) (map[string]string, error) {
	md := map[string]string{}
	if p.cfg.Service != "" {
		md["service"] = p.cfg.Service
	}
	if p.cfg.Version != "" {
		md["app_version"] = p.cfg.Version
	}
	return md, nil
}

// Instance contributes a process-unique instance id and the hostname. The id
// is generated once per process so all Metrics of one run correlate.
type Instance struct {
	once sync.Once
	id   string
	host string
}

func NewInstance() *Instance { return &Instance{} }

func (p *Instance) Name() string { return "instance" }

func (p *Instance) Provide(context.Context) (map[string]string, error) {
	p.once.Do(func() {
		p.id = uuid.NewString()
		p.host, _ = os.Hostname()
	})
	md := map[string]string{"instance_id": p.id}
	if p.host != "" {
		md["hostname"] = p.host
	}
	return md, nil
}

// EnvironmentConfig names the deployment environment; when empty the APP_ENV
// variable is consulted.
type EnvironmentConfig struct {
	Environment string `json:"environment"`
}

// Environment contributes the deployment environment.
type Environment struct {
	cfg EnvironmentConfig
}

func NewEnvironment(cfg EnvironmentConfig) *Environment { return &Environment{cfg: cfg} }

func (p *Environment) Name() string { return "environment" }

func (p *Environment) Provide(context.Context) (map[string]string, error) {
	env := p.cfg.Environment
	if env == "" {
		env = os.Getenv("APP_ENV")
	}
	if env == "" {
		return map[string]string{}, nil
	}
	return map[string]string{"environment": env}, nil
}

var _ metadata.Provider = (*AppVersion)(nil)
var _ metadata.Provider = (*Instance)(nil)
var _ metadata.Provider = (*Environment)(nil)

package app

import (
	"errors"

	"github.com/sabai-next/internal/config"
	"github.com/sabai-next/internal/provider"
	"github.com/sabai-next/internal/router"
)

// BuildRunner 构建服务运行器
func BuildRunner(cfg *config.Config) (*Runner, error) {
	if cfg == nil {
		return nil, errors.New("config is nil")
	}

	container, err := provider.NewContainer(cfg)
	if err != nil {
		return nil, err
	}

	engine := router.SetupRouter(cfg, container)
	addr := cfg.Server.Host + ":" + cfg.Server.Port
	return NewRunner(NewHTTPService(addr, engine)), nil
}

// Run 应用启动入口
func Run(opts Options) error {
	opts = normalizeOptions(opts)
	if opts.Config == nil {
		return errors.New("config is nil")
	}

	runner, err := BuildRunner(opts.Config)
	if err != nil {
		return err
	}

	addr := opts.Config.Server.Host + ":" + opts.Config.Server.Port
	opts.Logger.Infow("app_start", "addr", addr)
	return RunWithOptions(runner, opts)
}

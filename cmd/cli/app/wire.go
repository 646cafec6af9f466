//go:build wireinject
// +build wireinject

package app

import (
	"phd/internal/adapters/cluster"
	"phd/internal/adapters/command_runner"
	"phd/internal/adapters/filesystem"
	"phd/internal/adapters/keyring"
	"phd/internal/adapters/manifest_fetcher"
	"phd/internal/adapters/password"
	"phd/internal/adapters/scm"
	"phd/internal/adapters/templater"
	"phd/internal/adapters/terminal"
	"phd/internal/core"
	"phd/internal/core/handler"
	"phd/internal/ports"

	"github.com/google/wire"
)

// Adapter provides the ports that do not need cluster connectivity.
var Adapter = wire.NewSet(
	command_runner.ProvideOsCommandRunner,
	wire.Bind(new(ports.CommandRunner), new(*command_runner.OsCommandRunner)),
	filesystem.ProvideOsFileSystem,
	wire.Bind(new(ports.FileSystem), new(*filesystem.OsFileSystem)),
	scm.ProvideGit,
	wire.Bind(new(ports.Scm), new(*scm.Git)),
	templater.ProvideManifestTemplater,
	wire.Bind(new(ports.Templater), new(*templater.ManifestTemplater)),
	manifest_fetcher.ProvideHttpFetcher,
	wire.Bind(new(ports.ManifestFetcher), new(*manifest_fetcher.HttpFetcher)),
	password.ProvideBcryptHasher,
	wire.Bind(new(ports.PasswordHasher), new(*password.BcryptHasher)),
	keyring.ProvideZalandoKeyring,
	terminal.ProvideTerminalInput,
	wire.Bind(new(ports.TerminalInput), new(*terminal.TerminalInput)),
)

// ClusterAdapter provides the Cluster port; building it resolves the
// kubeconfig, so only cluster-facing handlers include it.
var ClusterAdapter = wire.NewSet(
	core.ProvideKubeconfigResolver,
	cluster.ProvideKubernetes,
	wire.Bind(new(ports.Cluster), new(*cluster.Kubernetes)),
)

// CoreSet provides domain/core dependencies
var CoreSet = wire.NewSet(
	core.ProvideEnvConfigRepository,
	wire.Bind(new(core.ConfigRepository), new(*core.EnvConfigRepository)),
	core.ProvideManifestApplier,
	core.ProvideWorkflowWaiter,
	core.ProvideTokenWaiter,
	core.ProvideRbacEditor,
	core.ProvideScaffolder,
	core.ProvideConfigPatcher,
)

// CommandHandlerSet combines all sets needed for cluster-facing handlers
var CommandHandlerSet = wire.NewSet(
	Adapter,
	ClusterAdapter,
	CoreSet,
)

func InjectArgoInstallCommandHandler() (handler.ArgoInstallCommandHandler, error) {
	wire.Build(
		CommandHandlerSet,
		handler.ProvideArgoInstallCommandHandler,
	)
	return handler.ArgoInstallCommandHandler{}, nil
}

func InjectUserCreateCommandHandler() (handler.UserCreateCommandHandler, error) {
	wire.Build(
		CommandHandlerSet,
		handler.ProvideUserCreateCommandHandler,
	)
	return handler.UserCreateCommandHandler{}, nil
}

func InjectUserDeleteCommandHandler() (handler.UserDeleteCommandHandler, error) {
	wire.Build(
		CommandHandlerSet,
		handler.ProvideUserDeleteCommandHandler,
	)
	return handler.UserDeleteCommandHandler{}, nil
}

func InjectUserUpdateCommandHandler() (handler.UserUpdateCommandHandler, error) {
	wire.Build(
		CommandHandlerSet,
		handler.ProvideUserUpdateCommandHandler,
	)
	return handler.UserUpdateCommandHandler{}, nil
}

func InjectClusterCreateCommandHandler() (handler.ClusterCreateCommandHandler, error) {
	wire.Build(
		Adapter,
		CoreSet,
		handler.ProvideClusterCreateCommandHandler,
	)
	return handler.ClusterCreateCommandHandler{}, nil
}

func InjectInstanceCreateCommandHandler() (handler.InstanceCreateCommandHandler, error) {
	wire.Build(
		CommandHandlerSet,
		handler.ProvideArgoInstallCommandHandler,
		handler.ProvideInstanceCreateCommandHandler,
	)
	return handler.InstanceCreateCommandHandler{}, nil
}

// Instance deletion drives kubectl directly instead of going through the
// Cluster port, so it needs the kubeconfig resolver without the rest of
// the cluster adapter.
func InjectInstanceDeleteCommandHandler() (handler.InstanceDeleteCommandHandler, error) {
	wire.Build(
		Adapter,
		CoreSet,
		core.ProvideKubeconfigResolver,
		handler.ProvideInstanceDeleteCommandHandler,
	)
	return handler.InstanceDeleteCommandHandler{}, nil
}

func InjectConfigCommandHandler() (handler.ConfigCommandHandler, error) {
	wire.Build(
		Adapter,
		CoreSet,
		handler.ProvideConfigCommandHandler,
	)
	return handler.ConfigCommandHandler{}, nil
}

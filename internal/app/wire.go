//go:build wireinject
// +build wireinject

package app

import (
	"github.com/google/wire"
	"github.com/rsksmart/safekit/internal/adapters"
	"github.com/rsksmart/safekit/internal/config"
	"github.com/rsksmart/safekit/internal/logging"
	"github.com/rsksmart/safekit/internal/usecase"
	"github.com/spf13/viper"
)

// InitApp creates a fully wired App instance
func InitApp(v *viper.Viper, sink usecase.ProgressSink) (*App, error) {
	wire.Build(
		// Configuration
		config.Provider,
		logging.LoggingSet,

		// Adapters
		adapters.AllAdapters,

		// Use cases
		usecase.NewListNetworks,
		usecase.NewShowNetwork,
		usecase.NewSelectNetwork,
		usecase.NewShowConfig,
		usecase.NewSetConfig,
		usecase.NewRemoveConfig,
		usecase.NewResolveContract,
		usecase.NewInstantiateContracts,
		usecase.NewCheckContracts,
		usecase.NewGetMasterCopy,
		usecase.NewBuildDeploymentTx,
		usecase.NewReadSafe,

		// App
		NewApp,
	)
	return nil, nil
}

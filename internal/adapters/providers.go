package adapters

import (
	"github.com/google/wire"
	"github.com/rsksmart/safekit/internal/adapters/blockchain"
	"github.com/rsksmart/safekit/internal/adapters/deployment"
	"github.com/rsksmart/safekit/internal/adapters/fs"
	"github.com/rsksmart/safekit/internal/adapters/gasprice"
	"github.com/rsksmart/safekit/internal/adapters/interactive"
	"github.com/rsksmart/safekit/internal/adapters/network"
	"github.com/rsksmart/safekit/internal/adapters/safe"
	"github.com/rsksmart/safekit/internal/deployments"
	"github.com/rsksmart/safekit/internal/usecase"
)

// NetworkSet provides the embedded network catalog
var NetworkSet = wire.NewSet(
	network.NewRegistry,
	wire.Bind(new(usecase.NetworkRegistry), new(*network.Registry)),
)

// DeploymentSet provides contract deployment resolution
var DeploymentSet = wire.NewSet(
	deployments.NewRegistry,
	wire.Bind(new(deployment.ExternalRegistry), new(*deployments.Registry)),

	deployment.NewPinnedSource,
	deployment.NewResolver,
	wire.Bind(new(usecase.DeploymentResolver), new(*deployment.Resolver)),

	usecase.NewContractCache,
)

// FSSet provides filesystem-based implementations
var FSSet = wire.NewSet(
	fs.NewLocalConfigStoreAdapter,
	wire.Bind(new(usecase.LocalConfigStore), new(*fs.LocalConfigStoreAdapter)),
)

// InteractiveSet provides interactive implementations
var InteractiveSet = wire.NewSet(
	interactive.NewSelectorAdapter,
	wire.Bind(new(usecase.NetworkSelector), new(*interactive.SelectorAdapter)),
)

// GatewaySet provides the HTTP clients for off-chain services
var GatewaySet = wire.NewSet(
	safe.NewClientAdapter,
	wire.Bind(new(usecase.ChainInfoClient), new(*safe.ClientAdapter)),

	gasprice.NewProvider,
	wire.Bind(new(usecase.GasPriceProvider), new(*gasprice.Provider)),
)

// BlockchainSet provides blockchain-based implementations
var BlockchainSet = wire.NewSet(
	blockchain.NewDialer,
	wire.Bind(new(usecase.BackendDialer), new(*blockchain.Dialer)),
)

// AllAdapters includes all adapter sets
var AllAdapters = wire.NewSet(
	NetworkSet,
	DeploymentSet,
	FSSet,
	InteractiveSet,
	GatewaySet,
	BlockchainSet,
)

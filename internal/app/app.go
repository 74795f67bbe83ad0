package app

import (
	"context"
	"log/slog"

	"github.com/rsksmart/safekit/internal/domain/config"
	"github.com/rsksmart/safekit/internal/usecase"
)

// App is the main application container that holds all use cases
type App struct {
	// Configuration
	Config *config.RuntimeConfig
	Log    *slog.Logger

	// Shared dependencies
	Dialer    usecase.BackendDialer
	Contracts *usecase.ContractCache

	// Use cases
	ListNetworks         *usecase.ListNetworks
	ShowNetwork          *usecase.ShowNetwork
	SelectNetwork        *usecase.SelectNetwork
	ShowConfig           *usecase.ShowConfig
	SetConfig            *usecase.SetConfig
	RemoveConfig         *usecase.RemoveConfig
	ResolveContract      *usecase.ResolveContract
	InstantiateContracts *usecase.InstantiateContracts
	CheckContracts       *usecase.CheckContracts
	GetMasterCopy        *usecase.GetMasterCopy
	BuildDeploymentTx    *usecase.BuildDeploymentTx
	ReadSafe             *usecase.ReadSafe
}

// NewApp creates a new application instance with all use cases
func NewApp(
	cfg *config.RuntimeConfig,
	log *slog.Logger,
	dialer usecase.BackendDialer,
	contracts *usecase.ContractCache,
	listNetworks *usecase.ListNetworks,
	showNetwork *usecase.ShowNetwork,
	selectNetwork *usecase.SelectNetwork,
	showConfig *usecase.ShowConfig,
	setConfig *usecase.SetConfig,
	removeConfig *usecase.RemoveConfig,
	resolveContract *usecase.ResolveContract,
	instantiateContracts *usecase.InstantiateContracts,
	checkContracts *usecase.CheckContracts,
	getMasterCopy *usecase.GetMasterCopy,
	buildDeploymentTx *usecase.BuildDeploymentTx,
	readSafe *usecase.ReadSafe,
) (*App, error) {
	return &App{
		Config:               cfg,
		Log:                  log,
		Dialer:               dialer,
		Contracts:            contracts,
		ListNetworks:         listNetworks,
		ShowNetwork:          showNetwork,
		SelectNetwork:        selectNetwork,
		ShowConfig:           showConfig,
		SetConfig:            setConfig,
		RemoveConfig:         removeConfig,
		ResolveContract:      resolveContract,
		InstantiateContracts: instantiateContracts,
		CheckContracts:       checkContracts,
		GetMasterCopy:        getMasterCopy,
		BuildDeploymentTx:    buildDeploymentTx,
		ReadSafe:             readSafe,
	}, nil
}

// Backend dials the active network's RPC node and checks its chain ID. The
// caller closes the returned backend.
func (a *App) Backend(ctx context.Context) (usecase.ChainBackend, error) {
	return a.Dialer.Dial(ctx, a.Config.Settings.RPCServiceURL, a.Config.ChainID())
}

// Instantiate resolves the active network's Safe contracts and binds them to
// backend. A nil backend is enough for encoding transactions.
func (a *App) Instantiate(ctx context.Context, backend usecase.ChainBackend) (*usecase.NetworkContext, error) {
	return a.InstantiateContracts.Run(ctx, usecase.InstantiateContractsParams{
		Backend:     backend,
		ChainID:     a.Config.ChainID(),
		SafeVersion: a.Config.SafeVersion,
	})
}

// Connect dials the active network and instantiates its Safe contracts. The
// caller closes the returned backend.
func (a *App) Connect(ctx context.Context) (usecase.ChainBackend, *usecase.NetworkContext, error) {
	backend, err := a.Backend(ctx)
	if err != nil {
		return nil, nil, err
	}

	nc, err := a.Instantiate(ctx, backend)
	if err != nil {
		backend.Close()
		return nil, nil, err
	}
	return backend, nc, nil
}

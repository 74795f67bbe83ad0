package usecase_test

import (
	"context"
	"errors"
	"fmt"
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/rsksmart/safekit/internal/domain"
	"github.com/rsksmart/safekit/internal/usecase"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadSafe(t *testing.T) {
	ctx := context.Background()
	safeAddr := common.HexToAddress("0x5afe5afe5afe5afe5afe5afe5afe5afe5afe5afe")
	uc := usecase.NewReadSafe(newResolver(t), discardLogger())

	instance, err := uc.Instance(ctx, nil, safeAddr, "1.2.0")
	require.NoError(t, err)
	assert.Equal(t, safeAddr, instance.Address())
	assert.Equal(t, "GnosisSafe", instance.Deployment.Record.ContractName)

	backend := &fakeBackend{calls: map[[4]byte][]byte{}}
	respond := func(method string, values ...interface{}) {
		m := instance.ABI.Methods[method]
		out, err := m.Outputs.Pack(values...)
		require.NoError(t, err)
		backend.calls[[4]byte(m.ID)] = out
	}
	respond("VERSION", "1.2.0")
	respond("getOwners", []common.Address{ownerA, ownerB})
	respond("getThreshold", big.NewInt(2))
	respond("nonce", big.NewInt(7))

	t.Run("reads the Safe configuration", func(t *testing.T) {
		state, err := uc.Run(ctx, usecase.ReadSafeParams{Backend: backend, Address: safeAddr, SafeVersion: "1.2.0"})
		require.NoError(t, err)
		assert.Equal(t, safeAddr, state.Address)
		assert.Equal(t, "1.2.0", state.Version)
		assert.Equal(t, []common.Address{ownerA, ownerB}, state.Owners)
		assert.Equal(t, int64(2), state.Threshold.Int64())
		assert.Equal(t, int64(7), state.Nonce.Int64())
	})

	t.Run("uses the L2 ABI from 1.3.0", func(t *testing.T) {
		l2, err := uc.Instance(ctx, nil, safeAddr, "1.3.0")
		require.NoError(t, err)
		assert.Equal(t, "GnosisSafeL2", l2.Deployment.Record.ContractName)
		assert.Equal(t, safeAddr, l2.Address())
	})

	t.Run("unknown version", func(t *testing.T) {
		_, err := uc.Run(ctx, usecase.ReadSafeParams{Backend: backend, Address: safeAddr, SafeVersion: "0.0.1"})
		assert.ErrorIs(t, err, domain.ErrDeploymentNotFound)
	})

	t.Run("rpc failure", func(t *testing.T) {
		failing := &fakeBackend{err: errors.New("connection refused")}
		_, err := uc.Run(ctx, usecase.ReadSafeParams{Backend: failing, Address: safeAddr, SafeVersion: "1.2.0"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to call VERSION")
		assert.Contains(t, err.Error(), "connection refused")
	})
}

func TestCheckContracts(t *testing.T) {
	_, nc := instantiate(t, 31, "1.3.0")
	t.Run("reports missing code", func(t *testing.T) {
		progress := &recordingProgress{}
		uc := usecase.NewCheckContracts(progress)
		backend := &fakeBackend{code: map[common.Address][]byte{
			nc.Singleton.Address():    {0x60, 0x80},
			nc.ProxyFactory.Address(): {0x60, 0x80},
			nc.MultiSend.Address():    {0x60, 0x80},
		}}

		checks := uc.Run(context.Background(), backend, nc)
		require.Len(t, checks, 4)
		for _, check := range checks {
			if check.Instance == nc.FallbackHandler {
				assert.False(t, check.Deployed)
				assert.Equal(t, "no code at address", check.Reason)
				continue
			}
			assert.True(t, check.Deployed, check.Instance.Role())
			assert.Empty(t, check.Reason)
		}
		assert.Equal(t, []string{
			fmt.Sprintf("No code for %s at %s", nc.FallbackHandler.Role(), nc.FallbackHandler.Address().Hex()),
		}, progress.errors)
	})

	t.Run("reports rpc failures per contract", func(t *testing.T) {
		progress := &recordingProgress{}
		uc := usecase.NewCheckContracts(progress)
		checks := uc.Run(context.Background(), &fakeBackend{err: errors.New("timeout")}, nc)
		require.Len(t, checks, 4)
		for _, check := range checks {
			assert.False(t, check.Deployed)
			assert.Equal(t, "failed to check code: timeout", check.Reason)
		}
		assert.Empty(t, progress.errors)
	})
}

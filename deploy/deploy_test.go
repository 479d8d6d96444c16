package deploy

import (
	"context"
	"testing"

	"github.com/nspcc-dev/neo-go/pkg/util"
	"github.com/nspcc-dev/neo-go/pkg/wallet"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func TestDeployPrmValidation(t *testing.T) {
	acc, err := wallet.NewAccount()
	require.NoError(t, err)

	endpoint := util.Uint160{1, 2, 3}

	for name, prm := range map[string]Prm{
		"missing logger":   {LocalAccount: acc, Endpoint: endpoint},
		"missing account":  {Logger: zaptest.NewLogger(t), Endpoint: endpoint},
		"zero endpoint":    {Logger: zaptest.NewLogger(t), LocalAccount: acc},
		"missing client":   {Logger: zaptest.NewLogger(t), LocalAccount: acc, Endpoint: endpoint},
	} {
		t.Run(name, func(t *testing.T) {
			_, err := Deploy(context.Background(), prm)
			require.Error(t, err)
		})
	}
}

package lzendpoint

import (
	"github.com/nspcc-dev/neo-go/pkg/interop"
	"github.com/nspcc-dev/neo-go/pkg/interop/contract"
	"github.com/nspcc-dev/neo-go/pkg/interop/native/gas"
	"github.com/nspcc-dev/neo-go/pkg/interop/native/std"
	"github.com/nspcc-dev/neo-go/pkg/interop/runtime"
	"github.com/nspcc-dev/neo-go/pkg/interop/storage"
)

// Call captures arguments of a single send invocation.
type Call struct {
	DstChainID        int
	Destination       []byte
	Payload           []byte
	RefundAddress     interop.Hash160
	ZroPaymentAddress interop.Hash160
	AdapterParams     []byte
}

const (
	lastCallKey = "last"
	countKey    = "count"

	failKey = "fail"
)

// Send records the relayed message. It panics if the endpoint was switched
// into failing mode, letting callers test revert propagation.
func Send(dstChainID int, destination []byte, payload []byte,
	refundAddress interop.Hash160, zroPaymentAddress interop.Hash160, adapterParams []byte) {
	ctx := storage.GetContext()

	if storage.Get(ctx, failKey) != nil {
		panic("endpoint rejected the message")
	}

	storage.Put(ctx, lastCallKey, std.Serialize(Call{
		DstChainID:        dstChainID,
		Destination:       destination,
		Payload:           payload,
		RefundAddress:     refundAddress,
		ZroPaymentAddress: zroPaymentAddress,
		AdapterParams:     adapterParams,
	}))
	storage.Put(ctx, countKey, CallCount()+1)
}

// Deliver relays a previously captured payload to the target contract's
// lzReceive method, imitating the destination side of the mesh.
func Deliver(target interop.Hash160, srcChainID int, srcAddress []byte, nonce int, payload []byte) {
	contract.Call(target, "lzReceive", contract.All, srcChainID, srcAddress, nonce, payload)
}

// SetFailing switches the endpoint into a mode where every send panics.
func SetFailing(failing bool) {
	ctx := storage.GetContext()
	if failing {
		storage.Put(ctx, failKey, 1)
	} else {
		storage.Delete(ctx, failKey)
	}
}

// LastCall returns the most recent recorded send invocation.
func LastCall() Call {
	val := storage.Get(storage.GetReadOnlyContext(), lastCallKey)
	if val == nil {
		return Call{}
	}
	return std.Deserialize(val.([]byte)).(Call)
}

// CallCount returns the number of recorded send invocations.
func CallCount() int {
	val := storage.Get(storage.GetReadOnlyContext(), countKey)
	if val == nil {
		return 0
	}
	return val.(int)
}

// OnNEP17Payment accepts relay fees in GAS.
func OnNEP17Payment(from interop.Hash160, amount int, data any) {
	caller := runtime.GetCallingScriptHash()
	if !caller.Equals(gas.Hash) {
		panic("endpoint accepts GAS only")
	}
}

package client

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"block_scanner/internal/app/port"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
)

// Registry resolver(bytes32) and resolver addr(bytes32), the two views needed for forward resolution.
const ensABI = `[
{"constant":true,"inputs":[{"name":"node","type":"bytes32"}],"name":"resolver","outputs":[{"name":"","type":"address"}],"payable":false,"stateMutability":"view","type":"function"},
{"constant":true,"inputs":[{"name":"node","type":"bytes32"}],"name":"addr","outputs":[{"name":"","type":"address"}],"payable":false,"stateMutability":"view","type":"function"}
]`

var (
	parsedENSABI  abi.ABI
	parsedENSOnce sync.Once
)

func initParsedENSABI() {
	parsedENSOnce.Do(func() {
		var err error
		parsedENSABI, err = abi.JSON(strings.NewReader(ensABI))
		if err != nil {
			panic(fmt.Sprintf("failed to parse ENS ABI: %v", err))
		}
	})
}

// ENSResolver implements port.NameResolver by querying the ENS registry and the
// name's resolver contract.
type ENSResolver struct {
	callers     CallerProvider
	registry    common.Address
	callTimeout time.Duration
	logger      port.Logger
}

// NewENSResolver creates an ENS resolver using the registry at registryAddress.
func NewENSResolver(callers CallerProvider, registryAddress string, callTimeout time.Duration, logger port.Logger) *ENSResolver {
	initParsedENSABI()
	return &ENSResolver{
		callers:     callers,
		registry:    common.HexToAddress(registryAddress),
		callTimeout: callTimeout,
		logger:      logger,
	}
}

// NameHash computes the EIP-137 namehash of a (normalized) name.
func NameHash(name string) common.Hash {
	var node common.Hash
	if name == "" {
		return node
	}
	labels := strings.Split(name, ".")
	for i := len(labels) - 1; i >= 0; i-- {
		labelHash := crypto.Keccak256([]byte(labels[i]))
		node = common.BytesToHash(crypto.Keccak256(node.Bytes(), labelHash))
	}
	return node
}

// normalizeName lowercases and trims the name. Full UTS-46 normalization is not applied.
func normalizeName(name string) string {
	return strings.TrimSuffix(strings.ToLower(strings.TrimSpace(name)), ".")
}

// ResolveName implements port.NameResolver. A name with no resolver, or a resolver
// with no address record, is reported as not found.
func (r *ENSResolver) ResolveName(ctx context.Context, name string) (string, bool, error) {
	caller, err := r.callers.Caller(ctx)
	if err != nil {
		return "", false, err
	}

	callCtx, cancel := context.WithTimeout(ctx, r.callTimeout)
	defer cancel()

	node := NameHash(normalizeName(name))

	resolver, err := r.callAddress(callCtx, caller, r.registry, "resolver", node)
	if err != nil {
		return "", false, fmt.Errorf("failed to look up resolver for %s: %w", name, err)
	}
	if resolver == (common.Address{}) {
		r.logger.Debug("Name has no resolver", "name", name)
		return "", false, nil
	}

	addr, err := r.callAddress(callCtx, caller, resolver, "addr", node)
	if err != nil {
		return "", false, fmt.Errorf("failed to resolve address for %s: %w", name, err)
	}
	if addr == (common.Address{}) {
		r.logger.Debug("Name has no address record", "name", name)
		return "", false, nil
	}
	return addr.Hex(), true, nil
}

func (r *ENSResolver) callAddress(ctx context.Context, caller ethereum.ContractCaller, to common.Address, method string, node common.Hash) (common.Address, error) {
	data, err := parsedENSABI.Pack(method, [32]byte(node))
	if err != nil {
		return common.Address{}, fmt.Errorf("failed to pack %s call: %w", method, err)
	}

	out, err := caller.CallContract(ctx, ethereum.CallMsg{To: &to, Data: data}, nil)
	if err != nil {
		return common.Address{}, err
	}
	if len(out) == 0 {
		// No contract code at the target.
		return common.Address{}, nil
	}

	unpacked, err := parsedENSABI.Unpack(method, out)
	if err != nil {
		return common.Address{}, fmt.Errorf("failed to unpack %s result: %w", method, err)
	}
	if len(unpacked) == 0 {
		return common.Address{}, fmt.Errorf("%s unpack returned no data", method)
	}
	addr, ok := unpacked[0].(common.Address)
	if !ok {
		return common.Address{}, fmt.Errorf("unexpected %s result type %T", method, unpacked[0])
	}
	return addr, nil
}

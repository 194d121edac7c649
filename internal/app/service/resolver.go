package service

import (
	"context"
	"fmt"
	"strings"

	"block_scanner/internal/app/port"
	"block_scanner/internal/domain/entity"
)

// MsgNoSuchName is the reply for a name that has no address.
const MsgNoSuchName = "There is no such ENS name."

// IdentifierResolver maps a user-supplied identifier to a canonical address.
type IdentifierResolver struct {
	names  port.NameResolver
	suffix string
	logger port.Logger
}

// NewIdentifierResolver creates a resolver. Identifiers containing suffix anywhere are
// treated as names; everything else is passed through unchanged.
func NewIdentifierResolver(names port.NameResolver, suffix string, logger port.Logger) *IdentifierResolver {
	return &IdentifierResolver{names: names, suffix: suffix, logger: logger}
}

// IsName reports whether identifier must go through name resolution.
func (r *IdentifierResolver) IsName(identifier string) bool {
	return r.suffix != "" && strings.Contains(identifier, r.suffix)
}

// Resolve returns the address for identifier. A name without a mapping yields a
// KindNotFound *entity.ScanError; callers must stop there. Raw addresses are not validated.
func (r *IdentifierResolver) Resolve(ctx context.Context, identifier string) (string, error) {
	if !r.IsName(identifier) {
		return identifier, nil
	}

	address, found, err := r.names.ResolveName(ctx, identifier)
	if err != nil {
		r.logger.Error("Name resolution failed", "name", identifier, "error", err)
		return "", fmt.Errorf("failed to resolve %s: %w", identifier, err)
	}
	if !found {
		r.logger.Debug("Name not found", "name", identifier)
		return "", entity.NewScanError(entity.KindNotFound, MsgNoSuchName)
	}
	r.logger.Debug("Name resolved", "name", identifier, "address", address)
	return address, nil
}
